package wordml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// classify reduces a serialized run-level element to a short tag so marker
// ordering can be asserted as a plain slice.
func classify(t *testing.T, el *Element) string {
	t.Helper()
	if el.Name != "w:r" {
		return el.Name
	}
	for _, c := range el.Children {
		switch c.Name {
		case "w:fldChar":
			kind, _ := c.Attr("w:fldCharType")
			return kind
		case "w:instrText":
			return "instr"
		case "w:t":
			return "text"
		}
	}
	return "run"
}

func classifyAll(t *testing.T, els []*Element) []string {
	t.Helper()
	out := make([]string, 0, len(els))
	for _, el := range els {
		out = append(out, classify(t, el))
	}
	return out
}

func TestComplexFieldMarkerSequence(t *testing.T) {
	f := NewComplexField(` PAGE \* MERGEFORMAT `, nil)
	f.SetResult("14")

	want := []string{"begin", "instr", "separate", "text", "end"}
	assert.Equal(t, want, classifyAll(t, f.XML()))
}

func TestComplexFieldNoResultSectionOmitsSeparator(t *testing.T) {
	f := NewComplexField(` TIME \@ "HH:mm" `, nil)

	want := []string{"begin", "instr", "end"}
	assert.Equal(t, want, classifyAll(t, f.XML()))
}

func TestComplexFieldEmptyResultKeepsSeparator(t *testing.T) {
	f := NewComplexField(` REF _Ref1 \h `, nil)
	f.SetResult("")

	want := []string{"begin", "instr", "separate", "text", "end"}
	assert.Equal(t, want, classifyAll(t, f.XML()))

	got, ok := f.Result()
	assert.True(t, ok)
	assert.Empty(t, got)
}

func TestComplexFieldForcedSectionOffSuppressesResult(t *testing.T) {
	f := NewComplexField(` PAGE `, nil)
	f.SetResult("14")
	f.SetHasResultSection(false)

	want := []string{"begin", "instr", "end"}
	assert.Equal(t, want, classifyAll(t, f.XML()))

	// The result text itself is kept for a later section re-enable.
	got, ok := f.Result()
	assert.True(t, ok)
	assert.Equal(t, "14", got)
}

func TestComplexFieldNestedSerialization(t *testing.T) {
	outer := NewComplexField(` IF `, nil)
	outer.SetResult("yes")
	outer.AddNestedField(NewComplexField(` PAGE `, nil))

	// The nested field sits complete between the outer instruction and the
	// outer separator.
	want := []string{"begin", "instr", "begin", "instr", "end", "separate", "text", "end"}
	assert.Equal(t, want, classifyAll(t, outer.XML()))
}

func TestComplexFieldDeepNesting(t *testing.T) {
	root := NewComplexField(` IF `, nil)
	cur := root
	const depth = 2000
	for i := 0; i < depth; i++ {
		child := NewComplexField(` PAGE `, nil)
		cur.AddNestedField(child)
		cur = child
	}

	els := root.XML()
	// Each field contributes begin, instr and end.
	assert.Len(t, els, 3*(depth+1))
	tags := classifyAll(t, els)
	assert.Equal(t, "begin", tags[0])
	assert.Equal(t, "end", tags[len(tags)-1])
}

func TestComplexFieldNestedManagement(t *testing.T) {
	f := NewComplexField(` IF `, nil)
	f.AddNestedField(NewComplexField(` PAGE `, nil))
	f.AddNestedField(NewComplexField(` DATE `, nil))
	require.Equal(t, 2, f.NestedFieldCount())

	assert.False(t, f.RemoveNestedField(-1))
	assert.False(t, f.RemoveNestedField(2))
	assert.True(t, f.RemoveNestedField(0))
	require.Equal(t, 1, f.NestedFieldCount())
	assert.Contains(t, f.NestedFields()[0].Instruction(), "DATE")

	f.ClearNestedFields()
	assert.Zero(t, f.NestedFieldCount())
}

func TestComplexFieldRevisionsBetweenSeparatorAndEnd(t *testing.T) {
	f := NewComplexField(` AUTHOR `, nil)
	f.SetResult("Ada")
	date := mustParseTime(t, "2026-02-01T10:00:00Z")
	f.AddRevision(NewInsertRevision(7, "Reviewer", date,
		NewElement("w:r").Append(textElement("Grace"))))

	tags := classifyAll(t, f.XML())
	want := []string{"begin", "instr", "separate", "text", "w:ins", "end"}
	assert.Equal(t, want, tags)
}

func TestComplexFieldRevisionsDroppedWithoutResultSection(t *testing.T) {
	f := NewComplexField(` AUTHOR `, nil)
	date := mustParseTime(t, "2026-02-01T10:00:00Z")
	f.AddRevision(NewInsertRevision(7, "Reviewer", date,
		NewElement("w:r").Append(textElement("Grace"))))

	want := []string{"begin", "instr", "end"}
	assert.Equal(t, want, classifyAll(t, f.XML()))
}

func TestComplexFieldResultContentWinsOverText(t *testing.T) {
	pict := NewElement("w:r").Append(emptyElement("w:pict"))
	f := NewComplexField(` INCLUDEPICTURE "img.png" `, nil)
	f.SetResult("ignored")
	f.SetResultContent([]*Element{pict})

	els := f.XML()
	require.Len(t, els, 5)
	assert.Equal(t, "separate", classify(t, els[2]))
	assert.NotNil(t, els[3].Find("w:pict"))
	assert.Equal(t, "end", classify(t, els[4]))
}

func TestComplexFieldFormFieldOnBeginMarker(t *testing.T) {
	checked := true
	f := NewComplexField(` FORMCHECKBOX `, &ComplexFieldOptions{
		FormField: &FormFieldData{
			Name:     "AgreeBox",
			Checkbox: &CheckboxData{Checked: &checked},
		},
	})

	els := f.XML()
	begin := els[0].Find("w:fldChar")
	require.NotNil(t, begin)
	ffData := begin.Find("w:ffData")
	require.NotNil(t, ffData)

	name := ffData.Find("w:name")
	require.NotNil(t, name)
	val, _ := name.Attr("w:val")
	assert.Equal(t, "AgreeBox", val)

	checkBox := ffData.Find("w:checkBox")
	require.NotNil(t, checkBox)
	assert.NotNil(t, checkBox.Find("w:checked"))
	assert.Nil(t, ffData.Find("w:helpText"), "absent settings are not emitted")
}

func TestComplexFieldHyperlinkDerivation(t *testing.T) {
	f := NewComplexField(` HYPERLINK "https://example.test/docs" \o "Docs" `, nil)
	require.NotNil(t, f.Hyperlink())
	assert.Equal(t, "https://example.test/docs", f.Hyperlink().URL)
	assert.Equal(t, "Docs", f.Hyperlink().Tooltip)
	assert.True(t, f.IsHyperlinkField())

	// Rewriting the instruction to a non-hyperlink clears the derivation.
	f.SetInstruction(` PAGE `)
	assert.Nil(t, f.Hyperlink())
	assert.False(t, f.IsHyperlinkField())

	// And appending switches re-derives instead of going stale.
	g := NewComplexField(` HYPERLINK "https://example.test" `, nil)
	g.UpdateInstruction(`\o "Tip"`)
	require.NotNil(t, g.Hyperlink())
	assert.Equal(t, "Tip", g.Hyperlink().Tooltip)
}

func TestComplexFieldXMLIdempotent(t *testing.T) {
	f := NewComplexField(` PAGE \* MERGEFORMAT `, &ComplexFieldOptions{
		InstructionFormatting: &RunFormatting{Bold: boolPtr(true)},
	})
	f.SetResult("3")
	f.AddNestedField(NewComplexField(` DATE `, nil))

	first := f.XML()
	second := f.XML()
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].String(), second[i].String())
	}
}

func TestComplexFieldInstructionRunPreservesSpace(t *testing.T) {
	f := NewComplexField(` PAGE `, nil)
	instr := f.XML()[1].Find("w:instrText")
	require.NotNil(t, instr)
	space, ok := instr.Attr("xml:space")
	assert.True(t, ok)
	assert.Equal(t, "preserve", space)
	assert.Equal(t, " PAGE ", instr.Text)
}
