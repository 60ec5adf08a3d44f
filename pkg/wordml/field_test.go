package wordml

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldInstructions(t *testing.T) {
	tests := []struct {
		name  string
		field *Field
		want  string
	}{
		{name: "page", field: NewPageField(nil), want: `PAGE \* MERGEFORMAT`},
		{name: "numpages", field: NewNumPagesField(nil), want: `NUMPAGES \* MERGEFORMAT`},
		{name: "author", field: NewAuthorField(nil), want: `AUTHOR \* MERGEFORMAT`},
		{name: "date default picture", field: NewDateField("", nil), want: `DATE \@ "M/d/yyyy" \* MERGEFORMAT`},
		{name: "date custom picture", field: NewDateField("yyyy-MM-dd", nil), want: `DATE \@ "yyyy-MM-dd" \* MERGEFORMAT`},
		{name: "time default picture", field: NewTimeField("", nil), want: `TIME \@ "h:mm am/pm" \* MERGEFORMAT`},
		{name: "filename", field: NewFileNameField(false, nil), want: `FILENAME \* MERGEFORMAT`},
		{name: "filename with path", field: NewFileNameField(true, nil), want: `FILENAME \p \* MERGEFORMAT`},
		{name: "ref defaults to hyperlink switch", field: NewRefField("_Toc1", nil), want: `REF _Toc1 \h \* MERGEFORMAT`},
		{name: "seq defaults to arabic", field: NewSequenceField("Figure", nil), want: `SEQ Figure \* ARABIC`},
		{name: "index entry", field: NewIndexEntryField("widgets", nil), want: `XE "widgets"`},
		{name: "merge field", field: NewMergeField("FirstName", nil), want: `MERGEFIELD FirstName \* MERGEFORMAT`},
		{name: "custom verbatim", field: NewCustomField(`DOCPROPERTY "Status"`, nil), want: `DOCPROPERTY "Status"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.field.Instruction())
		})
	}
}

func TestFieldOptOutOfPreserveFormat(t *testing.T) {
	f := NewField(FieldPage, &FieldOptions{NoPreserveFormat: true})
	assert.Equal(t, "PAGE", f.Instruction())
}

func TestTOCEntryLevelValidation(t *testing.T) {
	f, err := NewTOCEntryField("Overview", 2, nil)
	require.NoError(t, err)
	assert.Equal(t, `TC "Overview" \l 2`, f.Instruction())

	for _, level := range []int{0, -1, 10} {
		_, err := NewTOCEntryField("Overview", level, nil)
		require.Error(t, err)
		assert.True(t, IsFieldError(err))
	}
}

func TestTOCInstruction(t *testing.T) {
	instr := BuildTOCInstruction(&TOCOptions{Levels: "1-3", Hyperlinks: boolPtr(true)})

	// The switches must appear in grammar order.
	idxTOC := strings.Index(instr, "TOC")
	idxO := strings.Index(instr, `\o "1-3"`)
	idxH := strings.Index(instr, `\h`)
	idxZ := strings.Index(instr, `\z`)
	idxU := strings.Index(instr, `\u`)
	require.True(t, idxTOC >= 0 && idxO > idxTOC && idxH > idxO && idxZ > idxH && idxU > idxZ, "got %q", instr)

	assert.True(t, strings.HasPrefix(instr, " "))
	assert.True(t, strings.HasSuffix(instr, " "))
}

func TestTOCInstructionSwitchesOptOut(t *testing.T) {
	off := false
	instr := BuildTOCInstruction(&TOCOptions{
		Hyperlinks:         &off,
		HideWebPageNumbers: &off,
		UseOutlineLevels:   &off,
		OmitPageNumbers:    true,
		StyleMap:           "Heading 6,1",
	})
	assert.NotContains(t, instr, `\h`)
	assert.NotContains(t, instr, `\z`)
	assert.NotContains(t, instr, `\u`)
	assert.Contains(t, instr, `\n`)
	assert.Contains(t, instr, `\t "Heading 6,1"`)
}

func TestFieldXMLStructure(t *testing.T) {
	f := NewPageField(&RunFormatting{Bold: boolPtr(true)})
	el := f.XML()

	assert.Equal(t, "w:fldSimple", el.Name)
	instr, ok := el.Attr("w:instr")
	require.True(t, ok)
	assert.Equal(t, `PAGE \* MERGEFORMAT`, instr)

	// The field element contains the run, not the other way around.
	require.Len(t, el.Children, 1)
	run := el.Children[0]
	assert.Equal(t, "w:r", run.Name)
	require.Len(t, run.Children, 2)
	assert.Equal(t, "w:rPr", run.Children[0].Name)
	assert.Equal(t, "w:t", run.Children[1].Name)
	assert.Equal(t, "1", run.Children[1].Text)
}

func TestFieldPlaceholders(t *testing.T) {
	fixed := func() time.Time {
		return time.Date(2026, 3, 9, 14, 5, 0, 0, time.UTC)
	}

	tests := []struct {
		name  string
		field *Field
		want  string
	}{
		{name: "page shows 1", field: NewPageField(nil), want: "1"},
		{name: "sectionpages shows 1", field: NewSectionPagesField(nil), want: "1"},
		{name: "date uses injected clock", field: NewDateField("", nil).WithClock(fixed), want: "3/9/2026"},
		{name: "time uses injected clock", field: NewTimeField("", nil).WithClock(fixed), want: "2:05 PM"},
		{name: "hidden entry field is blank", field: NewIndexEntryField("x", nil), want: ""},
		{name: "unknown type is blank", field: NewField(FieldType("WEIRDO"), nil), want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := tt.field.XML().Children[0]
			text := run.Children[len(run.Children)-1]
			assert.Equal(t, tt.want, text.Text)
		})
	}
}

func TestFieldXMLIdempotent(t *testing.T) {
	fixed := func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }
	f := NewDateField("", &RunFormatting{Italic: boolPtr(true)}).WithClock(fixed)
	assert.Equal(t, f.XML().String(), f.XML().String())
}

func TestIsHyperlinkField(t *testing.T) {
	assert.True(t, NewHyperlinkField("https://x.test", "", nil).IsHyperlinkField())

	// The instruction path must be checked too: the type may be CUSTOM when
	// the instruction was set directly.
	direct := NewCustomField(`hyperlink "https://x.test"`, nil)
	assert.True(t, direct.IsHyperlinkField())

	assert.False(t, NewPageField(nil).IsHyperlinkField())
}
