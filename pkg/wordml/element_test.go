package wordml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElementString(t *testing.T) {
	tests := []struct {
		name string
		el   *Element
		want string
	}{
		{
			name: "empty element self-closes",
			el:   NewElement("w:b"),
			want: `<w:b/>`,
		},
		{
			name: "attribute only",
			el:   valElement("w:pStyle", "Heading1"),
			want: `<w:pStyle w:val="Heading1"/>`,
		},
		{
			name: "text content",
			el:   &Element{Name: "w:t", Text: "hello"},
			want: `<w:t>hello</w:t>`,
		},
		{
			name: "nested children",
			el:   NewElement("w:rPr").Append(NewElement("w:b"), valElement("w:color", "FF0000")),
			want: `<w:rPr><w:b/><w:color w:val="FF0000"/></w:rPr>`,
		},
		{
			name: "forced self-closing ignores text",
			el:   &Element{Name: "w:t", SelfClosing: true},
			want: `<w:t/>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.el.String())
		})
	}
}

func TestElementEscaping(t *testing.T) {
	el := &Element{Name: "w:t", Text: `a < b & "c"`}
	assert.Equal(t, `<w:t>a &lt; b &amp; "c"</w:t>`, el.String())

	attr := NewElement("w:x", Attr{Name: "w:val", Value: "a\"b\nc"})
	assert.Equal(t, `<w:x w:val="a&quot;b&#10;c"/>`, attr.String())
}

func TestElementTextNodesInterleave(t *testing.T) {
	el := NewElement("w:x").Append(
		&Element{Text: "a"},
		emptyElement("w:y"),
		&Element{Text: "b & c"},
	)
	assert.Equal(t, `<w:x>a<w:y/>b &amp; c</w:x>`, el.String())
}

func TestElementSetAttrReplaces(t *testing.T) {
	el := NewElement("w:u", Attr{Name: "w:val", Value: "single"})
	el.SetAttr("w:val", "double")
	el.SetAttr("w:color", "FF0000")

	require.Len(t, el.Attrs, 2)
	val, ok := el.Attr("w:val")
	assert.True(t, ok)
	assert.Equal(t, "double", val)
}

func TestElementFind(t *testing.T) {
	rPr := NewElement("w:rPr").Append(NewElement("w:b"), NewElement("w:i"))
	assert.NotNil(t, rPr.Find("w:i"))
	assert.Nil(t, rPr.Find("w:u"))
}

func TestElementCloneIsDeep(t *testing.T) {
	orig := NewElement("w:r", Attr{Name: "w:rsidR", Value: "001"}).
		Append(&Element{Name: "w:t", Text: "x"})
	clone := orig.Clone()
	clone.Attrs[0].Value = "002"
	clone.Children[0].Text = "y"

	val, _ := orig.Attr("w:rsidR")
	assert.Equal(t, "001", val)
	assert.Equal(t, "x", orig.Children[0].Text)
}
