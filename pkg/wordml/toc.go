package wordml

import (
	"strings"
)

// TOCOptions configures a table-of-contents field instruction. Boolean
// switches default on; set the pointer to false to disable one.
type TOCOptions struct {
	// Levels is the outline-level range for the \o switch; defaults "1-3".
	Levels string
	// Hyperlinks emits \h, making entries hyperlinks. Default on.
	Hyperlinks *bool
	// HideWebPageNumbers emits \z, hiding page numbers in web view.
	// Default on.
	HideWebPageNumbers *bool
	// UseOutlineLevels emits \u, including paragraphs with outline levels.
	// Default on.
	UseOutlineLevels *bool
	// OmitPageNumbers emits \n, suppressing page numbers.
	OmitPageNumbers bool
	// StyleMap is the custom style-to-level list for the \t switch.
	StyleMap string
}

// BuildTOCInstruction builds the TOC field code: leading space, TOC,
// \o "<levels>", the default-on boolean switches, then the optional \n and
// \t switches, trailing space.
func BuildTOCInstruction(opts *TOCOptions) string {
	if opts == nil {
		opts = &TOCOptions{}
	}
	levels := opts.Levels
	if levels == "" {
		levels = "1-3"
	}
	var b strings.Builder
	b.WriteString(` TOC \o "`)
	b.WriteString(levels)
	b.WriteString(`"`)
	if enabled(opts.Hyperlinks) {
		b.WriteString(` \h`)
	}
	if enabled(opts.HideWebPageNumbers) {
		b.WriteString(` \z`)
	}
	if enabled(opts.UseOutlineLevels) {
		b.WriteString(` \u`)
	}
	if opts.OmitPageNumbers {
		b.WriteString(` \n`)
	}
	if opts.StyleMap != "" {
		b.WriteString(` \t "`)
		b.WriteString(opts.StyleMap)
		b.WriteString(`"`)
	}
	b.WriteString(" ")
	return b.String()
}

// NewTOCField creates a table-of-contents complex field. A fresh TOC has no
// result section: the host application builds the listing when fields are
// updated.
func NewTOCField(opts *TOCOptions) *ComplexField {
	return NewComplexField(BuildTOCInstruction(opts), &ComplexFieldOptions{
		MultiParagraph: true,
	})
}

func enabled(v *bool) bool {
	return v == nil || *v
}
