package wordml

import (
	"strings"
)

// Run is the smallest unit of uniformly formatted text: a text payload plus
// a RunFormatting value. Setters mutate in place and return the receiver for
// chaining; XML() never mutates.
type Run struct {
	text   *string
	format RunFormatting
}

// NewRun creates a run with the given text.
func NewRun(text string) *Run {
	t := sanitizeText(text)
	return &Run{text: &t}
}

// NewFormattedRun creates a run with the given text and formatting.
// The formatting is copied, not aliased.
func NewFormattedRun(text string, format *RunFormatting) *Run {
	r := NewRun(text)
	if format != nil {
		r.format = *format.Clone()
	}
	return r
}

// Text returns the run text, or the empty string when none was ever set.
func (r *Run) Text() string {
	if r.text == nil {
		return ""
	}
	return *r.text
}

// SetText replaces the run text.
func (r *Run) SetText(text string) *Run {
	t := sanitizeText(text)
	r.text = &t
	return r
}

// Formatting returns the run's formatting for inspection.
func (r *Run) Formatting() *RunFormatting {
	return &r.format
}

// InsertText inserts s at the given rune index. Out-of-range indices are
// clamped to the nearest valid position rather than rejected.
func (r *Run) InsertText(index int, s string) *Run {
	runes := []rune(r.Text())
	if index < 0 {
		GetLogger().Warn("insert index %d clamped to 0", index)
		index = 0
	}
	if index > len(runes) {
		GetLogger().Warn("insert index %d clamped to %d", index, len(runes))
		index = len(runes)
	}
	out := string(runes[:index]) + sanitizeText(s) + string(runes[index:])
	r.text = &out
	return r
}

// AppendText appends s to the run text.
func (r *Run) AppendText(s string) *Run {
	out := r.Text() + sanitizeText(s)
	r.text = &out
	return r
}

// ReplaceText replaces the rune range [start, end) with s. Reversed bounds
// are swapped and out-of-range bounds clamped; these are forgiving edits,
// not strict-bounds operations.
func (r *Run) ReplaceText(start, end int, s string) *Run {
	runes := []rune(r.Text())
	if start > end {
		start, end = end, start
	}
	if start < 0 {
		start = 0
	}
	if end > len(runes) {
		end = len(runes)
	}
	if start > len(runes) {
		start = len(runes)
	}
	out := string(runes[:start]) + sanitizeText(s) + string(runes[end:])
	r.text = &out
	return r
}

// Clone returns a deep copy; the clone shares no mutable state with the
// original.
func (r *Run) Clone() *Run {
	out := &Run{format: *r.format.Clone()}
	if r.text != nil {
		t := *r.text
		out.text = &t
	}
	return out
}

// SetBold sets (or explicitly unsets) bold.
func (r *Run) SetBold(v bool) *Run {
	r.format.Bold = &v
	return r
}

// SetBoldComplexScript sets complex-script bold.
func (r *Run) SetBoldComplexScript(v bool) *Run {
	r.format.BoldCS = &v
	return r
}

func (r *Run) SetItalic(v bool) *Run {
	r.format.Italic = &v
	return r
}

func (r *Run) SetItalicComplexScript(v bool) *Run {
	r.format.ItalicCS = &v
	return r
}

func (r *Run) SetAllCaps(v bool) *Run {
	r.format.AllCaps = &v
	return r
}

func (r *Run) SetSmallCaps(v bool) *Run {
	r.format.SmallCaps = &v
	return r
}

func (r *Run) SetStrike(v bool) *Run {
	r.format.Strike = &v
	return r
}

func (r *Run) SetDoubleStrike(v bool) *Run {
	r.format.DoubleStrike = &v
	return r
}

// SetUnderline sets a named underline style ("single", "double", "wave", ...).
func (r *Run) SetUnderline(style string) *Run {
	if r.format.Underline == nil {
		r.format.Underline = &Underline{}
	}
	r.format.Underline.Style = style
	return r
}

// SetUnderlineColor sets the underline color. Invalid hex is a ColorError
// and leaves the underline unchanged.
func (r *Run) SetUnderlineColor(hex string) error {
	normalized, err := NormalizeColor(hex)
	if err != nil {
		return err
	}
	if r.format.Underline == nil {
		r.format.Underline = &Underline{Style: "single"}
	}
	r.format.Underline.Color = normalized
	return nil
}

// SetSubscript enables subscript; subscript and superscript are mutually
// exclusive, so any superscript is cleared.
func (r *Run) SetSubscript() *Run {
	r.format.VertAlign = VertAlignSubscript
	return r
}

// SetSuperscript enables superscript, clearing any subscript.
func (r *Run) SetSuperscript() *Run {
	r.format.VertAlign = VertAlignSuperscript
	return r
}

// SetFont sets the font family for the latin and high-ANSI script ranges.
func (r *Run) SetFont(family string) *Run {
	if r.format.Fonts == nil {
		r.format.Fonts = &Fonts{}
	}
	r.format.Fonts.ASCII = family
	r.format.Fonts.HighAnsi = family
	return r
}

// SetFonts replaces the per-script font record.
func (r *Run) SetFonts(fonts *Fonts) *Run {
	if fonts == nil {
		r.format.Fonts = nil
		return r
	}
	f := *fonts
	r.format.Fonts = &f
	return r
}

// SetSize sets the font size in points.
func (r *Run) SetSize(points float64) *Run {
	r.format.Size = &points
	return r
}

// SetColor validates and canonicalizes a 3- or 6-digit hex color. On failure
// it returns a ColorError and leaves the current color unchanged.
func (r *Run) SetColor(hex string) error {
	normalized, err := NormalizeColor(hex)
	if err != nil {
		return err
	}
	r.format.Color = normalized
	return nil
}

// SetHighlight sets a named highlight color ("yellow", "cyan", ...).
func (r *Run) SetHighlight(name string) *Run {
	r.format.Highlight = name
	return r
}

func (r *Run) SetShading(shading *Shading) *Run {
	if shading == nil {
		r.format.Shading = nil
		return r
	}
	s := *shading
	r.format.Shading = &s
	return r
}

// SetEmphasis sets an east-Asian emphasis mark ("dot", "comma", "circle",
// "underDot").
func (r *Run) SetEmphasis(mark string) *Run {
	r.format.Emphasis = mark
	return r
}

func (r *Run) SetBorder(border *Border) *Run {
	if border == nil {
		r.format.Border = nil
		return r
	}
	b := *border
	r.format.Border = &b
	return r
}

// SetCharacterSpacing sets inter-character spacing in twentieths of a point.
func (r *Run) SetCharacterSpacing(twips int) *Run {
	r.format.Spacing = &twips
	return r
}

// SetScale sets horizontal scaling as a percentage.
func (r *Run) SetScale(percent int) *Run {
	r.format.Scale = &percent
	return r
}

// SetPosition raises (positive) or lowers (negative) text by half-points.
func (r *Run) SetPosition(halfPoints int) *Run {
	r.format.Position = &halfPoints
	return r
}

// SetKerning sets the minimum font size for kerning, in half-points.
func (r *Run) SetKerning(halfPoints int) *Run {
	r.format.Kerning = &halfPoints
	return r
}

// SetLanguage sets the run language. The tag is canonicalized when it parses
// as BCP-47 and stored verbatim otherwise.
func (r *Run) SetLanguage(tag string) *Run {
	r.format.Language = canonicalLanguage(tag)
	return r
}

// SetStyle sets a character-style reference.
func (r *Run) SetStyle(styleID string) *Run {
	r.format.Style = styleID
	return r
}

// XML builds the <w:r> element: the ordered property block first (when any
// formatting is set), then the text child. A run that never received text
// serializes an empty string and emits a diagnostic.
func (r *Run) XML() *Element {
	el := NewElement("w:r")
	if rPr := r.format.XML(); rPr != nil {
		el.Append(rPr)
	}
	if r.text == nil {
		GetLogger().Warn("run has no text content; serializing empty string")
	}
	el.Append(textElement(r.Text()))
	return el
}

func (r *Run) elements() []*Element {
	return []*Element{r.XML()}
}

// textElement builds <w:t xml:space="preserve">.
func textElement(text string) *Element {
	return &Element{
		Name:  "w:t",
		Attrs: []Attr{{Name: "xml:space", Value: "preserve"}},
		Text:  text,
	}
}

// sanitizeText strips characters that are not legal in XML character data.
// Tab, LF and CR stay; other C0 controls are dropped.
func sanitizeText(s string) string {
	if !strings.ContainsFunc(s, isIllegalTextRune) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if !isIllegalTextRune(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isIllegalTextRune(r rune) bool {
	if r == '\t' || r == '\n' || r == '\r' {
		return false
	}
	return r < 0x20 || r == 0xFFFE || r == 0xFFFF
}
