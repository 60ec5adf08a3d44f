package wordml

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

// Fonts names the font family per script category. Theme fields reference a
// document theme slot instead of a direct family name; when a theme field is
// set it wins over the direct name for that script.
type Fonts struct {
	ASCII         string
	HighAnsi      string
	EastAsia      string
	ComplexScript string
	Hint          string

	ASCIITheme         string
	HighAnsiTheme      string
	EastAsiaTheme      string
	ComplexScriptTheme string
}

// Underline describes underline decoration: a named style plus optional
// color and theme color/tint/shade sub-attributes.
type Underline struct {
	Style      string
	Color      string
	ThemeColor string
	ThemeTint  string
	ThemeShade string
}

// Shading describes character shading (w:shd).
type Shading struct {
	Pattern string
	Color   string
	Fill    string
}

// Border describes a text border (w:bdr). Size is in eighths of a point,
// Space in points.
type Border struct {
	Style string
	Size  int
	Space int
	Color string
}

// Vertical alignment values for subscript/superscript.
const (
	VertAlignSubscript   = "subscript"
	VertAlignSuperscript = "superscript"
)

// RunFormatting is a sparse set of independent, optional character-level
// attributes. Nil/zero means "not set"; only set attributes are serialized.
// It can be built as a struct literal or through the Run setters.
type RunFormatting struct {
	Style        string
	Fonts        *Fonts
	Border       *Border
	Bold         *bool
	BoldCS       *bool
	Italic       *bool
	ItalicCS     *bool
	AllCaps      *bool
	SmallCaps    *bool
	Shading      *Shading
	Emphasis     string
	Strike       *bool
	DoubleStrike *bool
	Underline    *Underline
	Spacing      *int // twentieths of a point
	Scale        *int // percent
	Position     *int // half-points, signed
	Kerning      *int // half-points
	Language     string
	Size         *float64 // points; converted to half-points at serialization
	Color        string   // canonical 6-digit uppercase hex, no '#'
	Highlight    string
	VertAlign    string // VertAlignSubscript or VertAlignSuperscript
}

// IsZero reports whether no attribute is set.
func (f *RunFormatting) IsZero() bool {
	if f == nil {
		return true
	}
	return f.Style == "" && f.Fonts == nil && f.Border == nil &&
		f.Bold == nil && f.BoldCS == nil && f.Italic == nil && f.ItalicCS == nil &&
		f.AllCaps == nil && f.SmallCaps == nil && f.Shading == nil && f.Emphasis == "" &&
		f.Strike == nil && f.DoubleStrike == nil && f.Underline == nil &&
		f.Spacing == nil && f.Scale == nil && f.Position == nil && f.Kerning == nil &&
		f.Language == "" && f.Size == nil && f.Color == "" && f.Highlight == "" &&
		f.VertAlign == ""
}

// Clone returns a deep copy with no shared mutable substructure.
func (f *RunFormatting) Clone() *RunFormatting {
	if f == nil {
		return nil
	}
	out := *f
	if f.Fonts != nil {
		fonts := *f.Fonts
		out.Fonts = &fonts
	}
	if f.Border != nil {
		border := *f.Border
		out.Border = &border
	}
	if f.Shading != nil {
		shd := *f.Shading
		out.Shading = &shd
	}
	if f.Underline != nil {
		u := *f.Underline
		out.Underline = &u
	}
	out.Bold = cloneBool(f.Bold)
	out.BoldCS = cloneBool(f.BoldCS)
	out.Italic = cloneBool(f.Italic)
	out.ItalicCS = cloneBool(f.ItalicCS)
	out.AllCaps = cloneBool(f.AllCaps)
	out.SmallCaps = cloneBool(f.SmallCaps)
	out.Strike = cloneBool(f.Strike)
	out.DoubleStrike = cloneBool(f.DoubleStrike)
	out.Spacing = cloneInt(f.Spacing)
	out.Scale = cloneInt(f.Scale)
	out.Position = cloneInt(f.Position)
	out.Kerning = cloneInt(f.Kerning)
	if f.Size != nil {
		sz := *f.Size
		out.Size = &sz
	}
	return &out
}

func cloneBool(v *bool) *bool {
	if v == nil {
		return nil
	}
	b := *v
	return &b
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	i := *v
	return &i
}

// XML builds the ordered <w:rPr> property block, or nil when nothing is set.
// Children appear in a fixed precedence order regardless of the order the
// attributes were assigned; conforming consumers reject misordered blocks.
func (f *RunFormatting) XML() *Element {
	if f.IsZero() {
		return nil
	}
	rPr := NewElement("w:rPr")

	if f.Style != "" {
		rPr.Append(valElement("w:rStyle", f.Style))
	}
	if f.Fonts != nil {
		rPr.Append(f.Fonts.xml())
	}
	if f.Border != nil {
		rPr.Append(f.Border.xml())
	}
	if f.Bold != nil {
		rPr.Append(boolElement("w:b", *f.Bold))
	}
	if f.BoldCS != nil {
		rPr.Append(boolElement("w:bCs", *f.BoldCS))
	}
	if f.Italic != nil {
		rPr.Append(boolElement("w:i", *f.Italic))
	}
	if f.ItalicCS != nil {
		rPr.Append(boolElement("w:iCs", *f.ItalicCS))
	}
	if f.AllCaps != nil {
		rPr.Append(boolElement("w:caps", *f.AllCaps))
	}
	if f.SmallCaps != nil {
		rPr.Append(boolElement("w:smallCaps", *f.SmallCaps))
	}
	if f.Shading != nil {
		rPr.Append(f.Shading.xml())
	}
	if f.Emphasis != "" {
		rPr.Append(valElement("w:em", f.Emphasis))
	}
	if f.Strike != nil {
		rPr.Append(boolElement("w:strike", *f.Strike))
	}
	if f.DoubleStrike != nil {
		rPr.Append(boolElement("w:dstrike", *f.DoubleStrike))
	}
	if f.Underline != nil {
		rPr.Append(f.Underline.xml())
	}
	if f.Spacing != nil {
		rPr.Append(valElement("w:spacing", strconv.Itoa(*f.Spacing)))
	}
	if f.Scale != nil {
		rPr.Append(valElement("w:w", strconv.Itoa(*f.Scale)))
	}
	if f.Position != nil {
		rPr.Append(valElement("w:position", strconv.Itoa(*f.Position)))
	}
	if f.Kerning != nil {
		rPr.Append(valElement("w:kern", strconv.Itoa(*f.Kerning)))
	}
	if f.Language != "" {
		rPr.Append(valElement("w:lang", f.Language))
	}
	if f.Size != nil {
		halfPoints := PointsToHalfPoints(*f.Size)
		rPr.Append(valElement("w:sz", halfPoints))
		rPr.Append(valElement("w:szCs", halfPoints))
	}
	if f.Color != "" {
		rPr.Append(valElement("w:color", f.Color))
	}
	if f.Highlight != "" {
		rPr.Append(valElement("w:highlight", f.Highlight))
	}
	if f.VertAlign != "" {
		rPr.Append(valElement("w:vertAlign", f.VertAlign))
	}
	return rPr
}

func (fo *Fonts) xml() *Element {
	el := &Element{Name: "w:rFonts", SelfClosing: true}
	if fo.ASCIITheme != "" {
		el.SetAttr("w:asciiTheme", fo.ASCIITheme)
	} else if fo.ASCII != "" {
		el.SetAttr("w:ascii", fo.ASCII)
	}
	if fo.HighAnsiTheme != "" {
		el.SetAttr("w:hAnsiTheme", fo.HighAnsiTheme)
	} else if fo.HighAnsi != "" {
		el.SetAttr("w:hAnsi", fo.HighAnsi)
	}
	if fo.EastAsiaTheme != "" {
		el.SetAttr("w:eastAsiaTheme", fo.EastAsiaTheme)
	} else if fo.EastAsia != "" {
		el.SetAttr("w:eastAsia", fo.EastAsia)
	}
	if fo.ComplexScriptTheme != "" {
		el.SetAttr("w:cstheme", fo.ComplexScriptTheme)
	} else if fo.ComplexScript != "" {
		el.SetAttr("w:cs", fo.ComplexScript)
	}
	if fo.Hint != "" {
		el.SetAttr("w:hint", fo.Hint)
	}
	return el
}

func (b *Border) xml() *Element {
	el := &Element{Name: "w:bdr", SelfClosing: true}
	style := b.Style
	if style == "" {
		style = "single"
	}
	el.SetAttr("w:val", style)
	if b.Size > 0 {
		el.SetAttr("w:sz", strconv.Itoa(b.Size))
	}
	if b.Space > 0 {
		el.SetAttr("w:space", strconv.Itoa(b.Space))
	}
	if b.Color != "" {
		el.SetAttr("w:color", b.Color)
	}
	return el
}

func (s *Shading) xml() *Element {
	el := &Element{Name: "w:shd", SelfClosing: true}
	pattern := s.Pattern
	if pattern == "" {
		pattern = "clear"
	}
	el.SetAttr("w:val", pattern)
	if s.Color != "" {
		el.SetAttr("w:color", s.Color)
	}
	if s.Fill != "" {
		el.SetAttr("w:fill", s.Fill)
	}
	return el
}

func (u *Underline) xml() *Element {
	el := &Element{Name: "w:u", SelfClosing: true}
	style := u.Style
	if style == "" {
		style = "single"
	}
	el.SetAttr("w:val", style)
	if u.Color != "" {
		el.SetAttr("w:color", u.Color)
	}
	if u.ThemeColor != "" {
		el.SetAttr("w:themeColor", u.ThemeColor)
	}
	if u.ThemeTint != "" {
		el.SetAttr("w:themeTint", u.ThemeTint)
	}
	if u.ThemeShade != "" {
		el.SetAttr("w:themeShade", u.ThemeShade)
	}
	return el
}

// boolElement emits the OOXML boolean property form: bare element for true,
// w:val="0" for an explicit false.
func boolElement(name string, v bool) *Element {
	if v {
		return emptyElement(name)
	}
	return valElement(name, "0")
}

// PointsToHalfPoints converts a point size to the half-point string form
// used by w:sz and w:szCs.
func PointsToHalfPoints(points float64) string {
	return strconv.FormatInt(int64(math.Round(points*2)), 10)
}

var hexColorPattern = regexp.MustCompile(`^#?([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// NormalizeColor canonicalizes a 3- or 6-digit hex color (with or without a
// leading '#') to uppercase 6-digit form. Anything else is a ColorError.
func NormalizeColor(value string) (string, error) {
	m := hexColorPattern.FindStringSubmatch(value)
	if m == nil {
		return "", NewColorError(value)
	}
	hex := strings.ToUpper(m[1])
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	return hex, nil
}

// canonicalLanguage canonicalizes a BCP-47 tag (e.g. "EN-us" to "en-US").
// Unparseable tags pass through untouched; language tags are stored, not
// validated.
func canonicalLanguage(tag string) string {
	parsed, err := language.Parse(tag)
	if err != nil {
		return tag
	}
	return parsed.String()
}
