package wordml

import (
	"strings"
)

// Attr is a single XML attribute. Attribute order within an element is
// preserved exactly as given; WordprocessingML consumers care about it.
type Attr struct {
	Name  string
	Value string
}

// Element is a generic XML element tree node. Model objects produce Element
// trees from their XML() methods; the text writer below flattens them.
// Name carries its namespace prefix verbatim (e.g. "w:rPr"). An Element with
// an empty Name is a raw text node: only Text is written, in child position,
// which keeps mixed content ordered.
type Element struct {
	Name        string
	Attrs       []Attr
	Children    []*Element
	Text        string
	SelfClosing bool
}

// NewElement creates an element with the given name and attributes.
func NewElement(name string, attrs ...Attr) *Element {
	return &Element{Name: name, Attrs: attrs}
}

// Append adds child elements and returns the receiver for chaining.
func (e *Element) Append(children ...*Element) *Element {
	e.Children = append(e.Children, children...)
	return e
}

// SetAttr sets an attribute, replacing an existing one with the same name.
func (e *Element) SetAttr(name, value string) *Element {
	for i := range e.Attrs {
		if e.Attrs[i].Name == name {
			e.Attrs[i].Value = value
			return e
		}
	}
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
	return e
}

// Attr returns the value of the named attribute and whether it is present.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Find returns the first direct child with the given name, or nil.
func (e *Element) Find(name string) *Element {
	for _, c := range e.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// valElement builds the ubiquitous <name w:val="..."/> form.
func valElement(name, val string) *Element {
	return &Element{Name: name, Attrs: []Attr{{Name: "w:val", Value: val}}, SelfClosing: true}
}

// emptyElement builds a bare self-closing element like <w:b/>.
func emptyElement(name string) *Element {
	return &Element{Name: name, SelfClosing: true}
}

// String renders the element tree as XML text.
func (e *Element) String() string {
	var b strings.Builder
	e.write(&b)
	return b.String()
}

func (e *Element) write(b *strings.Builder) {
	if e.Name == "" {
		b.WriteString(escapeText(e.Text))
		return
	}
	b.WriteString("<")
	b.WriteString(e.Name)
	for _, a := range e.Attrs {
		b.WriteString(" ")
		b.WriteString(a.Name)
		b.WriteString(`="`)
		b.WriteString(escapeAttr(a.Value))
		b.WriteString(`"`)
	}
	if e.SelfClosing || (len(e.Children) == 0 && e.Text == "") {
		b.WriteString("/>")
		return
	}
	b.WriteString(">")
	b.WriteString(escapeText(e.Text))
	for _, c := range e.Children {
		c.write(b)
	}
	b.WriteString("</")
	b.WriteString(e.Name)
	b.WriteString(">")
}

// Clone returns a deep copy of the element tree.
func (e *Element) Clone() *Element {
	if e == nil {
		return nil
	}
	out := &Element{Name: e.Name, Text: e.Text, SelfClosing: e.SelfClosing}
	if len(e.Attrs) > 0 {
		out.Attrs = make([]Attr, len(e.Attrs))
		copy(out.Attrs, e.Attrs)
	}
	for _, c := range e.Children {
		out.Children = append(out.Children, c.Clone())
	}
	return out
}

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"\n", "&#10;",
	"\t", "&#9;",
)

func escapeText(s string) string {
	return textEscaper.Replace(s)
}

func escapeAttr(s string) string {
	return attrEscaper.Replace(s)
}
