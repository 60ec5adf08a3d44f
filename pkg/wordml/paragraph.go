package wordml

// ParagraphChild is content that can appear inside a paragraph: runs,
// simple fields, complex fields, hyperlink spans and revisions. Each child
// contributes a flat sequence of w: elements.
type ParagraphChild interface {
	elements() []*Element
}

// Paragraph assembles ordered paragraph content and serializes it to a
// <w:p> element. It consumes the XML() outputs of the run/field model and
// never reorders them.
type Paragraph struct {
	style    string
	children []ParagraphChild
}

// NewParagraph creates an empty paragraph.
func NewParagraph() *Paragraph {
	return &Paragraph{}
}

// SetStyle sets the paragraph style reference.
func (p *Paragraph) SetStyle(styleID string) *Paragraph {
	p.style = styleID
	return p
}

// Style returns the paragraph style reference.
func (p *Paragraph) Style() string {
	return p.style
}

// AddRun appends a run.
func (p *Paragraph) AddRun(r *Run) *Paragraph {
	if r != nil {
		p.children = append(p.children, r)
	}
	return p
}

// AddText appends a plain run with the given text.
func (p *Paragraph) AddText(text string) *Paragraph {
	return p.AddRun(NewRun(text))
}

// AddField appends a simple field.
func (p *Paragraph) AddField(f *Field) *Paragraph {
	if f != nil {
		p.children = append(p.children, f)
	}
	return p
}

// AddComplexField appends a complex field; its marker runs are flattened
// into the paragraph at serialization time.
func (p *Paragraph) AddComplexField(f *ComplexField) *Paragraph {
	if f != nil {
		p.children = append(p.children, f)
	}
	return p
}

// AddHyperlink appends a hyperlink span.
func (p *Paragraph) AddHyperlink(h *HyperlinkSpan) *Paragraph {
	if h != nil {
		p.children = append(p.children, h)
	}
	return p
}

// AddRevision appends a tracked change wrapping paragraph content.
func (p *Paragraph) AddRevision(rev *Revision) *Paragraph {
	if rev != nil {
		p.children = append(p.children, rev)
	}
	return p
}

// Children returns the ordered content.
func (p *Paragraph) Children() []ParagraphChild {
	return p.children
}

// XML builds the <w:p> element.
func (p *Paragraph) XML() *Element {
	el := NewElement("w:p")
	if p.style != "" {
		pPr := NewElement("w:pPr").Append(valElement("w:pStyle", p.style))
		el.Append(pPr)
	}
	for _, child := range p.children {
		el.Append(child.elements()...)
	}
	return el
}
