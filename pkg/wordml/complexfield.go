package wordml

import (
	"strings"
)

// ResultRevision is the capability a complex field needs from a tracked
// change wrapping its result: serialize to an element, or nil when there is
// nothing to emit.
type ResultRevision interface {
	XML() *Element
}

// ComplexField is a field encoded as the five-part marker sequence:
// begin, instruction, nested fields, separator, result, end. Unlike a
// simple field it spans multiple run elements, so XML() returns a slice.
//
// The load-bearing invariant is that the separator is emitted iff the field
// has a result section. "No result section" (an un-updated field) and
// "result section present but empty" are different documents and survive a
// round trip as such.
type ComplexField struct {
	instruction    string
	result         *string
	hasResult      bool
	resultContent  []*Element
	instrFormat    *RunFormatting
	resultFormat   *RunFormatting
	nested         []*ComplexField
	multiParagraph bool
	hyperlink      *Hyperlink
	revisions      []ResultRevision
	formData       *FormFieldData
}

// ComplexFieldOptions tunes complex field construction.
type ComplexFieldOptions struct {
	// Result sets the plain result text and implies a result section.
	Result *string
	// HasResultSection forces the separator on or off independently of
	// Result; when nil it defaults to whether a result was supplied.
	HasResultSection *bool
	// ResultContent supplies opaque custom result content that takes
	// priority over Result (e.g. the picture an INCLUDEPICTURE produced).
	ResultContent []*Element
	// InstructionFormatting styles the instruction run.
	InstructionFormatting *RunFormatting
	// ResultFormatting styles the plain result run.
	ResultFormatting *RunFormatting
	// MultiParagraph marks a field whose markers span paragraphs; it is a
	// hint to the paragraph assembler, not a serialization switch.
	MultiParagraph bool
	// Hyperlink supplies pre-parsed hyperlink components, skipping
	// auto-detection.
	Hyperlink *Hyperlink
	// FormField attaches form-field metadata to the begin marker.
	FormField *FormFieldData
}

// NewComplexField creates a complex field for the given instruction. When no
// pre-parsed hyperlink is supplied and the instruction looks like a
// HYPERLINK field, its url/anchor/tooltip components are derived.
func NewComplexField(instruction string, opts *ComplexFieldOptions) *ComplexField {
	if opts == nil {
		opts = &ComplexFieldOptions{}
	}
	f := &ComplexField{
		instruction:    instruction,
		multiParagraph: opts.MultiParagraph,
		resultContent:  opts.ResultContent,
		formData:       opts.FormField.Clone(),
	}
	if opts.Result != nil {
		res := *opts.Result
		f.result = &res
		f.hasResult = true
	}
	if len(opts.ResultContent) > 0 {
		f.hasResult = true
	}
	if opts.HasResultSection != nil {
		f.hasResult = *opts.HasResultSection
	}
	if opts.InstructionFormatting != nil {
		f.instrFormat = opts.InstructionFormatting.Clone()
	}
	if opts.ResultFormatting != nil {
		f.resultFormat = opts.ResultFormatting.Clone()
	}
	if opts.Hyperlink != nil {
		link := *opts.Hyperlink
		f.hyperlink = &link
	} else {
		f.deriveHyperlink()
	}
	return f
}

// deriveHyperlink recomputes the parsed hyperlink components from the
// current instruction, clearing them when the instruction is not a
// HYPERLINK field.
func (f *ComplexField) deriveHyperlink() {
	if link, ok := ParseHyperlinkInstruction(f.instruction); ok {
		f.hyperlink = link
	} else {
		f.hyperlink = nil
	}
}

// Instruction returns the field code.
func (f *ComplexField) Instruction() string {
	return f.instruction
}

// SetInstruction replaces the field code and re-derives the parsed
// hyperlink. Derived state never goes stale after mutation.
func (f *ComplexField) SetInstruction(instruction string) *ComplexField {
	f.instruction = instruction
	f.deriveHyperlink()
	return f
}

// UpdateInstruction appends switches or arguments to the existing field
// code, re-deriving the parsed hyperlink.
func (f *ComplexField) UpdateInstruction(extra string) *ComplexField {
	f.instruction = strings.TrimRight(f.instruction, " ") + " " + strings.TrimLeft(extra, " ")
	f.deriveHyperlink()
	return f
}

// Result returns the plain result text; ok is false when the field has no
// result text at all (distinct from an empty result).
func (f *ComplexField) Result() (string, bool) {
	if f.result == nil {
		return "", false
	}
	return *f.result, true
}

// SetResult sets the plain result text and turns the result section on.
func (f *ComplexField) SetResult(result string) *ComplexField {
	f.result = &result
	f.hasResult = true
	return f
}

// ClearResult removes the result text and the result section.
func (f *ComplexField) ClearResult() *ComplexField {
	f.result = nil
	f.resultContent = nil
	f.hasResult = false
	return f
}

// HasResultSection reports whether the separator marker is emitted.
func (f *ComplexField) HasResultSection() bool {
	return f.hasResult
}

// SetHasResultSection forces the separator on or off. With the section off,
// result text and content are ignored at serialization time even if set.
func (f *ComplexField) SetHasResultSection(has bool) *ComplexField {
	f.hasResult = has
	return f
}

// ResultContent returns the opaque custom result content.
func (f *ComplexField) ResultContent() []*Element {
	return f.resultContent
}

// SetResultContent replaces the opaque custom result content and turns the
// result section on.
func (f *ComplexField) SetResultContent(content []*Element) *ComplexField {
	f.resultContent = content
	if len(content) > 0 {
		f.hasResult = true
	}
	return f
}

// InstructionFormatting returns the instruction run formatting, or nil.
func (f *ComplexField) InstructionFormatting() *RunFormatting {
	return f.instrFormat
}

// SetInstructionFormatting replaces the instruction run formatting.
func (f *ComplexField) SetInstructionFormatting(format *RunFormatting) *ComplexField {
	f.instrFormat = format.Clone()
	return f
}

// ResultFormatting returns the result run formatting, or nil.
func (f *ComplexField) ResultFormatting() *RunFormatting {
	return f.resultFormat
}

// SetResultFormatting replaces the result run formatting.
func (f *ComplexField) SetResultFormatting(format *RunFormatting) *ComplexField {
	f.resultFormat = format.Clone()
	return f
}

// MultiParagraph reports the multi-paragraph hint.
func (f *ComplexField) MultiParagraph() bool {
	return f.multiParagraph
}

func (f *ComplexField) SetMultiParagraph(v bool) *ComplexField {
	f.multiParagraph = v
	return f
}

// Hyperlink returns the parsed hyperlink components, or nil when the
// instruction is not a HYPERLINK field.
func (f *ComplexField) Hyperlink() *Hyperlink {
	return f.hyperlink
}

// IsHyperlinkField reports whether this is a HYPERLINK field, checking both
// the derived components and the raw instruction prefix.
func (f *ComplexField) IsHyperlinkField() bool {
	if f.hyperlink != nil {
		return true
	}
	trimmed := strings.TrimSpace(f.instruction)
	return len(trimmed) >= len("HYPERLINK") &&
		strings.EqualFold(trimmed[:len("HYPERLINK")], "HYPERLINK")
}

// AddNestedField appends a sub-field. Nested fields serialize strictly
// between the instruction marker and the separator, in list order. The
// field exclusively owns its nested fields.
func (f *ComplexField) AddNestedField(nested *ComplexField) *ComplexField {
	if nested != nil {
		f.nested = append(f.nested, nested)
	}
	return f
}

// RemoveNestedField removes the sub-field at index, reporting false when
// the index is out of range rather than erroring.
func (f *ComplexField) RemoveNestedField(index int) bool {
	if index < 0 || index >= len(f.nested) {
		return false
	}
	f.nested = append(f.nested[:index], f.nested[index+1:]...)
	return true
}

// ClearNestedFields removes all sub-fields.
func (f *ComplexField) ClearNestedFields() *ComplexField {
	f.nested = nil
	return f
}

// NestedFieldCount returns the number of sub-fields.
func (f *ComplexField) NestedFieldCount() int {
	return len(f.nested)
}

// NestedFields returns the owned sub-field list in serialization order.
func (f *ComplexField) NestedFields() []*ComplexField {
	return f.nested
}

// AddRevision appends a tracked change wrapping the field's result.
// Revisions serialize between the separator and the end marker, in list
// order; without a result section they have no legal position and are
// skipped.
func (f *ComplexField) AddRevision(rev ResultRevision) *ComplexField {
	if rev != nil {
		f.revisions = append(f.revisions, rev)
	}
	return f
}

// Revisions returns the result-wrapping revisions in serialization order.
func (f *ComplexField) Revisions() []ResultRevision {
	return f.revisions
}

// FormField returns the form-field metadata, or nil.
func (f *ComplexField) FormField() *FormFieldData {
	return f.formData
}

// SetFormField attaches form-field metadata to the begin marker.
func (f *ComplexField) SetFormField(data *FormFieldData) *ComplexField {
	f.formData = data.Clone()
	return f
}

// XML serializes the five-marker sequence as a flat list of run-level
// elements. Nested fields are walked with an explicit stack, so serialization
// depth is bounded by heap, not call stack.
func (f *ComplexField) XML() []*Element {
	type frame struct {
		field  *ComplexField
		opened bool
		next   int
	}
	var out []*Element
	stack := []*frame{{field: f}}
	for len(stack) > 0 {
		fr := stack[len(stack)-1]
		if !fr.opened {
			fr.opened = true
			out = append(out, fr.field.beginRun(), fr.field.instructionRun())
		}
		if fr.next < len(fr.field.nested) {
			child := fr.field.nested[fr.next]
			fr.next++
			stack = append(stack, &frame{field: child})
			continue
		}
		out = append(out, fr.field.closingElements()...)
		stack = stack[:len(stack)-1]
	}
	return out
}

func (f *ComplexField) elements() []*Element {
	return f.XML()
}

// beginRun builds the begin marker, carrying the ffData payload when form
// field metadata is present.
func (f *ComplexField) beginRun() *Element {
	fldChar := NewElement("w:fldChar", Attr{Name: "w:fldCharType", Value: "begin"})
	if f.formData != nil {
		fldChar.Append(f.formData.XML())
	} else {
		fldChar.SelfClosing = true
	}
	return NewElement("w:r").Append(fldChar)
}

func (f *ComplexField) instructionRun() *Element {
	run := NewElement("w:r")
	if f.instrFormat != nil {
		if rPr := f.instrFormat.XML(); rPr != nil {
			run.Append(rPr)
		}
	}
	instr := &Element{
		Name:  "w:instrText",
		Attrs: []Attr{{Name: "xml:space", Value: "preserve"}},
		Text:  f.instruction,
	}
	run.Append(instr)
	return run
}

// closingElements emits everything after the nested fields: the separator
// and result section when present, result-wrapping revisions, then the
// unconditional end marker.
func (f *ComplexField) closingElements() []*Element {
	var out []*Element
	if f.hasResult {
		out = append(out, markerRun("separate"))
		switch {
		case len(f.resultContent) > 0:
			out = append(out, f.resultContent...)
		case f.result != nil:
			out = append(out, f.resultRun())
		}
		for _, rev := range f.revisions {
			if el := rev.XML(); el != nil {
				out = append(out, el)
			}
		}
	}
	out = append(out, markerRun("end"))
	return out
}

func (f *ComplexField) resultRun() *Element {
	run := NewElement("w:r")
	if f.resultFormat != nil {
		if rPr := f.resultFormat.XML(); rPr != nil {
			run.Append(rPr)
		}
	}
	run.Append(textElement(*f.result))
	return run
}

func markerRun(kind string) *Element {
	fldChar := &Element{
		Name:        "w:fldChar",
		Attrs:       []Attr{{Name: "w:fldCharType", Value: kind}},
		SelfClosing: true,
	}
	return NewElement("w:r").Append(fldChar)
}
