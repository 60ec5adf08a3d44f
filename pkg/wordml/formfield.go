package wordml

import (
	"strconv"
)

// FormFieldData is the structured payload a complex field's begin marker may
// carry when the field is an interactive form control. Exactly one of
// TextInput, Checkbox, DropDown should be set; the serializer emits the
// first non-nil variant in that order. Absent optional attributes are
// omitted from the output, never defaulted.
type FormFieldData struct {
	Name       string
	Enabled    *bool
	CalcOnExit *bool
	HelpText   string
	StatusText string
	EntryMacro string
	ExitMacro  string

	TextInput *TextInputData
	Checkbox  *CheckboxData
	DropDown  *DropDownData
}

// TextInputData describes a text-input form field.
type TextInputData struct {
	Kind      string // "regular", "number", "date", "currentDate", "currentTime", "calculated"
	Default   string
	MaxLength *int
	Format    string
}

// CheckboxData describes a checkbox form field. SizeAuto and Size are
// alternatives; SizeAuto wins when both are set.
type CheckboxData struct {
	SizeAuto bool
	Size     *int // half-points
	Default  *bool
	Checked  *bool
}

// DropDownData describes a dropdown-list form field. Selected and Default
// are indices into Entries.
type DropDownData struct {
	Selected *int
	Default  *int
	Entries  []string
}

// Clone returns a deep copy.
func (d *FormFieldData) Clone() *FormFieldData {
	if d == nil {
		return nil
	}
	out := *d
	out.Enabled = cloneBool(d.Enabled)
	out.CalcOnExit = cloneBool(d.CalcOnExit)
	if d.TextInput != nil {
		ti := *d.TextInput
		ti.MaxLength = cloneInt(d.TextInput.MaxLength)
		out.TextInput = &ti
	}
	if d.Checkbox != nil {
		cb := *d.Checkbox
		cb.Size = cloneInt(d.Checkbox.Size)
		cb.Default = cloneBool(d.Checkbox.Default)
		cb.Checked = cloneBool(d.Checkbox.Checked)
		out.Checkbox = &cb
	}
	if d.DropDown != nil {
		dd := *d.DropDown
		dd.Selected = cloneInt(d.DropDown.Selected)
		dd.Default = cloneInt(d.DropDown.Default)
		dd.Entries = append([]string(nil), d.DropDown.Entries...)
		out.DropDown = &dd
	}
	return &out
}

// XML builds the <w:ffData> payload. Only attributes actually present are
// emitted: an omitted w:enabled means enabled, so an explicit true still
// serializes as a bare <w:enabled/>.
func (d *FormFieldData) XML() *Element {
	el := NewElement("w:ffData")
	if d.Name != "" {
		el.Append(valElement("w:name", d.Name))
	}
	if d.Enabled != nil {
		el.Append(boolElement("w:enabled", *d.Enabled))
	}
	if d.CalcOnExit != nil {
		el.Append(boolElement("w:calcOnExit", *d.CalcOnExit))
	}
	if d.EntryMacro != "" {
		el.Append(valElement("w:entryMacro", d.EntryMacro))
	}
	if d.ExitMacro != "" {
		el.Append(valElement("w:exitMacro", d.ExitMacro))
	}
	if d.HelpText != "" {
		el.Append(typedTextElement("w:helpText", d.HelpText))
	}
	if d.StatusText != "" {
		el.Append(typedTextElement("w:statusText", d.StatusText))
	}
	switch {
	case d.TextInput != nil:
		el.Append(d.TextInput.xml())
	case d.Checkbox != nil:
		el.Append(d.Checkbox.xml())
	case d.DropDown != nil:
		el.Append(d.DropDown.xml())
	}
	return el
}

func typedTextElement(name, val string) *Element {
	return &Element{
		Name: name,
		Attrs: []Attr{
			{Name: "w:type", Value: "text"},
			{Name: "w:val", Value: val},
		},
		SelfClosing: true,
	}
}

func (ti *TextInputData) xml() *Element {
	el := NewElement("w:textInput")
	if ti.Kind != "" {
		el.Append(valElement("w:type", ti.Kind))
	}
	if ti.Default != "" {
		el.Append(valElement("w:default", ti.Default))
	}
	if ti.MaxLength != nil {
		el.Append(valElement("w:maxLength", strconv.Itoa(*ti.MaxLength)))
	}
	if ti.Format != "" {
		el.Append(valElement("w:format", ti.Format))
	}
	return el
}

func (cb *CheckboxData) xml() *Element {
	el := NewElement("w:checkBox")
	if cb.SizeAuto {
		el.Append(emptyElement("w:sizeAuto"))
	} else if cb.Size != nil {
		el.Append(valElement("w:size", strconv.Itoa(*cb.Size)))
	}
	if cb.Default != nil {
		el.Append(valElement("w:default", boolAttr(*cb.Default)))
	}
	if cb.Checked != nil {
		el.Append(valElement("w:checked", boolAttr(*cb.Checked)))
	}
	return el
}

func (dd *DropDownData) xml() *Element {
	el := NewElement("w:ddList")
	if dd.Selected != nil {
		el.Append(valElement("w:result", strconv.Itoa(*dd.Selected)))
	}
	if dd.Default != nil {
		el.Append(valElement("w:default", strconv.Itoa(*dd.Default)))
	}
	for _, entry := range dd.Entries {
		el.Append(valElement("w:listEntry", entry))
	}
	return el
}

func boolAttr(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
