package wordml

import (
	"fmt"
	"strings"
	"time"
)

// FieldType identifies a field-code family. The set is open: unknown types
// serialize with an empty placeholder rather than erroring, so newer
// producers do not break older consumers.
type FieldType string

const (
	FieldPage         FieldType = "PAGE"
	FieldNumPages     FieldType = "NUMPAGES"
	FieldDate         FieldType = "DATE"
	FieldTime         FieldType = "TIME"
	FieldAuthor       FieldType = "AUTHOR"
	FieldTitle        FieldType = "TITLE"
	FieldFileName     FieldType = "FILENAME"
	FieldSubject      FieldType = "SUBJECT"
	FieldKeywords     FieldType = "KEYWORDS"
	FieldCreateDate   FieldType = "CREATEDATE"
	FieldSaveDate     FieldType = "SAVEDATE"
	FieldPrintDate    FieldType = "PRINTDATE"
	FieldSectionPages FieldType = "SECTIONPAGES"
	FieldSection      FieldType = "SECTION"
	FieldRef          FieldType = "REF"
	FieldHyperlink    FieldType = "HYPERLINK"
	FieldSequence     FieldType = "SEQ"
	FieldTOCEntry     FieldType = "TC"
	FieldIndexEntry   FieldType = "XE"
	FieldIf           FieldType = "IF"
	FieldMergeField   FieldType = "MERGEFIELD"
	FieldIncludeText  FieldType = "INCLUDETEXT"
	FieldCustom       FieldType = "CUSTOM"
)

// FieldOptions tunes generic field construction. All fields are optional.
type FieldOptions struct {
	// Instruction supplies the field code verbatim, skipping derivation.
	Instruction string
	// Argument is the type-specific first argument (bookmark name for REF,
	// sequence identifier for SEQ, entry text for TC/XE, ...).
	Argument string
	// DateFormat is the date/time picture appended as \@ "<fmt>" for
	// date-family fields. Defaults per type when empty.
	DateFormat string
	// Format is a caller-supplied format switch appended verbatim.
	Format string
	// NoPreserveFormat opts out of the default \* MERGEFORMAT switch.
	NoPreserveFormat bool
	// Formatting styles the placeholder result run.
	Formatting *RunFormatting
}

// Field is a simple field: a single <w:fldSimple> element carrying its
// instruction as an attribute and containing one placeholder run.
type Field struct {
	fieldType   FieldType
	instruction string
	format      *RunFormatting
	now         func() time.Time
}

// NewField creates a field of the given type. When no verbatim instruction
// is supplied the instruction is derived from the type and options.
func NewField(t FieldType, opts *FieldOptions) *Field {
	if opts == nil {
		opts = &FieldOptions{}
	}
	f := &Field{fieldType: t}
	if opts.Formatting != nil {
		f.format = opts.Formatting.Clone()
	}
	if opts.Instruction != "" {
		f.instruction = opts.Instruction
		return f
	}
	f.instruction = buildInstruction(t, opts)
	return f
}

// buildInstruction derives a field code from the type: the type keyword,
// an optional argument, a date picture for date-family types, then either
// the caller's format switch or the default preserve-formatting switch.
func buildInstruction(t FieldType, opts *FieldOptions) string {
	var b strings.Builder
	b.WriteString(string(t))
	if opts.Argument != "" {
		b.WriteString(" ")
		if strings.ContainsRune(opts.Argument, ' ') {
			b.WriteString(`"` + opts.Argument + `"`)
		} else {
			b.WriteString(opts.Argument)
		}
	}
	if isDateFieldType(t) {
		picture := opts.DateFormat
		if picture == "" {
			if t == FieldTime {
				picture = "h:mm am/pm"
			} else {
				picture = "M/d/yyyy"
			}
		}
		b.WriteString(` \@ "`)
		b.WriteString(picture)
		b.WriteString(`"`)
	}
	switch {
	case opts.Format != "":
		b.WriteString(" ")
		b.WriteString(opts.Format)
	case !opts.NoPreserveFormat:
		b.WriteString(` \* MERGEFORMAT`)
	}
	return b.String()
}

func isDateFieldType(t FieldType) bool {
	switch t {
	case FieldDate, FieldTime, FieldCreateDate, FieldSaveDate, FieldPrintDate:
		return true
	}
	return false
}

// NewPageField creates a current-page-number field.
func NewPageField(format *RunFormatting) *Field {
	return NewField(FieldPage, &FieldOptions{Formatting: format})
}

// NewNumPagesField creates a total-page-count field.
func NewNumPagesField(format *RunFormatting) *Field {
	return NewField(FieldNumPages, &FieldOptions{Formatting: format})
}

// NewDateField creates a current-date field with an optional date picture.
func NewDateField(dateFormat string, format *RunFormatting) *Field {
	return NewField(FieldDate, &FieldOptions{DateFormat: dateFormat, Formatting: format})
}

// NewTimeField creates a current-time field with an optional time picture.
func NewTimeField(dateFormat string, format *RunFormatting) *Field {
	return NewField(FieldTime, &FieldOptions{DateFormat: dateFormat, Formatting: format})
}

// NewAuthorField creates a document-author field.
func NewAuthorField(format *RunFormatting) *Field {
	return NewField(FieldAuthor, &FieldOptions{Formatting: format})
}

// NewTitleField creates a document-title field.
func NewTitleField(format *RunFormatting) *Field {
	return NewField(FieldTitle, &FieldOptions{Formatting: format})
}

// NewFileNameField creates a file-name field; includePath adds the \p switch
// so the full path is shown.
func NewFileNameField(includePath bool, format *RunFormatting) *Field {
	opts := &FieldOptions{Formatting: format}
	if includePath {
		opts.Format = `\p \* MERGEFORMAT`
	}
	return NewField(FieldFileName, opts)
}

// NewSectionField creates a current-section-number field.
func NewSectionField(format *RunFormatting) *Field {
	return NewField(FieldSection, &FieldOptions{Formatting: format})
}

// NewSectionPagesField creates a pages-in-section field.
func NewSectionPagesField(format *RunFormatting) *Field {
	return NewField(FieldSectionPages, &FieldOptions{Formatting: format})
}

// NewRefField creates a cross-reference to a bookmark. The reference
// defaults to hyperlink behavior (\h).
func NewRefField(bookmark string, format *RunFormatting) *Field {
	return NewField(FieldRef, &FieldOptions{
		Argument:   bookmark,
		Format:     `\h \* MERGEFORMAT`,
		Formatting: format,
	})
}

// NewHyperlinkField creates a HYPERLINK field with an optional tooltip.
func NewHyperlinkField(url, tooltip string, format *RunFormatting) *Field {
	return NewField(FieldHyperlink, &FieldOptions{
		Instruction: BuildHyperlinkInstruction(url, tooltip),
		Formatting:  format,
	})
}

// NewSequenceField creates a SEQ field for the named sequence; numbering
// defaults to Arabic.
func NewSequenceField(identifier string, format *RunFormatting) *Field {
	return NewField(FieldSequence, &FieldOptions{
		Argument:   identifier,
		Format:     `\* ARABIC`,
		Formatting: format,
	})
}

// NewTOCEntryField creates a TC (table-of-contents entry) field. Level must
// be within 1-9.
func NewTOCEntryField(text string, level int, format *RunFormatting) (*Field, error) {
	if level < 1 || level > 9 {
		return nil, NewFieldError("TC", fmt.Sprintf("level %d out of range 1-9", level))
	}
	return NewField(FieldTOCEntry, &FieldOptions{
		Instruction: fmt.Sprintf(`TC "%s" \l %d`, text, level),
		Formatting:  format,
	}), nil
}

// NewIndexEntryField creates an XE (index entry) field.
func NewIndexEntryField(text string, format *RunFormatting) *Field {
	return NewField(FieldIndexEntry, &FieldOptions{
		Instruction: fmt.Sprintf(`XE "%s"`, text),
		Formatting:  format,
	})
}

// NewMergeField creates a MERGEFIELD for the named data column.
func NewMergeField(name string, format *RunFormatting) *Field {
	return NewField(FieldMergeField, &FieldOptions{Argument: name, Formatting: format})
}

// NewCustomField creates a field with a verbatim instruction.
func NewCustomField(instruction string, format *RunFormatting) *Field {
	return NewField(FieldCustom, &FieldOptions{Instruction: instruction, Formatting: format})
}

// Type returns the field's type.
func (f *Field) Type() FieldType {
	return f.fieldType
}

// Instruction returns the field code.
func (f *Field) Instruction() string {
	return f.instruction
}

// SetInstruction replaces the field code. This is the only mutation the
// instruction allows after construction.
func (f *Field) SetInstruction(instruction string) *Field {
	f.instruction = instruction
	return f
}

// Formatting returns the placeholder run formatting, or nil.
func (f *Field) Formatting() *RunFormatting {
	return f.format
}

// SetFormatting replaces the placeholder run formatting.
func (f *Field) SetFormatting(format *RunFormatting) *Field {
	f.format = format.Clone()
	return f
}

// WithClock injects the time source used for date/time placeholders. A nil
// clock falls back to time.Now. Serialization is deterministic under an
// injected clock.
func (f *Field) WithClock(now func() time.Time) *Field {
	f.now = now
	return f
}

// IsHyperlinkField reports whether this is a HYPERLINK field, either by
// type or by instruction prefix. Both paths matter: the instruction may
// have been set directly on a CUSTOM field.
func (f *Field) IsHyperlinkField() bool {
	if f.fieldType == FieldHyperlink {
		return true
	}
	trimmed := strings.TrimSpace(f.instruction)
	return len(trimmed) >= len("HYPERLINK") &&
		strings.EqualFold(trimmed[:len("HYPERLINK")], "HYPERLINK")
}

// XML builds <w:fldSimple w:instr="..."> containing one placeholder run.
// The field element contains the run, not the other way around.
func (f *Field) XML() *Element {
	el := NewElement("w:fldSimple", Attr{Name: "w:instr", Value: f.instruction})
	run := NewElement("w:r")
	if f.format != nil {
		if rPr := f.format.XML(); rPr != nil {
			run.Append(rPr)
		}
	}
	run.Append(textElement(f.placeholder()))
	el.Append(run)
	return el
}

func (f *Field) elements() []*Element {
	return []*Element{f.XML()}
}

// placeholder produces the display text shown before the host application
// recalculates the field. It is never the true computed value.
func (f *Field) placeholder() string {
	switch f.fieldType {
	case FieldPage, FieldNumPages, FieldSection, FieldSectionPages, FieldSequence:
		return "1"
	case FieldDate, FieldCreateDate, FieldSaveDate, FieldPrintDate:
		return f.clock()().Format("1/2/2006")
	case FieldTime:
		return f.clock()().Format("3:04 PM")
	default:
		// Hidden entry fields (TC, XE) and everything unknown show nothing.
		return ""
	}
}

func (f *Field) clock() func() time.Time {
	if f.now != nil {
		return f.now
	}
	return time.Now
}
