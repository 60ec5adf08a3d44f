package wordml

import (
	"fmt"
)

// ColorError reports a color value that is not 3- or 6-digit hex.
type ColorError struct {
	Value string
}

func (e *ColorError) Error() string {
	return fmt.Sprintf("invalid color %q: expected 3- or 6-digit hex, with or without '#'", e.Value)
}

// NewColorError creates a color validation error.
func NewColorError(value string) error {
	return &ColorError{Value: value}
}

// FieldError reports invalid field construction input, such as a TOC entry
// level outside the 1-9 range.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field error in %s: %s", e.Field, e.Message)
}

// NewFieldError creates a field construction error.
func NewFieldError(field, message string) error {
	return &FieldError{Field: field, Message: message}
}

// ParseError reports a failure while decoding WordprocessingML back into
// model objects. Element names the XML element being decoded when known.
type ParseError struct {
	Element string
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	switch {
	case e.Element != "" && e.Cause != nil:
		return fmt.Sprintf("parse error in <%s>: %s: %v", e.Element, e.Message, e.Cause)
	case e.Element != "":
		return fmt.Sprintf("parse error in <%s>: %s", e.Element, e.Message)
	case e.Cause != nil:
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// NewParseError creates a parse error with element context.
func NewParseError(element, message string, cause error) error {
	return &ParseError{Element: element, Message: message, Cause: cause}
}

// IsColorError checks if an error is a color validation error.
func IsColorError(err error) bool {
	_, ok := err.(*ColorError)
	return ok
}

// IsFieldError checks if an error is a field construction error.
func IsFieldError(err error) bool {
	_, ok := err.(*FieldError)
	return ok
}

// IsParseError checks if an error is a decode error.
func IsParseError(err error) bool {
	_, ok := err.(*ParseError)
	return ok
}
