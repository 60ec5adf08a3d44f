package wordml

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorPredicates(t *testing.T) {
	colorErr := NewColorError("zzz")
	fieldErr := NewFieldError("TC", "level out of range")
	parseErr := NewParseError("r", "bad marker", nil)

	tests := []struct {
		name  string
		err   error
		check func(error) bool
		want  bool
	}{
		{"color error matches", colorErr, IsColorError, true},
		{"color error is not field error", colorErr, IsFieldError, false},
		{"field error matches", fieldErr, IsFieldError, true},
		{"parse error matches", parseErr, IsParseError, true},
		{"plain error matches nothing", errors.New("x"), IsParseError, false},
		{"nil matches nothing", nil, IsColorError, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.check(tt.err); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseErrorUnwrap(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := NewParseError("document", "malformed XML", cause)
	if !errors.Is(err, cause) {
		t.Error("ParseError did not unwrap to its cause")
	}
	msg := err.Error()
	if want := "parse error in <document>: malformed XML: unexpected EOF"; msg != want {
		t.Errorf("got %q, want %q", msg, want)
	}
}

func TestErrorMessages(t *testing.T) {
	if got := NewColorError("red").Error(); got != `invalid color "red": expected 3- or 6-digit hex, with or without '#'` {
		t.Errorf("unexpected color error message: %q", got)
	}
	if got := NewFieldError("TC", "level 12 out of range 1-9").Error(); got != "field error in TC: level 12 out of range 1-9" {
		t.Errorf("unexpected field error message: %q", got)
	}
	if got := fmt.Sprint(NewParseError("", "no document element", nil)); got != "parse error: no document element" {
		t.Errorf("unexpected parse error message: %q", got)
	}
}
