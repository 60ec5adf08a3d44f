package wordml

import (
	"strings"
)

// Hyperlink holds the components parsed out of a HYPERLINK field
// instruction. URL is the full target: base URL combined with the internal
// anchor when both are present.
type Hyperlink struct {
	URL     string
	Anchor  string
	Tooltip string
}

// BuildHyperlinkInstruction builds a HYPERLINK field instruction for the
// given target, with an optional tooltip switch.
func BuildHyperlinkInstruction(url, tooltip string) string {
	var b strings.Builder
	b.WriteString(`HYPERLINK "`)
	b.WriteString(url)
	b.WriteString(`"`)
	if tooltip != "" {
		b.WriteString(` \o "`)
		b.WriteString(tooltip)
		b.WriteString(`"`)
	}
	b.WriteString(` \* MERGEFORMAT`)
	return b.String()
}

// ParseHyperlinkInstruction parses a HYPERLINK field instruction into its
// components. It returns nil, false when the instruction is not a HYPERLINK
// field. Grammar: HYPERLINK ["<url>"] [\l "<anchor>"] [\o "<tooltip>"],
// remaining switches ignored.
func ParseHyperlinkInstruction(instruction string) (*Hyperlink, bool) {
	rest := strings.TrimSpace(instruction)
	if len(rest) < len("HYPERLINK") || !strings.EqualFold(rest[:len("HYPERLINK")], "HYPERLINK") {
		return nil, false
	}
	rest = strings.TrimSpace(rest[len("HYPERLINK"):])

	link := &Hyperlink{}
	var base string

	// Optional bare quoted target before any switch.
	if strings.HasPrefix(rest, `"`) {
		base, rest = readQuoted(rest)
	}

	for rest != "" {
		if !strings.HasPrefix(rest, `\`) {
			// Skip a stray token.
			if i := strings.IndexByte(rest, ' '); i >= 0 {
				rest = strings.TrimSpace(rest[i+1:])
				continue
			}
			break
		}
		// A bare trailing backslash has no switch letter; end of input.
		if len(rest) < 2 {
			break
		}
		sw := rest[1:2]
		rest = strings.TrimSpace(rest[2:])
		var arg string
		if strings.HasPrefix(rest, `"`) {
			arg, rest = readQuoted(rest)
		} else if !strings.HasPrefix(rest, `\`) {
			if i := strings.IndexByte(rest, ' '); i >= 0 {
				arg, rest = rest[:i], strings.TrimSpace(rest[i+1:])
			} else {
				arg, rest = rest, ""
			}
		}
		switch sw {
		case "l", "L":
			link.Anchor = arg
		case "o", "O":
			link.Tooltip = arg
		}
	}

	link.URL = base
	if link.Anchor != "" {
		if base != "" {
			link.URL = base + "#" + link.Anchor
		} else {
			link.URL = "#" + link.Anchor
		}
	}
	return link, true
}

// readQuoted consumes a leading double-quoted token and returns its content
// and the trimmed remainder.
func readQuoted(s string) (string, string) {
	s = s[1:] // opening quote
	if i := strings.IndexByte(s, '"'); i >= 0 {
		return s[:i], strings.TrimSpace(s[i+1:])
	}
	return s, ""
}

// HyperlinkSpan is a paragraph-level hyperlink wrapper (<w:hyperlink>)
// around one or more runs. RelID targets an external relationship; Anchor
// targets a bookmark inside the document.
type HyperlinkSpan struct {
	RelID   string
	Anchor  string
	Tooltip string
	Runs    []*Run
}

// XML builds the <w:hyperlink> element containing the span's runs.
func (h *HyperlinkSpan) XML() *Element {
	el := NewElement("w:hyperlink")
	if h.RelID != "" {
		el.SetAttr("r:id", h.RelID)
	}
	if h.Anchor != "" {
		el.SetAttr("w:anchor", h.Anchor)
	}
	if h.Tooltip != "" {
		el.SetAttr("w:tooltip", h.Tooltip)
	}
	el.SetAttr("w:history", "1")
	for _, r := range h.Runs {
		el.Append(r.XML())
	}
	return el
}

func (h *HyperlinkSpan) elements() []*Element {
	return []*Element{h.XML()}
}
