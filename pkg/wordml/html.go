package wordml

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// htmlState is the formatting accumulated from enclosing inline tags while
// walking an HTML fragment.
type htmlState struct {
	bold      bool
	italic    bool
	underline bool
	strike    bool
	vertAlign string
}

func (s htmlState) formatting() *RunFormatting {
	f := &RunFormatting{}
	if s.bold {
		f.Bold = boolPtr(true)
	}
	if s.italic {
		f.Italic = boolPtr(true)
	}
	if s.underline {
		f.Underline = &Underline{Style: "single"}
	}
	if s.strike {
		f.Strike = boolPtr(true)
	}
	f.VertAlign = s.vertAlign
	return f
}

func (s htmlState) equal(o htmlState) bool {
	return s == o
}

// RunsFromHTML converts an inline HTML fragment into formatted runs.
// Supported tags: b/strong, i/em, u, s/strike/del, sub, sup, br (becomes a
// space), span and any unknown tag pass their content through. Adjacent text
// with identical formatting merges into one run.
func RunsFromHTML(fragment string) ([]*Run, error) {
	container := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), container)
	if err != nil {
		return nil, NewParseError("html", "malformed HTML fragment", err)
	}

	var runs []*Run
	var lastState *htmlState
	emit := func(text string, state htmlState) {
		if text == "" {
			return
		}
		if lastState != nil && lastState.equal(state) && len(runs) > 0 {
			last := runs[len(runs)-1]
			last.SetText(last.Text() + text)
			return
		}
		runs = append(runs, NewFormattedRun(text, state.formatting()))
		s := state
		lastState = &s
	}

	var walk func(n *html.Node, state htmlState)
	walk = func(n *html.Node, state htmlState) {
		switch n.Type {
		case html.TextNode:
			emit(collapseWhitespace(n.Data), state)
			return
		case html.ElementNode:
			switch n.DataAtom {
			case atom.B, atom.Strong:
				state.bold = true
			case atom.I, atom.Em:
				state.italic = true
			case atom.U:
				state.underline = true
			case atom.S, atom.Strike, atom.Del:
				state.strike = true
			case atom.Sub:
				state.vertAlign = VertAlignSubscript
			case atom.Sup:
				state.vertAlign = VertAlignSuperscript
			case atom.Br:
				emit(" ", state)
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, state)
		}
	}
	for _, n := range nodes {
		walk(n, htmlState{})
	}
	return runs, nil
}

// collapseWhitespace folds runs of HTML whitespace into single spaces,
// keeping one leading/trailing space so words separated across tags stay
// separated.
func collapseWhitespace(s string) string {
	if s == "" {
		return ""
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return " "
	}
	out := strings.Join(words, " ")
	if isHTMLSpace(s[0]) {
		out = " " + out
	}
	if isHTMLSpace(s[len(s)-1]) {
		out += " "
	}
	return out
}

func isHTMLSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}
