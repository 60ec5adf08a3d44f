package wordml

import (
	"bytes"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/antchfx/xmlquery"
)

// ParseDocument decodes a WordprocessingML document part into paragraphs.
// It reads the direct paragraph children of w:body.
func ParseDocument(r io.Reader) ([]*Paragraph, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, NewParseError("document", "malformed XML", err)
	}
	nodes, err := xmlquery.QueryAll(doc,
		"/*[local-name()='document']/*[local-name()='body']/*[local-name()='p']")
	if err != nil {
		return nil, NewParseError("body", "paragraph query failed", err)
	}
	paragraphs := make([]*Paragraph, 0, len(nodes))
	for _, n := range nodes {
		p, err := ParseParagraph(n)
		if err != nil {
			return nil, err
		}
		paragraphs = append(paragraphs, p)
	}
	return paragraphs, nil
}

// ParseParagraphXML decodes a single serialized <w:p> fragment. The fragment
// must declare the namespaces it uses.
func ParseParagraphXML(data []byte) (*Paragraph, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, NewParseError("p", "malformed XML", err)
	}
	node := firstElementNamed(doc, "p")
	if node == nil {
		return nil, NewParseError("p", "no paragraph element found", nil)
	}
	return ParseParagraph(node)
}

func firstElementNamed(n *xmlquery.Node, local string) *xmlquery.Node {
	if n.Type == xmlquery.ElementNode && n.Data == local {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := firstElementNamed(c, local); found != nil {
			return found
		}
	}
	return nil
}

// complexFieldFrame tracks one open complex field while reassembling the
// begin/instruction/separate/end run stream.
type complexFieldFrame struct {
	field      *ComplexField
	instr      strings.Builder
	inResult   bool
	resultSeen bool
	result     strings.Builder

	// resultFieldDepth counts open fields inside the result section. While
	// positive, children are captured verbatim as result content so their
	// position survives re-serialization.
	resultFieldDepth int
}

// startResultCapture switches the frame to verbatim result capture. Plain
// result text accumulated so far is flushed into result content first so
// ordering is kept.
func (fr *complexFieldFrame) startResultCapture() {
	if fr.resultSeen {
		run := NewElement("w:r")
		if rf := fr.field.ResultFormatting(); rf != nil {
			if rPr := rf.XML(); rPr != nil {
				run.Append(rPr)
			}
		}
		run.Append(textElement(fr.result.String()))
		fr.field.SetResultContent(append(fr.field.ResultContent(), run))
		fr.resultSeen = false
		fr.result.Reset()
	}
	fr.resultFieldDepth = 1
}

// ParseParagraph decodes a w:p element, reassembling complex fields from
// their marker runs. Paragraph children outside any open field become runs,
// simple fields, hyperlink spans or revisions; children inside one are
// routed to the innermost open field.
func ParseParagraph(n *xmlquery.Node) (*Paragraph, error) {
	p := NewParagraph()
	var stack []*complexFieldFrame
	var root *ComplexField

	finalize := func(fr *complexFieldFrame) {
		fr.field.SetInstruction(fr.instr.String())
		if fr.resultSeen {
			// SetResult flips the section on; the separator already did.
			fr.field.SetResult(fr.result.String())
		}
	}

	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != xmlquery.ElementNode {
			continue
		}
		var top *complexFieldFrame
		if len(stack) > 0 {
			top = stack[len(stack)-1]
		}

		if top != nil && top.resultFieldDepth > 0 {
			if child.Data == "r" {
				if marker := findChild(child, "fldChar"); marker != nil {
					kind, _ := attrValue(marker, "fldCharType")
					switch kind {
					case "begin":
						top.resultFieldDepth++
					case "end":
						top.resultFieldDepth--
					}
				}
			}
			top.field.SetResultContent(append(top.field.ResultContent(), elementFromNode(child)))
			continue
		}

		switch child.Data {
		case "pPr":
			if style := findChild(child, "pStyle"); style != nil {
				if val, ok := attrValue(style, "val"); ok {
					p.SetStyle(val)
				}
			}

		case "r":
			marker := findChild(child, "fldChar")
			switch {
			case marker != nil:
				kind, _ := attrValue(marker, "fldCharType")
				switch kind {
				case "begin":
					if top != nil && top.inResult {
						// A field opened inside a result section is not a
						// nested field: nested fields serialize before the
						// separator, which would move it on a round trip.
						// Keep it in place as opaque result content.
						top.startResultCapture()
						top.field.SetResultContent(append(top.field.ResultContent(), elementFromNode(child)))
						continue
					}
					field := NewComplexField("", nil)
					if ffData := findChild(marker, "ffData"); ffData != nil {
						field.SetFormField(parseFormFieldData(ffData))
					}
					if top != nil {
						top.field.AddNestedField(field)
					} else {
						root = field
					}
					stack = append(stack, &complexFieldFrame{field: field})
				case "separate":
					if top != nil {
						top.inResult = true
						top.field.SetHasResultSection(true)
					}
				case "end":
					if top == nil {
						return nil, NewParseError("r", "field end marker without matching begin", nil)
					}
					finalize(top)
					stack = stack[:len(stack)-1]
					if len(stack) == 0 {
						p.AddComplexField(root)
						root = nil
					}
				}
			case top == nil:
				run, err := ParseRun(child)
				if err != nil {
					return nil, err
				}
				p.AddRun(run)
			default:
				routeFieldRun(top, child)
			}

		case "fldSimple":
			field, err := ParseSimpleField(child)
			if err != nil {
				return nil, err
			}
			if top == nil {
				p.AddField(field)
			}
			// A fldSimple inside a complex field is not produced by this
			// model; drop it rather than guess.

		case "hyperlink":
			span := parseHyperlinkSpan(child)
			if top == nil {
				p.AddHyperlink(span)
			} else if top.inResult {
				top.field.SetResultContent(append(top.field.ResultContent(), elementFromNode(child)))
			}

		case "ins", "del":
			rev, err := ParseRevision(child)
			if err != nil {
				return nil, err
			}
			if top != nil && top.inResult {
				top.field.AddRevision(rev)
			} else if top == nil {
				p.AddRevision(rev)
			}

		default:
			if top != nil && top.inResult {
				top.field.SetResultContent(append(top.field.ResultContent(), elementFromNode(child)))
			}
			// Outside a field, unknown paragraph children (bookmarks, proof
			// errors) are not part of this model.
		}
	}

	// A paragraph can end with fields still open when the field spans
	// paragraphs; close what we have and mark the root accordingly.
	if len(stack) > 0 {
		for i := len(stack) - 1; i >= 0; i-- {
			finalize(stack[i])
		}
		root.SetMultiParagraph(true)
		p.AddComplexField(root)
	}
	return p, nil
}

// routeFieldRun feeds a non-marker run to the innermost open field: before
// the separator it contributes instruction text, after it result text or
// opaque result content.
func routeFieldRun(fr *complexFieldFrame, runNode *xmlquery.Node) {
	if instr := findChild(runNode, "instrText"); instr != nil && !fr.inResult {
		fr.instr.WriteString(instr.InnerText())
		if rPr := findChild(runNode, "rPr"); rPr != nil && fr.field.InstructionFormatting() == nil {
			fr.field.SetInstructionFormatting(ParseRunFormatting(rPr))
		}
		return
	}
	if !fr.inResult {
		return
	}
	if t := findChild(runNode, "t"); t != nil {
		if len(fr.field.ResultContent()) > 0 {
			// Once the result holds opaque content, later text runs are
			// captured verbatim too; splitting them back into the plain
			// result string would reorder the section.
			fr.field.SetResultContent(append(fr.field.ResultContent(), elementFromNode(runNode)))
			return
		}
		fr.resultSeen = true
		fr.result.WriteString(t.InnerText())
		if rPr := findChild(runNode, "rPr"); rPr != nil && fr.field.ResultFormatting() == nil {
			fr.field.SetResultFormatting(ParseRunFormatting(rPr))
		}
		return
	}
	// A result run with no text child is custom content (a picture, a
	// shape); keep it verbatim.
	fr.field.SetResultContent(append(fr.field.ResultContent(), elementFromNode(runNode)))
}

// ParseRun decodes a w:r element. A run without a w:t child keeps "no text"
// state so the serializer's diagnostic fires if it is re-emitted.
func ParseRun(n *xmlquery.Node) (*Run, error) {
	run := &Run{}
	if rPr := findChild(n, "rPr"); rPr != nil {
		run.format = *ParseRunFormatting(rPr)
	}
	var text strings.Builder
	found := false
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode && c.Data == "t" {
			found = true
			text.WriteString(c.InnerText())
		}
	}
	if found {
		run.SetText(text.String())
	}
	return run, nil
}

// ParseRunFormatting decodes a w:rPr element into a RunFormatting value.
// Child order is not enforced on input; only output ordering is normative.
func ParseRunFormatting(n *xmlquery.Node) *RunFormatting {
	f := &RunFormatting{}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != xmlquery.ElementNode {
			continue
		}
		switch c.Data {
		case "rStyle":
			f.Style, _ = attrValue(c, "val")
		case "rFonts":
			f.Fonts = parseFonts(c)
		case "bdr":
			f.Border = parseBorder(c)
		case "b":
			f.Bold = boolPtr(parseOnOff(c))
		case "bCs":
			f.BoldCS = boolPtr(parseOnOff(c))
		case "i":
			f.Italic = boolPtr(parseOnOff(c))
		case "iCs":
			f.ItalicCS = boolPtr(parseOnOff(c))
		case "caps":
			f.AllCaps = boolPtr(parseOnOff(c))
		case "smallCaps":
			f.SmallCaps = boolPtr(parseOnOff(c))
		case "shd":
			f.Shading = parseShading(c)
		case "em":
			f.Emphasis, _ = attrValue(c, "val")
		case "strike":
			f.Strike = boolPtr(parseOnOff(c))
		case "dstrike":
			f.DoubleStrike = boolPtr(parseOnOff(c))
		case "u":
			f.Underline = parseUnderline(c)
		case "spacing":
			f.Spacing = intAttr(c, "val")
		case "w":
			f.Scale = intAttr(c, "val")
		case "position":
			f.Position = intAttr(c, "val")
		case "kern":
			f.Kerning = intAttr(c, "val")
		case "lang":
			f.Language, _ = attrValue(c, "val")
		case "sz":
			if v, ok := attrValue(c, "val"); ok {
				if halfPoints, err := strconv.ParseFloat(v, 64); err == nil {
					points := halfPoints / 2
					f.Size = &points
				}
			}
		case "color":
			if v, ok := attrValue(c, "val"); ok {
				f.Color = v
				// External documents may carry lowercase or short hex;
				// canonicalize when it is hex at all ("auto" stays as-is).
				if normalized, err := NormalizeColor(v); err == nil {
					f.Color = normalized
				}
			}
		case "highlight":
			f.Highlight, _ = attrValue(c, "val")
		case "vertAlign":
			f.VertAlign, _ = attrValue(c, "val")
		}
	}
	return f
}

func parseFonts(n *xmlquery.Node) *Fonts {
	fonts := &Fonts{}
	fonts.ASCII, _ = attrValue(n, "ascii")
	fonts.HighAnsi, _ = attrValue(n, "hAnsi")
	fonts.EastAsia, _ = attrValue(n, "eastAsia")
	fonts.ComplexScript, _ = attrValue(n, "cs")
	fonts.Hint, _ = attrValue(n, "hint")
	fonts.ASCIITheme, _ = attrValue(n, "asciiTheme")
	fonts.HighAnsiTheme, _ = attrValue(n, "hAnsiTheme")
	fonts.EastAsiaTheme, _ = attrValue(n, "eastAsiaTheme")
	fonts.ComplexScriptTheme, _ = attrValue(n, "cstheme")
	return fonts
}

func parseBorder(n *xmlquery.Node) *Border {
	b := &Border{}
	b.Style, _ = attrValue(n, "val")
	if v := intAttr(n, "sz"); v != nil {
		b.Size = *v
	}
	if v := intAttr(n, "space"); v != nil {
		b.Space = *v
	}
	b.Color, _ = attrValue(n, "color")
	return b
}

func parseShading(n *xmlquery.Node) *Shading {
	s := &Shading{}
	s.Pattern, _ = attrValue(n, "val")
	s.Color, _ = attrValue(n, "color")
	s.Fill, _ = attrValue(n, "fill")
	return s
}

func parseUnderline(n *xmlquery.Node) *Underline {
	u := &Underline{}
	u.Style, _ = attrValue(n, "val")
	u.Color, _ = attrValue(n, "color")
	u.ThemeColor, _ = attrValue(n, "themeColor")
	u.ThemeTint, _ = attrValue(n, "themeTint")
	u.ThemeShade, _ = attrValue(n, "themeShade")
	return u
}

// ParseSimpleField decodes a w:fldSimple element. The placeholder run text
// is display-only state and is not retained; the instruction is.
func ParseSimpleField(n *xmlquery.Node) (*Field, error) {
	instr, ok := attrValue(n, "instr")
	if !ok {
		return nil, NewParseError("fldSimple", "missing w:instr attribute", nil)
	}
	opts := &FieldOptions{Instruction: instr}
	if run := findChild(n, "r"); run != nil {
		if rPr := findChild(run, "rPr"); rPr != nil {
			opts.Formatting = ParseRunFormatting(rPr)
		}
	}
	return NewField(inferFieldType(instr), opts), nil
}

// inferFieldType maps the leading instruction keyword to a known FieldType;
// unknown keywords come back as FieldCustom.
func inferFieldType(instruction string) FieldType {
	fields := strings.Fields(instruction)
	if len(fields) == 0 {
		return FieldCustom
	}
	keyword := FieldType(strings.ToUpper(fields[0]))
	switch keyword {
	case FieldPage, FieldNumPages, FieldDate, FieldTime, FieldAuthor, FieldTitle,
		FieldFileName, FieldSubject, FieldKeywords, FieldCreateDate, FieldSaveDate,
		FieldPrintDate, FieldSectionPages, FieldSection, FieldRef, FieldHyperlink,
		FieldSequence, FieldTOCEntry, FieldIndexEntry, FieldIf, FieldMergeField,
		FieldIncludeText:
		return keyword
	}
	return FieldCustom
}

// ParseRevision decodes a w:ins or w:del wrapper. Wrapped content is kept as
// an opaque element tree.
func ParseRevision(n *xmlquery.Node) (*Revision, error) {
	rev := &Revision{Type: RevisionType(n.Data)}
	if v, ok := attrValue(n, "id"); ok {
		if id, err := strconv.Atoi(v); err == nil {
			rev.ID = id
		}
	}
	rev.Author, _ = attrValue(n, "author")
	if v, ok := attrValue(n, "date"); ok {
		if date, err := time.Parse(time.RFC3339, v); err == nil {
			rev.Date = date
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			rev.Content = append(rev.Content, elementFromNode(c))
		}
	}
	return rev, nil
}

func parseHyperlinkSpan(n *xmlquery.Node) *HyperlinkSpan {
	span := &HyperlinkSpan{}
	span.RelID, _ = attrValue(n, "id")
	span.Anchor, _ = attrValue(n, "anchor")
	span.Tooltip, _ = attrValue(n, "tooltip")
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode && c.Data == "r" {
			if run, err := ParseRun(c); err == nil {
				span.Runs = append(span.Runs, run)
			}
		}
	}
	return span
}

func parseFormFieldData(n *xmlquery.Node) *FormFieldData {
	data := &FormFieldData{}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != xmlquery.ElementNode {
			continue
		}
		switch c.Data {
		case "name":
			data.Name, _ = attrValue(c, "val")
		case "enabled":
			data.Enabled = boolPtr(parseOnOff(c))
		case "calcOnExit":
			data.CalcOnExit = boolPtr(parseOnOff(c))
		case "entryMacro":
			data.EntryMacro, _ = attrValue(c, "val")
		case "exitMacro":
			data.ExitMacro, _ = attrValue(c, "val")
		case "helpText":
			data.HelpText, _ = attrValue(c, "val")
		case "statusText":
			data.StatusText, _ = attrValue(c, "val")
		case "textInput":
			data.TextInput = parseTextInput(c)
		case "checkBox":
			data.Checkbox = parseCheckbox(c)
		case "ddList":
			data.DropDown = parseDropDown(c)
		}
	}
	return data
}

func parseTextInput(n *xmlquery.Node) *TextInputData {
	ti := &TextInputData{}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != xmlquery.ElementNode {
			continue
		}
		switch c.Data {
		case "type":
			ti.Kind, _ = attrValue(c, "val")
		case "default":
			ti.Default, _ = attrValue(c, "val")
		case "maxLength":
			ti.MaxLength = intAttr(c, "val")
		case "format":
			ti.Format, _ = attrValue(c, "val")
		}
	}
	return ti
}

func parseCheckbox(n *xmlquery.Node) *CheckboxData {
	cb := &CheckboxData{}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != xmlquery.ElementNode {
			continue
		}
		switch c.Data {
		case "sizeAuto":
			cb.SizeAuto = true
		case "size":
			cb.Size = intAttr(c, "val")
		case "default":
			cb.Default = boolPtr(parseOnOff(c))
		case "checked":
			cb.Checked = boolPtr(parseOnOff(c))
		}
	}
	return cb
}

func parseDropDown(n *xmlquery.Node) *DropDownData {
	dd := &DropDownData{}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != xmlquery.ElementNode {
			continue
		}
		switch c.Data {
		case "result":
			dd.Selected = intAttr(c, "val")
		case "default":
			dd.Default = intAttr(c, "val")
		case "listEntry":
			if v, ok := attrValue(c, "val"); ok {
				dd.Entries = append(dd.Entries, v)
			}
		}
	}
	return dd
}

// parseOnOff reads the OOXML boolean element form: a missing w:val means
// true, "0"/"false"/"off" mean false.
func parseOnOff(n *xmlquery.Node) bool {
	v, ok := attrValue(n, "val")
	if !ok {
		return true
	}
	switch strings.ToLower(v) {
	case "0", "false", "off":
		return false
	}
	return true
}

func boolPtr(v bool) *bool {
	return &v
}

func intAttr(n *xmlquery.Node, local string) *int {
	v, ok := attrValue(n, local)
	if !ok {
		return nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &i
}

// attrValue returns an attribute by local name, ignoring its prefix.
func attrValue(n *xmlquery.Node, local string) (string, bool) {
	for _, a := range n.Attr {
		if a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// findChild returns the first child element with the given local name.
func findChild(n *xmlquery.Node, local string) *xmlquery.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode && c.Data == local {
			return c
		}
	}
	return nil
}

// elementFromNode converts a parsed node subtree back into the generic
// element form, reconstructing conventional prefixes for namespace URIs.
func elementFromNode(n *xmlquery.Node) *Element {
	name := n.Data
	if prefix := nodePrefix(n); prefix != "" {
		name = prefix + ":" + n.Data
	}
	el := NewElement(name)
	for _, a := range n.Attr {
		if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
			continue
		}
		attrName := a.Name.Local
		if a.Name.Space != "" {
			attrName = prefixForSpace(a.Name.Space) + ":" + a.Name.Local
		}
		el.SetAttr(attrName, a.Value)
	}
	hasElementChild := false
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			hasElementChild = true
			break
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case xmlquery.ElementNode:
			el.Append(elementFromNode(c))
		case xmlquery.TextNode:
			if hasElementChild {
				// Mixed content: keep the text in position as a text node
				// instead of folding it into Element.Text, which the writer
				// emits before all children.
				el.Append(&Element{Text: c.Data})
			} else {
				el.Text += c.Data
			}
		}
	}
	return el
}

func nodePrefix(n *xmlquery.Node) string {
	if n.Prefix != "" {
		return n.Prefix
	}
	if n.NamespaceURI != "" {
		return prefixForSpace(n.NamespaceURI)
	}
	return ""
}

// conventionalPrefixes maps the namespace URIs this model touches to their
// conventional prefixes, for reconstructing qualified names after parsing.
var conventionalPrefixes = map[string]string{
	"http://schemas.openxmlformats.org/wordprocessingml/2006/main":           "w",
	"http://schemas.openxmlformats.org/officeDocument/2006/relationships":    "r",
	"http://www.w3.org/XML/1998/namespace":                                   "xml",
	"http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing": "wp",
	"http://schemas.openxmlformats.org/drawingml/2006/main":                  "a",
	"http://schemas.openxmlformats.org/drawingml/2006/picture":               "pic",
	"http://schemas.openxmlformats.org/markup-compatibility/2006":            "mc",
	"urn:schemas-microsoft-com:vml":                                          "v",
	"urn:schemas-microsoft-com:office:office":                                "o",
	"urn:schemas-microsoft-com:office:word":                                  "w10",
}

// prefixForSpace resolves a namespace URI to its conventional prefix. A
// space that is not a known URI is assumed to already be a raw prefix from
// an undeclared namespace and is used as-is.
func prefixForSpace(space string) string {
	if prefix, ok := conventionalPrefixes[space]; ok {
		return prefix
	}
	return space
}
