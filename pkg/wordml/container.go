package wordml

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const (
	wordprocessingMLNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	relationshipsNamespace    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	packageRelsNamespace      = "http://schemas.openxmlformats.org/package/2006/relationships"

	hyperlinkRelationType = relationshipsNamespace + "/hyperlink"
	imageRelationType     = relationshipsNamespace + "/image"
	documentRelationType  = relationshipsNamespace + "/officeDocument"
)

// Relationship is one entry of a package relationships part.
type Relationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr,omitempty"`
}

// Relationships is the collection of relationships of one part.
type Relationships struct {
	XMLName      xml.Name       `xml:"Relationships"`
	Namespace    string         `xml:"xmlns,attr"`
	Relationship []Relationship `xml:"Relationship"`
}

// Reader opens the zip container of a .docx file and exposes the parts this
// model consumes.
type Reader struct {
	reader *zip.Reader
	parts  map[string]*zip.File
}

// NewReader reads a .docx container from r.
func NewReader(r io.ReaderAt, size int64) (*Reader, error) {
	zipReader, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to read zip container: %w", err)
	}

	dr := &Reader{
		reader: zipReader,
		parts:  make(map[string]*zip.File),
	}
	for _, file := range zipReader.File {
		dr.parts[file.Name] = file
	}
	if _, ok := dr.parts["word/document.xml"]; !ok {
		return nil, fmt.Errorf("not a valid DOCX file: missing word/document.xml")
	}
	return dr, nil
}

// OpenFile opens a .docx file from disk.
func OpenFile(path string) (*Reader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return NewReader(bytes.NewReader(data), int64(len(data)))
}

// Part returns the raw content of a named package part.
func (dr *Reader) Part(name string) ([]byte, error) {
	file, ok := dr.parts[name]
	if !ok {
		return nil, fmt.Errorf("part %s not found", name)
	}
	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open part %s: %w", name, err)
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// DocumentXML returns the main document part.
func (dr *Reader) DocumentXML() ([]byte, error) {
	return dr.Part("word/document.xml")
}

// Relationships returns the main document's relationships, or an empty list
// when the part is absent.
func (dr *Reader) Relationships() ([]Relationship, error) {
	data, err := dr.Part("word/_rels/document.xml.rels")
	if err != nil {
		return nil, nil
	}
	var rels Relationships
	if err := xml.Unmarshal(data, &rels); err != nil {
		return nil, fmt.Errorf("failed to parse relationships: %w", err)
	}
	return rels.Relationship, nil
}

// Paragraphs parses the main document part into the object model.
func (dr *Reader) Paragraphs() ([]*Paragraph, error) {
	data, err := dr.DocumentXML()
	if err != nil {
		return nil, err
	}
	return ParseDocument(bytes.NewReader(data))
}

// DocumentWriter assembles paragraphs and relationships and writes a minimal
// valid .docx container.
type DocumentWriter struct {
	paragraphs []*Paragraph
	rels       []Relationship
}

// NewDocumentWriter creates an empty document writer.
func NewDocumentWriter() *DocumentWriter {
	return &DocumentWriter{}
}

// AddParagraph appends a paragraph to the document body.
func (w *DocumentWriter) AddParagraph(p *Paragraph) *DocumentWriter {
	if p != nil {
		w.paragraphs = append(w.paragraphs, p)
	}
	return w
}

// AddHyperlinkRelationship registers an external hyperlink target and
// returns the relationship ID to put on the w:hyperlink element.
func (w *DocumentWriter) AddHyperlinkRelationship(url string) string {
	rel := Relationship{
		ID:         w.nextRelationshipID(),
		Type:       hyperlinkRelationType,
		Target:     url,
		TargetMode: "External",
	}
	w.rels = append(w.rels, rel)
	return rel.ID
}

// AddImageRelationship registers an embedded image part target and returns
// the relationship ID for r:id references.
func (w *DocumentWriter) AddImageRelationship(target string) string {
	rel := Relationship{
		ID:     w.nextRelationshipID(),
		Type:   imageRelationType,
		Target: target,
	}
	w.rels = append(w.rels, rel)
	return rel.ID
}

// nextRelationshipID allocates the next free rIdN.
func (w *DocumentWriter) nextRelationshipID() string {
	maxID := 0
	for _, rel := range w.rels {
		if strings.HasPrefix(rel.ID, "rId") {
			if num, err := strconv.Atoi(strings.TrimPrefix(rel.ID, "rId")); err == nil && num > maxID {
				maxID = num
			}
		}
	}
	return fmt.Sprintf("rId%d", maxID+1)
}

// DocumentXML renders the main document part.
func (w *DocumentWriter) DocumentXML() string {
	doc := NewElement("w:document",
		Attr{Name: "xmlns:w", Value: wordprocessingMLNamespace},
		Attr{Name: "xmlns:r", Value: relationshipsNamespace},
	)
	body := NewElement("w:body")
	for _, p := range w.paragraphs {
		body.Append(p.XML())
	}
	doc.Append(body)
	return xml.Header + doc.String()
}

// WriteTo writes the assembled .docx container.
func (w *DocumentWriter) WriteTo(out io.Writer) (int64, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", packageRelsXML},
		{"word/_rels/document.xml.rels", w.relationshipsXML()},
		{"word/document.xml", w.DocumentXML()},
	}
	for _, part := range parts {
		f, err := zw.Create(part.name)
		if err != nil {
			return 0, fmt.Errorf("failed to create part %s: %w", part.name, err)
		}
		if _, err := f.Write([]byte(part.content)); err != nil {
			return 0, fmt.Errorf("failed to write part %s: %w", part.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return 0, fmt.Errorf("failed to finalize container: %w", err)
	}
	return buf.WriteTo(out)
}

func (w *DocumentWriter) relationshipsXML() string {
	rels := Relationships{
		Namespace:    packageRelsNamespace,
		Relationship: w.rels,
	}
	data, err := xml.Marshal(rels)
	if err != nil {
		// Relationships are plain strings; marshaling cannot fail on them.
		return xml.Header + `<Relationships xmlns="` + packageRelsNamespace + `"/>`
	}
	return xml.Header + string(data)
}

const contentTypesXML = xml.Header +
	`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`</Types>`

const packageRelsXML = xml.Header +
	`<Relationships xmlns="` + packageRelsNamespace + `">` +
	`<Relationship Id="rId1" Type="` + documentRelationType + `" Target="word/document.xml"/>` +
	`</Relationships>`
