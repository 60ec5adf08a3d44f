package wordml

import (
	"strconv"
	"time"
)

// RevisionType is the tracked-change kind. The constants carry the element
// local names used on the wire.
type RevisionType string

const (
	RevisionInsert         RevisionType = "ins"
	RevisionDelete         RevisionType = "del"
	RevisionPropertyChange RevisionType = "rPrChange"
)

// Revision wraps arbitrary content (runs, hyperlinks, field markers) with an
// author/date/change-type tag. ComplexField consumes revisions through the
// ResultRevision interface; it never inspects their encoding.
type Revision struct {
	Type    RevisionType
	Author  string
	Date    time.Time
	ID      int
	Content []*Element
}

// NewInsertRevision wraps content as a tracked insertion.
func NewInsertRevision(id int, author string, date time.Time, content ...*Element) *Revision {
	return &Revision{Type: RevisionInsert, Author: author, Date: date, ID: id, Content: content}
}

// NewDeleteRevision wraps content as a tracked deletion. Text children of
// wrapped runs are rewritten from w:t to w:delText, as the format requires
// for deleted content.
func NewDeleteRevision(id int, author string, date time.Time, content ...*Element) *Revision {
	wrapped := make([]*Element, len(content))
	for i, el := range content {
		wrapped[i] = toDeletedContent(el)
	}
	return &Revision{Type: RevisionDelete, Author: author, Date: date, ID: id, Content: wrapped}
}

func toDeletedContent(el *Element) *Element {
	out := el.Clone()
	renameDeletedText(out)
	return out
}

func renameDeletedText(el *Element) {
	if el.Name == "w:t" {
		el.Name = "w:delText"
	}
	for _, c := range el.Children {
		renameDeletedText(c)
	}
}

// XML builds the revision wrapper element, or nil when the revision has no
// type to serialize under.
func (rev *Revision) XML() *Element {
	if rev == nil || rev.Type == "" {
		return nil
	}
	el := NewElement("w:"+string(rev.Type),
		Attr{Name: "w:id", Value: strconv.Itoa(rev.ID)},
		Attr{Name: "w:author", Value: rev.Author},
		Attr{Name: "w:date", Value: rev.Date.UTC().Format("2006-01-02T15:04:05Z")},
	)
	for _, c := range rev.Content {
		el.Append(c)
	}
	return el
}

func (rev *Revision) elements() []*Element {
	if el := rev.XML(); el != nil {
		return []*Element{el}
	}
	return nil
}

