// Package wordml is an object model and bidirectional serializer for the
// OOXML WordprocessingML dialect (ECMA-376): the XML inside a .docx file.
//
// The model covers text runs with character formatting, simple and complex
// field constructs (page numbers, cross-references, hyperlinks, TOC, form
// fields) and tracked-change wrapping of field results. Serialization
// honors the strict child ordering WordprocessingML consumers require, and
// parsing reconstructs model objects so that a parse of serialized output
// is semantically equivalent to the original, including distinctions the
// format leaves ambiguous, such as "field with an empty result" versus
// "field that never had a result section".
//
// # Building content
//
//	run := wordml.NewRun("Total pages: ").SetBold(true)
//	para := wordml.NewParagraph().
//	    AddRun(run).
//	    AddField(wordml.NewNumPagesField(nil))
//
//	doc := wordml.NewDocumentWriter()
//	doc.AddParagraph(para)
//
//	f, _ := os.Create("out.docx")
//	defer f.Close()
//	doc.WriteTo(f)
//
// # Complex fields
//
// A complex field is a begin/instruction/separator/result/end marker
// sequence spanning several runs. Its result section is independent of the
// result text: a field that was never updated has no separator at all,
// which is not the same document as a field whose result happens to be
// empty.
//
//	toc := wordml.NewTOCField(nil)
//	field := wordml.NewComplexField(` PAGE \* MERGEFORMAT `, nil)
//	field.SetResult("14")
//
// # Reading
//
//	r, _ := wordml.OpenFile("in.docx")
//	paragraphs, _ := r.Paragraphs()
//
// All XML() methods are pure: they read current state and allocate a fresh
// element tree, so they are safe to call repeatedly and from concurrent
// readers. Setters are not synchronized; serialize writes externally.
package wordml
