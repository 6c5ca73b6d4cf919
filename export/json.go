package export

import (
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"

	"github.com/simp-lee/epubtext/book"
)

// jsonAPI mirrors encoding/json semantics but leaves <, > and & unescaped,
// so text content is stored as written.
var jsonAPI = jsoniter.Config{
	EscapeHTML:             false,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()

// Indent is the per-level indentation of the structured record.
const Indent = "  "

// Document is the structured record written by WriteJSON.
type Document struct {
	Metadata   book.Metadata   `json:"metadata"`
	Statistics book.Statistics `json:"statistics"`
	Chapters   []book.Chapter  `json:"chapters"`
}

// NewDocument snapshots b. Statistics are computed from b's chapters at
// call time; an empty chapter list encodes as [] rather than null.
func NewDocument(b *book.Book) Document {
	chapters := b.Chapters
	if chapters == nil {
		chapters = []book.Chapter{}
	}
	return Document{
		Metadata:   b.Metadata,
		Statistics: b.Statistics(),
		Chapters:   chapters,
	}
}

// WriteJSON writes {metadata, statistics, chapters} with two-space
// indentation. Non-ASCII text is written literally.
func WriteJSON(path string, b *book.Book) error {
	if b == nil {
		return ErrNilBook
	}
	doc := NewDocument(b)
	return writeAtomic(path, func(w io.Writer) error {
		return EncodeJSON(w, doc)
	})
}

// EncodeJSON writes doc to w in the WriteJSON format.
func EncodeJSON(w io.Writer, doc Document) error {
	enc := jsonAPI.NewEncoder(w)
	enc.SetIndent("", Indent)
	enc.SetEscapeHTML(false)
	return enc.Encode(doc)
}

// ReadJSON loads a record written by WriteJSON.
func ReadJSON(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("export: read %s: %w", path, err)
	}
	var doc Document
	if err := jsonAPI.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("export: decode %s: %w", path, err)
	}
	return &doc, nil
}
