package book

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/simp-lee/epubtext/epub"
)

// ErrLoad wraps every failure to open the input package.
var ErrLoad = errors.New("book: load failed")

// ErrUnknownOrder is returned by ParseOrder.
var ErrUnknownOrder = errors.New("book: unknown item order")

// Container is the view of an opened package the pipeline needs:
// ordered items and single-field metadata lookups. *epub.Book satisfies it.
type Container interface {
	Items() []epub.Item
	Lookup(f epub.Field) (string, bool)
}

// spineContainer is implemented by containers that know their reading order.
type spineContainer interface {
	SpineItems() []epub.Item
}

// Order selects the sequence in which document items are segmented.
type Order string

// Supported orders.
const (
	// OrderManifest follows the package manifest.
	OrderManifest Order = "manifest"
	// OrderSpine follows the spine (reading order).
	OrderSpine Order = "spine"
)

// ParseOrder accepts "manifest" or "spine", case-insensitively. The empty
// string means OrderManifest.
func ParseOrder(s string) (Order, error) {
	switch o := Order(strings.ToLower(strings.TrimSpace(s))); o {
	case "", OrderManifest:
		return OrderManifest, nil
	case OrderSpine:
		return OrderSpine, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOrder, s)
}

// Options configures an Extractor.
type Options struct {
	Order   Order
	Segment SegmentOptions
}

// DefaultOptions returns manifest order with the default segment options.
func DefaultOptions() Options {
	return Options{Order: OrderManifest, Segment: DefaultSegmentOptions()}
}

// Extractor runs the extraction pipeline over one package at a time.
type Extractor struct {
	opts Options
	log  *slog.Logger
}

// NewExtractor returns an Extractor. A nil logger uses slog.Default().
func NewExtractor(opts Options, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{opts: opts, log: logger}
}

// Open loads the package at path. Any failure is wrapped with ErrLoad and
// keeps the underlying cause (for example epub.ErrDRMProtected).
func (e *Extractor) Open(path string) (*epub.Book, error) {
	b, err := epub.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	for _, w := range b.Warnings() {
		e.log.Warn("epub warning", "file", filepath.Base(path), "warning", w)
	}
	e.log.Info("loaded epub", "file", filepath.Base(path), "items", len(b.Items()))
	return b, nil
}

// ExtractMetadata reads title, author, language and publisher, each
// defaulting to Unknown on its own.
func (e *Extractor) ExtractMetadata(c Container, path string) Metadata {
	field := func(f epub.Field) string {
		if v, ok := c.Lookup(f); ok {
			return v
		}
		e.log.Debug("metadata field missing", "field", f.String())
		return Unknown
	}
	md := Metadata{
		Title:     field(epub.FieldTitle),
		Author:    field(epub.FieldCreator),
		Language:  field(epub.FieldLanguage),
		Publisher: field(epub.FieldPublisher),
		Filename:  filepath.Base(path),
	}
	e.log.Info("metadata", "title", md.Title, "author", md.Author, "language", md.Language, "publisher", md.Publisher)
	return md
}

// ExtractChapters segments the container's document items in the
// configured order. Spine order falls back to manifest order when the
// container does not expose a spine.
func (e *Extractor) ExtractChapters(c Container) ([]Chapter, []Skipped) {
	items := c.Items()
	if e.opts.Order == OrderSpine {
		if sc, ok := c.(spineContainer); ok {
			items = sc.SpineItems()
		} else {
			e.log.Warn("container has no spine; using manifest order")
		}
	}

	chapters, skipped := NewSegmenter(e.opts.Segment, e.log).Segment(items)
	e.log.Info("extracted chapters", "chapters", len(chapters), "skipped", len(skipped))
	return chapters, skipped
}

// Extract runs the whole pipeline for the package at path. The only error
// it returns is a load failure; per-item problems end up in Book.Skipped.
func (e *Extractor) Extract(path string) (*Book, error) {
	pkg, err := e.Open(path)
	if err != nil {
		return nil, err
	}
	defer pkg.Close()

	b := &Book{
		Metadata: e.ExtractMetadata(pkg, path),
		Warnings: pkg.Warnings(),
	}
	b.Chapters, b.Skipped = e.ExtractChapters(pkg)
	return b, nil
}
