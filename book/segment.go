package book

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/simp-lee/epubtext/epub"
	"github.com/simp-lee/epubtext/markup"
	"github.com/simp-lee/epubtext/textnorm"
)

// Defaults for SegmentOptions.
const (
	DefaultMinChars            = 100
	DefaultTitleRunes          = 50
	DefaultFallbackTitlePrefix = "Chapter"
)

// SegmentOptions controls which fragments become chapters and how they are titled.
type SegmentOptions struct {
	// MinChars is the inclusive upper bound for discarding: a fragment
	// whose cleaned text has MinChars runes or fewer is dropped.
	MinChars int

	// TitleRunes is the maximum title length in runes.
	TitleRunes int

	// FallbackTitlePrefix names chapters whose first line is empty.
	FallbackTitlePrefix string

	// SkipNavDocument leaves the ePub 3 nav document (manifest property
	// "nav") out of the chapters. By default it is segmented like any
	// other document, so a long table of contents becomes chapter 1.
	SkipNavDocument bool
}

// DefaultSegmentOptions returns the standard thresholds.
func DefaultSegmentOptions() SegmentOptions {
	return SegmentOptions{
		MinChars:            DefaultMinChars,
		TitleRunes:          DefaultTitleRunes,
		FallbackTitlePrefix: DefaultFallbackTitlePrefix,
	}
}

// Segmenter turns document items into chapters.
type Segmenter struct {
	opts SegmentOptions
	log  *slog.Logger
}

// NewSegmenter returns a Segmenter. A nil logger uses slog.Default().
func NewSegmenter(opts SegmentOptions, logger *slog.Logger) *Segmenter {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.TitleRunes <= 0 {
		opts.TitleRunes = DefaultTitleRunes
	}
	if opts.FallbackTitlePrefix == "" {
		opts.FallbackTitlePrefix = DefaultFallbackTitlePrefix
	}
	return &Segmenter{opts: opts, log: logger}
}

// Segment walks items in order and returns the retained chapters together
// with every document item that was rejected. Items that are not
// epub.ItemDocument, and the nav document when SkipNavDocument is set, are
// ignored without being reported. The chapter slice is never nil.
func (s *Segmenter) Segment(items []epub.Item) ([]Chapter, []Skipped) {
	chapters := make([]Chapter, 0, len(items))
	var skipped []Skipped

	for _, it := range items {
		if it.Kind != epub.ItemDocument {
			continue
		}
		if s.opts.SkipNavDocument && it.HasProperty("nav") {
			s.log.Debug("skipping nav document", "item", it.Name)
			continue
		}

		raw, err := it.Content()
		if err != nil {
			s.log.Warn("skipping unreadable item", "item", it.Name, "err", err)
			skipped = append(skipped, Skipped{Name: it.Name, Reason: SkipUnreadable, Err: err})
			continue
		}
		text, err := markup.Text(raw)
		if err != nil {
			s.log.Warn("skipping item with unparseable markup", "item", it.Name, "err", err)
			skipped = append(skipped, Skipped{Name: it.Name, Reason: SkipMalformed, Err: err})
			continue
		}
		text = textnorm.Normalize(text)

		n := utf8.RuneCountInString(text)
		if n <= s.opts.MinChars {
			s.log.Debug("discarding short fragment", "item", it.Name, "chars", n)
			skipped = append(skipped, Skipped{Name: it.Name, Reason: SkipTooShort, Chars: n})
			continue
		}

		num := len(chapters) + 1
		ch := Chapter{
			Number:    num,
			Title:     DeriveTitle(text, num, s.opts.TitleRunes, s.opts.FallbackTitlePrefix),
			Filename:  it.Name,
			Content:   text,
			WordCount: n,
			CharCount: n,
		}
		s.log.Debug("chapter", "number", ch.Number, "item", it.Name, "chars", n)
		chapters = append(chapters, ch)
	}
	return chapters, skipped
}

// DeriveTitle returns the first line of text cut to maxRunes runes, with no
// ellipsis. When that line is empty the title is "<prefix> <number>".
func DeriveTitle(text string, number, maxRunes int, prefix string) string {
	line, _, _ := strings.Cut(text, "\n")
	if line == "" {
		return fmt.Sprintf("%s %d", prefix, number)
	}
	return truncateRunes(line, maxRunes)
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
