// Package book assembles the text of an ePub into metadata, an ordered
// chapter list and summary statistics.
//
// The pipeline per document item is: raw XHTML -> markup.Text ->
// textnorm.Normalize -> length threshold -> Chapter. Everything derived
// from the chapters (full text, statistics) is recomputed on each call.
package book

import (
	"strings"
)

// ChapterSeparator joins chapter contents in FullText.
const ChapterSeparator = "\n\n"

// Book is the result of one extraction pass.
type Book struct {
	Metadata Metadata
	Chapters []Chapter

	// Skipped lists the document items that did not become chapters.
	Skipped []Skipped

	// Warnings carries the container's non-fatal parse warnings.
	Warnings []string
}

// FullText joins every chapter's content in order, separated by a blank line.
func (b *Book) FullText() string {
	parts := make([]string, len(b.Chapters))
	for i, ch := range b.Chapters {
		parts[i] = ch.Content
	}
	return strings.Join(parts, ChapterSeparator)
}

// Statistics sums the current chapters.
func (b *Book) Statistics() Statistics {
	return ComputeStatistics(b.Chapters)
}

// ComputeStatistics sums character and word counts over chapters.
func ComputeStatistics(chapters []Chapter) Statistics {
	st := Statistics{TotalChapters: len(chapters)}
	for _, ch := range chapters {
		st.TotalCharacters += ch.CharCount
		st.TotalWords += ch.WordCount
	}
	if st.TotalChapters > 0 {
		st.AvgChapterLength = st.TotalCharacters / st.TotalChapters
	}
	return st
}
