package book

// Unknown is substituted for every metadata field the package does not declare.
const Unknown = "Unknown"

// Metadata describes the source book. Each field is filled independently;
// a missing field never prevents the others from being read.
type Metadata struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	Language  string `json:"language"`
	Publisher string `json:"publisher"`

	// Filename is the base name of the input file.
	Filename string `json:"filename"`
}

// Chapter is a document item that survived segmentation.
type Chapter struct {
	// Number is the 1-based position among retained chapters.
	Number int `json:"number"`

	// Title is the first line of Content, cut to the configured rune count,
	// or a synthetic "Chapter N" when that line is empty.
	Title string `json:"title"`

	// Filename is the name of the originating document item.
	Filename string `json:"filename"`

	// Content is the normalized text.
	Content string `json:"content"`

	// WordCount equals CharCount: text is not tokenized into words, and
	// for CJK content a character is the natural unit anyway.
	WordCount int `json:"word_count"`

	// CharCount is the length of Content in Unicode code points.
	CharCount int `json:"char_count"`
}

// Statistics summarises a chapter sequence.
type Statistics struct {
	TotalChapters   int `json:"total_chapters"`
	TotalCharacters int `json:"total_characters"`
	TotalWords      int `json:"total_words"`

	// AvgChapterLength is TotalCharacters / TotalChapters, truncated,
	// and 0 when there are no chapters.
	AvgChapterLength int `json:"avg_chapter_length"`
}

// SkipReason says why a textual item did not become a chapter.
type SkipReason string

// Skip reasons.
const (
	SkipTooShort   SkipReason = "too short"
	SkipUnreadable SkipReason = "unreadable"
	SkipMalformed  SkipReason = "malformed markup"
)

// Skipped records a document item that was considered and rejected.
type Skipped struct {
	Name   string
	Reason SkipReason

	// Chars is the cleaned length for SkipTooShort, otherwise 0.
	Chars int

	// Err is set for SkipUnreadable and SkipMalformed.
	Err error
}
