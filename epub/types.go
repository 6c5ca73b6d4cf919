package epub

// Metadata holds the Dublin Core values extracted from the OPF package document.
type Metadata struct {
	// Version is the ePub specification version (e.g., "2.0", "3.0").
	Version string

	// Title is the first non-empty dc:title in document order. Lookup of
	// FieldTitle returns it regardless of display-seq.
	Title string

	// Titles contains all dc:title values, ordered by ePub 3 display-seq
	// when any title carries one.
	Titles []string

	// Authors contains all dc:creator entries with their roles and file-as values.
	Authors []Author

	// Language contains all dc:language values (BCP 47 tags, e.g., "en", "zh-TW").
	Language []string

	// Identifiers contains the dc:identifier values (ISBN, UUID, URI, ...).
	Identifiers []string

	// Publisher is the first non-empty dc:publisher value.
	Publisher string

	// Date is the first non-empty dc:date value, unparsed.
	Date string

	// Description is the first non-empty dc:description value.
	Description string

	// Subjects contains all dc:subject values.
	Subjects []string

	// Rights is the first non-empty dc:rights value.
	Rights string
}

// Author represents a dc:creator entry.
type Author struct {
	// Name is the display name (dc:creator text content).
	Name string

	// FileAs is the sort form, from opf:file-as or a refining meta.
	FileAs string

	// Role is the MARC relator code (e.g., "aut", "trl"), when declared.
	Role string
}

// Field names a single metadata value that can be looked up with Book.Lookup.
type Field int

// Supported metadata fields.
const (
	FieldTitle Field = iota
	FieldCreator
	FieldLanguage
	FieldPublisher
	FieldIdentifier
	FieldDate
	FieldDescription
	FieldSubject
	FieldRights
)

var fieldNames = [...]string{
	FieldTitle:       "title",
	FieldCreator:     "creator",
	FieldLanguage:    "language",
	FieldPublisher:   "publisher",
	FieldIdentifier:  "identifier",
	FieldDate:        "date",
	FieldDescription: "description",
	FieldSubject:     "subject",
	FieldRights:      "rights",
}

func (f Field) String() string {
	if f < 0 || int(f) >= len(fieldNames) {
		return "unknown"
	}
	return fieldNames[f]
}

// ItemKind classifies a manifest item by what it holds.
type ItemKind int

// Item kinds. ItemDocument is the only kind that carries readable text.
const (
	ItemUnknown ItemKind = iota
	ItemDocument
	ItemNavigation
	ItemStyle
	ItemScript
	ItemImage
	ItemCover
	ItemFont
	ItemAudio
	ItemVideo
)

var itemKindNames = [...]string{
	ItemUnknown:    "unknown",
	ItemDocument:   "document",
	ItemNavigation: "navigation",
	ItemStyle:      "style",
	ItemScript:     "script",
	ItemImage:      "image",
	ItemCover:      "cover",
	ItemFont:       "font",
	ItemAudio:      "audio",
	ItemVideo:      "video",
}

func (k ItemKind) String() string {
	if k < 0 || int(k) >= len(itemKindNames) {
		return "unknown"
	}
	return itemKindNames[k]
}

// Item is one named resource listed in the package manifest.
// Content is read lazily from the archive, or served from memory for items
// built with NewItem.
type Item struct {
	// ID is the manifest item ID.
	ID string

	// Name is the percent-decoded manifest href, relative to the OPF
	// document. A malformed escape leaves the href as written.
	Name string

	// Path is the ZIP-internal path of the resource.
	Path string

	// MediaType is the declared MIME type.
	MediaType string

	// Kind is derived from MediaType and the manifest properties.
	Kind ItemKind

	// Properties holds the ePub 3 manifest properties (e.g., "nav", "cover-image").
	Properties []string

	// Linear is false for spine items marked linear="no". Items that are not
	// in the spine report true.
	Linear bool

	book bookReader
	data []byte
}

// bookReader is the lazy-loading hook an Item uses to fetch its bytes.
type bookReader interface {
	readFile(path string) ([]byte, error)
}

// spineItem represents an <itemref> resolved against the manifest.
type spineItem struct {
	IDRef  string
	Linear bool
}
