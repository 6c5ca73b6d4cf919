package epub

import (
	"archive/zip"
	"fmt"
	"io"
	"net/url"
	"strings"
)

// expectedMimetype is the required content of the "mimetype" file in a valid ePub.
const expectedMimetype = "application/epub+zip"

// Book is an opened ePub package. Use Open or NewReader to create one.
//
// A Book is not safe for concurrent use by multiple goroutines.
type Book struct {
	zip      *zip.Reader
	zipExact map[string]*zip.File // exact-match ZIP file index
	zipLower map[string]*zip.File // lowercase ZIP file index
	closer   io.Closer            // non-nil only when created via Open()
	opfPath  string
	items    []Item         // manifest order
	itemByID map[string]int // manifest ID -> index into items
	spine    []spineItem
	metadata Metadata
	warnings []string
}

// Open opens an ePub file at the given path.
// The caller must call Close when done reading from the book.
func Open(path string) (*Book, error) {
	zrc, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("epub: open %s: %w", path, err)
	}

	b, err := initBook(&zrc.Reader, zrc)
	if err != nil {
		zrc.Close()
		return nil, err
	}
	return b, nil
}

// NewReader creates a Book from an io.ReaderAt with the given size.
// The caller is responsible for the lifetime of r; Close only cleans
// up internal state.
func NewReader(r io.ReaderAt, size int64) (*Book, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("epub: open zip: %w", err)
	}

	return initBook(zr, nil)
}

// initBook indexes the archive, locates and parses the OPF, rejects DRM
// and builds the manifest item list.
func initBook(zr *zip.Reader, closer io.Closer) (*Book, error) {
	b := &Book{
		zip:    zr,
		closer: closer,
	}
	b.indexZip()
	b.checkMimetype()

	opfPath, err := parseContainer(zr)
	if err != nil {
		return nil, err
	}
	b.opfPath = opfPath

	obfuscated, err := checkDRM(zr)
	if err != nil {
		return nil, err
	}
	if obfuscated {
		b.warnings = append(b.warnings, "font obfuscation detected")
	}

	opfFile := b.findFile(opfPath)
	if opfFile == nil {
		return nil, fmt.Errorf("epub: OPF file not found in archive: %s: %w", opfPath, ErrInvalidEPub)
	}
	opfData, err := readZipFile(opfFile)
	if err != nil {
		return nil, fmt.Errorf("epub: read OPF file: %w", err)
	}
	pkg, err := parseOPF(opfData)
	if err != nil {
		return nil, err
	}

	b.metadata = extractMetadata(pkg)
	b.items, b.itemByID = b.buildItems(pkg.Manifest)
	b.spine = buildSpine(pkg.Spine)
	for _, si := range b.spine {
		if _, ok := b.itemByID[si.IDRef]; !ok {
			b.warnings = append(b.warnings, fmt.Sprintf("spine references unknown manifest item %q", si.IDRef))
		}
	}
	return b, nil
}

// checkMimetype records a warning when the first entry is not a
// "mimetype" file holding "application/epub+zip". It never fails.
func (b *Book) checkMimetype() {
	if len(b.zip.File) == 0 {
		b.warnings = append(b.warnings, "empty ZIP archive; mimetype entry missing")
		return
	}
	first := b.zip.File[0]
	if first.Name != "mimetype" {
		b.warnings = append(b.warnings, "first ZIP entry is not \"mimetype\"")
		return
	}
	data, err := readZipFile(first)
	if err != nil {
		b.warnings = append(b.warnings, fmt.Sprintf("cannot read mimetype entry: %v", err))
		return
	}
	if got := strings.TrimSpace(string(data)); got != expectedMimetype {
		b.warnings = append(b.warnings, fmt.Sprintf("unexpected mimetype: %q", got))
	}
}

// buildItems converts the raw manifest into Items, keeping manifest order.
// Duplicate IDs keep the first entry.
func (b *Book) buildItems(m opfManifest) ([]Item, map[string]int) {
	items := make([]Item, 0, len(m.Items))
	byID := make(map[string]int, len(m.Items))
	for _, raw := range m.Items {
		if _, dup := byID[raw.ID]; dup && raw.ID != "" {
			b.warnings = append(b.warnings, fmt.Sprintf("duplicate manifest id %q", raw.ID))
			continue
		}
		props := strings.Fields(raw.Properties)
		name, err := url.PathUnescape(raw.Href)
		if err != nil {
			name = raw.Href
		}
		it := Item{
			ID:         raw.ID,
			Name:       name,
			Path:       b.resolveOPFPath(raw.Href),
			MediaType:  raw.MediaType,
			Kind:       kindOf(raw.MediaType, props),
			Properties: props,
			Linear:     true,
			book:       b,
		}
		if raw.ID != "" {
			byID[raw.ID] = len(items)
		}
		items = append(items, it)
	}
	return items, byID
}

// Close releases resources held by the Book. When the Book was created via
// Open, Close closes the underlying file. Close is idempotent.
func (b *Book) Close() error {
	if b.closer != nil {
		err := b.closer.Close()
		b.closer = nil
		return err
	}
	return nil
}

// ReadFile reads a file from the archive by its ZIP-internal path.
// The lookup falls back to a case-insensitive match.
func (b *Book) ReadFile(name string) ([]byte, error) {
	f := b.findFile(name)
	if f == nil {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, name)
	}
	return readZipFile(f)
}

func (b *Book) readFile(name string) ([]byte, error) {
	return b.ReadFile(name)
}

func (b *Book) indexZip() {
	b.zipExact = make(map[string]*zip.File, len(b.zip.File))
	b.zipLower = make(map[string]*zip.File, len(b.zip.File))
	for _, f := range b.zip.File {
		if _, ok := b.zipExact[f.Name]; !ok {
			b.zipExact[f.Name] = f
		}
		lower := strings.ToLower(f.Name)
		if _, ok := b.zipLower[lower]; !ok {
			b.zipLower[lower] = f
		}
	}
}

func (b *Book) findFile(name string) *zip.File {
	if f, ok := b.zipExact[name]; ok {
		return f
	}
	if f, ok := b.zipLower[strings.ToLower(name)]; ok {
		return f
	}
	return nil
}

// resolveOPFPath resolves a manifest href against the OPF directory.
// Percent-encoded hrefs are decoded; hrefs escaping the archive root are
// kept as written so the read fails with ErrFileNotFound.
func (b *Book) resolveOPFPath(href string) string {
	if href == "" {
		return ""
	}
	if resolved := resolveRelativePath(b.opfPath, href); resolved != "" {
		return resolved
	}
	return href
}

// Items returns every manifest item in manifest order.
func (b *Book) Items() []Item {
	return append([]Item(nil), b.items...)
}

// SpineItems returns the items referenced by the spine, in reading order.
// Non-linear items are included with Linear set to false. Spine entries
// that reference unknown manifest IDs are dropped (and reported by Warnings).
func (b *Book) SpineItems() []Item {
	out := make([]Item, 0, len(b.spine))
	for _, si := range b.spine {
		idx, ok := b.itemByID[si.IDRef]
		if !ok {
			continue
		}
		it := b.items[idx]
		it.Linear = si.Linear
		out = append(out, it)
	}
	return out
}

// ItemsOfKind returns the manifest items of the given kind, in manifest order.
func (b *Book) ItemsOfKind(k ItemKind) []Item {
	var out []Item
	for _, it := range b.items {
		if it.Kind == k {
			out = append(out, it)
		}
	}
	return out
}

// Metadata returns the extracted metadata.
func (b *Book) Metadata() Metadata {
	return copyMetadata(b.metadata)
}

// Lookup returns the first non-empty value of a metadata field.
// The boolean is false when the package does not declare the field.
func (b *Book) Lookup(f Field) (string, bool) {
	return b.metadata.lookup(f)
}

// Warnings returns the non-fatal problems found while opening the package.
func (b *Book) Warnings() []string {
	return append([]string(nil), b.warnings...)
}

func copyMetadata(in Metadata) Metadata {
	out := in
	out.Titles = append([]string(nil), in.Titles...)
	out.Authors = append([]Author(nil), in.Authors...)
	out.Language = append([]string(nil), in.Language...)
	out.Identifiers = append([]string(nil), in.Identifiers...)
	out.Subjects = append([]string(nil), in.Subjects...)
	return out
}
