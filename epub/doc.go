// Package epub opens ePub 2 and ePub 3 packages and exposes their contents
// as an ordered list of typed items plus Dublin Core metadata.
//
// # Opening an ePub
//
// Use [Open] to open a file by path, or [NewReader] to read from an [io.ReaderAt]:
//
//	book, err := epub.Open("book.epub")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer book.Close()
//
// # Items
//
// [Book.Items] returns every manifest entry in manifest order; [Book.SpineItems]
// returns the reading order. Each [Item] carries a [ItemKind] derived from its
// media type, so callers can pick out XHTML documents and ignore stylesheets,
// images and fonts. Content is read lazily:
//
//	for _, it := range book.Items() {
//	    if it.Kind != epub.ItemDocument {
//	        continue
//	    }
//	    raw, err := it.Content()
//	    ...
//	}
//
// # Metadata
//
// [Book.Metadata] returns the full [Metadata]; [Book.Lookup] answers a single
// field and reports whether the package declared it:
//
//	title, ok := book.Lookup(epub.FieldTitle)
//
// # Errors
//
//   - [ErrDRMProtected] – the package is DRM encrypted
//   - [ErrInvalidEPub] – no package document could be located
//   - [ErrInvalidItem] – an Item has no content source
//   - [ErrFileNotFound] – a requested path is not in the archive
//
// Problems that do not prevent reading (wrong mimetype entry, dangling spine
// references, obfuscated fonts) are reported by [Book.Warnings].
package epub
