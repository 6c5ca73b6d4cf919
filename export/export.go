// Package export writes an extracted book to disk as plain text and as a
// structured JSON record.
//
// Both writers replace the target atomically: output goes to a temporary
// file in the same directory which is renamed over the target only after a
// successful write and sync. A failed export leaves any previous file in
// place and no partial file behind.
package export

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/simp-lee/epubtext/book"
)

// ErrNilBook is returned when a writer is handed no book.
var ErrNilBook = errors.New("export: nil book")

// Labels and rule used in the plain-text header.
const (
	TitleLabel  = "書名"
	AuthorLabel = "作者"
	RuleWidth   = 50
)

// WriteText writes the plain-text rendition:
//
//	書名: <title>
//	作者: <author>
//	==================================================
//
//	<full text>
func WriteText(path string, b *book.Book) error {
	if b == nil {
		return ErrNilBook
	}
	return writeAtomic(path, func(w io.Writer) error {
		return RenderText(w, b)
	})
}

// RenderText writes the plain-text rendition of b to w.
func RenderText(w io.Writer, b *book.Book) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s: %s\n", TitleLabel, b.Metadata.Title)
	fmt.Fprintf(bw, "%s: %s\n", AuthorLabel, b.Metadata.Author)
	bw.WriteString(strings.Repeat("=", RuleWidth))
	bw.WriteString("\n\n")
	bw.WriteString(b.FullText())
	return bw.Flush()
}

// writeAtomic streams output into a temp file next to path and renames it
// into place. The temp file is removed on every failure path.
func writeAtomic(path string, write func(io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("export: create temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if err = write(tmp); err != nil {
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("export: sync %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("export: close %s: %w", path, err)
	}
	// CreateTemp uses 0600; outputs are meant to be shared.
	if err = os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("export: chmod %s: %w", path, err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("export: replace %s: %w", path, err)
	}
	return nil
}
