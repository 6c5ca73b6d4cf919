package epub

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// validContainerXML points at OEBPS/content.opf.
const validContainerXML = `<?xml version="1.0" encoding="UTF-8"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>`

// writeTestZip writes files into a ZIP archive. The "mimetype" entry, when
// present, is written first; the rest follow in name order so archives are
// reproducible.
func writeTestZip(t testing.TB, files map[string]string) []byte {
	t.Helper()
	names := make([]string, 0, len(files))
	for name := range files {
		if name != "mimetype" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	if _, ok := files["mimetype"]; ok {
		names = append([]string{"mimetype"}, names...)
	}

	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)
	for _, name := range names {
		fw, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if _, err := io.WriteString(fw, files[name]); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip writer: %v", err)
	}
	return buf.Bytes()
}

// buildTestZip returns a *zip.Reader over an in-memory archive.
func buildTestZip(t testing.TB, files map[string]string) *zip.Reader {
	t.Helper()
	data := writeTestZip(t, files)
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("open zip reader: %v", err)
	}
	return zr
}

// buildTestEPubFile writes an archive to a temp file and returns its path.
func buildTestEPubFile(t testing.TB, files map[string]string) string {
	t.Helper()
	fp := filepath.Join(t.TempDir(), "test.epub")
	if err := os.WriteFile(fp, writeTestZip(t, files), 0o644); err != nil {
		t.Fatalf("write epub: %v", err)
	}
	return fp
}

// openTestBook opens files as a Book through NewReader.
func openTestBook(t testing.TB, files map[string]string) *Book {
	t.Helper()
	data := writeTestZip(t, files)
	b, err := NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	t.Cleanup(func() { b.Close() })
	return b
}

// packageFiles returns a complete archive around the given OPF, with the
// package document at OEBPS/content.opf. extra entries are added as-is.
func packageFiles(opf string, extra map[string]string) map[string]string {
	files := map[string]string{
		"mimetype":               "application/epub+zip",
		"META-INF/container.xml": validContainerXML,
		"OEBPS/content.opf":      opf,
	}
	for k, v := range extra {
		files[k] = v
	}
	return files
}

// xhtml wraps body in a minimal XHTML document.
func xhtml(title, body string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<html xmlns="http://www.w3.org/1999/xhtml"><head><title>` + title + `</title></head><body>` + body + `</body></html>`
}
