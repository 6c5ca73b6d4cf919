package epub

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

// benchFiles builds an ePub with n chapters of a few paragraphs each.
func benchFiles(n int) map[string]string {
	var manifest, spine strings.Builder
	extra := make(map[string]string, n)
	para := "<p>" + strings.Repeat("The quick brown fox jumps over the lazy dog. ", 20) + "</p>"
	for i := 1; i <= n; i++ {
		href := fmt.Sprintf("chapter%03d.xhtml", i)
		fmt.Fprintf(&manifest, `<item id="ch%d" href="%s" media-type="application/xhtml+xml"/>`+"\n", i, href)
		fmt.Fprintf(&spine, `<itemref idref="ch%d"/>`+"\n", i)
		extra["OEBPS/"+href] = xhtml(fmt.Sprintf("Chapter %d", i), "<h1>Chapter</h1>"+strings.Repeat(para, 5))
	}
	opf := `<?xml version="1.0" encoding="UTF-8"?>
<package xmlns="http://www.idpf.org/2007/opf" version="2.0">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
    <dc:title>Benchmark Book</dc:title>
    <dc:creator>John Doe</dc:creator>
    <dc:language>en</dc:language>
  </metadata>
  <manifest>
` + manifest.String() + `  </manifest>
  <spine>
` + spine.String() + `  </spine>
</package>`
	return packageFiles(opf, extra)
}

func BenchmarkNewReader(b *testing.B) {
	data := writeTestZip(b, benchFiles(50))
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		book, err := NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			b.Fatal(err)
		}
		book.Close()
	}
}

func BenchmarkDocumentContent(b *testing.B) {
	data := writeTestZip(b, benchFiles(50))
	book, err := NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		b.Fatal(err)
	}
	defer book.Close()
	docs := book.ItemsOfKind(ItemDocument)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, it := range docs {
			if _, err := it.Content(); err != nil {
				b.Fatal(err)
			}
		}
	}
}
