package epub

import (
	"bytes"
	"strings"
	"testing"
)

func TestFindFileInsensitive(t *testing.T) {
	zr := buildTestZip(t, map[string]string{
		"META-INF/container.xml": "<container/>",
		"OEBPS/content.opf":      "<package/>",
		"File.txt":               "exact",
		"file.txt":               "lower",
	})

	tests := []struct {
		lookup string
		want   string
	}{
		{"META-INF/container.xml", "META-INF/container.xml"},
		{"meta-inf/CONTAINER.XML", "META-INF/container.xml"},
		{"oebps/Content.OPF", "OEBPS/content.opf"},
		{"File.txt", "File.txt"},
		{"file.txt", "file.txt"},
		{"missing.txt", ""},
		{"", ""},
	}
	for _, tt := range tests {
		got := findFileInsensitive(zr, tt.lookup)
		var name string
		if got != nil {
			name = got.Name
		}
		if name != tt.want {
			t.Errorf("findFileInsensitive(%q) = %q, want %q", tt.lookup, name, tt.want)
		}
	}
}

func TestResolveRelativePath(t *testing.T) {
	tests := []struct {
		base, href, want string
	}{
		{"OEBPS/content.opf", "text/ch01.xhtml", "OEBPS/text/ch01.xhtml"},
		{"OEBPS/content.opf", "./styles/main.css", "OEBPS/styles/main.css"},
		{"OEBPS/content.opf", "../images/cover.jpg", "images/cover.jpg"},
		{"content.opf", "ch01.xhtml", "ch01.xhtml"},
		{"a/b/c/d.opf", "../../e/f.html", "a/e/f.html"},
		{"OEBPS/content.opf", "Text/chapter%201.xhtml", "OEBPS/Text/chapter 1.xhtml"},
		{"OEBPS/content.opf", "第一章.xhtml", "OEBPS/第一章.xhtml"},
		{"OEBPS/content.opf", "../../../secret.txt", ""},
		{"OEBPS/content.opf", "/etc/passwd", ""},
	}
	for _, tt := range tests {
		if got := resolveRelativePath(tt.base, tt.href); got != tt.want {
			t.Errorf("resolveRelativePath(%q, %q) = %q, want %q", tt.base, tt.href, got, tt.want)
		}
	}
}

func TestIsSafePath(t *testing.T) {
	tests := []struct {
		path string
		safe bool
	}{
		{"OEBPS/content.opf", true},
		{"mimetype", true},
		{".", true},
		{"..", false},
		{"../etc/passwd", false},
		{"a/../../etc/passwd", false},
		{"OEBPS/../../secret", false},
		{"/etc/passwd", false},
	}
	for _, tt := range tests {
		if got := isSafePath(tt.path); got != tt.safe {
			t.Errorf("isSafePath(%q) = %v, want %v", tt.path, got, tt.safe)
		}
	}
}

func TestStripBOM(t *testing.T) {
	tests := []struct {
		in, want []byte
	}{
		{[]byte("\xEF\xBB\xBFhello"), []byte("hello")},
		{[]byte("hello"), []byte("hello")},
		{[]byte("\xEF\xBB\xBF"), []byte{}},
		{[]byte{0xEF, 0xBB}, []byte{0xEF, 0xBB}},
		{[]byte("a\xEF\xBB\xBFb"), []byte("a\xEF\xBB\xBFb")},
	}
	for _, tt := range tests {
		if got := stripBOM(tt.in); !bytes.Equal(got, tt.want) {
			t.Errorf("stripBOM(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestReadZipFile(t *testing.T) {
	zr := buildTestZip(t, map[string]string{
		"OEBPS/ch01.xhtml": "<p>hello</p>",
		"empty.txt":        "",
	})
	for name, want := range map[string]string{"OEBPS/ch01.xhtml": "<p>hello</p>", "empty.txt": ""} {
		got, err := readZipFile(findFileInsensitive(zr, name))
		if err != nil {
			t.Fatalf("readZipFile(%q) error = %v", name, err)
		}
		if string(got) != want {
			t.Errorf("readZipFile(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestReadZipFileWithLimit(t *testing.T) {
	zr := buildTestZip(t, map[string]string{"big.txt": strings.Repeat("A", 200)})
	f := findFileInsensitive(zr, "big.txt")

	if _, err := readZipFileWithLimit(f, 100); err == nil || !strings.Contains(err.Error(), "too large") {
		t.Errorf("readZipFileWithLimit(100) error = %v, want too large", err)
	}
	if got, err := readZipFileWithLimit(f, 200); err != nil || len(got) != 200 {
		t.Errorf("readZipFileWithLimit(200) = %d bytes, %v; want 200 bytes", len(got), err)
	}
}
