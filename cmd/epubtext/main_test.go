package main

import (
	"archive/zip"
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/simp-lee/epubtext/book"
	"github.com/simp-lee/epubtext/export"
	"github.com/simp-lee/epubtext/internal/config"
)

// writeEPub writes a one-chapter ePub to dir and returns its path.
func writeEPub(t *testing.T, dir string) string {
	t.Helper()
	files := []struct{ name, body string }{
		{"mimetype", "application/epub+zip"},
		{"META-INF/container.xml", `<?xml version="1.0"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles><rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/></rootfiles>
</container>`},
		{"OEBPS/content.opf", `<?xml version="1.0" encoding="UTF-8"?>
<package xmlns="http://www.idpf.org/2007/opf" version="3.0">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
    <dc:title>高效原力</dc:title>
    <dc:creator>王小明</dc:creator>
  </metadata>
  <manifest>
    <item id="c1" href="ch1.xhtml" media-type="application/xhtml+xml"/>
  </manifest>
  <spine><itemref idref="c1"/></spine>
</package>`},
		{"OEBPS/ch1.xhtml", `<html xmlns="http://www.w3.org/1999/xhtml"><body><h1>第一章</h1><p>` +
			strings.Repeat("一", 150) + `</p></body></html>`},
	}

	path := filepath.Join(dir, "sample.epub")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	for _, file := range files {
		w, err := zw.Create(file.name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(file.body)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

// testConfig points the defaults at input and a fresh output directory.
func testConfig(t *testing.T, input string) config.FileConfig {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	cfg := config.Default()
	cfg.Input = input
	cfg.OutputDir = filepath.Join(t.TempDir(), "output")
	return cfg
}

func TestRun_WritesBothOutputs(t *testing.T) {
	cfg := testConfig(t, writeEPub(t, t.TempDir()))
	var stdout, stderr bytes.Buffer

	if err := run(cfg, &stdout, &stderr); err != nil {
		t.Fatalf("run() error = %v\nstderr:\n%s", err, stderr.String())
	}
	text, err := os.ReadFile(cfg.TextPath())
	if err != nil {
		t.Fatalf("read text output: %v", err)
	}
	if !strings.HasPrefix(string(text), "書名: 高效原力\n作者: 王小明\n") {
		t.Errorf("text output starts %q", text[:min(len(text), 40)])
	}
	doc, err := export.ReadJSON(cfg.JSONPath())
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if len(doc.Chapters) != 1 {
		t.Errorf("JSON chapters = %d, want 1", len(doc.Chapters))
	}
	if !strings.Contains(stdout.String(), cfg.TextPath()) {
		t.Errorf("report does not name %s:\n%s", cfg.TextPath(), stdout.String())
	}
}

func TestRun_LoadFailureWritesNothing(t *testing.T) {
	cfg := testConfig(t, filepath.Join(t.TempDir(), "missing.epub"))
	var stdout, stderr bytes.Buffer

	err := run(cfg, &stdout, &stderr)
	if !errors.Is(err, book.ErrLoad) {
		t.Fatalf("run() error = %v, want ErrLoad", err)
	}
	if _, statErr := os.Stat(cfg.OutputDir); !errors.Is(statErr, os.ErrNotExist) {
		t.Errorf("output directory exists after load failure (stat err = %v)", statErr)
	}
	if stderr.Len() == 0 {
		t.Error("load failure was not logged")
	}
}

func TestRun_ExportsAreIndependent(t *testing.T) {
	input := writeEPub(t, t.TempDir())

	t.Run("json target is a directory", func(t *testing.T) {
		cfg := testConfig(t, input)
		if err := os.MkdirAll(cfg.JSONPath(), 0o755); err != nil {
			t.Fatal(err)
		}
		var stdout, stderr bytes.Buffer

		if err := run(cfg, &stdout, &stderr); !errors.Is(err, errExport) {
			t.Fatalf("run() error = %v, want errExport", err)
		}
		text, err := os.ReadFile(cfg.TextPath())
		if err != nil {
			t.Fatalf("text output missing after JSON failure: %v", err)
		}
		if !strings.HasPrefix(string(text), "書名: ") {
			t.Errorf("text output starts %q", text[:min(len(text), 40)])
		}
	})

	t.Run("text target is a directory", func(t *testing.T) {
		cfg := testConfig(t, input)
		if err := os.MkdirAll(cfg.TextPath(), 0o755); err != nil {
			t.Fatal(err)
		}
		var stdout, stderr bytes.Buffer

		if err := run(cfg, &stdout, &stderr); !errors.Is(err, errExport) {
			t.Fatalf("run() error = %v, want errExport", err)
		}
		if _, err := export.ReadJSON(cfg.JSONPath()); err != nil {
			t.Fatalf("JSON output missing after text failure: %v", err)
		}
	})
}

func TestRun_UnknownOrder(t *testing.T) {
	cfg := testConfig(t, writeEPub(t, t.TempDir()))
	cfg.Order = "toc"
	var stdout, stderr bytes.Buffer

	if err := run(cfg, &stdout, &stderr); !errors.Is(err, book.ErrUnknownOrder) {
		t.Fatalf("run() error = %v, want ErrUnknownOrder", err)
	}
	if _, err := os.Stat(cfg.OutputDir); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("output directory created for an invalid order")
	}
}
