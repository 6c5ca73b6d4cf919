// Command epubtext extracts the readable text of an ePub into a plain-text
// file and a structured JSON record.
//
// It takes no arguments. Settings come from epubtext.yaml in the working
// directory when present, otherwise from built-in defaults.
package main

import (
	"errors"
	"io"
	"log"
	"os"

	"github.com/simp-lee/epubtext/book"
	"github.com/simp-lee/epubtext/export"
	"github.com/simp-lee/epubtext/internal/config"
	"github.com/simp-lee/epubtext/internal/logging"
	"github.com/simp-lee/epubtext/internal/report"
)

func main() {
	cfg, err := config.LoadOrDefault(config.ConfigPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := run(cfg, os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

var errExport = errors.New("one or more outputs failed")

// run extracts cfg.Input and writes both outputs. The report goes to
// stdout and logs to stderr. A load failure writes nothing.
func run(cfg config.FileConfig, stdout, stderr io.Writer) error {
	logger := logging.New(cfg.LogLevel, cfg.LogFormat, stderr)
	out := report.New(stdout)

	order, err := book.ParseOrder(cfg.Order)
	if err != nil {
		return err
	}
	opts := book.DefaultOptions()
	opts.Order = order
	opts.Segment.MinChars = cfg.MinChapterChars
	opts.Segment.TitleRunes = cfg.TitleLength
	opts.Segment.SkipNavDocument = cfg.SkipNavDocument

	out.Banner()
	b, err := book.NewExtractor(opts, logger).Extract(cfg.Input)
	if err != nil {
		logger.Error("extraction failed", "input", cfg.Input, "err", err)
		out.LoadFailed(err)
		return err
	}
	out.Loaded(b.Metadata.Filename)
	out.Metadata(b.Metadata)
	out.Chapters(b.Chapters)
	out.Skipped(b.Skipped)
	out.Statistics(b.Statistics())

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		logger.Error("create output directory", "dir", cfg.OutputDir, "err", err)
		out.SaveFailed(cfg.OutputDir, err)
		out.Done(false)
		return err
	}

	// The two exports are independent; one failing does not stop the other.
	ok := true
	save := func(path string, write func(string, *book.Book) error) {
		if err := write(path, b); err != nil {
			ok = false
			logger.Error("export failed", "path", path, "err", err)
			out.SaveFailed(path, err)
			return
		}
		out.Saved(path)
	}
	save(cfg.TextPath(), export.WriteText)
	save(cfg.JSONPath(), export.WriteJSON)

	out.Done(ok)
	if !ok {
		return errExport
	}
	return nil
}
