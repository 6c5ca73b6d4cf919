package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigPath is the file read by the epubtext command, relative to the
// working directory.
const ConfigPath = "epubtext.yaml"

// FileConfig represents configuration loaded from YAML.
type FileConfig struct {
	Input           string `yaml:"input"`
	OutputDir       string `yaml:"outputDir"`
	TextFile        string `yaml:"textFile"`
	JSONFile        string `yaml:"jsonFile"`
	Order           string `yaml:"order"`
	MinChapterChars int    `yaml:"minChapterChars"`
	TitleLength     int    `yaml:"titleLength"`
	SkipNavDocument bool   `yaml:"skipNavDocument"`
	LogLevel        string `yaml:"logLevel"`
	LogFormat       string `yaml:"logFormat"`
}

// Default returns the configuration used when no file is present.
func Default() FileConfig {
	return FileConfig{
		Input:           filepath.Join("input", "book.epub"),
		OutputDir:       "output",
		TextFile:        "book_content.txt",
		JSONFile:        "book_data.json",
		Order:           "manifest",
		MinChapterChars: 100,
		TitleLength:     50,
		LogLevel:        "info",
		LogFormat:       "text",
	}
}

// Load reads config from path (defaults to ConfigPath). Keys missing from
// the file keep their Default values.
func Load(path string) (FileConfig, error) {
	cfg := Default()
	if path == "" {
		path = ConfigPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load but returns Default when the file does
// not exist. Any other read or validation error is returned.
func LoadOrDefault(path string) (FileConfig, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Validate checks a FileConfig.
func Validate(cfg FileConfig) error {
	if strings.TrimSpace(cfg.Input) == "" {
		return errors.New("config: input is required")
	}
	if strings.TrimSpace(cfg.OutputDir) == "" {
		return errors.New("config: outputDir is required")
	}
	if strings.TrimSpace(cfg.TextFile) == "" {
		return errors.New("config: textFile is required")
	}
	if strings.TrimSpace(cfg.JSONFile) == "" {
		return errors.New("config: jsonFile is required")
	}
	if filepath.Base(cfg.TextFile) != cfg.TextFile || filepath.Base(cfg.JSONFile) != cfg.JSONFile {
		return errors.New("config: textFile and jsonFile must be file names, not paths")
	}
	if cfg.TextFile == cfg.JSONFile {
		return errors.New("config: textFile and jsonFile must differ")
	}
	switch strings.ToLower(cfg.Order) {
	case "", "manifest", "spine":
	default:
		return fmt.Errorf("config: order must be manifest or spine, got %q", cfg.Order)
	}
	if cfg.MinChapterChars < 0 {
		return errors.New("config: minChapterChars must be >= 0")
	}
	if cfg.TitleLength <= 0 {
		return errors.New("config: titleLength must be > 0")
	}
	switch strings.ToLower(cfg.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("config: logFormat must be text or json, got %q", cfg.LogFormat)
	}
	return nil
}

// TextPath is the full path of the plain-text output.
func (c FileConfig) TextPath() string {
	return filepath.Join(c.OutputDir, c.TextFile)
}

// JSONPath is the full path of the structured output.
func (c FileConfig) JSONPath() string {
	return filepath.Join(c.OutputDir, c.JSONFile)
}
