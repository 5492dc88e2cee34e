package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/rgonek/wp-tiptap-converter/htmlconverter"
	"github.com/rgonek/wp-tiptap-converter/urlmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
	"gopkg.in/yaml.v3"
)

const (
	presetPost = "post"
	presetPage = "page"
)

func presetConfig(preset string) (htmlconverter.Config, error) {
	switch strings.ToLower(strings.TrimSpace(preset)) {
	case "", presetPost:
		return htmlconverter.Config{Blocks: htmlconverter.PostBlocks}, nil
	case presetPage:
		return htmlconverter.Config{Blocks: htmlconverter.PageBlocks}, nil
	default:
		return htmlconverter.Config{}, fmt.Errorf("unknown preset %q (allowed: post, page)", preset)
	}
}

// fileConfig is the YAML config file. Command line flags take precedence.
type fileConfig struct {
	Rewrites       string `yaml:"rewrites"`
	AssetBaseURL   string `yaml:"assetBaseURL"`
	AssetExtension string `yaml:"assetExtension"`
	LinkTarget     string `yaml:"linkTarget"`
	Charset        string `yaml:"charset"`
	Workers        int    `yaml:"workers"`
	LogLevel       string `yaml:"logLevel"`
}

// loadFileConfig reads path; an empty path yields the zero config. A relative
// rewrites path is resolved against the config file's directory.
func loadFileConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return fileConfig{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Workers < 0 {
		return fileConfig{}, fmt.Errorf("parse config %s: workers must not be negative", path)
	}

	if cfg.Rewrites != "" && !filepath.IsAbs(cfg.Rewrites) {
		cfg.Rewrites = filepath.Join(filepath.Dir(path), cfg.Rewrites)
	}
	return cfg, nil
}

func parseLogLevel(value string) (slog.Level, error) {
	var level slog.Level
	if strings.TrimSpace(value) == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(strings.TrimSpace(value))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid logLevel %q: %w", value, err)
	}
	return level, nil
}

// rootOptions holds the global flags and what they resolve to.
type rootOptions struct {
	configPath   string
	rewritesPath string
	verbose      bool

	file fileConfig
	log  *slog.Logger
}

func (o *rootOptions) load(stderr io.Writer) error {
	file, err := loadFileConfig(o.configPath)
	if err != nil {
		return err
	}
	o.file = file
	if o.rewritesPath == "" {
		o.rewritesPath = file.Rewrites
	}

	level, err := parseLogLevel(file.LogLevel)
	if err != nil {
		return err
	}
	if o.verbose {
		level = slog.LevelDebug
	}
	o.log = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	return nil
}

// rewriteTable loads the rewrite manifest. Without one the table is empty but
// still synthesizes asset URLs when the convention is configured.
func (o *rootOptions) rewriteTable() (*urlmap.Table, error) {
	opts := urlmap.Options{
		AssetBase: o.file.AssetBaseURL,
		AssetExt:  o.file.AssetExtension,
	}
	if o.rewritesPath == "" {
		return urlmap.New(nil, opts), nil
	}

	table, err := urlmap.LoadFile(o.rewritesPath, opts)
	if err != nil {
		return nil, err
	}
	o.log.Debug("loaded rewrite table", "path", o.rewritesPath, "entries", table.Len())
	return table, nil
}

// decodeInput converts input in charset to UTF-8. Legacy exports are often
// windows-1250 or iso-8859-2. An empty charset means the input is UTF-8.
func decodeInput(data []byte, charset string) (string, error) {
	charset = strings.TrimSpace(charset)
	if charset == "" {
		return string(data), nil
	}

	enc, err := htmlindex.Get(charset)
	if err != nil {
		return "", fmt.Errorf("unknown charset %q: %w", charset, err)
	}
	decoded, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), enc.NewDecoder()))
	if err != nil {
		return "", fmt.Errorf("decode %s input: %w", charset, err)
	}
	return string(decoded), nil
}
