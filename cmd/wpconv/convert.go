package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rgonek/wp-tiptap-converter/document"
	"github.com/rgonek/wp-tiptap-converter/htmlconverter"
	"github.com/spf13/cobra"
)

const (
	formatJSON     = "json"
	formatMarkdown = "markdown"
)

func newConvertCmd(opts *rootOptions) *cobra.Command {
	var preset, format, charset string

	cmd := &cobra.Command{
		Use:   "convert <file.html>",
		Short: "Convert one HTML file and print the document",
		Long: `Convert reads a post or page body and prints the converted document with
its image manifest as JSON, or a Markdown preview of it.

Examples:
  wpconv convert post.html
  wpconv convert page.html --preset page --rewrites map.json
  wpconv convert post.html --format markdown`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd.OutOrStdout(), opts, args[0], preset, format, charset)
		},
	}

	cmd.Flags().StringVar(&preset, "preset", presetPost, "Preset: post|page")
	cmd.Flags().StringVar(&format, "format", formatJSON, "Output format: json|markdown")
	cmd.Flags().StringVar(&charset, "charset", "", "Input charset, e.g. windows-1250 (default: config file value, then UTF-8)")
	return cmd
}

func runConvert(out io.Writer, opts *rootOptions, path, preset, format, charset string) error {
	if format != formatJSON && format != formatMarkdown {
		return fmt.Errorf("unknown format %q (allowed: json, markdown)", format)
	}

	cfg, err := presetConfig(preset)
	if err != nil {
		return err
	}
	cfg.LinkTarget = opts.file.LinkTarget
	if cfg.Rewrites, err = opts.rewriteTable(); err != nil {
		return err
	}

	conv, err := htmlconverter.New(cfg)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	if charset == "" {
		charset = opts.file.Charset
	}
	html, err := decodeInput(data, charset)
	if err != nil {
		return err
	}

	result := conv.Convert(html)
	for _, w := range result.Warnings {
		opts.log.Warn(w.Message, "file", path, "warning", w.Type, "node_type", w.NodeType)
	}

	if format == formatMarkdown {
		_, err := io.WriteString(out, document.RenderMarkdown(result.Doc))
		return err
	}

	result.Warnings = nil
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
