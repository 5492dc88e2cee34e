// Package htmlconverter converts legacy WordPress HTML into rich-text documents.
package htmlconverter

import (
	"strings"

	"github.com/rgonek/wp-tiptap-converter/document"
)

// Converter converts legacy HTML to a document tree. It holds no mutable
// state and is safe for concurrent use.
type Converter struct {
	config Config
	rules  []rule
}

type state struct {
	config   Config
	warnings []document.Warning
}

// New creates a Converter with the given config.
func New(config Config) (*Converter, error) {
	cfg := config.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Converter{
		config: cfg,
		rules:  rulesFor(cfg.Blocks),
	}, nil
}

// Convert turns an HTML fragment into a document and its image manifest.
// Conversion never fails; anything it cannot represent is degraded to text,
// skipped, or reported as a warning.
func (c *Converter) Convert(html string) Result {
	s := &state{config: c.config}

	var blocks []document.Node
	for _, sp := range segment(normalize(html), c.rules) {
		blocks = append(blocks, s.buildBlock(sp)...)
	}

	doc := document.NewDoc(blocks)
	images := document.ExtractImages(doc)
	if images == nil {
		images = []document.Image{}
	}

	return Result{
		Doc:      doc,
		Images:   images,
		Warnings: s.warnings,
	}
}

func (s *state) addWarning(warnType document.WarningType, nodeType, message string) {
	s.warnings = append(s.warnings, document.Warning{
		Type:     warnType,
		NodeType: nodeType,
		Message:  message,
	})
}

// rewrite maps a link or asset reference through the rewrite table.
func (s *state) rewrite(ref string) string {
	return s.config.Rewrites.Rewrite(strings.TrimSpace(DecodeEntities(ref)))
}
