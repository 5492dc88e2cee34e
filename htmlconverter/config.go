package htmlconverter

import (
	"fmt"
	"strings"

	"github.com/rgonek/wp-tiptap-converter/urlmap"
)

// BlockSet selects which block kinds the segmenter recognizes.
type BlockSet uint8

const (
	Paragraphs BlockSet = 1 << iota
	Lists
	Headings
	Blockquotes
	Tables
	Images
)

const (
	allBlocks BlockSet = Paragraphs | Lists | Headings | Blockquotes | Tables | Images

	// PostBlocks is the block set used for migrated posts.
	PostBlocks = allBlocks &^ Tables
	// PageBlocks is the block set used for migrated pages.
	PageBlocks = allBlocks
)

// Has reports whether every block kind in other is enabled.
func (b BlockSet) Has(other BlockSet) bool {
	return b&other == other
}

func (b BlockSet) String() string {
	names := []struct {
		block BlockSet
		name  string
	}{
		{Paragraphs, "paragraphs"},
		{Lists, "lists"},
		{Headings, "headings"},
		{Blockquotes, "blockquotes"},
		{Tables, "tables"},
		{Images, "images"},
	}

	var enabled []string
	for _, entry := range names {
		if b.Has(entry.block) {
			enabled = append(enabled, entry.name)
		}
	}
	if len(enabled) == 0 {
		return "none"
	}
	return strings.Join(enabled, "|")
}

const defaultLinkTarget = "_blank"

// Config configures HTML to document conversion.
type Config struct {
	Blocks     BlockSet      `json:"blocks,omitempty"`
	LinkTarget string        `json:"linkTarget,omitempty"`
	Rewrites   *urlmap.Table `json:"-"`
}

func (c Config) applyDefaults() Config {
	if c.Blocks == 0 {
		c.Blocks = PostBlocks
	}
	if strings.TrimSpace(c.LinkTarget) == "" {
		c.LinkTarget = defaultLinkTarget
	}
	return c
}

// Validate checks that config values are valid.
func (c Config) Validate() error {
	if c.Blocks&^allBlocks != 0 {
		return fmt.Errorf("unknown block flags %#x", uint8(c.Blocks&^allBlocks))
	}
	if !c.Blocks.Has(Paragraphs) {
		return fmt.Errorf("paragraph blocks cannot be disabled (blocks: %s)", c.Blocks)
	}
	if strings.ContainsAny(c.LinkTarget, " \t\n\"'<>") {
		return fmt.Errorf("invalid linkTarget %q", c.LinkTarget)
	}
	return nil
}
