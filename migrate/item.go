// Package migrate converts batches of exported WordPress posts and pages.
package migrate

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rgonek/wp-tiptap-converter/document"
)

// Kind is the WordPress content type of an item.
type Kind string

const (
	KindPost Kind = "post"
	KindPage Kind = "page"
)

// Item is one exported post or page.
type Item struct {
	ID      int64  `json:"id"`
	Kind    Kind   `json:"kind"`
	Title   string `json:"title"`
	Content string `json:"content"`
	// Attachments is the number of media attachments WordPress recorded for
	// the item.
	Attachments int `json:"attachments,omitempty"`
}

// Output is the converted form of an Item.
type Output struct {
	ID       int64              `json:"id"`
	Kind     Kind               `json:"kind"`
	Title    string             `json:"title"`
	Content  document.Doc       `json:"content"`
	Images   []document.Image   `json:"images"`
	Warnings []document.Warning `json:"warnings,omitempty"`
}

// ReadItems decodes a JSON array of items.
func ReadItems(r io.Reader) ([]Item, error) {
	var items []Item
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	return items, nil
}

// ReadItemsFile reads items from a JSON file.
func ReadItemsFile(path string) ([]Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open items: %w", err)
	}
	defer f.Close()

	items, err := ReadItems(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return items, nil
}

// WriteOutputs encodes outputs as an indented JSON array.
func WriteOutputs(w io.Writer, outputs []Output) error {
	if outputs == nil {
		outputs = []Output{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(outputs); err != nil {
		return fmt.Errorf("encode outputs: %w", err)
	}
	return nil
}
