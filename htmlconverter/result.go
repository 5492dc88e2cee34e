package htmlconverter

import "github.com/rgonek/wp-tiptap-converter/document"

// Result holds the output of a conversion.
type Result struct {
	Doc      document.Doc       `json:"content"`
	Images   []document.Image   `json:"images"`
	Warnings []document.Warning `json:"warnings,omitempty"`
}
