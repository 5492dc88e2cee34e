package document

// Node types emitted by the converter.
const (
	TypeDoc         = "doc"
	TypeParagraph   = "paragraph"
	TypeHeading     = "heading"
	TypeBulletList  = "bulletList"
	TypeOrderedList = "orderedList"
	TypeListItem    = "listItem"
	TypeBlockquote  = "blockquote"
	TypeTable       = "table"
	TypeTableRow    = "tableRow"
	TypeTableHeader = "tableHeader"
	TypeTableCell   = "tableCell"
	TypeImage       = "image"
	TypeText        = "text"
	TypeHardBreak   = "hardBreak"
)

// Mark types applied to text nodes.
const (
	MarkBold      = "bold"
	MarkItalic    = "italic"
	MarkUnderline = "underline"
	MarkLink      = "link"
)

// Doc represents the root node of a rich-text document.
type Doc struct {
	Type    string `json:"type"`
	Content []Node `json:"content,omitempty"`
}

// Node represents any node in the document tree (paragraph, text, image, ...).
type Node struct {
	Type    string                 `json:"type"`
	Attrs   map[string]interface{} `json:"attrs,omitempty"`
	Content []Node                 `json:"content,omitempty"`
	Text    string                 `json:"text,omitempty"`
	Marks   []Mark                 `json:"marks,omitempty"`
}

// Mark represents text formatting applied to a text node.
type Mark struct {
	Type  string                 `json:"type"`
	Attrs map[string]interface{} `json:"attrs,omitempty"`
}

// GetStringAttr returns a string attribute or the fallback when absent.
func (n Node) GetStringAttr(key, fallback string) string {
	if value, ok := n.Attrs[key].(string); ok {
		return value
	}
	return fallback
}

// GetIntAttr returns an integer attribute. JSON-decoded numbers arrive as
// float64 and are accepted as well.
func (n Node) GetIntAttr(key string, fallback int) int {
	switch value := n.Attrs[key].(type) {
	case int:
		return value
	case float64:
		return int(value)
	default:
		return fallback
	}
}

// GetStringAttr returns a string attribute of the mark or the fallback.
func (m Mark) GetStringAttr(key, fallback string) string {
	if value, ok := m.Attrs[key].(string); ok {
		return value
	}
	return fallback
}
