package document

// NewDoc wraps blocks in a root node. An empty block list yields a single
// empty paragraph so the document always has content.
func NewDoc(blocks []Node) Doc {
	if len(blocks) == 0 {
		blocks = []Node{Paragraph()}
	}
	return Doc{Type: TypeDoc, Content: blocks}
}

// Paragraph builds a paragraph; no inline content yields an empty paragraph.
func Paragraph(inline ...Node) Node {
	return Node{Type: TypeParagraph, Content: nonEmpty(inline)}
}

// Heading builds a heading of the given level.
func Heading(level int, inline ...Node) Node {
	return Node{
		Type:    TypeHeading,
		Attrs:   map[string]interface{}{"level": level},
		Content: nonEmpty(inline),
	}
}

// BulletList builds an unordered list of list items.
func BulletList(items ...Node) Node {
	return Node{Type: TypeBulletList, Content: items}
}

// OrderedList builds an ordered list; start is recorded only when it differs
// from the default of 1.
func OrderedList(start int, items ...Node) Node {
	node := Node{Type: TypeOrderedList, Content: items}
	if start != 1 {
		node.Attrs = map[string]interface{}{"start": start}
	}
	return node
}

// ListItem wraps inline content in a list item holding one paragraph.
func ListItem(inline ...Node) Node {
	return Node{Type: TypeListItem, Content: []Node{Paragraph(inline...)}}
}

// Blockquote wraps inline content in a quote holding one paragraph.
func Blockquote(inline ...Node) Node {
	return Node{Type: TypeBlockquote, Content: []Node{Paragraph(inline...)}}
}

// Table builds a table of rows.
func Table(rows ...Node) Node {
	return Node{Type: TypeTable, Content: rows}
}

// TableRow builds a row of header or data cells.
func TableRow(cells ...Node) Node {
	return Node{Type: TypeTableRow, Content: cells}
}

// TableHeader builds a header cell holding one paragraph.
func TableHeader(inline ...Node) Node {
	return Node{Type: TypeTableHeader, Content: []Node{Paragraph(inline...)}}
}

// TableCell builds a data cell holding one paragraph.
func TableCell(inline ...Node) Node {
	return Node{Type: TypeTableCell, Content: []Node{Paragraph(inline...)}}
}

// ImageNode builds an image; empty alt and title are kept as empty strings.
func ImageNode(src, alt, title string) Node {
	return Node{
		Type: TypeImage,
		Attrs: map[string]interface{}{
			"src":   src,
			"alt":   alt,
			"title": title,
		},
	}
}

// Text builds a text node. Empty marks are normalized to nil.
func Text(value string, marks ...Mark) Node {
	node := Node{Type: TypeText, Text: value}
	if len(marks) > 0 {
		node.Marks = marks
	}
	return node
}

// HardBreak builds a line break inside inline content.
func HardBreak() Node {
	return Node{Type: TypeHardBreak}
}

// Bold, Italic and Underline build the attribute-free marks.
func Bold() Mark      { return Mark{Type: MarkBold} }
func Italic() Mark    { return Mark{Type: MarkItalic} }
func Underline() Mark { return Mark{Type: MarkUnderline} }

// Link builds a link mark.
func Link(href, target string) Mark {
	return Mark{
		Type: MarkLink,
		Attrs: map[string]interface{}{
			"href":   href,
			"target": target,
		},
	}
}

func nonEmpty(nodes []Node) []Node {
	if len(nodes) == 0 {
		return nil
	}
	return nodes
}
