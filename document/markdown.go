package document

import (
	"fmt"
	"strings"
)

// RenderMarkdown renders the document as GitHub-flavored Markdown. The output
// is a review aid for editors and is not meant to round-trip.
func RenderMarkdown(doc Doc) string {
	var sb strings.Builder
	for _, child := range doc.Content {
		sb.WriteString(renderBlock(child))
	}
	// Trim right to avoid excessive newlines at the end of file, then ensure exactly one.
	return strings.TrimRight(sb.String(), "\n") + "\n"
}

func renderBlock(node Node) string {
	switch node.Type {
	case TypeParagraph:
		content := renderInline(node.Content)
		if content == "" {
			return ""
		}
		return content + "\n\n"

	case TypeHeading:
		content := strings.TrimSuffix(renderInline(node.Content), "\\\n")
		if content == "" {
			return ""
		}
		return strings.Repeat("#", node.GetIntAttr("level", 2)) + " " + content + "\n\n"

	case TypeBulletList:
		return renderList(node, func(int) string { return "- " })

	case TypeOrderedList:
		start := node.GetIntAttr("start", 1)
		return renderList(node, func(i int) string { return fmt.Sprintf("%d. ", start+i) })

	case TypeBlockquote:
		content := strings.TrimRight(renderChildren(node.Content), "\n")
		if content == "" {
			return ""
		}
		lines := strings.Split(content, "\n")
		for i, line := range lines {
			if line == "" {
				lines[i] = ">"
				continue
			}
			lines[i] = "> " + line
		}
		return strings.Join(lines, "\n") + "\n\n"

	case TypeTable:
		return renderTable(node)

	case TypeImage:
		src := node.GetStringAttr("src", "")
		alt := node.GetStringAttr("alt", "")
		title := node.GetStringAttr("title", "")
		if title != "" {
			escapedTitle := strings.ReplaceAll(title, "\"", "\\\"")
			return fmt.Sprintf("![%s](%s \"%s\")\n\n", alt, src, escapedTitle)
		}
		return fmt.Sprintf("![%s](%s)\n\n", alt, src)

	default:
		return renderInline([]Node{node})
	}
}

func renderChildren(nodes []Node) string {
	var sb strings.Builder
	for _, child := range nodes {
		sb.WriteString(renderBlock(child))
	}
	return sb.String()
}

func renderList(node Node, marker func(int) string) string {
	var sb strings.Builder
	for i, item := range node.Content {
		content := strings.TrimRight(renderChildren(item.Content), "\n")
		sb.WriteString(indent(content, marker(i)))
		sb.WriteString("\n")
	}
	return sb.String() + "\n"
}

// indent prefixes the first line with marker and aligns continuation lines
// under the item text.
func indent(content, marker string) string {
	lines := strings.Split(content, "\n")
	pad := strings.Repeat(" ", len(marker))
	for i, line := range lines {
		switch {
		case i == 0:
			lines[i] = marker + line
		case line != "":
			lines[i] = pad + line
		}
	}
	return strings.Join(lines, "\n")
}

func renderTable(node Node) string {
	var rows [][]string
	hasHeader := false
	colCount := 0

	for i, rowNode := range node.Content {
		var row []string
		for _, cell := range rowNode.Content {
			if i == 0 && cell.Type == TypeTableHeader {
				hasHeader = true
			}
			row = append(row, renderCell(cell))
		}
		if len(row) > colCount {
			colCount = len(row)
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return ""
	}

	headerRow := make([]string, colCount)
	dataRows := rows
	if hasHeader {
		copy(headerRow, rows[0])
		dataRows = rows[1:]
	}

	var sb strings.Builder
	writeTableRow(&sb, headerRow, colCount)
	sb.WriteString("|")
	for i := 0; i < colCount; i++ {
		sb.WriteString(" --- |")
	}
	sb.WriteString("\n")
	for _, row := range dataRows {
		writeTableRow(&sb, row, colCount)
	}

	return sb.String() + "\n"
}

func writeTableRow(sb *strings.Builder, row []string, colCount int) {
	sb.WriteString("|")
	for i := 0; i < colCount; i++ {
		sb.WriteString(" ")
		if i < len(row) {
			sb.WriteString(row[i])
		}
		sb.WriteString(" |")
	}
	sb.WriteString("\n")
}

func renderCell(cell Node) string {
	parts := make([]string, 0, len(cell.Content))
	for _, child := range cell.Content {
		parts = append(parts, renderInline(child.Content))
	}
	content := strings.Join(parts, " ")
	content = strings.ReplaceAll(content, "\\\n", " ")
	content = strings.ReplaceAll(content, "\n", " ")
	return strings.ReplaceAll(content, "|", "\\|")
}

// renderInline writes text runs while keeping marks open across adjacent
// nodes that share them.
func renderInline(content []Node) string {
	var sb strings.Builder
	var activeMarks []Mark

	closeAll := func() {
		for i := len(activeMarks) - 1; i >= 0; i-- {
			_, closing := markDelimiters(activeMarks[i])
			sb.WriteString(closing)
		}
		activeMarks = nil
	}

	for _, node := range content {
		if node.Type != TypeText {
			closeAll()
			if node.Type == TypeHardBreak {
				sb.WriteString("\\\n")
			}
			continue
		}

		toClose := marksToClose(activeMarks, node.Marks)
		for i := len(toClose) - 1; i >= 0; i-- {
			_, closing := markDelimiters(toClose[i])
			sb.WriteString(closing)
		}
		for _, mark := range marksToOpen(activeMarks, node.Marks) {
			opening, _ := markDelimiters(mark)
			sb.WriteString(opening)
		}

		sb.WriteString(node.Text)
		activeMarks = node.Marks
	}
	closeAll()

	return sb.String()
}

func marksToClose(activeMarks, currentMarks []Mark) []Mark {
	for i, activeMark := range activeMarks {
		if i >= len(currentMarks) || !MarksEqual(activeMark, currentMarks[i]) {
			return activeMarks[i:]
		}
	}
	return nil
}

func marksToOpen(activeMarks, currentMarks []Mark) []Mark {
	commonLen := 0
	for i := 0; i < len(activeMarks) && i < len(currentMarks); i++ {
		if !MarksEqual(activeMarks[i], currentMarks[i]) {
			break
		}
		commonLen++
	}
	if commonLen < len(currentMarks) {
		return currentMarks[commonLen:]
	}
	return nil
}

func markDelimiters(mark Mark) (string, string) {
	switch mark.Type {
	case MarkBold:
		return "**", "**"
	case MarkItalic:
		return "_", "_"
	case MarkUnderline:
		return "<u>", "</u>"
	case MarkLink:
		href := mark.GetStringAttr("href", "")
		if href == "" {
			return "", ""
		}
		return "[", "](" + href + ")"
	default:
		return "", ""
	}
}

// MarksEqual compares two marks including their attributes.
func MarksEqual(left, right Mark) bool {
	if left.Type != right.Type || len(left.Attrs) != len(right.Attrs) {
		return false
	}
	for key, leftValue := range left.Attrs {
		rightValue, ok := right.Attrs[key]
		if !ok || leftValue != rightValue {
			return false
		}
	}
	return true
}
