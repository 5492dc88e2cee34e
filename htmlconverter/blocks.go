package htmlconverter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rgonek/wp-tiptap-converter/document"
)

const (
	minHeadingLevel = 2
	maxHeadingLevel = 4
)

func (s *state) buildBlock(sp span) []document.Node {
	switch sp.kind {
	case spanParagraph:
		return s.buildParagraph(sp.inner)
	case spanImplicit:
		return s.buildImplicitParagraph(sp.inner)
	case spanList:
		return s.buildList(sp)
	case spanHeading:
		return s.buildHeading(sp)
	case spanBlockquote:
		return s.buildBlockquote(sp.inner)
	case spanTable:
		return s.buildTable(sp.inner)
	case spanImage:
		images, _ := s.buildImageRun(sp.inner)
		return images
	default:
		return nil
	}
}

// buildParagraph emits images for image-only content and a paragraph
// otherwise. An empty paragraph is kept as a visual blank line.
func (s *state) buildParagraph(inner string) []document.Node {
	if images, ok := s.buildImageRun(inner); ok {
		return images
	}
	return []document.Node{document.Paragraph(s.parseInlineBlock(inner)...)}
}

// buildImplicitParagraph handles prose between blocks. Single newlines are
// line breaks there, the way WordPress rendered legacy posts; pieces with no
// text at all (stray wrapper tags) produce nothing.
func (s *state) buildImplicitParagraph(inner string) []document.Node {
	trimmed := strings.TrimSpace(inner)
	if images, ok := s.buildImageRun(trimmed); ok {
		return images
	}

	content := s.parseInlineBlock(newlinesToBreaks(trimmed))
	if !hasText(content) {
		return nil
	}
	return []document.Node{document.Paragraph(content...)}
}

func (s *state) buildList(sp span) []document.Node {
	items := s.buildListItems(sp.inner)
	if len(items) == 0 {
		s.addWarning(document.WarningDroppedContent, sp.name, "list without items omitted")
		return nil
	}

	if sp.name == "ol" {
		start := 1
		if value, err := strconv.Atoi(strings.TrimSpace(tagAttrs(sp.openTag)["start"])); err == nil {
			start = value
		}
		return []document.Node{document.OrderedList(start, items...)}
	}
	return []document.Node{document.BulletList(items...)}
}

func (s *state) buildListItems(inner string) []document.Node {
	var items []document.Node
	x := indexTags(inner)
	pos := 0
	for {
		item, ok := x.findItem(pos, "li")
		if !ok {
			return items
		}
		pos = item.end
		items = append(items, s.buildListItem(item.inner(inner))...)
	}
}

// buildListItem parses one <li>. Lists nested in the item are flattened into
// items that follow it, so every item holds a single paragraph.
func (s *state) buildListItem(inner string) []document.Node {
	var items []document.Node
	x := indexTags(inner)
	pos := 0
	for {
		nested, ok := x.findElement(pos, "ul", "ol")
		end := len(inner)
		if ok {
			end = nested.start
		}

		text := s.parseInlineBlock(inner[pos:end])
		if pos == 0 || hasText(text) {
			items = append(items, document.ListItem(text...))
		}
		if !ok {
			return items
		}

		items = append(items, s.buildListItems(nested.inner(inner))...)
		pos = nested.end
	}
}

func (s *state) buildHeading(sp span) []document.Node {
	level := minHeadingLevel
	if len(sp.name) == 2 {
		level = int(sp.name[1] - '0')
	}

	clamped := min(max(level, minHeadingLevel), maxHeadingLevel)
	if clamped != level {
		s.addWarning(
			document.WarningClampedHeading,
			document.TypeHeading,
			fmt.Sprintf("heading level %d clamped to %d", level, clamped),
		)
	}

	return []document.Node{document.Heading(clamped, s.parseInlineBlock(sp.inner)...)}
}

// buildBlockquote flattens the quote to plain text: nested formatting is not
// carried over.
func (s *state) buildBlockquote(inner string) []document.Node {
	return []document.Node{document.Blockquote(s.parseInlineBlock(stripTags(inner))...)}
}

// buildTable omits tables without any cell. Rows and cells may leave out
// their end tags.
func (s *state) buildTable(inner string) []document.Node {
	var rows []document.Node
	x := indexTags(inner)
	pos := 0
	for {
		row, ok := x.findItem(pos, "tr")
		if !ok {
			break
		}
		pos = row.end

		if cells := s.buildTableCells(row.inner(inner)); len(cells) > 0 {
			rows = append(rows, document.TableRow(cells...))
		}
	}

	if len(rows) == 0 {
		s.addWarning(document.WarningEmptyTable, document.TypeTable, "table without cells omitted")
		return nil
	}
	return []document.Node{document.Table(rows...)}
}

func (s *state) buildTableCells(row string) []document.Node {
	var cells []document.Node
	x := indexTags(row)
	pos := 0
	for {
		cell, ok := x.findItem(pos, "th", "td")
		if !ok {
			return cells
		}
		pos = cell.end

		content := s.parseInlineBlock(strings.TrimSpace(stripTags(cell.inner(row))))
		if cell.name == "th" {
			cells = append(cells, document.TableHeader(content...))
		} else {
			cells = append(cells, document.TableCell(content...))
		}
	}
}

// newlinesToBreaks turns newlines outside of tags into <br> tags.
func newlinesToBreaks(fragment string) string {
	var sb strings.Builder
	last := 0
	for _, loc := range tagRe.FindAllStringIndex(fragment, -1) {
		sb.WriteString(strings.ReplaceAll(fragment[last:loc[0]], "\n", "<br>"))
		sb.WriteString(fragment[loc[0]:loc[1]])
		last = loc[1]
	}
	sb.WriteString(strings.ReplaceAll(fragment[last:], "\n", "<br>"))
	return sb.String()
}

func hasText(nodes []document.Node) bool {
	for _, node := range nodes {
		if node.Type == document.TypeText {
			return true
		}
	}
	return false
}
