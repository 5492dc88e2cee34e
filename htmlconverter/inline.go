package htmlconverter

import (
	"regexp"
	"strings"

	"github.com/rgonek/wp-tiptap-converter/document"
	"golang.org/x/net/html/atom"
)

var whitespaceRe = regexp.MustCompile(`[ \t\n\f]+`)

// parseInlineBlock parses the inline content of one block.
func (s *state) parseInlineBlock(fragment string) []document.Node {
	fragment = strings.TrimSpace(fragment)
	return trimInline(s.parseInline(indexTags(fragment), 0, len(fragment)))
}

// parseInline turns x.s[from:to] into text runs and hard breaks. Tags it does
// not know are dropped while their content is kept; an opening tag without a
// matching close is dropped the same way.
func (s *state) parseInline(x *tagIndex, from, to int) []document.Node {
	var content []document.Node

	pos := from
	for i := x.at(from); i < len(x.tags) && x.tags[i].end <= to; i++ {
		t := x.tags[i]
		content = appendText(content, x.s[pos:t.start])
		pos = t.end
		if t.closing {
			continue
		}

		switch atom.Lookup([]byte(t.name)) {
		case atom.Br:
			content = append(content, document.HardBreak())

		case atom.Img:
			s.addWarning(document.WarningDroppedContent, document.TypeImage, "image inside text dropped")

		case atom.A:
			c, ok := x.closeOf(i, to)
			if !ok {
				continue
			}
			innerEnd := x.tags[c].start
			i, pos = c, x.tags[c].end

			if containsImage(x.s[t.end:innerEnd]) {
				s.addWarning(document.WarningDroppedContent, document.TypeImage, "linked image inside text dropped")
				continue
			}

			children := s.parseInline(x, t.end, innerEnd)
			if href := tagAttrs(x.s[t.start:t.end])["href"]; strings.TrimSpace(href) != "" {
				children = withMark(children, document.Link(s.rewrite(href), s.config.LinkTarget))
			}
			content = appendInlineNodes(content, children)

		case atom.Strong, atom.B:
			content, i = s.parseMarked(x, i, to, document.Bold(), content)
			pos = x.tags[i].end
		case atom.Em, atom.I:
			content, i = s.parseMarked(x, i, to, document.Italic(), content)
			pos = x.tags[i].end
		case atom.U:
			content, i = s.parseMarked(x, i, to, document.Underline(), content)
			pos = x.tags[i].end
		}
	}

	return appendText(content, x.s[pos:to])
}

// parseMarked parses the element opened by tag i and applies mark to its
// text. It returns the index of the last tag consumed, i itself when the tag
// has no matching close and is ignored.
func (s *state) parseMarked(x *tagIndex, i, to int, mark document.Mark, content []document.Node) ([]document.Node, int) {
	c, ok := x.closeOf(i, to)
	if !ok {
		return content, i
	}
	children := withMark(s.parseInline(x, x.tags[i].end, x.tags[c].start), mark)
	return appendInlineNodes(content, children), c
}

func appendInlineNodes(content, nodes []document.Node) []document.Node {
	for _, node := range nodes {
		content = appendInlineNode(content, node)
	}
	return content
}

func appendText(content []document.Node, raw string) []document.Node {
	if raw == "" {
		return content
	}
	text := DecodeEntities(whitespaceRe.ReplaceAllString(raw, " "))
	if n := len(content); n > 0 && content[n-1].Type == document.TypeText && strings.HasSuffix(content[n-1].Text, " ") {
		text = trimLeftSpace(text)
	}
	return appendInlineNode(content, document.Text(text))
}
