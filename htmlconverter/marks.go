package htmlconverter

import "github.com/rgonek/wp-tiptap-converter/document"

func marksEqual(left, right []document.Mark) bool {
	if len(left) != len(right) {
		return false
	}
	for idx := range left {
		if !document.MarksEqual(left[idx], right[idx]) {
			return false
		}
	}
	return true
}

func hasMarkType(marks []document.Mark, markType string) bool {
	for _, mark := range marks {
		if mark.Type == markType {
			return true
		}
	}
	return false
}

// withMark adds mark in front of the marks of every text node. Nodes that
// already carry a mark of that type keep their own.
func withMark(nodes []document.Node, mark document.Mark) []document.Node {
	var content []document.Node
	for _, node := range nodes {
		if node.Type == document.TypeText && !hasMarkType(node.Marks, mark.Type) {
			marks := make([]document.Mark, 0, len(node.Marks)+1)
			marks = append(marks, mark)
			node.Marks = append(marks, node.Marks...)
		}
		content = appendInlineNode(content, node)
	}
	return content
}

// appendInlineNode drops empty text and merges adjacent text runs that carry
// the same marks.
func appendInlineNode(content []document.Node, next document.Node) []document.Node {
	if next.Type == document.TypeText && next.Text == "" {
		return content
	}

	if len(content) == 0 {
		return append(content, next)
	}

	last := &content[len(content)-1]
	if last.Type == document.TypeText && next.Type == document.TypeText && marksEqual(last.Marks, next.Marks) {
		last.Text += next.Text
		return content
	}

	return append(content, next)
}

// trimInline removes the whitespace at the edges of a block and around hard
// breaks. Hard breaks at the edges of a block are dropped.
func trimInline(nodes []document.Node) []document.Node {
	isBreak := func(i int) bool {
		return i < 0 || i >= len(nodes) || nodes[i].Type == document.TypeHardBreak
	}

	var content []document.Node
	for i, node := range nodes {
		if node.Type == document.TypeText {
			if isBreak(i - 1) {
				node.Text = trimLeftSpace(node.Text)
			}
			if isBreak(i + 1) {
				node.Text = trimRightSpace(node.Text)
			}
		}
		content = appendInlineNode(content, node)
	}

	for len(content) > 0 && content[0].Type == document.TypeHardBreak {
		content = content[1:]
	}
	for len(content) > 0 && content[len(content)-1].Type == document.TypeHardBreak {
		content = content[:len(content)-1]
	}
	return content
}

func trimLeftSpace(text string) string {
	for len(text) > 0 && text[0] == ' ' {
		text = text[1:]
	}
	return text
}

func trimRightSpace(text string) string {
	for len(text) > 0 && text[len(text)-1] == ' ' {
		text = text[:len(text)-1]
	}
	return text
}
