package document

import "fmt"

var allowedChildren = map[string]map[string]bool{
	TypeBulletList:  {TypeListItem: true},
	TypeOrderedList: {TypeListItem: true},
	TypeListItem:    {TypeParagraph: true},
	TypeBlockquote:  {TypeParagraph: true},
	TypeTable:       {TypeTableRow: true},
	TypeTableRow:    {TypeTableHeader: true, TypeTableCell: true},
	TypeTableHeader: {TypeParagraph: true},
	TypeTableCell:   {TypeParagraph: true},
	TypeParagraph:   {TypeText: true, TypeHardBreak: true},
	TypeHeading:     {TypeText: true, TypeHardBreak: true},
	TypeImage:       {},
	TypeText:        {},
	TypeHardBreak:   {},
}

var blockTypes = map[string]bool{
	TypeParagraph:   true,
	TypeHeading:     true,
	TypeBulletList:  true,
	TypeOrderedList: true,
	TypeBlockquote:  true,
	TypeTable:       true,
	TypeImage:       true,
}

// Validate reports the first structural invariant the document violates.
func Validate(doc Doc) error {
	if doc.Type != TypeDoc {
		return fmt.Errorf("root node must be %q, got %q", TypeDoc, doc.Type)
	}
	if len(doc.Content) == 0 {
		return fmt.Errorf("document has no content")
	}

	for i, child := range doc.Content {
		if !blockTypes[child.Type] {
			return fmt.Errorf("doc child %d: %q is not a block node", i, child.Type)
		}
		if err := validateNode(child, fmt.Sprintf("doc/%d", i)); err != nil {
			return err
		}
	}

	return nil
}

func validateNode(node Node, path string) error {
	allowed, known := allowedChildren[node.Type]
	if !known {
		return fmt.Errorf("%s: unknown node type %q", path, node.Type)
	}

	switch node.Type {
	case TypeHeading:
		level := node.GetIntAttr("level", 0)
		if level < 2 || level > 4 {
			return fmt.Errorf("%s: heading level %d out of range 2..4", path, level)
		}
	case TypeText:
		if node.Text == "" {
			return fmt.Errorf("%s: empty text node", path)
		}
	case TypeImage:
		if node.GetStringAttr("src", "") == "" {
			return fmt.Errorf("%s: image without src", path)
		}
	}

	if node.Type != TypeText && len(node.Marks) > 0 {
		return fmt.Errorf("%s: marks on non-text node %q", path, node.Type)
	}
	seen := make(map[string]bool, len(node.Marks))
	for _, mark := range node.Marks {
		if seen[mark.Type] {
			return fmt.Errorf("%s: duplicate %q mark", path, mark.Type)
		}
		seen[mark.Type] = true
	}

	for i, child := range node.Content {
		childPath := fmt.Sprintf("%s/%s[%d]", path, node.Type, i)
		if !allowed[child.Type] {
			return fmt.Errorf("%s: %q not allowed inside %q", childPath, child.Type, node.Type)
		}
		if err := validateNode(child, childPath); err != nil {
			return err
		}
	}

	return nil
}
