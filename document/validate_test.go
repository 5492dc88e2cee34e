package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAcceptsWellFormedDocument(t *testing.T) {
	doc := NewDoc([]Node{
		Heading(3, Text("Naslov")),
		Paragraph(Text("a", Link("/x", "_blank"), Bold()), HardBreak(), Text("b")),
		Paragraph(),
		BulletList(ListItem(Text("x")), ListItem()),
		OrderedList(2, ListItem(Text("y"))),
		Blockquote(Text("citat")),
		Table(TableRow(TableHeader(Text("A")), TableCell())),
		ImageNode("grb.webp", "", ""),
	})

	require.NoError(t, Validate(doc))
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name    string
		doc     Doc
		wantErr string
	}{
		{
			name:    "wrong root",
			doc:     Doc{Type: TypeParagraph, Content: []Node{Paragraph()}},
			wantErr: "root node",
		},
		{
			name:    "no content",
			doc:     Doc{Type: TypeDoc},
			wantErr: "no content",
		},
		{
			name:    "inline at top level",
			doc:     Doc{Type: TypeDoc, Content: []Node{Text("x")}},
			wantErr: "not a block node",
		},
		{
			name:    "heading level",
			doc:     NewDoc([]Node{Heading(5, Text("x"))}),
			wantErr: "heading level 5",
		},
		{
			name:    "empty text",
			doc:     NewDoc([]Node{{Type: TypeParagraph, Content: []Node{{Type: TypeText}}}}),
			wantErr: "empty text node",
		},
		{
			name:    "image without src",
			doc:     NewDoc([]Node{ImageNode("", "alt", "")}),
			wantErr: "image without src",
		},
		{
			name:    "marks on block",
			doc:     NewDoc([]Node{{Type: TypeParagraph, Marks: []Mark{Bold()}}}),
			wantErr: "marks on non-text node",
		},
		{
			name:    "duplicate marks",
			doc:     NewDoc([]Node{Paragraph(Text("x", Bold(), Bold()))}),
			wantErr: `duplicate "bold" mark`,
		},
		{
			name:    "heading inside list item",
			doc:     NewDoc([]Node{{Type: TypeBulletList, Content: []Node{{Type: TypeListItem, Content: []Node{Heading(2)}}}}}),
			wantErr: `"heading" not allowed inside "listItem"`,
		},
		{
			name:    "unknown node",
			doc:     NewDoc([]Node{Paragraph(Node{Type: "emoji"})}),
			wantErr: `"emoji" not allowed inside "paragraph"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.doc)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
