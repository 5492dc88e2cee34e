package migrate

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/rgonek/wp-tiptap-converter/document"
	"github.com/rgonek/wp-tiptap-converter/urlmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRunner(t *testing.T, cfg Config, log *slog.Logger) *Runner {
	t.Helper()

	runner, err := NewRunner(cfg, log)
	require.NoError(t, err)

	return runner
}

func TestRunPreservesInputOrder(t *testing.T) {
	runner := newTestRunner(t, Config{Workers: 3}, nil)

	items := make([]Item, 50)
	for i := range items {
		items[i] = Item{
			ID:      int64(i + 1),
			Kind:    KindPost,
			Title:   fmt.Sprintf("Objava %d", i+1),
			Content: fmt.Sprintf("<p>Sadržaj %d</p>", i+1),
		}
	}

	outputs, err := runner.Run(context.Background(), items)
	require.NoError(t, err)
	require.Len(t, outputs, len(items))

	for i, out := range outputs {
		assert.Equal(t, items[i].ID, out.ID)
		assert.Equal(t, KindPost, out.Kind)
		assert.Equal(t, []document.Node{
			document.Paragraph(document.Text(fmt.Sprintf("Sadržaj %d", i+1))),
		}, out.Content.Content)
	}
}

func TestRunUsesPresetPerKind(t *testing.T) {
	runner := newTestRunner(t, Config{}, nil)
	table := "<table><tr><td>a</td></tr></table>"

	outputs, err := runner.Run(context.Background(), []Item{
		{ID: 1, Kind: KindPost, Content: table},
		{ID: 2, Kind: KindPage, Content: table},
	})
	require.NoError(t, err)

	assert.Equal(t, document.TypeParagraph, outputs[0].Content.Content[0].Type)
	assert.Equal(t, document.TypeTable, outputs[1].Content.Content[0].Type)
}

func TestRunSharesRewriteTable(t *testing.T) {
	table := urlmap.New(map[string]string{"http://old.site/o-nama/": "/o-nama"}, urlmap.Options{})
	runner := newTestRunner(t, Config{Rewrites: table}, nil)

	outputs, err := runner.Run(context.Background(), []Item{
		{ID: 1, Kind: KindPost, Content: `<p><a href="http://old.site/o-nama/">O nama</a></p>`},
		{ID: 2, Kind: KindPage, Content: `<p><a href="http://old.site/o-nama/">O nama</a></p>`},
	})
	require.NoError(t, err)

	for _, out := range outputs {
		text := out.Content.Content[0].Content[0]
		require.Len(t, text.Marks, 1)
		assert.Equal(t, "/o-nama", text.Marks[0].GetStringAttr("href", ""))
	}
}

func TestRunReportsMissingImages(t *testing.T) {
	runner := newTestRunner(t, Config{}, nil)

	outputs, err := runner.Run(context.Background(), []Item{
		{ID: 1, Kind: KindPost, Content: "<p>Bez slika</p>", Attachments: 2},
		{ID: 2, Kind: KindPost, Content: `<img src="a.jpg">`, Attachments: 1},
		{ID: 3, Kind: KindPost, Content: "<p>Bez priloga</p>"},
	})
	require.NoError(t, err)

	require.Len(t, outputs[0].Warnings, 1)
	assert.Equal(t, document.WarningMissingImages, outputs[0].Warnings[0].Type)
	assert.Equal(t, "2 attachments recorded but no images found", outputs[0].Warnings[0].Message)
	assert.Empty(t, outputs[1].Warnings)
	assert.Empty(t, outputs[2].Warnings)
}

func TestRunFailsOnUnknownKind(t *testing.T) {
	runner := newTestRunner(t, Config{}, nil)

	outputs, err := runner.Run(context.Background(), []Item{
		{ID: 1, Kind: KindPost, Content: "x"},
		{ID: 42, Kind: "attachment", Content: "y"},
	})
	require.Error(t, err)
	assert.Nil(t, outputs)
	assert.Equal(t, `item 42: unknown kind "attachment"`, err.Error())
}

func TestRunHonoursCancellation(t *testing.T) {
	runner := newTestRunner(t, Config{Workers: 1}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outputs, err := runner.Run(ctx, []Item{{ID: 1, Kind: KindPost, Content: "x"}})
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, outputs)
}

func TestRunEmptyBatch(t *testing.T) {
	runner := newTestRunner(t, Config{}, nil)

	outputs, err := runner.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, outputs)
}

func TestConvertDecodesTitle(t *testing.T) {
	runner := newTestRunner(t, Config{}, nil)

	out, err := runner.Convert(Item{ID: 1, Kind: KindPage, Title: "Natje&#269;aj &#8211; 2019", Content: ""})
	require.NoError(t, err)

	assert.Equal(t, "Natječaj – 2019", out.Title)
	assert.Equal(t, document.NewDoc(nil), out.Content)
	assert.Equal(t, []document.Image{}, out.Images)
}

func TestConvertLogsWarnings(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	runner := newTestRunner(t, Config{}, log)

	_, err := runner.Convert(Item{ID: 7, Kind: KindPost, Content: "<h1>Naslov</h1>"})
	require.NoError(t, err)

	logged := buf.String()
	assert.Contains(t, logged, "level=WARN")
	assert.Contains(t, logged, `msg="heading level 1 clamped to 2"`)
	assert.Contains(t, logged, "item_id=7")
	assert.Contains(t, logged, "warning=clamped_heading")
	assert.Contains(t, logged, `msg="converted item"`)
}

func TestNewRunnerRejectsInvalidLinkTarget(t *testing.T) {
	_, err := NewRunner(Config{LinkTarget: "bad target"}, nil)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "converter: invalid linkTarget"), err.Error())
}
