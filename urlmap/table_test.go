package urlmap

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewriteLongestMatchWins(t *testing.T) {
	table := New(map[string]string{
		"a.com/x":   "A",
		"a.com/x/y": "B",
	}, Options{})

	assert.Equal(t, "B/z", table.Rewrite("a.com/x/y/z"))
	assert.Equal(t, "A/q", table.Rewrite("a.com/x/q"))
}

func TestRewriteDoesNotRescanReplacedValues(t *testing.T) {
	table := New(map[string]string{
		"http://old.site/a": "http://old.site/b",
		"http://old.site/b": "/final",
	}, Options{})

	assert.Equal(t, "http://old.site/b and /final", table.Rewrite("http://old.site/a and http://old.site/b"))
}

func TestRewriteOverlappingKeysLeftmostWins(t *testing.T) {
	table := New(map[string]string{
		"ab":  "X",
		"bcd": "Y",
	}, Options{})

	assert.Equal(t, "Xcd", table.Rewrite("abcd"))
	assert.Equal(t, "xY", table.Rewrite("xbcd"))
}

func TestRewriteThumbnailToOriginal(t *testing.T) {
	table := New(map[string]string{"site/img.jpg": "r2/img.webp"}, Options{})

	assert.Equal(t, "r2/img.webp", table.Rewrite("site/img-300x200.jpg"))
	assert.Equal(t, `<img src="r2/img.webp">`, table.Rewrite(`<img src="site/img-300x200.jpg">`))
}

func TestRewriteThumbnailSchemeCounterpart(t *testing.T) {
	table := New(map[string]string{
		"https://old.site/wp-content/uploads/2020/05/most.png": "https://cdn.grad.hr/media/2020/05/most.webp",
	}, Options{})

	got := table.Rewrite("http://old.site/wp-content/uploads/2020/05/most-1024x768.png")
	assert.Equal(t, "https://cdn.grad.hr/media/2020/05/most.webp", got)
}

func TestRewriteExactThumbnailEntryWins(t *testing.T) {
	table := New(map[string]string{
		"site/img.jpg":         "r2/img.webp",
		"site/img-300x200.jpg": "r2/img-small.webp",
	}, Options{})

	assert.Equal(t, "r2/img-small.webp", table.Rewrite("site/img-300x200.jpg"))
}

func TestRewriteThumbnailFallbackSynthesis(t *testing.T) {
	t.Run("explicit convention", func(t *testing.T) {
		table := New(nil, Options{AssetBase: "https://cdn.grad.hr/media/", AssetExt: ".webp"})

		got := table.Rewrite("http://old.site/wp-content/uploads/2019/03/vijecnica-150x150.jpg")
		assert.Equal(t, "https://cdn.grad.hr/media/2019/03/vijecnica.webp", got)
	})

	t.Run("inferred convention", func(t *testing.T) {
		table := New(map[string]string{
			"http://old.site/wp-content/uploads/2018/01/park.jpg": "https://cdn.grad.hr/media/2018/01/park.webp",
		}, Options{})

		got := table.Rewrite("http://old.site/wp-content/uploads/2019/03/vijecnica-150x150.jpg")
		assert.Equal(t, "https://cdn.grad.hr/media/2019/03/vijecnica.webp", got)
	})

	t.Run("unparseable base stays unchanged", func(t *testing.T) {
		table := New(map[string]string{
			"http://old.site/wp-content/uploads/2018/01/park.jpg": "https://cdn.grad.hr/media/2018/01/park.webp",
		}, Options{})

		got := table.Rewrite("http://elsewhere.org/images/logo-64x64.png")
		assert.Equal(t, "http://elsewhere.org/images/logo-64x64.png", got)
	})

	t.Run("no convention stays unchanged", func(t *testing.T) {
		table := New(map[string]string{"http://old.site/kontakt": "/kontakt"}, Options{})

		got := table.Rewrite("http://old.site/wp-content/uploads/2019/03/vijecnica-150x150.jpg")
		assert.Equal(t, "http://old.site/wp-content/uploads/2019/03/vijecnica-150x150.jpg", got)
	})
}

func TestRewriteMixedText(t *testing.T) {
	table := New(map[string]string{
		"http://old.site/p":                                "/new/p",
		"http://old.site/wp-content/uploads/2020/01/a.jpg": "https://cdn/2020/01/a.webp",
	}, Options{})

	in := "see http://old.site/p and http://old.site/wp-content/uploads/2020/01/a-300x300.jpg done"
	want := "see /new/p and https://cdn/2020/01/a.webp done"
	assert.Equal(t, want, table.Rewrite(in))
}

func TestResolve(t *testing.T) {
	table := New(map[string]string{
		"http://old.site/same": "http://old.site/same",
		"http://old.site/p":    "/new/p",
	}, Options{})

	got, ok := table.Resolve("http://old.site/same")
	assert.True(t, ok)
	assert.Equal(t, "http://old.site/same", got)

	got, ok = table.Resolve("http://old.site/p")
	assert.True(t, ok)
	assert.Equal(t, "/new/p", got)

	got, ok = table.Resolve("http://other.site/x.jpg")
	assert.False(t, ok)
	assert.Equal(t, "http://other.site/x.jpg", got)
}

func TestResolveSynthesizesUnmappedUploads(t *testing.T) {
	table := New(map[string]string{
		"http://old.site/wp-content/uploads/2017/01/grb.png": "https://cdn.example.org/media/2017/01/grb.webp",
	}, Options{})

	got, ok := table.Resolve("http://old.site/wp-content/uploads/2019/03/zgrada.jpg")
	assert.True(t, ok)
	assert.Equal(t, "https://cdn.example.org/media/2019/03/zgrada.webp", got)

	got, ok = New(nil, Options{}).Resolve("http://old.site/wp-content/uploads/2019/03/zgrada.jpg")
	assert.False(t, ok)
	assert.Equal(t, "http://old.site/wp-content/uploads/2019/03/zgrada.jpg", got)
}

func TestNilTable(t *testing.T) {
	var table *Table

	assert.Equal(t, 0, table.Len())
	assert.Equal(t, "http://old.site/p", table.Rewrite("http://old.site/p"))
	_, ok := table.Lookup("http://old.site/p")
	assert.False(t, ok)
}

func TestNewIgnoresBlankKeys(t *testing.T) {
	table := New(map[string]string{"": "x", "  ": "y", "k": "v"}, Options{})

	assert.Equal(t, 1, table.Len())
	assert.Equal(t, "abc", table.Rewrite("abc"))
}

func TestLoad(t *testing.T) {
	table, err := Load(strings.NewReader(`{"http://old.site/p": "/new/p"}`), Options{})
	require.NoError(t, err)

	value, ok := table.Lookup("http://old.site/p")
	require.True(t, ok)
	assert.Equal(t, "/new/p", value)
}

func TestLoadRejectsNonObject(t *testing.T) {
	for _, input := range []string{`["a"]`, `null`, `{"a": 1}`, `not json`} {
		_, err := Load(strings.NewReader(input), Options{})
		require.Error(t, err, input)
		assert.ErrorIs(t, err, ErrInvalidManifest, input)
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile("testdata/does-not-exist.json", Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open url manifest")
}
