package htmlconverter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rgonek/wp-tiptap-converter/document"
	"github.com/rgonek/wp-tiptap-converter/urlmap"
	"github.com/stretchr/testify/require"
)

func goldenRewrites() *urlmap.Table {
	return urlmap.New(map[string]string{
		"http://old.site/raspored/":                          "/raspored",
		"https://old.site/obrasci/":                          "/obrasci",
		"http://old.site/wp-content/uploads/2017/01/grb.png": "https://cdn.example.org/media/2017/01/grb.webp",
	}, urlmap.Options{})
}

func goldenConfigForPath(path string) Config {
	cfg := Config{Blocks: PostBlocks, Rewrites: goldenRewrites()}
	if strings.Contains(path, string(filepath.Separator)+"pages"+string(filepath.Separator)) {
		cfg.Blocks = PageBlocks
	}
	return cfg
}

func TestGoldenFiles(t *testing.T) {
	fixtures := []string{
		"posts/announcement",
		"posts/legacy_markup",
		"pages/contacts",
	}

	for _, fixture := range fixtures {
		fixture := fixture
		t.Run(fixture, func(t *testing.T) {
			htmlPath := filepath.Join("testdata", filepath.FromSlash(fixture+".html"))
			jsonPath := filepath.Join("testdata", filepath.FromSlash(fixture+".json"))

			input, err := os.ReadFile(htmlPath)
			require.NoError(t, err)
			expectedJSON, err := os.ReadFile(jsonPath)
			require.NoError(t, err)

			conv := newTestConverter(t, goldenConfigForPath(htmlPath))
			result := conv.Convert(string(input))
			require.NoError(t, document.Validate(result.Doc))

			actualJSON, err := json.Marshal(result.Doc)
			require.NoError(t, err)

			var actualDoc, expectedDoc document.Doc
			require.NoError(t, json.Unmarshal(actualJSON, &actualDoc))
			require.NoError(t, json.Unmarshal(expectedJSON, &expectedDoc))

			if diff := cmp.Diff(expectedDoc, actualDoc); diff != "" {
				t.Errorf("document mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
