package htmlconverter

import (
	"encoding/json"
	"testing"

	"github.com/rgonek/wp-tiptap-converter/document"
	"github.com/rgonek/wp-tiptap-converter/urlmap"
)

func FuzzConvertHTML(f *testing.F) {
	seeds := []string{
		"",
		"Hello World",
		"<p><strong><em>hi</em></strong></p>",
		"<p>unclosed <b>bold <i>italic</p>",
		`<a href="full.jpg"><img src="thumb-300x200.jpg" alt="x"></a>`,
		"<ul><li>a<ul><li>b</ul></ul>",
		"<table><tr><th>A<td>B</tr></table>",
		"[caption]<img src=x>[/caption][gallery]",
		"&#0; &#55296; &#99999999999; &amp;amp;",
		"<h1></h1><h7>x</h7><blockquote></blockquote>",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	table := urlmap.New(map[string]string{
		"http://old.site/":                                   "/",
		"http://old.site/wp-content/uploads/2017/01/grb.png": "https://cdn.example.org/media/2017/01/grb.webp",
	}, urlmap.Options{})
	conv, err := New(Config{Blocks: PageBlocks, Rewrites: table})
	if err != nil {
		f.Fatalf("failed to create converter: %v", err)
	}

	f.Fuzz(func(t *testing.T, html string) {
		result := conv.Convert(html)

		if err := document.Validate(result.Doc); err != nil {
			t.Fatalf("invalid document for %q: %v", html, err)
		}
		if _, err := json.Marshal(result); err != nil {
			t.Fatalf("result does not marshal: %v", err)
		}
	})
}
