package htmlconverter

import (
	"regexp"
	"strings"
)

var (
	// Covers <!--more-->, block editor delimiters (<!-- wp:... -->) and any
	// other comment left in legacy content.
	commentRe = regexp.MustCompile(`(?s)<!--.*?-->`)

	captionRe = regexp.MustCompile(`(?is)\[caption\b[^\]]*\](.*?)\[/caption\]`)
	galleryRe = regexp.MustCompile(`(?i)\[/?(?:[a-z_-]*gallery[a-z_-]*|slideshow)\b[^\]]*\]`)
	scriptRe  = regexp.MustCompile(`(?is)<script\b.*?</script\s*>`)
	styleRe   = regexp.MustCompile(`(?is)<style\b.*?</style\s*>`)
)

// normalize strips WordPress artifacts and unifies line endings before
// segmentation.
func normalize(html string) string {
	html = strings.ToValidUTF8(html, "\uFFFD")
	html = strings.ReplaceAll(html, "\r\n", "\n")
	html = strings.ReplaceAll(html, "\r", "\n")

	html = commentRe.ReplaceAllString(html, "")
	html = scriptRe.ReplaceAllString(html, "")
	html = styleRe.ReplaceAllString(html, "")
	for captionRe.MatchString(html) {
		html = captionRe.ReplaceAllString(html, "$1")
	}
	html = galleryRe.ReplaceAllString(html, "")

	return html
}
