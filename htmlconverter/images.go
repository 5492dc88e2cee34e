package htmlconverter

import (
	"path"
	"regexp"
	"strings"

	"github.com/rgonek/wp-tiptap-converter/document"
)

var (
	imageRunRe  = regexp.MustCompile(`(?is)^(?:\s*(?:<a\b[^>]*>\s*(?:<img\b[^>]*>\s*)+</a\s*>|<img\b[^>]*>))+\s*$`)
	imageUnitRe = regexp.MustCompile(`(?is)<a\b[^>]*>\s*(?:<img\b[^>]*>\s*)+</a\s*>|<img\b[^>]*>`)
	imgTagRe    = regexp.MustCompile(`(?is)<img\b[^>]*>`)
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// buildImageRun converts content made only of images, each optionally wrapped
// in a link, into image nodes. It reports false for any other content.
func (s *state) buildImageRun(fragment string) ([]document.Node, bool) {
	if !s.config.Blocks.Has(Images) || !imageRunRe.MatchString(fragment) {
		return nil, false
	}

	var images []document.Node
	for _, unit := range imageUnitRe.FindAllString(fragment, -1) {
		href := ""
		if !strings.HasPrefix(strings.ToLower(unit), "<img") {
			if open, ok := nextTag(unit, 0); ok {
				href = tagAttrs(unit[open.start:open.end])["href"]
			}
		}
		for _, img := range imgTagRe.FindAllString(unit, -1) {
			if node, ok := s.buildImage(img, href); ok {
				images = append(images, node)
			}
		}
	}
	return images, true
}

// buildImage converts one <img>. A wrapping link to an image file points at
// the full-size original and replaces the (usually thumbnail) src.
func (s *state) buildImage(imgTag, href string) (document.Node, bool) {
	attrs := tagAttrs(imgTag)

	src := imageSource(attrs)
	if decoded := DecodeEntities(strings.TrimSpace(href)); isImageURL(decoded) {
		src = decoded
	}
	if src == "" {
		s.addWarning(document.WarningMissingImageSource, document.TypeImage, "image without src skipped")
		return document.Node{}, false
	}

	return document.ImageNode(
		s.resolveAsset(src),
		DecodeEntities(attrs["alt"]),
		DecodeEntities(attrs["title"]),
	), true
}

// imageSource prefers src and falls back to the attributes lazy-loading
// plugins move the real URL to.
func imageSource(attrs map[string]string) string {
	for _, key := range []string{"src", "data-lazy-src", "data-src", "data-orig-file"} {
		value := DecodeEntities(strings.TrimSpace(attrs[key]))
		if value != "" && !strings.HasPrefix(strings.ToLower(value), "data:") {
			return value
		}
	}
	return ""
}

func (s *state) resolveAsset(src string) string {
	resolved, ok := s.config.Rewrites.Resolve(src)
	if !ok && strings.Contains(src, "/wp-content/uploads/") {
		s.addWarning(document.WarningUnresolvedAsset, document.TypeImage, "no migrated asset for "+src)
	}
	return resolved
}

func isImageURL(ref string) bool {
	if ref == "" {
		return false
	}
	if idx := strings.IndexAny(ref, "?#"); idx >= 0 {
		ref = ref[:idx]
	}
	return imageExtensions[strings.ToLower(path.Ext(ref))]
}
