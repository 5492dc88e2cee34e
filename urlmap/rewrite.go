package urlmap

import (
	"regexp"
	"strings"
)

// thumbnailRe matches WordPress generated size variants: <base>-<w>x<h>.<ext>.
var thumbnailRe = regexp.MustCompile(`([^\s"'<>(),]+)-(\d+)x(\d+)\.((?i:jpe?g|png|gif))\b`)

// Rewrite replaces every legacy URL found in text.
//
// Keys are matched in one left-to-right pass: at each position the longest
// key wins, and a match is kept even when a longer key overlaps it from a
// later position. Replaced values are not scanned again. Thumbnail variants are mapped back to the migrated
// original; when the original is not in the table a URL is synthesized from
// the migrated asset convention, and when that is impossible the thumbnail is
// left as is.
func (t *Table) Rewrite(text string) string {
	if t == nil || text == "" {
		return text
	}

	matches := thumbnailRe.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return t.replace(text)
	}

	var sb strings.Builder
	last := 0
	for _, match := range matches {
		sb.WriteString(t.replace(text[last:match[0]]))

		thumbnail := text[match[0]:match[1]]
		original := text[match[2]:match[3]] + "." + text[match[8]:match[9]]
		if mapped, ok := t.resolveThumbnail(thumbnail, original); ok {
			sb.WriteString(mapped)
		} else {
			sb.WriteString(thumbnail)
		}
		last = match[1]
	}
	sb.WriteString(t.replace(text[last:]))

	return sb.String()
}

// Resolve rewrites a single URL and reports whether anything mapped it. An
// unmapped legacy upload URL is synthesized from the migrated asset
// convention, the same way unmapped thumbnails are.
func (t *Table) Resolve(legacy string) (string, bool) {
	if t == nil {
		return legacy, false
	}
	if value, ok := t.entries[legacy]; ok {
		return value, true
	}
	if rewritten := t.Rewrite(legacy); rewritten != legacy {
		return rewritten, true
	}
	if synthesized, ok := t.synthesize(legacy); ok {
		return synthesized, true
	}
	return legacy, false
}

func (t *Table) resolveThumbnail(thumbnail, original string) (string, bool) {
	if value, ok := t.entries[thumbnail]; ok {
		return value, true
	}
	for _, candidate := range []string{original, schemeCounterpart(original)} {
		if candidate == "" {
			continue
		}
		if value, ok := t.entries[candidate]; ok {
			return value, true
		}
	}
	return t.synthesize(original)
}

func (t *Table) replace(text string) string {
	if t.replacer == nil {
		return text
	}
	return t.replacer.Replace(text)
}

func schemeCounterpart(url string) string {
	switch {
	case strings.HasPrefix(url, "http://"):
		return "https://" + strings.TrimPrefix(url, "http://")
	case strings.HasPrefix(url, "https://"):
		return "http://" + strings.TrimPrefix(url, "https://")
	default:
		return ""
	}
}
