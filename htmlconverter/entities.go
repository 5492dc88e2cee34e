package htmlconverter

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

var entityRe = regexp.MustCompile(`&(?:#[0-9]+|nbsp|amp|lt|gt|quot|ndash|mdash|hellip|laquo|raquo);`)

var namedEntities = map[string]string{
	"&nbsp;":   " ",
	"&amp;":    "&",
	"&lt;":     "<",
	"&gt;":     ">",
	"&quot;":   `"`,
	"&ndash;":  "-",
	"&mdash;":  "-",
	"&hellip;": "...",
	"&laquo;":  `"`,
	"&raquo;":  `"`,
}

// DecodeEntities replaces the entities legacy content uses in a single
// left-to-right pass. Unknown and malformed entities are kept verbatim.
func DecodeEntities(text string) string {
	if !strings.Contains(text, "&") {
		return text
	}

	return entityRe.ReplaceAllStringFunc(text, func(entity string) string {
		if value, ok := namedEntities[entity]; ok {
			return value
		}

		digits := entity[2 : len(entity)-1]
		codePoint, err := strconv.ParseUint(digits, 10, 32)
		if err != nil || codePoint == 0 || !utf8.ValidRune(rune(codePoint)) {
			return entity
		}
		return string(rune(codePoint))
	})
}
