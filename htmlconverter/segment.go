package htmlconverter

import (
	"regexp"
	"strings"
)

type spanKind int

const (
	spanImplicit spanKind = iota
	spanParagraph
	spanList
	spanHeading
	spanBlockquote
	spanTable
	spanImage
)

// span is one block candidate of the normalized input.
type span struct {
	kind    spanKind
	name    string
	openTag string
	start   int
	end     int
	inner   string
}

// matcher finds the earliest block of its kind in x.s at or after from.
type matcher func(x *tagIndex, from int) (span, bool)

type rule struct {
	blocks BlockSet
	match  matcher
}

var (
	paragraphRe   = regexp.MustCompile(`(?is)<p\b[^>]*>(.*?)</p\s*>`)
	headingRe     = regexp.MustCompile(`(?is)<h[1-6]\b[^>]*>(.*?)</h[1-6]\s*>`)
	linkedImageRe = regexp.MustCompile(`(?is)<a\b[^>]*>\s*(?:<img\b[^>]*>\s*)+</a\s*>`)
	bareImageRe   = regexp.MustCompile(`(?is)<img\b[^>]*>`)
	blankLineRe   = regexp.MustCompile(`\n[ \t]*\n\s*`)
)

// blockRules lists the block matchers in priority order. When two rules match
// at the same position the earlier one wins.
var blockRules = []rule{
	{Tables, matchElement(spanTable, "table")},
	{Paragraphs, matchPattern(spanParagraph, paragraphRe, 1)},
	{Lists, matchElement(spanList, "ul", "ol")},
	{Headings, matchPattern(spanHeading, headingRe, 1)},
	{Blockquotes, matchElement(spanBlockquote, "blockquote")},
	{Images, matchPattern(spanImage, linkedImageRe, 0)},
	{Images, matchPattern(spanImage, bareImageRe, 0)},
}

func rulesFor(blocks BlockSet) []rule {
	rules := make([]rule, 0, len(blockRules))
	for _, r := range blockRules {
		if blocks.Has(r.blocks) {
			rules = append(rules, r)
		}
	}
	return rules
}

func matchElement(kind spanKind, names ...string) matcher {
	return func(x *tagIndex, from int) (span, bool) {
		el, ok := x.findElement(from, names...)
		if !ok {
			return span{}, false
		}
		return span{
			kind:    kind,
			name:    el.name,
			openTag: el.openTag,
			start:   el.start,
			end:     el.end,
			inner:   el.inner(x.s),
		}, true
	}
}

// matchPattern builds a matcher from a regexp; innerGroup selects the
// submatch holding the block content, 0 meaning the whole match.
func matchPattern(kind spanKind, re *regexp.Regexp, innerGroup int) matcher {
	return func(x *tagIndex, from int) (span, bool) {
		s := x.s
		loc := re.FindStringSubmatchIndex(s[from:])
		if loc == nil {
			return span{}, false
		}

		sp := span{
			kind:  kind,
			start: from + loc[0],
			end:   from + loc[1],
			inner: s[from+loc[2*innerGroup] : from+loc[2*innerGroup+1]],
		}
		if open, ok := nextTag(s, sp.start); ok {
			sp.name = open.name
			sp.openTag = s[open.start:open.end]
		}
		return sp, true
	}
}

type cachedMatch struct {
	span    span
	ok      bool
	scanned bool
}

// segment splits html into block spans in document order. At every position
// the earliest match wins; text between matches becomes implicit paragraphs,
// one per blank-line separated piece.
func segment(html string, rules []rule) []span {
	var spans []span
	cache := make([]cachedMatch, len(rules))
	x := indexTags(html)

	pos := 0
	for pos < len(html) {
		best := -1
		for i, r := range rules {
			cached := &cache[i]
			if !cached.scanned || (cached.ok && cached.span.start < pos) {
				cached.span, cached.ok = r.match(x, pos)
				cached.scanned = true
			}
			if cached.ok && (best < 0 || cached.span.start < cache[best].span.start) {
				best = i
			}
		}
		if best < 0 {
			break
		}

		next := cache[best].span
		spans = appendImplicitSpans(spans, html, pos, next.start)
		spans = append(spans, next)
		pos = next.end
	}

	return appendImplicitSpans(spans, html, pos, len(html))
}

func appendImplicitSpans(spans []span, html string, start, end int) []span {
	if start >= end {
		return spans
	}

	gap := html[start:end]
	pieceStart := 0
	for _, loc := range append(blankLineRe.FindAllStringIndex(gap, -1), []int{len(gap), len(gap)}) {
		piece := gap[pieceStart:loc[0]]
		if strings.TrimSpace(piece) != "" {
			spans = append(spans, span{
				kind:  spanImplicit,
				start: start + pieceStart,
				end:   start + loc[0],
				inner: piece,
			})
		}
		pieceStart = loc[1]
	}
	return spans
}
