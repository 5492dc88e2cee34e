package htmlconverter

import (
	"regexp"
	"sort"
	"strings"

	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	tagRe  = regexp.MustCompile(`<(/?)([a-zA-Z][a-zA-Z0-9]*)\b[^>]*>`)
	attrRe = regexp.MustCompile(`([a-zA-Z_:][-a-zA-Z0-9_:.]*)\s*=\s*(?:"([^"]*)"|'([^']*)'|([^\s"'=<>` + "`" + `]+))`)
	imgRe  = regexp.MustCompile(`(?i)<img\b`)
)

// tag is one opening or closing tag found in a fragment.
type tag struct {
	name    string
	closing bool
	start   int
	end     int
}

// element is a tag with its content, located by byte offsets.
type element struct {
	name       string
	openTag    string
	start      int
	innerStart int
	innerEnd   int
	end        int
}

func nextTag(s string, from int) (tag, bool) {
	if from >= len(s) {
		return tag{}, false
	}
	loc := tagRe.FindStringSubmatchIndex(s[from:])
	if loc == nil {
		return tag{}, false
	}
	return tag{
		name:    strings.ToLower(s[from+loc[4] : from+loc[5]]),
		closing: loc[3] > loc[2],
		start:   from + loc[0],
		end:     from + loc[1],
	}, true
}

// tagIndex lists the tags of a string in document order and pairs every
// opening tag with the closing tag that balances it.
type tagIndex struct {
	s    string
	tags []tag
	// closer holds the index of the balancing closing tag, -1 if none.
	closer []int
}

func indexTags(s string) *tagIndex {
	x := &tagIndex{s: s}
	for _, loc := range tagRe.FindAllStringSubmatchIndex(s, -1) {
		x.tags = append(x.tags, tag{
			name:    strings.ToLower(s[loc[4]:loc[5]]),
			closing: loc[3] > loc[2],
			start:   loc[0],
			end:     loc[1],
		})
	}

	x.closer = make([]int, len(x.tags))
	open := make(map[string][]int)
	for i, t := range x.tags {
		x.closer[i] = -1
		stack := open[t.name]
		if !t.closing {
			open[t.name] = append(stack, i)
			continue
		}
		if len(stack) > 0 {
			x.closer[stack[len(stack)-1]] = i
			open[t.name] = stack[:len(stack)-1]
		}
	}
	return x
}

// at returns the index of the first tag starting at or after pos.
func (x *tagIndex) at(pos int) int {
	return sort.Search(len(x.tags), func(i int) bool { return x.tags[i].start >= pos })
}

// closeOf returns the tag closing the opening tag i when it ends within to.
func (x *tagIndex) closeOf(i, to int) (int, bool) {
	c := x.closer[i]
	if c < 0 || x.tags[c].end > to {
		return 0, false
	}
	return c, true
}

// nextOpen returns the first opening tag at or after from whose name is one
// of names.
func (x *tagIndex) nextOpen(from int, names ...string) (int, bool) {
	for i := x.at(from); i < len(x.tags); i++ {
		if t := x.tags[i]; !t.closing && hasName(names, t.name) {
			return i, true
		}
	}
	return 0, false
}

func (x *tagIndex) element(open, closing int) element {
	o, c := x.tags[open], x.tags[closing]
	return element{
		name:       o.name,
		openTag:    x.s[o.start:o.end],
		start:      o.start,
		innerStart: o.end,
		innerEnd:   c.start,
		end:        c.end,
	}
}

// findElement returns the first balanced element named one of names. An
// opening tag without a matching close is skipped.
func (x *tagIndex) findElement(from int, names ...string) (element, bool) {
	pos := from
	for {
		i, ok := x.nextOpen(pos, names...)
		if !ok {
			return element{}, false
		}
		if c, ok := x.closeOf(i, len(x.s)); ok {
			return x.element(i, c), true
		}
		pos = x.tags[i].end
	}
}

// findItem is findElement for elements whose end tag is optional (li, tr,
// td, th): an unclosed item ends where the next sibling item starts.
func (x *tagIndex) findItem(from int, names ...string) (element, bool) {
	i, ok := x.nextOpen(from, names...)
	if !ok {
		return element{}, false
	}
	if c, ok := x.closeOf(i, len(x.s)); ok {
		return x.element(i, c), true
	}

	open := x.tags[i]
	item := element{
		name:       open.name,
		openTag:    x.s[open.start:open.end],
		start:      open.start,
		innerStart: open.end,
		innerEnd:   len(x.s),
		end:        len(x.s),
	}
	if next, ok := x.nextOpen(open.end, names...); ok {
		item.innerEnd, item.end = x.tags[next].start, x.tags[next].start
	}
	return item, true
}

func (e element) inner(s string) string {
	return s[e.innerStart:e.innerEnd]
}

func hasName(names []string, name string) bool {
	for _, candidate := range names {
		if candidate == name {
			return true
		}
	}
	return false
}

// tagAttrs returns the raw attribute values of an opening tag, keyed by
// lowercase name. Values are not entity-decoded.
func tagAttrs(openTag string) map[string]string {
	attrs := make(map[string]string)
	if end := strings.IndexAny(openTag, " \t\n/>"); end > 0 {
		openTag = openTag[end:]
	}
	for _, match := range attrRe.FindAllStringSubmatch(openTag, -1) {
		key := strings.ToLower(match[1])
		if _, seen := attrs[key]; seen {
			continue
		}
		attrs[key] = match[2] + match[3] + match[4]
	}
	return attrs
}

func containsImage(fragment string) bool {
	return imgRe.MatchString(fragment)
}

// stripTags drops all markup from a fragment and keeps its raw text. Line
// breaks and the ends of block elements become newlines.
func stripTags(fragment string) string {
	var sb strings.Builder
	z := xhtml.NewTokenizer(strings.NewReader(fragment))
	for {
		switch z.Next() {
		case xhtml.ErrorToken:
			return sb.String()
		case xhtml.TextToken:
			sb.Write(z.Raw())
		case xhtml.StartTagToken, xhtml.SelfClosingTagToken:
			name, _ := z.TagName()
			if atom.Lookup(name) == atom.Br {
				sb.WriteString("\n")
			}
		case xhtml.EndTagToken:
			name, _ := z.TagName()
			switch atom.Lookup(name) {
			case atom.P, atom.Div, atom.Li, atom.Tr, atom.H2, atom.H3, atom.H4:
				sb.WriteString("\n")
			}
		}
	}
}
