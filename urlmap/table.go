// Package urlmap rewrites legacy WordPress URLs to their migrated locations.
package urlmap

import (
	"regexp"
	"sort"
	"strings"
)

// Options configures how thumbnails without a table entry are resolved.
type Options struct {
	// AssetBase is the migrated asset prefix, e.g. "https://cdn.example.org/media".
	// When empty it is inferred from the table entries.
	AssetBase string
	// AssetExt is the extension of migrated images, e.g. "webp". When empty it
	// is inferred together with AssetBase.
	AssetExt string
}

// Table is an immutable mapping from legacy URLs to migrated URLs.
// A nil *Table behaves as an empty table. Tables are safe for concurrent use.
type Table struct {
	entries    map[string]string
	replacer   *strings.Replacer
	convention convention
}

type convention struct {
	base string
	ext  string
}

func (c convention) ok() bool {
	return c.base != "" && c.ext != ""
}

var uploadPathRe = regexp.MustCompile(`/wp-content/uploads/((?:\d{4}/\d{2}/)?)([^/?#]+?)\.([A-Za-z0-9]+)$`)

// New builds a table from entries. The map is copied; keys that are blank
// after trimming are ignored.
func New(entries map[string]string, opts Options) *Table {
	t := &Table{entries: make(map[string]string, len(entries))}
	for key, value := range entries {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		t.entries[key] = strings.TrimSpace(value)
	}

	keys := t.sortedKeys()
	// Longest keys first: the replacer prefers earlier pairs when several keys
	// match at the same position.
	sort.SliceStable(keys, func(i, j int) bool {
		return len(keys[i]) > len(keys[j])
	})
	oldnew := make([]string, 0, len(keys)*2)
	for _, key := range keys {
		oldnew = append(oldnew, key, t.entries[key])
	}
	t.replacer = strings.NewReplacer(oldnew...)

	t.convention = convention{
		base: strings.TrimRight(strings.TrimSpace(opts.AssetBase), "/"),
		ext:  strings.TrimPrefix(strings.TrimSpace(opts.AssetExt), "."),
	}
	if !t.convention.ok() {
		t.convention = t.inferConvention(t.convention)
	}

	return t
}

// Len returns the number of entries.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Lookup returns the migrated URL for an exact legacy URL.
func (t *Table) Lookup(legacy string) (string, bool) {
	if t == nil {
		return "", false
	}
	value, ok := t.entries[legacy]
	return value, ok
}

func (t *Table) sortedKeys() []string {
	keys := make([]string, 0, len(t.entries))
	for key := range t.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// inferConvention derives the migrated asset prefix and extension from the
// first legacy upload entry whose value keeps the upload's date path and stem.
func (t *Table) inferConvention(explicit convention) convention {
	for _, key := range t.sortedKeys() {
		match := uploadPathRe.FindStringSubmatch(key)
		if match == nil {
			continue
		}

		value := t.entries[key]
		tail := "/" + match[1] + match[2] + "."
		idx := strings.LastIndex(value, tail)
		if idx <= 0 {
			continue
		}
		ext := value[idx+len(tail):]
		if ext == "" || strings.ContainsAny(ext, "/?#.") {
			continue
		}

		inferred := convention{base: value[:idx], ext: ext}
		if explicit.base != "" {
			inferred.base = explicit.base
		}
		if explicit.ext != "" {
			inferred.ext = explicit.ext
		}
		return inferred
	}
	return explicit
}

// synthesize maps a legacy upload URL onto the migrated asset convention.
func (t *Table) synthesize(legacy string) (string, bool) {
	if !t.convention.ok() {
		return "", false
	}
	match := uploadPathRe.FindStringSubmatch(legacy)
	if match == nil {
		return "", false
	}
	return t.convention.base + "/" + match[1] + match[2] + "." + t.convention.ext, true
}
