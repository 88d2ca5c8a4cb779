package docs

import (
	"path/filepath"
	"strings"
)

// Entry is a paragraph located through an Index together with its source.
type Entry struct {
	Paragraph Paragraph
	Path      string
}

// Index looks up paragraphs by the heading they document. Documents are
// grouped by file stem ("vm.rst" -> "vm") so callers can prefer the file that
// matches a parameter's section.
type Index struct {
	byGroup map[string]map[string]Entry
	any     map[string]Entry
}

// NewIndex indexes every paragraph of documents. Headings that list several
// names ("a, b" or "a/b") are indexed under each of them. The first paragraph
// seen for a key wins.
func NewIndex(documents []Document) *Index {
	idx := &Index{
		byGroup: make(map[string]map[string]Entry),
		any:     make(map[string]Entry),
	}
	for _, doc := range documents {
		group := documentGroup(doc.Path)
		entries := idx.byGroup[group]
		if entries == nil {
			entries = make(map[string]Entry)
			idx.byGroup[group] = entries
		}
		for _, paragraph := range doc.Paragraphs {
			entry := Entry{Paragraph: paragraph, Path: doc.Path}
			for _, key := range headingKeys(paragraph.Heading()) {
				if _, ok := entries[key]; !ok {
					entries[key] = entry
				}
				if _, ok := idx.any[key]; !ok {
					idx.any[key] = entry
				}
			}
		}
	}
	return idx
}

// Lookup returns the first entry matching one of names, searching the group
// first and then every document.
func (idx *Index) Lookup(group string, names ...string) (Entry, bool) {
	if idx == nil {
		return Entry{}, false
	}
	if entries, ok := idx.byGroup[strings.ToLower(group)]; ok {
		for _, name := range names {
			if entry, ok := entries[normaliseKey(name)]; ok {
				return entry, true
			}
		}
	}
	for _, name := range names {
		if entry, ok := idx.any[normaliseKey(name)]; ok {
			return entry, true
		}
	}
	return Entry{}, false
}

func documentGroup(path string) string {
	base := filepath.Base(path)
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
}

func headingKeys(heading string) []string {
	parts := strings.FieldsFunc(heading, func(r rune) bool {
		return r == ',' || r == '/'
	})
	keys := make([]string, 0, len(parts))
	for _, part := range parts {
		if key := normaliseKey(part); key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}

func normaliseKey(s string) string {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), ":"))
	return strings.ToLower(s)
}
