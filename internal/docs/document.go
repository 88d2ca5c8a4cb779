package docs

import (
	"regexp"
	"strings"
)

// Paragraph is a single titled block of text extracted from a document.
type Paragraph struct {
	Title    string
	Contents string
}

// Heading returns the first non-blank line of the title. Header patterns that
// capture an underline (reStructuredText style) keep it in Title verbatim.
func (p Paragraph) Heading() string {
	for _, line := range strings.Split(p.Title, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// Document holds the paragraphs extracted from one source file.
type Document struct {
	Paragraphs []Paragraph
	Path       string
}

// NewDocument builds a document for path. A nil paragraph slice is normalised
// to an empty one so callers can range and compare without special cases.
func NewDocument(paragraphs []Paragraph, path string) Document {
	if paragraphs == nil {
		paragraphs = []Paragraph{}
	}
	return Document{Paragraphs: paragraphs, Path: path}
}

// Extract splits input into paragraphs at every non-overlapping match of
// pattern. The body of a paragraph runs from the end of its match to the start
// of the next match, or to the end of input for the last one.
func Extract(pattern *regexp.Regexp, input string) []Paragraph {
	if pattern == nil {
		return []Paragraph{}
	}
	matches := pattern.FindAllStringIndex(input, -1)
	paragraphs := make([]Paragraph, 0, len(matches))
	for i, match := range matches {
		end := len(input)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		paragraphs = append(paragraphs, Paragraph{
			Title:    strings.TrimSpace(input[match[0]:match[1]]),
			Contents: input[match[1]:end],
		})
	}
	return paragraphs
}
