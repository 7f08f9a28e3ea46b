package search

import (
	"sort"
	"strings"
)

const (
	snippetContext    = 200
	snippetFallback   = 300
	minLineSnippet    = 50
	minWindowSnippet  = 100
	minSnippetTermLen = 2
)

// Snippet extracts a display excerpt of text around the first usable match
// of any query term. Matching is byte-wise and case-sensitive against the
// stored text. With no match it falls back to the first alphabetic-starting
// line, then to the head of the text.
func Snippet(text string, queryTerms []string) string {
	if len(text) == 0 || len(queryTerms) == 0 {
		return ""
	}

	type match struct {
		pos  int
		term string
	}
	matches := make([]match, 0)
	for _, term := range queryTerms {
		if len(term) < minSnippetTermLen {
			continue
		}
		for from := 0; ; {
			idx := strings.Index(text[from:], term)
			if idx < 0 {
				break
			}
			pos := from + idx
			matches = append(matches, match{pos: pos, term: term})
			from = pos + 1
		}
	}

	if len(matches) == 0 {
		for i := 0; i < len(text); i++ {
			if !isAlphaByte(text[i]) {
				continue
			}
			end := strings.IndexByte(text[i:], '\n')
			if end < 0 {
				end = len(text)
			} else {
				end += i
			}
			line := text[i:min(i+snippetFallback, end)]
			if len(line) > minLineSnippet {
				return line
			}
		}
		return text[:min(snippetFallback, len(text))]
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].pos != matches[j].pos {
			return matches[i].pos < matches[j].pos
		}
		return matches[i].term < matches[j].term
	})

	for _, m := range matches {
		contextStart := 0
		if m.pos > snippetContext {
			contextStart = m.pos - snippetContext
		}
		contextEnd := min(m.pos+snippetContext, len(text))

		snippet := text[contextStart:contextEnd]
		if contextStart > 0 {
			snippet = "..." + snippet
		}
		if contextEnd < len(text) {
			snippet += "..."
		}
		if len(snippet) > minWindowSnippet {
			return snippet
		}
	}
	return text[:min(snippetFallback, len(text))]
}

func isAlphaByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
