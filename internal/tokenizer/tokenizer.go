// Package tokenizer converts raw text into normalized index terms. It scans
// bytewise: runs of ASCII alphanumerics become candidate tokens, everything
// else is a delimiter. Candidates are lowercased and kept only if they are
// 2–15 bytes long, not a stop word, and not entirely digits.
package tokenizer

const (
	// maxTokenBuffer caps the accumulated run; longer runs keep scanning
	// but stop appending.
	maxTokenBuffer = 31

	// MinTokenLen and MaxTokenLen bound accepted token lengths.
	MinTokenLen = 2
	MaxTokenLen = 15

	// maxTokensPerInput bounds the emitted sequence for a single input.
	maxTokensPerInput = 100000
)

var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "are": {}, "but": {}, "not": {},
	"you": {}, "all": {}, "any": {}, "can": {}, "had": {}, "her": {},
	"was": {}, "one": {}, "our": {}, "out": {}, "day": {}, "get": {},
	"has": {}, "him": {}, "his": {}, "how": {}, "man": {}, "new": {},
	"now": {}, "old": {}, "see": {}, "two": {}, "way": {}, "who": {},
	"boy": {}, "did": {}, "its": {}, "let": {}, "put": {}, "say": {},
	"she": {}, "too": {}, "use": {}, "may": {}, "also": {}, "than": {},
	"that": {}, "this": {}, "with": {}, "from": {}, "have": {}, "were": {},
	"been": {}, "they": {}, "what": {}, "when": {}, "where": {}, "which": {},
	"will": {}, "your": {}, "their": {},
}

// Tokenize breaks text into accepted terms, preserving input order.
func Tokenize(text string) []string {
	tokens := make([]string, 0, 64)
	if len(text) == 0 {
		return tokens
	}

	var buf [maxTokenBuffer]byte
	bufLen := 0

	for i := 0; i < len(text) && len(tokens) < maxTokensPerInput; i++ {
		c := text[i]
		if isAlnum(c) {
			if bufLen < maxTokenBuffer {
				buf[bufLen] = lower(c)
				bufLen++
			}
		} else if bufLen > 0 {
			if word, ok := accept(buf[:bufLen]); ok {
				tokens = append(tokens, word)
			}
			bufLen = 0
		}
	}
	if bufLen > 0 {
		if word, ok := accept(buf[:bufLen]); ok {
			tokens = append(tokens, word)
		}
	}
	return tokens
}

// accept validates a candidate run and returns it as an owned string.
func accept(run []byte) (string, bool) {
	if len(run) < MinTokenLen || len(run) > MaxTokenLen {
		return "", false
	}
	word := string(run)
	if _, stop := stopWords[word]; stop {
		return "", false
	}
	if allDigits(word) {
		return "", false
	}
	return word, true
}

// IsStopWord reports whether the (already lowercased) word is filtered out.
func IsStopWord(word string) bool {
	_, ok := stopWords[word]
	return ok
}

// ToLowerASCII lowercases ASCII letters only; bytes >= 0x80 pass through
// unchanged. The engine's string handling is byte-oriented throughout.
func ToLowerASCII(s string) string {
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= 'A' && c <= 'Z' {
			b := []byte(s)
			for ; i < len(b); i++ {
				if c := b[i]; c >= 'A' && c <= 'Z' {
					b[i] = c + ('a' - 'A')
				}
			}
			return string(b)
		}
	}
	return s
}

func isAlnum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
