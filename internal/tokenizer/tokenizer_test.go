package tokenizer

import (
	"reflect"
	"strings"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty string", "", []string{}},
		{"simple words", "hello world", []string{"hello", "world"}},
		{"uppercase lowered", "Hello WORLD", []string{"hello", "world"}},
		{"punctuation delimits", "hello, world!", []string{"hello", "world"}},
		{"single char dropped", "a hello b", []string{"hello"}},
		{"stop words dropped", "the and for hello", []string{"hello"}},
		{"stop words case-insensitive", "The AND hello", []string{"hello"}},
		{"pure digits dropped", "12345 hello 42", []string{"hello"}},
		{"mixed alphanumeric kept", "abc123 v2go", []string{"abc123", "v2go"}},
		{"over 15 bytes dropped", "internationalization short", []string{"short"}},
		{"exactly 15 bytes kept", strings.Repeat("x", 15), []string{strings.Repeat("x", 15)}},
		{"exactly 2 bytes kept", "ab", []string{"ab"}},
		{"non-ascii delimits", "caf\xc3\xa9 bar", []string{"caf", "bar"}},
		{"trailing token flushed", "hello world", []string{"hello", "world"}},
		{"only delimiters", "!@# $%^", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTokenizeLongRunTruncated(t *testing.T) {
	// A 40-byte run keeps scanning but the buffer stops at 31 bytes; the
	// truncated candidate still exceeds MaxTokenLen and is rejected.
	got := Tokenize(strings.Repeat("z", 40) + " ok")
	want := []string{"ok"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize(long run) = %v, want %v", got, want)
	}
}

func TestTokenizeCap(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < maxTokensPerInput+500; i++ {
		sb.WriteString("word ")
	}
	got := Tokenize(sb.String())
	if len(got) > maxTokensPerInput {
		t.Errorf("emitted %d tokens, cap is %d", len(got), maxTokensPerInput)
	}
}

func TestIsStopWord(t *testing.T) {
	if !IsStopWord("the") {
		t.Error("expected 'the' to be a stop word")
	}
	if IsStopWord("hello") {
		t.Error("did not expect 'hello' to be a stop word")
	}
}

func TestToLowerASCII(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"hello", "hello"},
		{"Hello World", "hello world"},
		{"ABC123", "abc123"},
		{"caf\xc3\xa9", "caf\xc3\xa9"}, // high bytes untouched
	}
	for _, tt := range tests {
		if got := ToLowerASCII(tt.input); got != tt.want {
			t.Errorf("ToLowerASCII(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
