package search

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/Ateeblj/Mini-Google/index"
	"github.com/Ateeblj/Mini-Google/internal/cache"
	"github.com/Ateeblj/Mini-Google/internal/indexing"
	"github.com/Ateeblj/Mini-Google/internal/trie"
	"github.com/Ateeblj/Mini-Google/store"
)

// buildCorpus indexes the given filename→content fixtures in slice order
// and returns a search service over the result.
func buildCorpus(t *testing.T, perDocNorm bool, files [][2]string) *Service {
	t.Helper()
	dir := t.TempDir()
	paths := make([]string, 0, len(files))
	for _, f := range files {
		path := filepath.Join(dir, f[0])
		if err := os.WriteFile(path, []byte(f[1]), 0o644); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, path)
	}

	invIdx := index.New()
	docStore := store.New()
	indexer, err := indexing.NewService(invIdx, docStore, trie.New())
	if err != nil {
		t.Fatalf("indexing.NewService: %v", err)
	}
	indexer.BuildFromFiles(paths)

	svc, err := NewService(invIdx, docStore, cache.New(cache.DefaultCapacity), perDocNorm)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestSearchEmptyIndex(t *testing.T) {
	svc := buildCorpus(t, false, nil)
	if got := svc.SearchWithRanking("foo", 1, 10); len(got) != 0 {
		t.Errorf("expected no results, got %v", got)
	}
	if got := svc.TotalResults("foo"); got != 0 {
		t.Errorf("TotalResults = %d, want 0", got)
	}
}

func TestSearchSingleDocument(t *testing.T) {
	svc := buildCorpus(t, false, [][2]string{{"a.txt", "hello world hello"}})

	results := svc.SearchWithRanking("hello", 1, 10)
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	r := results[0]
	if r.DocID != 0 {
		t.Errorf("DocID = %d", r.DocID)
	}
	if r.TotalOccurrences != 2 {
		t.Errorf("TotalOccurrences = %d, want 2", r.TotalOccurrences)
	}
	if r.InTitle {
		t.Error("InTitle should be false")
	}
	if r.Score <= 0 {
		t.Errorf("Score = %f", r.Score)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	svc := buildCorpus(t, false, [][2]string{{"a.txt", "hello world"}})
	if got := svc.SearchWithRanking("", 1, 10); len(got) != 0 {
		t.Errorf("empty query returned %v", got)
	}
	if got := svc.SearchWithRanking("!!! ???", 1, 10); len(got) != 0 {
		t.Errorf("unparseable query returned %v", got)
	}
}

func TestTitleBoostRanksFirst(t *testing.T) {
	svc := buildCorpus(t, false, [][2]string{
		{"cat.txt", "dog"},
		{"dog.txt", "dog dog dog"},
	})

	results := svc.SearchWithRanking("dog", 1, 10)
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if !results[0].InTitle {
		t.Error("top result should have a title match")
	}
	if results[0].DocID != 1 {
		t.Errorf("top result DocID = %d, want dog.txt (1)", results[0].DocID)
	}
	if results[1].InTitle {
		t.Error("cat.txt should not title-match")
	}
	if results[0].TitleBoost <= 0 {
		t.Errorf("TitleBoost = %f", results[0].TitleBoost)
	}
}

func TestExactPhraseRanksFirst(t *testing.T) {
	svc := buildCorpus(t, false, [][2]string{
		{"a.txt", "the quick brown fox"},
		{"b.txt", "quick the brown fox"},
	})

	results := svc.SearchWithRanking("quick brown", 1, 10)
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if !results[0].ExactPhraseMatch || results[0].DocID != 0 {
		t.Errorf("top result = %+v, want exact-phrase doc 0", results[0])
	}
	if results[1].ExactPhraseMatch {
		t.Errorf("doc %d should not exact-phrase match", results[1].DocID)
	}
}

func TestExactPhraseSkippedForSingleToken(t *testing.T) {
	svc := buildCorpus(t, false, [][2]string{{"a.txt", "hello world"}})
	results := svc.SearchWithRanking("hello", 1, 10)
	if len(results) != 1 || results[0].ExactPhraseMatch {
		t.Errorf("single-token query must not set ExactPhraseMatch: %v", results)
	}
}

func TestPaginationLaw(t *testing.T) {
	files := make([][2]string, 25)
	for i := range files {
		files[i] = [2]string{
			fmt.Sprintf("doc%02d.txt", i),
			fmt.Sprintf("shared topic number%d content", i),
		}
	}
	svc := buildCorpus(t, false, files)

	total := svc.TotalResults("shared")
	if total != 25 {
		t.Fatalf("TotalResults = %d, want 25", total)
	}

	all := svc.SearchWithRanking("shared", 1, total)
	paged := make([]int, 0, total)
	for page := 1; page <= 3; page++ {
		chunk := svc.SearchWithRanking("shared", page, 10)
		wantLen := 10
		if page == 3 {
			wantLen = 5
		}
		if len(chunk) != wantLen {
			t.Fatalf("page %d returned %d results, want %d", page, len(chunk), wantLen)
		}
		for _, r := range chunk {
			paged = append(paged, r.DocID)
		}
	}
	for i, r := range all {
		if paged[i] != r.DocID {
			t.Fatalf("pagination order diverges at %d: %d vs %d", i, paged[i], r.DocID)
		}
	}

	if got := svc.SearchWithRanking("shared", 4, 10); len(got) != 0 {
		t.Errorf("page past the end returned %v", got)
	}
}

func TestCacheIdempotence(t *testing.T) {
	svc := buildCorpus(t, false, [][2]string{
		{"a.txt", "hello world"},
		{"b.txt", "hello there"},
	})

	first := svc.SearchWithRanking("hello", 1, 10)
	second := svc.SearchWithRanking("hello", 1, 10)
	if len(first) != len(second) {
		t.Fatalf("result lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("result %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}

	hits, _ := svc.resultCache.Stats()
	if hits == 0 {
		t.Error("second identical query should hit the cache")
	}
}

func TestIDF(t *testing.T) {
	svc := buildCorpus(t, false, [][2]string{
		{"a.txt", "common rare"},
		{"b.txt", "common"},
	})

	if got := svc.IDF("missing"); got != 0 {
		t.Errorf("IDF(missing) = %f, want 0", got)
	}
	common := svc.IDF("common")
	rare := svc.IDF("rare")
	if rare <= common {
		t.Errorf("IDF(rare)=%f should exceed IDF(common)=%f", rare, common)
	}
}

func TestUnknownTermNoResults(t *testing.T) {
	svc := buildCorpus(t, false, [][2]string{{"a.txt", "hello world"}})
	if got := svc.SearchWithRanking("zebra", 1, 10); len(got) != 0 {
		t.Errorf("unknown term returned %v", got)
	}
}

func TestPerDocLengthNormMode(t *testing.T) {
	// With per-document normalization, each document's own token count
	// drives tf; both modes must still return the same match set.
	files := [][2]string{
		{"short.txt", "needle alpha beta"},
		{"long.txt", "needle " + repeatWords("filler", 2000)},
	}
	legacy := buildCorpus(t, false, files)
	corrected := buildCorpus(t, true, files)

	lr := legacy.SearchWithRanking("needle", 1, 10)
	cr := corrected.SearchWithRanking("needle", 1, 10)
	if len(lr) != 2 || len(cr) != 2 {
		t.Fatalf("match set sizes: legacy=%d corrected=%d, want 2", len(lr), len(cr))
	}
}

func repeatWords(word string, n int) string {
	out := make([]byte, 0, (len(word)+1)*n)
	for i := 0; i < n; i++ {
		if i > 0 {
			out = append(out, ' ')
		}
		out = append(out, word...)
	}
	return string(out)
}
