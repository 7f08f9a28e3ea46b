// Package engine wires the index, trie, caches, and services into the
// query facade. An Engine is built once per process: IndexFolder populates
// it, after which the index and trie are read-only.
package engine

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Ateeblj/Mini-Google/index"
	"github.com/Ateeblj/Mini-Google/internal/cache"
	internalErrors "github.com/Ateeblj/Mini-Google/internal/errors"
	"github.com/Ateeblj/Mini-Google/internal/indexing"
	"github.com/Ateeblj/Mini-Google/internal/scanner"
	"github.com/Ateeblj/Mini-Google/internal/search"
	"github.com/Ateeblj/Mini-Google/internal/tokenizer"
	"github.com/Ateeblj/Mini-Google/internal/trie"
	"github.com/Ateeblj/Mini-Google/model"
	"github.com/Ateeblj/Mini-Google/store"
)

// maxPrefixQueryTerms caps how many trie completions are joined into the
// synthetic query for prefix search.
const maxPrefixQueryTerms = 5

// Options tune engine construction.
type Options struct {
	// PerDocLengthNorm enables the corrected ranking mode in which tf and
	// length normalization use each posting's own document.
	PerDocLengthNorm bool
}

// Engine owns all search state for one corpus.
type Engine struct {
	invertedIndex *index.InvertedIndex
	documentStore *store.DocumentStore
	trie          *trie.Trie
	resultCache   *cache.ResultCache

	indexer  *indexing.Service
	searcher *search.Service

	dataDir   string
	lastBuild indexing.BuildStats
}

// New creates an empty Engine.
func New(opts Options) *Engine {
	invIdx := index.New()
	docStore := store.New()
	tr := trie.New()
	resultCache := cache.New(cache.DefaultCapacity)

	indexer, err := indexing.NewService(invIdx, docStore, tr)
	if err != nil {
		// All arguments are constructed above; this cannot happen.
		panic(fmt.Sprintf("engine: creating indexing service: %v", err))
	}
	searcher, err := search.NewService(invIdx, docStore, resultCache, opts.PerDocLengthNorm)
	if err != nil {
		panic(fmt.Sprintf("engine: creating search service: %v", err))
	}

	return &Engine{
		invertedIndex: invIdx,
		documentStore: docStore,
		trie:          tr,
		resultCache:   resultCache,
		indexer:       indexer,
		searcher:      searcher,
	}
}

// IndexFolder validates dir, scans it for text files, and builds the index.
// Per-file failures never abort the build; only an invalid directory is an
// error. A directory with no eligible files leaves any existing index
// state untouched.
func (e *Engine) IndexFolder(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		log.Error().Str("dir", dir).Msg("directory not found")
		return fmt.Errorf("%w: %s", internalErrors.ErrDirectoryNotFound, dir)
	}
	if !info.IsDir() {
		log.Error().Str("dir", dir).Msg("not a directory")
		return fmt.Errorf("%w: %s", internalErrors.ErrNotDirectory, dir)
	}

	files := scanner.ScanTxtFiles(dir)
	if len(files) == 0 {
		// Existing index state, if any, is left untouched.
		log.Warn().Str("dir", dir).Msg("no text files found")
		return nil
	}

	e.dataDir = dir
	log.Info().Int("files", len(files)).Str("dir", dir).Msg("found text files to index")
	e.lastBuild = e.indexer.BuildFromFiles(files)
	e.resultCache.Clear()
	return nil
}

// Search returns the requested result page for query.
func (e *Engine) Search(query string, page, resultsPerPage int) []model.RankedDoc {
	return e.searcher.SearchWithRanking(query, page, resultsPerPage)
}

// TotalResults counts all documents matching query.
func (e *Engine) TotalResults(query string) int {
	return e.searcher.TotalResults(query)
}

// Autocomplete returns up to limit trie completions of the lowercased prefix.
func (e *Engine) Autocomplete(prefix string, limit int) []string {
	return e.trie.StartsWith(tokenizer.ToLowerASCII(prefix), limit)
}

// PrefixSearch expands prefix through the trie and ranks documents against
// a synthetic query of the first completions.
func (e *Engine) PrefixSearch(prefix string, expandLimit, page, resultsPerPage int) []model.RankedDoc {
	query, ok := e.prefixQuery(prefix, expandLimit)
	if !ok {
		return nil
	}
	return e.Search(query, page, resultsPerPage)
}

// PrefixTotalResults counts all documents matching the expanded prefix query.
func (e *Engine) PrefixTotalResults(prefix string, expandLimit int) int {
	query, ok := e.prefixQuery(prefix, expandLimit)
	if !ok {
		return 0
	}
	return e.TotalResults(query)
}

func (e *Engine) prefixQuery(prefix string, expandLimit int) (string, bool) {
	suggestions := e.Autocomplete(prefix, expandLimit)
	if len(suggestions) == 0 {
		return "", false
	}
	if len(suggestions) > maxPrefixQueryTerms {
		suggestions = suggestions[:maxPrefixQueryTerms]
	}
	return strings.Join(suggestions, " "), true
}

// SnippetForDoc extracts a display snippet from the document's content.
func (e *Engine) SnippetForDoc(queryTerms []string, docID int) string {
	doc, ok := e.documentStore.Get(docID)
	if !ok {
		return ""
	}
	return search.Snippet(doc.FullContent, queryTerms)
}

// FilenameFor returns the basename of the document, or "" if unknown.
func (e *Engine) FilenameFor(docID int) string {
	doc, ok := e.documentStore.Get(docID)
	if !ok {
		return ""
	}
	return doc.Filename
}

// FilepathFor returns the scanner-supplied path of the document, or "".
func (e *Engine) FilepathFor(docID int) string {
	doc, ok := e.documentStore.Get(docID)
	if !ok {
		return ""
	}
	return doc.Filepath
}

// DocumentCount returns the number of indexed documents.
func (e *Engine) DocumentCount() int {
	return e.documentStore.Len()
}

// UniqueTermCount returns the number of distinct indexed terms.
func (e *Engine) UniqueTermCount() int {
	return e.invertedIndex.UniqueTerms()
}

// TotalWordsIndexed returns the token count across all indexed documents.
func (e *Engine) TotalWordsIndexed() int {
	return e.lastBuild.TotalWords
}

// DataDir returns the directory the engine last indexed.
func (e *Engine) DataDir() string {
	return e.dataDir
}

// CacheStats returns the result cache's lifetime hit and miss counts.
func (e *Engine) CacheStats() (hits, misses int64) {
	return e.resultCache.Stats()
}

// LastBuild returns statistics for the most recent index build.
func (e *Engine) LastBuild() indexing.BuildStats {
	return e.lastBuild
}

// Clear tears down all engine state.
func (e *Engine) Clear() {
	e.indexer.Reset()
	e.resultCache.Clear()
	e.lastBuild = indexing.BuildStats{}
	e.dataDir = ""
}
