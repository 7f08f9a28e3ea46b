// Package services defines the public query interfaces of the engine and
// the JSON response types shared by the CLI and HTTP surfaces.
package services

import "github.com/Ateeblj/Mini-Google/model"

// Searcher ranks documents against a free-text query.
type Searcher interface {
	Search(query string, page, resultsPerPage int) []model.RankedDoc
	TotalResults(query string) int
}

// Completer answers prefix queries against the trie, directly or expanded
// into a ranked search.
type Completer interface {
	Autocomplete(prefix string, limit int) []string
	PrefixSearch(prefix string, expandLimit, page, resultsPerPage int) []model.RankedDoc
	PrefixTotalResults(prefix string, expandLimit int) int
}

// DocumentReader resolves document metadata and snippets by document ID.
type DocumentReader interface {
	SnippetForDoc(queryTerms []string, docID int) string
	FilenameFor(docID int) string
	FilepathFor(docID int) string
}

// Indexer builds the index from a directory of text files.
type Indexer interface {
	IndexFolder(dir string) error
	DocumentCount() int
	UniqueTermCount() int
	TotalWordsIndexed() int
	Clear()
}

// Engine is the full query facade.
type Engine interface {
	Indexer
	Searcher
	Completer
	DocumentReader
	DataDir() string
	CacheStats() (hits, misses int64)
}
