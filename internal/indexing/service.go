// Package indexing drives the batch index build: it reads each file,
// tokenizes it, accumulates per-term postings, and seeds the prefix trie.
package indexing

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Ateeblj/Mini-Google/index"
	"github.com/Ateeblj/Mini-Google/internal/tokenizer"
	"github.com/Ateeblj/Mini-Google/internal/trie"
	"github.com/Ateeblj/Mini-Google/model"
	"github.com/Ateeblj/Mini-Google/store"
)

const (
	// maxIndexableFileSize is the per-file ingestion bound; larger files
	// are skipped with a warning.
	maxIndexableFileSize = 100 * 1024 * 1024

	// maxUniqueWords stops ingestion once the global vocabulary exceeds it.
	maxUniqueWords = 200000

	// trieMinWordLen and trieMaxWordLen bound the terms seeded into the trie.
	trieMinWordLen = 2
	trieMaxWordLen = 20

	progressInterval = 5
)

// BuildStats summarizes a completed index build.
type BuildStats struct {
	Documents      int
	UniqueTerms    int
	TrieWords      int
	TotalWords     int
	FilesProcessed int
	Elapsed        time.Duration
}

// Service builds the inverted index, document table, and trie from a file
// list. It owns no state beyond references to the structures it fills.
type Service struct {
	invertedIndex *index.InvertedIndex
	documentStore *store.DocumentStore
	trie          *trie.Trie
}

// NewService creates an indexing Service over the given structures.
func NewService(invIndex *index.InvertedIndex, docStore *store.DocumentStore, tr *trie.Trie) (*Service, error) {
	if invIndex == nil {
		return nil, fmt.Errorf("inverted index cannot be nil")
	}
	if docStore == nil {
		return nil, fmt.Errorf("document store cannot be nil")
	}
	if tr == nil {
		return nil, fmt.Errorf("trie cannot be nil")
	}
	if invIndex.Postings == nil {
		invIndex.Postings = make(map[string]index.PostingList)
	}
	if invIndex.DocFreq == nil {
		invIndex.DocFreq = make(map[string]int)
	}
	return &Service{
		invertedIndex: invIndex,
		documentStore: docStore,
		trie:          tr,
	}, nil
}

// BuildFromFiles resets all index state and ingests paths in order. File
// errors never abort the build: unreadable files are skipped silently,
// oversized ones with a warning.
func (s *Service) BuildFromFiles(paths []string) BuildStats {
	s.Reset()
	if len(paths) == 0 {
		return BuildStats{}
	}

	log.Info().Int("files", len(paths)).Msg("building index")
	start := time.Now()

	uniqueWords := make(map[string]struct{})
	uniqueWordList := make([]string, 0, 1024)
	totalWords := 0
	filesProcessed := 0

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if info.Size() > maxIndexableFileSize {
			log.Warn().Str("path", path).Int64("size_mb", info.Size()/1024/1024).Msg("skipping very large file")
			continue
		}
		content, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		doc := model.Document{
			Filename:    filepath.Base(path),
			Filepath:    path,
			FileSize:    info.Size(),
			FullContent: string(content),
		}

		tokens := tokenizer.Tokenize(doc.FullContent)
		doc.TotalTokens = len(tokens)
		totalWords += len(tokens)

		docID := s.documentStore.Len()
		local := make(map[string]*index.Posting)
		for i, term := range tokens {
			p, seen := local[term]
			if !seen {
				p = &index.Posting{DocID: docID}
				local[term] = p
			}
			if p.Freq < index.MaxTermFrequency {
				p.Freq++
				if len(p.Positions) < index.MaxPostingPositions {
					p.Positions = append(p.Positions, i)
				}
			}
			if _, known := uniqueWords[term]; !known {
				uniqueWords[term] = struct{}{}
				uniqueWordList = append(uniqueWordList, term)
			}
		}

		for term, posting := range local {
			s.invertedIndex.Postings[term] = append(s.invertedIndex.Postings[term], *posting)
		}

		s.documentStore.Add(doc)
		filesProcessed++
		if filesProcessed%progressInterval == 0 {
			log.Info().
				Int("processed", filesProcessed).
				Int("total", len(paths)).
				Int("unique_words", len(uniqueWordList)).
				Msg("indexing progress")
		}
		if len(uniqueWordList) > maxUniqueWords {
			log.Info().Int("unique_words", len(uniqueWordList)).Msg("reached word limit, stopping early")
			break
		}
	}

	// Seed the trie shortest-first so common short prefixes resolve early.
	sort.Slice(uniqueWordList, func(i, j int) bool {
		return len(uniqueWordList[i]) < len(uniqueWordList[j])
	})
	trieWords := 0
	for _, word := range uniqueWordList {
		if len(word) >= trieMinWordLen && len(word) <= trieMaxWordLen {
			s.trie.Insert(word)
			trieWords++
		}
	}

	for term, postings := range s.invertedIndex.Postings {
		df := len(postings)
		if df > index.MaxDocFrequency {
			df = index.MaxDocFrequency
		}
		s.invertedIndex.DocFreq[term] = df
	}

	stats := BuildStats{
		Documents:      s.documentStore.Len(),
		UniqueTerms:    s.invertedIndex.UniqueTerms(),
		TrieWords:      trieWords,
		TotalWords:     totalWords,
		FilesProcessed: filesProcessed,
		Elapsed:        time.Since(start),
	}
	log.Info().
		Dur("elapsed", stats.Elapsed).
		Int("documents", stats.Documents).
		Int("unique_terms", stats.UniqueTerms).
		Int("trie_words", stats.TrieWords).
		Int("total_words", stats.TotalWords).
		Msg("index built")
	return stats
}

// Reset discards all built state.
func (s *Service) Reset() {
	s.invertedIndex.Reset()
	s.documentStore.Reset()
	s.trie.Clear()
}
