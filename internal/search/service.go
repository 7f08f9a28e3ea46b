// Package search implements ranked retrieval over the inverted index:
// tf-idf scoring with position weighting, filename (title) boosts, and
// exact-phrase detection, plus snippet extraction for result display.
package search

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/Ateeblj/Mini-Google/index"
	"github.com/Ateeblj/Mini-Google/internal/cache"
	"github.com/Ateeblj/Mini-Google/internal/tokenizer"
	"github.com/Ateeblj/Mini-Google/model"
	"github.com/Ateeblj/Mini-Google/store"
)

const (
	// minTitleTermLen is the minimum query-token length considered for
	// filename matching.
	minTitleTermLen = 3

	// minScore drops documents whose final score is effectively zero.
	minScore = 1e-6
)

// Service scores documents against tokenized queries. It reads the index
// and document table, never mutating them; only the result cache changes
// across calls.
type Service struct {
	invertedIndex *index.InvertedIndex
	documentStore *store.DocumentStore
	resultCache   *cache.ResultCache

	// perDocLengthNorm switches tf and length normalization to the
	// posting's own document. The historical default derives both from
	// document 0; see DESIGN.md.
	perDocLengthNorm bool
}

// NewService creates a search Service.
func NewService(invIndex *index.InvertedIndex, docStore *store.DocumentStore, resultCache *cache.ResultCache, perDocLengthNorm bool) (*Service, error) {
	if invIndex == nil {
		return nil, fmt.Errorf("inverted index cannot be nil")
	}
	if docStore == nil {
		return nil, fmt.Errorf("document store cannot be nil")
	}
	if resultCache == nil {
		return nil, fmt.Errorf("result cache cannot be nil")
	}
	return &Service{
		invertedIndex:    invIndex,
		documentStore:    docStore,
		resultCache:      resultCache,
		perDocLengthNorm: perDocLengthNorm,
	}, nil
}

// IDF returns log10(N/df + 1) for term, or 0 when the term or corpus is
// unknown.
func (s *Service) IDF(term string) float64 {
	df := s.invertedIndex.DocFreq[term]
	n := s.documentStore.Len()
	if df == 0 || n == 0 {
		return 0
	}
	return math.Log10(float64(n)/float64(df) + 1.0)
}

// SearchWithRanking returns the requested page of ranked results for query.
// Pages are 1-based. Results are served from the result cache when the same
// (query, page, page size) was asked before.
func (s *Service) SearchWithRanking(query string, page, resultsPerPage int) []model.RankedDoc {
	cacheKey := cache.Key(query, page, resultsPerPage)
	if found, ok := s.resultCache.Get(cacheKey); ok {
		return found
	}

	n := s.documentStore.Len()
	if n == 0 {
		s.resultCache.Put(cacheKey, nil)
		return nil
	}

	lowerQuery := tokenizer.ToLowerASCII(query)
	qTokens := tokenizer.Tokenize(lowerQuery)
	if len(qTokens) == 0 {
		s.resultCache.Put(cacheKey, nil)
		return nil
	}

	exactPhraseDocs := s.findExactPhraseDocs(lowerQuery, qTokens)
	titleBonus, hasTitleMatch := s.scanTitles(qTokens)

	termIDF := make(map[string]float64, len(qTokens))
	for _, term := range qTokens {
		termIDF[term] = s.IDF(term)
	}

	docScores := make(map[int]float64)
	docOccurrences := make(map[int]int)

	for _, term := range qTokens {
		postings, found := s.invertedIndex.Postings[term]
		if !found {
			continue
		}
		idf := termIDF[term]
		for _, p := range postings {
			refTokens := s.refTokenCount(p.DocID)

			tf := float64(p.Freq) / (1.0 + math.Log(1.0+float64(refTokens)/1000.0))

			positionWeight := 1.0
			if len(p.Positions) > 0 {
				sum := 0
				for _, pos := range p.Positions {
					sum += pos
				}
				avgPosition := float64(sum) / float64(len(p.Positions))
				positionRatio := avgPosition / float64(refTokens)
				if positionRatio < 0.2 {
					positionWeight = 1.0 + (0.2-positionRatio)*2.0
				}
			}

			baseScore := tf * idf * positionWeight
			if hasTitleMatch[p.DocID] {
				baseScore *= 10.0 + titleBonus[p.DocID]*5.0
			}
			if exactPhraseDocs[p.DocID] {
				baseScore *= 5.0
			}
			if p.Freq > 10 {
				baseScore *= math.Min(1.0+math.Log(float64(p.Freq))/5.0, 3.0)
			}
			docScores[p.DocID] += baseScore
			docOccurrences[p.DocID] += p.Freq
		}
	}

	for docID := range docScores {
		docLength := s.refTokenCount(docID)
		switch {
		case docLength < 100:
			docScores[docID] *= 0.1
		case docLength > 1000 && docLength < 100000:
			docScores[docID] *= 1.2
		case docLength > 200000:
			docScores[docID] *= 0.9
		}
		if hasTitleMatch[docID] {
			docScores[docID] *= 1.0 + titleBonus[docID]
		}
	}

	// Deterministic candidate order before ranking: ties fall back to
	// ascending document ID.
	docIDs := make([]int, 0, len(docScores))
	for docID := range docScores {
		docIDs = append(docIDs, docID)
	}
	sort.Ints(docIDs)

	allResults := make([]model.RankedDoc, 0, len(docIDs))
	for _, docID := range docIDs {
		score := docScores[docID]
		if score <= minScore {
			continue
		}
		allResults = append(allResults, model.RankedDoc{
			DocID:            docID,
			Score:            score,
			TotalOccurrences: docOccurrences[docID],
			InTitle:          hasTitleMatch[docID],
			ExactPhraseMatch: exactPhraseDocs[docID],
			TitleBoost:       titleBonus[docID],
		})
	}
	sort.SliceStable(allResults, func(i, j int) bool {
		return allResults[i].Better(allResults[j])
	})

	results := paginate(allResults, page, resultsPerPage)
	s.resultCache.Put(cacheKey, results)
	return results
}

// TotalResults counts every document matching query.
func (s *Service) TotalResults(query string) int {
	if s.documentStore.Len() == 0 {
		return 0
	}
	return len(s.SearchWithRanking(query, 1, math.MaxInt))
}

// findExactPhraseDocs records documents whose lowercased content contains
// the whole lowercased query. Single-token queries skip the scan: the
// phrase signal only means something for multi-word queries.
func (s *Service) findExactPhraseDocs(lowerQuery string, qTokens []string) map[int]bool {
	matches := make(map[int]bool)
	if len(qTokens) < 2 {
		return matches
	}
	for docID, doc := range s.documentStore.Docs {
		if strings.Contains(tokenizer.ToLowerASCII(doc.FullContent), lowerQuery) {
			matches[docID] = true
		}
	}
	return matches
}

// scanTitles matches query tokens against lowercased filenames. A match
// scores 1.0, doubled for whole-word matches and ×1.5 when it occurs in the
// first 20 bytes.
func (s *Service) scanTitles(qTokens []string) (map[int]float64, map[int]bool) {
	titleBonus := make(map[int]float64)
	hasTitleMatch := make(map[int]bool)

	for docID, doc := range s.documentStore.Docs {
		filenameLower := tokenizer.ToLowerASCII(doc.Filename)
		titleScore := 0.0
		for _, term := range qTokens {
			if len(term) < minTitleTermLen {
				continue
			}
			pos := strings.Index(filenameLower, term)
			if pos < 0 {
				continue
			}
			termScore := 1.0
			if isWholeWordMatch(filenameLower, pos, len(term)) {
				termScore = 2.0
			}
			if pos < 20 {
				termScore *= 1.5
			}
			titleScore += termScore
			hasTitleMatch[docID] = true
		}
		if titleScore > 0 {
			titleBonus[docID] = titleScore
		}
	}
	return titleBonus, hasTitleMatch
}

// refTokenCount returns the token count driving tf and length
// normalization for docID.
func (s *Service) refTokenCount(docID int) int {
	if s.perDocLengthNorm {
		if doc, ok := s.documentStore.Get(docID); ok {
			return doc.TotalTokens
		}
		return 0
	}
	return s.documentStore.Docs[0].TotalTokens
}

func isWholeWordMatch(text string, pos, length int) bool {
	startOK := pos == 0 || !isAlnumByte(text[pos-1])
	end := pos + length
	endOK := end == len(text) || !isAlnumByte(text[end])
	return startOK && endOK
}

func isAlnumByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func paginate(all []model.RankedDoc, page, resultsPerPage int) []model.RankedDoc {
	if page < 1 || resultsPerPage <= 0 {
		return nil
	}
	start := (page - 1) * resultsPerPage
	if start >= len(all) || start < 0 {
		return nil
	}
	end := len(all)
	if resultsPerPage < end-start {
		end = start + resultsPerPage
	}
	out := make([]model.RankedDoc, end-start)
	copy(out, all[start:end])
	return out
}
