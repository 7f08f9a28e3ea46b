package services

import (
	"time"

	"github.com/Ateeblj/Mini-Google/model"
)

// Search modes reported in responses.
const (
	ModeSearch       = "search"
	ModePrefixSearch = "prefix_search"
)

// SearchHit is one result row in a search or prefix-search response.
type SearchHit struct {
	Rank             int     `json:"rank"`
	Filename         string  `json:"filename"`
	Filepath         string  `json:"filepath"`
	Score            float64 `json:"score"`
	TotalOccurrences int     `json:"totalOccurrences"`
	InTitle          bool    `json:"inTitle"`
	ExactPhraseMatch bool    `json:"exactPhraseMatch"`
	Snippet          string  `json:"snippet"`
}

// SearchResponse is the paginated response for search and prefix-search.
type SearchResponse struct {
	Query          string      `json:"query,omitempty"`
	Prefix         string      `json:"prefix,omitempty"`
	Count          int         `json:"count"`
	TotalResults   int         `json:"total_results"`
	TotalPages     int         `json:"total_pages"`
	Page           int         `json:"page"`
	ResultsPerPage int         `json:"results_per_page"`
	Mode           string      `json:"mode"`
	TimeMs         int64       `json:"time_ms"`
	NextPage       *int        `json:"next_page,omitempty"`
	PrevPage       *int        `json:"prev_page,omitempty"`
	QueryID        string      `json:"query_id,omitempty"`
	Results        []SearchHit `json:"results"`
}

// AutocompleteResponse carries trie suggestions.
type AutocompleteResponse struct {
	Prefix      string   `json:"prefix"`
	Count       int      `json:"count"`
	TimeMs      int64    `json:"time_ms"`
	Suggestions []string `json:"suggestions"`
}

// StatusResponse is the idle/default mode output.
type StatusResponse struct {
	Status            string `json:"status"`
	Documents         int    `json:"documents"`
	UniqueTerms       int    `json:"unique_terms"`
	DataDirectory     string `json:"data_directory"`
	TotalWordsIndexed int    `json:"total_words_indexed"`
}

// ErrorResponse is the top-level error object.
type ErrorResponse struct {
	Error string `json:"error"`
}

// BuildSearchResponse assembles the paginated response for a ranked result
// page. queryTerms drive snippet extraction; mode selects which of
// query/prefix is populated.
func BuildSearchResponse(eng Engine, mode, queryOrPrefix string, queryTerms []string, results []model.RankedDoc, totalResults, page, resultsPerPage int, elapsed time.Duration) SearchResponse {
	if resultsPerPage < 1 {
		resultsPerPage = 1
	}
	totalPages := (totalResults + resultsPerPage - 1) / resultsPerPage
	if totalPages < 1 {
		totalPages = 1
	}

	resp := SearchResponse{
		Count:          len(results),
		TotalResults:   totalResults,
		TotalPages:     totalPages,
		Page:           page,
		ResultsPerPage: resultsPerPage,
		Mode:           mode,
		TimeMs:         elapsed.Milliseconds(),
		Results:        make([]SearchHit, 0, len(results)),
	}
	if mode == ModePrefixSearch {
		resp.Prefix = queryOrPrefix
	} else {
		resp.Query = queryOrPrefix
	}
	if page < totalPages {
		next := page + 1
		resp.NextPage = &next
	}
	if page > 1 {
		prev := page - 1
		resp.PrevPage = &prev
	}

	startRank := (page-1)*resultsPerPage + 1
	for i, rd := range results {
		resp.Results = append(resp.Results, SearchHit{
			Rank:             startRank + i,
			Filename:         eng.FilenameFor(rd.DocID),
			Filepath:         eng.FilepathFor(rd.DocID),
			Score:            rd.Score,
			TotalOccurrences: rd.TotalOccurrences,
			InTitle:          rd.InTitle,
			ExactPhraseMatch: rd.ExactPhraseMatch,
			Snippet:          eng.SnippetForDoc(queryTerms, rd.DocID),
		})
	}
	return resp
}
