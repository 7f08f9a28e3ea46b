// Package index defines the inverted index: the term → posting-list mapping
// and the per-term document-frequency table.
package index

// InvertedIndex maps a term to the ordered list of documents containing it.
// It is built once by the indexer and read-only afterwards.
type InvertedIndex struct {
	Postings map[string]PostingList
	DocFreq  map[string]int // term → containing-document count, capped at MaxDocFrequency
}

// New returns an empty, initialized InvertedIndex.
func New() *InvertedIndex {
	return &InvertedIndex{
		Postings: make(map[string]PostingList),
		DocFreq:  make(map[string]int),
	}
}

// UniqueTerms returns the number of distinct indexed terms.
func (ii *InvertedIndex) UniqueTerms() int {
	return len(ii.Postings)
}

// Reset discards all postings and document frequencies.
func (ii *InvertedIndex) Reset() {
	ii.Postings = make(map[string]PostingList)
	ii.DocFreq = make(map[string]int)
}
