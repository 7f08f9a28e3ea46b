package index

const (
	// MaxPostingPositions bounds the number of token positions kept per
	// posting; additional positions are silently dropped.
	MaxPostingPositions = 50

	// MaxTermFrequency is the saturation point for a posting's frequency
	// counter.
	MaxTermFrequency = 1000

	// MaxDocFrequency is the saturation point for the document-frequency
	// table.
	MaxDocFrequency = 32767
)

// Posting records the occurrences of one term in one document.
type Posting struct {
	DocID     int
	Freq      int   // occurrence count, saturating at MaxTermFrequency
	Positions []int // token indices, at most MaxPostingPositions entries
}

// PostingList holds one Posting per containing document, in document
// ingestion order.
type PostingList []Posting
