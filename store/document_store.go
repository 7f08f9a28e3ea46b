// Package store holds the document table. Document IDs are dense integers
// assigned in ingestion order, so the table is a slice indexed by ID.
package store

import "github.com/Ateeblj/Mini-Google/model"

// DocumentStore owns the ingestion-ordered document table.
type DocumentStore struct {
	Docs []model.Document
}

// New returns an empty DocumentStore.
func New() *DocumentStore {
	return &DocumentStore{Docs: make([]model.Document, 0)}
}

// Add appends doc and returns its assigned document ID.
func (ds *DocumentStore) Add(doc model.Document) int {
	ds.Docs = append(ds.Docs, doc)
	return len(ds.Docs) - 1
}

// Get returns the document with the given ID.
func (ds *DocumentStore) Get(docID int) (model.Document, bool) {
	if docID < 0 || docID >= len(ds.Docs) {
		return model.Document{}, false
	}
	return ds.Docs[docID], true
}

// Len returns the number of stored documents.
func (ds *DocumentStore) Len() int {
	return len(ds.Docs)
}

// Reset discards all documents.
func (ds *DocumentStore) Reset() {
	ds.Docs = ds.Docs[:0]
}
