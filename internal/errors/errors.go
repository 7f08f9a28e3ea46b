// Package errors defines the sentinel errors surfaced by the engine.
package errors

import "errors"

var (
	// ErrDirectoryNotFound is returned when the data directory does not exist.
	ErrDirectoryNotFound = errors.New("directory not found")

	// ErrNotDirectory is returned when the data path is not a directory.
	ErrNotDirectory = errors.New("not a directory")

	// ErrNoDocuments is returned when indexing produced zero documents.
	ErrNoDocuments = errors.New("no documents could be indexed")
)
