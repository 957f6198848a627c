package core

import "errors"

// Common errors.
var (
	// ErrCapacityExceeded is returned by CreateNote when every id is in use.
	ErrCapacityExceeded = errors.New("note capacity exceeded")
	// ErrReadTruncated marks a record stream that ended inside a record.
	// Loading treats it as the end of the valid prefix.
	ErrReadTruncated = errors.New("note file truncated")
	// ErrWriteFailed wraps I/O failures while saving. Notes stay in memory.
	ErrWriteFailed = errors.New("failed to write notes")
	ErrReadOnly    = errors.New("repository is in read-only mode")
)
