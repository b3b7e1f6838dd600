package storage

import "errors"

// Common storage errors
var (
	// ErrFileNotFound indicates that no file exists at the path
	ErrFileNotFound = errors.New("file not found")

	// ErrRevisionMismatch indicates that the base revision of a write does
	// not match the current revision of the file
	ErrRevisionMismatch = errors.New("revision mismatch")
)
