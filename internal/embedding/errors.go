package embedding

import "errors"

// Common errors returned when loading or writing embedding files. I/O
// failures (open, read, write, close) are not wrapped in a sentinel; they
// surface as the underlying OS error with context added.
var (
	// ErrFormat indicates the header or a line does not match the
	// expected token layout.
	ErrFormat = errors.New("malformed embedding file")

	// ErrTruncated indicates the stream ended in the middle of a record.
	// Distinct from ErrFormat: the file is cut short, not malformed.
	ErrTruncated = errors.New("embedding file truncated mid-record")

	// ErrLengthMismatch indicates a write was given a vocabulary whose
	// length disagrees with the matrix row count.
	ErrLengthMismatch = errors.New("vocabulary length does not match matrix row count")

	// ErrUnknownCharset indicates an encoding name that cannot be
	// resolved to a character set.
	ErrUnknownCharset = errors.New("unknown character set")

	// ErrNotFound indicates a word is not in the vocabulary.
	ErrNotFound = errors.New("word not in vocabulary")
)
