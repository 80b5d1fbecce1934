// Package storage reads and writes word-embedding tables in the word2vec
// binary, word2vec text, and bare text file layouts, and maintains a SQLite
// index for single-word access.
package storage

import (
	"bufio"
	"errors"
	"io"
)

// maxWordBytes bounds the length of a single word token. The word2vec family
// of tools silently truncates over-long tokens, so readers here truncate too
// rather than fail; see readWord.
const maxWordBytes = 512

// maxLineBytes is the scanner buffer cap for line-oriented layouts (16MB; a
// 10k-dimension row of 'f'-formatted floats stays well under this).
const maxLineBytes = 16 * 1024 * 1024

// isSpace reports whether c is ASCII whitespace. Token boundaries in every
// layout are defined over these bytes only; multi-byte Unicode spaces are
// word content.
func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// nextToken returns the first whitespace-delimited token in b and the rest
// of b after it. It is a pure function: callers thread rest back in to walk
// a line token by token, with no scan state outside the slices themselves.
// An empty token means b held only whitespace.
func nextToken(b []byte) (tok, rest []byte) {
	i := 0
	for i < len(b) && isSpace(b[i]) {
		i++
	}
	j := i
	for j < len(b) && !isSpace(b[j]) {
		j++
	}
	return b[i:j], b[j:]
}

// countTokens returns the number of whitespace-delimited tokens in b.
func countTokens(b []byte) int {
	n := 0
	for {
		tok, rest := nextToken(b)
		if len(tok) == 0 {
			return n
		}
		n++
		b = rest
	}
}

// readWord reads one whitespace-terminated token from r, skipping any
// leading whitespace and consuming the terminating separator byte. Tokens
// longer than max bytes are truncated to max; the excess bytes are read and
// discarded, so the stream still ends up positioned after the separator.
//
// Returns io.EOF only when the stream ends before any token byte is seen.
// A token terminated by EOF rather than whitespace is returned without
// error; the caller decides whether the record that follows is complete.
func readWord(r *bufio.Reader, max int) ([]byte, error) {
	var c byte
	var err error
	for {
		c, err = r.ReadByte()
		if err != nil {
			return nil, err
		}
		if !isSpace(c) {
			break
		}
	}

	word := make([]byte, 0, 16)
	for {
		if len(word) < max {
			word = append(word, c)
		}
		c, err = r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return word, nil
			}
			return nil, err
		}
		if isSpace(c) {
			return word, nil
		}
	}
}
