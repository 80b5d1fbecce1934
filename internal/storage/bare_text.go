package storage

import (
	"bufio"
	"fmt"
	"os"

	"github.com/matsen/wordvec/internal/embedding"
)

// LoadBareText loads a table in the headerless bare text layout: one line
// per word, the word followed by its vector as whitespace-separated ASCII
// floats. The dimension is whatever the first line carries; every later
// line must match it. If maxWords > 0, scanning stops after that many rows.
func LoadBareText(path, charsetName string, maxWords int) (*embedding.Table, error) {
	cs, err := newCharset(charsetName)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening model file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	// Rows are buffered into the growing backing slice as they are
	// scanned; the row count is unknown until EOF (or the cap) so the
	// matrix cannot be pre-sized the way the header layouts allow.
	dim := 0
	var data []float32
	vocab := embedding.NewVocabulary(0)

	for scanner.Scan() {
		if maxWords > 0 && vocab.Len() >= maxWords {
			break
		}
		line := scanner.Bytes()
		word, rest := nextToken(line)
		if len(word) == 0 {
			continue // blank line
		}
		got := countTokens(rest)
		if dim == 0 {
			if got == 0 {
				return nil, fmt.Errorf("%w: first line has no vector", embedding.ErrFormat)
			}
			dim = got
		} else if got != dim {
			return nil, fmt.Errorf("%w: line %d has %d values, dimension is %d", embedding.ErrFormat, vocab.Len()+1, got, dim)
		}

		data = append(data, make([]float32, dim)...)
		row := data[len(data)-dim:]
		if _, err := parseRow(rest, row); err != nil {
			return nil, fmt.Errorf("line %d: %w", vocab.Len()+1, err)
		}
		vocab.Add(cs.decode(word))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading model file: %w", err)
	}
	if dim == 0 {
		return nil, fmt.Errorf("%w: no lines to infer dimension from", embedding.ErrFormat)
	}
	return &embedding.Table{Vocab: vocab, Vectors: data, Dim: dim}, nil
}

// WriteBareText writes a table in the bare text layout, truncating any
// existing file at path. No header line is written.
func WriteBareText(path string, tbl *embedding.Table, charsetName string) error {
	if tbl.Vocab.Len() != tbl.Rows() {
		return fmt.Errorf("%w: %d words, %d rows", embedding.ErrLengthMismatch, tbl.Vocab.Len(), tbl.Rows())
	}
	cs, err := newCharset(charsetName)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating model file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for i, word := range tbl.Vocab.Words {
		writeRow(w, cs, word, tbl.Row(i))
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing model file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing model file: %w", err)
	}
	return nil
}
