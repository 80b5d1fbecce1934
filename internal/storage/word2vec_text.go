package storage

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"github.com/matsen/wordvec/internal/embedding"
)

// parseRow fills row from the whitespace-separated float tokens in b,
// returning the number of tokens parsed. Parsing stops early if b runs out
// of tokens; the caller maps a short count to ErrTruncated. A token that is
// not a float is ErrFormat.
func parseRow(b []byte, row []float32) (int, error) {
	for i := range row {
		tok, rest := nextToken(b)
		if len(tok) == 0 {
			return i, nil
		}
		v, err := strconv.ParseFloat(string(tok), 32)
		if err != nil {
			return i, fmt.Errorf("%w: %q is not a number", embedding.ErrFormat, tok)
		}
		row[i] = float32(v)
		b = rest
	}
	return len(row), nil
}

// writeRow writes word and its vector as one text line: the encoded word,
// a space, then each float in fixed-point ASCII, space-separated.
func writeRow(w *bufio.Writer, cs *charset, word string, row []float32) {
	w.Write(cs.encode(word))
	for _, v := range row {
		w.WriteByte(' ')
		w.WriteString(strconv.FormatFloat(float64(v), 'f', 6, 32))
	}
	w.WriteByte('\n')
}

// LoadWord2VecText loads a table in the text word2vec layout: the same
// header as the binary layout, then one line per word with the vector as
// whitespace-separated ASCII floats. If maxWords > 0, only the first
// maxWords records are read.
func LoadWord2VecText(path, charsetName string, maxWords int) (*embedding.Table, error) {
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

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("reading model file: %w", err)
		}
		return nil, fmt.Errorf("%w: missing header", embedding.ErrFormat)
	}
	rows, dim, err := parseTextHeader(scanner.Bytes())
	if err != nil {
		return nil, err
	}
	if maxWords > 0 && maxWords < rows {
		rows = maxWords
	}

	tbl := embedding.NewTable(rows, dim)
	for i := 0; i < rows; i++ {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return nil, fmt.Errorf("reading model file: %w", err)
			}
			return nil, fmt.Errorf("%w: record %d of %d", embedding.ErrTruncated, i+1, rows)
		}
		line := scanner.Bytes()
		word, rest := nextToken(line)
		if len(word) == 0 {
			return nil, fmt.Errorf("%w: record %d of %d", embedding.ErrTruncated, i+1, rows)
		}
		if got := countTokens(rest); got > dim {
			return nil, fmt.Errorf("%w: record %d has %d values, dimension is %d", embedding.ErrFormat, i+1, got, dim)
		}
		n, err := parseRow(rest, tbl.Row(i))
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		if n < dim {
			return nil, fmt.Errorf("%w: record %d has %d of %d values", embedding.ErrTruncated, i+1, n, dim)
		}
		tbl.Vocab.Add(cs.decode(word))
	}
	return tbl, nil
}

// parseTextHeader parses the "word_count dimension" line of the text layout.
func parseTextHeader(line []byte) (rows, dim int, err error) {
	var vals [2]int
	b := line
	for i := range vals {
		tok, rest := nextToken(b)
		if len(tok) == 0 {
			return 0, 0, fmt.Errorf("%w: header has %d of 2 integers", embedding.ErrFormat, i)
		}
		n, err := strconv.Atoi(string(tok))
		if err != nil {
			return 0, 0, fmt.Errorf("%w: header token %q is not an integer", embedding.ErrFormat, tok)
		}
		vals[i] = n
		b = rest
	}
	if tok, _ := nextToken(b); len(tok) != 0 {
		return 0, 0, fmt.Errorf("%w: header has extra token %q", embedding.ErrFormat, tok)
	}
	if vals[0] < 0 || vals[1] <= 0 {
		return 0, 0, fmt.Errorf("%w: header claims %d words of dimension %d", embedding.ErrFormat, vals[0], vals[1])
	}
	return vals[0], vals[1], nil
}

// WriteWord2VecText writes a table in the text word2vec layout, truncating
// any existing file at path.
func WriteWord2VecText(path string, tbl *embedding.Table, charsetName string) error {
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
	fmt.Fprintf(w, "%d %d\n", tbl.Rows(), tbl.Dim)
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
