package storage

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/matsen/wordvec/internal/embedding"
)

// readHeader parses the two-integer "word_count dimension" header shared by
// both word2vec layouts.
func readHeader(r *bufio.Reader) (rows, dim int, err error) {
	for _, dst := range []*int{&rows, &dim} {
		tok, err := readWord(r, maxWordBytes)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: reading header: %v", embedding.ErrFormat, err)
		}
		n, err := strconv.Atoi(string(tok))
		if err != nil {
			return 0, 0, fmt.Errorf("%w: header token %q is not an integer", embedding.ErrFormat, tok)
		}
		*dst = n
	}
	if rows < 0 || dim <= 0 {
		return 0, 0, fmt.Errorf("%w: header claims %d words of dimension %d", embedding.ErrFormat, rows, dim)
	}
	return rows, dim, nil
}

// LoadWord2VecBinary loads a table in the binary word2vec layout: the text
// header, then one record per word of an ASCII token, a separator byte, and
// dim raw little-endian float32s. If maxWords > 0, only the first maxWords
// records are read.
func LoadWord2VecBinary(path, charsetName string, maxWords int) (*embedding.Table, error) {
	cs, err := newCharset(charsetName)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening model file: %w", err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	rows, dim, err := readHeader(r)
	if err != nil {
		return nil, err
	}
	if maxWords > 0 && maxWords < rows {
		rows = maxWords
	}

	tbl := embedding.NewTable(rows, dim)
	raw := make([]byte, 4*dim)
	for i := 0; i < rows; i++ {
		word, err := readWord(r, maxWordBytes)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("%w: record %d of %d", embedding.ErrTruncated, i+1, rows)
			}
			return nil, fmt.Errorf("reading record %d: %w", i+1, err)
		}
		if _, err := io.ReadFull(r, raw); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, fmt.Errorf("%w: vector for record %d of %d", embedding.ErrTruncated, i+1, rows)
			}
			return nil, fmt.Errorf("reading record %d: %w", i+1, err)
		}
		row := tbl.Row(i)
		for j := range row {
			row[j] = math.Float32frombits(binary.LittleEndian.Uint32(raw[4*j:]))
		}
		tbl.Vocab.Add(cs.decode(word))
	}
	return tbl, nil
}

// WriteWord2VecBinary writes a table in the binary word2vec layout,
// truncating any existing file at path.
func WriteWord2VecBinary(path string, tbl *embedding.Table, charsetName string) error {
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

	var raw [4]byte
	for i, word := range tbl.Vocab.Words {
		w.Write(cs.encode(word))
		w.WriteByte(' ')
		for _, v := range tbl.Row(i) {
			binary.LittleEndian.PutUint32(raw[:], math.Float32bits(v))
			w.Write(raw[:])
		}
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing model file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing model file: %w", err)
	}
	return nil
}

// vecToBytes packs a float32 vector into little-endian bytes, the same
// per-value layout the binary word2vec records use.
func vecToBytes(vec []float32) []byte {
	b := make([]byte, 4*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint32(b[4*i:], math.Float32bits(v))
	}
	return b
}

// bytesToVec unpacks little-endian bytes into a float32 vector.
func bytesToVec(b []byte) []float32 {
	vec := make([]float32, len(b)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[4*i:]))
	}
	return vec
}
