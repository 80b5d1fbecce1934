// Package embedding defines the in-memory representation of a word-embedding
// table: an ordered vocabulary paired with a dense float32 matrix.
package embedding

// Vocabulary is an ordered list of words plus a word-to-row lookup.
//
// Words keeps every occurrence in file order, including duplicates. Index
// maps each word to the row of its *last* occurrence; loading a file where a
// word appears twice leaves both entries in Words but resolves lookups to
// the later row. Callers relying on w2i-style lookup depend on this.
type Vocabulary struct {
	Words []string
	Index map[string]int
}

// NewVocabulary returns an empty vocabulary with capacity for n words.
func NewVocabulary(n int) *Vocabulary {
	return &Vocabulary{
		Words: make([]string, 0, n),
		Index: make(map[string]int, n),
	}
}

// Add appends word and points the lookup at its new row, overwriting any
// earlier entry for the same word. It returns the row index.
func (v *Vocabulary) Add(word string) int {
	row := len(v.Words)
	v.Words = append(v.Words, word)
	v.Index[word] = row
	return row
}

// Len returns the number of words, counting duplicates.
func (v *Vocabulary) Len() int {
	return len(v.Words)
}

// Row returns the matrix row for word, or false if word is not present.
func (v *Vocabulary) Row(word string) (int, bool) {
	row, ok := v.Index[word]
	return row, ok
}

// Has reports whether word is in the vocabulary.
func (v *Vocabulary) Has(word string) bool {
	_, ok := v.Index[word]
	return ok
}

// Table pairs a vocabulary with its embedding matrix. The matrix is stored
// row-major in a single backing slice of length Rows()*Dim.
//
// A table is valid when Vocab.Len() == Rows(). Loaders always return valid
// tables; writers reject invalid ones with ErrLengthMismatch.
type Table struct {
	Vocab   *Vocabulary
	Vectors []float32
	Dim     int
}

// NewTable returns a table pre-sized for rows words of dimension dim, with
// an empty vocabulary to be filled as rows are decoded.
func NewTable(rows, dim int) *Table {
	return &Table{
		Vocab:   NewVocabulary(rows),
		Vectors: make([]float32, rows*dim),
		Dim:     dim,
	}
}

// Rows returns the number of matrix rows.
func (t *Table) Rows() int {
	if t.Dim == 0 {
		return 0
	}
	return len(t.Vectors) / t.Dim
}

// Row returns row i of the matrix as a sub-slice of the backing array.
func (t *Table) Row(i int) []float32 {
	return t.Vectors[i*t.Dim : (i+1)*t.Dim : (i+1)*t.Dim]
}

// Vector returns the embedding for word, or false if word is not present.
// Duplicate words resolve to their last occurrence.
func (t *Table) Vector(word string) ([]float32, bool) {
	row, ok := t.Vocab.Row(word)
	if !ok {
		return nil, false
	}
	return t.Row(row), true
}
