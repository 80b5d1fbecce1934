package storage

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/matsen/wordvec/internal/embedding"
)

// DB wraps a SQLite database holding an indexed copy of one embedding
// table. The embedding file stays the canonical artifact; the database
// exists for single-word lookups without loading the whole table.
type DB struct {
	db *sql.DB
}

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the schema if it doesn't exist (idempotent via
// CREATE IF NOT EXISTS). Vectors are stored as little-endian float32 blobs,
// the same per-value layout as the binary word2vec records.
func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS words (
			pos INTEGER PRIMARY KEY,
			word TEXT NOT NULL,
			vector BLOB NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_words_word ON words(word);
	`
	if _, err := db.Exec(schema); err != nil {
		return err
	}
	return nil
}

// Rebuild clears the words table and refills it from tbl, one row per
// vocabulary entry in file order. Duplicate words keep every row, as the
// vocabulary does; lookups resolve to the last position. Returns the number
// of rows written.
func (d *DB) Rebuild(tbl *embedding.Table) (int, error) {
	if tbl.Vocab.Len() != tbl.Rows() {
		return 0, fmt.Errorf("%w: %d words, %d rows", embedding.ErrLengthMismatch, tbl.Vocab.Len(), tbl.Rows())
	}

	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM words"); err != nil {
		return 0, fmt.Errorf("clearing words table: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO words (pos, word, vector) VALUES (?, ?, ?)")
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, word := range tbl.Vocab.Words {
		if _, err := stmt.Exec(i, word, vecToBytes(tbl.Row(i))); err != nil {
			return 0, fmt.Errorf("inserting word %q: %w", word, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing: %w", err)
	}
	return tbl.Rows(), nil
}

// ReadTable loads the full table back out of the database in position
// order.
func (d *DB) ReadTable() (*embedding.Table, error) {
	rows, err := d.db.Query("SELECT word, vector FROM words ORDER BY pos")
	if err != nil {
		return nil, fmt.Errorf("querying words: %w", err)
	}
	defer rows.Close()

	dim := 0
	var data []float32
	vocab := embedding.NewVocabulary(0)
	for rows.Next() {
		var word string
		var blob []byte
		if err := rows.Scan(&word, &blob); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if dim == 0 {
			if len(blob) == 0 || len(blob)%4 != 0 {
				return nil, fmt.Errorf("%w: vector blob of %d bytes", embedding.ErrFormat, len(blob))
			}
			dim = len(blob) / 4
		} else if len(blob) != 4*dim {
			return nil, fmt.Errorf("%w: row %d vector blob of %d bytes, dimension is %d", embedding.ErrFormat, vocab.Len(), len(blob), dim)
		}
		data = append(data, bytesToVec(blob)...)
		vocab.Add(word)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading rows: %w", err)
	}
	if dim == 0 {
		return nil, fmt.Errorf("%w: database holds no words", embedding.ErrFormat)
	}
	return &embedding.Table{Vocab: vocab, Vectors: data, Dim: dim}, nil
}

// Vector returns the embedding for word. Duplicate words resolve to the
// last position, matching the in-memory lookup. Returns
// embedding.ErrNotFound if word is absent.
func (d *DB) Vector(word string) ([]float32, error) {
	var blob []byte
	err := d.db.QueryRow(
		"SELECT vector FROM words WHERE word = ? ORDER BY pos DESC LIMIT 1",
		word,
	).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", embedding.ErrNotFound, word)
	}
	if err != nil {
		return nil, fmt.Errorf("querying word %q: %w", word, err)
	}
	return bytesToVec(blob), nil
}
