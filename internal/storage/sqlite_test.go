package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/matsen/wordvec/internal/embedding"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "words.db"))
	if err != nil {
		t.Fatalf("OpenDB() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testTable(t *testing.T) *embedding.Table {
	t.Helper()
	tbl := embedding.NewTable(3, 2)
	copy(tbl.Row(0), []float32{1, 2})
	copy(tbl.Row(1), []float32{3, 4})
	copy(tbl.Row(2), []float32{5, 6})
	tbl.Vocab.Add("cat")
	tbl.Vocab.Add("dog")
	tbl.Vocab.Add("cat") // duplicate: lookup must resolve to row 2
	return tbl
}

func TestDB_RebuildAndReadTable(t *testing.T) {
	db := testDB(t)
	tbl := testTable(t)

	n, err := db.Rebuild(tbl)
	if err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}
	if n != 3 {
		t.Errorf("Rebuild() = %d rows, want 3", n)
	}

	got, err := db.ReadTable()
	if err != nil {
		t.Fatalf("ReadTable() error = %v", err)
	}
	if got.Rows() != 3 || got.Dim != 2 {
		t.Fatalf("got %d rows of dimension %d, want 3x2", got.Rows(), got.Dim)
	}
	for i, w := range tbl.Vocab.Words {
		if got.Vocab.Words[i] != w {
			t.Errorf("word %d = %q, want %q", i, got.Vocab.Words[i], w)
		}
	}
	for i := range tbl.Vectors {
		if got.Vectors[i] != tbl.Vectors[i] {
			t.Errorf("Vectors[%d] = %v, want %v", i, got.Vectors[i], tbl.Vectors[i])
		}
	}
	if row, _ := got.Vocab.Row("cat"); row != 2 {
		t.Errorf("Row(cat) = %d, want 2 (last write wins survives the database)", row)
	}
}

func TestDB_Rebuild_Replaces(t *testing.T) {
	db := testDB(t)
	if _, err := db.Rebuild(testTable(t)); err != nil {
		t.Fatalf("first Rebuild() error = %v", err)
	}

	small := embedding.NewTable(1, 2)
	copy(small.Row(0), []float32{9, 9})
	small.Vocab.Add("only")
	if _, err := db.Rebuild(small); err != nil {
		t.Fatalf("second Rebuild() error = %v", err)
	}

	got, err := db.ReadTable()
	if err != nil {
		t.Fatalf("ReadTable() error = %v", err)
	}
	if got.Rows() != 1 || got.Vocab.Words[0] != "only" {
		t.Errorf("got %d rows, first %q; want the rebuilt table only", got.Rows(), got.Vocab.Words[0])
	}
}

func TestDB_Rebuild_LengthMismatch(t *testing.T) {
	db := testDB(t)
	tbl := embedding.NewTable(2, 2)
	tbl.Vocab.Add("a")

	if _, err := db.Rebuild(tbl); !errors.Is(err, embedding.ErrLengthMismatch) {
		t.Errorf("Rebuild() error = %v, want ErrLengthMismatch", err)
	}
}

func TestDB_Vector(t *testing.T) {
	db := testDB(t)
	if _, err := db.Rebuild(testTable(t)); err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}

	vec, err := db.Vector("dog")
	if err != nil {
		t.Fatalf("Vector(dog) error = %v", err)
	}
	if vec[0] != 3 || vec[1] != 4 {
		t.Errorf("Vector(dog) = %v, want [3 4]", vec)
	}

	// Duplicate word: the last position's vector.
	vec, err = db.Vector("cat")
	if err != nil {
		t.Fatalf("Vector(cat) error = %v", err)
	}
	if vec[0] != 5 || vec[1] != 6 {
		t.Errorf("Vector(cat) = %v, want [5 6] (last position)", vec)
	}

	if _, err := db.Vector("fish"); !errors.Is(err, embedding.ErrNotFound) {
		t.Errorf("Vector(fish) error = %v, want ErrNotFound", err)
	}
}

func TestDB_ReadTable_Empty(t *testing.T) {
	db := testDB(t)
	if _, err := db.ReadTable(); !errors.Is(err, embedding.ErrFormat) {
		t.Errorf("ReadTable() on empty database error = %v, want ErrFormat", err)
	}
}
