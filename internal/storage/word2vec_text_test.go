package storage

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/matsen/wordvec/internal/embedding"
)

func TestLoadWord2VecText(t *testing.T) {
	path := writeFixture(t, "model.txt", []byte("2 3\ncat 1.0 2.0 3.0\ndog 4.0 5.0 6.0\n"))

	tbl, err := LoadWord2VecText(path, "UTF-8", 0)
	if err != nil {
		t.Fatalf("LoadWord2VecText() error = %v", err)
	}
	if tbl.Rows() != 2 || tbl.Dim != 3 {
		t.Fatalf("got %d rows of dimension %d, want 2x3", tbl.Rows(), tbl.Dim)
	}
	want := []float32{1, 2, 3, 4, 5, 6}
	for i, v := range want {
		if tbl.Vectors[i] != v {
			t.Errorf("Vectors[%d] = %v, want %v", i, tbl.Vectors[i], v)
		}
	}
}

func TestLoadWord2VecText_MaxWords(t *testing.T) {
	path := writeFixture(t, "model.txt", []byte("3 2\na 1 2\nb 3 4\nc 5 6\n"))

	tbl, err := LoadWord2VecText(path, "UTF-8", 1)
	if err != nil {
		t.Fatalf("LoadWord2VecText() error = %v", err)
	}
	if tbl.Rows() != 1 || tbl.Vocab.Words[0] != "a" {
		t.Errorf("got %d rows, first %q; want 1 row %q", tbl.Rows(), tbl.Vocab.Words[0], "a")
	}
}

func TestLoadWord2VecText_ShortRow(t *testing.T) {
	path := writeFixture(t, "model.txt", []byte("2 3\ncat 1.0 2.0 3.0\ndog 4.0 5.0\n"))
	_, err := LoadWord2VecText(path, "UTF-8", 0)
	if !errors.Is(err, embedding.ErrTruncated) {
		t.Errorf("LoadWord2VecText() error = %v, want ErrTruncated", err)
	}
}

func TestLoadWord2VecText_MissingRecords(t *testing.T) {
	path := writeFixture(t, "model.txt", []byte("5 2\na 1 2\n"))
	_, err := LoadWord2VecText(path, "UTF-8", 0)
	if !errors.Is(err, embedding.ErrTruncated) {
		t.Errorf("LoadWord2VecText() error = %v, want ErrTruncated", err)
	}
}

func TestLoadWord2VecText_BadValue(t *testing.T) {
	path := writeFixture(t, "model.txt", []byte("1 2\ncat 1.0 banana\n"))
	_, err := LoadWord2VecText(path, "UTF-8", 0)
	if !errors.Is(err, embedding.ErrFormat) {
		t.Errorf("LoadWord2VecText() error = %v, want ErrFormat", err)
	}
}

func TestLoadWord2VecText_BadHeader(t *testing.T) {
	for _, header := range []string{"", "1\n", "one 2\n", "1 2 3\n", "1 0\n"} {
		path := writeFixture(t, "model.txt", []byte(header))
		if _, err := LoadWord2VecText(path, "UTF-8", 0); !errors.Is(err, embedding.ErrFormat) {
			t.Errorf("header %q: error = %v, want ErrFormat", header, err)
		}
	}
}

func TestWriteWord2VecText_RoundTrip(t *testing.T) {
	tbl := embedding.NewTable(2, 3)
	copy(tbl.Row(0), []float32{0.123456, -2.5, 3.0})
	copy(tbl.Row(1), []float32{-0.000001, 5.25, -6.125})
	tbl.Vocab.Add("cat")
	tbl.Vocab.Add("dog")

	path := filepath.Join(t.TempDir(), "model.txt")
	if err := WriteWord2VecText(path, tbl, "UTF-8"); err != nil {
		t.Fatalf("WriteWord2VecText() error = %v", err)
	}

	got, err := LoadWord2VecText(path, "UTF-8", 0)
	if err != nil {
		t.Fatalf("LoadWord2VecText() error = %v", err)
	}
	for i := range tbl.Vectors {
		want := tbl.Vectors[i]
		diff := math.Abs(float64(got.Vectors[i] - want))
		// Six decimal places of fixed-point output.
		if diff > 1e-6*math.Max(1, math.Abs(float64(want))) {
			t.Errorf("Vectors[%d] = %v, want %v within rounding", i, got.Vectors[i], want)
		}
	}
}

func TestWriteWord2VecText_LengthMismatch(t *testing.T) {
	tbl := embedding.NewTable(3, 2)
	tbl.Vocab.Add("a")

	err := WriteWord2VecText(filepath.Join(t.TempDir(), "model.txt"), tbl, "UTF-8")
	if !errors.Is(err, embedding.ErrLengthMismatch) {
		t.Errorf("WriteWord2VecText() error = %v, want ErrLengthMismatch", err)
	}
}
