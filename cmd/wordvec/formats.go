package main

import (
	"fmt"
	"strings"

	"github.com/matsen/wordvec/internal/embedding"
	"github.com/matsen/wordvec/internal/storage"
)

// File layout names accepted by --from/--to flags and the config file.
const (
	FormatWord2VecBinary = "word2vec-binary"
	FormatWord2VecText   = "word2vec-text"
	FormatBareText       = "bare-text"
)

// FormatNames lists the accepted layout names for usage text.
var FormatNames = []string{FormatWord2VecBinary, FormatWord2VecText, FormatBareText}

// loadTable loads an embedding table from path in the named layout.
func loadTable(format, path, charsetName string, maxWords int) (*embedding.Table, error) {
	switch format {
	case FormatWord2VecBinary:
		return storage.LoadWord2VecBinary(path, charsetName, maxWords)
	case FormatWord2VecText:
		return storage.LoadWord2VecText(path, charsetName, maxWords)
	case FormatBareText:
		return storage.LoadBareText(path, charsetName, maxWords)
	}
	return nil, fmt.Errorf("unknown format %q (expected one of %s)", format, strings.Join(FormatNames, ", "))
}

// writeTable writes an embedding table to path in the named layout.
func writeTable(format, path string, tbl *embedding.Table, charsetName string) error {
	switch format {
	case FormatWord2VecBinary:
		return storage.WriteWord2VecBinary(path, tbl, charsetName)
	case FormatWord2VecText:
		return storage.WriteWord2VecText(path, tbl, charsetName)
	case FormatBareText:
		return storage.WriteBareText(path, tbl, charsetName)
	}
	return fmt.Errorf("unknown format %q (expected one of %s)", format, strings.Join(FormatNames, ", "))
}
