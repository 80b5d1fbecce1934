package storage

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"

	"github.com/matsen/wordvec/internal/embedding"
)

// charset converts word tokens between the file's byte encoding and Go
// strings. Decoding is best-effort: bytes that are invalid for the chosen
// encoding are replaced, never fatal, because upstream embedding tools
// truncate long tokens mid-byte and the rest of the file is still good.
// Encoding replaces characters the target charset cannot represent.
type charset struct {
	dec *encoding.Decoder
	enc *encoding.Encoder
}

// newCharset resolves an encoding by IANA name ("UTF-8", "ISO-8859-1",
// "windows-1251", ...). The empty name means UTF-8.
func newCharset(name string) (*charset, error) {
	if name == "" {
		name = "UTF-8"
	}
	e, err := ianaindex.IANA.Encoding(name)
	if err != nil || e == nil {
		return nil, fmt.Errorf("%w: %q", embedding.ErrUnknownCharset, name)
	}
	return &charset{
		dec: e.NewDecoder(),
		enc: encoding.ReplaceUnsupported(e.NewEncoder()),
	}, nil
}

// decode converts file bytes to a string, replacing invalid sequences.
func (c *charset) decode(b []byte) string {
	s, err := c.dec.String(string(b))
	if err != nil {
		// Decoders for the encodings the IANA index serves replace bad
		// input rather than failing, but guard the fallback anyway.
		return strings.ToValidUTF8(string(b), string(utf8.RuneError))
	}
	return s
}

// encode converts a word to file bytes, replacing unsupported characters.
func (c *charset) encode(word string) []byte {
	b, err := c.enc.Bytes([]byte(word))
	if err != nil {
		return []byte(word)
	}
	return b
}
