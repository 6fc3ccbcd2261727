package core

// decode.go wraps file readers so the CSV parser always sees UTF-8.
//
// Source files are exported as ISO-8859-1 by default, so accented headers
// such as "catégorie" arrive as single bytes. The decoder is chosen by IANA
// name (e.g. "ISO-8859-1", "windows-1252", "UTF-8"). A leading UTF-8 BOM
// is dropped before decoding so that it never leaks into the first header
// cell.

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// DefaultEncoding is the encoding used when none is configured.
const DefaultEncoding = "ISO-8859-1"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// LookupEncoding resolves an IANA encoding name.
func LookupEncoding(name string) (encoding.Encoding, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "latin1") || strings.EqualFold(name, DefaultEncoding) {
		return charmap.ISO8859_1, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
	return enc, nil
}

// NewDecodingReader skips a UTF-8 BOM and decodes r into UTF-8.
func NewDecodingReader(r io.Reader, enc encoding.Encoding) io.Reader {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		br.Discard(len(utf8BOM))
	}
	if enc == nil {
		enc = charmap.ISO8859_1
	}
	return transform.NewReader(br, enc.NewDecoder())
}

// EncodeString converts a UTF-8 string to enc. Used to produce fixtures
// and exports in a source encoding.
func EncodeString(s string, enc encoding.Encoding) (string, error) {
	out, _, err := transform.String(enc.NewEncoder(), s)
	if err != nil {
		return "", fmt.Errorf("encoding error: %w", err)
	}
	return out, nil
}
