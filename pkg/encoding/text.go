// Package encoding converts scene files written in legacy charsets to UTF-8.
package encoding

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrUnknownCharset is returned for charset names that are not supported.
var ErrUnknownCharset = errors.New("unknown charset")

// DefaultCharset is used when no charset is configured.
const DefaultCharset = "utf-8"

var charsets = map[string]encoding.Encoding{
	"utf-8":        unicode.UTF8BOM,
	"latin1":       charmap.ISO8859_1,
	"iso-8859-1":   charmap.ISO8859_1,
	"iso-8859-15":  charmap.ISO8859_15,
	"windows-1252": charmap.Windows1252,
	"cp1252":       charmap.Windows1252,
	"euc-kr":       korean.EUCKR,
	"shift_jis":    japanese.ShiftJIS,
}

func lookup(charset string) (encoding.Encoding, error) {
	name := strings.ToLower(strings.TrimSpace(charset))
	if name == "" || name == "utf8" {
		name = DefaultCharset
	}
	enc, ok := charsets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCharset, charset)
	}
	return enc, nil
}

// Supported reports whether charset can be decoded.
func Supported(charset string) bool {
	_, err := lookup(charset)
	return err == nil
}

// Charsets returns the accepted charset names, sorted.
func Charsets() []string {
	names := make([]string, 0, len(charsets))
	for name := range charsets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ToUTF8 decodes data from charset into UTF-8. A leading UTF-8 byte order
// mark is dropped.
func ToUTF8(data []byte, charset string) ([]byte, error) {
	enc, err := lookup(charset)
	if err != nil {
		return nil, err
	}
	result, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", charset, err)
	}
	return result, nil
}
