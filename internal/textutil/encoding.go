package textutil

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
)

var (
	// ErrUnknownEncoding is returned for encoding names outside SupportedEncodings.
	ErrUnknownEncoding = errors.New("unknown input encoding")
	// ErrUndecodable reports bytes that are not valid in the selected encoding.
	ErrUndecodable = errors.New("bytes not valid in input encoding")
)

var utf8BOM = []byte("\xef\xbb\xbf")

// DefaultEncoding is used when no encoding is configured.
const DefaultEncoding = "utf-8"

var encodings = map[string]encoding.Encoding{
	"utf-8":        unicode.UTF8,
	"utf8":         unicode.UTF8,
	"latin1":       charmap.ISO8859_1,
	"iso-8859-1":   charmap.ISO8859_1,
	"windows-1252": charmap.Windows1252,
	"cp1252":       charmap.Windows1252,
	"cp437":        charmap.CodePage437,
	"shift_jis":    japanese.ShiftJIS,
	"sjis":         japanese.ShiftJIS,
}

// NormalizeEncoding canonicalizes an encoding name for lookup.
func NormalizeEncoding(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DefaultEncoding
	}
	return name
}

// SupportedEncodings lists the accepted encoding names in sorted order.
func SupportedEncodings() []string {
	names := make([]string, 0, len(encodings))
	for name := range encodings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CheckEncoding reports whether name is supported.
func CheckEncoding(name string) error {
	if _, ok := encodings[NormalizeEncoding(name)]; !ok {
		return fmt.Errorf("%w %q (supported: %s)", ErrUnknownEncoding, name, strings.Join(SupportedEncodings(), ", "))
	}
	return nil
}

// LineDecoder converts raw input lines to UTF-8. Byte sequences the source
// encoding cannot represent are reported instead of being replaced.
type LineDecoder struct {
	name    string
	enc     encoding.Encoding
	isUTF8  bool
	started bool
}

// NewLineDecoder returns a decoder for the named encoding. A byte order mark
// is stripped from the first UTF-8 line only.
func NewLineDecoder(name string) (*LineDecoder, error) {
	normalized := NormalizeEncoding(name)
	enc, ok := encodings[normalized]
	if !ok {
		return nil, CheckEncoding(name)
	}
	return &LineDecoder{
		name:   normalized,
		enc:    enc,
		isUTF8: normalized == "utf-8" || normalized == "utf8",
	}, nil
}

// Decode returns line as UTF-8. On failure the returned text is a lossy
// rendering suitable for diagnostics and the error wraps ErrUndecodable.
func (d *LineDecoder) Decode(line []byte) (string, error) {
	first := !d.started
	d.started = true
	if d.isUTF8 {
		if first {
			line = bytes.TrimPrefix(line, utf8BOM)
		}
		if offset := invalidUTF8Offset(line); offset >= 0 {
			return strings.ToValidUTF8(string(line), "\uFFFD"),
				fmt.Errorf("%w: byte 0x%02x at offset %d is not %s", ErrUndecodable, line[offset], offset, d.name)
		}
		return string(line), nil
	}
	out, err := d.enc.NewDecoder().Bytes(line)
	if err != nil {
		return strings.ToValidUTF8(string(line), "\uFFFD"), fmt.Errorf("%w: %s: %w", ErrUndecodable, d.name, err)
	}
	// Legacy decoders emit U+FFFD for unmapped input.
	if bytes.ContainsRune(out, utf8.RuneError) {
		return string(out), fmt.Errorf("%w: unmapped sequence in %s text", ErrUndecodable, d.name)
	}
	return string(out), nil
}

func invalidUTF8Offset(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}
