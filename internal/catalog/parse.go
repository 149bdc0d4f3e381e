package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"wadcat/internal/textutil"
)

// Parse reads the whole listing from r and groups it. Each line is decoded
// from encoding on its own, so a byte sequence the encoding cannot represent
// fails with a ParseError wrapping ErrInvalidText at that line.
func Parse(r io.Reader, encoding string, opts Options) (*Catalog, error) {
	decoder, err := textutil.NewLineDecoder(encoding)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	grouper := NewGrouper(opts)
	for i, raw := range bytes.Split(data, []byte("\n")) {
		line, err := decoder.Decode(bytes.TrimSuffix(raw, []byte("\r")))
		if err != nil {
			return nil, &ParseError{
				Line:   i + 1,
				Text:   line,
				Reason: strings.TrimPrefix(err.Error(), textutil.ErrUndecodable.Error()+": "),
				Err:    ErrInvalidText,
			}
		}
		if err := grouper.Feed(line); err != nil {
			return nil, err
		}
	}
	return grouper.Finish(), nil
}

// ParseFile opens path and parses it. A missing or unreadable file is reported
// as ErrInputNotFound.
func ParseFile(path, encoding string, opts Options) (*Catalog, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w: %w", path, ErrInputNotFound, err)
	}
	defer file.Close()

	cat, err := Parse(file, encoding, opts)
	if err != nil {
		if Kind(err) == "" && !errors.Is(err, textutil.ErrUnknownEncoding) {
			return nil, fmt.Errorf("%s: %w: %w", path, ErrInputNotFound, err)
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cat, nil
}
