package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DefaultHeaderMarker prefixes every header line in the stock listings.
const DefaultHeaderMarker = "# "

type lineKind int

const (
	lineBlank lineKind = iota
	lineHeader
	lineRecord
)

func classify(line, marker string) lineKind {
	switch {
	case strings.TrimSpace(line) == "":
		return lineBlank
	case strings.HasPrefix(line, marker):
		return lineHeader
	default:
		return lineRecord
	}
}

// Header is the decoded form of a header line.
type Header struct {
	Code string
	Name string
	Path string
}

// ParseHeader splits the text following the marker into code, name and path.
// The first '-' ends the code and the first '/' after it ends the name; the
// path keeps any further slashes.
func ParseHeader(text string) (Header, error) {
	code, rest, ok := strings.Cut(text, "-")
	if !ok {
		return Header{}, fmt.Errorf("%w: missing '-' after code", ErrMalformedHeader)
	}
	name, path, ok := strings.Cut(rest, "/")
	if !ok {
		return Header{}, fmt.Errorf("%w: missing '/' after name", ErrMalformedHeader)
	}
	return Header{Code: code, Name: name, Path: path}, nil
}

// ParseRecord decodes a record line.
//
// Three-field lines read `<hash>,<confidence>,<filename>`. Lines with four or
// more fields read `<hash>,<confidence>,<ignored>,<filename>` where the
// filename is everything after the third comma.
func ParseRecord(text string) (FileRecord, error) {
	fields := strings.SplitN(text, ",", 4)
	if len(fields) < 3 {
		return FileRecord{}, fmt.Errorf("%w: expected at least 3 comma-separated fields, got %d", ErrMalformedRecord, len(fields))
	}
	hash, err := ParseHash(fields[0])
	if err != nil {
		return FileRecord{}, err
	}
	confidence, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		return FileRecord{}, fmt.Errorf("%w: invalid confidence %q", ErrMalformedRecord, fields[1])
	}
	filename := fields[2]
	if len(fields) == 4 {
		filename = fields[3]
	}
	return FileRecord{Hash: hash, Filename: filename, Confidence: confidence}, nil
}

// ParseHash converts hexadecimal hash text, with an optional 0x prefix, to an
// unsigned integer.
func ParseHash(text string) (uint64, error) {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) > 2 && (trimmed[:2] == "0x" || trimmed[:2] == "0X") {
		trimmed = trimmed[2:]
	}
	if trimmed == "" {
		return 0, fmt.Errorf("%w: empty hash", ErrMalformedRecord)
	}
	value, err := strconv.ParseUint(trimmed, 16, 64)
	if errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("%w: hash %q exceeds 64 bits: %w", ErrMalformedRecord, text, strconv.ErrRange)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: invalid hash %q", ErrMalformedRecord, text)
	}
	return value, nil
}
