package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrInputNotFound reports a source listing that is missing or unreadable.
	ErrInputNotFound = errors.New("input not found")
	// ErrMalformedHeader reports a header line missing its '-' or '/' delimiter.
	ErrMalformedHeader = errors.New("malformed header line")
	// ErrMalformedRecord reports a record line with too few fields or bad numbers.
	ErrMalformedRecord = errors.New("malformed record line")
	// ErrOrphanRecord reports a record line that appears before any header.
	ErrOrphanRecord = errors.New("record line before any header")
	// ErrInvalidText reports a line holding bytes the input encoding cannot decode.
	ErrInvalidText = errors.New("line is not valid in the input encoding")
	// ErrUnsafeCode reports a code that cannot be used as an output file name.
	ErrUnsafeCode = errors.New("code is not usable as a file name")
)

// Error kinds returned by ErrorKind and Kind.
const (
	KindInput    = "input"
	KindEncoding = "encoding"
	KindHeader   = "header"
	KindRecord   = "record"
	KindOrphan   = "orphan"
	KindOutput   = "output"
)

// ParseError locates a failure at a specific input line.
type ParseError struct {
	Line   int
	Text   string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Text)
	}
	return fmt.Sprintf("line %d: %v (%s): %q", e.Line, e.Err, e.Reason, e.Text)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ErrorKind classifies the failure for callers that only need the category.
func (e *ParseError) ErrorKind() string { return Kind(e.Err) }

// Kind maps err onto one of the Kind constants, or "" when err is not a
// catalog failure.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInputNotFound):
		return KindInput
	case errors.Is(err, ErrInvalidText):
		return KindEncoding
	case errors.Is(err, ErrMalformedHeader):
		return KindHeader
	case errors.Is(err, ErrMalformedRecord):
		return KindRecord
	case errors.Is(err, ErrOrphanRecord):
		return KindOrphan
	case errors.Is(err, ErrUnsafeCode):
		return KindOutput
	default:
		return ""
	}
}
