package catalog

import (
	"errors"
	"strings"
)

type state int

const (
	stateAwaitingHeader state = iota
	stateInWad
)

// Options tunes how lines are recognized.
type Options struct {
	// HeaderMarker is the prefix identifying header lines. Empty means
	// DefaultHeaderMarker.
	HeaderMarker string
}

// Grouper is a two-state line parser. In AwaitingHeader only blank and header
// lines are valid; in InWad records are appended to the open wad. A header in
// InWad finalizes the open wad before opening the next one, and Finish
// finalizes the last one.
type Grouper struct {
	marker string

	state   state
	line    int
	code    string
	name    string
	current WadEntry
	catalog *Catalog
}

// NewGrouper returns a grouper in the AwaitingHeader state.
func NewGrouper(opts Options) *Grouper {
	marker := opts.HeaderMarker
	if marker == "" {
		marker = DefaultHeaderMarker
	}
	return &Grouper{marker: marker, catalog: NewCatalog()}
}

// Feed consumes one input line, without its terminating newline.
func (g *Grouper) Feed(line string) error {
	g.line++
	switch classify(line, g.marker) {
	case lineBlank:
		return nil
	case lineHeader:
		header, err := ParseHeader(line[len(g.marker):])
		if err != nil {
			return g.wrap(line, err)
		}
		if g.state == stateInWad {
			g.finalize()
		}
		g.code = header.Code
		g.name = header.Name
		g.current = WadEntry{Path: header.Path, Files: []FileRecord{}}
		g.state = stateInWad
		return nil
	default:
		if g.state != stateInWad {
			return &ParseError{Line: g.line, Text: line, Err: ErrOrphanRecord}
		}
		record, err := ParseRecord(line)
		if err != nil {
			return g.wrap(line, err)
		}
		g.current.Files = append(g.current.Files, record)
		return nil
	}
}

// Finish flushes the open wad and returns the finished catalog. The grouper is
// reset afterwards and may be reused for another input.
func (g *Grouper) Finish() *Catalog {
	if g.state == stateInWad {
		g.finalize()
	}
	out := g.catalog
	*g = Grouper{marker: g.marker, catalog: NewCatalog()}
	return out
}

// Line returns the number of lines consumed so far.
func (g *Grouper) Line() int { return g.line }

func (g *Grouper) finalize() {
	g.catalog.attach(g.code, g.name, g.current)
	g.current = WadEntry{}
	g.state = stateAwaitingHeader
}

func (g *Grouper) wrap(line string, err error) error {
	perr := &ParseError{Line: g.line, Text: line, Err: err}
	for _, sentinel := range []error{ErrMalformedHeader, ErrMalformedRecord} {
		if errors.Is(err, sentinel) {
			perr.Err = sentinel
			perr.Reason = strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
			break
		}
	}
	return perr
}
