package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"wadcat/internal/fileutil"
	"wadcat/internal/textutil"
)

// DocumentName returns the output file name for code.
func DocumentName(code string) (string, error) {
	if err := textutil.ValidateFileStem(code); err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrUnsafeCode, code, err)
	}
	return code + ".json", nil
}

// CheckCodes verifies that every code in cat maps to a usable document name.
func CheckCodes(cat *Catalog) error {
	for _, group := range cat.Groups() {
		if _, err := DocumentName(group.Code); err != nil {
			return err
		}
	}
	return nil
}

// EncodeGroup renders group as a JSON document indented by indent spaces.
// Zero indent produces compact output.
func EncodeGroup(group *CodeGroup, indent int) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", indent))
	}
	if err := enc.Encode(group); err != nil {
		return nil, fmt.Errorf("encode %s: %w", group.Code, err)
	}
	return buf.Bytes(), nil
}

// WriteOptions controls document output.
type WriteOptions struct {
	Indent   int
	Progress io.Writer
}

// WriteDocuments writes one `<code>.json` per group into dir, replacing any
// existing file, and reports each destination on opts.Progress before writing
// it. Codes are all checked before the first write. Documents written before a
// later failure are left in place.
func WriteDocuments(cat *Catalog, dir string, opts WriteOptions) ([]string, error) {
	if err := CheckCodes(cat); err != nil {
		return nil, err
	}
	progress := opts.Progress
	if progress == nil {
		progress = io.Discard
	}

	written := make([]string, 0, cat.Len())
	for _, group := range cat.Groups() {
		name, err := DocumentName(group.Code)
		if err != nil {
			return written, err
		}
		data, err := EncodeGroup(group, opts.Indent)
		if err != nil {
			return written, err
		}
		target := filepath.Join(dir, name)
		fmt.Fprintf(progress, "Writing into %s\n", target)
		if err := fileutil.WriteFileAtomic(target, data, 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", target, err)
		}
		written = append(written, target)
	}
	return written, nil
}
