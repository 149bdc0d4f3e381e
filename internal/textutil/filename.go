package textutil

import (
	"errors"
	"strings"
)

// ValidateFileStem rejects names that would not stay a single file inside the
// output directory once an extension is appended.
func ValidateFileStem(name string) error {
	switch {
	case name == "":
		return errors.New("empty name")
	case strings.TrimSpace(name) == "":
		return errors.New("blank name")
	case name == "." || name == "..":
		return errors.New("reserved name")
	case strings.ContainsAny(name, "/\\"):
		return errors.New("contains a path separator")
	case strings.ContainsRune(name, 0):
		return errors.New("contains a NUL byte")
	}
	return nil
}
