package testsupport

import (
	"context"
	"testing"

	"wadcat/internal/hashindex"
)

// MustOpenIndex opens a hashindex.Index for tests and registers cleanup.
func MustOpenIndex(t testing.TB, path string) *hashindex.Index {
	t.Helper()

	index, err := hashindex.Open(context.Background(), path)
	if err != nil {
		t.Fatalf("hashindex.Open: %v", err)
	}
	t.Cleanup(func() {
		index.Close()
	})
	return index
}
