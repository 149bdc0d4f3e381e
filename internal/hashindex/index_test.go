package hashindex_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"wadcat/internal/catalog"
	"wadcat/internal/hashindex"
)

const sampleListing = `# C1-NameOne/wads/one.wad
1a2b,80,x,file1.dat
ffffffffffffffff,10,x,max.bin
# C2-NameTwo/wads/two.wad
1a2b,50,x,shared.dat
# C1-NameOne/wads/three.wad
1a2b,20,x,later.dat
`

func parseCatalog(t *testing.T, text string) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Parse(strings.NewReader(text), "", catalog.Options{})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return cat
}

func openIndex(t *testing.T) *hashindex.Index {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "hashes.db")
	index, err := hashindex.Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = index.Close() })
	if index.Path() != path {
		t.Fatalf("Path() = %q, want %q", index.Path(), path)
	}
	return index
}

func TestReplaceAndLookup(t *testing.T) {
	ctx := context.Background()
	index := openIndex(t)

	counts, err := index.Replace(ctx, parseCatalog(t, sampleListing))
	if err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if counts != (hashindex.Counts{Codes: 2, Wads: 3, Files: 4}) {
		t.Fatalf("unexpected counts: %+v", counts)
	}

	matches, err := index.Lookup(ctx, 0x1a2b)
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	want := []hashindex.Match{
		{Hash: 0x1a2b, Filename: "file1.dat", Confidence: 80, Code: "C1", Name: "NameOne", WadPath: "wads/one.wad"},
		{Hash: 0x1a2b, Filename: "later.dat", Confidence: 20, Code: "C1", Name: "NameOne", WadPath: "wads/three.wad"},
		{Hash: 0x1a2b, Filename: "shared.dat", Confidence: 50, Code: "C2", Name: "NameTwo", WadPath: "wads/two.wad"},
	}
	if len(matches) != len(want) {
		t.Fatalf("expected %d matches, got %+v", len(want), matches)
	}
	for i := range want {
		if matches[i] != want[i] {
			t.Fatalf("match %d = %+v, want %+v", i, matches[i], want[i])
		}
	}
}

func TestLookupFullWidthHash(t *testing.T) {
	ctx := context.Background()
	index := openIndex(t)
	if _, err := index.Replace(ctx, parseCatalog(t, sampleListing)); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	matches, err := index.Lookup(ctx, ^uint64(0))
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if len(matches) != 1 || matches[0].Filename != "max.bin" || matches[0].Hash != ^uint64(0) {
		t.Fatalf("unexpected matches: %+v", matches)
	}
}

func TestLookupUnknownHash(t *testing.T) {
	index := openIndex(t)
	matches, err := index.Lookup(context.Background(), 42)
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("expected no matches, got %+v", matches)
	}
}

func TestReplaceDiscardsPreviousRun(t *testing.T) {
	ctx := context.Background()
	index := openIndex(t)
	if _, err := index.Replace(ctx, parseCatalog(t, sampleListing)); err != nil {
		t.Fatalf("first Replace failed: %v", err)
	}
	if _, err := index.Replace(ctx, parseCatalog(t, "# C9-Other/x.wad\n7,1,x,only.dat\n")); err != nil {
		t.Fatalf("second Replace failed: %v", err)
	}

	counts, err := index.Counts(ctx)
	if err != nil {
		t.Fatalf("Counts failed: %v", err)
	}
	if counts != (hashindex.Counts{Codes: 1, Wads: 1, Files: 1}) {
		t.Fatalf("unexpected counts after replace: %+v", counts)
	}
	matches, err := index.Lookup(ctx, 0x1a2b)
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("stale rows survived replace: %+v", matches)
	}
}

func TestReplaceEmptyCatalog(t *testing.T) {
	ctx := context.Background()
	index := openIndex(t)
	counts, err := index.Replace(ctx, catalog.NewCatalog())
	if err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if counts != (hashindex.Counts{}) {
		t.Fatalf("expected zero counts, got %+v", counts)
	}
}

func TestReopenKeepsContents(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "hashes.db")

	first, err := hashindex.Open(ctx, path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, err := first.Replace(ctx, parseCatalog(t, sampleListing)); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	second, err := hashindex.Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer second.Close()
	counts, err := second.Counts(ctx)
	if err != nil {
		t.Fatalf("Counts failed: %v", err)
	}
	if counts.Files != 4 {
		t.Fatalf("expected 4 files after reopen, got %+v", counts)
	}
}

func TestOpenRejectsSchemaMismatch(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "hashes.db")
	index, err := hashindex.Open(ctx, path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := index.SetSchemaVersionForTest(ctx, 99); err != nil {
		t.Fatalf("set version: %v", err)
	}
	_ = index.Close()

	_, err = hashindex.Open(ctx, path)
	if !errors.Is(err, hashindex.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}
