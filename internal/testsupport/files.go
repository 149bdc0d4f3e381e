package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"wadcat/internal/catalog"
)

// WriteInput writes a listing file, creating parent directories.
func WriteInput(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// ReadDocument decodes a written code document.
func ReadDocument(t testing.TB, path string) catalog.CodeGroup {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read document %s: %v", path, err)
	}
	var group catalog.CodeGroup
	if err := json.Unmarshal(data, &group); err != nil {
		t.Fatalf("decode document %s: %v", path, err)
	}
	return group
}

// DocumentNames lists the .json files in dir, sorted.
func DocumentNames(t testing.TB, dir string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		t.Fatalf("read dir %s: %v", dir, err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names
}

// CountRecords sums the file records across every document in dir.
func CountRecords(t testing.TB, dir string) int {
	t.Helper()

	total := 0
	for _, name := range DocumentNames(t, dir) {
		group := ReadDocument(t, filepath.Join(dir, name))
		total += group.RecordCount()
	}
	return total
}
