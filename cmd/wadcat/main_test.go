package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"wadcat/internal/catalog"
	"wadcat/internal/testsupport"
)

func TestDefaultRunWritesDocument(t *testing.T) {
	work := setupWorkDir(t, oneCodeListing)

	out, _, err := runCLI(t)
	if err != nil {
		t.Fatalf("wadcat: %v", err)
	}
	if out != "Writing into C1.json\n" {
		t.Fatalf("stdout = %q, want exactly one progress line", out)
	}

	want := `{
  "code": "C1",
  "name": "NameOne",
  "wads": [
    {
      "path": "wads/one.wad",
      "files": [
        {
          "hash": 6699,
          "filename": "file1.dat",
          "confidence": 80
        }
      ]
    },
    {
      "path": "wads/two.wad",
      "files": [
        {
          "hash": 255,
          "filename": "file2.dat",
          "confidence": 50
        }
      ]
    }
  ]
}
`
	got, err := os.ReadFile(filepath.Join(work, "C1.json"))
	if err != nil {
		t.Fatalf("read C1.json: %v", err)
	}
	if string(got) != want {
		t.Fatalf("C1.json mismatch\n got: %s\nwant: %s", got, want)
	}
}

func TestOrphanRecordFailsWithoutOutput(t *testing.T) {
	work := setupWorkDir(t, "1a2b,80,x,file1.dat\n"+oneCodeListing)

	out, _, err := runCLI(t)
	if !errors.Is(err, catalog.ErrOrphanRecord) {
		t.Fatalf("expected ErrOrphanRecord, got %v", err)
	}
	requireContains(t, err.Error(), "line 1")
	if out != "" {
		t.Fatalf("expected no progress output, got %q", out)
	}
	if files := jsonFiles(t, work); len(files) != 0 {
		t.Fatalf("expected zero documents, got %v", files)
	}
}

func TestTwoCodesTwoDocuments(t *testing.T) {
	listing := "# C1-NameOne/a.wad\n1,1,x,a\n# C2-NameTwo/b.wad\n2,2,x,b\n3,3,x,c\n"
	work := setupWorkDir(t, listing)

	out, _, err := runCLI(t)
	if err != nil {
		t.Fatalf("wadcat: %v", err)
	}
	if out != "Writing into C1.json\nWriting into C2.json\n" {
		t.Fatalf("unexpected progress: %q", out)
	}
	if files := jsonFiles(t, work); !reflect.DeepEqual(files, []string{"C1.json", "C2.json"}) {
		t.Fatalf("unexpected documents: %v", files)
	}

	c2 := testsupport.ReadDocument(t, filepath.Join(work, "C2.json"))
	if c2.Name != "NameTwo" || c2.RecordCount() != 2 {
		t.Fatalf("unexpected C2 document: %+v", c2)
	}
	if testsupport.CountRecords(t, work) != 3 {
		t.Fatalf("record count differs from input")
	}
}

func TestRunIsIdempotent(t *testing.T) {
	work := setupWorkDir(t, oneCodeListing)

	if _, _, err := runCLI(t); err != nil {
		t.Fatalf("first run: %v", err)
	}
	first, err := os.ReadFile(filepath.Join(work, "C1.json"))
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := runCLI(t); err != nil {
		t.Fatalf("second run: %v", err)
	}
	second, err := os.ReadFile(filepath.Join(work, "C1.json"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Fatal("second run produced different bytes")
	}
}

func TestFirstNameKeptAndLastBlockFlushed(t *testing.T) {
	listing := "# C1-First/a.wad\n1,1,x,a\n# C1-Second/b.wad\n2,2,x,b\n3,3,x,last"
	work := setupWorkDir(t, listing)

	if _, _, err := runCLI(t); err != nil {
		t.Fatalf("wadcat: %v", err)
	}
	doc := testsupport.ReadDocument(t, filepath.Join(work, "C1.json"))
	if doc.Name != "First" {
		t.Fatalf("expected first name to win, got %q", doc.Name)
	}
	if len(doc.Wads) != 2 {
		t.Fatalf("expected 2 wads, got %d", len(doc.Wads))
	}
	last := doc.Wads[1].Files
	if len(last) != 2 || last[1].Filename != "last" {
		t.Fatalf("final block not flushed: %+v", last)
	}
}

func TestMissingInputFails(t *testing.T) {
	setupWorkDir(t, "")

	_, _, err := runCLI(t)
	if !errors.Is(err, catalog.ErrInputNotFound) {
		t.Fatalf("expected ErrInputNotFound, got %v", err)
	}
}

func TestFlagOverrides(t *testing.T) {
	work := setupWorkDir(t, "")
	input := filepath.Join(work, "listing.txt")
	if err := os.WriteFile(input, []byte(oneCodeListing), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := runCLI(t, "--input", input, "--output-dir", "docs")
	if err != nil {
		t.Fatalf("wadcat: %v", err)
	}
	want := "Writing into " + filepath.Join("docs", "C1.json") + "\n"
	if out != want {
		t.Fatalf("stdout = %q, want %q", out, want)
	}
	if files := jsonFiles(t, filepath.Join(work, "docs")); len(files) != 1 {
		t.Fatalf("expected 1 document in docs, got %v", files)
	}
}

func TestInvalidLogFormatFlag(t *testing.T) {
	setupWorkDir(t, oneCodeListing)

	_, _, err := runCLI(t, "--log-format", "xml")
	if err == nil || !strings.Contains(err.Error(), "logging.format") {
		t.Fatalf("expected logging.format error, got %v", err)
	}
}

func TestConfigFileSetsOutputDir(t *testing.T) {
	work := setupWorkDir(t, oneCodeListing)
	configPath := filepath.Join(work, "wadcat.toml")
	if err := os.WriteFile(configPath, []byte("[paths]\noutput_dir = \"from-config\"\n\n[output]\nindent = 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := runCLI(t)
	if err != nil {
		t.Fatalf("wadcat: %v", err)
	}
	requireContains(t, out, filepath.Join("from-config", "C1.json"))

	data, err := os.ReadFile(filepath.Join(work, "from-config", "C1.json"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(string(data), "\n") != 1 {
		t.Fatalf("expected compact document, got %s", data)
	}
}

func TestSummaryTable(t *testing.T) {
	setupWorkDir(t, oneCodeListing)

	out, _, err := runCLI(t, "--summary")
	if err != nil {
		t.Fatalf("wadcat: %v", err)
	}
	if !strings.HasPrefix(out, "Writing into C1.json\n") {
		t.Fatalf("progress line should come first, got %q", out)
	}
	requireContains(t, out, "NameOne")
	requireContains(t, out, "TOTAL")
}

func TestLogFileAppendsAcrossRuns(t *testing.T) {
	work := setupWorkDir(t, oneCodeListing)
	if err := os.WriteFile(filepath.Join(work, "wadcat.toml"), []byte("[logging]\nfile = \"logs/run.log\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	for range 2 {
		if _, _, err := runCLI(t, "--log-level", "info"); err != nil {
			t.Fatalf("wadcat: %v", err)
		}
	}

	data, err := os.ReadFile(filepath.Join(work, "logs", "run.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if got := strings.Count(string(data), "conversion finished"); got != 2 {
		t.Fatalf("expected one finish line per run, got %d in %q", got, data)
	}
}

func TestDefaultRunWithoutHome(t *testing.T) {
	work := setupWorkDir(t, oneCodeListing)
	t.Setenv("HOME", "")

	out, _, err := runCLI(t)
	if err != nil {
		t.Fatalf("wadcat without HOME: %v", err)
	}
	if out != "Writing into C1.json\n" {
		t.Fatalf("stdout = %q", out)
	}
	if _, err := os.Stat(filepath.Join(work, "C1.json")); err != nil {
		t.Fatalf("expected C1.json: %v", err)
	}
}
