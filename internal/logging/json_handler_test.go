package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func newTestJSONLogger(buf *bytes.Buffer, runID string) *slog.Logger {
	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.LevelDebug)
	return slog.New(newRunIDHandler(newJSONHandler(buf, levelVar, false), runID))
}

func TestJSONHandlerCorrelationOrder(t *testing.T) {
	var buf bytes.Buffer
	logger := NewComponentLogger(newTestJSONLogger(&buf, "run-7"), "convert")

	logger.Info("listing parsed", String(FieldEventType, "parse_complete"), Int("codes", 2))

	line := buf.String()
	order := []string{`"msg":`, `"run_id":"run-7"`, `"component":"convert"`, `"event_type":"parse_complete"`, `"codes":2`}
	last := -1
	for _, key := range order {
		idx := strings.Index(line, key)
		if idx < 0 {
			t.Fatalf("missing %s in %s", key, line)
		}
		if idx < last {
			t.Fatalf("%s out of order in %s", key, line)
		}
		last = idx
	}
	if strings.Count(line, `"component"`) != 1 {
		t.Fatalf("component repeated in %s", line)
	}
}

func TestJSONHandlerKeepsCorrelationOutOfGroups(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestJSONLogger(&buf, "run-8").
		With(String(FieldComponent, "hashindex")).
		WithGroup("index").
		With(String(FieldPath, "hashes.db"))

	logger.Info("hash index updated", String(FieldEventType, "index_updated"), Int("files", 4))

	var record map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &record); err != nil {
		t.Fatalf("decode json log: %v", err)
	}
	if record["run_id"] != "run-8" || record["component"] != "hashindex" || record["event_type"] != "index_updated" {
		t.Fatalf("correlation fields not at top level: %v", record)
	}
	group, ok := record["index"].(map[string]any)
	if !ok {
		t.Fatalf("expected index group, got %v", record)
	}
	if group["path"] != "hashes.db" || group["files"] != float64(4) {
		t.Fatalf("unexpected group contents: %v", group)
	}
	if _, ok := group["event_type"]; ok {
		t.Fatalf("event_type captured by group: %v", group)
	}
}

func TestJSONHandlerDropsEmptyComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestJSONLogger(&buf, "run-9").With(String(FieldComponent, ""))

	logger.Warn("no component")

	if strings.Contains(buf.String(), `"component"`) {
		t.Fatalf("empty component should be omitted, got %s", buf.String())
	}
}

func TestJSONHandlerLaterComponentWins(t *testing.T) {
	var buf bytes.Buffer
	logger := NewComponentLogger(newTestJSONLogger(&buf, "run-10"), "cli")

	logger.Info("override", String(FieldComponent, "catalog"))

	if !strings.Contains(buf.String(), `"component":"catalog"`) || strings.Contains(buf.String(), `"component":"cli"`) {
		t.Fatalf("expected record component to win, got %s", buf.String())
	}
}
