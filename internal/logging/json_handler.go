package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// correlationKeys are written at the top level of every JSON record, in this
// order, right after msg. Groups opened with WithGroup never capture them.
var correlationKeys = []string{FieldRunID, FieldComponent, FieldEventType}

// jsonHandler writes one object per record with ts, level and msg keys
// followed by the correlation fields and then the remaining attributes.
type jsonHandler struct {
	out    slog.Handler
	frames []jsonFrame
}

// jsonFrame holds the attributes added while one group was innermost. The
// first frame is the root and has no group name.
type jsonFrame struct {
	group string
	attrs []slog.Attr
}

func newJSONHandler(w io.Writer, lvl *slog.LevelVar, addSource bool) slog.Handler {
	opts := slog.HandlerOptions{
		Level:     lvl,
		AddSource: addSource,
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			if len(groups) > 0 {
				return attr
			}
			switch attr.Key {
			case slog.TimeKey:
				attr.Key = "ts"
				if attr.Value.Kind() == slog.KindTime {
					attr.Value = slog.StringValue(attr.Value.Time().UTC().Format(time.RFC3339))
				}
			case slog.LevelKey:
				attr.Value = slog.StringValue(strings.ToLower(attr.Value.String()))
			case slog.SourceKey:
				if src, ok := attr.Value.Any().(*slog.Source); ok && src != nil {
					attr.Value = slog.StringValue(fmt.Sprintf("%s:%d", filepath.Base(src.File), src.Line))
				}
			}
			return attr
		},
	}
	return &jsonHandler{
		out:    slog.NewJSONHandler(w, &opts),
		frames: []jsonFrame{{}},
	}
}

func (h *jsonHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.out.Enabled(ctx, level)
}

func (h *jsonHandler) Handle(ctx context.Context, record slog.Record) error {
	correlation := make(map[string]slog.Value, len(correlationKeys))
	frames := make([]jsonFrame, len(h.frames))
	for i, frame := range h.frames {
		frames[i] = jsonFrame{group: frame.group, attrs: liftCorrelation(frame.attrs, correlation)}
	}
	var own []slog.Attr
	record.Attrs(func(attr slog.Attr) bool {
		own = append(own, attr)
		return true
	})
	last := len(frames) - 1
	frames[last].attrs = append(frames[last].attrs, liftCorrelation(own, correlation)...)

	// Fold the frames from the innermost group outwards.
	nested := frames[last].attrs
	for i := last; i > 0; i-- {
		nested = append(frames[i-1].attrs, slog.Attr{Key: frames[i].group, Value: slog.GroupValue(nested...)})
	}

	out := slog.NewRecord(record.Time, record.Level, record.Message, record.PC)
	for _, key := range correlationKeys {
		if value, ok := correlation[key]; ok {
			out.AddAttrs(slog.Attr{Key: key, Value: value})
		}
	}
	out.AddAttrs(nested...)
	return h.out.Handle(ctx, out)
}

func (h *jsonHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	clone := h.clone()
	last := len(clone.frames) - 1
	clone.frames[last].attrs = append(clone.frames[last].attrs, attrs...)
	return clone
}

func (h *jsonHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := h.clone()
	clone.frames = append(clone.frames, jsonFrame{group: name})
	return clone
}

func (h *jsonHandler) clone() *jsonHandler {
	frames := make([]jsonFrame, len(h.frames))
	for i, frame := range h.frames {
		frames[i] = jsonFrame{group: frame.group, attrs: append([]slog.Attr(nil), frame.attrs...)}
	}
	return &jsonHandler{out: h.out, frames: frames}
}

// liftCorrelation moves correlation attributes from attrs into found, later
// values winning, and returns the rest. Empty values are dropped.
func liftCorrelation(attrs []slog.Attr, found map[string]slog.Value) []slog.Attr {
	rest := make([]slog.Attr, 0, len(attrs))
	for _, attr := range attrs {
		if slices.Contains(correlationKeys, attr.Key) {
			if value := attr.Value.Resolve(); value.String() != "" {
				found[attr.Key] = value
			}
			continue
		}
		rest = append(rest, attr)
	}
	return rest
}
