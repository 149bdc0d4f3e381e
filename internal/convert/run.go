package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"wadcat/internal/catalog"
	"wadcat/internal/config"
	"wadcat/internal/fileutil"
	"wadcat/internal/hashindex"
	"wadcat/internal/logging"
	"wadcat/internal/preflight"
)

// ErrPreflight reports that the output location failed its readiness check.
var ErrPreflight = errors.New("preflight check failed")

// Options controls where progress and diagnostics go.
type Options struct {
	// Progress receives one "Writing into <path>" line per document.
	Progress io.Writer
	Logger   *slog.Logger
}

// Result summarizes a completed run.
type Result struct {
	Catalog   *catalog.Catalog
	Written   []string
	Records   int
	IndexPath string
	Index     hashindex.Counts
	Duration  time.Duration
}

// Run converts cfg.Paths.Input into per-code documents under cfg.Paths.OutputDir.
func Run(ctx context.Context, cfg *config.Config, opts Options) (*Result, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	logger := logging.NewComponentLogger(opts.Logger, "convert")
	started := time.Now()

	logger.Info(
		"conversion started",
		logging.String(logging.FieldEventType, "convert_start"),
		logging.String("input", cfg.Paths.Input),
		logging.String("output_dir", cfg.Paths.OutputDir),
		logging.String("encoding", cfg.Parse.InputEncoding),
	)

	cat, err := catalog.ParseFile(cfg.Paths.Input, cfg.Parse.InputEncoding, catalog.Options{
		HeaderMarker: cfg.Parse.HeaderMarker,
	})
	if err != nil {
		logParseFailure(logger, err)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.Info(
		"listing parsed",
		logging.String(logging.FieldEventType, "parse_complete"),
		logging.Int("codes", cat.Len()),
		logging.Int("wads", cat.WadCount()),
		logging.Int("records", cat.RecordCount()),
	)
	for _, group := range cat.Groups() {
		logger.Debug("code grouped",
			logging.String(logging.FieldCode, group.Code),
			logging.String("name", group.Name),
			logging.Int("wads", len(group.Wads)),
			logging.Int("records", group.RecordCount()),
		)
	}
	if cat.Len() == 0 {
		logging.WarnWithContext(logger, "listing contained no headers", "catalog_empty",
			logging.String(logging.FieldPath, cfg.Paths.Input),
			logging.String(logging.FieldErrorHint, "check parse.header_marker and the input file"),
			logging.String(logging.FieldImpact, "no documents written"),
		)
	}

	if err := catalog.CheckCodes(cat); err != nil {
		logging.ErrorWithContext(logger, "unusable code", "unsafe_code",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "codes become file names and must not contain path separators"),
		)
		return nil, err
	}

	written, err := writeDocuments(ctx, cfg, cat, opts.Progress, logger)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Catalog: cat,
		Written: written,
		Records: cat.RecordCount(),
	}

	if path := cfg.IndexPath(); path != "" {
		counts, err := refreshIndex(ctx, path, cat)
		if err != nil {
			logging.ErrorWithContext(logger, "hash index update failed", "index_failed",
				logging.String(logging.FieldPath, path),
				logging.Error(err),
			)
			return nil, err
		}
		result.IndexPath = path
		result.Index = counts
		logger.Info(
			"hash index updated",
			logging.String(logging.FieldEventType, "index_updated"),
			logging.String(logging.FieldPath, path),
			logging.Int("files", counts.Files),
		)
	}

	result.Duration = time.Since(started)
	logger.Info(
		"conversion finished",
		logging.String(logging.FieldEventType, "convert_complete"),
		logging.Int("documents", len(written)),
		logging.Int("records", result.Records),
		logging.Duration("duration", result.Duration),
	)
	return result, nil
}

func writeDocuments(ctx context.Context, cfg *config.Config, cat *catalog.Catalog, progress io.Writer, logger *slog.Logger) ([]string, error) {
	dir := cfg.Paths.OutputDir
	if cat.Len() == 0 {
		return []string{}, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory %s: %w", dir, err)
	}
	if check := preflight.CheckDirectoryAccess("Output directory", dir); !check.Passed {
		return nil, fmt.Errorf("%w: %s", ErrPreflight, check.Detail)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if cfg.Output.Lock {
		lock, err := fileutil.LockDir(dir)
		if err != nil {
			return nil, err
		}
		defer func() {
			if unlockErr := lock.Unlock(); unlockErr != nil {
				logger.Warn("release output lock failed",
					logging.String(logging.FieldPath, lock.Path()),
					logging.Error(unlockErr),
				)
			}
		}()
	}

	written, err := catalog.WriteDocuments(cat, dir, catalog.WriteOptions{
		Indent:   cfg.Output.Indent,
		Progress: progress,
	})
	for _, path := range written {
		logger.Debug("document written", logging.String(logging.FieldPath, path))
	}
	if err != nil {
		logging.ErrorWithContext(logger, "document write failed", "write_failed",
			logging.Int("written", len(written)),
			logging.Error(err),
		)
		return nil, err
	}
	return written, nil
}

func refreshIndex(ctx context.Context, path string, cat *catalog.Catalog) (hashindex.Counts, error) {
	index, err := hashindex.Open(ctx, path)
	if err != nil {
		return hashindex.Counts{}, err
	}
	defer index.Close()
	return index.Replace(ctx, cat)
}

func logParseFailure(logger *slog.Logger, err error) {
	attrs := []logging.Attr{logging.Error(err)}
	if kind := catalog.Kind(err); kind != "" {
		attrs = append(attrs, logging.String("error_kind", kind))
	}
	var parseErr *catalog.ParseError
	if errors.As(err, &parseErr) {
		attrs = append(attrs,
			logging.Int(logging.FieldLine, parseErr.Line),
			logging.String("text", strings.TrimSpace(parseErr.Text)),
		)
	}
	logging.ErrorWithContext(logger, "listing parse failed", "parse_failed", attrs...)
}
