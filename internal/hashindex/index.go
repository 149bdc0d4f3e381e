package hashindex

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"wadcat/internal/catalog"
)

// Index is a SQLite-backed hash lookup table.
type Index struct {
	db   *sql.DB
	path string
}

// Match is one catalog row whose hash equals a looked-up value.
type Match struct {
	Hash       uint64 `json:"hash"`
	Filename   string `json:"filename"`
	Confidence int    `json:"confidence"`
	Code       string `json:"code"`
	Name       string `json:"name"`
	WadPath    string `json:"wad"`
}

// Counts summarizes index contents.
type Counts struct {
	Codes int `json:"codes"`
	Wads  int `json:"wads"`
	Files int `json:"files"`
}

// Open creates or connects to the index database at path.
func Open(ctx context.Context, path string) (*Index, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure index directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	index := &Index{db: db, path: path}
	if err := index.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return index, nil
}

// Path returns the database file location.
func (x *Index) Path() string {
	if x == nil {
		return ""
	}
	return x.path
}

// Close closes the underlying database connection.
func (x *Index) Close() error {
	if x == nil || x.db == nil {
		return nil
	}
	return x.db.Close()
}

// Replace discards the current contents and stores cat in one transaction.
func (x *Index) Replace(ctx context.Context, cat *catalog.Catalog) (Counts, error) {
	var counts Counts
	tx, err := x.db.BeginTx(ctx, nil)
	if err != nil {
		return counts, fmt.Errorf("begin replace tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range []string{"DELETE FROM files", "DELETE FROM wads", "DELETE FROM codes"} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return counts, fmt.Errorf("clear index: %w", err)
		}
	}

	insertCode, err := tx.PrepareContext(ctx, "INSERT INTO codes (code, name, position) VALUES (?, ?, ?)")
	if err != nil {
		return counts, fmt.Errorf("prepare code insert: %w", err)
	}
	defer insertCode.Close()
	insertWad, err := tx.PrepareContext(ctx, "INSERT INTO wads (code, path, position) VALUES (?, ?, ?)")
	if err != nil {
		return counts, fmt.Errorf("prepare wad insert: %w", err)
	}
	defer insertWad.Close()
	insertFile, err := tx.PrepareContext(ctx,
		"INSERT INTO files (wad_id, hash, filename, confidence, position) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return counts, fmt.Errorf("prepare file insert: %w", err)
	}
	defer insertFile.Close()

	if cat != nil {
		for codePos, group := range cat.Groups() {
			if _, err := insertCode.ExecContext(ctx, group.Code, group.Name, codePos); err != nil {
				return counts, fmt.Errorf("insert code %s: %w", group.Code, err)
			}
			counts.Codes++
			for wadPos, wad := range group.Wads {
				res, err := insertWad.ExecContext(ctx, group.Code, wad.Path, wadPos)
				if err != nil {
					return counts, fmt.Errorf("insert wad %s: %w", wad.Path, err)
				}
				wadID, err := res.LastInsertId()
				if err != nil {
					return counts, fmt.Errorf("last insert id: %w", err)
				}
				counts.Wads++
				for filePos, file := range wad.Files {
					if _, err := insertFile.ExecContext(ctx, wadID, int64(file.Hash), file.Filename, file.Confidence, filePos); err != nil {
						return counts, fmt.Errorf("insert file %s: %w", file.Filename, err)
					}
					counts.Files++
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return Counts{}, fmt.Errorf("commit replace: %w", err)
	}
	return counts, nil
}

// Lookup returns every row carrying hash, in catalog order.
// An unknown hash yields an empty slice and no error.
func (x *Index) Lookup(ctx context.Context, hash uint64) ([]Match, error) {
	rows, err := x.db.QueryContext(ctx, `
        SELECT f.hash, f.filename, f.confidence, c.code, c.name, w.path
        FROM files f
        JOIN wads w ON w.id = f.wad_id
        JOIN codes c ON c.code = w.code
        WHERE f.hash = ?
        ORDER BY c.position, w.position, f.position`, int64(hash))
	if err != nil {
		return nil, fmt.Errorf("lookup hash: %w", err)
	}
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		var (
			stored int64
			match  Match
		)
		if err := rows.Scan(&stored, &match.Filename, &match.Confidence, &match.Code, &match.Name, &match.WadPath); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		match.Hash = uint64(stored)
		matches = append(matches, match)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate matches: %w", err)
	}
	return matches, nil
}

// Counts reports how many codes, wads and files the index holds.
func (x *Index) Counts(ctx context.Context) (Counts, error) {
	var counts Counts
	err := x.db.QueryRowContext(ctx, `
        SELECT
            (SELECT COUNT(1) FROM codes),
            (SELECT COUNT(1) FROM wads),
            (SELECT COUNT(1) FROM files)`).Scan(&counts.Codes, &counts.Wads, &counts.Files)
	if err != nil {
		return Counts{}, fmt.Errorf("count index rows: %w", err)
	}
	return counts, nil
}
