package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"wadcat/internal/catalog"
	"wadcat/internal/hashindex"
)

// lookupResult is the per-query JSON shape printed by lookup --json.
type lookupResult struct {
	Query   string            `json:"query"`
	Hash    string            `json:"hash"`
	Found   bool              `json:"found"`
	Matches []hashindex.Match `json:"matches"`
}

func newLookupCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "lookup HASH...",
		Short: "Resolve hex hashes through the SQLite hash index",
		Long: "Resolve hex hashes to filename, wad, and locale code using the index written by\n" +
			"a previous `wadcat --index PATH` run. Unknown hashes print their hex text.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig(cmd)
			if err != nil {
				return err
			}

			hashes := make([]uint64, 0, len(args))
			for _, arg := range args {
				hash, err := catalog.ParseHash(arg)
				if err != nil {
					return fmt.Errorf("lookup: %w", err)
				}
				hashes = append(hashes, hash)
			}

			path := cfg.Index.Path
			if _, err := os.Stat(path); err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					return fmt.Errorf("hash index %s not found; run `wadcat --index %s` first", path, path)
				}
				return fmt.Errorf("stat hash index: %w", err)
			}
			index, err := hashindex.Open(cmd.Context(), path)
			if err != nil {
				return err
			}
			defer index.Close()

			results := make([]lookupResult, 0, len(hashes))
			for i, hash := range hashes {
				matches, err := index.Lookup(cmd.Context(), hash)
				if err != nil {
					return err
				}
				if matches == nil {
					matches = []hashindex.Match{}
				}
				results = append(results, lookupResult{
					Query:   args[i],
					Hash:    formatHash(hash),
					Found:   len(matches) > 0,
					Matches: matches,
				})
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(results)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderLookupTable(results))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func renderLookupTable(results []lookupResult) string {
	var rows [][]string
	for _, result := range results {
		if !result.Found {
			rows = append(rows, []string{result.Hash, result.Hash, "-", "-", "-"})
			continue
		}
		for _, match := range result.Matches {
			rows = append(rows, []string{
				result.Hash,
				match.Filename,
				match.Code,
				match.WadPath,
				strconv.Itoa(match.Confidence),
			})
		}
	}
	return renderTable(
		[]string{"Hash", "Filename", "Code", "Wad", "Confidence"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
	)
}

// formatHash renders hash as lower-case hex, the fallback name for unknown files.
func formatHash(hash uint64) string {
	return strconv.FormatUint(hash, 16)
}
