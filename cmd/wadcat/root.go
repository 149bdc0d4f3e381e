package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"wadcat/internal/convert"
)

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}
	ctx := newCommandContext(flags)
	var summary bool

	rootCmd := &cobra.Command{
		Use:           "wadcat",
		Short:         "Convert a WAD hash listing into per-code JSON documents",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig(cmd)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig(cmd)
			if err != nil {
				return err
			}
			logger, closeLogs, err := ctx.logger()
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := closeLogs(); closeErr != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "close log file: %v\n", closeErr)
				}
			}()

			out := cmd.OutOrStdout()
			result, err := convert.Run(cmd.Context(), cfg, convert.Options{
				Progress: out,
				Logger:   logger,
			})
			if err != nil {
				return err
			}
			if summary {
				fmt.Fprintln(out, renderSummary(result))
			}
			return nil
		},
	}

	persistent := rootCmd.PersistentFlags()
	persistent.StringVarP(&flags.config, "config", "c", "", "Configuration file path")
	persistent.StringVarP(&flags.input, "input", "i", "", "Hash listing to convert (default hashes.csv)")
	persistent.StringVarP(&flags.outputDir, "output-dir", "o", "", "Directory for <code>.json documents (default .)")
	persistent.StringVar(&flags.index, "index", "", "SQLite hash index path; enables the index when converting")
	persistent.StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	persistent.StringVar(&flags.logFormat, "log-format", "", "Log format (console, json)")
	rootCmd.Flags().BoolVar(&summary, "summary", false, "Print a per-code table after writing")

	rootCmd.AddCommand(newLookupCommand(ctx))
	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
