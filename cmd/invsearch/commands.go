package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Adithya-Monish-Kumar-K/inverted-search/internal/display"
	"github.com/Adithya-Monish-Kumar-K/inverted-search/internal/indexer"
	"github.com/Adithya-Monish-Kumar-K/inverted-search/internal/ingestion/validator"
	apperrors "github.com/Adithya-Monish-Kumar-K/inverted-search/pkg/errors"
)

const (
	formatText = "text"
	formatJSON = "json"
)

func checkFormat(format string) error {
	if format != formatText && format != formatJSON {
		return apperrors.Newf(apperrors.ErrInvalidInput, apperrors.ExitUsage, "unknown output format %q", format)
	}
	return nil
}

func newBuildCmd(a *app) *cobra.Command {
	var save bool
	cmd := &cobra.Command{
		Use:   "build <file.txt>...",
		Short: "Index the given files and print a summary",
		Long: `Index the given .txt files (glob patterns such as 'docs/**/*.txt' are
expanded) and print a summary. With --save the index is written to the
configured backup store.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := validateFiles(cmd.OutOrStdout(), args)
			if err != nil {
				return err
			}
			engine, closeStore, err := a.newEngine()
			if err != nil {
				return err
			}
			defer closeStore()

			report, err := engine.Build(cmd.Context(), files)
			if err != nil {
				return err
			}
			printBuildReport(cmd.OutOrStdout(), report, engine.Index().Len())
			if !save {
				return nil
			}
			if err := engine.Save(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Saved Successfully.")
			return nil
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "Save the index to the backup store after building")
	return cmd
}

func newSearchCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "search <word>",
		Short: "Load the backup and look up one word",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			engine, closeStore, err := a.newEngine()
			if err != nil {
				return err
			}
			defer closeStore()

			if err := engine.Load(cmd.Context()); err != nil {
				return err
			}
			res, err := engine.Query(args[0])
			if err != nil {
				return err
			}
			if format == formatJSON {
				return display.ResultJSON(cmd.OutOrStdout(), res)
			}
			return display.Result(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "Output format: text, json")
	return cmd
}

func newDisplayCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "display",
		Short: "Load the backup and print the whole index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			engine, closeStore, err := a.newEngine()
			if err != nil {
				return err
			}
			defer closeStore()

			if err := engine.Load(cmd.Context()); err != nil {
				return err
			}
			if format == formatJSON {
				return display.DatabaseJSON(cmd.OutOrStdout(), engine.Index())
			}
			return engine.Display(cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "Output format: text, json")
	return cmd
}

// validateFiles checks args and reports every rejected path to w.
func validateFiles(w io.Writer, args []string) ([]string, error) {
	files, rejected, err := validator.ValidateFiles(args)
	for _, r := range rejected {
		fmt.Fprintf(w, "Skipping %s: %s\n", r.Path, r.Reason)
	}
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		fmt.Fprintf(w, "VALID : %s\n", f)
	}
	return files, nil
}

func printBuildReport(w io.Writer, report indexer.BuildReport, distinct int) {
	for _, s := range report.Skipped {
		fmt.Fprintf(w, "ERROR : Cannot index %s: %s\n", s.File, s.Reason)
	}
	if report.Rejected > 0 {
		fmt.Fprintf(w, "Rejected %d token(s) exceeding the index limits.\n", report.Rejected)
	}
	fmt.Fprintf(w, "Database created Successfully! %d file(s), %d word(s), %d distinct.\n",
		len(report.Files), report.Words, distinct)
}
