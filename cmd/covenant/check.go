package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/covenant-lang/covenant/internal/diag"
	"github.com/covenant-lang/covenant/internal/diagfmt"
	"github.com/covenant-lang/covenant/internal/driver"
	"github.com/covenant-lang/covenant/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check <file.cov|directory>",
	Short: "Run the scanner, tree builder, and checker without lowering",
	Long:  `check stops after the checker and reports diagnostics only.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory mode (0=auto)")
	checkCmd.Flags().Bool("stop-on-first-error", false, "stop processing further files once one reports an error")
}

func renderBag(format string, bag *diag.Bag, fs *source.FileSet, prettyOpts diagfmt.PrettyOpts, jsonOpts diagfmt.JSONOpts) error {
	switch format {
	case "pretty":
		diagfmt.Pretty(os.Stdout, bag, fs, prettyOpts)
		return nil
	case "json":
		return diagfmt.JSON(os.Stdout, bag, fs, jsonOpts)
	default:
		return fmt.Errorf("unknown format %q (must be pretty or json)", format)
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]
	format, _ := cmd.Flags().GetString("format")
	jobs, _ := cmd.Flags().GetInt("jobs")
	stopOnFirstError, _ := cmd.Flags().GetBool("stop-on-first-error")
	maxDiagnostics, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")

	st, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	jsonOpts := diagfmt.JSONOpts{IncludePositions: true, Max: maxDiagnostics}
	prettyOpts := diagfmt.PrettyOpts{Color: useColor(cmd, os.Stdout), Context: 2}

	if !st.IsDir() {
		fs := source.NewFileSet()
		id, err := fs.Load(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		res := driver.Check(fs, id)
		if err := renderBag(format, res.Bag, fs, prettyOpts, jsonOpts); err != nil {
			return err
		}
		if !quiet {
			printSummary(os.Stdout, res.Bag)
		}
		return exitForBag(cmd, res.Bag)
	}

	fs, results, err := driver.CheckDir(cmd.Context(), path, jobs)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	combined := diag.NewBag()
	hadErrors := false
	for idx, r := range results {
		if idx > 0 && format == "pretty" {
			fmt.Fprintln(os.Stdout)
		}
		if format == "pretty" {
			fmt.Fprintf(os.Stdout, "== %s ==\n", r.Path)
		}
		if err := renderBag(format, r.Bag, fs, prettyOpts, jsonOpts); err != nil {
			return err
		}
		combined.Merge(r.Bag)
		if r.Bag.HasErrors() {
			hadErrors = true
			// the compilation options include "stop-on-first-error:
			// early exit after any pass reports errors" — in directory mode
			// that means stop walking the remaining independent files.
			if stopOnFirstError {
				break
			}
		}
	}
	if !quiet {
		printSummary(os.Stdout, combined)
	}
	if hadErrors {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("")
	}
	return nil
}

// exitForBag returns a silent error (exit 1, no extra usage text) if bag
// carries any error-severity diagnostic: exit 0 only when nothing errored.
func exitForBag(cmd *cobra.Command, bag *diag.Bag) error {
	if bag.HasErrors() {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("")
	}
	return nil
}
