package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/covenant-lang/covenant/internal/diag"
	"github.com/covenant-lang/covenant/internal/diagfmt"
	"github.com/covenant-lang/covenant/internal/driver"
	"github.com/covenant-lang/covenant/internal/lower"
	"github.com/covenant-lang/covenant/internal/source"
)

var compileCmd = &cobra.Command{
	Use:   "compile <file.cov|directory>",
	Short: "Lower Covenant source to target text",
	Long: `compile reads Covenant source, runs it through the scanner, tree builder,
checker, and lowerer, and writes target text to an output path (default:
the input's suffix replaced with .js or .ts).`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	compileCmd.Flags().String("dialect", "", "target dialect (javascript|typescript)")
	compileCmd.Flags().String("module", "", "module system (esm|commonjs)")
	compileCmd.Flags().Bool("contracts", true, "emit runtime contract guards")
	compileCmd.Flags().String("verify", "", "verify level (full|runtime|trusted)")
	compileCmd.Flags().String("out", "", "output path (single-file mode only)")
	compileCmd.Flags().Bool("stdout", false, "write target text to stdout instead of a file")
	compileCmd.Flags().Int("jobs", 0, "max parallel workers for directory mode (0=auto)")
	compileCmd.Flags().String("format", "pretty", "diagnostic output format (pretty|json)")
}

func flagsFromCmd(cmd *cobra.Command) lowerFlags {
	dialect, _ := cmd.Flags().GetString("dialect")
	module, _ := cmd.Flags().GetString("module")
	verify, _ := cmd.Flags().GetString("verify")
	contracts, _ := cmd.Flags().GetBool("contracts")
	return lowerFlags{
		dialect:      dialect,
		module:       module,
		verify:       verify,
		contracts:    contracts,
		contractsSet: cmd.Flags().Changed("contracts"),
	}
}

func outputSuffix(opts lower.Options) string {
	if opts.Dialect == lower.DialectTypeScript {
		return ".ts"
	}
	return ".js"
}

func runCompile(cmd *cobra.Command, args []string) error {
	path := args[0]
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	format, _ := cmd.Flags().GetString("format")

	st, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	startDir := path
	if !st.IsDir() {
		startDir = filepath.Dir(path)
	}
	cfg, _, err := loadProjectConfig(startDir)
	if err != nil {
		return err
	}
	opts, err := resolveLowerOptions(cfg.Compile, flagsFromCmd(cmd))
	if err != nil {
		return err
	}

	prettyOpts := diagfmt.PrettyOpts{Color: useColor(cmd, os.Stderr), Context: 2}
	jsonOpts := diagfmt.JSONOpts{IncludePositions: true}

	if !st.IsDir() {
		fs := source.NewFileSet()
		id, err := fs.Load(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		res := driver.Compile(fs, id, opts)
		if res.Bag.Len() > 0 {
			if err := renderBag(format, res.Bag, fs, prettyOpts, jsonOpts); err != nil {
				return err
			}
		}
		if res.Bag.HasErrors() {
			return exitForBag(cmd, res.Bag)
		}
		return writeCompiled(cmd, path, res.Output, opts)
	}

	if out, _ := cmd.Flags().GetString("out"); out != "" {
		return fmt.Errorf("--out is only supported for a single file")
	}

	jobs, _ := cmd.Flags().GetInt("jobs")
	fs, results, err := driver.CompileDir(cmd.Context(), path, opts, jobs)
	if err != nil {
		return fmt.Errorf("compile failed: %w", err)
	}
	combined := diag.NewBag()
	hadErrors := false
	for _, r := range results {
		combined.Merge(r.Bag)
		if r.Bag.Len() > 0 {
			if format == "pretty" {
				fmt.Fprintf(os.Stdout, "== %s ==\n", r.Path)
			}
			if err := renderBag(format, r.Bag, fs, prettyOpts, jsonOpts); err != nil {
				return err
			}
		}
		if r.Bag.HasErrors() {
			hadErrors = true
			continue
		}
		if err := writeCompiled(cmd, r.Path, r.Output, opts); err != nil {
			return err
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

func writeCompiled(cmd *cobra.Command, inputPath, output string, opts lower.Options) error {
	toStdout, _ := cmd.Flags().GetBool("stdout")
	if toStdout {
		fmt.Fprint(os.Stdout, output)
		return nil
	}
	outPath, _ := cmd.Flags().GetString("out")
	if outPath == "" {
		ext := filepath.Ext(inputPath)
		outPath = strings.TrimSuffix(inputPath, ext) + outputSuffix(opts)
	}
	if err := os.WriteFile(outPath, []byte(output), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if !quiet {
		fmt.Fprintf(os.Stdout, "wrote %s\n", outPath)
	}
	return nil
}
