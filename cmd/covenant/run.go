package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/covenant-lang/covenant/internal/diagfmt"
	"github.com/covenant-lang/covenant/internal/driver"
	"github.com/covenant-lang/covenant/internal/lower"
	"github.com/covenant-lang/covenant/internal/source"
)

var runCmd = &cobra.Command{
	Use:   "run <file.cov>",
	Short: "Compile and execute a Covenant program",
	Long: `run invokes the core pipeline and hands the resulting target text to the
host interpreter: node for JavaScript, ts-node for TypeScript.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().String("dialect", "", "target dialect (javascript|typescript)")
	runCmd.Flags().String("module", "", "module system (esm|commonjs)")
	runCmd.Flags().Bool("contracts", true, "emit runtime contract guards")
	runCmd.Flags().String("verify", "", "verify level (full|runtime|trusted)")
}

func runRun(cmd *cobra.Command, args []string) error {
	path := args[0]

	cfg, _, err := loadProjectConfig(".")
	if err != nil {
		return err
	}
	opts, err := resolveLowerOptions(cfg.Compile, flagsFromCmd(cmd))
	if err != nil {
		return err
	}

	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	res := driver.Compile(fs, id, opts)
	if res.Bag.Len() > 0 {
		diagfmt.Pretty(os.Stderr, res.Bag, fs, diagfmt.PrettyOpts{Color: useColor(cmd, os.Stderr), Context: 2})
	}
	if res.Bag.HasErrors() {
		return exitForBag(cmd, res.Bag)
	}

	interpreter := "node"
	if opts.Dialect == lower.DialectTypeScript {
		interpreter = "ts-node"
	}
	if _, err := exec.LookPath(interpreter); err != nil {
		return fmt.Errorf("%s not found on PATH: %w", interpreter, err)
	}

	host := exec.CommandContext(cmd.Context(), interpreter, "-")
	host.Stdin = strings.NewReader(res.Output)
	host.Stdout = os.Stdout
	host.Stderr = os.Stderr
	if err := host.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			os.Exit(exitErr.ExitCode())
		}
		return fmt.Errorf("failed to run %s: %w", interpreter, err)
	}
	return nil
}
