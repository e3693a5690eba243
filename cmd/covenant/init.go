package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Scaffold a new Covenant project",
	Long: `init creates a covenant.toml manifest and a starter main.cov entry
point. If [path|name] is omitted, initializes the current directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	var target string
	if len(args) == 0 || args[0] == "." {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = wd
	} else if filepath.IsAbs(args[0]) {
		target = args[0]
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = filepath.Join(wd, args[0])
	}

	if st, err := os.Stat(target); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %q: %w", target, err)
			}
		} else {
			return err
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	name := strings.TrimSpace(filepath.Base(target))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "covenant-project"
	}

	manifestPath := filepath.Join(target, "covenant.toml")
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}
	if err := os.WriteFile(manifestPath, []byte(defaultManifest(name)), 0o600); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	mainPath := filepath.Join(target, "main.cov")
	createdMain := false
	if _, err := os.Stat(mainPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(mainPath, []byte(defaultMainCov()), 0o600); err != nil {
			return fmt.Errorf("failed to write main.cov: %w", err)
		}
		createdMain = true
	}

	rel := target
	if wd, err := os.Getwd(); err == nil {
		if r, err2 := filepath.Rel(wd, target); err2 == nil {
			rel = r
		}
	}
	fmt.Fprintf(os.Stdout, "Initialized Covenant project in %s\n", rel)
	fmt.Fprintln(os.Stdout, "  - covenant.toml")
	if createdMain {
		fmt.Fprintln(os.Stdout, "  - main.cov")
	} else {
		fmt.Fprintln(os.Stdout, "  - main.cov (existing)")
	}
	return nil
}

func defaultManifest(name string) string {
	return fmt.Sprintf(`# Covenant project manifest
[package]
name = "%s"

[compile]
dialect = "javascript"
module = "esm"
contracts = true
verify = "runtime"
`, name)
}

func defaultMainCov() string {
	return `@ensures result >= 0
fn abs(x: Int) -> Int {
	if x < 0 {
		0 - x
	} else {
		x
	}
}

fn main() -> Int {
	abs(0 - 5)
}
`
}
