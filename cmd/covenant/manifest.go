package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/covenant-lang/covenant/internal/lower"
)

// projectConfig mirrors covenant.toml's shape: a [package] table plus a
// [compile] table populating the compile command's options, so a project
// can pin dialect/module/contracts/verify once instead of on every
// invocation.
type projectConfig struct {
	Package packageConfig `toml:"package"`
	Compile compileConfig `toml:"compile"`
}

type packageConfig struct {
	Name string `toml:"name"`
}

type compileConfig struct {
	Dialect   string `toml:"dialect"`
	Module    string `toml:"module"`
	Contracts *bool  `toml:"contracts"`
	Verify    string `toml:"verify"`
}

func findManifest(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "covenant.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadProjectConfig(startDir string) (projectConfig, bool, error) {
	path, ok, err := findManifest(startDir)
	if err != nil || !ok {
		return projectConfig{}, ok, err
	}
	var cfg projectConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return projectConfig{}, true, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return cfg, true, nil
}

// resolveLowerOptions merges a project manifest's [compile] table with
// explicit CLI flags, flags winning whenever they were set on the command
// line and the manifest filling in everything left unset.
func resolveLowerOptions(cfg compileConfig, flags lowerFlags) (lower.Options, error) {
	opts := lower.DefaultOptions()

	dialect := flags.dialect
	if dialect == "" {
		dialect = cfg.Dialect
	}
	switch strings.ToLower(dialect) {
	case "", "javascript":
		opts.Dialect = lower.DialectJavaScript
	case "typescript":
		opts.Dialect = lower.DialectTypeScript
	default:
		return opts, fmt.Errorf("unknown target dialect %q (must be javascript or typescript)", dialect)
	}

	module := flags.module
	if module == "" {
		module = cfg.Module
	}
	switch strings.ToLower(module) {
	case "", "esm":
		opts.Module = lower.ModuleESM
	case "commonjs":
		opts.Module = lower.ModuleCommonJS
	default:
		return opts, fmt.Errorf("unknown module system %q (must be esm or commonjs)", module)
	}

	opts.RuntimeContracts = true
	if cfg.Contracts != nil {
		opts.RuntimeContracts = *cfg.Contracts
	}
	if flags.contractsSet {
		opts.RuntimeContracts = flags.contracts
	}

	verify := flags.verify
	if verify == "" {
		verify = cfg.Verify
	}
	switch strings.ToLower(verify) {
	case "", "runtime":
		opts.Verify = lower.VerifyRuntime
	case "full":
		opts.Verify = lower.VerifyFull
	case "trusted":
		opts.Verify = lower.VerifyTrusted
	default:
		return opts, fmt.Errorf("unknown verify level %q (must be full, runtime, or trusted)", verify)
	}

	return opts, nil
}

// lowerFlags captures the compile-option flags shared by compile/check/run,
// each defaulting to "unset" so the manifest can fill the gap.
type lowerFlags struct {
	dialect      string
	module       string
	contracts    bool
	contractsSet bool
	verify       string
}
