package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/covenant-lang/covenant/internal/version"
)

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

var (
	versionFormat   string
	versionShowHash bool
	versionShowDate bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShowHash, "hash", false, "include git commit hash")
	versionCmd.Flags().BoolVar(&versionShowDate, "date", false, "include build timestamp")
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|json)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show covenant build fingerprints",
	RunE: func(cmd *cobra.Command, args []string) error {
		switch strings.ToLower(versionFormat) {
		case "pretty", "json":
		default:
			return fmt.Errorf("unsupported format %q (must be pretty or json)", versionFormat)
		}
		if strings.ToLower(versionFormat) == "json" {
			return renderVersionJSON(cmd.OutOrStdout())
		}
		renderVersionPretty(cmd.OutOrStdout())
		return nil
	},
}

func renderVersionPretty(out io.Writer) {
	v := strings.TrimSpace(version.Version)
	if v == "" {
		v = "dev"
	}
	fmt.Fprintf(out, "covenant %s\n", v)
	if versionShowHash {
		fmt.Fprintf(out, "commit: %s\n", valueOrUnknown(version.GitCommit))
	}
	if versionShowDate {
		fmt.Fprintf(out, "built:  %s\n", valueOrUnknown(version.BuildDate))
	}
}

func renderVersionJSON(out io.Writer) error {
	v := strings.TrimSpace(version.Version)
	if v == "" {
		v = "dev"
	}
	payload := versionPayload{Tool: "covenant", Version: v}
	if versionShowHash {
		payload.GitCommit = valueOrUnknown(version.GitCommit)
	}
	if versionShowDate {
		payload.BuildDate = valueOrUnknown(version.BuildDate)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func valueOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
