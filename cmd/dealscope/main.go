// Package main provides the dealscope CLI entry point.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dealscope/dealscope/pkg/config"
	"github.com/dealscope/dealscope/pkg/insight"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "dealscope",
		Short: "Pipeline intelligence for real-estate agencies",
		Long: `Dealscope reads a CRM snapshot, scores contacts and deals, and surfaces
alerts, recommended actions, and pipeline health metrics.`,
		Version: version,
	}

	rootCmd.AddCommand(
		newReportCmd(),
		newExportCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadEngine builds the scoring engine from an optional config file,
// walking up from the working directory when no path is given.
func loadEngine(configPath string) (*insight.Engine, error) {
	if configPath == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		configPath = config.FindConfigFile(wd)
	}
	if configPath == "" {
		return insight.NewDefaultEngine(), nil
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return insight.NewEngine(cfg.Thresholds()), nil
}

// resolveNow parses the --at flag, defaulting to the current time.
// Accepts RFC3339 or a plain date.
func resolveNow(at string) (time.Time, error) {
	if at == "" {
		return time.Now(), nil
	}
	if t, err := time.Parse(time.RFC3339, at); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", at)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing --at %q: expected RFC3339 or YYYY-MM-DD", at)
	}
	return t, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
