package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dealscope/dealscope/internal/export"
	"github.com/dealscope/dealscope/pkg/config"
	"github.com/dealscope/dealscope/pkg/crm"
	"github.com/dealscope/dealscope/pkg/insight"
)

func newExportCmd() *cobra.Command {
	var (
		snapshotPath string
		at           string
		configPath   string
		outputDir    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Archive an insight report for a CRM snapshot",
		Long:  `Computes the full overview and stores both the report and the snapshot in the configured export backend.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, exportOpts{
				snapshotPath: snapshotPath,
				at:           at,
				configPath:   configPath,
				outputDir:    outputDir,
			})
		},
	}

	cmd.Flags().StringVar(&snapshotPath, "snapshot", "", "Path to a snapshot JSON file (required)")
	cmd.Flags().StringVar(&at, "at", "", "Evaluate as of this time (RFC3339 or YYYY-MM-DD, default: now)")
	cmd.Flags().StringVar(&configPath, "config", "", "Path to a Dealscope config file")
	cmd.Flags().StringVar(&outputDir, "dir", "", "Override the local export directory")
	_ = cmd.MarkFlagRequired("snapshot")

	return cmd
}

type exportOpts struct {
	snapshotPath string
	at           string
	configPath   string
	outputDir    string
}

func runExport(cmd *cobra.Command, opts exportOpts) error {
	snap, err := crm.LoadSnapshot(opts.snapshotPath)
	if err != nil {
		return fmt.Errorf("loading snapshot: %w", err)
	}

	now, err := resolveNow(opts.at)
	if err != nil {
		return err
	}

	path := opts.configPath
	if path == "" {
		if wd, err := os.Getwd(); err == nil {
			path = config.FindConfigFile(wd)
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if opts.outputDir != "" {
		cfg.Export.Backend = "local"
		cfg.Export.LocalDir = opts.outputDir
	}

	storage, err := export.NewStorage(cmd.Context(), cfg.Export)
	if err != nil {
		return fmt.Errorf("creating export storage: %w", err)
	}

	exporter := export.NewExporter(storage, insight.NewEngine(cfg.Thresholds()))
	reportID, err := exporter.Archive(cmd.Context(), snap, now)
	if err != nil {
		return fmt.Errorf("archiving report: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Report %s archived for tenant %s\n", reportID, snap.TenantID)
	return nil
}
