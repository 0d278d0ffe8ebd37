package export

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/dealscope/dealscope/pkg/config"
	"github.com/dealscope/dealscope/pkg/crm"
	"github.com/dealscope/dealscope/pkg/insight"
)

// NewStorage builds the StorageClient selected by cfg.Backend.
// Supported backends are "local" (default), "s3" and "gcs".
func NewStorage(ctx context.Context, cfg config.ExportConfig) (StorageClient, error) {
	switch cfg.Backend {
	case "", "local":
		dir := cfg.LocalDir
		if dir == "" {
			dir = "exports"
		}
		return NewLocalStorage(dir), nil
	case "s3":
		return NewS3Storage(ctx, S3Config{
			Bucket:    cfg.Bucket,
			Region:    cfg.Region,
			Endpoint:  cfg.Endpoint,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
		})
	case "gcs":
		return NewGCSStorage(ctx, cfg.Bucket)
	default:
		return nil, fmt.Errorf("unknown export backend %q", cfg.Backend)
	}
}

// Exporter generates insight reports from CRM snapshots and archives both.
type Exporter struct {
	storage StorageClient
	engine  *insight.Engine
}

// NewExporter creates an Exporter writing through the given storage client.
func NewExporter(storage StorageClient, engine *insight.Engine) *Exporter {
	return &Exporter{storage: storage, engine: engine}
}

// Archive computes the full insight overview for snap and stores the report
// alongside the snapshot it was derived from. It returns the report ID.
func (e *Exporter) Archive(ctx context.Context, snap *crm.Snapshot, now time.Time) (string, error) {
	overview := e.engine.Overview(snap, now)

	reportData, err := json.MarshalIndent(overview, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	snapData, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	stamp := now.UTC().Format("20060102-150405")
	reportID := "overview-" + stamp

	if err := e.storage.PutSnapshot(ctx, snap.TenantID, stamp, snapData); err != nil {
		return "", fmt.Errorf("put snapshot blob: %w", err)
	}
	if err := e.storage.PutReport(ctx, snap.TenantID, reportID, reportData); err != nil {
		return "", fmt.Errorf("put report blob: %w", err)
	}

	log.Printf("archived report %s for tenant %s (%d contacts, %d deals)",
		reportID, snap.TenantID, len(snap.Contacts), len(snap.Deals))
	return reportID, nil
}

// LoadReport retrieves a previously archived overview.
func (e *Exporter) LoadReport(ctx context.Context, tenantID, reportID string) (*insight.Overview, error) {
	data, err := e.storage.GetReport(ctx, tenantID, reportID)
	if err != nil {
		return nil, fmt.Errorf("get report blob: %w", err)
	}
	var overview insight.Overview
	if err := json.Unmarshal(data, &overview); err != nil {
		return nil, fmt.Errorf("unmarshal report: %w", err)
	}
	return &overview, nil
}
