// Package export archives generated insight reports and the CRM snapshots
// they were computed from, so agencies can keep an audit trail of what the
// dashboard showed on a given day.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// StorageClient abstracts blob storage for archived reports and snapshots.
type StorageClient interface {
	PutReport(ctx context.Context, tenantID, reportID string, data []byte) error
	GetReport(ctx context.Context, tenantID, reportID string) ([]byte, error)
	PutSnapshot(ctx context.Context, tenantID, snapshotID string, data []byte) error
	GetSnapshot(ctx context.Context, tenantID, snapshotID string) ([]byte, error)
}

// LocalStorage implements StorageClient using the local filesystem.
// Useful for development and testing.
type LocalStorage struct {
	BaseDir string
}

// NewLocalStorage creates a LocalStorage rooted at the given directory.
func NewLocalStorage(baseDir string) *LocalStorage {
	return &LocalStorage{BaseDir: baseDir}
}

func (s *LocalStorage) path(tenantID, kind, id string) string {
	return filepath.Join(s.BaseDir, tenantID, kind, id+".json")
}

func (s *LocalStorage) put(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// PutReport stores a report blob.
func (s *LocalStorage) PutReport(ctx context.Context, tenantID, reportID string, data []byte) error {
	return s.put(s.path(tenantID, "reports", reportID), data)
}

// GetReport retrieves a report blob.
func (s *LocalStorage) GetReport(ctx context.Context, tenantID, reportID string) ([]byte, error) {
	return os.ReadFile(s.path(tenantID, "reports", reportID))
}

// PutSnapshot stores a snapshot blob.
func (s *LocalStorage) PutSnapshot(ctx context.Context, tenantID, snapshotID string, data []byte) error {
	return s.put(s.path(tenantID, "snapshots", snapshotID), data)
}

// GetSnapshot retrieves a snapshot blob.
func (s *LocalStorage) GetSnapshot(ctx context.Context, tenantID, snapshotID string) ([]byte, error) {
	return os.ReadFile(s.path(tenantID, "snapshots", snapshotID))
}
