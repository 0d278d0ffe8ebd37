package export

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealscope/dealscope/pkg/crm"
	"github.com/dealscope/dealscope/pkg/insight"
)

func TestExporterArchiveAndLoad(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	lastContact := now.AddDate(0, 0, -1)

	storage := NewLocalStorage(t.TempDir())
	exp := NewExporter(storage, insight.NewDefaultEngine())

	snap := &crm.Snapshot{
		TenantID: "agence-sud",
		TakenAt:  now,
		Contacts: []crm.Contact{
			{ID: "c1", FirstName: "Claire", LastName: "Moreau", LastContactDate: &lastContact},
		},
		Deals: []crm.Deal{
			{ID: "d1", ContactID: "c1", Amount: 450000, Probability: 60, Stage: crm.StageOffre, CreatedAt: now.AddDate(0, 0, -10)},
		},
	}

	reportID, err := exp.Archive(ctx, snap, now)
	require.NoError(t, err)
	assert.Equal(t, "overview-20260315-120000", reportID)

	overview, err := exp.LoadReport(ctx, "agence-sud", reportID)
	require.NoError(t, err)
	assert.Equal(t, "agence-sud", overview.TenantID)
	assert.Contains(t, overview.ContactBadges, "c1")
	assert.Contains(t, overview.DealHealth, "d1")

	// The source snapshot is archived next to the report.
	raw, err := storage.GetSnapshot(ctx, "agence-sud", "20260315-120000")
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Claire")
}

func TestExporterLoadReportMissing(t *testing.T) {
	exp := NewExporter(NewLocalStorage(t.TempDir()), insight.NewDefaultEngine())

	_, err := exp.LoadReport(context.Background(), "agence-sud", "overview-absent")
	assert.Error(t, err)
}
