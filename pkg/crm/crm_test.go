package crm

import (
	"path/filepath"
	"testing"
	"time"
)

func TestStagePredicates(t *testing.T) {
	tests := []struct {
		stage    DealStage
		terminal bool
		won      bool
		advanced bool
	}{
		{StageProspection, false, false, false},
		{StageQualification, false, false, false},
		{StageVisite, false, false, false},
		{StageOffre, false, false, true},
		{StageNegociation, false, false, true},
		{StageCompromis, false, false, true},
		{StageVendu, true, true, false},
		{StagePerdu, true, false, false},
	}

	for _, tc := range tests {
		if got := tc.stage.IsTerminal(); got != tc.terminal {
			t.Errorf("%s IsTerminal = %v, want %v", tc.stage, got, tc.terminal)
		}
		if got := tc.stage.IsWon(); got != tc.won {
			t.Errorf("%s IsWon = %v, want %v", tc.stage, got, tc.won)
		}
		if got := tc.stage.IsAdvanced(); got != tc.advanced {
			t.Errorf("%s IsAdvanced = %v, want %v", tc.stage, got, tc.advanced)
		}
	}
}

func TestContactStagePredicates(t *testing.T) {
	if !ContactGagne.IsTerminal() || !ContactPerdu.IsTerminal() {
		t.Error("gagne and perdu must be terminal")
	}
	if ContactNouveau.IsTerminal() || ContactQualifie.IsTerminal() {
		t.Error("active stages reported as terminal")
	}
	if !ContactNouveau.IsNew() || ContactContacte.IsNew() {
		t.Error("IsNew must single out the initial stage")
	}
}

func TestContactFullName(t *testing.T) {
	tests := []struct {
		first, last, want string
	}{
		{"Claire", "Moreau", "Claire Moreau"},
		{"", "Moreau", "Moreau"},
		{"Claire", "", "Claire"},
	}
	for _, tc := range tests {
		c := Contact{FirstName: tc.first, LastName: tc.last}
		if got := c.FullName(); got != tc.want {
			t.Errorf("FullName(%q, %q) = %q, want %q", tc.first, tc.last, got, tc.want)
		}
	}
}

func TestDealsByContact(t *testing.T) {
	snap := &Snapshot{
		Deals: []Deal{
			{ID: "d1", ContactID: "c1"},
			{ID: "d2", ContactID: "c1"},
			{ID: "d3", ContactID: "c2"},
			{ID: "d4"}, // orphan deal, not grouped
		},
	}

	byContact := snap.DealsByContact()
	if len(byContact["c1"]) != 2 {
		t.Errorf("c1 deals = %d, want 2", len(byContact["c1"]))
	}
	if len(byContact["c2"]) != 1 {
		t.Errorf("c2 deals = %d, want 1", len(byContact["c2"]))
	}
	if len(byContact) != 2 {
		t.Errorf("grouped contacts = %d, want 2", len(byContact))
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snapshots", "agence.json")

	last := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	snap := &Snapshot{
		TenantID: "agence-sud",
		TakenAt:  time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC),
		Contacts: []Contact{
			{ID: "c1", FirstName: "Claire", LastName: "Moreau", PipelineStage: ContactQualifie, LastContactDate: &last},
		},
		Deals: []Deal{
			{ID: "d1", ContactID: "c1", Title: "Villa Cassis", Amount: 450000, Probability: 75, Stage: StageNegociation},
		},
		Activities: []Activity{
			{ID: "a1", Title: "Visite", Status: ActivityPlanifiee},
		},
	}

	if err := SaveSnapshot(path, snap); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	got, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}

	if got.TenantID != snap.TenantID {
		t.Errorf("tenant = %q, want %q", got.TenantID, snap.TenantID)
	}
	if len(got.Contacts) != 1 || len(got.Deals) != 1 || len(got.Activities) != 1 {
		t.Errorf("collection sizes changed: %d/%d/%d", len(got.Contacts), len(got.Deals), len(got.Activities))
	}
	if got.Contacts[0].LastContactDate == nil || !got.Contacts[0].LastContactDate.Equal(last) {
		t.Errorf("last contact date did not survive the round trip")
	}
	if got.Deals[0].Stage != StageNegociation {
		t.Errorf("stage = %s, want negociation", got.Deals[0].Stage)
	}
}

func TestLoadSnapshotMissingFile(t *testing.T) {
	if _, err := LoadSnapshot(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
