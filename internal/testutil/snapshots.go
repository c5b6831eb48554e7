package testutil

import (
	"testing"

	"baseball-games-service/internal/snapshots"
)

// NewTempWriter returns a slate writer rooted in a temp dir.
func NewTempWriter(t *testing.T, retention int) *snapshots.Writer {
	t.Helper()
	return snapshots.NewWriter(t.TempDir(), retention)
}

// WriteSlate writes a one-game slate for the date.
func WriteSlate(t *testing.T, w *snapshots.Writer, date string) {
	t.Helper()
	if err := w.WriteSlate(date, SampleSlate(date, date)); err != nil {
		t.Fatalf("failed to write slate %s: %v", date, err)
	}
}

// SlatePath returns the expected file path for a slate date.
func SlatePath(w *snapshots.Writer, date string) string {
	return snapshots.GameSnapshotPath(w.BasePath(), date)
}
