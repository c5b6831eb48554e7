package snapshots

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	domaingames "baseball-games-service/internal/domain/games"
)

func TestWriterWritesSlateAndManifest(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, 10)

	today := time.Now().Format("2006-01-02")
	writeSimpleSlate(t, w, today)

	// Verify snapshot file exists.
	data, err := os.ReadFile(filepath.Join(dir, "games", today+".json"))
	if err != nil {
		t.Fatalf("expected snapshot file, got err %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected snapshot content")
	}

	// Verify manifest was written.
	mBytes, err := os.ReadFile(filepath.Join(dir, "manifest.json"))
	if err != nil {
		t.Fatalf("expected manifest, got err %v", err)
	}
	if len(mBytes) == 0 {
		t.Fatalf("expected manifest content")
	}
}

func TestWriterSortsSlateByID(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, 10000)

	day := time.Date(2026, 4, 7, 19, 0, 0, 0, time.UTC)
	writeSlate(t, w, "2026-04-07", []domaingames.GameState{
		scheduledState("game-b", day),
		scheduledState("game-a", day),
	})

	data, err := os.ReadFile(filepath.Join(dir, "games", "2026-04-07.json"))
	if err != nil {
		t.Fatalf("expected snapshot file, got err %v", err)
	}
	var slate Slate
	if err := json.Unmarshal(data, &slate); err != nil {
		t.Fatalf("decode slate: %v", err)
	}
	if slate.Date != "2026-04-07" {
		t.Fatalf("expected slate date, got %s", slate.Date)
	}
	if len(slate.Games) != 2 || slate.Games[0].ID != "game-a" || slate.Games[1].ID != "game-b" {
		t.Fatalf("expected games sorted by id, got %+v", slate.Games)
	}
}

func TestWriterSkipsIdenticalContent(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, 10000)

	writeSimpleSlate(t, w, "2026-04-07")
	first, err := os.ReadFile(filepath.Join(dir, "games", "2026-04-07.json"))
	if err != nil {
		t.Fatalf("expected snapshot file, got err %v", err)
	}

	writeSimpleSlate(t, w, "2026-04-07")
	second, err := os.ReadFile(filepath.Join(dir, "games", "2026-04-07.json"))
	if err != nil {
		t.Fatalf("expected snapshot file after rewrite, got err %v", err)
	}
	if string(first) != string(second) {
		t.Fatalf("expected identical content to be left untouched")
	}
	if _, err := os.Stat(filepath.Join(dir, "games", "2026-04-07.json.tmp")); err == nil {
		t.Fatalf("expected no temp file left behind")
	}
}

func TestWriterPrunesOldSnapshots(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, 1) // 1-day retention

	oldDate := time.Now().AddDate(0, 0, -5).Format("2006-01-02")
	newDate := time.Now().Format("2006-01-02")

	// Write an old snapshot and a new one.
	for _, d := range []string{oldDate, newDate} {
		writeSimpleSlate(t, w, d)
	}

	// Old snapshot should be pruned.
	if _, err := os.Stat(filepath.Join(dir, "games", oldDate+".json")); err == nil {
		t.Fatalf("expected old snapshot to be pruned")
	}
	if _, err := os.Stat(filepath.Join(dir, "games", newDate+".json")); err != nil {
		t.Fatalf("expected new snapshot to exist")
	}
}

func TestWriterHandlesNilAndEmptyDate(t *testing.T) {
	var w *Writer
	if err := w.WriteSlate("2026-04-07", nil); err == nil {
		t.Fatalf("expected error for nil writer")
	}

	w = NewWriter(t.TempDir(), 1)
	if err := w.WriteSlate("", nil); err == nil {
		t.Fatalf("expected error for empty date")
	}
}

func TestNewWriterDefaultsRetention(t *testing.T) {
	w := NewWriter(t.TempDir(), 0)
	if w.retentionDays <= 0 {
		t.Fatalf("expected retention to default when non-positive provided")
	}
}

func TestListDatesIgnoresNonJSONAndDirs(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "games", "nested"), 0o755); err != nil {
		t.Fatalf("failed to create nested dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "games", "2026-04-07.json"), []byte("{}"), 0o644); err != nil {
		t.Fatalf("failed to write snapshot: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "games", "ignore.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to write extra file: %v", err)
	}

	w := NewWriter(dir, 1)
	dates, err := w.listDates(kindGames)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(dates) != 1 || dates[0] != "2026-04-07" {
		t.Fatalf("expected only json snapshots, got %v", dates)
	}
}

func TestBasePathExposesRoot(t *testing.T) {
	base := t.TempDir()
	w := NewWriter(base, 1)
	if w.BasePath() != base {
		t.Fatalf("expected base path %s, got %s", base, w.BasePath())
	}
}
