package snapshots

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestReadManifestReturnsDefaultOnDecodeError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.json")
	if err := os.WriteFile(path, []byte("{bad json"), 0o644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}

	m, err := readManifest(path, 5)
	if err == nil {
		t.Fatalf("expected decode error")
	}
	if m.Retention.GamesDays != 5 {
		t.Fatalf("expected retention fallback to provided, got %d", m.Retention.GamesDays)
	}
}

func TestReadManifestReturnsDefaultWhenMissing(t *testing.T) {
	m, err := readManifest(filepath.Join(t.TempDir(), "manifest.json"), 9)
	if err == nil {
		t.Fatalf("expected open error for missing manifest")
	}
	if m.Version != 1 || m.Retention.GamesDays != 9 {
		t.Fatalf("expected default manifest, got %+v", m)
	}
	if m.Games.Dates == nil {
		t.Fatalf("expected empty dates, not nil")
	}
}

func TestWriteManifestFailsWhenPathMissing(t *testing.T) {
	if err := writeManifest(filepath.Join("does-not-exist", "missing"), defaultManifest(3)); err == nil {
		t.Fatalf("expected error when base path missing")
	}
}

func TestWriteManifestStampsGeneratedAt(t *testing.T) {
	dir := t.TempDir()
	m := defaultManifest(4)
	if err := writeManifest(dir, m); err != nil {
		t.Fatalf("expected manifest to be written, got %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "manifest.json"))
	if err != nil {
		t.Fatalf("expected manifest file, got %v", err)
	}
	var stored Manifest
	if err := json.Unmarshal(data, &stored); err != nil {
		t.Fatalf("decode manifest: %v", err)
	}
	if stored.GeneratedAt.IsZero() {
		t.Fatalf("expected generatedAt stamp")
	}
	if stored.Retention.GamesDays != 4 {
		t.Fatalf("expected retention persisted, got %d", stored.Retention.GamesDays)
	}
}
