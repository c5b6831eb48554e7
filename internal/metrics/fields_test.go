package metrics

import "testing"

func TestMetricFieldKeysAreStable(t *testing.T) {
	if AttrMethod == "" || AttrPath == "" || AttrStatus == "" || AttrProvider == "" {
		t.Fatalf("expected metric attribute keys to be non-empty")
	}
	if AttrAction != "action" || AttrCode != "code" {
		t.Fatalf("expected action/code attribute keys, got %q/%q", AttrAction, AttrCode)
	}
}
