package schedule

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"baseball-games-service/internal/teststubs"
)

func TestLoggingProviderLogsSuccess(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &teststubs.StubProvider{}

	lp := NewLoggingProvider(inner, "stub", logger)
	if _, err := lp.FetchSchedule(context.Background(), "2026-04-07"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "schedule fetched") {
		t.Fatalf("expected success log, got %q", out)
	}
	if !strings.Contains(out, "provider=stub") {
		t.Fatalf("expected provider attribute, got %q", out)
	}
}

func TestLoggingProviderLogsFailure(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &teststubs.StubProvider{Err: errors.New("boom")}

	lp := NewLoggingProvider(inner, "stub", logger)
	if _, err := lp.FetchSchedule(context.Background(), "2026-04-07"); err == nil {
		t.Fatal("expected error passthrough")
	}

	if !strings.Contains(buf.String(), "schedule fetch failed") {
		t.Fatalf("expected failure log, got %q", buf.String())
	}
}

func TestLoggingProviderHandlesNilInner(t *testing.T) {
	lp := NewLoggingProvider(nil, "", nil)
	if _, err := lp.FetchSchedule(context.Background(), ""); !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}
