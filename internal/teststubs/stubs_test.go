package teststubs

import (
	"context"
	"errors"
	"testing"

	domaingames "baseball-games-service/internal/domain/games"
)

func TestStubProviderTracksCalls(t *testing.T) {
	err := errors.New("boom")
	p := &StubProvider{Games: []domaingames.GameState{{ID: "g1"}}, Err: err}
	if _, got := p.FetchSchedule(context.Background(), "2026-04-07"); !errors.Is(got, err) {
		t.Fatalf("expected error passthrough, got %v", got)
	}
	if p.Calls.Load() != 1 {
		t.Fatalf("expected call count 1, got %d", p.Calls.Load())
	}
}

func TestStubProviderNotifiesOnce(t *testing.T) {
	p := &StubProvider{Notify: make(chan struct{})}
	_, _ = p.FetchSchedule(context.Background(), "")
	select {
	case <-p.Notify:
	default:
		t.Fatal("expected notify channel to be closed")
	}
	// A second call must not panic on the closed channel.
	_, _ = p.FetchSchedule(context.Background(), "")
}

func TestStubSlateWriterRecordsWrites(t *testing.T) {
	date := "2026-04-07"
	w := &StubSlateWriter{}
	if err := w.WriteSlate(date, []domaingames.GameState{{ID: "g1"}}); err != nil {
		t.Fatalf("expected write success, got %v", err)
	}
	if w.Dates() != 1 {
		t.Fatalf("expected one written date, got %d", w.Dates())
	}
	states, ok := w.Slate(date)
	if !ok || len(states) != 1 || states[0].ID != "g1" {
		t.Fatalf("expected recorded slate, got %v ok=%v", states, ok)
	}

	w.Err = errors.New("write error")
	if err := w.WriteSlate("2026-04-08", []domaingames.GameState{{ID: "g2"}}); err == nil {
		t.Fatalf("expected write error")
	}
}
