// Package teststubs holds shared test doubles for provider and snapshot
// seams.
package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	domaingames "baseball-games-service/internal/domain/games"
)

// StubProvider is a test double for schedule.Provider.
type StubProvider struct {
	Games  []domaingames.GameState
	Err    error
	Calls  atomic.Int32
	Notify chan struct{}
}

// FetchSchedule returns the configured slate and error while tracking calls.
func (s *StubProvider) FetchSchedule(ctx context.Context, date string) ([]domaingames.GameState, error) {
	_ = ctx
	_ = date
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	s.Calls.Add(1)
	return s.Games, s.Err
}

// StubSlateWriter is a test double for the snapshot writer seam.
type StubSlateWriter struct {
	mu      sync.Mutex
	Written map[string][]domaingames.GameState // keyed by date
	Err     error
}

// WriteSlate records the slate for verification in tests.
func (w *StubSlateWriter) WriteSlate(date string, states []domaingames.GameState) error {
	if w.Err != nil {
		return w.Err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.Written == nil {
		w.Written = make(map[string][]domaingames.GameState)
	}
	w.Written[date] = append([]domaingames.GameState(nil), states...)
	return nil
}

// Slate returns the recorded slate for a date.
func (w *StubSlateWriter) Slate(date string) ([]domaingames.GameState, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	states, ok := w.Written[date]
	return states, ok
}

// Dates returns how many distinct dates have been written.
func (w *StubSlateWriter) Dates() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.Written)
}
