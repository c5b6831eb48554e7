package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

type actionStats struct {
	applied     int
	rejected    int
	lastLatency time.Duration
}

// Recorder captures lightweight, in-memory metrics about game actions,
// store behavior, and provider calls. It is intentionally simple so it
// can be swapped for a real backend later.
type Recorder struct {
	mu          sync.Mutex
	providers   map[string]*providerStats
	actions     map[string]*actionStats
	corrections int
	conflicts   int
	otel        *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		providers: make(map[string]*providerStats),
		actions:   make(map[string]*actionStats),
		otel:      otel,
	}
}

// RecordGameAction increments the applied counter for an action and stores
// the last observed latency.
func (r *Recorder) RecordGameAction(action string, duration time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureAction(action)
	stats.applied++
	stats.lastLatency = duration
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordGameAction(action, duration)
	}
}

// RecordGameRejection tracks an action the rules refused, keyed by the
// rejection code.
func (r *Recorder) RecordGameRejection(action, code string) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.ensureAction(action).rejected++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordGameRejection(action, code)
	}
}

// RecordCorrection tracks an operator overwrite of game state.
func (r *Recorder) RecordCorrection() {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.corrections++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordCorrection()
	}
}

// RecordStoreConflict tracks a save that lost its compare-and-swap race.
func (r *Recorder) RecordStoreConflict() {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.conflicts++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordStoreConflict()
	}
}

// RecordProviderAttempt increments counters for a provider call and stores the last observed latency.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureProvider(provider)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordProviderAttempt(provider, duration, err)
	}
}

// RecordRateLimit tracks that a provider response hit a rate limit and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(provider string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureProvider(provider)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRateLimit(provider, retryAfter)
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordSweepCycle tracks schedule sweep cycles and errors.
func (r *Recorder) RecordSweepCycle(duration time.Duration, err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordSweep(duration, err)
}

// ActionsApplied returns the total applied actions recorded for an action name.
func (r *Recorder) ActionsApplied(action string) int {
	return r.ActionSnapshot(action).Applied
}

// ActionsRejected returns the total rejected actions recorded for an action name.
func (r *Recorder) ActionsRejected(action string) int {
	return r.ActionSnapshot(action).Rejected
}

// Corrections returns the total operator overwrites recorded.
func (r *Recorder) Corrections() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.corrections
}

// StoreConflicts returns the total lost compare-and-swap races recorded.
func (r *Recorder) StoreConflicts() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.conflicts
}

// ProviderCalls returns the total attempts recorded for a provider.
func (r *Recorder) ProviderCalls(provider string) int {
	return r.Snapshot(provider).Calls
}

// ProviderErrors returns the total failed attempts recorded for a provider.
func (r *Recorder) ProviderErrors(provider string) int {
	return r.Snapshot(provider).Errors
}

// RateLimitHits returns the number of rate limit events seen for a provider.
func (r *Recorder) RateLimitHits(provider string) int {
	return r.Snapshot(provider).RateLimitHits
}

// LastRetryAfter returns the most recent Retry-After recorded for a provider.
func (r *Recorder) LastRetryAfter(provider string) time.Duration {
	return r.Snapshot(provider).LastRetryAfter
}

// LastCallLatency returns the last recorded latency for a provider call.
func (r *Recorder) LastCallLatency(provider string) time.Duration {
	return r.Snapshot(provider).LastCallLatency
}

// Snapshot is a copy of the current stats for a provider.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if stats, ok := r.providers[provider]; ok && stats != nil {
		return Snapshot{
			Calls:           stats.calls,
			Errors:          stats.errors,
			RateLimitHits:   stats.rateLimitHits,
			LastRetryAfter:  stats.lastRetryAfter,
			LastCallLatency: stats.lastCallLatency,
		}
	}
	return Snapshot{}
}

// ActionSnapshot is a copy of the current stats for an action name.
type ActionSnapshot struct {
	Applied     int
	Rejected    int
	LastLatency time.Duration
}

func (r *Recorder) ActionSnapshot(action string) ActionSnapshot {
	if r == nil {
		return ActionSnapshot{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if stats, ok := r.actions[action]; ok && stats != nil {
		return ActionSnapshot{
			Applied:     stats.applied,
			Rejected:    stats.rejected,
			LastLatency: stats.lastLatency,
		}
	}
	return ActionSnapshot{}
}

// ensureProvider must be called with r.mu held.
func (r *Recorder) ensureProvider(provider string) *providerStats {
	stats, ok := r.providers[provider]
	if !ok {
		stats = &providerStats{}
		r.providers[provider] = stats
	}
	return stats
}

// ensureAction must be called with r.mu held.
func (r *Recorder) ensureAction(action string) *actionStats {
	stats, ok := r.actions[action]
	if !ok {
		stats = &actionStats{}
		r.actions[action] = stats
	}
	return stats
}
