package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	domaingames "baseball-games-service/internal/domain/games"
	"baseball-games-service/internal/logging"
	"baseball-games-service/internal/metrics"
	"baseball-games-service/internal/schedule"
	"baseball-games-service/internal/timeutil"
)

const defaultInterval = 30 * time.Second

// GameService is the slice of the scoring service the sweeper needs:
// seeding newly published games and listing what the store holds.
type GameService interface {
	Seed(ctx context.Context, seeds []domaingames.GameState) (int, error)
	List(ctx context.Context) ([]domaingames.GameState, error)
}

// SlateWriter persists a day's slate to disk.
type SlateWriter interface {
	WriteSlate(date string, states []domaingames.GameState) error
}

// Poller sweeps the league schedule on an interval, seeds newly
// published games into the service, and writes today's slate to disk.
type Poller struct {
	provider schedule.Provider
	service  GameService
	writer   SlateWriter
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration
	loc      *time.Location
	now      func() time.Time

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the sweep loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether the poller has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Poller with sane defaults. loc scopes "today" to the
// league calendar; nil means UTC.
func New(provider schedule.Provider, service GameService, writer SlateWriter, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration, loc *time.Location) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Poller{
		provider: provider,
		service:  service,
		writer:   writer,
		logger:   logger,
		metrics:  recorder,
		interval: interval,
		loc:      loc,
		now:      time.Now,
		done:     make(chan struct{}),
	}
}

// Start begins sweeping until the context is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.startMu.Unlock()

	p.ticker = time.NewTicker(p.interval)

	go func() {
		p.logInfo("poller started", slog.Int64(logging.FieldDurationMS, p.interval.Milliseconds()))
		// Initial sweep to warm data on boot.
		p.sweepOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				p.stopTicker()
				p.logInfo("poller stopped")
				return
			case <-p.done:
				p.stopTicker()
				p.logInfo("poller stopped")
				return
			case <-p.ticker.C:
				p.sweepOnce(ctx)
			}
		}
	}()
}

// Stop halts the sweep loop.
func (p *Poller) Stop(ctx context.Context) error {
	_ = ctx
	p.stopOnce.Do(func() {
		close(p.done)
		p.stopTicker()
	})
	return nil
}

// SweepNow runs a single sweep outside the ticker cadence and returns
// the resulting status. Admin handlers use it to force a refresh.
func (p *Poller) SweepNow(ctx context.Context) Status {
	p.sweepOnce(ctx)
	return p.Status()
}

func (p *Poller) sweepOnce(ctx context.Context) {
	start := time.Now()
	p.recordAttempt(start)
	today := timeutil.FormatDate(p.now().In(p.loc))

	slate, err := p.provider.FetchSchedule(ctx, today)
	seeded := 0
	if err == nil && p.service != nil {
		seeded, err = p.service.Seed(ctx, scheduledOnly(slate))
	}
	if p.metrics != nil {
		p.metrics.RecordSweepCycle(time.Since(start), err)
	}
	if err != nil {
		p.logError("poller sweep failed", err, slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()))
		p.recordFailure(err, start)
		return
	}

	if p.writer != nil {
		if writeErr := p.writer.WriteSlate(today, p.slateFor(ctx, today, slate)); writeErr != nil {
			p.logError("poller slate write failed", writeErr)
		}
	}
	p.recordSuccess(start)
	p.logInfo("poller refreshed schedule",
		logging.FieldDate, today,
		logging.FieldCount, len(slate),
		"seeded", seeded,
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
}

// slateFor collects the games on date from the service, so the written
// slate carries scorer-entered progress rather than the raw provider
// payload. Falls back to the payload when no service is wired.
func (p *Poller) slateFor(ctx context.Context, date string, fallback []domaingames.GameState) []domaingames.GameState {
	if p.service == nil {
		return fallback
	}
	all, err := p.service.List(ctx)
	if err != nil {
		p.logError("poller slate list failed", err)
		return fallback
	}
	slate := make([]domaingames.GameState, 0, len(all))
	for _, state := range all {
		if state.StartTime.IsZero() {
			continue
		}
		if timeutil.FormatDate(state.StartTime.In(p.loc)) == date {
			slate = append(slate, state)
		}
	}
	return slate
}

func scheduledOnly(states []domaingames.GameState) []domaingames.GameState {
	seeds := make([]domaingames.GameState, 0, len(states))
	for _, state := range states {
		if state.Status == domaingames.StatusScheduled {
			seeds = append(seeds, state)
		}
	}
	return seeds
}

func (p *Poller) stopTicker() {
	if p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *Poller) logInfo(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Poller) logError(msg string, err error, attrs ...any) {
	if p.logger != nil {
		p.logger.Error(msg, append(attrs, "error", err)...)
	}
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}

// Provider exposes the underlying provider (primarily for cleanup in callers).
func (p *Poller) Provider() schedule.Provider {
	return p.provider
}
