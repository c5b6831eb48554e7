// Package games coordinates game-state operations between the rules
// engine and a store. All writes go through the engine and land with a
// compare-and-swap, so two operators editing the same game cannot
// silently overwrite each other.
package games

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	domaingames "baseball-games-service/internal/domain/games"
	"baseball-games-service/internal/logging"
	"baseball-games-service/internal/metrics"
	"baseball-games-service/internal/store"
)

// Store defines the contract for persisting and retrieving game states.
type Store interface {
	GetGame(ctx context.Context, id string) (domaingames.GameState, error)
	CreateGame(ctx context.Context, state domaingames.GameState) error
	SaveGame(ctx context.Context, state domaingames.GameState, expectUpdatedAt time.Time) error
	ListGames(ctx context.Context) ([]domaingames.GameState, error)
}

// Service coordinates game operations using a Store and the rules controller.
type Service struct {
	store      Store
	controller *domaingames.Controller
	logger     *slog.Logger
	recorder   *metrics.Recorder
	now        func() time.Time
}

// NewService constructs a Service. Logger and recorder may be nil; a nil
// controller gets a wall-clock default.
func NewService(st Store, controller *domaingames.Controller, logger *slog.Logger, recorder *metrics.Recorder) *Service {
	if controller == nil {
		controller = domaingames.NewController(nil)
	}
	return &Service{
		store:      st,
		controller: controller,
		logger:     logger,
		recorder:   recorder,
		now:        time.Now,
	}
}

// Get returns a single game state.
func (s *Service) Get(ctx context.Context, id string) (domaingames.GameState, error) {
	return s.store.GetGame(ctx, id)
}

// List returns all game states.
func (s *Service) List(ctx context.Context) ([]domaingames.GameState, error) {
	return s.store.ListGames(ctx)
}

// Create persists a new game, stamping UpdatedAt when the caller left it zero.
func (s *Service) Create(ctx context.Context, state domaingames.GameState) (domaingames.GameState, error) {
	if state.UpdatedAt.IsZero() {
		state.UpdatedAt = s.now()
	}
	if err := s.store.CreateGame(ctx, state); err != nil {
		return domaingames.GameState{}, err
	}
	logging.Info(s.logger, "game created",
		logging.FieldGameID, state.ID,
		logging.FieldStatus, string(state.Status),
	)
	return state, nil
}

// Apply loads a game, runs one action through the rules, and saves the
// result. The whole step is all-or-nothing: a rejected action leaves the
// stored state untouched, and a save that loses its compare-and-swap race
// returns store.ErrConflict without retrying.
func (s *Service) Apply(ctx context.Context, id string, action domaingames.Action) (domaingames.Outcome, error) {
	started := time.Now()

	prev, err := s.store.GetGame(ctx, id)
	if err != nil {
		return domaingames.Outcome{}, err
	}

	outcome, err := s.controller.Apply(prev, action)
	if err != nil {
		s.recordRejection(action, err)
		return domaingames.Outcome{}, err
	}

	// UpdatedAt doubles as the CAS token, so each write must land on a
	// later millisecond even under a coarse or frozen clock.
	if outcome.New.UpdatedAt.Sub(prev.UpdatedAt) < time.Millisecond {
		outcome.New.UpdatedAt = prev.UpdatedAt.Add(time.Millisecond)
	}

	if err := s.store.SaveGame(ctx, outcome.New, prev.UpdatedAt); err != nil {
		if errors.Is(err, store.ErrConflict) {
			s.recorder.RecordStoreConflict()
			logging.Warn(s.logger, "game save lost concurrent update race",
				logging.FieldGameID, id,
				logging.FieldAction, string(action.Name()),
			)
		}
		return domaingames.Outcome{}, fmt.Errorf("save game %s: %w", id, err)
	}

	s.recorder.RecordGameAction(string(outcome.Action), time.Since(started))
	if outcome.Action == domaingames.ActionCorrect {
		s.recorder.RecordCorrection()
		logging.Warn(s.logger, "game state corrected",
			logging.FieldGameID, id,
			logging.FieldCorrection, true,
			logging.FieldStatus, string(outcome.New.Status),
		)
	} else {
		logging.Info(s.logger, "game action applied",
			logging.FieldGameID, id,
			logging.FieldAction, string(outcome.Action),
			logging.FieldStatus, string(outcome.New.Status),
		)
	}

	return outcome, nil
}

// Seed inserts schedule seeds for ids the store has not seen. Existing
// games keep whatever state they are in. Returns how many were inserted.
func (s *Service) Seed(ctx context.Context, seeds []domaingames.GameState) (int, error) {
	inserted := 0
	for _, seed := range seeds {
		if err := ctx.Err(); err != nil {
			return inserted, err
		}

		if _, err := s.store.GetGame(ctx, seed.ID); err == nil {
			continue
		} else if !errors.Is(err, store.ErrNotFound) {
			return inserted, fmt.Errorf("check game %s: %w", seed.ID, err)
		}

		if seed.UpdatedAt.IsZero() {
			seed.UpdatedAt = s.now()
		}
		if err := s.store.CreateGame(ctx, seed); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				continue
			}
			return inserted, fmt.Errorf("create game %s: %w", seed.ID, err)
		}
		inserted++
	}
	return inserted, nil
}

func (s *Service) recordRejection(action domaingames.Action, err error) {
	name := "unknown"
	if action != nil {
		name = string(action.Name())
	}

	code := "ValidationFailed"
	if ruleErr, ok := domaingames.AsRuleError(err); ok {
		code = string(ruleErr.Code)
	}

	s.recorder.RecordGameRejection(name, code)
	logging.Warn(s.logger, "game action rejected",
		logging.FieldAction, name,
		"reason", err.Error(),
	)
}
