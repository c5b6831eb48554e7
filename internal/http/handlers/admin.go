package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"baseball-games-service/internal/app/games"
	domaingames "baseball-games-service/internal/domain/games"
	"baseball-games-service/internal/http/requestutil"
	"baseball-games-service/internal/logging"
	"baseball-games-service/internal/poller"
	"baseball-games-service/internal/store"
)

// Sweeper triggers an immediate schedule sweep outside the ticker cadence.
type Sweeper interface {
	SweepNow(ctx context.Context) poller.Status
}

// AdminHandler exposes token-guarded endpoints for the scheduling
// collaborator: creating games and forcing a schedule sweep.
type AdminHandler struct {
	svc     *games.Service
	sweeper Sweeper
	token   string
	logger  *slog.Logger
}

// NewAdminHandler constructs an AdminHandler. An empty token locks every
// endpoint; there is no unauthenticated admin mode.
func NewAdminHandler(svc *games.Service, sweeper Sweeper, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		svc:     svc,
		sweeper: sweeper,
		token:   token,
		logger:  logger,
	}
}

type createGameRequest struct {
	ID        string    `json:"id"`
	HomeTeam  string    `json:"homeTeam"`
	AwayTeam  string    `json:"awayTeam"`
	StartTime time.Time `json:"startTime"`
}

// CreateGame schedules a new game. This is the entry point for the
// scheduling collaborator; live mutations go through the action endpoint.
func (h *AdminHandler) CreateGame(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost, h.logger) {
		return
	}
	if !h.authorize(r) {
		h.denied(r)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)

	var req createGameRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidation(w, &domaingames.ValidationError{Fields: []domaingames.FieldError{
			{Field: "body", Message: "malformed json payload"},
		}}, logger)
		return
	}
	if valErr := validateCreateGame(req); valErr != nil {
		writeValidation(w, valErr, logger)
		return
	}

	state := domaingames.NewScheduledGame(req.ID, req.HomeTeam, req.AwayTeam, req.StartTime)
	created, err := h.svc.Create(r.Context(), state)
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			writeError(w, r, http.StatusConflict, "game already exists", logger)
			return
		}
		logging.Error(logger, "admin create game failed", err, logging.FieldGameID, req.ID)
		writeError(w, r, http.StatusInternalServerError, "failed to create game", logger)
		return
	}

	writeJSON(w, http.StatusCreated, domaingames.NewStateResponse(created), logger)
}

// Sweep forces one schedule sweep and reports how it went.
func (h *AdminHandler) Sweep(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost, h.logger) {
		return
	}
	if !h.authorize(r) {
		h.denied(r)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return
	}
	if h.sweeper == nil {
		writeError(w, r, http.StatusServiceUnavailable, "sweeper not configured", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)
	status := h.sweeper.SweepNow(r.Context())
	if status.LastError != "" {
		logging.Warn(logger, "admin sweep failed", "error", status.LastError)
		writeError(w, r, http.StatusBadGateway, "schedule sweep failed: "+status.LastError, logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"sweptAt": status.LastSuccess,
	}, logger)
	logging.Info(logger, "admin sweep completed")
}

func validateCreateGame(req createGameRequest) *domaingames.ValidationError {
	var fields []domaingames.FieldError
	if req.ID == "" {
		fields = append(fields, domaingames.FieldError{Field: "id", Message: "must not be empty"})
	}
	if req.HomeTeam == "" {
		fields = append(fields, domaingames.FieldError{Field: "homeTeam", Message: "must not be empty"})
	}
	if req.AwayTeam == "" {
		fields = append(fields, domaingames.FieldError{Field: "awayTeam", Message: "must not be empty"})
	}
	if req.StartTime.IsZero() {
		fields = append(fields, domaingames.FieldError{Field: "startTime", Message: "must be set"})
	}
	if len(fields) == 0 {
		return nil
	}
	return &domaingames.ValidationError{Fields: fields}
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	return r.Header.Get("Authorization") == "Bearer "+h.token
}

func (h *AdminHandler) denied(r *http.Request) {
	logging.Warn(h.logger, "admin unauthorized",
		slog.String(logging.FieldPath, r.URL.Path),
		slog.String("client_ip", requestutil.ClientIP(r)),
	)
}
