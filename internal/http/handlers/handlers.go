// Package handlers exposes the scoring service over HTTP: read endpoints
// for game state, the action endpoint scorers drive, and admin endpoints
// for scheduling and sweeps.
package handlers

import (
	"errors"
	"log/slog"
	nethttp "net/http"
	"net/url"
	"strings"

	"baseball-games-service/internal/app/games"
	domaingames "baseball-games-service/internal/domain/games"
	"baseball-games-service/internal/poller"
	"baseball-games-service/internal/store"
)

// Handler wires the public HTTP routes to the application service.
type Handler struct {
	svc      *games.Service
	logger   *slog.Logger
	statusFn func() poller.Status
}

// NewHandler constructs a Handler. statusFn gates /ready; nil means always ready.
func NewHandler(svc *games.Service, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	return &Handler{
		svc:      svc,
		logger:   logger,
		statusFn: statusFn,
	}
}

// ServeHTTP routes the public surface.
func (h *Handler) ServeHTTP(w nethttp.ResponseWriter, r *nethttp.Request) {
	switch {
	case r.URL.Path == "/health":
		h.Health(w, r)
	case r.URL.Path == "/ready":
		h.Ready(w, r)
	case r.URL.Path == "/games":
		h.Games(w, r)
	case strings.HasPrefix(r.URL.Path, "/games/"):
		h.GameRoutes(w, r)
	default:
		writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic (e.g., for Kubernetes probes).
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	if h.statusFn().IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := h.statusFn().LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// Games lists every game the store holds.
func (h *Handler) Games(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	states, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, r, nethttp.StatusInternalServerError, "failed to list games", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, domaingames.NewListResponse(states), h.logger)
}

// GameRoutes splits /games/{id} reads from /games/{id}/{action} writes.
func (h *Handler) GameRoutes(w nethttp.ResponseWriter, r *nethttp.Request) {
	_, action, ok := splitGamePath(r.URL.Path)
	if !ok {
		writeError(w, r, nethttp.StatusBadRequest, "invalid game id", h.logger)
		return
	}
	if action == "" {
		h.GameByID(w, r)
		return
	}
	h.GameAction(w, r)
}

// GameByID returns a specific game if present.
func (h *Handler) GameByID(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	id, action, ok := splitGamePath(r.URL.Path)
	if !ok || action != "" {
		writeError(w, r, nethttp.StatusBadRequest, "invalid game id", h.logger)
		return
	}

	state, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, r, nethttp.StatusNotFound, "game not found", h.logger)
			return
		}
		writeError(w, r, nethttp.StatusInternalServerError, "failed to load game", h.logger)
		return
	}

	writeJSON(w, nethttp.StatusOK, domaingames.NewStateResponse(state), h.logger)
}

// GameAction applies one scoring action to one game. The body is the
// action payload; the action name rides in the path.
func (h *Handler) GameAction(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodPost, h.logger) {
		return
	}
	id, name, ok := splitGamePath(r.URL.Path)
	if !ok || name == "" {
		writeError(w, r, nethttp.StatusBadRequest, "invalid action path", h.logger)
		return
	}

	action, err := buildAction(domaingames.ActionName(name), r)
	if err != nil {
		if errors.Is(err, errUnknownAction) {
			writeError(w, r, nethttp.StatusNotFound, "unknown action", h.logger)
			return
		}
		writeValidation(w, &domaingames.ValidationError{Fields: []domaingames.FieldError{
			{Field: "body", Message: "malformed json payload"},
		}}, h.logger)
		return
	}

	outcome, err := h.svc.Apply(r.Context(), id, action)
	if err != nil {
		writeActionError(w, r, err, loggerFromContext(r, h.logger))
		return
	}

	writeJSON(w, nethttp.StatusOK, domaingames.NewOutcomeResponse(outcome), h.logger)
}

// splitGamePath parses /games/{id} and /games/{id}/{action}. A trailing
// slash is tolerated; deeper nesting is not.
func splitGamePath(path string) (id, action string, ok bool) {
	rest := strings.TrimPrefix(path, "/games/")
	if rest == path || rest == "" {
		return "", "", false
	}
	parts := strings.Split(strings.TrimSuffix(rest, "/"), "/")
	switch len(parts) {
	case 1:
		id = parts[0]
	case 2:
		id, action = parts[0], parts[1]
	default:
		return "", "", false
	}

	unescaped, err := url.PathUnescape(id)
	if err != nil || unescaped == "" || strings.ContainsAny(unescaped, " \t") {
		return "", "", false
	}
	return unescaped, action, true
}
