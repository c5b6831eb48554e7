package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	domaingames "baseball-games-service/internal/domain/games"
	"baseball-games-service/internal/http/middleware"
	"baseball-games-service/internal/logging"
	"baseball-games-service/internal/store"
)

// validationResponse reports structural payload problems per field.
type validationResponse struct {
	Valid  bool                     `json:"valid"`
	Errors []domaingames.FieldError `json:"errors"`
}

// rejectionResponse reports a business-rule rejection.
type rejectionResponse struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason"`
}

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Error("failed to encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	reqID := middleware.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get("X-Request-ID")
	}
	body := map[string]string{"error": message}
	if reqID != "" {
		body["requestId"] = reqID
	}
	writeJSON(w, status, body, logger)
}

func writeValidation(w http.ResponseWriter, valErr *domaingames.ValidationError, logger *slog.Logger) {
	writeJSON(w, http.StatusBadRequest, validationResponse{Valid: false, Errors: valErr.Fields}, logger)
}

func writeRejection(w http.ResponseWriter, ruleErr *domaingames.RuleError, logger *slog.Logger) {
	writeJSON(w, http.StatusConflict, rejectionResponse{Valid: false, Reason: ruleErr.Error()}, logger)
}

// writeActionError maps a failed apply onto the wire contract. Validation
// beats rules: structural problems are 400s, rule rejections and lost
// compare-and-swap races are 409s.
func writeActionError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	if valErr, ok := domaingames.AsValidationError(err); ok {
		writeValidation(w, valErr, logger)
		return
	}
	if ruleErr, ok := domaingames.AsRuleError(err); ok {
		writeRejection(w, ruleErr, logger)
		return
	}
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "game not found", logger)
	case errors.Is(err, store.ErrConflict):
		writeError(w, r, http.StatusConflict, "game changed concurrently, retry", logger)
	default:
		writeError(w, r, http.StatusInternalServerError, "failed to apply action", logger)
	}
}

func requireMethod(w http.ResponseWriter, r *http.Request, method string, logger *slog.Logger) bool {
	if r.Method == method {
		return true
	}
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", logger)
	return false
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
