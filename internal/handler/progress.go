package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	authpkg "github.com/kpom/kpom/internal/auth"
	"github.com/kpom/kpom/internal/handler/dto"
	"github.com/kpom/kpom/internal/service"
)

// ProgressHandler handles HTTP requests for session logging and summaries.
type ProgressHandler struct {
	svc    *service.ProgressService
	logger *slog.Logger
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(svc *service.ProgressService, logger *slog.Logger) *ProgressHandler {
	return &ProgressHandler{
		svc:    svc,
		logger: logger,
	}
}

// RecordSession handles POST /api/progress/session.
// Saves one finished focus session for the authenticated user.
func (h *ProgressHandler) RecordSession(w http.ResponseWriter, r *http.Request) {
	userID := authpkg.UserIDFromContext(r.Context())

	var req dto.RecordSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	session, err := h.svc.RecordSession(r.Context(), userID, req.MethodID, req.FocusMinutes)
	if err != nil {
		h.handleProgressError(w, err)
		return
	}

	h.logger.Info("session_recorded",
		"user_id", userID,
		"session_id", session.ID,
		"method_id", session.MethodID,
		"focus_minutes", session.FocusMinutes,
	)

	writeJSON(w, http.StatusCreated, dto.ToSessionResponse(session))
}

// Summary handles GET /api/progress/summary.
// The summary is recomputed from the session log on every call.
func (h *ProgressHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID := authpkg.UserIDFromContext(r.Context())

	summary, err := h.svc.Summary(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to compute summary", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Server error")
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// handleProgressError maps service errors to HTTP responses.
func (h *ProgressHandler) handleProgressError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrMethodRequired), errors.Is(err, service.ErrFocusMinutesInvalid):
		writeError(w, http.StatusBadRequest, "MISSING_FIELDS", "methodId and focusMinutes required")
	case errors.Is(err, service.ErrUnknownMethod):
		writeError(w, http.StatusBadRequest, "UNKNOWN_METHOD", "Unknown study method")
	default:
		h.logger.Error("progress request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Server error")
	}
}
