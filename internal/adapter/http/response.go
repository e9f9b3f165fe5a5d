package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"creator-crm/internal/core/port"
)

// envelope is the response shape shared by every endpoint. Mutations report
// {success, message, data}; removals additionally carry action and note;
// failures report {success:false, error}.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Action  string `json:"action,omitempty"`
	Note    string `json:"note,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

// writeError maps the engine's error taxonomy onto HTTP statuses. Store
// failures are logged with detail but surface a generic message.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validation *port.ValidationError
		storeErr   *port.StoreError
	)
	switch {
	case errors.As(err, &validation):
		h.writeJSON(w, http.StatusBadRequest, envelope{Success: false, Error: validation.Error()})
	case errors.Is(err, port.ErrCampaignNotFound),
		errors.Is(err, port.ErrSlotNotFound),
		errors.Is(err, port.ErrCreatorNotFound):
		h.writeJSON(w, http.StatusNotFound, envelope{Success: false, Error: err.Error()})
	case errors.As(err, &storeErr):
		h.logger.Error("store error", slog.String("path", r.URL.Path), slog.Any("error", err))
		h.writeJSON(w, http.StatusInternalServerError, envelope{Success: false, Error: "store write failed"})
	default:
		h.logger.Error("internal error", slog.String("path", r.URL.Path), slog.Any("error", err))
		h.writeJSON(w, http.StatusInternalServerError, envelope{Success: false, Error: "internal error"})
	}
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.writeJSON(w, http.StatusBadRequest, envelope{Success: false, Error: "invalid JSON"})
		return false
	}
	return true
}
