package handlers

import (
	"log/slog"
	"net/http"
	"travelbook/checkout-relay/internal/app/validation"
	"travelbook/checkout-relay/internal/models"
)

// HandleCancellation acknowledges a cancelled checkout. Nothing is stored.
func (h *Handlers) HandleCancellation(w http.ResponseWriter, r *http.Request) {
	var req models.CancellationRequest
	if err := h.decodeRequest(w, r, validation.CancellationSchema, &req); err != nil {
		h.respondRequestError(w, r, err)
		return
	}

	h.requestLogger(r).Info("checkout cancelled", slog.String("user_id", req.UserID), slog.Any("timestamp", req.Timestamp))

	RespondJSON(w, http.StatusOK, models.CancellationResponse{
		Success:   true,
		Message:   "Cancellation processed",
		UserID:    req.UserID,
		Timestamp: req.Timestamp,
	})
}
