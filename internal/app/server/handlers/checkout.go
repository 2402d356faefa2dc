package handlers

import (
	"log/slog"
	"net/http"
	"travelbook/checkout-relay/internal/app/validation"
	"travelbook/checkout-relay/internal/models"
)

func (h *Handlers) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	var req models.CheckoutRequest
	if err := h.decodeRequest(w, r, validation.CheckoutSchema, &req); err != nil {
		h.respondRequestError(w, r, err)
		return
	}

	logger := h.requestLogger(r).With(slog.String("user_id", req.UserID), slog.String("type", req.Type))

	sessionReq, err := h.builder.Build(&req, r.Header.Get("Origin"))
	if err != nil {
		logger.Warn("failed to build checkout session", slog.Any("err", err))
		RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	session, err := h.processor.CreateSession(r.Context(), sessionReq)
	if err != nil {
		logger.Error("failed to create checkout session", slog.Any("err", err))
		RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("checkout session created",
		slog.String("session_id", session.ID),
		slog.Int("line_items", len(sessionReq.LineItems)))

	RespondJSON(w, http.StatusOK, models.CheckoutResponse{
		ID:        session.ID,
		Timestamp: sessionReq.Timestamp,
		Success:   true,
	})
}

func (h *Handlers) CheckoutMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	RespondError(w, http.StatusMethodNotAllowed, "GET method not allowed. Use POST to create a checkout session.")
}
