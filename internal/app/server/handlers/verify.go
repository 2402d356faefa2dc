package handlers

import (
	"log/slog"
	"net/http"
	"travelbook/checkout-relay/internal/app/checkout"
	"travelbook/checkout-relay/internal/app/validation"
	"travelbook/checkout-relay/internal/models"
)

func (h *Handlers) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyRequest
	if err := h.decodeRequest(w, r, validation.VerifySchema, &req); err != nil {
		h.respondRequestError(w, r, err)
		return
	}

	logger := h.requestLogger(r).With(slog.String("session_id", req.SessionID))

	session, err := h.processor.GetSession(r.Context(), req.SessionID)
	if err != nil {
		logger.Error("failed to verify payment", slog.Any("err", err))
		RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	metadata := session.Metadata
	if metadata == nil {
		metadata = map[string]string{}
	}

	if session.PaymentStatus != models.PaymentStatusPaid {
		logger.Info("payment not completed", slog.String("status", session.PaymentStatus))
		RespondJSON(w, http.StatusOK, models.VerifyResponse{
			Paid:     false,
			Status:   session.PaymentStatus,
			Metadata: metadata,
			Success:  true,
		})
		return
	}

	amount := checkout.ToMajorUnits(session.AmountTotal)
	resp := models.VerifyResponse{
		Paid:     true,
		Amount:   &amount,
		Metadata: metadata,
		Success:  true,
	}
	if session.CustomerID != "" {
		resp.CustomerID = &session.CustomerID
	}

	logger.Info("payment verified", slog.Int64("amount_total", session.AmountTotal))
	RespondJSON(w, http.StatusOK, resp)
}
