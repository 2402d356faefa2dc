package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"travelbook/checkout-relay/internal/app/validation"
	"travelbook/checkout-relay/internal/models"

	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5/middleware"
)

const maxBodySize = 1 << 20

var errMalformedBody = errors.New("request body is malformed")

func RespondJSON(w http.ResponseWriter, status int, payload any) {
	data, err := sonic.Marshal(payload)
	if err != nil {
		slog.Error("failed to encode response", slog.Any("err", err))
		status = http.StatusInternalServerError
		data = []byte(`{"error":"failed to encode response","success":false}`)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}

// RespondError writes the error envelope every failing route answers with.
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, models.ErrorResponse{
		Error:   message,
		Success: false,
	})
}

// decodeRequest validates the raw body against schema before decoding it
// into dst, so handlers only ever see well-formed input.
func (h *Handlers) decodeRequest(w http.ResponseWriter, r *http.Request, schema validation.Schema, dst any) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("%w: %v", errMalformedBody, err)
	}

	if err := h.validator.Validate(schema, body); err != nil {
		return err
	}

	if err := sonic.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: %v", errMalformedBody, err)
	}

	return nil
}

func (h *Handlers) respondRequestError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, validation.ErrMissingField):
		h.requestLogger(r).Warn("rejected request", slog.String("reason", err.Error()))
		RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, errMalformedBody):
		h.requestLogger(r).Warn("rejected malformed request", slog.Any("err", err))
		RespondError(w, http.StatusBadRequest, errMalformedBody.Error())
	default:
		h.requestLogger(r).Error("failed to read request", slog.Any("err", err))
		RespondError(w, http.StatusInternalServerError, err.Error())
	}
}

func (h *Handlers) requestLogger(r *http.Request) *slog.Logger {
	return h.logger.With(slog.String("request_id", middleware.GetReqID(r.Context())))
}
