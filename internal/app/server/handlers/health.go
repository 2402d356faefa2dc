package handlers

import (
	"net/http"
	"travelbook/checkout-relay/internal/models"
)

const isoMillis = "2006-01-02T15:04:05.000Z07:00"

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, models.Health{
		Status:    "healthy",
		Timestamp: h.now().UTC().Format(isoMillis),
	})
}
