package handlers

import (
	"fmt"
	"net/http"
)

func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	RespondError(w, http.StatusNotFound, fmt.Sprintf("Route not found: %s %s", r.Method, r.URL.Path))
}
