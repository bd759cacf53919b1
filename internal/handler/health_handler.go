package handlers

import (
	"net/http"
)

func (h *Handlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.HealthCheck(); err != nil {
		WriteError(w, "База данных недоступна", http.StatusServiceUnavailable)
		return
	}

	WriteJSON(w, MessageResponse{Message: "ok"}, http.StatusOK)
}
