package batch

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type Handler struct{}

func (h *Handler) Colebrook(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Calculate(input)
	if err != nil {
		slog.WarnContext(r.Context(), "batch calculation failed", "items", len(input.Items), "err", err)
		http.Error(w, "Calculation error", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
