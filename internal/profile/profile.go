package profile

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	auth "Pipeflow/internal/auth"
	repo "Pipeflow/internal/repo"
)

type ProfileHandler struct {
	Repo repo.Repository
}

// GetProfile returns the account of the signed-in user.
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFrom(r.Context())
	if !ok || userID == 0 {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	prof, err := h.Repo.GetProfileByID(r.Context(), userID)
	if errors.Is(err, repo.ErrUserNotFound) {
		http.Error(w, "Profile not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "load profile", "user_id", userID, "err", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(prof)
}
