package importer

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

const MaxUploadSize = 10 << 20 // 10MB

type Handler struct{}

// Colebrook solves an uploaded workbook. The response is JSON unless
// ?format=xlsx asks for the workbook back with results filled in.
func (h *Handler) Colebrook(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	rep, err := Read(file)
	if err != nil {
		slog.WarnContext(r.Context(), "workbook import rejected", "err", err)
		http.Error(w, "Invalid file", http.StatusBadRequest)
		return
	}

	if r.URL.Query().Get("format") == "xlsx" {
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename=\"friction-factors.xlsx\"")
		if err := Write(w, rep); err != nil {
			slog.ErrorContext(r.Context(), "workbook export failed", "err", err)
			http.Error(w, "Export error", http.StatusInternalServerError)
		}
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rep)
}
