package report

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	colebrook "Pipeflow/internal/calc/colebrook"
)

type Handler struct{}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := colebrook.Calculate(input.Case)
	if err != nil {
		slog.WarnContext(r.Context(), "report calculation failed", "project", input.Project, "err", err)
		http.Error(w, "Calculation error", http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	if err := Render(&buf, input, res, time.Now()); err != nil {
		slog.ErrorContext(r.Context(), "report rendering failed", "err", err)
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"report.pdf\"")
	w.Write(buf.Bytes())
}
