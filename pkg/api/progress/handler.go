// Package progress exposes learner progress summaries and spreadsheet export.
package progress

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"

	"fintutor/pkg/api/auth"
	"fintutor/pkg/core/export"
	"fintutor/pkg/core/store"
)

// Handler holds dependencies for progress endpoints.
type Handler struct {
	progress  *store.ProgressStore
	exportDir string
}

func NewHandler(progress *store.ProgressStore, exportDir string) *Handler {
	if exportDir == "" {
		exportDir = "exports"
	}
	return &Handler{progress: progress, exportDir: exportDir}
}

// HandleSummary returns aggregate progress for a user.
func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	if r.Method != "GET" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID := r.URL.Query().Get("user_id")
	if u := auth.UserID(r); u != "" {
		userID = u
	}
	summary, err := h.progress.Summary(r.Context(), userID)
	if err != nil {
		http.Error(w, "failed to load progress", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(summary)
}

// HandleExport writes the user's progress workbook and serves it.
func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	if r.Method != "GET" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID := r.URL.Query().Get("user_id")
	if u := auth.UserID(r); u != "" {
		userID = u
	}
	summary, err := h.progress.Summary(r.Context(), userID)
	if err != nil {
		http.Error(w, "failed to load progress", http.StatusInternalServerError)
		return
	}

	if err := os.MkdirAll(h.exportDir, 0755); err != nil {
		http.Error(w, "failed to prepare export directory", http.StatusInternalServerError)
		return
	}
	name := userID
	if name == "" {
		name = "anonymous"
	}
	path := filepath.Join(h.exportDir, name+"_progress.xlsx")

	if err := export.WriteProgressWorkbook(path, []*store.ProgressSummary{summary}); err != nil {
		http.Error(w, "failed to write workbook", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+name+"_progress.xlsx\"")
	http.ServeFile(w, r, path)
}
