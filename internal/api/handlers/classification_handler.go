package handlers

import (
	"net/http"

	"github.com/leafguard/leafguard-be/internal/services"
)

// ClassificationHandler serves the read-only analytics endpoints backed by
// classification records.
type ClassificationHandler struct {
	classifications services.ClassificationServiceProvider
}

// NewClassificationHandler creates a new ClassificationHandler.
func NewClassificationHandler(classifications services.ClassificationServiceProvider) *ClassificationHandler {
	return &ClassificationHandler{classifications: classifications}
}

// List returns every classification record.
func (h *ClassificationHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.classifications.List(r.Context())
	if err != nil {
		writeServiceError(w, err, "Error fetching classifications")
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// Summary returns the total/healthy/unhealthy counts.
func (h *ClassificationHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.classifications.Summary(r.Context())
	if err != nil {
		writeServiceError(w, err, "Error fetching summary")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// RecentUploads returns the five most recent records, newest first.
func (h *ClassificationHandler) RecentUploads(w http.ResponseWriter, r *http.Request) {
	uploads, err := h.classifications.RecentUploads(r.Context())
	if err != nil {
		writeServiceError(w, err, "Error fetching recent uploads")
		return
	}
	writeJSON(w, http.StatusOK, uploads)
}
