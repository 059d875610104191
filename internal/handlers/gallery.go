package handlers

import (
	"net/http"

	"media-reel/internal/logging"
)

const galleryErrorMessage = "Failed to read gallery"

// GetGallery scans the media directory and returns the gallery payload.
// Missing or unreadable categories yield empty rows; only a failure of the
// media root itself is reported as an error.
func (h *Handlers) GetGallery(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")

	g, err := h.indexer.Build(r.Context())
	if err != nil {
		logging.Error("Gallery build failed: %v", err)
		writeJSONError(w, galleryErrorMessage, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if r.Method == http.MethodHead {
		return
	}
	writeJSON(w, g)
}
