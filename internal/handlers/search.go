package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/unai-a/MusicFlow/internal/domain"
	"github.com/unai-a/MusicFlow/internal/search"
)

// SearchTracks handles POST /api/search with a JSON body {"query": "..."}.
// Only an empty or missing query is the caller's fault; everything else
// degrades to fewer (possibly zero) results.
func (h *Handler) SearchTracks(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Query is required")
		return
	}

	tracks, err := h.Search.Search(r.Context(), req.Query)
	if err != nil {
		if errors.Is(err, search.ErrEmptyQuery) {
			h.writeError(w, http.StatusBadRequest, "Query is required")
			return
		}
		h.Log.Error("search failed", "query", req.Query, "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to search for videos")
		return
	}

	if tracks == nil {
		tracks = []domain.Track{}
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"results": tracks})
}
