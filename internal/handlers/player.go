package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/unai-a/MusicFlow/internal/domain"
	"github.com/unai-a/MusicFlow/internal/media"
)

// PlayerState returns the full player state.
func (h *Handler) PlayerState(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.Store.State())
}

// SetCurrentTrack plays a track directly, outside the queue.
func (h *Handler) SetCurrentTrack(w http.ResponseWriter, r *http.Request) {
	track, ok := h.decodeTrack(w, r)
	if !ok {
		return
	}
	h.Store.SetCurrentTrack(track)
	h.writeJSON(w, http.StatusOK, h.Store.State())
}

// TogglePlayPause flips the transport flag.
func (h *Handler) TogglePlayPause(w http.ResponseWriter, r *http.Request) {
	h.Store.TogglePlayPause()
	h.writeJSON(w, http.StatusOK, h.Store.State())
}

// SetVolume clamps and applies the requested volume.
func (h *Handler) SetVolume(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Volume float64 `json:"volume"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	h.Store.SetVolume(req.Volume)
	h.writeJSON(w, http.StatusOK, h.Store.State())
}

// Seek forwards a seek intent to the widget adapter.
func (h *Handler) Seek(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Position float64 `json:"position"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Position < 0 {
		req.Position = 0
	}
	h.Adapter.Seek(req.Position)
	h.writeJSON(w, http.StatusOK, h.Store.State())
}

func (h *Handler) PlayNext(w http.ResponseWriter, r *http.Request) {
	h.Store.PlayNext()
	h.writeJSON(w, http.StatusOK, h.Store.State())
}

func (h *Handler) PlayPrevious(w http.ResponseWriter, r *http.Request) {
	h.Store.PlayPrevious()
	h.writeJSON(w, http.StatusOK, h.Store.State())
}

// AddToQueue appends a track; duplicates by video id are ignored.
func (h *Handler) AddToQueue(w http.ResponseWriter, r *http.Request) {
	track, ok := h.decodeTrack(w, r)
	if !ok {
		return
	}
	h.Store.AddToQueue(track)
	h.writeJSON(w, http.StatusOK, h.Store.State())
}

func (h *Handler) ClearQueue(w http.ResponseWriter, r *http.Request) {
	h.Store.ClearQueue()
	h.writeJSON(w, http.StatusOK, h.Store.State())
}

// RemoveFromQueue removes the element at {index}. Out-of-range indices are a
// silent no-op; only a non-numeric index is rejected.
func (h *Handler) RemoveFromQueue(w http.ResponseWriter, r *http.Request) {
	index, ok := h.queueIndex(w, r)
	if !ok {
		return
	}
	h.Store.RemoveFromQueue(index)
	h.writeJSON(w, http.StatusOK, h.Store.State())
}

func (h *Handler) PlayFromQueue(w http.ResponseWriter, r *http.Request) {
	index, ok := h.queueIndex(w, r)
	if !ok {
		return
	}
	h.Store.PlayFromQueue(index)
	h.writeJSON(w, http.StatusOK, h.Store.State())
}

func (h *Handler) queueIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid queue index")
		return 0, false
	}
	return index, true
}

func (h *Handler) decodeTrack(w http.ResponseWriter, r *http.Request) (domain.Track, bool) {
	var req struct {
		Track domain.Track `json:"track"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid JSON")
		return domain.Track{}, false
	}
	if !media.ValidVideoID(req.Track.VideoID) {
		h.writeError(w, http.StatusBadRequest, "Invalid video id")
		return domain.Track{}, false
	}
	if req.Track.Thumbnail == "" {
		req.Track.Thumbnail = media.ThumbnailURL(req.Track.VideoID)
	}
	return req.Track, true
}
