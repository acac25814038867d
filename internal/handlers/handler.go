// Package handlers wires the HTTP API to the player store, the search
// service and the widget bridge.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/unai-a/MusicFlow/internal/logger"
	"github.com/unai-a/MusicFlow/internal/player"
	"github.com/unai-a/MusicFlow/internal/search"
	"github.com/unai-a/MusicFlow/internal/widget"
)

type Handler struct {
	Search  *search.Service
	Store   *player.Store
	Adapter *widget.Adapter
	Bridge  *widget.Bridge
	Log     *logger.Logger
}

func NewHandler(s *search.Service, store *player.Store, adapter *widget.Adapter, bridge *widget.Bridge, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Default()
	}
	return &Handler{
		Search:  s,
		Store:   store,
		Adapter: adapter,
		Bridge:  bridge,
		Log:     log.WithComponent("http"),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/api/search", h.SearchTracks)

	r.Route("/api/player", func(r chi.Router) {
		r.Get("/state", h.PlayerState)
		r.Post("/current", h.SetCurrentTrack)
		r.Post("/toggle", h.TogglePlayPause)
		r.Post("/volume", h.SetVolume)
		r.Post("/seek", h.Seek)
		r.Post("/next", h.PlayNext)
		r.Post("/previous", h.PlayPrevious)
		r.Post("/queue", h.AddToQueue)
		r.Post("/queue/clear", h.ClearQueue)
		r.Delete("/queue/{index}", h.RemoveFromQueue)
		r.Post("/queue/{index}/play", h.PlayFromQueue)
	})

	r.Route("/api/widget", func(r chi.Router) {
		r.Post("/loaded", h.WidgetLoaded)
		r.Get("/commands", h.WidgetCommands)
		r.Post("/events", h.WidgetEvents)
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.Log.Warn("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}
