package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/unai-a/MusicFlow/internal/widget"
)

// WidgetLoaded is posted by the embedding page once the external player API
// script has loaded.
func (h *Handler) WidgetLoaded(w http.ResponseWriter, r *http.Request) {
	h.Bridge.AnnounceLoaded()
	w.WriteHeader(http.StatusNoContent)
}

// WidgetCommands drains the pending command queue for the embedding page.
func (h *Handler) WidgetCommands(w http.ResponseWriter, r *http.Request) {
	cmds := h.Bridge.DrainCommands()
	if cmds == nil {
		cmds = []widget.Command{}
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"commands": cmds})
}

// WidgetEvents ingests readiness, state-change and telemetry events reported
// by the embedding page. Events for stale instances are dropped silently.
func (h *Handler) WidgetEvents(w http.ResponseWriter, r *http.Request) {
	var req struct {
		InstanceID string  `json:"instanceId"`
		Event      string  `json:"event"`
		Position   float64 `json:"position"`
		Duration   float64 `json:"duration"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	h.Bridge.HandleEvent(req.InstanceID, req.Event, req.Position, req.Duration)
	w.WriteHeader(http.StatusNoContent)
}
