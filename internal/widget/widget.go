// Package widget bridges the player store to an external, asynchronously
// loaded playback widget.
package widget

import "errors"

// ErrNotReady is returned by imperative widget calls issued before the
// instance has signaled readiness. Callers swallow it and retry on the next
// tick or state change.
var ErrNotReady = errors.New("widget not ready")

// EventKind identifies a widget callback.
type EventKind string

const (
	EventReady   EventKind = "ready"
	EventPlaying EventKind = "playing"
	EventPaused  EventKind = "paused"
	EventEnded   EventKind = "ended"
)

// Event is a widget callback relayed to the adapter loop. InstanceID lets
// the adapter drop events from instances it has already abandoned.
type Event struct {
	InstanceID string
	Kind       EventKind
}

// Options are the construction flags for a widget instance. The zero value
// disables autoplay, visible controls, keyboard input, fullscreen and
// related-content, which is the only configuration the player uses.
type Options struct {
	Autoplay   bool
	Controls   bool
	Keyboard   bool
	Fullscreen bool
	Related    bool
}

// Instance is a live widget bound to one video id. All commands are
// fire-and-forget; state feedback arrives later as Events.
type Instance interface {
	Play() error
	Pause() error
	SeekTo(seconds float64) error
	SetVolume(volume float64) error
	CurrentTime() (float64, error)
	Duration() (float64, error)
	Destroy()
}

// Factory constructs widget instances once the external player API has
// loaded. New returns the instance and its generated id; events emitted by
// the instance are pushed into the supplied channel tagged with that id.
type Factory interface {
	// Ready is closed when the external API finishes its asynchronous load.
	Ready() <-chan struct{}
	New(videoID string, opts Options, events chan<- Event) (Instance, string, error)
}
