package widget

import (
	"sync"

	"github.com/google/uuid"

	"github.com/unai-a/MusicFlow/internal/logger"
)

// Command is one imperative widget operation queued for the embedding client.
type Command struct {
	ID         string  `json:"id"`
	InstanceID string  `json:"instanceId"`
	Action     string  `json:"action"` // load, play, pause, seek, volume, destroy
	VideoID    string  `json:"videoId,omitempty"`
	Value      float64 `json:"value,omitempty"`
	Options    Options `json:"options,omitzero"`
}

// Bridge is a Factory/Instance implementation backed by the HTTP API: the
// page hosting the actual embeddable player drains queued commands and posts
// readiness, state-change and telemetry events back. The adapter never knows
// the widget lives on the far side of a request cycle.
type Bridge struct {
	log *logger.Logger

	readyOnce sync.Once
	readyCh   chan struct{}

	mu       sync.Mutex
	commands []Command
	events   chan<- Event
	current  *bridgeInstance
}

func NewBridge(log *logger.Logger) *Bridge {
	if log == nil {
		log = logger.Default()
	}
	return &Bridge{
		log:     log.WithComponent("bridge"),
		readyCh: make(chan struct{}),
	}
}

// Ready is closed once the client announces the external player API loaded.
func (b *Bridge) Ready() <-chan struct{} {
	return b.readyCh
}

// AnnounceLoaded marks the external API as loaded. Idempotent.
func (b *Bridge) AnnounceLoaded() {
	b.readyOnce.Do(func() { close(b.readyCh) })
}

func (b *Bridge) New(videoID string, opts Options, events chan<- Event) (Instance, string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := uuid.New().String()
	inst := &bridgeInstance{bridge: b, id: id}
	b.current = inst
	b.events = events
	b.pushLocked(Command{InstanceID: id, Action: "load", VideoID: videoID, Options: opts})
	return inst, id, nil
}

// DrainCommands returns and clears the pending command queue.
func (b *Bridge) DrainCommands() []Command {
	b.mu.Lock()
	defer b.mu.Unlock()
	cmds := b.commands
	b.commands = nil
	return cmds
}

// HandleEvent ingests a client-reported event. Events for anything but the
// live instance are dropped silently.
func (b *Bridge) HandleEvent(instanceID, kind string, position, duration float64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.current == nil || b.current.id != instanceID {
		return
	}

	switch kind {
	case "ready":
		b.current.ready = true
		b.emitLocked(Event{InstanceID: instanceID, Kind: EventReady})
	case "playing":
		b.emitLocked(Event{InstanceID: instanceID, Kind: EventPlaying})
	case "paused":
		b.emitLocked(Event{InstanceID: instanceID, Kind: EventPaused})
	case "ended":
		b.emitLocked(Event{InstanceID: instanceID, Kind: EventEnded})
	case "progress":
		b.current.position = position
		b.current.duration = duration
	default:
		b.log.Debug("unknown widget event", "kind", kind)
	}
}

func (b *Bridge) pushLocked(cmd Command) {
	cmd.ID = uuid.New().String()
	b.commands = append(b.commands, cmd)
}

func (b *Bridge) emitLocked(ev Event) {
	if b.events == nil {
		return
	}
	select {
	case b.events <- ev:
	default:
		b.log.Warn("widget event dropped, channel full", "kind", ev.Kind)
	}
}

// bridgeInstance is the server-side handle for the client-hosted widget.
// Position and duration are whatever the client last reported.
type bridgeInstance struct {
	bridge   *Bridge
	id       string
	ready    bool
	position float64
	duration float64
}

func (i *bridgeInstance) command(action string, value float64) error {
	b := i.bridge
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.current != i || !i.ready {
		return ErrNotReady
	}
	b.pushLocked(Command{InstanceID: i.id, Action: action, Value: value})
	return nil
}

func (i *bridgeInstance) Play() error                  { return i.command("play", 0) }
func (i *bridgeInstance) Pause() error                 { return i.command("pause", 0) }
func (i *bridgeInstance) SeekTo(seconds float64) error { return i.command("seek", seconds) }
func (i *bridgeInstance) SetVolume(v float64) error    { return i.command("volume", v) }

func (i *bridgeInstance) CurrentTime() (float64, error) {
	b := i.bridge
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current != i || !i.ready {
		return 0, ErrNotReady
	}
	return i.position, nil
}

func (i *bridgeInstance) Duration() (float64, error) {
	b := i.bridge
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current != i || !i.ready {
		return 0, ErrNotReady
	}
	return i.duration, nil
}

func (i *bridgeInstance) Destroy() {
	b := i.bridge
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current != i {
		return
	}
	b.pushLocked(Command{InstanceID: i.id, Action: "destroy"})
	b.current = nil
}
