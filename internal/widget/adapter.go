package widget

import (
	"context"
	"sync"
	"time"

	"github.com/unai-a/MusicFlow/internal/constants"
	"github.com/unai-a/MusicFlow/internal/logger"
	"github.com/unai-a/MusicFlow/internal/player"
)

// Adapter owns the lifecycle of exactly one widget instance bound to the
// current track. It relays transport intent from the store to the widget,
// relays widget state changes back into the store, and polls playback
// position while playing. Feedback is last-write-wins; no causal ordering is
// enforced between a user command and a later contradicting callback.
type Adapter struct {
	store   *player.Store
	factory Factory
	log     *logger.Logger
	events  chan Event

	// guarded by mu so Seek can be called from request goroutines
	mu         sync.Mutex
	instance   Instance
	instanceID string
	ready      bool

	// loop-local
	currentID string
	apiReady  bool
	last      player.State
}

func NewAdapter(store *player.Store, factory Factory, log *logger.Logger) *Adapter {
	if log == nil {
		log = logger.Default()
	}
	return &Adapter{
		store:   store,
		factory: factory,
		log:     log.WithComponent("widget"),
		events:  make(chan Event, constants.EventBuffer),
	}
}

// Events returns the channel widget implementations push callbacks into.
func (a *Adapter) Events() chan<- Event {
	return a.events
}

// Run drives the adapter loop until ctx is cancelled. The widget instance is
// destroyed on every exit path.
func (a *Adapter) Run(ctx context.Context) {
	updates := a.store.Subscribe()
	defer a.store.Unsubscribe(updates)
	defer a.destroyInstance()

	ticker := time.NewTicker(constants.PollInterval)
	defer ticker.Stop()

	a.last = a.store.State()
	apiReady := a.factory.Ready()

	for {
		select {
		case <-ctx.Done():
			return

		case <-apiReady:
			// one-shot: nil the channel so the closed channel does not spin
			apiReady = nil
			a.apiReady = true
			a.log.Info("external player API ready")
			a.syncTrack(a.last)

		case st, ok := <-updates:
			if !ok {
				return
			}
			a.applyState(st)

		case ev := <-a.events:
			a.handleEvent(ev)

		case <-ticker.C:
			a.poll()
		}
	}
}

// applyState diffs the new store state against the last observed one and
// issues the corresponding widget commands.
func (a *Adapter) applyState(st player.State) {
	prev := a.last
	a.last = st

	a.syncTrack(st)

	a.mu.Lock()
	inst, ready := a.instance, a.ready
	a.mu.Unlock()
	if inst == nil || !ready {
		return
	}

	if st.IsPlaying != prev.IsPlaying {
		var err error
		if st.IsPlaying {
			err = inst.Play()
		} else {
			err = inst.Pause()
		}
		if err != nil && err != ErrNotReady {
			a.log.Warn("transport command failed", "error", err)
		}
	}

	if st.Volume != prev.Volume {
		if err := inst.SetVolume(st.Volume); err != nil && err != ErrNotReady {
			a.log.Warn("volume push failed", "error", err)
		}
	}
}

// syncTrack recreates the widget instance when the current track's video id
// changes. Destroying first guarantees at most one live instance.
func (a *Adapter) syncTrack(st player.State) {
	var want string
	if st.CurrentTrack != nil {
		want = st.CurrentTrack.VideoID
	}

	a.mu.Lock()
	have := a.instance != nil
	a.mu.Unlock()

	if want == a.currentID && (want == "" || have || !a.apiReady) {
		return
	}

	a.destroyInstance()
	a.currentID = want
	if want == "" || !a.apiReady {
		return
	}

	inst, id, err := a.factory.New(want, Options{}, a.events)
	if err != nil {
		a.log.Warn("failed to create widget instance", "video_id", want, "error", err)
		return
	}
	a.mu.Lock()
	a.instance = inst
	a.instanceID = id
	a.ready = false
	a.mu.Unlock()
	a.log.Debug("widget instance created", "video_id", want, "instance_id", id)
}

// handleEvent relays a widget callback into the store. Events from abandoned
// instances are dropped, which is what cancels an in-flight initialization.
func (a *Adapter) handleEvent(ev Event) {
	a.mu.Lock()
	current := a.instanceID
	a.mu.Unlock()
	if ev.InstanceID != current || current == "" {
		return
	}

	switch ev.Kind {
	case EventReady:
		a.mu.Lock()
		a.ready = true
		inst := a.instance
		a.mu.Unlock()

		st := a.store.State()
		if err := inst.SetVolume(st.Volume); err != nil && err != ErrNotReady {
			a.log.Warn("volume push failed", "error", err)
		}
		// respect the current transport flag; never force playback on
		var err error
		if st.IsPlaying {
			err = inst.Play()
		} else {
			err = inst.Pause()
		}
		if err != nil && err != ErrNotReady {
			a.log.Warn("transport command failed", "error", err)
		}

	case EventPlaying:
		a.store.SetIsPlaying(true)
	case EventPaused:
		a.store.SetIsPlaying(false)
	case EventEnded:
		a.store.PlayNext()
	}
}

// poll reads position and duration while playing. Best-effort telemetry;
// read failures are swallowed and retried next tick.
func (a *Adapter) poll() {
	a.mu.Lock()
	inst, ready := a.instance, a.ready
	a.mu.Unlock()
	if inst == nil || !ready || !a.last.IsPlaying {
		return
	}

	position, err := inst.CurrentTime()
	if err != nil {
		return
	}
	duration, err := inst.Duration()
	if err != nil {
		return
	}
	a.store.SetProgress(position)
	a.store.SetDuration(duration)
}

// Seek sets the playback position on the live instance and reflects it in
// the store immediately. No-op when no instance is ready.
func (a *Adapter) Seek(seconds float64) {
	a.mu.Lock()
	inst, ready := a.instance, a.ready
	a.mu.Unlock()
	if inst == nil || !ready {
		return
	}
	if err := inst.SeekTo(seconds); err != nil {
		return
	}
	a.store.SetProgress(seconds)
}

func (a *Adapter) destroyInstance() {
	a.mu.Lock()
	inst := a.instance
	a.instance = nil
	a.instanceID = ""
	a.ready = false
	a.mu.Unlock()
	if inst != nil {
		inst.Destroy()
	}
}
