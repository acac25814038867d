package widget

import (
	"sync"

	"github.com/google/uuid"
)

// FakeFactory is an in-process widget double used by tests. Tests control
// when the external API "loads" and when each instance signals readiness or
// state changes.
type FakeFactory struct {
	mu        sync.Mutex
	readyCh   chan struct{}
	readyOnce sync.Once
	instances []*FakeInstance

	// NewErr, when set, makes New fail.
	NewErr error
}

func NewFakeFactory() *FakeFactory {
	return &FakeFactory{readyCh: make(chan struct{})}
}

// SignalAPIReady simulates the external script finishing its load.
func (f *FakeFactory) SignalAPIReady() {
	f.readyOnce.Do(func() { close(f.readyCh) })
}

func (f *FakeFactory) Ready() <-chan struct{} {
	return f.readyCh
}

func (f *FakeFactory) New(videoID string, opts Options, events chan<- Event) (Instance, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.NewErr != nil {
		return nil, "", f.NewErr
	}
	inst := &FakeInstance{
		ID:      uuid.New().String(),
		VideoID: videoID,
		Opts:    opts,
		events:  events,
	}
	f.instances = append(f.instances, inst)
	return inst, inst.ID, nil
}

// Instances returns every instance created so far, in creation order.
func (f *FakeFactory) Instances() []*FakeInstance {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*FakeInstance(nil), f.instances...)
}

// FakeInstance records the commands it receives.
type FakeInstance struct {
	ID      string
	VideoID string
	Opts    Options

	mu        sync.Mutex
	ready     bool
	destroyed bool
	playing   bool
	volume    float64
	position  float64
	duration  float64
	plays     int
	pauses    int
	seeks     []float64

	events chan<- Event
}

// EmitReady marks the instance ready and delivers the ready callback.
func (i *FakeInstance) EmitReady() {
	i.mu.Lock()
	i.ready = true
	i.mu.Unlock()
	i.events <- Event{InstanceID: i.ID, Kind: EventReady}
}

// Emit delivers an arbitrary state-change callback.
func (i *FakeInstance) Emit(kind EventKind) {
	i.events <- Event{InstanceID: i.ID, Kind: kind}
}

// SetClock sets the position/duration the next poll will observe.
func (i *FakeInstance) SetClock(position, duration float64) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.position = position
	i.duration = duration
}

func (i *FakeInstance) guard() error {
	if !i.ready || i.destroyed {
		return ErrNotReady
	}
	return nil
}

func (i *FakeInstance) Play() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if err := i.guard(); err != nil {
		return err
	}
	i.playing = true
	i.plays++
	return nil
}

func (i *FakeInstance) Pause() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if err := i.guard(); err != nil {
		return err
	}
	i.playing = false
	i.pauses++
	return nil
}

func (i *FakeInstance) SeekTo(seconds float64) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if err := i.guard(); err != nil {
		return err
	}
	i.position = seconds
	i.seeks = append(i.seeks, seconds)
	return nil
}

func (i *FakeInstance) SetVolume(volume float64) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.destroyed {
		return ErrNotReady
	}
	i.volume = volume
	return nil
}

func (i *FakeInstance) CurrentTime() (float64, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if err := i.guard(); err != nil {
		return 0, err
	}
	return i.position, nil
}

func (i *FakeInstance) Duration() (float64, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if err := i.guard(); err != nil {
		return 0, err
	}
	return i.duration, nil
}

func (i *FakeInstance) Destroy() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.destroyed = true
}

// Destroyed reports whether Destroy was called.
func (i *FakeInstance) Destroyed() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.destroyed
}

// Playing reports the last transport command the instance saw.
func (i *FakeInstance) Playing() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.playing
}

// Volume returns the last pushed volume.
func (i *FakeInstance) Volume() float64 {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.volume
}

// Seeks returns every seek target received.
func (i *FakeInstance) Seeks() []float64 {
	i.mu.Lock()
	defer i.mu.Unlock()
	return append([]float64(nil), i.seeks...)
}
