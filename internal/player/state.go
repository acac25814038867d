// Package player holds the playback queue state machine.
package player

import (
	"sync"

	"github.com/unai-a/MusicFlow/internal/constants"
	"github.com/unai-a/MusicFlow/internal/domain"
	"github.com/unai-a/MusicFlow/internal/logger"
)

// State is a point-in-time copy of the player state.
type State struct {
	CurrentTrack *domain.Track  `json:"currentTrack"`
	IsPlaying    bool           `json:"isPlaying"`
	Volume       float64        `json:"volume"`   // 0.0 to 1.0
	Progress     float64        `json:"progress"` // seconds
	Duration     float64        `json:"duration"` // seconds
	Queue        []domain.Track `json:"queue"`
	QueueIndex   int            `json:"queueIndex"` // -1 when nothing selected via the queue
}

// Store manages the player state and notifies listeners. All mutations are
// serialized under one mutex and applied in invocation order; a subset of the
// state is persisted asynchronously after every mutation that touches it.
type Store struct {
	mu        sync.RWMutex
	state     State
	listeners []chan State
	log       *logger.Logger

	persister Persister
	saves     chan Snapshot
	closed    bool
	wg        sync.WaitGroup
}

// New creates a player store. persister may be nil, in which case state is
// kept in memory only.
func New(persister Persister, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Default()
	}
	s := &Store{
		state: State{
			Volume:     constants.DefaultVolume,
			QueueIndex: -1,
		},
		log:       log.WithComponent("player"),
		persister: persister,
		saves:     make(chan Snapshot, 1),
	}
	if persister != nil {
		s.wg.Add(1)
		go s.persistLoop()
	}
	return s
}

// State returns a copy of the current player state (thread-safe).
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyStateLocked()
}

func (s *Store) copyStateLocked() State {
	cp := s.state
	cp.Queue = append([]domain.Track(nil), s.state.Queue...)
	return cp
}

// SetCurrentTrack plays a track directly. The queue and index are left
// untouched, so an ad-hoc track may temporarily desync from the queue.
func (s *Store) SetCurrentTrack(t domain.Track) {
	s.mu.Lock()
	defer s.mu.Unlock()

	track := t
	s.state.CurrentTrack = &track
	s.state.IsPlaying = true
	s.state.Progress = 0
	s.afterMutationLocked(true)
}

// SetIsPlaying overwrites the transport flag. Used both by user intent and by
// widget state-change feedback; last write wins.
func (s *Store) SetIsPlaying(isPlaying bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.IsPlaying = isPlaying
	s.afterMutationLocked(false)
}

// TogglePlayPause flips the transport flag.
func (s *Store) TogglePlayPause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.IsPlaying = !s.state.IsPlaying
	s.afterMutationLocked(false)
}

// SetVolume clamps the input into [0,1].
func (s *Store) SetVolume(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	s.state.Volume = v
	s.afterMutationLocked(true)
}

// SetProgress records the last known playback position. Called by the widget
// adapter; not authoritative until the widget reports it.
func (s *Store) SetProgress(seconds float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Progress = seconds
	s.afterMutationLocked(false)
}

// SetDuration records the last known total duration.
func (s *Store) SetDuration(seconds float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Duration = seconds
	s.afterMutationLocked(false)
}

// AddToQueue appends a track, de-duplicating by video id. When nothing is
// playing the track becomes current and playback starts.
func (s *Store) AddToQueue(t domain.Track) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.CurrentTrack == nil {
		track := t
		s.state.Queue = []domain.Track{t}
		s.state.QueueIndex = 0
		s.state.CurrentTrack = &track
		s.state.IsPlaying = true
		s.state.Progress = 0
		s.afterMutationLocked(true)
		return
	}

	for _, existing := range s.state.Queue {
		if existing.Same(t) {
			return
		}
	}
	s.state.Queue = append(s.state.Queue, t)
	s.afterMutationLocked(true)
}

// RemoveFromQueue removes the element at index, re-establishing the
// queue/index invariant. Out-of-range indices are silently ignored.
func (s *Store) RemoveFromQueue(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.state.Queue) {
		return
	}

	s.state.Queue = append(s.state.Queue[:index], s.state.Queue[index+1:]...)

	switch {
	case index < s.state.QueueIndex:
		s.state.QueueIndex--
	case index == s.state.QueueIndex:
		if len(s.state.Queue) > 0 {
			if s.state.QueueIndex > len(s.state.Queue)-1 {
				s.state.QueueIndex = len(s.state.Queue) - 1
			}
			track := s.state.Queue[s.state.QueueIndex]
			s.state.CurrentTrack = &track
		} else {
			s.state.QueueIndex = -1
			s.state.CurrentTrack = nil
			s.state.IsPlaying = false
		}
	}
	s.afterMutationLocked(true)
}

// ClearQueue empties the queue and stops playback.
func (s *Store) ClearQueue() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Queue = nil
	s.state.QueueIndex = -1
	s.state.CurrentTrack = nil
	s.state.IsPlaying = false
	s.state.Progress = 0
	s.afterMutationLocked(true)
}

// PlayNext advances to the next queued track; no-op at the end of the queue.
func (s *Store) PlayNext() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.QueueIndex >= len(s.state.Queue)-1 {
		return
	}
	s.selectLocked(s.state.QueueIndex + 1)
}

// PlayPrevious steps back to the previous queued track; no-op at index 0.
func (s *Store) PlayPrevious() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.QueueIndex <= 0 {
		return
	}
	s.selectLocked(s.state.QueueIndex - 1)
}

// PlayFromQueue jumps to an arbitrary queue position; out-of-range is a no-op.
func (s *Store) PlayFromQueue(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.state.Queue) {
		return
	}
	s.selectLocked(index)
}

func (s *Store) selectLocked(index int) {
	track := s.state.Queue[index]
	s.state.QueueIndex = index
	s.state.CurrentTrack = &track
	s.state.IsPlaying = true
	s.state.Progress = 0
	s.afterMutationLocked(true)
}

// Subscribe adds a listener for state changes. The channel receives state
// copies; slow listeners are dropped.
func (s *Store) Subscribe() <-chan State {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan State, 16)
	s.listeners = append(s.listeners, ch)
	return ch
}

// Unsubscribe removes a listener and closes its channel.
func (s *Store) Unsubscribe(ch <-chan State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, listener := range s.listeners {
		if listener == ch {
			close(listener)
			s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
			return
		}
	}
}

// afterMutationLocked notifies listeners and, when the mutation touched a
// persisted field, queues an asynchronous snapshot write. Must be called with
// the lock held.
func (s *Store) afterMutationLocked(persist bool) {
	s.notifyLocked()
	if persist {
		s.queuePersistLocked()
	}
}

func (s *Store) notifyLocked() {
	if len(s.listeners) == 0 {
		return
	}
	cp := s.copyStateLocked()
	kept := s.listeners[:0]
	for _, listener := range s.listeners {
		select {
		case listener <- cp:
			kept = append(kept, listener)
		default:
			// Listener fell behind; drop it rather than block mutations.
			close(listener)
		}
	}
	s.listeners = kept
}
