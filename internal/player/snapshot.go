package player

import "github.com/unai-a/MusicFlow/internal/domain"

// Snapshot is the persisted subset of the player state. It is written after
// every mutation that touches one of its fields and read once at startup.
type Snapshot struct {
	Queue        []domain.Track `json:"queue"`
	QueueIndex   int            `json:"queueIndex"`
	CurrentTrack *domain.Track  `json:"currentTrack"`
	Volume       float64        `json:"volume"`
}

// Persister stores snapshots durably. Writes are best-effort and
// non-transactional; a crash between a mutation and its write loses that
// increment.
type Persister interface {
	SaveState(Snapshot) error
}

// Restore applies a previously persisted snapshot. Invalid fields are
// normalized instead of rejected so a damaged snapshot never blocks startup.
func (s *Store) Restore(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Queue = append([]domain.Track(nil), snap.Queue...)
	s.state.QueueIndex = snap.QueueIndex
	if s.state.QueueIndex < -1 || s.state.QueueIndex >= len(s.state.Queue) {
		s.state.QueueIndex = -1
	}
	if snap.CurrentTrack != nil {
		track := *snap.CurrentTrack
		s.state.CurrentTrack = &track
	} else {
		s.state.CurrentTrack = nil
	}
	switch {
	case snap.Volume < 0:
		s.state.Volume = 0
	case snap.Volume > 1:
		s.state.Volume = 1
	default:
		s.state.Volume = snap.Volume
	}
	s.notifyLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{
		Queue:      append([]domain.Track(nil), s.state.Queue...),
		QueueIndex: s.state.QueueIndex,
		Volume:     s.state.Volume,
	}
	if s.state.CurrentTrack != nil {
		track := *s.state.CurrentTrack
		snap.CurrentTrack = &track
	}
	return snap
}

// queuePersistLocked hands the newest snapshot to the writer goroutine. A
// pending older snapshot is replaced, so bursts of mutations collapse into
// the latest state.
func (s *Store) queuePersistLocked() {
	if s.persister == nil || s.closed {
		return
	}
	snap := s.snapshotLocked()
	for {
		select {
		case s.saves <- snap:
			return
		default:
		}
		select {
		case <-s.saves:
		default:
		}
	}
}

func (s *Store) persistLoop() {
	defer s.wg.Done()
	for snap := range s.saves {
		if err := s.persister.SaveState(snap); err != nil {
			s.log.Warn("failed to persist player state", "error", err)
		}
	}
}

// Close flushes any pending snapshot write and stops the writer goroutine.
func (s *Store) Close() {
	s.mu.Lock()
	if s.closed || s.persister == nil {
		s.closed = true
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.saves)
	s.mu.Unlock()
	s.wg.Wait()
}
