package player

import (
	"sync"
	"testing"
	"time"

	"github.com/unai-a/MusicFlow/internal/domain"
)

type memPersister struct {
	mu    sync.Mutex
	snaps []Snapshot
}

func (p *memPersister) SaveState(snap Snapshot) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snaps = append(p.snaps, snap)
	return nil
}

func (p *memPersister) last() (Snapshot, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.snaps) == 0 {
		return Snapshot{}, false
	}
	return p.snaps[len(p.snaps)-1], true
}

func TestRestore(t *testing.T) {
	s := New(nil, nil)
	a := trackA
	s.Restore(Snapshot{
		Queue:        []domain.Track{trackA, trackB},
		QueueIndex:   1,
		CurrentTrack: &a,
		Volume:       0.3,
	})

	st := s.State()
	if len(st.Queue) != 2 || st.QueueIndex != 1 {
		t.Errorf("Expected queue restored, got len=%d index=%d", len(st.Queue), st.QueueIndex)
	}
	if st.CurrentTrack == nil || st.CurrentTrack.VideoID != trackA.VideoID {
		t.Error("Expected current track restored")
	}
	if st.Volume != 0.3 {
		t.Errorf("Expected volume 0.3, got %v", st.Volume)
	}
	if st.IsPlaying {
		t.Error("Restore must not start playback")
	}
}

func TestRestoreNormalizesBadValues(t *testing.T) {
	s := New(nil, nil)
	s.Restore(Snapshot{
		Queue:      []domain.Track{trackA},
		QueueIndex: 9,
		Volume:     3.5,
	})

	st := s.State()
	if st.QueueIndex != -1 {
		t.Errorf("Expected invalid index normalized to -1, got %d", st.QueueIndex)
	}
	if st.Volume != 1 {
		t.Errorf("Expected volume clamped to 1, got %v", st.Volume)
	}
}

func TestMutationsArePersisted(t *testing.T) {
	p := &memPersister{}
	s := New(p, nil)

	s.AddToQueue(trackA)
	s.SetVolume(0.4)
	s.Close()

	snap, ok := p.last()
	if !ok {
		t.Fatal("Expected at least one persisted snapshot")
	}
	if len(snap.Queue) != 1 || snap.Queue[0].VideoID != trackA.VideoID {
		t.Errorf("Expected queue persisted, got %+v", snap.Queue)
	}
	if snap.Volume != 0.4 {
		t.Errorf("Expected volume 0.4 persisted, got %v", snap.Volume)
	}
	if snap.QueueIndex != 0 {
		t.Errorf("Expected queue index 0 persisted, got %d", snap.QueueIndex)
	}
}

func TestProgressIsNotPersisted(t *testing.T) {
	p := &memPersister{}
	s := New(p, nil)

	s.SetProgress(42)
	s.SetDuration(180)
	s.Close()

	if snap, ok := p.last(); ok {
		t.Errorf("Expected no snapshot for telemetry-only writes, got %+v", snap)
	}
}

func TestBurstCollapsesToLatestSnapshot(t *testing.T) {
	p := &memPersister{}
	s := New(p, nil)

	for i := 0; i < 50; i++ {
		s.SetVolume(float64(i) / 50)
	}
	s.Close()

	snap, ok := p.last()
	if !ok {
		t.Fatal("Expected a persisted snapshot")
	}
	if snap.Volume != 0.98 {
		t.Errorf("Expected newest snapshot to win, got volume %v", snap.Volume)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	p := &memPersister{}
	s := New(p, nil)
	s.SetVolume(0.2)
	s.Close()
	s.Close()

	// mutations after close must not panic
	s.SetVolume(0.9)
	time.Sleep(10 * time.Millisecond)
}
