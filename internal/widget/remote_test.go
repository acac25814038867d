package widget

import "testing"

func newBridgeInstance(t *testing.T, b *Bridge, videoID string, events chan Event) (Instance, string) {
	t.Helper()
	inst, id, err := b.New(videoID, Options{}, events)
	if err != nil {
		t.Fatalf("Bridge.New failed: %v", err)
	}
	return inst, id
}

func TestBridgeAnnounceLoaded(t *testing.T) {
	b := NewBridge(nil)

	select {
	case <-b.Ready():
		t.Fatal("Expected Ready to block before AnnounceLoaded")
	default:
	}

	b.AnnounceLoaded()
	b.AnnounceLoaded() // idempotent

	select {
	case <-b.Ready():
	default:
		t.Fatal("Expected Ready closed after AnnounceLoaded")
	}
}

func TestBridgeQueuesLoadCommand(t *testing.T) {
	b := NewBridge(nil)
	events := make(chan Event, 4)
	_, id := newBridgeInstance(t, b, "abc12345678", events)

	cmds := b.DrainCommands()
	if len(cmds) != 1 {
		t.Fatalf("Expected one queued command, got %d", len(cmds))
	}
	if cmds[0].Action != "load" || cmds[0].VideoID != "abc12345678" || cmds[0].InstanceID != id {
		t.Errorf("Unexpected load command: %+v", cmds[0])
	}
	if cmds[0].ID == "" {
		t.Error("Expected command id assigned")
	}

	if got := b.DrainCommands(); len(got) != 0 {
		t.Errorf("Expected queue drained, got %d", len(got))
	}
}

func TestBridgeCommandsRequireReadiness(t *testing.T) {
	b := NewBridge(nil)
	events := make(chan Event, 4)
	inst, id := newBridgeInstance(t, b, "abc12345678", events)

	if err := inst.Play(); err != ErrNotReady {
		t.Errorf("Expected ErrNotReady before ready, got %v", err)
	}
	if _, err := inst.CurrentTime(); err != ErrNotReady {
		t.Errorf("Expected ErrNotReady from CurrentTime, got %v", err)
	}

	b.HandleEvent(id, "ready", 0, 0)

	select {
	case ev := <-events:
		if ev.Kind != EventReady || ev.InstanceID != id {
			t.Errorf("Unexpected event: %+v", ev)
		}
	default:
		t.Fatal("Expected ready event emitted")
	}

	if err := inst.Play(); err != nil {
		t.Errorf("Expected Play to queue after ready, got %v", err)
	}
	b.DrainCommands() // load
	if err := inst.SeekTo(30); err != nil {
		t.Errorf("SeekTo failed: %v", err)
	}

	cmds := b.DrainCommands()
	if len(cmds) != 1 || cmds[0].Action != "seek" || cmds[0].Value != 30 {
		t.Errorf("Unexpected commands: %+v", cmds)
	}
}

func TestBridgeTelemetry(t *testing.T) {
	b := NewBridge(nil)
	events := make(chan Event, 4)
	inst, id := newBridgeInstance(t, b, "abc12345678", events)

	b.HandleEvent(id, "ready", 0, 0)
	b.HandleEvent(id, "progress", 42.5, 180)

	position, err := inst.CurrentTime()
	if err != nil {
		t.Fatalf("CurrentTime failed: %v", err)
	}
	if position != 42.5 {
		t.Errorf("Expected position 42.5, got %v", position)
	}
	duration, err := inst.Duration()
	if err != nil {
		t.Fatalf("Duration failed: %v", err)
	}
	if duration != 180 {
		t.Errorf("Expected duration 180, got %v", duration)
	}
}

func TestBridgeDropsStaleEvents(t *testing.T) {
	b := NewBridge(nil)
	events := make(chan Event, 4)
	_, oldID := newBridgeInstance(t, b, "aaaaaaaaaaa", events)
	_, newID := newBridgeInstance(t, b, "bbbbbbbbbbb", events)

	b.HandleEvent(oldID, "playing", 0, 0)
	select {
	case ev := <-events:
		t.Fatalf("Expected stale event dropped, got %+v", ev)
	default:
	}

	b.HandleEvent(newID, "playing", 0, 0)
	select {
	case ev := <-events:
		if ev.InstanceID != newID || ev.Kind != EventPlaying {
			t.Errorf("Unexpected event: %+v", ev)
		}
	default:
		t.Fatal("Expected live-instance event emitted")
	}
}

func TestBridgeDestroy(t *testing.T) {
	b := NewBridge(nil)
	events := make(chan Event, 4)
	inst, id := newBridgeInstance(t, b, "abc12345678", events)
	b.HandleEvent(id, "ready", 0, 0)
	b.DrainCommands()

	inst.Destroy()

	cmds := b.DrainCommands()
	if len(cmds) != 1 || cmds[0].Action != "destroy" || cmds[0].InstanceID != id {
		t.Errorf("Expected destroy command, got %+v", cmds)
	}

	if err := inst.Play(); err != ErrNotReady {
		t.Errorf("Expected ErrNotReady after destroy, got %v", err)
	}

	// double destroy must not queue a second command
	inst.Destroy()
	if got := b.DrainCommands(); len(got) != 0 {
		t.Errorf("Expected no commands after second destroy, got %+v", got)
	}
}
