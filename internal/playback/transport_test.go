package playback

import "testing"

type recorded struct {
	event Event
	pos   float64
}

func record(t *Transport) *[]recorded {
	var events []recorded
	t.Subscribe(func(e Event, pos float64) {
		events = append(events, recorded{e, pos})
	})
	return &events
}

func TestPlayPause(t *testing.T) {
	tr := New(10)
	events := record(tr)

	tr.Play()
	if !tr.Playing() {
		t.Fatal("expected playing after Play")
	}
	tr.Play() // no-op while playing
	tr.Pause()
	tr.Pause() // no-op while paused

	if len(*events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(*events))
	}
	if (*events)[0].event != EventStarted || (*events)[1].event != EventPaused {
		t.Errorf("unexpected event order: %+v", *events)
	}
}

func TestToggle(t *testing.T) {
	tr := New(10)
	tr.Toggle()
	if !tr.Playing() {
		t.Error("toggle from stopped should play")
	}
	tr.Toggle()
	if tr.Playing() {
		t.Error("toggle from playing should pause")
	}
}

func TestAdvance_ReachesEnd(t *testing.T) {
	tr := New(1.0)
	events := record(tr)

	tr.Play()
	tr.Advance(0.6)
	if tr.Position() != 0.6 {
		t.Errorf("expected position 0.6, got %v", tr.Position())
	}
	tr.Advance(0.6)

	if tr.Playing() {
		t.Error("transport should pause at the end")
	}
	if tr.Position() != 1.0 {
		t.Errorf("position should clamp to duration, got %v", tr.Position())
	}

	last := (*events)[len(*events)-1]
	if last.event != EventEnded || last.pos != 1.0 {
		t.Errorf("expected EventEnded at the duration, got %+v", last)
	}
}

func TestAdvance_IgnoredWhilePaused(t *testing.T) {
	tr := New(10)
	tr.Advance(5)
	if tr.Position() != 0 {
		t.Error("advance while paused must not move the position")
	}
}

func TestPlayFromEnd_Restarts(t *testing.T) {
	tr := New(1.0)
	tr.Play()
	tr.Advance(2)
	if tr.Playing() {
		t.Fatal("expected ended transport")
	}

	tr.Play()
	if tr.Position() != 0 {
		t.Errorf("playing from the end should restart at zero, got %v", tr.Position())
	}
	if !tr.Playing() {
		t.Error("expected playing after restart")
	}
}

func TestSeekClamping(t *testing.T) {
	tr := New(10)

	tr.SeekTo(-5)
	if tr.Position() != 0 {
		t.Errorf("seek below zero should clamp, got %v", tr.Position())
	}
	tr.SeekTo(25)
	if tr.Position() != 10 {
		t.Errorf("seek past the end should clamp, got %v", tr.Position())
	}

	tr.SeekTo(4)
	tr.SeekBy(-10)
	if tr.Position() != 0 {
		t.Errorf("relative seek should clamp, got %v", tr.Position())
	}
	tr.SeekBy(3)
	if tr.Position() != 3 {
		t.Errorf("expected position 3, got %v", tr.Position())
	}
}

func TestSeekEmitsPosition(t *testing.T) {
	tr := New(10)
	events := record(tr)

	tr.SeekTo(5)
	if len(*events) != 1 || (*events)[0].event != EventPosition || (*events)[0].pos != 5 {
		t.Errorf("expected one EventPosition at 5, got %+v", *events)
	}
}

func TestNew_NegativeDuration(t *testing.T) {
	tr := New(-3)
	if tr.Duration() != 0 {
		t.Errorf("negative duration should clamp to zero, got %v", tr.Duration())
	}
}
