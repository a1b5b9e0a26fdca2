// Package playback models the audio transport the editor surface listens to:
// a position that advances while playing, with start/pause/end notifications.
// It deliberately owns no audio device handle; the TUI drives Advance from its
// tick loop and renders whatever position the transport reports.
package playback

// Event identifies a transport state change delivered to subscribers.
type Event int

const (
	EventStarted Event = iota
	EventPaused
	EventEnded
	EventPosition
)

// Listener receives an event and the position (seconds) it occurred at.
type Listener func(Event, float64)

// Transport tracks playback position over a known duration. It is driven from
// a single event loop and is not safe for concurrent use; there is exactly one
// execution context, so ordering is the order calls are made.
type Transport struct {
	duration  float64
	position  float64
	playing   bool
	listeners []Listener
}

// New creates a stopped transport at position zero.
func New(duration float64) *Transport {
	if duration < 0 {
		duration = 0
	}
	return &Transport{duration: duration}
}

// Subscribe registers a listener for all subsequent events.
func (t *Transport) Subscribe(l Listener) {
	t.listeners = append(t.listeners, l)
}

func (t *Transport) emit(e Event) {
	for _, l := range t.listeners {
		l(e, t.position)
	}
}

func (t *Transport) Duration() float64 { return t.duration }
func (t *Transport) Position() float64 { return t.position }
func (t *Transport) Playing() bool     { return t.playing }

// Play starts advancing. Playing from the end restarts at zero.
func (t *Transport) Play() {
	if t.playing {
		return
	}
	if t.duration > 0 && t.position >= t.duration {
		t.position = 0
	}
	t.playing = true
	t.emit(EventStarted)
}

// Pause stops advancing without moving the position.
func (t *Transport) Pause() {
	if !t.playing {
		return
	}
	t.playing = false
	t.emit(EventPaused)
}

// Toggle flips between playing and paused.
func (t *Transport) Toggle() {
	if t.playing {
		t.Pause()
	} else {
		t.Play()
	}
}

// SeekTo moves the position, clamped to [0, duration].
func (t *Transport) SeekTo(seconds float64) {
	if seconds < 0 {
		seconds = 0
	}
	if t.duration > 0 && seconds > t.duration {
		seconds = t.duration
	}
	t.position = seconds
	t.emit(EventPosition)
}

// SeekBy moves the position relative to the current one.
func (t *Transport) SeekBy(delta float64) {
	t.SeekTo(t.position + delta)
}

// Advance moves the position forward by dt seconds of wall time while
// playing. Reaching the end pauses the transport and emits EventEnded.
func (t *Transport) Advance(dt float64) {
	if !t.playing || dt <= 0 {
		return
	}
	t.position += dt
	if t.duration > 0 && t.position >= t.duration {
		t.position = t.duration
		t.playing = false
		t.emit(EventEnded)
		return
	}
	t.emit(EventPosition)
}
