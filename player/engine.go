package player

import (
	"errors"
	"fmt"
	"time"

	"github.com/lumina-cli/lumina/display"
	"github.com/lumina-cli/lumina/log"
	"github.com/lumina-cli/lumina/subtitle"
	"github.com/samber/mo"
)

// exitGrace is how long a vanished backend process gets to report its exit status.
const exitGrace = time.Second

// ErrInvalidRate is returned for playback rates that are not positive.
var ErrInvalidRate = errors.New("playback rate must be positive")

// Mode is how the item is played.
type Mode int

const (
	ModeNative Mode = iota
	ModeEmbedded
)

func (m Mode) String() string {
	if m == ModeEmbedded {
		return "embedded"
	}
	return "native"
}

// State is the playback state. Playing only changes through backend events.
type State struct {
	Playing     bool
	CurrentTime float64
	Duration    float64
	Volume      float64
	Muted       bool
	Rate        float64
	Fullscreen  bool
	Loading     bool
	Ended       bool
	Err         error
}

// MutedIcon reports whether the muted indicator is shown.
func (s State) MutedIcon() bool {
	return s.Muted || s.Volume == 0
}

// Failed reports whether playback failed irrecoverably.
func (s State) Failed() bool { return s.Err != nil }

// pendingSeek is a seek requested before the duration was known.
// A relative seek on top of a pending fraction accumulates in offset.
type pendingSeek struct {
	value    float64
	fraction bool
	offset   float64
}

// Engine is the only owner of a Backend. It is not safe for concurrent use;
// every method is called from the session's update loop.
type Engine struct {
	native   Backend
	embedded Backend
	active   Backend

	item          Item
	mode          Mode
	target        string
	state         State
	metadataKnown bool
	pending       mo.Option[pendingSeek]
}

// NewEngine returns an engine choosing between a native and an embedded backend.
func NewEngine(native, embedded Backend) *Engine {
	return &Engine{
		native:   native,
		embedded: embedded,
		state:    State{Volume: 1, Rate: 1},
	}
}

// Load selects the playback mode for item. initial is a resume point
// applied once the duration is known.
func (e *Engine) Load(item Item, initial mo.Option[float64]) error {
	if err := item.Validate(); err != nil {
		return err
	}

	e.item = item
	e.metadataKnown = false
	e.pending = mo.None[pendingSeek]()
	e.state = State{Volume: 1, Rate: 1}

	if IsEmbedded(item) {
		e.mode = ModeEmbedded
		e.active = e.embedded
		e.target = EmbedURL(item.VideoURL)
		return nil
	}

	e.mode = ModeNative
	e.active = e.native
	e.target = item.VideoURL
	e.state.Loading = true

	if t, ok := initial.Get(); ok && t > 0 {
		e.pending = mo.Some(pendingSeek{value: t})
		e.state.CurrentTime = t
	}
	return nil
}

// Launch opens the loaded item on the active backend. It may block.
// It only touches the backend, never the state.
func (e *Engine) Launch() error {
	if e.active == nil {
		return fmt.Errorf("nothing loaded")
	}
	return e.active.Open(e.target, e.item.Title)
}

// Item returns the loaded item.
func (e *Engine) Item() Item { return e.item }

// Mode returns the playback mode.
func (e *Engine) Mode() Mode { return e.mode }

// Target returns the address handed to the backend.
func (e *Engine) Target() string { return e.target }

// State returns a copy of the playback state.
func (e *Engine) State() State { return e.state }

// Events returns the active backend event stream.
func (e *Engine) Events() <-chan Event {
	if e.active == nil {
		return nil
	}
	return e.active.Events()
}

// exitErr reports how the active backend process ended, or nil when it
// has no process or quit cleanly.
func (e *Engine) exitErr() func() error {
	reporter, ok := e.active.(exitReporter)
	if !ok {
		return nil
	}
	return func() error {
		return reporter.ExitErr(exitGrace)
	}
}

// Controllable reports whether transport calls have any effect.
func (e *Engine) Controllable() bool {
	return e.mode == ModeNative && e.active != nil && !e.state.Failed()
}

// TogglePlay requests the opposite of the reported play state.
func (e *Engine) TogglePlay() error {
	if !e.Controllable() {
		return ErrNotControllable
	}
	if e.state.Playing {
		return e.active.Pause()
	}
	return e.active.Play()
}

// SeekBy seeks relative to the current position.
func (e *Engine) SeekBy(delta float64) error {
	if !e.Controllable() {
		return ErrNotControllable
	}

	if p, ok := e.pending.Get(); ok {
		p.offset += delta
		if !p.fraction {
			p = pendingSeek{value: p.value + p.offset}
		}
		return e.seek(p)
	}
	return e.seek(pendingSeek{value: e.state.CurrentTime + delta})
}

// SeekTo seeks to a fraction of the duration.
func (e *Engine) SeekTo(fraction float64) error {
	if !e.Controllable() {
		return ErrNotControllable
	}
	return e.seek(pendingSeek{value: clamp(fraction, 0, 1), fraction: true})
}

func (e *Engine) seek(s pendingSeek) error {
	if !e.metadataKnown {
		// absolute requests replace the pending one, relative ones add to it
		e.pending = mo.Some(s)
		if !s.fraction {
			e.state.CurrentTime = max(s.value, 0)
		}
		return nil
	}

	target := e.resolve(s)
	e.state.CurrentTime = target
	e.state.Ended = false
	return e.active.Seek(target)
}

func (e *Engine) resolve(s pendingSeek) float64 {
	base := s.value
	if s.fraction {
		base = s.value * e.state.Duration
	}
	return clamp(base+s.offset, 0, e.state.Duration)
}

// SetVolume sets the volume in [0, 1]. Zero mutes, anything louder unmutes.
func (e *Engine) SetVolume(v float64) error {
	if !e.Controllable() {
		return ErrNotControllable
	}

	v = clamp(v, 0, 1)
	e.state.Volume = v
	e.state.Muted = v == 0

	if err := e.active.SetVolume(v); err != nil {
		return err
	}
	return e.active.SetMute(e.state.Muted)
}

// ToggleMute flips the mute flag.
func (e *Engine) ToggleMute() error {
	if !e.Controllable() {
		return ErrNotControllable
	}
	e.state.Muted = !e.state.Muted
	return e.active.SetMute(e.state.Muted)
}

// SetRate sets the playback speed.
func (e *Engine) SetRate(rate float64) error {
	if rate <= 0 {
		return ErrInvalidRate
	}
	if !e.Controllable() {
		return ErrNotControllable
	}
	e.state.Rate = rate
	return e.active.SetRate(rate)
}

// ToggleFullscreen requests the opposite of the reported fullscreen flag.
func (e *Engine) ToggleFullscreen() error {
	if !e.Controllable() {
		return ErrNotControllable
	}
	return e.active.SetFullscreen(!e.state.Fullscreen)
}

// ApplyDisplay projects a geometry onto the media element.
func (e *Engine) ApplyDisplay(g display.Geometry) error {
	if !e.Controllable() {
		return ErrNotControllable
	}
	return e.active.SetProperties(g.Properties())
}

// ApplySubtitle installs a track, or removes the current one when t is nil.
func (e *Engine) ApplySubtitle(t *subtitle.Track) error {
	if !e.Controllable() {
		return ErrNotControllable
	}
	if t == nil {
		return e.active.LoadSubtitle("")
	}
	return e.active.LoadSubtitle(t.Path())
}

// ApplyAppearance restyles every rendered cue.
func (e *Engine) ApplyAppearance(a subtitle.Appearance) error {
	if !e.Controllable() {
		return ErrNotControllable
	}
	return e.active.SetProperties(a.Properties())
}

// ApplyDelay shifts subtitle timing.
func (e *Engine) ApplyDelay(d subtitle.Delay) error {
	if !e.Controllable() {
		return ErrNotControllable
	}
	return e.active.SetProperties(map[string]any{"sub-delay": d.Seconds()})
}

// Handle folds a backend event into the state.
func (e *Engine) Handle(ev Event) {
	if e.mode != ModeNative {
		return
	}

	switch ev := ev.(type) {
	case MetadataEvent:
		e.handleMetadata(ev)
	case TimeEvent:
		if !e.metadataKnown {
			return
		}
		e.state.CurrentTime = clamp(ev.Position, 0, e.state.Duration)
	case BufferingEvent:
		e.state.Loading = ev.Active || !e.metadataKnown
	case PlaybackEvent:
		e.state.Playing = ev.Playing
		if ev.Playing {
			e.state.Ended = false
		}
	case VolumeEvent:
		e.state.Volume = ev.Volume
	case MuteEvent:
		e.state.Muted = ev.Muted
	case RateEvent:
		e.state.Rate = ev.Rate
	case FullscreenEvent:
		e.state.Fullscreen = ev.Fullscreen
	case EndEvent:
		e.state.Playing = false
		e.state.Ended = true
	case FailureEvent:
		e.Fail(ev.Err)
	}
}

func (e *Engine) handleMetadata(ev MetadataEvent) {
	e.state.Duration = ev.Duration

	if e.metadataKnown {
		e.state.CurrentTime = clamp(e.state.CurrentTime, 0, e.state.Duration)
		return
	}

	e.metadataKnown = true
	e.state.Loading = false

	if p, ok := e.pending.Get(); ok {
		e.pending = mo.None[pendingSeek]()
		target := e.resolve(p)
		e.state.CurrentTime = target
		if err := e.active.Seek(target); err != nil {
			log.Warnf("initial seek to %.1f: %s", target, err)
		}
		return
	}

	e.state.CurrentTime = clamp(e.state.CurrentTime, 0, e.state.Duration)
}

// Fail moves the engine into the failed state. Loading stops and no recovery is attempted.
func (e *Engine) Fail(err error) {
	if err == nil {
		err = ErrPlayback
	}
	if !errors.Is(err, ErrPlayback) {
		err = fmt.Errorf("%w: %w", ErrPlayback, err)
	}

	e.state.Err = err
	e.state.Loading = false
	e.state.Playing = false
	log.Errorf("playback of %q failed: %s", e.item.Title, err)
}

// Snapshot returns the current progress if it may be reported.
// Embedded playback cannot be introspected and never reports.
func (e *Engine) Snapshot() (Snapshot, bool) {
	if e.mode != ModeNative {
		return Snapshot{}, false
	}

	s := Snapshot{Time: e.state.CurrentTime, Duration: e.state.Duration}
	return s, s.Valid()
}

// Active reports whether native playback is progressing.
func (e *Engine) Active() bool {
	return e.mode == ModeNative && e.state.Playing && !e.state.Loading && !e.state.Failed()
}

// Close releases the backend.
func (e *Engine) Close() error {
	if e.active == nil {
		return nil
	}
	return e.active.Close()
}
