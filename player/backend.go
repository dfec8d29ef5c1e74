// Package player plays a single item through either an mpv process or an
// embedded web player, and exposes the playback as a Bubble Tea session.
package player

import (
	"errors"
	"time"
)

// ErrNotControllable is returned by transport calls in embedded mode.
var ErrNotControllable = errors.New("playback is not controllable")

// Backend is the media element owned by an Engine.
//
// Transport calls are fire-and-forget: their effect is observed later
// through Events, never through the return value.
type Backend interface {
	// Open starts playing target. It may block until the backend is ready.
	Open(target, title string) error

	// Events delivers what the backend observes. It is closed when the
	// backend goes away. Backends that cannot be observed return nil.
	Events() <-chan Event

	Play() error
	Pause() error
	Seek(seconds float64) error
	SetVolume(volume float64) error
	SetMute(muted bool) error
	SetRate(rate float64) error
	SetFullscreen(fullscreen bool) error

	// SetProperties applies presentation properties such as geometry or subtitle appearance.
	SetProperties(props map[string]any) error

	// LoadSubtitle replaces the active subtitle track with the file at path.
	// An empty path removes it.
	LoadSubtitle(path string) error

	// Close releases the backend. It is safe to call more than once.
	Close() error
}

// exitReporter is implemented by backends running an external process.
type exitReporter interface {
	ExitErr(wait time.Duration) error
}
