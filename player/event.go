package player

import "errors"

// ErrPlayback is the generic failure shown when media cannot be played.
var ErrPlayback = errors.New("playback error")

// Event is something the backend observed about the media.
type Event interface {
	event()
}

// MetadataEvent reports that the media duration is known.
type MetadataEvent struct {
	Duration float64
}

// TimeEvent reports the playback position.
type TimeEvent struct {
	Position float64
}

// BufferingEvent reports that playback stalled for, or resumed from, buffering.
type BufferingEvent struct {
	Active bool
}

// PlaybackEvent reports that playback actually started or stopped.
type PlaybackEvent struct {
	Playing bool
}

// VolumeEvent reports the volume in [0, 1].
type VolumeEvent struct {
	Volume float64
}

// MuteEvent reports the mute flag.
type MuteEvent struct {
	Muted bool
}

// RateEvent reports the playback speed.
type RateEvent struct {
	Rate float64
}

// FullscreenEvent reports the fullscreen flag.
type FullscreenEvent struct {
	Fullscreen bool
}

// EndEvent reports that the media reached its end.
type EndEvent struct{}

// FailureEvent reports that the media failed irrecoverably.
type FailureEvent struct {
	Err error
}

func (MetadataEvent) event()   {}
func (TimeEvent) event()       {}
func (BufferingEvent) event()  {}
func (PlaybackEvent) event()   {}
func (VolumeEvent) event()     {}
func (MuteEvent) event()       {}
func (RateEvent) event()       {}
func (FullscreenEvent) event() {}
func (EndEvent) event()        {}
func (FailureEvent) event()    {}
