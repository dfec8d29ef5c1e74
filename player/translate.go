package player

import (
	"fmt"
)

// Translate maps an observed mpv property, or a raw mpv event, to an engine event.
// Unknown names and unavailable values yield false.
func Translate(name string, data any) (Event, bool) {
	switch name {
	case "duration":
		if d, ok := data.(float64); ok && d > 0 {
			return MetadataEvent{Duration: d}, true
		}
	case "time-pos":
		if p, ok := data.(float64); ok {
			return TimeEvent{Position: p}, true
		}
	case "pause":
		if paused, ok := data.(bool); ok {
			return PlaybackEvent{Playing: !paused}, true
		}
	case "paused-for-cache":
		if active, ok := data.(bool); ok {
			return BufferingEvent{Active: active}, true
		}
	case "volume":
		if v, ok := data.(float64); ok {
			return VolumeEvent{Volume: clamp(v/100, 0, 1)}, true
		}
	case "mute":
		if muted, ok := data.(bool); ok {
			return MuteEvent{Muted: muted}, true
		}
	case "speed":
		if r, ok := data.(float64); ok && r > 0 {
			return RateEvent{Rate: r}, true
		}
	case "fullscreen":
		if fs, ok := data.(bool); ok {
			return FullscreenEvent{Fullscreen: fs}, true
		}
	case "eof-reached":
		if eof, ok := data.(bool); ok && eof {
			return EndEvent{}, true
		}
	case "end-file":
		msg, _ := data.(map[string]any)
		if reason, _ := msg["reason"].(string); reason == "error" {
			detail, _ := msg["file_error"].(string)
			return FailureEvent{Err: fmt.Errorf("%w: %s", ErrPlayback, detail)}, true
		}
	}

	return nil, false
}

func clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}
