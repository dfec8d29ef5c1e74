package history

import (
	"fmt"
	"time"

	"github.com/lumina-cli/lumina/util"
)

// Entry is one watched item together with how far it got.
type Entry struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	URL      string    `json:"url"`
	Provider string    `json:"provider,omitempty"`
	TitleID  int       `json:"title_id,omitempty"`
	Kind     string    `json:"kind,omitempty"`
	IMDbID   string    `json:"imdb_id,omitempty"`
	Season   int       `json:"season,omitempty"`
	Episode  int       `json:"episode,omitempty"`
	Time     float64   `json:"time"`
	Duration float64   `json:"duration"`
	Watched  time.Time `json:"watched"`
}

// Progress is the watched fraction in [0, 1].
func (e *Entry) Progress() float64 {
	if e.Duration <= 0 {
		return 0
	}
	return util.Min(e.Time/e.Duration, 1)
}

// Resumable reports whether playback stopped somewhere in the middle.
func (e *Entry) Resumable() bool {
	return e.Time > 0 && e.Progress() < 0.95
}

func (e *Entry) String() string {
	if e.Season > 0 {
		return fmt.Sprintf("%s S%02dE%02d", e.Title, e.Season, e.Episode)
	}
	return e.Title
}

// Position renders "time / duration".
func (e *Entry) Position() string {
	return fmt.Sprintf("%s / %s", util.FormatDuration(e.Time), util.FormatDuration(e.Duration))
}
