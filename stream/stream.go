// Package stream resolves playable sources for a catalog title.
package stream

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lumina-cli/lumina/catalog"
)

// ErrNoSources is returned when no provider produced a stream.
var ErrNoSources = errors.New("no sources found for this title")

// Request identifies what to resolve. Season and Episode are used for series only.
type Request struct {
	IMDbID  string       `json:"imdbId"`
	Kind    catalog.Kind `json:"kind"`
	Season  int          `json:"season,omitempty"`
	Episode int          `json:"episode,omitempty"`
}

// ID returns the addon identifier: the IMDb id, or imdb:season:episode for series.
func (r Request) ID() string {
	if r.Kind == catalog.TV {
		return fmt.Sprintf("%s:%d:%d", r.IMDbID, r.Season, r.Episode)
	}
	return r.IMDbID
}

// Stream is a single playable candidate.
type Stream struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	URL      string `json:"url,omitempty"`
	InfoHash string `json:"infoHash,omitempty"`
	FileIdx  *int   `json:"fileIdx,omitempty"`
	Origin   string `json:"origin"`
}

// Playable returns the direct URL, or a magnet link built from the info hash.
func (s Stream) Playable() string {
	if s.URL != "" {
		return s.URL
	}
	if s.InfoHash != "" {
		return "magnet:?xt=urn:btih:" + s.InfoHash
	}
	return ""
}

// Dubbed reports whether the stream carries a dubbed audio track.
func (s Stream) Dubbed() bool {
	return s.Origin == Brazuca || strings.Contains(strings.ToLower(s.Title), "dub")
}

// UHD reports whether the stream is 4K.
func (s Stream) UHD() bool {
	return strings.Contains(strings.ToLower(s.Title), "4k") ||
		strings.Contains(strings.ToLower(s.Name), "4k")
}

// Labels are short tags shown next to a stream.
func (s Stream) Labels() []string {
	var labels []string

	if s.Dubbed() {
		labels = append(labels, "Dub")
	} else {
		labels = append(labels, "Sub")
	}

	if s.UHD() {
		labels = append(labels, "4K")
	}

	text := strings.ToLower(s.Name + " " + s.Title)
	for _, quality := range []string{"1080p", "720p"} {
		if strings.Contains(text, quality) {
			labels = append(labels, quality)
			break
		}
	}

	return labels
}

// Heading is the first line of the title, which addons use for the release name.
func (s Stream) Heading() string {
	heading, _, _ := strings.Cut(s.Title, "\n")
	if heading == "" {
		return strings.ReplaceAll(s.Name, "\n", " ")
	}
	return heading
}
