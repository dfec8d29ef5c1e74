// Package catalog looks up movie and series metadata on TMDb.
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoAPIKey is returned when no TMDb key is configured or stored.
var ErrNoAPIKey = errors.New("no TMDb API key; run `lumina auth` or set LUMINA_CATALOG_API_KEY")

const posterBase = "https://image.tmdb.org/t/p/w500"

// Kind is a TMDb media type.
type Kind string

const (
	Movie Kind = "movie"
	TV    Kind = "tv"
)

// StremioType returns the addon path segment for the kind.
func (k Kind) StremioType() string {
	if k == TV {
		return "series"
	}
	return "movie"
}

// Title is a single catalog entry.
type Title struct {
	ID       int     `json:"id" jsonschema:"description=TMDb identifier"`
	Kind     Kind    `json:"kind" jsonschema:"enum=movie,enum=tv"`
	Name     string  `json:"name"`
	Poster   string  `json:"poster,omitempty"`
	Overview string  `json:"overview,omitempty"`
	Rating   float64 `json:"rating"`
	Year     string  `json:"year,omitempty"`
}

// Key is the identifier used by history and favorites.
func (t Title) Key() string {
	return fmt.Sprintf("tmdb-%d", t.ID)
}

// PosterURL returns the full poster address, or an empty string.
func (t Title) PosterURL() string {
	if t.Poster == "" {
		return ""
	}
	return posterBase + t.Poster
}

func (t Title) String() string {
	if t.Year == "" {
		return t.Name
	}
	return fmt.Sprintf("%s (%s)", t.Name, t.Year)
}

// Season of a TV title.
type Season struct {
	Number   int    `json:"season_number"`
	Name     string `json:"name"`
	Episodes int    `json:"episode_count"`
}

// result is the raw TMDb shape shared by search and trending responses.
type result struct {
	ID           int     `json:"id"`
	MediaType    string  `json:"media_type"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	PosterPath   string  `json:"poster_path"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	Overview     string  `json:"overview"`
	VoteAverage  float64 `json:"vote_average"`
}

func (r result) title(fallback Kind) Title {
	kind := Kind(r.MediaType)
	if kind == "" {
		kind = fallback
	}

	name, date := r.Title, r.ReleaseDate
	if kind == TV {
		name, date = r.Name, r.FirstAirDate
	}
	if name == "" {
		name = strings.TrimSpace(r.Title + r.Name)
	}

	year, _, _ := strings.Cut(date, "-")

	return Title{
		ID:       r.ID,
		Kind:     kind,
		Name:     name,
		Poster:   r.PosterPath,
		Overview: r.Overview,
		Rating:   r.VoteAverage,
		Year:     year,
	}
}
