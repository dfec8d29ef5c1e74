// Package inline implements the non-interactive mode used by scripts.
package inline

import (
	"fmt"
	"io"
	"strconv"

	"github.com/lumina-cli/lumina/catalog"
	"github.com/lumina-cli/lumina/stream"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Picker selects a single title out of the search results.
type Picker func(titles []catalog.Title) mo.Option[catalog.Title]

// Options of a search run.
type Options struct {
	Out    io.Writer
	Client *catalog.Client
	Query  string
	Json   bool

	// Picker narrows the results to one title. None keeps every result.
	Picker mo.Option[Picker]

	// Streams resolves sources for every selected title.
	Streams   bool
	Providers []stream.Provider
	Filter    string

	// Season and Episode are used when resolving a series.
	Season, Episode int
}

// ParsePicker turns a selector into a Picker.
//
//	first, last, closest or a zero-based index
func ParsePicker(selector, query string) (Picker, error) {
	switch selector {
	case "first":
		return func(titles []catalog.Title) mo.Option[catalog.Title] {
			if len(titles) == 0 {
				return mo.None[catalog.Title]()
			}
			return mo.Some(titles[0])
		}, nil
	case "last":
		return func(titles []catalog.Title) mo.Option[catalog.Title] {
			if len(titles) == 0 {
				return mo.None[catalog.Title]()
			}
			return mo.Some(titles[len(titles)-1])
		}, nil
	case "closest":
		return func(titles []catalog.Title) mo.Option[catalog.Title] {
			return catalog.Closest(query, titles)
		}, nil
	}

	idx, err := strconv.ParseUint(selector, 10, 16)
	if err != nil {
		return nil, fmt.Errorf("invalid selector: %s", selector)
	}

	return func(titles []catalog.Title) mo.Option[catalog.Title] {
		if len(titles) == 0 {
			return mo.None[catalog.Title]()
		}
		return mo.Some(titles[lo.Min([]int{int(idx), len(titles) - 1})])
	}, nil
}
