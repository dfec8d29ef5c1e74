package stream

import (
	"strings"

	"github.com/samber/lo"
)

// Filter names.
const (
	FilterAll = "all"
	FilterDub = "dub"
	FilterLeg = "leg"
	Filter4K  = "4k"
)

// Filters lists every accepted filter name in display order.
var Filters = []string{FilterAll, FilterDub, FilterLeg, Filter4K}

// Filter narrows streams. Unknown names behave like "all".
func Filter(streams []Stream, name string) []Stream {
	switch name {
	case FilterDub:
		return lo.Filter(streams, func(s Stream, _ int) bool {
			return s.Dubbed()
		})
	case FilterLeg:
		return lo.Filter(streams, func(s Stream, _ int) bool {
			return s.Origin == Torrentio && !strings.Contains(strings.ToLower(s.Title), "dub")
		})
	case Filter4K:
		return lo.Filter(streams, func(s Stream, _ int) bool {
			return s.UHD()
		})
	default:
		return streams
	}
}

// NextFilter cycles through Filters.
func NextFilter(name string) string {
	i := lo.IndexOf(Filters, name)
	return Filters[(i+1)%len(Filters)]
}
