// Package query remembers past searches and suggests them back.
package query

import (
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/lumina-cli/lumina/filesystem"
	"github.com/lumina-cli/lumina/key"
	"github.com/lumina-cli/lumina/where"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

type record struct {
	Rank  int    `json:"rank"`
	Query string `json:"query"`
}

var cacher = gache.New[map[string]*record](
	&gache.Options{
		Path:       where.Queries(),
		FileSystem: &filesystem.GacheFs{},
	},
)

var (
	suggestions   = make(map[string][]string)
	suggestionsMu sync.Mutex
)

func load() map[string]*record {
	cached, expired, err := cacher.Get()
	if expired || err != nil || cached == nil {
		return make(map[string]*record)
	}
	return cached
}

// Remember stores q, or raises its rank by weight when it is already known.
// Empty queries are ignored.
func Remember(q string, weight int) error {
	q = sanitize(q)
	if q == "" {
		return nil
	}

	cached := load()
	if r, ok := cached[q]; ok {
		r.Rank += weight
	} else {
		cached[q] = &record{Rank: weight, Query: q}
	}

	suggestionsMu.Lock()
	suggestions = make(map[string][]string)
	suggestionsMu.Unlock()

	return cacher.Set(cached)
}

// Suggest returns the best ranked past query that fuzzily matches q.
func Suggest(q string) mo.Option[string] {
	matches := SuggestMany(q)
	if len(matches) == 0 {
		return mo.None[string]()
	}
	return mo.Some(matches[0])
}

// SuggestMany returns every past query fuzzily matching q, best ranked first.
func SuggestMany(q string) []string {
	if !viper.GetBool(key.SearchShowQuerySuggestions) {
		return []string{}
	}

	q = sanitize(q)

	suggestionsMu.Lock()
	defer suggestionsMu.Unlock()

	if prev, ok := suggestions[q]; ok {
		return prev
	}

	records := lo.Filter(lo.Values(load()), func(r *record, _ int) bool {
		return fuzzy.Match(q, r.Query)
	})
	sortByRank(records)

	matches := lo.Map(records, func(r *record, _ int) string { return r.Query })
	suggestions[q] = matches
	return matches
}

// Top returns up to n past queries, best ranked first.
func Top(n int) []string {
	records := lo.Values(load())
	sortByRank(records)

	if len(records) > n {
		records = records[:n]
	}
	return lo.Map(records, func(r *record, _ int) string { return r.Query })
}

// Clear forgets every query.
func Clear() error {
	suggestionsMu.Lock()
	suggestions = make(map[string][]string)
	suggestionsMu.Unlock()

	return cacher.Set(make(map[string]*record))
}

func sortByRank(records []*record) {
	slices.SortFunc(records, func(a, b *record) int {
		if a.Rank != b.Rank {
			return b.Rank - a.Rank
		}
		return strings.Compare(a.Query, b.Query)
	})
}

func sanitize(q string) string {
	return strings.TrimSpace(strings.ToLower(q))
}
