package catalog

import (
	"strings"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

func normalizedName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Closest returns the title whose name is nearest to query by edit distance.
func Closest(query string, titles []Title) mo.Option[Title] {
	if len(titles) == 0 {
		return mo.None[Title]()
	}

	query = normalizedName(query)
	closest := lo.MinBy(titles, func(a, b Title) bool {
		return levenshtein.Distance(query, normalizedName(a.Name)) <
			levenshtein.Distance(query, normalizedName(b.Name))
	})

	return mo.Some(closest)
}
