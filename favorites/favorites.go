// Package favorites stores the titles the user starred.
package favorites

import (
	"github.com/lumina-cli/lumina/catalog"
	"github.com/lumina-cli/lumina/filesystem"
	"github.com/lumina-cli/lumina/where"
	"github.com/metafates/gache"
	"github.com/samber/lo"
)

var cacher = gache.New[[]catalog.Title](
	&gache.Options{
		Path:       where.Favorites(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// List returns the starred titles in the order they were added.
func List() ([]catalog.Title, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return []catalog.Title{}, nil
	}
	return cached, nil
}

// Has reports whether the title is starred.
func Has(title catalog.Title) bool {
	titles, err := List()
	if err != nil {
		return false
	}
	return lo.ContainsBy(titles, func(t catalog.Title) bool { return t.Key() == title.Key() })
}

// Toggle stars or unstars the title and returns whether it is now starred.
func Toggle(title catalog.Title) (bool, error) {
	titles, err := List()
	if err != nil {
		return false, err
	}

	if lo.ContainsBy(titles, func(t catalog.Title) bool { return t.Key() == title.Key() }) {
		titles = lo.Reject(titles, func(t catalog.Title, _ int) bool { return t.Key() == title.Key() })
		return false, cacher.Set(titles)
	}

	return true, cacher.Set(append(titles, title))
}

// Clear removes every favorite.
func Clear() error {
	return cacher.Set([]catalog.Title{})
}
