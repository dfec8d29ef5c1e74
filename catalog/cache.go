package catalog

import (
	"sync"
	"time"

	"github.com/lumina-cli/lumina/filesystem"
	"github.com/lumina-cli/lumina/where"
	"github.com/metafates/gache"
	"github.com/samber/mo"
)

type cacheData[K comparable, T any] struct {
	Entries map[K]T `json:"entries"`
}

// cacher is a keyed view over a single gache file.
type cacher[K comparable, T any] struct {
	internal *gache.Cache[*cacheData[K, T]]
	mu       sync.RWMutex
}

func (c *cacher[K, T]) Get(key K) mo.Option[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, expired, err := c.internal.Get()
	if err != nil || expired || data == nil {
		return mo.None[T]()
	}

	if value, ok := data.Entries[key]; ok {
		return mo.Some(value)
	}

	return mo.None[T]()
}

func (c *cacher[K, T]) Set(key K, value T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, expired, err := c.internal.Get()
	if err != nil {
		return err
	}

	if expired || data == nil {
		data = &cacheData[K, T]{Entries: make(map[K]T)}
	}

	data.Entries[key] = value
	return c.internal.Set(data)
}

// Clear drops every cached entry.
func (c *cacher[K, T]) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.internal.Set(&cacheData[K, T]{Entries: make(map[K]T)})
}

var trendingCacher = &cacher[string, []Title]{
	internal: gache.New[*cacheData[string, []Title]](
		&gache.Options{
			Path:       where.Trending(),
			Lifetime:   6 * time.Hour,
			FileSystem: &filesystem.GacheFs{},
		},
	),
}

// ClearCache forgets the cached trending titles.
func ClearCache() error {
	return trendingCacher.Clear()
}
