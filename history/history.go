// Package history keeps the most recently played items and where they stopped.
package history

import (
	"time"

	"github.com/lumina-cli/lumina/filesystem"
	"github.com/lumina-cli/lumina/key"
	"github.com/lumina-cli/lumina/where"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

var cacher = gache.New[[]*Entry](
	&gache.Options{
		Path:       where.History(),
		FileSystem: &filesystem.GacheFs{},
	},
)

var now = time.Now

// Get returns the entries, most recent first.
func Get() ([]*Entry, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return []*Entry{}, nil
	}
	return cached, nil
}

func limit() int {
	if n := viper.GetInt(key.HistoryLimit); n > 0 {
		return n
	}
	return 30
}

// Save moves entry to the front, replacing an older entry with the same id.
// Progress of the older entry is kept when entry carries none.
// Nothing is written when history is disabled.
func Save(entry *Entry) error {
	if !viper.GetBool(key.HistorySave) {
		return nil
	}

	saved, err := Get()
	if err != nil {
		return err
	}

	if previous, ok := lo.Find(saved, func(e *Entry) bool { return e.ID == entry.ID }); ok && entry.Time == 0 {
		entry.Time = previous.Time
		entry.Duration = previous.Duration
	}

	entry.Watched = now()
	saved = lo.Filter(saved, func(e *Entry, _ int) bool { return e.ID != entry.ID })
	saved = append([]*Entry{entry}, saved...)

	if len(saved) > limit() {
		saved = saved[:limit()]
	}

	return cacher.Set(saved)
}

// SaveProgress records the playback position of the entry with the given id.
// Unknown ids are ignored.
func SaveProgress(id string, time, duration float64) error {
	if !viper.GetBool(key.HistorySave) {
		return nil
	}

	saved, err := Get()
	if err != nil {
		return err
	}

	entry, ok := lo.Find(saved, func(e *Entry) bool { return e.ID == id })
	if !ok {
		return nil
	}

	entry.Time = time
	entry.Duration = duration
	return cacher.Set(saved)
}

// Find returns the entry with the given id.
func Find(id string) mo.Option[*Entry] {
	saved, err := Get()
	if err != nil {
		return mo.None[*Entry]()
	}

	entry, ok := lo.Find(saved, func(e *Entry) bool { return e.ID == id })
	if !ok {
		return mo.None[*Entry]()
	}
	return mo.Some(entry)
}

// ResumePoint returns where to restart the item, if resuming is enabled and it stopped midway.
func ResumePoint(id string) mo.Option[float64] {
	if !viper.GetBool(key.PlayerResume) {
		return mo.None[float64]()
	}

	entry, ok := Find(id).Get()
	if !ok || !entry.Resumable() {
		return mo.None[float64]()
	}
	return mo.Some(entry.Time)
}

// Last returns the most recent entry.
func Last() mo.Option[*Entry] {
	saved, err := Get()
	if err != nil || len(saved) == 0 {
		return mo.None[*Entry]()
	}
	return mo.Some(saved[0])
}

// Remove deletes the entry with the given id.
func Remove(id string) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	return cacher.Set(lo.Filter(saved, func(e *Entry, _ int) bool { return e.ID != id }))
}

// Clear forgets everything.
func Clear() error {
	return cacher.Set([]*Entry{})
}
