package subtitle

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/lumina-cli/lumina/filesystem"
	"github.com/lumina-cli/lumina/log"
	"github.com/lumina-cli/lumina/util"
	"github.com/lumina-cli/lumina/where"
	"github.com/spf13/afero"
)

// ErrReleased is returned when reading a track that was already released.
var ErrReleased = errors.New("subtitle track released")

// Track is a converted subtitle file owned by one player session.
type Track struct {
	id      string
	name    string
	path    string
	content string
	fs      afero.Fs

	once     sync.Once
	released bool
}

// ID returns the unique track identifier.
func (t *Track) ID() string { return t.id }

// Name returns the file name the user picked.
func (t *Track) Name() string { return t.name }

// Path returns the location of the converted file.
func (t *Track) Path() string { return t.path }

// URL returns a file:// address for the converted file.
func (t *Track) URL() string {
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(t.path)}).String()
}

// Content returns the converted WebVTT text.
func (t *Track) Content() (string, error) {
	if t.Released() {
		return "", ErrReleased
	}
	return t.content, nil
}

// Released reports whether Release was called.
func (t *Track) Released() bool { return t.released }

// Release removes the backing file. It is safe to call more than once.
func (t *Track) Release() error {
	var err error
	t.once.Do(func() {
		t.released = true
		if rmErr := t.fs.Remove(t.path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			err = fmt.Errorf("release subtitle track: %w", rmErr)
		}
		log.Debugf("released subtitle track %s (%s)", t.id, t.name)
	})
	return err
}

// Store writes converted tracks to a directory.
type Store struct {
	dir string
	fs  afero.Fs
}

// NewStore returns a Store rooted at the application subtitle directory.
func NewStore() *Store {
	return &Store{dir: where.Subtitles(), fs: filesystem.API()}
}

// NewStoreAt returns a Store rooted at dir on the given filesystem.
func NewStoreAt(fs afero.Fs, dir string) *Store {
	return &Store{dir: dir, fs: fs}
}

// Acquire converts raw and writes it as a new track.
// The caller owns the returned track and must release it.
func (s *Store) Acquire(name, raw string) (*Track, error) {
	if err := s.fs.MkdirAll(s.dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("create subtitle directory: %w", err)
	}

	id := uuid.NewString()
	track := &Track{
		id:      id,
		name:    name,
		path:    filepath.Join(s.dir, id+".vtt"),
		content: Prepare(raw),
		fs:      s.fs,
	}

	if err := afero.WriteFile(s.fs, track.path, []byte(track.content), 0o644); err != nil {
		return nil, fmt.Errorf("write subtitle track: %w", err)
	}

	log.Debugf("acquired subtitle track %s for %q", id, name)
	return track, nil
}

// Load reads a subtitle file from disk and acquires a track for it.
func (s *Store) Load(path string) (*Track, error) {
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".srt" && ext != ".vtt" {
		return nil, fmt.Errorf("unsupported subtitle format %q", ext)
	}

	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, fmt.Errorf("read subtitle file: %w", err)
	}

	return s.Acquire(filepath.Base(path), string(data))
}

// Purge removes leftovers of previous sessions.
func (s *Store) Purge() error {
	exists, err := afero.DirExists(s.fs, s.dir)
	if err != nil || !exists {
		return err
	}

	entries, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if filepath.Ext(entry.Name()) == ".vtt" {
			util.Ignore(func() error { return s.fs.Remove(filepath.Join(s.dir, entry.Name())) })
		}
	}
	return nil
}

// Slot holds at most one active track.
type Slot struct {
	current *Track
}

// Current returns the active track or nil.
func (s *Slot) Current() *Track { return s.current }

// Replace installs t after releasing the previously held track.
func (s *Slot) Replace(t *Track) error {
	var err error
	if s.current != nil && s.current != t {
		err = s.current.Release()
	}
	s.current = t
	return err
}

// Release releases the active track and empties the slot.
func (s *Slot) Release() error {
	if s.current == nil {
		return nil
	}
	err := s.current.Release()
	s.current = nil
	return err
}
