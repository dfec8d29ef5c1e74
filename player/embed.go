package player

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/lumina-cli/lumina/open"
)

var embedPattern = regexp.MustCompile(`(?i)(youtube\.com|youtu\.be|youtube\.com/embed)`)

// IsEmbedded reports whether the item is played by a third-party web player.
func IsEmbedded(item Item) bool {
	return strings.EqualFold(item.Provider, "YouTube") || embedPattern.MatchString(item.VideoURL)
}

// EmbedURL turns a watch page address into an autoplaying embed address.
func EmbedURL(raw string) string {
	target := strings.Replace(raw, "watch?v=", "embed/", 1)

	if u, err := url.Parse(target); err == nil && strings.EqualFold(u.Host, "youtu.be") {
		u.Host = "www.youtube.com"
		u.Path = "/embed" + u.Path
		target = u.String()
	}

	// drop extra watch parameters that came after v=
	if i := strings.Index(target, "&"); i >= 0 && !strings.Contains(target[:i], "?") {
		target = target[:i]
	}

	sep := "?"
	if strings.Contains(target, "?") {
		sep = "&"
	}
	return target + sep + "autoplay=1&controls=1"
}

// Embed hands the page to a web browser. Once opened the playback can neither
// be observed nor controlled, so every transport call is a no-op.
type Embed struct {
	browser string
	opener  func(target, app string) error
}

// NewEmbed returns a backend opening pages with browser, or the system default when empty.
func NewEmbed(browser string) *Embed {
	return &Embed{browser: browser, opener: open.StartWith}
}

// Open implements Backend.
func (e *Embed) Open(target, _ string) error {
	return e.opener(target, e.browser)
}

// Events implements Backend. Embedded playback emits nothing.
func (e *Embed) Events() <-chan Event { return nil }

func (e *Embed) Play() error                        { return ErrNotControllable }
func (e *Embed) Pause() error                       { return ErrNotControllable }
func (e *Embed) Seek(float64) error                 { return ErrNotControllable }
func (e *Embed) SetVolume(float64) error            { return ErrNotControllable }
func (e *Embed) SetMute(bool) error                 { return ErrNotControllable }
func (e *Embed) SetRate(float64) error              { return ErrNotControllable }
func (e *Embed) SetFullscreen(bool) error           { return ErrNotControllable }
func (e *Embed) SetProperties(map[string]any) error { return ErrNotControllable }
func (e *Embed) LoadSubtitle(string) error          { return ErrNotControllable }

// Close implements Backend.
func (e *Embed) Close() error { return nil }
