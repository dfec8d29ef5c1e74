package player

import "fmt"

// fakeBackend records every call made by the engine.
type fakeBackend struct {
	opened  []string
	openErr error
	events  chan Event
	calls   []string
	seeks   []float64
	props   map[string]any
	subs    []string
	closed  int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{events: make(chan Event, 16), props: map[string]any{}}
}

func (f *fakeBackend) Open(target, title string) error {
	f.opened = append(f.opened, target)
	return f.openErr
}

func (f *fakeBackend) Events() <-chan Event { return f.events }

func (f *fakeBackend) Play() error  { f.calls = append(f.calls, "play"); return nil }
func (f *fakeBackend) Pause() error { f.calls = append(f.calls, "pause"); return nil }

func (f *fakeBackend) Seek(seconds float64) error {
	f.seeks = append(f.seeks, seconds)
	return nil
}

func (f *fakeBackend) SetVolume(v float64) error {
	f.calls = append(f.calls, fmt.Sprintf("volume %.1f", v))
	return nil
}

func (f *fakeBackend) SetMute(m bool) error {
	f.calls = append(f.calls, fmt.Sprintf("mute %t", m))
	return nil
}

func (f *fakeBackend) SetRate(r float64) error {
	f.calls = append(f.calls, fmt.Sprintf("rate %.2f", r))
	return nil
}

func (f *fakeBackend) SetFullscreen(fs bool) error {
	f.calls = append(f.calls, fmt.Sprintf("fullscreen %t", fs))
	return nil
}

func (f *fakeBackend) SetProperties(props map[string]any) error {
	for k, v := range props {
		f.props[k] = v
	}
	return nil
}

func (f *fakeBackend) LoadSubtitle(path string) error {
	f.subs = append(f.subs, path)
	return nil
}

func (f *fakeBackend) Close() error {
	f.closed++
	return nil
}
