package controls

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	. "github.com/smartystreets/goconvey/convey"
)

// fire runs a timer command to completion and returns the tick it delivers.
func fire(cmd tea.Cmd) HideMsg {
	So(cmd, ShouldNotBeNil)
	msg, ok := cmd().(HideMsg)
	So(ok, ShouldBeTrue)
	return msg
}

func TestAutoHide(t *testing.T) {
	Convey("Given a router with an armed timer", t, func() {
		r := New(time.Millisecond)
		armed := r.Arm()
		So(r.Visible(), ShouldBeTrue)

		Convey("Inactivity hides the controls", func() {
			r.Hide(fire(armed))
			So(r.Visible(), ShouldBeFalse)

			Convey("Pointer movement shows them again", func() {
				cmd := r.PointerMoved()
				So(r.Visible(), ShouldBeTrue)
				r.Hide(fire(cmd))
				So(r.Visible(), ShouldBeFalse)
			})
		})

		Convey("An open submenu keeps the controls visible", func() {
			r.OpenMenu(MenuVideo)
			So(r.Menu(), ShouldEqual, MenuVideo)

			// every timer that could have fired during five idle seconds
			stale := fire(armed)
			for i := 0; i < 5; i++ {
				r.Hide(stale)
				So(r.Visible(), ShouldBeTrue)
			}

			Convey("Closing it re-arms the timer which then hides them", func() {
				cmd := r.CloseMenu()
				So(r.Menu(), ShouldEqual, MenuNone)
				So(r.Visible(), ShouldBeTrue)

				r.Hide(stale)
				So(r.Visible(), ShouldBeTrue)

				r.Hide(fire(cmd))
				So(r.Visible(), ShouldBeFalse)
			})
		})

		Convey("Re-arming makes the earlier timer stale", func() {
			first := fire(armed)
			second := r.PointerMoved()
			r.Hide(first)
			So(r.Visible(), ShouldBeTrue)
			r.Hide(fire(second))
			So(r.Visible(), ShouldBeFalse)
		})

		Convey("Minimized mode disables the overlay and the timer", func() {
			So(r.SetMinimized(true), ShouldBeNil)
			So(r.Visible(), ShouldBeFalse)
			So(r.PointerMoved(), ShouldBeNil)
			r.Hide(fire(armed))
			So(r.Visible(), ShouldBeFalse)

			Convey("Leaving it restores visible controls and arms the timer", func() {
				cmd := r.SetMinimized(false)
				So(r.Visible(), ShouldBeTrue)
				r.Hide(fire(cmd))
				So(r.Visible(), ShouldBeFalse)
			})
		})

		Convey("Stop disarms every timer", func() {
			r.Stop()
			r.Hide(fire(armed))
			So(r.Visible(), ShouldBeTrue)
			So(r.PointerMoved(), ShouldBeNil)
			So(r.Arm(), ShouldBeNil)
		})
	})
}

func TestRoute(t *testing.T) {
	Convey("Given a router", t, func() {
		r := New(time.Millisecond)

		keys := map[string]tea.KeyMsg{
			"space": {Type: tea.KeySpace, Runes: []rune{' '}},
			"f":     {Type: tea.KeyRunes, Runes: []rune{'f'}},
			"m":     {Type: tea.KeyRunes, Runes: []rune{'m'}},
			"right": {Type: tea.KeyRight},
			"left":  {Type: tea.KeyLeft},
			"esc":   {Type: tea.KeyEscape},
		}

		Convey("Transport keys map to actions", func() {
			for name, want := range map[string]Action{
				"space": ActionTogglePlay,
				"f":     ActionToggleFullscreen,
				"m":     ActionToggleMute,
				"right": ActionSeekForward,
				"left":  ActionSeekBackward,
				"esc":   ActionClose,
			} {
				action, cmd := r.Route(keys[name])
				So(action, ShouldEqual, want)
				So(cmd, ShouldNotBeNil)
			}
		})

		Convey("Unknown keys do nothing", func() {
			action, cmd := r.Route(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'z'}})
			So(action, ShouldEqual, ActionNone)
			So(cmd, ShouldBeNil)
		})

		Convey("Keys are ignored while a menu is open", func() {
			r.OpenMenu(MenuSubtitles)
			for _, msg := range keys {
				action, _ := r.Route(msg)
				So(action, ShouldEqual, ActionNone)
			}
		})
	})
}
