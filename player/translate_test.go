package player

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestTranslate(t *testing.T) {
	Convey("Observed mpv properties become engine events", t, func() {
		cases := []struct {
			name string
			data any
			want Event
		}{
			{"duration", 125.5, MetadataEvent{Duration: 125.5}},
			{"time-pos", 3.25, TimeEvent{Position: 3.25}},
			{"pause", true, PlaybackEvent{Playing: false}},
			{"pause", false, PlaybackEvent{Playing: true}},
			{"paused-for-cache", true, BufferingEvent{Active: true}},
			{"volume", 50.0, VolumeEvent{Volume: 0.5}},
			{"volume", 130.0, VolumeEvent{Volume: 1}},
			{"mute", true, MuteEvent{Muted: true}},
			{"speed", 1.25, RateEvent{Rate: 1.25}},
			{"fullscreen", true, FullscreenEvent{Fullscreen: true}},
			{"eof-reached", true, EndEvent{}},
		}

		for _, c := range cases {
			got, ok := Translate(c.name, c.data)
			So(ok, ShouldBeTrue)
			So(got, ShouldResemble, c.want)
		}
	})

	Convey("Unavailable values are dropped", t, func() {
		for _, c := range []struct {
			name string
			data any
		}{
			{"duration", nil},
			{"duration", 0.0},
			{"time-pos", nil},
			{"eof-reached", false},
			{"speed", 0.0},
			{"chapter", 1.0},
		} {
			_, ok := Translate(c.name, c.data)
			So(ok, ShouldBeFalse)
		}
	})

	Convey("A failed end-file becomes a failure", t, func() {
		got, ok := Translate("end-file", map[string]any{"event": "end-file", "reason": "error", "file_error": "unrecognized file format"})
		So(ok, ShouldBeTrue)
		failure := got.(FailureEvent)
		So(errors.Is(failure.Err, ErrPlayback), ShouldBeTrue)
		So(failure.Err.Error(), ShouldContainSubstring, "unrecognized file format")

		_, ok = Translate("end-file", map[string]any{"event": "end-file", "reason": "quit"})
		So(ok, ShouldBeFalse)
	})

	Convey("Raw mpv lines are parsed", t, func() {
		event, ok := parseLine([]byte(`{"event":"property-change","id":2,"name":"duration","data":90.0}`))
		So(ok, ShouldBeTrue)
		So(event, ShouldResemble, MetadataEvent{Duration: 90})

		_, ok = parseLine([]byte(`{"request_id":0,"error":"success"}`))
		So(ok, ShouldBeFalse)

		_, ok = parseLine([]byte(`not json`))
		So(ok, ShouldBeFalse)
	})
}
