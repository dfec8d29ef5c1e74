// Package display manages the aspect ratio and zoom applied to the rendered frame.
package display

import (
	"fmt"
	"math"

	"github.com/samber/mo"
)

// Mode is an aspect ratio mode.
type Mode int

const (
	ModeOriginal Mode = iota
	ModeWide
	ModeStandard
	ModeUltrawide
	ModeFill
)

// Modes lists every mode in picker order.
var Modes = []Mode{ModeOriginal, ModeWide, ModeStandard, ModeUltrawide, ModeFill}

func (m Mode) String() string {
	switch m {
	case ModeOriginal:
		return "original"
	case ModeWide:
		return "16:9"
	case ModeStandard:
		return "4:3"
	case ModeUltrawide:
		return "21:9"
	case ModeFill:
		return "fill"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Ratio is a width to height ratio.
type Ratio struct {
	W, H int
}

func (r Ratio) String() string {
	return fmt.Sprintf("%d:%d", r.W, r.H)
}

// Ratio returns the box ratio forced by the mode, if any.
func (m Mode) Ratio() mo.Option[Ratio] {
	switch m {
	case ModeWide:
		return mo.Some(Ratio{16, 9})
	case ModeStandard:
		return mo.Some(Ratio{4, 3})
	case ModeUltrawide:
		return mo.Some(Ratio{21, 9})
	default:
		return mo.None[Ratio]()
	}
}

// Fit describes how the frame fills its box.
type Fit int

const (
	// FitContain keeps the source ratio inside the box.
	FitContain Fit = iota
	// FitFill stretches the frame to the box bounds.
	FitFill
)

func (f Fit) String() string {
	if f == FitFill {
		return "fill"
	}
	return "contain"
}

// Zoom bounds and step in tenths.
const (
	MinZoom  = 10
	MaxZoom  = 20
	ZoomStep = 1
)

// Style is the presentation derived from a Geometry.
type Style struct {
	Fit   Fit
	Ratio mo.Option[Ratio]
	Scale float64
}

// Geometry holds the aspect mode and zoom of a player session.
// The zero value is not valid, use New.
type Geometry struct {
	mode Mode
	zoom int
}

// New returns the default geometry: original ratio at 1.0x.
func New() Geometry {
	return Geometry{mode: ModeOriginal, zoom: MinZoom}
}

// Mode returns the aspect ratio mode.
func (g Geometry) Mode() Mode { return g.mode }

// Zoom returns the zoom factor.
func (g Geometry) Zoom() float64 { return float64(g.zoom) / 10 }

// WithMode returns g using mode m. Zoom is untouched.
func (g Geometry) WithMode(m Mode) Geometry {
	if m < ModeOriginal || m > ModeFill {
		return g
	}
	g.mode = m
	return g
}

// ZoomIn increases the zoom by one step up to 2.0.
func (g Geometry) ZoomIn() Geometry {
	return g.withZoomTenths(g.zoom + ZoomStep)
}

// ZoomOut decreases the zoom by one step down to 1.0.
func (g Geometry) ZoomOut() Geometry {
	return g.withZoomTenths(g.zoom - ZoomStep)
}

// ResetZoom returns the zoom to exactly 1.0.
func (g Geometry) ResetZoom() Geometry {
	g.zoom = MinZoom
	return g
}

// WithZoom sets the zoom to the nearest step inside [1.0, 2.0].
func (g Geometry) WithZoom(z float64) Geometry {
	if math.IsNaN(z) {
		return g
	}
	return g.withZoomTenths(int(math.Round(z * 10)))
}

func (g Geometry) withZoomTenths(tenths int) Geometry {
	g.zoom = min(max(tenths, MinZoom), MaxZoom)
	return g
}

// Style derives the frame presentation.
func (g Geometry) Style() Style {
	if g.mode == ModeFill {
		return Style{Fit: FitFill, Ratio: mo.None[Ratio](), Scale: g.Zoom()}
	}
	return Style{Fit: FitContain, Ratio: g.mode.Ratio(), Scale: g.Zoom()}
}

// Properties projects the style onto mpv video properties.
func (g Geometry) Properties() map[string]any {
	style := g.Style()

	keepaspect := "yes"
	if style.Fit == FitFill {
		keepaspect = "no"
	}

	aspect := "-1"
	if r, ok := style.Ratio.Get(); ok {
		aspect = r.String()
	}

	return map[string]any{
		"keepaspect":            keepaspect,
		"video-aspect-override": aspect,
		"video-zoom":            math.Log2(style.Scale),
	}
}

func (g Geometry) String() string {
	return fmt.Sprintf("%s %.1fx", g.mode, g.Zoom())
}
