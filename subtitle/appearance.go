package subtitle

import (
	"fmt"
	"strconv"
)

// Size is the subtitle font size in pixels.
type Size int

const (
	SizeSmall  Size = 18
	SizeMedium Size = 24
	SizeLarge  Size = 32
	SizeExtra  Size = 42
)

// Sizes lists the selectable sizes in display order.
var Sizes = []Size{SizeSmall, SizeMedium, SizeLarge, SizeExtra}

var sizeNames = map[Size]string{
	SizeSmall:  "small",
	SizeMedium: "medium",
	SizeLarge:  "large",
	SizeExtra:  "extra",
}

func (s Size) String() string {
	if name, ok := sizeNames[s]; ok {
		return name
	}
	return strconv.Itoa(int(s)) + "px"
}

// Color is a subtitle text color in #rrggbb form.
type Color string

const (
	ColorWhite  Color = "#ffffff"
	ColorYellow Color = "#ffff00"
	ColorGreen  Color = "#00ff00"
	ColorCyan   Color = "#00ffff"
)

// Colors lists the selectable colors in display order.
var Colors = []Color{ColorWhite, ColorYellow, ColorGreen, ColorCyan}

var colorNames = map[Color]string{
	ColorWhite:  "white",
	ColorYellow: "yellow",
	ColorGreen:  "green",
	ColorCyan:   "cyan",
}

func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return string(c)
}

// Font is a generic font family.
type Font string

const (
	FontSans  Font = "sans-serif"
	FontMono  Font = "monospace"
	FontSerif Font = "serif"
)

// Fonts lists the selectable fonts in display order.
var Fonts = []Font{FontSans, FontMono, FontSerif}

var fontNames = map[Font]string{
	FontSans:  "sans",
	FontMono:  "mono",
	FontSerif: "serif",
}

func (f Font) String() string {
	if name, ok := fontNames[f]; ok {
		return name
	}
	return string(f)
}

// Appearance describes how cues are rendered. It is passed explicitly to
// whatever renders subtitles and never stored globally.
type Appearance struct {
	Size  Size
	Color Color
	Font  Font
}

// DefaultAppearance is medium white sans-serif text.
func DefaultAppearance() Appearance {
	return Appearance{Size: SizeMedium, Color: ColorWhite, Font: FontSans}
}

// ParseAppearance builds an appearance from configuration names.
// Unknown names keep the default for that field.
func ParseAppearance(size, color, font string) Appearance {
	a := DefaultAppearance()
	for s, name := range sizeNames {
		if name == size {
			a.Size = s
		}
	}
	for c, name := range colorNames {
		if name == color {
			a.Color = c
		}
	}
	for f, name := range fontNames {
		if name == font {
			a.Font = f
		}
	}
	return a
}

// Properties projects the appearance onto mpv subtitle properties.
// mpv measures sub-font-size in scaled pixels relative to a 720 pixel tall window.
func (a Appearance) Properties() map[string]any {
	return map[string]any{
		"sub-font-size": int(a.Size) * 2,
		"sub-color":     string(a.Color),
		"sub-font":      string(a.Font),
	}
}

// Delay is a subtitle sync offset in tenths of a second.
// Integer steps keep any sequence of ±0.1 adjustments exact.
type Delay int

// DelayStep is the increment used by the delay stepper.
const DelayStep Delay = 1

// Seconds returns the offset in seconds.
func (d Delay) Seconds() float64 {
	return float64(d) / 10
}

// Increase shifts subtitles later.
func (d Delay) Increase() Delay { return d + DelayStep }

// Decrease shifts subtitles earlier.
func (d Delay) Decrease() Delay { return d - DelayStep }

func (d Delay) String() string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}
