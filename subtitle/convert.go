// Package subtitle turns user supplied subtitle files into timed-text tracks the player can load.
//
// Legacy SubRip input is rewritten into WebVTT, written to a scoped temporary file
// and handed out as a Track that must be released explicitly.
package subtitle

import (
	"regexp"
	"strings"
)

// Header is the first line of every WebVTT document.
const Header = "WEBVTT"

var (
	timestampRegex = regexp.MustCompile(`(\d\d:\d\d:\d\d),(\d\d\d)`)
	openTagRegex   = regexp.MustCompile(`\{\\([ibu])1\}`)
	closeTagRegex  = regexp.MustCompile(`\{\\([ibu])0\}`)
)

// Convert rewrites SubRip text into WebVTT.
// Malformed input is passed through as is, the resulting track simply renders fewer cues.
func Convert(raw string) string {
	text := normalize(raw)
	text = timestampRegex.ReplaceAllString(text, "$1.$2")
	text = openTagRegex.ReplaceAllString(text, "<$1>")
	text = closeTagRegex.ReplaceAllString(text, "</$1>")

	return Header + "\n\n" + text
}

// Prepare returns WebVTT text for raw input of either format.
// Documents that already carry a WebVTT header are only normalized.
func Prepare(raw string) string {
	text := normalize(raw)
	if IsVTT(text) {
		return text
	}

	return Convert(text)
}

// IsVTT reports whether the text starts with a WebVTT header.
func IsVTT(text string) bool {
	text = strings.TrimPrefix(text, "\uFEFF")
	if !strings.HasPrefix(text, Header) {
		return false
	}

	rest := text[len(Header):]
	return rest == "" || rest[0] == '\n' || rest[0] == '\r' || rest[0] == ' ' || rest[0] == '\t'
}

func normalize(text string) string {
	text = strings.TrimPrefix(text, "\uFEFF")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return text
}
