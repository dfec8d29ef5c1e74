package inline

import (
	"encoding/json"
	"io"

	"github.com/lumina-cli/lumina/catalog"
	"github.com/lumina-cli/lumina/stream"
)

type Result struct {
	Title catalog.Title `json:"title"`
	// IMDbID is only known when streams were requested.
	IMDbID  string          `json:"imdbId,omitempty"`
	Streams []stream.Stream `json:"streams,omitempty"`
}

type Output struct {
	Query  string    `json:"query"`
	Result []*Result `json:"result"`
}

// StreamsOutput is written by the streams command.
type StreamsOutput struct {
	Request stream.Request  `json:"request"`
	Filter  string          `json:"filter"`
	Streams []stream.Stream `json:"streams"`
}

func writeJson(out io.Writer, v any) error {
	encoder := json.NewEncoder(out)
	encoder.SetEscapeHTML(false)
	return encoder.Encode(v)
}
