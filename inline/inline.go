package inline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/lumina-cli/lumina/catalog"
	"github.com/lumina-cli/lumina/log"
	"github.com/lumina-cli/lumina/stream"
)

// Run searches the catalog and writes the selected titles, and optionally their streams.
func Run(ctx context.Context, options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	if options.Client == nil {
		return catalog.ErrNoAPIKey
	}

	titles, err := options.Client.SearchMulti(ctx, options.Query)
	if err != nil {
		return err
	}

	if options.Picker.IsPresent() {
		picked, ok := options.Picker.MustGet()(titles).Get()
		titles = nil
		if ok {
			titles = []catalog.Title{picked}
		}
	}

	results := make([]*Result, len(titles))
	for i, t := range titles {
		results[i] = &Result{Title: t}

		if !options.Streams {
			continue
		}

		if err := resolve(ctx, options, results[i]); err != nil {
			if !errors.Is(err, stream.ErrNoSources) {
				return err
			}
			log.Warnf("%s: %s", t, err)
		}
	}

	if options.Json {
		return writeJson(options.Out, &Output{Query: options.Query, Result: results})
	}

	for _, r := range results {
		if !options.Streams {
			fmt.Fprintf(options.Out, "%d\t%s\t%s\n", r.Title.ID, r.Title.Kind, r.Title)
			continue
		}
		writeStreams(options.Out, r.Streams)
	}

	return nil
}

func resolve(ctx context.Context, options *Options, r *Result) error {
	imdb, err := options.Client.ExternalID(ctx, r.Title.ID, r.Title.Kind)
	if err != nil {
		return err
	}
	r.IMDbID = imdb

	req := stream.Request{
		IMDbID:  imdb,
		Kind:    r.Title.Kind,
		Season:  max(options.Season, 1),
		Episode: max(options.Episode, 1),
	}
	if req.Kind == catalog.Movie {
		req.Season, req.Episode = 0, 0
	}

	streams, err := stream.Resolve(ctx, req, options.Providers)
	if err != nil {
		return err
	}

	r.Streams = stream.Filter(streams, options.Filter)
	return nil
}

// Streams resolves req directly and writes the result.
func Streams(ctx context.Context, out io.Writer, req stream.Request, providers []stream.Provider, filter string, asJson bool) error {
	streams, err := stream.Resolve(ctx, req, providers)
	if err != nil {
		return err
	}

	streams = stream.Filter(streams, filter)
	if asJson {
		return writeJson(out, &StreamsOutput{Request: req, Filter: filter, Streams: streams})
	}

	writeStreams(out, streams)
	return nil
}

func writeStreams(out io.Writer, streams []stream.Stream) {
	for _, s := range streams {
		fmt.Fprintf(out, "%s\t%s\n", s.Heading(), s.Playable())
	}
}
