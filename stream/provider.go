package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/lumina-cli/lumina/constant"
	"github.com/lumina-cli/lumina/internal/cache"
	"github.com/lumina-cli/lumina/log"
	"github.com/lumina-cli/lumina/network"
	"github.com/samber/lo"
)

// Origins of the built-in addons.
const (
	Torrentio = "Torrentio"
	Brazuca   = "Brazuca"
)

// Provider produces stream candidates for a request.
type Provider interface {
	ID() string
	Name() string
	Streams(ctx context.Context, req Request) ([]Stream, error)
}

// Stremio queries a Stremio addon's /stream endpoint.
type Stremio struct {
	id      string
	name    string
	baseURL string
	http    *http.Client
}

// NewStremio returns a provider for the addon rooted at baseURL.
func NewStremio(id, name, baseURL string) *Stremio {
	return &Stremio{
		id:      id,
		name:    name,
		baseURL: baseURL,
		http:    network.Client,
	}
}

func (s *Stremio) ID() string   { return s.id }
func (s *Stremio) Name() string { return s.name }

type stremioResponse struct {
	Streams []Stream `json:"streams"`
}

// Streams fetches {baseURL}/stream/{type}/{id}.json and tags every entry with the addon name.
func (s *Stremio) Streams(ctx context.Context, req Request) ([]Stream, error) {
	url := fmt.Sprintf("%s/stream/%s/%s.json", s.baseURL, req.Kind.StremioType(), req.ID())
	cacheKey := cache.GenerateKey(url, s.id)

	var streams []Stream
	if cache.Read(cacheKey, &streams) {
		return streams, nil
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	request.Header.Set("User-Agent", constant.UserAgent)

	resp, err := s.http.Do(request)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned status code %d", s.name, resp.StatusCode)
	}

	var body stremioResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%s: %w", s.name, err)
	}

	streams = lo.Map(body.Streams, func(st Stream, _ int) Stream {
		st.Origin = s.name
		return st
	})

	if len(streams) > 0 {
		if err := cache.Write(cacheKey, streams); err != nil {
			log.Warnf("could not cache %s streams: %s", s.name, err)
		}
	}

	return streams, nil
}

// Builtins returns the built-in addons keyed by id.
func Builtins() map[string]Provider {
	return map[string]Provider{
		"torrentio": NewStremio("torrentio", Torrentio, "https://torrentio.strem.fun"),
		"brazuca":   NewStremio("brazuca", Brazuca, "https://brazuca-torrents.strem.fun"),
	}
}

// Enabled returns the built-in addons named in ids, in order. Unknown ids are skipped.
func Enabled(ids []string) []Provider {
	builtins := Builtins()
	return lo.FilterMap(lo.Uniq(ids), func(id string, _ int) (Provider, bool) {
		p, ok := builtins[id]
		if !ok {
			log.Warnf("unknown stream provider %q", id)
		}
		return p, ok
	})
}
