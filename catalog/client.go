package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/lumina-cli/lumina/auth"
	"github.com/lumina-cli/lumina/constant"
	"github.com/lumina-cli/lumina/key"
	"github.com/lumina-cli/lumina/log"
	"github.com/lumina-cli/lumina/network"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// DefaultBaseURL is the TMDb v3 API root.
const DefaultBaseURL = "https://api.themoviedb.org/3"

// Client talks to the TMDb v3 REST API.
type Client struct {
	apiKey       string
	language     string
	includeAdult bool
	baseURL      string
	http         *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another API root.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithLanguage sets the language of returned titles.
func WithLanguage(lang string) Option {
	return func(c *Client) { c.language = lang }
}

// WithIncludeAdult toggles adult results in searches.
func WithIncludeAdult(include bool) Option {
	return func(c *Client) { c.includeAdult = include }
}

// WithHTTPClient replaces the shared network client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New returns a client using the given API key.
func New(apiKey string, options ...Option) *Client {
	c := &Client{
		apiKey:   apiKey,
		language: "en-US",
		baseURL:  DefaultBaseURL,
		http:     network.Client,
	}

	for _, option := range options {
		option(c)
	}

	return c
}

// FromConfig builds a client from the configuration and the keyring.
func FromConfig() (*Client, error) {
	apiKey := auth.ResolveAPIKey()
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}

	return New(
		apiKey,
		WithLanguage(viper.GetString(key.CatalogLanguage)),
		WithIncludeAdult(viper.GetBool(key.CatalogIncludeAdult)),
	), nil
}

// Language returns the configured response language.
func (c *Client) Language() string {
	return c.language
}

func (c *Client) get(ctx context.Context, path string, params url.Values, target any) error {
	if c.apiKey == "" {
		return ErrNoAPIKey
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", constant.UserAgent)

	log.Debugf("TMDb request %s", path)
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("tmdb %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tmdb %s: invalid response code %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("tmdb %s: %w", path, err)
	}

	return nil
}

type page struct {
	Results []result `json:"results"`
}

// SearchMulti searches movies and series at once. People are dropped.
func (c *Client) SearchMulti(ctx context.Context, query string) ([]Title, error) {
	if query == "" {
		return []Title{}, nil
	}

	var p page
	err := c.get(ctx, "/search/multi", url.Values{
		"query":         {query},
		"language":      {c.language},
		"include_adult": {strconv.FormatBool(c.includeAdult)},
	}, &p)
	if err != nil {
		return nil, err
	}

	return lo.FilterMap(p.Results, func(r result, _ int) (Title, bool) {
		if r.MediaType != string(Movie) && r.MediaType != string(TV) {
			return Title{}, false
		}
		return r.title(Movie), true
	}), nil
}

// Trending returns the titles trending this week.
// Results are cached per language for six hours.
func (c *Client) Trending(ctx context.Context) ([]Title, error) {
	if titles, ok := trendingCacher.Get(c.language).Get(); ok {
		return titles, nil
	}

	var p page
	if err := c.get(ctx, "/trending/all/week", url.Values{"language": {c.language}}, &p); err != nil {
		return nil, err
	}

	titles := lo.FilterMap(p.Results, func(r result, _ int) (Title, bool) {
		if r.MediaType == "person" {
			return Title{}, false
		}
		return r.title(Movie), true
	})

	if err := trendingCacher.Set(c.language, titles); err != nil {
		log.Warnf("could not cache trending titles: %s", err)
	}

	return titles, nil
}

// ExternalID returns the IMDb id of a title, or an empty string when TMDb has none.
func (c *Client) ExternalID(ctx context.Context, id int, kind Kind) (string, error) {
	var ids struct {
		IMDbID *string `json:"imdb_id"`
	}

	if err := c.get(ctx, fmt.Sprintf("/%s/%d/external_ids", kind, id), nil, &ids); err != nil {
		return "", err
	}

	if ids.IMDbID == nil {
		return "", nil
	}
	return *ids.IMDbID, nil
}

// TVDetails returns the regular seasons of a series. Specials (season 0) are dropped.
func (c *Client) TVDetails(ctx context.Context, id int) ([]Season, error) {
	var details struct {
		Seasons []Season `json:"seasons"`
	}

	if err := c.get(ctx, fmt.Sprintf("/tv/%d", id), url.Values{"language": {c.language}}, &details); err != nil {
		return nil, err
	}

	return lo.Filter(details.Seasons, func(s Season, _ int) bool {
		return s.Number > 0
	}), nil
}

// Search runs SearchMulti and degrades every failure to an empty result.
func Search(ctx context.Context, c *Client, query string) []Title {
	titles, err := c.SearchMulti(ctx, query)
	if err != nil {
		log.Errorf("search %q: %s", query, err)
		return []Title{}
	}
	return titles
}
