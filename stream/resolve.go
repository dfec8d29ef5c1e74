package stream

import (
	"context"
	"sync"
	"time"

	"github.com/lumina-cli/lumina/key"
	"github.com/lumina-cli/lumina/log"
	"github.com/spf13/viper"
)

// Resolve queries every provider concurrently and merges their streams in provider order.
// A failing provider contributes nothing. ErrNoSources is returned when the request has
// no IMDb id or when nothing was found.
func Resolve(ctx context.Context, req Request, providers []Provider) ([]Stream, error) {
	if req.IMDbID == "" || len(providers) == 0 {
		return nil, ErrNoSources
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results = make([][]Stream, len(providers))
	)

	for i, provider := range providers {
		wg.Add(1)
		go func(i int, provider Provider) {
			defer wg.Done()

			streams, err := provider.Streams(ctx, req)
			if err != nil {
				log.Warnf("provider %s failed for %s: %s", provider.Name(), req.ID(), err)
				return
			}

			mu.Lock()
			results[i] = streams
			mu.Unlock()
		}(i, provider)
	}

	wg.Wait()

	var merged []Stream
	for _, streams := range results {
		merged = append(merged, streams...)
	}

	if len(merged) == 0 {
		return nil, ErrNoSources
	}

	log.Infof("resolved %d streams for %s", len(merged), req.ID())
	return merged, nil
}

// Timeout is the configured budget for a whole resolution.
func Timeout() time.Duration {
	seconds := viper.GetInt(key.StreamsTimeout)
	if seconds <= 0 {
		seconds = 15
	}
	return time.Duration(seconds) * time.Second
}
