// Package source defines where rank histories come from.
package source

import (
	"context"
	"errors"
	"time"

	"github.com/okian/teambalancer/pkg/logger"
	"github.com/okian/teambalancer/pkg/metrics"
)

// Sentinel kinds for retrieval errors.
var (
	ErrFetch          = errors.New("rank history fetch failed")
	ErrUpstreamStatus = errors.New("unexpected upstream status")
	ErrUnknownPlayer  = errors.New("player not known to source")
)

// Source returns raw rank descriptions for one player, oldest season first.
type Source interface {
	FetchHistory(ctx context.Context, name string) ([]string, error)
}

// Func adapts a function to Source.
type Func func(ctx context.Context, name string) ([]string, error)

// FetchHistory implements Source.
func (f Func) FetchHistory(ctx context.Context, name string) ([]string, error) {
	return f(ctx, name)
}

type instrumented struct {
	next     Source
	provider string
	log      logger.Logger
}

// Instrument wraps a Source with logging and fetch metrics.
func Instrument(next Source, provider string, log logger.Logger) Source {
	if log == nil {
		log = logger.Get().Named("source")
	}
	return &instrumented{next: next, provider: provider, log: log}
}

func (s *instrumented) FetchHistory(ctx context.Context, name string) ([]string, error) {
	start := time.Now()
	s.log.Info(ctx, "fetching rank history", logger.String("player", name), logger.String("provider", s.provider))

	seasons, err := s.next.FetchHistory(ctx, name)
	metrics.RecordFetchLatency(s.provider, float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordFetchError(s.provider)
		s.log.Error(ctx, "rank history fetch failed",
			logger.String("player", name),
			logger.String("provider", s.provider),
			logger.Error(err),
		)
		return nil, err
	}

	s.log.Debug(ctx, "rank history fetched",
		logger.String("player", name),
		logger.Int("seasons", len(seasons)),
		logger.Any("ranks", seasons),
	)
	return seasons, nil
}
