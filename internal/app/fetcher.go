package service

import (
	"context"
	"fmt"

	"github.com/okian/teambalancer/internal/adapters/source"
	"github.com/okian/teambalancer/internal/domain/model"
	"github.com/okian/teambalancer/internal/domain/rank"
)

// historyFetcher adapts a source.Source to worker.Fetcher by parsing the raw
// season strings.
type historyFetcher struct {
	source source.Source
}

func (f *historyFetcher) Fetch(ctx context.Context, name string) ([]model.RankRecord, error) {
	raws, err := f.source.FetchHistory(ctx, name)
	if err != nil {
		return nil, err
	}

	history, err := rank.ParseHistory(raws)
	if err != nil {
		return nil, fmt.Errorf("parse history: %w", err)
	}
	return history, nil
}
