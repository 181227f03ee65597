// Package scoring turns rank histories into comparable scalar scores and
// aggregates them across a cohort.
package scoring

import (
	"errors"
	"fmt"
	"sort"

	"github.com/okian/teambalancer/internal/domain/model"
	"github.com/okian/teambalancer/internal/domain/rank"
)

var errNoValues = errors.New("median of no values")

// Median returns the statistical median; an even count averages the two
// middle values. The input slice is not modified.
func Median(values []float64) (float64, error) {
	n := len(values)
	if n == 0 {
		return 0, errNoValues
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := n / 2
	if n%2 == 1 {
		return sorted[mid], nil
	}
	return (sorted[mid-1] + sorted[mid]) / 2, nil
}

// ComputeScore picks the higher of the history median and the most recent
// season. Ties resolve to the median. The last record must be the most
// recent season.
func ComputeScore(history []model.RankRecord) (model.Score, error) {
	if len(history) == 0 {
		return model.Score{}, ErrEmptyHistory
	}

	values := make([]float64, len(history))
	for i, rec := range history {
		v, err := rank.Value(rec)
		if err != nil {
			return model.Score{}, fmt.Errorf("season %d: %w", i+1, err)
		}
		values[i] = v
	}

	median, err := Median(values)
	if err != nil {
		return model.Score{}, err
	}
	current := values[len(values)-1]

	if current > median {
		return model.Score{Value: current, Basis: model.BasisCurrentRank}, nil
	}
	return model.Score{Value: median, Basis: model.BasisMedianHistory}, nil
}

// ComputeGroupScore returns the median of the given player scores.
func ComputeGroupScore(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptyCohort
	}
	return Median(values)
}
