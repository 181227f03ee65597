// Package service runs the roster → fetch → score → aggregate → save pipeline.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/okian/teambalancer/internal/adapters/mq/queue"
	"github.com/okian/teambalancer/internal/adapters/mq/worker"
	"github.com/okian/teambalancer/internal/adapters/output"
	"github.com/okian/teambalancer/internal/adapters/repository"
	"github.com/okian/teambalancer/internal/adapters/roster"
	"github.com/okian/teambalancer/internal/adapters/source"
	"github.com/okian/teambalancer/internal/domain/model"
	"github.com/okian/teambalancer/internal/domain/scoring"
	"github.com/okian/teambalancer/pkg/logger"
	"github.com/okian/teambalancer/pkg/metrics"
)

const (
	defaultOutputDir  = "."
	defaultOutputBase = "coby_output"
	defaultQueueSize  = 1024
)

// Report describes a finished run.
type Report struct {
	Cohort model.Cohort
	Path   string
}

// Service wires the run pipeline. A Service is good for one Run.
type Service struct {
	source source.Source
	codec  output.Codec

	outputDir   string
	outputBase  string
	concurrency int
	queueSize   int
	skipFailed  bool
	runID       string
	metricsFile string

	console io.Writer
	logger  logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		codec:       output.JSONCodec{},
		outputDir:   defaultOutputDir,
		outputBase:  defaultOutputBase,
		concurrency: 1,
		queueSize:   defaultQueueSize,
		runID:       uuid.NewString(),
		console:     io.Discard,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	s.logger = s.logger.With(logger.String("run_id", s.runID))

	return s
}

// RunID returns the id stamped on the cohort and every log line.
func (s *Service) RunID() string {
	return s.runID
}

// Run processes the roster at rosterPath and writes the cohort file.
func (s *Service) Run(ctx context.Context, rosterPath string) (Report, error) {
	start := time.Now()
	rep, err := s.run(ctx, rosterPath)
	metrics.UpdateRunDuration(time.Since(start).Seconds())

	if s.metricsFile != "" {
		if werr := metrics.WriteTextfile(s.metricsFile); werr != nil {
			s.logger.Warn(ctx, "metrics textfile not written", logger.Error(werr))
		}
	}

	if err != nil {
		s.logger.Error(ctx, "run failed", logger.Error(err), logger.Duration("took", time.Since(start)))
		return Report{}, err
	}
	s.logger.Info(ctx, "run complete",
		logger.Int("players", rep.Cohort.Count),
		logger.Float64("median_score", rep.Cohort.MedianScore),
		logger.String("path", rep.Path),
		logger.Duration("took", time.Since(start)),
	)
	return rep, nil
}

func (s *Service) run(ctx context.Context, rosterPath string) (Report, error) {
	if s.source == nil {
		return Report{}, ErrNoSource
	}
	out := console{w: s.console}

	r, err := roster.ReadFile(ctx, rosterPath)
	if err != nil {
		metrics.RecordErrorByStage("roster", "input_file")
		return Report{}, err
	}
	metrics.UpdatePlayersTotal(len(r.Names))
	metrics.RecordDuplicateNames(r.Duplicates)
	if r.Duplicates > 0 {
		s.logger.Warn(ctx, "duplicate names collapsed", logger.Int("duplicates", r.Duplicates))
	}
	s.logger.Info(ctx, "roster loaded", logger.String("path", rosterPath), logger.Int("players", len(r.Names)))
	out.roster(r.Names, r.Duplicates)

	store := repository.NewMemoryStore(s.runID)
	for _, name := range r.Names {
		store.AddPlayer(ctx, name)
	}

	results, err := s.fetchAll(ctx, r.Names)
	if err != nil {
		return Report{}, err
	}

	values := make([]float64, 0, len(results))
	for _, res := range results {
		score, err := s.apply(ctx, store, res)
		if err == nil {
			values = append(values, score.Value)
			out.scored(res.Job.Name, score)
			continue
		}

		wrapped := fmt.Errorf("%w: %q: %w", ErrPlayerFailed, res.Job.Name, err)
		if !s.skipFailed {
			return Report{}, wrapped
		}
		store.RemovePlayer(ctx, res.Job.Name)
		metrics.RecordPlayerSkipped()
		s.logger.Warn(ctx, "player skipped", logger.String("player", res.Job.Name), logger.Error(err))
		out.skipped(res.Job.Name, err)
	}

	median, err := scoring.ComputeGroupScore(values)
	if err != nil {
		metrics.RecordErrorByStage("aggregate", "empty_cohort")
		return Report{}, fmt.Errorf("group score: %w", err)
	}
	store.SetMedianScore(ctx, median)
	metrics.UpdateGroupMedianScore(median)

	cohort, err := store.Snapshot(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("snapshot: %w", err)
	}
	out.standings(cohort)

	path, err := output.Save(ctx, s.codec, s.outputDir, s.outputBase, cohort)
	if err != nil {
		metrics.RecordErrorByStage("output", "write")
		return Report{}, err
	}
	out.saved(path)

	return Report{Cohort: cohort, Path: path}, nil
}

// apply stores one fetched history and its score.
func (s *Service) apply(ctx context.Context, store repository.Store, res worker.Result) (model.Score, error) {
	if res.Err != nil {
		return model.Score{}, res.Err
	}
	if err := store.SetHistory(ctx, res.Job.Name, res.History); err != nil {
		return model.Score{}, err
	}

	score, err := scoring.ComputeScore(res.History)
	if err != nil {
		metrics.RecordErrorByStage("scoring", "compute")
		return model.Score{}, err
	}
	if err := store.SetScore(ctx, res.Job.Name, score); err != nil {
		return model.Score{}, err
	}

	metrics.RecordPlayerScored(string(score.Basis))
	s.logger.Debug(ctx, "player scored",
		logger.String("player", res.Job.Name),
		logger.Float64("score", score.Value),
		logger.String("basis", string(score.Basis)),
	)
	return score, nil
}

// fetchAll runs every fetch through the worker pool and returns results in
// roster order. Unless failures are skipped, the first failed fetch cancels
// the remaining jobs.
func (s *Service) fetchAll(parent context.Context, names []string) ([]worker.Result, error) {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	q := queue.NewInMemoryQueue(queue.WithCapacity(s.queueSize))
	pool := worker.NewPool(s.concurrency, q, &historyFetcher{source: s.source}, worker.WithLogger(s.logger))
	results := pool.Start(ctx)

	go func() {
		defer func() { _ = q.Close() }()
		for i, name := range names {
			if err := q.EnqueueWait(ctx, queue.Job{Seq: i, Name: name}); err != nil {
				return
			}
		}
	}()

	ordered := make([]worker.Result, len(names))
	received := 0
	var firstErr error
	for res := range results {
		ordered[res.Job.Seq] = res
		received++
		if res.Err != nil && !s.skipFailed && firstErr == nil {
			firstErr = fmt.Errorf("%w: %q: %w", ErrPlayerFailed, res.Job.Name, res.Err)
			cancel()
		}
	}

	if firstErr != nil {
		return nil, firstErr
	}
	if err := parent.Err(); err != nil {
		return nil, err
	}
	if received != len(names) {
		return nil, errors.New("fetch pool stopped before every player was processed")
	}
	return ordered, nil
}
