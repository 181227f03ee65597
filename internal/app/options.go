package service

import (
	"io"

	"github.com/okian/teambalancer/internal/adapters/output"
	"github.com/okian/teambalancer/internal/adapters/source"
	"github.com/okian/teambalancer/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSource sets where rank histories are fetched from.
func WithSource(src source.Source) Option {
	return func(s *Service) {
		if src != nil {
			s.source = src
		}
	}
}

// WithCodec sets the output format.
func WithCodec(c output.Codec) Option {
	return func(s *Service) {
		if c != nil {
			s.codec = c
		}
	}
}

// WithOutput sets the output directory and file base name.
func WithOutput(dir, base string) Option {
	return func(s *Service) {
		if dir != "" {
			s.outputDir = dir
		}
		if base != "" {
			s.outputBase = base
		}
	}
}

// WithConcurrency sets the number of fetch workers. One means sequential.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithQueueSize sets the capacity of the fetch job queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithSkipFailed drops failing players instead of aborting the run.
func WithSkipFailed(skip bool) Option {
	return func(s *Service) {
		s.skipFailed = skip
	}
}

// WithRunID overrides the generated run id.
func WithRunID(id string) Option {
	return func(s *Service) {
		if id != "" {
			s.runID = id
		}
	}
}

// WithConsole sets where human-readable progress is printed.
func WithConsole(w io.Writer) Option {
	return func(s *Service) {
		if w != nil {
			s.console = w
		}
	}
}

// WithMetricsFile writes the metrics registry to path when the run ends.
func WithMetricsFile(path string) Option {
	return func(s *Service) {
		s.metricsFile = path
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}
