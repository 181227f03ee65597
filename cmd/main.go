package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/teambalancer/internal/adapters/output"
	"github.com/okian/teambalancer/internal/adapters/roster"
	"github.com/okian/teambalancer/internal/adapters/source"
	"github.com/okian/teambalancer/internal/adapters/source/fixture"
	"github.com/okian/teambalancer/internal/adapters/source/opgg"
	app "github.com/okian/teambalancer/internal/app"
	"github.com/okian/teambalancer/internal/config"
	"github.com/okian/teambalancer/pkg/logger"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

const usage = "usage: teambalancer <players.txt>\n" +
	"  one player name per line; settings come from TEAMBALANCER_* env vars\n" +
	"  or the YAML file named by " + config.EnvConfigFile + "\n"

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one CLI invocation and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 || args[0] == "" {
		_, _ = io.WriteString(stderr, "missing players file\n"+usage)
		return exitUsage
	}

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return exitError
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat), logger.WithWriter(stderr)); err != nil {
		_, _ = fmt.Fprintf(stderr, "failed to initialize logging: %v\n", err)
		return exitError
	}
	defer func() { _ = logger.Sync() }()

	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	src, err := newSource(cfg, log)
	if err != nil {
		log.Error(ctx, "rank history source unavailable", logger.Error(err))
		return exitError
	}

	codec, err := output.ForFormat(cfg.OutputFormat)
	if err != nil {
		log.Error(ctx, "output format unavailable", logger.Error(err))
		return exitError
	}

	svc := app.New(
		app.WithLogger(log.Named("service")),
		app.WithSource(src),
		app.WithCodec(codec),
		app.WithOutput(cfg.OutputDir, cfg.OutputBase),
		app.WithConcurrency(cfg.Concurrency),
		app.WithQueueSize(cfg.QueueSize),
		app.WithSkipFailed(cfg.SkipFailedPlayers),
		app.WithMetricsFile(cfg.MetricsFile),
		app.WithConsole(stdout),
	)

	if _, err := svc.Run(ctx, args[0]); err != nil {
		if errors.Is(err, roster.ErrInputFile) {
			_, _ = fmt.Fprintf(stderr, "could not read players file: %v\n%s", err, usage)
			return exitUsage
		}
		_, _ = fmt.Fprintf(stderr, "run failed: %v\n", err)
		return exitError
	}
	return exitOK
}

func newSource(cfg *config.Config, log logger.Logger) (source.Source, error) {
	switch cfg.Source {
	case config.SourceFixture:
		p, err := fixture.Load(cfg.FixturePath)
		if err != nil {
			return nil, err
		}
		return source.Instrument(p, config.SourceFixture, log.Named("fixture")), nil
	default:
		client := opgg.NewClient(opgg.Config{
			BaseURL:    cfg.SourceBaseURL,
			UserAgent:  cfg.UserAgent,
			HTTPClient: &http.Client{Timeout: time.Duration(cfg.HTTPTimeoutMS) * time.Millisecond},
		})
		return source.Instrument(client, config.SourceOPGG, log.Named("opgg")), nil
	}
}
