package app

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/football-grid/internal/config"
	"github.com/riskibarqy/football-grid/internal/domain/grid"
	"github.com/riskibarqy/football-grid/internal/platform/logging"
	"github.com/riskibarqy/football-grid/internal/usecase"
	"github.com/robfig/cron/v3"
)

const (
	gridPregenerateTimeout = 30 * time.Second
	jobDispatchTimeout     = 15 * time.Second

	gridPregenerateJobPath = "/v1/internal/jobs/grid-pregenerate"
	statsRefreshJobPath    = "/v1/internal/jobs/stats-refresh"
)

type gridEnsurer interface {
	Today() grid.Day
	Ensure(ctx context.Context, day grid.Day) (grid.Grid, error)
}

type statsRefresher interface {
	Run(ctx context.Context) (usecase.StatsRefreshResult, error)
}

// jobDispatcher publishes a job to the internal job routes of some replica.
type jobDispatcher interface {
	Enqueue(ctx context.Context, path string, payload any, delay time.Duration, deduplicationID string) error
}

// newScheduler registers the grid pre-generation entry and, when enabled, the
// stats refresh entry. Schedules run in the grid timezone. With a dispatcher
// the entries publish jobs instead of doing the work in-process.
func newScheduler(cfg config.Config, grids gridEnsurer, refresh statsRefresher, dispatcher jobDispatcher, logger *logging.Logger) (*cron.Cron, error) {
	loc := cfg.GridLocation
	if loc == nil {
		loc = time.UTC
	}
	cronLog := cronLogger{logger: logger}
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithLogger(cronLog),
		cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
	)

	pregenerate := pregenerateGrids(grids, logger)
	refreshJob := func() {}
	if refresh != nil {
		refreshJob = refreshStats(refresh, logger)
	}
	if dispatcher != nil {
		pregenerate = dispatchGridPregeneration(grids, dispatcher, logger)
		refreshJob = dispatchStatsRefresh(dispatcher, loc, logger)
	}

	if _, err := c.AddFunc(cfg.GridPregenerateCron, pregenerate); err != nil {
		return nil, fmt.Errorf("schedule grid pre-generation: %w", err)
	}
	if refresh != nil {
		if _, err := c.AddFunc(cfg.StatsRefreshCron, refreshJob); err != nil {
			return nil, fmt.Errorf("schedule stats refresh: %w", err)
		}
	}

	return c, nil
}

// pregenerateGrids ensures today's and tomorrow's grids exist, so a run just
// after midnight and a run late in the evening both leave nothing for the
// first player to generate.
func pregenerateGrids(grids gridEnsurer, logger *logging.Logger) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), gridPregenerateTimeout)
		defer cancel()

		today := grids.Today()
		for _, day := range []grid.Day{today, today.AddDays(1)} {
			if _, err := grids.Ensure(ctx, day); err != nil {
				logger.ErrorContext(ctx, "grid pre-generation failed", "date", day.String(), "error", err)
				continue
			}
			logger.InfoContext(ctx, "grid pre-generated", "date", day.String())
		}
	}
}

func refreshStats(refresh statsRefresher, logger *logging.Logger) func() {
	return func() {
		ctx := context.Background()
		result, err := refresh.Run(ctx)
		if err != nil {
			logger.ErrorContext(ctx, "scheduled stats refresh failed", "error", err)
			return
		}
		logger.InfoContext(ctx, "scheduled stats refresh finished",
			"candidates", result.Candidates,
			"updated", result.Updated,
			"failed", result.Failed,
			"skipped", result.Skipped,
		)
	}
}

// dispatchGridPregeneration publishes one job per day. The date in the
// deduplication id collapses the copies every replica publishes.
func dispatchGridPregeneration(grids gridEnsurer, dispatcher jobDispatcher, logger *logging.Logger) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobDispatchTimeout)
		defer cancel()

		today := grids.Today()
		for _, day := range []grid.Day{today, today.AddDays(1)} {
			path := gridPregenerateJobPath + "?date=" + day.String()
			if err := dispatcher.Enqueue(ctx, path, nil, 0, "grid-pregenerate-"+day.String()); err != nil {
				logger.ErrorContext(ctx, "dispatch grid pre-generation failed", "date", day.String(), "error", err)
			}
		}
	}
}

func dispatchStatsRefresh(dispatcher jobDispatcher, loc *time.Location, logger *logging.Logger) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobDispatchTimeout)
		defer cancel()

		runDay := grid.DayOf(time.Now(), loc)
		if err := dispatcher.Enqueue(ctx, statsRefreshJobPath, nil, 0, "stats-refresh-"+runDay.String()); err != nil {
			logger.ErrorContext(ctx, "dispatch stats refresh failed", "error", err)
		}
	}
}

// cronLogger adapts logging.Logger to cron.Logger.
type cronLogger struct {
	logger *logging.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
