package usecase

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/football-grid/internal/domain/player"
	"github.com/riskibarqy/football-grid/internal/platform/logging"
	"github.com/riskibarqy/football-grid/internal/platform/metrics"
)

const (
	DefaultStatsRefreshBatch = 100

	statsRefreshUpdated = "updated"
	statsRefreshFailed  = "failed"
	statsRefreshSkipped = "skipped"
)

type StatsRefreshConfig struct {
	BatchSize int
	Workers   int
	// Delay is the minimum pause between two feed requests; up to the same
	// amount again is added as jitter.
	Delay time.Duration
}

type StatsRefreshResult struct {
	Candidates int `json:"candidates"`
	Updated    int `json:"updated"`
	Failed     int `json:"failed"`
	Skipped    int `json:"skipped"`
}

// StatsRefreshService pulls current career totals for the players whose
// stats are oldest and writes them back.
type StatsRefreshService struct {
	stats   player.StatsRepository
	feed    StatsFeed
	cfg     StatsRefreshConfig
	logger  *logging.Logger
	metrics *metrics.Recorder
	now     func() time.Time
	sleep   func(ctx context.Context, d time.Duration) error

	running atomic.Bool
}

func NewStatsRefreshService(
	stats player.StatsRepository,
	feed StatsFeed,
	cfg StatsRefreshConfig,
	logger *logging.Logger,
	recorder *metrics.Recorder,
) *StatsRefreshService {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultStatsRefreshBatch
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.Delay < 0 {
		cfg.Delay = 0
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &StatsRefreshService{
		stats:   stats,
		feed:    feed,
		cfg:     cfg,
		logger:  logger,
		metrics: recorder,
		now:     time.Now,
		sleep:   sleepContext,
	}
}

// Run refreshes one batch. Overlapping runs are skipped.
func (s *StatsRefreshService) Run(ctx context.Context) (StatsRefreshResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsRefreshService.Run")
	defer span.End()

	if !s.running.CompareAndSwap(false, true) {
		s.logger.InfoContext(ctx, "stats refresh already running, skipping")
		return StatsRefreshResult{}, nil
	}
	defer s.running.Store(false)

	candidates, err := s.stats.ListStale(ctx, s.cfg.BatchSize)
	if err != nil {
		return StatsRefreshResult{}, fmt.Errorf("%w: list stale players: %v", ErrDependencyUnavailable, err)
	}

	result := StatsRefreshResult{Candidates: len(candidates)}
	if len(candidates) == 0 {
		return result, nil
	}

	pool, err := ants.NewPool(s.cfg.Workers)
	if err != nil {
		return result, fmt.Errorf("create stats refresh worker pool: %w", err)
	}
	defer pool.Release()

	var (
		wg      sync.WaitGroup
		updated atomic.Int64
		failed  atomic.Int64
		skipped atomic.Int64
	)

	for i, p := range candidates {
		if i > 0 {
			if err := s.sleep(ctx, s.politeDelay()); err != nil {
				skipped.Add(int64(len(candidates) - i))
				break
			}
		}

		item := p
		wg.Add(1)
		if submitErr := pool.Submit(func() {
			defer wg.Done()
			switch s.refreshOne(ctx, item) {
			case statsRefreshUpdated:
				updated.Add(1)
			case statsRefreshSkipped:
				skipped.Add(1)
			default:
				failed.Add(1)
			}
		}); submitErr != nil {
			wg.Done()
			failed.Add(1)
			s.logger.WarnContext(ctx, "submit stats refresh task failed", "player_id", item.ID, "error", submitErr)
		}
	}
	wg.Wait()

	result.Updated = int(updated.Load())
	result.Failed = int(failed.Load())
	result.Skipped = int(skipped.Load())
	s.logger.InfoContext(ctx, "stats refresh finished",
		"candidates", result.Candidates,
		"updated", result.Updated,
		"failed", result.Failed,
		"skipped", result.Skipped,
	)
	return result, nil
}

func (s *StatsRefreshService) refreshOne(ctx context.Context, p player.Player) string {
	snapshot, err := s.feed.FetchPlayerStats(ctx, p)
	if err != nil {
		s.logger.WarnContext(ctx, "stats feed fetch failed, skipping player", "player_id", p.ID, "error", err)
		s.metrics.StatsRefresh(statsRefreshSkipped)
		return statsRefreshSkipped
	}

	err = s.stats.UpdateStats(ctx, player.StatsUpdate{
		PlayerID:    p.ID,
		Appearances: snapshot.Appearances,
		Goals:       snapshot.Goals,
		Assists:     snapshot.Assists,
		Retired:     snapshot.Retired,
		UpdatedAt:   s.now().UTC(),
	})
	if err != nil {
		s.logger.WarnContext(ctx, "update player stats failed", "player_id", p.ID, "error", err)
		s.metrics.StatsRefresh(statsRefreshFailed)
		return statsRefreshFailed
	}

	s.metrics.StatsRefresh(statsRefreshUpdated)
	return statsRefreshUpdated
}

func (s *StatsRefreshService) politeDelay() time.Duration {
	if s.cfg.Delay <= 0 {
		return 0
	}
	return s.cfg.Delay + rand.N(s.cfg.Delay)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
