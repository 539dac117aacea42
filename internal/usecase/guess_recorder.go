package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/football-grid/internal/domain/grid"
	"github.com/riskibarqy/football-grid/internal/platform/logging"
	"github.com/riskibarqy/football-grid/internal/platform/metrics"
)

const (
	defaultGuessWorkers = 4
	guessWriteTimeout   = 2 * time.Second
)

// GuessRecorder increments per-cell guess counters off the request path. A
// saturated pool drops the increment instead of waiting.
type GuessRecorder struct {
	guesses grid.GuessRepository
	pool    *ants.Pool
	logger  *logging.Logger
	metrics *metrics.Recorder
}

func NewGuessRecorder(guesses grid.GuessRepository, workers int, logger *logging.Logger, recorder *metrics.Recorder) (*GuessRecorder, error) {
	if workers <= 0 {
		workers = defaultGuessWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}
	pool, err := ants.NewPool(workers, ants.WithNonblocking(true))
	if err != nil {
		return nil, err
	}
	return &GuessRecorder{
		guesses: guesses,
		pool:    pool,
		logger:  logger,
		metrics: recorder,
	}, nil
}

func (r *GuessRecorder) Record(guess grid.Guess) {
	err := r.pool.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), guessWriteTimeout)
		defer cancel()

		if err := r.guesses.Increment(ctx, guess); err != nil {
			r.logger.WarnContext(ctx, "guess counter increment failed",
				"date", guess.Date.String(),
				"row", guess.RowKey,
				"col", guess.ColKey,
				"player_id", guess.PlayerID,
				"error", err,
			)
			return
		}
		r.metrics.GuessRecorded()
	})
	if err != nil {
		r.metrics.GuessDropped()
		if !errors.Is(err, ants.ErrPoolOverload) {
			r.logger.Warn("guess counter submit failed", "error", err)
			return
		}
		r.logger.Debug("guess counter pool saturated, dropping increment", "row", guess.RowKey, "col", guess.ColKey)
	}
}

// Close waits up to timeout for in-flight increments.
func (r *GuessRecorder) Close(timeout time.Duration) error {
	return r.pool.ReleaseTimeout(timeout)
}
