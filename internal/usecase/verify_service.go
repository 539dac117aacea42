package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/riskibarqy/football-grid/internal/domain/category"
	"github.com/riskibarqy/football-grid/internal/domain/grid"
	"github.com/riskibarqy/football-grid/internal/domain/player"
	"github.com/riskibarqy/football-grid/internal/platform/logging"
	"github.com/riskibarqy/football-grid/internal/platform/metrics"
	"github.com/sourcegraph/conc"
)

// CategoryInput is a category as it arrives on the wire.
type CategoryInput struct {
	Type  string
	Value string
}

type VerifyInput struct {
	PlayerName string
	Row        CategoryInput
	Col        CategoryInput
}

type VerifyResult struct {
	Correct    bool
	Rarity     *float64
	PlayerID   int64
	PlayerName string
	Debug      *VerifyDebug
}

// VerifyDebug explains a decision. Only filled when debug output is enabled.
type VerifyDebug struct {
	Found       bool
	RowMatch    bool
	ColMatch    bool
	RowKey      string
	ColKey      string
	Appearances int
	EraID       int64
	PoolSize    int
	Rank        int
	Legend      bool
}

type VerifyConfig struct {
	Debug    bool
	Location *time.Location
	// StoreTimeout bounds the player lookup. Zero uses the matcher's timeout.
	StoreTimeout time.Duration
}

type VerifyService struct {
	players player.Repository
	catalog *category.Catalog
	matcher *CriteriaMatcher
	scorer  RarityScorer
	guesses GuessSink
	cfg     VerifyConfig
	logger  *logging.Logger
	metrics *metrics.Recorder
	now     func() time.Time
}

// NewVerifyService wires the answer check. guesses may be nil when the guess
// counter is disabled.
func NewVerifyService(
	players player.Repository,
	catalog *category.Catalog,
	matcher *CriteriaMatcher,
	scorer RarityScorer,
	guesses GuessSink,
	cfg VerifyConfig,
	logger *logging.Logger,
	recorder *metrics.Recorder,
) *VerifyService {
	if catalog == nil {
		catalog = category.Default()
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.StoreTimeout <= 0 {
		cfg.StoreTimeout = defaultStoreTimeout
		if matcher != nil {
			cfg.StoreTimeout = matcher.timeout
		}
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &VerifyService{
		players: players,
		catalog: catalog,
		matcher: matcher,
		scorer:  scorer,
		guesses: guesses,
		cfg:     cfg,
		logger:  logger,
		metrics: recorder,
		now:     time.Now,
	}
}

// Verify checks a named player against a cell. It never fails: unknown
// players, mismatches and store errors all produce Correct=false.
func (s *VerifyService) Verify(ctx context.Context, input VerifyInput) VerifyResult {
	ctx, span := startUsecaseSpan(ctx, "usecase.VerifyService.Verify")
	defer span.End()

	started := time.Now()
	row := s.catalog.Resolve(category.ParseKind(input.Row.Type), input.Row.Value)
	col := s.catalog.Resolve(category.ParseKind(input.Col.Type), input.Col.Value)

	var debug *VerifyDebug
	if s.cfg.Debug {
		debug = &VerifyDebug{RowKey: row.Key(), ColKey: col.Key()}
	}
	result := VerifyResult{Debug: debug}

	name := strings.TrimSpace(input.PlayerName)
	if name == "" {
		s.metrics.ObserveVerification(false, 0, 0, time.Since(started))
		return result
	}

	p, found, err := s.lookupPlayer(ctx, name)
	if err != nil {
		s.logger.WarnContext(ctx, "player lookup failed, treating as unknown", "player_name", name, "error", err)
		found = false
	}
	if !found {
		s.metrics.ObserveVerification(false, 0, 0, time.Since(started))
		return result
	}

	result.PlayerID = p.ID
	result.PlayerName = p.Name
	if debug != nil {
		debug.Found = true
		debug.Appearances = p.Appearances
		debug.EraID = p.EraID()
	}

	var rowOK, colOK bool
	var wg conc.WaitGroup
	wg.Go(func() { rowOK = s.matcher.Matches(ctx, p.ID, row, &col) })
	wg.Go(func() { colOK = s.matcher.Matches(ctx, p.ID, col, &row) })
	wg.Wait()

	if debug != nil {
		debug.RowMatch = rowOK
		debug.ColMatch = colOK
	}

	s.recordGuess(row, col, p.ID)

	if !rowOK || !colOK {
		s.metrics.ObserveVerification(false, 0, 0, time.Since(started))
		return result
	}

	pool, err := s.matcher.ResolvePool(ctx, row, col)
	if err != nil {
		s.logger.WarnContext(ctx, "candidate pool lookup failed, scoring against empty pool",
			"player_id", p.ID,
			"row", row.Key(),
			"col", col.Key(),
			"error", err,
		)
		pool = nil
	}

	score := s.scorer.Score(p, pool)
	rarity := score.Value
	result.Correct = true
	result.Rarity = &rarity
	if debug != nil {
		debug.PoolSize = score.PoolSize
		debug.Rank = score.Rank
		debug.Legend = score.Legend
	}

	s.metrics.ObserveVerification(true, rarity, score.PoolSize, time.Since(started))
	return result
}

func (s *VerifyService) lookupPlayer(ctx context.Context, name string) (player.Player, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.StoreTimeout)
	defer cancel()

	return s.players.GetByName(ctx, name)
}

func (s *VerifyService) recordGuess(row, col category.Category, playerID int64) {
	if s.guesses == nil {
		return
	}
	s.guesses.Record(grid.Guess{
		Date:     grid.DayOf(s.now(), s.cfg.Location),
		RowKey:   row.Key(),
		ColKey:   col.Key(),
		PlayerID: playerID,
	})
}
