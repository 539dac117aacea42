package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/football-grid/internal/domain/category"
	"github.com/riskibarqy/football-grid/internal/domain/player"
	"github.com/riskibarqy/football-grid/internal/platform/logging"
	"github.com/riskibarqy/football-grid/internal/platform/metrics"
)

const defaultStoreTimeout = 3 * time.Second

// CriteriaMatcher decides category membership and resolves candidate pools
// through the player store. Store failures never escape: a failed membership
// check is a non-match and a failed pool lookup is an empty pool.
type CriteriaMatcher struct {
	players player.Repository
	catalog *category.Catalog
	timeout time.Duration
	logger  *logging.Logger
	metrics *metrics.Recorder
}

func NewCriteriaMatcher(
	players player.Repository,
	catalog *category.Catalog,
	storeTimeout time.Duration,
	logger *logging.Logger,
	recorder *metrics.Recorder,
) *CriteriaMatcher {
	if catalog == nil {
		catalog = category.Default()
	}
	if storeTimeout <= 0 {
		storeTimeout = defaultStoreTimeout
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &CriteriaMatcher{
		players: players,
		catalog: catalog,
		timeout: storeTimeout,
		logger:  logger,
		metrics: recorder,
	}
}

// Filter converts a category into its store filter. paired is the category on
// the other axis of the same cell; per-club kinds need it to be a club.
// ok is false when the category can never match.
func (m *CriteriaMatcher) Filter(cat category.Category, paired *category.Category) (player.Filter, bool) {
	kind := cat.Kind
	switch {
	case kind.IsEntity():
		values := m.catalog.MatchValues(cat)
		if len(values) == 0 {
			return player.Filter{}, false
		}
		return player.Filter{Kind: kind, Values: values}, true
	case kind.RequiresClubPairing():
		if paired == nil || !paired.IsClub() {
			return player.Filter{}, false
		}
		scope := m.catalog.MatchValues(*paired)
		if len(scope) == 0 {
			return player.Filter{}, false
		}
		return player.Filter{Kind: kind, Threshold: threshold(cat), ClubScope: scope}, true
	case kind.IsThreshold():
		return player.Filter{Kind: kind, Threshold: threshold(cat)}, true
	case kind.IsFlag():
		return player.Filter{Kind: kind}, true
	default:
		return player.Filter{}, false
	}
}

// PoolFilter is the filter used when a category is a pool axis. Pairing is
// ignored: per-club kinds match a stat at any club.
func (m *CriteriaMatcher) PoolFilter(cat category.Category) (player.Filter, bool) {
	if cat.Kind.RequiresClubPairing() {
		return player.Filter{Kind: cat.Kind, Threshold: threshold(cat)}, true
	}
	return m.Filter(cat, nil)
}

// Matches reports whether the player satisfies cat. It is total: unknown kinds,
// missing pairings and store errors all resolve to false.
func (m *CriteriaMatcher) Matches(ctx context.Context, playerID int64, cat category.Category, paired *category.Category) bool {
	filter, ok := m.Filter(cat, paired)
	if !ok {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	matched, err := m.players.Matches(ctx, playerID, filter)
	if err != nil {
		m.logger.WarnContext(ctx, "criteria check failed, treating as no match",
			"player_id", playerID,
			"category_kind", string(cat.Kind),
			"category_code", cat.Code,
			"error", err,
		)
		m.metrics.CriteriaError(string(cat.Kind))
		return false
	}
	return matched
}

// ResolvePool returns every player satisfying both categories in one store
// query. Errors are returned so callers can log them; the entries are then nil.
func (m *CriteriaMatcher) ResolvePool(ctx context.Context, a, b category.Category) ([]player.PoolEntry, error) {
	fa, okA := m.PoolFilter(a)
	fb, okB := m.PoolFilter(b)
	if !okA || !okB {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	return m.players.Pool(ctx, fa, fb)
}

func threshold(cat category.Category) int {
	if cat.Threshold > 0 {
		return cat.Threshold
	}
	return cat.Kind.DefaultThreshold()
}
