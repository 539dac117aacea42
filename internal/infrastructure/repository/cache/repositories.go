package cache

import (
	"context"
	"strconv"
	"strings"

	"github.com/riskibarqy/football-grid/internal/domain/grid"
	"github.com/riskibarqy/football-grid/internal/domain/player"
	basecache "github.com/riskibarqy/football-grid/internal/platform/cache"
	"github.com/riskibarqy/football-grid/internal/platform/textnorm"
)

// PlayerRepository caches the read side of the player store. The stats write
// side is passed through and drops cached reads for consistency.
type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) GetByName(ctx context.Context, name string) (player.Player, bool, error) {
	key := "player:name:" + textnorm.Fold(name)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByName(ctx, name)
		if err != nil {
			return nil, err
		}
		return cachedPlayerByName{value: item, exists: exists}, nil
	})
	if err != nil {
		return player.Player{}, false, err
	}

	cached, _ := v.(cachedPlayerByName)
	return cached.value, cached.exists, nil
}

type cachedPlayerByName struct {
	value  player.Player
	exists bool
}

func (r *PlayerRepository) Search(ctx context.Context, query string, limit int) ([]player.Player, error) {
	key := "player:search:" + strconv.Itoa(limit) + ":" + textnorm.Fold(query)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.Search(ctx, query, limit)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.Player)
	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) Matches(ctx context.Context, playerID int64, filter player.Filter) (bool, error) {
	key := "player:match:" + strconv.FormatInt(playerID, 10) + ":" + filterKey(filter)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return r.next.Matches(ctx, playerID, filter)
	})
	if err != nil {
		return false, err
	}

	ok, _ := v.(bool)
	return ok, nil
}

// Pool is the hot path: every correct answer for the same cell asks for the
// same intersection.
func (r *PlayerRepository) Pool(ctx context.Context, a, b player.Filter) ([]player.PoolEntry, error) {
	ka, kb := filterKey(a), filterKey(b)
	if kb < ka {
		ka, kb = kb, ka
	}
	key := "player:pool:" + ka + "|" + kb
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.Pool(ctx, a, b)
		if err != nil {
			return nil, err
		}
		return append([]player.PoolEntry(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.PoolEntry)
	return append([]player.PoolEntry(nil), items...), nil
}

// StatsRepository wraps the write side and invalidates cached player reads
// after each update.
type StatsRepository struct {
	next  player.StatsRepository
	cache *basecache.Store
}

func NewStatsRepository(next player.StatsRepository, cache *basecache.Store) *StatsRepository {
	return &StatsRepository{next: next, cache: cache}
}

func (r *StatsRepository) ListStale(ctx context.Context, limit int) ([]player.Player, error) {
	return r.next.ListStale(ctx, limit)
}

func (r *StatsRepository) UpdateStats(ctx context.Context, update player.StatsUpdate) error {
	if err := r.next.UpdateStats(ctx, update); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "player:")
	return nil
}

// GridRepository caches stored grids. Grids never change once written, so
// only hits are cached; a miss must reach the store so generation can run.
type GridRepository struct {
	next  grid.Repository
	cache *basecache.Store
}

func NewGridRepository(next grid.Repository, cache *basecache.Store) *GridRepository {
	return &GridRepository{next: next, cache: cache}
}

func (r *GridRepository) GetByDate(ctx context.Context, day grid.Day) (grid.Grid, bool, error) {
	key := "grid:date:" + day.String()
	if v, ok := r.cache.Get(ctx, key); ok {
		if g, ok := v.(grid.Grid); ok {
			return cloneGrid(g), true, nil
		}
	}

	g, exists, err := r.next.GetByDate(ctx, day)
	if err != nil || !exists {
		return g, exists, err
	}
	r.cache.Set(ctx, key, cloneGrid(g))
	return g, true, nil
}

func (r *GridRepository) ListBefore(ctx context.Context, day grid.Day, limit int) ([]grid.Grid, error) {
	return r.next.ListBefore(ctx, day, limit)
}

func (r *GridRepository) CreateIfAbsent(ctx context.Context, g grid.Grid) (grid.Grid, bool, error) {
	stored, created, err := r.next.CreateIfAbsent(ctx, g)
	if err != nil {
		return grid.Grid{}, false, err
	}
	r.cache.Set(ctx, "grid:date:"+stored.Date.String(), cloneGrid(stored))
	return stored, created, nil
}

func cloneGrid(g grid.Grid) grid.Grid {
	g.Rows = append(g.Rows[:0:0], g.Rows...)
	g.Cols = append(g.Cols[:0:0], g.Cols...)
	return g
}

func filterKey(f player.Filter) string {
	var b strings.Builder
	b.WriteString(string(f.Kind))
	b.WriteString(":")
	b.WriteString(strconv.Itoa(f.Threshold))
	b.WriteString(":")
	b.WriteString(strings.Join(f.Values, ","))
	if len(f.ClubScope) > 0 {
		b.WriteString("@")
		b.WriteString(strings.Join(f.ClubScope, ","))
	}
	return b.String()
}
