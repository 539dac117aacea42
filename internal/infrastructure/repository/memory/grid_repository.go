package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/football-grid/internal/domain/category"
	"github.com/riskibarqy/football-grid/internal/domain/grid"
)

// GridRepository stores daily grids in process. The mutex is the single-writer
// point that makes CreateIfAbsent atomic.
type GridRepository struct {
	mu    sync.RWMutex
	grids map[grid.Day]grid.Grid
}

func NewGridRepository(seed ...grid.Grid) *GridRepository {
	r := &GridRepository{grids: make(map[grid.Day]grid.Grid, len(seed))}
	for _, g := range seed {
		r.grids[g.Date] = cloneGrid(g)
	}
	return r
}

func (r *GridRepository) GetByDate(ctx context.Context, day grid.Day) (grid.Grid, bool, error) {
	if err := ctx.Err(); err != nil {
		return grid.Grid{}, false, err
	}

	r.mu.RLock()
	g, ok := r.grids[day]
	r.mu.RUnlock()
	if !ok {
		return grid.Grid{}, false, nil
	}
	return cloneGrid(g), true, nil
}

func (r *GridRepository) ListBefore(ctx context.Context, day grid.Day, limit int) ([]grid.Grid, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	out := make([]grid.Grid, 0, len(r.grids))
	for date, g := range r.grids {
		if date < day {
			out = append(out, cloneGrid(g))
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *GridRepository) CreateIfAbsent(ctx context.Context, g grid.Grid) (grid.Grid, bool, error) {
	if err := ctx.Err(); err != nil {
		return grid.Grid{}, false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.grids[g.Date]; ok {
		return cloneGrid(existing), false, nil
	}
	r.grids[g.Date] = cloneGrid(g)
	return cloneGrid(g), true, nil
}

func cloneGrid(g grid.Grid) grid.Grid {
	g.Rows = append([]category.Category(nil), g.Rows...)
	g.Cols = append([]category.Category(nil), g.Cols...)
	return g
}

type guessKey struct {
	date     grid.Day
	rowKey   string
	colKey   string
	playerID int64
}

// GuessRepository counts guesses per cell and player.
type GuessRepository struct {
	mu     sync.Mutex
	counts map[guessKey]int
}

func NewGuessRepository() *GuessRepository {
	return &GuessRepository{counts: make(map[guessKey]int)}
}

func (r *GuessRepository) Increment(ctx context.Context, guess grid.Guess) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	r.counts[guessKey{date: guess.Date, rowKey: guess.RowKey, colKey: guess.ColKey, playerID: guess.PlayerID}]++
	r.mu.Unlock()
	return nil
}

// Count returns the stored counter for one cell and player.
func (r *GuessRepository) Count(guess grid.Guess) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[guessKey{date: guess.Date, rowKey: guess.RowKey, colKey: guess.ColKey, playerID: guess.PlayerID}]
}
