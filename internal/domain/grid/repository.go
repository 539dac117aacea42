package grid

import "context"

// Repository persists daily grids keyed by date.
type Repository interface {
	GetByDate(ctx context.Context, day Day) (Grid, bool, error)
	// ListBefore returns up to limit grids dated strictly before day, newest first.
	ListBefore(ctx context.Context, day Day, limit int) ([]Grid, error)
	// CreateIfAbsent inserts the grid unless one already exists for its date and
	// returns the stored grid. created is false when another writer won.
	CreateIfAbsent(ctx context.Context, g Grid) (stored Grid, created bool, err error)
}

// GuessRepository stores the per-cell guess counters.
type GuessRepository interface {
	Increment(ctx context.Context, guess Guess) error
}
