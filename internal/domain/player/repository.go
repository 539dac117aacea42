package player

import "context"

// Repository describes the read contract the grid core needs from the row store.
type Repository interface {
	GetByName(ctx context.Context, name string) (Player, bool, error)
	Search(ctx context.Context, query string, limit int) ([]Player, error)
	// Matches reports whether the player satisfies the filter.
	Matches(ctx context.Context, playerID int64, filter Filter) (bool, error)
	// Pool returns every player satisfying both filters in a single
	// set-intersection query.
	Pool(ctx context.Context, a, b Filter) ([]PoolEntry, error)
}

// StatsRepository is the write side used by the stats refresh job.
type StatsRepository interface {
	ListStale(ctx context.Context, limit int) ([]Player, error)
	UpdateStats(ctx context.Context, update StatsUpdate) error
}
