package usecase

import (
	"context"

	"github.com/riskibarqy/football-grid/internal/domain/grid"
	"github.com/riskibarqy/football-grid/internal/domain/player"
)

// PlayerStatsSnapshot is the current career state of one player as reported
// by the upstream stats feed.
type PlayerStatsSnapshot struct {
	Appearances int
	Goals       int
	Assists     int
	Retired     bool
}

// StatsFeed fetches fresh totals for a stored player.
type StatsFeed interface {
	FetchPlayerStats(ctx context.Context, p player.Player) (PlayerStatsSnapshot, error)
}

// GuessSink receives per-cell guesses. Implementations must not block.
type GuessSink interface {
	Record(guess grid.Guess)
}
