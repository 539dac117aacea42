package player

import (
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/football-grid/internal/domain/category"
)

// Player is a footballer as stored in the row store. Read-only for the grid core.
type Player struct {
	ID          int64
	LegacyID    int64
	Name        string
	Appearances int
	Goals       int
	Assists     int
	Trophies    Trophies
	Retired     bool
	LastUpdated *time.Time
}

// Trophies holds the boolean honours a category can ask for.
type Trophies struct {
	Champion  bool
	CupWinner bool
	TopScorer bool
}

// EraID is the identifier used as an era proxy: lower means an older career.
func (p Player) EraID() int64 {
	if p.LegacyID > 0 {
		return p.LegacyID
	}
	return p.ID
}

func (p Player) Validate() error {
	if p.ID <= 0 {
		return fmt.Errorf("player id must be greater than zero")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("player name is required")
	}
	if p.Appearances < 0 || p.Goals < 0 || p.Assists < 0 {
		return fmt.Errorf("player stats cannot be negative")
	}
	return nil
}

// Filter is the store-level form of a category: what a single query has to
// check for one axis. Values are already folded with textnorm.Fold.
type Filter struct {
	Kind      category.Kind
	Values    []string
	Threshold int
	// ClubScope restricts per-club stats to clubs containing one of these
	// folded names. Empty means any club.
	ClubScope []string
}

// PoolEntry is one member of a candidate pool.
type PoolEntry struct {
	PlayerID    int64
	Appearances int
}

// StatsUpdate carries refreshed career totals for one player.
type StatsUpdate struct {
	PlayerID    int64
	Appearances int
	Goals       int
	Assists     int
	Retired     bool
	UpdatedAt   time.Time
}
