package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/football-grid/internal/domain/player"
	"github.com/riskibarqy/football-grid/internal/platform/textnorm"
)

// PlayerRepository keeps player profiles in process. It implements both the
// read contract used by the grid core and the stats write side.
type PlayerRepository struct {
	mu       sync.RWMutex
	profiles []player.Profile
	byID     map[int64]int
}

func NewPlayerRepository(profiles []player.Profile) *PlayerRepository {
	r := &PlayerRepository{
		profiles: make([]player.Profile, 0, len(profiles)),
		byID:     make(map[int64]int, len(profiles)),
	}
	for _, p := range profiles {
		if _, dup := r.byID[p.Player.ID]; dup {
			continue
		}
		r.byID[p.Player.ID] = len(r.profiles)
		r.profiles = append(r.profiles, p)
	}
	return r
}

func (r *PlayerRepository) GetByName(ctx context.Context, name string) (player.Player, bool, error) {
	if err := ctx.Err(); err != nil {
		return player.Player{}, false, err
	}

	want := textnorm.Fold(name)
	if want == "" {
		return player.Player{}, false, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var (
		best  player.Player
		found bool
	)
	for _, p := range r.profiles {
		if textnorm.Fold(p.Player.Name) != want {
			continue
		}
		if !found || p.Player.Appearances > best.Appearances {
			best, found = p.Player, true
		}
	}
	return best, found, nil
}

func (r *PlayerRepository) Search(ctx context.Context, query string, limit int) ([]player.Player, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	needle := textnorm.Fold(query)
	if needle == "" {
		return []player.Player{}, nil
	}

	r.mu.RLock()
	out := make([]player.Player, 0)
	for _, p := range r.profiles {
		if strings.Contains(textnorm.Fold(p.Player.Name), needle) {
			out = append(out, p.Player)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Appearances != out[j].Appearances {
			return out[i].Appearances > out[j].Appearances
		}
		return out[i].Name < out[j].Name
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *PlayerRepository) Matches(ctx context.Context, playerID int64, filter player.Filter) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.byID[playerID]
	if !ok {
		return false, nil
	}
	return r.profiles[idx].Satisfies(filter), nil
}

func (r *PlayerRepository) Pool(ctx context.Context, a, b player.Filter) ([]player.PoolEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	out := make([]player.PoolEntry, 0)
	for _, p := range r.profiles {
		if p.Satisfies(a) && p.Satisfies(b) {
			out = append(out, player.PoolEntry{PlayerID: p.Player.ID, Appearances: p.Player.Appearances})
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Appearances != out[j].Appearances {
			return out[i].Appearances > out[j].Appearances
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out, nil
}

// ListStale returns active players never refreshed first, then the oldest.
func (r *PlayerRepository) ListStale(ctx context.Context, limit int) ([]player.Player, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	out := make([]player.Player, 0)
	for _, p := range r.profiles {
		if !p.Player.Retired {
			out = append(out, p.Player)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return lastUpdated(out[i]).Before(lastUpdated(out[j]))
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *PlayerRepository) UpdateStats(ctx context.Context, update player.StatsUpdate) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	idx, ok := r.byID[update.PlayerID]
	if !ok {
		return nil
	}
	updatedAt := update.UpdatedAt
	p := &r.profiles[idx].Player
	p.Appearances = update.Appearances
	p.Goals = update.Goals
	p.Assists = update.Assists
	p.Retired = update.Retired
	p.LastUpdated = &updatedAt
	return nil
}

func lastUpdated(p player.Player) time.Time {
	if p.LastUpdated == nil {
		return time.Time{}
	}
	return *p.LastUpdated
}
