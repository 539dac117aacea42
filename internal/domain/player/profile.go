package player

import (
	"github.com/riskibarqy/football-grid/internal/domain/category"
	"github.com/riskibarqy/football-grid/internal/platform/textnorm"
)

// ScopedStat is a goals/assists line scoped to a club or a season.
type ScopedStat struct {
	Scope   string
	Club    string
	Goals   int
	Assists int
}

// Profile is a player with every affiliation and scoped stat the matcher can
// ask about. It is the unit seeded into a store.
type Profile struct {
	Player      Player
	Clubs       []string
	Nations     []string
	Leagues     []string
	ClubStats   []ScopedStat
	SeasonStats []ScopedStat
}

// Satisfies evaluates a filter against the profile in memory. Stores that can
// push the predicate down (SQL) must agree with this function.
func (p Profile) Satisfies(f Filter) bool {
	switch f.Kind {
	case category.KindClub:
		return anyContains(p.Clubs, f.Values)
	case category.KindNation:
		return anyEquals(p.Nations, f.Values)
	case category.KindLeague:
		return anyContains(p.Leagues, f.Values)
	case category.KindGoals:
		return p.Player.Goals >= f.Threshold
	case category.KindAssists:
		return p.Player.Assists >= f.Threshold
	case category.KindChampion:
		return p.Player.Trophies.Champion
	case category.KindCupWinner:
		return p.Player.Trophies.CupWinner
	case category.KindTopScorer:
		return p.Player.Trophies.TopScorer
	case category.KindClubGoals, category.KindClubAssists:
		return anyScopedStat(p.ClubStats, f, func(s ScopedStat) string { return s.Scope })
	case category.KindSeasonGoals, category.KindSeasonAssists:
		return anyScopedStat(p.SeasonStats, f, func(s ScopedStat) string { return s.Club })
	default:
		return false
	}
}

func anyScopedStat(stats []ScopedStat, f Filter, club func(ScopedStat) string) bool {
	for _, s := range stats {
		value := s.Goals
		if f.Kind.Stat() == category.StatAssists {
			value = s.Assists
		}
		if value < f.Threshold {
			continue
		}
		if len(f.ClubScope) == 0 || anyContains([]string{club(s)}, f.ClubScope) {
			return true
		}
	}
	return false
}

func anyContains(stored, values []string) bool {
	for _, raw := range stored {
		for _, v := range values {
			if textnorm.Contains(raw, v) {
				return true
			}
		}
	}
	return false
}

func anyEquals(stored, values []string) bool {
	for _, raw := range stored {
		folded := textnorm.Fold(raw)
		for _, v := range values {
			if folded != "" && folded == v {
				return true
			}
		}
	}
	return false
}
