package usecase

import (
	"math"
	"sort"

	"github.com/riskibarqy/football-grid/internal/domain/player"
)

const (
	DefaultLegendIDCutoff = 30000

	minRarity   = 0.5
	maxRarity   = 10.0
	rarityRange = 8.5
	legendBonus = 0.5
)

// RarityScorer ranks a verified answer inside its candidate pool. The most
// capped player scores lowest; the least capped scores highest.
type RarityScorer struct {
	legendCutoff int64
}

func NewRarityScorer(legendCutoff int64) RarityScorer {
	if legendCutoff <= 0 {
		legendCutoff = DefaultLegendIDCutoff
	}
	return RarityScorer{legendCutoff: legendCutoff}
}

// RarityScore is a computed rarity plus the inputs that produced it.
type RarityScore struct {
	Value    float64
	Rank     int
	PoolSize int
	Legend   bool
}

// Score computes the rarity of p within pool. p is counted as a pool member
// even when the pool lookup missed it.
func (s RarityScorer) Score(p player.Player, pool []player.PoolEntry) RarityScore {
	ranked := make([]player.PoolEntry, 0, len(pool)+1)
	found := false
	for _, entry := range pool {
		if entry.PlayerID == p.ID {
			if found {
				continue
			}
			found = true
		}
		ranked = append(ranked, entry)
	}
	if !found {
		ranked = append(ranked, player.PoolEntry{PlayerID: p.ID, Appearances: p.Appearances})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Appearances != ranked[j].Appearances {
			return ranked[i].Appearances > ranked[j].Appearances
		}
		return ranked[i].PlayerID < ranked[j].PlayerID
	})

	rank := 0
	for i, entry := range ranked {
		if entry.PlayerID == p.ID {
			rank = i
			break
		}
	}

	relative := 1.0
	if n := len(ranked); n > 1 {
		relative = float64(rank) / float64(n-1)
	}

	score := minRarity + relative*rarityRange
	legend := p.EraID() > 0 && p.EraID() < s.legendCutoff
	if legend {
		score += legendBonus
	}

	return RarityScore{
		Value:    roundRarity(score),
		Rank:     rank,
		PoolSize: len(ranked),
		Legend:   legend,
	}
}

func roundRarity(v float64) float64 {
	v = math.Max(minRarity, math.Min(maxRarity, v))
	return math.Round(v*10) / 10
}
