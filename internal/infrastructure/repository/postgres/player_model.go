package postgres

import (
	"database/sql"

	"github.com/riskibarqy/football-grid/internal/domain/player"
	"github.com/riskibarqy/football-grid/internal/platform/textnorm"
)

type playerTableModel struct {
	ID          int64         `db:"id"`
	LegacyID    sql.NullInt64 `db:"legacy_id"`
	Name        string        `db:"name"`
	NameFolded  string        `db:"name_folded"`
	Appearances int           `db:"appearances"`
	Goals       int           `db:"goals"`
	Assists     int           `db:"assists"`
	Champion    bool          `db:"is_champion"`
	CupWinner   bool          `db:"is_cup_winner"`
	TopScorer   bool          `db:"is_top_scorer"`
	Retired     bool          `db:"retired"`
	LastUpdated sql.NullTime  `db:"last_updated"`
}

var playerSelectColumns = []string{
	"p.id",
	"p.legacy_id",
	"p.name",
	"p.name_folded",
	"p.appearances",
	"p.goals",
	"p.assists",
	"p.is_champion",
	"p.is_cup_winner",
	"p.is_top_scorer",
	"p.retired",
	"p.last_updated",
}

func (m playerTableModel) toDomain() player.Player {
	out := player.Player{
		ID:          m.ID,
		LegacyID:    m.LegacyID.Int64,
		Name:        m.Name,
		Appearances: m.Appearances,
		Goals:       m.Goals,
		Assists:     m.Assists,
		Trophies: player.Trophies{
			Champion:  m.Champion,
			CupWinner: m.CupWinner,
			TopScorer: m.TopScorer,
		},
		Retired: m.Retired,
	}
	if m.LastUpdated.Valid {
		updated := m.LastUpdated.Time
		out.LastUpdated = &updated
	}
	return out
}

func playerInsertModel(p player.Player) playerTableModel {
	return playerTableModel{
		ID:          p.ID,
		LegacyID:    sql.NullInt64{Int64: p.LegacyID, Valid: p.LegacyID > 0},
		Name:        p.Name,
		NameFolded:  textnorm.Fold(p.Name),
		Appearances: p.Appearances,
		Goals:       p.Goals,
		Assists:     p.Assists,
		Champion:    p.Trophies.Champion,
		CupWinner:   p.Trophies.CupWinner,
		TopScorer:   p.Trophies.TopScorer,
		Retired:     p.Retired,
	}
}

type affiliationInsertModel struct {
	PlayerID int64  `db:"player_id"`
	Name     string `db:"name"`
}

type scopedStatInsertModel struct {
	PlayerID  int64  `db:"player_id"`
	ScopeName string `db:"scope_name"`
	StatValue int    `db:"stat_value"`
}

type poolRow struct {
	PlayerID    int64 `db:"id"`
	Appearances int   `db:"appearances"`
}
