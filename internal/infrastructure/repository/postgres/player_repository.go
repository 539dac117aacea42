package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/football-grid/internal/domain/category"
	"github.com/riskibarqy/football-grid/internal/domain/player"
	qb "github.com/riskibarqy/football-grid/internal/platform/querybuilder"
	"github.com/riskibarqy/football-grid/internal/platform/textnorm"
)

const (
	tablePlayers             = "players"
	tablePlayerClubs         = "player_clubs"
	tablePlayerNations       = "player_nations"
	tablePlayerLeagues       = "player_leagues"
	tablePlayerClubGoals     = "player_club_goals"
	tablePlayerClubAssists   = "player_club_assists"
	tablePlayerSeasonGoals   = "player_season_goals"
	tablePlayerSeasonAssists = "player_season_assists"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) GetByName(ctx context.Context, name string) (player.Player, bool, error) {
	folded := textnorm.Fold(name)
	if folded == "" {
		return player.Player{}, false, nil
	}

	query, args, err := qb.Select(playerSelectColumns...).From(tablePlayers+" p").
		Where(qb.Eq("p.name_folded", folded)).
		OrderBy("p.appearances DESC", "p.id").
		Limit(1).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build select player by name query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("select player by name: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *PlayerRepository) Search(ctx context.Context, q string, limit int) ([]player.Player, error) {
	folded := textnorm.Fold(q)
	if folded == "" {
		return []player.Player{}, nil
	}

	query, args, err := qb.Select(playerSelectColumns...).From(tablePlayers+" p").
		Where(qb.Expr("p.name_folded LIKE ?", "%"+escapeLike(folded)+"%")).
		OrderBy("p.appearances DESC", "p.name").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build search players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("search players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PlayerRepository) Matches(ctx context.Context, playerID int64, filter player.Filter) (bool, error) {
	query, args, err := qb.Select("1").From(tablePlayers+" p").
		Where(qb.Eq("p.id", playerID), filterCondition(filter)).
		Limit(1).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build match %s query: %w", filter.Kind, err)
	}

	var one int
	if err := r.db.GetContext(ctx, &one, query, args...); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("match %s: %w", filter.Kind, err)
	}
	return true, nil
}

// Pool resolves both filters in one query; the intersection is the AND of the
// two predicates over players.
func (r *PlayerRepository) Pool(ctx context.Context, a, b player.Filter) ([]player.PoolEntry, error) {
	query, args, err := qb.Select("p.id", "p.appearances").From(tablePlayers+" p").
		Where(filterCondition(a), filterCondition(b)).
		OrderBy("p.appearances DESC", "p.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build pool %s x %s query: %w", a.Kind, b.Kind, err)
	}

	var rows []poolRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select pool %s x %s: %w", a.Kind, b.Kind, err)
	}

	out := make([]player.PoolEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, player.PoolEntry{PlayerID: row.PlayerID, Appearances: row.Appearances})
	}
	return out, nil
}

func (r *PlayerRepository) ListStale(ctx context.Context, limit int) ([]player.Player, error) {
	query, args, err := qb.Select(playerSelectColumns...).From(tablePlayers+" p").
		Where(qb.Eq("p.retired", false)).
		OrderBy("p.last_updated ASC NULLS FIRST", "p.id").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select stale players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select stale players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PlayerRepository) UpdateStats(ctx context.Context, update player.StatsUpdate) error {
	query, args, err := qb.Update(tablePlayers).
		Set("appearances", update.Appearances).
		Set("goals", update.Goals).
		Set("assists", update.Assists).
		Set("retired", update.Retired).
		Set("last_updated", update.UpdatedAt).
		Where(qb.Eq("id", update.PlayerID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update player stats query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update player %d stats: %w", update.PlayerID, err)
	}
	return nil
}

// filterCondition renders a filter as a predicate over the players alias "p".
func filterCondition(f player.Filter) qb.Condition {
	switch f.Kind {
	case category.KindClub:
		return affiliationExists(tablePlayerClubs, qb.LikeAny(foldColumn("a.name"), pq.Array(containsPatterns(f.Values))), f.Values)
	case category.KindNation:
		return affiliationExists(tablePlayerNations, qb.AnyOf(foldColumn("a.name"), pq.Array(f.Values)), f.Values)
	case category.KindLeague:
		return affiliationExists(tablePlayerLeagues, qb.LikeAny(foldColumn("a.name"), pq.Array(containsPatterns(f.Values))), f.Values)
	case category.KindGoals:
		return qb.Gte("p.goals", f.Threshold)
	case category.KindAssists:
		return qb.Gte("p.assists", f.Threshold)
	case category.KindChampion:
		return qb.Expr("p.is_champion")
	case category.KindCupWinner:
		return qb.Expr("p.is_cup_winner")
	case category.KindTopScorer:
		return qb.Expr("p.is_top_scorer")
	case category.KindClubGoals:
		return scopedStatExists(tablePlayerClubGoals, f)
	case category.KindClubAssists:
		return scopedStatExists(tablePlayerClubAssists, f)
	case category.KindSeasonGoals:
		return scopedStatExists(tablePlayerSeasonGoals, f)
	case category.KindSeasonAssists:
		return scopedStatExists(tablePlayerSeasonAssists, f)
	default:
		return qb.Expr("FALSE")
	}
}

func affiliationExists(table string, match qb.Condition, values []string) qb.Condition {
	if len(values) == 0 {
		return qb.Expr("FALSE")
	}
	return qb.Exists(qb.Select("1").From(table+" a").
		Where(qb.Expr("a.player_id = p.id"), match))
}

func scopedStatExists(table string, f player.Filter) qb.Condition {
	sub := qb.Select("1").From(table+" s").
		Where(qb.Expr("s.player_id = p.id"), qb.Gte("s.stat_value", f.Threshold))
	if len(f.ClubScope) > 0 {
		sub.Where(qb.LikeAny(foldColumn("s.scope_name"), pq.Array(containsPatterns(f.ClubScope))))
	}
	return qb.Exists(sub)
}
