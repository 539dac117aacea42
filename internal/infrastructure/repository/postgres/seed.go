package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/football-grid/internal/domain/player"
	"github.com/riskibarqy/football-grid/internal/infrastructure/repository/memory"
	qb "github.com/riskibarqy/football-grid/internal/platform/querybuilder"
)

const seedConflictSuffix = "ON CONFLICT DO NOTHING"

// BootstrapSeed loads the built-in player population into an empty database.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM players`); err != nil {
		return fmt.Errorf("count players for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, profile := range memory.SeedPlayers() {
		if err := insertProfile(ctx, tx, profile); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}

func insertProfile(ctx context.Context, tx *sqlx.Tx, profile player.Profile) error {
	id := profile.Player.ID
	if err := execInsert(ctx, tx, tablePlayers, playerInsertModel(profile.Player)); err != nil {
		return fmt.Errorf("seed player %d: %w", id, err)
	}

	affiliations := []struct {
		table string
		names []string
	}{
		{table: tablePlayerClubs, names: profile.Clubs},
		{table: tablePlayerNations, names: profile.Nations},
		{table: tablePlayerLeagues, names: profile.Leagues},
	}
	for _, a := range affiliations {
		for _, name := range a.names {
			if err := execInsert(ctx, tx, a.table, affiliationInsertModel{PlayerID: id, Name: name}); err != nil {
				return fmt.Errorf("seed %s for player %d: %w", a.table, id, err)
			}
		}
	}

	for _, s := range profile.ClubStats {
		if err := insertScopedStat(ctx, tx, tablePlayerClubGoals, tablePlayerClubAssists, id, s); err != nil {
			return err
		}
	}
	for _, s := range profile.SeasonStats {
		if err := insertScopedStat(ctx, tx, tablePlayerSeasonGoals, tablePlayerSeasonAssists, id, s); err != nil {
			return err
		}
	}
	return nil
}

func insertScopedStat(ctx context.Context, tx *sqlx.Tx, goalsTable, assistsTable string, playerID int64, s player.ScopedStat) error {
	if err := execInsert(ctx, tx, goalsTable, scopedStatInsertModel{PlayerID: playerID, ScopeName: s.Scope, StatValue: s.Goals}); err != nil {
		return fmt.Errorf("seed %s for player %d: %w", goalsTable, playerID, err)
	}
	if err := execInsert(ctx, tx, assistsTable, scopedStatInsertModel{PlayerID: playerID, ScopeName: s.Scope, StatValue: s.Assists}); err != nil {
		return fmt.Errorf("seed %s for player %d: %w", assistsTable, playerID, err)
	}
	return nil
}

func execInsert(ctx context.Context, tx *sqlx.Tx, table string, model any) error {
	query, args, err := qb.InsertModel(table, model, seedConflictSuffix)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, query, args...)
	return err
}
