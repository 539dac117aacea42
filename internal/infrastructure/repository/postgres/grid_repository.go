package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/football-grid/internal/domain/grid"
	qb "github.com/riskibarqy/football-grid/internal/platform/querybuilder"
)

const (
	tableDailyGrids  = "daily_grids"
	tableCellGuesses = "cell_guesses"
)

var gridSelectColumns = []string{
	"grid_date::text AS grid_date",
	"payload",
	"created_at",
}

type GridRepository struct {
	db *sqlx.DB
}

func NewGridRepository(db *sqlx.DB) *GridRepository {
	return &GridRepository{db: db}
}

func (r *GridRepository) GetByDate(ctx context.Context, day grid.Day) (grid.Grid, bool, error) {
	query, args, err := qb.Select(gridSelectColumns...).From(tableDailyGrids).
		Where(qb.Eq("grid_date", day.String())).
		Limit(1).
		ToSQL()
	if err != nil {
		return grid.Grid{}, false, fmt.Errorf("build select grid query: %w", err)
	}

	var row gridTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return grid.Grid{}, false, nil
		}
		return grid.Grid{}, false, fmt.Errorf("select grid %s: %w", day, err)
	}

	g, err := row.toDomain()
	if err != nil {
		return grid.Grid{}, false, err
	}
	return g, true, nil
}

func (r *GridRepository) ListBefore(ctx context.Context, day grid.Day, limit int) ([]grid.Grid, error) {
	query, args, err := qb.Select(gridSelectColumns...).From(tableDailyGrids).
		Where(qb.Lt("grid_date", day.String())).
		OrderBy("grid_date DESC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list grids query: %w", err)
	}

	var rows []gridTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list grids before %s: %w", day, err)
	}

	out := make([]grid.Grid, 0, len(rows))
	for _, row := range rows {
		g, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}

// CreateIfAbsent relies on the grid_date primary key: the losing writer's
// insert is a no-op and it reads back the winner's grid.
func (r *GridRepository) CreateIfAbsent(ctx context.Context, g grid.Grid) (grid.Grid, bool, error) {
	payload, err := encodeGridPayload(g)
	if err != nil {
		return grid.Grid{}, false, err
	}

	query, args, err := qb.InsertModel(tableDailyGrids, gridInsertModel{
		Date:    g.Date.String(),
		Payload: payload,
	}, "ON CONFLICT (grid_date) DO NOTHING")
	if err != nil {
		return grid.Grid{}, false, fmt.Errorf("build insert grid query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return grid.Grid{}, false, fmt.Errorf("insert grid %s: %w", g.Date, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return grid.Grid{}, false, fmt.Errorf("insert grid %s rows affected: %w", g.Date, err)
	}

	stored, ok, err := r.GetByDate(ctx, g.Date)
	if err != nil {
		return grid.Grid{}, false, err
	}
	if !ok {
		return grid.Grid{}, false, fmt.Errorf("grid %s missing after insert", g.Date)
	}
	return stored, affected == 1, nil
}

type GuessRepository struct {
	db *sqlx.DB
}

func NewGuessRepository(db *sqlx.DB) *GuessRepository {
	return &GuessRepository{db: db}
}

func (r *GuessRepository) Increment(ctx context.Context, guess grid.Guess) error {
	query, args, err := qb.InsertModel(tableCellGuesses, guessInsertModel{
		Date:     guess.Date.String(),
		RowKey:   guess.RowKey,
		ColKey:   guess.ColKey,
		PlayerID: guess.PlayerID,
		Count:    1,
	}, "ON CONFLICT (grid_date, row_key, col_key, player_id) DO UPDATE SET guess_count = cell_guesses.guess_count + 1")
	if err != nil {
		return fmt.Errorf("build increment guess query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("increment guess counter: %w", err)
	}
	return nil
}
