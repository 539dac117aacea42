package postgres

import (
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/football-grid/internal/domain/category"
	"github.com/riskibarqy/football-grid/internal/domain/grid"
)

type gridTableModel struct {
	Date      string    `db:"grid_date"`
	Payload   []byte    `db:"payload"`
	CreatedAt time.Time `db:"created_at"`
}

type gridInsertModel struct {
	Date    string `db:"grid_date"`
	Payload string `db:"payload"`
}

// gridPayload is the serialized form stored in daily_grids.payload.
type gridPayload struct {
	Rows []categoryPayload `json:"rows"`
	Cols []categoryPayload `json:"cols"`
}

type categoryPayload struct {
	Kind      string `json:"kind"`
	Code      string `json:"code"`
	Label     string `json:"label"`
	Threshold int    `json:"threshold,omitempty"`
}

func encodeGridPayload(g grid.Grid) (string, error) {
	payload := gridPayload{
		Rows: toCategoryPayloads(g.Rows),
		Cols: toCategoryPayloads(g.Cols),
	}
	raw, err := sonic.MarshalString(payload)
	if err != nil {
		return "", fmt.Errorf("encode grid payload: %w", err)
	}
	return raw, nil
}

func (m gridTableModel) toDomain() (grid.Grid, error) {
	var payload gridPayload
	if err := sonic.Unmarshal(m.Payload, &payload); err != nil {
		return grid.Grid{}, fmt.Errorf("decode grid payload for %s: %w", m.Date, err)
	}
	return grid.Grid{
		Date:      grid.Day(m.Date),
		Rows:      fromCategoryPayloads(payload.Rows),
		Cols:      fromCategoryPayloads(payload.Cols),
		CreatedAt: m.CreatedAt,
	}, nil
}

func toCategoryPayloads(items []category.Category) []categoryPayload {
	out := make([]categoryPayload, 0, len(items))
	for _, c := range items {
		out = append(out, categoryPayload{Kind: string(c.Kind), Code: c.Code, Label: c.Label, Threshold: c.Threshold})
	}
	return out
}

func fromCategoryPayloads(items []categoryPayload) []category.Category {
	out := make([]category.Category, 0, len(items))
	for _, c := range items {
		out = append(out, category.Category{
			Kind:      category.ParseKind(c.Kind),
			Code:      c.Code,
			Label:     c.Label,
			Threshold: c.Threshold,
		})
	}
	return out
}

type guessInsertModel struct {
	Date     string `db:"grid_date"`
	RowKey   string `db:"row_key"`
	ColKey   string `db:"col_key"`
	PlayerID int64  `db:"player_id"`
	Count    int    `db:"guess_count"`
}
