package postgres

import (
	"testing"

	"github.com/riskibarqy/football-grid/internal/domain/category"
)

func TestGridTableModel_DecodesLegacyKindNames(t *testing.T) {
	row := gridTableModel{
		Date:    "2026-10-19",
		Payload: []byte(`{"rows":[{"kind":"club","code":"Basel","label":"FC Basel"}],"cols":[{"kind":"meister","code":"champion","label":"League champion"}]}`),
	}

	g, err := row.toDomain()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if g.Rows[0].Kind != category.KindClub {
		t.Fatalf("expected club kind, got %q", g.Rows[0].Kind)
	}
	if g.Cols[0].Kind != category.KindChampion {
		t.Fatalf("expected champion kind, got %q", g.Cols[0].Kind)
	}
}

func TestGridTableModel_RejectsCorruptPayload(t *testing.T) {
	row := gridTableModel{Date: "2026-10-19", Payload: []byte(`{not json`)}
	if _, err := row.toDomain(); err == nil {
		t.Fatalf("expected decode error")
	}
}
