package postgres

import (
	"database/sql"
	"fmt"
	"testing"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("select grid: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped ErrNoRows to be not found")
	}
	if isNotFound(fmt.Errorf("connection refused")) {
		t.Fatalf("expected unrelated error to be ignored")
	}
}

func TestContainsPatternsEscapesLikeMetacharacters(t *testing.T) {
	got := containsPatterns([]string{"fc basel", "", "100%_club"})
	want := []string{"%fc basel%", `%100\%\_club%`}
	if len(got) != len(want) {
		t.Fatalf("unexpected patterns: %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("pattern %d = %q, want %q", i, got[i], want[i])
		}
	}
}
