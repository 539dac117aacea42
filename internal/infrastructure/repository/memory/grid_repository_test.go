package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/riskibarqy/football-grid/internal/domain/category"
	"github.com/riskibarqy/football-grid/internal/domain/grid"
)

func sampleGrid(day grid.Day, club string) grid.Grid {
	c := category.Default()
	return grid.Grid{
		Date: day,
		Rows: []category.Category{c.Resolve(category.KindClub, club), c.Resolve(category.KindClub, "YB"), c.Resolve(category.KindClub, "GC")},
		Cols: []category.Category{c.Resolve(category.KindClub, "Sion"), c.Resolve(category.KindNation, "SUI"), c.Resolve(category.KindChampion, "")},
	}
}

func TestGridRepository_CreateIfAbsentKeepsFirstWriter(t *testing.T) {
	t.Parallel()

	repo := NewGridRepository()
	day := grid.Day("2026-10-19")

	const writers = 16
	var wg sync.WaitGroup
	results := make(chan grid.Grid, writers)
	created := make(chan bool, writers)
	for i := 0; i < writers; i++ {
		club := "Basel"
		if i%2 == 1 {
			club = "Lugano"
		}
		wg.Add(1)
		go func(g grid.Grid) {
			defer wg.Done()
			stored, ok, err := repo.CreateIfAbsent(context.Background(), g)
			if err != nil {
				t.Errorf("create: %v", err)
				return
			}
			results <- stored
			created <- ok
		}(sampleGrid(day, club))
	}
	wg.Wait()
	close(results)
	close(created)

	var first string
	for g := range results {
		if first == "" {
			first = g.Rows[0].Code
		}
		if g.Rows[0].Code != first {
			t.Fatalf("writers observed different grids: %s vs %s", first, g.Rows[0].Code)
		}
	}
	wins := 0
	for ok := range created {
		if ok {
			wins++
		}
	}
	if wins != 1 {
		t.Fatalf("expected exactly one creator, got %d", wins)
	}
}

func TestGridRepository_ListBeforeNewestFirst(t *testing.T) {
	t.Parallel()

	repo := NewGridRepository(
		sampleGrid("2026-10-16", "Basel"),
		sampleGrid("2026-10-18", "Lugano"),
		sampleGrid("2026-10-17", "Thun"),
		sampleGrid("2026-10-19", "Aarau"),
	)

	got, err := repo.ListBefore(context.Background(), "2026-10-19", 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].Date != "2026-10-18" || got[1].Date != "2026-10-17" {
		t.Fatalf("unexpected grids: %+v", got)
	}
}

func TestGridRepository_ReturnsCopies(t *testing.T) {
	t.Parallel()

	repo := NewGridRepository(sampleGrid("2026-10-19", "Basel"))
	g, _, _ := repo.GetByDate(context.Background(), "2026-10-19")
	g.Rows[0].Code = "mutated"

	again, _, _ := repo.GetByDate(context.Background(), "2026-10-19")
	if again.Rows[0].Code != "Basel" {
		t.Fatalf("stored grid was mutated through a returned copy")
	}
}

func TestGuessRepository_Increment(t *testing.T) {
	t.Parallel()

	repo := NewGuessRepository()
	guess := grid.Guess{Date: "2026-10-19", RowKey: "team:basel", ColKey: "nation:sui", PlayerID: 86792}
	for i := 0; i < 3; i++ {
		if err := repo.Increment(context.Background(), guess); err != nil {
			t.Fatalf("increment: %v", err)
		}
	}
	if got := repo.Count(guess); got != 3 {
		t.Fatalf("count = %d, want 3", got)
	}
}
