package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/football-grid/internal/domain/player"
	playermock "github.com/riskibarqy/football-grid/internal/mocks/domain/player"
	"github.com/stretchr/testify/mock"
)

func TestPlayerService_SearchShortQueryReturnsNothing(t *testing.T) {
	t.Parallel()

	repo := playermock.NewRepository(t)
	service := NewPlayerService(repo)

	for _, query := range []string{"", " ", "x", " é "} {
		got, err := service.Search(context.Background(), query)
		if err != nil {
			t.Fatalf("search %q: %v", query, err)
		}
		if len(got) != 0 {
			t.Fatalf("search %q returned %d players", query, len(got))
		}
	}
}

func TestPlayerService_SearchUsesLimitAndTrimmedQuery(t *testing.T) {
	t.Parallel()

	repo := playermock.NewRepository(t)
	service := NewPlayerService(repo)
	expected := []player.Player{{ID: 1204, Name: "Alexander Frei"}, {ID: 102450, Name: "Fabian Frei"}}

	repo.On("Search", mock.Anything, "frei", 15).Return(expected, nil).Once()

	got, err := service.Search(context.Background(), "  frei ")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 2 || got[0].ID != 1204 {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestPlayerService_SearchStoreFailure(t *testing.T) {
	t.Parallel()

	repo := playermock.NewRepository(t)
	service := NewPlayerService(repo)

	repo.On("Search", mock.Anything, "shaq", 15).Return(nil, errors.New("pool exhausted")).Once()

	if _, err := service.Search(context.Background(), "shaq"); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}
