package usecase

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/riskibarqy/football-grid/internal/domain/player"
)

const (
	searchMinQueryLength = 2
	searchResultLimit    = 15
)

type PlayerService struct {
	players player.Repository
}

func NewPlayerService(players player.Repository) *PlayerService {
	return &PlayerService{players: players}
}

// Search returns players whose folded name contains query, most capped first.
// Queries shorter than two characters return nothing.
func (s *PlayerService) Search(ctx context.Context, query string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Search")
	defer span.End()

	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < searchMinQueryLength {
		return []player.Player{}, nil
	}

	items, err := s.players.Search(ctx, query, searchResultLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: search players: %v", ErrDependencyUnavailable, err)
	}
	return items, nil
}
