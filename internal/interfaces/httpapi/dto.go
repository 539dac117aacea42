package httpapi

import (
	"github.com/riskibarqy/football-grid/internal/domain/category"
	"github.com/riskibarqy/football-grid/internal/domain/grid"
	"github.com/riskibarqy/football-grid/internal/domain/player"
	"github.com/riskibarqy/football-grid/internal/usecase"
)

type categoryDTO struct {
	Type  string `json:"type"`
	Value string `json:"value"`
	Label string `json:"label"`
}

type gridDTO struct {
	Date string        `json:"date"`
	Rows []categoryDTO `json:"rows"`
	Cols []categoryDTO `json:"cols"`
}

type categoryListingDTO struct {
	Clubs    []categoryDTO `json:"clubs"`
	Nations  []categoryDTO `json:"nations"`
	Leagues  []categoryDTO `json:"leagues"`
	Specials []categoryDTO `json:"specials"`
}

type playerSearchItemDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Appearances int    `json:"appearances"`
}

type verifyResultDTO struct {
	Correct    bool            `json:"correct"`
	Rarity     *float64        `json:"rarity,omitempty"`
	PlayerID   int64           `json:"playerId,omitempty"`
	PlayerName string          `json:"playerName,omitempty"`
	DebugInfo  *verifyDebugDTO `json:"debugInfo,omitempty"`
}

type verifyDebugDTO struct {
	Found       bool   `json:"found"`
	RowMatch    bool   `json:"rowMatch"`
	ColMatch    bool   `json:"colMatch"`
	RowKey      string `json:"rowKey"`
	ColKey      string `json:"colKey"`
	Appearances int    `json:"appearances"`
	EraID       int64  `json:"eraId"`
	PoolSize    int    `json:"poolSize"`
	Rank        int    `json:"rank"`
	Legend      bool   `json:"legend"`
}

type categoryRequest struct {
	Type  string `json:"type" validate:"required,max=32"`
	Value string `json:"value" validate:"max=120"`
}

type verifyRequest struct {
	PlayerName string          `json:"playerName" validate:"required,max=120"`
	RowCat     categoryRequest `json:"rowCat"`
	ColCat     categoryRequest `json:"colCat"`
}

type jobAcceptedDTO struct {
	Job    string `json:"job"`
	Status string `json:"status"`
}

func categoryToDTO(c category.Category) categoryDTO {
	return categoryDTO{
		Type:  string(c.Kind),
		Value: c.Code,
		Label: c.Label,
	}
}

func categoriesToDTO(items []category.Category) []categoryDTO {
	out := make([]categoryDTO, 0, len(items))
	for _, item := range items {
		out = append(out, categoryToDTO(item))
	}
	return out
}

func gridToDTO(g grid.Grid) gridDTO {
	return gridDTO{
		Date: g.Date.String(),
		Rows: categoriesToDTO(g.Rows),
		Cols: categoriesToDTO(g.Cols),
	}
}

func listingToDTO(listing usecase.CatalogListing) categoryListingDTO {
	return categoryListingDTO{
		Clubs:    categoriesToDTO(listing.Clubs),
		Nations:  categoriesToDTO(listing.Nations),
		Leagues:  categoriesToDTO(listing.Leagues),
		Specials: categoriesToDTO(listing.Specials),
	}
}

func playersToSearchDTO(players []player.Player) []playerSearchItemDTO {
	out := make([]playerSearchItemDTO, 0, len(players))
	for _, p := range players {
		out = append(out, playerSearchItemDTO{ID: p.ID, Name: p.Name, Appearances: p.Appearances})
	}
	return out
}

func verifyResultToDTO(result usecase.VerifyResult) verifyResultDTO {
	out := verifyResultDTO{
		Correct:    result.Correct,
		Rarity:     result.Rarity,
		PlayerID:   result.PlayerID,
		PlayerName: result.PlayerName,
	}
	if d := result.Debug; d != nil {
		out.DebugInfo = &verifyDebugDTO{
			Found:       d.Found,
			RowMatch:    d.RowMatch,
			ColMatch:    d.ColMatch,
			RowKey:      d.RowKey,
			ColKey:      d.ColKey,
			Appearances: d.Appearances,
			EraID:       d.EraID,
			PoolSize:    d.PoolSize,
			Rank:        d.Rank,
			Legend:      d.Legend,
		}
	}
	return out
}
