package usecase

import (
	"testing"

	"github.com/riskibarqy/football-grid/internal/domain/category"
)

func TestCatalogService_ListCoversEveryPool(t *testing.T) {
	t.Parallel()

	got := NewCatalogService(category.Default()).List()
	if len(got.Clubs) == 0 || len(got.Nations) == 0 || len(got.Leagues) == 0 || len(got.Specials) == 0 {
		t.Fatalf("expected every pool to be populated: %+v", got)
	}
	for _, club := range got.Clubs {
		if !club.IsClub() || club.Label == "" {
			t.Fatalf("unexpected club entry: %+v", club)
		}
	}
}
