package usecase

import (
	"github.com/riskibarqy/football-grid/internal/domain/category"
)

type CatalogListing struct {
	Clubs    []category.Category
	Nations  []category.Category
	Leagues  []category.Category
	Specials []category.Category
}

type CatalogService struct {
	catalog *category.Catalog
}

func NewCatalogService(catalog *category.Catalog) *CatalogService {
	if catalog == nil {
		catalog = category.Default()
	}
	return &CatalogService{catalog: catalog}
}

func (s *CatalogService) List() CatalogListing {
	return CatalogListing{
		Clubs:    s.catalog.Clubs(),
		Nations:  s.catalog.Nations(),
		Leagues:  s.catalog.Leagues(),
		Specials: s.catalog.Specials(),
	}
}
