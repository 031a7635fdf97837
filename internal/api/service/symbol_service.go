package service

import (
	"context"

	"golang-stock-watchlist/internal/api/dto"
	"golang-stock-watchlist/internal/api/repository"
)

// SymbolService exposes symbol autocomplete to the delivery layer.
type SymbolService interface {
	Search(ctx context.Context, query string) ([]dto.SymbolSearchResult, error)
}

// NewSymbolService creates a new symbol service.
func NewSymbolService(searchRepo repository.SymbolSearchRepository) SymbolService {
	return &symbolService{searchRepo: searchRepo}
}

type symbolService struct {
	searchRepo repository.SymbolSearchRepository
}

func (s *symbolService) Search(ctx context.Context, query string) ([]dto.SymbolSearchResult, error) {
	return s.searchRepo.Search(ctx, query)
}
