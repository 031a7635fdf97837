package repository

import (
	"context"
	"errors"

	"golang-stock-watchlist/internal/monitor/dto"
)

var (
	// ErrSymbolNotFound means the source does not know the symbol. Retrying
	// will not help until the watch is fixed.
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrSourceUnavailable is a transient fetch failure. The cycle for the
	// symbol is skipped and retried on the next scan.
	ErrSourceUnavailable = errors.New("price source unavailable")
)

// PriceRepository supplies the current price for a symbol.
type PriceRepository interface {
	Quote(ctx context.Context, symbol string) (*dto.PriceQuote, error)
}
