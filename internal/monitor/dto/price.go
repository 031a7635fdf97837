package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceQuote is a single observation from a price source.
type PriceQuote struct {
	Symbol     string          `json:"symbol"`
	Price      decimal.Decimal `json:"price"`
	ObservedAt time.Time       `json:"observed_at"`
}
