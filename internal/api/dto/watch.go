package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateWatchRequest is the DTO for adding an instrument to the watchlist.
type CreateWatchRequest struct {
	UserID             uint            `json:"user_id"`
	Symbol             string          `json:"symbol"`
	ReferencePrice     decimal.Decimal `json:"reference_price"`
	ProfitThresholdPct decimal.Decimal `json:"profit_threshold_pct"`
	LossThresholdPct   decimal.Decimal `json:"loss_threshold_pct"`
}

// UpdateWatchRequest is the DTO for editing a watch's price configuration.
// The symbol is immutable once created.
type UpdateWatchRequest struct {
	ReferencePrice     decimal.Decimal `json:"reference_price"`
	ProfitThresholdPct decimal.Decimal `json:"profit_threshold_pct"`
	LossThresholdPct   decimal.Decimal `json:"loss_threshold_pct"`
}

// LastPrice is the most recent cached observation for a symbol.
type LastPrice struct {
	Price      decimal.Decimal `json:"price"`
	ObservedAt time.Time       `json:"observed_at"`
}

// WatchResponse is the API representation of a watch, including the derived
// target prices and the latest cached observation when one exists.
type WatchResponse struct {
	ID                 uint            `json:"id"`
	UserID             uint            `json:"user_id"`
	Symbol             string          `json:"symbol"`
	ReferencePrice     decimal.Decimal `json:"reference_price"`
	ProfitThresholdPct decimal.Decimal `json:"profit_threshold_pct"`
	LossThresholdPct   decimal.Decimal `json:"loss_threshold_pct"`
	ProfitTargetPrice  decimal.Decimal `json:"profit_target_price"`
	LossTargetPrice    decimal.Decimal `json:"loss_target_price"`
	IsActive           bool            `json:"is_active"`
	LastPrice          *LastPrice      `json:"last_price,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}
