package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// GetAlertsParam filters alert listings. Nil pointers mean "no filter".
type GetAlertsParam struct {
	WatchID      *uint
	Acknowledged *bool
}

// AlertResponse is the API representation of an alert.
type AlertResponse struct {
	ID               uint            `json:"id"`
	WatchID          uint            `json:"watch_id"`
	Symbol           string          `json:"symbol"`
	Kind             string          `json:"kind"`
	ObservedPrice    decimal.Decimal `json:"observed_price"`
	ThresholdPrice   decimal.Decimal `json:"threshold_price"`
	ReferencePrice   decimal.Decimal `json:"reference_price"`
	PercentageChange decimal.Decimal `json:"percentage_change"`
	IsAcknowledged   bool            `json:"is_acknowledged"`
	AcknowledgedAt   *time.Time      `json:"acknowledged_at,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}
