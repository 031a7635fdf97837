package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// Watch is a user's monitor on one instrument: an acquisition (reference)
// price plus percentage thresholds for profit-taking and stop-loss. A paused
// watch keeps its configuration but is excluded from evaluation.
type Watch struct {
	ID                 uint            `gorm:"primaryKey" json:"id"`
	UserID             uint            `gorm:"not null;index" json:"user_id"`
	User               User            `json:"-"`
	Symbol             string          `gorm:"not null" json:"symbol"`
	ReferencePrice     decimal.Decimal `gorm:"type:numeric(18,4);not null" json:"reference_price"`
	ProfitThresholdPct decimal.Decimal `gorm:"type:numeric(8,4);not null" json:"profit_threshold_pct"`
	LossThresholdPct   decimal.Decimal `gorm:"type:numeric(8,4);not null" json:"loss_threshold_pct"`
	IsActive           bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt          time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Watch) TableName() string {
	return "watches"
}

// ProfitTargetPrice is reference * (1 + profitPct/100), computed in decimal
// so a price exactly at the target compares equal.
func (w *Watch) ProfitTargetPrice() decimal.Decimal {
	return w.ReferencePrice.Mul(oneHundred.Add(w.ProfitThresholdPct)).Div(oneHundred)
}

// LossTargetPrice is reference * (1 - lossPct/100).
func (w *Watch) LossTargetPrice() decimal.Decimal {
	return w.ReferencePrice.Mul(oneHundred.Sub(w.LossThresholdPct)).Div(oneHundred)
}
