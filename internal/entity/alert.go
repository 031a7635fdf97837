package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// AlertKind identifies which threshold was crossed.
type AlertKind string

const (
	AlertKindProfit AlertKind = "profit"
	AlertKindLoss   AlertKind = "loss"
)

// Alert records a single threshold-crossing event. Price fields are a
// snapshot taken at trigger time and never change afterwards, even when the
// watch is later edited. The only mutation an alert ever sees is the one-way
// Pending -> Acknowledged transition.
type Alert struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	WatchID          uint            `gorm:"not null;index:idx_alerts_watch_kind_ack" json:"watch_id"`
	Watch            Watch           `json:"-"`
	Kind             AlertKind       `gorm:"type:varchar(10);not null;index:idx_alerts_watch_kind_ack" json:"kind"`
	ObservedPrice    decimal.Decimal `gorm:"type:numeric(18,4);not null" json:"observed_price"`
	ThresholdPrice   decimal.Decimal `gorm:"type:numeric(18,4);not null" json:"threshold_price"`
	ReferencePrice   decimal.Decimal `gorm:"type:numeric(18,4);not null" json:"reference_price"`
	PercentageChange decimal.Decimal `gorm:"type:numeric(8,4);not null" json:"percentage_change"`
	IsAcknowledged   bool            `gorm:"not null;default:false;index:idx_alerts_watch_kind_ack" json:"is_acknowledged"`
	AcknowledgedAt   *time.Time      `json:"acknowledged_at"`
	CreatedAt        time.Time       `gorm:"not null" json:"created_at"`
}

func (Alert) TableName() string {
	return "alerts"
}
