package service

import (
	"github.com/shopspring/decimal"

	"golang-stock-watchlist/internal/entity"
)

// Condition is the evaluated relationship between an observed price and a
// watch's target prices.
type Condition int

const (
	ConditionNone Condition = iota
	ConditionProfit
	ConditionLoss
)

func (c Condition) String() string {
	switch c {
	case ConditionProfit:
		return "profit"
	case ConditionLoss:
		return "loss"
	default:
		return "none"
	}
}

// AlertKind maps a triggering condition to the alert kind it raises.
func (c Condition) AlertKind() entity.AlertKind {
	if c == ConditionLoss {
		return entity.AlertKindLoss
	}
	return entity.AlertKindProfit
}

// Evaluate computes which condition holds for the watch at the observed
// price. Comparisons are inclusive: a price exactly at a target triggers. A
// zero threshold percentage means the side is unset and never triggers.
// Profit wins when both sides hold; the tie-break is arbitrary but fixed.
// Pure function, safe for concurrent use.
func Evaluate(watch *entity.Watch, observedPrice decimal.Decimal) Condition {
	if watch.ProfitThresholdPct.IsPositive() && observedPrice.GreaterThanOrEqual(watch.ProfitTargetPrice()) {
		return ConditionProfit
	}
	if watch.LossThresholdPct.IsPositive() && observedPrice.LessThanOrEqual(watch.LossTargetPrice()) {
		return ConditionLoss
	}
	return ConditionNone
}
