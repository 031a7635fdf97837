package service

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"golang-stock-watchlist/internal/entity"
	"golang-stock-watchlist/internal/monitor/dto"
	"golang-stock-watchlist/internal/monitor/repository"
	"golang-stock-watchlist/pkg/logger"
)

var oneHundred = decimal.NewFromInt(100)

// AlertGate turns per-observation conditions into at most one pending alert
// per (watch, kind). While a crossing persists, repeated observations are
// suppressed; acknowledging the pending alert re-arms the pair so the next
// qualifying observation raises a fresh one.
type AlertGate struct {
	alerts repository.AlertRepository
	log    *logger.Logger
}

// NewAlertGate creates a new AlertGate.
func NewAlertGate(alerts repository.AlertRepository, log *logger.Logger) *AlertGate {
	return &AlertGate{alerts: alerts, log: log}
}

// Process evaluates one observation for a watch. It returns the newly created
// alert, or nil when the watch is paused, no condition holds, or an alert of
// the same kind is already pending.
func (g *AlertGate) Process(ctx context.Context, watch *entity.Watch, quote *dto.PriceQuote) (*entity.Alert, error) {
	if !watch.IsActive {
		return nil, nil
	}

	cond := Evaluate(watch, quote.Price)
	if cond == ConditionNone {
		// An open pending alert stays pending; only acknowledgment clears it.
		return nil, nil
	}

	alert := g.snapshot(watch, quote, cond)
	err := g.alerts.CreateIfNoPending(ctx, alert)
	if errors.Is(err, repository.ErrPendingAlertExists) {
		g.log.DebugContext(ctx, "Alert suppressed, pending alert still open",
			logger.UintField("watch_id", watch.ID),
			logger.StringField("symbol", watch.Symbol),
			logger.StringField("kind", string(alert.Kind)))
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return alert, nil
}

// snapshot captures the watch's current reference and target values so later
// watch edits do not rewrite alert history.
func (g *AlertGate) snapshot(watch *entity.Watch, quote *dto.PriceQuote, cond Condition) *entity.Alert {
	threshold := watch.ProfitTargetPrice()
	if cond == ConditionLoss {
		threshold = watch.LossTargetPrice()
	}

	change := quote.Price.Sub(watch.ReferencePrice).
		Div(watch.ReferencePrice).
		Mul(oneHundred).
		Round(4)

	return &entity.Alert{
		WatchID:          watch.ID,
		Kind:             cond.AlertKind(),
		ObservedPrice:    quote.Price,
		ThresholdPrice:   threshold,
		ReferencePrice:   watch.ReferencePrice,
		PercentageChange: change,
		CreatedAt:        quote.ObservedAt,
	}
}
