package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"golang-stock-watchlist/internal/entity"
)

// ErrPendingAlertExists means an unacknowledged alert of the same kind is
// already open for the watch. A sustained crossing hitting this is the normal
// debounce path, and a concurrent writer losing the insert race lands here
// too; neither is reported to the user.
var ErrPendingAlertExists = errors.New("pending alert already exists for watch and kind")

// AlertRepository is the monitor-side view of the alert table.
type AlertRepository interface {
	// CreateIfNoPending inserts the alert unless an unacknowledged alert of
	// the same kind already exists for the watch. The check and the insert
	// are a single statement so concurrent cycles for the same watch cannot
	// both insert; a partial unique index backs it up.
	CreateIfNoPending(ctx context.Context, alert *entity.Alert) error
}

type alertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) AlertRepository {
	return &alertRepository{db: db}
}

func (r *alertRepository) CreateIfNoPending(ctx context.Context, alert *entity.Alert) error {
	res := r.db.WithContext(ctx).Exec(`
		INSERT INTO alerts (watch_id, kind, observed_price, threshold_price, reference_price, percentage_change, is_acknowledged, created_at)
		SELECT ?, ?, ?, ?, ?, ?, false, ?
		WHERE NOT EXISTS (
			SELECT 1 FROM alerts
			WHERE watch_id = ? AND kind = ? AND is_acknowledged = false
		)`,
		alert.WatchID, alert.Kind, alert.ObservedPrice, alert.ThresholdPrice,
		alert.ReferencePrice, alert.PercentageChange, alert.CreatedAt,
		alert.WatchID, alert.Kind,
	)
	if res.Error != nil {
		// Two writers can pass the NOT EXISTS check before either commits;
		// the partial unique index rejects the loser.
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return ErrPendingAlertExists
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPendingAlertExists
	}
	return nil
}
