package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"golang-stock-watchlist/internal/api/dto"
	"golang-stock-watchlist/internal/entity"
)

// ErrAlertNotFound is returned when the referenced alert does not exist.
var ErrAlertNotFound = errors.New("alert not found")

// AlertRepository defines the API-side interface for alert data operations.
type AlertRepository interface {
	Find(ctx context.Context, param dto.GetAlertsParam) ([]entity.Alert, error)
	// Acknowledge marks the alert as seen. Acknowledging an alert that is
	// already acknowledged succeeds without touching acknowledged_at, so a
	// retried or double-clicked acknowledge link is harmless.
	Acknowledge(ctx context.Context, id uint) error
}

// NewAlertRepository creates a new GORM-based alert repository.
func NewAlertRepository(db *gorm.DB) AlertRepository {
	return &alertRepository{db: db}
}

type alertRepository struct {
	db *gorm.DB
}

func (r *alertRepository) Find(ctx context.Context, param dto.GetAlertsParam) ([]entity.Alert, error) {
	query := r.db.WithContext(ctx).Preload("Watch")

	if param.WatchID != nil {
		query = query.Where("watch_id = ?", *param.WatchID)
	}
	if param.Acknowledged != nil {
		query = query.Where("is_acknowledged = ?", *param.Acknowledged)
	}

	var alerts []entity.Alert
	if err := query.Order("created_at DESC").Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

func (r *alertRepository) Acknowledge(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&entity.Alert{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_acknowledged": true,
			"acknowledged_at": gorm.Expr("COALESCE(acknowledged_at, ?)", time.Now()),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAlertNotFound
	}
	return nil
}
