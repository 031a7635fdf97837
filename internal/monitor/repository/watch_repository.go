package repository

import (
	"context"

	"gorm.io/gorm"

	"golang-stock-watchlist/internal/entity"
)

// WatchRepository is the monitor-side view of the watch table: only active
// watches are ever evaluated.
type WatchRepository interface {
	GetActive(ctx context.Context) ([]entity.Watch, error)
}

type watchRepository struct {
	db *gorm.DB
}

func NewWatchRepository(db *gorm.DB) WatchRepository {
	return &watchRepository{db: db}
}

func (r *watchRepository) GetActive(ctx context.Context) ([]entity.Watch, error) {
	var watches []entity.Watch
	if err := r.db.WithContext(ctx).Preload("User").Where("is_active = ?", true).Find(&watches).Error; err != nil {
		return nil, err
	}
	return watches, nil
}
