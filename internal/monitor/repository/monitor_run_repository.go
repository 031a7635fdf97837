package repository

import (
	"context"

	"gorm.io/gorm"

	"golang-stock-watchlist/internal/entity"
)

// MonitorRunRepository persists scan run records.
type MonitorRunRepository interface {
	Create(ctx context.Context, run *entity.MonitorRun) error
	Update(ctx context.Context, run *entity.MonitorRun) error
}

type monitorRunRepository struct {
	db *gorm.DB
}

func NewMonitorRunRepository(db *gorm.DB) MonitorRunRepository {
	return &monitorRunRepository{db: db}
}

func (r *monitorRunRepository) Create(ctx context.Context, run *entity.MonitorRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *monitorRunRepository) Update(ctx context.Context, run *entity.MonitorRun) error {
	return r.db.WithContext(ctx).Save(run).Error
}
