package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"golang-stock-watchlist/internal/entity"
)

// ErrWatchNotFound is returned when the referenced watch does not exist.
var ErrWatchNotFound = errors.New("watch not found")

// WatchRepository defines the interface for watch data operations.
type WatchRepository interface {
	Create(ctx context.Context, watch *entity.Watch) error
	FindByID(ctx context.Context, id uint) (*entity.Watch, error)
	FindByUser(ctx context.Context, userID uint) ([]entity.Watch, error)
	Update(ctx context.Context, watch *entity.Watch) error
	Delete(ctx context.Context, id uint) error
}

// NewWatchRepository creates a new GORM-based watch repository.
func NewWatchRepository(db *gorm.DB) WatchRepository {
	return &watchRepository{db: db}
}

type watchRepository struct {
	db *gorm.DB
}

func (r *watchRepository) Create(ctx context.Context, watch *entity.Watch) error {
	return r.db.WithContext(ctx).Create(watch).Error
}

func (r *watchRepository) FindByID(ctx context.Context, id uint) (*entity.Watch, error) {
	var watch entity.Watch
	if err := r.db.WithContext(ctx).First(&watch, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWatchNotFound
		}
		return nil, err
	}
	return &watch, nil
}

func (r *watchRepository) FindByUser(ctx context.Context, userID uint) ([]entity.Watch, error) {
	var watches []entity.Watch
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&watches).Error; err != nil {
		return nil, err
	}
	return watches, nil
}

func (r *watchRepository) Update(ctx context.Context, watch *entity.Watch) error {
	return r.db.WithContext(ctx).Save(watch).Error
}

// Delete removes a watch and cascades to its alerts in one transaction.
func (r *watchRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("watch_id = ?", id).Delete(&entity.Alert{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&entity.Watch{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrWatchNotFound
		}
		return nil
	})
}
