package service

import (
	"context"

	"golang-stock-watchlist/internal/api/dto"
	"golang-stock-watchlist/internal/api/repository"
	"golang-stock-watchlist/pkg/logger"
)

// AlertService defines the interface for reading and acknowledging alerts.
type AlertService interface {
	GetAlerts(ctx context.Context, param dto.GetAlertsParam) ([]dto.AlertResponse, error)
	Acknowledge(ctx context.Context, id uint) error
}

// NewAlertService creates a new alert service.
func NewAlertService(alertRepo repository.AlertRepository, log *logger.Logger) AlertService {
	return &alertService{alertRepo: alertRepo, log: log}
}

type alertService struct {
	alertRepo repository.AlertRepository
	log       *logger.Logger
}

func (s *alertService) GetAlerts(ctx context.Context, param dto.GetAlertsParam) ([]dto.AlertResponse, error) {
	alerts, err := s.alertRepo.Find(ctx, param)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.AlertResponse, 0, len(alerts))
	for _, alert := range alerts {
		responses = append(responses, dto.AlertResponse{
			ID:               alert.ID,
			WatchID:          alert.WatchID,
			Symbol:           alert.Watch.Symbol,
			Kind:             string(alert.Kind),
			ObservedPrice:    alert.ObservedPrice,
			ThresholdPrice:   alert.ThresholdPrice,
			ReferencePrice:   alert.ReferencePrice,
			PercentageChange: alert.PercentageChange,
			IsAcknowledged:   alert.IsAcknowledged,
			AcknowledgedAt:   alert.AcknowledgedAt,
			CreatedAt:        alert.CreatedAt,
		})
	}
	return responses, nil
}

func (s *alertService) Acknowledge(ctx context.Context, id uint) error {
	if err := s.alertRepo.Acknowledge(ctx, id); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "Alert acknowledged", logger.UintField("alert_id", id))
	return nil
}
