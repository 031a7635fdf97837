package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-stock-watchlist/internal/api/dto"
	"golang-stock-watchlist/internal/api/repository"
	"golang-stock-watchlist/internal/entity"
	"golang-stock-watchlist/pkg/logger"
	"golang-stock-watchlist/pkg/utils"
)

type fakeAlertRepository struct {
	alerts []entity.Alert
}

func (f *fakeAlertRepository) Find(_ context.Context, param dto.GetAlertsParam) ([]entity.Alert, error) {
	var result []entity.Alert
	for _, alert := range f.alerts {
		if param.WatchID != nil && alert.WatchID != *param.WatchID {
			continue
		}
		if param.Acknowledged != nil && alert.IsAcknowledged != *param.Acknowledged {
			continue
		}
		result = append(result, alert)
	}
	return result, nil
}

func (f *fakeAlertRepository) Acknowledge(_ context.Context, id uint) error {
	for i := range f.alerts {
		if f.alerts[i].ID != id {
			continue
		}
		f.alerts[i].IsAcknowledged = true
		if f.alerts[i].AcknowledgedAt == nil {
			now := time.Now()
			f.alerts[i].AcknowledgedAt = &now
		}
		return nil
	}
	return repository.ErrAlertNotFound
}

func newTestAlertService(t *testing.T, alerts ...entity.Alert) (AlertService, *fakeAlertRepository) {
	t.Helper()
	log, err := logger.New("error", "json")
	require.NoError(t, err)
	repo := &fakeAlertRepository{alerts: alerts}
	return NewAlertService(repo, log), repo
}

func profitAlert(id, watchID uint) entity.Alert {
	return entity.Alert{
		ID:               id,
		WatchID:          watchID,
		Watch:            entity.Watch{ID: watchID, Symbol: "TATASTEEL.NS"},
		Kind:             entity.AlertKindProfit,
		ObservedPrice:    decimal.RequireFromString("112"),
		ThresholdPrice:   decimal.RequireFromString("110"),
		ReferencePrice:   decimal.RequireFromString("100"),
		PercentageChange: decimal.RequireFromString("12"),
		CreatedAt:        time.Now(),
	}
}

func TestAlertService_GetAlertsFilters(t *testing.T) {
	acked := profitAlert(2, 7)
	acked.IsAcknowledged = true
	svc, _ := newTestAlertService(t, profitAlert(1, 7), acked, profitAlert(3, 9))

	all, err := svc.GetAlerts(context.Background(), dto.GetAlertsParam{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "TATASTEEL.NS", all[0].Symbol)

	byWatch, err := svc.GetAlerts(context.Background(), dto.GetAlertsParam{WatchID: utils.ToPointer(uint(7))})
	require.NoError(t, err)
	assert.Len(t, byWatch, 2)

	pending, err := svc.GetAlerts(context.Background(), dto.GetAlertsParam{
		WatchID:      utils.ToPointer(uint(7)),
		Acknowledged: utils.ToPointer(false),
	})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, uint(1), pending[0].ID)
}

func TestAlertService_AcknowledgeIsIdempotent(t *testing.T) {
	svc, repo := newTestAlertService(t, profitAlert(1, 7))

	require.NoError(t, svc.Acknowledge(context.Background(), 1))
	firstAckAt := repo.alerts[0].AcknowledgedAt
	require.NotNil(t, firstAckAt)

	// A second acknowledge succeeds and keeps the original timestamp.
	require.NoError(t, svc.Acknowledge(context.Background(), 1))
	assert.Equal(t, firstAckAt, repo.alerts[0].AcknowledgedAt)
	assert.True(t, repo.alerts[0].IsAcknowledged)
}

func TestAlertService_AcknowledgeUnknownAlert(t *testing.T) {
	svc, _ := newTestAlertService(t)

	err := svc.Acknowledge(context.Background(), 42)
	assert.True(t, errors.Is(err, repository.ErrAlertNotFound))
}
