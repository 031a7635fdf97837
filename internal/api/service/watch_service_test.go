package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-stock-watchlist/internal/api/dto"
	"golang-stock-watchlist/internal/api/repository"
	"golang-stock-watchlist/internal/entity"
	"golang-stock-watchlist/pkg/logger"
)

type fakeWatchRepository struct {
	nextID  uint
	watches map[uint]*entity.Watch
}

func newFakeWatchRepository() *fakeWatchRepository {
	return &fakeWatchRepository{watches: make(map[uint]*entity.Watch)}
}

func (f *fakeWatchRepository) Create(_ context.Context, watch *entity.Watch) error {
	f.nextID++
	watch.ID = f.nextID
	copied := *watch
	f.watches[watch.ID] = &copied
	return nil
}

func (f *fakeWatchRepository) FindByID(_ context.Context, id uint) (*entity.Watch, error) {
	watch, ok := f.watches[id]
	if !ok {
		return nil, repository.ErrWatchNotFound
	}
	copied := *watch
	return &copied, nil
}

func (f *fakeWatchRepository) FindByUser(_ context.Context, userID uint) ([]entity.Watch, error) {
	var result []entity.Watch
	for _, watch := range f.watches {
		if watch.UserID == userID {
			result = append(result, *watch)
		}
	}
	return result, nil
}

func (f *fakeWatchRepository) Update(_ context.Context, watch *entity.Watch) error {
	if _, ok := f.watches[watch.ID]; !ok {
		return repository.ErrWatchNotFound
	}
	copied := *watch
	f.watches[watch.ID] = &copied
	return nil
}

func (f *fakeWatchRepository) Delete(_ context.Context, id uint) error {
	if _, ok := f.watches[id]; !ok {
		return repository.ErrWatchNotFound
	}
	delete(f.watches, id)
	return nil
}

type fakePriceCache struct {
	prices map[string]*dto.LastPrice
}

func (f *fakePriceCache) LastPrice(_ context.Context, symbol string) (*dto.LastPrice, error) {
	if f.prices == nil {
		return nil, nil
	}
	return f.prices[symbol], nil
}

func newTestWatchService(t *testing.T) (WatchService, *fakeWatchRepository, *fakePriceCache) {
	t.Helper()
	log, err := logger.New("error", "json")
	require.NoError(t, err)
	repo := newFakeWatchRepository()
	cache := &fakePriceCache{}
	return NewWatchService(repo, cache, log), repo, cache
}

func validCreateRequest() *dto.CreateWatchRequest {
	return &dto.CreateWatchRequest{
		UserID:             1,
		Symbol:             "TATASTEEL.NS",
		ReferencePrice:     decimal.RequireFromString("842.35"),
		ProfitThresholdPct: decimal.RequireFromString("10"),
		LossThresholdPct:   decimal.RequireFromString("5"),
	}
}

func TestWatchService_Create(t *testing.T) {
	svc, _, _ := newTestWatchService(t)

	resp, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
	assert.True(t, resp.IsActive, "new watches start active")
	assert.True(t, resp.ProfitTargetPrice.Equal(decimal.RequireFromString("926.585")))
	assert.True(t, resp.LossTargetPrice.Equal(decimal.RequireFromString("800.2325")))
	assert.Nil(t, resp.LastPrice)
}

func TestWatchService_CreateNormalizesSymbol(t *testing.T) {
	svc, repo, _ := newTestWatchService(t)

	req := validCreateRequest()
	req.Symbol = "  tatasteel.ns "
	resp, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "TATASTEEL.NS", resp.Symbol)
	assert.Equal(t, "TATASTEEL.NS", repo.watches[resp.ID].Symbol)
}

func TestWatchService_CreateValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*dto.CreateWatchRequest)
		field  string
	}{
		{
			name:   "blank symbol",
			mutate: func(r *dto.CreateWatchRequest) { r.Symbol = "   " },
			field:  "symbol",
		},
		{
			name:   "missing user",
			mutate: func(r *dto.CreateWatchRequest) { r.UserID = 0 },
			field:  "user_id",
		},
		{
			name:   "zero reference price",
			mutate: func(r *dto.CreateWatchRequest) { r.ReferencePrice = decimal.Zero },
			field:  "reference_price",
		},
		{
			name:   "negative reference price",
			mutate: func(r *dto.CreateWatchRequest) { r.ReferencePrice = decimal.RequireFromString("-10") },
			field:  "reference_price",
		},
		{
			name:   "negative profit threshold",
			mutate: func(r *dto.CreateWatchRequest) { r.ProfitThresholdPct = decimal.RequireFromString("-1") },
			field:  "profit_threshold_pct",
		},
		{
			name:   "negative loss threshold",
			mutate: func(r *dto.CreateWatchRequest) { r.LossThresholdPct = decimal.RequireFromString("-0.5") },
			field:  "loss_threshold_pct",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newTestWatchService(t)
			req := validCreateRequest()
			tt.mutate(req)

			_, err := svc.Create(context.Background(), req)
			var verr *dto.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Empty(t, repo.watches, "invalid watch must not be persisted")
		})
	}
}

func TestWatchService_CreateAllowsZeroThresholds(t *testing.T) {
	// Zero percent means the side is unset, not invalid.
	svc, _, _ := newTestWatchService(t)

	req := validCreateRequest()
	req.ProfitThresholdPct = decimal.Zero
	req.LossThresholdPct = decimal.Zero
	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
}

func TestWatchService_UpdateKeepsSymbol(t *testing.T) {
	svc, _, _ := newTestWatchService(t)
	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	resp, err := svc.Update(context.Background(), created.ID, &dto.UpdateWatchRequest{
		ReferencePrice:     decimal.RequireFromString("900"),
		ProfitThresholdPct: decimal.RequireFromString("12"),
		LossThresholdPct:   decimal.RequireFromString("3"),
	})
	require.NoError(t, err)
	assert.Equal(t, "TATASTEEL.NS", resp.Symbol)
	assert.True(t, resp.ReferencePrice.Equal(decimal.RequireFromString("900")))
	assert.True(t, resp.ProfitTargetPrice.Equal(decimal.RequireFromString("1008")))
}

func TestWatchService_UpdateValidation(t *testing.T) {
	svc, _, _ := newTestWatchService(t)
	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), created.ID, &dto.UpdateWatchRequest{
		ReferencePrice:     decimal.Zero,
		ProfitThresholdPct: decimal.RequireFromString("10"),
		LossThresholdPct:   decimal.RequireFromString("5"),
	})
	var verr *dto.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "reference_price", verr.Field)

	// The stored watch is untouched.
	current, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, current.ReferencePrice.Equal(decimal.RequireFromString("842.35")))
}

func TestWatchService_Toggle(t *testing.T) {
	svc, _, _ := newTestWatchService(t)
	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	resp, err := svc.Toggle(context.Background(), created.ID)
	require.NoError(t, err)
	assert.False(t, resp.IsActive)

	resp, err = svc.Toggle(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, resp.IsActive)
}

func TestWatchService_NotFound(t *testing.T) {
	svc, _, _ := newTestWatchService(t)

	_, err := svc.GetByID(context.Background(), 999)
	assert.True(t, errors.Is(err, repository.ErrWatchNotFound))

	_, err = svc.Toggle(context.Background(), 999)
	assert.True(t, errors.Is(err, repository.ErrWatchNotFound))

	err = svc.Delete(context.Background(), 999)
	assert.True(t, errors.Is(err, repository.ErrWatchNotFound))
}

func TestWatchService_ResponseIncludesCachedPrice(t *testing.T) {
	svc, _, cache := newTestWatchService(t)
	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	cache.prices = map[string]*dto.LastPrice{
		"TATASTEEL.NS": {Price: decimal.RequireFromString("851.20")},
	}

	resp, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, resp.LastPrice)
	assert.True(t, resp.LastPrice.Price.Equal(decimal.RequireFromString("851.20")))
}
