package service

import (
	"context"
	"strings"

	"golang-stock-watchlist/internal/api/dto"
	"golang-stock-watchlist/internal/api/repository"
	"golang-stock-watchlist/internal/entity"
	"golang-stock-watchlist/pkg/logger"
)

// WatchService defines the interface for managing the watchlist.
type WatchService interface {
	Create(ctx context.Context, req *dto.CreateWatchRequest) (*dto.WatchResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.WatchResponse, error)
	GetByUser(ctx context.Context, userID uint) ([]dto.WatchResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdateWatchRequest) (*dto.WatchResponse, error)
	Toggle(ctx context.Context, id uint) (*dto.WatchResponse, error)
	Delete(ctx context.Context, id uint) error
}

// NewWatchService creates a new watch service.
func NewWatchService(watchRepo repository.WatchRepository, priceCache repository.PriceCacheRepository, log *logger.Logger) WatchService {
	return &watchService{
		watchRepo:  watchRepo,
		priceCache: priceCache,
		log:        log,
	}
}

type watchService struct {
	watchRepo  repository.WatchRepository
	priceCache repository.PriceCacheRepository
	log        *logger.Logger
}

func (s *watchService) Create(ctx context.Context, req *dto.CreateWatchRequest) (*dto.WatchResponse, error) {
	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))
	if err := validateWatchConfig(symbol, req); err != nil {
		return nil, err
	}

	watch := &entity.Watch{
		UserID:             req.UserID,
		Symbol:             symbol,
		ReferencePrice:     req.ReferencePrice,
		ProfitThresholdPct: req.ProfitThresholdPct,
		LossThresholdPct:   req.LossThresholdPct,
		IsActive:           true,
	}
	if err := s.watchRepo.Create(ctx, watch); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "Watch created",
		logger.UintField("watch_id", watch.ID),
		logger.StringField("symbol", watch.Symbol))
	return s.toResponse(ctx, watch), nil
}

func (s *watchService) GetByID(ctx context.Context, id uint) (*dto.WatchResponse, error) {
	watch, err := s.watchRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, watch), nil
}

func (s *watchService) GetByUser(ctx context.Context, userID uint) ([]dto.WatchResponse, error) {
	watches, err := s.watchRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.WatchResponse, 0, len(watches))
	for i := range watches {
		responses = append(responses, *s.toResponse(ctx, &watches[i]))
	}
	return responses, nil
}

func (s *watchService) Update(ctx context.Context, id uint, req *dto.UpdateWatchRequest) (*dto.WatchResponse, error) {
	watch, err := s.watchRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := validateWatchConfig(watch.Symbol, &dto.CreateWatchRequest{
		UserID:             watch.UserID,
		Symbol:             watch.Symbol,
		ReferencePrice:     req.ReferencePrice,
		ProfitThresholdPct: req.ProfitThresholdPct,
		LossThresholdPct:   req.LossThresholdPct,
	}); err != nil {
		return nil, err
	}

	watch.ReferencePrice = req.ReferencePrice
	watch.ProfitThresholdPct = req.ProfitThresholdPct
	watch.LossThresholdPct = req.LossThresholdPct
	if err := s.watchRepo.Update(ctx, watch); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, watch), nil
}

func (s *watchService) Toggle(ctx context.Context, id uint) (*dto.WatchResponse, error) {
	watch, err := s.watchRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	watch.IsActive = !watch.IsActive
	if err := s.watchRepo.Update(ctx, watch); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "Watch toggled",
		logger.UintField("watch_id", watch.ID),
		logger.Field("is_active", watch.IsActive))
	return s.toResponse(ctx, watch), nil
}

func (s *watchService) Delete(ctx context.Context, id uint) error {
	return s.watchRepo.Delete(ctx, id)
}

func (s *watchService) toResponse(ctx context.Context, watch *entity.Watch) *dto.WatchResponse {
	resp := &dto.WatchResponse{
		ID:                 watch.ID,
		UserID:             watch.UserID,
		Symbol:             watch.Symbol,
		ReferencePrice:     watch.ReferencePrice,
		ProfitThresholdPct: watch.ProfitThresholdPct,
		LossThresholdPct:   watch.LossThresholdPct,
		ProfitTargetPrice:  watch.ProfitTargetPrice(),
		LossTargetPrice:    watch.LossTargetPrice(),
		IsActive:           watch.IsActive,
		CreatedAt:          watch.CreatedAt,
		UpdatedAt:          watch.UpdatedAt,
	}

	lastPrice, err := s.priceCache.LastPrice(ctx, watch.Symbol)
	if err != nil {
		s.log.Error("Failed to read cached price", logger.ErrorField(err), logger.StringField("symbol", watch.Symbol))
	} else {
		resp.LastPrice = lastPrice
	}
	return resp
}

func validateWatchConfig(symbol string, req *dto.CreateWatchRequest) error {
	if symbol == "" {
		return &dto.ValidationError{Field: "symbol", Message: "must not be empty"}
	}
	if req.UserID == 0 {
		return &dto.ValidationError{Field: "user_id", Message: "must be set"}
	}
	if !req.ReferencePrice.IsPositive() {
		return &dto.ValidationError{Field: "reference_price", Message: "must be greater than zero"}
	}
	if req.ProfitThresholdPct.IsNegative() {
		return &dto.ValidationError{Field: "profit_threshold_pct", Message: "must not be negative"}
	}
	if req.LossThresholdPct.IsNegative() {
		return &dto.ValidationError{Field: "loss_threshold_pct", Message: "must not be negative"}
	}
	return nil
}
