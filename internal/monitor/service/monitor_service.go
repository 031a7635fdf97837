package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/datatypes"

	"golang-stock-watchlist/internal/entity"
	"golang-stock-watchlist/internal/monitor/config"
	"golang-stock-watchlist/internal/monitor/dto"
	"golang-stock-watchlist/internal/monitor/repository"
	"golang-stock-watchlist/pkg/common"
	"golang-stock-watchlist/pkg/logger"
	redisPkg "golang-stock-watchlist/pkg/redis"
	"golang-stock-watchlist/pkg/telegram"
	"golang-stock-watchlist/pkg/utils"
)

// MonitorService drives the evaluation cycle: on each scheduled scan it loads
// the active watches, fetches a price per symbol and runs the alert gate.
type MonitorService interface {
	Start(ctx context.Context) error
	Scan(ctx context.Context)
}

// NewMonitorService creates a new monitor service.
func NewMonitorService(
	cfg *config.Config,
	watchRepo repository.WatchRepository,
	runRepo repository.MonitorRunRepository,
	priceRepo repository.PriceRepository,
	gate *AlertGate,
	notifier telegram.Notifier,
	redisClient *redisPkg.Client,
	log *logger.Logger,
) MonitorService {
	maxConcurrent := cfg.Monitor.MaxConcurrentWatches
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	return &monitorService{
		cfg:         cfg,
		watchRepo:   watchRepo,
		runRepo:     runRepo,
		priceRepo:   priceRepo,
		gate:        gate,
		notifier:    notifier,
		redisClient: redisClient,
		log:         log,
		sem:         make(chan struct{}, maxConcurrent),
		inFlight:    make(map[uint]struct{}),
	}
}

type monitorService struct {
	cfg         *config.Config
	watchRepo   repository.WatchRepository
	runRepo     repository.MonitorRunRepository
	priceRepo   repository.PriceRepository
	gate        *AlertGate
	notifier    telegram.Notifier
	redisClient *redisPkg.Client
	log         *logger.Logger

	sem chan struct{}

	// inFlight tracks watches whose previous cycle has not finished yet. A
	// new cycle for such a watch is skipped so the gate decision of the
	// prior one is persisted before the next begins.
	mu       sync.Mutex
	inFlight map[uint]struct{}
}

// Start schedules scans with the configured cron expression and blocks until
// the context is cancelled.
func (s *monitorService) Start(ctx context.Context) error {
	c := cron.New()
	_, err := c.AddFunc(s.cfg.Monitor.Schedule, func() {
		s.Scan(ctx)
	})
	if err != nil {
		return fmt.Errorf("invalid monitor schedule %q: %w", s.cfg.Monitor.Schedule, err)
	}

	s.log.Info("Monitor scan scheduled", logger.StringField("schedule", s.cfg.Monitor.Schedule))
	c.Start()

	<-ctx.Done()
	s.log.Info("Monitor service stopping")
	stopCtx := c.Stop()
	<-stopCtx.Done()
	return nil
}

// Scan runs one evaluation cycle over all active watches.
func (s *monitorService) Scan(ctx context.Context) {
	run := &entity.MonitorRun{
		Status:    entity.MonitorRunStatusRunning,
		StartedAt: utils.TimeNowIST(),
	}
	if err := s.runRepo.Create(ctx, run); err != nil {
		s.log.Error("Failed to create monitor run", logger.ErrorField(err))
		return
	}

	watches, err := s.watchRepo.GetActive(ctx)
	if err != nil {
		s.log.Error("Failed to load active watches", logger.ErrorField(err))
		s.completeRun(ctx, run, entity.MonitorRunStatusFailed, nil)
		return
	}
	run.WatchCount = len(watches)

	var (
		wg        sync.WaitGroup
		resultsMu sync.Mutex
		results   []dto.WatchCycleResult
	)

	for _, watch := range watches {
		watch := watch

		if !s.begin(watch.ID) {
			s.log.Warn("Previous cycle still running, skipping watch",
				logger.UintField("watch_id", watch.ID),
				logger.StringField("symbol", watch.Symbol))
			resultsMu.Lock()
			results = append(results, dto.WatchCycleResult{
				WatchID: watch.ID,
				Symbol:  watch.Symbol,
				Status:  dto.StatusSkipped,
				Errors:  "previous cycle still running",
			})
			resultsMu.Unlock()
			continue
		}

		wg.Add(1)
		s.sem <- struct{}{}
		utils.GoSafe(func() {
			defer func() {
				<-s.sem
				s.end(watch.ID)
				wg.Done()
			}()
			result := s.evaluateWatch(ctx, &watch)
			resultsMu.Lock()
			results = append(results, result)
			resultsMu.Unlock()
		})
	}

	wg.Wait()
	s.completeRun(ctx, run, entity.MonitorRunStatusCompleted, results)
}

// evaluateWatch runs one cycle for a single watch. Errors here never abort
// the scan; each watch fails on its own.
func (s *monitorService) evaluateWatch(ctx context.Context, watch *entity.Watch) dto.WatchCycleResult {
	result := dto.WatchCycleResult{
		WatchID: watch.ID,
		Symbol:  watch.Symbol,
	}

	quote, err := s.priceRepo.Quote(ctx, watch.Symbol)
	if err != nil {
		if errors.Is(err, repository.ErrSourceUnavailable) {
			// Transient: no state change, retried on the next scan.
			s.log.Warn("Price source unavailable, skipping cycle",
				logger.StringField("symbol", watch.Symbol), logger.ErrorField(err))
			result.Status = dto.StatusSkipped
			result.Errors = err.Error()
			return result
		}
		s.log.Error("Failed to fetch price",
			logger.StringField("symbol", watch.Symbol), logger.ErrorField(err))
		result.Status = dto.StatusFailed
		result.Errors = err.Error()
		return result
	}

	s.cacheLastPrice(ctx, quote)

	alert, err := s.gate.Process(ctx, watch, quote)
	if err != nil {
		s.log.Error("Failed to process observation",
			logger.UintField("watch_id", watch.ID),
			logger.StringField("symbol", watch.Symbol),
			logger.ErrorField(err))
		result.Status = dto.StatusFailed
		result.Errors = err.Error()
		return result
	}

	if alert == nil {
		result.Status = dto.StatusSkipped
		return result
	}

	result.Status = dto.StatusSuccess
	result.AlertKind = string(alert.Kind)
	s.notify(ctx, watch, alert)
	return result
}

func (s *monitorService) notify(ctx context.Context, watch *entity.Watch, alert *entity.Alert) {
	alertType := telegram.Profit
	if alert.Kind == entity.AlertKindLoss {
		alertType = telegram.Loss
	}

	message := telegram.FormatPriceAlert(alertType, watch.Symbol, alert.ObservedPrice, alert.ThresholdPrice, alert.ReferencePrice, alert.CreatedAt)
	if err := s.notifier.SendMessage(message, watch.User.TelegramID); err != nil {
		// The alert row is already persisted; delivery failure is logged
		// only.
		s.log.Error("Failed to send alert notification",
			logger.UintField("watch_id", watch.ID),
			logger.StringField("symbol", watch.Symbol),
			logger.ErrorField(err))
		return
	}

	s.log.InfoContext(ctx, "Alert raised",
		logger.UintField("watch_id", watch.ID),
		logger.StringField("symbol", watch.Symbol),
		logger.StringField("kind", string(alert.Kind)))
}

// cacheLastPrice stores the latest observation in Redis so the API can
// decorate watchlist reads without hitting the price source.
func (s *monitorService) cacheLastPrice(ctx context.Context, quote *dto.PriceQuote) {
	key := fmt.Sprintf(common.RedisKeyLastPrice, quote.Symbol)
	pipe := s.redisClient.Pipeline()
	pipe.HSet(ctx, key, map[string]interface{}{
		"price":     quote.Price.String(),
		"timestamp": quote.ObservedAt.Unix(),
	})
	pipe.Expire(ctx, key, s.cfg.Monitor.PriceCacheTTL+2*time.Minute)
	if _, err := pipe.Exec(ctx); err != nil {
		s.log.Error("Failed to cache last price",
			logger.StringField("symbol", quote.Symbol), logger.ErrorField(err))
	}
}

func (s *monitorService) completeRun(ctx context.Context, run *entity.MonitorRun, status string, results []dto.WatchCycleResult) {
	run.Status = status
	run.CompletedAt.Time = utils.TimeNowIST()
	run.CompletedAt.Valid = true

	if results != nil {
		payload, err := json.Marshal(results)
		if err != nil {
			s.log.Error("Failed to marshal run results", logger.ErrorField(err))
		} else {
			run.Results = datatypes.JSON(payload)
		}
	}

	if err := s.runRepo.Update(ctx, run); err != nil {
		s.log.Error("Failed to update monitor run", logger.ErrorField(err), logger.UintField("run_id", run.ID))
	}
}

func (s *monitorService) begin(watchID uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.inFlight[watchID]; ok {
		return false
	}
	s.inFlight[watchID] = struct{}{}
	return true
}

func (s *monitorService) end(watchID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, watchID)
}
