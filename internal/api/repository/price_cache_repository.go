package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"golang-stock-watchlist/internal/api/dto"
	"golang-stock-watchlist/pkg/common"
	redisPkg "golang-stock-watchlist/pkg/redis"
)

// PriceCacheRepository reads the latest observation the monitor cached for a
// symbol. A missing entry is not an error; the watch is just shown without a
// current price.
type PriceCacheRepository interface {
	LastPrice(ctx context.Context, symbol string) (*dto.LastPrice, error)
}

type priceCacheRepository struct {
	redisClient *redisPkg.Client
}

func NewPriceCacheRepository(redisClient *redisPkg.Client) PriceCacheRepository {
	return &priceCacheRepository{redisClient: redisClient}
}

func (r *priceCacheRepository) LastPrice(ctx context.Context, symbol string) (*dto.LastPrice, error) {
	key := fmt.Sprintf(common.RedisKeyLastPrice, symbol)
	fields, err := r.redisClient.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, nil
	}

	price, err := decimal.NewFromString(fields["price"])
	if err != nil {
		return nil, fmt.Errorf("corrupt cached price for %s: %w", symbol, err)
	}

	var observedAt time.Time
	if ts, err := strconv.ParseInt(fields["timestamp"], 10, 64); err == nil {
		observedAt = time.Unix(ts, 0)
	}

	return &dto.LastPrice{Price: price, ObservedAt: observedAt}, nil
}
