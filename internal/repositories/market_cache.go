package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-coin-exchange/internal/logger"
	"github.com/sbilibin2017/gw-coin-exchange/internal/models"
	"github.com/shopspring/decimal"
)

// ErrCacheMiss is returned when a key is not cached.
var ErrCacheMiss = errors.New("market cache miss")

// MarketCacheRepository caches market data in Redis
type MarketCacheRepository struct {
	client *redis.Client
	exp    time.Duration // expiration duration for cached entries
}

// NewMarketCacheRepository creates a new repository instance with the given TTL
func NewMarketCacheRepository(client *redis.Client, expiration time.Duration) *MarketCacheRepository {
	return &MarketCacheRepository{
		client: client,
		exp:    expiration,
	}
}

func priceKey(symbol string) string {
	return fmt.Sprintf("market:price:%s", symbol)
}

func candlesKey(symbol, interval string, limit int) string {
	return fmt.Sprintf("market:candles:%s:%s:%d", symbol, interval, limit)
}

// GetPrice returns a cached last price
func (r *MarketCacheRepository) GetPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	key := priceKey(symbol)

	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		logger.Log.Debugw("redis get", "key", key, "error", err)
		if err == redis.Nil {
			return decimal.Zero, ErrCacheMiss
		}
		return decimal.Zero, err
	}

	price, err := decimal.NewFromString(val)
	logger.Log.Debugw("redis get", "key", key, "value", val, "error", err)
	if err != nil {
		return decimal.Zero, err
	}
	return price, nil
}

// SetPrice caches a last price with expiration
func (r *MarketCacheRepository) SetPrice(ctx context.Context, symbol string, price decimal.Decimal) error {
	key := priceKey(symbol)
	err := r.client.Set(ctx, key, price.String(), r.exp).Err()

	logger.Log.Debugw("redis set", "key", key, "value", price.String(), "error", err)

	return err
}

// GetCandles returns cached candles
func (r *MarketCacheRepository) GetCandles(ctx context.Context, symbol, interval string, limit int) ([]models.Candle, error) {
	key := candlesKey(symbol, interval, limit)

	val, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		logger.Log.Debugw("redis get", "key", key, "error", err)
		if err == redis.Nil {
			return nil, ErrCacheMiss
		}
		return nil, err
	}

	var candles []models.Candle
	err = json.Unmarshal(val, &candles)
	logger.Log.Debugw("redis get", "key", key, "result", len(candles), "error", err)
	if err != nil {
		return nil, err
	}
	return candles, nil
}

// SetCandles caches candles with expiration
func (r *MarketCacheRepository) SetCandles(ctx context.Context, symbol, interval string, limit int, candles []models.Candle) error {
	key := candlesKey(symbol, interval, limit)

	data, err := json.Marshal(candles)
	if err != nil {
		return err
	}
	err = r.client.Set(ctx, key, data, r.exp).Err()

	logger.Log.Debugw("redis set", "key", key, "result", len(candles), "error", err)

	return err
}
