package services

//go:generate mockgen -source=market.go -destination=mock_market.go -package=services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sbilibin2017/gw-coin-exchange/internal/logger"
	"github.com/sbilibin2017/gw-coin-exchange/internal/models"
	"github.com/shopspring/decimal"
)

const (
	defaultCandlesLimit = 100
	maxCandlesLimit     = 1000
)

var klineIntervals = map[string]struct{}{
	"1s": {}, "1m": {}, "3m": {}, "5m": {}, "15m": {}, "30m": {},
	"1h": {}, "2h": {}, "4h": {}, "6h": {}, "8h": {}, "12h": {},
	"1d": {}, "3d": {}, "1w": {}, "1M": {},
}

// MarketDataFetcher fetches live market data for a trading pair.
type MarketDataFetcher interface {
	GetPrice(ctx context.Context, pair string) (decimal.Decimal, error)
	GetCandles(ctx context.Context, pair, interval string, limit int) ([]models.Candle, error)
}

// MarketCache caches market data. Any error is treated as a miss.
type MarketCache interface {
	GetPrice(ctx context.Context, symbol string) (decimal.Decimal, error)
	SetPrice(ctx context.Context, symbol string, price decimal.Decimal) error
	GetCandles(ctx context.Context, symbol, interval string, limit int) ([]models.Candle, error)
	SetCandles(ctx context.Context, symbol, interval string, limit int, candles []models.Candle) error
}

// MarketService passes live market data through a cache. It never touches the ledger.
type MarketService struct {
	coins   CoinReader
	fetcher MarketDataFetcher
	cache   MarketCache
	metrics *Metrics
}

// NewMarketService creates a new MarketService.
func NewMarketService(coins CoinReader, fetcher MarketDataFetcher, cache MarketCache, metrics *Metrics) *MarketService {
	return &MarketService{
		coins:   coins,
		fetcher: fetcher,
		cache:   cache,
		metrics: metrics,
	}
}

// GetPrices returns the live USDT price of every catalog coin except the quote coin.
func (s *MarketService) GetPrices(ctx context.Context) ([]models.MarketPrice, error) {
	coins, err := s.coins.List(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list coins", "error", err)
		return nil, classify(err)
	}

	prices := make([]models.MarketPrice, 0, len(coins))
	for _, coin := range coins {
		if coin.Symbol == models.QuoteSymbol {
			continue
		}
		price, err := s.price(ctx, coin.Symbol)
		if err != nil {
			return nil, err
		}
		prices = append(prices, models.MarketPrice{Symbol: coin.Symbol, Price: price})
	}
	return prices, nil
}

func (s *MarketService) price(ctx context.Context, symbol string) (decimal.Decimal, error) {
	price, err := s.cache.GetPrice(ctx, symbol)
	if err == nil {
		s.metrics.IncMarketFetch("cache", "hit")
		return price, nil
	}
	logger.Log.Debugw("price cache miss", "symbol", symbol, "error", err)

	price, err = s.fetcher.GetPrice(ctx, pair(symbol))
	if err != nil {
		s.metrics.IncMarketFetch("api", "error")
		logger.Log.Errorw("failed to fetch price", "symbol", symbol, "error", err)
		return decimal.Zero, fmt.Errorf("%w: price of %s: %w", ErrMarketDataUnavailable, symbol, err)
	}
	s.metrics.IncMarketFetch("api", "success")

	if err := s.cache.SetPrice(ctx, symbol, price); err != nil {
		logger.Log.Warnw("failed to cache price", "symbol", symbol, "error", err)
	}
	return price, nil
}

// GetCandles returns klines of symbol against USDT.
func (s *MarketService) GetCandles(ctx context.Context, symbol, interval string, limit int) ([]models.Candle, error) {
	symbol = normalizeSymbol(symbol)
	if symbol == "" {
		return nil, validationError("symbol is required")
	}
	if symbol == models.QuoteSymbol {
		return nil, validationError("%s has no market against itself", models.QuoteSymbol)
	}
	if _, ok := klineIntervals[interval]; !ok {
		return nil, validationError("unsupported interval %q", interval)
	}
	if limit == 0 {
		limit = defaultCandlesLimit
	}
	if limit < 1 || limit > maxCandlesLimit {
		return nil, validationError("limit must be between 1 and %d", maxCandlesLimit)
	}

	candles, err := s.cache.GetCandles(ctx, symbol, interval, limit)
	if err == nil {
		s.metrics.IncMarketFetch("cache", "hit")
		return candles, nil
	}
	logger.Log.Debugw("candles cache miss", "symbol", symbol, "interval", interval, "error", err)

	candles, err = s.fetcher.GetCandles(ctx, pair(symbol), interval, limit)
	if err != nil {
		s.metrics.IncMarketFetch("api", "error")
		logger.Log.Errorw("failed to fetch candles", "symbol", symbol, "interval", interval, "error", err)
		return nil, fmt.Errorf("%w: candles of %s: %w", ErrMarketDataUnavailable, symbol, err)
	}
	s.metrics.IncMarketFetch("api", "success")

	if err := s.cache.SetCandles(ctx, symbol, interval, limit, candles); err != nil {
		logger.Log.Warnw("failed to cache candles", "symbol", symbol, "error", err)
	}
	return candles, nil
}

func pair(symbol string) string {
	return strings.ToUpper(symbol) + models.QuoteSymbol
}
