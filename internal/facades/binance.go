package facades

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sbilibin2017/gw-coin-exchange/internal/logger"
	"github.com/sbilibin2017/gw-coin-exchange/internal/models"
	"github.com/shopspring/decimal"
)

const (
	tickerPricePath = "/api/v3/ticker/price"
	klinesPath      = "/api/v3/klines"
	maxRetries      = 3
	maxBodySize     = 4 << 20
)

// StatusError is returned for a non-2xx response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("market api status %d: %s", e.Code, e.Body)
}

// BinanceMarketFacade reads public market data from the Binance REST API.
type BinanceMarketFacade struct {
	baseURL string
	client  *http.Client
	retry   func() backoff.BackOff
}

// NewBinanceMarketFacade creates a facade for baseURL with a per-request timeout.
func NewBinanceMarketFacade(baseURL string, timeout time.Duration) *BinanceMarketFacade {
	return &BinanceMarketFacade{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		retry: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 200 * time.Millisecond
			b.MaxInterval = 2 * time.Second
			return backoff.WithMaxRetries(b, maxRetries)
		},
	}
}

type tickerPrice struct {
	Symbol string          `json:"symbol"`
	Price  decimal.Decimal `json:"price"`
}

// GetPrice returns the last traded price of pair, e.g. BTCUSDT.
func (f *BinanceMarketFacade) GetPrice(ctx context.Context, pair string) (decimal.Decimal, error) {
	var ticker tickerPrice
	err := f.get(ctx, tickerPricePath, url.Values{"symbol": {pair}}, &ticker)
	if err != nil {
		logger.Log.Errorw("failed to fetch ticker price", "pair", pair, "error", err)
		return decimal.Zero, err
	}
	return ticker.Price, nil
}

// GetCandles returns up to limit klines of pair for interval.
func (f *BinanceMarketFacade) GetCandles(ctx context.Context, pair, interval string, limit int) ([]models.Candle, error) {
	params := url.Values{
		"symbol":   {pair},
		"interval": {interval},
		"limit":    {strconv.Itoa(limit)},
	}

	var rows [][]json.RawMessage
	if err := f.get(ctx, klinesPath, params, &rows); err != nil {
		logger.Log.Errorw("failed to fetch klines", "pair", pair, "interval", interval, "error", err)
		return nil, err
	}

	candles := make([]models.Candle, 0, len(rows))
	for i, row := range rows {
		c, err := parseKline(row)
		if err != nil {
			return nil, fmt.Errorf("kline %d: %w", i, err)
		}
		candles = append(candles, c)
	}
	return candles, nil
}

// parseKline decodes [openTime, open, high, low, close, volume, closeTime, ...].
func parseKline(row []json.RawMessage) (models.Candle, error) {
	var c models.Candle
	if len(row) < 7 {
		return c, fmt.Errorf("expected at least 7 fields, got %d", len(row))
	}
	if err := json.Unmarshal(row[0], &c.OpenTime); err != nil {
		return c, fmt.Errorf("open time: %w", err)
	}
	for i, dst := range []*decimal.Decimal{&c.Open, &c.High, &c.Low, &c.Close, &c.Volume} {
		if err := json.Unmarshal(row[i+1], dst); err != nil {
			return c, fmt.Errorf("field %d: %w", i+1, err)
		}
	}
	if err := json.Unmarshal(row[6], &c.CloseTime); err != nil {
		return c, fmt.Errorf("close time: %w", err)
	}
	return c, nil
}

func (f *BinanceMarketFacade) get(ctx context.Context, path string, params url.Values, out any) error {
	endpoint := f.baseURL + path + "?" + params.Encode()

	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err := f.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
		if err != nil {
			return err
		}

		if resp.StatusCode != http.StatusOK {
			statusErr := &StatusError{Code: resp.StatusCode, Body: string(body)}
			if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
				return backoff.Permanent(statusErr)
			}
			return statusErr
		}

		if err := json.Unmarshal(body, out); err != nil {
			return backoff.Permanent(fmt.Errorf("decode %s: %w", path, err))
		}
		return nil
	}

	notify := func(err error, wait time.Duration) {
		logger.Log.Warnw("market api call failed, retrying", "path", path, "wait", wait, "error", err)
	}

	return backoff.RetryNotify(op, backoff.WithContext(f.retry(), ctx), notify)
}
