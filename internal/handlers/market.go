package handlers

//go:generate mockgen -source=market.go -destination=mock_market.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/gw-coin-exchange/internal/models"
)

// MarketReader defines the interface that the service must implement.
type MarketReader interface {
	GetPrices(ctx context.Context) ([]models.MarketPrice, error)
	GetCandles(ctx context.Context, symbol, interval string, limit int) ([]models.Candle, error)
}

// NewMarketPricesHandler returns an HTTP handler with live USDT prices.
// @Summary Live prices
// @Description Last traded USDT price of every catalog coin from the market data API.
// @Tags market
// @Produce json
// @Success 200 {array} models.MarketPrice
// @Failure 502 {object} handlers.ErrorResponse "Market data unavailable"
// @Router /market/prices [get]
func NewMarketPricesHandler(svc MarketReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		prices, err := svc.GetPrices(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, prices)
	}
}

// NewMarketCandlesHandler returns an HTTP handler with klines of a coin against USDT.
// @Summary Candles
// @Tags market
// @Produce json
// @Param symbol query string true "Coin symbol" default(BTC)
// @Param interval query string false "Kline interval" default(1h)
// @Param limit query int false "Number of candles, 1..1000" default(100)
// @Success 200 {array} models.Candle
// @Failure 400 {object} handlers.ErrorResponse "Invalid symbol, interval or limit"
// @Failure 502 {object} handlers.ErrorResponse "Market data unavailable"
// @Router /market/candles [get]
func NewMarketCandlesHandler(svc MarketReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		interval := q.Get("interval")
		if interval == "" {
			interval = "1h"
		}

		limit, err := queryLimit(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}

		candles, err := svc.GetCandles(r.Context(), q.Get("symbol"), interval, limit)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, candles)
	}
}
