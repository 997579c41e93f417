package handlers

//go:generate mockgen -source=trade.go -destination=mock_trade.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/gw-coin-exchange/internal/logger"
	"github.com/sbilibin2017/gw-coin-exchange/internal/models"
	"github.com/shopspring/decimal"
)

// Trader defines the interface that the service must implement.
type Trader interface {
	Buy(ctx context.Context, username, symbol string, amount decimal.Decimal) (*models.SettlementResult, error)
	Sell(ctx context.Context, username, symbol string, amount decimal.Decimal) (*models.SettlementResult, error)
}

// TradeRequest represents the JSON body for a buy or sell
// swagger:model TradeRequest
type TradeRequest struct {
	// Coin symbol
	// required: true
	// default: BTC
	Symbol string `json:"symbol"`

	// Quantity of the coin, decimal string or number
	// required: true
	// default: 0.1
	Amount decimal.Decimal `json:"amount" swaggertype:"string"`
}

// TradeResponse represents a settled trade
// swagger:model TradeResponse
type TradeResponse struct {
	// Success message
	// default: Buy success
	Message string `json:"message"`

	// Username
	User string `json:"user"`

	models.SettlementResult
}

// NewBuyHandler returns an HTTP handler buying a coin with USDT.
// @Summary Buy a coin
// @Description Debits price*amount USDT and credits amount of the coin at the reference price.
// @Tags trade
// @Accept json
// @Produce json
// @Param request body handlers.TradeRequest true "Buy request"
// @Success 200 {object} handlers.TradeResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid amount, unknown coin or insufficient funds"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /buy [post]
// @Security BearerAuth
func NewBuyHandler(svc Trader, tokener Tokener) http.HandlerFunc {
	return newTradeHandler(models.TransactionBuy, svc.Buy, tokener)
}

// NewSellHandler returns an HTTP handler selling a coin for USDT.
// @Summary Sell a coin
// @Description Debits amount of the coin and credits price*amount USDT at the reference price.
// @Tags trade
// @Accept json
// @Produce json
// @Param request body handlers.TradeRequest true "Sell request"
// @Success 200 {object} handlers.TradeResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid amount, unknown coin or insufficient funds"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /sell [post]
// @Security BearerAuth
func NewSellHandler(svc Trader, tokener Tokener) http.HandlerFunc {
	return newTradeHandler(models.TransactionSell, svc.Sell, tokener)
}

type settleFunc func(ctx context.Context, username, symbol string, amount decimal.Decimal) (*models.SettlementResult, error)

func newTradeHandler(side models.TransactionType, settle settleFunc, tokener Tokener) http.HandlerFunc {
	message := "Buy success"
	if side == models.TransactionSell {
		message = "Sell success"
	}

	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := authorize(w, r, tokener)
		if !ok {
			return
		}

		var req TradeRequest
		if err := decodeJSON(r, &req); err != nil {
			logger.Log.Warnw("failed to decode trade request", "side", side, "error", err)
			writeError(w, http.StatusBadRequest, invalidBody(err))
			return
		}

		res, err := settle(r.Context(), claims.Username, req.Symbol, req.Amount)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, TradeResponse{
			Message:          message,
			User:             claims.Username,
			SettlementResult: *res,
		})
	}
}
