package handlers

//go:generate mockgen -source=withdraw.go -destination=mock_withdraw.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/gw-coin-exchange/internal/logger"
	"github.com/sbilibin2017/gw-coin-exchange/internal/models"
	"github.com/shopspring/decimal"
)

// WithdrawRequester defines the interface that the service must implement.
type WithdrawRequester interface {
	SubmitWithdraw(ctx context.Context, username, symbol string, amount decimal.Decimal, address string) (int64, error)
}

// WithdrawRequest represents the JSON body for a withdraw request
// swagger:model WithdrawRequest
type WithdrawRequest struct {
	// Coin symbol
	// required: true
	// default: BTC
	Symbol string `json:"symbol"`

	// Requested amount, decimal string or number
	// required: true
	// default: 0.05
	Amount decimal.Decimal `json:"amount" swaggertype:"string"`

	// Destination address
	// default: bc1qexample
	Address string `json:"address"`
}

// NewWithdrawRequestHandler returns an HTTP handler submitting a withdraw request.
// @Summary Request a withdrawal
// @Description Creates a pending withdraw request. Funds are checked and debited only on admin approval.
// @Tags requests
// @Accept json
// @Produce json
// @Param request body handlers.WithdrawRequest true "Withdraw request"
// @Success 201 {object} handlers.SubmitResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid amount or unknown coin"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /withdraw-requests [post]
// @Security BearerAuth
func NewWithdrawRequestHandler(svc WithdrawRequester, tokener Tokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := authorize(w, r, tokener)
		if !ok {
			return
		}

		var req WithdrawRequest
		if err := decodeJSON(r, &req); err != nil {
			logger.Log.Warnw("failed to decode withdraw request", "error", err)
			writeError(w, http.StatusBadRequest, invalidBody(err))
			return
		}

		id, err := svc.SubmitWithdraw(r.Context(), claims.Username, req.Symbol, req.Amount, req.Address)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, SubmitResponse{
			Message: "Withdraw request submitted",
			ID:      id,
			Status:  models.StatusPending,
		})
	}
}

// NewListWithdrawRequestsHandler returns an HTTP handler listing the caller's withdraw requests.
// @Summary List own withdraw requests
// @Tags requests
// @Produce json
// @Param limit query int false "Maximum number of records (default 50)"
// @Success 200 {array} models.Request
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /withdraw-requests [get]
// @Security BearerAuth
func NewListWithdrawRequestsHandler(svc RequestLister, tokener Tokener) http.HandlerFunc {
	return newListOwnRequestsHandler(models.RequestWithdraw, svc, tokener)
}
