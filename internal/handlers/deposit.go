package handlers

//go:generate mockgen -source=deposit.go -destination=mock_deposit.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/gw-coin-exchange/internal/logger"
	"github.com/sbilibin2017/gw-coin-exchange/internal/models"
	"github.com/shopspring/decimal"
)

// DepositRequester defines the interface that the service must implement.
type DepositRequester interface {
	SubmitDeposit(ctx context.Context, username, symbol string, amount decimal.Decimal) (int64, error)
}

// RequestLister lists deposit or withdraw requests.
type RequestLister interface {
	List(ctx context.Context, kind models.RequestKind, username *string, limit int) ([]models.Request, error)
}

// DepositRequest represents the JSON body for a deposit request
// swagger:model DepositRequest
type DepositRequest struct {
	// Coin symbol
	// required: true
	// default: USDT
	Symbol string `json:"symbol"`

	// Requested amount, decimal string or number
	// required: true
	// default: 100
	Amount decimal.Decimal `json:"amount" swaggertype:"string"`
}

// SubmitResponse represents a newly created pending request
// swagger:model SubmitResponse
type SubmitResponse struct {
	// Success message
	Message string `json:"message"`

	// Request identifier
	ID int64 `json:"id"`

	// Always pending on submission
	Status models.RequestStatus `json:"status"`
}

// NewDepositRequestHandler returns an HTTP handler submitting a deposit request.
// @Summary Request a deposit
// @Description Creates a pending deposit request. The balance changes only when an admin approves it.
// @Tags requests
// @Accept json
// @Produce json
// @Param request body handlers.DepositRequest true "Deposit request"
// @Success 201 {object} handlers.SubmitResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid amount or unknown coin"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /deposit-requests [post]
// @Security BearerAuth
func NewDepositRequestHandler(svc DepositRequester, tokener Tokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := authorize(w, r, tokener)
		if !ok {
			return
		}

		var req DepositRequest
		if err := decodeJSON(r, &req); err != nil {
			logger.Log.Warnw("failed to decode deposit request", "error", err)
			writeError(w, http.StatusBadRequest, invalidBody(err))
			return
		}

		id, err := svc.SubmitDeposit(r.Context(), claims.Username, req.Symbol, req.Amount)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, SubmitResponse{
			Message: "Deposit request submitted",
			ID:      id,
			Status:  models.StatusPending,
		})
	}
}

// NewListDepositRequestsHandler returns an HTTP handler listing the caller's deposit requests.
// @Summary List own deposit requests
// @Tags requests
// @Produce json
// @Param limit query int false "Maximum number of records (default 50)"
// @Success 200 {array} models.Request
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /deposit-requests [get]
// @Security BearerAuth
func NewListDepositRequestsHandler(svc RequestLister, tokener Tokener) http.HandlerFunc {
	return newListOwnRequestsHandler(models.RequestDeposit, svc, tokener)
}

func newListOwnRequestsHandler(kind models.RequestKind, svc RequestLister, tokener Tokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := authorize(w, r, tokener)
		if !ok {
			return
		}

		limit, err := queryLimit(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}

		reqs, err := svc.List(r.Context(), kind, &claims.Username, limit)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, reqs)
	}
}
