package handlers

//go:generate mockgen -source=transactions.go -destination=mock_transactions.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/gw-coin-exchange/internal/models"
)

// TransactionLister defines the interface that the service must implement.
type TransactionLister interface {
	GetTransactions(ctx context.Context, username string, limit int) ([]models.Transaction, error)
}

// NewListTransactionsHandler returns an HTTP handler for the caller's transaction history.
// @Summary List transactions
// @Description Returns the caller's transactions, most recent first.
// @Tags wallet
// @Produce json
// @Param limit query int false "Maximum number of records (default 50, max 500)"
// @Success 200 {array} models.Transaction
// @Failure 400 {object} handlers.ErrorResponse "Invalid limit"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /transactions [get]
// @Security BearerAuth
func NewListTransactionsHandler(svc TransactionLister, tokener Tokener) http.HandlerFunc {
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

		txns, err := svc.GetTransactions(r.Context(), claims.Username, limit)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, txns)
	}
}
