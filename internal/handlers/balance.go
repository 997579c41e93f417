package handlers

//go:generate mockgen -source=balance.go -destination=mock_balance.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/gw-coin-exchange/internal/models"
)

// BalanceReader defines the interface that the service must implement.
type BalanceReader interface {
	GetBalances(ctx context.Context, username string) ([]models.Balance, error)
}

// BalanceResponse represents the balances of the caller
// swagger:model BalanceResponse
type BalanceResponse struct {
	// Username
	User string `json:"user"`

	// Non-zero and zero balances the user ever held
	Balances []models.Balance `json:"balances"`
}

// NewGetBalanceHandler returns an HTTP handler for the caller's balances.
// @Summary Get balances
// @Description Returns the caller's balance in every coin they ever held.
// @Tags wallet
// @Produce json
// @Success 200 {object} handlers.BalanceResponse
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /balance [get]
// @Security BearerAuth
func NewGetBalanceHandler(svc BalanceReader, tokener Tokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := authorize(w, r, tokener)
		if !ok {
			return
		}

		balances, err := svc.GetBalances(r.Context(), claims.Username)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, BalanceResponse{User: claims.Username, Balances: balances})
	}
}
