package handlers

//go:generate mockgen -source=coins.go -destination=mock_coins.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/gw-coin-exchange/internal/models"
)

// CoinLister defines the interface that the service must implement.
type CoinLister interface {
	ListCoins(ctx context.Context) ([]models.Coin, error)
}

// NewListCoinsHandler returns an HTTP handler listing the price catalog.
// @Summary List coins
// @Description Returns every tradable coin with its reference price in USDT.
// @Tags wallet
// @Produce json
// @Success 200 {array} models.Coin
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /coins [get]
func NewListCoinsHandler(svc CoinLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		coins, err := svc.ListCoins(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, coins)
	}
}
