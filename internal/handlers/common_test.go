package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-coin-exchange/internal/jwt"
	"github.com/sbilibin2017/gw-coin-exchange/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validToken = "valid-token"

// expectUser makes the tokener resolve validToken to username.
func expectUser(m *MockTokener, username string) {
	m.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return(validToken, nil)
	m.EXPECT().GetClaims(gomock.Any(), validToken).Return(&jwt.Claims{Username: username}, nil)
}

func expectNoToken(m *MockTokener) {
	m.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return("", errors.New("authorization header missing"))
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: amount must be positive", services.ErrValidation), http.StatusBadRequest},
		{fmt.Errorf("%w: DOGE", services.ErrCoinNotFound), http.StatusBadRequest},
		{services.ErrInsufficientFunds, http.StatusBadRequest},
		{services.ErrRequestNotFound, http.StatusNotFound},
		{services.ErrUserDoesNotExist, http.StatusNotFound},
		{services.ErrAlreadyProcessed, http.StatusConflict},
		{services.ErrUserAlreadyExists, http.StatusConflict},
		{services.ErrInvalidCredentials, http.StatusUnauthorized},
		{fmt.Errorf("%w: timeout", services.ErrMarketDataUnavailable), http.StatusBadGateway},
		{fmt.Errorf("%w: conn reset", services.ErrPersistence), http.StatusInternalServerError},
		{errors.New("unknown"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}

func TestWriteServiceError_HidesInternalDetails(t *testing.T) {
	rr := httptest.NewRecorder()
	writeServiceError(rr, fmt.Errorf("%w: dial tcp 10.0.0.5:5432", services.ErrPersistence))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "10.0.0.5")
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
}

func TestAuthorize_Unauthorized(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tokener := NewMockTokener(ctrl)
	tokener.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return("bad", nil)
	tokener.EXPECT().GetClaims(gomock.Any(), "bad").Return(nil, errors.New("token is expired"))

	rr := httptest.NewRecorder()
	claims, ok := authorize(rr, httptest.NewRequest(http.MethodGet, "/api/balance", nil), tokener)

	assert.False(t, ok)
	assert.Nil(t, claims)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestDecodeJSON_RejectsUnknownFields(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "known fields", body: `{"symbol":"BTC","amount":"0.1"}`},
		{name: "misspelled field", body: `{"symbol":"BTC","amout":"0.1"}`, wantErr: `Invalid request body: unknown field "amout"`},
		{name: "malformed", body: `{"symbol":`, wantErr: "Invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/buy", strings.NewReader(tt.body))

			var dst TradeRequest
			err := decodeJSON(req, &dst)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, "BTC", dst.Symbol)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, invalidBody(err))
		})
	}
}
