package handlers

//go:generate mockgen -source=register.go -destination=mock_register.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/gw-coin-exchange/internal/logger"
)

// Registerer defines the interface that the service must implement.
type Registerer interface {
	Register(ctx context.Context, username, pin string) error
}

// RegisterRequest represents the JSON body for user registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	// Username, at least 2 characters
	// required: true
	// default: john_doe
	Username string `json:"username"`

	// PIN, at least 4 characters
	// required: true
	// default: 1234
	Pin string `json:"pin"`
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a new user account and credits the signup bonus in USDT. The PIN is hashed before storing.
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body handlers.RegisterRequest true "User registration request"
// @Success 201 {object} handlers.MessageResponse "User successfully registered"
// @Failure 400 {object} handlers.ErrorResponse "Invalid request"
// @Failure 409 {object} handlers.ErrorResponse "Username already exists"
// @Router /auth/register [post]
func NewRegisterHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := decodeJSON(r, &req); err != nil {
			logger.Log.Warnw("failed to decode register request", "error", err)
			writeError(w, http.StatusBadRequest, invalidBody(err))
			return
		}

		if err := svc.Register(r.Context(), req.Username, req.Pin); err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, MessageResponse{Message: "User registered successfully"})
	}
}
