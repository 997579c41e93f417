package handlers

//go:generate mockgen -source=admin.go -destination=mock_admin.go -package=handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/gw-coin-exchange/internal/jwt"
	"github.com/sbilibin2017/gw-coin-exchange/internal/logger"
	"github.com/sbilibin2017/gw-coin-exchange/internal/models"
	"github.com/shopspring/decimal"
)

// UserAdmin defines the user administration operations.
type UserAdmin interface {
	ListUsers(ctx context.Context) ([]models.UserDB, error)
	ResetPin(ctx context.Context, username, pin string) error
}

// RequestAdjudicator defines the admin decisions on pending requests.
type RequestAdjudicator interface {
	ApproveDeposit(ctx context.Context, id int64, amount decimal.Decimal, note string) (*models.Request, error)
	ApproveWithdraw(ctx context.Context, id int64, amount decimal.Decimal, note string) (*models.Request, error)
	Reject(ctx context.Context, kind models.RequestKind, id int64, note string) (*models.Request, error)
}

// ResetPinRequest represents the JSON body for a PIN reset
// swagger:model ResetPinRequest
type ResetPinRequest struct {
	// New PIN, at least 4 characters
	// required: true
	// default: 0000
	Pin string `json:"pin"`
}

// ApproveRequest represents the JSON body for approving a request
// swagger:model ApproveRequest
type ApproveRequest struct {
	// Amount granted, may differ from the requested amount
	// required: true
	// default: 100
	ApprovedAmount decimal.Decimal `json:"approved_amount" swaggertype:"string"`

	// Admin note
	Note string `json:"note"`
}

// RejectRequest represents the JSON body for rejecting a request
// swagger:model RejectRequest
type RejectRequest struct {
	// Admin note
	Note string `json:"note"`
}

// NewListUsersHandler returns an HTTP handler listing all users.
// @Summary List users
// @Tags admin
// @Produce json
// @Success 200 {array} models.UserDB
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.ErrorResponse "Forbidden"
// @Router /admin/users [get]
// @Security BearerAuth
func NewListUsersHandler(svc UserAdmin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := svc.ListUsers(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, users)
	}
}

// NewResetPinHandler returns an HTTP handler replacing a user's PIN.
// @Summary Reset a user's PIN
// @Tags admin
// @Accept json
// @Produce json
// @Param username path string true "Username"
// @Param request body handlers.ResetPinRequest true "New PIN"
// @Success 200 {object} handlers.MessageResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid PIN"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Router /admin/users/{username}/reset-pin [post]
// @Security BearerAuth
func NewResetPinHandler(svc UserAdmin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := chi.URLParam(r, "username")

		var req ResetPinRequest
		if err := decodeJSON(r, &req); err != nil {
			logger.Log.Warnw("failed to decode reset pin request", "error", err)
			writeError(w, http.StatusBadRequest, invalidBody(err))
			return
		}

		if err := svc.ResetPin(r.Context(), username, req.Pin); err != nil {
			writeServiceError(w, err)
			return
		}

		logger.Log.Infow("pin reset by admin", "username", username, "admin", adminName(r))
		writeJSON(w, http.StatusOK, MessageResponse{Message: "PIN reset"})
	}
}

// NewAdminListRequestsHandler returns an HTTP handler listing requests of all
// users, optionally filtered by the username query parameter.
// @Summary List deposit or withdraw requests
// @Tags admin
// @Produce json
// @Param kind path string true "deposits or withdraws"
// @Param username query string false "Filter by user"
// @Param limit query int false "Maximum number of records (default 100)"
// @Success 200 {array} models.Request
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.ErrorResponse "Forbidden"
// @Router /admin/{kind} [get]
// @Security BearerAuth
func NewAdminListRequestsHandler(kind models.RequestKind, svc RequestLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := queryLimit(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}

		var username *string
		if u := r.URL.Query().Get("username"); u != "" {
			username = &u
		}

		reqs, err := svc.List(r.Context(), kind, username, limit)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, reqs)
	}
}

// NewApproveRequestHandler returns an HTTP handler approving a pending request.
// @Summary Approve a deposit or withdraw request
// @Description Deposits credit the approved amount; withdrawals debit it and fail with 400 when the balance does not cover it.
// @Tags admin
// @Accept json
// @Produce json
// @Param kind path string true "deposits or withdraws"
// @Param id path int true "Request ID"
// @Param request body handlers.ApproveRequest true "Approval"
// @Success 200 {object} models.Request
// @Failure 400 {object} handlers.ErrorResponse "Invalid amount or insufficient funds"
// @Failure 404 {object} handlers.ErrorResponse "Request not found"
// @Failure 409 {object} handlers.ErrorResponse "Request already processed"
// @Router /admin/{kind}/{id}/approve [post]
// @Security BearerAuth
func NewApproveRequestHandler(kind models.RequestKind, svc RequestAdjudicator) http.HandlerFunc {
	approve := svc.ApproveDeposit
	if kind == models.RequestWithdraw {
		approve = svc.ApproveWithdraw
	}

	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requestID(w, r)
		if !ok {
			return
		}

		var req ApproveRequest
		if err := decodeJSON(r, &req); err != nil {
			logger.Log.Warnw("failed to decode approve request", "error", err)
			writeError(w, http.StatusBadRequest, invalidBody(err))
			return
		}

		resolved, err := approve(r.Context(), id, req.ApprovedAmount, req.Note)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		logger.Log.Infow("request approved by admin", "kind", kind, "id", id, "admin", adminName(r))
		writeJSON(w, http.StatusOK, resolved)
	}
}

// NewRejectRequestHandler returns an HTTP handler rejecting a pending request.
// @Summary Reject a deposit or withdraw request
// @Tags admin
// @Accept json
// @Produce json
// @Param kind path string true "deposits or withdraws"
// @Param id path int true "Request ID"
// @Param request body handlers.RejectRequest false "Rejection"
// @Success 200 {object} models.Request
// @Failure 404 {object} handlers.ErrorResponse "Request not found"
// @Failure 409 {object} handlers.ErrorResponse "Request already processed"
// @Router /admin/{kind}/{id}/reject [post]
// @Security BearerAuth
func NewRejectRequestHandler(kind models.RequestKind, svc RequestAdjudicator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := requestID(w, r)
		if !ok {
			return
		}

		var req RejectRequest
		if err := decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
			logger.Log.Warnw("failed to decode reject request", "error", err)
			writeError(w, http.StatusBadRequest, invalidBody(err))
			return
		}

		resolved, err := svc.Reject(r.Context(), kind, id, req.Note)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		logger.Log.Infow("request rejected by admin", "kind", kind, "id", id, "admin", adminName(r))
		writeJSON(w, http.StatusOK, resolved)
	}
}

func requestID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid request id")
		return 0, false
	}
	return id, true
}

func adminName(r *http.Request) string {
	if claims := jwt.ClaimsFromContext(r.Context()); claims != nil {
		return claims.Username
	}
	return ""
}
