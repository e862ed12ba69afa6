// Package transferdelivery manages delivery layer of transfers.
package transferdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-petr/instapay/internal/domain"
	"github.com/go-petr/instapay/internal/middleware"
	"github.com/go-petr/instapay/pkg/errorspkg"
	"github.com/go-petr/instapay/pkg/web"
)

// Service provides service layer interface needed by transfer delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transferdelivery
type Service interface {
	Execute(ctx context.Context, senderID string, req domain.TransferRequest) (domain.Transaction, error)
	ListByParticipant(ctx context.Context, accountID string) ([]domain.Transaction, error)
}

// AccountService resolves the account of an authenticated user.
type AccountService interface {
	GetByUsername(ctx context.Context, username string) (domain.Account, error)
}

// Handler facilitates transfer delivery layer logic.
type Handler struct {
	service  Service
	accounts AccountService
}

// NewHandler returns transfer handler.
func NewHandler(ts Service, as AccountService) *Handler {
	return &Handler{
		service:  ts,
		accounts: as,
	}
}

type instapayRequest struct {
	ReceiverUsername string `json:"receiver_username" binding:"required"`
	Amount           string `json:"amount" binding:"required,money"`
	Description      string `json:"description" binding:"max=255"`
}

type walletRequest struct {
	MobileNumber string `json:"mobile_number" binding:"required,numeric,min=10,max=15"`
	Amount       string `json:"amount" binding:"required,money"`
	Description  string `json:"description" binding:"max=255"`
}

type bankRequest struct {
	BankAccount string `json:"bank_account" binding:"required,numeric"`
	Amount      string `json:"amount" binding:"required,money"`
	Description string `json:"description" binding:"max=255"`
}

type transferData struct {
	Message       string `json:"message"`
	TransactionID string `json:"transaction_id"`
}

type transactionsData struct {
	Transactions []domain.Transaction `json:"transactions"`
}

// StatusCode returns the http status code reporting the transfer error.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrAlreadyPaid),
		errors.Is(err, domain.ErrUnknownTransferKind):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrReceiverNotFound),
		errors.Is(err, domain.ErrBillNotFound),
		errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	}

	return http.StatusInternalServerError
}

// RespondError writes the transfer error hiding unexpected faults.
func RespondError(gctx *gin.Context, err error) {
	code := StatusCode(err)
	if code == http.StatusInternalServerError {
		zerolog.Ctx(gctx.Request.Context()).Error().Err(err).Send()
		gctx.JSON(code, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(code, web.Error(err))
}

// Instapay handles http request to send money to another user.
func (h *Handler) Instapay(gctx *gin.Context) {
	var req instapayRequest
	if !bind(gctx, &req) {
		return
	}

	h.execute(gctx, domain.TransferRequest{
		Kind:             domain.TransactionKindPeer,
		Amount:           req.Amount,
		ReceiverUsername: req.ReceiverUsername,
		Description:      req.Description,
	})
}

// Wallet handles http request to send money to a mobile wallet.
func (h *Handler) Wallet(gctx *gin.Context) {
	var req walletRequest
	if !bind(gctx, &req) {
		return
	}

	h.execute(gctx, domain.TransferRequest{
		Kind:         domain.TransactionKindWallet,
		Amount:       req.Amount,
		MobileNumber: req.MobileNumber,
		Description:  req.Description,
	})
}

// Bank handles http request to send money to an external bank account.
func (h *Handler) Bank(gctx *gin.Context) {
	var req bankRequest
	if !bind(gctx, &req) {
		return
	}

	h.execute(gctx, domain.TransferRequest{
		Kind:        domain.TransactionKindBank,
		Amount:      req.Amount,
		BankAccount: req.BankAccount,
		Description: req.Description,
	})
}

// Transactions handles http request to list the transactions of the authenticated user.
func (h *Handler) Transactions(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	sender, ok := h.sender(gctx)
	if !ok {
		return
	}

	txs, err := h.service.ListByParticipant(ctx, sender.ID)
	if err != nil {
		RespondError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Data(transactionsData{Transactions: txs}))
}

func bind(gctx *gin.Context, req any) bool {
	if err := gctx.ShouldBindJSON(req); err != nil {
		zerolog.Ctx(gctx.Request.Context()).Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindingError(err))

		return false
	}

	return true
}

func (h *Handler) sender(gctx *gin.Context) (domain.Account, bool) {
	ctx := gctx.Request.Context()
	username := middleware.Payload(gctx).Username

	account, err := h.accounts.GetByUsername(ctx, username)
	if err != nil {
		zerolog.Ctx(ctx).Info().Err(err).Str("username", username).Send()
		RespondError(gctx, err)

		return domain.Account{}, false
	}

	return account, true
}

func (h *Handler) execute(gctx *gin.Context, req domain.TransferRequest) {
	ctx := gctx.Request.Context()

	sender, ok := h.sender(gctx)
	if !ok {
		return
	}

	tx, err := h.service.Execute(ctx, sender.ID, req)
	if err != nil {
		RespondError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Data(transferData{
		Message:       "Transfer successful",
		TransactionID: tx.ID,
	}))
}
