// Package billdelivery manages delivery layer of utility bills.
package billdelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-petr/instapay/internal/domain"
	"github.com/go-petr/instapay/internal/middleware"
	"github.com/go-petr/instapay/internal/transferdelivery"
	"github.com/go-petr/instapay/pkg/web"
)

// Service provides service layer interface needed by bill delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package billdelivery
type Service interface {
	List(ctx context.Context) []domain.Bill
	Details(ctx context.Context, accountNumber string, billType domain.BillType) (domain.Bill, error)
	Pay(ctx context.Context, username, billID string) (domain.Transaction, error)
}

// Handler facilitates bill delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns bill handler.
func NewHandler(bs Service) *Handler {
	return &Handler{service: bs}
}

type billsData struct {
	Bills []domain.Bill `json:"bills"`
}

type billData struct {
	Bill domain.Bill `json:"bill"`
}

type paymentData struct {
	Message       string `json:"message"`
	TransactionID string `json:"transaction_id"`
}

// List handles http request to list all the bills.
func (h *Handler) List(gctx *gin.Context) {
	gctx.JSON(http.StatusOK, web.Data(billsData{Bills: h.service.List(gctx.Request.Context())}))
}

type detailsRequest struct {
	AccountNumber string `form:"account_number" binding:"required"`
	Type          string `form:"type" binding:"required,oneof=gas electricity water"`
}

// Details handles http request to find the unpaid bill of a customer account.
func (h *Handler) Details(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req detailsRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		zerolog.Ctx(ctx).Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindingError(err))

		return
	}

	bill, err := h.service.Details(ctx, req.AccountNumber, domain.BillType(req.Type))
	if err != nil {
		transferdelivery.RespondError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Data(billData{Bill: bill}))
}

type payRequest struct {
	BillID string `json:"bill_id" binding:"required"`
}

// Pay handles http request to pay a bill from the account of the authenticated user.
func (h *Handler) Pay(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req payRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		zerolog.Ctx(ctx).Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindingError(err))

		return
	}

	tx, err := h.service.Pay(ctx, middleware.Payload(gctx).Username, req.BillID)
	if err != nil {
		transferdelivery.RespondError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Data(paymentData{
		Message:       "Bill paid successfully",
		TransactionID: tx.ID,
	}))
}
