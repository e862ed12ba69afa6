// Package accountdelivery manages delivery layer of accounts.
package accountdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-petr/instapay/internal/domain"
	"github.com/go-petr/instapay/internal/middleware"
	"github.com/go-petr/instapay/pkg/currencypkg"
	"github.com/go-petr/instapay/pkg/errorspkg"
	"github.com/go-petr/instapay/pkg/web"
)

// Service provides service layer interface needed by account delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package accountdelivery
type Service interface {
	GetByUsername(ctx context.Context, username string) (domain.Account, error)
}

// Handler facilitates account delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns account handler.
func NewHandler(as Service) *Handler {
	return &Handler{service: as}
}

type balanceData struct {
	Balance string `json:"balance"`
}

// Balance handles http request to get the balance of the authenticated user.
func (h *Handler) Balance(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	username := middleware.Payload(gctx).Username

	account, err := h.service.GetByUsername(ctx, username)
	if err != nil {
		zerolog.Ctx(ctx).Info().Err(err).Str("username", username).Send()

		if errors.Is(err, domain.ErrAccountNotFound) {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Data(balanceData{Balance: currencypkg.Format(account.Balance)}))
}
