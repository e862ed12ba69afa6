// Package otpdelivery manages delivery layer of one-time passwords.
package otpdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-petr/instapay/internal/domain"
	"github.com/go-petr/instapay/pkg/errorspkg"
	"github.com/go-petr/instapay/pkg/web"
)

// Service provides service layer interface needed by otp delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package otpdelivery
type Service interface {
	Send(ctx context.Context, mobileNumber string) error
	Verify(ctx context.Context, mobileNumber, code string) error
}

// Handler facilitates otp delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns otp handler.
func NewHandler(otps Service) *Handler {
	return &Handler{service: otps}
}

type sendRequest struct {
	MobileNumber string `json:"mobile_number" binding:"required,numeric,min=10,max=15"`
}

type sendData struct {
	Message string `json:"message"`
}

// SendOTP handles http request to issue a one-time password for a mobile number.
func (h *Handler) SendOTP(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req sendRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindingError(err))

		return
	}

	if err := h.service.Send(ctx, req.MobileNumber); err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, web.Data(sendData{Message: "OTP sent successfully"}))
}

type verifyRequest struct {
	MobileNumber string `json:"mobile_number" binding:"required"`
	OTP          string `json:"otp" binding:"required,numeric"`
}

type verifyData struct {
	Verified bool `json:"verified"`
}

// VerifyOTP handles http request to check a one-time password.
func (h *Handler) VerifyOTP(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req verifyRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindingError(err))

		return
	}

	if err := h.service.Verify(ctx, req.MobileNumber, req.OTP); err != nil {
		if errors.Is(err, domain.ErrInvalidOTP) {
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Data(verifyData{Verified: true}))
}
