// Package httpserver manages server creation and api routing.
package httpserver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/instapay/internal/accountdelivery"
	"github.com/go-petr/instapay/internal/accountrepo"
	"github.com/go-petr/instapay/internal/accountservice"
	"github.com/go-petr/instapay/internal/billdelivery"
	"github.com/go-petr/instapay/internal/billrepo"
	"github.com/go-petr/instapay/internal/billservice"
	"github.com/go-petr/instapay/internal/middleware"
	"github.com/go-petr/instapay/internal/otpdelivery"
	"github.com/go-petr/instapay/internal/otprepo"
	"github.com/go-petr/instapay/internal/otpservice"
	"github.com/go-petr/instapay/internal/sessiondelivery"
	"github.com/go-petr/instapay/internal/sessionrepo"
	"github.com/go-petr/instapay/internal/sessionservice"
	"github.com/go-petr/instapay/internal/transactionrepo"
	"github.com/go-petr/instapay/internal/transferdelivery"
	"github.com/go-petr/instapay/internal/transferservice"
	"github.com/go-petr/instapay/internal/userdelivery"
	"github.com/go-petr/instapay/internal/userrepo"
	"github.com/go-petr/instapay/internal/userservice"
	"github.com/go-petr/instapay/pkg/configpkg"
	"github.com/go-petr/instapay/pkg/currencypkg"
	"github.com/go-petr/instapay/pkg/tokenpkg"
)

// Server holds the ledger state, handlers router and configuration.
type Server struct {
	Engine *gin.Engine
	Config configpkg.Config

	otpStore otprepo.Store
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// Close releases the external connections held by the server.
func (s *Server) Close() error {
	if c, ok := s.otpStore.(io.Closer); ok {
		return c.Close()
	}

	return nil
}

var (
	validatorsOnce sync.Once
	validatorsErr  error
)

// registerValidators adds the custom binding validators to the shared gin validator.
func registerValidators() error {
	validatorsOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			if err := v.RegisterValidation("money", currencypkg.ValidAmount); err != nil {
				validatorsErr = fmt.Errorf("cannot register money validator: %w", err)
			}
		}
	})

	return validatorsErr
}

// New creates Server type with instantiated domains and routes.
func New(logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	defaultBalance, err := decimal.NewFromString(config.DefaultBalance)
	if err != nil {
		return nil, fmt.Errorf("parsing default balance: %w", err)
	}

	tokenMaker, err := tokenpkg.New(config.TokenType, config.TokenSymmetricKey)
	if err != nil {
		return nil, fmt.Errorf("cannot create token maker: %w", err)
	}

	otpStore, err := otprepo.New(config.OTPStore, otprepo.RedisOptions{
		Address:  config.RedisAddress,
		Password: config.RedisPassword,
		DB:       config.RedisDB,
	})
	if err != nil {
		return nil, err
	}

	userRepo := userrepo.NewRepoMem()
	accountRepo := accountrepo.NewRepoMem()
	transactionRepo := transactionrepo.NewRepoMem()
	sessionRepo := sessionrepo.NewRepoMem()
	billRepo := billrepo.NewRepoMem()

	if err := billRepo.Seed(context.Background(), config.BillSeedCount); err != nil {
		return nil, fmt.Errorf("seeding bills: %w", err)
	}

	accountService := accountservice.New(accountRepo)
	userService := userservice.New(userRepo, accountService, defaultBalance)
	transferService := transferservice.New(accountRepo, transactionRepo, billRepo)
	billService := billservice.New(billRepo, accountService, transferService)

	sessionService, err := sessionservice.New(sessionRepo, config, tokenMaker)
	if err != nil {
		return nil, fmt.Errorf("cannot initialize session service: %w", err)
	}

	otpService, err := otpservice.New(otpStore, config.OTPLength, config.OTPTTL)
	if err != nil {
		return nil, fmt.Errorf("cannot initialize otp service: %w", err)
	}

	userHandler := userdelivery.NewHandler(userService, sessionService)
	otpHandler := otpdelivery.NewHandler(otpService)
	sessionHandler := sessiondelivery.NewHandler(sessionService)
	accountHandler := accountdelivery.NewHandler(accountService)
	transferHandler := transferdelivery.NewHandler(transferService, accountService)
	billHandler := billdelivery.NewHandler(billService)

	if err := registerValidators(); err != nil {
		return nil, err
	}

	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(config.CORSAllowedOrigins))

	auth := engine.Group("/auth")
	auth.POST("/send-otp", otpHandler.SendOTP)
	auth.POST("/verify-otp", otpHandler.VerifyOTP)
	auth.POST("/register", userHandler.Register)
	auth.POST("/login", userHandler.Login)

	engine.POST("/sessions", sessionHandler.RenewAccessToken)

	authRoutes := engine.Group("/", middleware.AuthMiddleware(tokenMaker))

	authRoutes.GET("/user/balance", accountHandler.Balance)
	authRoutes.GET("/user/transactions", transferHandler.Transactions)

	authRoutes.POST("/transactions/instapay", transferHandler.Instapay)
	authRoutes.POST("/transactions/wallet", transferHandler.Wallet)
	authRoutes.POST("/transactions/bank", transferHandler.Bank)

	authRoutes.GET("/bills", billHandler.List)
	authRoutes.GET("/bills/details", billHandler.Details)
	authRoutes.POST("/bills/pay", billHandler.Pay)

	server := &Server{
		Engine:   engine,
		Config:   config,
		otpStore: otpStore,
	}

	return server, nil
}
