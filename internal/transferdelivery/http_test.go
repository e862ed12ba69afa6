package transferdelivery

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/instapay/internal/domain"
	"github.com/go-petr/instapay/internal/middleware"
	"github.com/go-petr/instapay/pkg/currencypkg"
	"github.com/go-petr/instapay/pkg/errorspkg"
	"github.com/go-petr/instapay/pkg/randompkg"
	"github.com/go-petr/instapay/pkg/tokenpkg"
	"github.com/go-petr/instapay/pkg/web"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("money", currencypkg.ValidAmount); err != nil {
			fmt.Fprintf(os.Stderr, "registering money validator: %v\n", err)
			os.Exit(1)
		}
	}

	os.Exit(m.Run())
}

type transferResponse struct {
	web.Response
	Data transferData `json:"data"`
}

func TestStatusCode(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		err  error
		want int
	}{
		{err: domain.ErrInsufficientFunds, want: http.StatusBadRequest},
		{err: fmt.Errorf("%w: amount must be positive", domain.ErrInvalidAmount), want: http.StatusBadRequest},
		{err: domain.ErrAlreadyPaid, want: http.StatusBadRequest},
		{err: domain.ErrUnknownTransferKind, want: http.StatusBadRequest},
		{err: domain.ErrReceiverNotFound, want: http.StatusNotFound},
		{err: domain.ErrBillNotFound, want: http.StatusNotFound},
		{err: domain.ErrAccountNotFound, want: http.StatusNotFound},
		{err: domain.ErrForbidden, want: http.StatusForbidden},
		{err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		if got := StatusCode(tc.err); got != tc.want {
			t.Errorf("StatusCode(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestTransferAPI(t *testing.T) {
	tokenMaker, err := tokenpkg.NewPasetoMaker(randompkg.String(32))
	require.NoError(t, err)

	sender := domain.Account{
		ID:       uuid.NewString(),
		Username: randompkg.Owner(),
		Kind:     domain.AccountKindWallet,
		Balance:  decimal.NewFromInt(1000),
	}
	receiver := randompkg.Owner()
	mobile := randompkg.MobileNumber()
	bankAccount := randompkg.Digits(16)
	amount := randompkg.MoneyAmountBetween(1, 100)
	txID := uuid.NewString()

	authorize := func(r *http.Request) error {
		return middleware.AddAuthorization(r, tokenMaker, middleware.AuthTypeBearer, sender.Username, time.Minute)
	}

	testCases := []struct {
		name           string
		url            string
		requestBody    gin.H
		setupAuth      func(r *http.Request) error
		buildStubs     func(service *MockService, accounts *MockAccountService)
		wantStatusCode int
		wantError      string
	}{
		{
			name:        "InstapayOK",
			url:         "/transactions/instapay",
			requestBody: gin.H{"receiver_username": receiver, "amount": amount, "description": "rent"},
			setupAuth:   authorize,
			buildStubs: func(service *MockService, accounts *MockAccountService) {
				accounts.EXPECT().GetByUsername(gomock.Any(), gomock.Eq(sender.Username)).Times(1).Return(sender, nil)
				service.EXPECT().
					Execute(gomock.Any(), gomock.Eq(sender.ID), gomock.Eq(domain.TransferRequest{
						Kind:             domain.TransactionKindPeer,
						Amount:           amount,
						ReceiverUsername: receiver,
						Description:      "rent",
					})).
					Times(1).
					Return(domain.Transaction{ID: txID}, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:        "WalletOK",
			url:         "/transactions/wallet",
			requestBody: gin.H{"mobile_number": mobile, "amount": amount},
			setupAuth:   authorize,
			buildStubs: func(service *MockService, accounts *MockAccountService) {
				accounts.EXPECT().GetByUsername(gomock.Any(), gomock.Eq(sender.Username)).Times(1).Return(sender, nil)
				service.EXPECT().
					Execute(gomock.Any(), gomock.Eq(sender.ID), gomock.Eq(domain.TransferRequest{
						Kind:         domain.TransactionKindWallet,
						Amount:       amount,
						MobileNumber: mobile,
					})).
					Times(1).
					Return(domain.Transaction{ID: txID}, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:        "BankForbidden",
			url:         "/transactions/bank",
			requestBody: gin.H{"bank_account": bankAccount, "amount": amount},
			setupAuth:   authorize,
			buildStubs: func(service *MockService, accounts *MockAccountService) {
				accounts.EXPECT().GetByUsername(gomock.Any(), gomock.Eq(sender.Username)).Times(1).Return(sender, nil)
				service.EXPECT().
					Execute(gomock.Any(), gomock.Eq(sender.ID), gomock.Eq(domain.TransferRequest{
						Kind:        domain.TransactionKindBank,
						Amount:      amount,
						BankAccount: bankAccount,
					})).
					Times(1).
					Return(domain.Transaction{}, domain.ErrForbidden)
			},
			wantStatusCode: http.StatusForbidden,
			wantError:      domain.ErrForbidden.Error(),
		},
		{
			name:        "NoAuthorization",
			url:         "/transactions/instapay",
			requestBody: gin.H{"receiver_username": receiver, "amount": amount},
			setupAuth:   func(r *http.Request) error { return nil },
			buildStubs: func(service *MockService, accounts *MockAccountService) {
				accounts.EXPECT().GetByUsername(gomock.Any(), gomock.Any()).Times(0)
				service.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      middleware.ErrAuthHeaderNotFound.Error(),
		},
		{
			name:        "TooPreciseAmount",
			url:         "/transactions/instapay",
			requestBody: gin.H{"receiver_username": receiver, "amount": "10.001"},
			setupAuth:   authorize,
			buildStubs: func(service *MockService, accounts *MockAccountService) {
				accounts.EXPECT().GetByUsername(gomock.Any(), gomock.Any()).Times(0)
				service.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Amount must be a positive amount with at most 2 decimal places",
		},
		{
			name:        "NegativeAmount",
			url:         "/transactions/wallet",
			requestBody: gin.H{"mobile_number": mobile, "amount": "-5"},
			setupAuth:   authorize,
			buildStubs: func(service *MockService, accounts *MockAccountService) {
				accounts.EXPECT().GetByUsername(gomock.Any(), gomock.Any()).Times(0)
				service.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Amount must be a positive amount with at most 2 decimal places",
		},
		{
			name:        "MissingReceiver",
			url:         "/transactions/instapay",
			requestBody: gin.H{"amount": amount},
			setupAuth:   authorize,
			buildStubs: func(service *MockService, accounts *MockAccountService) {
				accounts.EXPECT().GetByUsername(gomock.Any(), gomock.Any()).Times(0)
				service.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "ReceiverUsername field is required",
		},
		{
			name:        "SenderNotFound",
			url:         "/transactions/instapay",
			requestBody: gin.H{"receiver_username": receiver, "amount": amount},
			setupAuth:   authorize,
			buildStubs: func(service *MockService, accounts *MockAccountService) {
				accounts.EXPECT().
					GetByUsername(gomock.Any(), gomock.Eq(sender.Username)).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)
				service.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusNotFound,
			wantError:      domain.ErrAccountNotFound.Error(),
		},
		{
			name:        "InsufficientFunds",
			url:         "/transactions/instapay",
			requestBody: gin.H{"receiver_username": receiver, "amount": amount},
			setupAuth:   authorize,
			buildStubs: func(service *MockService, accounts *MockAccountService) {
				accounts.EXPECT().GetByUsername(gomock.Any(), gomock.Eq(sender.Username)).Times(1).Return(sender, nil)
				service.EXPECT().
					Execute(gomock.Any(), gomock.Eq(sender.ID), gomock.Any()).
					Times(1).
					Return(domain.Transaction{}, domain.ErrInsufficientFunds)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      domain.ErrInsufficientFunds.Error(),
		},
		{
			name:        "ReceiverNotFound",
			url:         "/transactions/instapay",
			requestBody: gin.H{"receiver_username": receiver, "amount": amount},
			setupAuth:   authorize,
			buildStubs: func(service *MockService, accounts *MockAccountService) {
				accounts.EXPECT().GetByUsername(gomock.Any(), gomock.Eq(sender.Username)).Times(1).Return(sender, nil)
				service.EXPECT().
					Execute(gomock.Any(), gomock.Eq(sender.ID), gomock.Any()).
					Times(1).
					Return(domain.Transaction{}, domain.ErrReceiverNotFound)
			},
			wantStatusCode: http.StatusNotFound,
			wantError:      domain.ErrReceiverNotFound.Error(),
		},
		{
			name:        "InternalError",
			url:         "/transactions/instapay",
			requestBody: gin.H{"receiver_username": receiver, "amount": amount},
			setupAuth:   authorize,
			buildStubs: func(service *MockService, accounts *MockAccountService) {
				accounts.EXPECT().GetByUsername(gomock.Any(), gomock.Eq(sender.Username)).Times(1).Return(sender, nil)
				service.EXPECT().
					Execute(gomock.Any(), gomock.Eq(sender.ID), gomock.Any()).
					Times(1).
					Return(domain.Transaction{}, errors.New("boom"))
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      errorspkg.ErrInternal.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockService(ctrl)
			accounts := NewMockAccountService(ctrl)
			tc.buildStubs(service, accounts)

			handler := NewHandler(service, accounts)

			server := gin.New()
			group := server.Group("/transactions", middleware.AuthMiddleware(tokenMaker))
			group.POST("/instapay", handler.Instapay)
			group.POST("/wallet", handler.Wallet)
			group.POST("/bank", handler.Bank)

			body, err := json.Marshal(tc.requestBody)
			require.NoError(t, err)

			req, err := http.NewRequest(http.MethodPost, tc.url, bytes.NewReader(body))
			require.NoError(t, err)
			require.NoError(t, tc.setupAuth(req))

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			require.Equal(t, tc.wantStatusCode, recorder.Code)

			var res transferResponse
			require.NoError(t, json.NewDecoder(recorder.Body).Decode(&res))
			require.Equal(t, tc.wantError, res.Error)

			if tc.wantStatusCode == http.StatusOK {
				require.Equal(t, transferData{Message: "Transfer successful", TransactionID: txID}, res.Data)
			}
		})
	}
}

func TestTransactionsAPI(t *testing.T) {
	tokenMaker, err := tokenpkg.NewPasetoMaker(randompkg.String(32))
	require.NoError(t, err)

	account := domain.Account{ID: uuid.NewString(), Username: randompkg.Owner()}
	txs := []domain.Transaction{
		{
			ID:                   uuid.NewString(),
			Seq:                  1,
			Kind:                 domain.TransactionKindWallet,
			Amount:               decimal.RequireFromString("12.50"),
			SenderID:             account.ID,
			SenderUsername:       account.Username,
			ReceiverMobileNumber: randompkg.MobileNumber(),
			Timestamp:            time.Now().UTC().Truncate(time.Second),
			Status:               domain.TransactionStatusCompleted,
		},
	}

	testCases := []struct {
		name           string
		buildStubs     func(service *MockService, accounts *MockAccountService)
		wantStatusCode int
		wantError      string
		wantTxs        []domain.Transaction
	}{
		{
			name: "OK",
			buildStubs: func(service *MockService, accounts *MockAccountService) {
				accounts.EXPECT().GetByUsername(gomock.Any(), gomock.Eq(account.Username)).Times(1).Return(account, nil)
				service.EXPECT().ListByParticipant(gomock.Any(), gomock.Eq(account.ID)).Times(1).Return(txs, nil)
			},
			wantStatusCode: http.StatusOK,
			wantTxs:        txs,
		},
		{
			name: "Empty",
			buildStubs: func(service *MockService, accounts *MockAccountService) {
				accounts.EXPECT().GetByUsername(gomock.Any(), gomock.Eq(account.Username)).Times(1).Return(account, nil)
				service.EXPECT().
					ListByParticipant(gomock.Any(), gomock.Eq(account.ID)).
					Times(1).
					Return([]domain.Transaction{}, nil)
			},
			wantStatusCode: http.StatusOK,
			wantTxs:        []domain.Transaction{},
		},
		{
			name: "InternalError",
			buildStubs: func(service *MockService, accounts *MockAccountService) {
				accounts.EXPECT().GetByUsername(gomock.Any(), gomock.Eq(account.Username)).Times(1).Return(account, nil)
				service.EXPECT().
					ListByParticipant(gomock.Any(), gomock.Eq(account.ID)).
					Times(1).
					Return(nil, errors.New("boom"))
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      errorspkg.ErrInternal.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockService(ctrl)
			accounts := NewMockAccountService(ctrl)
			tc.buildStubs(service, accounts)

			server := gin.New()
			url := "/user/transactions"
			server.GET(url, middleware.AuthMiddleware(tokenMaker), NewHandler(service, accounts).Transactions)

			req, err := http.NewRequest(http.MethodGet, url, nil)
			require.NoError(t, err)
			require.NoError(t, middleware.AddAuthorization(
				req, tokenMaker, middleware.AuthTypeBearer, account.Username, time.Minute))

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			require.Equal(t, tc.wantStatusCode, recorder.Code)

			var res struct {
				web.Response
				Data transactionsData `json:"data"`
			}
			require.NoError(t, json.NewDecoder(recorder.Body).Decode(&res))
			require.Equal(t, tc.wantError, res.Error)

			if diff := cmp.Diff(tc.wantTxs, res.Data.Transactions); diff != "" {
				t.Errorf("transactions mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
