// Package userservice manages business logic layer of users.
package userservice

import (
	"context"
	"crypto/subtle"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/instapay/internal/domain"
	"github.com/go-petr/instapay/pkg/currencypkg"
)

// Repo provides data access layer interface needed by user service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package userservice
type Repo interface {
	Create(ctx context.Context, u domain.User) (domain.User, error)
	Get(ctx context.Context, username string) (domain.User, error)
	Delete(ctx context.Context, username string) error
}

// AccountService opens and looks up the ledger accounts of users.
type AccountService interface {
	Open(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error)
	GetByUsername(ctx context.Context, username string) (domain.Account, error)
}

// Service facilitates user service layer logic.
type Service struct {
	repo           Repo
	accounts       AccountService
	defaultBalance decimal.Decimal
}

// New return user service struct to manage user bussines logic.
//
// Every registered user gets an account opened with defaultBalance.
func New(ur Repo, as AccountService, defaultBalance decimal.Decimal) *Service {
	return &Service{
		repo:           ur,
		accounts:       as,
		defaultBalance: defaultBalance,
	}
}

// NewUserWithAccount returns user joined with its account without sensitive data.
func NewUserWithAccount(u domain.User, a domain.Account) domain.UserWithAccount {
	return domain.UserWithAccount{
		ID:             a.ID,
		Username:       u.Username,
		MobileNumber:   u.MobileNumber,
		Kind:           a.Kind,
		BankAccount:    a.BankAccount,
		WalletProvider: a.WalletProvider,
		Balance:        currencypkg.Format(a.Balance),
		CreatedAt:      u.CreatedAt,
	}
}

// Register creates the user together with its ledger account.
func (s *Service) Register(ctx context.Context, arg domain.CreateUserParams) (domain.UserWithAccount, error) {
	l := zerolog.Ctx(ctx)

	kind := domain.AccountKindWallet
	if arg.RegistrationType == domain.AccountKindBank {
		kind = domain.AccountKindBank
	}

	user, err := s.repo.Create(ctx, domain.User{
		Username:     arg.Username,
		Password:     arg.Password,
		MobileNumber: arg.MobileNumber,
		AccountID:    uuid.NewString(),
	})
	if err != nil {
		return domain.UserWithAccount{}, err
	}

	account, err := s.accounts.Open(ctx, domain.CreateAccountParams{
		ID:             user.AccountID,
		Username:       user.Username,
		Kind:           kind,
		BankAccount:    arg.BankAccount,
		WalletProvider: arg.WalletProvider,
		Balance:        s.defaultBalance,
	})
	if err != nil {
		l.Error().Err(err).Str("username", user.Username).Msg("opening account")

		if delErr := s.repo.Delete(ctx, user.Username); delErr != nil {
			l.Error().Err(delErr).Str("username", user.Username).Msg("rolling back user")
		}

		return domain.UserWithAccount{}, err
	}

	return NewUserWithAccount(user, account), nil
}

// CheckPassword checks if the password is valid for the given username.
func (s *Service) CheckPassword(ctx context.Context, username, pass string) (domain.UserWithAccount, error) {
	l := zerolog.Ctx(ctx)

	user, err := s.repo.Get(ctx, username)
	if err != nil {
		return domain.UserWithAccount{}, err
	}

	if subtle.ConstantTimeCompare([]byte(pass), []byte(user.Password)) != 1 {
		l.Warn().Err(domain.ErrWrongPassword).Str("username", username).Send()
		return domain.UserWithAccount{}, domain.ErrWrongPassword
	}

	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		l.Error().Err(err).Str("username", username).Send()
		return domain.UserWithAccount{}, err
	}

	return NewUserWithAccount(user, account), nil
}
