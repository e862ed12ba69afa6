// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/go-petr/instapay/internal/domain"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error)
	Get(ctx context.Context, id string) (domain.Account, error)
	GetByUsername(ctx context.Context, username string) (domain.Account, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo Repo
}

// New returns account service struct to manage account bussines logic.
func New(ar Repo) *Service {
	return &Service{repo: ar}
}

// Open opens and returns the ledger account described by arg.
//
// Only the routing reference matching the account kind is kept.
func (s *Service) Open(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error) {
	switch arg.Kind {
	case domain.AccountKindBank:
		arg.WalletProvider = ""
	case domain.AccountKindWallet:
		arg.BankAccount = ""
	default:
		arg.Kind = domain.AccountKindWallet
		arg.BankAccount = ""
	}

	account, err := s.repo.Create(ctx, arg)
	if err != nil {
		zerolog.Ctx(ctx).Info().Err(err).Str("username", arg.Username).Send()
		return domain.Account{}, err
	}

	return account, nil
}

// Get returns account for the given account ID.
func (s *Service) Get(ctx context.Context, id string) (domain.Account, error) {
	return s.repo.Get(ctx, id)
}

// GetByUsername returns the account held by the given user.
func (s *Service) GetByUsername(ctx context.Context, username string) (domain.Account, error) {
	account, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return account, err
	}

	return account, nil
}
