// Package billservice manages business logic layer of utility bills.
package billservice

import (
	"context"
	"iter"
	"slices"

	"github.com/rs/zerolog"

	"github.com/go-petr/instapay/internal/domain"
)

// Repo provides bill registry access needed by bill service layer.
type Repo interface {
	List(ctx context.Context) iter.Seq[domain.Bill]
	FindUnpaid(ctx context.Context, accountNumber string, billType domain.BillType) (domain.Bill, error)
}

// AccountService resolves the account of an authenticated user.
type AccountService interface {
	GetByUsername(ctx context.Context, username string) (domain.Account, error)
}

// Transferrer executes money movements.
type Transferrer interface {
	Execute(ctx context.Context, senderID string, req domain.TransferRequest) (domain.Transaction, error)
}

// Service facilitates bill service layer logic.
type Service struct {
	repo      Repo
	accounts  AccountService
	transfers Transferrer
}

// New returns bill service struct to manage bill bussines logic.
func New(br Repo, as AccountService, tr Transferrer) *Service {
	return &Service{
		repo:      br,
		accounts:  as,
		transfers: tr,
	}
}

// List returns every bill, paid ones included.
func (s *Service) List(ctx context.Context) []domain.Bill {
	bills := slices.Collect(s.repo.List(ctx))
	if bills == nil {
		bills = []domain.Bill{}
	}

	return bills
}

// Details returns the unpaid bill of the given type issued for the account number.
func (s *Service) Details(ctx context.Context, accountNumber string, billType domain.BillType) (domain.Bill, error) {
	bill, err := s.repo.FindUnpaid(ctx, accountNumber, billType)
	if err != nil {
		zerolog.Ctx(ctx).Info().Err(err).
			Str("account_number", accountNumber).
			Str("bill_type", string(billType)).
			Send()

		return domain.Bill{}, err
	}

	return bill, nil
}

// Pay pays the bill from the account of the given user.
func (s *Service) Pay(ctx context.Context, username, billID string) (domain.Transaction, error) {
	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("username", username).Send()
		return domain.Transaction{}, err
	}

	return s.transfers.Execute(ctx, account.ID, domain.TransferRequest{
		Kind:   domain.TransactionKindBill,
		BillID: billID,
	})
}
