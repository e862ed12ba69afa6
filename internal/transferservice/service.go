// Package transferservice manages business logic layer of transfers.
//
// Every money movement is validated, applied to the balances and recorded in
// the transaction log inside one exclusive section over the involved
// accounts, so it either happens completely or not at all.
package transferservice

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"slices"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/instapay/internal/accountrepo"
	"github.com/go-petr/instapay/internal/domain"
	"github.com/go-petr/instapay/pkg/currencypkg"
)

// AccountRepo provides access to balances needed by transfer service layer.
type AccountRepo interface {
	Get(ctx context.Context, id string) (domain.Account, error)
	GetByUsername(ctx context.Context, username string) (domain.Account, error)
	WithExclusiveAccess(ctx context.Context, ids []string, fn func(tx *accountrepo.Tx) error) error
}

// TransactionRepo provides access to the transaction log.
type TransactionRepo interface {
	Append(ctx context.Context, t domain.Transaction) domain.Transaction
	QueryByParticipant(ctx context.Context, accountID string) iter.Seq[domain.Transaction]
}

// BillRepo provides access to the bill registry.
type BillRepo interface {
	Get(ctx context.Context, id string) (domain.Bill, error)
	MarkPaid(ctx context.Context, id string, paidAt time.Time) (domain.Bill, error)
}

// Service facilitates transfer service layer logic.
type Service struct {
	accounts     AccountRepo
	transactions TransactionRepo
	bills        BillRepo
	now          func() time.Time
}

// New returns transfer service struct to manage transfer business logic.
func New(ar AccountRepo, tr TransactionRepo, br BillRepo) *Service {
	return &Service{
		accounts:     ar,
		transactions: tr,
		bills:        br,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// plan is a validated transfer waiting for the exclusive section.
type plan struct {
	amount     decimal.Decimal
	lockIDs    []string
	receiverID string
	record     domain.Transaction
}

// Execute validates the request from the sender's account and then moves the
// money, returning the logged transaction.
func (s *Service) Execute(ctx context.Context, senderID string, req domain.TransferRequest) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx).With().
		Str("sender_id", senderID).
		Str("kind", string(req.Kind)).
		Logger()

	p, err := s.prepare(ctx, senderID, req)
	if err != nil {
		l.Info().Err(err).Msg("transfer rejected")
		return domain.Transaction{}, err
	}

	err = s.accounts.WithExclusiveAccess(ctx, p.lockIDs, func(tx *accountrepo.Tx) error {
		if err := tx.Debit(senderID, p.amount); err != nil {
			return err
		}

		if p.receiverID != "" {
			if err := tx.Credit(p.receiverID, p.amount); err != nil {
				return err
			}
		}

		now := s.now()

		if p.record.Kind == domain.TransactionKindBill {
			if _, err := s.bills.MarkPaid(ctx, p.record.BillID, now); err != nil {
				return err
			}
		}

		p.record.Timestamp = now
		p.record = s.transactions.Append(ctx, p.record)

		return nil
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			l.Info().Err(err).Msg("transfer abandoned")
		} else {
			l.Info().Err(err).Msg("transfer failed")
		}

		return domain.Transaction{}, err
	}

	l.Debug().
		Str("transaction_id", p.record.ID).
		Str("amount", currencypkg.Format(p.amount)).
		Msg("transfer completed")

	return p.record, nil
}

func (s *Service) prepare(ctx context.Context, senderID string, req domain.TransferRequest) (plan, error) {
	var (
		p   plan
		err error
	)

	if req.Kind != domain.TransactionKindBill {
		p.amount, err = currencypkg.ParseAmount(req.Amount)
		if err != nil {
			return plan{}, fmt.Errorf("%w: %v", domain.ErrInvalidAmount, err)
		}
	}

	sender, err := s.accounts.Get(ctx, senderID)
	if err != nil {
		return plan{}, err
	}

	p.lockIDs = []string{sender.ID}
	p.record = domain.Transaction{
		Kind:           req.Kind,
		SenderID:       sender.ID,
		SenderUsername: sender.Username,
		Status:         domain.TransactionStatusCompleted,
		Description:    req.Description,
	}

	switch req.Kind {
	case domain.TransactionKindPeer:
		receiver, err := s.accounts.GetByUsername(ctx, req.ReceiverUsername)
		if err != nil {
			if errors.Is(err, domain.ErrAccountNotFound) {
				return plan{}, domain.ErrReceiverNotFound
			}

			return plan{}, err
		}

		p.receiverID = receiver.ID
		p.lockIDs = append(p.lockIDs, receiver.ID)
		p.record.ReceiverID = receiver.ID
		p.record.ReceiverUsername = receiver.Username

	case domain.TransactionKindWallet:
		p.record.ReceiverMobileNumber = req.MobileNumber

	case domain.TransactionKindBank:
		if sender.Kind != domain.AccountKindBank {
			return plan{}, domain.ErrForbidden
		}

		p.record.ReceiverBankAccount = req.BankAccount

	case domain.TransactionKindBill:
		bill, err := s.bills.Get(ctx, req.BillID)
		if err != nil {
			return plan{}, err
		}

		if bill.IsPaid {
			return plan{}, domain.ErrAlreadyPaid
		}

		p.amount = bill.Amount
		p.record.BillID = bill.ID

		if p.record.Description == "" {
			p.record.Description = fmt.Sprintf("Payment for %s bill", bill.Type)
		}

	default:
		return plan{}, domain.ErrUnknownTransferKind
	}

	p.record.Amount = p.amount

	return p, nil
}

// ListByParticipant returns every logged transaction the account sent or
// received, oldest first.
func (s *Service) ListByParticipant(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	if _, err := s.accounts.Get(ctx, accountID); err != nil {
		zerolog.Ctx(ctx).Info().Err(err).Str("account_id", accountID).Send()
		return nil, err
	}

	txs := slices.Collect(s.transactions.QueryByParticipant(ctx, accountID))
	if txs == nil {
		txs = []domain.Transaction{}
	}

	return txs, nil
}
