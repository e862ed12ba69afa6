// Package billrepo manages repository layer of bills.
package billrepo

import (
	"context"
	"iter"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/go-petr/instapay/internal/domain"
)

type lookupKey struct {
	accountNumber string
	billType      domain.BillType
}

// RepoMem facilitates bill repository layer logic.
type RepoMem struct {
	mu     sync.RWMutex
	bills  []*domain.Bill
	byID   map[string]*domain.Bill
	byAcct map[lookupKey][]*domain.Bill
}

// NewRepoMem returns an empty bill RepoMem.
func NewRepoMem() *RepoMem {
	return &RepoMem{
		byID:   make(map[string]*domain.Bill),
		byAcct: make(map[lookupKey][]*domain.Bill),
	}
}

// Add registers the bill and returns it.
func (r *RepoMem) Add(ctx context.Context, b domain.Bill) (domain.Bill, error) {
	if !b.Amount.IsPositive() {
		return domain.Bill{}, domain.ErrInvalidAmount
	}

	if b.ID == "" {
		b.ID = uuid.NewString()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := b
	key := lookupKey{accountNumber: b.AccountNumber, billType: b.Type}

	r.bills = append(r.bills, &stored)
	r.byID[b.ID] = &stored
	r.byAcct[key] = append(r.byAcct[key], &stored)

	return b, nil
}

// List returns all bills, paid and unpaid, in registration order.
func (r *RepoMem) List(ctx context.Context) iter.Seq[domain.Bill] {
	return func(yield func(domain.Bill) bool) {
		r.mu.RLock()
		bills := r.bills
		r.mu.RUnlock()

		for _, b := range bills {
			r.mu.RLock()
			v := *b
			r.mu.RUnlock()

			if !yield(v) {
				return
			}
		}
	}
}

// Get returns the bill with the given id.
func (r *RepoMem) Get(ctx context.Context, id string) (domain.Bill, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.byID[id]
	if !ok {
		return domain.Bill{}, domain.ErrBillNotFound
	}

	return *b, nil
}

// FindUnpaid returns the first unpaid bill of the given type for the account number.
func (r *RepoMem) FindUnpaid(ctx context.Context, accountNumber string, billType domain.BillType) (domain.Bill, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.byAcct[lookupKey{accountNumber: accountNumber, billType: billType}] {
		if !b.IsPaid {
			return *b, nil
		}
	}

	return domain.Bill{}, domain.ErrBillNotFound
}

// MarkPaid flips the bill to paid exactly once and returns the paid bill.
func (r *RepoMem) MarkPaid(ctx context.Context, id string, paidAt time.Time) (domain.Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.byID[id]
	if !ok {
		return domain.Bill{}, domain.ErrBillNotFound
	}

	if b.IsPaid {
		zerolog.Ctx(ctx).Info().Str("bill_id", id).Msg("bill already paid")
		return domain.Bill{}, domain.ErrAlreadyPaid
	}

	b.IsPaid = true
	b.PaymentDate = &paidAt

	return *b, nil
}
