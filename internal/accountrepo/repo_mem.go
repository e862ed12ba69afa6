// Package accountrepo manages repository layer of accounts.
//
// Balances are only ever changed inside WithExclusiveAccess. Each account is
// guarded by a weighted semaphore of size one, which serves waiters in FIFO
// order, and multi-account sections acquire in ascending id order.
package accountrepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/semaphore"

	"github.com/go-petr/instapay/internal/domain"
	"github.com/go-petr/instapay/pkg/errorspkg"
)

type entry struct {
	sem     *semaphore.Weighted
	account domain.Account // guarded by sem
}

// RepoMem facilitates account repository layer logic.
type RepoMem struct {
	mu         sync.RWMutex
	accounts   map[string]*entry
	byUsername map[string]string
}

// NewRepoMem returns an empty account RepoMem.
func NewRepoMem() *RepoMem {
	return &RepoMem{
		accounts:   make(map[string]*entry),
		byUsername: make(map[string]string),
	}
}

// Create opens the account and then returns it.
func (r *RepoMem) Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	if arg.Balance.IsNegative() {
		return domain.Account{}, domain.ErrInvalidAmount
	}

	if arg.ID == "" {
		arg.ID = uuid.NewString()
	}

	a := domain.Account{
		ID:             arg.ID,
		Username:       arg.Username,
		Kind:           arg.Kind,
		BankAccount:    arg.BankAccount,
		WalletProvider: arg.WalletProvider,
		Balance:        arg.Balance,
		CreatedAt:      time.Now().UTC(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byUsername[a.Username]; ok {
		return domain.Account{}, domain.ErrUsernameAlreadyExists
	}

	if _, ok := r.accounts[a.ID]; ok {
		l.Error().Str("account_id", a.ID).Msg("account id collision")
		return domain.Account{}, errorspkg.ErrInternal
	}

	r.accounts[a.ID] = &entry{
		sem:     semaphore.NewWeighted(1),
		account: a,
	}
	r.byUsername[a.Username] = a.ID

	return a, nil
}

func (r *RepoMem) lookup(id string) (*entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.accounts[id]

	return e, ok
}

// Get returns the account with the given id.
//
// The snapshot is taken under the account's exclusive access, so it never
// shows a balance whose transaction is not logged yet.
func (r *RepoMem) Get(ctx context.Context, id string) (domain.Account, error) {
	e, ok := r.lookup(id)
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	if err := e.sem.Acquire(ctx, 1); err != nil {
		return domain.Account{}, err
	}
	defer e.sem.Release(1)

	return e.account, nil
}

// GetByUsername returns the account with the given display name.
func (r *RepoMem) GetByUsername(ctx context.Context, username string) (domain.Account, error) {
	r.mu.RLock()
	id, ok := r.byUsername[username]
	r.mu.RUnlock()

	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	return r.Get(ctx, id)
}

// WithExclusiveAccess holds every named account while fn runs.
//
// Balance changes made through tx are committed only if fn returns nil.
// Accounts are released on every exit path, panics included. The context
// is only observed while waiting; once all accounts are held fn runs to
// completion.
func (r *RepoMem) WithExclusiveAccess(ctx context.Context, ids []string, fn func(tx *Tx) error) error {
	ids = sortedUnique(ids)

	entries := make([]*entry, 0, len(ids))

	for _, id := range ids {
		e, ok := r.lookup(id)
		if !ok {
			return domain.ErrAccountNotFound
		}

		entries = append(entries, e)
	}

	held := 0

	defer func() {
		for i := held - 1; i >= 0; i-- {
			entries[i].sem.Release(1)
		}
	}()

	for _, e := range entries {
		if err := e.sem.Acquire(ctx, 1); err != nil {
			zerolog.Ctx(ctx).Info().Err(err).Strs("account_ids", ids).Msg("gave up waiting for accounts")
			return err
		}
		held++
	}

	tx := newTx(entries)

	if err := fn(tx); err != nil {
		return err
	}

	tx.commit()

	return nil
}

func sortedUnique(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))

	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}
		out = append(out, id)
	}

	sort.Strings(out)

	return out
}

// Tx is the view of the held accounts inside WithExclusiveAccess.
//
// It must not be used after fn returns.
type Tx struct {
	entries map[string]*entry
	staged  map[string]decimal.Decimal
}

func newTx(entries []*entry) *Tx {
	tx := &Tx{
		entries: make(map[string]*entry, len(entries)),
		staged:  make(map[string]decimal.Decimal, len(entries)),
	}

	for _, e := range entries {
		tx.entries[e.account.ID] = e
		tx.staged[e.account.ID] = e.account.Balance
	}

	return tx
}

// Account returns the held account with its staged balance.
func (tx *Tx) Account(id string) (domain.Account, error) {
	e, ok := tx.entries[id]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	a := e.account
	a.Balance = tx.staged[id]

	return a, nil
}

// Credit adds amount to the held account.
func (tx *Tx) Credit(id string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domain.ErrInvalidAmount
	}

	balance, ok := tx.staged[id]
	if !ok {
		return domain.ErrAccountNotFound
	}

	tx.staged[id] = balance.Add(amount)

	return nil
}

// Debit subtracts amount from the held account.
func (tx *Tx) Debit(id string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domain.ErrInvalidAmount
	}

	balance, ok := tx.staged[id]
	if !ok {
		return domain.ErrAccountNotFound
	}

	if balance.LessThan(amount) {
		return domain.ErrInsufficientFunds
	}

	tx.staged[id] = balance.Sub(amount)

	return nil
}

func (tx *Tx) commit() {
	for id, e := range tx.entries {
		e.account.Balance = tx.staged[id]
	}
}
