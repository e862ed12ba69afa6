// Package transactionrepo manages repository layer of transactions.
//
// The log is append-only: records are never changed or removed once
// appended, so a prefix of the log can be read without holding the lock.
package transactionrepo

import (
	"context"
	"iter"
	"sync"

	"github.com/google/uuid"

	"github.com/go-petr/instapay/internal/domain"
)

// RepoMem facilitates transaction repository layer logic.
type RepoMem struct {
	mu      sync.RWMutex
	records []domain.Transaction
	byID    map[string]int
	// byParticipant holds positions in records ordered ascending.
	byParticipant map[string][]int
}

// NewRepoMem returns an empty transaction RepoMem.
func NewRepoMem() *RepoMem {
	return &RepoMem{
		byID:          make(map[string]int),
		byParticipant: make(map[string][]int),
	}
}

// Append stores the record and returns it with its id and sequence number set.
//
// Append never fails, which lets callers run it as the last step of an
// all-or-nothing section.
func (r *RepoMem) Append(ctx context.Context, t domain.Transaction) domain.Transaction {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	t.Seq = int64(len(r.records)) + 1
	pos := len(r.records)

	r.records = append(r.records, t)
	r.byID[t.ID] = pos

	r.byParticipant[t.SenderID] = append(r.byParticipant[t.SenderID], pos)

	if t.ReceiverID != "" && t.ReceiverID != t.SenderID {
		r.byParticipant[t.ReceiverID] = append(r.byParticipant[t.ReceiverID], pos)
	}

	return t
}

// Get returns the transaction with the given id.
func (r *RepoMem) Get(ctx context.Context, id string) (domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pos, ok := r.byID[id]
	if !ok {
		return domain.Transaction{}, domain.ErrTransactionNotFound
	}

	return r.records[pos], nil
}

// QueryByParticipant returns the transactions the account sent or received,
// ascending by sequence number.
//
// The sequence covers the records appended before the call and may be ranged
// over any number of times.
func (r *RepoMem) QueryByParticipant(ctx context.Context, accountID string) iter.Seq[domain.Transaction] {
	r.mu.RLock()
	positions := r.byParticipant[accountID]
	records := r.records
	r.mu.RUnlock()

	// Both slices are only ever appended to, so these headers stay valid.
	positions = positions[:len(positions):len(positions)]

	return func(yield func(domain.Transaction) bool) {
		for _, pos := range positions {
			if !yield(records[pos]) {
				return
			}
		}
	}
}

// Len returns the number of appended transactions.
func (r *RepoMem) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.records)
}
