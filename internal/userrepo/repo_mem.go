// Package userrepo manages repository layer of users.
package userrepo

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/go-petr/instapay/internal/domain"
)

// RepoMem facilitates user repository layer logic.
type RepoMem struct {
	mu       sync.RWMutex
	users    map[string]domain.User
	byMobile map[string]string
}

// NewRepoMem returns an empty user RepoMem.
func NewRepoMem() *RepoMem {
	return &RepoMem{
		users:    make(map[string]domain.User),
		byMobile: make(map[string]string),
	}
}

// Create creates the user and then returns it.
func (r *RepoMem) Create(ctx context.Context, u domain.User) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[u.Username]; ok {
		l.Info().Err(domain.ErrUsernameAlreadyExists).Str("username", u.Username).Send()
		return domain.User{}, domain.ErrUsernameAlreadyExists
	}

	if _, ok := r.byMobile[u.MobileNumber]; ok {
		l.Info().Err(domain.ErrMobileAlreadyExists).Str("username", u.Username).Send()
		return domain.User{}, domain.ErrMobileAlreadyExists
	}

	u.CreatedAt = time.Now().UTC()

	r.users[u.Username] = u
	r.byMobile[u.MobileNumber] = u.Username

	return u, nil
}

// Get returns the user with the given username.
func (r *RepoMem) Get(ctx context.Context, username string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[username]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}

	return u, nil
}

// Delete removes the user with the given username.
func (r *RepoMem) Delete(ctx context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[username]
	if !ok {
		return domain.ErrUserNotFound
	}

	delete(r.users, username)
	delete(r.byMobile, u.MobileNumber)

	return nil
}
