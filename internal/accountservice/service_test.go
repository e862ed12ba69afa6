package accountservice

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"github.com/go-petr/instapay/internal/domain"
	"github.com/go-petr/instapay/pkg/randompkg"
)

func TestOpen(t *testing.T) {
	t.Parallel()

	username := randompkg.Owner()
	bankAccount := randompkg.Digits(16)
	balance := decimal.NewFromInt(1000)

	testCases := []struct {
		name      string
		arg       domain.CreateAccountParams
		wantArg   domain.CreateAccountParams
		repoErr   error
		wantError error
	}{
		{
			name: "BankKeepsBankAccount",
			arg: domain.CreateAccountParams{
				Username:       username,
				Kind:           domain.AccountKindBank,
				BankAccount:    bankAccount,
				WalletProvider: "vodafone",
				Balance:        balance,
			},
			wantArg: domain.CreateAccountParams{
				Username:    username,
				Kind:        domain.AccountKindBank,
				BankAccount: bankAccount,
				Balance:     balance,
			},
		},
		{
			name: "WalletKeepsProvider",
			arg: domain.CreateAccountParams{
				Username:       username,
				Kind:           domain.AccountKindWallet,
				BankAccount:    bankAccount,
				WalletProvider: "vodafone",
				Balance:        balance,
			},
			wantArg: domain.CreateAccountParams{
				Username:       username,
				Kind:           domain.AccountKindWallet,
				WalletProvider: "vodafone",
				Balance:        balance,
			},
		},
		{
			name: "UnknownKindIsWallet",
			arg: domain.CreateAccountParams{
				Username:    username,
				BankAccount: bankAccount,
				Balance:     balance,
			},
			wantArg: domain.CreateAccountParams{
				Username: username,
				Kind:     domain.AccountKindWallet,
				Balance:  balance,
			},
		},
		{
			name: "RepoError",
			arg: domain.CreateAccountParams{
				Username: username,
				Kind:     domain.AccountKindWallet,
				Balance:  balance,
			},
			wantArg: domain.CreateAccountParams{
				Username: username,
				Kind:     domain.AccountKindWallet,
				Balance:  balance,
			},
			repoErr:   domain.ErrUsernameAlreadyExists,
			wantError: domain.ErrUsernameAlreadyExists,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			service := New(repo)

			want := domain.Account{
				ID:             "id",
				Username:       tc.wantArg.Username,
				Kind:           tc.wantArg.Kind,
				BankAccount:    tc.wantArg.BankAccount,
				WalletProvider: tc.wantArg.WalletProvider,
				Balance:        tc.wantArg.Balance,
				CreatedAt:      time.Now(),
			}

			if tc.repoErr != nil {
				want = domain.Account{}
			}

			repo.EXPECT().
				Create(gomock.Any(), gomock.Eq(tc.wantArg)).
				Times(1).
				Return(want, tc.repoErr)

			got, err := service.Open(context.Background(), tc.arg)
			if err != tc.wantError {
				t.Fatalf("service.Open(ctx, %+v) error = %v, want %v", tc.arg, err, tc.wantError)
			}

			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("service.Open(ctx, %+v) mismatch (-want +got):\n%s", tc.arg, diff)
			}
		})
	}
}

func TestGetByUsername(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	service := New(repo)

	account := domain.Account{ID: "a", Username: randompkg.Owner(), Balance: decimal.NewFromInt(5)}

	repo.EXPECT().GetByUsername(gomock.Any(), account.Username).Times(1).Return(account, nil)
	repo.EXPECT().GetByUsername(gomock.Any(), "nobody").Times(1).Return(domain.Account{}, domain.ErrAccountNotFound)
	repo.EXPECT().Get(gomock.Any(), account.ID).Times(1).Return(account, nil)

	got, err := service.GetByUsername(context.Background(), account.Username)
	if err != nil {
		t.Fatalf("service.GetByUsername returned error: %v", err)
	}

	if diff := cmp.Diff(account, got); diff != "" {
		t.Errorf("service.GetByUsername mismatch (-want +got):\n%s", diff)
	}

	if _, err := service.GetByUsername(context.Background(), "nobody"); err != domain.ErrAccountNotFound {
		t.Errorf("service.GetByUsername(nobody) error = %v, want %v", err, domain.ErrAccountNotFound)
	}

	if _, err := service.Get(context.Background(), account.ID); err != nil {
		t.Errorf("service.Get returned error: %v", err)
	}
}
