// Package domain provides defenitions of all entities.
package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrInvalidAmount indicates a non-positive amount or an amount with more
	// fractional digits than the currency allows.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInsufficientFunds indicates that the account does not have sufficient balance.
	ErrInsufficientFunds = errors.New("insufficient balance")
)

// AccountKind tells how the account holder registered.
type AccountKind string

// Supported account kinds.
const (
	AccountKindBank   AccountKind = "bank"
	AccountKindWallet AccountKind = "wallet"
)

// Account holds the ledger state of a single user.
type Account struct {
	ID             string          `json:"id"`
	Username       string          `json:"username"`
	Kind           AccountKind     `json:"type"`
	BankAccount    string          `json:"bank_account,omitempty"`
	WalletProvider string          `json:"wallet_provider,omitempty"`
	Balance        decimal.Decimal `json:"balance"`
	CreatedAt      time.Time       `json:"created_at"`
}

// CreateAccountParams is the input data to open an account.
type CreateAccountParams struct {
	ID             string
	Username       string
	Kind           AccountKind
	BankAccount    string
	WalletProvider string
	Balance        decimal.Decimal
}
