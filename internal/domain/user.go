package domain

import (
	"errors"
	"time"
)

var (
	// ErrUsernameAlreadyExists indicates the the user with the given username already exists.
	ErrUsernameAlreadyExists = errors.New("Username already registered")
	// ErrMobileAlreadyExists indicates the the user with the given mobile number already exists.
	ErrMobileAlreadyExists = errors.New("Mobile number already registered")
	// ErrUserNotFound indicates the the user is not found.
	ErrUserNotFound = errors.New("User not found")
	// ErrWrongPassword indicates the wrong password for the given user.
	ErrWrongPassword = errors.New("Wrong password")
	// ErrInvalidCredentials is shown on failed logins without telling which part was wrong.
	ErrInvalidCredentials = errors.New("Invalid username or password")
)

// User holds user credentials and the id of the user's ledger account.
type User struct {
	Username     string    `json:"username"`
	Password     string    `json:"password"`
	MobileNumber string    `json:"mobile_number"`
	AccountID    string    `json:"account_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateUserParams is the input data to register a user.
type CreateUserParams struct {
	Username         string      `json:"username"`
	Password         string      `json:"password"`
	MobileNumber     string      `json:"mobile_number"`
	RegistrationType AccountKind `json:"registration_type"`
	BankAccount      string      `json:"bank_account"`
	WalletProvider   string      `json:"wallet_provider"`
}

// UserWithAccount is User data excluding password data joined with its account.
type UserWithAccount struct {
	ID             string      `json:"id"`
	Username       string      `json:"username"`
	MobileNumber   string      `json:"mobile_number"`
	Kind           AccountKind `json:"type"`
	BankAccount    string      `json:"bank_account,omitempty"`
	WalletProvider string      `json:"wallet_provider,omitempty"`
	Balance        string      `json:"balance"`
	CreatedAt      time.Time   `json:"created_at"`
}
