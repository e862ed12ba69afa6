package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrReceiverNotFound indicates that the peer transfer receiver does not exist.
	ErrReceiverNotFound = errors.New("receiver not found")
	// ErrForbidden indicates that the sender may not perform the transfer kind.
	ErrForbidden = errors.New("only bank account users can transfer to bank accounts")
	// ErrTransactionNotFound indicates that the transaction is not found.
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrUnknownTransferKind indicates a transfer request of unsupported kind.
	ErrUnknownTransferKind = errors.New("unknown transfer kind")
)

// TransactionKind is the kind of money movement.
type TransactionKind string

// Supported transaction kinds.
const (
	TransactionKindPeer   TransactionKind = "peer"
	TransactionKindWallet TransactionKind = "wallet"
	TransactionKindBank   TransactionKind = "bank"
	TransactionKindBill   TransactionKind = "bill"
)

// TransactionStatus is the outcome of a transaction.
type TransactionStatus string

// Transaction statuses.
const (
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
)

// Transaction is an immutable record of a completed money movement.
//
// Exactly one receiver reference is populated depending on Kind.
type Transaction struct {
	ID                   string            `json:"id"`
	Seq                  int64             `json:"seq"`
	Kind                 TransactionKind   `json:"type"`
	Amount               decimal.Decimal   `json:"amount"`
	SenderID             string            `json:"sender_id"`
	SenderUsername       string            `json:"sender_username"`
	ReceiverID           string            `json:"receiver_id,omitempty"`
	ReceiverUsername     string            `json:"receiver_username,omitempty"`
	ReceiverMobileNumber string            `json:"receiver_mobile_number,omitempty"`
	ReceiverBankAccount  string            `json:"receiver_bank_account,omitempty"`
	BillID               string            `json:"bill_id,omitempty"`
	Timestamp            time.Time         `json:"timestamp"`
	Status               TransactionStatus `json:"status"`
	Description          string            `json:"description,omitempty"`
}

// TransferRequest is the input data of a single money movement.
//
// Amount is kept as received and is ignored for bill payments,
// which always pay the bill amount.
type TransferRequest struct {
	Kind             TransactionKind
	Amount           string
	ReceiverUsername string
	MobileNumber     string
	BankAccount      string
	BillID           string
	Description      string
}
