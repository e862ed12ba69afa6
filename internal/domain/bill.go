package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrBillNotFound indicates that the bill is not found.
	ErrBillNotFound = errors.New("bill not found")
	// ErrAlreadyPaid indicates that the bill has already been paid.
	ErrAlreadyPaid = errors.New("bill already paid")
)

// BillType is the utility a bill is issued for.
type BillType string

// Supported bill types.
const (
	BillTypeGas         BillType = "gas"
	BillTypeElectricity BillType = "electricity"
	BillTypeWater       BillType = "water"
)

// BillTypes holds all the supported bill types.
var BillTypes = []BillType{BillTypeGas, BillTypeElectricity, BillTypeWater}

// MeterDetails holds the metering data printed on a bill.
type MeterDetails struct {
	MeterNumber string          `json:"meter_number"`
	Consumption int64           `json:"consumption"`
	Rate        decimal.Decimal `json:"rate"`
	ServiceFee  decimal.Decimal `json:"service_fee"`
}

// Bill is a payable utility bill.
type Bill struct {
	ID            string          `json:"id"`
	Type          BillType        `json:"type"`
	AccountNumber string          `json:"account_number"`
	CustomerName  string          `json:"customer_name"`
	Amount        decimal.Decimal `json:"amount"`
	DueDate       time.Time       `json:"due_date"`
	IsPaid        bool            `json:"is_paid"`
	PaymentDate   *time.Time      `json:"payment_date"`
	Details       MeterDetails    `json:"details"`
}
