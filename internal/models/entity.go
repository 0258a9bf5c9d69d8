package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AmountScale is the number of decimal places money is stored with.
const AmountScale = 2

// ValidAmount reports whether amount is positive and a whole number of cents.
func ValidAmount(amount decimal.Decimal) bool {
	return amount.IsPositive() && amount.Equal(amount.Truncate(AmountScale))
}

type TransactionType string

const (
	TransactionDeposit    TransactionType = "DEPOSIT"
	TransactionWithdrawal TransactionType = "WITHDRAWAL"
	TransactionPayment    TransactionType = "PAYMENT"
	TransactionSale       TransactionType = "SALE"
	TransactionCommission TransactionType = "COMMISSION"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TransactionDeposit, TransactionWithdrawal, TransactionPayment, TransactionSale, TransactionCommission:
		return true
	}
	return false
}

type TransactionStatus string

const (
	StatusPending TransactionStatus = "PENDING"
	StatusPaid    TransactionStatus = "PAID"
	StatusFailed  TransactionStatus = "FAILED"
)

func (s TransactionStatus) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusFailed:
		return true
	}
	return false
}

type Wallet struct {
	ID        uuid.UUID       `db:"id" json:"walletId"`
	UserID    string          `db:"user_id" json:"userId"`
	Balance   decimal.Decimal `db:"balance" json:"balance"`
	CreatedAt time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time       `db:"updated_at" json:"updatedAt"`
}

// Transaction is an immutable ledger entry. Rows are inserted once and never updated.
type Transaction struct {
	ID          uuid.UUID         `db:"id" json:"id"`
	WalletID    uuid.UUID         `db:"wallet_id" json:"walletId"`
	UserID      string            `db:"user_id" json:"userId"`
	Amount      decimal.Decimal   `db:"amount" json:"amount"`
	Type        TransactionType   `db:"type" json:"type"`
	Status      TransactionStatus `db:"status" json:"status"`
	Description string            `db:"description" json:"description"`
	OrderCode   string            `db:"order_code" json:"orderCode"`
	CreatedAt   time.Time         `db:"created_at" json:"createdAt"`
}

// TransactionDetails describes the ledger entry written together with a balance change.
type TransactionDetails struct {
	WalletID    uuid.UUID
	UserID      string
	Type        TransactionType
	Status      TransactionStatus
	Description string
	OrderCode   string
}

type GroupBy string

const (
	GroupByDay   GroupBy = "day"
	GroupByWeek  GroupBy = "week"
	GroupByMonth GroupBy = "month"
)

func (g GroupBy) Valid() bool {
	return g == GroupByDay || g == GroupByWeek || g == GroupByMonth
}

type AggregateQuery struct {
	From    time.Time
	To      time.Time
	GroupBy GroupBy
	Type    *TransactionType
	Status  *TransactionStatus
}

// PeriodBucket is one row of a sparse time series; periods without transactions are absent.
type PeriodBucket struct {
	Period       string          `json:"period"`
	Inflow       decimal.Decimal `json:"inflow"`
	Outflow      decimal.Decimal `json:"outflow"`
	NetFlow      decimal.Decimal `json:"netFlow"`
	Transactions int64           `json:"transactions"`
}
