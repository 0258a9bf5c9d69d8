package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type WithdrawalRequestStatus string

const (
	WithdrawalPending  WithdrawalRequestStatus = "PENDING"
	WithdrawalApproved WithdrawalRequestStatus = "APPROVED"
	WithdrawalRejected WithdrawalRequestStatus = "REJECTED"
)

// WithdrawalRequest is a payout to a bank account awaiting review. The wallet is only
// debited on approval, which writes a new WITHDRAWAL transaction; rejection moves no money.
type WithdrawalRequest struct {
	ID                uuid.UUID               `db:"id" json:"id"`
	WalletID          uuid.UUID               `db:"wallet_id" json:"walletId"`
	UserID            string                  `db:"user_id" json:"userId"`
	Amount            decimal.Decimal         `db:"amount" json:"amount"`
	BankName          string                  `db:"bank_name" json:"bankName"`
	BankAccountName   string                  `db:"bank_account_name" json:"bankAccountName"`
	BankAccountNumber string                  `db:"bank_account_number" json:"bankAccountNumber"`
	Status            WithdrawalRequestStatus `db:"status" json:"status"`
	TransactionID     *uuid.UUID              `db:"transaction_id" json:"transactionId,omitempty"`
	CreatedAt         time.Time               `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time               `db:"updated_at" json:"updatedAt"`
}

type CreateWithdrawalRequest struct {
	Amount            decimal.Decimal `json:"amount" binding:"required"`
	BankName          string          `json:"bankName" binding:"required" validate:"required"`
	BankAccountName   string          `json:"bankAccountName" binding:"required" validate:"required"`
	BankAccountNumber string          `json:"bankAccountNumber" binding:"required" validate:"required"`
}

type WithdrawalRequests struct {
	Requests       []WithdrawalRequest `json:"requests"`
	WithdrawnToday decimal.Decimal     `json:"withdrawnToday"`
}
