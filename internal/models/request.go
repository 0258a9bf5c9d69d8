package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentRequest struct {
	UserID      string          `json:"userId" validate:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	OrderCode   string          `json:"orderCode,omitempty"`
}

type PaymentStatus string

const (
	PaymentSuccess PaymentStatus = "SUCCESS"
	PaymentFailed  PaymentStatus = "FAILED"
)

// PaymentResult is the public payment contract; callers branch on Status.
type PaymentResult struct {
	Status  PaymentStatus `json:"status"`
	Message string        `json:"message"`
}

type DepositRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
	OrderCode   string          `json:"orderCode"`
}

type WithdrawRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

type PurchaseRequest struct {
	BuyerID string `json:"buyerId" binding:"required"`
}

type CommissionBreakdown struct {
	Gross      decimal.Decimal `json:"grossAmount"`
	Rate       decimal.Decimal `json:"commissionRate"`
	Commission decimal.Decimal `json:"commissionAmount"`
	Net        decimal.Decimal `json:"netAmount"`
}

type PurchaseResult struct {
	Status       PaymentStatus        `json:"status"`
	Message      string               `json:"message"`
	AlreadyOwned bool                 `json:"alreadyOwned"`
	OrderCode    string               `json:"orderCode,omitempty"`
	Artwork      *Artwork             `json:"artwork,omitempty"`
	Exhibition   *Exhibition          `json:"exhibition,omitempty"`
	Breakdown    *CommissionBreakdown `json:"breakdown,omitempty"`
	PurchasedAt  time.Time            `json:"purchasedAt"`
}

type TransactionHistory struct {
	Transactions []Transaction `json:"transactions"`
	Total        int64         `json:"total"`
}

type StatisticsQuery struct {
	UserID    string
	StartDate *time.Time
	EndDate   *time.Time
	GroupBy   GroupBy
	Type      *TransactionType
	Status    *TransactionStatus
}

type Trends struct {
	InflowTrend  float64 `json:"inflowTrend"`
	OutflowTrend float64 `json:"outflowTrend"`
	NetFlowTrend float64 `json:"netFlowTrend"`
}

type Summary struct {
	TotalInflow       decimal.Decimal `json:"totalInflow"`
	TotalOutflow      decimal.Decimal `json:"totalOutflow"`
	TotalTransactions int64           `json:"totalTransactions"`
	AvgDailyVolume    decimal.Decimal `json:"avgDailyVolume"`
}

type WalletStatistics struct {
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	TimeSeries     []PeriodBucket  `json:"timeSeries"`
	Trends         Trends          `json:"trends"`
	Summary        Summary         `json:"summary"`
}
