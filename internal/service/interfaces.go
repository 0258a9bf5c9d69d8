package service

import (
	"context"
	"time"

	"gallery_wallet/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/mock_service_deps.go -package=mocks

type LedgerStore interface {
	GetOrCreateWallet(ctx context.Context, userID string) (*models.Wallet, error)
	GetWalletByUserID(ctx context.Context, userID string) (*models.Wallet, error)
	GetWallet(ctx context.Context, walletID uuid.UUID) (*models.Wallet, error)
	Credit(ctx context.Context, walletID uuid.UUID, amount decimal.Decimal, details models.TransactionDetails) (*models.Wallet, *models.Transaction, error)
	Debit(ctx context.Context, walletID uuid.UUID, amount decimal.Decimal, details models.TransactionDetails) (*models.Wallet, *models.Transaction, error)
	AppendTransaction(ctx context.Context, amount decimal.Decimal, details models.TransactionDetails) (*models.Transaction, error)
	FindTransactionByOrderCode(ctx context.Context, orderCode string) (*models.Transaction, error)
	ListTransactions(ctx context.Context, walletID uuid.UUID, skip, take *int) ([]models.Transaction, int64, error)
	ListAllTransactions(ctx context.Context) ([]models.Transaction, error)
	AggregateByPeriod(ctx context.Context, walletID uuid.UUID, q models.AggregateQuery) ([]models.PeriodBucket, error)
}

type WithdrawalStore interface {
	CreateWithdrawalRequest(ctx context.Context, req *models.WithdrawalRequest) error
	ListWithdrawalRequests(ctx context.Context, walletID *uuid.UUID) ([]models.WithdrawalRequest, error)
	ApproveWithdrawalRequest(ctx context.Context, id uuid.UUID, details models.TransactionDetails) (*models.WithdrawalRequest, *models.Wallet, *models.Transaction, error)
	RejectWithdrawalRequest(ctx context.Context, id uuid.UUID) (*models.WithdrawalRequest, error)
	WithdrawnSince(ctx context.Context, walletID uuid.UUID, since time.Time) (decimal.Decimal, error)
}

type ArtworkCatalog interface {
	GetArtwork(ctx context.Context, artworkID string) (*models.Artwork, error)
	AddBuyer(ctx context.Context, artworkID, buyerID string) (*models.Artwork, error)
}

type ExhibitionCatalog interface {
	GetExhibition(ctx context.Context, exhibitionID string) (*models.Exhibition, error)
	RegisterTicketHolder(ctx context.Context, exhibitionID, userID string) (*models.Exhibition, error)
}

type IncidentLog interface {
	Record(ctx context.Context, inc *models.SettlementIncident) error
	ListOpen(ctx context.Context, limit int) ([]models.SettlementIncident, error)
	MarkResolved(ctx context.Context, id uuid.UUID) error
	RecordAttempt(ctx context.Context, id uuid.UUID, cause error) error
}

// EventPublisher is fire-and-forget; implementations log their own failures.
type EventPublisher interface {
	TransactionCreated(ctx context.Context, tx *models.Transaction, wallet *models.Wallet)
	IncidentOpened(ctx context.Context, inc *models.SettlementIncident)
	IncidentResolved(ctx context.Context, inc *models.SettlementIncident)
}
