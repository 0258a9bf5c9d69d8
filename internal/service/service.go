package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gallery_wallet/internal/metrics"
	"gallery_wallet/internal/models"
	"gallery_wallet/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

const defaultMaxRetries = 3

type WalletService struct {
	repo       LedgerStore
	events     EventPublisher
	logger     *slog.Logger
	maxRetries int
}

func NewWalletService(repo LedgerStore, events EventPublisher, logger *slog.Logger) *WalletService {
	return &WalletService{
		repo:       repo,
		events:     events,
		logger:     logger,
		maxRetries: defaultMaxRetries,
	}
}

// WithMaxRetries overrides the number of attempts for serialization and deadlock failures.
func (s *WalletService) WithMaxRetries(n int) *WalletService {
	if n > 0 {
		s.maxRetries = n
	}
	return s
}

type mutation func(ctx context.Context, walletID uuid.UUID, amount decimal.Decimal, details models.TransactionDetails) (*models.Wallet, *models.Transaction, error)

func (s *WalletService) Credit(ctx context.Context, walletID uuid.UUID, amount decimal.Decimal, details models.TransactionDetails) (*models.Wallet, *models.Transaction, error) {
	return s.withRetry(ctx, "credit", s.repo.Credit, walletID, amount, details)
}

func (s *WalletService) Debit(ctx context.Context, walletID uuid.UUID, amount decimal.Decimal, details models.TransactionDetails) (*models.Wallet, *models.Transaction, error) {
	return s.withRetry(ctx, "debit", s.repo.Debit, walletID, amount, details)
}

func (s *WalletService) withRetry(
	ctx context.Context,
	op string,
	fn mutation,
	walletID uuid.UUID,
	amount decimal.Decimal,
	details models.TransactionDetails,
) (*models.Wallet, *models.Transaction, error) {
	if !models.ValidAmount(amount) {
		s.logger.Error("Ledger mutation rejected: invalid amount",
			slog.String("operation", op),
			slog.String("wallet_id", walletID.String()),
			slog.Any("amount", amount),
		)
		return nil, nil, repository.ErrInvalidAmount
	}
	defer metrics.ObserveDuration(op, time.Now())

	var lastErr error
	for i := 0; i < s.maxRetries; i++ {
		wallet, tx, err := fn(ctx, walletID, amount, details)
		if err == nil {
			s.events.TransactionCreated(ctx, tx, wallet)
			return wallet, tx, nil
		}
		if isRetryableError(err) {
			s.logger.Warn("Retrying ledger mutation",
				slog.String("operation", op),
				slog.String("wallet_id", walletID.String()),
				slog.Int("attempt", i+1),
				slog.Any("err", err),
			)
			metrics.LedgerRetriesTotal.WithLabelValues(op).Inc()
			lastErr = err
			select {
			case <-ctx.Done():
				return nil, nil, ctx.Err()
			case <-time.After(time.Duration(1<<i) * 10 * time.Microsecond):
			}
			continue
		}

		switch {
		case errors.Is(err, repository.ErrWalletNotFound):
			s.logger.Error("Ledger mutation failed: wallet not found",
				slog.String("operation", op),
				slog.String("wallet_id", walletID.String()),
				slog.Any("amount", amount),
			)
		case errors.Is(err, repository.ErrInsufficientBalance):
			s.logger.Warn("Ledger mutation failed: insufficient balance",
				slog.String("operation", op),
				slog.String("wallet_id", walletID.String()),
				slog.Any("amount", amount),
				slog.Any("err", err),
			)
		case errors.Is(err, repository.ErrDuplicateOrderCode):
			s.logger.Info("Ledger mutation skipped: order code already recorded",
				slog.String("operation", op),
				slog.String("wallet_id", walletID.String()),
				slog.String("order_code", details.OrderCode),
			)
		default:
			s.logger.Error("Ledger mutation failed: unknown error",
				slog.String("operation", op),
				slog.String("wallet_id", walletID.String()),
				slog.Any("amount", amount),
				slog.Any("err", err),
			)
		}
		return nil, nil, err
	}
	s.logger.Error("Ledger mutation failed after retries",
		slog.String("operation", op),
		slog.String("wallet_id", walletID.String()),
		slog.Any("amount", amount),
		slog.Any("err", lastErr),
	)
	return nil, nil, lastErr
}

// Deposit credits a user's wallet, creating it on first use. A repeated order code
// for the same deposit returns the current wallet without crediting again.
func (s *WalletService) Deposit(ctx context.Context, userID string, amount decimal.Decimal, description, orderCode string) (*models.Wallet, error) {
	if userID == "" {
		return nil, validationError("userId is required")
	}
	if !models.ValidAmount(amount) {
		return nil, repository.ErrInvalidAmount
	}
	if IsReservedOrderCode(orderCode) {
		return nil, ErrReservedOrderCode
	}
	wallet, err := s.repo.GetOrCreateWallet(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get wallet: %w", err)
	}
	if orderCode == "" {
		orderCode = newOrderCode("DEP")
	}
	if description == "" {
		description = fmt.Sprintf("Deposit %s", amount.StringFixed(2))
	}

	updated, _, err := s.Credit(ctx, wallet.ID, amount, models.TransactionDetails{
		WalletID:    wallet.ID,
		UserID:      userID,
		Type:        models.TransactionDeposit,
		Status:      models.StatusPaid,
		Description: description,
		OrderCode:   orderCode,
	})
	if errors.Is(err, repository.ErrDuplicateOrderCode) {
		existing, findErr := s.findRecorded(ctx, orderCode, wallet.ID, models.TransactionDeposit, amount)
		if findErr != nil {
			return nil, findErr
		}
		if existing == nil {
			return nil, err
		}
		return s.repo.GetWallet(ctx, wallet.ID)
	}
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *WalletService) Withdraw(ctx context.Context, userID string, amount decimal.Decimal) (*models.Wallet, error) {
	if userID == "" {
		return nil, validationError("userId is required")
	}
	if !models.ValidAmount(amount) {
		s.logger.Error("Withdraw failed: invalid amount",
			slog.String("user_id", userID),
			slog.Any("amount", amount),
		)
		return nil, repository.ErrInvalidAmount
	}
	wallet, err := s.repo.GetWalletByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrWalletNotFound) {
			s.logger.Warn("Withdraw failed: wallet not found", slog.String("user_id", userID))
		}
		return nil, err
	}
	updated, _, err := s.Debit(ctx, wallet.ID, amount, models.TransactionDetails{
		WalletID:    wallet.ID,
		UserID:      userID,
		Type:        models.TransactionWithdrawal,
		Status:      models.StatusPaid,
		Description: fmt.Sprintf("Withdraw %s", amount.StringFixed(2)),
		OrderCode:   newOrderCode("WDR"),
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *WalletService) GetWallet(ctx context.Context, userID string) (*models.Wallet, error) {
	if userID == "" {
		return nil, validationError("userId is required")
	}
	wallet, err := s.repo.GetOrCreateWallet(ctx, userID)
	if err != nil {
		s.logger.Error("GetWallet failed",
			slog.String("user_id", userID),
			slog.Any("err", err),
		)
		return nil, err
	}
	return wallet, nil
}

// GetTransactionHistory lists a user's transactions newest first. skip and take are
// only applied when skip >= 0 and take > 0; otherwise the full history is returned.
func (s *WalletService) GetTransactionHistory(ctx context.Context, userID string, skip, take *int) (*models.TransactionHistory, error) {
	wallet, err := s.GetWallet(ctx, userID)
	if err != nil {
		return nil, err
	}
	if skip == nil || take == nil || *skip < 0 || *take <= 0 {
		skip, take = nil, nil
	}
	txs, total, err := s.repo.ListTransactions(ctx, wallet.ID, skip, take)
	if err != nil {
		s.logger.Error("GetTransactionHistory failed",
			slog.String("user_id", userID),
			slog.Any("err", err),
		)
		return nil, err
	}
	if txs == nil {
		txs = []models.Transaction{}
	}
	return &models.TransactionHistory{Transactions: txs, Total: total}, nil
}

func (s *WalletService) ListAllTransactions(ctx context.Context) ([]models.Transaction, error) {
	txs, err := s.repo.ListAllTransactions(ctx)
	if err != nil {
		s.logger.Error("ListAllTransactions failed", slog.Any("err", err))
		return nil, err
	}
	if txs == nil {
		txs = []models.Transaction{}
	}
	return txs, nil
}

// findRecorded looks up an order code that is about to be, or was just found to be, reused.
// It returns nil when the code is unused and ErrOrderCodeConflict when the recorded entry
// differs in wallet, type or amount from the one the caller means.
func (s *WalletService) findRecorded(
	ctx context.Context,
	orderCode string,
	walletID uuid.UUID,
	txType models.TransactionType,
	amount decimal.Decimal,
) (*models.Transaction, error) {
	existing, err := s.repo.FindTransactionByOrderCode(ctx, orderCode)
	if errors.Is(err, repository.ErrTransactionNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find transaction %s: %w", orderCode, err)
	}
	if existing.WalletID != walletID || existing.Type != txType || !existing.Amount.Equal(amount) {
		s.logger.Error("Order code recorded for a different entry",
			slog.String("order_code", orderCode),
			slog.String("wallet_id", walletID.String()),
			slog.String("recorded_wallet_id", existing.WalletID.String()),
			slog.String("type", string(txType)),
			slog.String("recorded_type", string(existing.Type)),
			slog.Any("amount", amount),
			slog.Any("recorded_amount", existing.Amount),
		)
		return nil, ErrOrderCodeConflict
	}
	return existing, nil
}

// reservedOrderCodePrefixes belong to codes the service derives itself; clients may not use them.
var reservedOrderCodePrefixes = []string{
	settlementArtworkPrefix + "-",
	settlementTicketPrefix + "-",
	withdrawalRequestPrefix + "-",
}

func IsReservedOrderCode(orderCode string) bool {
	for _, prefix := range reservedOrderCodePrefixes {
		if strings.HasPrefix(strings.ToUpper(orderCode), prefix) {
			return true
		}
	}
	return false
}

func newOrderCode(prefix string) string {
	return prefix + "-" + ulid.Make().String()
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}
