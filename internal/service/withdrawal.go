package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gallery_wallet/internal/metrics"
	"gallery_wallet/internal/models"
	"gallery_wallet/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const withdrawalRequestPrefix = "WRQ"

// WithdrawalService handles payouts to bank accounts that need review. A request only
// checks the balance; the wallet is debited when the request is approved.
type WithdrawalService struct {
	repo       WithdrawalStore
	ledger     LedgerStore
	events     EventPublisher
	validate   *validator.Validate
	logger     *slog.Logger
	maxRetries int
	now        func() time.Time
}

func NewWithdrawalService(repo WithdrawalStore, ledger LedgerStore, events EventPublisher, logger *slog.Logger) *WithdrawalService {
	return &WithdrawalService{
		repo:       repo,
		ledger:     ledger,
		events:     events,
		validate:   validator.New(),
		logger:     logger,
		maxRetries: defaultMaxRetries,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// WithMaxRetries overrides the number of approval attempts for serialization and deadlock failures.
func (s *WithdrawalService) WithMaxRetries(n int) *WithdrawalService {
	if n > 0 {
		s.maxRetries = n
	}
	return s
}

func (s *WithdrawalService) RequestWithdrawal(ctx context.Context, userID string, in models.CreateWithdrawalRequest) (*models.WithdrawalRequest, error) {
	if userID == "" {
		return nil, validationError("userId is required")
	}
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if !models.ValidAmount(in.Amount) {
		return nil, repository.ErrInvalidAmount
	}
	wallet, err := s.ledger.GetWalletByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if wallet.Balance.LessThan(in.Amount) {
		s.logger.Warn("Withdrawal request rejected: insufficient balance",
			slog.String("user_id", userID),
			slog.Any("amount", in.Amount),
			slog.Any("balance", wallet.Balance),
		)
		return nil, &repository.InsufficientBalanceError{Available: wallet.Balance}
	}

	req := &models.WithdrawalRequest{
		WalletID:          wallet.ID,
		UserID:            userID,
		Amount:            in.Amount,
		BankName:          in.BankName,
		BankAccountName:   in.BankAccountName,
		BankAccountNumber: in.BankAccountNumber,
	}
	if err := s.repo.CreateWithdrawalRequest(ctx, req); err != nil {
		return nil, err
	}
	metrics.WithdrawalRequestsTotal.WithLabelValues("requested").Inc()
	s.logger.Info("Withdrawal requested",
		slog.String("withdrawal_request_id", req.ID.String()),
		slog.String("user_id", userID),
		slog.Any("amount", req.Amount),
	)
	return req, nil
}

// ListWithdrawalRequests returns the user's requests and the total withdrawn since midnight UTC.
func (s *WithdrawalService) ListWithdrawalRequests(ctx context.Context, userID string) (*models.WithdrawalRequests, error) {
	if userID == "" {
		return nil, validationError("userId is required")
	}
	wallet, err := s.ledger.GetWalletByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	requests, err := s.repo.ListWithdrawalRequests(ctx, &wallet.ID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	withdrawn, err := s.repo.WithdrawnSince(ctx, wallet.ID, midnight)
	if err != nil {
		return nil, err
	}
	if requests == nil {
		requests = []models.WithdrawalRequest{}
	}
	return &models.WithdrawalRequests{Requests: requests, WithdrawnToday: withdrawn}, nil
}

func (s *WithdrawalService) ListAllWithdrawalRequests(ctx context.Context) ([]models.WithdrawalRequest, error) {
	requests, err := s.repo.ListWithdrawalRequests(ctx, nil)
	if err != nil {
		return nil, err
	}
	if requests == nil {
		requests = []models.WithdrawalRequest{}
	}
	return requests, nil
}

// ApproveWithdrawal debits the wallet for a pending request. Insufficient funds at
// approval time leaves the request pending.
func (s *WithdrawalService) ApproveWithdrawal(ctx context.Context, id uuid.UUID) (*models.WithdrawalRequest, error) {
	details := models.TransactionDetails{
		Description: "Withdrawal request " + id.String(),
		OrderCode:   withdrawalRequestPrefix + "-" + id.String(),
	}

	var lastErr error
	for i := 0; i < s.maxRetries; i++ {
		req, wallet, tx, err := s.repo.ApproveWithdrawalRequest(ctx, id, details)
		if err == nil {
			s.events.TransactionCreated(ctx, tx, wallet)
			metrics.WithdrawalRequestsTotal.WithLabelValues("approved").Inc()
			s.logger.Info("Withdrawal approved",
				slog.String("withdrawal_request_id", id.String()),
				slog.String("user_id", req.UserID),
				slog.Any("amount", req.Amount),
			)
			return req, nil
		}
		if !isRetryableError(err) {
			if !errors.Is(err, repository.ErrInsufficientBalance) && !errors.Is(err, repository.ErrWithdrawalRequestProcessed) {
				s.logger.Error("Withdrawal approval failed",
					slog.String("withdrawal_request_id", id.String()),
					slog.Any("err", err),
				)
			}
			return nil, err
		}
		metrics.LedgerRetriesTotal.WithLabelValues("withdrawal").Inc()
		lastErr = err
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(1<<i) * 10 * time.Microsecond):
		}
	}
	return nil, lastErr
}

func (s *WithdrawalService) RejectWithdrawal(ctx context.Context, id uuid.UUID) (*models.WithdrawalRequest, error) {
	req, err := s.repo.RejectWithdrawalRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	metrics.WithdrawalRequestsTotal.WithLabelValues("rejected").Inc()
	s.logger.Info("Withdrawal rejected",
		slog.String("withdrawal_request_id", id.String()),
		slog.String("user_id", req.UserID),
	)
	return req, nil
}
