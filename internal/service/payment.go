package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gallery_wallet/internal/metrics"
	"gallery_wallet/internal/models"
	"gallery_wallet/internal/repository"

	"github.com/go-playground/validator/v10"
)

const (
	MessagePaymentSuccessful = "Payment successful"
	MessageAlreadyProcessed  = "Payment already processed"
)

type PaymentService struct {
	repo     LedgerStore
	wallets  *WalletService
	validate *validator.Validate
	logger   *slog.Logger
}

func NewPaymentService(repo LedgerStore, wallets *WalletService, logger *slog.Logger) *PaymentService {
	return &PaymentService{
		repo:     repo,
		wallets:  wallets,
		validate: validator.New(),
		logger:   logger,
	}
}

// Pay debits the user's wallet. Insufficient funds is a business outcome reported as a
// FAILED result; only validation, missing wallets and storage faults are returned as errors.
// Order codes in the settlement namespace are rejected.
func (s *PaymentService) Pay(ctx context.Context, req models.PaymentRequest) (*models.PaymentResult, error) {
	if IsReservedOrderCode(req.OrderCode) {
		return nil, ErrReservedOrderCode
	}
	return s.pay(ctx, req)
}

func (s *PaymentService) pay(ctx context.Context, req models.PaymentRequest) (*models.PaymentResult, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if !models.ValidAmount(req.Amount) {
		return nil, fmt.Errorf("%w: %v", ErrValidation, repository.ErrInvalidAmount)
	}

	wallet, err := s.repo.GetWalletByUserID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrWalletNotFound) {
			s.logger.Error("Payment failed: wallet not found", slog.String("user_id", req.UserID))
		}
		return nil, err
	}

	orderCode := req.OrderCode
	if orderCode == "" {
		orderCode = newOrderCode("PAY")
	} else {
		// a retry of a committed payment reports success before the balance is checked again
		existing, err := s.wallets.findRecorded(ctx, orderCode, wallet.ID, models.TransactionPayment, req.Amount)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return s.alreadyProcessed(req.UserID, orderCode), nil
		}
	}
	description := req.Description
	if description == "" {
		description = fmt.Sprintf("Payment %s", req.Amount.StringFixed(2))
	}

	_, _, err = s.wallets.Debit(ctx, wallet.ID, req.Amount, models.TransactionDetails{
		WalletID:    wallet.ID,
		UserID:      req.UserID,
		Type:        models.TransactionPayment,
		Status:      models.StatusPaid,
		Description: description,
		OrderCode:   orderCode,
	})

	var insufficient *repository.InsufficientBalanceError
	switch {
	case err == nil:
		metrics.PaymentsTotal.WithLabelValues("success").Inc()
		s.logger.Info("Payment processed",
			slog.String("user_id", req.UserID),
			slog.String("order_code", orderCode),
			slog.Any("amount", req.Amount),
		)
		return &models.PaymentResult{Status: models.PaymentSuccess, Message: MessagePaymentSuccessful}, nil
	case errors.As(err, &insufficient):
		metrics.PaymentsTotal.WithLabelValues("declined").Inc()
		return &models.PaymentResult{
			Status:  models.PaymentFailed,
			Message: fmt.Sprintf("Insufficient balance. Available: %s", insufficient.Available.String()),
		}, nil
	case errors.Is(err, repository.ErrDuplicateOrderCode):
		existing, findErr := s.wallets.findRecorded(ctx, orderCode, wallet.ID, models.TransactionPayment, req.Amount)
		if findErr != nil {
			return nil, findErr
		}
		if existing == nil {
			return nil, err
		}
		return s.alreadyProcessed(req.UserID, orderCode), nil
	default:
		return nil, err
	}
}

func (s *PaymentService) alreadyProcessed(userID, orderCode string) *models.PaymentResult {
	metrics.PaymentsTotal.WithLabelValues("duplicate").Inc()
	s.logger.Info("Payment already processed",
		slog.String("user_id", userID),
		slog.String("order_code", orderCode),
	)
	return &models.PaymentResult{Status: models.PaymentSuccess, Message: MessageAlreadyProcessed}
}
