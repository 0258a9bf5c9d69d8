package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gallery_wallet/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const withdrawalColumns = "id, wallet_id, user_id, amount, bank_name, bank_account_name, bank_account_number, status, transaction_id, created_at, updated_at"

type WithdrawalPGRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewWithdrawalPGRepository(pool *pgxpool.Pool, logger *slog.Logger) *WithdrawalPGRepository {
	return &WithdrawalPGRepository{
		pool:   pool,
		logger: logger,
	}
}

func scanWithdrawal(row pgx.Row) (*models.WithdrawalRequest, error) {
	var (
		w      models.WithdrawalRequest
		status string
	)
	if err := row.Scan(&w.ID, &w.WalletID, &w.UserID, &w.Amount, &w.BankName, &w.BankAccountName,
		&w.BankAccountNumber, &status, &w.TransactionID, &w.CreatedAt, &w.UpdatedAt); err != nil {
		return nil, err
	}
	w.Status = models.WithdrawalRequestStatus(status)
	return &w, nil
}

func (r *WithdrawalPGRepository) CreateWithdrawalRequest(ctx context.Context, req *models.WithdrawalRequest) error {
	if !models.ValidAmount(req.Amount) {
		return ErrInvalidAmount
	}
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	req.Status = models.WithdrawalPending
	err := r.pool.QueryRow(ctx, `
		INSERT INTO withdrawal_requests
			(id, wallet_id, user_id, amount, bank_name, bank_account_name, bank_account_number, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`,
		req.ID, req.WalletID, req.UserID, req.Amount, req.BankName, req.BankAccountName,
		req.BankAccountNumber, string(req.Status),
	).Scan(&req.CreatedAt, &req.UpdatedAt)
	if hasPgCode(err, pgForeignKeyViolation) {
		return ErrWalletNotFound
	}
	if err != nil {
		r.logger.Error("Failed to create withdrawal request",
			slog.String("wallet_id", req.WalletID.String()),
			slog.Any("err", err),
		)
	}
	return err
}

func (r *WithdrawalPGRepository) GetWithdrawalRequest(ctx context.Context, id uuid.UUID) (*models.WithdrawalRequest, error) {
	req, err := scanWithdrawal(r.pool.QueryRow(ctx,
		"SELECT "+withdrawalColumns+" FROM withdrawal_requests WHERE id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrWithdrawalRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

// ListWithdrawalRequests returns requests newest first; a nil walletID lists every wallet's.
func (r *WithdrawalPGRepository) ListWithdrawalRequests(ctx context.Context, walletID *uuid.UUID) ([]models.WithdrawalRequest, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+withdrawalColumns+` FROM withdrawal_requests
		WHERE $1::uuid IS NULL OR wallet_id = $1
		ORDER BY created_at DESC, id DESC`, walletID)
	if err != nil {
		r.logger.Error("Failed to list withdrawal requests", slog.Any("err", err))
		return nil, err
	}
	defer rows.Close()

	requests := make([]models.WithdrawalRequest, 0)
	for rows.Next() {
		req, err := scanWithdrawal(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *req)
	}
	return requests, rows.Err()
}

// ApproveWithdrawalRequest debits the wallet, writes the WITHDRAWAL entry and marks the
// request approved in one database transaction. The request row is locked first, so two
// approvals of the same request cannot both debit.
func (r *WithdrawalPGRepository) ApproveWithdrawalRequest(
	ctx context.Context,
	id uuid.UUID,
	details models.TransactionDetails,
) (*models.WithdrawalRequest, *models.Wallet, *models.Transaction, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, nil, nil, err
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			r.logger.Error("Failed to rollback transaction",
				slog.String("withdrawal_request_id", id.String()),
				slog.Any("err", err),
			)
		}
	}()

	req, err := scanWithdrawal(tx.QueryRow(ctx,
		"SELECT "+withdrawalColumns+" FROM withdrawal_requests WHERE id = $1 FOR UPDATE", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, nil, ErrWithdrawalRequestNotFound
	}
	if err != nil {
		return nil, nil, nil, err
	}
	if req.Status != models.WithdrawalPending {
		return nil, nil, nil, ErrWithdrawalRequestProcessed
	}

	wallet, err := scanWallet(tx.QueryRow(ctx, `
		UPDATE wallets SET balance = balance - $2, updated_at = NOW()
		WHERE id = $1 AND balance >= $2
		RETURNING `+walletColumns, req.WalletID, req.Amount))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, nil, explainNoMatch(ctx, tx, r.logger, req.WalletID)
	}
	if err != nil {
		r.logger.Error("Failed to debit wallet for withdrawal",
			slog.String("withdrawal_request_id", id.String()),
			slog.Any("err", err),
		)
		return nil, nil, nil, err
	}

	details.WalletID = req.WalletID
	details.UserID = req.UserID
	details.Type = models.TransactionWithdrawal
	details.Status = models.StatusPaid
	transaction, err := insertTransaction(ctx, tx, req.Amount, details)
	if hasPgCode(err, pgUniqueViolation) {
		return nil, nil, nil, ErrDuplicateOrderCode
	}
	if err != nil {
		return nil, nil, nil, err
	}

	approved, err := scanWithdrawal(tx.QueryRow(ctx, `
		UPDATE withdrawal_requests SET status = $2, transaction_id = $3, updated_at = clock_timestamp()
		WHERE id = $1
		RETURNING `+withdrawalColumns, id, string(models.WithdrawalApproved), transaction.ID))
	if err != nil {
		return nil, nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error("Failed to commit withdrawal approval",
			slog.String("withdrawal_request_id", id.String()),
			slog.Any("err", err),
		)
		return nil, nil, nil, err
	}
	return approved, wallet, transaction, nil
}

func (r *WithdrawalPGRepository) RejectWithdrawalRequest(ctx context.Context, id uuid.UUID) (*models.WithdrawalRequest, error) {
	req, err := scanWithdrawal(r.pool.QueryRow(ctx, `
		UPDATE withdrawal_requests SET status = $2, updated_at = clock_timestamp()
		WHERE id = $1 AND status = $3
		RETURNING `+withdrawalColumns, id, string(models.WithdrawalRejected), string(models.WithdrawalPending)))
	if errors.Is(err, pgx.ErrNoRows) {
		if _, getErr := r.GetWithdrawalRequest(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, ErrWithdrawalRequestProcessed
	}
	if err != nil {
		r.logger.Error("Failed to reject withdrawal request",
			slog.String("withdrawal_request_id", id.String()),
			slog.Any("err", err),
		)
		return nil, err
	}
	return req, nil
}

// WithdrawnSince sums the paid withdrawals of a wallet from since onwards.
func (r *WithdrawalPGRepository) WithdrawnSince(ctx context.Context, walletID uuid.UUID, since time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0) FROM transactions
		WHERE wallet_id = $1 AND type = $2 AND status = $3 AND created_at >= $4`,
		walletID, string(models.TransactionWithdrawal), string(models.StatusPaid), since,
	).Scan(&total)
	if err != nil {
		r.logger.Error("Failed to sum withdrawals",
			slog.String("wallet_id", walletID.String()),
			slog.Any("err", err),
		)
		return decimal.Zero, err
	}
	return total, nil
}
