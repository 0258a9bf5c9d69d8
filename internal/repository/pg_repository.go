package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gallery_wallet/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const (
	walletColumns      = "id, user_id, balance, created_at, updated_at"
	transactionColumns = "id, wallet_id, user_id, amount, type, status, description, COALESCE(order_code, ''), created_at"
)

type WalletPGRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewWalletPGRepository(pool *pgxpool.Pool, logger *slog.Logger) *WalletPGRepository {
	return &WalletPGRepository{
		pool:   pool,
		logger: logger,
	}
}

func scanWallet(row pgx.Row) (*models.Wallet, error) {
	var w models.Wallet
	if err := row.Scan(&w.ID, &w.UserID, &w.Balance, &w.CreatedAt, &w.UpdatedAt); err != nil {
		return nil, err
	}
	return &w, nil
}

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var (
		t              models.Transaction
		txType, status string
	)
	if err := row.Scan(&t.ID, &t.WalletID, &t.UserID, &t.Amount, &txType, &status,
		&t.Description, &t.OrderCode, &t.CreatedAt); err != nil {
		return nil, err
	}
	t.Type = models.TransactionType(txType)
	t.Status = models.TransactionStatus(status)
	return &t, nil
}

func (r *WalletPGRepository) GetOrCreateWallet(ctx context.Context, userID string) (*models.Wallet, error) {
	wallet, err := scanWallet(r.pool.QueryRow(ctx, `
		INSERT INTO wallets (id, user_id, balance) VALUES ($1, $2, 0)
		ON CONFLICT (user_id) DO NOTHING
		RETURNING `+walletColumns, uuid.New(), userID))
	if err == nil {
		r.logger.Info("Created wallet",
			slog.String("user_id", userID),
			slog.String("wallet_id", wallet.ID.String()),
		)
		return wallet, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		r.logger.Error("Failed to create wallet",
			slog.String("user_id", userID),
			slog.Any("err", err),
		)
		return nil, err
	}
	return r.GetWalletByUserID(ctx, userID)
}

func (r *WalletPGRepository) GetWalletByUserID(ctx context.Context, userID string) (*models.Wallet, error) {
	wallet, err := scanWallet(r.pool.QueryRow(ctx,
		"SELECT "+walletColumns+" FROM wallets WHERE user_id = $1", userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrWalletNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get wallet by user",
			slog.String("user_id", userID),
			slog.Any("err", err),
		)
		return nil, err
	}
	return wallet, nil
}

func (r *WalletPGRepository) GetWallet(ctx context.Context, walletID uuid.UUID) (*models.Wallet, error) {
	wallet, err := scanWallet(r.pool.QueryRow(ctx,
		"SELECT "+walletColumns+" FROM wallets WHERE id = $1", walletID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrWalletNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get wallet",
			slog.String("wallet_id", walletID.String()),
			slog.Any("err", err),
		)
		return nil, err
	}
	return wallet, nil
}

// Credit increments the balance and appends the ledger entry in one database transaction.
func (r *WalletPGRepository) Credit(
	ctx context.Context,
	walletID uuid.UUID,
	amount decimal.Decimal,
	details models.TransactionDetails,
) (*models.Wallet, *models.Transaction, error) {
	return r.mutate(ctx, walletID, amount, details, `
		UPDATE wallets SET balance = balance + $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+walletColumns)
}

// Debit decrements the balance only when it covers the amount. The condition and the
// decrement are one UPDATE statement, so concurrent debits cannot overdraw the wallet.
func (r *WalletPGRepository) Debit(
	ctx context.Context,
	walletID uuid.UUID,
	amount decimal.Decimal,
	details models.TransactionDetails,
) (*models.Wallet, *models.Transaction, error) {
	return r.mutate(ctx, walletID, amount, details, `
		UPDATE wallets SET balance = balance - $2, updated_at = NOW()
		WHERE id = $1 AND balance >= $2
		RETURNING `+walletColumns)
}

func (r *WalletPGRepository) mutate(
	ctx context.Context,
	walletID uuid.UUID,
	amount decimal.Decimal,
	details models.TransactionDetails,
	update string,
) (*models.Wallet, *models.Transaction, error) {
	if !models.ValidAmount(amount) {
		return nil, nil, ErrInvalidAmount
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		r.logger.Error("Failed to begin transaction",
			slog.String("wallet_id", walletID.String()),
			slog.Any("err", err),
		)
		return nil, nil, err
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			r.logger.Error("Failed to rollback transaction",
				slog.String("wallet_id", walletID.String()),
				slog.Any("err", err),
			)
		}
	}()

	wallet, err := scanWallet(tx.QueryRow(ctx, update, walletID, amount))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, explainNoMatch(ctx, tx, r.logger, walletID)
	}
	if err != nil {
		r.logger.Error("Failed to update wallet balance",
			slog.String("wallet_id", walletID.String()),
			slog.String("type", string(details.Type)),
			slog.Any("err", err),
		)
		return nil, nil, err
	}

	details.WalletID = walletID
	transaction, err := insertTransaction(ctx, tx, amount, details)
	if err != nil {
		if hasPgCode(err, pgUniqueViolation) {
			return nil, nil, ErrDuplicateOrderCode
		}
		r.logger.Error("Failed to insert transaction",
			slog.String("wallet_id", walletID.String()),
			slog.String("type", string(details.Type)),
			slog.Any("amount", amount),
			slog.Any("err", err),
		)
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error("Failed to commit transaction",
			slog.String("wallet_id", walletID.String()),
			slog.Any("err", err),
		)
		return nil, nil, err
	}
	return wallet, transaction, nil
}

// explainNoMatch tells a missing wallet apart from one whose balance did not cover the debit.
func explainNoMatch(ctx context.Context, tx pgx.Tx, logger *slog.Logger, walletID uuid.UUID) error {
	var available decimal.Decimal
	err := tx.QueryRow(ctx, "SELECT balance FROM wallets WHERE id = $1", walletID).Scan(&available)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrWalletNotFound
	}
	if err != nil {
		logger.Error("Failed to re-read wallet",
			slog.String("wallet_id", walletID.String()),
			slog.Any("err", err),
		)
		return err
	}
	return &InsufficientBalanceError{Available: available}
}

func insertTransaction(ctx context.Context, tx pgx.Tx, amount decimal.Decimal, details models.TransactionDetails) (*models.Transaction, error) {
	status := details.Status
	if status == "" {
		status = models.StatusPaid
	}
	return scanTransaction(tx.QueryRow(ctx, `
		INSERT INTO transactions (id, wallet_id, user_id, amount, type, status, description, order_code)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''))
		RETURNING `+transactionColumns,
		uuid.New(), details.WalletID, details.UserID, amount,
		string(details.Type), string(status), details.Description, details.OrderCode,
	))
}

// AppendTransaction records an audit-only entry that does not touch any balance.
func (r *WalletPGRepository) AppendTransaction(ctx context.Context, amount decimal.Decimal, details models.TransactionDetails) (*models.Transaction, error) {
	if !models.ValidAmount(amount) {
		return nil, ErrInvalidAmount
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			r.logger.Error("Failed to rollback transaction",
				slog.String("wallet_id", details.WalletID.String()),
				slog.Any("err", err),
			)
		}
	}()

	transaction, err := insertTransaction(ctx, tx, amount, details)
	switch {
	case hasPgCode(err, pgUniqueViolation):
		return nil, ErrDuplicateOrderCode
	case hasPgCode(err, pgForeignKeyViolation):
		return nil, ErrWalletNotFound
	case err != nil:
		r.logger.Error("Failed to append transaction",
			slog.String("wallet_id", details.WalletID.String()),
			slog.String("type", string(details.Type)),
			slog.Any("err", err),
		)
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return transaction, nil
}

func (r *WalletPGRepository) FindTransactionByOrderCode(ctx context.Context, orderCode string) (*models.Transaction, error) {
	transaction, err := scanTransaction(r.pool.QueryRow(ctx,
		"SELECT "+transactionColumns+" FROM transactions WHERE order_code = $1", orderCode))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}
	return transaction, nil
}

// ListTransactions returns a wallet's entries newest first. A nil skip or take leaves that bound off.
func (r *WalletPGRepository) ListTransactions(ctx context.Context, walletID uuid.UUID, skip, take *int) ([]models.Transaction, int64, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+transactionColumns+` FROM transactions
		WHERE wallet_id = $1
		ORDER BY created_at DESC, id DESC
		OFFSET $2 LIMIT $3`, walletID, skip, take)
	if err != nil {
		r.logger.Error("Failed to list transactions",
			slog.String("wallet_id", walletID.String()),
			slog.Any("err", err),
		)
		return nil, 0, err
	}
	transactions, err := collectTransactions(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM transactions WHERE wallet_id = $1", walletID).Scan(&total); err != nil {
		return nil, 0, err
	}
	return transactions, total, nil
}

func (r *WalletPGRepository) ListAllTransactions(ctx context.Context) ([]models.Transaction, error) {
	rows, err := r.pool.Query(ctx, "SELECT "+transactionColumns+" FROM transactions ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, err
	}
	return collectTransactions(rows)
}

func collectTransactions(rows pgx.Rows) ([]models.Transaction, error) {
	defer rows.Close()
	transactions := make([]models.Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *t)
	}
	return transactions, rows.Err()
}

var periodFormats = map[models.GroupBy]string{
	models.GroupByDay:   "YYYY-MM-DD",
	models.GroupByWeek:  `IYYY-"W"IW`,
	models.GroupByMonth: "YYYY-MM",
}

// AggregateByPeriod buckets a wallet's entries by UTC day, ISO week or month. Only
// periods that contain at least one matching entry are returned, oldest first.
func (r *WalletPGRepository) AggregateByPeriod(ctx context.Context, walletID uuid.UUID, q models.AggregateQuery) ([]models.PeriodBucket, error) {
	format, ok := periodFormats[q.GroupBy]
	if !ok {
		return nil, fmt.Errorf("unsupported grouping %q", q.GroupBy)
	}
	var txType, status *string
	if q.Type != nil {
		s := string(*q.Type)
		txType = &s
	}
	if q.Status != nil {
		s := string(*q.Status)
		status = &s
	}

	rows, err := r.pool.Query(ctx, `
		SELECT
			to_char(created_at AT TIME ZONE 'UTC', $6) AS period,
			COALESCE(SUM(amount) FILTER (WHERE type = 'DEPOSIT'), 0) AS inflow,
			COALESCE(SUM(amount) FILTER (WHERE type IN ('WITHDRAWAL', 'PAYMENT')), 0) AS outflow,
			COUNT(*) AS transactions
		FROM transactions
		WHERE wallet_id = $1
			AND created_at >= $2 AND created_at <= $3
			AND ($4::text IS NULL OR type = $4)
			AND ($5::text IS NULL OR status = $5)
		GROUP BY period
		ORDER BY period`,
		walletID, q.From, q.To, txType, status, format)
	if err != nil {
		r.logger.Error("Failed to aggregate transactions",
			slog.String("wallet_id", walletID.String()),
			slog.Any("err", err),
		)
		return nil, err
	}
	defer rows.Close()

	buckets := make([]models.PeriodBucket, 0)
	for rows.Next() {
		var b models.PeriodBucket
		if err := rows.Scan(&b.Period, &b.Inflow, &b.Outflow, &b.Transactions); err != nil {
			return nil, err
		}
		b.NetFlow = b.Inflow.Sub(b.Outflow)
		buckets = append(buckets, b)
	}
	return buckets, rows.Err()
}
