package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

var (
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidAmount       = errors.New("amount must be positive with at most 2 decimal places")
	ErrDuplicateOrderCode  = errors.New("order code already used")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrArtworkNotFound     = errors.New("artwork not found")
	ErrExhibitionNotFound  = errors.New("exhibition not found")
	ErrIncidentNotFound    = errors.New("settlement incident not found")

	ErrWithdrawalRequestNotFound  = errors.New("withdrawal request not found")
	ErrWithdrawalRequestProcessed = errors.New("withdrawal request already processed")
)

// InsufficientBalanceError carries the balance observed when a conditional debit matched no row.
type InsufficientBalanceError struct {
	Available decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance. Available: %s", e.Available.String())
}

func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func hasPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
