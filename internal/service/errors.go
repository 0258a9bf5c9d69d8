package service

import (
	"errors"
	"fmt"

	"gallery_wallet/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrValidation          = errors.New("validation error")
	ErrSelfPurchase        = fmt.Errorf("%w: you cannot purchase your own item", ErrValidation)
	ErrNotForSale          = fmt.Errorf("%w: this artwork is not for sale", ErrValidation)
	ErrInvalidPrice        = fmt.Errorf("%w: invalid price", ErrValidation)
	ErrTicketNotConfigured = fmt.Errorf("%w: this exhibition does not have ticket configuration", ErrValidation)
	ErrMissingSeller       = fmt.Errorf("%w: item does not have a seller", ErrValidation)

	ErrReservedOrderCode   = fmt.Errorf("%w: order code uses a reserved prefix", ErrValidation)

	// ErrOrderCodeConflict means the order code is already recorded for a different ledger entry.
	ErrOrderCodeConflict = fmt.Errorf("%w: recorded for a different entry", repository.ErrDuplicateOrderCode)

	ErrEntityNotFound = errors.New("entity not found")

	ErrPartialSettlement = errors.New("settlement partially completed")
)

func validationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// PartialSettlementError reports a settlement that charged the buyer but did not finish.
// The money already moved is not rolled back; IncidentID points at the reconciliation record,
// or is uuid.Nil when the record could not be written.
type PartialSettlementError struct {
	IncidentID uuid.UUID
	OrderCode  string
	Stage      string
	Err        error
}

func (e *PartialSettlementError) Error() string {
	return fmt.Sprintf("settlement partially completed at %s (order %s): %v", e.Stage, e.OrderCode, e.Err)
}

func (e *PartialSettlementError) Unwrap() error {
	return e.Err
}

func (e *PartialSettlementError) Is(target error) bool {
	return target == ErrPartialSettlement
}
