package service_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"gallery_wallet/internal/mocks"
	"gallery_wallet/internal/models"
	"gallery_wallet/internal/repository"
	"gallery_wallet/internal/service"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type decimalMatcher struct {
	want decimal.Decimal
}

func (m decimalMatcher) Matches(x interface{}) bool {
	d, ok := x.(decimal.Decimal)
	return ok && d.Equal(m.want)
}

func (m decimalMatcher) String() string {
	return fmt.Sprintf("is equal to decimal %s", m.want)
}

func decEq(s string) gomock.Matcher {
	return decimalMatcher{want: decimal.RequireFromString(s)}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newWallet(userID, balance string) *models.Wallet {
	return &models.Wallet{ID: uuid.New(), UserID: userID, Balance: dec(balance)}
}

type fixture struct {
	ledger      *mocks.MockLedgerStore
	artworks    *mocks.MockArtworkCatalog
	exhibitions *mocks.MockExhibitionCatalog
	incidents   *mocks.MockIncidentLog
	events      *mocks.MockEventPublisher

	wallets    *service.WalletService
	payments   *service.PaymentService
	settlement *service.SettlementService
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		ledger:      mocks.NewMockLedgerStore(ctrl),
		artworks:    mocks.NewMockArtworkCatalog(ctrl),
		exhibitions: mocks.NewMockExhibitionCatalog(ctrl),
		incidents:   mocks.NewMockIncidentLog(ctrl),
		events:      mocks.NewMockEventPublisher(ctrl),
	}
	f.events.EXPECT().TransactionCreated(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	f.wallets = service.NewWalletService(f.ledger, f.events, testLogger)
	f.payments = service.NewPaymentService(f.ledger, f.wallets, testLogger)
	f.settlement = service.NewSettlementService(f.ledger, f.wallets, f.payments, f.artworks, f.exhibitions, f.incidents, f.events, testLogger)
	return f
}

// ledgerTx echoes a mutation back as the stored wallet and transaction.
func ledgerTx(balance string) func(ctx context.Context, walletID uuid.UUID, amount decimal.Decimal, details models.TransactionDetails) (*models.Wallet, *models.Transaction, error) {
	return func(_ context.Context, walletID uuid.UUID, amount decimal.Decimal, details models.TransactionDetails) (*models.Wallet, *models.Transaction, error) {
		return &models.Wallet{ID: walletID, UserID: details.UserID, Balance: dec(balance)},
			&models.Transaction{ID: uuid.New(), WalletID: walletID, UserID: details.UserID, Amount: amount, Type: details.Type, Status: details.Status, Description: details.Description, OrderCode: details.OrderCode},
			nil
	}
}

func (f *fixture) unusedOrderCode(code string) *gomock.Call {
	return f.ledger.EXPECT().FindTransactionByOrderCode(gomock.Any(), code).Return(nil, repository.ErrTransactionNotFound)
}

func (f *fixture) recordedOrderCode(code string, walletID uuid.UUID, txType models.TransactionType, amount string) *gomock.Call {
	return f.ledger.EXPECT().FindTransactionByOrderCode(gomock.Any(), code).
		Return(&models.Transaction{ID: uuid.New(), WalletID: walletID, Type: txType, Amount: dec(amount), OrderCode: code}, nil)
}
