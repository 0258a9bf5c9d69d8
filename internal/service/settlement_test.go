package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"gallery_wallet/internal/models"
	"gallery_wallet/internal/repository"
	"gallery_wallet/internal/service"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var (
	artCode = service.SettlementOrderCode(models.SettlementArtwork, "art-1", "buyer")
	tktCode = service.SettlementOrderCode(models.SettlementTicket, "ex-1", "visitor")
)

func sellingArtwork(price string) *models.Artwork {
	return &models.Artwork{
		ID:       "art-1",
		SellerID: "artist",
		Title:    "Sunrise",
		Price:    dec(price),
		Status:   models.ArtworkStatusSelling,
	}
}

func TestSplitCommission(t *testing.T) {
	cases := []struct {
		gross, commission, net string
	}{
		{"100", "3", "97"},
		{"0.01", "0", "0.01"},
		{"0.5", "0.02", "0.48"},
		{"19.99", "0.6", "19.39"},
		{"33.33", "1", "32.33"},
		{"12345.67", "370.37", "11975.3"},
	}
	for _, tc := range cases {
		b := service.SplitCommission(dec(tc.gross))
		assert.True(t, b.Commission.Equal(dec(tc.commission)), "commission of %s: %s", tc.gross, b.Commission)
		assert.True(t, b.Net.Equal(dec(tc.net)), "net of %s: %s", tc.gross, b.Net)
		assert.True(t, b.Commission.Add(b.Net).Equal(b.Gross), "commission + net must equal gross for %s", tc.gross)
		assert.True(t, b.Rate.Equal(dec("0.03")))
	}
}

func TestSplitCommission_SumsToGrossForEveryCent(t *testing.T) {
	for cents := int64(1); cents <= 10000; cents += 7 {
		gross := decimal.New(cents, -2)
		b := service.SplitCommission(gross)
		assert.True(t, b.Commission.Add(b.Net).Equal(gross))
		assert.False(t, b.Net.IsNegative())
		assert.True(t, b.Commission.Exponent() >= -2)
	}
}

func TestSettlementOrderCode(t *testing.T) {
	code := service.SettlementOrderCode(models.SettlementArtwork, "a1", "b1")
	assert.Equal(t, code, service.SettlementOrderCode(models.SettlementArtwork, "a1", "b1"))
	assert.True(t, strings.HasPrefix(code, "ART-"))
	assert.True(t, strings.HasPrefix(service.SettlementOrderCode(models.SettlementTicket, "a1", "b1"), "TKT-"))
	assert.True(t, service.IsReservedOrderCode(code))
	assert.True(t, service.IsReservedOrderCode(code+"-SALE"))
	assert.False(t, service.IsReservedOrderCode("gateway-1"))

	// идентификаторы с дефисами не должны склеиваться в один код
	assert.NotEqual(t,
		service.SettlementOrderCode(models.SettlementArtwork, "x", "y-z"),
		service.SettlementOrderCode(models.SettlementArtwork, "x-y", "z"))
	assert.NotEqual(t,
		service.SettlementOrderCode(models.SettlementArtwork, "a1", "b2"),
		service.SettlementOrderCode(models.SettlementArtwork, "a1b", "2"))
}

func TestPurchaseArtwork_Success(t *testing.T) {
	f := newFixture(t)
	artwork := sellingArtwork("100")
	buyer := newWallet("buyer", "100")
	seller := newWallet("artist", "0")

	f.artworks.EXPECT().GetArtwork(gomock.Any(), "art-1").Return(artwork, nil)
	f.ledger.EXPECT().GetOrCreateWallet(gomock.Any(), "buyer").Return(buyer, nil)
	f.ledger.EXPECT().GetWalletByUserID(gomock.Any(), "buyer").Return(buyer, nil)
	f.unusedOrderCode(artCode)
	f.ledger.EXPECT().Debit(gomock.Any(), buyer.ID, decEq("100"), gomock.Any()).
		DoAndReturn(func(ctx context.Context, walletID uuid.UUID, amount decimal.Decimal, details models.TransactionDetails) (*models.Wallet, *models.Transaction, error) {
			assert.Equal(t, artCode, details.OrderCode)
			assert.Equal(t, "Purchase artwork: Sunrise", details.Description)
			return ledgerTx("0")(ctx, walletID, amount, details)
		})
	f.ledger.EXPECT().GetOrCreateWallet(gomock.Any(), "artist").Return(seller, nil)
	f.ledger.EXPECT().Credit(gomock.Any(), seller.ID, decEq("97"), gomock.Any()).
		DoAndReturn(func(ctx context.Context, walletID uuid.UUID, amount decimal.Decimal, details models.TransactionDetails) (*models.Wallet, *models.Transaction, error) {
			assert.Equal(t, models.TransactionSale, details.Type)
			assert.Equal(t, artCode+"-SALE", details.OrderCode)
			assert.Equal(t, "artist", details.UserID)
			return ledgerTx("97")(ctx, walletID, amount, details)
		})
	f.ledger.EXPECT().AppendTransaction(gomock.Any(), decEq("3"), gomock.Any()).
		DoAndReturn(func(ctx context.Context, amount decimal.Decimal, details models.TransactionDetails) (*models.Transaction, error) {
			assert.Equal(t, models.TransactionCommission, details.Type)
			assert.Equal(t, seller.ID, details.WalletID)
			assert.Equal(t, artCode+"-COMMISSION", details.OrderCode)
			return &models.Transaction{ID: uuid.New(), Amount: amount, Type: details.Type}, nil
		})
	owned := *artwork
	owned.Buyers = []string{"buyer"}
	f.artworks.EXPECT().AddBuyer(gomock.Any(), "art-1", "buyer").Return(&owned, nil)

	res, err := f.settlement.PurchaseArtwork(context.Background(), "art-1", "buyer")
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentSuccess, res.Status)
	assert.False(t, res.AlreadyOwned)
	assert.Equal(t, []string{"buyer"}, res.Artwork.Buyers)
	assert.True(t, res.Breakdown.Commission.Equal(dec("3")))
	assert.True(t, res.Breakdown.Net.Equal(dec("97")))
}

func TestPurchaseArtwork_DeclinedWhenBalanceTooLow(t *testing.T) {
	f := newFixture(t)
	buyer := newWallet("buyer", "50")

	f.artworks.EXPECT().GetArtwork(gomock.Any(), "art-1").Return(sellingArtwork("100"), nil)
	f.ledger.EXPECT().GetOrCreateWallet(gomock.Any(), "buyer").Return(buyer, nil)
	f.ledger.EXPECT().GetWalletByUserID(gomock.Any(), "buyer").Return(buyer, nil)
	f.unusedOrderCode(artCode)
	f.ledger.EXPECT().Debit(gomock.Any(), buyer.ID, decEq("100"), gomock.Any()).
		Return(nil, nil, &repository.InsufficientBalanceError{Available: dec("50")})

	res, err := f.settlement.PurchaseArtwork(context.Background(), "art-1", "buyer")
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentFailed, res.Status)
	assert.Equal(t, "Insufficient balance. Available: 50", res.Message)
	assert.Nil(t, res.Breakdown)
}

func TestPurchaseArtwork_NewBuyerWithoutWalletIsDeclined(t *testing.T) {
	f := newFixture(t)
	buyer := newWallet("newcomer", "0")

	f.artworks.EXPECT().GetArtwork(gomock.Any(), "art-1").Return(sellingArtwork("10"), nil)
	f.ledger.EXPECT().GetOrCreateWallet(gomock.Any(), "newcomer").Return(buyer, nil)
	f.ledger.EXPECT().GetWalletByUserID(gomock.Any(), "newcomer").Return(buyer, nil)
	f.unusedOrderCode(service.SettlementOrderCode(models.SettlementArtwork, "art-1", "newcomer"))
	f.ledger.EXPECT().Debit(gomock.Any(), buyer.ID, gomock.Any(), gomock.Any()).
		Return(nil, nil, &repository.InsufficientBalanceError{Available: decimal.Zero})

	res, err := f.settlement.PurchaseArtwork(context.Background(), "art-1", "newcomer")
	assert.NoError(t, err)
	assert.Equal(t, "Insufficient balance. Available: 0", res.Message)
}

func TestPurchaseArtwork_AlreadyOwnedMovesNoMoney(t *testing.T) {
	f := newFixture(t)
	artwork := sellingArtwork("100")
	artwork.Buyers = []string{"buyer"}
	artwork.Status = "sold"

	f.artworks.EXPECT().GetArtwork(gomock.Any(), "art-1").Return(artwork, nil)

	res, err := f.settlement.PurchaseArtwork(context.Background(), "art-1", "buyer")
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentSuccess, res.Status)
	assert.True(t, res.AlreadyOwned)
	assert.Equal(t, artCode, res.OrderCode)
}

func TestPurchaseArtwork_Rejections(t *testing.T) {
	notForSale := sellingArtwork("100")
	notForSale.Status = "draft"
	free := sellingArtwork("0")
	subCent := sellingArtwork("10.005")
	orphan := sellingArtwork("100")
	orphan.SellerID = ""

	cases := []struct {
		name    string
		artwork *models.Artwork
		buyer   string
		want    error
	}{
		{"self purchase", sellingArtwork("100"), "artist", service.ErrSelfPurchase},
		{"not for sale", notForSale, "buyer", service.ErrNotForSale},
		{"zero price", free, "buyer", service.ErrInvalidPrice},
		{"sub-cent price", subCent, "buyer", service.ErrInvalidPrice},
		{"no seller", orphan, "buyer", service.ErrMissingSeller},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			f.artworks.EXPECT().GetArtwork(gomock.Any(), "art-1").Return(tc.artwork, nil)

			res, err := f.settlement.PurchaseArtwork(context.Background(), "art-1", tc.buyer)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, tc.want)
			assert.ErrorIs(t, err, service.ErrValidation)
		})
	}
}

func TestPurchaseArtwork_NotFound(t *testing.T) {
	f := newFixture(t)
	f.artworks.EXPECT().GetArtwork(gomock.Any(), "missing").Return(nil, repository.ErrArtworkNotFound)

	_, err := f.settlement.PurchaseArtwork(context.Background(), "missing", "buyer")
	assert.ErrorIs(t, err, service.ErrEntityNotFound)
	assert.ErrorIs(t, err, repository.ErrArtworkNotFound)
}

func TestPurchaseArtwork_MissingBuyer(t *testing.T) {
	f := newFixture(t)
	_, err := f.settlement.PurchaseArtwork(context.Background(), "art-1", "")
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestPurchaseArtwork_GrantFailureOpensIncident(t *testing.T) {
	f := newFixture(t)
	buyer := newWallet("buyer", "100")
	seller := newWallet("artist", "0")
	grantErr := errors.New("catalog unavailable")

	f.artworks.EXPECT().GetArtwork(gomock.Any(), "art-1").Return(sellingArtwork("100"), nil)
	f.ledger.EXPECT().GetOrCreateWallet(gomock.Any(), "buyer").Return(buyer, nil)
	f.ledger.EXPECT().GetWalletByUserID(gomock.Any(), "buyer").Return(buyer, nil)
	f.unusedOrderCode(artCode)
	f.ledger.EXPECT().Debit(gomock.Any(), buyer.ID, gomock.Any(), gomock.Any()).DoAndReturn(ledgerTx("0"))
	f.ledger.EXPECT().GetOrCreateWallet(gomock.Any(), "artist").Return(seller, nil)
	f.ledger.EXPECT().Credit(gomock.Any(), seller.ID, gomock.Any(), gomock.Any()).DoAndReturn(ledgerTx("97"))
	f.ledger.EXPECT().AppendTransaction(gomock.Any(), gomock.Any(), gomock.Any()).Return(&models.Transaction{}, nil)
	f.artworks.EXPECT().AddBuyer(gomock.Any(), "art-1", "buyer").Return(nil, grantErr)

	incidentID := uuid.New()
	f.incidents.EXPECT().Record(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, inc *models.SettlementIncident) error {
			assert.Equal(t, models.SettlementArtwork, inc.Kind)
			assert.Equal(t, artCode, inc.OrderCode)
			assert.Equal(t, models.IncidentOpen, inc.Status)
			assert.True(t, inc.Net.Equal(dec("97")))
			assert.Contains(t, inc.Error, "catalog unavailable")
			inc.ID = incidentID
			return nil
		})
	f.events.EXPECT().IncidentOpened(gomock.Any(), gomock.Any())

	res, err := f.settlement.PurchaseArtwork(context.Background(), "art-1", "buyer")
	assert.Nil(t, res)
	assert.ErrorIs(t, err, service.ErrPartialSettlement)
	assert.ErrorIs(t, err, grantErr)

	var partial *service.PartialSettlementError
	if assert.ErrorAs(t, err, &partial) {
		assert.Equal(t, incidentID, partial.IncidentID)
		assert.Equal(t, "access grant", partial.Stage)
	}
}

func TestPurchaseArtwork_GrantFailureWithoutIncidentRecord(t *testing.T) {
	f := newFixture(t)
	buyer := newWallet("buyer", "100")
	seller := newWallet("artist", "0")

	f.artworks.EXPECT().GetArtwork(gomock.Any(), "art-1").Return(sellingArtwork("100"), nil)
	f.ledger.EXPECT().GetOrCreateWallet(gomock.Any(), "buyer").Return(buyer, nil)
	f.ledger.EXPECT().GetWalletByUserID(gomock.Any(), "buyer").Return(buyer, nil)
	f.unusedOrderCode(artCode)
	f.ledger.EXPECT().Debit(gomock.Any(), buyer.ID, gomock.Any(), gomock.Any()).DoAndReturn(ledgerTx("0"))
	f.ledger.EXPECT().GetOrCreateWallet(gomock.Any(), "artist").Return(seller, nil)
	f.ledger.EXPECT().Credit(gomock.Any(), seller.ID, gomock.Any(), gomock.Any()).DoAndReturn(ledgerTx("97"))
	f.ledger.EXPECT().AppendTransaction(gomock.Any(), gomock.Any(), gomock.Any()).Return(&models.Transaction{}, nil)
	f.artworks.EXPECT().AddBuyer(gomock.Any(), "art-1", "buyer").Return(nil, errors.New("catalog unavailable"))
	f.incidents.EXPECT().Record(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, inc *models.SettlementIncident) error {
			inc.ID = uuid.New()
			return errors.New("db down")
		})

	_, err := f.settlement.PurchaseArtwork(context.Background(), "art-1", "buyer")
	var partial *service.PartialSettlementError
	if assert.ErrorAs(t, err, &partial) {
		assert.Equal(t, uuid.Nil, partial.IncidentID)
		assert.Equal(t, artCode, partial.OrderCode)
	}
}

func TestPurchaseArtwork_RetryAfterChargeDoesNotDebitAgain(t *testing.T) {
	f := newFixture(t)
	// покупатель уже не может оплатить повторно, но списание прошло раньше
	buyer := newWallet("buyer", "0")
	seller := newWallet("artist", "97")

	f.artworks.EXPECT().GetArtwork(gomock.Any(), "art-1").Return(sellingArtwork("100"), nil)
	f.ledger.EXPECT().GetOrCreateWallet(gomock.Any(), "buyer").Return(buyer, nil)
	f.ledger.EXPECT().GetWalletByUserID(gomock.Any(), "buyer").Return(buyer, nil)
	f.recordedOrderCode(artCode, buyer.ID, models.TransactionPayment, "100")
	f.ledger.EXPECT().GetOrCreateWallet(gomock.Any(), "artist").Return(seller, nil)
	f.ledger.EXPECT().Credit(gomock.Any(), seller.ID, gomock.Any(), gomock.Any()).Return(nil, nil, repository.ErrDuplicateOrderCode)
	f.recordedOrderCode(artCode+"-SALE", seller.ID, models.TransactionSale, "97")
	f.ledger.EXPECT().AppendTransaction(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, repository.ErrDuplicateOrderCode)
	f.recordedOrderCode(artCode+"-COMMISSION", seller.ID, models.TransactionCommission, "3")
	f.artworks.EXPECT().AddBuyer(gomock.Any(), "art-1", "buyer").Return(sellingArtwork("100"), nil)

	res, err := f.settlement.PurchaseArtwork(context.Background(), "art-1", "buyer")
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentSuccess, res.Status)
}

func TestPurchaseArtwork_ForeignEntryUnderSettlementCode(t *testing.T) {
	cases := []struct {
		name   string
		expect func(f *fixture, buyer, seller *models.Wallet)
	}{
		{"sale code held by a deposit", func(f *fixture, buyer, seller *models.Wallet) {
			f.ledger.EXPECT().Credit(gomock.Any(), seller.ID, gomock.Any(), gomock.Any()).Return(nil, nil, repository.ErrDuplicateOrderCode)
			f.recordedOrderCode(artCode+"-SALE", buyer.ID, models.TransactionDeposit, "1")
		}},
		{"commission code with another amount", func(f *fixture, buyer, seller *models.Wallet) {
			f.ledger.EXPECT().Credit(gomock.Any(), seller.ID, gomock.Any(), gomock.Any()).DoAndReturn(ledgerTx("97"))
			f.ledger.EXPECT().AppendTransaction(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, repository.ErrDuplicateOrderCode)
			f.recordedOrderCode(artCode+"-COMMISSION", seller.ID, models.TransactionCommission, "0.01")
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			buyer := newWallet("buyer", "100")
			seller := newWallet("artist", "0")

			f.artworks.EXPECT().GetArtwork(gomock.Any(), "art-1").Return(sellingArtwork("100"), nil)
			f.ledger.EXPECT().GetOrCreateWallet(gomock.Any(), "buyer").Return(buyer, nil)
			f.ledger.EXPECT().GetWalletByUserID(gomock.Any(), "buyer").Return(buyer, nil)
			f.unusedOrderCode(artCode)
			f.ledger.EXPECT().Debit(gomock.Any(), buyer.ID, gomock.Any(), gomock.Any()).DoAndReturn(ledgerTx("0"))
			f.ledger.EXPECT().GetOrCreateWallet(gomock.Any(), "artist").Return(seller, nil)
			tc.expect(f, buyer, seller)
			f.incidents.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil)
			f.events.EXPECT().IncidentOpened(gomock.Any(), gomock.Any())

			res, err := f.settlement.PurchaseArtwork(context.Background(), "art-1", "buyer")
			assert.Nil(t, res)
			assert.ErrorIs(t, err, service.ErrPartialSettlement)
			assert.ErrorIs(t, err, service.ErrOrderCodeConflict)

			var partial *service.PartialSettlementError
			if assert.ErrorAs(t, err, &partial) {
				assert.Equal(t, "seller payout", partial.Stage)
			}
		})
	}
}

func TestPurchaseTicket_Paid(t *testing.T) {
	f := newFixture(t)
	exhibition := &models.Exhibition{
		ID:          "ex-1",
		OrganizerID: "curator",
		Name:        "Light",
		Ticket:      &models.Ticket{RequiresPayment: true, Price: dec("20")},
	}
	buyer := newWallet("visitor", "50")
	organizer := newWallet("curator", "0")

	f.exhibitions.EXPECT().GetExhibition(gomock.Any(), "ex-1").Return(exhibition, nil)
	f.ledger.EXPECT().GetOrCreateWallet(gomock.Any(), "visitor").Return(buyer, nil)
	f.ledger.EXPECT().GetWalletByUserID(gomock.Any(), "visitor").Return(buyer, nil)
	f.unusedOrderCode(tktCode)
	f.ledger.EXPECT().Debit(gomock.Any(), buyer.ID, decEq("20"), gomock.Any()).DoAndReturn(ledgerTx("30"))
	f.ledger.EXPECT().GetOrCreateWallet(gomock.Any(), "curator").Return(organizer, nil)
	f.ledger.EXPECT().Credit(gomock.Any(), organizer.ID, decEq("19.4"), gomock.Any()).DoAndReturn(ledgerTx("19.4"))
	f.ledger.EXPECT().AppendTransaction(gomock.Any(), decEq("0.6"), gomock.Any()).Return(&models.Transaction{}, nil)
	f.exhibitions.EXPECT().RegisterTicketHolder(gomock.Any(), "ex-1", "visitor").Return(exhibition, nil)

	res, err := f.settlement.PurchaseTicket(context.Background(), "ex-1", "visitor")
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentSuccess, res.Status)
	assert.Equal(t, tktCode, res.OrderCode)
	assert.Equal(t, exhibition, res.Exhibition)
}

func TestPurchaseTicket_FreeSkipsPayment(t *testing.T) {
	f := newFixture(t)
	exhibition := &models.Exhibition{ID: "ex-1", OrganizerID: "curator", Ticket: &models.Ticket{}}

	f.exhibitions.EXPECT().GetExhibition(gomock.Any(), "ex-1").Return(exhibition, nil)
	f.exhibitions.EXPECT().RegisterTicketHolder(gomock.Any(), "ex-1", "visitor").Return(exhibition, nil)

	res, err := f.settlement.PurchaseTicket(context.Background(), "ex-1", "visitor")
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentSuccess, res.Status)
	assert.Nil(t, res.Breakdown)
}

func TestPurchaseTicket_Rejections(t *testing.T) {
	cases := []struct {
		name       string
		exhibition *models.Exhibition
		want       error
	}{
		{"no ticket", &models.Exhibition{ID: "ex-1", OrganizerID: "curator"}, service.ErrTicketNotConfigured},
		{"organizer", &models.Exhibition{ID: "ex-1", OrganizerID: "visitor", Ticket: &models.Ticket{}}, service.ErrSelfPurchase},
		{"paid without price", &models.Exhibition{ID: "ex-1", OrganizerID: "curator", Ticket: &models.Ticket{RequiresPayment: true}}, service.ErrInvalidPrice},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			f.exhibitions.EXPECT().GetExhibition(gomock.Any(), "ex-1").Return(tc.exhibition, nil)

			_, err := f.settlement.PurchaseTicket(context.Background(), "ex-1", "visitor")
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestPurchaseTicket_AlreadyRegistered(t *testing.T) {
	f := newFixture(t)
	exhibition := &models.Exhibition{
		ID:          "ex-1",
		OrganizerID: "curator",
		Ticket:      &models.Ticket{RequiresPayment: true, Price: dec("20"), RegisteredUsers: []string{"visitor"}},
	}
	f.exhibitions.EXPECT().GetExhibition(gomock.Any(), "ex-1").Return(exhibition, nil)

	res, err := f.settlement.PurchaseTicket(context.Background(), "ex-1", "visitor")
	assert.NoError(t, err)
	assert.True(t, res.AlreadyOwned)
}

func TestVerifyArtworkAccess(t *testing.T) {
	f := newFixture(t)
	artwork := sellingArtwork("100")
	artwork.Buyers = []string{"buyer"}
	f.artworks.EXPECT().GetArtwork(gomock.Any(), "art-1").Return(artwork, nil).Times(3)

	for user, want := range map[string]bool{"artist": true, "buyer": true, "stranger": false} {
		ok, err := f.settlement.VerifyArtworkAccess(context.Background(), "art-1", user)
		assert.NoError(t, err)
		assert.Equal(t, want, ok, user)
	}
}

func TestReconcileIncidents(t *testing.T) {
	f := newFixture(t)
	seller := newWallet("artist", "97")
	fixed := models.SettlementIncident{
		ID: uuid.New(), Kind: models.SettlementArtwork, EntityID: "art-1", BuyerID: "buyer", SellerID: "artist",
		Gross: dec("100"), Commission: dec("3"), Net: dec("97"), OrderCode: artCode, Status: models.IncidentOpen,
	}
	stuck := models.SettlementIncident{
		ID: uuid.New(), Kind: models.SettlementTicket, EntityID: "ex-1", BuyerID: "visitor", SellerID: "artist",
		Gross: dec("20"), Commission: dec("0.6"), Net: dec("19.4"), OrderCode: tktCode, Status: models.IncidentOpen,
	}
	stillDown := errors.New("still down")

	f.incidents.EXPECT().ListOpen(gomock.Any(), 10).Return([]models.SettlementIncident{fixed, stuck}, nil)
	f.ledger.EXPECT().GetOrCreateWallet(gomock.Any(), "artist").Return(seller, nil).Times(2)
	f.ledger.EXPECT().Credit(gomock.Any(), seller.ID, gomock.Any(), gomock.Any()).Return(nil, nil, repository.ErrDuplicateOrderCode).Times(2)
	f.ledger.EXPECT().AppendTransaction(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, repository.ErrDuplicateOrderCode).Times(2)
	f.recordedOrderCode(artCode+"-SALE", seller.ID, models.TransactionSale, "97")
	f.recordedOrderCode(artCode+"-COMMISSION", seller.ID, models.TransactionCommission, "3")
	f.recordedOrderCode(tktCode+"-SALE", seller.ID, models.TransactionSale, "19.4")
	f.recordedOrderCode(tktCode+"-COMMISSION", seller.ID, models.TransactionCommission, "0.6")
	f.artworks.EXPECT().AddBuyer(gomock.Any(), "art-1", "buyer").Return(sellingArtwork("100"), nil)
	f.exhibitions.EXPECT().RegisterTicketHolder(gomock.Any(), "ex-1", "visitor").Return(nil, stillDown)
	f.incidents.EXPECT().MarkResolved(gomock.Any(), fixed.ID).Return(nil)
	f.incidents.EXPECT().RecordAttempt(gomock.Any(), stuck.ID, stillDown).Return(nil)
	f.events.EXPECT().IncidentResolved(gomock.Any(), gomock.Any()).
		Do(func(ctx context.Context, inc *models.SettlementIncident) {
			assert.Equal(t, fixed.ID, inc.ID)
			assert.Equal(t, models.IncidentResolved, inc.Status)
			assert.NotNil(t, inc.ResolvedAt)
		})

	resolved, err := f.settlement.ReconcileIncidents(context.Background(), 10)
	assert.NoError(t, err)
	assert.Equal(t, 1, resolved)
}

func TestReconcileIncidents_ListFailure(t *testing.T) {
	f := newFixture(t)
	f.incidents.EXPECT().ListOpen(gomock.Any(), 10).Return(nil, errors.New("db down"))

	_, err := f.settlement.ReconcileIncidents(context.Background(), 10)
	assert.Error(t, err)
}
