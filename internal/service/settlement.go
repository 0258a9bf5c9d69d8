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

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CommissionRate is the platform's share of every paid sale.
var CommissionRate = decimal.RequireFromString("0.03")

const incidentWriteTimeout = 5 * time.Second

// SplitCommission divides a sale price between the platform and the seller. The
// commission is rounded to cents and the seller gets the remainder, so
// Commission + Net always equals Gross.
func SplitCommission(gross decimal.Decimal) models.CommissionBreakdown {
	commission := gross.Mul(CommissionRate).Round(2)
	return models.CommissionBreakdown{
		Gross:      gross,
		Rate:       CommissionRate,
		Commission: commission,
		Net:        gross.Sub(commission),
	}
}

const (
	settlementArtworkPrefix = "ART"
	settlementTicketPrefix  = "TKT"
)

// settlementNamespace scopes the name-based UUIDs behind settlement order codes.
var settlementNamespace = uuid.MustParse("6b0f3c2e-4d1a-5e8b-9c7f-2a3d4e5f6a7b")

// SettlementOrderCode is the idempotency key of one buyer's purchase of one item.
// Ledger rows of the same settlement share it as a prefix. The ids are length-prefixed
// before hashing, so no two (entity, buyer) pairs map to the same code.
func SettlementOrderCode(kind models.SettlementKind, entityID, buyerID string) string {
	prefix := settlementArtworkPrefix
	if kind == models.SettlementTicket {
		prefix = settlementTicketPrefix
	}
	name := fmt.Sprintf("%s:%d:%s:%d:%s", kind, len(entityID), entityID, len(buyerID), buyerID)
	return prefix + "-" + uuid.NewSHA1(settlementNamespace, []byte(name)).String()
}

type settlement struct {
	kind      models.SettlementKind
	entityID  string
	buyerID   string
	sellerID  string
	subject   string
	orderCode string
	breakdown models.CommissionBreakdown
}

func (st settlement) saleOrderCode() string       { return st.orderCode + "-SALE" }
func (st settlement) commissionOrderCode() string { return st.orderCode + "-COMMISSION" }

type SettlementService struct {
	ledger      LedgerStore
	wallets     *WalletService
	payments    *PaymentService
	artworks    ArtworkCatalog
	exhibitions ExhibitionCatalog
	incidents   IncidentLog
	events      EventPublisher
	logger      *slog.Logger
	now         func() time.Time
}

func NewSettlementService(
	ledger LedgerStore,
	wallets *WalletService,
	payments *PaymentService,
	artworks ArtworkCatalog,
	exhibitions ExhibitionCatalog,
	incidents IncidentLog,
	events EventPublisher,
	logger *slog.Logger,
) *SettlementService {
	return &SettlementService{
		ledger:      ledger,
		wallets:     wallets,
		payments:    payments,
		artworks:    artworks,
		exhibitions: exhibitions,
		incidents:   incidents,
		events:      events,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *SettlementService) PurchaseArtwork(ctx context.Context, artworkID, buyerID string) (*models.PurchaseResult, error) {
	if artworkID == "" {
		return nil, validationError("artworkId is required")
	}
	if buyerID == "" {
		return nil, validationError("buyerId is required")
	}
	artwork, err := s.artworks.GetArtwork(ctx, artworkID)
	if err != nil {
		return nil, entityError(err)
	}
	if artwork.SellerID == "" {
		return nil, ErrMissingSeller
	}
	if artwork.SellerID == buyerID {
		return nil, ErrSelfPurchase
	}
	orderCode := SettlementOrderCode(models.SettlementArtwork, artworkID, buyerID)
	if artwork.HasBuyer(buyerID) {
		return &models.PurchaseResult{
			Status:       models.PaymentSuccess,
			Message:      "You have already purchased this artwork",
			AlreadyOwned: true,
			OrderCode:    orderCode,
			Artwork:      artwork,
			PurchasedAt:  s.now(),
		}, nil
	}
	if !artwork.IsSellable() {
		return nil, ErrNotForSale
	}
	if !models.ValidAmount(artwork.Price) {
		return nil, ErrInvalidPrice
	}

	return s.settle(ctx, settlement{
		kind:      models.SettlementArtwork,
		entityID:  artworkID,
		buyerID:   buyerID,
		sellerID:  artwork.SellerID,
		subject:   "artwork: " + artwork.Title,
		orderCode: orderCode,
		breakdown: SplitCommission(artwork.Price),
	}, "Artwork purchased successfully")
}

func (s *SettlementService) PurchaseTicket(ctx context.Context, exhibitionID, buyerID string) (*models.PurchaseResult, error) {
	if exhibitionID == "" {
		return nil, validationError("exhibitionId is required")
	}
	if buyerID == "" {
		return nil, validationError("buyerId is required")
	}
	exhibition, err := s.exhibitions.GetExhibition(ctx, exhibitionID)
	if err != nil {
		return nil, entityError(err)
	}
	if exhibition.Ticket == nil {
		return nil, ErrTicketNotConfigured
	}
	if exhibition.OrganizerID == buyerID {
		return nil, ErrSelfPurchase
	}
	orderCode := SettlementOrderCode(models.SettlementTicket, exhibitionID, buyerID)
	if exhibition.Ticket.HasHolder(buyerID) {
		return &models.PurchaseResult{
			Status:       models.PaymentSuccess,
			Message:      "You already have a ticket for this exhibition",
			AlreadyOwned: true,
			OrderCode:    orderCode,
			Exhibition:   exhibition,
			PurchasedAt:  s.now(),
		}, nil
	}

	if !exhibition.Ticket.RequiresPayment {
		updated, err := s.exhibitions.RegisterTicketHolder(ctx, exhibitionID, buyerID)
		if err != nil {
			return nil, fmt.Errorf("register ticket holder: %w", entityError(err))
		}
		metrics.SettlementsTotal.WithLabelValues(string(models.SettlementTicket), "free").Inc()
		s.logger.Info("Free ticket registered",
			slog.String("exhibition_id", exhibitionID),
			slog.String("buyer_id", buyerID),
		)
		return &models.PurchaseResult{
			Status:      models.PaymentSuccess,
			Message:     "Ticket registered successfully",
			Exhibition:  updated,
			PurchasedAt: s.now(),
		}, nil
	}

	if exhibition.OrganizerID == "" {
		return nil, ErrMissingSeller
	}
	if !models.ValidAmount(exhibition.Ticket.Price) {
		return nil, ErrInvalidPrice
	}

	return s.settle(ctx, settlement{
		kind:      models.SettlementTicket,
		entityID:  exhibitionID,
		buyerID:   buyerID,
		sellerID:  exhibition.OrganizerID,
		subject:   "ticket for exhibition: " + exhibition.Name,
		orderCode: orderCode,
		breakdown: SplitCommission(exhibition.Ticket.Price),
	}, "Ticket purchased successfully")
}

// settle charges the buyer, pays the seller and grants access. Every ledger step is keyed
// by a deterministic order code, so running it again for the same purchase resumes
// where a previous run stopped instead of charging twice.
func (s *SettlementService) settle(ctx context.Context, st settlement, successMessage string) (*models.PurchaseResult, error) {
	declined, err := s.charge(ctx, st)
	if err != nil {
		return nil, err
	}
	if declined != nil {
		return declined, nil
	}

	if err := s.payout(ctx, st); err != nil {
		return nil, s.openIncident(ctx, st, "seller payout", err)
	}

	result := &models.PurchaseResult{
		Status:      models.PaymentSuccess,
		Message:     successMessage,
		OrderCode:   st.orderCode,
		Breakdown:   &st.breakdown,
		PurchasedAt: s.now(),
	}
	if err := s.grantAccess(ctx, st, result); err != nil {
		return nil, s.openIncident(ctx, st, "access grant", err)
	}

	metrics.SettlementsTotal.WithLabelValues(string(st.kind), "success").Inc()
	s.logger.Info("Settlement completed",
		slog.String("kind", string(st.kind)),
		slog.String("entity_id", st.entityID),
		slog.String("buyer_id", st.buyerID),
		slog.String("seller_id", st.sellerID),
		slog.String("order_code", st.orderCode),
		slog.Any("gross", st.breakdown.Gross),
		slog.Any("commission", st.breakdown.Commission),
		slog.Any("net", st.breakdown.Net),
	)
	return result, nil
}

// charge returns a FAILED result when the buyer cannot afford the purchase.
func (s *SettlementService) charge(ctx context.Context, st settlement) (declined *models.PurchaseResult, err error) {
	if _, err := s.wallets.GetWallet(ctx, st.buyerID); err != nil {
		return nil, fmt.Errorf("buyer wallet: %w", err)
	}
	res, err := s.payments.pay(ctx, models.PaymentRequest{
		UserID:      st.buyerID,
		Amount:      st.breakdown.Gross,
		Description: "Purchase " + st.subject,
		OrderCode:   st.orderCode,
	})
	if err != nil {
		return nil, fmt.Errorf("charge buyer: %w", err)
	}
	if res.Status == models.PaymentFailed {
		metrics.SettlementsTotal.WithLabelValues(string(st.kind), "declined").Inc()
		s.logger.Info("Settlement declined",
			slog.String("kind", string(st.kind)),
			slog.String("entity_id", st.entityID),
			slog.String("buyer_id", st.buyerID),
			slog.String("reason", res.Message),
		)
		return &models.PurchaseResult{
			Status:    models.PaymentFailed,
			Message:   res.Message,
			OrderCode: st.orderCode,
		}, nil
	}
	return nil, nil
}

// payout credits the seller with the net amount and records the platform commission.
// A step whose order code is already recorded counts as done only when the recorded
// entry is exactly that step.
func (s *SettlementService) payout(ctx context.Context, st settlement) error {
	seller, err := s.wallets.GetWallet(ctx, st.sellerID)
	if err != nil {
		return fmt.Errorf("seller wallet: %w", err)
	}
	percent := st.breakdown.Rate.Mul(decimal.NewFromInt(100)).String()

	_, _, err = s.wallets.Credit(ctx, seller.ID, st.breakdown.Net, models.TransactionDetails{
		WalletID:    seller.ID,
		UserID:      st.sellerID,
		Type:        models.TransactionSale,
		Status:      models.StatusPaid,
		Description: fmt.Sprintf("Sale of %s (after %s%% commission)", st.subject, percent),
		OrderCode:   st.saleOrderCode(),
	})
	if errors.Is(err, repository.ErrDuplicateOrderCode) {
		err = s.confirmRecorded(ctx, st.saleOrderCode(), seller.ID, models.TransactionSale, st.breakdown.Net)
	}
	if err != nil {
		return fmt.Errorf("credit seller: %w", err)
	}

	if !st.breakdown.Commission.IsPositive() {
		return nil
	}
	tx, err := s.ledger.AppendTransaction(ctx, st.breakdown.Commission, models.TransactionDetails{
		WalletID:    seller.ID,
		UserID:      st.sellerID,
		Type:        models.TransactionCommission,
		Status:      models.StatusPaid,
		Description: fmt.Sprintf("Platform commission (%s%%) on %s", percent, st.subject),
		OrderCode:   st.commissionOrderCode(),
	})
	switch {
	case err == nil:
		s.events.TransactionCreated(ctx, tx, nil)
	case errors.Is(err, repository.ErrDuplicateOrderCode):
		if err := s.confirmRecorded(ctx, st.commissionOrderCode(), seller.ID, models.TransactionCommission, st.breakdown.Commission); err != nil {
			return fmt.Errorf("record commission: %w", err)
		}
	default:
		return fmt.Errorf("record commission: %w", err)
	}
	return nil
}

func (s *SettlementService) confirmRecorded(
	ctx context.Context,
	orderCode string,
	walletID uuid.UUID,
	txType models.TransactionType,
	amount decimal.Decimal,
) error {
	existing, err := s.wallets.findRecorded(ctx, orderCode, walletID, txType, amount)
	if err != nil {
		return err
	}
	if existing == nil {
		return repository.ErrDuplicateOrderCode
	}
	return nil
}

func (s *SettlementService) grantAccess(ctx context.Context, st settlement, result *models.PurchaseResult) error {
	switch st.kind {
	case models.SettlementArtwork:
		artwork, err := s.artworks.AddBuyer(ctx, st.entityID, st.buyerID)
		if err != nil {
			return err
		}
		result.Artwork = artwork
	case models.SettlementTicket:
		exhibition, err := s.exhibitions.RegisterTicketHolder(ctx, st.entityID, st.buyerID)
		if err != nil {
			return err
		}
		result.Exhibition = exhibition
	default:
		return fmt.Errorf("unknown settlement kind %q", st.kind)
	}
	return nil
}

// openIncident records a settlement that moved money but did not finish. Nothing is
// rolled back; the reconciler completes the remaining steps.
func (s *SettlementService) openIncident(ctx context.Context, st settlement, stage string, cause error) error {
	s.logger.Error("Settlement partially completed",
		slog.String("kind", string(st.kind)),
		slog.String("entity_id", st.entityID),
		slog.String("buyer_id", st.buyerID),
		slog.String("seller_id", st.sellerID),
		slog.String("order_code", st.orderCode),
		slog.String("stage", stage),
		slog.Any("err", cause),
	)
	metrics.SettlementsTotal.WithLabelValues(string(st.kind), "partial").Inc()

	inc := &models.SettlementIncident{
		Kind:       st.kind,
		EntityID:   st.entityID,
		BuyerID:    st.buyerID,
		SellerID:   st.sellerID,
		Gross:      st.breakdown.Gross,
		Commission: st.breakdown.Commission,
		Net:        st.breakdown.Net,
		OrderCode:  st.orderCode,
		Error:      fmt.Sprintf("%s: %v", stage, cause),
		Status:     models.IncidentOpen,
	}
	// the request context may already be cancelled, which is often why the step failed
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), incidentWriteTimeout)
	defer cancel()
	var incidentID uuid.UUID
	if err := s.incidents.Record(rctx, inc); err != nil {
		s.logger.Error("Failed to record settlement incident",
			slog.String("order_code", st.orderCode),
			slog.Any("err", err),
		)
	} else {
		incidentID = inc.ID
		s.events.IncidentOpened(rctx, inc)
	}

	return &PartialSettlementError{
		IncidentID: incidentID,
		OrderCode:  st.orderCode,
		Stage:      stage,
		Err:        cause,
	}
}

// VerifyArtworkAccess reports whether the user may download the artwork: its seller or any buyer.
func (s *SettlementService) VerifyArtworkAccess(ctx context.Context, artworkID, userID string) (bool, error) {
	if artworkID == "" || userID == "" {
		return false, validationError("artworkId and userId are required")
	}
	artwork, err := s.artworks.GetArtwork(ctx, artworkID)
	if err != nil {
		return false, entityError(err)
	}
	return artwork.SellerID == userID || artwork.HasBuyer(userID), nil
}

// ReconcileIncidents finishes up to limit open incidents and returns how many were resolved.
// Incidents that fail again stay open with their attempt count bumped.
func (s *SettlementService) ReconcileIncidents(ctx context.Context, limit int) (int, error) {
	incidents, err := s.incidents.ListOpen(ctx, limit)
	if err != nil {
		return 0, fmt.Errorf("list open incidents: %w", err)
	}
	metrics.OpenIncidents.Set(float64(len(incidents)))

	resolved := 0
	for i := range incidents {
		if err := ctx.Err(); err != nil {
			return resolved, err
		}
		inc := &incidents[i]
		st := settlement{
			kind:      inc.Kind,
			entityID:  inc.EntityID,
			buyerID:   inc.BuyerID,
			sellerID:  inc.SellerID,
			subject:   fmt.Sprintf("%s %s", inc.Kind, inc.EntityID),
			orderCode: inc.OrderCode,
			breakdown: models.CommissionBreakdown{
				Gross:      inc.Gross,
				Rate:       CommissionRate,
				Commission: inc.Commission,
				Net:        inc.Net,
			},
		}

		err := s.payout(ctx, st)
		if err == nil {
			err = s.grantAccess(ctx, st, &models.PurchaseResult{})
		}
		if err != nil {
			s.logger.Warn("Settlement incident still unresolved",
				slog.String("incident_id", inc.ID.String()),
				slog.String("order_code", inc.OrderCode),
				slog.Int("attempts", inc.Attempts+1),
				slog.Any("err", err),
			)
			if recErr := s.incidents.RecordAttempt(ctx, inc.ID, err); recErr != nil {
				s.logger.Error("Failed to record reconciliation attempt",
					slog.String("incident_id", inc.ID.String()),
					slog.Any("err", recErr),
				)
			}
			continue
		}

		if err := s.incidents.MarkResolved(ctx, inc.ID); err != nil {
			s.logger.Error("Failed to resolve settlement incident",
				slog.String("incident_id", inc.ID.String()),
				slog.Any("err", err),
			)
			continue
		}
		resolvedAt := s.now()
		inc.Status = models.IncidentResolved
		inc.ResolvedAt = &resolvedAt
		s.events.IncidentResolved(ctx, inc)
		s.logger.Info("Settlement incident resolved",
			slog.String("incident_id", inc.ID.String()),
			slog.String("order_code", inc.OrderCode),
		)
		resolved++
	}
	metrics.OpenIncidents.Set(float64(len(incidents) - resolved))
	return resolved, nil
}

func entityError(err error) error {
	if errors.Is(err, repository.ErrArtworkNotFound) || errors.Is(err, repository.ErrExhibitionNotFound) {
		return fmt.Errorf("%w: %w", ErrEntityNotFound, err)
	}
	return err
}
