package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"gallery_wallet/internal/models"
	"gallery_wallet/internal/repository"
	"gallery_wallet/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=http_handlers.go -destination=../mocks/mock_handlers.go -package=mocks

type WalletService interface {
	GetWallet(ctx context.Context, userID string) (*models.Wallet, error)
	Deposit(ctx context.Context, userID string, amount decimal.Decimal, description, orderCode string) (*models.Wallet, error)
	Withdraw(ctx context.Context, userID string, amount decimal.Decimal) (*models.Wallet, error)
	GetTransactionHistory(ctx context.Context, userID string, skip, take *int) (*models.TransactionHistory, error)
	ListAllTransactions(ctx context.Context) ([]models.Transaction, error)
}

type PaymentService interface {
	Pay(ctx context.Context, req models.PaymentRequest) (*models.PaymentResult, error)
}

type SettlementService interface {
	PurchaseArtwork(ctx context.Context, artworkID, buyerID string) (*models.PurchaseResult, error)
	PurchaseTicket(ctx context.Context, exhibitionID, buyerID string) (*models.PurchaseResult, error)
	VerifyArtworkAccess(ctx context.Context, artworkID, userID string) (bool, error)
}

type StatisticsService interface {
	GetStatistics(ctx context.Context, q models.StatisticsQuery) (*models.WalletStatistics, error)
}

type WithdrawalService interface {
	RequestWithdrawal(ctx context.Context, userID string, in models.CreateWithdrawalRequest) (*models.WithdrawalRequest, error)
	ListWithdrawalRequests(ctx context.Context, userID string) (*models.WithdrawalRequests, error)
	ListAllWithdrawalRequests(ctx context.Context) ([]models.WithdrawalRequest, error)
	ApproveWithdrawal(ctx context.Context, id uuid.UUID) (*models.WithdrawalRequest, error)
	RejectWithdrawal(ctx context.Context, id uuid.UUID) (*models.WithdrawalRequest, error)
}

type WalletHTTPHandler struct {
	wallets     WalletService
	payments    PaymentService
	settlement  SettlementService
	statistics  StatisticsService
	withdrawals WithdrawalService
	limiter     *IPRateLimiter
	logger      *slog.Logger
}

// NewWalletHTTPHandler wires the HTTP surface. A nil limiter disables rate limiting.
func NewWalletHTTPHandler(
	wallets WalletService,
	payments PaymentService,
	settlement SettlementService,
	statistics StatisticsService,
	limiter *IPRateLimiter,
	logger *slog.Logger,
) *WalletHTTPHandler {
	return &WalletHTTPHandler{
		wallets:    wallets,
		payments:   payments,
		settlement: settlement,
		statistics: statistics,
		limiter:    limiter,
		logger:     logger,
	}
}

// WithWithdrawals enables the bank withdrawal request routes.
func (h *WalletHTTPHandler) WithWithdrawals(withdrawals WithdrawalService) *WalletHTTPHandler {
	h.withdrawals = withdrawals
	return h
}

func (h *WalletHTTPHandler) RegisterRoutes(r *gin.Engine) {
	limited := func(c *gin.Context) { c.Next() }
	if h.limiter != nil {
		limited = RateLimitMiddleware(h.limiter)
	}

	v1 := r.Group("/api/v1")
	{
		wallets := v1.Group("/wallets/:user_id")
		wallets.GET("", h.HandleGetWallet)
		wallets.POST("/deposit", limited, h.HandleDeposit)
		wallets.POST("/withdraw", limited, h.HandleWithdraw)
		wallets.GET("/transactions", h.HandleTransactionHistory)
		wallets.GET("/statistics", h.HandleStatistics)

		v1.POST("/payments", limited, h.HandlePay)
		v1.POST("/artworks/:artwork_id/purchase", limited, h.HandlePurchaseArtwork)
		v1.GET("/artworks/:artwork_id/access/:user_id", h.HandleArtworkAccess)
		v1.POST("/exhibitions/:exhibition_id/tickets", limited, h.HandlePurchaseTicket)
		v1.GET("/admin/transactions", h.HandleAllTransactions)

		if h.withdrawals != nil {
			wallets.POST("/withdrawal-requests", limited, h.HandleCreateWithdrawalRequest)
			wallets.GET("/withdrawal-requests", h.HandleWithdrawalRequests)
			v1.GET("/admin/withdrawal-requests", h.HandleAllWithdrawalRequests)
			v1.POST("/admin/withdrawal-requests/:request_id/approve", h.HandleApproveWithdrawal)
			v1.POST("/admin/withdrawal-requests/:request_id/reject", h.HandleRejectWithdrawal)
		}
	}
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func (h *WalletHTTPHandler) HandleGetWallet(c *gin.Context) {
	wallet, err := h.wallets.GetWallet(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, wallet)
}

func (h *WalletHTTPHandler) HandleDeposit(c *gin.Context) {
	var req models.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}
	wallet, err := h.wallets.Deposit(c.Request.Context(), c.Param("user_id"), req.Amount, req.Description, req.OrderCode)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, wallet)
}

func (h *WalletHTTPHandler) HandleWithdraw(c *gin.Context) {
	var req models.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}
	wallet, err := h.wallets.Withdraw(c.Request.Context(), c.Param("user_id"), req.Amount)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, wallet)
}

func (h *WalletHTTPHandler) HandleTransactionHistory(c *gin.Context) {
	skip, err := optionalInt(c, "skip")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid skip"})
		return
	}
	take, err := optionalInt(c, "take")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid take"})
		return
	}
	history, err := h.wallets.GetTransactionHistory(c.Request.Context(), c.Param("user_id"), skip, take)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

func (h *WalletHTTPHandler) HandleStatistics(c *gin.Context) {
	q := models.StatisticsQuery{
		UserID:  c.Param("user_id"),
		GroupBy: models.GroupBy(c.Query("groupBy")),
	}
	var err error
	if q.StartDate, err = optionalTime(c, "startDate"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid startDate"})
		return
	}
	if q.EndDate, err = optionalTime(c, "endDate"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid endDate"})
		return
	}
	if v := c.Query("transactionType"); v != "" {
		t := models.TransactionType(v)
		q.Type = &t
	}
	if v := c.Query("status"); v != "" {
		s := models.TransactionStatus(v)
		q.Status = &s
	}

	stats, err := h.statistics.GetStatistics(c.Request.Context(), q)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *WalletHTTPHandler) HandlePay(c *gin.Context) {
	var req models.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}
	res, err := h.payments.Pay(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *WalletHTTPHandler) HandleAllTransactions(c *gin.Context) {
	txs, err := h.wallets.ListAllTransactions(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": txs, "total": len(txs)})
}

// errorStatus maps domain errors onto HTTP status codes; storage failures fall through to 503.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrPartialSettlement):
		return http.StatusInternalServerError
	case errors.Is(err, service.ErrValidation), errors.Is(err, repository.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrEntityNotFound),
		errors.Is(err, repository.ErrWalletNotFound),
		errors.Is(err, repository.ErrArtworkNotFound),
		errors.Is(err, repository.ErrExhibitionNotFound),
		errors.Is(err, repository.ErrWithdrawalRequestNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrInsufficientBalance),
		errors.Is(err, repository.ErrDuplicateOrderCode),
		errors.Is(err, repository.ErrWithdrawalRequestProcessed):
		return http.StatusConflict
	default:
		return http.StatusServiceUnavailable
	}
}

func (h *WalletHTTPHandler) respondError(c *gin.Context, err error) {
	status := errorStatus(err)
	body := gin.H{"error": err.Error()}

	var partial *service.PartialSettlementError
	if errors.As(err, &partial) {
		// uuid.Nil means the incident could not be recorded
		if partial.IncidentID != uuid.Nil {
			body["incidentId"] = partial.IncidentID.String()
		}
		body["orderCode"] = partial.OrderCode
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed",
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.Int("status", status),
			slog.Any("err", err),
		)
	}
	c.JSON(status, body)
}

func optionalInt(c *gin.Context, key string) (*int, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// optionalTime accepts RFC 3339 timestamps and plain dates.
func optionalTime(c *gin.Context, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, errors.New("unsupported time format")
}
