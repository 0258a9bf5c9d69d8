package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gallery_wallet/internal/mocks"
	"gallery_wallet/internal/models"
	"gallery_wallet/internal/repository"
	"gallery_wallet/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type decimalMatcher struct{ want decimal.Decimal }

func (m decimalMatcher) Matches(x interface{}) bool {
	d, ok := x.(decimal.Decimal)
	return ok && d.Equal(m.want)
}

func (m decimalMatcher) String() string { return fmt.Sprintf("is equal to decimal %s", m.want) }

func decEq(s string) gomock.Matcher { return decimalMatcher{want: decimal.RequireFromString(s)} }

type mockServices struct {
	wallets     *mocks.MockWalletService
	payments    *mocks.MockPaymentService
	settlement  *mocks.MockSettlementService
	statistics  *mocks.MockStatisticsService
	withdrawals *mocks.MockWithdrawalService
}

func setupMockRouter(t *testing.T, limiter *IPRateLimiter) (*gin.Engine, *mockServices) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	m := &mockServices{
		wallets:     mocks.NewMockWalletService(ctrl),
		payments:    mocks.NewMockPaymentService(ctrl),
		settlement:  mocks.NewMockSettlementService(ctrl),
		statistics:  mocks.NewMockStatisticsService(ctrl),
		withdrawals: mocks.NewMockWithdrawalService(ctrl),
	}
	handler := NewWalletHTTPHandler(m.wallets, m.payments, m.settlement, m.statistics, limiter, testLogger).
		WithWithdrawals(m.withdrawals)
	r := gin.New()
	handler.RegisterRoutes(r)
	return r, m
}

func doRequest(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		payload, _ := json.Marshal(b)
		reader = bytes.NewBuffer(payload)
	}
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandleGetWallet(t *testing.T) {
	r, m := setupMockRouter(t, nil)
	m.wallets.EXPECT().GetWallet(gomock.Any(), "u1").
		Return(&models.Wallet{ID: uuid.New(), UserID: "u1", Balance: decimal.RequireFromString("100.5")}, nil)

	w := doRequest(r, http.MethodGet, "/api/v1/wallets/u1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"balance":"100.5"`)
}

func TestHandleDeposit(t *testing.T) {
	r, m := setupMockRouter(t, nil)
	m.wallets.EXPECT().Deposit(gomock.Any(), "u1", decEq("100.50"), "card top-up", "gw-1").
		Return(&models.Wallet{UserID: "u1", Balance: decimal.RequireFromString("100.5")}, nil)

	w := doRequest(r, http.MethodPost, "/api/v1/wallets/u1/deposit",
		map[string]interface{}{"amount": "100.50", "description": "card top-up", "orderCode": "gw-1"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "100.5")
}

func TestHandleDeposit_InvalidBody(t *testing.T) {
	r, _ := setupMockRouter(t, nil)

	w := doRequest(r, http.MethodPost, "/api/v1/wallets/u1/deposit", `{"amount": "abc"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request")
}

func TestHandleDeposit_InvalidAmount(t *testing.T) {
	r, m := setupMockRouter(t, nil)
	m.wallets.EXPECT().Deposit(gomock.Any(), "u1", decEq("0"), "", "").Return(nil, repository.ErrInvalidAmount)

	w := doRequest(r, http.MethodPost, "/api/v1/wallets/u1/deposit", map[string]interface{}{"amount": "0"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "amount must be positive")
}

func TestHandleWithdraw_Errors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"insufficient", &repository.InsufficientBalanceError{Available: decimal.NewFromInt(5)}, http.StatusConflict},
		{"no wallet", repository.ErrWalletNotFound, http.StatusNotFound},
		{"storage", errors.New("connection reset"), http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, m := setupMockRouter(t, nil)
			m.wallets.EXPECT().Withdraw(gomock.Any(), "u1", decEq("10")).Return(nil, tc.err)

			w := doRequest(r, http.MethodPost, "/api/v1/wallets/u1/withdraw", map[string]interface{}{"amount": "10"})
			assert.Equal(t, tc.status, w.Code)
			assert.Contains(t, w.Body.String(), tc.err.Error())
		})
	}
}

func TestHandleTransactionHistory(t *testing.T) {
	r, m := setupMockRouter(t, nil)
	skip, take := 0, 20
	m.wallets.EXPECT().GetTransactionHistory(gomock.Any(), "u1", &skip, &take).
		Return(&models.TransactionHistory{Transactions: []models.Transaction{}, Total: 0}, nil)
	m.wallets.EXPECT().GetTransactionHistory(gomock.Any(), "u1", gomock.Nil(), gomock.Nil()).
		Return(&models.TransactionHistory{Transactions: []models.Transaction{}, Total: 0}, nil)

	w := doRequest(r, http.MethodGet, "/api/v1/wallets/u1/transactions?skip=0&take=20", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"transactions":[],"total":0}`, w.Body.String())

	w = doRequest(r, http.MethodGet, "/api/v1/wallets/u1/transactions", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodGet, "/api/v1/wallets/u1/transactions?skip=x", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleStatistics(t *testing.T) {
	r, m := setupMockRouter(t, nil)
	m.statistics.EXPECT().GetStatistics(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, q models.StatisticsQuery) (*models.WalletStatistics, error) {
			assert.Equal(t, "u1", q.UserID)
			assert.Equal(t, models.GroupByWeek, q.GroupBy)
			if assert.NotNil(t, q.StartDate) {
				assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *q.StartDate)
			}
			if assert.NotNil(t, q.Type) {
				assert.Equal(t, models.TransactionDeposit, *q.Type)
			}
			assert.Nil(t, q.Status)
			return &models.WalletStatistics{TimeSeries: []models.PeriodBucket{}}, nil
		})

	w := doRequest(r, http.MethodGet, "/api/v1/wallets/u1/statistics?startDate=2024-01-01&groupBy=week&transactionType=DEPOSIT", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "timeSeries")

	w = doRequest(r, http.MethodGet, "/api/v1/wallets/u1/statistics?endDate=yesterday", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlePay(t *testing.T) {
	r, m := setupMockRouter(t, nil)
	m.payments.EXPECT().Pay(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, req models.PaymentRequest) (*models.PaymentResult, error) {
			assert.Equal(t, "u1", req.UserID)
			assert.True(t, req.Amount.Equal(decimal.NewFromInt(100)))
			return &models.PaymentResult{Status: models.PaymentFailed, Message: "Insufficient balance. Available: 0"}, nil
		})

	w := doRequest(r, http.MethodPost, "/api/v1/payments", map[string]interface{}{"userId": "u1", "amount": 100, "description": "test"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"FAILED","message":"Insufficient balance. Available: 0"}`, w.Body.String())
}

func TestHandlePay_Validation(t *testing.T) {
	r, m := setupMockRouter(t, nil)
	m.payments.EXPECT().Pay(gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("%w: userId is required", service.ErrValidation))

	w := doRequest(r, http.MethodPost, "/api/v1/payments", map[string]interface{}{"amount": 100})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlePurchaseArtwork(t *testing.T) {
	r, m := setupMockRouter(t, nil)
	gomock.InOrder(
		m.settlement.EXPECT().PurchaseArtwork(gomock.Any(), "art-1", "buyer").
			Return(&models.PurchaseResult{Status: models.PaymentSuccess, Message: "Artwork purchased successfully"}, nil),
		m.settlement.EXPECT().PurchaseArtwork(gomock.Any(), "art-1", "buyer").
			Return(&models.PurchaseResult{Status: models.PaymentFailed, Message: "Insufficient balance. Available: 3"}, nil),
	)

	w := doRequest(r, http.MethodPost, "/api/v1/artworks/art-1/purchase", map[string]interface{}{"buyerId": "buyer"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodPost, "/api/v1/artworks/art-1/purchase", map[string]interface{}{"buyerId": "buyer"})
	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Contains(t, w.Body.String(), "Available: 3")
}

func TestHandlePurchaseArtwork_MissingBuyer(t *testing.T) {
	r, _ := setupMockRouter(t, nil)

	w := doRequest(r, http.MethodPost, "/api/v1/artworks/art-1/purchase", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlePurchaseArtwork_Errors(t *testing.T) {
	incidentID := uuid.New()
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"self purchase", service.ErrSelfPurchase, http.StatusBadRequest},
		{"not for sale", service.ErrNotForSale, http.StatusBadRequest},
		{"not found", fmt.Errorf("%w: %w", service.ErrEntityNotFound, repository.ErrArtworkNotFound), http.StatusNotFound},
		{"partial", &service.PartialSettlementError{IncidentID: incidentID, OrderCode: "ART-art-1-buyer", Stage: "access grant", Err: repository.ErrArtworkNotFound}, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, m := setupMockRouter(t, nil)
			m.settlement.EXPECT().PurchaseArtwork(gomock.Any(), "art-1", "buyer").Return(nil, tc.err)

			w := doRequest(r, http.MethodPost, "/api/v1/artworks/art-1/purchase", map[string]interface{}{"buyerId": "buyer"})
			assert.Equal(t, tc.status, w.Code)
		})
	}

	r, m := setupMockRouter(t, nil)
	m.settlement.EXPECT().PurchaseArtwork(gomock.Any(), "art-1", "buyer").Return(nil, cases[3].err)
	w := doRequest(r, http.MethodPost, "/api/v1/artworks/art-1/purchase", map[string]interface{}{"buyerId": "buyer"})
	assert.Contains(t, w.Body.String(), incidentID.String())
}

func TestHandlePurchaseArtwork_UnrecordedIncident(t *testing.T) {
	r, m := setupMockRouter(t, nil)
	m.settlement.EXPECT().PurchaseArtwork(gomock.Any(), "art-1", "buyer").
		Return(nil, &service.PartialSettlementError{OrderCode: "ART-0f1e", Stage: "access grant", Err: repository.ErrArtworkNotFound})

	w := doRequest(r, http.MethodPost, "/api/v1/artworks/art-1/purchase", map[string]interface{}{"buyerId": "buyer"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotContains(t, body, "incidentId")
	assert.Equal(t, "ART-0f1e", body["orderCode"])
	assert.NotContains(t, w.Body.String(), uuid.Nil.String())
}

func TestHandlePay_ReservedOrderCode(t *testing.T) {
	r, m := setupMockRouter(t, nil)
	m.payments.EXPECT().Pay(gomock.Any(), gomock.Any()).Return(nil, service.ErrReservedOrderCode)

	w := doRequest(r, http.MethodPost, "/api/v1/payments",
		map[string]interface{}{"userId": "u1", "amount": "0.01", "orderCode": "ART-0f1e"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlePurchaseTicket(t *testing.T) {
	r, m := setupMockRouter(t, nil)
	m.settlement.EXPECT().PurchaseTicket(gomock.Any(), "ex-1", "visitor").
		Return(&models.PurchaseResult{Status: models.PaymentSuccess, Message: "Ticket registered successfully"}, nil)

	w := doRequest(r, http.MethodPost, "/api/v1/exhibitions/ex-1/tickets", map[string]interface{}{"buyerId": "visitor"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Ticket registered successfully")
}

func TestHandleArtworkAccess(t *testing.T) {
	r, m := setupMockRouter(t, nil)
	m.settlement.EXPECT().VerifyArtworkAccess(gomock.Any(), "art-1", "buyer").Return(true, nil)

	w := doRequest(r, http.MethodGet, "/api/v1/artworks/art-1/access/buyer", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"hasAccess":true}`, w.Body.String())
}

func TestHandleAllTransactions(t *testing.T) {
	r, m := setupMockRouter(t, nil)
	m.wallets.EXPECT().ListAllTransactions(gomock.Any()).Return([]models.Transaction{{ID: uuid.New()}}, nil)

	w := doRequest(r, http.MethodGet, "/api/v1/admin/transactions", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)
}

func TestMetricsRoute(t *testing.T) {
	r, _ := setupMockRouter(t, nil)

	w := doRequest(r, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestRateLimit(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Every(time.Hour), 1)
	r, m := setupMockRouter(t, limiter)
	m.payments.EXPECT().Pay(gomock.Any(), gomock.Any()).
		Return(&models.PaymentResult{Status: models.PaymentSuccess, Message: "Payment successful"}, nil).Times(1)

	body := map[string]interface{}{"userId": "u1", "amount": 1}
	w := doRequest(r, http.MethodPost, "/api/v1/payments", body)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodPost, "/api/v1/payments", body)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestIPRateLimiter_Sweep(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Limit(1), 1)
	limiter.GetLimiter("10.0.0.1")
	limiter.GetLimiter("10.0.0.2")
	assert.Equal(t, 2, limiter.size())

	limiter.Sweep(time.Hour)
	assert.Equal(t, 2, limiter.size())

	limiter.Sweep(-time.Second)
	assert.Equal(t, 0, limiter.size())
}
