package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gallery_wallet/internal/models"
	"gallery_wallet/internal/repository"

	"github.com/shopspring/decimal"
)

const defaultStatisticsWindow = 30 * 24 * time.Hour

var hundred = decimal.NewFromInt(100)

type StatisticsService struct {
	repo   LedgerStore
	logger *slog.Logger
	now    func() time.Time
}

func NewStatisticsService(repo LedgerStore, logger *slog.Logger) *StatisticsService {
	return &StatisticsService{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// GetStatistics builds the inflow/outflow time series of a user's wallet together with
// its trends and summary. The range defaults to the last 30 days, grouped by day.
func (s *StatisticsService) GetStatistics(ctx context.Context, q models.StatisticsQuery) (*models.WalletStatistics, error) {
	if q.UserID == "" {
		return nil, validationError("userId is required")
	}
	if q.GroupBy == "" {
		q.GroupBy = models.GroupByDay
	}
	if !q.GroupBy.Valid() {
		return nil, validationError(fmt.Sprintf("groupBy must be one of day, week, month, got %q", q.GroupBy))
	}
	if q.Type != nil && !q.Type.Valid() {
		return nil, validationError(fmt.Sprintf("unknown transaction type %q", *q.Type))
	}
	if q.Status != nil && !q.Status.Valid() {
		return nil, validationError(fmt.Sprintf("unknown transaction status %q", *q.Status))
	}

	to := s.now()
	if q.EndDate != nil {
		to = *q.EndDate
	}
	from := to.Add(-defaultStatisticsWindow)
	if q.StartDate != nil {
		from = *q.StartDate
	}
	if from.After(to) {
		return nil, validationError("startDate must not be after endDate")
	}

	wallet, err := s.repo.GetWalletByUserID(ctx, q.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrWalletNotFound) {
			s.logger.Warn("GetStatistics: wallet not found", slog.String("user_id", q.UserID))
		}
		return nil, err
	}

	buckets, err := s.repo.AggregateByPeriod(ctx, wallet.ID, models.AggregateQuery{
		From:    from,
		To:      to,
		GroupBy: q.GroupBy,
		Type:    q.Type,
		Status:  q.Status,
	})
	if err != nil {
		s.logger.Error("GetStatistics: aggregation failed",
			slog.String("user_id", q.UserID),
			slog.Any("err", err),
		)
		return nil, err
	}
	if buckets == nil {
		buckets = []models.PeriodBucket{}
	}

	return &models.WalletStatistics{
		CurrentBalance: wallet.Balance,
		TimeSeries:     buckets,
		Trends:         ComputeTrends(buckets),
		Summary:        Summarize(buckets),
	}, nil
}

func Summarize(buckets []models.PeriodBucket) models.Summary {
	summary := models.Summary{
		TotalInflow:    decimal.Zero,
		TotalOutflow:   decimal.Zero,
		AvgDailyVolume: decimal.Zero,
	}
	for _, b := range buckets {
		summary.TotalInflow = summary.TotalInflow.Add(b.Inflow)
		summary.TotalOutflow = summary.TotalOutflow.Add(b.Outflow)
		summary.TotalTransactions += b.Transactions
	}
	if len(buckets) > 0 {
		volume := summary.TotalInflow.Add(summary.TotalOutflow)
		summary.AvgDailyVolume = volume.Div(decimal.NewFromInt(int64(len(buckets)))).Round(2)
	}
	return summary
}

// ComputeTrends compares the first and last bucket of the series.
func ComputeTrends(buckets []models.PeriodBucket) models.Trends {
	if len(buckets) < 2 {
		return models.Trends{}
	}
	first, last := buckets[0], buckets[len(buckets)-1]
	return models.Trends{
		InflowTrend:  percentChange(first.Inflow, last.Inflow),
		OutflowTrend: percentChange(first.Outflow, last.Outflow),
		NetFlowTrend: percentChange(first.NetFlow, last.NetFlow),
	}
}

func percentChange(first, last decimal.Decimal) float64 {
	if first.IsZero() {
		if last.IsZero() {
			return 0
		}
		return 100
	}
	return last.Sub(first).Div(first).Mul(hundred).Round(2).InexactFloat64()
}
