package repository

import (
	"context"
	"log/slog"

	"gallery_wallet/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const incidentColumns = "id, kind, entity_id, buyer_id, seller_id, gross, commission, net, order_code, error, status, attempts, created_at, resolved_at"

// IncidentPGRepository stores settlements that debited the buyer and credited the
// seller but could not grant access.
type IncidentPGRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewIncidentPGRepository(pool *pgxpool.Pool, logger *slog.Logger) *IncidentPGRepository {
	return &IncidentPGRepository{
		pool:   pool,
		logger: logger,
	}
}

func (r *IncidentPGRepository) Record(ctx context.Context, inc *models.SettlementIncident) error {
	if inc.ID == uuid.Nil {
		inc.ID = uuid.New()
	}
	if inc.Status == "" {
		inc.Status = models.IncidentOpen
	}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO settlement_incidents
			(id, kind, entity_id, buyer_id, seller_id, gross, commission, net, order_code, error, status, attempts)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at`,
		inc.ID, string(inc.Kind), inc.EntityID, inc.BuyerID, inc.SellerID,
		inc.Gross, inc.Commission, inc.Net, inc.OrderCode, inc.Error, string(inc.Status), inc.Attempts,
	).Scan(&inc.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to record settlement incident",
			slog.String("order_code", inc.OrderCode),
			slog.Any("err", err),
		)
	}
	return err
}

func (r *IncidentPGRepository) ListOpen(ctx context.Context, limit int) ([]models.SettlementIncident, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+incidentColumns+` FROM settlement_incidents
		WHERE status = 'OPEN'
		ORDER BY created_at
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	incidents := make([]models.SettlementIncident, 0)
	for rows.Next() {
		var (
			inc          models.SettlementIncident
			kind, status string
		)
		if err := rows.Scan(&inc.ID, &kind, &inc.EntityID, &inc.BuyerID, &inc.SellerID,
			&inc.Gross, &inc.Commission, &inc.Net, &inc.OrderCode, &inc.Error, &status,
			&inc.Attempts, &inc.CreatedAt, &inc.ResolvedAt); err != nil {
			return nil, err
		}
		inc.Kind = models.SettlementKind(kind)
		inc.Status = models.IncidentStatus(status)
		incidents = append(incidents, inc)
	}
	return incidents, rows.Err()
}

func (r *IncidentPGRepository) MarkResolved(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE settlement_incidents
		SET status = 'RESOLVED', resolved_at = NOW(), attempts = attempts + 1
		WHERE id = $1 AND status = 'OPEN'`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrIncidentNotFound
	}
	return nil
}

func (r *IncidentPGRepository) RecordAttempt(ctx context.Context, id uuid.UUID, cause error) error {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE settlement_incidents SET attempts = attempts + 1, error = $2
		WHERE id = $1`, id, msg)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrIncidentNotFound
	}
	return nil
}
