// Package events publishes ledger activity to the notification and reconciliation consumers.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"gallery_wallet/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

const (
	TransactionEventsChannel = "transaction_events"

	EventTransactionCreated = "transaction.created"
	EventIncidentOpened     = "settlement.incident.opened"
	EventIncidentResolved   = "settlement.incident.resolved"
)

type TransactionEvent struct {
	EventType     string           `json:"event_type"`
	TransactionID string           `json:"transaction_id"`
	WalletID      string           `json:"wallet_id"`
	UserID        string           `json:"user_id"`
	Type          string           `json:"transaction_type"`
	Status        string           `json:"status"`
	Amount        decimal.Decimal  `json:"amount"`
	OrderCode     string           `json:"order_code,omitempty"`
	Description   string           `json:"description,omitempty"`
	BalanceAfter  *decimal.Decimal `json:"balance_after,omitempty"`
	Timestamp     time.Time        `json:"timestamp"`
}

type IncidentEvent struct {
	EventType string                    `json:"event_type"`
	Incident  models.SettlementIncident `json:"incident"`
	Timestamp time.Time                 `json:"timestamp"`
}

// Publisher fans ledger events out to Redis pub/sub and settlement incidents to Kafka.
// Either transport may be nil, in which case its events are dropped. Publishing never
// fails the caller; errors are logged.
type Publisher struct {
	rdb    *redis.Client
	writer *kafka.Writer
	logger *slog.Logger
}

func NewPublisher(rdb *redis.Client, writer *kafka.Writer, logger *slog.Logger) *Publisher {
	return &Publisher{
		rdb:    rdb,
		writer: writer,
		logger: logger,
	}
}

func NewTransactionEvent(tx *models.Transaction, balanceAfter *decimal.Decimal) TransactionEvent {
	return TransactionEvent{
		EventType:     EventTransactionCreated,
		TransactionID: tx.ID.String(),
		WalletID:      tx.WalletID.String(),
		UserID:        tx.UserID,
		Type:          string(tx.Type),
		Status:        string(tx.Status),
		Amount:        tx.Amount,
		OrderCode:     tx.OrderCode,
		Description:   tx.Description,
		BalanceAfter:  balanceAfter,
		Timestamp:     tx.CreatedAt,
	}
}

func (p *Publisher) TransactionCreated(ctx context.Context, tx *models.Transaction, wallet *models.Wallet) {
	if p.rdb == nil || tx == nil {
		return
	}
	var balanceAfter *decimal.Decimal
	if wallet != nil {
		balanceAfter = &wallet.Balance
	}
	payload, err := json.Marshal(NewTransactionEvent(tx, balanceAfter))
	if err != nil {
		p.logger.Error("Failed to marshal transaction event", slog.Any("err", err))
		return
	}
	if err := p.rdb.Publish(ctx, TransactionEventsChannel, payload).Err(); err != nil {
		p.logger.Warn("Failed to publish transaction event",
			slog.String("transaction_id", tx.ID.String()),
			slog.Any("err", err),
		)
	}
}

func (p *Publisher) IncidentOpened(ctx context.Context, inc *models.SettlementIncident) {
	p.publishIncident(ctx, EventIncidentOpened, inc)
}

func (p *Publisher) IncidentResolved(ctx context.Context, inc *models.SettlementIncident) {
	p.publishIncident(ctx, EventIncidentResolved, inc)
}

func (p *Publisher) publishIncident(ctx context.Context, eventType string, inc *models.SettlementIncident) {
	if p.writer == nil || inc == nil {
		return
	}
	msg, err := incidentMessage(eventType, inc)
	if err != nil {
		p.logger.Error("Failed to marshal incident event", slog.Any("err", err))
		return
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish incident event",
			slog.String("event_type", eventType),
			slog.String("order_code", inc.OrderCode),
			slog.Any("err", err),
		)
	}
}

func incidentMessage(eventType string, inc *models.SettlementIncident) (kafka.Message, error) {
	payload, err := json.Marshal(IncidentEvent{
		EventType: eventType,
		Incident:  *inc,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal incident: %w", err)
	}
	return kafka.Message{
		Key:   []byte(inc.OrderCode),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(eventType)},
		},
	}, nil
}

func NewIncidentWriter(brokers []string, topic string, logger *slog.Logger) *kafka.Writer {
	if len(brokers) == 0 {
		return nil
	}
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		WriteTimeout: 10 * time.Second,
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			logger.Error(fmt.Sprintf(msg, args...))
		}),
	}
}

func NewRedisClient(addr, password string) *redis.Client {
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
}
