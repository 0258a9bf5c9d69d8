package models

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const ArtworkStatusSelling = "selling"

type Artwork struct {
	ID       string          `db:"id" json:"id"`
	SellerID string          `db:"seller_id" json:"sellerId"`
	Title    string          `db:"title" json:"title"`
	Price    decimal.Decimal `db:"price" json:"price"`
	Status   string          `db:"status" json:"status"`
	URL      string          `db:"url" json:"url,omitempty"`
	Buyers   []string        `db:"buyers" json:"buyers"`
}

func (a *Artwork) IsSellable() bool {
	return a.Status == ArtworkStatusSelling
}

func (a *Artwork) HasBuyer(userID string) bool {
	return slices.Contains(a.Buyers, userID)
}

type Ticket struct {
	RequiresPayment bool            `json:"requiresPayment"`
	Price           decimal.Decimal `json:"price"`
	RegisteredUsers []string        `json:"registeredUsers"`
}

func (t *Ticket) HasHolder(userID string) bool {
	return slices.Contains(t.RegisteredUsers, userID)
}

type Exhibition struct {
	ID          string  `db:"id" json:"id"`
	OrganizerID string  `db:"organizer_id" json:"organizerId"`
	Name        string  `db:"name" json:"name"`
	Ticket      *Ticket `json:"ticket,omitempty"`
}

type SettlementKind string

const (
	SettlementArtwork SettlementKind = "ARTWORK"
	SettlementTicket  SettlementKind = "TICKET"
)

type IncidentStatus string

const (
	IncidentOpen     IncidentStatus = "OPEN"
	IncidentResolved IncidentStatus = "RESOLVED"
)

// SettlementIncident records a settlement whose money moved but whose access grant failed.
type SettlementIncident struct {
	ID         uuid.UUID       `json:"id"`
	Kind       SettlementKind  `json:"kind"`
	EntityID   string          `json:"entityId"`
	BuyerID    string          `json:"buyerId"`
	SellerID   string          `json:"sellerId"`
	Gross      decimal.Decimal `json:"gross"`
	Commission decimal.Decimal `json:"commission"`
	Net        decimal.Decimal `json:"net"`
	OrderCode  string          `json:"orderCode"`
	Error      string          `json:"error"`
	Status     IncidentStatus  `json:"status"`
	Attempts   int             `json:"attempts"`
	CreatedAt  time.Time       `json:"createdAt"`
	ResolvedAt *time.Time      `json:"resolvedAt,omitempty"`
}
