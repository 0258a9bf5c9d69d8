package repository

import (
	"context"
	"errors"
	"log/slog"

	"gallery_wallet/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const (
	artworkColumns    = "id, seller_id, title, price, status, url, buyers"
	exhibitionColumns = "id, organizer_id, name, ticket_configured, ticket_requires_payment, ticket_price, registered_users"
)

// CatalogPGRepository reads artwork and exhibition records owned by the catalog
// services and appends buyers to them. Metadata CRUD stays in those services.
type CatalogPGRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewCatalogPGRepository(pool *pgxpool.Pool, logger *slog.Logger) *CatalogPGRepository {
	return &CatalogPGRepository{
		pool:   pool,
		logger: logger,
	}
}

func scanArtwork(row pgx.Row) (*models.Artwork, error) {
	var a models.Artwork
	if err := row.Scan(&a.ID, &a.SellerID, &a.Title, &a.Price, &a.Status, &a.URL, &a.Buyers); err != nil {
		return nil, err
	}
	return &a, nil
}

func scanExhibition(row pgx.Row) (*models.Exhibition, error) {
	var (
		e          models.Exhibition
		configured bool
		t          models.Ticket
	)
	if err := row.Scan(&e.ID, &e.OrganizerID, &e.Name, &configured, &t.RequiresPayment, &t.Price, &t.RegisteredUsers); err != nil {
		return nil, err
	}
	if configured {
		e.Ticket = &t
	}
	return &e, nil
}

func (r *CatalogPGRepository) GetArtwork(ctx context.Context, artworkID string) (*models.Artwork, error) {
	artwork, err := scanArtwork(r.pool.QueryRow(ctx,
		"SELECT "+artworkColumns+" FROM artworks WHERE id = $1", artworkID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrArtworkNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get artwork",
			slog.String("artwork_id", artworkID),
			slog.Any("err", err),
		)
		return nil, err
	}
	return artwork, nil
}

// AddBuyer appends the buyer to the artwork's buyers set; an existing buyer is left as is.
func (r *CatalogPGRepository) AddBuyer(ctx context.Context, artworkID, buyerID string) (*models.Artwork, error) {
	artwork, err := scanArtwork(r.pool.QueryRow(ctx, `
		UPDATE artworks
		SET buyers = CASE WHEN $2::text = ANY(buyers) THEN buyers ELSE array_append(buyers, $2::text) END
		WHERE id = $1
		RETURNING `+artworkColumns, artworkID, buyerID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrArtworkNotFound
	}
	if err != nil {
		r.logger.Error("Failed to add artwork buyer",
			slog.String("artwork_id", artworkID),
			slog.String("buyer_id", buyerID),
			slog.Any("err", err),
		)
		return nil, err
	}
	return artwork, nil
}

func (r *CatalogPGRepository) SaveArtwork(ctx context.Context, a *models.Artwork) error {
	buyers := a.Buyers
	if buyers == nil {
		buyers = []string{}
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO artworks (`+artworkColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			seller_id = EXCLUDED.seller_id, title = EXCLUDED.title, price = EXCLUDED.price,
			status = EXCLUDED.status, url = EXCLUDED.url, buyers = EXCLUDED.buyers`,
		a.ID, a.SellerID, a.Title, a.Price, a.Status, a.URL, buyers)
	return err
}

func (r *CatalogPGRepository) GetExhibition(ctx context.Context, exhibitionID string) (*models.Exhibition, error) {
	exhibition, err := scanExhibition(r.pool.QueryRow(ctx,
		"SELECT "+exhibitionColumns+" FROM exhibitions WHERE id = $1", exhibitionID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrExhibitionNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get exhibition",
			slog.String("exhibition_id", exhibitionID),
			slog.Any("err", err),
		)
		return nil, err
	}
	return exhibition, nil
}

// RegisterTicketHolder adds the user to the exhibition's ticket holders if not already present.
func (r *CatalogPGRepository) RegisterTicketHolder(ctx context.Context, exhibitionID, userID string) (*models.Exhibition, error) {
	exhibition, err := scanExhibition(r.pool.QueryRow(ctx, `
		UPDATE exhibitions
		SET registered_users = CASE WHEN $2::text = ANY(registered_users) THEN registered_users
			ELSE array_append(registered_users, $2::text) END
		WHERE id = $1 AND ticket_configured
		RETURNING `+exhibitionColumns, exhibitionID, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrExhibitionNotFound
	}
	if err != nil {
		r.logger.Error("Failed to register ticket holder",
			slog.String("exhibition_id", exhibitionID),
			slog.String("user_id", userID),
			slog.Any("err", err),
		)
		return nil, err
	}
	return exhibition, nil
}

func (r *CatalogPGRepository) SaveExhibition(ctx context.Context, e *models.Exhibition) error {
	var (
		configured, requiresPayment bool
		price                       = decimal.Zero
		holders                     = []string{}
	)
	if e.Ticket != nil {
		configured = true
		requiresPayment = e.Ticket.RequiresPayment
		price = e.Ticket.Price
		if e.Ticket.RegisteredUsers != nil {
			holders = e.Ticket.RegisteredUsers
		}
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO exhibitions (`+exhibitionColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			organizer_id = EXCLUDED.organizer_id, name = EXCLUDED.name,
			ticket_configured = EXCLUDED.ticket_configured,
			ticket_requires_payment = EXCLUDED.ticket_requires_payment,
			ticket_price = EXCLUDED.ticket_price, registered_users = EXCLUDED.registered_users`,
		e.ID, e.OrganizerID, e.Name, configured, requiresPayment, price, holders)
	return err
}
