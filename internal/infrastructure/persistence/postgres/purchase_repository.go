package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/AndreiMGagiu/TrustPass/internal/domain"
	"github.com/jackc/pgx/v5"
)

var (
	ErrPurchaseNotFound = errors.New("purchase not found")
	ErrDuplicateTradeID = errors.New("ref_trade_id already exists")
)

type PurchaseRepository struct {
	db *DB
}

func NewPurchaseRepository(db *DB) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

// Create inserts a new purchase. A unique violation on ref_trade_id is
// reported as ErrDuplicateTradeID, distinct from any other failure.
func (r *PurchaseRepository) Create(ctx context.Context, purchase *domain.Purchase) error {
	query := `
		INSERT INTO purchases (
			id, ref_trade_id, ref_user_id, od_currency, od_price, return_url,
			access_token, od_id, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
	`

	p := toDBModel(purchase)
	_, err := r.db.Pool.Exec(ctx, query,
		p.ID,
		p.RefTradeID,
		p.RefUserID,
		p.OdCurrency,
		p.OdPrice,
		p.ReturnURL,
		p.AccessToken,
		p.OdID,
		p.Status,
		p.CreatedAt,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			return ErrDuplicateTradeID
		}
		return fmt.Errorf("failed to create purchase: %w", err)
	}

	return nil
}

// FindByRefTradeID retrieves a purchase by its client-supplied trade id.
// The lookup is a case-sensitive exact match over the unique index.
func (r *PurchaseRepository) FindByRefTradeID(ctx context.Context, refTradeID string) (*domain.Purchase, error) {
	query := `
		SELECT id, ref_trade_id, ref_user_id, od_currency, od_price::text, return_url,
		       access_token, od_id, status, created_at, updated_at
		FROM purchases WHERE ref_trade_id = $1
	`

	row := r.db.Pool.QueryRow(ctx, query, refTradeID)
	return scanPurchase(row)
}

// UpdatePartnerToken stores the token exchange result on an existing purchase.
func (r *PurchaseRepository) UpdatePartnerToken(ctx context.Context, id, accessToken, odID string) error {
	query := `
		UPDATE purchases
		SET access_token = $1, od_id = $2, updated_at = now()
		WHERE id = $3
	`

	results, err := r.db.Pool.Exec(ctx, query, accessToken, odID, id)
	if err != nil {
		return fmt.Errorf("failed to store partner token: %w", err)
	}

	if results.RowsAffected() == 0 {
		return ErrPurchaseNotFound
	}

	return nil
}

// UpdateStatus persists a status transition as a single atomic row update.
func (r *PurchaseRepository) UpdateStatus(ctx context.Context, id string, status domain.PurchaseStatus) error {
	query := `
		UPDATE purchases
		SET status = $1, updated_at = now()
		WHERE id = $2
	`

	results, err := r.db.Pool.Exec(ctx, query, string(status), id)
	if err != nil {
		return fmt.Errorf("failed to update purchase status: %w", err)
	}

	if results.RowsAffected() == 0 {
		return ErrPurchaseNotFound
	}

	return nil
}

// scanPurchase converts a database row into a domain Purchase.
// Returns ErrPurchaseNotFound if the row doesn't exist.
func scanPurchase(row pgx.Row) (*domain.Purchase, error) {
	var m PurchaseModel
	err := row.Scan(
		&m.ID, &m.RefTradeID, &m.RefUserID, &m.OdCurrency, &m.OdPrice, &m.ReturnURL,
		&m.AccessToken, &m.OdID, &m.Status, &m.CreatedAt, &m.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPurchaseNotFound
		}
		return nil, fmt.Errorf("failed to scan purchase: %w", err)
	}
	return toDomainModel(m)
}
