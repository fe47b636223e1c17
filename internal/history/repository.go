package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"loancalc/pkg/db"
)

// Repository is the Postgres Store.
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Save writes the calculation and its audit row in one transaction.
func (r *Repository) Save(ctx context.Context, rec Record) error {
	return db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		const q = `
INSERT INTO amortization_calculations
  (id, client_id, principal, annual_rate_percent, term_months, payment, total_payment, total_interest, created_at)
VALUES ($1, $2, CAST($3 AS numeric), CAST($4 AS numeric), $5, CAST($6 AS numeric), CAST($7 AS numeric), CAST($8 AS numeric), $9)
`
		if _, err := tx.Exec(ctx, q,
			rec.ID, rec.ClientID, rec.Principal.String(), rec.AnnualRatePercent.String(), rec.TermMonths,
			rec.Payment.String(), rec.TotalPayment.String(), rec.TotalInterest.String(), rec.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert calculation: %w", err)
		}
		return insertAudit(ctx, tx, rec.ID, rec.ClientID, "calculation.created", map[string]any{
			"termMonths": rec.TermMonths,
			"payment":    rec.Payment.String(),
		})
	})
}

// Get returns ErrNotFound for ids that are not UUIDs instead of a cast error.
func (r *Repository) Get(ctx context.Context, clientID, id string) (*Record, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	const q = `
SELECT id, client_id, principal::text, annual_rate_percent::text, term_months,
       payment::text, total_payment::text, total_interest::text, created_at
FROM amortization_calculations
WHERE id = $1 AND client_id = $2
`
	rec, err := scanRecord(r.db.QueryRow(ctx, q, id, clientID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *Repository) List(ctx context.Context, clientID string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}
	const q = `
SELECT id, client_id, principal::text, annual_rate_percent::text, term_months,
       payment::text, total_payment::text, total_interest::text, created_at
FROM amortization_calculations
WHERE client_id = $1
ORDER BY created_at DESC
LIMIT $2
`
	rows, err := r.db.Query(ctx, q, clientID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

func scanRecord(row pgx.Row) (*Record, error) {
	var rec Record
	var principal, rate, payment, total, interest string
	if err := row.Scan(
		&rec.ID, &rec.ClientID, &principal, &rate, &rec.TermMonths,
		&payment, &total, &interest, &rec.CreatedAt,
	); err != nil {
		return nil, err
	}

	fields := []struct {
		dst *decimal.Decimal
		src string
	}{
		{&rec.Principal, principal},
		{&rec.AnnualRatePercent, rate},
		{&rec.Payment, payment},
		{&rec.TotalPayment, total},
		{&rec.TotalInterest, interest},
	}
	for _, f := range fields {
		d, err := decimal.NewFromString(f.src)
		if err != nil {
			return nil, fmt.Errorf("parse numeric %q: %w", f.src, err)
		}
		*f.dst = d
	}
	return &rec, nil
}
