package repository

import (
	"context"
	"time"

	"github.com/aibeeinyass/rideboss-system/internal/db"
	"github.com/aibeeinyass/rideboss-system/internal/domain"
	"github.com/jackc/pgx/v5/pgtype"
)

// SaleRepository reads the append-only sales ledger. Sales are only ever
// written through CheckoutRepository.
type SaleRepository struct {
	DB *db.Postgres
}

func (r SaleRepository) List(ctx context.Context, limit int) ([]domain.Sale, error) {
	if limit <= 0 {
		limit = 200
	}
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, plate, services, total, method, staff, tx_type, created_at
		FROM sales
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSales(rows)
}

func (r SaleRepository) ListBetween(ctx context.Context, from, to *time.Time) ([]domain.Sale, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, plate, services, total, method, staff, tx_type, created_at
		FROM sales
		WHERE ($1::timestamptz IS NULL OR created_at >= $1)
		  AND ($2::timestamptz IS NULL OR created_at < $2 + interval '1 day')
		ORDER BY created_at DESC, id DESC
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSales(rows)
}

func scanSales(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]domain.Sale, error) {
	var items []domain.Sale
	for rows.Next() {
		var s domain.Sale
		var plate pgtype.Text
		var method, typ string
		if err := rows.Scan(&s.ID, &plate, &s.Services, &s.Total.Amount, &method, &s.Staff, &typ, &s.CreatedAt); err != nil {
			return nil, err
		}
		if plate.Valid {
			p := plate.String
			s.Plate = &p
		}
		s.Method = domain.PaymentMethod(method)
		s.Type = domain.SaleType(typ)
		items = append(items, s)
	}
	return items, rows.Err()
}
