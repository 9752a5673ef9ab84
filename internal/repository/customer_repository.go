package repository

import (
	"context"
	"errors"

	"github.com/aibeeinyass/rideboss-system/internal/db"
	"github.com/aibeeinyass/rideboss-system/internal/domain"
	"github.com/jackc/pgx/v5"
)

// CustomerRepository reads customer profiles. Profiles are written only by
// wash authorizations (CheckoutRepository) so the visit counter cannot drift.
type CustomerRepository struct {
	DB *db.Postgres
}

func (r CustomerRepository) Get(ctx context.Context, plate string) (*domain.Customer, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		SELECT plate, name, phone, visits, last_visit
		FROM customers
		WHERE plate = $1
	`, plate)
	var c domain.Customer
	if err := row.Scan(&c.Plate, &c.Name, &c.Phone, &c.Visits, &c.LastVisit); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r CustomerRepository) List(ctx context.Context, limit int) ([]domain.Customer, error) {
	if limit <= 0 {
		limit = 500
	}
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT plate, name, phone, visits, last_visit
		FROM customers
		ORDER BY last_visit DESC, plate ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []domain.Customer
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.Plate, &c.Name, &c.Phone, &c.Visits, &c.LastVisit); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}
