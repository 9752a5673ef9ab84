package repository

import (
	"context"
	"time"

	"github.com/aibeeinyass/rideboss-system/internal/db"
	"github.com/aibeeinyass/rideboss-system/internal/domain"
)

type ExpenseRepository struct {
	DB       *db.Postgres
	Currency string
}

func (r ExpenseRepository) Create(ctx context.Context, item string, amount int64, category string) (*domain.Expense, error) {
	var e domain.Expense
	err := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO expenses (item, amount, category, created_at)
		VALUES ($1,$2,$3, now())
		RETURNING id, item, amount, category, created_at
	`, item, amount, category).Scan(&e.ID, &e.Item, &e.Amount.Amount, &e.Category, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	e.Amount.Currency = r.Currency
	return &e, nil
}

func (r ExpenseRepository) List(ctx context.Context, limit int) ([]domain.Expense, error) {
	if limit <= 0 {
		limit = 200
	}
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, item, amount, category, created_at
		FROM expenses
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []domain.Expense
	for rows.Next() {
		var e domain.Expense
		if err := rows.Scan(&e.ID, &e.Item, &e.Amount.Amount, &e.Category, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Amount.Currency = r.Currency
		items = append(items, e)
	}
	return items, rows.Err()
}

func (r ExpenseRepository) ListBetween(ctx context.Context, from, to *time.Time) ([]domain.Expense, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, item, amount, category, created_at
		FROM expenses
		WHERE ($1::timestamptz IS NULL OR created_at >= $1)
		  AND ($2::timestamptz IS NULL OR created_at < $2 + interval '1 day')
		ORDER BY created_at DESC, id DESC
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []domain.Expense
	for rows.Next() {
		var e domain.Expense
		if err := rows.Scan(&e.ID, &e.Item, &e.Amount.Amount, &e.Category, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Amount.Currency = r.Currency
		items = append(items, e)
	}
	return items, rows.Err()
}
