package repository

import (
	"context"

	"github.com/aibeeinyass/rideboss-system/internal/db"
	"github.com/aibeeinyass/rideboss-system/internal/domain"
)

// CatalogRepository owns the wash price list and the lounge inventory.
type CatalogRepository struct {
	DB       *db.Postgres
	Currency string
}

func (r CatalogRepository) ServicePrices(ctx context.Context) ([]domain.WashService, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT service, price FROM wash_prices ORDER BY service ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []domain.WashService
	for rows.Next() {
		var s domain.WashService
		if err := rows.Scan(&s.Name, &s.Price.Amount); err != nil {
			return nil, err
		}
		s.Price.Currency = r.Currency
		items = append(items, s)
	}
	return items, rows.Err()
}

func (r CatalogRepository) UpsertService(ctx context.Context, name string, price int64) (*domain.WashService, error) {
	var s domain.WashService
	err := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO wash_prices (service, price)
		VALUES ($1,$2)
		ON CONFLICT (service) DO UPDATE SET price = EXCLUDED.price
		RETURNING service, price
	`, name, price).Scan(&s.Name, &s.Price.Amount)
	if err != nil {
		return nil, err
	}
	s.Price.Currency = r.Currency
	return &s, nil
}

func (r CatalogRepository) ListInventory(ctx context.Context) ([]domain.InventoryItem, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT item, stock, unit, price FROM inventory ORDER BY item ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []domain.InventoryItem
	for rows.Next() {
		var it domain.InventoryItem
		if err := rows.Scan(&it.Name, &it.Stock, &it.Unit, &it.Price.Amount); err != nil {
			return nil, err
		}
		it.Price.Currency = r.Currency
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r CatalogRepository) UpsertItem(ctx context.Context, item domain.InventoryItem) (*domain.InventoryItem, error) {
	var out domain.InventoryItem
	err := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO inventory (item, stock, unit, price)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (item) DO UPDATE SET
			stock = EXCLUDED.stock,
			unit = EXCLUDED.unit,
			price = EXCLUDED.price
		RETURNING item, stock, unit, price
	`, item.Name, item.Stock, item.Unit, item.Price.Amount).Scan(&out.Name, &out.Stock, &out.Unit, &out.Price.Amount)
	if err != nil {
		return nil, err
	}
	out.Price.Currency = r.Currency
	return &out, nil
}

// StockHistory lists movements for one inventory item, newest first.
func (r CatalogRepository) StockHistory(ctx context.Context, item string, limit int) ([]map[string]any, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, change, remaining, note, created_at
		FROM stock_history
		WHERE item = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`, item, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []map[string]any
	for rows.Next() {
		var id int64
		var change, remaining int
		var note string
		var createdAt any
		if err := rows.Scan(&id, &change, &remaining, &note, &createdAt); err != nil {
			return nil, err
		}
		items = append(items, map[string]any{
			"id":        id,
			"change":    change,
			"remaining": remaining,
			"note":      note,
			"createdAt": createdAt,
		})
	}
	return items, rows.Err()
}
