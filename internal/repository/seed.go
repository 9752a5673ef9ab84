package repository

import (
	"context"

	"github.com/aibeeinyass/rideboss-system/internal/domain"
)

// SeedDefaults loads the opening price list and lounge shelf.
func (r CatalogRepository) SeedDefaults(ctx context.Context) error {
	services := []domain.WashService{
		{Name: "Standard Wash", Price: domain.Money{Amount: 5000}},
		{Name: "Executive Detail", Price: domain.Money{Amount: 15000}},
		{Name: "Engine Steam", Price: domain.Money{Amount: 10000}},
		{Name: "Ceramic Wax", Price: domain.Money{Amount: 25000}},
		{Name: "Interior Deep Clean", Price: domain.Money{Amount: 12000}},
	}
	for _, s := range services {
		// Idempotent: managers may have repriced since first boot.
		_, err := r.DB.Pool.Exec(ctx, `
			INSERT INTO wash_prices (service, price)
			VALUES ($1,$2)
			ON CONFLICT (service) DO NOTHING
		`, s.Name, s.Price.Amount)
		if err != nil {
			return err
		}
	}

	items := []domain.InventoryItem{
		{Name: "Bottled Water", Stock: 48, Unit: "bottle", Price: domain.Money{Amount: 500}},
		{Name: "Malt Drink", Stock: 24, Unit: "can", Price: domain.Money{Amount: 1000}},
		{Name: "Meat Pie", Stock: 12, Unit: "pcs", Price: domain.Money{Amount: 1500}},
	}
	for _, it := range items {
		_, err := r.DB.Pool.Exec(ctx, `
			INSERT INTO inventory (item, stock, unit, price)
			VALUES ($1,$2,$3,$4)
			ON CONFLICT (item) DO NOTHING
		`, it.Name, it.Stock, it.Unit, it.Price.Amount)
		if err != nil {
			return err
		}
	}
	return nil
}
