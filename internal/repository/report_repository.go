package repository

import (
	"context"
	"time"

	"github.com/aibeeinyass/rideboss-system/internal/db"
	"github.com/aibeeinyass/rideboss-system/internal/domain"
	"github.com/aibeeinyass/rideboss-system/internal/ports"
)

// ReportRepository computes read-side aggregates on demand from the full
// history. No incremental counters are maintained.
type ReportRepository struct {
	DB *db.Postgres
}

func (r ReportRepository) RevenueByType(ctx context.Context) (map[domain.SaleType]int64, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT tx_type, COALESCE(SUM(total),0)
		FROM sales
		GROUP BY tx_type
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[domain.SaleType]int64{
		domain.SaleWash:   0,
		domain.SaleLounge: 0,
	}
	for rows.Next() {
		var typ string
		var total int64
		if err := rows.Scan(&typ, &total); err != nil {
			return nil, err
		}
		out[domain.SaleType(typ)] = total
	}
	return out, rows.Err()
}

// CardRevenue sums every issuance ever recorded, so re-issuing a card never
// erases its earlier contribution.
func (r ReportRepository) CardRevenue(ctx context.Context) (int64, error) {
	var total int64
	err := r.DB.Pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(sale_price),0) FROM membership_issues
	`).Scan(&total)
	return total, err
}

func (r ReportRepository) ExpenseTotal(ctx context.Context) (int64, error) {
	var total int64
	err := r.DB.Pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount),0) FROM expenses
	`).Scan(&total)
	return total, err
}

func (r ReportRepository) StaffPerformance(ctx context.Context) ([]ports.StaffPerformance, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT staff, COUNT(*), COALESCE(SUM(total),0)
		FROM sales
		WHERE tx_type = 'wash' AND staff <> ''
		GROUP BY staff
		ORDER BY COALESCE(SUM(total),0) DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ports.StaffPerformance
	for rows.Next() {
		var p ports.StaffPerformance
		if err := rows.Scan(&p.Staff, &p.Washes, &p.Revenue); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (r ReportRepository) SalesSeries(ctx context.Context, days int) ([]ports.SalesPoint, error) {
	start := time.Now().AddDate(0, 0, -days+1).Format("2006-01-02")
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT created_at::date::text, COALESCE(SUM(total),0)
		FROM sales
		WHERE created_at >= $1::date
		GROUP BY created_at::date
		ORDER BY created_at::date ASC
	`, start)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var points []ports.SalesPoint
	for rows.Next() {
		var p ports.SalesPoint
		if err := rows.Scan(&p.Label, &p.Amount); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}
