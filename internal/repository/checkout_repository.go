package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aibeeinyass/rideboss-system/internal/db"
	"github.com/aibeeinyass/rideboss-system/internal/domain"
	"github.com/aibeeinyass/rideboss-system/internal/ports"
	"github.com/jackc/pgx/v5"
)

// CheckoutRepository commits authorized transactions. Every authorization is
// a single pgx transaction so a failure leaves no partial ledger state.
type CheckoutRepository struct {
	DB       *db.Postgres
	Currency string
}

func (r CheckoutRepository) CreateWash(ctx context.Context, in ports.WashSaleInput) (*domain.Receipt, error) {
	tx, err := r.DB.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	code := fmt.Sprintf("WSH-%d", now.UnixMilli())

	var remaining *int
	if in.UseCredit {
		// Conditional decrement: the WHERE clause is the balance check, so
		// two concurrent debits can never both pass against a balance of 1.
		var bal int
		err := tx.QueryRow(ctx, `
			UPDATE memberships
			SET balance_washes = balance_washes - 1, updated_at = now()
			WHERE plate = $1 AND balance_washes > 0
			RETURNING balance_washes
		`, in.Plate).Scan(&bal)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, domain.ErrInsufficientCredit
			}
			return nil, err
		}
		remaining = &bal
	}

	total := in.Total
	if in.UseCredit {
		// Ledger totals reflect actual cash collected.
		total = 0
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO sales (plate, services, total, method, staff, tx_type, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, in.Plate, in.ServiceDetail, total, string(in.Method), in.Staff, string(domain.SaleWash), now); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO customers (plate, name, phone, visits, last_visit)
		VALUES ($1, $2, $3, 1, $4)
		ON CONFLICT (plate) DO UPDATE SET
			name = COALESCE(NULLIF(EXCLUDED.name, ''), customers.name),
			phone = COALESCE(NULLIF(EXCLUDED.phone, ''), customers.phone),
			visits = customers.visits + 1,
			last_visit = EXCLUDED.last_visit
	`, in.Plate, in.CustomerName, in.CustomerPhone, now.Format("2006-01-02")); err != nil {
		return nil, err
	}

	tag, err := tx.Exec(ctx, `
		INSERT INTO live_bays (plate, status, entry_time, staff, vehicle_type, service_detail)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (plate) DO NOTHING
	`, in.Plate, string(domain.BayWet), now, in.Staff, in.VehicleType, in.ServiceDetail)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("%w: %s already has an active session", domain.ErrConflict, in.Plate)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	plate := in.Plate
	return &domain.Receipt{
		Code:            code,
		Plate:           &plate,
		Type:            domain.SaleWash,
		Lines:           in.Lines,
		Total:           domain.Money{Amount: total, Currency: r.Currency},
		Method:          in.Method,
		Staff:           in.Staff,
		IssuedAt:        now,
		RemainingCredit: remaining,
		LowCredit:       remaining != nil && *remaining <= 1,
	}, nil
}

func (r CheckoutRepository) CreateLounge(ctx context.Context, in ports.LoungeSaleInput) (*domain.Receipt, error) {
	tx, err := r.DB.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	code := fmt.Sprintf("LNG-%d", now.UnixMilli())

	for _, line := range in.Lines {
		if err := decrementStock(ctx, tx, line.Name, line.Qty, "lounge sale "+code); err != nil {
			return nil, err
		}
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO sales (plate, services, total, method, staff, tx_type, created_at)
		VALUES (NULL,$1,$2,$3,$4,$5,$6)
	`, summarizeLines(in.Lines), in.Total, string(in.Method), in.Staff, string(domain.SaleLounge), now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &domain.Receipt{
		Code:     code,
		Type:     domain.SaleLounge,
		Lines:    in.Lines,
		Total:    domain.Money{Amount: in.Total, Currency: r.Currency},
		Method:   in.Method,
		Staff:    in.Staff,
		IssuedAt: now,
	}, nil
}

// decrementStock locks the inventory row, rejects sales that would drive
// stock negative and records the movement in stock_history.
func decrementStock(ctx context.Context, tx pgx.Tx, item string, qty int, note string) error {
	var current int
	err := tx.QueryRow(ctx, `
		SELECT stock FROM inventory WHERE item = $1 FOR UPDATE
	`, item).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: %s", domain.ErrNotFound, item)
		}
		return err
	}
	if qty <= 0 {
		qty = 1
	}
	if current < qty {
		return fmt.Errorf("%w: %s has %d left", domain.ErrOutOfStock, item, current)
	}
	remaining := current - qty
	if _, err := tx.Exec(ctx, `
		UPDATE inventory SET stock = $1 WHERE item = $2
	`, remaining, item); err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO stock_history (item, change, remaining, note, created_at)
		VALUES ($1,$2,$3,$4, now())
	`, item, -qty, remaining, note)
	return err
}

func summarizeLines(lines []domain.ReceiptLine) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += ", "
		}
		if l.Qty > 1 {
			out += fmt.Sprintf("%s x%d", l.Name, l.Qty)
		} else {
			out += l.Name
		}
	}
	return out
}
