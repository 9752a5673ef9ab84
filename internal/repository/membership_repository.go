package repository

import (
	"context"
	"errors"

	"github.com/aibeeinyass/rideboss-system/internal/db"
	"github.com/aibeeinyass/rideboss-system/internal/domain"
	"github.com/aibeeinyass/rideboss-system/internal/ports"
	"github.com/jackc/pgx/v5"
)

// MembershipRepository owns the prepaid wash-credit accounts and the
// append-only issuance ledger behind card revenue reporting.
type MembershipRepository struct {
	DB       *db.Postgres
	Currency string
}

func (r MembershipRepository) Get(ctx context.Context, plate string) (*domain.Membership, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		SELECT plate, balance_washes, card_type, sale_price, updated_at
		FROM memberships
		WHERE plate = $1
	`, plate)
	return r.scan(row)
}

func (r MembershipRepository) List(ctx context.Context) ([]domain.Membership, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT plate, balance_washes, card_type, sale_price, updated_at
		FROM memberships
		ORDER BY plate ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []domain.Membership
	for rows.Next() {
		var m domain.Membership
		if err := rows.Scan(&m.Plate, &m.Balance, &m.CardType, &m.SalePrice.Amount, &m.UpdatedAt); err != nil {
			return nil, err
		}
		m.SalePrice.Currency = r.Currency
		items = append(items, m)
	}
	return items, rows.Err()
}

// Issue replaces the account for the plate and appends a row to the
// issuance ledger in the same transaction.
func (r MembershipRepository) Issue(ctx context.Context, in ports.IssueMembershipInput) (*domain.Membership, error) {
	tx, err := r.DB.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `
		INSERT INTO memberships (plate, balance_washes, card_type, sale_price, updated_at)
		VALUES ($1,$2,$3,$4, now())
		ON CONFLICT (plate) DO UPDATE SET
			balance_washes = EXCLUDED.balance_washes,
			card_type = EXCLUDED.card_type,
			sale_price = EXCLUDED.sale_price,
			updated_at = now()
		RETURNING plate, balance_washes, card_type, sale_price, updated_at
	`, in.Plate, in.Credits, in.CardType, in.SalePrice)
	m, err := r.scan(row)
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO membership_issues (plate, card_type, credits, sale_price, created_at)
		VALUES ($1,$2,$3,$4, now())
	`, in.Plate, in.CardType, in.Credits, in.SalePrice); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

// ConsumeOne debits a single wash credit. The balance check and the
// decrement are one statement, so concurrent debits for the same plate
// serialize on the row and at most `balance` of them succeed.
func (r MembershipRepository) ConsumeOne(ctx context.Context, plate string) (int, error) {
	var balance int
	err := r.DB.Pool.QueryRow(ctx, `
		UPDATE memberships
		SET balance_washes = balance_washes - 1, updated_at = now()
		WHERE plate = $1 AND balance_washes > 0
		RETURNING balance_washes
	`, plate).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrInsufficientCredit
		}
		return 0, err
	}
	return balance, nil
}

// TopUp is a manager override that sets the balance outright.
func (r MembershipRepository) TopUp(ctx context.Context, plate string, newBalance int) (*domain.Membership, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		UPDATE memberships
		SET balance_washes = $1, updated_at = now()
		WHERE plate = $2
		RETURNING plate, balance_washes, card_type, sale_price, updated_at
	`, newBalance, plate)
	return r.scan(row)
}

func (r MembershipRepository) Delete(ctx context.Context, plate string) error {
	tag, err := r.DB.Pool.Exec(ctx, `DELETE FROM memberships WHERE plate = $1`, plate)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r MembershipRepository) scan(row pgx.Row) (*domain.Membership, error) {
	var m domain.Membership
	if err := row.Scan(&m.Plate, &m.Balance, &m.CardType, &m.SalePrice.Amount, &m.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	m.SalePrice.Currency = r.Currency
	return &m, nil
}
