package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/aibeeinyass/rideboss-system/internal/db"
	"github.com/aibeeinyass/rideboss-system/internal/domain"
	"github.com/jackc/pgx/v5"
)

// BayRepository owns the live_bays table: one row per active vehicle
// session, hard-deleted on release.
type BayRepository struct {
	DB *db.Postgres
}

func (r BayRepository) Get(ctx context.Context, plate string) (*domain.BaySession, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		SELECT plate, status, entry_time, staff, vehicle_type, service_detail
		FROM live_bays
		WHERE plate = $1
	`, plate)
	var s domain.BaySession
	var status string
	if err := row.Scan(&s.Plate, &status, &s.EntryTime, &s.Staff, &s.VehicleType, &s.ServiceDetail); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	s.Status = domain.BayStatus(status)
	return &s, nil
}

func (r BayRepository) ListActive(ctx context.Context) ([]domain.BaySession, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT plate, status, entry_time, staff, vehicle_type, service_detail
		FROM live_bays
		ORDER BY entry_time ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []domain.BaySession
	for rows.Next() {
		var s domain.BaySession
		var status string
		if err := rows.Scan(&s.Plate, &status, &s.EntryTime, &s.Staff, &s.VehicleType, &s.ServiceDetail); err != nil {
			return nil, err
		}
		s.Status = domain.BayStatus(status)
		items = append(items, s)
	}
	return items, rows.Err()
}

// Advance moves a session from the wet to the dry stage and reassigns
// staff. The row is locked so a racing release or second advance sees the
// committed state.
func (r BayRepository) Advance(ctx context.Context, plate, staff string) (*domain.BaySession, error) {
	tx, err := r.DB.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var status string
	err = tx.QueryRow(ctx, `
		SELECT status FROM live_bays WHERE plate = $1 FOR UPDATE
	`, plate).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	next, ok := domain.BayStatus(status).Next()
	if !ok {
		return nil, fmt.Errorf("%w: %s is already in the dry bay", domain.ErrConflict, plate)
	}

	var s domain.BaySession
	var newStatus string
	err = tx.QueryRow(ctx, `
		UPDATE live_bays
		SET status = $1, staff = $2
		WHERE plate = $3
		RETURNING plate, status, entry_time, staff, vehicle_type, service_detail
	`, string(next), staff, plate).Scan(&s.Plate, &newStatus, &s.EntryTime, &s.Staff, &s.VehicleType, &s.ServiceDetail)
	if err != nil {
		return nil, err
	}
	s.Status = domain.BayStatus(newStatus)

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &s, nil
}

// Delete releases a session. Missing rows report ErrNotFound so a double
// release stays a soft error.
func (r BayRepository) Delete(ctx context.Context, plate string) error {
	tag, err := r.DB.Pool.Exec(ctx, `DELETE FROM live_bays WHERE plate = $1`, plate)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
