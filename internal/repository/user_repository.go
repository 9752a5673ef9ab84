package repository

import (
	"context"
	"errors"

	"github.com/aibeeinyass/rideboss-system/internal/db"
	"github.com/aibeeinyass/rideboss-system/internal/domain"
	"github.com/jackc/pgx/v5"
)

// UserRepository owns operator accounts. Accounts are deactivated rather
// than deleted so ledger rows keep pointing at a real username.
type UserRepository struct {
	DB *db.Postgres
}

func (r UserRepository) Get(ctx context.Context, username string) (*domain.User, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		SELECT username, name, password_hash, role, dept, active, created_at
		FROM users
		WHERE username = $1
	`, username)
	return scanUser(row)
}

func (r UserRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT username, name, password_hash, role, dept, active, created_at
		FROM users
		ORDER BY username ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *u)
	}
	return items, rows.Err()
}

func (r UserRepository) Save(ctx context.Context, u domain.User) (*domain.User, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO users (username, name, password_hash, role, dept, active, created_at)
		VALUES ($1,$2,$3,$4,$5,$6, now())
		ON CONFLICT (username) DO UPDATE SET
			name = EXCLUDED.name,
			password_hash = COALESCE(EXCLUDED.password_hash, users.password_hash),
			role = EXCLUDED.role,
			dept = EXCLUDED.dept,
			active = EXCLUDED.active
		RETURNING username, name, password_hash, role, dept, active, created_at
	`, u.Username, u.Name, u.PasswordHash, string(u.Role), string(u.Dept), u.Active)
	return scanUser(row)
}

func (r UserRepository) SetActive(ctx context.Context, username string, active bool) error {
	tag, err := r.DB.Pool.Exec(ctx, `
		UPDATE users SET active = $1 WHERE username = $2
	`, active, username)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AvailableByDepartment is the set difference between active operators of
// a department and the staff currently assigned on live bays. It runs the
// query fresh every time; sessions churn too fast to cache this.
func (r UserRepository) AvailableByDepartment(ctx context.Context, dept domain.Department) ([]domain.User, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT username, name, password_hash, role, dept, active, created_at
		FROM users
		WHERE active
		  AND dept = $1
		  AND username NOT IN (SELECT staff FROM live_bays)
		ORDER BY username ASC
	`, string(dept))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *u)
	}
	return items, rows.Err()
}

func scanUser(row interface {
	Scan(dest ...any) error
}) (*domain.User, error) {
	var (
		u    domain.User
		role string
		dept string
	)
	if err := row.Scan(&u.Username, &u.Name, &u.PasswordHash, &role, &dept, &u.Active, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	u.Role = domain.UserRole(role)
	u.Dept = domain.Department(dept)
	return &u, nil
}

// IsDuplicate detects unique constraint violation.
func IsDuplicate(err error) bool {
	return db.IsUniqueViolation(err)
}
