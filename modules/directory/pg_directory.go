package directory

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PGDirectory reads accounts from the console's users table.
type PGDirectory struct {
	pool *pgxpool.Pool
}

// NewPGDirectory creates a PostgreSQL-backed directory.
func NewPGDirectory(pool *pgxpool.Pool) *PGDirectory {
	return &PGDirectory{pool: pool}
}

func (d *PGDirectory) ListAccounts(ctx context.Context, filter RoleFilter) ([]Account, error) {
	query := `SELECT id, name, email, role FROM users`
	args := []any{}
	if filter.Role != "" {
		query += ` WHERE role = $1`
		args = append(args, string(filter.Role))
	}
	query += ` ORDER BY created_at`

	rows, err := d.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []Account
	for rows.Next() {
		var a Account
		if err := rows.Scan(&a.ID, &a.Name, &a.Email, &a.Role); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read accounts: %w", err)
	}
	return accounts, nil
}

func (d *PGDirectory) FindAccounts(ctx context.Context, ids []string) ([]Account, error) {
	if len(ids) == 0 {
		return []Account{}, nil
	}

	rows, err := d.pool.Query(ctx,
		`SELECT id, name, email, role FROM users WHERE id = ANY($1) ORDER BY created_at`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to find accounts: %w", err)
	}
	defer rows.Close()

	var accounts []Account
	for rows.Next() {
		var a Account
		if err := rows.Scan(&a.ID, &a.Name, &a.Email, &a.Role); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read accounts: %w", err)
	}
	return accounts, nil
}

var _ Directory = (*PGDirectory)(nil)
