package account

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pharmatrace/dashboard-api/connections"
)

const accountColumns = `id, full_name, organization, COALESCE(email, ''), phone, role, wallet_id, COALESCE(password, ''), created_at, updated_at`

// Postgres is the PostgreSQL repository for accounts
type Postgres struct{}

func scanAccount(row pgx.Row) (*Account, error) {
	var a Account
	err := row.Scan(
		&a.ID,
		&a.FullName,
		&a.Organization,
		&a.Email,
		&a.Phone,
		&a.Role,
		&a.WalletID,
		&a.PasswordHash,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Create creates a new account. PasswordHash may be empty for accounts
// added through the admin directory.
func (p *Postgres) Create(a *Account) (*Account, error) {
	ctx := context.Background()
	pool := connections.Postgres()

	row := pool.QueryRow(ctx, `
		INSERT INTO users (full_name, organization, email, phone, role, wallet_id, password)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, NULLIF($7, ''))
		RETURNING `+accountColumns+`
	`, a.FullName, a.Organization, a.Email, a.Phone, a.Role, a.WalletID, a.PasswordHash)

	created, err := scanAccount(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if strings.Contains(pgErr.ConstraintName, "wallet") {
				return nil, ErrWalletExists
			}
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return created, nil
}

// FindByEmail finds an account by email
func (p *Postgres) FindByEmail(email string) (*Account, error) {
	ctx := context.Background()
	pool := connections.Postgres()

	return scanAccount(pool.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM users
		WHERE email = $1
	`, email))
}

// FindByWallet finds an account by wallet identifier
func (p *Postgres) FindByWallet(walletID string) (*Account, error) {
	ctx := context.Background()
	pool := connections.Postgres()

	return scanAccount(pool.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM users
		WHERE wallet_id = $1 AND wallet_id <> ''
	`, walletID))
}

// FindByID finds an account by ID
func (p *Postgres) FindByID(id int) (*Account, error) {
	ctx := context.Background()
	pool := connections.Postgres()

	return scanAccount(pool.QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM users
		WHERE id = $1
	`, id))
}

// All returns every account, newest first (for the user directory)
func (p *Postgres) All() ([]*Account, error) {
	ctx := context.Background()
	pool := connections.Postgres()

	rows, err := pool.Query(ctx, `
		SELECT `+accountColumns+`
		FROM users
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAccounts(rows)
}

// ListResult represents paginated list result
type ListResult struct {
	Users []*Account `json:"users"`
	Total int        `json:"total"`
	Page  int        `json:"page"`
	Limit int        `json:"limit"`
}

// List returns accounts with pagination and search (for admin)
func (p *Postgres) List(query string, page, limit int) (*ListResult, error) {
	ctx := context.Background()
	pool := connections.Postgres()

	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	offset := (page - 1) * limit

	var total int
	var rows pgx.Rows
	var err error

	if query != "" {
		searchPattern := "%" + query + "%"

		err = pool.QueryRow(ctx, `
			SELECT COUNT(*) FROM users WHERE email ILIKE $1 OR full_name ILIKE $1
		`, searchPattern).Scan(&total)
		if err != nil {
			return nil, err
		}

		rows, err = pool.Query(ctx, `
			SELECT `+accountColumns+`
			FROM users
			WHERE email ILIKE $1 OR full_name ILIKE $1
			ORDER BY created_at DESC
			LIMIT $2 OFFSET $3
		`, searchPattern, limit, offset)
	} else {
		err = pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total)
		if err != nil {
			return nil, err
		}

		rows, err = pool.Query(ctx, `
			SELECT `+accountColumns+`
			FROM users
			ORDER BY created_at DESC
			LIMIT $1 OFFSET $2
		`, limit, offset)
	}

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users, err := collectAccounts(rows)
	if err != nil {
		return nil, err
	}

	return &ListResult{
		Users: users,
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

// Update updates an account's profile fields and role
func (p *Postgres) Update(id int, fullName, organization, phone string, role Role) (*Account, error) {
	ctx := context.Background()
	pool := connections.Postgres()

	return scanAccount(pool.QueryRow(ctx, `
		UPDATE users
		SET full_name = $2, organization = $3, phone = $4, role = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING `+accountColumns+`
	`, id, fullName, organization, phone, role))
}

// Delete deletes an account
func (p *Postgres) Delete(id int) error {
	ctx := context.Background()
	pool := connections.Postgres()

	result, err := pool.Exec(ctx, `
		DELETE FROM users
		WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func collectAccounts(rows pgx.Rows) ([]*Account, error) {
	var accounts []*Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	if accounts == nil {
		accounts = []*Account{}
	}
	return accounts, rows.Err()
}
