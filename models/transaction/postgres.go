package transaction

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/pharmatrace/dashboard-api/connections"
)

const transactionColumns = `
	t.id, t.product_id, t.action, t.from_user_id, t.to_user_id,
	COALESCE(t.tx_hash, ''), t.block_number, t.status, t.created_at,
	COALESCE(f.full_name, ''), COALESCE(tu.full_name, ''),
	COALESCE(f.organization, ''), COALESCE(tu.organization, '')`

const transactionJoins = `
	FROM transactions t
	LEFT JOIN users f ON t.from_user_id = f.id
	LEFT JOIN users tu ON t.to_user_id = tu.id`

// Postgres is the PostgreSQL repository for transactions
type Postgres struct{}

func scanTransaction(row pgx.Row) (*Transaction, error) {
	var t Transaction
	err := row.Scan(
		&t.ID,
		&t.ProductID,
		&t.Action,
		&t.FromUserID,
		&t.ToUserID,
		&t.TxHash,
		&t.BlockNumber,
		&t.Status,
		&t.CreatedAt,
		&t.FromUserName,
		&t.ToUserName,
		&t.FromUserOrg,
		&t.ToUserOrg,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Create records a new transaction
func (p *Postgres) Create(t *Transaction) (*Transaction, error) {
	ctx := context.Background()
	pool := connections.Postgres()

	var id int
	err := pool.QueryRow(ctx, `
		INSERT INTO transactions (product_id, action, from_user_id, to_user_id, tx_hash, block_number, status)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7)
		RETURNING id
	`, t.ProductID, t.Action, t.FromUserID, t.ToUserID, t.TxHash, t.BlockNumber, t.Status).Scan(&id)
	if err != nil {
		return nil, err
	}

	return p.FindByID(id)
}

// FindByID finds a transaction by ID, joined with both parties
func (p *Postgres) FindByID(id int) (*Transaction, error) {
	ctx := context.Background()
	pool := connections.Postgres()

	return scanTransaction(pool.QueryRow(ctx, `
		SELECT `+transactionColumns+transactionJoins+`
		WHERE t.id = $1
	`, id))
}

// List returns transactions matching the filter, newest first
func (p *Postgres) List(f Filter) ([]*Transaction, error) {
	ctx := context.Background()
	pool := connections.Postgres()

	var conditions []string
	var args []interface{}

	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.ProductID > 0 {
		conditions = append(conditions, "t.product_id = "+arg(f.ProductID))
	}
	if f.UserID > 0 {
		ph := arg(f.UserID)
		conditions = append(conditions, "(t.from_user_id = "+ph+" OR t.to_user_id = "+ph+")")
	}
	if f.Status != "" {
		conditions = append(conditions, "t.status = "+arg(f.Status))
	}
	if f.ViewerID > 0 {
		ph := arg(f.ViewerID)
		conditions = append(conditions, "(t.from_user_id = "+ph+" OR t.to_user_id = "+ph+")")
	}

	query := `SELECT ` + transactionColumns + transactionJoins
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY t.created_at DESC"

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	if transactions == nil {
		transactions = []*Transaction{}
	}
	return transactions, rows.Err()
}
