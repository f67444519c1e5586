package stats

import (
	"context"

	"github.com/pharmatrace/dashboard-api/connections"
	"github.com/pharmatrace/dashboard-api/models/account"
	"github.com/pharmatrace/dashboard-api/models/transaction"
)

// UserStats represents user counts per role
type UserStats struct {
	Total         int `json:"total"`
	Manufacturers int `json:"manufacturers"`
	Distributors  int `json:"distributors"`
	Pharmacists   int `json:"pharmacists"`
	Admins        int `json:"admins"`
}

// TransactionStats represents transaction counts per status
type TransactionStats struct {
	Total     int `json:"total"`
	Confirmed int `json:"confirmed"`
	Pending   int `json:"pending"`
	Failed    int `json:"failed"`
}

// Dashboard represents the dashboard stats API response
type Dashboard struct {
	Users        UserStats        `json:"users"`
	Transactions TransactionStats `json:"transactions"`
}

// Postgres computes dashboard stats from the primary database
type Postgres struct{}

// Compute aggregates user and transaction counts
func (p *Postgres) Compute() (*Dashboard, error) {
	ctx := context.Background()
	pool := connections.Postgres()

	var d Dashboard

	rows, err := pool.Query(ctx, `
		SELECT role, COUNT(*) FROM users GROUP BY role
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var role account.Role
		var count int
		if err := rows.Scan(&role, &count); err != nil {
			return nil, err
		}
		d.Users.Total += count
		switch role {
		case account.RoleManufacturer:
			d.Users.Manufacturers = count
		case account.RoleDistributor:
			d.Users.Distributors = count
		case account.RolePharmacist:
			d.Users.Pharmacists = count
		case account.RoleAdmin:
			d.Users.Admins = count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	txRows, err := pool.Query(ctx, `
		SELECT status, COUNT(*) FROM transactions GROUP BY status
	`)
	if err != nil {
		return nil, err
	}
	defer txRows.Close()

	for txRows.Next() {
		var status string
		var count int
		if err := txRows.Scan(&status, &count); err != nil {
			return nil, err
		}
		d.Transactions.Total += count
		switch status {
		case transaction.StatusConfirmed:
			d.Transactions.Confirmed = count
		case transaction.StatusPending:
			d.Transactions.Pending = count
		case transaction.StatusFailed:
			d.Transactions.Failed = count
		}
	}
	if err := txRows.Err(); err != nil {
		return nil, err
	}

	return &d, nil
}
