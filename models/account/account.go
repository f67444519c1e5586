package account

import (
	"errors"
	"time"
)

var (
	ErrEmailExists     = errors.New("email already exists")
	ErrWalletExists    = errors.New("wallet already exists")
	ErrAccountNotFound = errors.New("account not found")
)

// Role is one of the fixed participant roles in the supply chain.
type Role string

const (
	RoleManufacturer Role = "manufacturer"
	RoleDistributor  Role = "distributor"
	RolePharmacist   Role = "pharmacist"
	RoleAdmin        Role = "admin"
)

// Valid reports whether the role belongs to the closed role set.
func (r Role) Valid() bool {
	switch r {
	case RoleManufacturer, RoleDistributor, RolePharmacist, RoleAdmin:
		return true
	}
	return false
}

// RoleNames maps roles to display names
var RoleNames = map[Role]string{
	RoleManufacturer: "Manufacturer",
	RoleDistributor:  "Distributor",
	RolePharmacist:   "Pharmacist",
	RoleAdmin:        "Admin",
}

// Account represents a user account.
// PasswordHash may be empty: accounts created before password support
// have none and cannot log in until an admin sets one.
type Account struct {
	ID           int       `json:"id"`
	FullName     string    `json:"fullName"`
	Organization string    `json:"organization"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Role         Role      `json:"role"`
	WalletID     string    `json:"walletId"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Store is the credential store consumed by the auth core and the handlers.
type Store interface {
	Create(a *Account) (*Account, error)
	FindByEmail(email string) (*Account, error)
	FindByWallet(walletID string) (*Account, error)
	FindByID(id int) (*Account, error)
	All() ([]*Account, error)
	List(query string, page, limit int) (*ListResult, error)
	Update(id int, fullName, organization, phone string, role Role) (*Account, error)
	Delete(id int) error
}
