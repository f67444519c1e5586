package transaction

import (
	"errors"
	"time"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
)

// Transaction statuses
const (
	StatusConfirmed = "Confirmed"
	StatusPending   = "Pending"
	StatusFailed    = "Failed"
)

// ValidStatus reports whether the status belongs to the closed status set.
func ValidStatus(status string) bool {
	switch status {
	case StatusConfirmed, StatusPending, StatusFailed:
		return true
	}
	return false
}

// Transaction represents one entry in the supply-chain transaction log.
// ProductID is an opaque reference owned by the product catalog.
type Transaction struct {
	ID           int       `json:"id"`
	ProductID    *int      `json:"productId"`
	Action       string    `json:"action"`
	FromUserID   *int      `json:"fromUserId"`
	ToUserID     *int      `json:"toUserId"`
	TxHash       string    `json:"txHash"`
	BlockNumber  *int      `json:"blockNumber"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	FromUserName string    `json:"fromUserName,omitempty"`
	ToUserName   string    `json:"toUserName,omitempty"`
	FromUserOrg  string    `json:"fromUserOrg,omitempty"`
	ToUserOrg    string    `json:"toUserOrg,omitempty"`
}

// Filter narrows a transaction listing. ViewerID scopes the result to
// rows where the viewer is a party; it is zero for admins, who see all.
type Filter struct {
	ProductID int
	UserID    int
	Status    string
	ViewerID  int
}

// Store is the transaction log consumed by the handlers.
type Store interface {
	Create(t *Transaction) (*Transaction, error)
	FindByID(id int) (*Transaction, error)
	List(f Filter) ([]*Transaction, error)
}
