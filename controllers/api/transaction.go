package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/julienschmidt/httprouter"

	"github.com/pharmatrace/dashboard-api/auth"
	"github.com/pharmatrace/dashboard-api/models/account"
	"github.com/pharmatrace/dashboard-api/models/transaction"
)

var transactionRepo transaction.Store = &transaction.Postgres{}

// CreateTransactionRequest represents a transaction log entry request
type CreateTransactionRequest struct {
	ProductID   *int   `json:"productId"`
	Action      string `json:"action"`
	FromUserID  *int   `json:"fromUserId"`
	ToUserID    *int   `json:"toUserId"`
	TxHash      string `json:"txHash"`
	BlockNumber *int   `json:"blockNumber"`
	Status      string `json:"status"`
}

// ListTransactions returns transactions visible to the current user.
// Non-admins only see transactions they are a party to.
func ListTransactions(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	acc := auth.AccountFromContext(r.Context())
	if acc == nil {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "not authenticated"})
		return
	}

	q := r.URL.Query()
	filter := transaction.Filter{}

	if v := q.Get("product_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid product_id"})
			return
		}
		filter.ProductID = id
	}
	if v := q.Get("user_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid user_id"})
			return
		}
		filter.UserID = id
	}
	if v := q.Get("status"); v != "" && v != "all" {
		if !transaction.ValidStatus(v) {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid status"})
			return
		}
		filter.Status = v
	}

	if acc.Role != account.RoleAdmin {
		filter.ViewerID = acc.ID
	}

	transactions, err := transactionRepo.List(filter)
	if err != nil {
		log.WithError(err).Error("Transaction listing failed")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to fetch transactions"})
		return
	}

	writeJSON(w, http.StatusOK, transactions)
}

// GetTransaction returns a single transaction
func GetTransaction(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := strconv.Atoi(ps.ByName("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid transaction ID"})
		return
	}

	t, err := transactionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, transaction.ErrTransactionNotFound) {
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "transaction not found"})
			return
		}
		log.WithError(err).Error("Transaction lookup failed")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to fetch transaction"})
		return
	}

	writeJSON(w, http.StatusOK, t)
}

// CreateTransaction records a new transaction log entry
func CreateTransaction(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.Action == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "action is required"})
		return
	}

	status := req.Status
	if status == "" {
		status = transaction.StatusPending
	}
	if !transaction.ValidStatus(status) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid status"})
		return
	}

	t, err := transactionRepo.Create(&transaction.Transaction{
		ProductID:   req.ProductID,
		Action:      req.Action,
		FromUserID:  req.FromUserID,
		ToUserID:    req.ToUserID,
		TxHash:      req.TxHash,
		BlockNumber: req.BlockNumber,
		Status:      status,
	})
	if err != nil {
		log.WithError(err).Error("Transaction creation failed")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to create transaction"})
		return
	}

	writeJSON(w, http.StatusCreated, t)
}
