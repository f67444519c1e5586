package api

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/julienschmidt/httprouter"

	"github.com/pharmatrace/dashboard-api/models/account"
)

// CreateUserRequest represents an admin directory-entry creation request.
// No password: the account cannot log in until an admin sets one.
type CreateUserRequest struct {
	FullName     string `json:"fullName"`
	Organization string `json:"organization"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Role         string `json:"role"`
	WalletID     string `json:"walletId"`
}

// ListUsers returns the full user directory
func ListUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	accounts, err := accountRepo.All()
	if err != nil {
		log.WithError(err).Error("User directory listing failed")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to fetch users"})
		return
	}

	writeJSON(w, http.StatusOK, accounts)
}

// CreateUser adds a directory entry without a password (admin only)
func CreateUser(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.FullName == "" || req.Organization == "" || req.Email == "" ||
		req.Phone == "" || req.Role == "" || req.WalletID == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "missing required fields"})
		return
	}

	if !account.Role(req.Role).Valid() {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid role"})
		return
	}

	acc, err := accountRepo.Create(&account.Account{
		FullName:     req.FullName,
		Organization: req.Organization,
		Email:        req.Email,
		Phone:        req.Phone,
		Role:         account.Role(req.Role),
		WalletID:     req.WalletID,
	})
	if err != nil {
		switch {
		case errors.Is(err, account.ErrEmailExists):
			writeJSON(w, http.StatusConflict, ErrorResponse{Error: "an account with this email already exists"})
		case errors.Is(err, account.ErrWalletExists):
			writeJSON(w, http.StatusConflict, ErrorResponse{Error: "an account with this wallet address already exists"})
		default:
			log.WithError(err).Error("User creation failed")
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to create user"})
		}
		return
	}

	writeJSON(w, http.StatusCreated, AuthResponse{User: acc})
}
