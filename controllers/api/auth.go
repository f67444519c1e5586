package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"

	log "github.com/sirupsen/logrus"

	"github.com/julienschmidt/httprouter"

	"github.com/pharmatrace/dashboard-api/auth"
	"github.com/pharmatrace/dashboard-api/models/account"
)

var accountRepo account.Store = &account.Postgres{}

var (
	codec   *auth.Codec
	session *auth.SessionCookie
)

// Setup injects the session token codec and cookie transport. Called once
// from main before the routes are served.
func Setup(c *auth.Codec, sc *auth.SessionCookie) {
	codec = c
	session = sc
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Role         string `json:"role"`
	Organization string `json:"organization"`
	Phone        string `json:"phone"`
	WalletID     string `json:"walletId"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse represents an auth response
type AuthResponse struct {
	User *account.Account `json:"user"`
}

// MessageResponse represents a simple message response
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// isValidEmail validates email format
func isValidEmail(email string) bool {
	pattern := `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	matched, _ := regexp.MatchString(pattern, email)
	return matched
}

// Register handles user registration with auto-login
func Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.FullName == "" || req.Email == "" || req.Password == "" ||
		req.Role == "" || req.Organization == "" || req.Phone == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "all fields are required"})
		return
	}

	if !isValidEmail(req.Email) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid email format"})
		return
	}

	if !account.Role(req.Role).Valid() {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid role"})
		return
	}

	if len(req.Password) < 6 {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "password must be at least 6 characters"})
		return
	}

	// Check uniqueness before inserting; the store's duplicate-key mapping
	// below still covers the race.
	if _, err := accountRepo.FindByEmail(req.Email); err == nil {
		writeJSON(w, http.StatusConflict, ErrorResponse{Error: "an account with this email already exists"})
		return
	}
	if req.WalletID != "" {
		if _, err := accountRepo.FindByWallet(req.WalletID); err == nil {
			writeJSON(w, http.StatusConflict, ErrorResponse{Error: "an account with this wallet address already exists"})
			return
		}
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to hash password"})
		return
	}

	acc, err := accountRepo.Create(&account.Account{
		FullName:     req.FullName,
		Organization: req.Organization,
		Email:        req.Email,
		Phone:        req.Phone,
		Role:         account.Role(req.Role),
		WalletID:     req.WalletID,
		PasswordHash: hash,
	})
	if err != nil {
		switch {
		case errors.Is(err, account.ErrEmailExists):
			writeJSON(w, http.StatusConflict, ErrorResponse{Error: "an account with this email already exists"})
		case errors.Is(err, account.ErrWalletExists):
			writeJSON(w, http.StatusConflict, ErrorResponse{Error: "an account with this wallet address already exists"})
		default:
			log.WithError(err).Error("Account creation failed")
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to create account"})
		}
		return
	}

	token, err := codec.Issue(acc.ID, acc.Email, string(acc.Role))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to create session"})
		return
	}
	session.Write(w, token)

	writeJSON(w, http.StatusCreated, AuthResponse{User: acc})
}

// Login handles user login. Unknown email, wrong password and a missing
// password hash all answer the same generic 401 so that accounts cannot
// be enumerated.
func Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "email and password are required"})
		return
	}

	acc, err := accountRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "invalid email or password"})
			return
		}
		log.WithError(err).Error("Account lookup failed")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to look up account"})
		return
	}

	if acc.PasswordHash == "" {
		log.WithFields(log.Fields{"email": req.Email}).Warn("Login attempt on account with no password set")
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "invalid email or password"})
		return
	}

	if !auth.CheckPassword(req.Password, acc.PasswordHash) {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "invalid email or password"})
		return
	}

	token, err := codec.Issue(acc.ID, acc.Email, string(acc.Role))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to create session"})
		return
	}
	session.Write(w, token)

	writeJSON(w, http.StatusOK, AuthResponse{User: acc})
}

// Logout clears the session cookie. Idempotent.
func Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	session.Clear(w)
	writeJSON(w, http.StatusOK, MessageResponse{Message: "logged out"})
}

// Me returns the current user, re-fetched from the credential store
func Me(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	acc := auth.AccountFromContext(r.Context())
	if acc == nil {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "not authenticated"})
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{User: acc})
}
