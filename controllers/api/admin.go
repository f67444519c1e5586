package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/julienschmidt/httprouter"

	"github.com/pharmatrace/dashboard-api/models/account"
)

// UpdateUserRequest represents an admin user update request
type UpdateUserRequest struct {
	FullName     string `json:"fullName"`
	Organization string `json:"organization"`
	Phone        string `json:"phone"`
	Role         string `json:"role"`
}

// AdminListUsers returns users with pagination and search (admin only)
func AdminListUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	result, err := accountRepo.List(q.Get("q"), page, limit)
	if err != nil {
		log.WithError(err).Error("Admin user listing failed")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to fetch users"})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// AdminGetUser returns a single user (admin only)
func AdminGetUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := strconv.Atoi(ps.ByName("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid user ID"})
		return
	}

	acc, err := accountRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "user not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to fetch user"})
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{User: acc})
}

// AdminUpdateUser updates a user's profile and role (admin only).
// A role change does not revoke already-issued tokens; it takes effect
// on the user's next request because roles are re-fetched per request.
func AdminUpdateUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := strconv.Atoi(ps.ByName("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid user ID"})
		return
	}

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.FullName == "" || req.Organization == "" || req.Phone == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "missing required fields"})
		return
	}

	if !account.Role(req.Role).Valid() {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid role"})
		return
	}

	acc, err := accountRepo.Update(id, req.FullName, req.Organization, req.Phone, account.Role(req.Role))
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "user not found"})
			return
		}
		log.WithError(err).Error("Admin user update failed")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to update user"})
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{User: acc})
}

// AdminDeleteUser deletes a user (admin only)
func AdminDeleteUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := strconv.Atoi(ps.ByName("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid user ID"})
		return
	}

	if err := accountRepo.Delete(id); err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "user not found"})
			return
		}
		log.WithError(err).Error("Admin user deletion failed")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to delete user"})
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "user deleted"})
}
