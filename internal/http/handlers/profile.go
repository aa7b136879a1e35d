package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/hongminglow/drug-catalog-be/internal/apperr"
	"github.com/hongminglow/drug-catalog-be/internal/http/respond"
	"github.com/hongminglow/drug-catalog-be/internal/models/dto"
	"github.com/hongminglow/drug-catalog-be/internal/storage"
)

// ProfileHandler serves account lookups and edits keyed by username.
type ProfileHandler struct {
	store storage.UserStore
}

// NewProfileHandler creates a profile handler backed by store.
func NewProfileHandler(store storage.UserStore) *ProfileHandler {
	return &ProfileHandler{store: store}
}

// Register wires the handler into a ServeMux.
func (h *ProfileHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("PUT /edit-username", h.handleEditUsername)
	mux.HandleFunc("PUT /edit-password", h.handleEditPassword)
	mux.HandleFunc("GET /get-user", h.handleGetUser)
}

func (h *ProfileHandler) handleEditUsername(w http.ResponseWriter, r *http.Request) {
	var req dto.EditUsernameRequest
	if err := decodeJSON(r, &req); err != nil {
		respondErr(w, r, err)
		return
	}
	current := strings.TrimSpace(req.CurrentUsername)
	next := strings.TrimSpace(req.NewUsername)
	if err := requireFields("currentUsername", current, "newUsername", next); err != nil {
		respondErr(w, r, err)
		return
	}
	if current == next {
		respondErr(w, r, apperr.Validation("newUsername must differ from currentUsername"))
		return
	}

	if _, err := h.store.FindByUsername(r.Context(), current); err != nil {
		respondErr(w, r, fromStore(err, "user not found", "user not found", "failed to fetch user"))
		return
	}
	if _, err := h.store.FindByUsername(r.Context(), next); err == nil {
		respondErr(w, r, apperr.Conflict("username already taken"))
		return
	} else if !errors.Is(err, storage.ErrNotFound) {
		respondErr(w, r, apperr.Store("failed to check username", err))
		return
	}

	user, err := h.store.RenameUser(r.Context(), current, next)
	if err != nil {
		respondErr(w, r, fromStore(err, "user not found", "username already taken", "failed to update username"))
		return
	}
	respond.JSON(w, http.StatusOK, "Username updated successfully", map[string]string{"username": user.Username})
}

func (h *ProfileHandler) handleEditPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.EditPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		respondErr(w, r, err)
		return
	}
	username := strings.TrimSpace(req.Username)
	if err := requireFields("username", username, "newPassword", req.NewPassword); err != nil {
		respondErr(w, r, err)
		return
	}

	if _, err := h.store.FindByUsername(r.Context(), username); err != nil {
		respondErr(w, r, fromStore(err, "user not found", "user not found", "failed to fetch user"))
		return
	}
	passwordHash, err := hashPassword("newPassword", req.NewPassword)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	if err := h.store.UpdatePassword(r.Context(), username, passwordHash); err != nil {
		respondErr(w, r, fromStore(err, "user not found", "user not found", "failed to update password"))
		return
	}
	respond.JSON(w, http.StatusOK, "Password updated successfully", map[string]string{"username": username})
}

func (h *ProfileHandler) handleGetUser(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.URL.Query().Get("username"))
	if err := requireFields("username", username); err != nil {
		respondErr(w, r, err)
		return
	}
	user, err := h.store.FindByUsername(r.Context(), username)
	if err != nil {
		respondErr(w, r, fromStore(err, "user not found", "user not found", "failed to fetch user"))
		return
	}
	respond.JSON(w, http.StatusOK, "User retrieved successfully", dto.UserResponse{
		Username:  user.Username,
		Email:     user.Email,
		Bookmarks: user.Bookmarks,
	})
}
