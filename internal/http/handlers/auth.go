package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hongminglow/drug-catalog-be/internal/apperr"
	"github.com/hongminglow/drug-catalog-be/internal/auth"
	"github.com/hongminglow/drug-catalog-be/internal/http/respond"
	"github.com/hongminglow/drug-catalog-be/internal/models"
	"github.com/hongminglow/drug-catalog-be/internal/models/dto"
	"github.com/hongminglow/drug-catalog-be/internal/storage"
)

// AuthHandler owns the register/login endpoints.
type AuthHandler struct {
	store  storage.UserStore
	tokens *auth.TokenManager
}

// NewAuthHandler constructs the handler. tokens may be nil, in which case login returns no token.
func NewAuthHandler(store storage.UserStore, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{store: store, tokens: tokens}
}

// Register attaches auth routes to the mux.
func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /register-user", h.handleRegister)
	mux.HandleFunc("POST /login-user", h.handleLogin)
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		respondErr(w, r, err)
		return
	}
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	if err := requireFields("username", username, "email", email, "password", req.Password); err != nil {
		respondErr(w, r, err)
		return
	}

	// Fast path for a friendly message; the unique indexes still decide under concurrency.
	if _, err := h.store.FindByEmail(r.Context(), email); err == nil {
		respondErr(w, r, apperr.Conflict("email already registered"))
		return
	} else if !errors.Is(err, storage.ErrNotFound) {
		respondErr(w, r, apperr.Store("failed to check email", err))
		return
	}
	if _, err := h.store.FindByUsername(r.Context(), username); err == nil {
		respondErr(w, r, apperr.Conflict("username already taken"))
		return
	} else if !errors.Is(err, storage.ErrNotFound) {
		respondErr(w, r, apperr.Store("failed to check username", err))
		return
	}

	passwordHash, err := hashPassword("password", req.Password)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	created, err := h.store.CreateUser(r.Context(), models.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	})
	if err != nil {
		respondErr(w, r, fromStore(err, "user not found", "user already exists", "failed to create user"))
		return
	}

	zerolog.Ctx(r.Context()).Info().Str("username", created.Username).Msg("user registered")
	respond.JSON(w, http.StatusCreated, "User registered successfully", dto.AccountResponse{
		Username: created.Username,
		Email:    created.Email,
	})
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondErr(w, r, err)
		return
	}
	email := strings.TrimSpace(req.Email)
	if err := requireFields("email", email, "password", req.Password); err != nil {
		respondErr(w, r, err)
		return
	}

	user, err := h.store.FindByEmail(r.Context(), email)
	if err != nil {
		respondErr(w, r, fromStore(err, "user not found", "user not found", "failed to fetch user"))
		return
	}
	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			respondErr(w, r, apperr.Auth("invalid password"))
			return
		}
		respondErr(w, r, apperr.Store("failed to verify password", err))
		return
	}

	resp := dto.AccountResponse{Username: user.Username, Email: user.Email}
	if h.tokens != nil {
		token, err := h.tokens.Generate(user)
		if err != nil {
			respondErr(w, r, apperr.Store("failed to generate token", err))
			return
		}
		resp.Token = token
	}
	respond.JSON(w, http.StatusOK, "Login successful", resp)
}
