package handlers

import (
	"net/http"
	"strings"

	"github.com/hongminglow/drug-catalog-be/internal/apperr"
	"github.com/hongminglow/drug-catalog-be/internal/http/respond"
	"github.com/hongminglow/drug-catalog-be/internal/models"
	"github.com/hongminglow/drug-catalog-be/internal/models/dto"
	"github.com/hongminglow/drug-catalog-be/internal/storage"
)

// BookmarkHandler manages a user's bookmarked drug names. Callers identify the user by
// username only; no route checks that the caller owns that username.
type BookmarkHandler struct {
	store storage.UserStore
}

// NewBookmarkHandler creates a bookmark handler backed by store.
func NewBookmarkHandler(store storage.UserStore) *BookmarkHandler {
	return &BookmarkHandler{store: store}
}

// Register wires the handler into a ServeMux.
func (h *BookmarkHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /add-bookmark", h.handleAdd)
	mux.HandleFunc("POST /remove-bookmark", h.handleRemove)
	mux.HandleFunc("POST /check-bookmark", h.handleCheck)
	mux.HandleFunc("GET /show-bookmarks/{username}", h.handleShow)
}

// readRequest decodes a bookmark body and loads the user it names.
func (h *BookmarkHandler) readRequest(r *http.Request) (dto.BookmarkRequest, models.User, error) {
	var req dto.BookmarkRequest
	if err := decodeJSON(r, &req); err != nil {
		return req, models.User{}, err
	}
	req.Username = strings.TrimSpace(req.Username)
	req.DrugName = strings.TrimSpace(req.DrugName)
	if err := requireFields("username", req.Username, "drugName", req.DrugName); err != nil {
		return req, models.User{}, err
	}
	user, err := h.store.FindByUsername(r.Context(), req.Username)
	if err != nil {
		return req, models.User{}, fromStore(err, "user not found", "user not found", "failed to fetch user")
	}
	return req, user, nil
}

func (h *BookmarkHandler) handleAdd(w http.ResponseWriter, r *http.Request) {
	req, user, err := h.readRequest(r)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	if user.HasBookmark(req.DrugName) {
		respondErr(w, r, apperr.Conflict("drug already bookmarked"))
		return
	}

	bookmarks, err := h.store.AddBookmark(r.Context(), user.Username, req.DrugName)
	if err != nil {
		respondErr(w, r, fromStore(err, "user not found", "drug already bookmarked", "failed to add bookmark"))
		return
	}
	respond.JSON(w, http.StatusOK, "Bookmark added successfully", dto.BookmarksResponse{
		Username:  user.Username,
		Bookmarks: bookmarks,
	})
}

func (h *BookmarkHandler) handleRemove(w http.ResponseWriter, r *http.Request) {
	req, user, err := h.readRequest(r)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	if !user.HasBookmark(req.DrugName) {
		respondErr(w, r, apperr.NotFound("bookmark not found"))
		return
	}

	bookmarks, err := h.store.RemoveBookmark(r.Context(), user.Username, req.DrugName)
	if err != nil {
		respondErr(w, r, fromStore(err, "bookmark not found", "bookmark not found", "failed to remove bookmark"))
		return
	}
	respond.JSON(w, http.StatusOK, "Bookmark removed successfully", dto.BookmarksResponse{
		Username:  user.Username,
		Bookmarks: bookmarks,
	})
}

func (h *BookmarkHandler) handleCheck(w http.ResponseWriter, r *http.Request) {
	req, user, err := h.readRequest(r)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, "Bookmark status retrieved", dto.BookmarkCheckResponse{
		DrugName:     req.DrugName,
		IsBookmarked: user.HasBookmark(req.DrugName),
	})
}

func (h *BookmarkHandler) handleShow(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.PathValue("username"))
	if err := requireFields("username", username); err != nil {
		respondErr(w, r, err)
		return
	}
	user, err := h.store.FindByUsername(r.Context(), username)
	if err != nil {
		respondErr(w, r, fromStore(err, "user not found", "user not found", "failed to fetch user"))
		return
	}
	respond.JSON(w, http.StatusOK, "Bookmarks retrieved successfully", dto.BookmarksResponse{
		Username:  user.Username,
		Bookmarks: user.Bookmarks,
	})
}
