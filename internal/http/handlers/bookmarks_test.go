package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/drug-catalog-be/internal/models/dto"
	"github.com/hongminglow/drug-catalog-be/internal/storage/memory"
)

func TestBookmarkLifecycle(t *testing.T) {
	mux := newTestMux(memory.NewStore(), nil)
	registerUser(t, mux, "alice", "a@x.com", "pw1")
	body := map[string]string{"username": "alice", "drugName": "Paracetamol"}

	status, env := doJSON(t, mux, http.MethodPost, "/add-bookmark", body)
	require.Equal(t, http.StatusOK, status)
	added := decodeData[dto.BookmarksResponse](t, env)
	assert.Equal(t, []string{"Paracetamol"}, added.Bookmarks)

	status, env = doJSON(t, mux, http.MethodPost, "/add-bookmark", body)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "drug already bookmarked", env.Message)

	status, env = doJSON(t, mux, http.MethodPost, "/check-bookmark", body)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, decodeData[dto.BookmarkCheckResponse](t, env).IsBookmarked)

	status, env = doJSON(t, mux, http.MethodGet, "/show-bookmarks/alice", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{"Paracetamol"}, decodeData[dto.BookmarksResponse](t, env).Bookmarks)

	status, env = doJSON(t, mux, http.MethodPost, "/remove-bookmark", body)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, decodeData[dto.BookmarksResponse](t, env).Bookmarks)

	status, env = doJSON(t, mux, http.MethodPost, "/check-bookmark", body)
	require.Equal(t, http.StatusOK, status)
	assert.False(t, decodeData[dto.BookmarkCheckResponse](t, env).IsBookmarked)

	status, env = doJSON(t, mux, http.MethodPost, "/remove-bookmark", body)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "bookmark not found", env.Message)
}

func TestBookmarksKeepInsertionOrder(t *testing.T) {
	mux := newTestMux(memory.NewStore(), nil)
	registerUser(t, mux, "alice", "a@x.com", "pw1")

	for _, drug := range []string{"Ibuprofen", "Aspirin", "Paracetamol"} {
		status, _ := doJSON(t, mux, http.MethodPost, "/add-bookmark", map[string]string{"username": "alice", "drugName": drug})
		require.Equal(t, http.StatusOK, status)
	}

	_, env := doJSON(t, mux, http.MethodGet, "/show-bookmarks/alice", nil)
	assert.Equal(t, []string{"Ibuprofen", "Aspirin", "Paracetamol"}, decodeData[dto.BookmarksResponse](t, env).Bookmarks)
}

func TestBookmarkErrors(t *testing.T) {
	mux := newTestMux(memory.NewStore(), nil)
	registerUser(t, mux, "alice", "a@x.com", "pw1")

	tests := []struct {
		name    string
		method  string
		path    string
		body    any
		status  int
		message string
	}{
		{"missing drug", http.MethodPost, "/add-bookmark", map[string]string{"username": "alice"}, http.StatusBadRequest, "drugName is required"},
		{"missing both", http.MethodPost, "/check-bookmark", map[string]string{}, http.StatusBadRequest, "username, drugName are required"},
		{"unknown user add", http.MethodPost, "/add-bookmark", map[string]string{"username": "bob", "drugName": "Aspirin"}, http.StatusNotFound, "user not found"},
		{"unknown user check", http.MethodPost, "/check-bookmark", map[string]string{"username": "bob", "drugName": "Aspirin"}, http.StatusNotFound, "user not found"},
		{"unknown user show", http.MethodGet, "/show-bookmarks/bob", nil, http.StatusNotFound, "user not found"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, env := doJSON(t, mux, tc.method, tc.path, tc.body)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.message, env.Message)
		})
	}
}

func TestShowBookmarksEmptyList(t *testing.T) {
	mux := newTestMux(memory.NewStore(), nil)
	registerUser(t, mux, "alice", "a@x.com", "pw1")

	status, env := doJSON(t, mux, http.MethodGet, "/show-bookmarks/alice", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"username":"alice","bookmarks":[]}`, string(env.Data))
}
