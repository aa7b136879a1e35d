package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hongminglow/drug-catalog-be/internal/auth"
	"github.com/hongminglow/drug-catalog-be/internal/storage"
)

const testUploadLimit = 1 << 20

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func newTestMux(store storage.Store, tokens *auth.TokenManager) *http.ServeMux {
	mux := http.NewServeMux()
	NewAuthHandler(store, tokens).Register(mux)
	NewBookmarkHandler(store).Register(mux)
	NewProfileHandler(store).Register(mux)
	NewDrugHandler(store, testUploadLimit).Register(mux)
	return mux
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) (int, envelope) {
	t.Helper()
	var reader io.Reader = http.NoBody
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	return serve(t, h, req)
}

func serve(t *testing.T, h http.Handler, req *http.Request) (int, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "body: %s", rec.Body.String())
	require.Equal(t, rec.Code, env.Code)
	return rec.Code, env
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

func registerUser(t *testing.T, h http.Handler, username, email, password string) {
	t.Helper()
	status, env := doJSON(t, h, http.MethodPost, "/register-user", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, status, env.Message)
}

func newRawRequest(method, path string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	return req
}
