package respond

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONWritesEnvelope(t *testing.T) {
	rr := httptest.NewRecorder()
	JSON(rr, http.StatusCreated, "created", map[string]string{"username": "alice"})

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var env struct {
		Code    int               `json:"code"`
		Message string            `json:"message"`
		Data    map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	assert.Equal(t, 201, env.Code)
	assert.Equal(t, "created", env.Message)
	assert.Equal(t, "alice", env.Data["username"])
}

func TestErrorDetailOmitsData(t *testing.T) {
	rr := httptest.NewRecorder()
	ErrorDetail(rr, http.StatusInternalServerError, "failed to load user", "connection refused")

	var raw map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &raw))
	assert.Equal(t, "connection refused", raw["error"])
	assert.NotContains(t, raw, "data")
}
