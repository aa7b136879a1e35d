package handlers

import (
	"bytes"
	"encoding/base64"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/drug-catalog-be/internal/models/dto"
	"github.com/hongminglow/drug-catalog-be/internal/storage/memory"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestUploadJSONAndSearch(t *testing.T) {
	mux := newTestMux(memory.NewStore(), nil)

	status, env := doJSON(t, mux, http.MethodPost, "/upload", map[string]any{
		"drugName":    "Aspirin",
		"description": "Pain reliever",
		"uses":        []string{"Pain", "Fever"},
		"sideEffects": "Nausea, Heartburn",
		"warnings":    `["Bleeding"]`,
	})
	require.Equal(t, http.StatusCreated, status, env.Message)
	assert.Equal(t, "Drug uploaded successfully", env.Message)

	status, env = doJSON(t, mux, http.MethodGet, "/search-drug?drugName=aspirin", nil)
	require.Equal(t, http.StatusOK, status)
	drug := decodeData[dto.DrugResponse](t, env)
	assert.Equal(t, "Aspirin", drug.DrugName)
	assert.Equal(t, "Pain reliever", drug.Description)
	assert.Equal(t, []string{"Pain", "Fever"}, drug.Uses)
	assert.Equal(t, []string{}, drug.Indications)
	assert.Equal(t, []string{"Nausea", "Heartburn"}, drug.SideEffects)
	assert.Equal(t, []string{"Bleeding"}, drug.Warnings)
	assert.Empty(t, drug.Photo)
}

func TestUploadRejectsDuplicateNameIgnoringCase(t *testing.T) {
	mux := newTestMux(memory.NewStore(), nil)
	body := map[string]any{"drugName": "Aspirin", "description": "Pain reliever"}

	status, _ := doJSON(t, mux, http.MethodPost, "/upload", body)
	require.Equal(t, http.StatusCreated, status)

	body["drugName"] = "ASPIRIN"
	status, env := doJSON(t, mux, http.MethodPost, "/upload", body)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "drug already exists", env.Message)
}

func TestUploadMultipartWithPhoto(t *testing.T) {
	mux := newTestMux(memory.NewStore(), nil)

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	require.NoError(t, form.WriteField("drugName", "Paracetamol"))
	require.NoError(t, form.WriteField("description", "Analgesic"))
	require.NoError(t, form.WriteField("uses", `["Headache","Fever"]`))
	require.NoError(t, form.WriteField("warnings", "Liver damage, Alcohol"))
	part, err := form.CreateFormFile("photo", "pill.png")
	require.NoError(t, err)
	_, err = part.Write(pngHeader)
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	status, env := serve(t, mux, req)
	require.Equal(t, http.StatusCreated, status, env.Message)

	drug := decodeData[dto.DrugResponse](t, env)
	assert.Equal(t, []string{"Headache", "Fever"}, drug.Uses)
	assert.Equal(t, []string{"Liver damage", "Alcohol"}, drug.Warnings)
	assert.Equal(t, "data:image/png;base64,"+base64.StdEncoding.EncodeToString(pngHeader), drug.Photo)

	status, env = doJSON(t, mux, http.MethodGet, "/search-drug?drugName=Paracetamol", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, drug.Photo, decodeData[dto.DrugResponse](t, env).Photo)
}

func TestUploadURLEncodedForm(t *testing.T) {
	mux := newTestMux(memory.NewStore(), nil)

	form := url.Values{}
	form.Set("drugName", "Ibuprofen")
	form.Set("description", "NSAID")
	form.Set("indications", "Inflammation")
	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	status, env := serve(t, mux, req)
	require.Equal(t, http.StatusCreated, status, env.Message)
	assert.Equal(t, []string{"Inflammation"}, decodeData[dto.DrugResponse](t, env).Indications)
}

func TestUploadValidation(t *testing.T) {
	mux := newTestMux(memory.NewStore(), nil)

	status, env := doJSON(t, mux, http.MethodPost, "/upload", map[string]any{"drugName": "Aspirin"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "description is required", env.Message)

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	require.NoError(t, form.WriteField("drugName", "Aspirin"))
	require.NoError(t, form.WriteField("description", "Pain reliever"))
	require.NoError(t, form.WriteField("uses", `["unterminated`))
	require.NoError(t, form.Close())
	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	status, env = serve(t, mux, req)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.True(t, strings.HasPrefix(env.Message, "uses:"), env.Message)
}

func TestUploadRejectsOversizedBody(t *testing.T) {
	mux := newTestMux(memory.NewStore(), nil)

	status, env := doJSON(t, mux, http.MethodPost, "/upload", map[string]any{
		"drugName":    "Huge",
		"description": strings.Repeat("x", testUploadLimit+1),
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, env.Message, "upload exceeds")
}

func TestSearchDrug(t *testing.T) {
	mux := newTestMux(memory.NewStore(), nil)

	status, env := doJSON(t, mux, http.MethodGet, "/search-drug?drugName=Unobtainium", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "drug not found", env.Message)

	status, env = doJSON(t, mux, http.MethodGet, "/search-drug", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "drugName is required", env.Message)
}
