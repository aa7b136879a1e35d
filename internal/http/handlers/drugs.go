package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hongminglow/drug-catalog-be/internal/apperr"
	"github.com/hongminglow/drug-catalog-be/internal/http/respond"
	"github.com/hongminglow/drug-catalog-be/internal/models"
	"github.com/hongminglow/drug-catalog-be/internal/models/dto"
	"github.com/hongminglow/drug-catalog-be/internal/storage"
)

// DrugHandler serves drug upload and search.
type DrugHandler struct {
	store          storage.DrugStore
	maxUploadBytes int64
}

// NewDrugHandler creates a drug handler. Upload bodies over maxUploadBytes are rejected.
func NewDrugHandler(store storage.DrugStore, maxUploadBytes int64) *DrugHandler {
	return &DrugHandler{store: store, maxUploadBytes: maxUploadBytes}
}

// Register wires the handler into a ServeMux.
func (h *DrugHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /upload", h.handleUpload)
	mux.HandleFunc("GET /search-drug", h.handleSearch)
}

func (h *DrugHandler) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	drug, err := h.decodeUpload(r)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	if err := requireFields("drugName", drug.DrugName, "description", drug.Description); err != nil {
		respondErr(w, r, err)
		return
	}

	if _, err := h.store.FindDrugByName(r.Context(), drug.DrugName); err == nil {
		respondErr(w, r, apperr.Conflict("drug already exists"))
		return
	} else if !errors.Is(err, storage.ErrNotFound) {
		respondErr(w, r, apperr.Store("failed to check drug", err))
		return
	}

	created, err := h.store.CreateDrug(r.Context(), drug)
	if err != nil {
		respondErr(w, r, fromStore(err, "drug not found", "drug already exists", "failed to save drug"))
		return
	}

	zerolog.Ctx(r.Context()).Info().Str("drug", created.DrugName).Bool("photo", len(created.Photo) > 0).Msg("drug uploaded")
	respond.JSON(w, http.StatusCreated, "Drug uploaded successfully", dto.NewDrugResponse(created))
}

func (h *DrugHandler) handleSearch(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("drugName"))
	if err := requireFields("drugName", name); err != nil {
		respondErr(w, r, err)
		return
	}
	drug, err := h.store.FindDrugByName(r.Context(), name)
	if err != nil {
		respondErr(w, r, fromStore(err, "drug not found", "drug not found", "failed to search drug"))
		return
	}
	respond.JSON(w, http.StatusOK, "Drug found", dto.NewDrugResponse(drug))
}

// decodeUpload accepts multipart or urlencoded forms, with list fields as serialized text,
// and JSON bodies.
func (h *DrugHandler) decodeUpload(r *http.Request) (models.Drug, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "multipart/form-data", "application/x-www-form-urlencoded":
		return h.decodeForm(r, mediaType)
	default:
		return h.decodeJSONUpload(r)
	}
}

func (h *DrugHandler) decodeJSONUpload(r *http.Request) (models.Drug, error) {
	var req dto.UploadDrugRequest
	if err := decodeJSON(r, &req); err != nil {
		return models.Drug{}, h.tooLarge(r, err)
	}
	drug := models.Drug{
		DrugName:         strings.TrimSpace(req.DrugName),
		Description:      strings.TrimSpace(req.Description),
		Uses:             req.Uses,
		Indications:      req.Indications,
		SideEffects:      req.SideEffects,
		Warnings:         req.Warnings,
		Photo:            req.Photo,
		PhotoContentType: photoContentType(req.PhotoContentType, req.Photo),
	}
	drug.Normalize()
	return drug, nil
}

func (h *DrugHandler) decodeForm(r *http.Request, mediaType string) (models.Drug, error) {
	var err error
	if mediaType == "multipart/form-data" {
		err = r.ParseMultipartForm(h.maxUploadBytes)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		return models.Drug{}, h.tooLarge(r, apperr.Validation("invalid form payload"))
	}

	drug := models.Drug{
		DrugName:    strings.TrimSpace(r.FormValue("drugName")),
		Description: strings.TrimSpace(r.FormValue("description")),
	}
	lists := []struct {
		field string
		dst   *[]string
	}{
		{"uses", &drug.Uses},
		{"indications", &drug.Indications},
		{"sideEffects", &drug.SideEffects},
		{"warnings", &drug.Warnings},
	}
	for _, l := range lists {
		parsed, err := dto.ParseTextList(r.FormValue(l.field))
		if err != nil {
			return models.Drug{}, apperr.Validation(fmt.Sprintf("%s: %v", l.field, err))
		}
		*l.dst = parsed
	}

	if mediaType == "multipart/form-data" {
		file, header, err := r.FormFile("photo")
		switch {
		case errors.Is(err, http.ErrMissingFile):
		case err != nil:
			return models.Drug{}, apperr.Validation("invalid photo upload")
		default:
			defer file.Close()
			photo, err := io.ReadAll(file)
			if err != nil {
				return models.Drug{}, apperr.Store("failed to read photo", err)
			}
			drug.Photo = photo
			drug.PhotoContentType = photoContentType(header.Header.Get("Content-Type"), photo)
		}
	}
	return drug, nil
}

// tooLarge swaps err for a size message when the body hit the upload limit. The
// MaxBytesReader keeps returning its error once tripped, so one more read tells us.
func (h *DrugHandler) tooLarge(r *http.Request, err error) error {
	var maxErr *http.MaxBytesError
	buf := make([]byte, 1)
	if _, readErr := r.Body.Read(buf); errors.As(readErr, &maxErr) {
		return apperr.Validation(fmt.Sprintf("upload exceeds %d bytes", h.maxUploadBytes))
	}
	return err
}

func photoContentType(declared string, photo []byte) string {
	if len(photo) == 0 {
		return ""
	}
	declared = strings.TrimSpace(declared)
	if declared == "" || declared == "application/octet-stream" {
		return http.DetectContentType(photo)
	}
	return declared
}
