package dto

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hongminglow/drug-catalog-be/internal/models"
)

// TextList decodes either a JSON array of strings or a serialized string (see ParseTextList).
type TextList []string

func (l *TextList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*l = compact(list)
		return nil
	}
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("expected string list: %w", err)
	}
	if raw == nil {
		*l = TextList{}
		return nil
	}
	parsed, err := ParseTextList(*raw)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseTextList turns the serialized form of a list field into a slice. A value starting
// with '[' must be a JSON array of strings; anything else is split on commas. Blank input
// yields an empty, non-nil slice.
func ParseTextList(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}, nil
	}
	if strings.HasPrefix(raw, "[") {
		var list []string
		if err := json.Unmarshal([]byte(raw), &list); err != nil {
			return nil, fmt.Errorf("invalid JSON list: %w", err)
		}
		return compact(list), nil
	}
	return compact(strings.Split(raw, ",")), nil
}

func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// UploadDrugRequest is the JSON form of an upload. Photo is base64 in JSON.
type UploadDrugRequest struct {
	DrugName         string   `json:"drugName"`
	Description      string   `json:"description"`
	Uses             TextList `json:"uses"`
	Indications      TextList `json:"indications"`
	SideEffects      TextList `json:"sideEffects"`
	Warnings         TextList `json:"warnings"`
	Photo            []byte   `json:"photo"`
	PhotoContentType string   `json:"photoContentType"`
}

// DrugResponse renders a stored drug, with the photo inlined as a data URI.
type DrugResponse struct {
	ID          string   `json:"id"`
	DrugName    string   `json:"drugName"`
	Description string   `json:"description"`
	Uses        []string `json:"uses"`
	Indications []string `json:"indications"`
	SideEffects []string `json:"sideEffects"`
	Warnings    []string `json:"warnings"`
	Photo       string   `json:"photo,omitempty"`
}

// NewDrugResponse renders d for clients.
func NewDrugResponse(d models.Drug) DrugResponse {
	d.Normalize()
	resp := DrugResponse{
		ID:          d.ID,
		DrugName:    d.DrugName,
		Description: d.Description,
		Uses:        d.Uses,
		Indications: d.Indications,
		SideEffects: d.SideEffects,
		Warnings:    d.Warnings,
	}
	if len(d.Photo) > 0 {
		contentType := d.PhotoContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		resp.Photo = "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(d.Photo)
	}
	return resp
}
