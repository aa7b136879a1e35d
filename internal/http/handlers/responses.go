package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hongminglow/drug-catalog-be/internal/apperr"
	"github.com/hongminglow/drug-catalog-be/internal/auth"
	"github.com/hongminglow/drug-catalog-be/internal/http/respond"
	"github.com/hongminglow/drug-catalog-be/internal/storage"
)

// respondErr writes err with the status of its apperr kind. Store failures are logged and
// carry the underlying error text in the envelope's error field.
func respondErr(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		appErr = &apperr.Error{Kind: apperr.KindStore, Message: "internal server error", Err: err}
	}
	if appErr.Kind != apperr.KindStore {
		respond.Error(w, appErr.Kind.Status(), appErr.Message)
		return
	}

	zerolog.Ctx(r.Context()).Error().Err(appErr.Err).Str("path", r.URL.Path).Msg(appErr.Message)
	detail := ""
	if appErr.Err != nil {
		detail = appErr.Err.Error()
	}
	respond.ErrorDetail(w, http.StatusInternalServerError, appErr.Message, detail)
}

// fromStore classifies a storage error for the caller's operation.
func fromStore(err error, notFound, conflict, failure string) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return apperr.NotFound(notFound)
	case errors.Is(err, storage.ErrAlreadyExists):
		return apperr.Conflict(conflict)
	default:
		return apperr.Store(failure, err)
	}
}

// hashPassword hashes a client-supplied password. A password bcrypt cannot take is the
// client's to fix, so it is a validation error named after field.
func hashPassword(field, password string) (string, error) {
	hash, err := auth.HashPassword(password)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return "", apperr.Validation(fmt.Sprintf("%s must be at most %d bytes", field, auth.MaxPasswordBytes))
	}
	if err != nil {
		return "", apperr.Store("failed to hash password", err)
	}
	return hash, nil
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.Validation("invalid JSON payload")
	}
	return nil
}

// requireFields takes name/value pairs and reports every blank value in one message.
func requireFields(pairs ...string) error {
	var missing []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			missing = append(missing, pairs[i])
		}
	}
	switch len(missing) {
	case 0:
		return nil
	case 1:
		return apperr.Validation(missing[0] + " is required")
	default:
		return apperr.Validation(strings.Join(missing, ", ") + " are required")
	}
}
