package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-assessment/internal/logger"
	"github.com/sbilibin2017/gw-assessment/internal/middlewares"
	"github.com/sbilibin2017/gw-assessment/internal/services"
)

// Defaults applied when the page query parameters are missing.
const (
	DefaultPageToken = 1
	DefaultPageSize  = 20
)

// dateLayout is the wire format of dates of birth.
const dateLayout = "2006-01-02"

// ErrorResponse represents an error response
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// default: resource not found
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// writeError maps service errors onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		writeErrorMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrUnauthorized):
		writeErrorMessage(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrForbidden):
		writeErrorMessage(w, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrNotFound):
		writeErrorMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrConflict):
		writeErrorMessage(w, http.StatusConflict, err.Error())
	default:
		logger.Log.Errorw("internal server error", "err", err)
		writeErrorMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}

// authorizeOwner allows the request only when the authenticated caller is owner.
func authorizeOwner(r *http.Request, owner uuid.UUID) error {
	caller, ok := middlewares.UserIDFromContext(r.Context())
	if !ok {
		return services.ErrUnauthorized
	}
	if caller != owner {
		return fmt.Errorf("%w: resource belongs to another user", services.ErrForbidden)
	}
	return nil
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// idParam parses a uuid URL parameter.
func idParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}

// pageParams reads page_token and page_size, falling back to the defaults when absent.
func pageParams(r *http.Request) (int, int, error) {
	pageToken, err := intQuery(r, "page_token", DefaultPageToken)
	if err != nil {
		return 0, 0, err
	}
	pageSize, err := intQuery(r, "page_size", DefaultPageSize)
	if err != nil {
		return 0, 0, err
	}
	return pageToken, pageSize, nil
}

func intQuery(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return n, nil
}

// created answers 201 with a Location header pointing at the new resource.
func created(w http.ResponseWriter, r *http.Request, id uuid.UUID, body any) {
	w.Header().Set("Location", path.Join(r.URL.Path, id.String()))
	writeJSON(w, http.StatusCreated, body)
}

func optionalID(id *uuid.UUID) uuid.UUID {
	if id == nil {
		return uuid.Nil
	}
	return *id
}
