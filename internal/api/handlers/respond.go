package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/yamdb/yamdb-backend/internal/api/httpx"
	"github.com/yamdb/yamdb-backend/internal/api/validate"
	"github.com/yamdb/yamdb-backend/internal/middleware"
	"github.com/yamdb/yamdb-backend/internal/models"
	repo "github.com/yamdb/yamdb-backend/internal/repository"
	"github.com/yamdb/yamdb-backend/internal/services"
)

// writeErr maps service errors onto the API error taxonomy: field errors to
// 400, missing rows to 404, permission denials to 403, everything else 500.
func writeErr(w http.ResponseWriter, err error) {
	var verrs validate.Errs
	switch {
	case errors.As(err, &verrs):
		httpx.WriteError(w, http.StatusBadRequest, "validation_error", "validation failed", verrs)
	case errors.Is(err, repo.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "not found", nil)
	case errors.Is(err, services.ErrForbidden):
		httpx.WriteError(w, http.StatusForbidden, "forbidden", err.Error(), nil)
	default:
		slog.Error("request failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "internal error", nil)
	}
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "malformed JSON body", nil)
		return false
	}
	return true
}

func pageParams(r *http.Request) (limit, offset int) {
	limit, offset = 20, 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > 100 {
		limit = 100
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}

// pathID parses a numeric URL parameter; a malformed ID behaves like a
// missing resource.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	n, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || n <= 0 {
		httpx.WriteError(w, http.StatusNotFound, "not_found", "not found", nil)
		return 0, false
	}
	return n, true
}

func actorFrom(r *http.Request) services.Actor {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		return services.Actor{}
	}
	return services.Actor{
		ID:        claims.UserID,
		Username:  claims.Username,
		Role:      models.Role(claims.Role),
		Superuser: claims.Super,
	}
}
