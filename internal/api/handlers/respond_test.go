package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yamdb/yamdb-backend/internal/api/httpx"
	"github.com/yamdb/yamdb-backend/internal/api/validate"
	repo "github.com/yamdb/yamdb-backend/internal/repository"
	"github.com/yamdb/yamdb-backend/internal/services"
)

func TestWriteErr_Taxonomy(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
		code string
	}{
		{"field error", validate.Field("score", "must be <= 10"), http.StatusBadRequest, "validation_error"},
		{"not found", repo.ErrNotFound, http.StatusNotFound, "not_found"},
		{"wrapped not found", errors.Join(errors.New("get review"), repo.ErrNotFound), http.StatusNotFound, "not_found"},
		{"forbidden", services.ErrForbidden, http.StatusForbidden, "forbidden"},
		{"unknown", errors.New("pool exhausted"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeErr(rec, tt.err)
			assert.Equal(t, tt.want, rec.Code)

			var body httpx.APIError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
		})
	}
}

func TestPageParams(t *testing.T) {
	tests := []struct {
		query      string
		wantLimit  int
		wantOffset int
	}{
		{"", 20, 0},
		{"?limit=5&offset=10", 5, 10},
		{"?limit=500", 100, 0},
		{"?limit=0", 20, 0},
		{"?limit=abc&offset=-3", 20, 0},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/titles"+tt.query, nil)
			limit, offset := pageParams(r)
			assert.Equal(t, tt.wantLimit, limit)
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}

func reqWithParam(name, val string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(name, val)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestPathID(t *testing.T) {
	rec := httptest.NewRecorder()
	id, ok := pathID(rec, reqWithParam("titleID", "42"), "titleID")
	require.True(t, ok)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"abc", "0", "-1", ""} {
		rec := httptest.NewRecorder()
		_, ok := pathID(rec, reqWithParam("titleID", bad), "titleID")
		assert.False(t, ok, "value %q", bad)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	}
}

func TestDecode_MalformedBody(t *testing.T) {
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", errReader{})
	var dst struct{}
	ok := decode(rec, r, &dst)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("broken body") }
