package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yamdb/yamdb-backend/internal/api/httpx"
	"github.com/yamdb/yamdb-backend/internal/api/validate"
	"github.com/yamdb/yamdb-backend/internal/models"
	"github.com/yamdb/yamdb-backend/internal/services"
)

type GenresHandler struct {
	svc *services.CatalogService
}

func NewGenresHandler(svc *services.CatalogService) *GenresHandler {
	return &GenresHandler{svc: svc}
}

func (h *GenresHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r)
	genres, total, err := h.svc.ListGenres(r.Context(), r.URL.Query().Get("search"), limit, offset)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, httpx.Page{Count: total, Results: genres})
}

func (h *GenresHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req slugEntityReq
	if !decode(w, r, &req) {
		return
	}
	if err := validate.Struct(req); err != nil {
		writeErr(w, err)
		return
	}
	g, err := h.svc.CreateGenre(r.Context(), models.Genre{Name: req.Name, Slug: req.Slug})
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, g)
}

func (h *GenresHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteGenre(r.Context(), chi.URLParam(r, "slug")); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
