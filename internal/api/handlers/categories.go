package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yamdb/yamdb-backend/internal/api/httpx"
	"github.com/yamdb/yamdb-backend/internal/api/validate"
	"github.com/yamdb/yamdb-backend/internal/models"
	"github.com/yamdb/yamdb-backend/internal/services"
)

type CategoriesHandler struct {
	svc *services.CatalogService
}

func NewCategoriesHandler(svc *services.CatalogService) *CategoriesHandler {
	return &CategoriesHandler{svc: svc}
}

type slugEntityReq struct {
	Name string `json:"name" validate:"required,max=256"`
	Slug string `json:"slug" validate:"required,max=50,slug"`
}

func (h *CategoriesHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r)
	cats, total, err := h.svc.ListCategories(r.Context(), r.URL.Query().Get("search"), limit, offset)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, httpx.Page{Count: total, Results: cats})
}

func (h *CategoriesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req slugEntityReq
	if !decode(w, r, &req) {
		return
	}
	if err := validate.Struct(req); err != nil {
		writeErr(w, err)
		return
	}
	c, err := h.svc.CreateCategory(r.Context(), models.Category{Name: req.Name, Slug: req.Slug})
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, c)
}

func (h *CategoriesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteCategory(r.Context(), chi.URLParam(r, "slug")); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
