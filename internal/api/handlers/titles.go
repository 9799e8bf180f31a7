package handlers

import (
	"net/http"
	"strconv"

	"github.com/yamdb/yamdb-backend/internal/api/httpx"
	"github.com/yamdb/yamdb-backend/internal/api/validate"
	"github.com/yamdb/yamdb-backend/internal/models"
	"github.com/yamdb/yamdb-backend/internal/services"
)

type TitlesHandler struct {
	svc *services.CatalogService
}

func NewTitlesHandler(svc *services.CatalogService) *TitlesHandler {
	return &TitlesHandler{svc: svc}
}

type createTitleReq struct {
	Name        string   `json:"name" validate:"required,max=256"`
	Year        int      `json:"year" validate:"required,pastyear"`
	Description string   `json:"description"`
	Genre       []string `json:"genre"`
	Category    *string  `json:"category" validate:"omitempty,max=50"`
}

type patchTitleReq struct {
	Name        *string   `json:"name" validate:"omitempty,max=256"`
	Year        *int      `json:"year" validate:"omitempty,pastyear"`
	Description *string   `json:"description"`
	Genre       *[]string `json:"genre"`
	Category    *string   `json:"category" validate:"omitempty,max=50"`
}

func (h *TitlesHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r)
	q := r.URL.Query()
	f := models.TitleFilter{
		CategorySlug: q.Get("category"),
		GenreSlug:    q.Get("genre"),
		Name:         q.Get("name"),
	}
	if v := q.Get("year"); v != "" {
		if y, err := strconv.Atoi(v); err == nil {
			f.Year = y
		}
	}
	titles, total, err := h.svc.ListTitles(r.Context(), f, limit, offset)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, httpx.Page{Count: total, Results: titles})
}

func (h *TitlesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "titleID")
	if !ok {
		return
	}
	t, err := h.svc.GetTitle(r.Context(), id)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, t)
}

func (h *TitlesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTitleReq
	if !decode(w, r, &req) {
		return
	}
	if err := validate.Struct(req); err != nil {
		writeErr(w, err)
		return
	}
	genre := req.Genre
	if genre == nil {
		genre = []string{}
	}
	t, err := h.svc.CreateTitle(r.Context(), services.TitleInput{
		Name:        &req.Name,
		Year:        &req.Year,
		Description: &req.Description,
		Genre:       &genre,
		Category:    req.Category,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, t)
}

func (h *TitlesHandler) Patch(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "titleID")
	if !ok {
		return
	}
	var req patchTitleReq
	if !decode(w, r, &req) {
		return
	}
	if err := validate.Struct(req); err != nil {
		writeErr(w, err)
		return
	}
	t, err := h.svc.UpdateTitle(r.Context(), id, services.TitleInput{
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
		Genre:       req.Genre,
		Category:    req.Category,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, t)
}

func (h *TitlesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "titleID")
	if !ok {
		return
	}
	if err := h.svc.DeleteTitle(r.Context(), id); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
