package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yamdb/yamdb-backend/internal/api/httpx"
	"github.com/yamdb/yamdb-backend/internal/api/validate"
	"github.com/yamdb/yamdb-backend/internal/models"
	"github.com/yamdb/yamdb-backend/internal/services"
)

type UsersHandler struct {
	svc *services.UserService
}

func NewUsersHandler(svc *services.UserService) *UsersHandler { return &UsersHandler{svc: svc} }

type createUserReq struct {
	Username  string `json:"username" validate:"required,max=150,username"`
	Email     string `json:"email" validate:"required,email,max=254"`
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" validate:"max=150"`
	Bio       string `json:"bio"`
	Role      string `json:"role" validate:"omitempty,oneof=user moderator admin"`
}

type patchUserReq struct {
	Username  *string `json:"username" validate:"omitempty,max=150,username"`
	Email     *string `json:"email" validate:"omitempty,email,max=254"`
	FirstName *string `json:"first_name" validate:"omitempty,max=150"`
	LastName  *string `json:"last_name" validate:"omitempty,max=150"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role" validate:"omitempty,oneof=user moderator admin"`
}

func (p patchUserReq) toPatch() services.UserPatch {
	out := services.UserPatch{
		Username:  p.Username,
		Email:     p.Email,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Bio:       p.Bio,
	}
	if p.Role != nil {
		// unknown values are already rejected by the oneof rule
		role := models.Role(*p.Role)
		out.Role = &role
	}
	return out
}

// ---------- /users/me ----------

func (h *UsersHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.GetByID(r.Context(), actorFrom(r).ID)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, u)
}

// PatchMe updates the caller's profile. A role change submitted by a
// non-admin is ignored, not rejected: the response is a 200 carrying the
// unchanged role.
func (h *UsersHandler) PatchMe(w http.ResponseWriter, r *http.Request) {
	var req patchUserReq
	if !decode(w, r, &req) {
		return
	}
	if err := validate.Struct(req); err != nil {
		writeErr(w, err)
		return
	}
	u, err := h.svc.UpdateMe(r.Context(), actorFrom(r).ID, req.toPatch())
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, u)
}

// ---------- /users (admin) ----------

func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r)
	users, total, err := h.svc.List(r.Context(), r.URL.Query().Get("search"), limit, offset)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, httpx.Page{Count: total, Results: users})
}

func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserReq
	if !decode(w, r, &req) {
		return
	}
	if err := validate.Struct(req); err != nil {
		writeErr(w, err)
		return
	}
	u, err := h.svc.Create(r.Context(), models.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Role:      models.Role(req.Role),
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, u)
}

func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.Get(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, u)
}

func (h *UsersHandler) Patch(w http.ResponseWriter, r *http.Request) {
	var req patchUserReq
	if !decode(w, r, &req) {
		return
	}
	if err := validate.Struct(req); err != nil {
		writeErr(w, err)
		return
	}
	u, err := h.svc.Update(r.Context(), chi.URLParam(r, "username"), req.toPatch())
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, u)
}

func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "username")); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
