package handlers

import (
	"net/http"

	"github.com/yamdb/yamdb-backend/internal/api/httpx"
	"github.com/yamdb/yamdb-backend/internal/api/validate"
	"github.com/yamdb/yamdb-backend/internal/services"
)

type AuthHandler struct {
	svc *services.AuthService
}

func NewAuthHandler(svc *services.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

type signupReq struct {
	Username string `json:"username" validate:"required,max=150,username"`
	Email    string `json:"email" validate:"required,email,max=254"`
}

type signupResp struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Signup registers (or re-registers) a username/email pair and mails the
// confirmation code out-of-band. The code is never part of the response.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupReq
	if !decode(w, r, &req) {
		return
	}
	if err := validate.Struct(req); err != nil {
		writeErr(w, err)
		return
	}
	u, err := h.svc.Signup(r.Context(), req.Username, req.Email)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, signupResp{Username: u.Username, Email: u.Email})
}

type tokenReq struct {
	Username         string `json:"username" validate:"required"`
	ConfirmationCode string `json:"confirmation_code" validate:"required"`
}

func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req tokenReq
	if !decode(w, r, &req) {
		return
	}
	if err := validate.Struct(req); err != nil {
		writeErr(w, err)
		return
	}
	tok, err := h.svc.Token(r.Context(), req.Username, req.ConfirmationCode)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"token": tok})
}
