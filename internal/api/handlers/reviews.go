package handlers

import (
	"net/http"

	"github.com/yamdb/yamdb-backend/internal/api/httpx"
	"github.com/yamdb/yamdb-backend/internal/api/validate"
	"github.com/yamdb/yamdb-backend/internal/services"
)

type ReviewsHandler struct {
	svc *services.ReviewService
}

func NewReviewsHandler(svc *services.ReviewService) *ReviewsHandler {
	return &ReviewsHandler{svc: svc}
}

type createReviewReq struct {
	Text  string `json:"text" validate:"required"`
	Score int    `json:"score" validate:"required,gte=1,lte=10"`
}

type patchReviewReq struct {
	Text  *string `json:"text" validate:"omitempty,min=1"`
	Score *int    `json:"score" validate:"omitempty,gte=1,lte=10"`
}

func (h *ReviewsHandler) List(w http.ResponseWriter, r *http.Request) {
	titleID, ok := pathID(w, r, "titleID")
	if !ok {
		return
	}
	limit, offset := pageParams(r)
	reviews, total, err := h.svc.ListReviews(r.Context(), titleID, limit, offset)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, httpx.Page{Count: total, Results: reviews})
}

func (h *ReviewsHandler) Get(w http.ResponseWriter, r *http.Request) {
	titleID, ok := pathID(w, r, "titleID")
	if !ok {
		return
	}
	reviewID, ok := pathID(w, r, "reviewID")
	if !ok {
		return
	}
	rev, err := h.svc.GetReview(r.Context(), titleID, reviewID)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, rev)
}

func (h *ReviewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	titleID, ok := pathID(w, r, "titleID")
	if !ok {
		return
	}
	var req createReviewReq
	if !decode(w, r, &req) {
		return
	}
	if err := validate.Struct(req); err != nil {
		writeErr(w, err)
		return
	}
	rev, err := h.svc.CreateReview(r.Context(), titleID, actorFrom(r), req.Text, req.Score)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, rev)
}

func (h *ReviewsHandler) Patch(w http.ResponseWriter, r *http.Request) {
	titleID, ok := pathID(w, r, "titleID")
	if !ok {
		return
	}
	reviewID, ok := pathID(w, r, "reviewID")
	if !ok {
		return
	}
	var req patchReviewReq
	if !decode(w, r, &req) {
		return
	}
	if err := validate.Struct(req); err != nil {
		writeErr(w, err)
		return
	}
	rev, err := h.svc.UpdateReview(r.Context(), titleID, reviewID, actorFrom(r), req.Text, req.Score)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, rev)
}

func (h *ReviewsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	titleID, ok := pathID(w, r, "titleID")
	if !ok {
		return
	}
	reviewID, ok := pathID(w, r, "reviewID")
	if !ok {
		return
	}
	if err := h.svc.DeleteReview(r.Context(), titleID, reviewID, actorFrom(r)); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
