package handlers

import (
	"net/http"

	"github.com/yamdb/yamdb-backend/internal/api/httpx"
	"github.com/yamdb/yamdb-backend/internal/api/validate"
	"github.com/yamdb/yamdb-backend/internal/services"
)

type CommentsHandler struct {
	svc *services.ReviewService
}

func NewCommentsHandler(svc *services.ReviewService) *CommentsHandler {
	return &CommentsHandler{svc: svc}
}

type commentReq struct {
	Text string `json:"text" validate:"required"`
}

func (h *CommentsHandler) ids(w http.ResponseWriter, r *http.Request) (titleID, reviewID int64, ok bool) {
	titleID, ok = pathID(w, r, "titleID")
	if !ok {
		return
	}
	reviewID, ok = pathID(w, r, "reviewID")
	return
}

func (h *CommentsHandler) List(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, ok := h.ids(w, r)
	if !ok {
		return
	}
	limit, offset := pageParams(r)
	comments, total, err := h.svc.ListComments(r.Context(), titleID, reviewID, limit, offset)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, httpx.Page{Count: total, Results: comments})
}

func (h *CommentsHandler) Get(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, ok := h.ids(w, r)
	if !ok {
		return
	}
	commentID, ok := pathID(w, r, "commentID")
	if !ok {
		return
	}
	cm, err := h.svc.GetComment(r.Context(), titleID, reviewID, commentID)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, cm)
}

func (h *CommentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, ok := h.ids(w, r)
	if !ok {
		return
	}
	var req commentReq
	if !decode(w, r, &req) {
		return
	}
	if err := validate.Struct(req); err != nil {
		writeErr(w, err)
		return
	}
	cm, err := h.svc.CreateComment(r.Context(), titleID, reviewID, actorFrom(r), req.Text)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, cm)
}

func (h *CommentsHandler) Patch(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, ok := h.ids(w, r)
	if !ok {
		return
	}
	commentID, ok := pathID(w, r, "commentID")
	if !ok {
		return
	}
	var req commentReq
	if !decode(w, r, &req) {
		return
	}
	if err := validate.Struct(req); err != nil {
		writeErr(w, err)
		return
	}
	cm, err := h.svc.UpdateComment(r.Context(), titleID, reviewID, commentID, actorFrom(r), req.Text)
	if err != nil {
		writeErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, cm)
}

func (h *CommentsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, ok := h.ids(w, r)
	if !ok {
		return
	}
	commentID, ok := pathID(w, r, "commentID")
	if !ok {
		return
	}
	if err := h.svc.DeleteComment(r.Context(), titleID, reviewID, commentID, actorFrom(r)); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
