package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/entity"
	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/platform/logger"
	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/usecase"
)

// CommentHandler serves the comment endpoints nested under ads.
type CommentHandler struct {
	comments *usecase.CommentUsecase
	logger   *logger.Logger
}

func NewCommentHandler(comments *usecase.CommentUsecase, log *logger.Logger) *CommentHandler {
	return &CommentHandler{comments: comments, logger: log}
}

type commentResponse struct {
	ID        string    `json:"id"`
	AdID      string    `json:"ad_id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	Rating    *int      `json:"rating,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toCommentResponse(c *entity.Comment) commentResponse {
	return commentResponse{
		ID:        c.ID,
		AdID:      c.AdID,
		UserID:    c.UserID,
		Content:   c.Content,
		Rating:    c.Rating,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// HandleListAdComments returns the ad's comments, newest first.
func (h *CommentHandler) HandleListAdComments(w http.ResponseWriter, r *http.Request) {
	adID := chi.URLParam(r, "id")
	comments, err := h.comments.ListAdComments(r.Context(), adID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	out := make([]commentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, toCommentResponse(c))
	}
	respondJSON(w, http.StatusOK, out)
}

type createCommentRequest struct {
	Content string `json:"content"`
	Rating  *int   `json:"rating"`
}

func (h *CommentHandler) HandleCreateComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondError(w, h.logger, entity.ErrUnauthorized)
		return
	}
	adID := chi.URLParam(r, "id")

	var req createCommentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	comment, err := h.comments.CreateComment(r.Context(), usecase.CreateCommentInput{
		AdID:    adID,
		UserID:  userID,
		Content: req.Content,
		Rating:  req.Rating,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, toCommentResponse(comment))
}

type updateCommentRequest struct {
	Content *string `json:"content"`
	Rating  *int    `json:"rating"`
}

func (h *CommentHandler) HandleUpdateComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondError(w, h.logger, entity.ErrUnauthorized)
		return
	}
	commentID := chi.URLParam(r, "id")

	var req updateCommentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	comment, err := h.comments.UpdateComment(r.Context(), commentID, usecase.UpdateCommentInput{
		Content: req.Content,
		Rating:  req.Rating,
	}, userID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, toCommentResponse(comment))
}

func (h *CommentHandler) HandleDeleteComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondError(w, h.logger, entity.ErrUnauthorized)
		return
	}
	commentID := chi.URLParam(r, "id")

	if err := h.comments.DeleteComment(r.Context(), commentID, userID); err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
