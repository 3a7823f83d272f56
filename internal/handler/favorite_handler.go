package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/entity"
	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/platform/logger"
	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/usecase"
)

// FavoriteHandler serves the per-user favorites endpoints. All of them
// require authentication.
type FavoriteHandler struct {
	favorites *usecase.FavoriteUsecase
	logger    *logger.Logger
}

func NewFavoriteHandler(favorites *usecase.FavoriteUsecase, log *logger.Logger) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites, logger: log}
}

type favoriteStateResponse struct {
	AdID      string `json:"ad_id"`
	Favorited bool   `json:"favorited"`
}

// HandleToggleFavorite flips the favorite link and reports the resulting
// state.
func (h *FavoriteHandler) HandleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondError(w, h.logger, entity.ErrUnauthorized)
		return
	}
	adID := chi.URLParam(r, "adID")

	favorited, err := h.favorites.Toggle(r.Context(), userID, adID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, favoriteStateResponse{AdID: adID, Favorited: favorited})
}

func (h *FavoriteHandler) HandleCheckFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondError(w, h.logger, entity.ErrUnauthorized)
		return
	}
	adID := chi.URLParam(r, "adID")

	favorited, err := h.favorites.IsFavorited(r.Context(), userID, adID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, favoriteStateResponse{AdID: adID, Favorited: favorited})
}

func (h *FavoriteHandler) HandleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondError(w, h.logger, entity.ErrUnauthorized)
		return
	}
	adID := chi.URLParam(r, "adID")

	if err := h.favorites.Remove(r.Context(), userID, adID); err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleListFavorites returns the user's favorited ads. Ads removed since
// they were favorited are silently skipped.
func (h *FavoriteHandler) HandleListFavorites(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondError(w, h.logger, entity.ErrUnauthorized)
		return
	}

	ads, err := h.favorites.ListFavorites(r.Context(), userID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, toAdResponses(ads))
}
