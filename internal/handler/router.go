package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/auth"
	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/platform/logger"
	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/platform/metrics"
)

// Handlers bundles every resource handler the router mounts.
type Handlers struct {
	Ads        *AdHandler
	Users      *UserHandler
	Comments   *CommentHandler
	Categories *CategoryHandler
	Favorites  *FavoriteHandler
	Photos     *PhotoHandler
}

// NewRouter mounts the public and authenticated route groups.
func NewRouter(h Handlers, tokens *auth.TokenManager, log *logger.Logger, mm *metrics.MetricsManager) *chi.Mux {
	r := chi.NewRouter()
	r.Use(RequestLogger(log, mm))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		// Public routes.
		r.Post("/auth/register", h.Users.HandleRegister)
		r.Post("/auth/login", h.Users.HandleLogin)

		r.Get("/ads", h.Ads.HandleListAds)
		r.Get("/ads/{id}", h.Ads.HandleGetAd)
		r.Get("/ads/{id}/comments", h.Comments.HandleListAdComments)

		r.Get("/categories", h.Categories.HandleListCategories)
		r.Get("/categories/{id}", h.Categories.HandleGetCategory)

		r.Get("/users/{id}", h.Users.HandleGetUser)

		// Authenticated routes.
		r.Group(func(r chi.Router) {
			r.Use(JWTAuth(tokens, log, mm))

			r.Get("/auth/me", h.Users.HandleMe)
			r.Put("/users/me", h.Users.HandleUpdateMe)
			r.Put("/users/me/password", h.Users.HandleChangePassword)
			r.Delete("/users/me", h.Users.HandleDeleteMe)

			r.Get("/ads/me", h.Ads.HandleListMyAds)
			r.Post("/ads", h.Ads.HandleCreateAd)
			r.Put("/ads/{id}", h.Ads.HandleUpdateAd)
			r.Delete("/ads/{id}", h.Ads.HandleDeleteAd)
			r.Patch("/ads/{id}/status", h.Ads.HandleChangeAdStatus)

			r.Post("/ads/{id}/comments", h.Comments.HandleCreateComment)
			r.Put("/comments/{id}", h.Comments.HandleUpdateComment)
			r.Delete("/comments/{id}", h.Comments.HandleDeleteComment)

			r.Post("/categories", h.Categories.HandleCreateCategory)
			r.Put("/categories/{id}", h.Categories.HandleUpdateCategory)
			r.Delete("/categories/{id}", h.Categories.HandleDeleteCategory)

			r.Get("/favorites", h.Favorites.HandleListFavorites)
			r.Post("/favorites/{adID}/toggle", h.Favorites.HandleToggleFavorite)
			r.Get("/favorites/{adID}", h.Favorites.HandleCheckFavorite)
			r.Delete("/favorites/{adID}", h.Favorites.HandleRemoveFavorite)

			r.Post("/uploads/images", h.Photos.HandleUploadImages)
			r.Delete("/uploads/*", h.Photos.HandleDeleteImage)
		})
	})

	return r
}
