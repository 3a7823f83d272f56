package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/entity"
	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/platform/logger"
	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/platform/metrics"
	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/usecase"
)

// AdHandler serves the ad endpoints.
type AdHandler struct {
	ads     *usecase.AdUsecase
	logger  *logger.Logger
	metrics *metrics.MetricsManager
}

func NewAdHandler(ads *usecase.AdUsecase, log *logger.Logger, mm *metrics.MetricsManager) *AdHandler {
	return &AdHandler{ads: ads, logger: log, metrics: mm}
}

type adResponse struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	CategoryID      string     `json:"category_id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Price           float64    `json:"price"`
	Seller          string     `json:"seller,omitempty"`
	Location        string     `json:"location,omitempty"`
	CEP             string     `json:"cep,omitempty"`
	Bedrooms        *int       `json:"bedrooms,omitempty"`
	Bathrooms       *int       `json:"bathrooms,omitempty"`
	Rules           []string   `json:"rules"`
	Amenities       []string   `json:"amenities"`
	CustomRules     string     `json:"custom_rules,omitempty"`
	CustomAmenities string     `json:"custom_amenities,omitempty"`
	Images          []string   `json:"images"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
}

func toAdResponse(ad *entity.Ad) adResponse {
	return adResponse{
		ID:              ad.ID,
		UserID:          ad.UserID,
		CategoryID:      ad.CategoryID,
		Title:           ad.Title,
		Description:     ad.Description,
		Price:           ad.Price,
		Seller:          ad.Seller,
		Location:        ad.Location,
		CEP:             ad.CEP,
		Bedrooms:        ad.Bedrooms,
		Bathrooms:       ad.Bathrooms,
		Rules:           ad.Rules,
		Amenities:       ad.Amenities,
		CustomRules:     ad.CustomRules,
		CustomAmenities: ad.CustomAmenities,
		Images:          ad.Images,
		Status:          string(ad.Status),
		CreatedAt:       ad.CreatedAt,
		UpdatedAt:       ad.UpdatedAt,
		PublishedAt:     ad.PublishedAt,
	}
}

func toAdResponses(ads []*entity.Ad) []adResponse {
	out := make([]adResponse, 0, len(ads))
	for _, ad := range ads {
		out = append(out, toAdResponse(ad))
	}
	return out
}

type adListResponse struct {
	Ads    []adResponse `json:"ads"`
	Total  int64        `json:"total"`
	Offset int          `json:"offset"`
	Limit  int          `json:"limit"`
}

// HandleListAds serves the public listing with filters and pagination.
func (h *AdHandler) HandleListAds(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	input := usecase.ListAdsInput{
		CategoryID: q.Get("category_id"),
		Location:   q.Get("location"),
		Status:     entity.AdStatus(q.Get("status")),
	}
	if v := q.Get("min_price"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			respondError(w, h.logger, &entity.ValidationError{Field: "min_price", Reason: "must be a number"})
			return
		}
		input.MinPrice = &f
	}
	if v := q.Get("max_price"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			respondError(w, h.logger, &entity.ValidationError{Field: "max_price", Reason: "must be a number"})
			return
		}
		input.MaxPrice = &f
	}
	if v := q.Get("bedrooms"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respondError(w, h.logger, &entity.ValidationError{Field: "bedrooms", Reason: "must be an integer"})
			return
		}
		input.Bedrooms = &n
	}
	input.Offset, _ = strconv.Atoi(q.Get("offset"))
	input.Limit, _ = strconv.Atoi(q.Get("limit"))

	out, err := h.ads.ListAds(r.Context(), input)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, adListResponse{
		Ads:    toAdResponses(out.Ads),
		Total:  out.TotalCount,
		Offset: input.Offset,
		Limit:  input.Limit,
	})
}

// HandleListMyAds returns all ads of the authenticated user, drafts included.
func (h *AdHandler) HandleListMyAds(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondError(w, h.logger, entity.ErrUnauthorized)
		return
	}

	ads, err := h.ads.ListUserAds(r.Context(), userID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, toAdResponses(ads))
}

func (h *AdHandler) HandleGetAd(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ad, err := h.ads.GetAd(r.Context(), id)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, toAdResponse(ad))
}

type createAdRequest struct {
	CategoryID      string   `json:"category_id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Price           float64  `json:"price"`
	Seller          string   `json:"seller"`
	Location        string   `json:"location"`
	CEP             string   `json:"cep"`
	Bedrooms        *int     `json:"bedrooms"`
	Bathrooms       *int     `json:"bathrooms"`
	Rules           []string `json:"rules"`
	Amenities       []string `json:"amenities"`
	CustomRules     string   `json:"custom_rules"`
	CustomAmenities string   `json:"custom_amenities"`
	Images          []string `json:"images"`
	Status          string   `json:"status"`
}

func (h *AdHandler) HandleCreateAd(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondError(w, h.logger, entity.ErrUnauthorized)
		return
	}

	var req createAdRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	ad, err := h.ads.CreateAd(r.Context(), usecase.CreateAdInput{
		UserID:          userID,
		CategoryID:      req.CategoryID,
		Title:           req.Title,
		Description:     req.Description,
		Price:           req.Price,
		Seller:          req.Seller,
		Location:        req.Location,
		CEP:             req.CEP,
		Bedrooms:        req.Bedrooms,
		Bathrooms:       req.Bathrooms,
		Rules:           req.Rules,
		Amenities:       req.Amenities,
		CustomRules:     req.CustomRules,
		CustomAmenities: req.CustomAmenities,
		Images:          req.Images,
		Status:          entity.AdStatus(req.Status),
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	if h.metrics != nil {
		h.metrics.AdsCreatedTotal.Inc()
	}
	respondJSON(w, http.StatusCreated, toAdResponse(ad))
}

type updateAdRequest struct {
	Title           *string   `json:"title"`
	Description     *string   `json:"description"`
	Price           *float64  `json:"price"`
	CategoryID      *string   `json:"category_id"`
	Seller          *string   `json:"seller"`
	Location        *string   `json:"location"`
	CEP             *string   `json:"cep"`
	Bedrooms        *int      `json:"bedrooms"`
	Bathrooms       *int      `json:"bathrooms"`
	Rules           *[]string `json:"rules"`
	Amenities       *[]string `json:"amenities"`
	CustomRules     *string   `json:"custom_rules"`
	CustomAmenities *string   `json:"custom_amenities"`
	Images          *[]string `json:"images"`
}

// HandleUpdateAd applies a partial update. Absent fields keep their values;
// the ad status is out of reach here and only moves through the status
// endpoint.
func (h *AdHandler) HandleUpdateAd(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondError(w, h.logger, entity.ErrUnauthorized)
		return
	}
	id := chi.URLParam(r, "id")

	var req updateAdRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	ad, err := h.ads.UpdateAd(r.Context(), id, usecase.UpdateAdInput{
		Title:           req.Title,
		Description:     req.Description,
		Price:           req.Price,
		CategoryID:      req.CategoryID,
		Seller:          req.Seller,
		Location:        req.Location,
		CEP:             req.CEP,
		Bedrooms:        req.Bedrooms,
		Bathrooms:       req.Bathrooms,
		Rules:           req.Rules,
		Amenities:       req.Amenities,
		CustomRules:     req.CustomRules,
		CustomAmenities: req.CustomAmenities,
		Images:          req.Images,
	}, userID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	if h.metrics != nil {
		h.metrics.AdUpdatesTotal.Inc()
	}
	respondJSON(w, http.StatusOK, toAdResponse(ad))
}

func (h *AdHandler) HandleDeleteAd(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondError(w, h.logger, entity.ErrUnauthorized)
		return
	}
	id := chi.URLParam(r, "id")

	if err := h.ads.DeleteAd(r.Context(), id, userID); err != nil {
		respondError(w, h.logger, err)
		return
	}

	if h.metrics != nil {
		h.metrics.AdDeletesTotal.Inc()
	}
	w.WriteHeader(http.StatusNoContent)
}

type changeStatusRequest struct {
	Status string `json:"status"`
}

// HandleChangeAdStatus moves the ad through its lifecycle.
func (h *AdHandler) HandleChangeAdStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondError(w, h.logger, entity.ErrUnauthorized)
		return
	}
	id := chi.URLParam(r, "id")

	var req changeStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}
	if req.Status == "" {
		respondError(w, h.logger, &entity.ValidationError{Field: "status", Reason: "cannot be empty"})
		return
	}

	ad, err := h.ads.ChangeAdStatus(r.Context(), id, entity.AdStatus(req.Status), userID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	if h.metrics != nil {
		h.metrics.StatusChangesTotal.WithLabelValues(string(ad.Status)).Inc()
	}
	respondJSON(w, http.StatusOK, toAdResponse(ad))
}
