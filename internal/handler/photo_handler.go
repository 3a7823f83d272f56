package handler

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/entity"
	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/platform/logger"
	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/usecase"
)

// PhotoHandler serves multipart image uploads for ads.
type PhotoHandler struct {
	photos *usecase.PhotoUsecase
	logger *logger.Logger
}

func NewPhotoHandler(photos *usecase.PhotoUsecase, log *logger.Logger) *PhotoHandler {
	return &PhotoHandler{photos: photos, logger: log}
}

type uploadResponse struct {
	URLs []string `json:"urls"`
}

// HandleUploadImages accepts up to five image files under the "files"
// multipart key and returns their stored URLs.
func (h *PhotoHandler) HandleUploadImages(w http.ResponseWriter, r *http.Request) {
	if _, ok := UserIDFromContext(r.Context()); !ok {
		respondError(w, h.logger, entity.ErrUnauthorized)
		return
	}

	// A little headroom over the per-file limit times the batch cap.
	maxBody := int64(usecase.MaxImagesPerUpload)*usecase.MaxImageSize + 1<<20
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	if err := r.ParseMultipartForm(maxBody); err != nil {
		respondError(w, h.logger, &entity.ValidationError{Field: "files", Reason: "invalid or oversized multipart payload"})
		return
	}

	fileHeaders := r.MultipartForm.File["files"]
	if len(fileHeaders) == 0 {
		respondError(w, h.logger, &entity.ValidationError{Field: "files", Reason: "no files provided"})
		return
	}

	files := make([]usecase.ImageFile, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		contentType := fh.Header.Get("Content-Type")
		if err := usecase.ValidateImage(fh.Filename, contentType, fh.Size); err != nil {
			respondError(w, h.logger, err)
			return
		}

		f, err := fh.Open()
		if err != nil {
			respondError(w, h.logger, err)
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			respondError(w, h.logger, err)
			return
		}

		files = append(files, usecase.ImageFile{
			Name:        fh.Filename,
			ContentType: contentType,
			Data:        data,
		})
	}

	urls, err := h.photos.UploadImages(r.Context(), files)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, uploadResponse{URLs: urls})
}

// HandleDeleteImage removes a stored image. The wildcard keeps the slash in
// object keys like "images/<name>" intact.
func (h *PhotoHandler) HandleDeleteImage(w http.ResponseWriter, r *http.Request) {
	if _, ok := UserIDFromContext(r.Context()); !ok {
		respondError(w, h.logger, entity.ErrUnauthorized)
		return
	}

	objectKey := chi.URLParam(r, "*")
	if err := h.photos.DeleteImage(r.Context(), objectKey); err != nil {
		respondError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
