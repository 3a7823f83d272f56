package usecase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/entity"
)

// Storage is the object-storage collaborator for ad images.
type Storage interface {
	Upload(ctx context.Context, fileName, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, objectKey string) error
}

const (
	// MaxImageSize is the per-file upload limit.
	MaxImageSize = 5 * 1024 * 1024
	// MaxImagesPerUpload caps one upload batch.
	MaxImagesPerUpload = 5
)

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// PhotoUsecase uploads ad images to object storage.
type PhotoUsecase struct {
	storage Storage
}

func NewPhotoUsecase(storage Storage) *PhotoUsecase {
	return &PhotoUsecase{storage: storage}
}

// ValidateImage checks extension, declared content type and size before an
// upload is accepted.
func ValidateImage(fileName, contentType string, size int64) error {
	ext := strings.ToLower(filepath.Ext(fileName))
	if !allowedImageExtensions[ext] {
		return &entity.ValidationError{Field: "file", Reason: "file type not allowed, use: .jpg, .jpeg, .png, .webp"}
	}
	if !strings.HasPrefix(contentType, "image/") {
		return &entity.ValidationError{Field: "file", Reason: "file must be an image"}
	}
	if size > MaxImageSize {
		return &entity.ValidationError{Field: "file", Reason: "file exceeds the 5MB limit"}
	}
	return nil
}

// ErrStorageUnavailable is returned when the service runs without an object
// storage backend.
var ErrStorageUnavailable = errors.New("object storage is not configured")

// UploadImages validates and stores a batch of files, returning their URLs.
func (uc *PhotoUsecase) UploadImages(ctx context.Context, files []ImageFile) ([]string, error) {
	if uc.storage == nil {
		return nil, ErrStorageUnavailable
	}
	if len(files) == 0 {
		return nil, &entity.ValidationError{Field: "files", Reason: "no files provided"}
	}
	if len(files) > MaxImagesPerUpload {
		return nil, &entity.ValidationError{Field: "files", Reason: fmt.Sprintf("at most %d images per upload", MaxImagesPerUpload)}
	}

	for _, f := range files {
		if err := ValidateImage(f.Name, f.ContentType, int64(len(f.Data))); err != nil {
			return nil, err
		}
	}

	urls := make([]string, 0, len(files))
	for _, f := range files {
		url, err := uc.storage.Upload(ctx, f.Name, f.ContentType, f.Data)
		if err != nil {
			return nil, fmt.Errorf("PhotoUsecase.UploadImages: %w", err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}

// DeleteImage removes a stored object by key.
func (uc *PhotoUsecase) DeleteImage(ctx context.Context, objectKey string) error {
	if uc.storage == nil {
		return ErrStorageUnavailable
	}
	if objectKey == "" {
		return &entity.ValidationError{Field: "object_key", Reason: "cannot be empty"}
	}
	if err := uc.storage.Delete(ctx, objectKey); err != nil {
		return fmt.Errorf("PhotoUsecase.DeleteImage: %w", err)
	}
	return nil
}

// ImageFile is one uploaded file.
type ImageFile struct {
	Name        string
	ContentType string
	Data        []byte
}
