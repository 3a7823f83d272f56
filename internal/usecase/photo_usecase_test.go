package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/entity"
)

func TestValidateImage(t *testing.T) {
	testCases := []struct {
		name        string
		fileName    string
		contentType string
		size        int64
		wantField   string
	}{
		{"jpg ok", "room.jpg", "image/jpeg", 1024, ""},
		{"webp ok", "room.WEBP", "image/webp", 1024, ""},
		{"pdf rejected", "contract.pdf", "application/pdf", 1024, "file"},
		{"no extension", "room", "image/jpeg", 1024, "file"},
		{"wrong content type", "room.png", "text/html", 1024, "file"},
		{"too big", "room.png", "image/png", MaxImageSize + 1, "file"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateImage(tc.fileName, tc.contentType, tc.size)
			if tc.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var validationErr *entity.ValidationError
			assert.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tc.wantField, validationErr.Field)
		})
	}
}

func TestPhotoUsecase_UploadImages(t *testing.T) {
	storage := new(MockStorage)
	storage.On("Upload", mock.Anything, "a.jpg", "image/jpeg", mock.Anything).Return("http://minio/ad-images/images/a.jpg", nil)
	storage.On("Upload", mock.Anything, "b.png", "image/png", mock.Anything).Return("http://minio/ad-images/images/b.png", nil)

	uc := NewPhotoUsecase(storage)
	urls, err := uc.UploadImages(context.Background(), []ImageFile{
		{Name: "a.jpg", ContentType: "image/jpeg", Data: []byte("jpg-bytes")},
		{Name: "b.png", ContentType: "image/png", Data: []byte("png-bytes")},
	})
	assert.NoError(t, err)
	assert.Len(t, urls, 2)
	storage.AssertExpectations(t)
}

func TestPhotoUsecase_UploadImages_TooMany(t *testing.T) {
	uc := NewPhotoUsecase(new(MockStorage))

	files := make([]ImageFile, MaxImagesPerUpload+1)
	for i := range files {
		files[i] = ImageFile{Name: "a.jpg", ContentType: "image/jpeg", Data: []byte("x")}
	}

	_, err := uc.UploadImages(context.Background(), files)
	var validationErr *entity.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "files", validationErr.Field)
}

func TestPhotoUsecase_UploadImages_RejectsBatchBeforeAnyUpload(t *testing.T) {
	storage := new(MockStorage)
	uc := NewPhotoUsecase(storage)

	_, err := uc.UploadImages(context.Background(), []ImageFile{
		{Name: "a.jpg", ContentType: "image/jpeg", Data: []byte("x")},
		{Name: "malware.exe", ContentType: "application/octet-stream", Data: []byte("x")},
	})
	assert.Error(t, err)
	storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPhotoUsecase_DeleteImage(t *testing.T) {
	storage := new(MockStorage)
	storage.On("Delete", mock.Anything, "images/a.jpg").Return(nil)

	uc := NewPhotoUsecase(storage)
	err := uc.DeleteImage(context.Background(), "images/a.jpg")
	assert.NoError(t, err)
	storage.AssertExpectations(t)
}

func TestPhotoUsecase_DeleteImage_EmptyKey(t *testing.T) {
	storage := new(MockStorage)
	uc := NewPhotoUsecase(storage)

	err := uc.DeleteImage(context.Background(), "")
	var validationErr *entity.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "object_key", validationErr.Field)
	storage.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestPhotoUsecase_StorageNotConfigured(t *testing.T) {
	uc := NewPhotoUsecase(nil)
	_, err := uc.UploadImages(context.Background(), []ImageFile{
		{Name: "a.jpg", ContentType: "image/jpeg", Data: []byte("x")},
	})
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}
