package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/auth"
	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/entity"
	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/platform/logger"
	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/port/repository"
)

func newUserUsecaseForTest(userRepo *MockUserRepository) *UserUsecase {
	tokens, _ := auth.NewTokenManager("test-secret", time.Hour)
	return NewUserUsecase(userRepo, tokens, logger.NewLogger())
}

func TestUserUsecase_Register(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("EmailExists", mock.Anything, "maria@example.com").Return(false, nil)
	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		// The raw password must never reach the repository.
		return u.PasswordHash != "" && u.PasswordHash != "s3cret"
	})).Return("user-1", nil)

	uc := newUserUsecaseForTest(userRepo)
	user, token, err := uc.Register(context.Background(), "maria@example.com", "Maria", "s3cret")
	assert.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.NotEmpty(t, token)
	userRepo.AssertExpectations(t)
}

func TestUserUsecase_Register_DuplicateEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("EmailExists", mock.Anything, "maria@example.com").Return(true, nil)

	uc := newUserUsecaseForTest(userRepo)
	_, _, err := uc.Register(context.Background(), "maria@example.com", "Maria", "s3cret")
	assert.ErrorIs(t, err, entity.ErrConflict)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserUsecase_Register_DuplicateKeyRace(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("EmailExists", mock.Anything, "maria@example.com").Return(false, nil)
	userRepo.On("Create", mock.Anything, mock.Anything).Return("", repository.ErrDuplicateKey)

	uc := newUserUsecaseForTest(userRepo)
	_, _, err := uc.Register(context.Background(), "maria@example.com", "Maria", "s3cret")
	assert.ErrorIs(t, err, entity.ErrConflict)
}

func TestUserUsecase_Authenticate(t *testing.T) {
	hash, err := auth.HashPassword("s3cret")
	assert.NoError(t, err)
	stored := &entity.User{ID: "user-1", Email: "maria@example.com", Name: "Maria", PasswordHash: hash}

	userRepo := new(MockUserRepository)
	userRepo.On("GetByEmail", mock.Anything, "maria@example.com").Return(stored, nil)

	uc := newUserUsecaseForTest(userRepo)
	user, token, err := uc.Authenticate(context.Background(), "maria@example.com", "s3cret")
	assert.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.NotEmpty(t, token)
}

func TestUserUsecase_Authenticate_SameErrorForBothFailures(t *testing.T) {
	hash, _ := auth.HashPassword("s3cret")
	stored := &entity.User{ID: "user-1", Email: "maria@example.com", Name: "Maria", PasswordHash: hash}

	userRepo := new(MockUserRepository)
	userRepo.On("GetByEmail", mock.Anything, "maria@example.com").Return(stored, nil)
	userRepo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, repository.ErrNotFound)

	uc := newUserUsecaseForTest(userRepo)

	_, _, wrongPassword := uc.Authenticate(context.Background(), "maria@example.com", "wrong")
	_, _, unknownEmail := uc.Authenticate(context.Background(), "ghost@example.com", "s3cret")

	// Unknown email and wrong password must be indistinguishable to callers.
	assert.ErrorIs(t, wrongPassword, entity.ErrUnauthorized)
	assert.ErrorIs(t, unknownEmail, entity.ErrUnauthorized)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestUserUsecase_UpdateUser_EmailConflict(t *testing.T) {
	stored := &entity.User{ID: "user-1", Email: "maria@example.com", Name: "Maria", PasswordHash: "hash"}

	userRepo := new(MockUserRepository)
	userRepo.On("GetByID", mock.Anything, "user-1").Return(stored, nil)
	userRepo.On("EmailExists", mock.Anything, "taken@example.com").Return(true, nil)

	uc := newUserUsecaseForTest(userRepo)
	taken := "taken@example.com"
	_, err := uc.UpdateUser(context.Background(), "user-1", UpdateUserInput{Email: &taken})
	assert.ErrorIs(t, err, entity.ErrConflict)
	userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUserUsecase_ChangePassword(t *testing.T) {
	stored := &entity.User{ID: "user-1", Email: "maria@example.com", Name: "Maria", PasswordHash: "old-hash"}

	userRepo := new(MockUserRepository)
	userRepo.On("GetByID", mock.Anything, "user-1").Return(stored, nil)
	userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.PasswordHash != "old-hash" && auth.CheckPassword(u.PasswordHash, "new-secret")
	})).Return(nil)

	uc := newUserUsecaseForTest(userRepo)
	assert.NoError(t, uc.ChangePassword(context.Background(), "user-1", "new-secret"))
	userRepo.AssertExpectations(t)
}

func TestUserUsecase_DeleteUser_NotFound(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("Delete", mock.Anything, "ghost").Return(repository.ErrNotFound)

	uc := newUserUsecaseForTest(userRepo)
	assert.ErrorIs(t, uc.DeleteUser(context.Background(), "ghost"), entity.ErrNotFound)
}
