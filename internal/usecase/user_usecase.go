package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/auth"
	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/entity"
	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/platform/logger"
	"github.com/eduardoribeiir/web-2025-2-tem-vaga-ai-ribeiro-backend/internal/port/repository"
)

// UserUsecase handles registration, authentication and account management.
type UserUsecase struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenManager
	logger   *logger.Logger
}

func NewUserUsecase(userRepo repository.UserRepository, tokens *auth.TokenManager, log *logger.Logger) *UserUsecase {
	return &UserUsecase{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   log,
	}
}

// Register creates an account and returns it together with a signed bearer
// token. A duplicate email fails with entity.ErrConflict.
func (uc *UserUsecase) Register(ctx context.Context, email, name, password string) (*entity.User, string, error) {
	exists, err := uc.userRepo.EmailExists(ctx, email)
	if err != nil {
		uc.logger.Error("Failed to check email existence", zap.Error(err))
		return nil, "", fmt.Errorf("UserUsecase.Register: %w", err)
	}
	if exists {
		return nil, "", fmt.Errorf("%w: email already registered", entity.ErrConflict)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("UserUsecase.Register: %w", err)
	}

	user, err := entity.NewUser(email, name, hash)
	if err != nil {
		return nil, "", err
	}

	createdID, err := uc.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, "", fmt.Errorf("%w: email already registered", entity.ErrConflict)
		}
		uc.logger.Error("Failed to create user in repository", zap.Error(err))
		return nil, "", fmt.Errorf("UserUsecase.Register: %w", err)
	}
	user.ID = createdID

	token, err := uc.tokens.Issue(user.ID, user.Email)
	if err != nil {
		uc.logger.Error("Failed to issue token after register", zap.String("user_id", user.ID), zap.Error(err))
		return nil, "", fmt.Errorf("UserUsecase.Register: %w", err)
	}
	return user, token, nil
}

// Authenticate verifies credentials and returns the user plus a fresh token.
// Unknown email and wrong password fail with the same entity.ErrUnauthorized
// so callers cannot probe which emails are registered.
func (uc *UserUsecase) Authenticate(ctx context.Context, email, password string) (*entity.User, string, error) {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", entity.ErrUnauthorized
		}
		uc.logger.Error("Failed to get user by email", zap.Error(err))
		return nil, "", fmt.Errorf("UserUsecase.Authenticate: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, "", entity.ErrUnauthorized
	}

	token, err := uc.tokens.Issue(user.ID, user.Email)
	if err != nil {
		uc.logger.Error("Failed to issue token after login", zap.String("user_id", user.ID), zap.Error(err))
		return nil, "", fmt.Errorf("UserUsecase.Authenticate: %w", err)
	}
	return user, token, nil
}

func (uc *UserUsecase) GetUser(ctx context.Context, id string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, entity.ErrNotFound
		}
		uc.logger.Error("Failed to get user from repository", zap.String("user_id", id), zap.Error(err))
		return nil, fmt.Errorf("UserUsecase.GetUser: %w", err)
	}
	return user, nil
}

// UpdateUserInput is the explicit partial-update structure for accounts.
// The password hash is deliberately absent; password changes only go
// through ChangePassword.
type UpdateUserInput struct {
	Name  *string
	Email *string
	Phone *string
}

func (uc *UserUsecase) UpdateUser(ctx context.Context, userID string, input UpdateUserInput) (*entity.User, error) {
	user, err := uc.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Email != nil && *input.Email != user.Email {
		exists, err := uc.userRepo.EmailExists(ctx, *input.Email)
		if err != nil {
			return nil, fmt.Errorf("UserUsecase.UpdateUser: %w", err)
		}
		if exists {
			return nil, fmt.Errorf("%w: email already registered", entity.ErrConflict)
		}
		user.Email = *input.Email
	}
	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}
	user.UpdatedAt = time.Now().UTC()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, entity.ErrNotFound
		}
		uc.logger.Error("Failed to update user in repository", zap.String("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("UserUsecase.UpdateUser: %w", err)
	}
	return user, nil
}

// ChangePassword is the only path that mutates the stored hash.
func (uc *UserUsecase) ChangePassword(ctx context.Context, userID, newPassword string) error {
	user, err := uc.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("UserUsecase.ChangePassword: %w", err)
	}
	user.PasswordHash = hash
	user.UpdatedAt = time.Now().UTC()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return entity.ErrNotFound
		}
		uc.logger.Error("Failed to persist password change", zap.String("user_id", userID), zap.Error(err))
		return fmt.Errorf("UserUsecase.ChangePassword: %w", err)
	}
	return nil
}

// DeleteUser removes the account; the repository cascades to everything
// the user owns inside one transaction.
func (uc *UserUsecase) DeleteUser(ctx context.Context, userID string) error {
	if err := uc.userRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return entity.ErrNotFound
		}
		uc.logger.Error("Failed to delete user from repository", zap.String("user_id", userID), zap.Error(err))
		return fmt.Errorf("UserUsecase.DeleteUser: %w", err)
	}
	return nil
}
