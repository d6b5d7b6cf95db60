package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pawhub/pawhub/internal/domain"
	"github.com/pawhub/pawhub/internal/repository"
	"github.com/pawhub/pawhub/internal/storage"
)

var ErrUserNotFound = errors.New("user not found")

type UserService struct {
	userRepo      repository.UserRepository
	images        storage.ImageStore
	uploadTimeout time.Duration
}

func NewUserService(userRepo repository.UserRepository, images storage.ImageStore, uploadTimeout time.Duration) *UserService {
	return &UserService{
		userRepo:      userRepo,
		images:        images,
		uploadTimeout: uploadTimeout,
	}
}

func (s *UserService) Get(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

type UpdateProfileInput struct {
	FullName  *string
	Gender    *string
	Birthdate *time.Time
	Image     *ImageUpload
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Gender != nil {
		user.Gender = *input.Gender
	}
	if input.Birthdate != nil {
		user.Birthdate = *input.Birthdate
	}
	if url := attachImage(ctx, s.images, s.uploadTimeout, "users", input.Image); url != nil {
		user.AvatarURL = url
	}
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("updating profile: %w", err)
	}

	return user, nil
}
