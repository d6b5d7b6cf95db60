package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pawhub/pawhub/internal/auth"
	"github.com/pawhub/pawhub/internal/domain"
	"github.com/pawhub/pawhub/internal/repository"
	"github.com/pawhub/pawhub/internal/storage"
)

var (
	ErrEmailTaken = errors.New("email already registered")
	// One error for both unknown email and wrong password, so a
	// caller cannot probe which emails have accounts.
	ErrInvalidCreds = errors.New("invalid email or password")
)

type AuthService struct {
	userRepo      repository.UserRepository
	issuer        *auth.Issuer
	denylist      *auth.Denylist
	images        storage.ImageStore
	uploadTimeout time.Duration
}

func NewAuthService(userRepo repository.UserRepository, issuer *auth.Issuer, denylist *auth.Denylist, images storage.ImageStore, uploadTimeout time.Duration) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		issuer:        issuer,
		denylist:      denylist,
		images:        images,
		uploadTimeout: uploadTimeout,
	}
}

// RegisterInput carries already-validated, normalized fields.
type RegisterInput struct {
	FullName  string
	Gender    string
	Birthdate time.Time
	Email     string
	Password  string
	Image     *ImageUpload
}

type AuthResponse struct {
	User    *domain.User `json:"user"`
	Token   string       `json:"token"`
	IsAdmin bool         `json:"is_admin"`
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New(),
		Email:        input.Email,
		FullName:     input.FullName,
		Gender:       input.Gender,
		Birthdate:    input.Birthdate,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// The unique index is the authority: two near-simultaneous
		// registrations can both pass the read above, only one insert
		// wins.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	// Best-effort avatar: the account exists either way.
	if url := attachImage(ctx, s.images, s.uploadTimeout, "users", input.Image); url != nil {
		user.AvatarURL = url
		user.UpdatedAt = time.Now()
		if err := s.userRepo.Update(ctx, user); err != nil {
			user.AvatarURL = nil
		}
	}

	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCreds
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCreds
	}

	token, err := s.issuer.Issue(user.ID, user.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}

	return &AuthResponse{User: user, Token: token, IsAdmin: user.IsAdmin}, nil
}

// Logout denylists the presented token until its natural expiry.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if s.denylist == nil || claims.TokenID == uuid.Nil {
		return nil
	}
	return s.denylist.Revoke(ctx, claims.TokenID, claims.ExpiresAt)
}
