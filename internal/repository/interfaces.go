package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pawhub/pawhub/internal/domain"
)

// ErrDuplicate is returned when an insert hits a unique constraint.
// The database constraint is the authority on uniqueness; pre-insert
// reads are only a fast path for friendlier errors.
var ErrDuplicate = errors.New("duplicate record")

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type PetRepository interface {
	Create(ctx context.Context, pet *domain.Pet) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Pet, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Pet, error)
	Update(ctx context.Context, pet *domain.Pet) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type MedicalRecordRepository interface {
	Create(ctx context.Context, rec *domain.MedicalRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.MedicalRecord, error)
	ListByPet(ctx context.Context, petID uuid.UUID) ([]domain.MedicalRecord, error)
	Update(ctx context.Context, rec *domain.MedicalRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error)
	ListFeed(ctx context.Context, before *uuid.UUID, limit int) ([]domain.Post, error)
	Update(ctx context.Context, post *domain.Post) error
	Delete(ctx context.Context, id uuid.UUID) error
	CreateComment(ctx context.Context, comment *domain.Comment) error
	GetCommentByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	ListComments(ctx context.Context, postID uuid.UUID) ([]domain.Comment, error)
}

type ShopRepository interface {
	Create(ctx context.Context, shop *domain.Shop) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Shop, error)
	List(ctx context.Context) ([]domain.Shop, error)
	Update(ctx context.Context, shop *domain.Shop) error
	Delete(ctx context.Context, id uuid.UUID) error
}
