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

var ErrShopNotFound = errors.New("shop not found")

// ShopService manages the shop directory. Writes are admin-only,
// enforced by middleware before a request reaches this service.
type ShopService struct {
	shopRepo      repository.ShopRepository
	images        storage.ImageStore
	uploadTimeout time.Duration
}

func NewShopService(shopRepo repository.ShopRepository, images storage.ImageStore, uploadTimeout time.Duration) *ShopService {
	return &ShopService{
		shopRepo:      shopRepo,
		images:        images,
		uploadTimeout: uploadTimeout,
	}
}

type CreateShopInput struct {
	Name        string
	Description string
	Address     string
	Phone       string
	Image       *ImageUpload
}

type UpdateShopInput struct {
	Name        *string
	Description *string
	Address     *string
	Phone       *string
	Image       *ImageUpload
}

func (s *ShopService) Create(ctx context.Context, input CreateShopInput) (*domain.Shop, error) {
	now := time.Now()
	shop := &domain.Shop{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
		Address:     input.Address,
		Phone:       input.Phone,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.shopRepo.Create(ctx, shop); err != nil {
		return nil, fmt.Errorf("creating shop: %w", err)
	}

	// The shop is persisted before the upload is attempted, so a slow
	// or failing upload never blocks or fails creation.
	if url := attachImage(ctx, s.images, s.uploadTimeout, "shops", input.Image); url != nil {
		shop.ImageURL = url
		if err := s.shopRepo.Update(ctx, shop); err != nil {
			shop.ImageURL = nil
		}
	}
	return shop, nil
}

func (s *ShopService) List(ctx context.Context) ([]domain.Shop, error) {
	return s.shopRepo.List(ctx)
}

func (s *ShopService) Get(ctx context.Context, shopID uuid.UUID) (*domain.Shop, error) {
	shop, err := s.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, ErrShopNotFound
	}
	return shop, nil
}

func (s *ShopService) Update(ctx context.Context, shopID uuid.UUID, input UpdateShopInput) (*domain.Shop, error) {
	shop, err := s.Get(ctx, shopID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		shop.Name = *input.Name
	}
	if input.Description != nil {
		shop.Description = *input.Description
	}
	if input.Address != nil {
		shop.Address = *input.Address
	}
	if input.Phone != nil {
		shop.Phone = *input.Phone
	}
	if url := attachImage(ctx, s.images, s.uploadTimeout, "shops", input.Image); url != nil {
		shop.ImageURL = url
	}
	shop.UpdatedAt = time.Now()

	if err := s.shopRepo.Update(ctx, shop); err != nil {
		return nil, fmt.Errorf("updating shop: %w", err)
	}
	return shop, nil
}

func (s *ShopService) Delete(ctx context.Context, shopID uuid.UUID) error {
	if _, err := s.Get(ctx, shopID); err != nil {
		return err
	}
	return s.shopRepo.Delete(ctx, shopID)
}
