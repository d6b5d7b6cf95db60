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

// Ownership failures intentionally collapse into "not found" so a
// non-owner cannot tell whether a pet or record exists at all.
var (
	ErrPetNotFound    = errors.New("pet not found")
	ErrRecordNotFound = errors.New("medical record not found")
)

type PetService struct {
	petRepo       repository.PetRepository
	recordRepo    repository.MedicalRecordRepository
	images        storage.ImageStore
	uploadTimeout time.Duration
}

func NewPetService(petRepo repository.PetRepository, recordRepo repository.MedicalRecordRepository, images storage.ImageStore, uploadTimeout time.Duration) *PetService {
	return &PetService{
		petRepo:       petRepo,
		recordRepo:    recordRepo,
		images:        images,
		uploadTimeout: uploadTimeout,
	}
}

type CreatePetInput struct {
	Name      string
	Species   string
	Breed     string
	Gender    string
	Birthdate *time.Time
	Image     *ImageUpload
}

type UpdatePetInput struct {
	Name      *string
	Species   *string
	Breed     *string
	Gender    *string
	Birthdate *time.Time
}

func (s *PetService) Create(ctx context.Context, ownerID uuid.UUID, input CreatePetInput) (*domain.Pet, error) {
	now := time.Now()
	pet := &domain.Pet{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Name:      input.Name,
		Species:   input.Species,
		Breed:     input.Breed,
		Gender:    input.Gender,
		Birthdate: input.Birthdate,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.petRepo.Create(ctx, pet); err != nil {
		return nil, fmt.Errorf("creating pet: %w", err)
	}

	// The pet is persisted before the upload is attempted, so a slow
	// or failing upload never blocks or fails creation.
	if url := attachImage(ctx, s.images, s.uploadTimeout, "pets", input.Image); url != nil {
		pet.PhotoURL = url
		if err := s.petRepo.Update(ctx, pet); err != nil {
			pet.PhotoURL = nil
		}
	}
	return pet, nil
}

func (s *PetService) List(ctx context.Context, ownerID uuid.UUID) ([]domain.Pet, error) {
	return s.petRepo.ListByOwner(ctx, ownerID)
}

func (s *PetService) Get(ctx context.Context, userID, petID uuid.UUID) (*domain.Pet, error) {
	return s.ownedPet(ctx, userID, petID)
}

func (s *PetService) Update(ctx context.Context, userID, petID uuid.UUID, input UpdatePetInput) (*domain.Pet, error) {
	pet, err := s.ownedPet(ctx, userID, petID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		pet.Name = *input.Name
	}
	if input.Species != nil {
		pet.Species = *input.Species
	}
	if input.Breed != nil {
		pet.Breed = *input.Breed
	}
	if input.Gender != nil {
		pet.Gender = *input.Gender
	}
	if input.Birthdate != nil {
		pet.Birthdate = input.Birthdate
	}
	pet.UpdatedAt = time.Now()

	if err := s.petRepo.Update(ctx, pet); err != nil {
		return nil, fmt.Errorf("updating pet: %w", err)
	}
	return pet, nil
}

func (s *PetService) Delete(ctx context.Context, userID, petID uuid.UUID) error {
	if _, err := s.ownedPet(ctx, userID, petID); err != nil {
		return err
	}
	return s.petRepo.Delete(ctx, petID)
}

// AttachPhoto uploads a pet photo and stores its URL. Unlike the
// create-time attachment this upload is the whole operation, so a
// storage failure is surfaced.
func (s *PetService) AttachPhoto(ctx context.Context, userID, petID uuid.UUID, img *ImageUpload) (*domain.Pet, error) {
	pet, err := s.ownedPet(ctx, userID, petID)
	if err != nil {
		return nil, err
	}

	url, err := uploadImage(ctx, s.images, s.uploadTimeout, "pets", img)
	if err != nil {
		return nil, fmt.Errorf("uploading pet photo: %w", err)
	}

	pet.PhotoURL = &url
	pet.UpdatedAt = time.Now()
	if err := s.petRepo.Update(ctx, pet); err != nil {
		return nil, fmt.Errorf("updating pet: %w", err)
	}
	return pet, nil
}

type MedicalRecordInput struct {
	Title       string
	Description string
	VetName     string
	VisitDate   time.Time
}

type UpdateMedicalRecordInput struct {
	Title       *string
	Description *string
	VetName     *string
	VisitDate   *time.Time
}

func (s *PetService) AddRecord(ctx context.Context, userID, petID uuid.UUID, input MedicalRecordInput) (*domain.MedicalRecord, error) {
	if _, err := s.ownedPet(ctx, userID, petID); err != nil {
		return nil, err
	}

	now := time.Now()
	rec := &domain.MedicalRecord{
		ID:          uuid.New(),
		PetID:       petID,
		Title:       input.Title,
		Description: input.Description,
		VetName:     input.VetName,
		VisitDate:   input.VisitDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.recordRepo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("creating medical record: %w", err)
	}
	return rec, nil
}

func (s *PetService) ListRecords(ctx context.Context, userID, petID uuid.UUID) ([]domain.MedicalRecord, error) {
	if _, err := s.ownedPet(ctx, userID, petID); err != nil {
		return nil, err
	}
	return s.recordRepo.ListByPet(ctx, petID)
}

func (s *PetService) UpdateRecord(ctx context.Context, userID, recordID uuid.UUID, input UpdateMedicalRecordInput) (*domain.MedicalRecord, error) {
	rec, err := s.ownedRecord(ctx, userID, recordID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		rec.Title = *input.Title
	}
	if input.Description != nil {
		rec.Description = *input.Description
	}
	if input.VetName != nil {
		rec.VetName = *input.VetName
	}
	if input.VisitDate != nil {
		rec.VisitDate = *input.VisitDate
	}
	rec.UpdatedAt = time.Now()

	if err := s.recordRepo.Update(ctx, rec); err != nil {
		return nil, fmt.Errorf("updating medical record: %w", err)
	}
	return rec, nil
}

func (s *PetService) DeleteRecord(ctx context.Context, userID, recordID uuid.UUID) error {
	if _, err := s.ownedRecord(ctx, userID, recordID); err != nil {
		return err
	}
	return s.recordRepo.Delete(ctx, recordID)
}

func (s *PetService) ownedPet(ctx context.Context, userID, petID uuid.UUID) (*domain.Pet, error) {
	pet, err := s.petRepo.GetByID(ctx, petID)
	if err != nil {
		return nil, err
	}
	if pet == nil || pet.OwnerID != userID {
		return nil, ErrPetNotFound
	}
	return pet, nil
}

func (s *PetService) ownedRecord(ctx context.Context, userID, recordID uuid.UUID) (*domain.MedicalRecord, error) {
	rec, err := s.recordRepo.GetByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrRecordNotFound
	}
	pet, err := s.petRepo.GetByID(ctx, rec.PetID)
	if err != nil {
		return nil, err
	}
	if pet == nil || pet.OwnerID != userID {
		return nil, ErrRecordNotFound
	}
	return rec, nil
}
