package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pawhub/pawhub/internal/domain"
)

type PetRepo struct {
	pool *pgxpool.Pool
}

func NewPetRepo(pool *pgxpool.Pool) *PetRepo {
	return &PetRepo{pool: pool}
}

func (r *PetRepo) Create(ctx context.Context, pet *domain.Pet) error {
	query := `
		INSERT INTO pets (id, owner_id, name, species, breed, gender, birthdate, photo_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.pool.Exec(ctx, query,
		pet.ID, pet.OwnerID, pet.Name, pet.Species, pet.Breed,
		pet.Gender, pet.Birthdate, pet.PhotoURL, pet.CreatedAt, pet.UpdatedAt,
	)
	return err
}

func (r *PetRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Pet, error) {
	query := `SELECT id, owner_id, name, species, breed, gender, birthdate, photo_url, created_at, updated_at FROM pets WHERE id = $1`
	var p domain.Pet
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.OwnerID, &p.Name, &p.Species, &p.Breed,
		&p.Gender, &p.Birthdate, &p.PhotoURL, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return &p, err
}

func (r *PetRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Pet, error) {
	query := `
		SELECT id, owner_id, name, species, breed, gender, birthdate, photo_url, created_at, updated_at
		FROM pets
		WHERE owner_id = $1
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pets []domain.Pet
	for rows.Next() {
		var p domain.Pet
		if err := rows.Scan(
			&p.ID, &p.OwnerID, &p.Name, &p.Species, &p.Breed,
			&p.Gender, &p.Birthdate, &p.PhotoURL, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		pets = append(pets, p)
	}
	return pets, rows.Err()
}

func (r *PetRepo) Update(ctx context.Context, pet *domain.Pet) error {
	query := `UPDATE pets SET name = $1, species = $2, breed = $3, gender = $4, birthdate = $5, photo_url = $6, updated_at = $7 WHERE id = $8`
	_, err := r.pool.Exec(ctx, query,
		pet.Name, pet.Species, pet.Breed, pet.Gender, pet.Birthdate,
		pet.PhotoURL, pet.UpdatedAt, pet.ID,
	)
	return err
}

func (r *PetRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM pets WHERE id = $1`, id)
	return err
}
