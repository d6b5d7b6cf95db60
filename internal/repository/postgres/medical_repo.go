package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pawhub/pawhub/internal/domain"
)

type MedicalRecordRepo struct {
	pool *pgxpool.Pool
}

func NewMedicalRecordRepo(pool *pgxpool.Pool) *MedicalRecordRepo {
	return &MedicalRecordRepo{pool: pool}
}

func (r *MedicalRecordRepo) Create(ctx context.Context, rec *domain.MedicalRecord) error {
	query := `
		INSERT INTO medical_records (id, pet_id, title, description, vet_name, visit_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		rec.ID, rec.PetID, rec.Title, rec.Description, rec.VetName,
		rec.VisitDate, rec.CreatedAt, rec.UpdatedAt,
	)
	return err
}

func (r *MedicalRecordRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.MedicalRecord, error) {
	query := `SELECT id, pet_id, title, description, vet_name, visit_date, created_at, updated_at FROM medical_records WHERE id = $1`
	var rec domain.MedicalRecord
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&rec.ID, &rec.PetID, &rec.Title, &rec.Description, &rec.VetName,
		&rec.VisitDate, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return &rec, err
}

func (r *MedicalRecordRepo) ListByPet(ctx context.Context, petID uuid.UUID) ([]domain.MedicalRecord, error) {
	query := `
		SELECT id, pet_id, title, description, vet_name, visit_date, created_at, updated_at
		FROM medical_records
		WHERE pet_id = $1
		ORDER BY visit_date DESC, created_at DESC`

	rows, err := r.pool.Query(ctx, query, petID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.MedicalRecord
	for rows.Next() {
		var rec domain.MedicalRecord
		if err := rows.Scan(
			&rec.ID, &rec.PetID, &rec.Title, &rec.Description, &rec.VetName,
			&rec.VisitDate, &rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *MedicalRecordRepo) Update(ctx context.Context, rec *domain.MedicalRecord) error {
	query := `UPDATE medical_records SET title = $1, description = $2, vet_name = $3, visit_date = $4, updated_at = $5 WHERE id = $6`
	_, err := r.pool.Exec(ctx, query,
		rec.Title, rec.Description, rec.VetName, rec.VisitDate, rec.UpdatedAt, rec.ID,
	)
	return err
}

func (r *MedicalRecordRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM medical_records WHERE id = $1`, id)
	return err
}
