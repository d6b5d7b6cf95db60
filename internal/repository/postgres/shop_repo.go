package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pawhub/pawhub/internal/domain"
)

type ShopRepo struct {
	pool *pgxpool.Pool
}

func NewShopRepo(pool *pgxpool.Pool) *ShopRepo {
	return &ShopRepo{pool: pool}
}

func (r *ShopRepo) Create(ctx context.Context, shop *domain.Shop) error {
	query := `
		INSERT INTO shops (id, name, description, address, phone, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(ctx, query,
		shop.ID, shop.Name, shop.Description, shop.Address, shop.Phone,
		shop.ImageURL, shop.CreatedAt, shop.UpdatedAt,
	)
	return err
}

func (r *ShopRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Shop, error) {
	query := `SELECT id, name, description, address, phone, image_url, created_at, updated_at FROM shops WHERE id = $1`
	var s domain.Shop
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Name, &s.Description, &s.Address, &s.Phone,
		&s.ImageURL, &s.CreatedAt, &s.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return &s, err
}

func (r *ShopRepo) List(ctx context.Context) ([]domain.Shop, error) {
	query := `
		SELECT id, name, description, address, phone, image_url, created_at, updated_at
		FROM shops
		ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shops []domain.Shop
	for rows.Next() {
		var s domain.Shop
		if err := rows.Scan(
			&s.ID, &s.Name, &s.Description, &s.Address, &s.Phone,
			&s.ImageURL, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		shops = append(shops, s)
	}
	return shops, rows.Err()
}

func (r *ShopRepo) Update(ctx context.Context, shop *domain.Shop) error {
	query := `UPDATE shops SET name = $1, description = $2, address = $3, phone = $4, image_url = $5, updated_at = $6 WHERE id = $7`
	_, err := r.pool.Exec(ctx, query,
		shop.Name, shop.Description, shop.Address, shop.Phone,
		shop.ImageURL, shop.UpdatedAt, shop.ID,
	)
	return err
}

func (r *ShopRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM shops WHERE id = $1`, id)
	return err
}
