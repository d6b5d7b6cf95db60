package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pawhub/pawhub/internal/domain"
)

type PostRepo struct {
	pool *pgxpool.Pool
}

func NewPostRepo(pool *pgxpool.Pool) *PostRepo {
	return &PostRepo{pool: pool}
}

func (r *PostRepo) Create(ctx context.Context, post *domain.Post) error {
	query := `
		INSERT INTO posts (id, author_id, content, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.pool.Exec(ctx, query,
		post.ID, post.AuthorID, post.Content, post.ImageURL, post.CreatedAt,
	)
	return err
}

func (r *PostRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	query := `
		SELECT p.id, p.author_id, p.content, p.image_url, p.created_at, u.full_name,
			(SELECT count(*) FROM comments c WHERE c.post_id = p.id)
		FROM posts p
		JOIN users u ON p.author_id = u.id
		WHERE p.id = $1`
	var post domain.Post
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&post.ID, &post.AuthorID, &post.Content, &post.ImageURL,
		&post.CreatedAt, &post.AuthorName, &post.CommentCount,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return &post, err
}

func (r *PostRepo) ListFeed(ctx context.Context, before *uuid.UUID, limit int) ([]domain.Post, error) {
	var query string
	var args []any

	if before != nil {
		// COALESCE keeps the feed readable when the cursor post has
		// been deleted: the filter falls away instead of matching
		// nothing.
		query = `
			SELECT p.id, p.author_id, p.content, p.image_url, p.created_at, u.full_name,
				(SELECT count(*) FROM comments c WHERE c.post_id = p.id)
			FROM posts p
			JOIN users u ON p.author_id = u.id
			WHERE p.created_at < COALESCE((SELECT created_at FROM posts WHERE id = $1), 'infinity'::timestamptz)
			ORDER BY p.created_at DESC
			LIMIT $2`
		args = []any{*before, limit}
	} else {
		query = `
			SELECT p.id, p.author_id, p.content, p.image_url, p.created_at, u.full_name,
				(SELECT count(*) FROM comments c WHERE c.post_id = p.id)
			FROM posts p
			JOIN users u ON p.author_id = u.id
			ORDER BY p.created_at DESC
			LIMIT $1`
		args = []any{limit}
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		var post domain.Post
		if err := rows.Scan(
			&post.ID, &post.AuthorID, &post.Content, &post.ImageURL,
			&post.CreatedAt, &post.AuthorName, &post.CommentCount,
		); err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func (r *PostRepo) Update(ctx context.Context, post *domain.Post) error {
	query := `UPDATE posts SET content = $1, image_url = $2 WHERE id = $3`
	_, err := r.pool.Exec(ctx, query, post.Content, post.ImageURL, post.ID)
	return err
}

func (r *PostRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	return err
}

func (r *PostRepo) CreateComment(ctx context.Context, comment *domain.Comment) error {
	query := `
		INSERT INTO comments (id, post_id, author_id, parent_id, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(ctx, query,
		comment.ID, comment.PostID, comment.AuthorID, comment.ParentID,
		comment.Content, comment.CreatedAt,
	)
	return err
}

func (r *PostRepo) GetCommentByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	query := `SELECT id, post_id, author_id, parent_id, content, created_at FROM comments WHERE id = $1`
	var c domain.Comment
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.PostID, &c.AuthorID, &c.ParentID, &c.Content, &c.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return &c, err
}

func (r *PostRepo) ListComments(ctx context.Context, postID uuid.UUID) ([]domain.Comment, error) {
	query := `
		SELECT c.id, c.post_id, c.author_id, c.parent_id, c.content, c.created_at, u.full_name
		FROM comments c
		JOIN users u ON c.author_id = u.id
		WHERE c.post_id = $1
		ORDER BY c.created_at`

	rows, err := r.pool.Query(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(
			&c.ID, &c.PostID, &c.AuthorID, &c.ParentID, &c.Content,
			&c.CreatedAt, &c.AuthorName,
		); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
