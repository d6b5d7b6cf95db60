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

var (
	ErrPostNotFound  = errors.New("post not found")
	ErrParentComment = errors.New("parent comment does not belong to this post")
)

const (
	defaultFeedLimit = 20
	maxFeedLimit     = 100
)

type PostService struct {
	postRepo      repository.PostRepository
	images        storage.ImageStore
	uploadTimeout time.Duration
}

func NewPostService(postRepo repository.PostRepository, images storage.ImageStore, uploadTimeout time.Duration) *PostService {
	return &PostService{
		postRepo:      postRepo,
		images:        images,
		uploadTimeout: uploadTimeout,
	}
}

func (s *PostService) Create(ctx context.Context, authorID uuid.UUID, content string, image *ImageUpload) (*domain.Post, error) {
	post := &domain.Post{
		ID:        uuid.New(),
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("creating post: %w", err)
	}

	// Image attachment happens after the post is persisted, so a slow
	// or failing upload never blocks or fails the write.
	if url := attachImage(ctx, s.images, s.uploadTimeout, "posts", image); url != nil {
		post.ImageURL = url
		if err := s.postRepo.Update(ctx, post); err != nil {
			post.ImageURL = nil
		}
	}
	return post, nil
}

// PostWithComments is the detail view for a single post.
type PostWithComments struct {
	domain.Post
	Comments []domain.Comment `json:"comments"`
}

func (s *PostService) Feed(ctx context.Context, before *uuid.UUID, limit int) ([]domain.Post, error) {
	if limit <= 0 {
		limit = defaultFeedLimit
	}
	if limit > maxFeedLimit {
		limit = maxFeedLimit
	}
	return s.postRepo.ListFeed(ctx, before, limit)
}

func (s *PostService) Get(ctx context.Context, postID uuid.UUID) (*PostWithComments, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	comments, err := s.postRepo.ListComments(ctx, postID)
	if err != nil {
		return nil, err
	}

	return &PostWithComments{Post: *post, Comments: comments}, nil
}

// Delete removes a post. Non-authors get "not found", same as a
// missing post.
func (s *PostService) Delete(ctx context.Context, userID, postID uuid.UUID) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil || post.AuthorID != userID {
		return ErrPostNotFound
	}
	return s.postRepo.Delete(ctx, postID)
}

func (s *PostService) AddComment(ctx context.Context, authorID, postID uuid.UUID, content string, parentID *uuid.UUID) (*domain.Comment, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	if parentID != nil {
		parent, err := s.postRepo.GetCommentByID(ctx, *parentID)
		if err != nil {
			return nil, err
		}
		// Nesting is one level deep: the parent must be a top-level
		// comment on the same post.
		if parent == nil || parent.PostID != postID || parent.ParentID != nil {
			return nil, ErrParentComment
		}
	}

	comment := &domain.Comment{
		ID:        uuid.New(),
		PostID:    postID,
		AuthorID:  authorID,
		ParentID:  parentID,
		Content:   content,
		CreatedAt: time.Now(),
	}

	if err := s.postRepo.CreateComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("creating comment: %w", err)
	}
	return comment, nil
}
