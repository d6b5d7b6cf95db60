package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/pawhub/pawhub/internal/domain"
	"github.com/pawhub/pawhub/internal/repository"
)

// In-memory fakes for the repository interfaces.

type fakeUserRepo struct {
	users     map[uuid.UUID]*domain.User
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*domain.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, u := range f.users {
		if strings.EqualFold(u.Email, user.Email) {
			return repository.ErrDuplicate
		}
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *domain.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return errors.New("no such user")
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

type fakePetRepo struct {
	pets map[uuid.UUID]*domain.Pet
}

func newFakePetRepo() *fakePetRepo {
	return &fakePetRepo{pets: make(map[uuid.UUID]*domain.Pet)}
}

func (f *fakePetRepo) Create(ctx context.Context, pet *domain.Pet) error {
	cp := *pet
	f.pets[pet.ID] = &cp
	return nil
}

func (f *fakePetRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Pet, error) {
	p, ok := f.pets[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakePetRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Pet, error) {
	var out []domain.Pet
	for _, p := range f.pets {
		if p.OwnerID == ownerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePetRepo) Update(ctx context.Context, pet *domain.Pet) error {
	if _, ok := f.pets[pet.ID]; !ok {
		return errors.New("no such pet")
	}
	cp := *pet
	f.pets[pet.ID] = &cp
	return nil
}

func (f *fakePetRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.pets, id)
	return nil
}

type fakeRecordRepo struct {
	records map[uuid.UUID]*domain.MedicalRecord
}

func newFakeRecordRepo() *fakeRecordRepo {
	return &fakeRecordRepo{records: make(map[uuid.UUID]*domain.MedicalRecord)}
}

func (f *fakeRecordRepo) Create(ctx context.Context, rec *domain.MedicalRecord) error {
	cp := *rec
	f.records[rec.ID] = &cp
	return nil
}

func (f *fakeRecordRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.MedicalRecord, error) {
	rec, ok := f.records[id]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeRecordRepo) ListByPet(ctx context.Context, petID uuid.UUID) ([]domain.MedicalRecord, error) {
	var out []domain.MedicalRecord
	for _, rec := range f.records {
		if rec.PetID == petID {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (f *fakeRecordRepo) Update(ctx context.Context, rec *domain.MedicalRecord) error {
	if _, ok := f.records[rec.ID]; !ok {
		return errors.New("no such record")
	}
	cp := *rec
	f.records[rec.ID] = &cp
	return nil
}

func (f *fakeRecordRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.records, id)
	return nil
}

type fakePostRepo struct {
	posts    map[uuid.UUID]*domain.Post
	comments map[uuid.UUID]*domain.Comment
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{
		posts:    make(map[uuid.UUID]*domain.Post),
		comments: make(map[uuid.UUID]*domain.Comment),
	}
}

func (f *fakePostRepo) Create(ctx context.Context, post *domain.Post) error {
	cp := *post
	f.posts[post.ID] = &cp
	return nil
}

func (f *fakePostRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakePostRepo) ListFeed(ctx context.Context, before *uuid.UUID, limit int) ([]domain.Post, error) {
	var out []domain.Post
	for _, p := range f.posts {
		out = append(out, *p)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (f *fakePostRepo) Update(ctx context.Context, post *domain.Post) error {
	if _, ok := f.posts[post.ID]; !ok {
		return errors.New("no such post")
	}
	cp := *post
	f.posts[post.ID] = &cp
	return nil
}

func (f *fakePostRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.posts, id)
	return nil
}

func (f *fakePostRepo) CreateComment(ctx context.Context, comment *domain.Comment) error {
	cp := *comment
	f.comments[comment.ID] = &cp
	return nil
}

func (f *fakePostRepo) GetCommentByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	c, ok := f.comments[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakePostRepo) ListComments(ctx context.Context, postID uuid.UUID) ([]domain.Comment, error) {
	var out []domain.Comment
	for _, c := range f.comments {
		if c.PostID == postID {
			out = append(out, *c)
		}
	}
	return out, nil
}

type fakeShopRepo struct {
	shops map[uuid.UUID]*domain.Shop
}

func newFakeShopRepo() *fakeShopRepo {
	return &fakeShopRepo{shops: make(map[uuid.UUID]*domain.Shop)}
}

func (f *fakeShopRepo) Create(ctx context.Context, shop *domain.Shop) error {
	cp := *shop
	f.shops[shop.ID] = &cp
	return nil
}

func (f *fakeShopRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Shop, error) {
	s, ok := f.shops[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeShopRepo) List(ctx context.Context) ([]domain.Shop, error) {
	var out []domain.Shop
	for _, s := range f.shops {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeShopRepo) Update(ctx context.Context, shop *domain.Shop) error {
	if _, ok := f.shops[shop.ID]; !ok {
		return errors.New("no such shop")
	}
	cp := *shop
	f.shops[shop.ID] = &cp
	return nil
}

func (f *fakeShopRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.shops, id)
	return nil
}

// fakeImageStore records uploads and can be told to fail.
type fakeImageStore struct {
	uploads   int
	uploadErr error
}

func (f *fakeImageStore) Upload(ctx context.Context, key, contentType string, body []byte) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.uploads++
	return "http://images.test/" + key, nil
}

// hookImageStore runs a callback before each upload, letting a test
// observe repository state at the moment the upload happens.
type hookImageStore struct {
	fakeImageStore
	onUpload func()
}

func (f *hookImageStore) Upload(ctx context.Context, key, contentType string, body []byte) (string, error) {
	if f.onUpload != nil {
		f.onUpload()
	}
	return f.fakeImageStore.Upload(ctx, key, contentType, body)
}
