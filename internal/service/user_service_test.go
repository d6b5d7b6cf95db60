package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawhub/pawhub/internal/domain"
)

func seedUser(t *testing.T, repo *fakeUserRepo) *domain.User {
	t.Helper()
	user := &domain.User{
		ID:       uuid.New(),
		FullName: "Jo Lee",
		Gender:   "Female",
		Email:    "jo@example.com",
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestUserService_Get(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, nil, time.Second)
	user := seedUser(t, repo)

	got, err := svc.Get(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)

	_, err = svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_UpdateProfile_PartialFields(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, nil, time.Second)
	user := seedUser(t, repo)

	name := "Jo Lee-Park"
	updated, err := svc.UpdateProfile(context.Background(), user.ID, UpdateProfileInput{
		FullName: &name,
	})
	require.NoError(t, err)
	assert.Equal(t, "Jo Lee-Park", updated.FullName)
	// Fields not named in the input keep their stored values.
	assert.Equal(t, "Female", updated.Gender)
	assert.Equal(t, "jo@example.com", updated.Email)
}

func TestUserService_UpdateProfile_Avatar(t *testing.T) {
	repo := newFakeUserRepo()
	images := &fakeImageStore{}
	svc := NewUserService(repo, images, time.Second)
	user := seedUser(t, repo)

	updated, err := svc.UpdateProfile(context.Background(), user.ID, UpdateProfileInput{
		Image: &ImageUpload{ContentType: "image/png", Data: []byte("png-bytes")},
	})
	require.NoError(t, err)
	require.NotNil(t, updated.AvatarURL)
	assert.Contains(t, *updated.AvatarURL, "users/")
	assert.Equal(t, 1, images.uploads)
}

func TestUserService_UpdateProfile_AvatarFailureKeepsOld(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, &fakeImageStore{uploadErr: context.DeadlineExceeded}, time.Second)
	user := seedUser(t, repo)

	old := "http://images.test/users/old"
	user.AvatarURL = &old
	require.NoError(t, repo.Update(context.Background(), user))

	updated, err := svc.UpdateProfile(context.Background(), user.ID, UpdateProfileInput{
		Image: &ImageUpload{ContentType: "image/png", Data: []byte("png-bytes")},
	})
	require.NoError(t, err)
	require.NotNil(t, updated.AvatarURL)
	assert.Equal(t, old, *updated.AvatarURL)
}

func TestUserService_UpdateProfile_UnknownUser(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), nil, time.Second)

	name := "Nobody"
	_, err := svc.UpdateProfile(context.Background(), uuid.New(), UpdateProfileInput{FullName: &name})
	assert.ErrorIs(t, err, ErrUserNotFound)
}
