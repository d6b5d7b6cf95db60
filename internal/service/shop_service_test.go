package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShopService_CRUD(t *testing.T) {
	svc := NewShopService(newFakeShopRepo(), &fakeImageStore{}, time.Second)
	ctx := context.Background()

	shop, err := svc.Create(ctx, CreateShopInput{
		Name:    "Happy Paws",
		Address: "12 Bark Street",
		Phone:   "555-0101",
	})
	require.NoError(t, err)

	got, err := svc.Get(ctx, shop.ID)
	require.NoError(t, err)
	assert.Equal(t, "Happy Paws", got.Name)

	phone := "555-0202"
	updated, err := svc.Update(ctx, shop.ID, UpdateShopInput{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "555-0202", updated.Phone)
	assert.Equal(t, "Happy Paws", updated.Name)

	shops, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, shops, 1)

	require.NoError(t, svc.Delete(ctx, shop.ID))
	_, err = svc.Get(ctx, shop.ID)
	assert.ErrorIs(t, err, ErrShopNotFound)
}

func TestShopService_Create_PersistsBeforeUpload(t *testing.T) {
	repo := newFakeShopRepo()
	var persistedAtUpload bool
	images := &hookImageStore{onUpload: func() { persistedAtUpload = len(repo.shops) == 1 }}
	svc := NewShopService(repo, images, time.Second)
	ctx := context.Background()

	shop, err := svc.Create(ctx, CreateShopInput{
		Name:    "Happy Paws",
		Address: "12 Bark Street",
		Image:   &ImageUpload{ContentType: "image/png", Data: []byte("png-bytes")},
	})
	require.NoError(t, err)
	assert.True(t, persistedAtUpload, "shop must be persisted before the upload is attempted")
	require.NotNil(t, shop.ImageURL)
}

func TestShopService_Create_ImageFailureIsBestEffort(t *testing.T) {
	repo := newFakeShopRepo()
	svc := NewShopService(repo, &fakeImageStore{uploadErr: errors.New("storage down")}, time.Second)
	ctx := context.Background()

	shop, err := svc.Create(ctx, CreateShopInput{Name: "Happy Paws", Address: "12 Bark Street",
		Image: &ImageUpload{ContentType: "image/png", Data: []byte("png-bytes")}})
	require.NoError(t, err)
	assert.Nil(t, shop.ImageURL)

	stored, err := repo.GetByID(ctx, shop.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Nil(t, stored.ImageURL)
}

func TestShopService_Get_Missing(t *testing.T) {
	svc := NewShopService(newFakeShopRepo(), &fakeImageStore{}, time.Second)

	_, err := svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrShopNotFound)

	err = svc.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrShopNotFound)
}
