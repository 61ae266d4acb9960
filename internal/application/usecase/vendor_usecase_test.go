package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/naimarket-api/internal/application/usecase"
	"github.com/jhoicas/naimarket-api/internal/domain"
)

func TestVendorUseCase_ListYGet(t *testing.T) {
	f := newFixture(t)
	uc := usecase.NewVendorUseCase(f.store.Vendors(), newFakeImages())
	ctx := context.Background()

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Vera's Bakery", list[0].Name)

	v, err := uc.GetByID(ctx, f.vendorID)
	require.NoError(t, err)
	assert.Equal(t, "food", v.Category)

	_, err = uc.GetByID(ctx, 404)
	assert.ErrorIs(t, err, domain.ErrVendorNotFound)
}

func TestVendorUseCase_UpdateLogo(t *testing.T) {
	f := newFixture(t)
	images := newFakeImages()
	uc := usecase.NewVendorUseCase(f.store.Vendors(), images)
	ctx := context.Background()

	out, err := uc.UpdateLogo(ctx, f.vendorID, fileHeader("logo.png"))
	require.NoError(t, err)
	assert.Equal(t, "img-1.png", out.Image)

	v, err := f.store.Vendors().GetByID(ctx, f.vendorID)
	require.NoError(t, err)
	assert.Equal(t, "img-1.png", v.Image)
}

func TestVendorUseCase_UpdateLogoVendorInexistenteBorraImagen(t *testing.T) {
	f := newFixture(t)
	images := newFakeImages()
	uc := usecase.NewVendorUseCase(f.store.Vendors(), images)

	_, err := uc.UpdateLogo(context.Background(), 999, fileHeader("logo.png"))
	assert.ErrorIs(t, err, domain.ErrVendorNotFound)
	assert.Zero(t, images.count())
	assert.Equal(t, []string{"img-1.png"}, images.removed)
}

func TestVendorUseCase_UpdateLogoRechazaTipo(t *testing.T) {
	f := newFixture(t)
	uc := usecase.NewVendorUseCase(f.store.Vendors(), newFakeImages())

	_, err := uc.UpdateLogo(context.Background(), f.vendorID, fileHeader("cv.pdf"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedMedia)

	_, err = uc.UpdateLogo(context.Background(), f.vendorID, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
