package services

import (
	"bytes"
	"context"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HSouheill/itam_backend/models"
)

func TestListAssetsIsCompanyScoped(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.addAsset(ctx, "Acme", "Laptop", 3, 0)
	f.addAsset(ctx, "Acme", "Monitor", 3, 0)
	f.addAsset(ctx, "Globex", "Laptop", 3, 0)

	assets, err := f.assets.ListAssets(ctx, "Acme", "")
	require.NoError(t, err)
	require.Len(t, assets, 2)
	for _, a := range assets {
		assert.Equal(t, "Acme", a.Company)
	}
}

func TestListAssetsSearchIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.addAsset(ctx, "Acme", "Laptop", 3, 0)
	f.addAsset(ctx, "Acme", "Chair", 3, 0)

	assets, err := f.assets.ListAssets(ctx, "Acme", "lap")
	require.NoError(t, err)
	require.Len(t, assets, 1)
	assert.Equal(t, "Laptop", assets[0].Name)
}

func TestLowStockBoundary(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.addAsset(ctx, "Acme", "Nine", 9, 0)
	f.addAsset(ctx, "Acme", "Ten", 10, 0)

	assets, err := f.assets.LowStock(ctx, "Acme")
	require.NoError(t, err)
	require.Len(t, assets, 1)
	assert.Equal(t, "Nine", assets[0].Name)
}

func TestTopRequestedOrdering(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	for i, requested := range []int{1, 5, 3, 9} {
		f.addAsset(ctx, "Acme", string(rune('A'+i)), 1, requested)
	}

	assets, err := f.assets.TopRequested(ctx, "Acme", 2)
	require.NoError(t, err)
	require.Len(t, assets, 2)
	assert.Equal(t, 9, assets[0].Requested)
	assert.Equal(t, 5, assets[1].Requested)

	assets, err = f.assets.TopRequested(ctx, "Acme", 0)
	require.NoError(t, err)
	assert.Len(t, assets, DefaultTopRequested)
}

func TestUpdateAndDeleteAsset(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	asset := f.addAsset(ctx, "Acme", "Laptop", 3, 0)
	quantity := 7

	res, err := f.assets.UpdateAsset(ctx, "Acme", asset.ID.Hex(), models.AssetUpdate{Quantity: &quantity})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.ModifiedCount)

	got, err := f.assets.GetAsset(ctx, asset.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 7, got.Quantity)

	del, err := f.assets.DeleteAsset(ctx, "Acme", asset.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, int64(1), del.DeletedCount)

	del, err = f.assets.DeleteAsset(ctx, "Acme", asset.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, int64(0), del.DeletedCount)

	_, err = f.assets.GetAsset(ctx, asset.ID.Hex())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAssetChangesStayInCompany(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	asset := f.addAsset(ctx, "Acme", "Laptop", 3, 0)
	quantity := 0

	res, err := f.assets.UpdateAsset(ctx, "Globex", asset.ID.Hex(), models.AssetUpdate{Quantity: &quantity})
	require.NoError(t, err)
	assert.Equal(t, models.UpdateResult{}, res)

	del, err := f.assets.DeleteAsset(ctx, "Globex", asset.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, int64(0), del.DeletedCount)

	got, err := f.assets.GetAsset(ctx, asset.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 3, got.Quantity)
}

func TestAssetLabelIsPNG(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	asset := f.addAsset(ctx, "Acme", "Laptop", 3, 0)

	data, err := f.assets.AssetLabel(ctx, asset.ID.Hex())
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, labelQRSize+2*labelPadding, img.Bounds().Dx())
}
