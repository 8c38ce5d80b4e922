package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
	"github.com/disintegration/imaging"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/HSouheill/itam_backend/models"
	"github.com/HSouheill/itam_backend/repositories"
)

// DefaultTopRequested is the ranking size used when no limit is given
const DefaultTopRequested = 4

const (
	labelQRSize  = 200
	labelPadding = 20
)

// AssetService manages the company asset catalog
type AssetService struct {
	assets repositories.AssetStore
	now    func() time.Time
}

// NewAssetService creates a new asset service
func NewAssetService(assets repositories.AssetStore) *AssetService {
	return &AssetService{assets: assets, now: time.Now}
}

// ListAssets returns the assets of a company, optionally filtered by a
// case-insensitive substring of the name
func (s *AssetService) ListAssets(ctx context.Context, company, nameFilter string) ([]models.Asset, error) {
	return s.assets.List(ctx, company, strings.TrimSpace(nameFilter))
}

// GetAsset returns a single asset
func (s *AssetService) GetAsset(ctx context.Context, id string) (*models.Asset, error) {
	objID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	return s.assets.FindByID(ctx, objID)
}

// AddAsset inserts a new asset
func (s *AssetService) AddAsset(ctx context.Context, in models.AssetInput) (*models.Asset, error) {
	asset := in.ToAsset(s.now())
	id, err := s.assets.Insert(ctx, asset)
	if err != nil {
		return nil, fmt.Errorf("inserting asset: %w", err)
	}
	asset.ID = id
	zap.S().Infow("asset added", "id", id.Hex(), "company", asset.Company, "name", asset.Name)
	return asset, nil
}

// UpdateAsset sets the provided fields on an asset of company. Assets of
// other companies are reported as not matched.
func (s *AssetService) UpdateAsset(ctx context.Context, company, id string, patch models.AssetUpdate) (models.UpdateResult, error) {
	objID, err := parseObjectID(id)
	if err != nil {
		return models.UpdateResult{}, err
	}
	fields, err := patchFields(patch)
	if err != nil {
		return models.UpdateResult{}, err
	}
	owned, err := s.ownedBy(ctx, company, objID)
	if err != nil || !owned {
		return models.UpdateResult{}, err
	}
	return s.assets.SetByID(ctx, objID, fields)
}

// DeleteAsset removes an asset of company
func (s *AssetService) DeleteAsset(ctx context.Context, company, id string) (models.DeleteResult, error) {
	objID, err := parseObjectID(id)
	if err != nil {
		return models.DeleteResult{}, err
	}
	owned, err := s.ownedBy(ctx, company, objID)
	if err != nil || !owned {
		return models.DeleteResult{}, err
	}
	n, err := s.assets.DeleteByID(ctx, objID)
	if err != nil {
		return models.DeleteResult{}, err
	}
	return models.DeleteResult{DeletedCount: n}, nil
}

// ownedBy reports whether the asset exists and belongs to company. The
// company of an asset never changes after insert.
func (s *AssetService) ownedBy(ctx context.Context, company string, id primitive.ObjectID) (bool, error) {
	asset, err := s.assets.FindByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return asset.Company == company, nil
}

// LowStock returns the company assets with a quantity under LowStockThreshold
func (s *AssetService) LowStock(ctx context.Context, company string) ([]models.Asset, error) {
	return s.assets.ListBelowQuantity(ctx, company, models.LowStockThreshold)
}

// TopRequested returns the most requested company assets, highest first
func (s *AssetService) TopRequested(ctx context.Context, company string, limit int64) ([]models.Asset, error) {
	if limit <= 0 {
		limit = DefaultTopRequested
	}
	return s.assets.TopRequested(ctx, company, limit)
}

// AssetLabel renders a printable PNG QR label pointing at the asset
func (s *AssetService) AssetLabel(ctx context.Context, id string) ([]byte, error) {
	asset, err := s.GetAsset(ctx, id)
	if err != nil {
		return nil, err
	}

	code, err := qr.Encode("itam://asset/"+asset.ID.Hex(), qr.M, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("encoding QR code: %w", err)
	}
	code, err = barcode.Scale(code, labelQRSize, labelQRSize)
	if err != nil {
		return nil, fmt.Errorf("scaling QR code: %w", err)
	}

	side := labelQRSize + 2*labelPadding
	label := imaging.PasteCenter(imaging.New(side, side, color.White), code)

	buffer := new(bytes.Buffer)
	if err := imaging.Encode(buffer, label, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encoding label: %w", err)
	}
	return buffer.Bytes(), nil
}
