package memstore

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/HSouheill/itam_backend/models"
	"github.com/HSouheill/itam_backend/repositories"
)

type AssetStore struct{ s *Store }

func (a *AssetStore) filter(keep func(models.Asset) bool) []models.Asset {
	out := []models.Asset{}
	for _, asset := range sortedValues(a.s.assets) {
		if keep(asset) {
			out = append(out, asset)
		}
	}
	return out
}

func (a *AssetStore) List(ctx context.Context, company, nameFilter string) ([]models.Asset, error) {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()
	return a.filter(func(asset models.Asset) bool {
		return asset.Company == company && (nameFilter == "" || containsFold(asset.Name, nameFilter))
	}), nil
}

func (a *AssetStore) ListBelowQuantity(ctx context.Context, company string, threshold int) ([]models.Asset, error) {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()
	return a.filter(func(asset models.Asset) bool {
		return asset.Company == company && asset.Quantity < threshold
	}), nil
}

func (a *AssetStore) TopRequested(ctx context.Context, company string, n int64) ([]models.Asset, error) {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()
	assets := a.filter(func(asset models.Asset) bool { return asset.Company == company })
	sort.SliceStable(assets, func(i, j int) bool { return assets[i].Requested > assets[j].Requested })
	return limit(assets, n), nil
}

func (a *AssetStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Asset, error) {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()
	asset, ok := a.s.assets[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &asset, nil
}

func (a *AssetStore) FindByName(ctx context.Context, company, name string) (*models.Asset, error) {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()
	found := a.filter(func(asset models.Asset) bool { return asset.Company == company && asset.Name == name })
	if len(found) == 0 {
		return nil, repositories.ErrNotFound
	}
	return &found[0], nil
}

func (a *AssetStore) Insert(ctx context.Context, asset *models.Asset) (primitive.ObjectID, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	doc := *asset
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	doc, err := normalize(doc)
	if err != nil {
		return primitive.NilObjectID, err
	}
	a.s.assets[doc.ID] = doc
	return doc.ID, nil
}

func (a *AssetStore) SetByID(ctx context.Context, id primitive.ObjectID, fields bson.M) (models.UpdateResult, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	asset, ok := a.s.assets[id]
	if !ok {
		return models.UpdateResult{}, nil
	}
	updated, err := merge(asset, fields, nil)
	if err != nil {
		return models.UpdateResult{}, err
	}
	a.s.assets[id] = updated
	return updateResult(true, asset, updated), nil
}

func (a *AssetStore) DeleteByID(ctx context.Context, id primitive.ObjectID) (int64, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	if _, ok := a.s.assets[id]; !ok {
		return 0, nil
	}
	delete(a.s.assets, id)
	return 1, nil
}

func (a *AssetStore) ConsumeStock(ctx context.Context, id primitive.ObjectID) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	asset, ok := a.s.assets[id]
	if !ok || asset.Quantity <= 0 {
		return repositories.ErrConditionFailed
	}
	asset.Quantity--
	asset.Requested++
	a.s.assets[id] = asset
	return nil
}
