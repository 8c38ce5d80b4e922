package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/HSouheill/itam_backend/models"
)

type AssetRepository struct {
	collection *mongo.Collection
}

func NewAssetRepository(db *mongo.Database) *AssetRepository {
	return &AssetRepository{collection: db.Collection(AssetsCollection)}
}

func (r *AssetRepository) List(ctx context.Context, company, nameFilter string) ([]models.Asset, error) {
	return r.find(ctx, assetListFilter(company, nameFilter))
}

func (r *AssetRepository) ListBelowQuantity(ctx context.Context, company string, threshold int) ([]models.Asset, error) {
	return r.find(ctx, bson.M{"company": company, "quantity": bson.M{"$lt": threshold}})
}

func (r *AssetRepository) TopRequested(ctx context.Context, company string, limit int64) ([]models.Asset, error) {
	opts := options.Find().SetSort(bson.D{{Key: "requested", Value: -1}}).SetLimit(limit)
	return r.find(ctx, bson.M{"company": company}, opts)
}

func (r *AssetRepository) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Asset, error) {
	cursor, err := r.collection.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	assets := []models.Asset{}
	if err := cursor.All(ctx, &assets); err != nil {
		return nil, err
	}
	return assets, nil
}

func (r *AssetRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Asset, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *AssetRepository) FindByName(ctx context.Context, company, name string) (*models.Asset, error) {
	return r.findOne(ctx, bson.M{"company": company, "name": name})
}

func (r *AssetRepository) findOne(ctx context.Context, filter bson.M) (*models.Asset, error) {
	var asset models.Asset
	if err := r.collection.FindOne(ctx, filter).Decode(&asset); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &asset, nil
}

func (r *AssetRepository) Insert(ctx context.Context, asset *models.Asset) (primitive.ObjectID, error) {
	return insertOne(ctx, r.collection, asset)
}

func (r *AssetRepository) SetByID(ctx context.Context, id primitive.ObjectID, fields bson.M) (models.UpdateResult, error) {
	return updateOne(ctx, r.collection, bson.M{"_id": id}, bson.M{"$set": fields})
}

func (r *AssetRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *AssetRepository) ConsumeStock(ctx context.Context, id primitive.ObjectID) error {
	res, err := updateOne(ctx, r.collection, consumeStockFilter(id), consumeStockUpdate())
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrConditionFailed
	}
	return nil
}
