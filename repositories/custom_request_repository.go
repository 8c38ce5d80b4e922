package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/HSouheill/itam_backend/models"
)

type CustomRequestRepository struct {
	collection *mongo.Collection
}

func NewCustomRequestRepository(db *mongo.Database) *CustomRequestRepository {
	return &CustomRequestRepository{collection: db.Collection(CustomRequestsCollection)}
}

func (r *CustomRequestRepository) Find(ctx context.Context, q RequestQuery) ([]models.CustomRequest, error) {
	cursor, err := r.collection.Find(ctx, requestFilter(q), requestFindOptions(q, "date"))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	requests := []models.CustomRequest{}
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *CustomRequestRepository) FindOne(ctx context.Context, q RequestQuery) (*models.CustomRequest, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}})

	var req models.CustomRequest
	if err := r.collection.FindOne(ctx, requestFilter(q), opts).Decode(&req); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *CustomRequestRepository) Insert(ctx context.Context, req *models.CustomRequest) (primitive.ObjectID, error) {
	return insertOne(ctx, r.collection, req)
}

func (r *CustomRequestRepository) Transition(ctx context.Context, id primitive.ObjectID, from, to string, at time.Time) error {
	res, err := updateOne(ctx, r.collection, transitionFilter(id, from), transitionUpdate(to, at))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrConditionFailed
	}
	return nil
}

func (r *CustomRequestRepository) SetByRequesterDate(ctx context.Context, email, date string, fields bson.M) (models.UpdateResult, error) {
	filter := bson.M{"requesterEmail": email, "date": date}
	return updateOne(ctx, r.collection, filter, bson.M{"$set": fields})
}
