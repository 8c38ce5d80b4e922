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

type RequestRepository struct {
	collection *mongo.Collection
}

func NewRequestRepository(db *mongo.Database) *RequestRepository {
	return &RequestRepository{collection: db.Collection(RequestsCollection)}
}

func (r *RequestRepository) Find(ctx context.Context, q RequestQuery) ([]models.Request, error) {
	cursor, err := r.collection.Find(ctx, requestFilter(q), requestFindOptions(q, "requestDate"))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	requests := []models.Request{}
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *RequestRepository) FindOne(ctx context.Context, q RequestQuery) (*models.Request, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "requestDate", Value: 1}, {Key: "_id", Value: 1}})

	var req models.Request
	if err := r.collection.FindOne(ctx, requestFilter(q), opts).Decode(&req); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *RequestRepository) Count(ctx context.Context, q RequestQuery) (int64, error) {
	return r.collection.CountDocuments(ctx, requestFilter(q))
}

func (r *RequestRepository) Insert(ctx context.Context, req *models.Request) (primitive.ObjectID, error) {
	return insertOne(ctx, r.collection, req)
}

func (r *RequestRepository) Transition(ctx context.Context, id primitive.ObjectID, from, to string, at time.Time) error {
	res, err := updateOne(ctx, r.collection, transitionFilter(id, from), transitionUpdate(to, at))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrConditionFailed
	}
	return nil
}
