package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/HSouheill/itam_backend/models"
)

type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		collection: db.Collection(UsersCollection),
	}
}

func (r *UserRepository) FindAll(ctx context.Context) ([]models.User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Insert(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	return insertOne(ctx, r.collection, user)
}

func (r *UserRepository) SetByEmail(ctx context.Context, email string, fields bson.M) (models.UpdateResult, error) {
	return updateOne(ctx, r.collection, bson.M{"email": email}, bson.M{"$set": fields})
}

func (r *UserRepository) SetByID(ctx context.Context, id primitive.ObjectID, fields bson.M) (models.UpdateResult, error) {
	return updateOne(ctx, r.collection, bson.M{"_id": id}, bson.M{"$set": fields})
}

func (r *UserRepository) UnsetByID(ctx context.Context, id primitive.ObjectID, fields []string) (models.UpdateResult, error) {
	return updateOne(ctx, r.collection, bson.M{"_id": id}, unsetFields(fields))
}

// insertOne inserts doc and returns its generated ObjectID
func insertOne(ctx context.Context, coll *mongo.Collection, doc interface{}) (primitive.ObjectID, error) {
	res, err := coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, ErrDuplicate
		}
		return primitive.NilObjectID, err
	}
	id, _ := res.InsertedID.(primitive.ObjectID)
	return id, nil
}

func updateOne(ctx context.Context, coll *mongo.Collection, filter, update bson.M) (models.UpdateResult, error) {
	res, err := coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return models.UpdateResult{}, err
	}
	return models.UpdateResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}, nil
}
