package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// MongoTransactor runs functions inside a MongoDB multi-document transaction.
// WithTransaction retries the whole function on TransientTransactionError and
// retries the commit on UnknownTransactionCommitResult.
type MongoTransactor struct {
	client *mongo.Client
}

func NewMongoTransactor(client *mongo.Client) *MongoTransactor {
	return &MongoTransactor{client: client}
}

func (t *MongoTransactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := t.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
