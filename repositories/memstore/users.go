package memstore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/HSouheill/itam_backend/models"
	"github.com/HSouheill/itam_backend/repositories"
)

type UserStore struct{ s *Store }

func (u *UserStore) FindAll(ctx context.Context) ([]models.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	return sortedValues(u.s.users), nil
}

func (u *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	for _, user := range sortedValues(u.s.users) {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (u *UserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	user, ok := u.s.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &user, nil
}

func (u *UserStore) Insert(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	for _, existing := range u.s.users {
		if existing.Email == user.Email {
			return primitive.NilObjectID, repositories.ErrDuplicate
		}
	}
	doc := *user
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	doc, err := normalize(doc)
	if err != nil {
		return primitive.NilObjectID, err
	}
	u.s.users[doc.ID] = doc
	return doc.ID, nil
}

func (u *UserStore) SetByEmail(ctx context.Context, email string, fields bson.M) (models.UpdateResult, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	for _, user := range sortedValues(u.s.users) {
		if user.Email == email {
			return u.update(user, fields, nil)
		}
	}
	return models.UpdateResult{}, nil
}

func (u *UserStore) SetByID(ctx context.Context, id primitive.ObjectID, fields bson.M) (models.UpdateResult, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	user, ok := u.s.users[id]
	if !ok {
		return models.UpdateResult{}, nil
	}
	return u.update(user, fields, nil)
}

func (u *UserStore) UnsetByID(ctx context.Context, id primitive.ObjectID, fields []string) (models.UpdateResult, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	user, ok := u.s.users[id]
	if !ok {
		return models.UpdateResult{}, nil
	}
	return u.update(user, nil, fields)
}

// update must be called with the write lock held
func (u *UserStore) update(user models.User, set bson.M, unset []string) (models.UpdateResult, error) {
	updated, err := merge(user, set, unset)
	if err != nil {
		return models.UpdateResult{}, err
	}
	u.s.users[user.ID] = updated
	return updateResult(true, user, updated), nil
}
