package memstore

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/HSouheill/itam_backend/models"
	"github.com/HSouheill/itam_backend/repositories"
)

type RequestStore struct{ s *Store }

func (r *RequestStore) match(q repositories.RequestQuery) []models.Request {
	out := []models.Request{}
	for _, req := range sortedValues(r.s.requests) {
		if matchQuery(q, req.Company, req.Name, req.RequesterEmail, req.Status, req.Type, req.RequestDate) {
			out = append(out, req)
		}
	}
	return out
}

func (r *RequestStore) Find(ctx context.Context, q repositories.RequestQuery) ([]models.Request, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	found := r.match(q)
	if q.NewestFirst {
		sort.SliceStable(found, func(i, j int) bool { return found[i].RequestDate.After(found[j].RequestDate) })
	}
	return limit(found, q.Limit), nil
}

func (r *RequestStore) FindOne(ctx context.Context, q repositories.RequestQuery) (*models.Request, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	found := r.match(q)
	if len(found) == 0 {
		return nil, repositories.ErrNotFound
	}
	sort.SliceStable(found, func(i, j int) bool { return found[i].RequestDate.Before(found[j].RequestDate) })
	return &found[0], nil
}

func (r *RequestStore) Count(ctx context.Context, q repositories.RequestQuery) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.match(q))), nil
}

func (r *RequestStore) Insert(ctx context.Context, req *models.Request) (primitive.ObjectID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	doc := *req
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	doc, err := normalize(doc)
	if err != nil {
		return primitive.NilObjectID, err
	}
	r.s.requests[doc.ID] = doc
	return doc.ID, nil
}

func (r *RequestStore) Transition(ctx context.Context, id primitive.ObjectID, from, to string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	req, ok := r.s.requests[id]
	if !ok || req.Status != from {
		return repositories.ErrConditionFailed
	}
	updated, err := merge(req, bson.M{"status": to, "processedAt": at}, nil)
	if err != nil {
		return err
	}
	r.s.requests[id] = updated
	return nil
}

type CustomRequestStore struct{ s *Store }

func (r *CustomRequestStore) match(q repositories.RequestQuery) []models.CustomRequest {
	out := []models.CustomRequest{}
	for _, req := range sortedValues(r.s.customRequests) {
		if matchQuery(q, req.Company, req.Name, req.RequesterEmail, req.Status, req.Type, time.Time{}) {
			out = append(out, req)
		}
	}
	return out
}

func (r *CustomRequestStore) Find(ctx context.Context, q repositories.RequestQuery) ([]models.CustomRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	found := r.match(q)
	if q.NewestFirst {
		sort.SliceStable(found, func(i, j int) bool { return found[i].Date > found[j].Date })
	}
	return limit(found, q.Limit), nil
}

func (r *CustomRequestStore) FindOne(ctx context.Context, q repositories.RequestQuery) (*models.CustomRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	found := r.match(q)
	if len(found) == 0 {
		return nil, repositories.ErrNotFound
	}
	return &found[0], nil
}

func (r *CustomRequestStore) Insert(ctx context.Context, req *models.CustomRequest) (primitive.ObjectID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	doc := *req
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	doc, err := normalize(doc)
	if err != nil {
		return primitive.NilObjectID, err
	}
	r.s.customRequests[doc.ID] = doc
	return doc.ID, nil
}

func (r *CustomRequestStore) Transition(ctx context.Context, id primitive.ObjectID, from, to string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	req, ok := r.s.customRequests[id]
	if !ok || req.Status != from {
		return repositories.ErrConditionFailed
	}
	updated, err := merge(req, bson.M{"status": to, "processedAt": at}, nil)
	if err != nil {
		return err
	}
	r.s.customRequests[id] = updated
	return nil
}

func (r *CustomRequestStore) SetByRequesterDate(ctx context.Context, email, date string, fields bson.M) (models.UpdateResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, req := range sortedValues(r.s.customRequests) {
		if req.RequesterEmail == email && req.Date == date {
			updated, err := merge(req, fields, nil)
			if err != nil {
				return models.UpdateResult{}, err
			}
			r.s.customRequests[req.ID] = updated
			return updateResult(true, req, updated), nil
		}
	}
	return models.UpdateResult{}, nil
}
