package memstore

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/HSouheill/itam_backend/models"
)

type PaymentStore struct{ s *Store }

func (p *PaymentStore) Insert(ctx context.Context, payment *models.Payment) (primitive.ObjectID, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	doc := *payment
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	doc, err := normalize(doc)
	if err != nil {
		return primitive.NilObjectID, err
	}
	p.s.payments[doc.ID] = doc
	return doc.ID, nil
}

func (p *PaymentStore) FindByEmail(ctx context.Context, email string) ([]models.Payment, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()
	out := []models.Payment{}
	for _, payment := range sortedValues(p.s.payments) {
		if payment.Email == email {
			out = append(out, payment)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

// TokenBlacklist keeps revoked token ids until they expire
type TokenBlacklist struct{ s *Store }

func (b *TokenBlacklist) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	b.s.revoked[tokenID] = until
	return nil
}

func (b *TokenBlacklist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()
	until, ok := b.s.revoked[tokenID]
	if !ok {
		return false, nil
	}
	if time.Now().After(until) {
		delete(b.s.revoked, tokenID)
		return false, nil
	}
	return true, nil
}
