// Package memstore keeps every collection in process memory. It backs the
// "memory" store driver for local development and the package tests.
package memstore

import (
	"context"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/HSouheill/itam_backend/models"
	"github.com/HSouheill/itam_backend/repositories"
)

// Store holds the five collections and the revoked token list
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	users          map[primitive.ObjectID]models.User
	assets         map[primitive.ObjectID]models.Asset
	requests       map[primitive.ObjectID]models.Request
	customRequests map[primitive.ObjectID]models.CustomRequest
	payments       map[primitive.ObjectID]models.Payment
	revoked        map[string]time.Time
}

// New returns an empty store
func New() *Store {
	return &Store{
		users:          make(map[primitive.ObjectID]models.User),
		assets:         make(map[primitive.ObjectID]models.Asset),
		requests:       make(map[primitive.ObjectID]models.Request),
		customRequests: make(map[primitive.ObjectID]models.CustomRequest),
		payments:       make(map[primitive.ObjectID]models.Payment),
		revoked:        make(map[string]time.Time),
	}
}

func (s *Store) Users() *UserStore                   { return &UserStore{s} }
func (s *Store) Assets() *AssetStore                 { return &AssetStore{s} }
func (s *Store) Requests() *RequestStore             { return &RequestStore{s} }
func (s *Store) CustomRequests() *CustomRequestStore { return &CustomRequestStore{s} }
func (s *Store) Payments() *PaymentStore             { return &PaymentStore{s} }
func (s *Store) Blacklist() *TokenBlacklist          { return &TokenBlacklist{s} }

var (
	_ repositories.UserStore          = (*UserStore)(nil)
	_ repositories.AssetStore         = (*AssetStore)(nil)
	_ repositories.RequestStore       = (*RequestStore)(nil)
	_ repositories.CustomRequestStore = (*CustomRequestStore)(nil)
	_ repositories.PaymentStore       = (*PaymentStore)(nil)
	_ repositories.Transactor         = (*Store)(nil)
	_ repositories.TokenBlacklist     = (*TokenBlacklist)(nil)
)

type snapshot struct {
	users          map[primitive.ObjectID]models.User
	assets         map[primitive.ObjectID]models.Asset
	requests       map[primitive.ObjectID]models.Request
	customRequests map[primitive.ObjectID]models.CustomRequest
	payments       map[primitive.ObjectID]models.Payment
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// WithTransaction serializes transactions and restores every collection when fn fails.
// Writes made outside a transaction while one is running are lost on rollback.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snap := snapshot{
		users:          copyMap(s.users),
		assets:         copyMap(s.assets),
		requests:       copyMap(s.requests),
		customRequests: copyMap(s.customRequests),
		payments:       copyMap(s.payments),
	}
	s.mu.RUnlock()

	if err := fn(ctx); err != nil {
		s.mu.Lock()
		s.users = snap.users
		s.assets = snap.assets
		s.requests = snap.requests
		s.customRequests = snap.customRequests
		s.payments = snap.payments
		s.mu.Unlock()
		return err
	}
	return nil
}

// normalize round-trips v through BSON so stored values look exactly like
// documents read back from MongoDB (UTC, millisecond precision).
func normalize[T any](v T) (T, error) {
	var out T
	raw, err := bson.Marshal(v)
	if err != nil {
		return out, err
	}
	err = bson.Unmarshal(raw, &out)
	return out, err
}

// merge applies $set and $unset semantics to doc
func merge[T any](doc T, set bson.M, unset []string) (T, error) {
	var out T
	raw, err := bson.Marshal(doc)
	if err != nil {
		return out, err
	}
	fields := bson.M{}
	if err := bson.Unmarshal(raw, &fields); err != nil {
		return out, err
	}
	for k, v := range set {
		fields[k] = v
	}
	for _, k := range unset {
		delete(fields, k)
	}
	raw, err = bson.Marshal(fields)
	if err != nil {
		return out, err
	}
	err = bson.Unmarshal(raw, &out)
	return out, err
}

func updateResult(matched bool, before, after interface{}) models.UpdateResult {
	if !matched {
		return models.UpdateResult{}
	}
	res := models.UpdateResult{MatchedCount: 1}
	if !reflect.DeepEqual(before, after) {
		res.ModifiedCount = 1
	}
	return res
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func idLess(a, b primitive.ObjectID) bool {
	return strings.Compare(a.Hex(), b.Hex()) < 0
}

// sortedValues returns map values in insertion (ObjectID) order
func sortedValues[V any](m map[primitive.ObjectID]V) []V {
	ids := make([]primitive.ObjectID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return idLess(ids[i], ids[j]) })
	out := make([]V, 0, len(ids))
	for _, id := range ids {
		out = append(out, m[id])
	}
	return out
}

func matchQuery(q repositories.RequestQuery, company, name, email, status, typ string, date time.Time) bool {
	if q.Company != "" && company != q.Company {
		return false
	}
	if q.Name != "" {
		if name != q.Name {
			return false
		}
	} else if q.NameContains != "" && !containsFold(name, q.NameContains) {
		return false
	}
	if q.RequesterEmail != "" && email != q.RequesterEmail {
		return false
	}
	if q.Status != "" && status != q.Status {
		return false
	}
	if q.Type != "" && typ != q.Type {
		return false
	}
	if !q.From.IsZero() && date.Before(q.From) {
		return false
	}
	if !q.Until.IsZero() && !date.Before(q.Until) {
		return false
	}
	return true
}

func limit[V any](items []V, n int64) []V {
	if n > 0 && int64(len(items)) > n {
		return items[:n]
	}
	return items
}
