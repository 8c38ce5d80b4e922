package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/HSouheill/itam_backend/models"
)

// Collection names
const (
	UsersCollection          = "users"
	PaymentsCollection       = "payments"
	AssetsCollection         = "assets"
	RequestsCollection       = "requests"
	CustomRequestsCollection = "cusRequests"
)

var (
	// ErrNotFound is returned when no document matches a lookup
	ErrNotFound = errors.New("document not found")
	// ErrConditionFailed is returned when a conditional update matched nothing
	ErrConditionFailed = errors.New("update condition not met")
	// ErrDuplicate is returned when an insert violates a unique index
	ErrDuplicate = errors.New("duplicate key")
)

// UserStore persists users
type UserStore interface {
	FindAll(ctx context.Context) ([]models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	Insert(ctx context.Context, user *models.User) (primitive.ObjectID, error)
	SetByEmail(ctx context.Context, email string, fields bson.M) (models.UpdateResult, error)
	SetByID(ctx context.Context, id primitive.ObjectID, fields bson.M) (models.UpdateResult, error)
	UnsetByID(ctx context.Context, id primitive.ObjectID, fields []string) (models.UpdateResult, error)
}

// AssetStore persists catalog assets
type AssetStore interface {
	List(ctx context.Context, company, nameFilter string) ([]models.Asset, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Asset, error)
	FindByName(ctx context.Context, company, name string) (*models.Asset, error)
	Insert(ctx context.Context, asset *models.Asset) (primitive.ObjectID, error)
	SetByID(ctx context.Context, id primitive.ObjectID, fields bson.M) (models.UpdateResult, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) (int64, error)
	// ConsumeStock decrements quantity and increments requested by one,
	// returning ErrConditionFailed when the asset has no stock left.
	ConsumeStock(ctx context.Context, id primitive.ObjectID) error
	ListBelowQuantity(ctx context.Context, company string, threshold int) ([]models.Asset, error)
	TopRequested(ctx context.Context, company string, limit int64) ([]models.Asset, error)
}

// RequestQuery selects requests; zero fields are ignored
type RequestQuery struct {
	Company        string
	Name           string
	NameContains   string
	RequesterEmail string
	Status         string
	Type           string
	From           time.Time
	Until          time.Time
	NewestFirst    bool
	Limit          int64
}

// RequestStore persists standard asset requests
type RequestStore interface {
	Find(ctx context.Context, q RequestQuery) ([]models.Request, error)
	// FindOne returns the oldest request matching q
	FindOne(ctx context.Context, q RequestQuery) (*models.Request, error)
	Count(ctx context.Context, q RequestQuery) (int64, error)
	Insert(ctx context.Context, req *models.Request) (primitive.ObjectID, error)
	// Transition moves a request from one status to another, returning
	// ErrConditionFailed when the request is no longer in the from status.
	Transition(ctx context.Context, id primitive.ObjectID, from, to string, at time.Time) error
}

// CustomRequestStore persists custom requests
type CustomRequestStore interface {
	Find(ctx context.Context, q RequestQuery) ([]models.CustomRequest, error)
	FindOne(ctx context.Context, q RequestQuery) (*models.CustomRequest, error)
	Insert(ctx context.Context, req *models.CustomRequest) (primitive.ObjectID, error)
	Transition(ctx context.Context, id primitive.ObjectID, from, to string, at time.Time) error
	SetByRequesterDate(ctx context.Context, email, date string, fields bson.M) (models.UpdateResult, error)
}

// PaymentStore persists the payment log
type PaymentStore interface {
	Insert(ctx context.Context, payment *models.Payment) (primitive.ObjectID, error)
	FindByEmail(ctx context.Context, email string) ([]models.Payment, error)
}

// Transactor runs fn so that all store operations issued with the
// context it receives commit or roll back together.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// TokenBlacklist records revoked session tokens until they expire
type TokenBlacklist interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

var (
	_ UserStore          = (*UserRepository)(nil)
	_ AssetStore         = (*AssetRepository)(nil)
	_ RequestStore       = (*RequestRepository)(nil)
	_ CustomRequestStore = (*CustomRequestRepository)(nil)
	_ PaymentStore       = (*PaymentRepository)(nil)
	_ Transactor         = (*MongoTransactor)(nil)
	_ TokenBlacklist     = (*RedisTokenBlacklist)(nil)
)
