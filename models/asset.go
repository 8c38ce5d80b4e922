package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Asset types
const (
	AssetReturnable    = "returnable"
	AssetNonReturnable = "non-returnable"
)

// LowStockThreshold is the quantity below which an asset is reported as limited stock
const LowStockThreshold = 10

// Asset is an inventory item owned by a company
type Asset struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Type        string             `json:"type" bson:"type"`
	Quantity    int                `json:"quantity" bson:"quantity"`
	Requested   int                `json:"requested" bson:"requested"`
	Company     string             `json:"company" bson:"company"`
	AddedBy     string             `json:"addedBy,omitempty" bson:"addedBy,omitempty"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Image       string             `json:"image,omitempty" bson:"image,omitempty"`
	AddedDate   time.Time          `json:"addedDate" bson:"addedDate"`
}

// AssetInput is the body used to create an asset
type AssetInput struct {
	Name        string     `json:"name" validate:"required,max=200"`
	Type        string     `json:"type" validate:"required,oneof=returnable non-returnable"`
	Quantity    int        `json:"quantity" validate:"gte=0"`
	Requested   int        `json:"requested" validate:"gte=0"`
	Company     string     `json:"company" validate:"max=120"`
	AddedBy     string     `json:"addedBy" validate:"omitempty,email"`
	Description string     `json:"description" validate:"max=2000"`
	Image       string     `json:"image" validate:"omitempty,max=2048"`
	AddedDate   *time.Time `json:"addedDate"`
}

// ToAsset converts the input into a new asset document
func (in AssetInput) ToAsset(now time.Time) *Asset {
	added := now
	if in.AddedDate != nil && !in.AddedDate.IsZero() {
		added = *in.AddedDate
	}
	return &Asset{
		Name:        in.Name,
		Type:        in.Type,
		Quantity:    in.Quantity,
		Requested:   in.Requested,
		Company:     in.Company,
		AddedBy:     in.AddedBy,
		Description: in.Description,
		Image:       in.Image,
		AddedDate:   added,
	}
}

// AssetUpdate holds the asset fields an admin may change
type AssetUpdate struct {
	Name        *string `json:"name,omitempty" bson:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Type        *string `json:"type,omitempty" bson:"type,omitempty" validate:"omitempty,oneof=returnable non-returnable"`
	Quantity    *int    `json:"quantity,omitempty" bson:"quantity,omitempty" validate:"omitempty,gte=0"`
	Description *string `json:"description,omitempty" bson:"description,omitempty" validate:"omitempty,max=2000"`
	Image       *string `json:"image,omitempty" bson:"image,omitempty" validate:"omitempty,max=2048"`
}
