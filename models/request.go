package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Request statuses
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Request is a member's ask for an existing catalog asset
type Request struct {
	ID             primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	Name           string              `json:"name" bson:"name"`
	AssetID        *primitive.ObjectID `json:"assetId,omitempty" bson:"assetId,omitempty"`
	Type           string              `json:"type" bson:"type"`
	Company        string              `json:"company" bson:"company"`
	RequesterEmail string              `json:"requesterEmail" bson:"requesterEmail"`
	RequesterName  string              `json:"requesterName,omitempty" bson:"requesterName,omitempty"`
	Note           string              `json:"note,omitempty" bson:"note,omitempty"`
	Status         string              `json:"status" bson:"status"`
	RequestDate    time.Time           `json:"requestDate" bson:"requestDate"`
	ProcessedAt    *time.Time          `json:"processedAt,omitempty" bson:"processedAt,omitempty"`
}

// RequestInput is the body of POST /user/makeAssetRequest
type RequestInput struct {
	Name           string     `json:"name" validate:"required,max=200"`
	AssetID        string     `json:"assetId" validate:"omitempty,len=24,hexadecimal"`
	Type           string     `json:"type" validate:"required,oneof=returnable non-returnable"`
	Company        string     `json:"company" validate:"required,max=120"`
	RequesterEmail string     `json:"requesterEmail" validate:"required,email"`
	RequesterName  string     `json:"requesterName" validate:"max=120"`
	Note           string     `json:"note" validate:"max=2000"`
	RequestDate    *time.Time `json:"requestDate"`
}

// CustomRequest is a member's ask for an asset that is not in the catalog yet
type CustomRequest struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name"`
	Price          float64            `json:"price" bson:"price"`
	Type           string             `json:"type" bson:"type"`
	Image          string             `json:"image,omitempty" bson:"image,omitempty"`
	Reason         string             `json:"reason,omitempty" bson:"reason,omitempty"`
	Info           string             `json:"info,omitempty" bson:"info,omitempty"`
	RequesterEmail string             `json:"requesterEmail" bson:"requesterEmail"`
	RequesterName  string             `json:"requesterName,omitempty" bson:"requesterName,omitempty"`
	Company        string             `json:"company" bson:"company"`
	Date           string             `json:"date" bson:"date"`
	Status         string             `json:"status" bson:"status"`
	ProcessedAt    *time.Time         `json:"processedAt,omitempty" bson:"processedAt,omitempty"`
}

// CustomRequestInput is the body of POST /user/makeCustomRequest
type CustomRequestInput struct {
	Name           string  `json:"name" validate:"required,max=200"`
	Price          float64 `json:"price" validate:"gte=0"`
	Type           string  `json:"type" validate:"required,oneof=returnable non-returnable"`
	Image          string  `json:"image" validate:"omitempty,max=2048"`
	Reason         string  `json:"reason" validate:"max=2000"`
	Info           string  `json:"info" validate:"max=2000"`
	RequesterEmail string  `json:"requesterEmail" validate:"required,email"`
	RequesterName  string  `json:"requesterName" validate:"max=120"`
	Company        string  `json:"company" validate:"required,max=120"`
	Date           string  `json:"date" validate:"required,max=64"`
}

// CustomRequestUpdate holds the fields a requester may change on their custom request
type CustomRequestUpdate struct {
	Name   *string  `json:"name,omitempty" bson:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Price  *float64 `json:"price,omitempty" bson:"price,omitempty" validate:"omitempty,gte=0"`
	Type   *string  `json:"type,omitempty" bson:"type,omitempty" validate:"omitempty,oneof=returnable non-returnable"`
	Image  *string  `json:"image,omitempty" bson:"image,omitempty" validate:"omitempty,max=2048"`
	Reason *string  `json:"reason,omitempty" bson:"reason,omitempty" validate:"omitempty,max=2000"`
	Info   *string  `json:"info,omitempty" bson:"info,omitempty" validate:"omitempty,max=2000"`
}

// RequestApproval is returned by a standard request approval
type RequestApproval struct {
	Request *Request `json:"request"`
	Asset   *Asset   `json:"asset"`
}

// CustomRequestApproval is returned by a custom request approval
type CustomRequestApproval struct {
	CustomRequest *CustomRequest `json:"customRequest"`
	Asset         *Asset         `json:"asset"`
}
