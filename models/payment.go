package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment is an entry of the append-only payment log
type Payment struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Email         string             `json:"email" bson:"email"`
	Amount        float64            `json:"amount" bson:"amount"`
	Currency      string             `json:"currency" bson:"currency"`
	TransactionID string             `json:"transactionId" bson:"transactionId"`
	Package       string             `json:"package,omitempty" bson:"package,omitempty"`
	Date          time.Time          `json:"date" bson:"date"`
}

// PaymentInput is the body of POST /payments
type PaymentInput struct {
	Email         string     `json:"email" validate:"required,email"`
	Amount        float64    `json:"amount" validate:"gt=0"`
	Currency      string     `json:"currency" validate:"omitempty,len=3"`
	TransactionID string     `json:"transactionId" validate:"required,max=255"`
	Package       string     `json:"package" validate:"max=120"`
	Date          *time.Time `json:"date"`
}

// PaymentIntentRequest is the body of POST /create-payment-intent
type PaymentIntentRequest struct {
	Price float64 `json:"price" validate:"gt=0"`
}

// PaymentIntent is returned to the client to complete the card payment
type PaymentIntent struct {
	ClientSecret string `json:"clientSecret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}
