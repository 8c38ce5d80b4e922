package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/HSouheill/itam_backend/metrics"
	"github.com/HSouheill/itam_backend/models"
	"github.com/HSouheill/itam_backend/repositories"
)

const paymentCurrency = "usd"

// PaymentProvider creates card payment intents with an external payment API
type PaymentProvider interface {
	CreatePaymentIntent(ctx context.Context, amount int64, currency string) (clientSecret string, err error)
}

// PaymentService creates payment intents and keeps the payment log
type PaymentService struct {
	provider PaymentProvider
	payments repositories.PaymentStore
	timeout  time.Duration
	now      func() time.Time
}

// NewPaymentService creates a new payment service
func NewPaymentService(provider PaymentProvider, payments repositories.PaymentStore, timeout time.Duration) *PaymentService {
	return &PaymentService{provider: provider, payments: payments, timeout: timeout, now: time.Now}
}

// ToMinorUnits converts a price to whole cents, truncating fractions of a cent.
// The epsilon absorbs float representation error so 19.99 gives 1999.
func ToMinorUnits(price float64) int64 {
	return int64(math.Floor(price*100 + 1e-6))
}

// CreatePaymentIntent starts a card payment for the given price
func (s *PaymentService) CreatePaymentIntent(ctx context.Context, price float64) (*models.PaymentIntent, error) {
	if price <= 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return nil, NewValidationError("price must be greater than 0")
	}
	amount := ToMinorUnits(price)
	if amount <= 0 {
		return nil, NewValidationError("price must be at least one cent")
	}
	if s.provider == nil {
		return nil, &PaymentProviderError{Err: fmt.Errorf("payment provider is not configured")}
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	secret, err := s.provider.CreatePaymentIntent(ctx, amount, paymentCurrency)
	metrics.RecordPaymentIntent(err == nil)
	if err != nil {
		zap.S().Errorw("payment intent failed", "amount", amount, "error", err)
		return nil, &PaymentProviderError{Err: err}
	}
	return &models.PaymentIntent{ClientSecret: secret, Amount: amount, Currency: paymentCurrency}, nil
}

// RecordPayment appends an entry to the payment log
func (s *PaymentService) RecordPayment(ctx context.Context, in models.PaymentInput) (*models.Payment, error) {
	payment := &models.Payment{
		Email:         in.Email,
		Amount:        in.Amount,
		Currency:      strings.ToLower(in.Currency),
		TransactionID: in.TransactionID,
		Package:       in.Package,
		Date:          s.now(),
	}
	if payment.Currency == "" {
		payment.Currency = paymentCurrency
	}
	if in.Date != nil && !in.Date.IsZero() {
		payment.Date = *in.Date
	}

	id, err := s.payments.Insert(ctx, payment)
	if err != nil {
		return nil, fmt.Errorf("inserting payment: %w", err)
	}
	payment.ID = id
	return payment, nil
}

// ListPayments returns the payment history of a user, newest first
func (s *PaymentService) ListPayments(ctx context.Context, email string) ([]models.Payment, error) {
	return s.payments.FindByEmail(ctx, email)
}
