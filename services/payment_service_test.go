package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HSouheill/itam_backend/models"
	"github.com/HSouheill/itam_backend/repositories/memstore"
)

func TestToMinorUnits(t *testing.T) {
	tests := []struct {
		price float64
		want  int64
	}{
		{19.99, 1999},
		{0.29, 29},
		{1.005, 100},
		{10, 1000},
		{0.001, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ToMinorUnits(tt.price), "price %v", tt.price)
	}
}

func TestCreatePaymentIntentSendsCents(t *testing.T) {
	provider := &fakeProvider{}
	svc := NewPaymentService(provider, memstore.New().Payments(), time.Second)

	intent, err := svc.CreatePaymentIntent(context.Background(), 19.99)
	require.NoError(t, err)
	assert.Equal(t, "pi_secret_test", intent.ClientSecret)
	assert.Equal(t, []int64{1999}, provider.amounts)
	assert.Equal(t, "usd", provider.currency)
}

func TestCreatePaymentIntentRejectsNonPositivePrice(t *testing.T) {
	provider := &fakeProvider{}
	svc := NewPaymentService(provider, memstore.New().Payments(), time.Second)

	for _, price := range []float64{0, -5} {
		_, err := svc.CreatePaymentIntent(context.Background(), price)
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
	}
	assert.Empty(t, provider.amounts)
}

func TestCreatePaymentIntentWrapsProviderFailure(t *testing.T) {
	provider := &fakeProvider{err: errors.New("card_declined")}
	svc := NewPaymentService(provider, memstore.New().Payments(), time.Second)

	_, err := svc.CreatePaymentIntent(context.Background(), 5)
	var perr *PaymentProviderError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Error(), "card_declined")
}

func TestRecordAndListPayments(t *testing.T) {
	ctx := context.Background()
	svc := NewPaymentService(&fakeProvider{}, memstore.New().Payments(), time.Second)
	older := time.Now().Add(-48 * time.Hour)

	_, err := svc.RecordPayment(ctx, models.PaymentInput{Email: "boss@acme.com", Amount: 5, TransactionID: "pi_1", Date: &older})
	require.NoError(t, err)
	saved, err := svc.RecordPayment(ctx, models.PaymentInput{Email: "boss@acme.com", Amount: 15, TransactionID: "pi_2", Currency: "USD"})
	require.NoError(t, err)
	assert.Equal(t, "usd", saved.Currency)
	_, err = svc.RecordPayment(ctx, models.PaymentInput{Email: "other@acme.com", Amount: 5, TransactionID: "pi_3"})
	require.NoError(t, err)

	payments, err := svc.ListPayments(ctx, "boss@acme.com")
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, "pi_2", payments[0].TransactionID)
	assert.Equal(t, "pi_1", payments[1].TransactionID)
}
