package services

import (
	"context"
	"sync"
	"time"

	"github.com/HSouheill/itam_backend/models"
	"github.com/HSouheill/itam_backend/repositories/memstore"
)

type recordedEvent struct {
	company string
	event   models.Event
}

type fakePublisher struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (p *fakePublisher) Publish(company string, event models.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{company: company, event: event})
}

func (p *fakePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.event.Type)
	}
	return out
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []string
}

func (n *fakeNotifier) NotifyStatusChange(to, itemName, status string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, to+":"+itemName+":"+status)
}

type fakeProvider struct {
	amounts  []int64
	currency string
	err      error
}

func (p *fakeProvider) CreatePaymentIntent(ctx context.Context, amount int64, currency string) (string, error) {
	p.amounts = append(p.amounts, amount)
	p.currency = currency
	if p.err != nil {
		return "", p.err
	}
	return "pi_secret_test", nil
}

type fixture struct {
	store     *memstore.Store
	identity  *IdentityService
	assets    *AssetService
	requests  *RequestService
	stats     *StatsService
	publisher *fakePublisher
	notifier  *fakeNotifier
}

func newFixture() *fixture {
	store := memstore.New()
	publisher := &fakePublisher{}
	notifier := &fakeNotifier{}
	return &fixture{
		store:     store,
		identity:  NewIdentityService(store.Users()),
		assets:    NewAssetService(store.Assets()),
		requests:  NewRequestService(store.Requests(), store.CustomRequests(), store.Assets(), store, publisher, notifier),
		stats:     NewStatsService(store.Requests(), store.CustomRequests(), store.Assets()),
		publisher: publisher,
		notifier:  notifier,
	}
}

func (f *fixture) addAsset(ctx context.Context, company, name string, quantity, requested int) *models.Asset {
	asset, err := f.assets.AddAsset(ctx, models.AssetInput{
		Name:      name,
		Type:      models.AssetReturnable,
		Quantity:  quantity,
		Requested: requested,
		Company:   company,
	})
	if err != nil {
		panic(err)
	}
	return asset
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
