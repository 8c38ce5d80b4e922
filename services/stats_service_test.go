package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HSouheill/itam_backend/models"
)

func TestMonthBounds(t *testing.T) {
	from, until := monthBounds(time.Date(2026, time.December, 31, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2026, time.December, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC), until)
}

func TestUserHomeStats(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	now := time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)
	f.stats.now = fixedClock(now)

	f.addAsset(ctx, "Acme", "Laptop", 5, 7)
	f.addAsset(ctx, "Acme", "Mouse", 5, 1)

	create := func(name string, at time.Time) {
		_, err := f.requests.CreateRequest(ctx, models.RequestInput{
			Name: name, Type: models.AssetReturnable, Company: "Acme", RequesterEmail: "dev@acme.com", RequestDate: &at,
		})
		require.NoError(t, err)
	}
	create("Laptop", now.AddDate(0, 0, -10))
	create("Mouse", now.AddDate(0, 0, -1))
	create("Laptop", now.AddDate(0, -1, 0))

	_, err := f.requests.CreateCustomRequest(ctx, models.CustomRequestInput{
		Name: "Desk", Type: models.AssetReturnable, RequesterEmail: "dev@acme.com", Company: "Acme", Date: "d1",
	})
	require.NoError(t, err)

	stats, err := f.stats.UserHomeStats(ctx, "dev@acme.com", "Acme")
	require.NoError(t, err)
	assert.Len(t, stats.CustomRequests, 1)
	assert.Len(t, stats.PendingRequests, 3)
	require.Len(t, stats.MonthlyRequests, 2)
	assert.Equal(t, "Mouse", stats.MonthlyRequests[0].Name)
	assert.Equal(t, "Laptop", stats.MonthlyRequests[1].Name)
	require.Len(t, stats.MostRequested, 2)
	assert.Equal(t, "Laptop", stats.MostRequested[0].Name)
}

func TestAdminHomeStatsIsCompanyScoped(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.addAsset(ctx, "Acme", "Laptop", 3, 2)
	f.addAsset(ctx, "Acme", "Chair", 30, 1)
	f.addAsset(ctx, "Globex", "Phone", 1, 9)

	for i := 0; i < 6; i++ {
		f.request(ctx, t, "Acme", "Laptop", "dev@acme.com")
	}
	_, err := f.requests.CreateRequest(ctx, models.RequestInput{
		Name: "Gum", Type: models.AssetNonReturnable, Company: "Acme", RequesterEmail: "dev@acme.com",
	})
	require.NoError(t, err)
	f.request(ctx, t, "Globex", "Phone", "x@globex.com")

	stats, err := f.stats.AdminHomeStats(ctx, "Acme")
	require.NoError(t, err)
	assert.Len(t, stats.PendingRequests, adminPendingLimit)
	for _, r := range stats.PendingRequests {
		assert.Equal(t, "Acme", r.Company)
	}
	require.Len(t, stats.TopRequestedItems, 2)
	assert.Equal(t, "Laptop", stats.TopRequestedItems[0].Name)
	require.Len(t, stats.LimitedStockItems, 1)
	assert.Equal(t, "Laptop", stats.LimitedStockItems[0].Name)
	assert.Equal(t, int64(6), stats.ReturnableItems)
	assert.Equal(t, int64(1), stats.NonReturnableItems)
}
