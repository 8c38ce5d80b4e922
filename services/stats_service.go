package services

import (
	"context"
	"time"

	"github.com/HSouheill/itam_backend/models"
	"github.com/HSouheill/itam_backend/repositories"
)

const adminPendingLimit = 5

// StatsService builds the dashboard composites
type StatsService struct {
	requests repositories.RequestStore
	custom   repositories.CustomRequestStore
	assets   repositories.AssetStore
	now      func() time.Time
}

// NewStatsService creates a new stats service
func NewStatsService(requests repositories.RequestStore, custom repositories.CustomRequestStore, assets repositories.AssetStore) *StatsService {
	return &StatsService{requests: requests, custom: custom, assets: assets, now: time.Now}
}

// monthBounds returns the first instant of the month of t and of the next month
func monthBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 1, 0)
}

// UserHomeStats builds the member dashboard
func (s *StatsService) UserHomeStats(ctx context.Context, email, company string) (*models.UserHomeStats, error) {
	stats := &models.UserHomeStats{}
	var err error

	if stats.CustomRequests, err = s.custom.Find(ctx, repositories.RequestQuery{RequesterEmail: email}); err != nil {
		return nil, err
	}
	if stats.PendingRequests, err = s.requests.Find(ctx, repositories.RequestQuery{RequesterEmail: email, Status: models.StatusPending}); err != nil {
		return nil, err
	}

	from, until := monthBounds(s.now())
	stats.MonthlyRequests, err = s.requests.Find(ctx, repositories.RequestQuery{
		RequesterEmail: email,
		From:           from,
		Until:          until,
		NewestFirst:    true,
	})
	if err != nil {
		return nil, err
	}

	if stats.MostRequested, err = s.assets.TopRequested(ctx, company, DefaultTopRequested); err != nil {
		return nil, err
	}
	return stats, nil
}

// AdminHomeStats builds the admin dashboard, scoped to one company
func (s *StatsService) AdminHomeStats(ctx context.Context, company string) (*models.AdminHomeStats, error) {
	stats := &models.AdminHomeStats{}
	var err error

	stats.PendingRequests, err = s.requests.Find(ctx, repositories.RequestQuery{
		Company: company,
		Status:  models.StatusPending,
		Limit:   adminPendingLimit,
	})
	if err != nil {
		return nil, err
	}
	if stats.TopRequestedItems, err = s.assets.TopRequested(ctx, company, DefaultTopRequested); err != nil {
		return nil, err
	}
	if stats.LimitedStockItems, err = s.assets.ListBelowQuantity(ctx, company, models.LowStockThreshold); err != nil {
		return nil, err
	}
	if stats.ReturnableItems, err = s.requests.Count(ctx, repositories.RequestQuery{Company: company, Type: models.AssetReturnable}); err != nil {
		return nil, err
	}
	if stats.NonReturnableItems, err = s.requests.Count(ctx, repositories.RequestQuery{Company: company, Type: models.AssetNonReturnable}); err != nil {
		return nil, err
	}
	return stats, nil
}
