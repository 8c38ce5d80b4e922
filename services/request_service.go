package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/HSouheill/itam_backend/metrics"
	"github.com/HSouheill/itam_backend/models"
	"github.com/HSouheill/itam_backend/repositories"
)

// EventPublisher delivers request lifecycle events to a company feed
type EventPublisher interface {
	Publish(company string, event models.Event)
}

// Notifier tells a requester that their request was processed
type Notifier interface {
	NotifyStatusChange(to, itemName, status string)
}

// RequestService runs the request and custom request lifecycle
type RequestService struct {
	requests repositories.RequestStore
	custom   repositories.CustomRequestStore
	assets   repositories.AssetStore
	tx       repositories.Transactor
	events   EventPublisher
	notifier Notifier
	now      func() time.Time
}

// NewRequestService creates a new request service. events and notifier may be nil.
func NewRequestService(requests repositories.RequestStore, custom repositories.CustomRequestStore,
	assets repositories.AssetStore, tx repositories.Transactor, events EventPublisher, notifier Notifier) *RequestService {
	return &RequestService{
		requests: requests,
		custom:   custom,
		assets:   assets,
		tx:       tx,
		events:   events,
		notifier: notifier,
		now:      time.Now,
	}
}

// ListRequests returns the requests of a company, optionally filtered by a
// case-insensitive substring of the name
func (s *RequestService) ListRequests(ctx context.Context, company, search string) ([]models.Request, error) {
	return s.requests.Find(ctx, repositories.RequestQuery{
		Company:      company,
		NameContains: strings.TrimSpace(search),
	})
}

// CreateRequest stores a new pending request, linking it to the catalog
// asset of the same name when there is one
func (s *RequestService) CreateRequest(ctx context.Context, in models.RequestInput) (*models.Request, error) {
	req := &models.Request{
		Name:           in.Name,
		Type:           in.Type,
		Company:        in.Company,
		RequesterEmail: in.RequesterEmail,
		RequesterName:  in.RequesterName,
		Note:           in.Note,
		Status:         models.StatusPending,
		RequestDate:    s.now(),
	}
	if in.RequestDate != nil && !in.RequestDate.IsZero() {
		req.RequestDate = *in.RequestDate
	}

	if in.AssetID != "" {
		assetID, err := parseObjectID(in.AssetID)
		if err != nil {
			return nil, err
		}
		req.AssetID = &assetID
	} else {
		asset, err := s.assets.FindByName(ctx, in.Company, in.Name)
		switch {
		case err == nil:
			req.AssetID = &asset.ID
		case !errors.Is(err, repositories.ErrNotFound):
			return nil, fmt.Errorf("resolving asset: %w", err)
		}
	}

	id, err := s.requests.Insert(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("inserting request: %w", err)
	}
	req.ID = id

	s.publish(req.Company, models.EventRequestCreated, fmt.Sprintf("%s requested %s", requesterLabel(req.RequesterName, req.RequesterEmail), req.Name), req)
	return req, nil
}

// ApproveRequest approves the oldest pending request of company with the given name and
// takes one unit of the requested asset out of stock. Both happen in one
// transaction; an out of stock asset leaves the request pending.
func (s *RequestService) ApproveRequest(ctx context.Context, name, company string) (*models.RequestApproval, error) {
	if err := requireCompany(company); err != nil {
		return nil, err
	}
	var approval *models.RequestApproval

	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		req, err := s.pendingRequest(ctx, name, company)
		if err != nil {
			return err
		}
		asset, err := s.requestedAsset(ctx, req)
		if err != nil {
			return err
		}

		now := s.now()
		if err := s.requests.Transition(ctx, req.ID, models.StatusPending, models.StatusApproved, now); err != nil {
			return transitionError(err)
		}
		if err := s.assets.ConsumeStock(ctx, asset.ID); err != nil {
			if errors.Is(err, repositories.ErrConditionFailed) {
				return fmt.Errorf("%s: %w", asset.Name, ErrOutOfStock)
			}
			return err
		}

		req.Status = models.StatusApproved
		req.ProcessedAt = &now
		asset.Quantity--
		asset.Requested++
		approval = &models.RequestApproval{Request: req, Asset: asset}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.processed("request", approval.Request.Company, approval.Request.RequesterEmail, approval.Request.Name,
		models.StatusApproved, models.EventRequestApproved, approval)
	return approval, nil
}

// RejectRequest rejects the oldest pending request of company with the given name
func (s *RequestService) RejectRequest(ctx context.Context, name, company string) (*models.Request, error) {
	if err := requireCompany(company); err != nil {
		return nil, err
	}
	var rejected *models.Request

	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		req, err := s.pendingRequest(ctx, name, company)
		if err != nil {
			return err
		}
		now := s.now()
		if err := s.requests.Transition(ctx, req.ID, models.StatusPending, models.StatusRejected, now); err != nil {
			return transitionError(err)
		}
		req.Status = models.StatusRejected
		req.ProcessedAt = &now
		rejected = req
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.processed("request", rejected.Company, rejected.RequesterEmail, rejected.Name,
		models.StatusRejected, models.EventRequestRejected, rejected)
	return rejected, nil
}

// ListCustomRequests returns the custom requests of a company
func (s *RequestService) ListCustomRequests(ctx context.Context, company string) ([]models.CustomRequest, error) {
	return s.custom.Find(ctx, repositories.RequestQuery{Company: company})
}

// CreateCustomRequest stores a new pending custom request
func (s *RequestService) CreateCustomRequest(ctx context.Context, in models.CustomRequestInput) (*models.CustomRequest, error) {
	req := &models.CustomRequest{
		Name:           in.Name,
		Price:          in.Price,
		Type:           in.Type,
		Image:          in.Image,
		Reason:         in.Reason,
		Info:           in.Info,
		RequesterEmail: in.RequesterEmail,
		RequesterName:  in.RequesterName,
		Company:        in.Company,
		Date:           in.Date,
		Status:         models.StatusPending,
	}
	id, err := s.custom.Insert(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("inserting custom request: %w", err)
	}
	req.ID = id

	s.publish(req.Company, models.EventCustomRequestCreated, fmt.Sprintf("%s asked for %s", requesterLabel(req.RequesterName, req.RequesterEmail), req.Name), req)
	return req, nil
}

// ApproveCustomRequest approves the pending custom request with the given
// name and adds the supplied asset to the catalog in the same transaction
func (s *RequestService) ApproveCustomRequest(ctx context.Context, name, company string, in models.AssetInput) (*models.CustomRequestApproval, error) {
	if err := requireCompany(company); err != nil {
		return nil, err
	}
	var approval *models.CustomRequestApproval

	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		req, err := s.custom.FindOne(ctx, repositories.RequestQuery{Name: name, Company: company, Status: models.StatusPending})
		if errors.Is(err, repositories.ErrNotFound) {
			return s.missingCustomRequest(ctx, name, company)
		}
		if err != nil {
			return err
		}

		now := s.now()
		asset := in.ToAsset(now)
		if asset.Company == "" {
			asset.Company = req.Company
		}
		if asset.Company != req.Company {
			return NewValidationError("asset company must match the request company")
		}
		id, err := s.assets.Insert(ctx, asset)
		if err != nil {
			return fmt.Errorf("inserting asset: %w", err)
		}
		asset.ID = id

		if err := s.custom.Transition(ctx, req.ID, models.StatusPending, models.StatusApproved, now); err != nil {
			return transitionError(err)
		}
		req.Status = models.StatusApproved
		req.ProcessedAt = &now
		approval = &models.CustomRequestApproval{CustomRequest: req, Asset: asset}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.processed("custom_request", approval.CustomRequest.Company, approval.CustomRequest.RequesterEmail, approval.CustomRequest.Name,
		models.StatusApproved, models.EventCustomRequestApproved, approval)
	return approval, nil
}

// RejectCustomRequest rejects the pending custom request with the given name
func (s *RequestService) RejectCustomRequest(ctx context.Context, name, company string) (*models.CustomRequest, error) {
	if err := requireCompany(company); err != nil {
		return nil, err
	}
	var rejected *models.CustomRequest

	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		req, err := s.custom.FindOne(ctx, repositories.RequestQuery{Name: name, Company: company, Status: models.StatusPending})
		if errors.Is(err, repositories.ErrNotFound) {
			return s.missingCustomRequest(ctx, name, company)
		}
		if err != nil {
			return err
		}
		now := s.now()
		if err := s.custom.Transition(ctx, req.ID, models.StatusPending, models.StatusRejected, now); err != nil {
			return transitionError(err)
		}
		req.Status = models.StatusRejected
		req.ProcessedAt = &now
		rejected = req
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.processed("custom_request", rejected.Company, rejected.RequesterEmail, rejected.Name,
		models.StatusRejected, models.EventCustomRequestRejected, rejected)
	return rejected, nil
}

// UpdateCustomRequest sets the provided fields on the custom request
// identified by requester email and date
func (s *RequestService) UpdateCustomRequest(ctx context.Context, email, date string, patch models.CustomRequestUpdate) (models.UpdateResult, error) {
	if date == "" {
		return models.UpdateResult{}, NewValidationError("date query parameter is required")
	}
	fields, err := patchFields(patch)
	if err != nil {
		return models.UpdateResult{}, err
	}
	return s.custom.SetByRequesterDate(ctx, email, date, fields)
}

// pendingRequest finds the request to transition. A request that exists
// but was already processed yields ErrNotPending.
func (s *RequestService) pendingRequest(ctx context.Context, name, company string) (*models.Request, error) {
	req, err := s.requests.FindOne(ctx, repositories.RequestQuery{Name: name, Company: company, Status: models.StatusPending})
	if err == nil {
		return req, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	_, err = s.requests.FindOne(ctx, repositories.RequestQuery{Name: name, Company: company})
	switch {
	case err == nil:
		return nil, fmt.Errorf("request %q: %w", name, ErrNotPending)
	case errors.Is(err, repositories.ErrNotFound):
		return nil, fmt.Errorf("request %q: %w", name, ErrNotFound)
	default:
		return nil, err
	}
}

func (s *RequestService) missingCustomRequest(ctx context.Context, name, company string) error {
	_, err := s.custom.FindOne(ctx, repositories.RequestQuery{Name: name, Company: company})
	switch {
	case err == nil:
		return fmt.Errorf("custom request %q: %w", name, ErrNotPending)
	case errors.Is(err, repositories.ErrNotFound):
		return fmt.Errorf("custom request %q: %w", name, ErrNotFound)
	default:
		return err
	}
}

// requestedAsset resolves the asset by the id captured at creation, falling
// back to the company asset with the request name
func (s *RequestService) requestedAsset(ctx context.Context, req *models.Request) (*models.Asset, error) {
	if req.AssetID != nil {
		asset, err := s.assets.FindByID(ctx, *req.AssetID)
		if err == nil {
			return asset, nil
		}
		if !errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
	}
	asset, err := s.assets.FindByName(ctx, req.Company, req.Name)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("asset %q: %w", req.Name, ErrNotFound)
	}
	return asset, err
}

// requireCompany keeps name lookups inside one company
func requireCompany(company string) error {
	if company == "" {
		return NewValidationError("company is required")
	}
	return nil
}

func transitionError(err error) error {
	if errors.Is(err, repositories.ErrConditionFailed) {
		return ErrNotPending
	}
	return err
}

// processed runs the side effects of a committed transition
func (s *RequestService) processed(kind, company, requester, itemName, status, eventType string, data interface{}) {
	metrics.RecordTransition(kind, status)
	zap.S().Infow("request processed", "kind", kind, "company", company, "name", itemName, "status", status)

	s.publish(company, eventType, fmt.Sprintf("%s was %s", itemName, status), data)
	if s.notifier != nil && requester != "" {
		s.notifier.NotifyStatusChange(requester, itemName, status)
	}
}

func (s *RequestService) publish(company, eventType, message string, data interface{}) {
	if s.events == nil {
		return
	}
	s.events.Publish(company, models.Event{Type: eventType, Company: company, Message: message, Data: data})
}

func requesterLabel(name, email string) string {
	if name != "" {
		return name
	}
	return email
}

