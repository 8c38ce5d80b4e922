package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/HSouheill/itam_backend/models"
	"github.com/HSouheill/itam_backend/repositories"
)

// IdentityService manages user records
type IdentityService struct {
	users repositories.UserStore
	now   func() time.Time
}

// NewIdentityService creates a new identity service
func NewIdentityService(users repositories.UserStore) *IdentityService {
	return &IdentityService{users: users, now: time.Now}
}

// RegisterUser inserts the user unless one with the same email exists.
// created is false, with a nil InsertedID, when the user already existed.
func (s *IdentityService) RegisterUser(ctx context.Context, in models.RegisterUserRequest) (result models.InsertResult, created bool, err error) {
	email := strings.TrimSpace(in.Email)

	_, err = s.users.FindByEmail(ctx, email)
	if err == nil {
		return models.InsertResult{}, false, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return models.InsertResult{}, false, fmt.Errorf("looking up user: %w", err)
	}

	user := &models.User{
		Email:       email,
		Name:        in.Name,
		Photo:       in.Photo,
		Role:        in.Role,
		Company:     in.Company,
		CompanyLogo: in.CompanyLogo,
		DateOfBirth: in.DateOfBirth,
		CreatedAt:   s.now(),
	}
	id, err := s.users.Insert(ctx, user)
	if errors.Is(err, repositories.ErrDuplicate) {
		// lost the race against a concurrent registration
		return models.InsertResult{}, false, nil
	}
	if err != nil {
		return models.InsertResult{}, false, fmt.Errorf("inserting user: %w", err)
	}

	zap.S().Infow("user registered", "email", email)
	return models.InsertResult{InsertedID: id}, true, nil
}

// AdminStatus reports whether the user with the given email is an admin
func (s *IdentityService) AdminStatus(ctx context.Context, email string) (*models.AdminStatus, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repositories.ErrNotFound) {
		return &models.AdminStatus{}, nil
	}
	if err != nil {
		return nil, err
	}
	return &models.AdminStatus{Admin: user.IsAdmin(), User: user}, nil
}

// UpdatePackage overwrites the subscription package of the user
func (s *IdentityService) UpdatePackage(ctx context.Context, email string, pkg models.Package) (models.UpdateResult, error) {
	return s.users.SetByEmail(ctx, email, bson.M{"package": pkg})
}

// UpdateProfile sets the provided profile fields on the user
func (s *IdentityService) UpdateProfile(ctx context.Context, email string, patch models.ProfileUpdate) (models.UpdateResult, error) {
	fields, err := patchFields(patch)
	if err != nil {
		return models.UpdateResult{}, err
	}
	return s.users.SetByEmail(ctx, email, fields)
}

// AddToTeam sets team membership fields on the user with the given id.
// company is the admin's company: the patch may only assign that company and
// users of another company cannot be touched.
func (s *IdentityService) AddToTeam(ctx context.Context, company, id string, patch models.TeamUpdate) (models.UpdateResult, error) {
	objID, err := parseObjectID(id)
	if err != nil {
		return models.UpdateResult{}, err
	}
	fields, err := patchFields(patch)
	if err != nil {
		return models.UpdateResult{}, err
	}
	if patch.Company != nil && *patch.Company != company {
		return models.UpdateResult{}, ErrForbidden
	}

	member, err := s.teamMember(ctx, company, objID, true)
	if err != nil || member == nil {
		return models.UpdateResult{}, err
	}
	return s.users.SetByID(ctx, objID, fields)
}

// RemoveFromTeam unsets the named team membership fields of a member of company
func (s *IdentityService) RemoveFromTeam(ctx context.Context, company, id string, fields []string) (models.UpdateResult, error) {
	objID, err := parseObjectID(id)
	if err != nil {
		return models.UpdateResult{}, err
	}
	if len(fields) == 0 {
		return models.UpdateResult{}, NewValidationError("no fields to remove")
	}
	for _, f := range fields {
		if !isTeamField(f) {
			return models.UpdateResult{}, NewValidationError("field %q cannot be removed", f)
		}
	}

	member, err := s.teamMember(ctx, company, objID, false)
	if err != nil || member == nil {
		return models.UpdateResult{}, err
	}
	return s.users.UnsetByID(ctx, objID, fields)
}

// teamMember loads a user managed by an admin of company. Unknown ids give a
// nil user so the update reports zero counts.
func (s *IdentityService) teamMember(ctx context.Context, company string, id primitive.ObjectID, allowUnassigned bool) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if user.Company == company || (allowUnassigned && user.Company == "") {
		return user, nil
	}
	return nil, ErrForbidden
}

func isTeamField(name string) bool {
	for _, f := range models.TeamFields {
		if f == name {
			return true
		}
	}
	return false
}

// ListUsers returns every user
func (s *IdentityService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.users.FindAll(ctx)
}
