// models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// User model
type User struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Email       string             `json:"email" bson:"email"`
	Name        string             `json:"name" bson:"name"`
	Photo       string             `json:"photo,omitempty" bson:"photo,omitempty"`
	Role        string             `json:"role,omitempty" bson:"role,omitempty"`
	Company     string             `json:"company,omitempty" bson:"company,omitempty"`
	CompanyLogo string             `json:"companyLogo,omitempty" bson:"companyLogo,omitempty"`
	TeamLead    string             `json:"teamLead,omitempty" bson:"teamLead,omitempty"`
	DateOfBirth string             `json:"dateOfBirth,omitempty" bson:"dateOfBirth,omitempty"`
	Package     *Package           `json:"package,omitempty" bson:"package,omitempty"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Package is the subscription tier bought by a company admin
type Package struct {
	Name        string  `json:"name" bson:"name" validate:"required"`
	MemberLimit int     `json:"memberLimit" bson:"memberLimit" validate:"gte=0"`
	Price       float64 `json:"price" bson:"price" validate:"gte=0"`
}

// RegisterUserRequest is the body of POST /users
type RegisterUserRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Name        string `json:"name" validate:"max=120"`
	Photo       string `json:"photo" validate:"omitempty,max=2048"`
	Role        string `json:"role" validate:"omitempty,oneof=admin member"`
	Company     string `json:"company" validate:"max=120"`
	CompanyLogo string `json:"companyLogo" validate:"omitempty,max=2048"`
	DateOfBirth string `json:"dateOfBirth" validate:"max=40"`
}

// ProfileUpdate holds the fields a user may change on their own profile
type ProfileUpdate struct {
	Name        *string `json:"name,omitempty" bson:"name,omitempty" validate:"omitempty,min=1,max=120"`
	Photo       *string `json:"photo,omitempty" bson:"photo,omitempty" validate:"omitempty,max=2048"`
	DateOfBirth *string `json:"dateOfBirth,omitempty" bson:"dateOfBirth,omitempty" validate:"omitempty,max=40"`
}

// TeamUpdate holds the team membership fields an admin sets on a member
type TeamUpdate struct {
	Company     *string `json:"company,omitempty" bson:"company,omitempty" validate:"omitempty,min=1,max=120"`
	CompanyLogo *string `json:"companyLogo,omitempty" bson:"companyLogo,omitempty" validate:"omitempty,max=2048"`
	TeamLead    *string `json:"teamLead,omitempty" bson:"teamLead,omitempty" validate:"omitempty,email"`
}

// TeamFields lists the user fields removable through removeFromTeam
var TeamFields = []string{"company", "companyLogo", "teamLead"}

// AdminStatus is the result of the admin check
type AdminStatus struct {
	Admin bool  `json:"admin"`
	User  *User `json:"user"`
}
