package models

import "time"

// Role is the access class attached to an identity.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleManagement Role = "management"
)

// ValidRoles defines the available roles in the system
var ValidRoles = []Role{
	RoleAdmin,
	RoleManagement,
}

// IsValidRole checks if a role is valid
func IsValidRole(role Role) bool {
	for _, validRole := range ValidRoles {
		if role == validRole {
			return true
		}
	}
	return false
}

// Identity is an authenticated principal. The ID is the opaque id assigned
// by the gateway (a UUID string).
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Profile holds the self-service fields associated 1:1 with an identity.
type Profile struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Designation string `json:"designation"`
}

// ProfileRecord is a profile row as stored by the gateway, including the role.
type ProfileRecord struct {
	IdentityID string    `json:"id"`
	Role       Role      `json:"role"`
	Profile    Profile   `json:"profile"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse represents the response body for a successful login
type LoginResponse struct {
	Token    string   `json:"token"`
	Identity Identity `json:"identity"`
	Role     Role     `json:"role"`
}

// RegisterRequest represents the request body for self-registration
type RegisterRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Designation     string `json:"designation"`
}

// Metadata returns the profile fields captured at registration time.
func (r RegisterRequest) Metadata() Profile {
	return Profile{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Designation: r.Designation,
	}
}

// UpdateProfileRequest represents the request body for updating the
// caller's own profile
type UpdateProfileRequest struct {
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	Designation *string `json:"designation,omitempty"`
}

// Apply merges the non-nil fields onto an existing profile.
func (r UpdateProfileRequest) Apply(p Profile) Profile {
	if r.FirstName != nil {
		p.FirstName = *r.FirstName
	}
	if r.LastName != nil {
		p.LastName = *r.LastName
	}
	if r.Designation != nil {
		p.Designation = *r.Designation
	}
	return p
}
