// Package session holds the authenticated identity and its role. The
// session is an explicit object handed to callers, never a global; its
// lifecycle runs from Login to Logout.
package session

import (
	"context"
	"errors"
	"fmt"

	"asset-management-app/internal/gateway"
	"asset-management-app/internal/models"
)

var (
	// ErrPasswordMismatch is returned by Register before any remote call
	// when password and confirmation differ.
	ErrPasswordMismatch = errors.New("passwords do not match")

	// ErrNoProfileFound is returned by Login when credentials are valid but
	// no profile row exists for the identity.
	ErrNoProfileFound = errors.New("no profile found for identity")

	// ErrRegistrationFailed means the auth identity could not be created.
	ErrRegistrationFailed = errors.New("registration failed")

	// ErrProfileCreationFailed means the identity was created but its
	// profile row was not. The identity is rolled back before this is
	// returned.
	ErrProfileCreationFailed = errors.New("profile creation failed")
)

// Session is the current authenticated principal and its role. The role is
// resolved exactly once at login and does not change until logout.
type Session struct {
	Identity models.Identity
	Role     models.Role
}

// Authenticated reports whether the session carries an identity.
func (s *Session) Authenticated() bool {
	return s != nil && s.Identity.ID != ""
}

// IsAdmin reports whether the session is authenticated with the admin role.
func (s *Session) IsAdmin() bool {
	return s.Authenticated() && s.Role == models.RoleAdmin
}

// Manager drives the session lifecycle against the gateway.
type Manager struct {
	gw gateway.Gateway
}

// NewManager creates a session manager.
func NewManager(gw gateway.Gateway) *Manager {
	return &Manager{gw: gw}
}

// Login delegates the credential check to the gateway, then resolves the
// role from the profile row. A missing profile is ErrNoProfileFound.
func (m *Manager) Login(ctx context.Context, email, password string) (*Session, error) {
	identity, err := m.gw.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}

	role, err := m.gw.GetProfileRole(ctx, identity.ID)
	if errors.Is(err, gateway.ErrNotFound) {
		return nil, ErrNoProfileFound
	}
	if err != nil {
		return nil, err
	}

	return &Session{Identity: identity, Role: role}, nil
}

// Logout clears the session unconditionally and is idempotent. A gateway
// sign-out failure does not resurrect the session.
func (m *Manager) Logout(ctx context.Context, s *Session) {
	if s != nil {
		s.Identity = models.Identity{}
		s.Role = ""
	}
	// best effort, a sign-out failure does not resurrect the session
	_ = m.gw.SignOut(ctx)
}

// Register creates an auth identity and its profile row. Self-registered
// users always get the management role. The password confirmation is checked
// before any remote call. If the profile insert fails, the freshly created
// identity is deleted again so no orphan remains; the error still tells the
// caller which half failed.
func (m *Manager) Register(ctx context.Context, req models.RegisterRequest) error {
	if req.Password != req.ConfirmPassword {
		return ErrPasswordMismatch
	}

	identity, err := m.gw.SignUp(ctx, req.Email, req.Password)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRegistrationFailed, err)
	}

	if err := m.gw.InsertProfile(ctx, identity.ID, models.RoleManagement, req.Metadata()); err != nil {
		// Roll back the identity so a retry can reuse the email.
		if delErr := m.gw.DeleteIdentity(ctx, identity.ID); delErr != nil {
			return fmt.Errorf("%w: %w (identity %s not rolled back: %v)",
				ErrProfileCreationFailed, err, identity.ID, delErr)
		}
		return fmt.Errorf("%w: %w", ErrProfileCreationFailed, err)
	}

	return nil
}
