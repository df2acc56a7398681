package gateway

import (
	"context"

	"asset-management-app/internal/models"
)

// AssetFilter narrows ListAssets. An empty NameContains matches everything.
type AssetFilter struct {
	NameContains string
}

// AssetFields are the writable asset columns.
type AssetFields struct {
	Name        string
	Description string
	CreatedBy   string
}

// Gateway is the remote auth/data service boundary. Implementations must
// return the sentinel errors from errors.go for the conditions they name and
// wrap everything else as a gateway error.
type Gateway interface {
	// SignIn checks credentials and returns the stored identity.
	SignIn(ctx context.Context, email, password string) (models.Identity, error)
	// SignUp creates a new auth identity with the given credentials.
	SignUp(ctx context.Context, email, password string) (models.Identity, error)
	// SignOut invalidates any server-side auth state. Best effort.
	SignOut(ctx context.Context) error
	// DeleteIdentity removes an auth identity, used to compensate a failed
	// registration.
	DeleteIdentity(ctx context.Context, identityID string) error

	// GetProfileRole returns the role stored on the profile row.
	GetProfileRole(ctx context.Context, identityID string) (models.Role, error)
	GetProfile(ctx context.Context, identityID string) (models.Profile, error)
	UpdateProfile(ctx context.Context, identityID string, p models.Profile) error
	InsertProfile(ctx context.Context, identityID string, role models.Role, p models.Profile) error

	ListAssets(ctx context.Context, filter AssetFilter) ([]models.Asset, error)
	// InsertAsset returns the created record(s) as stored.
	InsertAsset(ctx context.Context, fields AssetFields) ([]models.Asset, error)
	UpdateAsset(ctx context.Context, id int64, fields AssetFields) error
	DeleteAsset(ctx context.Context, id int64) error
}
