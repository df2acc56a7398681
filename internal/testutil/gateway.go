// Package testutil provides an in-memory Gateway double for unit tests.
package testutil

import (
	"context"
	"strings"
	"sync"
	"time"

	"asset-management-app/internal/gateway"
	"asset-management-app/internal/models"

	"github.com/google/uuid"
)

// FakeGateway is an in-memory gateway.Gateway. Every call is counted so
// tests can assert how many remote calls an operation made. Any method can
// be made to fail by setting the matching error field.
type FakeGateway struct {
	mu sync.Mutex

	Calls map[string]int

	identities map[string]fakeIdentity // keyed by email
	profiles   map[string]models.ProfileRecord
	assets     []models.Asset
	nextID     int64

	SignInErr        error
	SignUpErr        error
	InsertProfileErr error
	UpdateProfileErr error
	ListErr          error
	InsertAssetErr   error
	UpdateAssetErr   error
	DeleteAssetErr   error

	// EmptyInsert makes InsertAsset report success with no rows.
	EmptyInsert bool
}

type fakeIdentity struct {
	id       string
	password string
}

// NewFakeGateway returns an empty fake.
func NewFakeGateway() *FakeGateway {
	return &FakeGateway{
		Calls:      map[string]int{},
		identities: map[string]fakeIdentity{},
		profiles:   map[string]models.ProfileRecord{},
	}
}

var _ gateway.Gateway = (*FakeGateway)(nil)

func (f *FakeGateway) count(op string) {
	f.Calls[op]++
}

// TotalCalls reports how many gateway calls were made in total.
func (f *FakeGateway) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.Calls {
		n += c
	}
	return n
}

// SeedUser registers an identity with a profile and returns its id.
func (f *FakeGateway) SeedUser(email, password string, role models.Role, prof models.Profile) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.NewString()
	f.identities[email] = fakeIdentity{id: id, password: password}
	f.profiles[id] = models.ProfileRecord{IdentityID: id, Role: role, Profile: prof}
	return id
}

// SeedAssets replaces the stored asset set.
func (f *FakeGateway) SeedAssets(assets ...models.Asset) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.assets = append([]models.Asset{}, assets...)
	for _, a := range assets {
		if a.ID > f.nextID {
			f.nextID = a.ID
		}
	}
}

// Assets returns a copy of the stored asset set.
func (f *FakeGateway) Assets() []models.Asset {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Asset{}, f.assets...)
}

func (f *FakeGateway) SignIn(ctx context.Context, email, password string) (models.Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("SignIn")
	if f.SignInErr != nil {
		return models.Identity{}, f.SignInErr
	}
	ident, ok := f.identities[email]
	if !ok || ident.password != password {
		return models.Identity{}, gateway.ErrInvalidCredentials
	}
	return models.Identity{ID: ident.id, Email: email}, nil
}

func (f *FakeGateway) SignUp(ctx context.Context, email, password string) (models.Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("SignUp")
	if f.SignUpErr != nil {
		return models.Identity{}, f.SignUpErr
	}
	if _, ok := f.identities[email]; ok {
		return models.Identity{}, gateway.ErrDuplicateEmail
	}
	id := uuid.NewString()
	f.identities[email] = fakeIdentity{id: id, password: password}
	return models.Identity{ID: id, Email: email}, nil
}

func (f *FakeGateway) SignOut(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("SignOut")
	return nil
}

func (f *FakeGateway) DeleteIdentity(ctx context.Context, identityID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("DeleteIdentity")
	for email, ident := range f.identities {
		if ident.id == identityID {
			delete(f.identities, email)
			return nil
		}
	}
	return gateway.ErrNotFound
}

func (f *FakeGateway) GetProfileRole(ctx context.Context, identityID string) (models.Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("GetProfileRole")
	rec, ok := f.profiles[identityID]
	if !ok {
		return "", gateway.ErrNotFound
	}
	return rec.Role, nil
}

func (f *FakeGateway) GetProfile(ctx context.Context, identityID string) (models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("GetProfile")
	rec, ok := f.profiles[identityID]
	if !ok {
		return models.Profile{}, gateway.ErrNotFound
	}
	return rec.Profile, nil
}

func (f *FakeGateway) UpdateProfile(ctx context.Context, identityID string, p models.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("UpdateProfile")
	if f.UpdateProfileErr != nil {
		return f.UpdateProfileErr
	}
	rec, ok := f.profiles[identityID]
	if !ok {
		return gateway.ErrNotFound
	}
	rec.Profile = p
	rec.UpdatedAt = time.Now()
	f.profiles[identityID] = rec
	return nil
}

func (f *FakeGateway) InsertProfile(ctx context.Context, identityID string, role models.Role, p models.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("InsertProfile")
	if f.InsertProfileErr != nil {
		return f.InsertProfileErr
	}
	f.profiles[identityID] = models.ProfileRecord{IdentityID: identityID, Role: role, Profile: p}
	return nil
}

func (f *FakeGateway) ListAssets(ctx context.Context, filter gateway.AssetFilter) ([]models.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("ListAssets")
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	out := []models.Asset{}
	needle := strings.ToLower(filter.NameContains)
	for _, a := range f.assets {
		if needle == "" || strings.Contains(strings.ToLower(a.Name), needle) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *FakeGateway) InsertAsset(ctx context.Context, fields gateway.AssetFields) ([]models.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("InsertAsset")
	if f.InsertAssetErr != nil {
		return nil, f.InsertAssetErr
	}
	if f.EmptyInsert {
		return []models.Asset{}, nil
	}
	f.nextID++
	now := time.Now()
	a := models.Asset{
		ID:          f.nextID,
		Name:        fields.Name,
		Description: fields.Description,
		CreatedBy:   fields.CreatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	f.assets = append(f.assets, a)
	return []models.Asset{a}, nil
}

func (f *FakeGateway) UpdateAsset(ctx context.Context, id int64, fields gateway.AssetFields) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("UpdateAsset")
	if f.UpdateAssetErr != nil {
		return f.UpdateAssetErr
	}
	for i, a := range f.assets {
		if a.ID == id {
			f.assets[i].Name = fields.Name
			f.assets[i].Description = fields.Description
			f.assets[i].UpdatedAt = time.Now()
			return nil
		}
	}
	return gateway.ErrNotFound
}

func (f *FakeGateway) DeleteAsset(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("DeleteAsset")
	if f.DeleteAssetErr != nil {
		return f.DeleteAssetErr
	}
	for i, a := range f.assets {
		if a.ID == id {
			f.assets = append(f.assets[:i], f.assets[i+1:]...)
			return nil
		}
	}
	return gateway.ErrNotFound
}
