package internal

import (
	"context"
	"errors"
	"sync"

	"asset-management-app/internal/gateway"
	"asset-management-app/internal/models"
	"asset-management-app/internal/session"
)

var (
	// ErrForbidden means the session role does not permit the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrNotAuthenticated means the operation needs an identity and the
	// session has none.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNoAssetSelected is returned by SaveEdit when nothing is staged or
	// the staged record has no id.
	ErrNoAssetSelected = errors.New("no asset selected for editing")

	// ErrEmptyResult means the gateway reported success but returned no
	// record.
	ErrEmptyResult = errors.New("gateway returned no record")

	// ErrBusy means the same operation is already in flight.
	ErrBusy = errors.New("operation already in progress")
)

// Orchestrator runs the role-gated CRUD operations against the gateway and
// keeps the in-memory asset mirror consistent with it. The mirror is only
// touched after the remote call succeeds, so every operation ends in exactly
// one observable outcome. A per-operation busy flag rejects duplicate
// concurrent submissions.
type Orchestrator struct {
	gw gateway.Gateway

	mu     sync.Mutex
	assets []models.Asset
	staged *models.Asset
	busy   map[string]bool
}

// NewOrchestrator creates an orchestrator with an empty mirror.
func NewOrchestrator(gw gateway.Gateway) *Orchestrator {
	return &Orchestrator{
		gw:   gw,
		busy: make(map[string]bool),
	}
}

func (o *Orchestrator) begin(op string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.busy[op] {
		return ErrBusy
	}
	o.busy[op] = true
	return nil
}

func (o *Orchestrator) end(op string) {
	o.mu.Lock()
	o.busy[op] = false
	o.mu.Unlock()
}

// Refresh fetches the asset set from the gateway, filtered server-side when
// search is non-empty, and replaces the mirror with it.
func (o *Orchestrator) Refresh(ctx context.Context, search string) ([]models.Asset, error) {
	if err := o.begin("refresh"); err != nil {
		return nil, err
	}
	defer o.end("refresh")

	assets, err := o.gw.ListAssets(ctx, gateway.AssetFilter{NameContains: search})
	if err != nil {
		return nil, err
	}

	o.mu.Lock()
	o.assets = assets
	o.mu.Unlock()
	return o.Assets(), nil
}

// Assets returns a copy of the in-memory mirror.
func (o *Orchestrator) Assets() []models.Asset {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]models.Asset{}, o.assets...)
}

// Get returns the mirrored asset with the given id for detail display.
func (o *Orchestrator) Get(id int64) (models.Asset, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, a := range o.assets {
		if a.ID == id {
			return a, true
		}
	}
	return models.Asset{}, false
}

// CreateAsset inserts a record owned by the session identity and appends the
// returned record(s) to the mirror. Admin only.
func (o *Orchestrator) CreateAsset(ctx context.Context, sess *session.Session, req models.CreateAssetRequest) (models.Asset, error) {
	if !sess.IsAdmin() {
		return models.Asset{}, ErrForbidden
	}
	if err := o.begin("create"); err != nil {
		return models.Asset{}, err
	}
	defer o.end("create")

	created, err := o.gw.InsertAsset(ctx, gateway.AssetFields{
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   sess.Identity.ID,
	})
	if err != nil {
		return models.Asset{}, err
	}
	if len(created) == 0 {
		return models.Asset{}, ErrEmptyResult
	}

	o.mu.Lock()
	o.assets = append(o.assets, created...)
	o.mu.Unlock()
	return created[0], nil
}

// EditAsset stages an asset for editing. No remote call is made until
// SaveEdit. Admin only.
func (o *Orchestrator) EditAsset(sess *session.Session, asset models.Asset) error {
	if !sess.IsAdmin() {
		return ErrForbidden
	}
	staged := asset
	o.mu.Lock()
	o.staged = &staged
	o.mu.Unlock()
	return nil
}

// Staged returns the currently staged edit, if any.
func (o *Orchestrator) Staged() (models.Asset, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.staged == nil {
		return models.Asset{}, false
	}
	return *o.staged, true
}

// SaveEdit pushes the staged name/description to the gateway, merges the
// change into the mirror by id and clears the stage. Admin only.
func (o *Orchestrator) SaveEdit(ctx context.Context, sess *session.Session) (models.Asset, error) {
	if !sess.IsAdmin() {
		return models.Asset{}, ErrForbidden
	}

	o.mu.Lock()
	staged := o.staged
	o.mu.Unlock()
	if staged == nil || staged.ID == 0 {
		return models.Asset{}, ErrNoAssetSelected
	}

	if err := o.begin("save"); err != nil {
		return models.Asset{}, err
	}
	defer o.end("save")

	err := o.gw.UpdateAsset(ctx, staged.ID, gateway.AssetFields{
		Name:        staged.Name,
		Description: staged.Description,
	})
	if err != nil {
		return models.Asset{}, err
	}

	o.mu.Lock()
	for i, a := range o.assets {
		if a.ID == staged.ID {
			o.assets[i].Name = staged.Name
			o.assets[i].Description = staged.Description
		}
	}
	updated := *staged
	o.staged = nil
	o.mu.Unlock()
	return updated, nil
}

// DeleteAsset deletes by id and removes the record from the mirror. Admin
// only.
func (o *Orchestrator) DeleteAsset(ctx context.Context, sess *session.Session, id int64) error {
	if !sess.IsAdmin() {
		return ErrForbidden
	}
	if err := o.begin("delete"); err != nil {
		return err
	}
	defer o.end("delete")

	if err := o.gw.DeleteAsset(ctx, id); err != nil {
		return err
	}

	o.mu.Lock()
	for i, a := range o.assets {
		if a.ID == id {
			o.assets = append(o.assets[:i], o.assets[i+1:]...)
			break
		}
	}
	o.mu.Unlock()
	return nil
}

// UpdateProfile writes the caller's own profile fields. Admins are not
// allowed to maintain a profile; everyone else needs to be authenticated.
func (o *Orchestrator) UpdateProfile(ctx context.Context, sess *session.Session, profile models.Profile) error {
	if !sess.Authenticated() {
		return ErrNotAuthenticated
	}
	if sess.IsAdmin() {
		return ErrForbidden
	}
	if err := o.begin("profile"); err != nil {
		return err
	}
	defer o.end("profile")

	return o.gw.UpdateProfile(ctx, sess.Identity.ID, profile)
}

// Profile fetches the caller's own profile.
func (o *Orchestrator) Profile(ctx context.Context, sess *session.Session) (models.Profile, error) {
	if !sess.Authenticated() {
		return models.Profile{}, ErrNotAuthenticated
	}
	return o.gw.GetProfile(ctx, sess.Identity.ID)
}
