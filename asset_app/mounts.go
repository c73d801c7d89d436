package asset_app

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"docc_render/imageasset"

	"github.com/google/uuid"
)

const DefaultMaxMounts = 4096

var ErrMountNotFound = errors.New("mount not found")

// Mount is one rendered instance of an asset. Its fallback state is its own;
// other mounts of the same asset are unaffected by its load errors.
type Mount struct {
	ID      string
	AssetID string
	*imageasset.ImageAsset
}

type mountRegistry struct {
	mu    sync.Mutex
	max   int
	byID  map[string]*Mount
	order []string
}

func newMountRegistry(max int) *mountRegistry {
	return &mountRegistry{
		max:  max,
		byID: make(map[string]*Mount),
	}
}

func (r *mountRegistry) add(m *Mount) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[m.ID] = m
	r.order = append(r.order, m.ID)
	for r.max > 0 && len(r.order) > r.max {
		delete(r.byID, r.order[0])
		r.order = r.order[1:]
	}
}

func (r *mountRegistry) get(id string) (*Mount, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.byID[id]
	return m, ok
}

func (r *mountRegistry) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

// Mount creates a fresh rendering of the asset, starting in the primary state.
func (app *AssetApp) Mount(assetID string) (*Mount, error) {
	asset, err := app.assets.Get(assetID)
	if err != nil {
		return nil, err
	}

	id := uuid.New().String()
	opts := []imageasset.Option{imageasset.WithFallbackSrc(app.fallbackSrc)}
	if app.loadErrorPath != nil {
		opts = append(opts, imageasset.WithLoadErrorHook(app.loadErrorPath(id)))
	}
	img, err := imageasset.New(asset.Variants, asset.Alt, opts...)
	if err != nil {
		return nil, fmt.Errorf("asset %q: %w", asset.Identifier, err)
	}

	m := &Mount{ID: id, AssetID: asset.ID, ImageAsset: img}
	app.mounts.add(m)
	return m, nil
}

func (app *AssetApp) Lookup(mountID string) (*Mount, error) {
	m, ok := app.mounts.get(mountID)
	if !ok {
		return nil, fmt.Errorf("%s: %w", mountID, ErrMountNotFound)
	}
	return m, nil
}

// ReportLoadError records that the browser failed to load a mount's image.
// It returns the mount and whether it switched to its fallback with this call.
func (app *AssetApp) ReportLoadError(mountID string) (*Mount, bool, error) {
	m, err := app.Lookup(mountID)
	if err != nil {
		return nil, false, err
	}
	transitioned := m.HandleLoadError()
	if transitioned {
		log.Printf("level=info event=image_load_failed mount=%s asset=%s", m.ID, m.AssetID)
	}
	return m, transitioned, nil
}
