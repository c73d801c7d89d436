package asset_app

import (
	"fmt"
	"io"
	"log"

	"docc_render/imageasset"
	"docc_render/markup"
	"docc_render/model"

	"github.com/google/uuid"
)

type AssetRepository interface {
	GetAll() ([]model.Asset, error)
	Get(id string) (model.Asset, error)
	Insert(asset *model.Asset) error
	Delete(id string) error
	DeleteAll() error
	FindByIdentifier(identifier string) ([]model.Asset, error)
}

type Option func(*AssetApp)

// WithMaxMounts bounds the number of live mounts; the oldest is forgotten
// first.
func WithMaxMounts(n int) Option {
	return func(a *AssetApp) { a.mounts.max = n }
}

func WithFallbackSrc(src string) Option {
	return func(a *AssetApp) { a.fallbackSrc = src }
}

// WithLoadErrorPath sets how the load error endpoint of a mount is named in
// rendered markup.
func WithLoadErrorPath(path func(mountID string) string) Option {
	return func(a *AssetApp) { a.loadErrorPath = path }
}

type AssetApp struct {
	assets        AssetRepository
	mounts        *mountRegistry
	fallbackSrc   string
	loadErrorPath func(string) string
}

func New(assets AssetRepository, opts ...Option) *AssetApp {
	app := &AssetApp{
		assets: assets,
		mounts: newMountRegistry(DefaultMaxMounts),
	}
	for _, opt := range opts {
		opt(app)
	}
	return app
}

func (app *AssetApp) GetAll() ([]model.Asset, error) {
	return app.assets.GetAll()
}

func (app *AssetApp) Get(id string) (model.Asset, error) {
	return app.assets.Get(id)
}

func (app *AssetApp) FindByIdentifier(identifier string) ([]model.Asset, error) {
	return app.assets.FindByIdentifier(identifier)
}

// Add validates the asset's variants and stores it under a new id when it
// has none.
func (app *AssetApp) Add(asset *model.Asset) error {
	if err := validate(asset); err != nil {
		return err
	}
	return app.insert(asset)
}

func validate(asset *model.Asset) error {
	if _, err := imageasset.Select(asset.Variants, asset.Alt); err != nil {
		return fmt.Errorf("asset %q: %w", asset.Identifier, err)
	}
	return nil
}

func (app *AssetApp) insert(asset *model.Asset) error {
	if asset.ID == "" {
		asset.ID = uuid.New().String()
	}
	return app.assets.Insert(asset)
}

func (app *AssetApp) Delete(id string) error {
	return app.assets.Delete(id)
}

func (app *AssetApp) DeleteAll() error {
	return app.assets.DeleteAll()
}

// Import stores every responsive image found in an HTML document. Nothing is
// stored unless all of them are valid; if the store fails part way, the
// assets already inserted are deleted again.
func (app *AssetApp) Import(r io.Reader) ([]model.Asset, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	doc, err := markup.Parse(string(body))
	if err != nil {
		return nil, err
	}
	assets, err := markup.ExtractAssets(doc)
	if err != nil {
		return nil, fmt.Errorf("extract images: %w", err)
	}
	for i := range assets {
		if err := validate(&assets[i]); err != nil {
			return nil, err
		}
	}
	for i := range assets {
		if err := app.insert(&assets[i]); err != nil {
			app.rollback(assets[:i])
			return nil, fmt.Errorf("store asset %q: %w", assets[i].Identifier, err)
		}
	}
	log.Printf("level=info event=assets_imported count=%d", len(assets))
	return assets, nil
}

func (app *AssetApp) rollback(stored []model.Asset) {
	for _, a := range stored {
		if err := app.assets.Delete(a.ID); err != nil {
			log.Printf("level=error event=import_rollback_failed asset=%s error=%q", a.ID, err)
		}
	}
}
