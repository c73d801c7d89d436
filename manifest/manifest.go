// Package manifest serves image assets straight from a documentation render
// JSON file. Image references become assets; the file is reloaded when it
// changes on disk.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"docc_render/model"

	"github.com/google/uuid"
)

const imageReferenceType = "image"

type document struct {
	References map[string]reference `json:"references"`
}

type reference struct {
	Type       string          `json:"type"`
	Identifier string          `json:"identifier"`
	Alt        string          `json:"alt"`
	Variants   []model.Variant `json:"variants"`
}

// Repository is a read-only asset repository backed by a render JSON file.
type Repository struct {
	path string

	mu     sync.RWMutex
	assets []model.Asset
	byID   map[string]model.Asset
}

func Open(path string) (*Repository, error) {
	r := &Repository{path: path}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Repository) Path() string { return r.path }

// Reload re-reads the file. On error the previously loaded assets stay.
func (r *Repository) Reload() error {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}
	assets, err := Parse(data)
	if err != nil {
		return fmt.Errorf("%s: %w", r.path, err)
	}

	byID := make(map[string]model.Asset, len(assets))
	for _, a := range assets {
		byID[a.ID] = a
	}
	r.mu.Lock()
	r.assets = assets
	r.byID = byID
	r.mu.Unlock()
	return nil
}

// AssetID derives the stable id of a referenced image from its identifier.
func AssetID(identifier string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("doc-image:"+identifier)).String()
}

// Parse extracts the image references of a render JSON document, sorted by
// identifier.
func Parse(data []byte) ([]model.Asset, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode render json: %w", err)
	}

	assets := make([]model.Asset, 0, len(doc.References))
	for key, ref := range doc.References {
		if ref.Type != imageReferenceType {
			continue
		}
		identifier := ref.Identifier
		if identifier == "" {
			identifier = key
		}
		assets = append(assets, model.Asset{
			ID:         AssetID(identifier),
			Identifier: identifier,
			Alt:        ref.Alt,
			Variants:   ref.Variants,
		})
	}
	sort.Slice(assets, func(i, j int) bool { return assets[i].Identifier < assets[j].Identifier })
	return assets, nil
}

func (r *Repository) GetAll() ([]model.Asset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]model.Asset(nil), r.assets...), nil
}

func (r *Repository) Get(id string) (model.Asset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byID[id]
	if !ok {
		return model.Asset{}, fmt.Errorf("%s: %w", id, model.ErrAssetNotFound)
	}
	return a, nil
}

func (r *Repository) FindByIdentifier(identifier string) ([]model.Asset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	found := make([]model.Asset, 0)
	for _, a := range r.assets {
		if strings.Contains(a.Identifier, identifier) {
			found = append(found, a)
		}
	}
	return found, nil
}

func (r *Repository) Insert(*model.Asset) error { return model.ErrReadOnly }

func (r *Repository) Delete(string) error { return model.ErrReadOnly }

func (r *Repository) DeleteAll() error { return model.ErrReadOnly }

func (r *Repository) Close() error { return nil }
