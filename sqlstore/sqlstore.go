// Package sqlstore persists image assets and their variants through
// database/sql. The mysql and sqlite packages open the connection and pick
// the dialect; the queries are shared.
package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"docc_render/model"
)

type Dialect struct {
	Name      string
	Schema    []string
	DeleteAll []string
}

var MySQL = Dialect{
	Name: "mysql",
	Schema: []string{
		`CREATE TABLE IF NOT EXISTS assets (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			identifier VARCHAR(255) NOT NULL,
			alt TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS asset_variants (
			asset_id VARCHAR(36) NOT NULL,
			position INT NOT NULL,
			url TEXT NOT NULL,
			traits VARCHAR(255) NOT NULL,
			width INT NOT NULL,
			height INT NOT NULL,
			PRIMARY KEY (asset_id, position)
		)`,
	},
	DeleteAll: []string{"TRUNCATE TABLE asset_variants", "TRUNCATE TABLE assets"},
}

var SQLite = Dialect{
	Name: "sqlite",
	Schema: []string{
		`CREATE TABLE IF NOT EXISTS assets (
			id TEXT NOT NULL PRIMARY KEY,
			identifier TEXT NOT NULL,
			alt TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS asset_variants (
			asset_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			url TEXT NOT NULL,
			traits TEXT NOT NULL DEFAULT '',
			width INTEGER NOT NULL DEFAULT 0,
			height INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (asset_id, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_assets_identifier ON assets(identifier)`,
	},
	DeleteAll: []string{"DELETE FROM asset_variants", "DELETE FROM assets"},
}

type Store struct {
	db      *sql.DB
	dialect Dialect
}

func New(db *sql.DB, dialect Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

func (s *Store) InitSchema() error {
	for _, stmt := range s.dialect.Schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("%s schema: %w", s.dialect.Name, err)
		}
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) GetAll() ([]model.Asset, error) {
	return s.query("SELECT id, identifier, alt FROM assets ORDER BY identifier, id")
}

func (s *Store) Get(id string) (model.Asset, error) {
	assets, err := s.query("SELECT id, identifier, alt FROM assets WHERE id = ?", id)
	if err != nil {
		return model.Asset{}, err
	}
	if len(assets) == 0 {
		return model.Asset{}, fmt.Errorf("%s: %w", id, model.ErrAssetNotFound)
	}
	return assets[0], nil
}

func (s *Store) FindByIdentifier(identifier string) ([]model.Asset, error) {
	return s.query("SELECT id, identifier, alt FROM assets WHERE identifier LIKE ? ORDER BY identifier, id", "%"+identifier+"%")
}

func (s *Store) Insert(asset *model.Asset) error {
	if asset.ID == "" {
		return errors.New("asset id is required")
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("%s begin: %w", s.dialect.Name, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("INSERT INTO assets(id, identifier, alt) VALUES (?, ?, ?)",
		asset.ID, asset.Identifier, asset.Alt); err != nil {
		return fmt.Errorf("%s insert asset: %w", s.dialect.Name, err)
	}
	for i, v := range asset.Variants {
		if _, err := tx.Exec("INSERT INTO asset_variants(asset_id, position, url, traits, width, height) VALUES (?, ?, ?, ?, ?, ?)",
			asset.ID, i, v.URL, strings.Join(v.Traits, ","), v.Size.Width, v.Size.Height); err != nil {
			return fmt.Errorf("%s insert variant %d: %w", s.dialect.Name, i, err)
		}
	}
	return tx.Commit()
}

func (s *Store) Delete(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("%s begin: %w", s.dialect.Name, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM asset_variants WHERE asset_id = ?", id); err != nil {
		return fmt.Errorf("%s delete variants: %w", s.dialect.Name, err)
	}
	res, err := tx.Exec("DELETE FROM assets WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("%s delete asset: %w", s.dialect.Name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%s: %w", id, model.ErrAssetNotFound)
	}
	return tx.Commit()
}

func (s *Store) DeleteAll() error {
	for _, stmt := range s.dialect.DeleteAll {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("%s delete all: %w", s.dialect.Name, err)
		}
	}
	return nil
}

func (s *Store) query(query string, args ...any) ([]model.Asset, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s query failure: %w", s.dialect.Name, err)
	}
	defer rows.Close()

	assets := make([]model.Asset, 0)
	for rows.Next() {
		var a model.Asset
		if err := rows.Scan(&a.ID, &a.Identifier, &a.Alt); err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		assets = append(assets, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assets: %w", err)
	}
	// Release the connection before the per-asset variant queries.
	rows.Close()

	for i := range assets {
		variants, err := s.variants(assets[i].ID)
		if err != nil {
			return nil, err
		}
		assets[i].Variants = variants
	}
	return assets, nil
}

func (s *Store) variants(assetID string) ([]model.Variant, error) {
	rows, err := s.db.Query("SELECT url, traits, width, height FROM asset_variants WHERE asset_id = ? ORDER BY position", assetID)
	if err != nil {
		return nil, fmt.Errorf("%s query failure: %w", s.dialect.Name, err)
	}
	defer rows.Close()

	var variants []model.Variant
	for rows.Next() {
		var v model.Variant
		var traits string
		if err := rows.Scan(&v.URL, &traits, &v.Size.Width, &v.Size.Height); err != nil {
			return nil, fmt.Errorf("scan variant: %w", err)
		}
		if traits != "" {
			v.Traits = strings.Split(traits, ",")
		}
		variants = append(variants, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating variants: %w", err)
	}
	return variants, nil
}
