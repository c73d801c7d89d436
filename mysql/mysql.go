package mysql

import (
	"database/sql"
	"fmt"

	"docc_render/model"
	"docc_render/sqlstore"

	driver "github.com/go-sql-driver/mysql"
)

type MySQLRepository struct {
	opts  MySQLOptions
	store *sqlstore.Store
}

type MySQLOptions struct {
	URI string
}

func New(opts MySQLOptions) *MySQLRepository {
	return &MySQLRepository{
		opts:  opts,
		store: nil,
	}
}

// Init opens the connection and creates the asset tables if needed.
func (r *MySQLRepository) Init() error {
	cfg, err := driver.ParseDSN(r.opts.URI)
	if err != nil {
		return fmt.Errorf("mysql dsn: %w", err)
	}
	// traits and urls are stored as text; keep the connection in UTF-8.
	if cfg.Params == nil {
		cfg.Params = map[string]string{}
	}
	if _, ok := cfg.Params["charset"]; !ok {
		cfg.Params["charset"] = "utf8mb4"
	}

	client, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return fmt.Errorf("mysql open: %w", err)
	}
	store := sqlstore.New(client, sqlstore.MySQL)
	if err := store.InitSchema(); err != nil {
		client.Close()
		return err
	}
	r.store = store
	return nil
}

func (r *MySQLRepository) Close() error {
	if r.store == nil {
		return nil
	}
	return r.store.Close()
}

func (r *MySQLRepository) ready() error {
	if r.store == nil {
		return fmt.Errorf("mysql repository is not initialized")
	}
	return nil
}

func (r *MySQLRepository) GetAll() ([]model.Asset, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	return r.store.GetAll()
}

func (r *MySQLRepository) Get(id string) (model.Asset, error) {
	if err := r.ready(); err != nil {
		return model.Asset{}, err
	}
	return r.store.Get(id)
}

func (r *MySQLRepository) Insert(asset *model.Asset) error {
	if err := r.ready(); err != nil {
		return err
	}
	return r.store.Insert(asset)
}

func (r *MySQLRepository) Delete(id string) error {
	if err := r.ready(); err != nil {
		return err
	}
	return r.store.Delete(id)
}

func (r *MySQLRepository) DeleteAll() error {
	if err := r.ready(); err != nil {
		return err
	}
	return r.store.DeleteAll()
}

func (r *MySQLRepository) FindByIdentifier(identifier string) ([]model.Asset, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	return r.store.FindByIdentifier(identifier)
}
