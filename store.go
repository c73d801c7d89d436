package main

import (
	"fmt"

	"docc_render/asset_app"
	"docc_render/config"
	"docc_render/manifest"
	"docc_render/mysql"
	"docc_render/sqlite"

	"github.com/spf13/cobra"
)

type repository interface {
	asset_app.AssetRepository
	Close() error
}

type storeFlags struct {
	store        string
	sqlitePath   string
	mysqlURI     string
	manifestPath string
}

func (f *storeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.store, "store", "", "Asset store: sqlite, mysql or manifest")
	cmd.Flags().StringVar(&f.sqlitePath, "sqlite", "", "SQLite database path")
	cmd.Flags().StringVar(&f.mysqlURI, "mysql-uri", "", "MySQL DSN, e.g. user:pass@tcp(127.0.0.1)/docc_render")
	cmd.Flags().StringVar(&f.manifestPath, "manifest", "", "Documentation render JSON file")
}

func (f *storeFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("store") {
		cfg.Store = f.store
	}
	if cmd.Flags().Changed("sqlite") {
		cfg.SQLitePath = f.sqlitePath
	}
	if cmd.Flags().Changed("mysql-uri") {
		cfg.MySQLURI = f.mysqlURI
	}
	if cmd.Flags().Changed("manifest") {
		cfg.ManifestPath = f.manifestPath
	}
}

func loadConfig(cmd *cobra.Command, flags *storeFlags) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}
	flags.apply(cmd, &cfg)
	return cfg, nil
}

func openRepository(cfg config.Config) (repository, error) {
	switch cfg.Store {
	case config.StoreSQLite:
		repo, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return repo, nil
	case config.StoreMySQL:
		repo := mysql.New(mysql.MySQLOptions{URI: cfg.MySQLURI})
		if err := repo.Init(); err != nil {
			return nil, err
		}
		return repo, nil
	case config.StoreManifest:
		repo, err := manifest.Open(cfg.ManifestPath)
		if err != nil {
			return nil, err
		}
		return repo, nil
	}
	return nil, fmt.Errorf("unknown store %q", cfg.Store)
}
