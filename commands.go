package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"docc_render/asset_app"
	"docc_render/manifest"
	"docc_render/model"
	"docc_render/server"

	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var (
		stores      storeFlags
		addr        string
		fallbackSrc string
		maxMounts   int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve image assets over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, &stores)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("fallback-src") {
				cfg.FallbackSrc = fallbackSrc
			}
			if cmd.Flags().Changed("max-mounts") {
				cfg.MaxMounts = maxMounts
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			repo, err := openRepository(cfg)
			if err != nil {
				return err
			}
			defer repo.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if m, ok := repo.(*manifest.Repository); ok && cfg.WatchManifest {
				go func() {
					if err := m.Watch(ctx, manifest.WatchOptions{}); err != nil {
						log.Printf("level=warn event=manifest_watch_stopped path=%q error=%q", m.Path(), err)
					}
				}()
			}

			app := asset_app.New(repo,
				asset_app.WithMaxMounts(cfg.MaxMounts),
				asset_app.WithFallbackSrc(cfg.FallbackSrc),
				asset_app.WithLoadErrorPath(server.LoadErrorPath),
			)
			log.Printf("level=info event=store_opened store=%s", cfg.Store)
			return server.New(app, cfg.Addr).Run(ctx, cfg.ShutdownTimeout)
		},
	}

	stores.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default :8080)")
	cmd.Flags().StringVar(&fallbackSrc, "fallback-src", "", "Placeholder image shown after a load failure")
	cmd.Flags().IntVar(&maxMounts, "max-mounts", 0, "Maximum number of live mounts")
	return cmd
}

func newRenderCmd() *cobra.Command {
	var (
		stores   storeFlags
		fallback bool
	)

	cmd := &cobra.Command{
		Use:   "render <asset-id|identifier>",
		Short: "Print the markup of an image asset",
		Long: `Print the responsive markup of one image asset.

With --fallback the markup shown after a load failure is printed instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, &stores)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			repo, err := openRepository(cfg)
			if err != nil {
				return err
			}
			defer repo.Close()

			app := asset_app.New(repo, asset_app.WithFallbackSrc(cfg.FallbackSrc))
			asset, err := findAsset(app, args[0])
			if err != nil {
				return err
			}
			m, err := app.Mount(asset.ID)
			if err != nil {
				return err
			}
			if fallback {
				if _, _, err := app.ReportLoadError(m.ID); err != nil {
					return err
				}
			}
			if err := m.Render(cmd.OutOrStdout()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}

	stores.register(cmd)
	cmd.Flags().BoolVar(&fallback, "fallback", false, "Render the load failure fallback")
	return cmd
}

// findAsset resolves an asset by id, then by exact identifier.
func findAsset(app *asset_app.AssetApp, key string) (model.Asset, error) {
	asset, err := app.Get(key)
	if err == nil {
		return asset, nil
	}
	if !errors.Is(err, model.ErrAssetNotFound) {
		return model.Asset{}, err
	}
	candidates, err := app.FindByIdentifier(key)
	if err != nil {
		return model.Asset{}, err
	}
	for _, a := range candidates {
		if a.Identifier == key {
			return a, nil
		}
	}
	return model.Asset{}, fmt.Errorf("%s: %w", key, model.ErrAssetNotFound)
}

func newImportCmd() *cobra.Command {
	var stores storeFlags

	cmd := &cobra.Command{
		Use:   "import <file.html|->",
		Short: "Import the responsive images of an HTML page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, &stores)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			repo, err := openRepository(cfg)
			if err != nil {
				return err
			}
			defer repo.Close()

			var in io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open %s: %w", args[0], err)
				}
				defer f.Close()
				in = f
			}

			assets, err := asset_app.New(repo).Import(in)
			if err != nil {
				return err
			}
			for _, a := range assets {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d variants\n", a.ID, a.Identifier, len(a.Variants))
			}
			return nil
		},
	}

	stores.register(cmd)
	return cmd
}
