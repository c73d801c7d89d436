package main

import (
	"os"

	"github.com/spf13/cobra"
)

var configPath string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "docc-render",
		Short: "Render responsive documentation images",
		Long: `Render documentation image assets as responsive <picture> markup.

Each asset is a list of variants tagged with a pixel density (1x, 2x, 3x)
and optionally an appearance (light, dark). Assets are stored in SQLite,
MySQL, or read from a documentation render JSON file.

Examples:
  docc-render serve --store manifest --manifest docs/data/index.json
  docc-render import page.html
  docc-render render overview.png --fallback`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")

	root.AddCommand(newServeCmd())
	root.AddCommand(newRenderCmd())
	root.AddCommand(newImportCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
