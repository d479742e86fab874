package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stencil-labs/stencil/internal/catalog"
	"github.com/stencil-labs/stencil/internal/config"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   "stencil",
	Short: "Scaffold JavaScript and TypeScript projects from templates",
	Long: `Stencil creates new projects from remote git templates, adapting each one
to its destination: standalone directories get a clean standalone setup,
and projects created inside a pnpm/npm/yarn workspace are wired into the
monorepo automatically.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Skip the freshness notice for commands that manage the catalog
		// themselves.
		name := cmd.Name()
		if name == "catalog" || name == "update" || name == "status" || name == "version" {
			return
		}

		// Non-blocking staleness notice from the local cache; no network.
		cache, err := catalog.LoadCache(config.Dir())
		if err != nil || cache == nil {
			return
		}
		if catalog.IsCacheStale(cache, catalog.DefaultTTL) {
			fmt.Fprintln(os.Stderr, "Template catalog is stale. Run 'stencil catalog update' to refresh.")
		}
	},
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}
