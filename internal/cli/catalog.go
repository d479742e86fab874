package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/stencil-labs/stencil/internal/catalog"
	"github.com/stencil-labs/stencil/internal/config"
)

func init() {
	catalogCmd.AddCommand(catalogUpdateCmd)
	catalogCmd.AddCommand(catalogStatusCmd)
	rootCmd.AddCommand(catalogCmd)
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the template catalog",
	Long: `Manage the remote template index cached at ~/.stencil/.

The index lists templates published by the stencil project and is
refreshed automatically once it is more than a day old.`,
}

var catalogUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Fetch the latest catalog index",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := catalog.NewClient(config.Dir())
		fmt.Fprintf(cmd.OutOrStdout(), "Fetching %s...\n", client.URL)

		index, err := client.Refresh()
		if err != nil {
			return fmt.Errorf("updating catalog: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Catalog updated: %d templates available.\n", len(index.Templates))
		return nil
	},
}

var catalogStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show catalog cache status",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := catalog.NewClient(config.Dir())
		fmt.Fprintf(cmd.OutOrStdout(), "Index URL:    %s\n", client.URL)
		fmt.Fprintf(cmd.OutOrStdout(), "Cache path:   %s\n", config.Dir())

		cache, err := catalog.LoadCache(config.Dir())
		if err != nil {
			return fmt.Errorf("reading catalog cache: %w", err)
		}
		if cache == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Status:       not cached")
			fmt.Fprintln(cmd.OutOrStdout(), "\nRun 'stencil catalog update' to fetch the index.")
			return nil
		}

		age := time.Since(cache.FetchedAt).Truncate(time.Minute)
		fmt.Fprintf(cmd.OutOrStdout(), "Last fetched: %s (%s ago)\n", cache.FetchedAt.Format(time.RFC3339), age)
		fmt.Fprintf(cmd.OutOrStdout(), "Templates:    %d\n", len(cache.Index.Templates))

		if catalog.IsCacheStale(cache, catalog.DefaultTTL) {
			fmt.Fprintln(cmd.OutOrStdout(), "Status:       stale (run 'stencil catalog update')")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "Status:       up to date")
		}
		return nil
	},
}
