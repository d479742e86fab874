package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/stencil-labs/stencil/internal/catalog"
	"github.com/stencil-labs/stencil/internal/config"
	"github.com/stencil-labs/stencil/internal/template"
)

var (
	listJSON    bool
	listRefresh bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available templates",
	Long: `List templates from the remote catalog plus the built-in set.

The catalog index is cached locally; pass --refresh to force a fetch.`,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().BoolVar(&listRefresh, "refresh", false, "Fetch the catalog index even if the cache is fresh")
	rootCmd.AddCommand(listCmd)
}

// listEntry represents one template for display.
type listEntry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Stack       string `json:"stack,omitempty"`
	Repo        string `json:"repo"`
	Compatible  bool   `json:"compatible"`
	MinVersion  string `json:"minCliVersion,omitempty"`
	FromCatalog bool   `json:"fromCatalog"`
}

func runList(cmd *cobra.Command, args []string) error {
	entries := builtinEntries()

	index, err := catalog.NewClient(config.Dir()).Load(listRefresh)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: catalog unavailable (%v); showing built-in templates only.\n", err)
	} else {
		entries = append(entries, catalogEntries(index)...)
	}

	if listJSON {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTACK\tREPO")
	for _, e := range entries {
		stack := e.Stack
		if stack == "" {
			stack = "-"
		}
		note := ""
		if !e.Compatible {
			note = fmt.Sprintf(" (requires CLI >= %s)", e.MinVersion)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s%s\n", e.ID, e.Name, stack, e.Repo, note)
	}
	return w.Flush()
}

func builtinEntries() []listEntry {
	var entries []listEntry
	for _, d := range template.Builtins() {
		entries = append(entries, listEntry{
			ID:         d.ID,
			Name:       d.Name,
			Stack:      d.Stack,
			Repo:       d.Source.Repo,
			Compatible: true,
		})
	}
	return entries
}

func catalogEntries(index *catalog.Index) []listEntry {
	var entries []listEntry
	for _, e := range index.Templates {
		if _, builtin := template.Lookup(e.ID); builtin {
			continue
		}
		entries = append(entries, listEntry{
			ID:          e.ID,
			Name:        e.Name,
			Stack:       e.Stack,
			Repo:        e.Repo,
			Compatible:  catalog.Compatible(e, buildVersion),
			MinVersion:  e.MinCLIVersion,
			FromCatalog: true,
		})
	}
	return entries
}
