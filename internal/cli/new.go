package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stencil-labs/stencil/internal/catalog"
	"github.com/stencil-labs/stencil/internal/config"
	"github.com/stencil-labs/stencil/internal/prompt"
	"github.com/stencil-labs/stencil/internal/scaffold"
	"github.com/stencil-labs/stencil/internal/template"
)

var namePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)

var (
	newBranch    string
	newOutputDir string
	newWorkspace bool
	newYes       bool
)

func init() {
	newCmd.Flags().StringVar(&newBranch, "branch", "", "Git branch to fetch the template from")
	newCmd.Flags().StringVar(&newOutputDir, "output-dir", "", "Output directory (default: ./<name>)")
	newCmd.Flags().BoolVar(&newWorkspace, "workspace", false, "Force monorepo mode even without a workspace marker")
	newCmd.Flags().BoolVarP(&newYes, "yes", "y", false, "Skip prompts and accept defaults")
	rootCmd.AddCommand(newCmd)
}

var newCmd = &cobra.Command{
	Use:   "new <template> [name]",
	Short: "Create a project from a template",
	Long: `Create a new project from a template.

The template argument is a catalog or built-in template ID, or a git
repository ("owner/repo" shorthand or a full URL).

Examples:
  stencil new react-vite my-app
  stencil new acme/api-starter billing-service --branch next
  stencil new next-app dashboard --workspace`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runNew,
}

func runNew(cmd *cobra.Command, args []string) error {
	config.Load()

	desc, err := resolveDescriptor(args[0])
	if err != nil {
		return err
	}
	if newBranch != "" {
		desc.Source.Branch = newBranch
	}

	name, err := resolveProjectName(cmd, args)
	if err != nil {
		return err
	}
	if err := validateName(name); err != nil {
		return err
	}

	targetDir := newOutputDir
	if targetDir == "" {
		targetDir = filepath.Join(".", name)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Creating %s from %s...\n", name, desc.Source.Repo)

	result, err := scaffold.Run(scaffold.Options{
		Descriptor:  desc,
		ProjectName: name,
		TargetDir:   targetDir,
		Workspace:   newWorkspace,
		Yes:         newYes,
		In:          cmd.InOrStdin(),
		Out:         cmd.OutOrStdout(),
	})
	if errors.Is(err, prompt.ErrCanceled) {
		fmt.Fprintln(cmd.OutOrStdout(), "Canceled.")
		return nil
	}
	if err != nil {
		return err
	}

	printNewResult(cmd, name, result)
	return nil
}

// resolveDescriptor turns the template argument into a descriptor: catalog
// ID first, then the built-in set, then a direct git source.
func resolveDescriptor(arg string) (template.Descriptor, error) {
	if index, err := catalog.NewClient(config.Dir()).Load(false); err == nil {
		if entry, ok := index.Find(arg); ok {
			if !catalog.Compatible(entry, buildVersion) {
				return template.Descriptor{}, fmt.Errorf(
					"template %q requires CLI version %s or newer (current: %s)",
					entry.ID, entry.MinCLIVersion, buildVersion)
			}
			return catalog.Descriptor(entry), nil
		}
	}

	if desc, ok := template.Lookup(arg); ok {
		return desc, nil
	}

	// "owner/repo" shorthand or a full git URL.
	if strings.Contains(arg, "/") {
		return template.Descriptor{
			ID:     arg,
			Name:   arg,
			Source: template.Source{Repo: arg},
		}, nil
	}

	return template.Descriptor{}, fmt.Errorf(
		"unknown template %q: run 'stencil list' to see available templates", arg)
}

func resolveProjectName(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 2 {
		return args[1], nil
	}
	if newYes {
		return "", fmt.Errorf("project name required with --yes")
	}

	asker := prompt.NewAsker(cmd.InOrStdin(), cmd.OutOrStdout())
	name, err := asker.AskText("Project name", "", validateName)
	if err != nil {
		return "", err
	}
	return name, nil
}

func validateName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("invalid project name %q: must match pattern [a-z0-9][a-z0-9._-]*", name)
	}
	return nil
}

func printNewResult(cmd *cobra.Command, name string, result *scaffold.Result) {
	out := cmd.OutOrStdout()

	rel, err := filepath.Rel(".", result.ProjectDir)
	if err != nil {
		rel = result.ProjectDir
	}
	fmt.Fprintf(out, "Created %s at %s/ (%s mode)\n", name, rel, result.Mode)

	if len(result.Warnings) > 0 {
		fmt.Fprintln(out, "\nWarnings:")
		for _, w := range result.Warnings {
			fmt.Fprintf(out, "  - %s\n", w)
		}
	}

	pm := result.PackageManager
	if pm == "" {
		pm = config.Get(config.KeyPackageManager)
	}
	if pm == "" {
		pm = "npm"
	}

	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintf(out, "  cd %s\n", rel)
	if installWanted(result) {
		fmt.Fprintf(out, "  %s install\n", pm)
	}
	if gitInitWanted(result) {
		fmt.Fprintln(out, "  git init")
	}

	if result.PostActions != nil {
		for _, msg := range result.PostActions.Messages {
			fmt.Fprintf(out, "  %s\n", msg)
		}
	}
}

func installWanted(result *scaffold.Result) bool {
	if result.PostActions != nil && result.PostActions.Install != nil {
		return *result.PostActions.Install
	}
	return config.GetBool(config.KeyInstall, true)
}

// gitInitWanted suppresses the git hint inside a monorepo, which already has
// a repository at its root.
func gitInitWanted(result *scaffold.Result) bool {
	if result.Mode == "monorepo" {
		return false
	}
	if result.PostActions != nil && result.PostActions.GitInit != nil {
		return *result.PostActions.GitInit
	}
	return config.GetBool(config.KeyGitInit, true)
}
