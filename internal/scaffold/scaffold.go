package scaffold

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/stencil-labs/stencil/internal/config"
	"github.com/stencil-labs/stencil/internal/fetch"
	"github.com/stencil-labs/stencil/internal/monorepo"
	"github.com/stencil-labs/stencil/internal/prompt"
	"github.com/stencil-labs/stencil/internal/template"
	"github.com/stencil-labs/stencil/internal/transform"
)

// FetchFunc populates targetDir with a template's files.
type FetchFunc func(source template.Source, targetDir string) error

// Options configures one scaffold run.
type Options struct {
	Descriptor  template.Descriptor
	ProjectName string
	TargetDir   string

	// Workspace forces monorepo mode even without an enclosing marker.
	Workspace bool

	// Yes skips all prompts and takes defaults.
	Yes bool

	In  io.Reader
	Out io.Writer

	// Registry defaults to the built-in set when nil.
	Registry *transform.Registry

	// Fetch defaults to fetch.Clone when nil.
	Fetch FetchFunc
}

// Result reports what a scaffold run produced.
type Result struct {
	ProjectDir     string
	Mode           transform.Mode
	PackageManager string
	Warnings       []string
	PostActions    *template.PostActions
}

// Run executes one scaffold operation. A prompt cancellation surfaces as
// prompt.ErrCanceled and means the user backed out, not that the run failed.
func Run(opts Options) (*Result, error) {
	projectDir, err := filepath.Abs(opts.TargetDir)
	if err != nil {
		return nil, fmt.Errorf("resolving target directory: %w", err)
	}

	fetchFn := opts.Fetch
	if fetchFn == nil {
		fetchFn = fetch.Clone
	}
	registry := opts.Registry
	if registry == nil {
		registry = transform.NewRegistry()
	}

	// Workspace facts are computed once, before any mutation, from the
	// directory the project will land in.
	detected := monorepo.Detect(filepath.Dir(projectDir))
	mode := transform.ModeStandalone
	var monoCtx *monorepo.Context
	if detected.Found {
		monoCtx = &detected
	}
	if opts.Workspace || detected.Found {
		mode = transform.ModeMonorepo
	}

	if err := fetchFn(opts.Descriptor.Source, projectDir); err != nil {
		return nil, fmt.Errorf("fetching template: %w", err)
	}

	result := &Result{ProjectDir: projectDir, Mode: mode}
	if detected.Found {
		result.PackageManager = detected.PackageManager
	}

	cfg, warnings := template.LoadConfig(projectDir)
	result.Warnings = append(result.Warnings, warnings...)

	desc := opts.Descriptor
	switch {
	case cfg != nil:
		desc = template.Merge(desc, cfg)
	case len(desc.Transforms) == 0:
		// No artifact and no registry defaults: the minimal pipeline
		// still corrects package identity.
		desc = template.Fallback(desc.Source)
	}

	answers, err := collectAnswers(desc.Prompts, opts)
	if err != nil {
		return nil, err
	}

	// Structural workspace adaptation always precedes the template's own
	// transforms.
	desc.Transforms = append(transform.StructuralTransforms(mode, cfg), desc.Transforms...)

	ctx := &transform.Context{
		ProjectDir:  projectDir,
		ProjectName: opts.ProjectName,
		Answers:     answers,
		Descriptor:  &desc,
		Mode:        mode,
		Monorepo:    monoCtx,
		Config:      cfg,
	}

	if err := transform.NewEngine(registry, opts.Out).Run(ctx); err != nil {
		return nil, err
	}

	template.CleanupArtifacts(projectDir)

	result.PostActions = desc.PostActions
	return result, nil
}

// collectAnswers gathers the answer map: preference-store values first, then
// the template's prompts (or their defaults with --yes).
func collectAnswers(prompts []template.PromptSpec, opts Options) (map[string]interface{}, error) {
	answers := make(map[string]interface{})

	// Opportunistic pre-fill from the preference store.
	if author := config.Get(config.KeyAuthor); author != "" {
		answers["author"] = author
	}
	if email := config.Get(config.KeyEmail); email != "" {
		answers["email"] = email
	}

	if opts.Yes {
		for _, spec := range prompts {
			if spec.Default != nil {
				answers[spec.Name] = spec.Default
			}
		}
		return answers, nil
	}

	asker := prompt.NewAsker(opts.In, opts.Out)
	for _, spec := range prompts {
		// A stored preference answers the prompt without asking.
		if _, prefilled := answers[spec.Name]; prefilled {
			continue
		}
		answer, err := asker.Ask(spec)
		if err != nil {
			return nil, err
		}
		answers[spec.Name] = answer
	}
	return answers, nil
}
