package transform

import (
	"github.com/stencil-labs/stencil/internal/template"
)

// Options is the free-form option bag of one transform list entry.
type Options map[string]interface{}

// Transformer is a named, independent file-mutation step.
type Transformer struct {
	Name        string
	Description string

	// FatalOnMissing documents the transformer's missing-precondition
	// policy: true means a missing precondition fails the pipeline, false
	// means the step silently no-ops. The policy is divergent per
	// transformer on purpose; keeping it an explicit field lets tests
	// assert it.
	FatalOnMissing bool

	Run func(ctx *Context, opts Options) error
}

// Registry is a mutable name-to-transformer mapping owned by the caller.
// It is seeded with the built-ins and extensible with custom transformers.
type Registry struct {
	transformers map[string]*Transformer
	names        []string
}

// NewRegistry returns a registry seeded with the six built-in transformers.
func NewRegistry() *Registry {
	r := &Registry{transformers: make(map[string]*Transformer)}
	for _, t := range builtins() {
		r.Register(t)
	}
	return r
}

// Register adds or replaces a transformer by name.
func (r *Registry) Register(t *Transformer) {
	if _, exists := r.transformers[t.Name]; !exists {
		r.names = append(r.names, t.Name)
	}
	r.transformers[t.Name] = t
}

// Get resolves a transformer by name.
func (r *Registry) Get(name string) (*Transformer, bool) {
	t, ok := r.transformers[name]
	return t, ok
}

// Names returns transformer names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// builtins constructs the built-in transformer set.
func builtins() []*Transformer {
	return []*Transformer{
		{
			Name:           template.TransformUpdatePackageJSON,
			Description:    "Rewrite package.json identity for the new project",
			FatalOnMissing: true,
			Run:            updatePackageJSON,
		},
		{
			Name:        template.TransformGenerateEnvFile,
			Description: "Materialize .env from .env.example with token substitution",
			Run:         generateEnvFile,
		},
		{
			Name:        template.TransformUpdateReadme,
			Description: "Personalize README placeholders and the template heading",
			Run:         updateReadme,
		},
		{
			Name:        template.TransformPruneFeatures,
			Description: "Remove files belonging to unselected features",
			Run:         pruneFeatures,
		},
		{
			Name:        template.TransformSetupWorkspace,
			Description: "Adapt the project to an enclosing workspace",
			Run:         setupWorkspace,
		},
		{
			Name:        template.TransformExtendTSConfig,
			Description: "Point tsconfig extends at the workspace base config",
			Run:         extendTSConfig,
		},
	}
}

// StructuralTransforms returns the workspace adaptation entries the caller
// prepends to a descriptor's transform list. They apply only when monorepo
// mode is active and the template's artifact declares monorepo support, and
// they always run before the template's own transforms so structural
// adaptation precedes cosmetic personalization.
func StructuralTransforms(mode Mode, cfg *template.Config) []template.TransformSpec {
	if mode != ModeMonorepo || cfg == nil || cfg.Monorepo == nil || !cfg.Monorepo.Enabled {
		return nil
	}
	return []template.TransformSpec{
		{Kind: "builtin", Name: template.TransformSetupWorkspace},
		{Kind: "builtin", Name: template.TransformExtendTSConfig},
	}
}
