package transform

import (
	"fmt"
	"io"
)

// Engine executes a descriptor's transform list in order against a shared
// context. Warnings (unknown transformer names) go to the configured writer;
// the first transformer error aborts the remaining pipeline. Already-applied
// mutations are not rolled back, so callers must treat partial application
// as a possible outcome.
type Engine struct {
	registry *Registry
	out      io.Writer
}

// NewEngine builds an engine over a caller-owned registry. Warnings are
// written to out.
func NewEngine(registry *Registry, out io.Writer) *Engine {
	return &Engine{registry: registry, out: out}
}

// Run executes ctx.Descriptor's transforms sequentially. An entry naming an
// unregistered transformer is a logged skip, not a failure.
func (e *Engine) Run(ctx *Context) error {
	for _, spec := range ctx.Descriptor.Transforms {
		t, ok := e.registry.Get(spec.Name)
		if !ok {
			fmt.Fprintf(e.out, "Warning: unknown transformer %q, skipping\n", spec.Name)
			continue
		}

		if err := t.Run(ctx, Options(spec.Options)); err != nil {
			return fmt.Errorf("transformer %q: %w", spec.Name, err)
		}
	}
	return nil
}
