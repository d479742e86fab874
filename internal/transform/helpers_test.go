package transform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stencil-labs/stencil/internal/monorepo"
	"github.com/stencil-labs/stencil/internal/template"
)

// writeFile creates a file with parents as needed.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// readFile reads a file or fails the test.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

// exists reports whether a path exists.
func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// newContext builds a standalone-mode context over dir.
func newContext(dir, name string) *Context {
	return &Context{
		ProjectDir:  dir,
		ProjectName: name,
		Answers:     map[string]interface{}{},
		Descriptor:  &template.Descriptor{},
		Mode:        ModeStandalone,
	}
}

// newMonorepoContext builds a monorepo-mode context with a detected
// workspace at root and the given monorepo config block.
func newMonorepoContext(dir, name, root string, block *template.MonorepoBlock) *Context {
	ctx := newContext(dir, name)
	ctx.Mode = ModeMonorepo
	ctx.Monorepo = &monorepo.Context{
		Found:          true,
		Root:           root,
		PackageManager: "pnpm",
	}
	ctx.Config = &template.Config{
		Version:  template.SchemaVersion,
		Template: template.TemplateMeta{ID: "t", Name: "T"},
		Monorepo: block,
	}
	return ctx
}
