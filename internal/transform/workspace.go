package transform

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultWorkspacePrefix scopes package names inside a workspace.
	DefaultWorkspacePrefix = "@repo"

	// workspaceVersionMarker makes a dependency resolve to its
	// workspace-local package.
	workspaceVersionMarker = "workspace:*"
)

// setupWorkspace adapts a scaffolded project to an enclosing workspace:
// configured paths are removed, the manifest name is scoped under the
// workspace prefix, and declared workspace dependencies are rewired to the
// workspace-local version marker. Outside monorepo mode, or without a
// detected workspace or a monorepo config block, the whole step is a silent
// no-op.
func setupWorkspace(ctx *Context, opts Options) error {
	if ctx.Mode != ModeMonorepo || ctx.Monorepo == nil || !ctx.Monorepo.Found {
		return nil
	}
	if ctx.Config == nil || ctx.Config.Monorepo == nil {
		return nil
	}
	block := ctx.Config.Monorepo

	for _, rel := range block.RemoveFiles {
		target, err := resolveInside(ctx.ProjectDir, rel)
		if err != nil {
			return err
		}
		if err := os.RemoveAll(target); err != nil {
			return fmt.Errorf("removing %s: %w", rel, err)
		}
	}

	pkgPath := filepath.Join(ctx.ProjectDir, "package.json")
	doc, err := readJSONFile(pkgPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	prefix := stringOption(opts, "prefix", DefaultWorkspacePrefix)
	doc["name"] = prefix + "/" + ctx.ProjectName

	for _, section := range []string{"dependencies", "devDependencies"} {
		deps, ok := doc[section].(map[string]interface{})
		if !ok {
			continue
		}
		for _, name := range block.WorkspaceDeps {
			if _, declared := deps[name]; declared {
				deps[name] = workspaceVersionMarker
			}
		}
	}

	return writeJSONFile(pkgPath, doc)
}
