package monorepo

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"
)

const (
	pnpmWorkspaceFile = "pnpm-workspace.yaml"
	tsconfigBaseFile  = "tsconfig.base.json"

	// DefaultPackageManager is used when no lockfile or packageManager
	// field identifies one.
	DefaultPackageManager = "npm"
)

// lockfiles maps lockfile names to package managers, in priority order.
var lockfiles = []struct {
	file    string
	manager string
}{
	{"pnpm-lock.yaml", "pnpm"},
	{"yarn.lock", "yarn"},
	{"package-lock.json", "npm"},
}

// Context holds the facts detected about an enclosing workspace.
// Computed once per scaffold invocation and never mutated afterward.
type Context struct {
	Found          bool   // true when a workspace root marker was located
	Root           string // directory containing the marker
	MarkerPath     string // full path to the marker file
	WorkspaceFile  string // pnpm-workspace.yaml path, empty for other managers
	PackageManager string // "pnpm", "yarn", or "npm"
	TSConfigBase   string // shared tsconfig.base.json path, empty if absent

	// Globs lists the workspace package globs declared at the root
	// (pnpm-workspace.yaml "packages" or package.json "workspaces").
	Globs []string
}

// Detect walks upward from startDir looking for a workspace root marker.
// It never returns an error: a missing marker yields a Context with
// Found=false, and unreadable intermediate files are treated as absent.
func Detect(startDir string) Context {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return Context{}
	}

	for {
		if marker, ok := findMarker(dir); ok {
			return buildContext(dir, marker)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return Context{}
		}
		dir = parent
	}
}

// findMarker checks dir for a workspace root marker. The pnpm workspace file
// wins over a package.json workspaces field when both are present.
func findMarker(dir string) (string, bool) {
	pnpm := filepath.Join(dir, pnpmWorkspaceFile)
	if fileExists(pnpm) {
		return pnpm, true
	}

	pkg := filepath.Join(dir, "package.json")
	if manifestDeclaresWorkspaces(pkg) {
		return pkg, true
	}

	return "", false
}

// buildContext derives package-manager and config facts from the root.
func buildContext(root, marker string) Context {
	ctx := Context{
		Found:          true,
		Root:           root,
		MarkerPath:     marker,
		PackageManager: detectPackageManager(root),
	}

	// Only pnpm has a separate workspace config file convention.
	if ctx.PackageManager == "pnpm" {
		ws := filepath.Join(root, pnpmWorkspaceFile)
		if fileExists(ws) {
			ctx.WorkspaceFile = ws
			ctx.Globs = pnpmGlobs(ws)
		}
	}
	if len(ctx.Globs) == 0 {
		ctx.Globs = manifestGlobs(filepath.Join(root, "package.json"))
	}

	base := filepath.Join(root, tsconfigBaseFile)
	if fileExists(base) {
		ctx.TSConfigBase = base
	}

	return ctx
}

// detectPackageManager resolves the package manager at root, checking in
// strict priority order: lockfiles, package.json packageManager field,
// then the fixed default.
func detectPackageManager(root string) string {
	for _, lf := range lockfiles {
		if fileExists(filepath.Join(root, lf.file)) {
			return lf.manager
		}
	}

	if pm := packageManagerField(filepath.Join(root, "package.json")); pm != "" {
		return pm
	}

	return DefaultPackageManager
}

// packageManagerField reads the "packageManager" field of a package.json,
// e.g. "pnpm@9.1.0" -> "pnpm". Returns "" when absent or unreadable.
func packageManagerField(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}

	var manifest struct {
		PackageManager string `json:"packageManager"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil {
		return ""
	}

	name, _, _ := strings.Cut(manifest.PackageManager, "@")
	return strings.TrimSpace(name)
}

// manifestDeclaresWorkspaces reports whether a package.json has a
// non-empty "workspaces" field (npm/yarn workspace root convention).
func manifestDeclaresWorkspaces(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}

	var manifest struct {
		Workspaces json.RawMessage `json:"workspaces"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil {
		return false
	}

	return len(manifest.Workspaces) > 0 && string(manifest.Workspaces) != "null"
}

// pnpmGlobs parses the "packages" list from pnpm-workspace.yaml.
// Returns nil on any read or parse failure.
func pnpmGlobs(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var ws struct {
		Packages []string `yaml:"packages"`
	}
	if err := yaml.Unmarshal(data, &ws); err != nil {
		return nil
	}
	return ws.Packages
}

// manifestGlobs reads the "workspaces" field of a package.json, which may be
// a plain list or an object with a "packages" list (yarn's extended form).
func manifestGlobs(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var plain struct {
		Workspaces []string `json:"workspaces"`
	}
	if err := json.Unmarshal(data, &plain); err == nil && len(plain.Workspaces) > 0 {
		return plain.Workspaces
	}

	var extended struct {
		Workspaces struct {
			Packages []string `json:"packages"`
		} `json:"workspaces"`
	}
	if err := json.Unmarshal(data, &extended); err == nil {
		return extended.Workspaces.Packages
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
