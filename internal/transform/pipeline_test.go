package transform

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stencil-labs/stencil/internal/monorepo"
	"github.com/stencil-labs/stencil/internal/template"
)

// Full pipeline over a realistic downloaded tree: structural transforms
// prepended, then the template's own list, with one unknown entry skipped.
func TestPipelineEndToEnd(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "apps", "cool-app")

	writeFile(t, filepath.Join(root, "tsconfig.base.json"), `{"compilerOptions":{"strict":true}}`)
	writeFile(t, filepath.Join(dir, "package.json"),
		`{"name":"tmpl","version":"2.0.0","repository":{"url":"https://github.com/acme/tmpl"},"dependencies":{"@scope/ui":"^1.0.0"}}`)
	writeFile(t, filepath.Join(dir, "README.md"), "# Starter Template\n\nRun {{PROJECT_NAME}} locally.\n")
	writeFile(t, filepath.Join(dir, ".env.example"), "APP=${PROJECT_NAME}\n")
	writeFile(t, filepath.Join(dir, "tsconfig.json"), `{"compilerOptions":{"jsx":"react-jsx"}}`)
	writeFile(t, filepath.Join(dir, ".eslintrc.cjs"), "")

	cfg := &template.Config{
		Version:  template.SchemaVersion,
		Template: template.TemplateMeta{ID: "react-vite", Name: "React + Vite"},
		Monorepo: &template.MonorepoBlock{
			Enabled:       true,
			Type:          "app",
			WorkspaceDeps: []string{"@scope/ui"},
		},
		Features: map[string][]string{"eslint": {".eslintrc.cjs"}},
	}

	desc := &template.Descriptor{
		ID: "react-vite",
		Transforms: append(
			StructuralTransforms(ModeMonorepo, cfg),
			template.TransformSpec{Kind: "builtin", Name: template.TransformUpdatePackageJSON},
			template.TransformSpec{Kind: "builtin", Name: template.TransformGenerateEnvFile},
			template.TransformSpec{Kind: "builtin", Name: template.TransformUpdateReadme},
			template.TransformSpec{Kind: "builtin", Name: template.TransformPruneFeatures},
			template.TransformSpec{Kind: "custom", Name: "not-registered"},
		),
	}

	ctx := &Context{
		ProjectDir:  dir,
		ProjectName: "cool-app",
		Answers: map[string]interface{}{
			"description": "The cool app",
			"features":    []string{},
		},
		Descriptor: desc,
		Mode:       ModeMonorepo,
		Monorepo: &monorepo.Context{
			Found:          true,
			Root:           root,
			PackageManager: "pnpm",
			TSConfigBase:   filepath.Join(root, "tsconfig.base.json"),
		},
		Config: cfg,
	}

	var out bytes.Buffer
	if err := NewEngine(NewRegistry(), &out).Run(ctx); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if !strings.Contains(out.String(), "not-registered") {
		t.Errorf("missing skip warning, got %q", out.String())
	}

	var pkg map[string]interface{}
	json.Unmarshal([]byte(readFile(t, filepath.Join(dir, "package.json"))), &pkg)
	// setup-workspace ran first and scoped the name; the later identity
	// rewrite keeps the scoping.
	if pkg["name"] != "@repo/cool-app" {
		t.Errorf("name = %v, want @repo/cool-app", pkg["name"])
	}
	if pkg["version"] != "0.1.0" {
		t.Errorf("version = %v, want 0.1.0", pkg["version"])
	}
	deps := pkg["dependencies"].(map[string]interface{})
	if deps["@scope/ui"] != "workspace:*" {
		t.Errorf("@scope/ui = %v, want workspace:*", deps["@scope/ui"])
	}
	if _, present := pkg["repository"]; present {
		t.Error("repository field not stripped")
	}

	var ts map[string]interface{}
	json.Unmarshal([]byte(readFile(t, filepath.Join(dir, "tsconfig.json"))), &ts)
	if ts["extends"] != "../../tsconfig.base.json" {
		t.Errorf("extends = %v", ts["extends"])
	}

	readme := readFile(t, filepath.Join(dir, "README.md"))
	if !strings.HasPrefix(readme, "# Cool App\n") || !strings.Contains(readme, "Run cool-app locally.") {
		t.Errorf("README = %q", readme)
	}

	if got := readFile(t, filepath.Join(dir, ".env")); got != "APP=cool-app\n" {
		t.Errorf(".env = %q", got)
	}

	if exists(filepath.Join(dir, ".eslintrc.cjs")) {
		t.Error("unselected feature path not pruned")
	}
}
