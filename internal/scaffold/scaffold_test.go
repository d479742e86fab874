package scaffold

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stencil-labs/stencil/internal/config"
	"github.com/stencil-labs/stencil/internal/prompt"
	"github.com/stencil-labs/stencil/internal/template"
)

// fakeTemplate returns a FetchFunc that materializes the given files.
func fakeTemplate(files map[string]string) FetchFunc {
	return func(source template.Source, targetDir string) error {
		for rel, content := range files {
			path := filepath.Join(targetDir, rel)
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return err
			}
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				return err
			}
		}
		return nil
	}
}

func useTempConfig(t *testing.T) {
	t.Helper()
	config.SetDir(t.TempDir())
	t.Cleanup(func() { config.SetDir("") })
}

func TestRunStandalone(t *testing.T) {
	useTempConfig(t)

	files := map[string]string{
		"package.json": `{"name":"tmpl","version":"1.0.0","repository":{"url":"x"}}`,
		"README.md":    "# Starter Template\n",
		template.ConfigFileName: `{
  "version": "1.0",
  "template": {"id": "react-vite", "name": "React + Vite"},
  "transforms": [
    {"kind": "builtin", "name": "update-package-json"},
    {"kind": "builtin", "name": "update-readme"}
  ]
}`,
	}

	dir := filepath.Join(t.TempDir(), "cool-app")
	var out bytes.Buffer

	result, err := Run(Options{
		Descriptor:  template.Descriptor{ID: "react-vite", Source: template.Source{Repo: "acme/tmpl"}},
		ProjectName: "cool-app",
		TargetDir:   dir,
		Yes:         true,
		Out:         &out,
		Fetch:       fakeTemplate(files),
	})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if result.Mode != "standalone" {
		t.Errorf("Mode = %q", result.Mode)
	}

	var pkg map[string]interface{}
	data, _ := os.ReadFile(filepath.Join(dir, "package.json"))
	json.Unmarshal(data, &pkg)
	if pkg["name"] != "cool-app" || pkg["version"] != "0.1.0" {
		t.Errorf("package.json = %v", pkg)
	}

	readme, _ := os.ReadFile(filepath.Join(dir, "README.md"))
	if !strings.HasPrefix(string(readme), "# Cool App") {
		t.Errorf("README = %q", readme)
	}

	// Build-time metadata is cleaned out of the final tree.
	if _, err := os.Stat(filepath.Join(dir, template.ConfigFileName)); !os.IsNotExist(err) {
		t.Error("artifact still present after scaffold")
	}
}

func TestRunMonorepo(t *testing.T) {
	useTempConfig(t)

	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "pnpm-workspace.yaml"),
		[]byte("packages:\n  - apps/*\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "pnpm-lock.yaml"), []byte(""), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(root, "apps"), 0755); err != nil {
		t.Fatal(err)
	}

	files := map[string]string{
		"package.json": `{"name":"tmpl","dependencies":{"@scope/ui":"^1.0.0"}}`,
		template.ConfigFileName: `{
  "version": "1.0",
  "template": {"id": "react-vite", "name": "React + Vite"},
  "monorepo": {"enabled": true, "type": "app", "workspaceDeps": ["@scope/ui"]},
  "transforms": [{"kind": "builtin", "name": "update-package-json"}]
}`,
	}

	dir := filepath.Join(root, "apps", "my-app")
	var out bytes.Buffer

	result, err := Run(Options{
		Descriptor:  template.Descriptor{ID: "react-vite", Source: template.Source{Repo: "acme/tmpl"}},
		ProjectName: "my-app",
		TargetDir:   dir,
		Yes:         true,
		Out:         &out,
		Fetch:       fakeTemplate(files),
	})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if result.Mode != "monorepo" {
		t.Errorf("Mode = %q", result.Mode)
	}
	if result.PackageManager != "pnpm" {
		t.Errorf("PackageManager = %q", result.PackageManager)
	}

	var pkg map[string]interface{}
	data, _ := os.ReadFile(filepath.Join(dir, "package.json"))
	json.Unmarshal(data, &pkg)
	if pkg["name"] != "@repo/my-app" {
		t.Errorf("name = %v, want @repo/my-app", pkg["name"])
	}
	deps := pkg["dependencies"].(map[string]interface{})
	if deps["@scope/ui"] != "workspace:*" {
		t.Errorf("@scope/ui = %v", deps["@scope/ui"])
	}
}

func TestRunFallbackWithoutArtifact(t *testing.T) {
	useTempConfig(t)

	files := map[string]string{
		"package.json": `{"name":"tmpl","version":"3.0.0"}`,
	}

	dir := filepath.Join(t.TempDir(), "bare-app")
	var out bytes.Buffer

	_, err := Run(Options{
		Descriptor:  template.Descriptor{Source: template.Source{Repo: "acme/bare"}},
		ProjectName: "bare-app",
		TargetDir:   dir,
		Yes:         true,
		Out:         &out,
		Fetch:       fakeTemplate(files),
	})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	var pkg map[string]interface{}
	data, _ := os.ReadFile(filepath.Join(dir, "package.json"))
	json.Unmarshal(data, &pkg)
	if pkg["name"] != "bare-app" {
		t.Errorf("name = %v: fallback pipeline must correct identity", pkg["name"])
	}
}

func TestRunPrefillsAnswersFromPreferences(t *testing.T) {
	useTempConfig(t)
	if err := config.Set(config.KeyAuthor, "Sam Doe"); err != nil {
		t.Fatal(err)
	}

	files := map[string]string{
		"package.json": `{"name":"tmpl"}`,
	}

	dir := filepath.Join(t.TempDir(), "my-app")
	var out bytes.Buffer

	if _, err := Run(Options{
		Descriptor:  template.Descriptor{Source: template.Source{Repo: "acme/tmpl"}},
		ProjectName: "my-app",
		TargetDir:   dir,
		Yes:         true,
		Out:         &out,
		Fetch:       fakeTemplate(files),
	}); err != nil {
		t.Fatal(err)
	}

	var pkg map[string]interface{}
	data, _ := os.ReadFile(filepath.Join(dir, "package.json"))
	json.Unmarshal(data, &pkg)
	if pkg["author"] != "Sam Doe" {
		t.Errorf("author = %v, want preference value applied", pkg["author"])
	}
}

func TestRunCancellation(t *testing.T) {
	useTempConfig(t)

	files := map[string]string{
		"package.json": `{"name":"tmpl"}`,
		template.ConfigFileName: `{
  "version": "1.0",
  "template": {"id": "x", "name": "X"},
  "prompts": [{"type": "text", "name": "description", "message": "Describe it"}],
  "transforms": [{"kind": "builtin", "name": "update-package-json"}]
}`,
	}

	dir := filepath.Join(t.TempDir(), "my-app")
	var out bytes.Buffer

	_, err := Run(Options{
		Descriptor:  template.Descriptor{Source: template.Source{Repo: "acme/tmpl"}},
		ProjectName: "my-app",
		TargetDir:   dir,
		In:          strings.NewReader(""), // immediate end of input
		Out:         &out,
		Fetch:       fakeTemplate(files),
	})
	if !errors.Is(err, prompt.ErrCanceled) {
		t.Errorf("err = %v, want prompt.ErrCanceled", err)
	}
}

func TestRunFetchFailureAbortsBeforeTransforms(t *testing.T) {
	useTempConfig(t)

	boom := errors.New("network down")
	dir := filepath.Join(t.TempDir(), "my-app")
	var out bytes.Buffer

	_, err := Run(Options{
		Descriptor:  template.Descriptor{Source: template.Source{Repo: "acme/tmpl"}},
		ProjectName: "my-app",
		TargetDir:   dir,
		Yes:         true,
		Out:         &out,
		Fetch: func(source template.Source, targetDir string) error {
			return boom
		},
	})
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped fetch failure", err)
	}
}
