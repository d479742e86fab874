package template

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validArtifact = `{
  "version": "1.0",
  "template": {
    "id": "react-vite",
    "name": "React + Vite",
    "description": "React SPA starter",
    "stack": "react",
    "tags": ["react", "vite"]
  },
  "monorepo": {
    "enabled": true,
    "type": "app",
    "removeFiles": [".github", ".npmrc"],
    "workspaceDeps": ["@scope/ui"]
  },
  "prompts": [
    {"type": "confirm", "name": "eslint", "message": "Include ESLint?", "default": true}
  ],
  "transforms": [
    {"kind": "builtin", "name": "update-package-json"},
    {"kind": "builtin", "name": "update-readme"}
  ],
  "features": {
    "eslint": [".eslintrc.cjs"]
  }
}`

func writeArtifact(t *testing.T, dir, content string) {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing artifact: %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("valid artifact", func(t *testing.T) {
		dir := t.TempDir()
		writeArtifact(t, dir, validArtifact)

		cfg, warnings := LoadConfig(dir)
		if cfg == nil {
			t.Fatal("LoadConfig returned nil for valid artifact")
		}
		if len(warnings) != 0 {
			t.Errorf("warnings = %v, want none", warnings)
		}
		if cfg.Template.ID != "react-vite" {
			t.Errorf("Template.ID = %q", cfg.Template.ID)
		}
		if cfg.Monorepo == nil || !cfg.Monorepo.Enabled || cfg.Monorepo.Type != "app" {
			t.Errorf("Monorepo = %+v", cfg.Monorepo)
		}
		if len(cfg.Transforms) != 2 || cfg.Transforms[0].Name != TransformUpdatePackageJSON {
			t.Errorf("Transforms = %+v", cfg.Transforms)
		}
	})

	t.Run("missing file is absence, not error", func(t *testing.T) {
		cfg, warnings := LoadConfig(t.TempDir())
		if cfg != nil {
			t.Errorf("cfg = %+v, want nil", cfg)
		}
		if len(warnings) != 0 {
			t.Errorf("warnings = %v, want none", warnings)
		}
	})

	t.Run("malformed JSON is absence with warning", func(t *testing.T) {
		dir := t.TempDir()
		writeArtifact(t, dir, "{not json")

		cfg, warnings := LoadConfig(dir)
		if cfg != nil {
			t.Errorf("cfg = %+v, want nil", cfg)
		}
		if len(warnings) == 0 {
			t.Error("want a parse warning")
		}
	})

	t.Run("unrecognized version warns but proceeds", func(t *testing.T) {
		dir := t.TempDir()
		writeArtifact(t, dir, `{"version":"2.0","template":{"id":"x","name":"X"}}`)

		cfg, warnings := LoadConfig(dir)
		if cfg == nil {
			t.Fatal("cfg = nil, want best-effort parse")
		}
		found := false
		for _, w := range warnings {
			if strings.Contains(w, "version") {
				found = true
			}
		}
		if !found {
			t.Errorf("warnings = %v, want a version warning", warnings)
		}
	})
}

func TestMerge(t *testing.T) {
	base := Descriptor{
		ID:          "react-vite",
		Slug:        "react-vite",
		Name:        "React + Vite",
		Description: "base description",
		Stack:       "react",
		Prompts: []PromptSpec{
			{Type: PromptText, Name: "description", Message: "Project description?"},
		},
		Transforms: []TransformSpec{
			{Kind: "builtin", Name: TransformUpdatePackageJSON},
		},
	}

	t.Run("artifact overwrites identity", func(t *testing.T) {
		cfg := &Config{
			Version: SchemaVersion,
			Template: TemplateMeta{
				ID:          "react-vite-pro",
				Name:        "React + Vite Pro",
				Description: "artifact description",
				Maintainer:  "frontend-platform",
			},
		}

		d := Merge(base, cfg)
		if d.ID != "react-vite-pro" || d.Name != "React + Vite Pro" {
			t.Errorf("identity not overwritten: %+v", d)
		}
		if d.Description != "artifact description" {
			t.Errorf("Description = %q", d.Description)
		}
		if d.Maintainer != "frontend-platform" {
			t.Errorf("Maintainer = %q", d.Maintainer)
		}
		// Slug has no artifact counterpart and is kept.
		if d.Slug != "react-vite" {
			t.Errorf("Slug = %q, want react-vite", d.Slug)
		}
	})

	t.Run("empty prompts and transforms keep base values", func(t *testing.T) {
		cfg := &Config{Version: SchemaVersion, Template: TemplateMeta{ID: "x", Name: "X"}}

		d := Merge(base, cfg)
		if len(d.Prompts) != 1 || d.Prompts[0].Name != "description" {
			t.Errorf("Prompts = %+v, want base prompts preserved", d.Prompts)
		}
		if len(d.Transforms) != 1 || d.Transforms[0].Name != TransformUpdatePackageJSON {
			t.Errorf("Transforms = %+v, want base transforms preserved", d.Transforms)
		}
	})

	t.Run("non-empty lists replace base values", func(t *testing.T) {
		cfg := &Config{
			Version:  SchemaVersion,
			Template: TemplateMeta{ID: "x", Name: "X"},
			Transforms: []TransformSpec{
				{Kind: "builtin", Name: TransformUpdateReadme},
				{Kind: "builtin", Name: TransformPruneFeatures},
			},
		}

		d := Merge(base, cfg)
		if len(d.Transforms) != 2 || d.Transforms[0].Name != TransformUpdateReadme {
			t.Errorf("Transforms = %+v, want replaced list", d.Transforms)
		}
	})

	t.Run("nil config returns base unchanged", func(t *testing.T) {
		d := Merge(base, nil)
		if d.ID != base.ID || len(d.Transforms) != len(base.Transforms) {
			t.Errorf("Merge(base, nil) = %+v", d)
		}
	})
}

func TestFallback(t *testing.T) {
	d := Fallback(Source{Repo: "https://github.com/someone/some-starter", Branch: "main"})

	if len(d.Transforms) != 1 {
		t.Fatalf("Transforms count = %d, want exactly 1", len(d.Transforms))
	}
	if d.Transforms[0].Name != TransformUpdatePackageJSON {
		t.Errorf("transform = %q, want %q", d.Transforms[0].Name, TransformUpdatePackageJSON)
	}
	if d.Source.Branch != "main" {
		t.Errorf("Source.Branch = %q", d.Source.Branch)
	}
}

func TestCleanupArtifacts(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, validArtifact)
	if err := os.MkdirAll(filepath.Join(dir, ".template", "meta"), 0755); err != nil {
		t.Fatal(err)
	}

	CleanupArtifacts(dir)

	if _, err := os.Stat(filepath.Join(dir, ConfigFileName)); !os.IsNotExist(err) {
		t.Error("artifact still present after cleanup")
	}
	if _, err := os.Stat(filepath.Join(dir, ".template")); !os.IsNotExist(err) {
		t.Error("legacy dir still present after cleanup")
	}

	// Cleanup on an already-clean tree is silent.
	CleanupArtifacts(dir)
}

func TestValidateConfig(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		result, err := ValidateConfig([]byte(validArtifact))
		if err != nil {
			t.Fatalf("ValidateConfig error: %v", err)
		}
		if !result.Valid {
			t.Errorf("Valid = false, issues: %+v", result.Issues)
		}
	})

	t.Run("bad monorepo type", func(t *testing.T) {
		bad := `{"version":"1.0","template":{"id":"x","name":"X"},"monorepo":{"enabled":true,"type":"service"}}`
		result, err := ValidateConfig([]byte(bad))
		if err != nil {
			t.Fatalf("ValidateConfig error: %v", err)
		}
		if result.Valid {
			t.Error("Valid = true for bad monorepo type")
		}
	})

	t.Run("missing template block", func(t *testing.T) {
		result, err := ValidateConfig([]byte(`{"version":"1.0"}`))
		if err != nil {
			t.Fatalf("ValidateConfig error: %v", err)
		}
		if result.Valid {
			t.Error("Valid = true without template block")
		}
	})
}

func TestLookup(t *testing.T) {
	if _, ok := Lookup("react-vite"); !ok {
		t.Error("Lookup(react-vite) not found")
	}
	if _, ok := Lookup("no-such-template"); ok {
		t.Error("Lookup(no-such-template) found")
	}
}
