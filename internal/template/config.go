package template

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// ConfigFileName is the declarative artifact a template ships at its root.
	ConfigFileName = "template.config.json"

	// legacyDir held template metadata before the single-file artifact.
	legacyDir = ".template"

	// SchemaVersion is the artifact version this build understands.
	SchemaVersion = "1.0"
)

// TemplateMeta is the identity block of a configuration artifact.
type TemplateMeta struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Stack       string   `json:"stack,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Maintainer  string   `json:"maintainer,omitempty"`
	DocsURL     string   `json:"docsUrl,omitempty"`
}

// TSConfigBlock overrides how a scaffolded project's tsconfig is wired into
// a workspace.
type TSConfigBlock struct {
	Extends   string                 `json:"extends,omitempty"`
	Overrides map[string]interface{} `json:"overrides,omitempty"`
}

// MonorepoBlock declares how a template behaves when scaffolded inside a
// workspace.
type MonorepoBlock struct {
	Enabled       bool           `json:"enabled"`
	Type          string         `json:"type"` // "app" or "package"
	DefaultDir    string         `json:"defaultDir,omitempty"`
	RemoveFiles   []string       `json:"removeFiles,omitempty"`
	WorkspaceDeps []string       `json:"workspaceDeps,omitempty"`
	TSConfig      *TSConfigBlock `json:"tsconfig,omitempty"`
}

// Config is the parsed template.config.json artifact.
type Config struct {
	Version     string              `json:"version"`
	Template    TemplateMeta        `json:"template"`
	Monorepo    *MonorepoBlock      `json:"monorepo,omitempty"`
	Prompts     []PromptSpec        `json:"prompts,omitempty"`
	Transforms  []TransformSpec     `json:"transforms,omitempty"`
	Features    map[string][]string `json:"features,omitempty"`
	PostActions *PostActions        `json:"postActions,omitempty"`
}

// LoadConfig reads and parses the artifact from a downloaded project tree.
// A missing file or a parse failure yields (nil, warnings); absence triggers
// the fallback descriptor, it is never an error. An unrecognized version or a
// schema violation is reported as a warning while parsing proceeds
// best-effort.
func LoadConfig(projectDir string) (*Config, []string) {
	path := filepath.Join(projectDir, ConfigFileName)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, []string{fmt.Sprintf("reading %s: %v", ConfigFileName, err)}
	}

	var warnings []string
	if result, err := ValidateConfig(data); err == nil && !result.Valid {
		for _, issue := range result.Issues {
			msg := issue.Message
			if issue.Path != "" {
				msg = issue.Path + ": " + msg
			}
			warnings = append(warnings, fmt.Sprintf("%s: %s", ConfigFileName, msg))
		}
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		warnings = append(warnings, fmt.Sprintf("parsing %s: %v", ConfigFileName, err))
		return nil, warnings
	}

	if cfg.Version != SchemaVersion {
		warnings = append(warnings, fmt.Sprintf(
			"%s declares version %q, expected %q; proceeding best-effort",
			ConfigFileName, cfg.Version, SchemaVersion))
	}

	return &cfg, warnings
}

// Merge folds a configuration artifact into a base descriptor. Identity and
// metadata fields are overwritten by the artifact; prompts, transforms, and
// post-action overrides replace the base's only when the artifact supplies
// non-empty values, so a registry-sourced descriptor stays a safe default.
func Merge(base Descriptor, cfg *Config) Descriptor {
	if cfg == nil {
		return base
	}

	d := base
	if cfg.Template.ID != "" {
		d.ID = cfg.Template.ID
	}
	if cfg.Template.Name != "" {
		d.Name = cfg.Template.Name
	}
	if cfg.Template.Description != "" {
		d.Description = cfg.Template.Description
	}
	if cfg.Template.Stack != "" {
		d.Stack = cfg.Template.Stack
	}
	if len(cfg.Template.Tags) > 0 {
		d.Tags = cfg.Template.Tags
	}
	if cfg.Template.Maintainer != "" {
		d.Maintainer = cfg.Template.Maintainer
	}
	if cfg.Template.DocsURL != "" {
		d.DocsURL = cfg.Template.DocsURL
	}

	if len(cfg.Prompts) > 0 {
		d.Prompts = cfg.Prompts
	}
	if len(cfg.Transforms) > 0 {
		d.Transforms = cfg.Transforms
	}
	if cfg.PostActions != nil {
		d.PostActions = cfg.PostActions
	}

	return d
}

// Fallback builds a minimal descriptor for a template that ships no
// configuration artifact. It carries exactly one transform so that every
// scaffold at minimum gets its package identity corrected.
func Fallback(source Source) Descriptor {
	return Descriptor{
		ID:     "custom",
		Slug:   "custom",
		Name:   source.Repo,
		Source: source,
		Transforms: []TransformSpec{
			{Kind: "builtin", Name: TransformUpdatePackageJSON},
		},
	}
}

// CleanupArtifacts removes the configuration artifact and the legacy metadata
// directory from a scaffolded project. Both are build-time metadata, not
// project content. Absence is not an error.
func CleanupArtifacts(projectDir string) {
	_ = os.Remove(filepath.Join(projectDir, ConfigFileName))
	_ = os.RemoveAll(filepath.Join(projectDir, legacyDir))
}
