package template

// Transformer wire names used in transforms lists. Declared here because they
// are part of the artifact vocabulary, not an implementation detail of any
// one transformer.
const (
	TransformUpdatePackageJSON = "update-package-json"
	TransformGenerateEnvFile   = "generate-env-file"
	TransformUpdateReadme      = "update-readme"
	TransformPruneFeatures     = "prune-features"
	TransformSetupWorkspace    = "setup-workspace"
	TransformExtendTSConfig    = "extend-tsconfig"
)

// PromptType tags a prompt specification.
type PromptType string

const (
	PromptText        PromptType = "text"
	PromptSelect      PromptType = "select"
	PromptMultiSelect PromptType = "multiselect"
	PromptConfirm     PromptType = "confirm"
)

// Source identifies where a template's files come from.
type Source struct {
	Repo   string `json:"repo"`
	Branch string `json:"branch,omitempty"`
}

// Choice is one selectable option of a select or multiselect prompt.
type Choice struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// PromptSpec describes one question put to the user. The answer is stored
// under Name in the scaffold context's answer map.
type PromptSpec struct {
	Type    PromptType  `json:"type"`
	Name    string      `json:"name"`
	Message string      `json:"message"`
	Default interface{} `json:"default,omitempty"`
	Choices []Choice    `json:"choices,omitempty"`

	// Validate rejects an answer with a reason. Only set programmatically;
	// never part of the artifact.
	Validate func(string) error `json:"-"`
}

// TransformSpec names one step of the transformation pipeline. Order in a
// transforms list is the execution order.
type TransformSpec struct {
	Kind    string                 `json:"kind,omitempty"` // "builtin" (default) or "custom"
	Name    string                 `json:"name"`
	Options map[string]interface{} `json:"options,omitempty"`
}

// PostActions overrides the default post-scaffold behavior.
type PostActions struct {
	Install  *bool    `json:"install,omitempty"`
	GitInit  *bool    `json:"gitInit,omitempty"`
	Messages []string `json:"messages,omitempty"`
}

// Descriptor is the resolved definition of a template used to drive one
// scaffold operation.
type Descriptor struct {
	ID          string
	Slug        string
	Name        string
	Description string
	Stack       string
	Source      Source
	Prompts     []PromptSpec
	Transforms  []TransformSpec
	PostActions *PostActions
	Tags        []string
	Maintainer  string
	DocsURL     string
}
