package transform

import (
	"fmt"

	"github.com/stencil-labs/stencil/internal/monorepo"
	"github.com/stencil-labs/stencil/internal/template"
)

// Mode is the installation mode of a scaffold operation.
type Mode string

const (
	ModeStandalone Mode = "standalone"
	ModeMonorepo   Mode = "monorepo"
)

// Context bundles the state of one scaffold invocation. It is built once by
// the caller and passed by reference to every transformer. Transformers treat
// it as read-only; only the caller mutates it (to inject answers before the
// engine runs). ProjectDir never changes mid-pipeline.
type Context struct {
	ProjectDir  string
	ProjectName string
	Answers     map[string]interface{}
	Descriptor  *template.Descriptor
	Mode        Mode
	Monorepo    *monorepo.Context
	Config      *template.Config
}

// AnswerString returns a string answer by key, or "" when absent or not a
// string.
func (c *Context) AnswerString(key string) string {
	if c.Answers == nil {
		return ""
	}
	s, _ := c.Answers[key].(string)
	return s
}

// AnswerStrings returns a string-list answer by key. JSON-decoded answers
// arrive as []interface{}; both forms are accepted. The second return is
// false when the key is absent entirely.
func (c *Context) AnswerStrings(key string) ([]string, bool) {
	if c.Answers == nil {
		return nil, false
	}
	v, ok := c.Answers[key]
	if !ok {
		return nil, false
	}

	switch vals := v.(type) {
	case []string:
		return vals, true
	case []interface{}:
		out := make([]string, 0, len(vals))
		for _, item := range vals {
			out = append(out, fmt.Sprint(item))
		}
		return out, true
	default:
		return nil, false
	}
}
