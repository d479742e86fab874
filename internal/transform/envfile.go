package transform

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	envExampleFile = ".env.example"
	envFile        = ".env"
)

// envTokenPattern matches ${NAME} and $NAME substitution tokens.
var envTokenPattern = regexp.MustCompile(`\$\{[A-Za-z_][A-Za-z0-9_]*\}|\$[A-Za-z_][A-Za-z0-9_]*`)

// generateEnvFile materializes .env from .env.example, substituting
// ${NAME} and $NAME tokens from option-supplied values plus project-derived
// ones. A template without an example env file silently skips this step.
func generateEnvFile(ctx *Context, opts Options) error {
	examplePath := filepath.Join(ctx.ProjectDir, envExampleFile)

	data, err := os.ReadFile(examplePath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	vars := map[string]string{
		"PROJECT_NAME": ctx.ProjectName,
	}
	if desc := ctx.AnswerString("description"); desc != "" {
		vars["PROJECT_DESCRIPTION"] = desc
	}
	for key, v := range opts {
		vars[key] = fmt.Sprint(v)
	}

	// Unknown tokens are kept verbatim, original spelling included, so
	// placeholder values the user must fill in (API keys etc.) survive
	// materialization untouched.
	expanded := envTokenPattern.ReplaceAllStringFunc(string(data), func(token string) string {
		if v, ok := vars[strings.Trim(token, "${}")]; ok {
			return v
		}
		return token
	})

	return os.WriteFile(filepath.Join(ctx.ProjectDir, envFile), []byte(expanded), 0644)
}
