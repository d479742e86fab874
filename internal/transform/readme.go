package transform

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const readmeFile = "README.md"

// genericMarkers are words that identify a top-level heading as template
// boilerplate rather than a real project title.
var genericMarkers = []string{"template", "starter", "boilerplate", "example"}

var titleCaser = cases.Title(language.English)

// TitleCase renders a kebab- or snake-case project name as a display title:
// "cool-app" becomes "Cool App".
func TitleCase(name string) string {
	cleaned := strings.NewReplacer("-", " ", "_", " ").Replace(name)
	return titleCaser.String(cleaned)
}

// updateReadme personalizes the README: fixed placeholder tokens are
// replaced with the project name, description, and title-cased name, and a
// generic template heading is replaced with the project title. A missing
// README silently skips the step.
func updateReadme(ctx *Context, opts Options) error {
	path := filepath.Join(ctx.ProjectDir, readmeFile)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	title := TitleCase(ctx.ProjectName)
	content := strings.NewReplacer(
		"{{PROJECT_NAME}}", ctx.ProjectName,
		"{{PROJECT_TITLE}}", title,
		"{{PROJECT_DESCRIPTION}}", ctx.AnswerString("description"),
	).Replace(string(data))

	content = replaceGenericHeading(content, title)

	return os.WriteFile(path, []byte(content), 0644)
}

// replaceGenericHeading swaps the first top-level heading for the project
// title when it contains a generic template marker word.
func replaceGenericHeading(content, title string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if !strings.HasPrefix(line, "# ") {
			continue
		}

		heading := strings.ToLower(line)
		for _, marker := range genericMarkers {
			if strings.Contains(heading, marker) {
				lines[i] = "# " + title
				break
			}
		}
		// Only the first top-level heading is considered.
		break
	}
	return strings.Join(lines, "\n")
}
