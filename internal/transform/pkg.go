package transform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// initialVersion is the version every scaffolded project starts at.
const initialVersion = "0.1.0"

// repoFields are source-repository-specific package.json fields that make no
// sense in a freshly scaffolded project.
var repoFields = []string{"repository", "bugs", "homepage"}

// updatePackageJSON rewrites the project manifest's identity: name becomes
// the project name, version resets to the initial value, description and
// author come from answers when present, and source-repository fields are
// stripped. A missing package.json is fatal: every scaffold must at minimum
// get its package identity corrected.
func updatePackageJSON(ctx *Context, opts Options) error {
	path := filepath.Join(ctx.ProjectDir, "package.json")

	doc, err := readJSONFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("project manifest not found at %s", path)
		}
		return err
	}

	// In monorepo mode the structural workspace pass runs earlier and may
	// have scoped the name (e.g. "@repo/my-app"); keep that scoping instead
	// of clobbering it back to the plain name. In standalone mode a scoped
	// name can only be the template's own identity, which gets replaced.
	name := ctx.ProjectName
	if existing, ok := doc["name"].(string); ok &&
		ctx.Mode == ModeMonorepo && ctx.Monorepo != nil &&
		strings.HasSuffix(existing, "/"+ctx.ProjectName) {
		name = existing
	}
	doc["name"] = name
	doc["version"] = initialVersion

	if desc := ctx.AnswerString("description"); desc != "" {
		doc["description"] = desc
	}
	if author := ctx.AnswerString("author"); author != "" {
		doc["author"] = author
	}

	for _, field := range repoFields {
		delete(doc, field)
	}

	return writeJSONFile(path, doc)
}
