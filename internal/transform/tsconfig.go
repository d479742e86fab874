package transform

import (
	"path/filepath"
)

const tsconfigFile = "tsconfig.json"

// extendTSConfig points the project's tsconfig at the workspace's shared
// base config and merges configured compiler-option overrides into the
// existing options. Explicit overrides win; every other pre-existing option
// is preserved. Any missing precondition (standalone mode, no detected
// workspace, neither an explicit tsconfig block nor a shared base at the
// root, no project tsconfig, or an unparsable one) makes the step a silent
// no-op.
func extendTSConfig(ctx *Context, opts Options) error {
	if ctx.Mode != ModeMonorepo || ctx.Monorepo == nil || !ctx.Monorepo.Found {
		return nil
	}

	var explicitExtends string
	var overrides map[string]interface{}
	if ctx.Config != nil && ctx.Config.Monorepo != nil && ctx.Config.Monorepo.TSConfig != nil {
		explicitExtends = ctx.Config.Monorepo.TSConfig.Extends
		overrides = ctx.Config.Monorepo.TSConfig.Overrides
	}

	extends := explicitExtends
	if extends == "" && ctx.Monorepo.TSConfigBase != "" {
		rel, err := filepath.Rel(ctx.ProjectDir, ctx.Monorepo.TSConfigBase)
		if err != nil {
			return nil
		}
		extends = filepath.ToSlash(rel)
	}
	if extends == "" && len(overrides) == 0 {
		return nil
	}

	path := filepath.Join(ctx.ProjectDir, tsconfigFile)
	doc, err := readJSONFile(path)
	if err != nil {
		// Missing or unparsable project tsconfig: nothing to adapt.
		return nil
	}

	if extends != "" {
		doc["extends"] = extends
	}

	if len(overrides) > 0 {
		options, ok := doc["compilerOptions"].(map[string]interface{})
		if !ok {
			options = make(map[string]interface{})
		}
		for key, v := range overrides {
			options[key] = v
		}
		doc["compilerOptions"] = options
	}

	return writeJSONFile(path, doc)
}
