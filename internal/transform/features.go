package transform

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// featureMapFile is an optional in-tree map of feature names to the paths
// they own, merged over the option-supplied map. It is build-time metadata
// and is removed once pruning is done.
const featureMapFile = "features.json"

// pruneFeatures removes every path mapped to a feature the user did not
// select. The feature map comes from transformer options, the template's
// configuration artifact, and the in-tree map file, in increasing
// precedence. Absent mapped paths are skipped silently, which also makes
// the step idempotent. When the answers carry no feature selection at all
// the step is a no-op: without a selection there is nothing to prune
// against.
func pruneFeatures(ctx *Context, opts Options) error {
	selected, ok := ctx.AnswerStrings("features")
	if !ok {
		return nil
	}

	features := featureMapOption(opts, "features")
	if ctx.Config != nil {
		for feature, paths := range ctx.Config.Features {
			features[feature] = paths
		}
	}

	mapPath := filepath.Join(ctx.ProjectDir, featureMapFile)
	if inTree, err := loadFeatureMap(mapPath); err == nil {
		for feature, paths := range inTree {
			features[feature] = paths
		}
	}

	chosen := make(map[string]bool, len(selected))
	for _, name := range selected {
		chosen[name] = true
	}

	for feature, paths := range features {
		if chosen[feature] {
			continue
		}
		for _, rel := range paths {
			target, err := resolveInside(ctx.ProjectDir, rel)
			if err != nil {
				return err
			}
			if err := os.RemoveAll(target); err != nil {
				return fmt.Errorf("removing %s: %w", rel, err)
			}
		}
	}

	_ = os.RemoveAll(mapPath)
	return nil
}

// loadFeatureMap parses the in-tree feature map file.
func loadFeatureMap(path string) (map[string][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m map[string][]string
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// resolveInside joins rel onto root and rejects paths escaping the project
// tree. Feature maps come from template authors, not the local user.
func resolveInside(root, rel string) (string, error) {
	target := filepath.Join(root, rel)
	if target != root && !strings.HasPrefix(target, root+string(filepath.Separator)) {
		return "", fmt.Errorf("feature path %q escapes the project directory", rel)
	}
	return target, nil
}
