package transform

import (
	"encoding/json"
	"fmt"
	"os"
)

// readJSONFile parses a JSON object file into a generic map.
func readJSONFile(path string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}

// writeJSONFile writes a JSON object with two-space indentation and a
// trailing newline, matching the npm ecosystem convention.
func writeJSONFile(path string, doc map[string]interface{}) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", path, err)
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// stringOption reads a string entry from an option bag.
func stringOption(opts Options, key, fallback string) string {
	if opts == nil {
		return fallback
	}
	if s, ok := opts[key].(string); ok && s != "" {
		return s
	}
	return fallback
}

// featureMapOption reads a feature-name-to-paths map from an option bag.
// Both map[string][]string and JSON-decoded map[string]interface{} forms
// are accepted.
func featureMapOption(opts Options, key string) map[string][]string {
	out := make(map[string][]string)
	if opts == nil {
		return out
	}

	switch m := opts[key].(type) {
	case map[string][]string:
		for feature, paths := range m {
			out[feature] = append(out[feature], paths...)
		}
	case map[string]interface{}:
		for feature, v := range m {
			items, ok := v.([]interface{})
			if !ok {
				continue
			}
			for _, item := range items {
				out[feature] = append(out[feature], fmt.Sprint(item))
			}
		}
	}
	return out
}
