package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/viper"
)

const (
	homeDirName = ".stencil"
	fileName    = "config"
	fileType    = "yaml"
	envPrefix   = "STENCIL"
)

// Preference keys.
const (
	KeyAuthor         = "author"
	KeyEmail          = "email"
	KeyPackageManager = "package_manager"
	KeyGitInit        = "git_init"
	KeyInstall        = "install"
)

// knownKeys is the fixed preference key set, in display order.
var knownKeys = []string{KeyAuthor, KeyEmail, KeyPackageManager, KeyGitInit, KeyInstall}

// v is the package's viper instance. A dedicated instance (rather than the
// global one) keeps tests isolated and lets Reset rebuild state.
var v = viper.New()

// dirOverride redirects the config directory, for tests.
var dirOverride string

// Dir returns the path to the stencil config directory (~/.stencil/).
func Dir() string {
	if dirOverride != "" {
		return dirOverride
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", homeDirName)
	}
	return filepath.Join(home, homeDirName)
}

// FilePath returns the full path to the config file (~/.stencil/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// SetDir overrides the config directory and reloads. Intended for tests.
func SetDir(dir string) {
	dirOverride = dir
	v = viper.New()
	Load()
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes viper to read from the config file and environment.
func Load() {
	v.SetConfigFile(FilePath())
	v.SetConfigType(fileType)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	// Ignore error if config file doesn't exist yet.
	_ = v.ReadInConfig()
}

// KnownKeys returns the fixed preference key set.
func KnownKeys() []string {
	out := make([]string, len(knownKeys))
	copy(out, knownKeys)
	return out
}

// IsKnownKey reports whether key belongs to the preference key set.
func IsKnownKey(key string) bool {
	for _, k := range knownKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Get returns a preference value by key. Returns empty string if not set.
func Get(key string) string {
	return v.GetString(key)
}

// GetBool returns a boolean preference with a fallback for unset keys.
func GetBool(key string, fallback bool) bool {
	if !v.IsSet(key) {
		return fallback
	}
	return v.GetBool(key)
}

// Set writes a preference and saves the config file. Unknown keys are
// rejected so typos don't silently create dead settings.
func Set(key, value string) error {
	if !IsKnownKey(key) {
		return fmt.Errorf("unknown preference key %q (known: %v)", key, knownKeys)
	}

	v.Set(key, value)
	return write()
}

// List returns the currently set preferences as key=value lines in display
// order.
func List() []string {
	var out []string
	for _, key := range knownKeys {
		if v.IsSet(key) {
			out = append(out, key+"="+v.GetString(key))
		}
	}
	return out
}

// Delete removes one preference and saves the config file.
func Delete(key string) error {
	if !IsKnownKey(key) {
		return fmt.Errorf("unknown preference key %q (known: %v)", key, knownKeys)
	}

	// Rebuild from the file's own values, not from v: with AutomaticEnv
	// active, v also reports STENCIL_* environment values, which must not
	// leak into the persisted file.
	kept := fileValues()
	delete(kept, key)
	return rebuild(kept)
}

// fileValues reads the known keys currently persisted in the config file,
// ignoring environment overrides.
func fileValues() map[string]string {
	f := viper.New()
	f.SetConfigFile(FilePath())
	f.SetConfigType(fileType)
	if err := f.ReadInConfig(); err != nil {
		return map[string]string{}
	}

	out := make(map[string]string)
	for _, k := range knownKeys {
		if f.IsSet(k) {
			out[k] = f.GetString(k)
		}
	}
	return out
}

// Reset removes every preference and saves an empty config file.
func Reset() error {
	return rebuild(nil)
}

// rebuild replaces the viper state with exactly the given values and saves.
// Viper has no unset operation, so removal means starting over.
func rebuild(values map[string]string) error {
	fresh := viper.New()
	fresh.SetConfigFile(FilePath())
	fresh.SetConfigType(fileType)
	fresh.SetEnvPrefix(envPrefix)
	fresh.AutomaticEnv()

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fresh.Set(k, values[k])
	}

	v = fresh
	return write()
}

// write persists the current viper state to the config file.
func write() error {
	if err := EnsureDir(); err != nil {
		return err
	}

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
