// Package config resolves docwiki settings. Settings live in two YAML
// files: a global one under the user's config directory and a project one
// (.docwiki.yaml) in the workspace root. Values are read through the loosely
// typed Source interface and coerced once per cycle into ScanConfiguration
// and ViewConfiguration; the Store edits the files themselves.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"gopkg.in/yaml.v3"
)

// ProjectFileName is the settings file looked up in the workspace root.
const ProjectFileName = ".docwiki.yaml"

// Scope selects which settings file a Store operation targets.
type Scope int

const (
	// ScopeProject is the workspace's .docwiki.yaml.
	ScopeProject Scope = iota
	// ScopeGlobal is the per-user config.yaml.
	ScopeGlobal
)

func (s Scope) String() string {
	if s == ScopeGlobal {
		return "global"
	}
	return "project"
}

// Store manages the persisted settings, keeping project and global values
// apart so that writes land in the file they were read from.
type Store struct {
	globalPath  string
	projectPath string
	global      map[string]any
	project     map[string]any
}

// NewStore loads both settings files. A missing file is treated as empty;
// an unreadable or malformed one is an error since the caller is about to
// edit it.
func NewStore(projectDir string) (*Store, error) {
	globalPath, err := GlobalPath()
	if err != nil {
		return nil, fmt.Errorf("failed to determine global config path: %w", err)
	}
	return newStore(globalPath, ProjectPath(projectDir))
}

func newStore(globalPath, projectPath string) (*Store, error) {
	s := &Store{
		globalPath:  globalPath,
		projectPath: projectPath,
		global:      make(map[string]any),
		project:     make(map[string]any),
	}

	if err := load(s.globalPath, s.global); err != nil {
		return nil, fmt.Errorf("failed to load global config: %w", err)
	}
	if err := load(s.projectPath, s.project); err != nil {
		return nil, fmt.Errorf("failed to load project config: %w", err)
	}

	return s, nil
}

// Get returns the effective value for key; project values shadow global
// ones. Store therefore satisfies Source.
func (s *Store) Get(key string) any {
	if v, ok := s.project[key]; ok {
		return v
	}
	return s.global[key]
}

// Lookup reports where key is set, preferring the project scope.
func (s *Store) Lookup(key string) (any, Scope, bool) {
	if v, ok := s.project[key]; ok {
		return v, ScopeProject, true
	}
	if v, ok := s.global[key]; ok {
		return v, ScopeGlobal, true
	}
	return nil, ScopeProject, false
}

// Has reports whether key is set in either scope.
func (s *Store) Has(key string) bool {
	_, _, ok := s.Lookup(key)
	return ok
}

// Set stores value under key in scope and writes that file.
func (s *Store) Set(scope Scope, key string, value any) error {
	s.layer(scope)[key] = value
	return s.save(scope)
}

// Delete removes key from scope and writes that file.
func (s *Store) Delete(scope Scope, key string) error {
	delete(s.layer(scope), key)
	return s.save(scope)
}

// Keys returns every key set in either scope, sorted and deduplicated.
func (s *Store) Keys() []string {
	seen := make(map[string]bool)
	var keys []string
	for _, layer := range []map[string]any{s.project, s.global} {
		for k := range layer {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)
	return keys
}

// Path returns the file backing scope.
func (s *Store) Path(scope Scope) string {
	if scope == ScopeGlobal {
		return s.globalPath
	}
	return s.projectPath
}

// ProjectPath returns the project settings file for a workspace directory.
func ProjectPath(dir string) string {
	return filepath.Join(dir, ProjectFileName)
}

// GlobalPath returns the per-user settings file. XDG_CONFIG_HOME is honored
// on unix-like systems and APPDATA on Windows.
func GlobalPath() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "darwin", "linux", "freebsd", "openbsd", "netbsd":
		if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
			configDir = xdgHome
		} else {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}

	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			return "", fmt.Errorf("APPDATA environment variable not set")
		}

	default:
		return "", fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}

	return filepath.Join(configDir, "docwiki", "config.yaml"), nil
}

// MARK: Internal helpers

func (s *Store) layer(scope Scope) map[string]any {
	if scope == ScopeGlobal {
		return s.global
	}
	return s.project
}

func load(path string, data map[string]any) error {
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	return yaml.Unmarshal(content, &data)
}

func (s *Store) save(scope Scope) error {
	path := s.Path(scope)
	content, err := yaml.Marshal(s.layer(scope))
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
