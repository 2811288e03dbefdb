// Package registry manages the named remotes a user has configured: which
// outline service to talk to and which course scope to edit. The registry is
// a plain YAML file so it can be inspected and versioned by hand.
package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Remote is one configured outline service target.
type Remote struct {
	Name     string `yaml:"name"`
	BaseURL  string `yaml:"base_url"`
	CourseID string `yaml:"course_id"`
	// TokenEnv names the environment variable holding the bearer token, so
	// the token itself never lands in the file.
	TokenEnv string `yaml:"token_env,omitempty"`
}

// Validate checks the fields needed to reach the remote.
func (r Remote) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("remote name must not be empty")
	}
	if strings.TrimSpace(r.BaseURL) == "" {
		return fmt.Errorf("remote %q: base_url must not be empty", r.Name)
	}
	if strings.TrimSpace(r.CourseID) == "" {
		return fmt.Errorf("remote %q: course_id must not be empty", r.Name)
	}
	return nil
}

// Token resolves the bearer token from the configured environment variable.
func (r Remote) Token() string {
	if r.TokenEnv == "" {
		return ""
	}
	return os.Getenv(r.TokenEnv)
}

// Registry is the set of configured remotes backed by one YAML file.
type Registry struct {
	path    string
	remotes map[string]Remote
}

type registryFile struct {
	Remotes []Remote `yaml:"remotes"`
}

// Load reads the registry from dir, creating an empty one when the file does
// not exist yet.
func Load(dir string) (*Registry, error) {
	r := &Registry{
		path:    filepath.Join(dir, "remotes.yaml"),
		remotes: make(map[string]Remote),
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return r, nil
		}
		return nil, fmt.Errorf("read registry: %w", err)
	}

	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse registry: %w", err)
	}
	for _, rem := range file.Remotes {
		r.remotes[rem.Name] = rem
	}
	return r, nil
}

// Save writes the registry back to disk.
func (r *Registry) Save() error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	file := registryFile{Remotes: r.List()}
	data, err := yaml.Marshal(file)
	if err != nil {
		return fmt.Errorf("marshal registry: %w", err)
	}
	return os.WriteFile(r.path, data, 0644)
}

// Add registers or replaces a remote.
func (r *Registry) Add(rem Remote) error {
	if err := rem.Validate(); err != nil {
		return err
	}
	r.remotes[rem.Name] = rem
	return nil
}

// Get looks up a remote by name.
func (r *Registry) Get(name string) (Remote, bool) {
	rem, ok := r.remotes[name]
	return rem, ok
}

// Remove drops a remote by name. Removing an unknown name is not an error.
func (r *Registry) Remove(name string) {
	delete(r.remotes, name)
}

// List returns the remotes sorted by name.
func (r *Registry) List() []Remote {
	out := make([]Remote, 0, len(r.remotes))
	for _, rem := range r.remotes {
		out = append(out, rem)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
