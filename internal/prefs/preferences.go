// Package prefs holds user preferences in memory and persists them to a JSON
// file from a single background writer.
package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
)

const (
	// DirName is the settings directory created under the user's home.
	DirName = ".kexplorer"
	// FileName is the preferences file inside DirName.
	FileName = "appProperties.json"
)

// Preferences is the persisted user state.
type Preferences struct {
	HomeDir         string            `json:"homeDir"`
	Applications    map[string]string `json:"applications"`
	ShowHiddenFiles bool              `json:"showHiddenFiles"`
}

// DefaultPath returns <home>/.kexplorer/appProperties.json.
func DefaultPath(home string) string {
	return filepath.Join(home, DirName, FileName)
}

// DefaultHomeDir is the OS user home, or the filesystem root when it is unknown.
func DefaultHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return home
	}
	return string(filepath.Separator)
}

// Default returns the preferences used when nothing is stored.
func Default() Preferences {
	return Preferences{
		HomeDir:      DefaultHomeDir(),
		Applications: map[string]string{},
	}
}

// Clone returns a deep copy.
func (p Preferences) Clone() Preferences {
	apps := make(map[string]string, len(p.Applications))
	for name, command := range p.Applications {
		apps[name] = command
	}
	p.Applications = apps
	return p
}

// ApplicationNames returns the configured application names in sorted order.
func (p Preferences) ApplicationNames() []string {
	names := make([]string, 0, len(p.Applications))
	for name := range p.Applications {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Decode parses data over defaults. Keys absent from data keep their default
// values; an empty homeDir or a null applications map does too.
func Decode(data []byte, defaults Preferences) (Preferences, error) {
	out := defaults.Clone()
	if err := json.Unmarshal(data, &out); err != nil {
		return defaults.Clone(), err
	}
	if out.HomeDir == "" {
		out.HomeDir = defaults.HomeDir
	}
	if out.Applications == nil {
		out.Applications = map[string]string{}
	}
	return out, nil
}

// Encode renders p in the on-disk format.
func Encode(p Preferences) ([]byte, error) {
	if p.Applications == nil {
		p.Applications = map[string]string{}
	}
	return json.MarshalIndent(p, "", "  ")
}
