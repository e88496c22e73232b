// Package scanconfig reads the optional scan manifest that tunes
// repository-mode traversal.
package scanconfig

import (
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// ManifestFile is the default filename for the scan manifest
const ManifestFile = "scan.toml"

// Manifest declares repository scan tuning in .pylens/scan.toml
type Manifest struct {
	// Roots restricts the scan to these repo-relative directories.
	// Empty means the whole repository.
	Roots []string `toml:"roots,omitempty"`

	// Ignore lists extra directory names to skip during the scan,
	// on top of the built-in ignore set.
	Ignore []string `toml:"ignore,omitempty"`
}

// Load reads <root>/.pylens/scan.toml. A missing manifest is not an
// error: it returns an empty manifest.
func Load(root string) (*Manifest, error) {
	path := filepath.Join(root, ".pylens", ManifestFile)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Manifest{}, nil
		}
		return nil, fmt.Errorf("read scan manifest: %w", err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", ManifestFile, err)
	}

	return &m, nil
}

// MergeIgnore combines the base ignore list with the manifest's extras,
// dropping duplicates while keeping order.
func (m *Manifest) MergeIgnore(base []string) []string {
	seen := make(map[string]bool, len(base)+len(m.Ignore))
	merged := make([]string, 0, len(base)+len(m.Ignore))

	for _, name := range append(append([]string{}, base...), m.Ignore...) {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		merged = append(merged, name)
	}
	return merged
}
