// Package pattern manages the Fabric pattern catalog, keyword-based pattern
// auto-selection, and pattern suggestions for unmatched tasks.
//
// Patterns are pre-authored instruction templates from
// https://github.com/danielmiessler/fabric, stored one directory per pattern
// with the template in system.md.
package pattern

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const templateFile = "system.md"

// Catalog reads pattern templates from a patterns directory laid out the
// upstream Fabric way: <dir>/<pattern_name>/system.md.
type Catalog struct {
	dir string
}

// DefaultDir returns the upstream Fabric patterns location
// (~/.config/fabric/patterns).
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "fabric", "patterns")
	}
	return filepath.Join(home, ".config", "fabric", "patterns")
}

// NewCatalog creates a catalog over dir. An empty dir uses DefaultDir.
func NewCatalog(dir string) *Catalog {
	if dir == "" {
		dir = DefaultDir()
	}
	return &Catalog{dir: dir}
}

// Dir returns the catalog's patterns directory.
func (c *Catalog) Dir() string {
	return c.dir
}

// NormalizeName cleans a caller-supplied pattern name, stripping the
// "fabric:" prefix when accidentally included.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.TrimPrefix(name, "fabric:")
	return name
}

// Template returns the system prompt template for a pattern.
func (c *Catalog) Template(name string) (string, error) {
	name = NormalizeName(name)
	if name == "" {
		return "", fmt.Errorf("pattern name is empty")
	}
	// Pattern names are single path elements; reject traversal.
	if strings.ContainsAny(name, "/\\") || name != filepath.Base(name) {
		return "", fmt.Errorf("invalid pattern name: %s", name)
	}

	data, err := os.ReadFile(filepath.Join(c.dir, name, templateFile))
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("pattern %q not found in %s", name, c.dir)
		}
		return "", fmt.Errorf("reading pattern %q: %w", name, err)
	}
	return string(data), nil
}

// Has reports whether a pattern exists in the catalog.
func (c *Catalog) Has(name string) bool {
	_, err := c.Template(name)
	return err == nil
}

// List returns all pattern names in the catalog, sorted.
func (c *Catalog) List() ([]string, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("patterns directory %s does not exist (install Fabric patterns or set FABRIC_PATTERNS_DIR)", c.dir)
		}
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(c.dir, e.Name(), templateFile)); err == nil {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
