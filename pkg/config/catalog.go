// catalog.go - Directory of named characters.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/xob0t/GoParrot/pkg/parrot"
)

// Catalog indexes the characters under a root directory. Each character is
// either a subdirectory holding a config file or a .parrot bundle. Bundles
// are extracted on first use and removed by Close.
type Catalog struct {
	root string

	mu       sync.Mutex
	bundles  map[string]*Parrot
	cleanups []func()
}

// NewCatalog creates a catalog over root.
func NewCatalog(root string) *Catalog {
	return &Catalog{root: root, bundles: make(map[string]*Parrot)}
}

// Root returns the catalog directory.
func (c *Catalog) Root() string { return c.root }

// Names lists the available characters, sorted.
func (c *Catalog) Names() ([]string, error) {
	entries, err := os.ReadDir(c.root)
	if err != nil {
		return nil, fmt.Errorf("%w: read catalog %s: %v", parrot.ErrLoad, c.root, err)
	}

	seen := make(map[string]bool)
	var names []string
	for _, e := range entries {
		var name string
		switch {
		case e.IsDir() && hasConfig(filepath.Join(c.root, e.Name())):
			name = e.Name()
		case !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), BundleExt):
			name = strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		default:
			continue
		}
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// List loads every character. Entries that fail to load are logged and
// skipped.
func (c *Catalog) List() []*Parrot {
	names, err := c.Names()
	if err != nil {
		logger.Warnf("%v", err)
		return nil
	}
	out := make([]*Parrot, 0, len(names))
	for _, n := range names {
		p, err := c.Get(n)
		if err != nil {
			logger.Warnf("skip %s: %v", n, err)
			continue
		}
		out = append(out, p)
	}
	return out
}

// Get loads the named character. A directory wins over a bundle of the same
// name.
func (c *Catalog) Get(name string) (*Parrot, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return nil, fmt.Errorf("%w: invalid character name %q", parrot.ErrConfig, name)
	}

	dir := filepath.Join(c.root, name)
	if hasConfig(dir) {
		return Load(dir)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if p, ok := c.bundles[name]; ok {
		return p, nil
	}
	bundle := dir + BundleExt
	if _, err := os.Stat(bundle); err != nil {
		return nil, fmt.Errorf("%w: unknown character %q", parrot.ErrConfig, name)
	}
	p, cleanup, err := LoadBundle(bundle)
	if err != nil {
		return nil, err
	}
	c.bundles[name] = p
	c.cleanups = append(c.cleanups, cleanup)
	return p, nil
}

// Close removes extracted bundles.
func (c *Catalog) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, fn := range c.cleanups {
		fn()
	}
	c.cleanups = nil
	c.bundles = make(map[string]*Parrot)
	return nil
}

func hasConfig(dir string) bool {
	for _, name := range FileNames {
		if fi, err := os.Stat(filepath.Join(dir, name)); err == nil && !fi.IsDir() {
			return true
		}
	}
	return false
}
