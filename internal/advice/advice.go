// Package advice loads the built-in catalogs of per-category wellness tips.
package advice

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/IT-FEST-2025/diagnify/internal/health"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// DefaultCatalog is used when no catalog is named.
const DefaultCatalog = "en"

// Catalog groups tips by category.
type Catalog struct {
	Name        string                    `yaml:"name"`
	Version     int                       `yaml:"version"`
	Description string                    `yaml:"description"`
	Categories  map[health.Category]Entry `yaml:"categories"`
}

// Entry is the advice for one category.
type Entry struct {
	Title string   `yaml:"title"`
	Tips  []string `yaml:"tips"`
}

// LoadBuiltin loads a built-in catalog by name.
func LoadBuiltin(name string) (*Catalog, error) {
	if name == "" {
		name = DefaultCatalog
	}
	data, err := builtinFS.ReadFile("builtin/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("advice.LoadBuiltin: unknown catalog %q: %w", name, err)
	}
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("advice.LoadBuiltin: parse %q: %w", name, err)
	}
	for cat := range c.Categories {
		if !cat.Valid() {
			return nil, fmt.Errorf("advice.LoadBuiltin: %q: unknown category %q", name, cat)
		}
	}
	return &c, nil
}

// List returns the names of all built-in catalogs.
func List() ([]string, error) {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		n := e.Name()
		if strings.HasSuffix(n, ".yaml") {
			names = append(names, strings.TrimSuffix(n, ".yaml"))
		}
	}
	return names, nil
}

// Entry returns the catalog entry for cat.
func (c *Catalog) Entry(cat health.Category) (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}
	e, ok := c.Categories[cat]
	return e, ok
}

// Tips returns the tips for c, or nil.
func (c *Catalog) Tips(cat health.Category) []string {
	e, _ := c.Entry(cat)
	return e.Tips
}

// Attach fills in tips for categorized recommendations that carry none.
// The input slice is not modified.
func (c *Catalog) Attach(recs []health.Recommendation) []health.Recommendation {
	out := make([]health.Recommendation, len(recs))
	for i, r := range recs {
		if len(r.Tips) == 0 && r.Category != "" {
			if tips := c.Tips(r.Category); len(tips) > 0 {
				r.Tips = append([]string(nil), tips...)
			}
		}
		out[i] = r
	}
	return out
}

// Format renders the catalog as plain text, categories in scoring order.
func Format(c *Catalog) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Catalog: %s (v%d)\n", c.Name, c.Version)
	if c.Description != "" {
		fmt.Fprintf(&b, "%s\n", strings.TrimSpace(c.Description))
	}
	for _, cat := range health.Categories {
		e, ok := c.Categories[cat]
		if !ok {
			continue
		}
		title := e.Title
		if title == "" {
			title = cat.Label()
		}
		fmt.Fprintf(&b, "\n%s [%s]\n", title, cat)
		for _, tip := range e.Tips {
			fmt.Fprintf(&b, "  - %s\n", tip)
		}
	}
	return b.String()
}
