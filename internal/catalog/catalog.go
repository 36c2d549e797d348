// Package catalog holds the immutable menu index that names are resolved against.
package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/siddharthshetty008/restoAnalyze/internal/models"
)

// Entry is one input row for Build. The zero value of Inactive means the
// entry is active.
type Entry struct {
	ID       int64
	Name     string
	Price    decimal.Decimal
	Category string
	Inactive bool
}

// Catalog is built once and then only read, so it is safe to share between
// goroutines.
type Catalog struct {
	items      []*models.MenuItem
	index      map[string]*models.MenuItem
	candidates []Candidate
}

// Candidate is an active item with its token set precomputed for fuzzy matching.
type Candidate struct {
	Item   *models.MenuItem
	Tokens map[string]struct{}
}

// Build indexes entries in input order. Entries with a blank name or a
// non-positive price are discarded, and a repeated name keeps the first
// entry. Every item's exact name is registered before any variant, then the
// lowercase, parenthesis-stripped and cleaned variants are registered in
// input order; an already-claimed key is never overwritten.
func Build(entries []Entry) *Catalog {
	c := &Catalog{index: make(map[string]*models.MenuItem)}
	seen := make(map[string]struct{}, len(entries))

	for _, e := range entries {
		name := strings.TrimSpace(e.Name)
		if name == "" || !e.Price.IsPositive() {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		category := e.Category
		if category == "" {
			category = "General"
		}
		c.items = append(c.items, &models.MenuItem{
			ID:        e.ID,
			Name:      name,
			CleanName: CleanName(name),
			Price:     e.Price,
			Category:  category,
			Active:    !e.Inactive,
		})
	}

	for _, item := range c.items {
		if item.Active {
			c.claim(item.Name, item)
		}
	}
	for _, item := range c.items {
		if !item.Active {
			continue
		}
		c.claim(strings.ToLower(item.Name), item)
		c.claim(StripParens(item.Name), item)
		c.claim(item.CleanName, item)
		c.candidates = append(c.candidates, Candidate{Item: item, Tokens: Tokens(item.CleanName)})
	}
	return c
}

func (c *Catalog) claim(key string, item *models.MenuItem) {
	if key == "" {
		return
	}
	if _, taken := c.index[key]; !taken {
		c.index[key] = item
	}
}

// LookupExact resolves name by the same forms Build registers: exact,
// lowercase, parenthesis-stripped and cleaned.
func (c *Catalog) LookupExact(name string) (*models.MenuItem, bool) {
	for _, key := range []string{name, strings.ToLower(name), StripParens(name), CleanName(name)} {
		if item, ok := c.index[key]; ok {
			return item, true
		}
	}
	return nil, false
}

// Items returns catalog entries in input order. The slice is a copy; the
// items themselves are shared and must not be modified.
func (c *Catalog) Items() []*models.MenuItem {
	out := make([]*models.MenuItem, len(c.items))
	copy(out, c.items)
	return out
}

// Active returns the entries eligible for fuzzy matching, in input order.
func (c *Catalog) Active() []*models.MenuItem {
	out := make([]*models.MenuItem, 0, len(c.items))
	for _, item := range c.items {
		if item.Active {
			out = append(out, item)
		}
	}
	return out
}

// Candidates returns the active items in input order with their token sets.
// The returned slice is shared and must be treated as read-only.
func (c *Catalog) Candidates() []Candidate {
	return c.candidates
}

func (c *Catalog) Len() int { return len(c.items) }

// EntriesFromItems converts stored menu items back into Build input.
func EntriesFromItems(items []*models.MenuItem) []Entry {
	entries := make([]Entry, len(items))
	for i, it := range items {
		entries[i] = Entry{ID: it.ID, Name: it.Name, Price: it.Price, Category: it.Category, Inactive: !it.Active}
	}
	return entries
}
