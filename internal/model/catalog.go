package model

import "strings"

// CatalogEntry represents one registered brand: the organization's own brand
// or a tracked competitor, plus its known textual variants.
type CatalogEntry struct {
	Name       string   `json:"name" yaml:"name"`                             // Canonical brand name (non-empty)
	Variants   []string `json:"variants,omitempty" yaml:"variants,omitempty"` // Known spellings, abbreviations, domains
	IsOrgBrand bool     `json:"is_org_brand" yaml:"is_org_brand"`             // True for the tracked organization's own brand
}

// Terms returns the canonical name followed by all variants.
func (e CatalogEntry) Terms() []string {
	terms := make([]string, 0, len(e.Variants)+1)
	terms = append(terms, e.Name)
	terms = append(terms, e.Variants...)
	return terms
}

// Catalog is the ordered brand catalog supplied per analysis call.
// The engine never mutates it.
type Catalog []CatalogEntry

// OrgBrands returns the entries marked as the organization's own brand.
func (c Catalog) OrgBrands() []CatalogEntry {
	var out []CatalogEntry
	for _, e := range c {
		if e.IsOrgBrand {
			out = append(out, e)
		}
	}
	return out
}

// Competitors returns the entries not marked as the organization's brand.
func (c Catalog) Competitors() []CatalogEntry {
	var out []CatalogEntry
	for _, e := range c {
		if !e.IsOrgBrand {
			out = append(out, e)
		}
	}
	return out
}

// Lookup finds an entry by canonical name (case-insensitive).
func (c Catalog) Lookup(name string) (CatalogEntry, bool) {
	for _, e := range c {
		if strings.EqualFold(e.Name, name) {
			return e, true
		}
	}
	return CatalogEntry{}, false
}

// Valid reports whether every entry has a non-empty name.
func (c Catalog) Valid() bool {
	for _, e := range c {
		if strings.TrimSpace(e.Name) == "" {
			return false
		}
	}
	return true
}
