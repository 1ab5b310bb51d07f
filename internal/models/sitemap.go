// internal/models/sitemap.go
package models

// SitemapNamespace is the sitemaps.org protocol namespace.
const SitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// XSINamespace is the XML Schema instance namespace often declared on urlset.
const XSINamespace = "http://www.w3.org/2001/XMLSchema-instance"

// DateLayout is the YYYY-MM-DD layout written into lastmod.
const DateLayout = "2006-01-02"

// URL represents a single URL entry in the sitemap.
type URL struct {
	Loc        string `json:"loc"`
	LastMod    string `json:"lastmod,omitempty"`
	HasLastMod bool   `json:"hasLastmod"`
	ChangeFreq string `json:"changefreq,omitempty"`
	Priority   string `json:"priority,omitempty"`
}

// UpdateSummary describes the outcome of one lastmod rewrite.
type UpdateSummary struct {
	Path     string `json:"path"`
	Date     string `json:"date"`
	Entries  int    `json:"entries"`
	WithDate int    `json:"withDate"`
	Updated  int    `json:"updated"`
	DryRun   bool   `json:"dryRun"`
}
