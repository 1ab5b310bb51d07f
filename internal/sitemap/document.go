package sitemap

import (
	"encoding/xml"
	"strings"

	"github.com/romangod6/sitemap-updater/internal/models"
)

var (
	urlName        = xml.Name{Space: models.SitemapNamespace, Local: "url"}
	locName        = xml.Name{Space: models.SitemapNamespace, Local: "loc"}
	lastModName    = xml.Name{Space: models.SitemapNamespace, Local: "lastmod"}
	changeFreqName = xml.Name{Space: models.SitemapNamespace, Local: "changefreq"}
	priorityName   = xml.Name{Space: models.SitemapNamespace, Local: "priority"}
)

// urlElements returns the direct url children of the root in document order.
func (d *Document) urlElements() []*Node {
	var urls []*Node
	for _, c := range d.Root.Children {
		if c.Type == ElementNode && c.Name == urlName {
			urls = append(urls, c)
		}
	}
	return urls
}

// Entries returns an ordered view of the url entries. Duplicate locations
// are reported as they appear.
func (d *Document) Entries() []models.URL {
	urls := d.urlElements()
	entries := make([]models.URL, 0, len(urls))
	for _, u := range urls {
		entry := models.URL{
			Loc:        childText(u, locName),
			ChangeFreq: childText(u, changeFreqName),
			Priority:   childText(u, priorityName),
		}
		if lastmod := u.Child(lastModName); lastmod != nil {
			entry.HasLastMod = true
			entry.LastMod = strings.TrimSpace(lastmod.Text())
		}
		entries = append(entries, entry)
	}
	return entries
}

// SetLastMod overwrites every entry's lastmod text with date. Entries without
// a lastmod are left alone. updated counts entries whose text changed,
// withDate counts entries that have a lastmod at all.
func (d *Document) SetLastMod(date string) (updated, withDate int) {
	for _, u := range d.urlElements() {
		lastmod := u.Child(lastModName)
		if lastmod == nil {
			continue
		}
		withDate++
		old := lastmod.Text()
		lastmod.SetText(date)
		if old != date {
			updated++
		}
	}
	return updated, withDate
}

func childText(n *Node, name xml.Name) string {
	c := n.Child(name)
	if c == nil {
		return ""
	}
	return strings.TrimSpace(c.Text())
}
