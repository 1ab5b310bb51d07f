package main

import (
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/romangod6/sitemap-updater/internal/models"
	"github.com/romangod6/sitemap-updater/internal/sitemap"
)

// Read-only look at a local sitemap: entry counts and duplicated locations.
// The updater never de-duplicates; this is where duplicates get noticed.
func main() {
	path := sitemap.DefaultFileName
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	file, err := os.Open(path)
	if err != nil {
		log.Fatalf("Error opening sitemap: %v", err)
	}
	defer file.Close()

	doc, err := sitemap.Parse(file)
	if err != nil {
		log.Fatalf("Error parsing sitemap: %v", err)
	}

	entries := doc.Entries()
	report := analyze(entries)

	fmt.Printf("Sitemap: %s\n", path)
	if doc.Encoding != "" {
		fmt.Printf("Declared encoding: %s\n", doc.Encoding)
	}
	fmt.Printf("Total URLs found: %d\n", len(entries))
	fmt.Printf("  with lastmod:    %d\n", report.withDate)
	fmt.Printf("  without lastmod: %d\n", len(entries)-report.withDate)

	if len(report.dates) > 0 {
		fmt.Println("\n--- lastmod values ---")
		for _, d := range sortedKeys(report.dates) {
			fmt.Printf("  %-12s %d\n", d, report.dates[d])
		}
	}

	if len(report.duplicates) == 0 {
		fmt.Println("\nNo duplicate locations")
		return
	}

	fmt.Println("\n--- Duplicate locations ---")
	for _, loc := range sortedKeys(report.duplicates) {
		fmt.Printf("  %dx %s\n", report.duplicates[loc], loc)
	}
}

type inspection struct {
	withDate   int
	dates      map[string]int
	duplicates map[string]int
}

func analyze(entries []models.URL) inspection {
	report := inspection{
		dates:      make(map[string]int),
		duplicates: make(map[string]int),
	}

	seen := make(map[string]int)
	for _, entry := range entries {
		seen[entry.Loc]++
		if entry.HasLastMod {
			report.withDate++
			report.dates[entry.LastMod]++
		}
	}
	for loc, count := range seen {
		if count > 1 {
			report.duplicates[loc] = count
		}
	}

	return report
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
