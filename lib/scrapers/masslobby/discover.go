package masslobby

import (
	"net/url"

	"github.com/PuerkitoBio/goquery"
)

// DisclosureLinks collects the complete-disclosure links off a summary
// page, resolved against the page's own URL and deduplicated in document
// order.
func DisclosureLinks(base *url.URL, doc *goquery.Document) []string {
	var links []string
	seen := map[string]bool{}

	doc.Find(`a[href*='CompleteDisclosure.aspx']`).Each(func(_ int, a *goquery.Selection) {
		href := a.AttrOr("href", "")
		if href == "" {
			return
		}
		rel, err := url.Parse(href)
		if err != nil {
			return
		}
		abs := base.ResolveReference(rel).String()
		if seen[abs] {
			return
		}
		seen[abs] = true
		links = append(links, abs)
	})

	return links
}
