package scraper

import (
	"errors"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var errNoJobLinks = errors.New("no job links found")

// parseListing applies the target's selectors to an already rendered page.
func parseListing(html string, t Target, pageURL string) ([]listItem, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, err
	}

	items := make([]listItem, 0)
	seen := map[string]struct{}{}
	doc.Find(t.LinkSelector).Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}
		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			return
		}
		abs := normalizeURL(base.ResolveReference(ref).String())
		if abs == "" {
			return
		}
		if _, dup := seen[abs]; dup {
			return
		}
		seen[abs] = struct{}{}

		it := listItem{Link: abs, Title: cleanText(sel.Find(t.TitleSelector).Text())}
		if it.Title == "" {
			it.Title = cleanText(sel.Text())
		}
		if t.LocationSelector != "" {
			it.Location = cleanText(sel.Find(t.LocationSelector).Text())
		}
		items = append(items, it)
	})
	if len(items) == 0 {
		return nil, errNoJobLinks
	}
	return items, nil
}

func parseDetail(html string, t Target, pageURL string) (detail, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return detail{}, err
	}
	out := detail{
		URL:         pageURL,
		Title:       cleanText(doc.Find(t.TitleSelector).First().Text()),
		Description: cleanText(doc.Find(t.DetailBodySelector).First().Text()),
	}
	if t.LocationSelector != "" {
		out.Location = cleanText(doc.Find(t.LocationSelector).First().Text())
	}
	return out, nil
}
