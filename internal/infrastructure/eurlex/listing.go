package eurlex

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"LawCorpus/internal/domain"
	"LawCorpus/internal/layout"
)

const (
	selLastPage      = `a[title="Last Page"]`
	selSearchResult  = "div.SearchResult"
	selForce         = "p.forceIndicator"
	selDownloadLinks = "a.piwik_download"

	inForceMarker = "In force"
	htmlMarker    = "HTML"
	// htmlLinkIndex is the position of the HTML rendition among an entry's
	// download links. Positional; the portal lists PDF first.
	htmlLinkIndex = 1
)

var pageExpr = regexp.MustCompile(`page=(\d+)`)

// DiscoverPageCount reads the "Last Page" control of the seed page. A result set
// without that control has a single page. Fetch errors are returned as is.
func (c *Crawler) DiscoverPageCount(ctx context.Context, seedURL string) (int, error) {
	doc, err := c.fetcher.Fetch(ctx, seedURL)
	if err != nil {
		return 0, err
	}
	return lastPageNumber(doc), nil
}

func lastPageNumber(doc *goquery.Document) int {
	href, ok := doc.Find(selLastPage).First().Attr("href")
	if !ok {
		return 1
	}

	match := pageExpr.FindStringSubmatch(href)
	if match == nil {
		return 1
	}

	n, err := strconv.Atoi(match[1])
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// parseEntries turns every search result of a listing page into a reference.
// Href holds the candidate HTML link, empty when the entry has too few links.
func parseEntries(doc *goquery.Document) []domain.DocumentReference {
	var refs []domain.DocumentReference
	doc.Find(selSearchResult).Each(func(_ int, entry *goquery.Selection) {
		ref := domain.DocumentReference{InForce: inForce(entry)}

		links := entry.Find(selDownloadLinks)
		if links.Length() > htmlLinkIndex {
			ref.Href, _ = links.Eq(htmlLinkIndex).Attr("href")
		}

		refs = append(refs, ref)
	})
	return refs
}

func inForce(entry *goquery.Selection) bool {
	found := false
	entry.Find(selForce).EachWithBreak(func(_ int, p *goquery.Selection) bool {
		found = layout.StrippedText(p) == inForceMarker
		return !found
	})
	return found
}

func isHTMLRendition(href string) bool {
	return strings.Contains(href, htmlMarker)
}

func buildPageURL(base string, page int) string {
	sep := "&"
	if !strings.Contains(base, "?") {
		sep = "?"
	}
	return base + sep + "page=" + strconv.Itoa(page)
}

// resolveURL makes a listing href absolute. Portal links start with "./", which
// stands for the portal origin.
func resolveURL(origin, href string) (string, error) {
	if strings.HasPrefix(href, "./") {
		return strings.TrimSuffix(origin, "/") + href[1:], nil
	}

	base, err := url.Parse(origin)
	if err != nil {
		return "", fmt.Errorf("invalid origin %s: %w", origin, err)
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("invalid document link %s: %w", href, err)
	}
	return base.ResolveReference(ref).String(), nil
}
