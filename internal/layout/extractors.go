package layout

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"LawCorpus/internal/domain"
)

const (
	articlePrefix    = "Article "
	articlesPerChunk = 4
	unnamedAct       = "Unnamed Law"
)

// extractSubdivisions keeps every second normal paragraph of each subdivision.
// The markup alternates label and value paragraphs; values sit at odd indexes.
func extractSubdivisions(_ *goquery.Document, s Signals) []domain.RawSection {
	name := joinStripped(s.TitleParts, "")

	var sections []domain.RawSection
	s.Subdivisions.Each(func(_ int, div *goquery.Selection) {
		div.Find(selOJNormal).Each(func(i int, p *goquery.Selection) {
			if i%2 == 1 {
				sections = append(sections, domain.RawSection{Name: name, Text: StrippedText(p)})
			}
		})
	})
	return sections
}

// extractPlainText buffers paragraphs per "Article " heading and emits groups of
// four articles per section.
func extractPlainText(doc *goquery.Document, s Signals) []domain.RawSection {
	name := unnamedAct
	if strong := doc.Find("strong").First(); strong.Length() > 0 {
		name = StrippedText(strong)
	}

	var (
		articles   []string
		current    strings.Builder
		collecting bool
	)
	flush := func() {
		if collecting && current.Len() > 0 {
			articles = append(articles, current.String())
		}
		current.Reset()
	}

	s.PlainText.Find("p").Each(func(_ int, p *goquery.Selection) {
		text := StrippedText(p)
		switch {
		case strings.HasPrefix(text, articlePrefix):
			flush()
			collecting = true
			current.WriteString(text)
			current.WriteString("\n")
		case collecting && text != "":
			current.WriteString(text)
			current.WriteString("\n")
		}
	})
	flush()

	sections := make([]domain.RawSection, 0, (len(articles)+articlesPerChunk-1)/articlesPerChunk)
	for i := 0; i < len(articles); i += articlesPerChunk {
		end := min(i+articlesPerChunk, len(articles))
		sections = append(sections, domain.RawSection{
			Name: name,
			Text: strings.Join(articles[i:end], "\n"),
		})
	}
	return sections
}

// extractArticleTitles collects normal paragraphs after each article title until
// a paragraph of any other class closes the article.
func extractArticleTitles(doc *goquery.Document, s Signals) []domain.RawSection {
	name := joinStripped(s.DocTitles, " ")

	var (
		sections   []domain.RawSection
		current    strings.Builder
		collecting bool
	)
	emit := func() {
		if text := strings.TrimSpace(current.String()); text != "" {
			sections = append(sections, domain.RawSection{Name: name, Text: text})
		}
		current.Reset()
	}

	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		switch {
		case p.HasClass(classArticleTitle):
			if collecting {
				emit()
			}
			collecting = true
			current.Reset()
		case collecting && p.HasClass(classNormal):
			current.WriteString(StrippedText(p))
			current.WriteString(" ")
		case collecting:
			emit()
			collecting = false
		}
	})
	if collecting {
		emit()
	}

	return sections
}

// extractGroupTables walks the siblings after each group header and turns every
// table up to the next header into one section.
func extractGroupTables(_ *goquery.Document, s Signals) []domain.RawSection {
	name := joinStripped(s.TitleParts, "")

	var sections []domain.RawSection
	s.GroupHeaders.Each(func(_ int, header *goquery.Selection) {
		header.NextAll().EachWithBreak(func(_ int, sibling *goquery.Selection) bool {
			switch {
			case isElement(sibling, atom.Table):
				text := strings.TrimSpace(joinStripped(sibling.Find(selOJNormal), " "))
				if text != "" {
					sections = append(sections, domain.RawSection{Name: name, Text: text})
				}
			case isElement(sibling, atom.P) && sibling.HasClass(classGroupHeader):
				return false
			}
			return true
		})
	})
	return sections
}

// StrippedText concatenates the trimmed text nodes below sel without separators.
func StrippedText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		writeStripped(&b, n)
	}
	return b.String()
}

func writeStripped(b *strings.Builder, n *html.Node) {
	if n.Type == html.TextNode {
		b.WriteString(strings.TrimSpace(n.Data))
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeStripped(b, c)
	}
}

func joinStripped(sel *goquery.Selection, sep string) string {
	parts := make([]string, 0, sel.Length())
	sel.Each(func(_ int, item *goquery.Selection) {
		parts = append(parts, StrippedText(item))
	})
	return strings.Join(parts, sep)
}

func isElement(sel *goquery.Selection, tag atom.Atom) bool {
	if sel.Length() == 0 {
		return false
	}
	n := sel.Get(0)
	return n.Type == html.ElementNode && n.DataAtom == tag
}
