package layout

import (
	"github.com/PuerkitoBio/goquery"

	"LawCorpus/internal/domain"
)

// Format identifies one of the known markup layouts.
type Format int

const (
	FormatUnknown Format = iota
	// FormatSubdivisions: main title fragments plus "rct_" subdivision containers.
	FormatSubdivisions
	// FormatPlainText: a single plain-text body container.
	FormatPlainText
	// FormatArticleTitles: "doc-ti" title paragraphs followed by "ti-art" article blocks.
	FormatArticleTitles
	// FormatGroupTables: main title fragments with group headers introducing tables.
	FormatGroupTables
)

func (f Format) String() string {
	switch f {
	case FormatSubdivisions:
		return "subdivisions"
	case FormatPlainText:
		return "plain-text"
	case FormatArticleTitles:
		return "article-titles"
	case FormatGroupTables:
		return "group-tables"
	default:
		return "unknown"
	}
}

const (
	selMainTitle    = "div.eli-main-title"
	selTitleParts   = "p.oj-doc-ti"
	selPlainText    = "div#TexteOnly"
	selDocTitles    = "p.doc-ti"
	selArticleTitle = "p.ti-art"
	selGroupHeaders = "p.oj-ti-grseq-1"
	selSubdivisions = `div.eli-subdivision[id^="rct_"]`
	selOJNormal     = "p.oj-normal"

	classArticleTitle = "ti-art"
	classNormal       = "normal"
	classGroupHeader  = "oj-ti-grseq-1"
)

// Signals are the structural markers computed once per document.
type Signals struct {
	MainTitle     *goquery.Selection
	TitleParts    *goquery.Selection
	PlainText     *goquery.Selection
	DocTitles     *goquery.Selection
	ArticleTitles *goquery.Selection
	GroupHeaders  *goquery.Selection
	Subdivisions  *goquery.Selection
}

// Inspect collects the classification signals of doc.
func Inspect(doc *goquery.Document) Signals {
	mainTitle := doc.Find(selMainTitle).First()
	return Signals{
		MainTitle:     mainTitle,
		TitleParts:    mainTitle.Find(selTitleParts),
		PlainText:     doc.Find(selPlainText).First(),
		DocTitles:     doc.Find(selDocTitles),
		ArticleTitles: doc.Find(selArticleTitle),
		GroupHeaders:  doc.Find(selGroupHeaders),
		Subdivisions:  doc.Find(selSubdivisions),
	}
}

func (s Signals) hasTitle() bool {
	return s.MainTitle.Length() > 0 && s.TitleParts.Length() > 0
}

type variant struct {
	format  Format
	matches func(Signals) bool
	extract func(*goquery.Document, Signals) []domain.RawSection
}

// variants is evaluated in order; the first matching signature wins.
var variants = []variant{
	{
		format: FormatSubdivisions,
		matches: func(s Signals) bool {
			return s.hasTitle() && s.Subdivisions.Length() > 0
		},
		extract: extractSubdivisions,
	},
	{
		format: FormatPlainText,
		matches: func(s Signals) bool {
			return s.PlainText.Length() > 0
		},
		extract: extractPlainText,
	},
	{
		format: FormatArticleTitles,
		matches: func(s Signals) bool {
			return s.DocTitles.Length() > 0 && s.ArticleTitles.Length() > 0
		},
		extract: extractArticleTitles,
	},
	{
		format: FormatGroupTables,
		matches: func(s Signals) bool {
			return s.hasTitle() && s.GroupHeaders.Length() > 0 && s.Subdivisions.Length() == 0
		},
		extract: extractGroupTables,
	},
}

// Classify returns the format of doc together with its signals.
func Classify(doc *goquery.Document) (Format, Signals) {
	signals := Inspect(doc)
	if v, ok := match(signals); ok {
		return v.format, signals
	}
	return FormatUnknown, signals
}

// Extract classifies doc and runs the matching extractor. Unknown documents
// produce an empty, non-nil slice.
func Extract(doc *goquery.Document) (Format, []domain.RawSection) {
	signals := Inspect(doc)
	v, ok := match(signals)
	if !ok {
		return FormatUnknown, []domain.RawSection{}
	}

	sections := v.extract(doc, signals)
	if sections == nil {
		sections = []domain.RawSection{}
	}
	return v.format, sections
}

func match(s Signals) (variant, bool) {
	for _, v := range variants {
		if v.matches(s) {
			return v, true
		}
	}
	return variant{}, false
}
