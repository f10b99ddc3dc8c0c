package layout

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"LawCorpus/internal/domain"
)

const subdivisionsFixture = `
<div class="eli-main-title">
  <p class="oj-doc-ti">Regulation (EU) 2024/1</p>
  <p class="oj-doc-ti">of the European Parliament</p>
</div>
<div class="eli-subdivision" id="rct_1">
  <p class="oj-normal">(1)</p>
  <p class="oj-normal">First recital text.</p>
</div>
<div class="eli-subdivision" id="rct_2">
  <p class="oj-normal">(2)</p>
  <p class="oj-normal">Second recital text.</p>
  <p class="oj-normal">(3)</p>
</div>
<div class="eli-subdivision" id="art_1">
  <p class="oj-normal">ignored</p>
  <p class="oj-normal">ignored too</p>
</div>
<p class="oj-ti-grseq-1">Annex</p>`

const plainTextFixture = `
<div id="TexteOnly">
  <p><strong>Council Regulation (EEC) No 1/58</strong></p>
  <p>Preamble is not collected</p>
  <p>Article 1</p><p>Text one.</p><p> </p>
  <p>Article 2</p><p>Text two.</p>
  <p>Article 3</p>
  <p>Article 4</p><p>Text four.</p>
  <p>Article 5</p><p>Text five.</p>
</div>`

const articleTitlesFixture = `
<p class="doc-ti">COMMISSION REGULATION</p>
<p class="doc-ti">of 1 January 2000</p>
<p class="normal">Preamble is not collected</p>
<p class="ti-art">Article 1</p>
<p class="normal">First para.</p>
<p class="normal">Second para.</p>
<p class="ti-art">Article 2</p>
<p class="normal">Only para.</p>
<p class="note">A footnote closes the article</p>
<p class="normal">Not collected</p>
<p class="ti-art">Article 3</p>
<p class="ti-art">Article 4</p>
<p class="normal">Last.</p>`

const groupTablesFixture = `
<div class="eli-main-title"><p class="oj-doc-ti">Implementing Decision</p><p class="oj-doc-ti"> 2023/5</p></div>
<div>
  <p class="oj-ti-grseq-1">Part A</p>
  <table><tr><td><p class="oj-normal">Row one</p></td><td><p class="oj-normal">value</p></td></tr></table>
  <p class="oj-normal">Between tables</p>
  <table><tr><td><p class="oj-normal">Row two</p></td></tr></table>
  <p class="oj-ti-grseq-1">Part B</p>
  <table><tr><td><p class="other">no normal paragraphs</p></td></tr></table>
  <table><tr><td><p class="oj-normal">Row three</p></td></tr></table>
</div>`

func parse(t *testing.T, markup string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	require.NoError(t, err)
	return doc
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		markup string
		want   Format
	}{
		{name: "subdivisions", markup: subdivisionsFixture, want: FormatSubdivisions},
		{name: "plain text", markup: plainTextFixture, want: FormatPlainText},
		{name: "article titles", markup: articleTitlesFixture, want: FormatArticleTitles},
		{name: "group tables", markup: groupTablesFixture, want: FormatGroupTables},
		{name: "unknown", markup: `<p>Nothing to see</p>`, want: FormatUnknown},
		{
			name:   "plain text wins over article titles",
			markup: `<div id="TexteOnly"></div>` + articleTitlesFixture,
			want:   FormatPlainText,
		},
		{
			name:   "title without parts is not enough",
			markup: `<div class="eli-main-title"></div><p class="oj-ti-grseq-1">x</p>`,
			want:   FormatUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, _ := Classify(parse(t, tt.markup))
			assert.Equal(t, tt.want, got, "got %s", got)
		})
	}
}

func TestExtractSubdivisions(t *testing.T) {
	t.Parallel()

	format, sections := Extract(parse(t, subdivisionsFixture))

	require.Equal(t, FormatSubdivisions, format)
	name := "Regulation (EU) 2024/1of the European Parliament"
	assert.Equal(t, []domain.RawSection{
		{Name: name, Text: "First recital text."},
		{Name: name, Text: "Second recital text."},
	}, sections)
}

func TestExtractPlainText(t *testing.T) {
	t.Parallel()

	format, sections := Extract(parse(t, plainTextFixture))

	require.Equal(t, FormatPlainText, format)
	name := "Council Regulation (EEC) No 1/58"
	assert.Equal(t, []domain.RawSection{
		{Name: name, Text: "Article 1\nText one.\n\nArticle 2\nText two.\n\nArticle 3\n\nArticle 4\nText four.\n"},
		{Name: name, Text: "Article 5\nText five.\n"},
	}, sections)
}

func TestExtractPlainTextWithoutName(t *testing.T) {
	t.Parallel()

	_, sections := Extract(parse(t, `<div id="TexteOnly"><p>Article 9</p><p>Body</p></div>`))

	require.Len(t, sections, 1)
	assert.Equal(t, "Unnamed Law", sections[0].Name)
}

func TestExtractArticleTitles(t *testing.T) {
	t.Parallel()

	format, sections := Extract(parse(t, articleTitlesFixture))

	require.Equal(t, FormatArticleTitles, format)
	name := "COMMISSION REGULATION of 1 January 2000"
	assert.Equal(t, []domain.RawSection{
		{Name: name, Text: "First para. Second para."},
		{Name: name, Text: "Only para."},
		{Name: name, Text: "Last."},
	}, sections)
}

func TestExtractGroupTables(t *testing.T) {
	t.Parallel()

	format, sections := Extract(parse(t, groupTablesFixture))

	require.Equal(t, FormatGroupTables, format)
	name := "Implementing Decision2023/5"
	assert.Equal(t, []domain.RawSection{
		{Name: name, Text: "Row one value"},
		{Name: name, Text: "Row two"},
		{Name: name, Text: "Row three"},
	}, sections)
}

func TestExtractUnknownYieldsEmpty(t *testing.T) {
	t.Parallel()

	format, sections := Extract(parse(t, `<p>Nothing to see</p>`))

	assert.Equal(t, FormatUnknown, format)
	assert.NotNil(t, sections)
	assert.Empty(t, sections)
}

func TestExtractClassifiedButEmpty(t *testing.T) {
	t.Parallel()

	markup := `
	<div class="eli-main-title"><p class="oj-doc-ti">Act</p></div>
	<div class="eli-subdivision" id="rct_1"><p class="oj-normal">(1)</p></div>`

	format, sections := Extract(parse(t, markup))

	assert.Equal(t, FormatSubdivisions, format)
	assert.NotNil(t, sections)
	assert.Empty(t, sections)
}

func TestStrippedText(t *testing.T) {
	t.Parallel()

	doc := parse(t, "<p> Hello <b> world </b>!<!-- hidden --></p>")
	assert.Equal(t, "Helloworld!", StrippedText(doc.Find("p")))
}

func TestFormatString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "subdivisions", FormatSubdivisions.String())
	assert.Equal(t, "group-tables", FormatGroupTables.String())
	assert.Equal(t, "unknown", Format(99).String())
}
