package domain

// DocumentReference is a listing entry that may point to an HTML rendition.
type DocumentReference struct {
	Href    string
	InForce bool
}

// RawSection is extractor output; its text length is unconstrained.
type RawSection struct {
	Name string
	Text string
}

// Section is the persisted unit. Text never exceeds the configured byte budget.
type Section struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// Document holds the sections of one source act in extraction order.
// An empty Document is valid: the act was fetched but no content was recognised.
type Document []Section

// Corpus is the ordered collection of crawled documents.
type Corpus []Document

// SectionCount returns the total number of sections across all documents.
func (c Corpus) SectionCount() int {
	total := 0
	for _, doc := range c {
		total += len(doc)
	}
	return total
}

// Flatten returns every section of the corpus in document order.
func (c Corpus) Flatten() []Section {
	flat := make([]Section, 0, c.SectionCount())
	for _, doc := range c {
		flat = append(flat, doc...)
	}
	return flat
}
