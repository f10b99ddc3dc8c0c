package segment

import (
	"log/slog"
	"strings"
	"unicode/utf8"

	"LawCorpus/internal/domain"
)

// DefaultMaxBytes is the byte budget applied when none is configured.
const DefaultMaxBytes = 10000

// Segmenter cuts raw extractor output into sections that fit a byte budget.
type Segmenter struct {
	maxLen int
	logger *slog.Logger
}

// New builds a Segmenter; non-positive maxLen falls back to DefaultMaxBytes.
func New(maxLen int, logger *slog.Logger) *Segmenter {
	if maxLen <= 0 {
		maxLen = DefaultMaxBytes
	}
	return &Segmenter{maxLen: maxLen, logger: logger}
}

// MaxBytes returns the effective byte budget.
func (s *Segmenter) MaxBytes() int {
	return s.maxLen
}

// Split returns raw as one trimmed section when it fits, otherwise peels prefixes
// cut at the last newline, then the last space, then the last whole character
// that keeps each piece within the budget.
func (s *Segmenter) Split(raw domain.RawSection) []domain.Section {
	text := raw.Text
	if len(text) <= s.maxLen {
		return []domain.Section{{Name: raw.Name, Text: strings.TrimSpace(text)}}
	}

	s.debug("splitting section", "name", shorten(raw.Name, 60), "bytes", len(text))

	var sections []domain.Section
	for len(text) > 0 {
		if len(text) <= s.maxLen {
			sections = appendTrimmed(sections, raw.Name, text)
			break
		}

		cut := s.cutPoint(text)
		sections = appendTrimmed(sections, raw.Name, text[:cut])
		text = text[cut:]
	}

	return sections
}

// SplitAll segments every raw section in order and checks the budget on the result.
func (s *Segmenter) SplitAll(raws []domain.RawSection) domain.Document {
	doc := make(domain.Document, 0, len(raws))
	for _, raw := range raws {
		doc = append(doc, s.Split(raw)...)
	}
	s.verify(doc)
	return doc
}

func (s *Segmenter) cutPoint(text string) int {
	if cut, ok := FindBreakpoint(Boundaries(text, '\n'), s.maxLen); ok {
		return cut
	}
	if cut, ok := FindBreakpoint(Boundaries(text, ' '), s.maxLen); ok {
		return cut
	}

	cut := LinearCut(text, s.maxLen)
	if cut == 0 {
		// budget smaller than a single character; move on by one rune
		_, cut = utf8.DecodeRuneInString(text)
	}
	return cut
}

func (s *Segmenter) verify(doc domain.Document) {
	for i, section := range doc {
		if n := len(section.Text); n > s.maxLen {
			s.warn("section too long after split", "index", i, "bytes", n, "name", shorten(section.Name, 60))
		}
	}
}

func appendTrimmed(sections []domain.Section, name, text string) []domain.Section {
	text = strings.TrimSpace(text)
	if text == "" {
		return sections
	}
	return append(sections, domain.Section{Name: name, Text: text})
}

func shorten(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := LinearCut(s, limit)
	return s[:cut] + "..."
}

func (s *Segmenter) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

func (s *Segmenter) warn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
