package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCorpusFlatten(t *testing.T) {
	t.Parallel()

	corpus := Corpus{
		{{Name: "a", Text: "1"}, {Name: "a", Text: "2"}},
		{},
		{{Name: "b", Text: "3"}},
	}

	assert.Equal(t, 3, corpus.SectionCount())
	assert.Equal(t, []Section{
		{Name: "a", Text: "1"},
		{Name: "a", Text: "2"},
		{Name: "b", Text: "3"},
	}, corpus.Flatten())
}

func TestCorpusFlattenEmpty(t *testing.T) {
	t.Parallel()

	flat := Corpus{}.Flatten()
	assert.NotNil(t, flat)
	assert.Empty(t, flat)
}
