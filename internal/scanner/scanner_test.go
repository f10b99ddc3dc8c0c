package scanner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"LawCorpus/internal/domain"
)

type stubScanner struct{ name string }

func (s stubScanner) Name() string { return s.name }

func (s stubScanner) Scan(context.Context, Request) (domain.Corpus, error) {
	return domain.Corpus{}, nil
}

func TestRegistryResolve(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Register(stubScanner{name: "eurlex"})

	got, err := reg.Resolve("eurlex")
	require.NoError(t, err)
	assert.Equal(t, "eurlex", got.Name())

	_, err = reg.Resolve("missing")
	assert.EqualError(t, err, "scanner missing is not registered")
}

func TestRegistryZeroValue(t *testing.T) {
	t.Parallel()

	var reg Registry
	reg.Register(stubScanner{name: "x"})

	_, err := reg.Resolve("x")
	assert.NoError(t, err)
}
