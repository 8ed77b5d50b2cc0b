package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vasptech/vaspx-actions/internal/catalog"
)

func TestVerifyAll_EmbeddedCatalogPasses(t *testing.T) {
	results := verifyAll(catalog.MustDefault())

	require.NotEmpty(t, results)
	for _, r := range results {
		assert.True(t, r.passed, "%s: %s", r.name, r.message)
	}
}

func TestVerifyComparisonProducts_OneResultPerKey(t *testing.T) {
	results := verifyComparisonProducts(catalog.MustDefault())

	assert.Len(t, results, 11)
	assert.Equal(t, "Comparison desalite-ednect", results[0].name)
	assert.Equal(t, "names Ednect, Desalite", results[0].message)
}
