package trends

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeduplicate_MergesNearDuplicates(t *testing.T) {
	statements := []string{
		"Leather jackets are back",
		"Leather jacket trend returns",
		"Sustainable fabrics rising",
	}

	unique := Deduplicate(statements, 0.7)

	require.Len(t, unique, 2)
	assert.Contains(t, unique[0], "Leather jackets are back")
	assert.Contains(t, unique[0], "Leather jacket trend returns")
	assert.Equal(t, "Sustainable fabrics rising", unique[1])
}

func TestDeduplicate_KeepsDistinctStatements(t *testing.T) {
	statements := []string{
		"Oversized blazers dominate office wear",
		"Chunky sneakers pair with everything",
		"Pastel colors define spring palettes",
	}

	unique := Deduplicate(statements, 0.7)

	assert.Equal(t, statements, unique)
}

func TestDeduplicate_GreedyMergeIsNotTransitive(t *testing.T) {
	// B is similar to both A and C, but A and C share too little to merge
	// directly. The first pass absorbs B into A's group; C stays separate.
	statements := []string{
		"denim jacket denim style",
		"denim jacket vintage style vintage wash",
		"vintage wash vintage style classic",
	}

	unique := Deduplicate(statements, 0.7)

	// Greedy single-pass merging never collapses a chain into one group
	// unless every member clears the threshold against the group seed.
	assert.GreaterOrEqual(t, len(unique), 2)
	for _, u := range unique {
		assert.NotEmpty(t, u)
	}
}

func TestDeduplicate_EmptyInput(t *testing.T) {
	assert.Nil(t, Deduplicate(nil, 0.7))
	assert.Nil(t, Deduplicate([]string{}, 0.7))
}

func TestDeduplicate_SingleStatement(t *testing.T) {
	unique := Deduplicate([]string{"Ballet flats return"}, 0.7)
	assert.Equal(t, []string{"Ballet flats return"}, unique)
}

func TestDeduplicate_IdenticalStatementsMergeToOne(t *testing.T) {
	statements := []string{
		"Cargo pants everywhere this fall",
		"Cargo pants everywhere this fall",
		"Cargo pants everywhere this fall",
	}

	unique := Deduplicate(statements, 0.7)

	require.Len(t, unique, 1)
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float64{1, 0}, []float64{1, 0}), 1e-9)
	assert.InDelta(t, 0.0, cosineSimilarity([]float64{1, 0}, []float64{0, 1}), 1e-9)
	assert.Equal(t, 0.0, cosineSimilarity([]float64{0, 0}, []float64{1, 1}))
}

func TestVectorize_StableAndNormalized(t *testing.T) {
	docs := []string{"red leather jacket", "blue denim jacket"}

	first := vectorize(docs)
	second := vectorize(docs)

	require.Equal(t, first, second)
	for _, vec := range first {
		norm := 0.0
		for _, v := range vec {
			norm += v * v
		}
		assert.InDelta(t, 1.0, norm, 1e-9)
	}
}
