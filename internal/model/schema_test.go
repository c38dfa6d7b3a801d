package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchema(t *testing.T) {
	t.Parallel()

	raw, err := Schema()
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, "LOIFields", doc["title"])

	defs, ok := doc["$defs"].(map[string]any)
	require.True(t, ok, "schema should carry definitions for the sub-records")
	for _, name := range []string{
		"PropertyDetails", "PartyInformation", "FinancialTerms",
		"Timeline", "Contingencies", "TransactionCosts",
	} {
		assert.Contains(t, defs, name)
	}

	// Cached: a second call returns the same bytes.
	again, err := Schema()
	require.NoError(t, err)
	assert.Equal(t, raw, again)
}
