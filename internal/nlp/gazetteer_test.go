package nlp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/dunbar/internal/nlp"
)

func TestExtractLocations(t *testing.T) {
	// Scenario: a French note mentioning a city by its French name and a
	// country by an alias. Both resolve to their canonical entries.
	places := nlp.ExtractLocations("Weekend à Londres puis retour en Belgique !", nil)

	require.Len(t, places, 2)
	names := []string{places[0].Name, places[1].Name}
	assert.Contains(t, names, "london")
	assert.Contains(t, names, "belgium")
}

func TestExtractLocations_WholeWordOnly(t *testing.T) {
	// "parisien" must not match "paris".
	places := nlp.ExtractLocations("un restaurant parisien", nil)
	assert.Empty(t, places)
}

func TestExtractLocations_Punctuation(t *testing.T) {
	places := nlp.ExtractLocations("On se voit à Paris.", nil)
	require.Len(t, places, 1)
	assert.Equal(t, nlp.PlaceCity, places[0].Type)
	assert.Equal(t, "paris", places[0].Name)
	assert.Equal(t, "FR", places[0].Country)
}

func TestExtractLocations_Dedup(t *testing.T) {
	// Canonical name and alias in the same text report the place once.
	places := nlp.ExtractLocations("Genève, aussi appelée Geneva", nil)
	assert.Len(t, places, 1)
}

func TestExtractLocations_MultiWord(t *testing.T) {
	places := nlp.ExtractLocations("road trip aux Etats-Unis", nil)
	require.Len(t, places, 1)
	assert.Equal(t, "US", places[0].ISO2)
}
