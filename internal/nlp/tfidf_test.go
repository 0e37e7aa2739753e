package nlp_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/dunbar/internal/nlp"
)

func TestComputeTFIDF_Weights(t *testing.T) {
	// Scenario: two documents sharing one term. The shared term carries a
	// lower IDF than terms unique to a single document.
	docs := []nlp.Doc{
		{ID: "a", Text: "randonnée montagne"},
		{ID: "b", Text: "randonnée plage"},
	}
	res := nlp.ComputeTFIDF(docs, nlp.TFIDFOptions{MaxVocab: -1})

	require.Contains(t, res.DF, "randonnee")
	assert.Equal(t, 2, res.DF["randonnee"])
	assert.Equal(t, 1, res.DF["montagne"])

	// Smoothed IDF: ln((N+1)/(df+1)) + 1 with N=2.
	assert.InDelta(t, math.Log(3.0/3.0)+1, res.IDF["randonnee"], 1e-9)
	assert.InDelta(t, math.Log(3.0/2.0)+1, res.IDF["montagne"], 1e-9)

	// All terms appear once in doc "a", so augmented TF is 1.0 everywhere
	// and the score reduces to the IDF.
	assert.InDelta(t, res.IDF["montagne"], res.TermsByDoc["a"]["montagne"], 1e-9)
	assert.Greater(t, res.TermsByDoc["a"]["montagne"], res.TermsByDoc["a"]["randonnee"])
}

func TestComputeTFIDF_AugmentedTF(t *testing.T) {
	// "jeux" appears twice, "cartes" once: augmented TF keeps the rarer
	// term at 0.75 of the dominant one instead of half.
	docs := []nlp.Doc{{ID: "a", Text: "jeux cartes jeux"}}
	res := nlp.ComputeTFIDF(docs, nlp.TFIDFOptions{MaxVocab: -1})

	idf := res.IDF["jeux"]
	assert.InDelta(t, idf, res.IDF["cartes"], 1e-9)
	assert.InDelta(t, 1.0*idf, res.TermsByDoc["a"]["jeux"], 1e-9)
	assert.InDelta(t, 0.75*idf, res.TermsByDoc["a"]["cartes"], 1e-9)
}

func TestComputeTFIDF_StopwordsAndHashtags(t *testing.T) {
	docs := []nlp.Doc{{ID: "a", Text: "le chat dans le #jardin"}}
	res := nlp.ComputeTFIDF(docs, nlp.TFIDFOptions{Lang: "fr", MaxVocab: -1})

	toks := res.TokensByDoc["a"]
	assert.Contains(t, toks, "#jardin")
	assert.Contains(t, toks, "chat")
	assert.NotContains(t, toks, "le")
	assert.NotContains(t, toks, "dans")
}

func TestComputeTFIDF_NGrams(t *testing.T) {
	docs := []nlp.Doc{{ID: "a", Text: "jeux de société"}}
	res := nlp.ComputeTFIDF(docs, nlp.TFIDFOptions{IncludeNGrams: true, MaxVocab: -1})

	assert.Contains(t, res.TermsByDoc["a"], "jeux de")
	assert.Contains(t, res.TermsByDoc["a"], "de societe")
}

func TestComputeTFIDF_VocabCap(t *testing.T) {
	// Scenario: cap of 2 keeps the two most frequent terms; ties break on
	// the term itself so runs are deterministic.
	docs := []nlp.Doc{
		{ID: "a", Text: "alpha beta gamma"},
		{ID: "b", Text: "alpha beta"},
		{ID: "c", Text: "alpha"},
	}
	res := nlp.ComputeTFIDF(docs, nlp.TFIDFOptions{MaxVocab: 2})

	assert.Len(t, res.DF, 2)
	assert.Contains(t, res.DF, "alpha")
	assert.Contains(t, res.DF, "beta")
	assert.NotContains(t, res.TermsByDoc["a"], "gamma")
}

func TestTopKeywords(t *testing.T) {
	docs := []nlp.Doc{
		{ID: "a", Text: "escalade escalade falaise"},
		{ID: "b", Text: "escalade piscine"},
	}
	kws := nlp.TopKeywords(docs, nlp.TFIDFOptions{MaxVocab: -1}, 1)

	require.Len(t, kws["a"], 1)
	// "escalade" has the highest augmented TF in doc a, but "falaise" is
	// unique to it; with these corpus stats the unique term wins.
	assert.Equal(t, "falaise", kws["a"][0].Term)
}

func TestTopKeywords_EmptyDoc(t *testing.T) {
	kws := nlp.TopKeywords([]nlp.Doc{{ID: "a", Text: ""}}, nlp.TFIDFOptions{}, 3)
	assert.Empty(t, kws["a"])
}
