// Package search builds the two full-text indexes (friends, events) with
// tag/person facets, prefix and typo-tolerant matching, and per-field
// boosting.
package search

import (
	"math"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/tartampluch/dunbar/internal/config"
	"github.com/tartampluch/dunbar/internal/nlp"
)

// Document is what the index ingests: an id plus named text fields.
type Document struct {
	ID     string
	Fields map[string]string
}

// Hit is one ranked search result.
type Hit struct {
	DocID string
	Score float64
}

// TextIndex is the consumed text-indexing capability: field-aware ingestion,
// ranked lookup. The in-memory Index below implements it; tests may swap in
// a fake.
type TextIndex interface {
	Add(docs ...Document)
	Search(query string) []Hit
}

// ProcessTermFunc canonicalizes a term before indexing and querying; an
// empty result drops the term (stopwords).
type ProcessTermFunc func(term string) string

// IndexOptions tunes an Index.
type IndexOptions struct {
	// Boosts maps field name → weight; unlisted fields get BoostBody.
	Boosts map[string]float64
	// ProcessTerm defaults to the identity function.
	ProcessTerm ProcessTermFunc
}

// Index is an in-memory inverted index with prefix and fuzzy matching.
type Index struct {
	boosts      map[string]float64
	processTerm ProcessTermFunc

	// postings maps term → doc id → accumulated field weight.
	postings map[string]map[string]float64
	vocab    []string
	sorted   bool
}

// NewIndex creates an empty index.
func NewIndex(opts IndexOptions) *Index {
	pt := opts.ProcessTerm
	if pt == nil {
		pt = func(t string) string { return t }
	}
	return &Index{
		boosts:      opts.Boosts,
		processTerm: pt,
		postings:    make(map[string]map[string]float64),
	}
}

func (ix *Index) boost(field string) float64 {
	if b, ok := ix.boosts[field]; ok {
		return b
	}
	return config.BoostBody
}

// Add ingests documents. Terms are tokenized per field (hashtags preserved),
// run through the term processor, and weighted by the field boost.
func (ix *Index) Add(docs ...Document) {
	for _, doc := range docs {
		for field, text := range doc.Fields {
			weight := ix.boost(field)
			for _, tok := range nlp.Tokenize(text, nlp.TokenizeOptions{KeepHashtags: true}) {
				term := ix.processTerm(tok)
				if term == "" {
					continue
				}
				bucket, ok := ix.postings[term]
				if !ok {
					bucket = make(map[string]float64)
					ix.postings[term] = bucket
					ix.sorted = false
				}
				if weight > bucket[doc.ID] {
					bucket[doc.ID] = weight
				}
			}
		}
	}
}

// Search ranks documents against the query. Each query term matches exactly,
// by prefix (discounted), or fuzzily within an edit budget of
// ⌊FuzzyRatio·len⌋ capped at MaxFuzzyEdits (further discounted); per-term
// scores sum across terms and fields.
func (ix *Index) Search(query string) []Hit {
	scores := make(map[string]float64)
	for _, tok := range nlp.Tokenize(query, nlp.TokenizeOptions{KeepHashtags: true}) {
		term := ix.processTerm(tok)
		if term == "" {
			continue
		}
		ix.scoreTerm(term, scores)
	}

	hits := make([]Hit, 0, len(scores))
	for id, score := range scores {
		hits = append(hits, Hit{DocID: id, Score: score})
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].DocID < hits[j].DocID
	})
	return hits
}

func (ix *Index) scoreTerm(term string, scores map[string]float64) {
	matched := make(map[string]float64) // doc id → best match weight for this term

	if bucket, ok := ix.postings[term]; ok {
		for id, w := range bucket {
			matched[id] = w
		}
	}

	for _, candidate := range ix.vocabulary() {
		if candidate == term {
			continue
		}
		var discount float64
		switch {
		case strings.HasPrefix(candidate, term):
			discount = config.PrefixWeight
		case fuzzyMatches(term, candidate):
			discount = config.FuzzyWeight
		default:
			continue
		}
		for id, w := range ix.postings[candidate] {
			if dw := w * discount; dw > matched[id] {
				matched[id] = dw
			}
		}
	}

	for id, w := range matched {
		scores[id] += w
	}
}

func (ix *Index) vocabulary() []string {
	if !ix.sorted {
		ix.vocab = ix.vocab[:0]
		for term := range ix.postings {
			ix.vocab = append(ix.vocab, term)
		}
		sort.Strings(ix.vocab)
		ix.sorted = true
	}
	return ix.vocab
}

// fuzzyMatches applies the length-scaled edit budget. Hashtag terms and very
// short terms stay exact-only.
func fuzzyMatches(term, candidate string) bool {
	if len(term) < config.MinFuzzyTermLen || strings.HasPrefix(term, "#") {
		return false
	}
	budget := int(math.Floor(config.FuzzyRatio * float64(len(term))))
	if budget > config.MaxFuzzyEdits {
		budget = config.MaxFuzzyEdits
	}
	if budget == 0 {
		return false
	}
	// Cheap length gate before the real distance.
	if abs(len(candidate)-len(term)) > budget {
		return false
	}
	return levenshtein.ComputeDistance(term, candidate) <= budget
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
