package nlp

import (
	"math"
	"sort"

	"github.com/tartampluch/dunbar/internal/config"
)

// Doc is the minimal unit of text the scorer works on.
type Doc struct {
	ID   string
	Text string
}

// TFIDFOptions tunes the scorer.
type TFIDFOptions struct {
	// Lang enables stopword removal; empty means none.
	Lang string
	// IncludeNGrams adds n-grams of the given sizes to the vocabulary.
	IncludeNGrams bool
	NGramSizes    []int
	// MaxVocab caps the vocabulary to the globally most frequent terms.
	// Zero means config.DefaultMaxVocab; negative disables the cap.
	MaxVocab int
}

// TFIDFResult carries per-document scores and corpus statistics.
type TFIDFResult struct {
	// TermsByDoc maps doc id → term → tf-idf score.
	TermsByDoc map[string]map[string]float64
	// DF maps term → number of documents containing it.
	DF map[string]int
	// IDF maps term → smoothed inverse document frequency.
	IDF map[string]float64
	// TokensByDoc maps doc id → its token stream (n-grams included).
	TokensByDoc map[string][]string
}

// Keyword is a scored term.
type Keyword struct {
	Term  string
	Score float64
}

// ComputeTFIDF builds per-document TF-IDF vectors using augmented term
// frequency (0.5 + 0.5·freq/maxFreq) and smoothed IDF (ln((N+1)/(df+1))+1).
func ComputeTFIDF(docs []Doc, opts TFIDFOptions) TFIDFResult {
	res := TFIDFResult{
		TermsByDoc:  make(map[string]map[string]float64, len(docs)),
		DF:          make(map[string]int),
		IDF:         make(map[string]float64),
		TokensByDoc: make(map[string][]string, len(docs)),
	}

	termFreqByDoc := make(map[string]map[string]int, len(docs))
	for _, d := range docs {
		toks := RemoveStopwords(Tokenize(d.Text, TokenizeOptions{KeepHashtags: true}), opts.Lang)
		all := toks
		if opts.IncludeNGrams {
			sizes := opts.NGramSizes
			if len(sizes) == 0 {
				sizes = []int{2}
			}
			for _, n := range sizes {
				all = append(all, NGrams(toks, n)...)
			}
		}
		res.TokensByDoc[d.ID] = all

		tf := make(map[string]int)
		for _, t := range all {
			tf[t]++
		}
		termFreqByDoc[d.ID] = tf
		for term := range tf {
			res.DF[term]++
		}
	}

	maxVocab := opts.MaxVocab
	if maxVocab == 0 {
		maxVocab = config.DefaultMaxVocab
	}
	if maxVocab > 0 && len(res.DF) > maxVocab {
		capVocabulary(res.DF, termFreqByDoc, maxVocab)
	}

	n := float64(len(docs))
	if n == 0 {
		n = 1
	}
	for term, df := range res.DF {
		res.IDF[term] = math.Log((n+1)/float64(df+1)) + 1
	}

	for id, tf := range termFreqByDoc {
		maxFreq := 1
		for _, f := range tf {
			if f > maxFreq {
				maxFreq = f
			}
		}
		vec := make(map[string]float64, len(tf))
		for term, freq := range tf {
			tfw := 0.5 + 0.5*float64(freq)/float64(maxFreq)
			vec[term] = tfw * res.IDF[term]
		}
		res.TermsByDoc[id] = vec
	}
	return res
}

// capVocabulary keeps only the maxVocab globally most frequent terms,
// deleting the rest from both the document-frequency table and every
// per-document frequency map. Ties break on the term itself so the cap is
// deterministic.
func capVocabulary(df map[string]int, termFreqByDoc map[string]map[string]int, maxVocab int) {
	type termDF struct {
		term string
		df   int
	}
	all := make([]termDF, 0, len(df))
	for term, d := range df {
		all = append(all, termDF{term, d})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].df != all[j].df {
			return all[i].df > all[j].df
		}
		return all[i].term < all[j].term
	})

	keep := make(map[string]struct{}, maxVocab)
	for _, td := range all[:maxVocab] {
		keep[td.term] = struct{}{}
	}
	for term := range df {
		if _, ok := keep[term]; !ok {
			delete(df, term)
		}
	}
	for _, tf := range termFreqByDoc {
		for term := range tf {
			if _, ok := keep[term]; !ok {
				delete(tf, term)
			}
		}
	}
}

// TopKeywords returns the topK highest-scoring terms for each document,
// sorted by descending score with the term as tie-breaker.
func TopKeywords(docs []Doc, opts TFIDFOptions, topK int) map[string][]Keyword {
	if topK <= 0 {
		topK = config.DefaultTopK
	}
	res := ComputeTFIDF(docs, opts)
	out := make(map[string][]Keyword, len(docs))
	for _, d := range docs {
		vec := res.TermsByDoc[d.ID]
		kws := make([]Keyword, 0, len(vec))
		for term, score := range vec {
			kws = append(kws, Keyword{Term: term, Score: score})
		}
		sort.Slice(kws, func(i, j int) bool {
			if kws[i].Score != kws[j].Score {
				return kws[i].Score > kws[j].Score
			}
			return kws[i].Term < kws[j].Term
		})
		if len(kws) > topK {
			kws = kws[:topK]
		}
		out[d.ID] = kws
	}
	return out
}
