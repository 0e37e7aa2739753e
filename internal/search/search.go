package search

import (
	"log/slog"
	"strings"

	"github.com/kljensen/snowball"
	"github.com/tartampluch/dunbar/internal/config"
	"github.com/tartampluch/dunbar/internal/nlp"
	"github.com/tartampluch/dunbar/internal/store"
)

// Indexes bundles the friend and event indexes with their corpus, ready for
// faceted querying.
type Indexes struct {
	Friends TextIndex
	Events  TextIndex

	corpus     Corpus
	friendByID map[string]FriendDoc
	eventByID  map[string]EventDoc
}

// snowballLang maps ISO 639-1 codes to snowball language names.
var snowballLang = map[string]string{
	config.LangFrench:  "french",
	config.LangEnglish: "english",
}

// termProcessor builds the shared indexing/query pipeline: hashtags pass
// verbatim; other terms are diacritic-stripped, stopword-filtered and
// stemmed when the language is known. An undetermined language skips the
// language-specific steps.
func termProcessor(lang string) ProcessTermFunc {
	stemLang := snowballLang[lang]
	return func(term string) string {
		if strings.HasPrefix(term, "#") {
			return term
		}
		t := nlp.StripDiacritics(strings.ToLower(term))
		if t == "" {
			return ""
		}
		if lang == "" {
			return t
		}
		if nlp.IsStopword(t, lang) {
			return ""
		}
		if stemmed, err := snowball.Stem(t, stemLang, false); err == nil && stemmed != "" {
			return stemmed
		}
		return t
	}
}

// Build constructs both indexes from a state snapshot. lang selects the
// stopword/stemming pipeline; empty means none, config.LangAuto detects the
// corpus language from stopword hits (an undetermined corpus stays at none).
func Build(st store.State, lang string) *Indexes {
	corpus := BuildCorpus(st)
	if lang == config.LangAuto {
		lang = nlp.DetectLang(corpusText(corpus))
	}
	pt := termProcessor(lang)

	friends := NewIndex(IndexOptions{
		ProcessTerm: pt,
		Boosts: map[string]float64{
			FieldName: config.BoostName,
			FieldTags: config.BoostTags,
		},
	})
	events := NewIndex(IndexOptions{
		ProcessTerm: pt,
		Boosts: map[string]float64{
			FieldTags:         config.BoostTags,
			FieldParticipants: config.BoostParticipants,
		},
	})

	ix := &Indexes{
		Friends:    friends,
		Events:     events,
		corpus:     corpus,
		friendByID: make(map[string]FriendDoc, len(corpus.FriendDocs)),
		eventByID:  make(map[string]EventDoc, len(corpus.EventDocs)),
	}
	for _, d := range corpus.FriendDocs {
		ix.friendByID[d.ID] = d
		friends.Add(d.document())
	}
	for _, d := range corpus.EventDocs {
		ix.eventByID[d.ID] = d
		events.Add(d.document())
	}

	slog.With(config.LogKeyComponent, config.CompSearch).Debug(config.MsgIndexBuilt,
		config.LogKeyFriends, len(corpus.FriendDocs),
		config.LogKeyEvents, len(corpus.EventDocs),
		config.LogKeyLang, lang,
	)
	return ix
}

// corpusText concatenates every document's free text for language detection.
func corpusText(c Corpus) string {
	var sb strings.Builder
	for _, d := range c.FriendDocs {
		sb.WriteString(d.Body)
		sb.WriteByte('\n')
	}
	for _, d := range c.EventDocs {
		sb.WriteString(d.Notes)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Corpus exposes the underlying documents and facet vocabularies.
func (ix *Indexes) Corpus() Corpus {
	return ix.corpus
}
