package nlp

import (
	"bufio"
	"bytes"
	"embed"
	"strings"

	"github.com/tartampluch/dunbar/internal/config"
)

// Stopword lists are stored diacritic-free; lookups normalize first.
//
//go:embed stopwords/*.txt
var stopwordFS embed.FS

var (
	frStopwords = loadStopwords("stopwords/fr.txt")
	enStopwords = loadStopwords("stopwords/en.txt")
)

func loadStopwords(path string) map[string]struct{} {
	data, err := stopwordFS.ReadFile(path)
	if err != nil {
		// Embedded at compile time; an error here means a broken build.
		panic(config.ErrLocalesAccess + ": " + err.Error())
	}
	set := make(map[string]struct{})
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		w := strings.TrimSpace(sc.Text())
		if w != "" {
			set[w] = struct{}{}
		}
	}
	return set
}

func stopwordSet(lang string) map[string]struct{} {
	switch lang {
	case config.LangFrench:
		return frStopwords
	case config.LangEnglish:
		return enStopwords
	default:
		return nil
	}
}

// IsStopword reports whether word is a stopword in the given language.
// An empty/unknown language never matches.
func IsStopword(word, lang string) bool {
	set := stopwordSet(lang)
	if set == nil {
		return false
	}
	_, ok := set[StripDiacritics(strings.ToLower(word))]
	return ok
}

// RemoveStopwords filters tokens by language. Hashtag tokens are always kept.
// An empty language leaves the slice untouched (undetermined language means
// skip language-specific processing, not "assume one").
func RemoveStopwords(tokens []string, lang string) []string {
	set := stopwordSet(lang)
	if set == nil {
		return tokens
	}
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if strings.HasPrefix(t, "#") {
			out = append(out, t)
			continue
		}
		if _, ok := set[StripDiacritics(t)]; ok {
			continue
		}
		out = append(out, t)
	}
	return out
}
