package nlp

import (
	"regexp"
	"strings"

	"github.com/tartampluch/dunbar/internal/config"
)

var (
	hashtagTokenPattern = regexp.MustCompile(`#[\p{L}\p{N}_-]+`)
	wordPattern         = regexp.MustCompile(`[\p{L}\p{N}][\p{L}\p{N}'’_-]*`)
)

// TokenizeOptions controls tokenization.
type TokenizeOptions struct {
	KeepHashtags   bool
	KeepDiacritics bool
}

// Tokenize splits text into lowercase tokens, deduplicated in first-seen
// order. Hashtags (when kept) come first and retain their '#' marker so
// downstream consumers can treat them specially.
func Tokenize(text string, opts TokenizeOptions) []string {
	var hashtags []string
	if opts.KeepHashtags {
		for _, h := range hashtagTokenPattern.FindAllString(text, -1) {
			hashtags = append(hashtags, strings.ToLower(h))
		}
	}

	norm := Normalize(strings.ReplaceAll(text, "#", " "), NormalizeOptions{
		KeepDiacritics: opts.KeepDiacritics,
	})
	words := wordPattern.FindAllString(norm, -1)

	seen := make(map[string]struct{}, len(hashtags)+len(words))
	out := make([]string, 0, len(hashtags)+len(words))
	for _, t := range append(hashtags, words...) {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// NGrams joins consecutive tokens into space-separated n-grams.
func NGrams(tokens []string, n int) []string {
	if n <= 0 || len(tokens) < n {
		return nil
	}
	out := make([]string, 0, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		out = append(out, strings.Join(tokens[i:i+n], " "))
	}
	return out
}

// DetectLang guesses French vs. English by comparing stopword hits.
// Ties (including zero hits) return the empty string: callers must skip
// language-specific processing rather than default to one language.
func DetectLang(text string) string {
	norm := Normalize(text, NormalizeOptions{DropHashMarks: true})
	var frScore, enScore int
	for _, tok := range wordPattern.FindAllString(norm, -1) {
		if _, ok := frStopwords[tok]; ok {
			frScore++
		}
		if _, ok := enStopwords[tok]; ok {
			enScore++
		}
	}
	switch {
	case frScore > enScore:
		return config.LangFrench
	case enScore > frScore:
		return config.LangEnglish
	default:
		return ""
	}
}
