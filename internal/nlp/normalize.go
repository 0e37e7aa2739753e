// Package nlp provides the offline text utilities behind keyword extraction
// and search indexing: normalization, tokenization, stopword handling,
// TF-IDF scoring, and a small gazetteer for location recognition.
//
// Everything here is pure and local; no network calls, no external models.
package nlp

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// diacriticRemover decomposes to NFD, drops combining marks, and recomposes.
var diacriticRemover = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// StripDiacritics removes diacritics but preserves base letters (é → e).
// Used for matching only; display text keeps its accents.
func StripDiacritics(s string) string {
	out, _, err := transform.String(diacriticRemover, s)
	if err != nil {
		return s
	}
	return out
}

// NormalizeOptions controls text normalization.
type NormalizeOptions struct {
	KeepDiacritics bool
	DropHashMarks  bool
}

// Normalize lowercases, optionally strips diacritics, optionally blanks out
// '#' markers, and collapses whitespace.
func Normalize(text string, opts NormalizeOptions) string {
	t := strings.ToLower(text)
	if !opts.KeepDiacritics {
		t = StripDiacritics(t)
	}
	if opts.DropHashMarks {
		t = strings.ReplaceAll(t, "#", " ")
	}
	return strings.Join(strings.Fields(t), " ")
}
