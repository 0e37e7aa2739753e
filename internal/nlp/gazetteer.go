package nlp

import (
	"regexp"
	"strings"
	"sync"
)

// PlaceType distinguishes gazetteer entry kinds.
type PlaceType string

const (
	PlaceCountry PlaceType = "country"
	PlaceCity    PlaceType = "city"
)

// Place is a gazetteer entry. Aliases cover alternate spellings and
// cross-language names (e.g. "londres" → London).
type Place struct {
	Type    PlaceType
	Name    string
	Country string
	ISO2    string
	Aliases []string
}

// MiniGazetteer is the built-in offline place list. Intentionally small:
// this is a best-effort recognizer for personal notes, not a geocoder.
var MiniGazetteer = []Place{
	{Type: PlaceCountry, Name: "france", ISO2: "FR", Aliases: []string{"république française"}},
	{Type: PlaceCountry, Name: "germany", ISO2: "DE", Aliases: []string{"deutschland", "allemagne"}},
	{Type: PlaceCountry, Name: "spain", ISO2: "ES", Aliases: []string{"españa", "espagne"}},
	{Type: PlaceCountry, Name: "united states", ISO2: "US", Aliases: []string{"usa", "us", "etats-unis", "états-unis", "u.s."}},
	{Type: PlaceCountry, Name: "united kingdom", ISO2: "GB", Aliases: []string{"uk", "u.k.", "royaume-uni", "britain"}},
	{Type: PlaceCountry, Name: "italy", ISO2: "IT", Aliases: []string{"italia", "italie"}},
	{Type: PlaceCountry, Name: "belgium", ISO2: "BE", Aliases: []string{"belgique"}},
	{Type: PlaceCountry, Name: "switzerland", ISO2: "CH", Aliases: []string{"schweiz", "suisse", "svizzera"}},

	{Type: PlaceCity, Name: "paris", Country: "FR"},
	{Type: PlaceCity, Name: "lyon", Country: "FR"},
	{Type: PlaceCity, Name: "marseille", Country: "FR"},
	{Type: PlaceCity, Name: "berlin", Country: "DE"},
	{Type: PlaceCity, Name: "barcelona", Country: "ES", Aliases: []string{"barcelone"}},
	{Type: PlaceCity, Name: "london", Country: "GB", Aliases: []string{"londres"}},
	{Type: PlaceCity, Name: "geneva", Country: "CH", Aliases: []string{"genève", "geneve"}},
	{Type: PlaceCity, Name: "brussels", Country: "BE", Aliases: []string{"bruxelles"}},
}

var (
	placePatternsOnce sync.Once
	placePatterns     map[string]*regexp.Regexp
)

// placePattern compiles (and caches) a whole-word matcher for a normalized
// place name. Names may contain spaces and dots, so a plain \b boundary is
// not enough.
func placePattern(name string) *regexp.Regexp {
	placePatternsOnce.Do(func() {
		placePatterns = make(map[string]*regexp.Regexp)
		for _, p := range MiniGazetteer {
			for _, n := range placeVariants(p) {
				placePatterns[n] = regexp.MustCompile(`(^|\s)` + regexp.QuoteMeta(n) + `(\s|[.,;:!?]|$)`)
			}
		}
	})
	return placePatterns[name]
}

func placeVariants(p Place) []string {
	variants := make([]string, 0, 1+len(p.Aliases))
	for _, n := range append([]string{p.Name}, p.Aliases...) {
		n = StripDiacritics(strings.ToLower(strings.TrimSpace(n)))
		if n != "" {
			variants = append(variants, n)
		}
	}
	return variants
}

// ExtractLocations scans text for gazetteer hits, matching whole words
// against the diacritic-stripped lowercase form. Each place is reported at
// most once, whichever of its aliases matched.
func ExtractLocations(text string, gazetteer []Place) []Place {
	if gazetteer == nil {
		gazetteer = MiniGazetteer
	}
	normText := " " + Normalize(text, NormalizeOptions{}) + " "

	var found []Place
	seen := make(map[string]struct{})
	for _, p := range gazetteer {
		for _, n := range placeVariants(p) {
			re := placePattern(n)
			if re == nil {
				re = regexp.MustCompile(`(^|\s)` + regexp.QuoteMeta(n) + `(\s|[.,;:!?]|$)`)
			}
			if !re.MatchString(normText) {
				continue
			}
			key := string(p.Type) + ":" + p.Name + ":" + p.Country + p.ISO2
			if _, ok := seen[key]; !ok {
				seen[key] = struct{}{}
				found = append(found, Place{
					Type:    p.Type,
					Name:    p.Name,
					Country: p.Country,
					ISO2:    p.ISO2,
				})
			}
			break
		}
	}
	return found
}
