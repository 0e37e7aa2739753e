package nlp

import "regexp"

// tagPattern matches inline #tags: '#' followed by Unicode letters/digits,
// underscore or hyphen.
var tagPattern = regexp.MustCompile(`#([\p{L}\p{N}_-]+)`)

// ExtractTags returns the lowercased, deduplicated tags found in text,
// without their '#' marker, in first-seen order.
func ExtractTags(text string) []string {
	var tags []string
	seen := make(map[string]struct{})
	for _, m := range tagPattern.FindAllStringSubmatch(text, -1) {
		tag := Normalize(m[1], NormalizeOptions{KeepDiacritics: true})
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}
