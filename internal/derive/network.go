package derive

import (
	"sort"

	"github.com/tartampluch/dunbar/internal/store"
)

// Edge is an undirected relationship edge with A < B lexicographically so
// each pair appears exactly once.
type Edge struct {
	A string
	B string
}

// DegreeMap returns each friend's relationship count.
func DegreeMap(st store.State) map[string]int {
	out := make(map[string]int, len(st.Friends))
	for _, f := range st.Friends {
		out[f.ID] = len(f.Relationships)
	}
	return out
}

// Edges derives the deduplicated undirected edge list from all relationship
// sets, sorted for deterministic output. An edge is emitted regardless of
// which side lists it, so even a set that lost symmetry yields each pair
// once.
func Edges(st store.State) []Edge {
	seen := make(map[Edge]struct{})
	for _, f := range st.Friends {
		for other := range f.Relationships {
			e := Edge{A: f.ID, B: other}
			if e.B < e.A {
				e.A, e.B = e.B, e.A
			}
			seen[e] = struct{}{}
		}
	}
	out := make([]Edge, 0, len(seen))
	for e := range seen {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].A != out[j].A {
			return out[i].A < out[j].A
		}
		return out[i].B < out[j].B
	})
	return out
}
