package frameworks

import (
	"cmp"
	"slices"
)

// Resolve reduces the matches for one path to the relevant ones.
//
// Within a category only the matches at that category's highest confidence
// survive. Survivors are ordered by confidence, then category rank
// (static site generator, frontend framework, backend, build tool), then
// registration order.
func Resolve(matches []DetectedFramework) []DetectedFramework {
	best := map[Category]Confidence{}
	for _, m := range matches {
		if m.Confidence > best[m.Category] {
			best[m.Category] = m.Confidence
		}
	}

	resolved := make([]DetectedFramework, 0, len(matches))
	for _, m := range matches {
		if m.Confidence == best[m.Category] {
			resolved = append(resolved, m)
		}
	}

	slices.SortStableFunc(resolved, func(a, b DetectedFramework) int {
		return cmp.Or(
			cmp.Compare(b.Confidence, a.Confidence),
			cmp.Compare(a.Category.Rank(), b.Category.Rank()),
			cmp.Compare(a.order, b.order),
		)
	})
	return resolved
}
