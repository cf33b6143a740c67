package geo

import (
	"cmp"
	"slices"
)

// Placed is an item annotated with its distance from the origin.
// Resolved is false when the item's location could not be mapped to a coordinate.
type Placed[T any] struct {
	Item       T
	DistanceKm float64
	Resolved   bool
}

// Nearby keeps the items within radiusKm of origin and every item whose
// location does not resolve. The result is ordered by ascending distance with
// unresolved items last; equal distances keep their input order.
func Nearby[T any](items []T, locate func(T) string, origin Coordinate, radiusKm float64) []Placed[T] {
	out := make([]Placed[T], 0, len(items))
	for _, item := range items {
		coord, ok := Resolve(locate(item))
		if !ok {
			out = append(out, Placed[T]{Item: item})
			continue
		}
		d := Distance(origin, coord)
		if d <= radiusKm {
			out = append(out, Placed[T]{Item: item, DistanceKm: d, Resolved: true})
		}
	}

	slices.SortStableFunc(out, func(a, b Placed[T]) int {
		switch {
		case a.Resolved && b.Resolved:
			return cmp.Compare(a.DistanceKm, b.DistanceKm)
		case a.Resolved:
			return -1
		case b.Resolved:
			return 1
		}
		return 0
	})
	return out
}
