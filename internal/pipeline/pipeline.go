// Package pipeline derives filtered, ordered views of the event collection.
// It never mutates its input and never fails: malformed dates sort last.
package pipeline

import (
	"strings"

	"github.com/isdelr/eventboard-be/internal/geo"
	"github.com/isdelr/eventboard-be/internal/models"
)

// AllCategories is the category filter value that matches every event.
const AllCategories = "all"

// Query describes one pass through the pipeline.
type Query struct {
	Category string
	Search   string
	Sort     Sort
	Near     *Near
}

// Near restricts results to events within RadiusKm of Origin.
type Near struct {
	Origin   geo.Coordinate
	RadiusKm float64
}

// Match is one event in the pipeline output. Distance fields are only set when
// the query had a Near clause and the event's location resolved.
type Match struct {
	Event      models.Event
	DistanceKm float64
	Located    bool
}

// Apply filters events by category and search text, sorts them, and when
// q.Near is set applies the radius filter ordering by distance.
func Apply(events []models.Event, q Query) []Match {
	filtered := Filter(events, q.Category, q.Search)
	SortEvents(filtered, q.Sort)

	if q.Near == nil {
		out := make([]Match, len(filtered))
		for i, e := range filtered {
			out[i] = Match{Event: e}
		}
		return out
	}

	placed := geo.Nearby(filtered, func(e models.Event) string { return e.Location }, q.Near.Origin, q.Near.RadiusKm)
	out := make([]Match, len(placed))
	for i, p := range placed {
		out[i] = Match{Event: p.Item, DistanceKm: p.DistanceKm, Located: p.Resolved}
	}
	return out
}

// Filter returns a new slice with the events matching both the category and
// the search term.
func Filter(events []models.Event, category, search string) []models.Event {
	out := make([]models.Event, 0, len(events))
	term := strings.ToLower(search)
	for _, e := range events {
		if MatchesCategory(e, category) && MatchesSearch(e, term) {
			out = append(out, e)
		}
	}
	return out
}

// MatchesCategory reports whether e passes the category filter.
// "all" and the empty string match every event; anything else is compared exactly.
func MatchesCategory(e models.Event, category string) bool {
	if category == "" || category == AllCategories {
		return true
	}
	return string(e.Category) == category
}

// MatchesSearch reports whether the lowercased term occurs in the title,
// description or organizer of e.
func MatchesSearch(e models.Event, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(e.Title), term) ||
		strings.Contains(strings.ToLower(e.Description), term) ||
		strings.Contains(strings.ToLower(e.Organizer), term)
}
