package pipeline

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/isdelr/eventboard-be/internal/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects the field events are ordered by.
type SortKey string

const (
	SortNone      SortKey = ""
	SortDate      SortKey = "date"
	SortTitle     SortKey = "title"
	SortCreatedAt SortKey = "createdAt"
)

// Direction is the sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Sort is a sort specification.
type Sort struct {
	Key       SortKey
	Direction Direction
}

// ParseSort validates a sort key and direction as received from a client.
// An empty direction means ascending.
func ParseSort(key, direction string) (Sort, error) {
	s := Sort{Key: SortKey(key), Direction: Direction(strings.ToLower(direction))}
	switch s.Key {
	case SortNone, SortDate, SortTitle, SortCreatedAt:
	default:
		return Sort{}, fmt.Errorf("unknown sort key %q", key)
	}
	switch s.Direction {
	case "":
		s.Direction = Asc
	case Asc, Desc:
	default:
		return Sort{}, fmt.Errorf("unknown sort direction %q", direction)
	}
	return s, nil
}

const scheduleLayout = "2006-01-02 15:04"

// ScheduledAt parses the event's date and time as a single instant.
func ScheduledAt(e models.Event) (time.Time, bool) {
	t, err := time.Parse(scheduleLayout, e.Date+" "+e.Time)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// SortEvents orders events in place. The sort is stable. Events whose date or
// time does not parse sort after every well-formed event in both directions.
func SortEvents(events []models.Event, s Sort) {
	if s.Key == SortNone {
		return
	}
	sign := 1
	if s.Direction == Desc {
		sign = -1
	}

	switch s.Key {
	case SortDate:
		slices.SortStableFunc(events, func(a, b models.Event) int {
			at, aok := ScheduledAt(a)
			bt, bok := ScheduledAt(b)
			return compareWellFormed(at, aok, bt, bok, sign)
		})
	case SortTitle:
		c := collate.New(language.English)
		slices.SortStableFunc(events, func(a, b models.Event) int {
			return sign * c.CompareString(a.Title, b.Title)
		})
	case SortCreatedAt:
		slices.SortStableFunc(events, func(a, b models.Event) int {
			return compareWellFormed(a.CreatedAt, !a.CreatedAt.IsZero(), b.CreatedAt, !b.CreatedAt.IsZero(), sign)
		})
	}
}

// compareWellFormed orders valid instants by sign and puts invalid ones last.
func compareWellFormed(a time.Time, aok bool, b time.Time, bok bool, sign int) int {
	switch {
	case aok && bok:
		return sign * a.Compare(b)
	case aok:
		return -1
	case bok:
		return 1
	}
	return 0
}
