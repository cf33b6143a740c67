package storage

import (
	"time"

	"github.com/isdelr/eventboard-be/internal/models"
)

// SampleEvents returns the demonstration events written to a fresh data file.
func SampleEvents(now time.Time) []models.Event {
	now = now.UTC().Round(0)
	return []models.Event{
		{
			ID:          "1",
			Title:       "Community Garden Workshop",
			Date:        "2025-06-05",
			Time:        "10:00",
			Location:    "Maple Street Community Center",
			Description: "Learn about organic gardening techniques and help us plant this season's vegetables. Bring gloves and a water bottle!",
			Category:    models.CategoryEducation,
			Organizer:   "Green Thumbs Society",
			CreatedAt:   now,
		},
		{
			ID:          "2",
			Title:       "Summer Block Party",
			Date:        "2025-06-15",
			Time:        "15:00",
			Location:    "Oak Avenue Park",
			Description: "Join us for food, music, and fun activities for the whole family. Local vendors and live entertainment!",
			Category:    models.CategorySocial,
			Organizer:   "Neighborhood Association",
			CreatedAt:   now,
		},
	}
}
