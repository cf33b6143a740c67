package models

import "time"

// Category is one of the fixed event categories.
type Category string

const (
	CategorySocial    Category = "Social"
	CategoryEducation Category = "Education"
	CategorySports    Category = "Sports"
	CategoryArts      Category = "Arts"
	CategoryOther     Category = "Other"
)

// Categories lists every valid category in display order.
var Categories = []Category{CategorySocial, CategoryEducation, CategorySports, CategoryArts, CategoryOther}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Event represents a single bulletin-board posting.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Date        string    `json:"date"` // YYYY-MM-DD
	Time        string    `json:"time"` // HH:MM, 24-hour
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Category    Category  `json:"category"`
	Organizer   string    `json:"organizer"`
	CreatedAt   time.Time `json:"createdAt"`
}

// EventInput carries the client-supplied fields of an event.
// Pointers distinguish "absent" from "empty" for partial updates.
type EventInput struct {
	Title       *string `json:"title"`
	Date        *string `json:"date"`
	Time        *string `json:"time"`
	Location    *string `json:"location"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Organizer   *string `json:"organizer"`
}

// Apply copies every present field of the input onto e. ID and CreatedAt are never touched.
func (in EventInput) Apply(e *Event) {
	if in.Title != nil {
		e.Title = *in.Title
	}
	if in.Date != nil {
		e.Date = *in.Date
	}
	if in.Time != nil {
		e.Time = *in.Time
	}
	if in.Location != nil {
		e.Location = *in.Location
	}
	if in.Description != nil {
		e.Description = *in.Description
	}
	if in.Category != nil {
		e.Category = Category(*in.Category)
	}
	if in.Organizer != nil {
		e.Organizer = *in.Organizer
	}
}
