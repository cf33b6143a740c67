package services

import (
	"regexp"
	"strings"

	"github.com/isdelr/eventboard-be/internal/models"
)

// ValidationError lists every rule an event payload violates.
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Details, "; ")
}

var (
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// ValidateEventInput checks the payload field by field and reports all violations together.
// With partial set, absent fields are skipped; present fields must still be valid.
func ValidateEventInput(in models.EventInput, partial bool) error {
	var details []string
	check := func(v *string, ok func(string) bool, msg string) {
		if v == nil {
			if !partial {
				details = append(details, msg)
			}
			return
		}
		if !ok(*v) {
			details = append(details, msg)
		}
	}
	nonEmpty := func(s string) bool { return strings.TrimSpace(s) != "" }

	check(in.Title, nonEmpty, "Title is required and must be a non-empty string")
	check(in.Date, datePattern.MatchString, "Date is required and must be in YYYY-MM-DD format")
	check(in.Time, timePattern.MatchString, "Time is required and must be in HH:MM format")
	check(in.Location, nonEmpty, "Location is required and must be a non-empty string")
	check(in.Description, nonEmpty, "Description is required and must be a non-empty string")
	check(in.Category, func(s string) bool { return models.Category(s).Valid() },
		"Category is required and must be one of: Social, Education, Sports, Arts, Other")
	check(in.Organizer, nonEmpty, "Organizer is required and must be a non-empty string")

	if len(details) > 0 {
		return &ValidationError{Details: details}
	}
	return nil
}
