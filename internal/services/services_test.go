package services

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/isdelr/eventboard-be/internal/analytics"
	"github.com/isdelr/eventboard-be/internal/auth"
	"github.com/isdelr/eventboard-be/internal/models"
	"github.com/isdelr/eventboard-be/internal/pipeline"
	"github.com/isdelr/eventboard-be/internal/storage"
	"github.com/isdelr/eventboard-be/internal/weather"
)

type recordingNotifier struct {
	actions []string
}

func (n *recordingNotifier) Publish(action string, _ any) {
	n.actions = append(n.actions, action)
}

func str(s string) *string { return &s }

func validInput() models.EventInput {
	return models.EventInput{
		Title:       str("Integration Test Event"),
		Date:        str("2025-06-01"),
		Time:        str("14:30"),
		Location:    str("Test Venue"),
		Description: str("This is a test event"),
		Category:    str("Education"),
		Organizer:   str("Test Organizer"),
	}
}

func newTestServices(t *testing.T) (*EventService, *AnalyticsService, *recordingNotifier) {
	t.Helper()
	store := storage.NewFileStore(filepath.Join(t.TempDir(), "events.json"))
	notifier := &recordingNotifier{}
	tracker := analytics.NewTracker(storage.NewMemoryKV(), nil)
	reporter := analytics.NewReporter(tracker, analytics.FixedActivity{})
	forecaster := &weather.MockForecaster{Now: time.Now, Days: 3}
	an := NewAnalyticsService(store, tracker, reporter, auth.NewShareSigner("test-secret", 0), forecaster, "http://board.test/")
	return NewEventService(store, notifier), an, notifier
}

func TestValidateReportsEveryViolation(t *testing.T) {
	err := ValidateEventInput(models.EventInput{
		Title:    str("   "),
		Date:     str("06/01/2025"),
		Time:     str("2pm"),
		Category: str("Music"),
	}, false)

	var v *ValidationError
	if !errors.As(err, &v) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(v.Details) != 7 {
		t.Fatalf("expected 7 messages, got %d: %v", len(v.Details), v.Details)
	}
	for _, prefix := range []string{"Title", "Date", "Time", "Location", "Description", "Category", "Organizer"} {
		found := false
		for _, d := range v.Details {
			if strings.HasPrefix(d, prefix) {
				found = true
			}
		}
		if !found {
			t.Fatalf("missing message for %s in %v", prefix, v.Details)
		}
	}
}

func TestValidateAcceptsValidInput(t *testing.T) {
	if err := ValidateEventInput(validInput(), false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidatePartial(t *testing.T) {
	if err := ValidateEventInput(models.EventInput{Title: str("New title")}, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := ValidateEventInput(models.EventInput{Time: str("25")}, true)
	var v *ValidationError
	if !errors.As(err, &v) || len(v.Details) != 1 {
		t.Fatalf("expected one violation for bad time, got %v", err)
	}
}

func TestEventLifecyclePublishesChanges(t *testing.T) {
	svc, _, notifier := newTestServices(t)

	created, err := svc.CreateEvent(validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.PatchEvent(created.ID, models.EventInput{Title: str("Renamed")}); err != nil {
		t.Fatalf("patch: %v", err)
	}
	if err := svc.DeleteEvent(created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	want := []string{ActionEventCreated, ActionEventUpdated, ActionEventDeleted}
	if strings.Join(notifier.actions, ",") != strings.Join(want, ",") {
		t.Fatalf("expected %v, got %v", want, notifier.actions)
	}
	if err := svc.DeleteEvent(created.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateRejectsInvalidWithoutWriting(t *testing.T) {
	svc, _, notifier := newTestServices(t)
	in := validInput()
	in.Category = str("Parties")
	if _, err := svc.CreateEvent(in); err == nil {
		t.Fatalf("expected validation error")
	}
	events, _ := svc.GetAllEvents()
	if len(events) != 0 || len(notifier.actions) != 0 {
		t.Fatalf("expected nothing stored or published")
	}
}

func TestSearchEvents(t *testing.T) {
	svc, _, _ := newTestServices(t)
	for _, title := range []string{"Banana", "apple", "Cherry"} {
		in := validInput()
		in.Title = str(title)
		if _, err := svc.CreateEvent(in); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	matches, err := svc.SearchEvents(pipeline.Query{Category: "all", Sort: pipeline.Sort{Key: pipeline.SortTitle, Direction: pipeline.Asc}})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	var got []string
	for _, m := range matches {
		got = append(got, m.Event.Title)
	}
	if strings.Join(got, ",") != "apple,Banana,Cherry" {
		t.Fatalf("unexpected order %v", got)
	}
}

func TestShareAndScanFlow(t *testing.T) {
	svc, an, _ := newTestServices(t)
	event, err := svc.CreateEvent(validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := an.RecordView(event.ID); err != nil {
		t.Fatalf("view: %v", err)
	}

	link, err := an.ShareEvent(event.ID)
	if err != nil {
		t.Fatalf("share: %v", err)
	}
	if !strings.HasPrefix(link.URL, "http://board.test/api/share/") {
		t.Fatalf("unexpected share url %q", link.URL)
	}
	if link.Stats.Shares != 1 || link.Stats.PopularityScore != 4 {
		t.Fatalf("unexpected stats after share %+v", link.Stats)
	}

	scanned, stats, err := an.RecordScan(link.Token)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if scanned.ID != event.ID {
		t.Fatalf("scan resolved to %s, want %s", scanned.ID, event.ID)
	}
	if stats.QRScans != 1 || stats.EstimatedAttendance != 1 || stats.PopularityScore != 6 {
		t.Fatalf("unexpected stats after scan %+v", stats)
	}

	if _, _, err := an.RecordScan("bogus"); !errors.Is(err, auth.ErrInvalidShareToken) {
		t.Fatalf("expected invalid token error, got %v", err)
	}
}

func TestViewOfMissingEvent(t *testing.T) {
	_, an, _ := newTestServices(t)
	if _, err := an.RecordView("nope"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReconcileAfterDelete(t *testing.T) {
	svc, an, _ := newTestServices(t)
	keep, _ := svc.CreateEvent(validInput())
	gone, _ := svc.CreateEvent(validInput())
	an.RecordView(keep.ID)
	an.RecordView(gone.ID)
	svc.DeleteEvent(gone.ID)

	report, err := an.GetReport()
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if report.TotalViews != 1 || len(report.PopularEvents) != 1 {
		t.Fatalf("expected orphan excluded from report, got %+v", report)
	}

	removed, err := an.Reconcile()
	if err != nil || removed != 1 {
		t.Fatalf("expected one orphan removed, got %d, %v", removed, err)
	}
	if _, err := an.GetStats(gone.ID); !errors.Is(err, analytics.ErrNotTracked) {
		t.Fatalf("expected orphan stats gone, got %v", err)
	}
}

func TestGetWeather(t *testing.T) {
	svc, an, _ := newTestServices(t)
	in := validInput()
	in.Location = str("Oak Avenue Park")
	event, _ := svc.CreateEvent(in)

	w, err := an.GetWeather(context.Background(), event.ID)
	if err != nil {
		t.Fatalf("weather: %v", err)
	}
	if !w.Outdoor {
		t.Fatalf("expected park event to be outdoor")
	}
	if len(w.Forecast.Forecast) != 3 {
		t.Fatalf("expected 3-day forecast, got %d", len(w.Forecast.Forecast))
	}
}
