package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/isdelr/eventboard-be/internal/analytics"
	"github.com/isdelr/eventboard-be/internal/auth"
	"github.com/isdelr/eventboard-be/internal/models"
	"github.com/isdelr/eventboard-be/internal/weather"
	"github.com/rs/zerolog/log"
)

// ShareLink is returned when an event is shared.
type ShareLink struct {
	URL   string            `json:"url"`
	Token string            `json:"token"`
	Stats models.EventStats `json:"stats"`
}

// EventWeather is the forecast for an event's location.
type EventWeather struct {
	Outdoor  bool             `json:"outdoor"`
	Forecast weather.Forecast `json:"forecast"`
}

// AnalyticsServiceProvider defines the interface for engagement tracking and reporting.
type AnalyticsServiceProvider interface {
	RecordView(eventID string) (models.EventStats, error)
	ShareEvent(eventID string) (ShareLink, error)
	RecordScan(token string) (models.Event, models.EventStats, error)
	GetStats(eventID string) (models.EventStats, error)
	GetReport() (models.AnalyticsData, error)
	GetWeather(ctx context.Context, eventID string) (EventWeather, error)
	Reconcile() (int, error)
	PruneActivity(retention time.Duration) (int, error)
}

// AnalyticsService ties the tracker to the live event list.
type AnalyticsService struct {
	events   EventStore
	tracker  *analytics.Tracker
	reporter *analytics.Reporter
	signer   *auth.ShareSigner
	weather  weather.Forecaster
	baseURL  string
	now      func() time.Time
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(events EventStore, tracker *analytics.Tracker, reporter *analytics.Reporter, signer *auth.ShareSigner, forecaster weather.Forecaster, baseURL string) *AnalyticsService {
	return &AnalyticsService{
		events:   events,
		tracker:  tracker,
		reporter: reporter,
		signer:   signer,
		weather:  forecaster,
		baseURL:  strings.TrimRight(baseURL, "/"),
		now:      time.Now,
	}
}

// RecordView counts a view of an existing event.
func (s *AnalyticsService) RecordView(eventID string) (models.EventStats, error) {
	event, err := s.events.Get(eventID)
	if err != nil {
		return models.EventStats{}, err
	}
	return s.tracker.RecordView(event.ID, event.Title, event.Category)
}

// ShareEvent returns a signed link that records a QR scan when opened. The share
// is only counted for events that already have analytics.
func (s *AnalyticsService) ShareEvent(eventID string) (ShareLink, error) {
	if _, err := s.events.Get(eventID); err != nil {
		return ShareLink{}, err
	}
	stats, err := s.tracker.RecordShare(eventID)
	if err != nil && !errors.Is(err, analytics.ErrNotTracked) {
		return ShareLink{}, err
	}
	token, err := s.signer.GenerateShareToken(eventID)
	if err != nil {
		return ShareLink{}, fmt.Errorf("sign share token: %w", err)
	}
	return ShareLink{
		URL:   s.baseURL + "/api/share/" + token,
		Token: token,
		Stats: stats,
	}, nil
}

// RecordScan resolves a share token and counts a QR scan against its event when it is tracked.
func (s *AnalyticsService) RecordScan(token string) (models.Event, models.EventStats, error) {
	eventID, err := s.signer.ValidateShareToken(token)
	if err != nil {
		return models.Event{}, models.EventStats{}, err
	}
	event, err := s.events.Get(eventID)
	if err != nil {
		return models.Event{}, models.EventStats{}, err
	}
	stats, err := s.tracker.RecordScan(eventID)
	if err != nil && !errors.Is(err, analytics.ErrNotTracked) {
		return models.Event{}, models.EventStats{}, err
	}
	return event, stats, nil
}

// GetStats returns the counters for one event.
func (s *AnalyticsService) GetStats(eventID string) (models.EventStats, error) {
	return s.tracker.Stats(eventID)
}

// GetReport builds the dashboard report over the live events.
func (s *AnalyticsService) GetReport() (models.AnalyticsData, error) {
	events, err := s.events.List()
	if err != nil {
		return models.AnalyticsData{}, err
	}
	return s.reporter.Report(events, s.now())
}

// GetWeather returns the forecast for an event's location.
func (s *AnalyticsService) GetWeather(ctx context.Context, eventID string) (EventWeather, error) {
	event, err := s.events.Get(eventID)
	if err != nil {
		return EventWeather{}, err
	}
	forecast, err := s.weather.Forecast(ctx, event.Location, event.Date)
	if err != nil {
		return EventWeather{}, fmt.Errorf("forecast for %s: %w", eventID, err)
	}
	return EventWeather{Outdoor: weather.IsOutdoor(event.Location, event.Description), Forecast: forecast}, nil
}

// Reconcile removes stats for events that no longer exist.
func (s *AnalyticsService) Reconcile() (int, error) {
	events, err := s.events.List()
	if err != nil {
		return 0, err
	}
	live := make(map[string]struct{}, len(events))
	for _, e := range events {
		live[e.ID] = struct{}{}
	}
	removed, err := s.tracker.Reconcile(live)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		log.Info().Int("removed", removed).Msg("Pruned analytics for deleted events")
	}
	return removed, nil
}

// PruneActivity drops daily activity counters older than retention.
func (s *AnalyticsService) PruneActivity(retention time.Duration) (int, error) {
	return s.tracker.PruneActivity(s.now().Add(-retention))
}
