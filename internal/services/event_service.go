package services

import (
	"fmt"

	"github.com/isdelr/eventboard-be/internal/models"
	"github.com/isdelr/eventboard-be/internal/pipeline"
	"github.com/rs/zerolog/log"
)

// EventStore is the persistence contract the event service relies on.
type EventStore interface {
	List() ([]models.Event, error)
	Get(id string) (models.Event, error)
	Create(in models.EventInput) (models.Event, error)
	Update(id string, in models.EventInput) (models.Event, error)
	Delete(id string) error
}

// Notifier receives change notifications for connected clients.
type Notifier interface {
	Publish(action string, payload any)
}

// Change actions published to the Notifier.
const (
	ActionEventCreated = "event.created"
	ActionEventUpdated = "event.updated"
	ActionEventDeleted = "event.deleted"
)

// EventServiceProvider defines the interface for event services.
type EventServiceProvider interface {
	GetAllEvents() ([]models.Event, error)
	GetEventByID(id string) (models.Event, error)
	SearchEvents(q pipeline.Query) ([]pipeline.Match, error)
	CreateEvent(in models.EventInput) (models.Event, error)
	ReplaceEvent(id string, in models.EventInput) (models.Event, error)
	PatchEvent(id string, in models.EventInput) (models.Event, error)
	DeleteEvent(id string) error
}

// EventService provides business logic for event management.
type EventService struct {
	store    EventStore
	notifier Notifier
}

// NewEventService creates a new EventService. notifier may be nil.
func NewEventService(store EventStore, notifier Notifier) *EventService {
	return &EventService{store: store, notifier: notifier}
}

// GetAllEvents returns the canonical event list.
func (s *EventService) GetAllEvents() ([]models.Event, error) {
	return s.store.List()
}

// GetEventByID returns a single event.
func (s *EventService) GetEventByID(id string) (models.Event, error) {
	return s.store.Get(id)
}

// SearchEvents runs the filter/sort pipeline over the current event list.
func (s *EventService) SearchEvents(q pipeline.Query) ([]pipeline.Match, error) {
	events, err := s.store.List()
	if err != nil {
		return nil, err
	}
	return pipeline.Apply(events, q), nil
}

// CreateEvent validates and stores a new event.
func (s *EventService) CreateEvent(in models.EventInput) (models.Event, error) {
	if err := ValidateEventInput(in, false); err != nil {
		return models.Event{}, err
	}
	event, err := s.store.Create(in)
	if err != nil {
		return models.Event{}, fmt.Errorf("create event: %w", err)
	}
	log.Info().Str("event_id", event.ID).Str("title", event.Title).Msg("Event created")
	s.publish(ActionEventCreated, event)
	return event, nil
}

// ReplaceEvent validates a complete payload and overwrites the event's fields.
func (s *EventService) ReplaceEvent(id string, in models.EventInput) (models.Event, error) {
	if err := ValidateEventInput(in, false); err != nil {
		return models.Event{}, err
	}
	return s.update(id, in)
}

// PatchEvent validates and applies only the fields present in the payload.
func (s *EventService) PatchEvent(id string, in models.EventInput) (models.Event, error) {
	if err := ValidateEventInput(in, true); err != nil {
		return models.Event{}, err
	}
	return s.update(id, in)
}

func (s *EventService) update(id string, in models.EventInput) (models.Event, error) {
	event, err := s.store.Update(id, in)
	if err != nil {
		return models.Event{}, fmt.Errorf("update event %s: %w", id, err)
	}
	log.Info().Str("event_id", id).Msg("Event updated")
	s.publish(ActionEventUpdated, event)
	return event, nil
}

// DeleteEvent removes an event. Its analytics are left in place until the next reconcile.
func (s *EventService) DeleteEvent(id string) error {
	if err := s.store.Delete(id); err != nil {
		return fmt.Errorf("delete event %s: %w", id, err)
	}
	log.Warn().Str("event_id", id).Msg("Event deleted")
	s.publish(ActionEventDeleted, map[string]string{"id": id})
	return nil
}

func (s *EventService) publish(action string, payload any) {
	if s.notifier != nil {
		s.notifier.Publish(action, payload)
	}
}
