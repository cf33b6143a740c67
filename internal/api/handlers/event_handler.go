package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/eventboard-be/internal/geo"
	"github.com/isdelr/eventboard-be/internal/models"
	"github.com/isdelr/eventboard-be/internal/pipeline"
	"github.com/isdelr/eventboard-be/internal/services"
	"github.com/rs/zerolog/log"
)

const eventNotFound = "Event not found"

// EventHandler handles HTTP requests related to bulletin-board events.
type EventHandler struct {
	service         services.EventServiceProvider
	defaultRadiusKm float64
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(service services.EventServiceProvider, defaultRadiusKm float64) *EventHandler {
	return &EventHandler{service: service, defaultRadiusKm: defaultRadiusKm}
}

// SearchResult is one entry of the search response.
type SearchResult struct {
	Event      models.Event `json:"event"`
	DistanceKm *float64     `json:"distanceKm,omitempty"`
	Distance   string       `json:"distance,omitempty"`
}

// SearchResponse is the body returned by Search.
type SearchResponse struct {
	Events        []SearchResult `json:"events"`
	Count         int            `json:"count"`
	LocationError string         `json:"locationError,omitempty"`
}

// GetAll handles the request to list events, optionally filtered and sorted.
func (h *EventHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	matches, err := h.service.SearchEvents(q)
	if err != nil {
		writeError(w, err, eventNotFound)
		return
	}
	events := make([]models.Event, len(matches))
	for i, m := range matches {
		events[i] = m.Event
	}
	writeJSON(w, http.StatusOK, events)
}

// Search runs the full pipeline, including the distance filter when the
// caller sends a position. An unusable position falls back to the unfiltered
// set and is reported in locationError.
func (h *EventHandler) Search(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	resp := SearchResponse{Events: []SearchResult{}}
	params := r.URL.Query()
	if params.Has("lat") || params.Has("lng") || params.Has("geoError") {
		origin, err := geo.ParseOrigin(params.Get("lat"), params.Get("lng"), params.Get("geoError"))
		var locErr *geo.LocationError
		switch {
		case err == nil:
			radius := h.defaultRadiusKm
			if raw := params.Get("radius"); raw != "" {
				radius, err = strconv.ParseFloat(raw, 64)
				if err != nil || radius < 0 {
					writeJSON(w, http.StatusBadRequest, map[string]string{"error": "radius must be a non-negative number"})
					return
				}
			}
			q.Near = &pipeline.Near{Origin: origin, RadiusKm: radius}
		case errors.As(err, &locErr):
			log.Warn().Err(err).Msg("Ignoring unusable user location")
			resp.LocationError = locErr.Message
		}
	}

	matches, err := h.service.SearchEvents(q)
	if err != nil {
		writeError(w, err, eventNotFound)
		return
	}
	for _, m := range matches {
		res := SearchResult{Event: m.Event}
		if m.Located {
			d := m.DistanceKm
			res.DistanceKm = &d
			res.Distance = geo.FormatDistance(d)
		}
		resp.Events = append(resp.Events, res)
	}
	resp.Count = len(resp.Events)
	writeJSON(w, http.StatusOK, resp)
}

// Get handles the request to get a single event by its ID.
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	event, err := h.service.GetEventByID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err, eventNotFound)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// Create handles the request to create a new event.
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.EventInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	event, err := h.service.CreateEvent(in)
	if err != nil {
		writeError(w, err, eventNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, event)
}

// Update handles PUT: the body must be a complete, valid event.
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, h.service.ReplaceEvent)
}

// Patch handles PATCH: only the fields present in the body are validated and changed.
func (h *EventHandler) Patch(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, h.service.PatchEvent)
}

func (h *EventHandler) update(w http.ResponseWriter, r *http.Request, apply func(string, models.EventInput) (models.Event, error)) {
	var in models.EventInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	event, err := apply(chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, err, eventNotFound)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// Delete handles the request to delete an event.
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteEvent(chi.URLParam(r, "id")); err != nil {
		writeError(w, err, eventNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseQuery(r *http.Request) (pipeline.Query, error) {
	params := r.URL.Query()
	sort, err := pipeline.ParseSort(params.Get("sort"), params.Get("order"))
	if err != nil {
		return pipeline.Query{}, err
	}
	category := params.Get("category")
	if category == "" {
		category = pipeline.AllCategories
	}
	return pipeline.Query{
		Category: category,
		Search:   params.Get("q"),
		Sort:     sort,
	}, nil
}
