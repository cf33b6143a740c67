package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/eventboard-be/internal/services"
)

// AnalyticsHandler handles engagement tracking, sharing and reporting.
type AnalyticsHandler struct {
	service services.AnalyticsServiceProvider
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(service services.AnalyticsServiceProvider) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// RecordView counts a view of the event.
func (h *AnalyticsHandler) RecordView(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.RecordView(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err, eventNotFound)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Share counts a share and returns the signed share link.
func (h *AnalyticsHandler) Share(w http.ResponseWriter, r *http.Request) {
	link, err := h.service.ShareEvent(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err, eventNotFound)
		return
	}
	writeJSON(w, http.StatusOK, link)
}

// Scan is the target of share links and QR codes.
func (h *AnalyticsHandler) Scan(w http.ResponseWriter, r *http.Request) {
	event, _, err := h.service.RecordScan(chi.URLParam(r, "token"))
	if err != nil {
		writeError(w, err, eventNotFound)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// Stats returns the counters for one event.
func (h *AnalyticsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetStats(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err, "No analytics recorded for this event")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Report returns the dashboard report.
func (h *AnalyticsHandler) Report(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.GetReport()
	if err != nil {
		writeError(w, err, eventNotFound)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

// Weather returns the forecast for the event's location.
func (h *AnalyticsHandler) Weather(w http.ResponseWriter, r *http.Request) {
	forecast, err := h.service.GetWeather(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err, eventNotFound)
		return
	}
	writeJSON(w, http.StatusOK, forecast)
}
