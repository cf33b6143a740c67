package monitoring

import (
	"reflect"
	"time"

	"github.com/isdelr/eventboard-be/internal/models"
	"github.com/rs/zerolog/log"
)

// ActionAnalyticsUpdated is published whenever the dashboard report changes.
const ActionAnalyticsUpdated = "analytics.updated"

// ReportSource builds the current analytics report.
type ReportSource interface {
	GetReport() (models.AnalyticsData, error)
}

// Publisher delivers a message to connected clients.
type Publisher interface {
	Publish(action string, payload any)
}

// StatUpdater periodically rebuilds the analytics report and pushes it to
// websocket clients when it differs from the last one sent.
type StatUpdater struct {
	source   ReportSource
	pub      Publisher
	interval time.Duration
	last     *models.AnalyticsData
	done     chan struct{}
}

// NewStatUpdater creates a new StatUpdater.
func NewStatUpdater(source ReportSource, pub Publisher, interval time.Duration) *StatUpdater {
	return &StatUpdater{
		source:   source,
		pub:      pub,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Run starts the periodic updates. It returns after Stop is called.
func (su *StatUpdater) Run() {
	log.Info().Dur("interval", su.interval).Msg("Starting analytics stat updater...")
	ticker := time.NewTicker(su.interval)
	defer ticker.Stop()

	su.push()

	for {
		select {
		case <-su.done:
			log.Info().Msg("Stopping analytics stat updater.")
			return
		case <-ticker.C:
			su.push()
		}
	}
}

// Stop halts the periodic updates.
func (su *StatUpdater) Stop() {
	close(su.done)
}

func (su *StatUpdater) push() {
	report, err := su.source.GetReport()
	if err != nil {
		log.Error().Err(err).Msg("StatUpdater: failed to build analytics report")
		return
	}
	if su.last != nil && reflect.DeepEqual(*su.last, report) {
		return
	}
	su.last = &report
	su.pub.Publish(ActionAnalyticsUpdated, report)
}
