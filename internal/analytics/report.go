package analytics

import (
	"cmp"
	"math"
	"slices"
	"time"

	"github.com/isdelr/eventboard-be/internal/models"
)

// TopEvents is the number of entries in the popular events list.
const TopEvents = 5

// Reporter builds the dashboard report.
type Reporter struct {
	tracker  *Tracker
	activity ActivitySource
}

// NewReporter creates a Reporter. If activity is nil the tracker's own daily counters are used.
func NewReporter(tracker *Tracker, activity ActivitySource) *Reporter {
	if activity == nil {
		activity = tracker
	}
	return &Reporter{tracker: tracker, activity: activity}
}

// Report aggregates stats for the given live events. Stats whose event no
// longer exists are left out of the totals and the popular list.
func (r *Reporter) Report(events []models.Event, now time.Time) (models.AnalyticsData, error) {
	all, err := r.tracker.All()
	if err != nil {
		return models.AnalyticsData{}, err
	}
	recent, err := r.activity.Daily(lastSevenDays(now))
	if err != nil {
		return models.AnalyticsData{}, err
	}
	return Build(events, all, recent), nil
}

// Build computes the report from already loaded stats and activity.
func Build(events []models.Event, stats []models.EventStats, recent []models.DailyActivity) models.AnalyticsData {
	live := make(map[string]struct{}, len(events))
	for _, e := range events {
		live[e.ID] = struct{}{}
	}

	data := models.AnalyticsData{
		TotalEvents:    len(events),
		PopularEvents:  []models.EventStats{},
		CategoryStats:  CategoryBreakdown(events),
		RecentActivity: recent,
	}

	current := make([]models.EventStats, 0, len(stats))
	for _, s := range stats {
		if _, ok := live[s.ID]; !ok {
			continue
		}
		data.TotalViews += s.Views
		data.TotalShares += s.Shares
		current = append(current, s)
	}

	slices.SortStableFunc(current, func(a, b models.EventStats) int {
		return cmp.Compare(b.PopularityScore, a.PopularityScore)
	})
	if len(current) > TopEvents {
		current = current[:TopEvents]
	}
	data.PopularEvents = current
	for _, s := range current {
		data.TotalEstimatedAttendance += s.EstimatedAttendance
	}
	return data
}

// CategoryBreakdown counts events per category in order of first appearance,
// with each count as a rounded percentage of the collection.
func CategoryBreakdown(events []models.Event) []models.CategoryStat {
	out := []models.CategoryStat{}
	index := map[models.Category]int{}
	for _, e := range events {
		i, ok := index[e.Category]
		if !ok {
			i = len(out)
			index[e.Category] = i
			out = append(out, models.CategoryStat{Category: e.Category})
		}
		out[i].Count++
	}
	for i := range out {
		out[i].Percentage = percentage(out[i].Count, len(events))
	}
	return out
}

func percentage(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
