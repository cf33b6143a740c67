// Package analytics accumulates per-event engagement counters and builds the
// dashboard report from them.
package analytics

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/isdelr/eventboard-be/internal/models"
	"github.com/isdelr/eventboard-be/internal/storage"
)

// Keys under which the tracker persists its documents.
const (
	StatsKey    = "eventAnalytics"
	ActivityKey = "eventActivity"
)

// ErrNotTracked is returned when a share or scan arrives for an event that has never been viewed.
var ErrNotTracked = errors.New("event has no analytics yet")

// PopularityScore weighs shares and QR scans above plain views.
func PopularityScore(s models.EventStats) int {
	return s.Views + 3*s.Shares + 2*s.QRScans
}

// EstimatedAttendance is floor(qrScans * 1.5).
func EstimatedAttendance(qrScans int) int {
	return qrScans * 3 / 2
}

// Tracker reads and writes the whole stats document on every update. The mutex
// serialises updates inside this process only; separate processes sharing the
// same store can still lose updates.
type Tracker struct {
	mu  sync.Mutex
	kv  storage.KV
	now func() time.Time
}

// NewTracker creates a tracker persisting to kv.
func NewTracker(kv storage.KV, now func() time.Time) *Tracker {
	if now == nil {
		now = time.Now
	}
	return &Tracker{kv: kv, now: now}
}

// Stats returns the stats recorded for id.
func (t *Tracker) Stats(id string) (models.EventStats, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	all, err := t.loadStats()
	if err != nil {
		return models.EventStats{}, err
	}
	for _, s := range all {
		if s.ID == id {
			return s, nil
		}
	}
	return models.EventStats{}, ErrNotTracked
}

// All returns every stats record in storage order.
func (t *Tracker) All() ([]models.EventStats, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.loadStats()
}

// RecordView counts a view. The first view of an event creates its record
// with the title and category given here; later views do not update them.
func (t *Tracker) RecordView(id, title string, category models.Category) (models.EventStats, error) {
	return t.update(id, func(all []models.EventStats, i int) ([]models.EventStats, int) {
		if i < 0 {
			all = append(all, models.EventStats{ID: id, Title: title, Category: category})
			i = len(all) - 1
		}
		all[i].Views++
		return all, i
	}, func(d *models.DailyActivity) { d.Views++ })
}

// RecordShare counts a share of an already tracked event.
func (t *Tracker) RecordShare(id string) (models.EventStats, error) {
	return t.update(id, func(all []models.EventStats, i int) ([]models.EventStats, int) {
		if i >= 0 {
			all[i].Shares++
		}
		return all, i
	}, func(d *models.DailyActivity) { d.Shares++ })
}

// RecordScan counts a QR scan of an already tracked event.
func (t *Tracker) RecordScan(id string) (models.EventStats, error) {
	return t.update(id, func(all []models.EventStats, i int) ([]models.EventStats, int) {
		if i >= 0 {
			all[i].QRScans++
			all[i].EstimatedAttendance = EstimatedAttendance(all[i].QRScans)
		}
		return all, i
	}, nil)
}

// Reconcile drops stats whose event id is not in live and returns how many were removed.
func (t *Tracker) Reconcile(live map[string]struct{}) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	all, err := t.loadStats()
	if err != nil {
		return 0, err
	}
	kept := all[:0]
	for _, s := range all {
		if _, ok := live[s.ID]; ok {
			kept = append(kept, s)
		}
	}
	removed := len(all) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	return removed, t.saveJSON(StatsKey, kept)
}

func (t *Tracker) update(id string, mutate func([]models.EventStats, int) ([]models.EventStats, int), daily func(*models.DailyActivity)) (models.EventStats, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	all, err := t.loadStats()
	if err != nil {
		return models.EventStats{}, err
	}
	idx := -1
	for i := range all {
		if all[i].ID == id {
			idx = i
			break
		}
	}
	all, idx = mutate(all, idx)
	if idx < 0 {
		return models.EventStats{}, ErrNotTracked
	}
	all[idx].PopularityScore = PopularityScore(all[idx])

	if err := t.saveJSON(StatsKey, all); err != nil {
		return models.EventStats{}, err
	}
	if daily != nil {
		if err := t.bumpActivity(daily); err != nil {
			return models.EventStats{}, err
		}
	}
	return all[idx], nil
}

func (t *Tracker) loadStats() ([]models.EventStats, error) {
	var all []models.EventStats
	if err := t.loadJSON(StatsKey, &all); err != nil {
		return nil, err
	}
	return all, nil
}

func (t *Tracker) loadJSON(key string, v any) error {
	data, ok, err := t.kv.Get(key)
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	if !ok {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (t *Tracker) saveJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := t.kv.Set(key, data); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
