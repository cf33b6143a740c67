package analytics

import (
	"time"

	"github.com/isdelr/eventboard-be/internal/models"
)

const dayLayout = "2006-01-02"

// ActivitySource supplies view/share figures per calendar day.
type ActivitySource interface {
	// Daily returns one entry per requested date key, in the same order.
	Daily(dates []string) ([]models.DailyActivity, error)
}

// FixedActivity is an ActivitySource backed by a static table. Missing days report zero.
type FixedActivity map[string]models.DailyActivity

func (f FixedActivity) Daily(dates []string) ([]models.DailyActivity, error) {
	out := make([]models.DailyActivity, len(dates))
	for i, d := range dates {
		a := f[d]
		a.Date = d
		out[i] = a
	}
	return out, nil
}

// Daily implements ActivitySource from the counters the tracker keeps as views
// and shares are recorded.
func (t *Tracker) Daily(dates []string) ([]models.DailyActivity, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	days, err := t.loadActivity()
	if err != nil {
		return nil, err
	}
	return FixedActivity(days).Daily(dates)
}

// PruneActivity drops daily counters older than cutoff and returns how many days were removed.
func (t *Tracker) PruneActivity(cutoff time.Time) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	days, err := t.loadActivity()
	if err != nil {
		return 0, err
	}
	limit := cutoff.UTC().Format(dayLayout)
	removed := 0
	for d := range days {
		if d < limit {
			delete(days, d)
			removed++
		}
	}
	if removed == 0 {
		return 0, nil
	}
	return removed, t.saveJSON(ActivityKey, days)
}

func (t *Tracker) bumpActivity(bump func(*models.DailyActivity)) error {
	days, err := t.loadActivity()
	if err != nil {
		return err
	}
	key := t.now().UTC().Format(dayLayout)
	d := days[key]
	d.Date = key
	bump(&d)
	days[key] = d
	return t.saveJSON(ActivityKey, days)
}

func (t *Tracker) loadActivity() (map[string]models.DailyActivity, error) {
	days := map[string]models.DailyActivity{}
	if err := t.loadJSON(ActivityKey, &days); err != nil {
		return nil, err
	}
	if days == nil {
		days = map[string]models.DailyActivity{}
	}
	return days, nil
}

// lastSevenDays returns the date keys of the seven days ending with now, oldest first.
func lastSevenDays(now time.Time) []string {
	now = now.UTC()
	out := make([]string, 7)
	for i := 0; i < 7; i++ {
		out[i] = now.AddDate(0, 0, i-6).Format(dayLayout)
	}
	return out
}
