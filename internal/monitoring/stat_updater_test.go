package monitoring

import (
	"errors"
	"testing"

	"github.com/isdelr/eventboard-be/internal/models"
)

type stubReports struct {
	report models.AnalyticsData
	err    error
}

func (s *stubReports) GetReport() (models.AnalyticsData, error) {
	return s.report, s.err
}

type recordingPublisher struct {
	actions []string
}

func (p *recordingPublisher) Publish(action string, _ any) {
	p.actions = append(p.actions, action)
}

func TestStatUpdaterPublishesOnlyChanges(t *testing.T) {
	src := &stubReports{report: models.AnalyticsData{TotalEvents: 1}}
	pub := &recordingPublisher{}
	su := NewStatUpdater(src, pub, 0)

	su.push()
	su.push()
	if len(pub.actions) != 1 {
		t.Fatalf("expected one publish for an unchanged report, got %d", len(pub.actions))
	}

	src.report.TotalViews = 3
	su.push()
	if len(pub.actions) != 2 || pub.actions[1] != ActionAnalyticsUpdated {
		t.Fatalf("expected a second publish after change, got %v", pub.actions)
	}
}

func TestStatUpdaterSkipsFailedReports(t *testing.T) {
	pub := &recordingPublisher{}
	su := NewStatUpdater(&stubReports{err: errors.New("disk gone")}, pub, 0)
	su.push()
	if len(pub.actions) != 0 {
		t.Fatalf("expected nothing published, got %v", pub.actions)
	}
}
