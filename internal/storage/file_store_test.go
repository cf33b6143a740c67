package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/isdelr/eventboard-be/internal/models"
)

var fixedNow = time.Date(2025, 5, 20, 9, 30, 15, 123456789, time.UTC)

func newTestStore(t *testing.T, opts ...Option) (*FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "events.json")
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewFileStore(path, opts...), path
}

func str(s string) *string { return &s }

func fullInput(title string) models.EventInput {
	return models.EventInput{
		Title:       str(title),
		Date:        str("2025-06-01"),
		Time:        str("14:30"),
		Location:    str("Test Venue"),
		Description: str("A test event"),
		Category:    str("Education"),
		Organizer:   str("Test Organizer"),
	}
}

func TestListCreatesEmptyFile(t *testing.T) {
	st, path := newTestStore(t)
	events, err := st.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("expected no events, got %d", len(events))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if string(data) != "[]" {
		t.Fatalf("expected empty array on disk, got %q", data)
	}
}

func TestSeedWrittenOnce(t *testing.T) {
	st, _ := newTestStore(t, WithSeed(SampleEvents(fixedNow)))
	events, err := st.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 seeded events, got %d", len(events))
	}
	if err := st.Delete("1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	events, _ = st.List()
	if len(events) != 1 {
		t.Fatalf("expected seed not to be rewritten, got %d events", len(events))
	}
}

func TestCreatePrependsAndAssignsIdentity(t *testing.T) {
	st, _ := newTestStore(t)
	first, err := st.Create(fullInput("First"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := st.Create(fullInput("Second"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.ID == "" || first.ID == second.ID {
		t.Fatalf("expected distinct generated ids, got %q and %q", first.ID, second.ID)
	}
	if !first.CreatedAt.Equal(fixedNow) {
		t.Fatalf("expected createdAt %v, got %v", fixedNow, first.CreatedAt)
	}

	events, err := st.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 2 || events[0].ID != second.ID || events[1].ID != first.ID {
		t.Fatalf("expected newest first, got %+v", events)
	}
}

func TestPersistedRoundTrip(t *testing.T) {
	st, path := newTestStore(t)
	created, err := st.Create(fullInput("Round Trip"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	reopened := NewFileStore(path)
	got, err := reopened.Get(created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !reflect.DeepEqual(got, created) {
		t.Fatalf("round trip mismatch:\n got  %+v\n want %+v", got, created)
	}
}

func TestEventJSONRoundTrip(t *testing.T) {
	e := models.Event{
		ID: "abc", Title: "T", Date: "2025-06-01", Time: "10:00", Location: "L",
		Description: "D", Category: models.CategoryArts, Organizer: "O", CreatedAt: fixedNow,
	}
	data, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back models.Event
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(back, e) {
		t.Fatalf("expected %+v, got %+v", e, back)
	}
}

func TestUpdateMergesPartial(t *testing.T) {
	st, _ := newTestStore(t)
	created, _ := st.Create(fullInput("Before"))

	updated, err := st.Update(created.ID, models.EventInput{Title: str("After")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "After" || updated.Location != "Test Venue" {
		t.Fatalf("unexpected merge result %+v", updated)
	}
	if updated.ID != created.ID || !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("identity fields changed: %+v", updated)
	}
}

func TestUpdateAndDeleteMissing(t *testing.T) {
	st, _ := newTestStore(t)
	if _, err := st.Update("missing", fullInput("x")); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on update, got %v", err)
	}
	if err := st.Delete("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on delete, got %v", err)
	}
	if _, err := st.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on get, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	st, _ := newTestStore(t)
	a, _ := st.Create(fullInput("A"))
	b, _ := st.Create(fullInput("B"))
	if err := st.Delete(a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	events, _ := st.List()
	if len(events) != 1 || events[0].ID != b.ID {
		t.Fatalf("expected only %s left, got %+v", b.ID, events)
	}
}

func TestCorruptFileIsStorageError(t *testing.T) {
	st, path := newTestStore(t)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := st.List()
	var storeErr *Error
	if !errors.As(err, &storeErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if storeErr.Op != "decode" {
		t.Fatalf("expected decode op, got %q", storeErr.Op)
	}
}

func TestMemoryKV(t *testing.T) {
	kv := NewMemoryKV()
	if _, ok, err := kv.Get("k"); ok || err != nil {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}
	value := []byte("v1")
	if err := kv.Set("k", value); err != nil {
		t.Fatalf("set: %v", err)
	}
	value[0] = 'x'
	got, ok, err := kv.Get("k")
	if err != nil || !ok || string(got) != "v1" {
		t.Fatalf("expected v1, got %q ok=%v err=%v", got, ok, err)
	}
}
