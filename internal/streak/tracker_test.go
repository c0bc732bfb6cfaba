package streak

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/mabbasbangash97/codevibe/internal/model"
)

type memStore struct {
	values map[string]string
}

func newMemStore() *memStore {
	return &memStore{values: make(map[string]string)}
}

func (m *memStore) GetJSON(_ context.Context, key string, v any) (bool, error) {
	raw, ok := m.values[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, err
	}
	return true, nil
}

func (m *memStore) SetJSON(_ context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.values[key] = string(raw)
	return nil
}

func (m *memStore) SetString(_ context.Context, key, value string) error {
	m.values[key] = value
	return nil
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advanceDays(n int) { c.now = c.now.AddDate(0, 0, n) }

func newTestTracker(t *testing.T, clock *fakeClock) (*Tracker, *memStore) {
	t.Helper()
	st := newMemStore()
	tr, err := NewTracker(context.Background(), Options{
		Store:    st,
		MinChars: 10,
		Enabled:  true,
		Now:      clock.Now,
	})
	if err != nil {
		t.Fatalf("failed to create tracker: %v", err)
	}
	return tr, st
}

func flush(t *testing.T, tr *Tracker) {
	t.Helper()
	if err := tr.Flush(context.Background()); err != nil {
		t.Fatalf("flush failed: %v", err)
	}
}

func TestFirstActiveDay(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)}
	tr, _ := newTestTracker(t, clock)

	tr.AddChars(25)
	flush(t, tr)

	data := tr.Data()
	if data.CurrentStreak != 1 || data.TotalCodingDays != 1 {
		t.Fatalf("expected streak=1 total=1, got streak=%d total=%d", data.CurrentStreak, data.TotalCodingDays)
	}
	if data.LastActiveDate != "2025-03-10" {
		t.Fatalf("unexpected lastActiveDate: %q", data.LastActiveDate)
	}
	if len(data.History) != 1 || data.History[0].CharCount != 25 {
		t.Fatalf("unexpected history: %+v", data.History)
	}
}

func TestThresholdCrossing(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)}
	tr, _ := newTestTracker(t, clock)

	tr.AddChars(9)
	flush(t, tr)

	data := tr.Data()
	if data.TodayCharCount != 9 {
		t.Fatalf("expected 9 chars, got %d", data.TodayCharCount)
	}
	if data.CurrentStreak != 0 || len(data.History) != 0 {
		t.Fatalf("day recorded below threshold: %+v", data)
	}

	tr.AddChars(2)
	flush(t, tr)

	data = tr.Data()
	if data.TodayCharCount != 11 {
		t.Fatalf("expected 11 chars, got %d", data.TodayCharCount)
	}
	if data.CurrentStreak != 1 || len(data.History) != 1 {
		t.Fatalf("expected active day after crossing threshold: %+v", data)
	}
}

func TestConsecutiveDaysExtendStreak(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)}
	tr, _ := newTestTracker(t, clock)

	for day := 0; day < 3; day++ {
		tr.AddChars(50)
		flush(t, tr)
		clock.advanceDays(1)
	}

	data := tr.Data()
	if data.CurrentStreak != 3 || data.LongestStreak != 3 || data.TotalCodingDays != 3 {
		t.Fatalf("expected 3/3/3, got %d/%d/%d", data.CurrentStreak, data.LongestStreak, data.TotalCodingDays)
	}
}

func TestGapOfTwoDaysBreaksStreak(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)}
	tr, _ := newTestTracker(t, clock)

	tr.AddChars(50)
	flush(t, tr)

	clock.advanceDays(3)
	tr.AddChars(50)
	flush(t, tr)

	data := tr.Data()
	if data.CurrentStreak != 1 {
		t.Fatalf("expected streak reset to 1 after gap, got %d", data.CurrentStreak)
	}
	if data.LongestStreak != 1 || data.TotalCodingDays != 2 {
		t.Fatalf("unexpected totals: %+v", data)
	}
}

// A flush landing while lastActiveDate is still "yesterday" never
// breaks the streak, even when that day stays below the threshold. The
// break only lands once lastActiveDate is two or more days old.
func TestBelowThresholdDayGrace(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)}
	tr, _ := newTestTracker(t, clock)

	tr.AddChars(50)
	flush(t, tr)

	clock.advanceDays(1)
	tr.AddChars(5) // below threshold, not recorded
	flush(t, tr)
	if got := tr.Data().CurrentStreak; got != 1 {
		t.Fatalf("grace day broke streak: got %d", got)
	}

	clock.advanceDays(1)
	tr.AddChars(50)
	flush(t, tr)

	data := tr.Data()
	if data.CurrentStreak != 1 {
		t.Fatalf("expected streak broken then restarted at 1, got %d", data.CurrentStreak)
	}
	if data.TotalCodingDays != 2 {
		t.Fatalf("expected 2 active days, got %d", data.TotalCodingDays)
	}
}

func TestRolloverResetsTodayCount(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)}
	tr, _ := newTestTracker(t, clock)

	tr.AddChars(50)
	flush(t, tr)

	clock.advanceDays(1)
	tr.AddChars(5)
	flush(t, tr)

	data := tr.Data()
	if data.TodayCharCount != 5 {
		t.Fatalf("expected today count reset before accumulating, got %d", data.TodayCharCount)
	}
	if data.CurrentStreak != 1 {
		t.Fatalf("below-threshold day must not extend streak, got %d", data.CurrentStreak)
	}
}

func TestHistoryBoundedToThirty(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.Local)}
	tr, _ := newTestTracker(t, clock)

	for day := 0; day < 31; day++ {
		tr.AddChars(50)
		flush(t, tr)
		clock.advanceDays(1)
	}

	data := tr.Data()
	if len(data.History) != 30 {
		t.Fatalf("expected 30 entries, got %d", len(data.History))
	}
	if data.History[0].Date != "2025-01-02" {
		t.Fatalf("expected oldest entry evicted, first is %s", data.History[0].Date)
	}
	if data.History[29].Date != "2025-01-31" {
		t.Fatalf("expected newest entry last, got %s", data.History[29].Date)
	}
	for i := 1; i < len(data.History); i++ {
		if data.History[i-1].Date >= data.History[i].Date {
			t.Fatalf("history out of order at %d: %s >= %s", i, data.History[i-1].Date, data.History[i].Date)
		}
	}
}

func TestStreakInvariantHolds(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.Local)}
	tr, _ := newTestTracker(t, clock)

	steps := []int{1, 1, 3, 1, 1, 1, 4, 1} // days to advance between flushes
	for _, gap := range steps {
		tr.AddChars(50)
		flush(t, tr)
		data := tr.Data()
		if data.CurrentStreak > data.LongestStreak {
			t.Fatalf("invariant violated: current=%d longest=%d", data.CurrentStreak, data.LongestStreak)
		}
		clock.advanceDays(gap)
	}
}

func TestEmptyBufferFlushIsNoop(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)}
	tr, _ := newTestTracker(t, clock)

	updates := 0
	tr.OnUpdated(func(model.StreakData) { updates++ })

	flush(t, tr)
	if updates != 0 {
		t.Fatalf("expected no notification on empty flush, got %d", updates)
	}
}

func TestRecordMood(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)}
	tr, st := newTestTracker(t, clock)

	// No entry for today yet: tagging is a no-op.
	if err := tr.RecordMood(context.Background(), model.MoodFocused); err != nil {
		t.Fatalf("record mood failed: %v", err)
	}
	if len(tr.Data().History) != 0 {
		t.Fatalf("tagging must not create entries")
	}

	tr.AddChars(50)
	flush(t, tr)

	if err := tr.RecordMood(context.Background(), model.MoodFocused); err != nil {
		t.Fatalf("record mood failed: %v", err)
	}
	if got := tr.Data().History[0].Mood; got != model.MoodFocused {
		t.Fatalf("expected focused, got %q", got)
	}

	// Overwrites on repeat.
	if err := tr.RecordMood(context.Background(), model.MoodRelaxed); err != nil {
		t.Fatalf("record mood failed: %v", err)
	}
	if got := tr.Data().History[0].Mood; got != model.MoodRelaxed {
		t.Fatalf("expected relaxed, got %q", got)
	}

	var persisted model.StreakData
	if _, err := st.GetJSON(context.Background(), "streakData", &persisted); err != nil {
		t.Fatalf("failed to read persisted data: %v", err)
	}
	if persisted.History[0].Mood != model.MoodRelaxed {
		t.Fatalf("mood tag not persisted: %+v", persisted.History)
	}
}

func TestReset(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)}
	tr, _ := newTestTracker(t, clock)

	for day := 0; day < 5; day++ {
		tr.AddChars(50)
		flush(t, tr)
		clock.advanceDays(1)
	}

	var notified *model.StreakData
	tr.OnUpdated(func(d model.StreakData) { notified = &d })

	if err := tr.Reset(context.Background()); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	data := tr.Data()
	if data.CurrentStreak != 0 || data.LongestStreak != 0 || data.TotalCodingDays != 0 ||
		data.LastActiveDate != "" || data.TodayCharCount != 0 || len(data.History) != 0 {
		t.Fatalf("expected zero ledger, got %+v", data)
	}
	if notified == nil || notified.CurrentStreak != 0 || len(notified.History) != 0 {
		t.Fatalf("expected notification with zero state, got %+v", notified)
	}
}

func TestDisabledIgnoresActivity(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)}
	tr, st := newTestTracker(t, clock)

	if !tr.Enabled() {
		t.Fatalf("tracker should start enabled")
	}
	if err := tr.SetEnabled(context.Background(), false); err != nil {
		t.Fatalf("disable failed: %v", err)
	}
	if tr.Enabled() {
		t.Fatalf("flag not cleared")
	}
	if st.values["streak.enabled"] != "false" {
		t.Fatalf("flag not persisted: %v", st.values)
	}
	tr.AddChars(50)
	flush(t, tr)

	if got := tr.Data().TodayCharCount; got != 0 {
		t.Fatalf("disabled tracker accumulated %d chars", got)
	}
}

func TestPersistedStateSurvivesRestart(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)}
	tr, st := newTestTracker(t, clock)

	tr.AddChars(50)
	flush(t, tr)

	tr2, err := NewTracker(context.Background(), Options{
		Store:    st,
		MinChars: 10,
		Enabled:  true,
		Now:      clock.Now,
	})
	if err != nil {
		t.Fatalf("failed to reload tracker: %v", err)
	}
	data := tr2.Data()
	if data.CurrentStreak != 1 || data.LastActiveDate != "2025-03-10" {
		t.Fatalf("state lost across restart: %+v", data)
	}
}

func TestFlushTimerFires(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)}
	st := newMemStore()
	tr, err := NewTracker(context.Background(), Options{
		Store:         st,
		MinChars:      10,
		Enabled:       true,
		FlushInterval: 10 * time.Millisecond,
		Now:           clock.Now,
	})
	if err != nil {
		t.Fatalf("failed to create tracker: %v", err)
	}

	updated := make(chan model.StreakData, 1)
	tr.OnUpdated(func(d model.StreakData) {
		select {
		case updated <- d:
		default:
		}
	})

	tr.AddChars(50)
	select {
	case data := <-updated:
		if data.CurrentStreak != 1 {
			t.Fatalf("expected streak=1 after timed flush, got %d", data.CurrentStreak)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("flush timer never fired")
	}
}

func TestSubscribeConsumesEvents(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)}
	tr, _ := newTestTracker(t, clock)

	events := make(chan int, 4)
	tr.Subscribe(events)
	events <- 7
	events <- 8
	close(events)

	// Give the consumer a moment, then flush synchronously.
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		flush(t, tr)
		if tr.Data().TodayCharCount == 15 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected 15 buffered chars, got %d", tr.Data().TodayCharCount)
}

func TestHistoryDatesUnique(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)}
	tr, _ := newTestTracker(t, clock)

	// Multiple flushes on the same active day must not duplicate the entry.
	tr.AddChars(50)
	flush(t, tr)
	tr.AddChars(50)
	flush(t, tr)

	data := tr.Data()
	if len(data.History) != 1 {
		t.Fatalf("expected one entry for the day, got %d", len(data.History))
	}
	if data.TotalCodingDays != 1 {
		t.Fatalf("day counted twice: %d", data.TotalCodingDays)
	}
}

func TestGapThenRecoverySequence(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.Local)}
	tr, _ := newTestTracker(t, clock)

	// 4 consecutive active days.
	for day := 0; day < 4; day++ {
		tr.AddChars(50)
		flush(t, tr)
		clock.advanceDays(1)
	}
	// 3 silent days.
	clock.advanceDays(3)
	tr.AddChars(50)
	flush(t, tr)

	data := tr.Data()
	if data.CurrentStreak != 1 {
		t.Fatalf("expected fresh streak after break, got %d", data.CurrentStreak)
	}
	if data.LongestStreak != 4 {
		t.Fatalf("longest streak lost: got %d", data.LongestStreak)
	}
	if data.TotalCodingDays != 5 {
		t.Fatalf("expected 5 total days, got %d", data.TotalCodingDays)
	}
}

func TestHistoryCharCountsPerDay(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)}
	tr, _ := newTestTracker(t, clock)

	for day := 0; day < 3; day++ {
		tr.AddChars(10 * (day + 1))
		flush(t, tr)
		clock.advanceDays(1)
	}

	data := tr.Data()
	for i, want := range []int{10, 20, 30} {
		if data.History[i].CharCount != want {
			t.Fatalf("day %d: expected %d chars, got %d", i, want, data.History[i].CharCount)
		}
	}
	if data.History[0].Date != "2025-03-10" {
		t.Fatalf("unexpected first date %s", data.History[0].Date)
	}
}

func TestManyDaysStable(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.Local)}
	tr, _ := newTestTracker(t, clock)

	for day := 0; day < 100; day++ {
		tr.AddChars(100)
		flush(t, tr)
		clock.advanceDays(1)
	}

	data := tr.Data()
	if data.CurrentStreak != 100 || data.LongestStreak != 100 || data.TotalCodingDays != 100 {
		t.Fatalf("unexpected totals: %s", describe(data))
	}
	if len(data.History) != 30 {
		t.Fatalf("history not bounded: %d", len(data.History))
	}
}

func describe(d model.StreakData) string {
	return fmt.Sprintf("current=%d longest=%d total=%d", d.CurrentStreak, d.LongestStreak, d.TotalCodingDays)
}
