// Package streak maintains the daily coding-activity ledger.
//
// Inserted-character counts stream in from the activity watcher, get
// buffered, and flush on a trailing-edge timer into the day-rollover
// state machine. A day becomes active exactly once, the first time the
// accumulated count crosses the activity threshold on that day.
package streak

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/mabbasbangash97/codevibe/internal/logging"
	"github.com/mabbasbangash97/codevibe/internal/model"
)

// FlushInterval is the inactivity window before buffered counts flush.
const FlushInterval = 5 * time.Second

const dateLayout = "2006-01-02"

// Store persists the ledger and the enabled flag.
type Store interface {
	GetJSON(ctx context.Context, key string, v any) (bool, error)
	SetJSON(ctx context.Context, key string, v any) error
	SetString(ctx context.Context, key, value string) error
}

const (
	dataKey    = "streakData"
	enabledKey = "streak.enabled"
)

// Tracker buffers activity and owns the streak state machine.
type Tracker struct {
	mu sync.Mutex

	store         Store
	now           func() time.Time
	flushInterval time.Duration
	minChars      int
	enabled       bool

	data       model.StreakData
	buffer     int
	flushTimer *time.Timer

	events    <-chan int
	quit      chan struct{}
	observers []func(model.StreakData)
}

// Options configures a Tracker.
type Options struct {
	Store         Store
	MinChars      int
	Enabled       bool
	FlushInterval time.Duration // defaults to FlushInterval
	Now           func() time.Time
}

// NewTracker loads the persisted ledger (or starts from zero) and runs
// an initial day-rollover check.
func NewTracker(ctx context.Context, opts Options) (*Tracker, error) {
	t := &Tracker{
		store:         opts.Store,
		now:           opts.Now,
		flushInterval: opts.FlushInterval,
		minChars:      opts.MinChars,
		enabled:       opts.Enabled,
	}
	if t.now == nil {
		t.now = time.Now
	}
	if t.flushInterval <= 0 {
		t.flushInterval = FlushInterval
	}
	if t.store != nil {
		if _, err := t.store.GetJSON(ctx, dataKey, &t.data); err != nil {
			return nil, fmt.Errorf("failed to load streak data: %w", err)
		}
	}
	t.mu.Lock()
	t.checkDayRollover()
	t.mu.Unlock()
	return t, nil
}

// OnUpdated registers an observer notified with a ledger snapshot after
// every persisted mutation.
func (t *Tracker) OnUpdated(fn func(model.StreakData)) {
	t.mu.Lock()
	t.observers = append(t.observers, fn)
	t.mu.Unlock()
}

func (t *Tracker) notify(snapshot model.StreakData) {
	t.mu.Lock()
	observers := append(([]func(model.StreakData))(nil), t.observers...)
	t.mu.Unlock()
	for _, fn := range observers {
		fn(snapshot)
	}
}

// Subscribe consumes inserted-length events until the tracker is
// disabled or the channel closes.
func (t *Tracker) Subscribe(events <-chan int) {
	t.mu.Lock()
	t.events = events
	enabled := t.enabled
	t.mu.Unlock()
	if enabled {
		t.startConsumer()
	}
}

func (t *Tracker) startConsumer() {
	t.mu.Lock()
	if t.events == nil || t.quit != nil {
		t.mu.Unlock()
		return
	}
	quit := make(chan struct{})
	t.quit = quit
	events := t.events
	t.mu.Unlock()

	go func() {
		for {
			select {
			case n, ok := <-events:
				if !ok {
					return
				}
				t.AddChars(n)
			case <-quit:
				return
			}
		}
	}()
}

// AddChars buffers an inserted-character count and re-arms the flush
// timer. Deletions never reach here; non-positive counts are ignored.
func (t *Tracker) AddChars(n int) {
	if n <= 0 {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.enabled {
		return
	}
	t.buffer += n
	if t.flushTimer != nil {
		t.flushTimer.Stop()
	}
	t.flushTimer = time.AfterFunc(t.flushInterval, func() {
		if err := t.Flush(context.Background()); err != nil {
			logging.L().Error("streak flush failed", "error", err)
		}
	})
}

// Flush drains the buffer into the ledger: rollover first on a day
// change, then accumulate, then record the day as active if the count
// just crossed the threshold. No-op with an empty buffer.
func (t *Tracker) Flush(ctx context.Context) error {
	t.mu.Lock()
	if t.flushTimer != nil {
		t.flushTimer.Stop()
		t.flushTimer = nil
	}
	if t.buffer == 0 {
		t.mu.Unlock()
		return nil
	}

	today := t.today()
	if t.data.LastActiveDate != today {
		t.checkDayRollover()
	}

	t.data.TodayCharCount += t.buffer
	t.buffer = 0

	if t.data.TodayCharCount >= t.minChars && t.data.LastActiveDate != today {
		t.recordActiveDay(today)
	}

	snapshot := t.data.Clone()
	t.mu.Unlock()

	if err := t.persist(ctx, snapshot); err != nil {
		return err
	}
	t.notify(snapshot)
	return nil
}

// checkDayRollover resets daily state when the calendar day moved on.
// A lastActiveDate of exactly yesterday keeps the streak alive; any
// older date breaks it. Callers hold t.mu.
func (t *Tracker) checkDayRollover() {
	today := t.today()
	yesterday := t.yesterday()

	if t.data.LastActiveDate == "" {
		// First-ever run, nothing to roll over.
		return
	}
	if t.data.LastActiveDate == today {
		return
	}
	if t.data.LastActiveDate != yesterday {
		t.data.CurrentStreak = 0
	}
	t.data.TodayCharCount = 0
}

// recordActiveDay marks today active. Callers hold t.mu.
func (t *Tracker) recordActiveDay(today string) {
	t.data.LastActiveDate = today
	t.data.CurrentStreak++
	t.data.TotalCodingDays++
	if t.data.CurrentStreak > t.data.LongestStreak {
		t.data.LongestStreak = t.data.CurrentStreak
	}
	t.data.History = append(t.data.History, model.StreakEntry{
		Date:      today,
		CharCount: t.data.TodayCharCount,
	})
	if len(t.data.History) > 30 {
		t.data.History = t.data.History[len(t.data.History)-30:]
	}
}

// RecordMood tags today's history entry with the selected mood.
// Overwrites on repeat calls; a day without an entry is left untouched.
func (t *Tracker) RecordMood(ctx context.Context, mood model.Mood) error {
	t.mu.Lock()
	today := t.today()
	tagged := false
	for i := range t.data.History {
		if t.data.History[i].Date == today {
			t.data.History[i].Mood = mood
			tagged = true
			break
		}
	}
	snapshot := t.data.Clone()
	t.mu.Unlock()

	if !tagged {
		return nil
	}
	return t.persist(ctx, snapshot)
}

// Reset clears the ledger to its zero state.
func (t *Tracker) Reset(ctx context.Context) error {
	t.mu.Lock()
	t.data = model.StreakData{}
	t.buffer = 0
	snapshot := t.data.Clone()
	t.mu.Unlock()

	if err := t.persist(ctx, snapshot); err != nil {
		return err
	}
	t.notify(snapshot)
	return nil
}

// SetEnabled toggles tracking. Disabling detaches the event consumer
// and cancels the pending flush without discarding persisted counts.
func (t *Tracker) SetEnabled(ctx context.Context, enabled bool) error {
	t.mu.Lock()
	t.enabled = enabled
	if !enabled {
		if t.quit != nil {
			close(t.quit)
			t.quit = nil
		}
		if t.flushTimer != nil {
			t.flushTimer.Stop()
			t.flushTimer = nil
		}
	}
	t.mu.Unlock()

	if enabled {
		t.startConsumer()
	}
	if t.store != nil {
		return t.store.SetString(ctx, enabledKey, strconv.FormatBool(enabled))
	}
	return nil
}

// Enabled reports whether tracking is on.
func (t *Tracker) Enabled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.enabled
}

// Data returns a snapshot of the ledger.
func (t *Tracker) Data() model.StreakData {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.data.Clone()
}

// Close flushes any buffered activity and stops the consumer.
func (t *Tracker) Close(ctx context.Context) error {
	t.mu.Lock()
	if t.quit != nil {
		close(t.quit)
		t.quit = nil
	}
	t.mu.Unlock()
	return t.Flush(ctx)
}

func (t *Tracker) persist(ctx context.Context, snapshot model.StreakData) error {
	if t.store == nil {
		return nil
	}
	if err := t.store.SetJSON(ctx, dataKey, snapshot); err != nil {
		return fmt.Errorf("failed to save streak data: %w", err)
	}
	return nil
}

func (t *Tracker) today() string {
	return t.now().Format(dateLayout)
}

func (t *Tracker) yesterday() string {
	return t.now().AddDate(0, 0, -1).Format(dateLayout)
}
