// Package mood coordinates theme, sound, and animation changes for a
// selected mood.
package mood

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mabbasbangash97/codevibe/internal/config"
	"github.com/mabbasbangash97/codevibe/internal/logging"
	"github.com/mabbasbangash97/codevibe/internal/model"
)

// DebounceInterval collapses rapid repeated selections (arrow-key
// cycling) into a single orchestration.
const DebounceInterval = 300 * time.Millisecond

// ErrUnknownMood reports a mood identifier outside the known set.
var ErrUnknownMood = errors.New("unknown mood")

// Themes applies a color theme, resolving fallbacks.
type Themes interface {
	Apply(ctx context.Context, name string) (string, error)
}

// Sounds starts ambient sound playback.
type Sounds interface {
	Play(ctx context.Context, identifier string)
}

// Animations drives the decorative animation state.
type Animations interface {
	Set(t model.AnimationType, color string)
	Stop()
	Enabled() bool
}

// Store persists the last selected mood.
type Store interface {
	GetString(ctx context.Context, key string) (string, bool, error)
	SetString(ctx context.Context, key, value string) error
}

// Notifier surfaces user-visible status lines and warnings.
type Notifier func(text string)

const lastMoodKey = "lastMood"

// Options configures an Orchestrator.
type Options struct {
	Themes     Themes
	Sounds     Sounds
	Animations Animations
	Store      Store
	Notifier   Notifier

	// Overrides replaces built-in theme/sound per mood, keyed by mood id.
	Overrides map[string]config.MoodOverride

	SoundsEnabled bool
	Debounce      time.Duration // defaults to DebounceInterval
}

// SetOptions adjusts a single SetMood call.
type SetOptions struct {
	PlaySound bool
}

type pendingSet struct {
	timer   *time.Timer
	mood    model.Mood
	opts    SetOptions
	waiters []chan error
}

// Orchestrator owns the mood-to-effect mapping and drives the theme,
// sound, and animation subsystems on mood changes.
type Orchestrator struct {
	mu sync.Mutex

	themes        Themes
	sounds        Sounds
	animations    Animations
	store         Store
	notifier      Notifier
	soundsEnabled bool
	debounce      time.Duration

	order   []model.Mood
	configs map[model.Mood]model.MoodConfig
	current model.Mood

	pending   *pendingSet
	observers []func(model.Mood)
}

// New builds an orchestrator with the default mood table merged with
// per-mood overrides, and silently restores the persisted last mood.
func New(ctx context.Context, opts Options) *Orchestrator {
	o := &Orchestrator{
		themes:        opts.Themes,
		sounds:        opts.Sounds,
		animations:    opts.Animations,
		store:         opts.Store,
		notifier:      opts.Notifier,
		soundsEnabled: opts.SoundsEnabled,
		debounce:      opts.Debounce,
		configs:       make(map[model.Mood]model.MoodConfig),
	}
	if o.debounce <= 0 {
		o.debounce = DebounceInterval
	}
	for _, cfg := range model.DefaultMoodConfigs() {
		if override, ok := opts.Overrides[string(cfg.ID)]; ok {
			if override.Theme != nil && *override.Theme != "" {
				cfg.Theme = *override.Theme
			}
			if override.Sound != nil && *override.Sound != "" {
				cfg.Sound = *override.Sound
			}
		}
		o.order = append(o.order, cfg.ID)
		o.configs[cfg.ID] = cfg
	}
	o.restoreLastMood(ctx)
	return o
}

// restoreLastMood replays the persisted mood without audio so startup
// restores the visual state silently.
func (o *Orchestrator) restoreLastMood(ctx context.Context) {
	if o.store == nil {
		return
	}
	raw, found, err := o.store.GetString(ctx, lastMoodKey)
	if err != nil {
		logging.L().Warn("failed to read last mood", "error", err)
		return
	}
	if !found {
		return
	}
	if m, ok := model.ParseMood(raw); ok {
		o.SetMood(m, SetOptions{PlaySound: false})
	}
}

// OnMoodChanged registers an observer notified after all effects of a
// mood change have been dispatched.
func (o *Orchestrator) OnMoodChanged(fn func(model.Mood)) {
	o.mu.Lock()
	o.observers = append(o.observers, fn)
	o.mu.Unlock()
}

// SetMood schedules a debounced mood change. Calls landing inside the
// debounce window replace the pending arguments, so only the last call
// of a burst executes; every caller's channel still receives that
// execution's result. The returned channel is buffered and delivers
// exactly one value.
func (o *Orchestrator) SetMood(mood model.Mood, opts SetOptions) <-chan error {
	done := make(chan error, 1)

	o.mu.Lock()
	if o.pending != nil {
		o.pending.timer.Stop()
		o.pending.mood = mood
		o.pending.opts = opts
		o.pending.waiters = append(o.pending.waiters, done)
		o.pending.timer.Reset(o.debounce)
		o.mu.Unlock()
		return done
	}
	p := &pendingSet{mood: mood, opts: opts, waiters: []chan error{done}}
	p.timer = time.AfterFunc(o.debounce, func() { o.firePending(p) })
	o.pending = p
	o.mu.Unlock()
	return done
}

func (o *Orchestrator) firePending(p *pendingSet) {
	o.mu.Lock()
	if o.pending != p {
		o.mu.Unlock()
		return
	}
	o.pending = nil
	mood, opts, waiters := p.mood, p.opts, p.waiters
	o.mu.Unlock()

	err := o.apply(context.Background(), mood, opts)
	for _, ch := range waiters {
		ch <- err
	}
}

// apply runs the orchestration body. A panic anywhere in the pipeline
// is recovered and surfaced so waiters are never left hanging.
func (o *Orchestrator) apply(ctx context.Context, mood model.Mood, opts SetOptions) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("mood change failed: %v", r)
			logging.L().Error("panic during mood change", "mood", mood, "panic", r)
			o.notice(fmt.Sprintf("Failed to set mood: %v", r))
		}
	}()

	o.mu.Lock()
	cfg, ok := o.configs[mood]
	if !ok {
		o.mu.Unlock()
		o.notice(fmt.Sprintf("Unknown mood: %s", mood))
		return fmt.Errorf("%w: %s", ErrUnknownMood, mood)
	}
	o.current = mood
	o.mu.Unlock()

	if o.store != nil {
		if serr := o.store.SetString(ctx, lastMoodKey, string(mood)); serr != nil {
			return fmt.Errorf("failed to persist mood: %w", serr)
		}
	}

	if o.themes != nil {
		if _, terr := o.themes.Apply(ctx, cfg.Theme); terr != nil {
			// Non-fatal: the user keeps sound and animation feedback.
			logging.L().Warn("failed to apply theme", "theme", cfg.Theme, "error", terr)
			o.notice(fmt.Sprintf("Theme %q is not installed: %v", cfg.Theme, terr))
		}
	}

	if opts.PlaySound && o.soundsEnabled && o.sounds != nil {
		o.sounds.Play(ctx, cfg.Sound)
	}

	if o.animations != nil {
		if o.animations.Enabled() && cfg.Animation != model.AnimationNone {
			o.animations.Set(cfg.Animation, cfg.Color)
		} else {
			o.animations.Stop()
		}
	}

	// Observers fire last so they always see fully-applied state.
	o.mu.Lock()
	observers := append(([]func(model.Mood))(nil), o.observers...)
	o.mu.Unlock()
	for _, fn := range observers {
		fn(mood)
	}

	o.notice(fmt.Sprintf("%s mode activated", cfg.Name))
	return nil
}

func (o *Orchestrator) notice(text string) {
	if o.notifier != nil {
		o.notifier(text)
	}
}

// CurrentMood returns the active mood, or "" before the first change.
func (o *Orchestrator) CurrentMood() model.Mood {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.current
}

// Config returns the effect set for one mood.
func (o *Orchestrator) Config(mood model.Mood) (model.MoodConfig, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	cfg, ok := o.configs[mood]
	return cfg, ok
}

// Configs returns all mood configs in display order.
func (o *Orchestrator) Configs() []model.MoodConfig {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]model.MoodConfig, 0, len(o.order))
	for _, id := range o.order {
		out = append(out, o.configs[id])
	}
	return out
}

// ConfigPatch holds optional field updates for UpdateMoodConfig.
type ConfigPatch struct {
	Theme     *string
	Sound     *string
	Animation *model.AnimationType
	Color     *string
}

// UpdateMoodConfig merges the patch into the stored config. Updating
// the active mood reapplies it immediately so the change is visible.
func (o *Orchestrator) UpdateMoodConfig(mood model.Mood, patch ConfigPatch) <-chan error {
	o.mu.Lock()
	cfg, ok := o.configs[mood]
	if !ok {
		o.mu.Unlock()
		done := make(chan error, 1)
		done <- fmt.Errorf("%w: %s", ErrUnknownMood, mood)
		return done
	}
	if patch.Theme != nil {
		cfg.Theme = *patch.Theme
	}
	if patch.Sound != nil {
		cfg.Sound = *patch.Sound
	}
	if patch.Animation != nil {
		cfg.Animation = *patch.Animation
	}
	if patch.Color != nil {
		cfg.Color = *patch.Color
	}
	o.configs[mood] = cfg
	isCurrent := o.current == mood
	o.mu.Unlock()

	if isCurrent {
		return o.SetMood(mood, SetOptions{PlaySound: true})
	}
	done := make(chan error, 1)
	done <- nil
	return done
}
