// Package animation holds the decorative animation state for the TUI.
package animation

import (
	"context"
	"strconv"
	"sync"

	"github.com/mabbasbangash97/codevibe/internal/model"
)

// State is the current animation kind and accent color.
type State struct {
	Type  model.AnimationType
	Color string
}

// Store persists the global enabled flag.
type Store interface {
	SetString(ctx context.Context, key, value string) error
}

const enabledKey = "animations.enabled"

// Manager is the process-wide animation state, mutated by the mood
// orchestrator and the enable/disable toggle.
type Manager struct {
	mu        sync.Mutex
	store     Store
	enabled   bool
	current   model.AnimationType
	color     string
	observers []func(State)
}

// NewManager constructs a manager with the given enabled flag.
func NewManager(st Store, enabled bool) *Manager {
	return &Manager{
		store:   st,
		enabled: enabled,
		current: model.AnimationNone,
		color:   "#ffffff",
	}
}

// OnChanged registers an observer notified after every state change.
func (m *Manager) OnChanged(fn func(State)) {
	m.mu.Lock()
	m.observers = append(m.observers, fn)
	m.mu.Unlock()
}

func (m *Manager) notify(st State) {
	m.mu.Lock()
	observers := append(([]func(State))(nil), m.observers...)
	m.mu.Unlock()
	for _, fn := range observers {
		fn(st)
	}
}

// Set activates an animation. When animations are globally disabled
// the state collapses to None and observers are not notified.
func (m *Manager) Set(t model.AnimationType, color string) {
	m.mu.Lock()
	if !m.enabled {
		m.current = model.AnimationNone
		m.mu.Unlock()
		return
	}
	m.current = t
	m.color = color
	st := State{Type: t, Color: color}
	m.mu.Unlock()
	m.notify(st)
}

// Stop clears the animation, keeping the last accent color.
func (m *Manager) Stop() {
	m.mu.Lock()
	m.current = model.AnimationNone
	st := State{Type: model.AnimationNone, Color: m.color}
	m.mu.Unlock()
	m.notify(st)
}

// Current returns the animation state.
func (m *Manager) Current() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return State{Type: m.current, Color: m.color}
}

// Enabled reports the global flag.
func (m *Manager) Enabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.enabled
}

// SetEnabled toggles animations globally, persists the flag, and stops
// any running animation when disabling.
func (m *Manager) SetEnabled(ctx context.Context, enabled bool) error {
	m.mu.Lock()
	m.enabled = enabled
	m.mu.Unlock()
	if !enabled {
		m.Stop()
	}
	if m.store != nil {
		return m.store.SetString(ctx, enabledKey, strconv.FormatBool(enabled))
	}
	return nil
}
