package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mabbasbangash97/codevibe/internal/animation"
	"github.com/mabbasbangash97/codevibe/internal/model"
	"github.com/mabbasbangash97/codevibe/internal/mood"
	"github.com/mabbasbangash97/codevibe/internal/sound"
	"github.com/mabbasbangash97/codevibe/internal/streak"
	"github.com/mabbasbangash97/codevibe/internal/theme"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	ctx := context.Background()
	themes := theme.NewResolver(nil, "")
	player := sound.NewPlayer(sound.Options{Enabled: true, StreamingEnabled: true})
	anims := animation.NewManager(nil, true)
	tracker, err := streak.NewTracker(ctx, streak.Options{Enabled: true})
	if err != nil {
		t.Fatalf("new tracker: %v", err)
	}
	orc := mood.New(ctx, mood.Options{
		Themes:        themes,
		Sounds:        player,
		Animations:    anims,
		SoundsEnabled: true,
		Debounce:      10 * time.Millisecond,
	})
	return NewModel(orc, player, tracker, themes, anims)
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestSettingsToggleStreakTracking(t *testing.T) {
	m := newTestModel(t)
	m.tab = tabSettings

	if !m.tracker.Enabled() {
		t.Fatalf("tracker should start enabled")
	}
	m.Update(keyMsg("t"))
	if m.tracker.Enabled() {
		t.Fatalf("streak toggle did not disable tracking")
	}
	m.Update(keyMsg("t"))
	if !m.tracker.Enabled() {
		t.Fatalf("streak toggle did not re-enable tracking")
	}
}

func TestSettingsToggleSounds(t *testing.T) {
	m := newTestModel(t)
	m.tab = tabSettings

	m.Update(keyMsg("n"))
	if m.player.Enabled() {
		t.Fatalf("sound toggle did not disable playback")
	}
	m.Update(keyMsg("n"))
	if !m.player.Enabled() {
		t.Fatalf("sound toggle did not re-enable playback")
	}
}

func TestSettingsToggleAnimations(t *testing.T) {
	m := newTestModel(t)
	m.tab = tabSettings

	m.Update(keyMsg("a"))
	if m.anims.Enabled() {
		t.Fatalf("animation toggle did not disable")
	}
}

func TestMoodsCycleTheme(t *testing.T) {
	m := newTestModel(t)
	m.tab = tabMoods
	m.cursor = 0

	before, _ := m.orchestrator.Config(model.MoodFocused)
	m.Update(keyMsg("t"))
	after, ok := m.orchestrator.Config(model.MoodFocused)
	if !ok {
		t.Fatalf("focused config missing")
	}
	if after.Theme == before.Theme {
		t.Fatalf("theme did not cycle: %q", after.Theme)
	}
	if !m.themes.IsInstalled(after.Theme) {
		t.Fatalf("cycled to uninstalled theme %q", after.Theme)
	}
	if m.configs[0].Theme != after.Theme {
		t.Fatalf("snapshot not refreshed: %q", m.configs[0].Theme)
	}
}
