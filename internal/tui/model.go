// Package tui provides the Bubble Tea mood sidebar interface.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mabbasbangash97/codevibe/internal/animation"
	"github.com/mabbasbangash97/codevibe/internal/model"
	"github.com/mabbasbangash97/codevibe/internal/mood"
	"github.com/mabbasbangash97/codevibe/internal/sound"
	"github.com/mabbasbangash97/codevibe/internal/streak"
	"github.com/mabbasbangash97/codevibe/internal/theme"
)

const (
	tabMoods = iota
	tabStreak
	tabSounds
	tabSettings
	tabCount
)

const (
	noticeTimeout = 3 * time.Second
	frameInterval = 400 * time.Millisecond
)

type noticeExpiredMsg struct{ seq int }

type frameMsg struct{}

// Model implements the Bubble Tea mood sidebar.
type Model struct {
	orchestrator *mood.Orchestrator
	player       *sound.Player
	tracker      *streak.Tracker
	themes       *theme.Resolver
	anims        *animation.Manager

	width  int
	height int
	tab    int
	cursor int

	configs     []model.MoodConfig
	currentMood model.Mood
	streakData  model.StreakData
	animState   animation.State
	audioState  sound.State
	volume      int
	palette     theme.Palette
	themeName   string

	historyTable table.Model
	frame        int
	ramp         []string

	notice    string
	noticeSeq int

	confirmReset bool
}

// NewModel builds the sidebar from an initial snapshot of all managers.
func NewModel(orc *mood.Orchestrator, player *sound.Player, tracker *streak.Tracker, themes *theme.Resolver, anims *animation.Manager) *Model {
	m := &Model{
		orchestrator: orc,
		player:       player,
		tracker:      tracker,
		themes:       themes,
		anims:        anims,
		configs:      orc.Configs(),
		currentMood:  orc.CurrentMood(),
		streakData:   tracker.Data(),
		animState:    anims.Current(),
		volume:       player.Volume(),
		palette:      themes.CurrentPalette(),
		themeName:    themes.Current(),
	}
	m.audioState = sound.State{Playing: player.IsPlaying(), Sound: player.CurrentSound()}
	for i, cfg := range m.configs {
		if cfg.ID == m.currentMood {
			m.cursor = i
		}
	}
	m.rebuildRamp()
	m.historyTable = newHistoryTable(m.streakData, m.palette)
	return m
}

func (m *Model) rebuildRamp() {
	color := m.animState.Color
	if color == "" {
		color = m.palette.Accent
	}
	m.ramp = animation.Ramp(color, 6)
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return frameTick()
}

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return frameMsg{} })
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case frameMsg:
		if m.animState.Type != model.AnimationNone {
			m.frame++
		}
		return m, frameTick()

	case MoodUpdatedMsg:
		m.currentMood = msg.Mood
		m.configs = m.orchestrator.Configs()
		return m, nil

	case StreakUpdatedMsg:
		m.streakData = msg.Data
		m.historyTable = newHistoryTable(m.streakData, m.palette)
		return m, nil

	case AnimationUpdatedMsg:
		m.animState = msg.State
		m.rebuildRamp()
		return m, nil

	case AudioStateMsg:
		m.audioState = msg.State
		return m, nil

	case ThemeAppliedMsg:
		m.themeName = msg.Name
		if p, ok := m.themes.Lookup(msg.Name); ok {
			m.palette = p
			m.historyTable = newHistoryTable(m.streakData, m.palette)
			m.rebuildRamp()
		}
		return m, nil

	case NoticeMsg:
		return m, m.showNotice(msg.Text)

	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) showNotice(text string) tea.Cmd {
	m.notice = text
	m.noticeSeq++
	seq := m.noticeSeq
	return tea.Tick(noticeTimeout, func(time.Time) tea.Msg { return noticeExpiredMsg{seq: seq} })
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirmReset {
		switch msg.String() {
		case "y", "Y":
			m.confirmReset = false
			if err := m.tracker.Reset(context.Background()); err != nil {
				return m, m.showNotice("Failed to reset streak: " + err.Error())
			}
			return m, m.showNotice("Streak reset")
		default:
			m.confirmReset = false
			return m, nil
		}
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "tab", "right", "l":
		m.tab = (m.tab + 1) % tabCount
		m.cursor = 0
		return m, nil
	case "shift+tab", "left", "h":
		m.tab = (m.tab + tabCount - 1) % tabCount
		m.cursor = 0
		return m, nil
	}

	switch m.tab {
	case tabMoods:
		return m.handleMoodsKey(msg)
	case tabStreak:
		return m.handleStreakKey(msg)
	case tabSounds:
		return m.handleSoundsKey(msg)
	case tabSettings:
		return m.handleSettingsKey(msg)
	}
	return m, nil
}

func (m *Model) handleMoodsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.configs)-1 {
			m.cursor++
		}
	case "enter", " ":
		if m.cursor < len(m.configs) {
			cfg := m.configs[m.cursor]
			m.orchestrator.SetMood(cfg.ID, mood.SetOptions{PlaySound: true})
			if err := m.tracker.RecordMood(context.Background(), cfg.ID); err != nil {
				return m, m.showNotice("Failed to tag mood: " + err.Error())
			}
		}
	case "t":
		if m.cursor < len(m.configs) {
			return m, m.cycleMoodTheme(m.configs[m.cursor])
		}
	}
	return m, nil
}

// cycleMoodTheme rebinds the selected mood to the next installed theme.
// Changing the active mood reapplies it immediately.
func (m *Model) cycleMoodTheme(cfg model.MoodConfig) tea.Cmd {
	names := m.themes.Available()
	if len(names) == 0 {
		return nil
	}
	next := names[0]
	for i, name := range names {
		if name == cfg.Theme {
			next = names[(i+1)%len(names)]
			break
		}
	}
	m.orchestrator.UpdateMoodConfig(cfg.ID, mood.ConfigPatch{Theme: &next})
	m.configs = m.orchestrator.Configs()
	return m.showNotice(cfg.Name + " theme: " + next)
}

func (m *Model) handleStreakKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "r":
		m.confirmReset = true
		return m, nil
	default:
		var cmd tea.Cmd
		m.historyTable, cmd = m.historyTable.Update(msg)
		return m, cmd
	}
}

func (m *Model) handleSoundsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	switch msg.String() {
	case "+", "=":
		if err := m.player.SetVolume(ctx, m.player.Volume()+5); err != nil {
			return m, m.showNotice("Failed to save volume: " + err.Error())
		}
		m.volume = m.player.Volume()
	case "-", "_":
		if err := m.player.SetVolume(ctx, m.player.Volume()-5); err != nil {
			return m, m.showNotice("Failed to save volume: " + err.Error())
		}
		m.volume = m.player.Volume()
	case "m", "enter", " ":
		m.player.Toggle(ctx)
	}
	return m, nil
}

func (m *Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	switch msg.String() {
	case "a":
		if err := m.anims.SetEnabled(ctx, !m.anims.Enabled()); err != nil {
			return m, m.showNotice("Failed to save setting: " + err.Error())
		}
	case "n":
		if err := m.player.SetEnabled(ctx, !m.player.Enabled()); err != nil {
			return m, m.showNotice("Failed to save setting: " + err.Error())
		}
	case "t":
		if err := m.tracker.SetEnabled(ctx, !m.tracker.Enabled()); err != nil {
			return m, m.showNotice("Failed to save setting: " + err.Error())
		}
	case "s":
		if m.player.IsPlaying() {
			m.player.Stop(true)
		}
	case "r":
		m.confirmReset = true
	}
	return m, nil
}
