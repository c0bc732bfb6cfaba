package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/mabbasbangash97/codevibe/internal/model"
	"github.com/mabbasbangash97/codevibe/internal/theme"
)

var tabTitles = []string{"Moods", "Streak", "Sounds", "Settings"}

func navStyles(p theme.Palette) (active, inactive lipgloss.Style) {
	active = lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.Foreground)).
		Bold(true).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder(), true).
		BorderForeground(lipgloss.Color(p.Accent))
	inactive = lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.Muted)).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder(), true).
		BorderForeground(lipgloss.Color(p.Border))
	return active, inactive
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	active, inactive := navStyles(m.palette)
	tabs := make([]string, len(tabTitles))
	for i, title := range tabTitles {
		if i == m.tab {
			tabs[i] = active.Render(title)
		} else {
			tabs[i] = inactive.Render(title)
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n")

	if strip := m.renderAnimationStrip(); strip != "" {
		b.WriteString(strip)
		b.WriteString("\n")
	}

	switch m.tab {
	case tabMoods:
		b.WriteString(m.renderMoods())
	case tabStreak:
		b.WriteString(m.renderStreak())
	case tabSounds:
		b.WriteString(m.renderSounds())
	case tabSettings:
		b.WriteString(m.renderSettings())
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// renderAnimationStrip draws the decorative accent band. Each kind has
// its own glyph; color frames cycle through the accent ramp.
func (m *Model) renderAnimationStrip() string {
	if m.animState.Type == model.AnimationNone || len(m.ramp) == 0 {
		return ""
	}
	glyph := map[model.AnimationType]string{
		model.AnimationParticles: "·",
		model.AnimationGlow:      "▁",
		model.AnimationWaves:     "~",
		model.AnimationSparkles:  "✦",
		model.AnimationPulse:     "█",
	}[m.animState.Type]
	if glyph == "" {
		glyph = "·"
	}
	width := m.width
	if width <= 0 {
		width = 40
	}
	var b strings.Builder
	for i := 0; i < width; i++ {
		color := m.ramp[(i+m.frame)%len(m.ramp)]
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(glyph))
	}
	return b.String()
}

func (m *Model) renderMoods() string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.palette.Foreground)).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.palette.Muted))

	var b strings.Builder
	for i, cfg := range m.configs {
		marker := "  "
		if i == m.cursor {
			marker = lipgloss.NewStyle().Foreground(lipgloss.Color(m.palette.Accent)).Render("> ")
		}
		name := cfg.Name
		if cfg.ID == m.currentMood {
			name += " " + lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Color)).Render("●")
		}
		b.WriteString(marker + titleStyle.Render(name) + "\n")
		b.WriteString("    " + descStyle.Render(cfg.Description) + "\n")
	}
	b.WriteString(descStyle.Render(fmt.Sprintf("\n  theme: %s · t cycle theme", m.themeName)))
	return b.String()
}

func (m *Model) renderStreak() string {
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		m.statCard("Current", fmt.Sprintf("%d", m.streakData.CurrentStreak)),
		m.statCard("Longest", fmt.Sprintf("%d", m.streakData.LongestStreak)),
		m.statCard("Total days", fmt.Sprintf("%d", m.streakData.TotalCodingDays)),
		m.statCard("Today", fmt.Sprintf("%d chars", m.streakData.TodayCharCount)),
	)
	var b strings.Builder
	b.WriteString(cards)
	b.WriteString("\n")
	if m.confirmReset {
		warn := lipgloss.NewStyle().Foreground(lipgloss.Color(m.palette.Warning)).Bold(true)
		b.WriteString(warn.Render("Reset all streak data? (y/n)"))
		b.WriteString("\n")
	}
	if len(m.streakData.History) == 0 {
		muted := lipgloss.NewStyle().Foreground(lipgloss.Color(m.palette.Muted))
		b.WriteString(muted.Render("No active days yet. Start typing."))
	} else {
		b.WriteString(m.historyTable.View())
	}
	return b.String()
}

func (m *Model) statCard(title, value string) string {
	card := lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder(), true).
		BorderForeground(lipgloss.Color(m.palette.Border))
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.palette.Muted))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.palette.Foreground)).Bold(true)
	return card.Render(titleStyle.Render(title) + "\n" + valueStyle.Render(value))
}

func (m *Model) renderSounds() string {
	fg := lipgloss.NewStyle().Foreground(lipgloss.Color(m.palette.Foreground))
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color(m.palette.Muted))
	accent := lipgloss.NewStyle().Foreground(lipgloss.Color(m.palette.Accent))

	var b strings.Builder
	status := "stopped"
	if m.audioState.Playing {
		status = "playing " + m.audioState.Sound
	}
	b.WriteString(fg.Render("Playback: ") + accent.Render(status) + "\n")
	b.WriteString(fg.Render(fmt.Sprintf("Volume:   %s %d", volumeBar(m.volume), m.volume)) + "\n\n")
	b.WriteString(muted.Render("m toggle · +/- volume") + "\n")
	return b.String()
}

func volumeBar(v int) string {
	const width = 20
	filled := v * width / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func (m *Model) renderSettings() string {
	fg := lipgloss.NewStyle().Foreground(lipgloss.Color(m.palette.Foreground))
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color(m.palette.Muted))

	onOff := func(b bool) string {
		if b {
			return "on"
		}
		return "off"
	}
	var b strings.Builder
	b.WriteString(fg.Render(fmt.Sprintf("Animations: %s", onOff(m.anims.Enabled()))) + "\n")
	b.WriteString(fg.Render(fmt.Sprintf("Sounds:     %s", onOff(m.player.Enabled()))) + "\n")
	b.WriteString(fg.Render(fmt.Sprintf("Streak:     %s", onOff(m.tracker.Enabled()))) + "\n")
	b.WriteString(fg.Render(fmt.Sprintf("Theme:      %s", m.themeName)) + "\n\n")
	if m.confirmReset {
		warn := lipgloss.NewStyle().Foreground(lipgloss.Color(m.palette.Warning)).Bold(true)
		b.WriteString(warn.Render("Reset all streak data? (y/n)") + "\n")
	}
	b.WriteString(muted.Render("a animations · n sounds · t streak · s stop sound · r reset") + "\n")
	return b.String()
}

func (m *Model) renderFooter() string {
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color(m.palette.Muted))
	if m.notice != "" {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(m.palette.Warning)).Render(m.notice)
	}
	return muted.Render("tab switch · enter select · q quit")
}

func newHistoryTable(data model.StreakData, p theme.Palette) table.Model {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Chars", Width: 8},
		{Title: "Mood", Width: 14},
	}
	rows := make([]table.Row, 0, len(data.History))
	for i := len(data.History) - 1; i >= 0; i-- {
		entry := data.History[i]
		moodName := string(entry.Mood)
		if moodName == "" {
			moodName = "-"
		}
		rows = append(rows, table.Row{
			truncatePad(entry.Date, 12),
			fmt.Sprintf("%d", entry.CharCount),
			truncatePad(moodName, 14),
		})
	}
	height := len(rows)
	if height > 10 {
		height = 10
	}
	if height < 1 {
		height = 1
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(height),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Foreground(lipgloss.Color(p.Muted)).
		BorderForeground(lipgloss.Color(p.Border)).
		BorderBottom(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color(p.Foreground)).
		Bold(true)
	t.SetStyles(styles)
	return t
}
