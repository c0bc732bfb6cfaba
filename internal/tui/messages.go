package tui

import (
	"github.com/mabbasbangash97/codevibe/internal/animation"
	"github.com/mabbasbangash97/codevibe/internal/model"
	"github.com/mabbasbangash97/codevibe/internal/sound"
)

// Messages pushed into the program by the core's observers. They mirror
// the outbound side of the UI boundary: the model never polls the
// managers, it re-renders from the snapshots these carry.

// MoodUpdatedMsg reports a completed mood change.
type MoodUpdatedMsg struct {
	Mood   model.Mood
	Config model.MoodConfig
}

// StreakUpdatedMsg carries a full ledger snapshot.
type StreakUpdatedMsg struct {
	Data model.StreakData
}

// AnimationUpdatedMsg reports the new animation state.
type AnimationUpdatedMsg struct {
	State animation.State
}

// AudioStateMsg reports a playback transition.
type AudioStateMsg struct {
	State sound.State
}

// NoticeMsg carries a transient status line (warnings included).
type NoticeMsg struct {
	Text string
}

// ThemeAppliedMsg reports the palette now in effect.
type ThemeAppliedMsg struct {
	Name string
}
