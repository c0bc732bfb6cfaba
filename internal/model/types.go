// Package model defines shared data structures.
package model

// Mood identifies a user-selected productivity state. It drives the
// theme, sound, and animation choices.
type Mood string

const (
	MoodFocused      Mood = "focused"
	MoodRelaxed      Mood = "relaxed"
	MoodEnergized    Mood = "energized"
	MoodCreative     Mood = "creative"
	MoodNotFeelingIt Mood = "notFeelingIt"
)

// Moods lists all moods in display order.
func Moods() []Mood {
	return []Mood{MoodFocused, MoodRelaxed, MoodEnergized, MoodCreative, MoodNotFeelingIt}
}

// ParseMood maps an identifier to a known Mood. Unknown identifiers
// (e.g. stale persisted state) report ok=false.
func ParseMood(s string) (Mood, bool) {
	switch Mood(s) {
	case MoodFocused, MoodRelaxed, MoodEnergized, MoodCreative, MoodNotFeelingIt:
		return Mood(s), true
	}
	return "", false
}

// AnimationType names a decorative animation kind.
type AnimationType string

const (
	AnimationNone      AnimationType = "none"
	AnimationParticles AnimationType = "particles"
	AnimationGlow      AnimationType = "glow"
	AnimationWaves     AnimationType = "waves"
	AnimationSparkles  AnimationType = "sparkles"
	AnimationPulse     AnimationType = "pulse"
)

// MoodConfig describes the full effect set for one mood.
type MoodConfig struct {
	ID          Mood          `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Icon        string        `json:"icon"`
	Theme       string        `json:"theme"`
	Sound       string        `json:"sound"`
	Animation   AnimationType `json:"animationType"`
	Color       string        `json:"color"`
}

// DefaultMoodConfigs returns the built-in mood table in display order.
func DefaultMoodConfigs() []MoodConfig {
	return []MoodConfig{
		{
			ID:          MoodFocused,
			Name:        "Focused",
			Description: "Deep concentration mode",
			Icon:        "focused",
			Theme:       "One Dark Pro",
			Sound:       "bundled:focused",
			Animation:   AnimationNone,
			Color:       "#61afef",
		},
		{
			ID:          MoodRelaxed,
			Name:        "Relaxed",
			Description: "Calm and peaceful vibes",
			Icon:        "relaxed",
			Theme:       "Dracula Soft",
			Sound:       "bundled:relaxed",
			Animation:   AnimationGlow,
			Color:       "#98c379",
		},
		{
			ID:          MoodEnergized,
			Name:        "Energized",
			Description: "High energy productivity",
			Icon:        "energized",
			Theme:       "Synthwave '84",
			Sound:       "bundled:energized",
			Animation:   AnimationWaves,
			Color:       "#e5c07b",
		},
		{
			ID:          MoodCreative,
			Name:        "Creative",
			Description: "Inspire your imagination",
			Icon:        "creative",
			Theme:       "Night Owl",
			Sound:       "bundled:creative",
			Animation:   AnimationParticles,
			Color:       "#c678dd",
		},
		{
			ID:          MoodNotFeelingIt,
			Name:        "Not Feeling It",
			Description: "Low energy, gentle mode",
			Icon:        "notfeelingit",
			Theme:       "Nord",
			Sound:       "bundled:notfeelingit",
			Animation:   AnimationPulse,
			Color:       "#5c6370",
		},
	}
}

// StreakEntry records one active day. Mood is empty until tagged.
type StreakEntry struct {
	Date      string `json:"date"`
	CharCount int    `json:"charCount"`
	Mood      Mood   `json:"mood,omitempty"`
}

// StreakData is the persisted streak ledger.
type StreakData struct {
	CurrentStreak   int           `json:"currentStreak"`
	LongestStreak   int           `json:"longestStreak"`
	TotalCodingDays int           `json:"totalCodingDays"`
	LastActiveDate  string        `json:"lastActiveDate,omitempty"`
	TodayCharCount  int           `json:"todayCharCount"`
	History         []StreakEntry `json:"streakHistory"`
}

// Clone returns a deep copy so observers cannot mutate the ledger.
func (d StreakData) Clone() StreakData {
	out := d
	out.History = append([]StreakEntry(nil), d.History...)
	return out
}
