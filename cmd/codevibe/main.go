// Package main provides the CLI entrypoint for codevibe.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mabbasbangash97/codevibe/internal/activity"
	"github.com/mabbasbangash97/codevibe/internal/animation"
	"github.com/mabbasbangash97/codevibe/internal/config"
	"github.com/mabbasbangash97/codevibe/internal/logging"
	"github.com/mabbasbangash97/codevibe/internal/model"
	moodpkg "github.com/mabbasbangash97/codevibe/internal/mood"
	"github.com/mabbasbangash97/codevibe/internal/report"
	"github.com/mabbasbangash97/codevibe/internal/sound"
	"github.com/mabbasbangash97/codevibe/internal/store"
	"github.com/mabbasbangash97/codevibe/internal/streak"
	"github.com/mabbasbangash97/codevibe/internal/theme"
	"github.com/mabbasbangash97/codevibe/internal/tui"
)

var (
	flagVolume  int
	flagNoSound bool
	flagWatch   []string
	moodSilent  bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "codevibe",
		Short:         "Mood-driven theme, sound, and streak companion",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runSidebarCmd,
	}

	rootCmd.Flags().IntVar(&flagVolume, "volume", -1, "sound volume (0-100)")
	rootCmd.Flags().BoolVar(&flagNoSound, "no-sound", false, "disable ambient sounds")
	rootCmd.Flags().StringSliceVar(&flagWatch, "watch", nil, "directories to watch for coding activity")

	rootCmd.AddCommand(newMoodCmd())
	rootCmd.AddCommand(newStreakCmd())
	rootCmd.AddCommand(newThemesCmd())
	rootCmd.AddCommand(newSoundsCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// app bundles the wired core components.
type app struct {
	settings config.Settings
	store    *store.Store
	themes   *theme.Resolver
	player   *sound.Player
	anims    *animation.Manager
	tracker  *streak.Tracker
}

func loadSettings(cmd *cobra.Command) (config.Settings, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return config.Settings{}, fmt.Errorf("failed to load config: %w", err)
	}
	settings := config.DefaultSettings().Merge(fileCfg)
	if cmd != nil {
		if cmd.Flags().Changed("volume") {
			settings.Volume = flagVolume
		}
		if flagNoSound {
			settings.SoundsEnabled = false
		}
		if len(flagWatch) > 0 {
			settings.WatchDirs = flagWatch
		}
	}
	if err := settings.Validate(); err != nil {
		return config.Settings{}, err
	}
	return settings, nil
}

// openApp wires config, store, and the managers below the orchestrator.
// Runtime toggles persisted in the store win over the config file.
func openApp(cmd *cobra.Command) (*app, error) {
	settings, err := loadSettings(cmd)
	if err != nil {
		return nil, err
	}
	if err := logging.Setup(config.DefaultLogPath()); err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	ctx := context.Background()
	if raw, found, gerr := st.GetString(ctx, store.KeyVolume); gerr == nil && found {
		if v, perr := strconv.Atoi(raw); perr == nil && (cmd == nil || !cmd.Flags().Changed("volume")) {
			settings.Volume = v
		}
	}
	if raw, found, gerr := st.GetString(ctx, store.KeySoundsEnabled); gerr == nil && found && !flagNoSound {
		settings.SoundsEnabled = raw == "true"
	}
	if raw, found, gerr := st.GetString(ctx, store.KeyAnimationsEnabled); gerr == nil && found {
		settings.Animations = raw == "true"
	}
	if raw, found, gerr := st.GetString(ctx, store.KeyStreakEnabled); gerr == nil && found {
		settings.StreakEnabled = raw == "true"
	}

	themes := theme.NewResolver(st, config.DefaultThemeDir())

	// The playback adapter spawns a process per play, so it is created
	// even when sounds start disabled: a runtime enable needs it.
	player := sound.NewPlayer(sound.Options{
		Playback:         sound.NewExecPlayback(settings.Player),
		Store:            st,
		SoundDir:         config.DefaultSoundDir(),
		Volume:           settings.Volume,
		StreamingEnabled: settings.StreamingEnabled,
		Enabled:          settings.SoundsEnabled,
	})

	anims := animation.NewManager(st, settings.Animations)

	tracker, err := streak.NewTracker(ctx, streak.Options{
		Store:    st,
		MinChars: settings.MinChars,
		Enabled:  settings.StreakEnabled,
	})
	if err != nil {
		if cerr := st.Close(); cerr != nil {
			// Best-effort close.
			_ = cerr
		}
		return nil, err
	}

	return &app{
		settings: settings,
		store:    st,
		themes:   themes,
		player:   player,
		anims:    anims,
		tracker:  tracker,
	}, nil
}

func (a *app) close() {
	if err := a.tracker.Close(context.Background()); err != nil {
		logErrf("failed to flush streak data: %v\n", err)
	}
	if err := a.store.Close(); err != nil {
		logErrf("failed to close db: %v\n", err)
	}
}

func (a *app) newOrchestrator(notify moodpkg.Notifier, playSound bool) *moodpkg.Orchestrator {
	// The player gates on its own runtime enabled flag, so the
	// orchestrator-level switch only carries the per-invocation choice
	// (e.g. mood --silent).
	return moodpkg.New(context.Background(), moodpkg.Options{
		Themes:        a.themes,
		Sounds:        playerSounds{a.player},
		Animations:    a.anims,
		Store:         a.store,
		Notifier:      notify,
		Overrides:     moodOverrides(),
		SoundsEnabled: playSound,
	})
}

func runSidebarCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	// The notifier indirection lets the orchestrator surface warnings
	// raised before the program exists.
	var program *tea.Program
	notify := func(text string) {
		if program != nil {
			program.Send(tui.NoticeMsg{Text: text})
		}
	}

	orc := a.newOrchestrator(notify, true)

	watcher, err := activity.NewWatcher(a.settings.WatchDirs)
	if err != nil {
		return fmt.Errorf("failed to start activity watcher: %w", err)
	}
	a.tracker.Subscribe(watcher.Events)
	watcher.Start()
	defer watcher.Stop()

	m := tui.NewModel(orc, a.player, a.tracker, a.themes, a.anims)
	program = tea.NewProgram(m, tea.WithAltScreen())

	orc.OnMoodChanged(func(mood model.Mood) {
		cfg, _ := orc.Config(mood)
		program.Send(tui.MoodUpdatedMsg{Mood: mood, Config: cfg})
		program.Send(tui.ThemeAppliedMsg{Name: a.themes.Current()})
	})
	a.tracker.OnUpdated(func(data model.StreakData) {
		program.Send(tui.StreakUpdatedMsg{Data: data})
	})
	a.anims.OnChanged(func(st animation.State) {
		program.Send(tui.AnimationUpdatedMsg{State: st})
	})
	a.player.OnStateChanged(func(st sound.State) {
		program.Send(tui.AudioStateMsg{State: st})
	})

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// playerSounds adapts *sound.Player to the orchestrator's interface.
type playerSounds struct {
	player *sound.Player
}

func (p playerSounds) Play(ctx context.Context, identifier string) {
	p.player.Play(ctx, identifier)
}

func moodOverrides() map[string]config.MoodOverride {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return nil
	}
	return fileCfg.Moods
}

func newMoodCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mood <name>",
		Short: "Set the mood once and exit",
		Args:  cobra.ExactArgs(1),
		RunE:  runMoodCmd,
	}
	cmd.Flags().BoolVar(&moodSilent, "silent", false, "skip sound playback")
	return cmd
}

func runMoodCmd(cmd *cobra.Command, args []string) error {
	m, ok := model.ParseMood(args[0])
	if !ok {
		names := make([]string, 0, len(model.Moods()))
		for _, mm := range model.Moods() {
			names = append(names, string(mm))
		}
		return fmt.Errorf("unknown mood %q (known: %s)", args[0], strings.Join(names, ", "))
	}

	a, err := openApp(nil)
	if err != nil {
		return err
	}
	defer a.close()

	orc := a.newOrchestrator(func(text string) {
		fmt.Fprintln(cmd.OutOrStdout(), text)
	}, !moodSilent)

	if err := <-orc.SetMood(m, moodpkg.SetOptions{PlaySound: !moodSilent}); err != nil {
		return err
	}
	return a.tracker.RecordMood(context.Background(), m)
}

func newStreakCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "streak",
		Short: "Show streak stats",
		Args:  cobra.NoArgs,
		RunE:  runStreakCmd,
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Reset all streak data",
		Args:  cobra.NoArgs,
		RunE:  runStreakResetCmd,
	})
	return cmd
}

func runStreakCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(nil)
	if err != nil {
		return err
	}
	defer a.close()

	return report.Render(cmd.OutOrStdout(), a.tracker.Data())
}

func runStreakResetCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(nil)
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.tracker.Reset(context.Background()); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Streak data reset.")
	return nil
}

func newThemesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List installed themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(nil)
			if err != nil {
				return err
			}
			defer a.close()
			current := a.themes.Current()
			for _, name := range a.themes.Available() {
				marker := " "
				if name == current {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, name)
			}
			return nil
		},
	}
}

func newSoundsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sounds",
		Short: "List available sounds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Bundled:")
			for _, entry := range sound.BundledSounds() {
				fmt.Fprintf(out, "  %-22s %s\n", entry.ID, entry.Name)
			}
			fmt.Fprintln(out, "Streaming:")
			for _, entry := range sound.StreamingSounds() {
				fmt.Fprintf(out, "  %-22s %s\n", entry.ID, entry.Name)
			}
			return nil
		},
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	defaults := config.DefaultSettings()
	return fmt.Sprintf(`# codevibe configuration
# Uncomment a value to enable it. CLI flags override config values.

[sounds]
# volume = %d                # Playback volume (0-100)
# enabled = true             # Ambient sounds on mood change
# streaming-enabled = true   # Allow remote streaming sounds
# player = %q                # External player command

[animations]
# enabled = true

[streak]
# enabled = true
# min-chars = %d             # Characters per day to count as active
# watch = ["."]              # Directories watched for coding activity

# Per-mood overrides. Known moods: focused, relaxed, energized,
# creative, notFeelingIt.
# [moods.focused]
# theme = "Nord"
# sound = "stream:rain"
`,
		defaults.Volume,
		defaults.Player,
		defaults.MinChars,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
