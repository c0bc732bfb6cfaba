package sound

import (
	"context"
	"os"
	"strconv"
	"sync"

	"github.com/mabbasbangash97/codevibe/internal/logging"
)

// PlayRequest is a playback command for one sound source.
type PlayRequest struct {
	URL    string
	Volume float64 // 0..1
	Loop   bool
}

// Playback is the external playback capability. Implementations
// execute commands asynchronously; the player consumes no results
// beyond the error.
type Playback interface {
	Play(req PlayRequest) error
	Stop(fadeOut bool) error
	SetVolume(level float64) error
}

// NopPlayback discards all commands. Used when sounds are disabled and
// in tests that only observe dispatch behavior through a recorder.
type NopPlayback struct{}

func (NopPlayback) Play(PlayRequest) error  { return nil }
func (NopPlayback) Stop(bool) error         { return nil }
func (NopPlayback) SetVolume(float64) error { return nil }

// State describes the player for observers.
type State struct {
	Playing bool
	Sound   string
}

// Store persists the volume and enabled settings.
type Store interface {
	SetString(ctx context.Context, key, value string) error
}

const (
	volumeKey  = "sounds.volume"
	enabledKey = "sounds.enabled"
)

// Player owns ambient sound state: at most one sound plays at a time.
type Player struct {
	mu sync.Mutex

	playback         Playback
	store            Store
	soundDir         string
	streamingEnabled bool
	enabled          bool

	volume       int // 0..100
	playing      bool
	currentSound string
	lastSound    string // survives Stop so Toggle can resume

	observers []func(State)
}

// Options configures a Player.
type Options struct {
	Playback         Playback
	Store            Store
	SoundDir         string
	Volume           int
	StreamingEnabled bool
	Enabled          bool
}

// NewPlayer constructs a player. A nil playback falls back to NopPlayback.
func NewPlayer(opts Options) *Player {
	pb := opts.Playback
	if pb == nil {
		pb = NopPlayback{}
	}
	return &Player{
		playback:         pb,
		store:            opts.Store,
		soundDir:         opts.SoundDir,
		streamingEnabled: opts.StreamingEnabled,
		enabled:          opts.Enabled,
		volume:           clampVolume(opts.Volume),
	}
}

// OnStateChanged registers an observer notified on every play/stop
// transition.
func (p *Player) OnStateChanged(fn func(State)) {
	p.mu.Lock()
	p.observers = append(p.observers, fn)
	p.mu.Unlock()
}

func (p *Player) notify(st State) {
	p.mu.Lock()
	observers := append(([]func(State))(nil), p.observers...)
	p.mu.Unlock()
	for _, fn := range observers {
		fn(st)
	}
}

// Play resolves identifier and starts playback, stopping any current
// sound first with a fade-out. Unknown identifiers and missing assets
// never fail the caller: they are logged and skipped, except a missing
// bundled asset which falls back to stream:rain when streaming is on.
func (p *Player) Play(ctx context.Context, identifier string) {
	p.mu.Lock()
	if !p.enabled {
		p.mu.Unlock()
		logging.L().Info("sounds disabled", "id", identifier)
		return
	}
	if p.playing {
		p.mu.Unlock()
		p.Stop(true)
		p.mu.Lock()
	}
	volume := float64(p.volume) / 100
	p.mu.Unlock()

	src, ok := Resolve(identifier, p.soundDir)
	if !ok {
		logging.L().Warn("unknown sound identifier", "id", identifier)
		return
	}
	switch src.Kind {
	case KindBundled:
		if _, err := os.Stat(src.Path); err != nil {
			logging.L().Warn("bundled sound file not found", "path", src.Path)
			if p.streamingEnabled {
				p.Play(ctx, "stream:rain")
			}
			return
		}
	case KindStream:
		if !p.streamingEnabled {
			logging.L().Info("streaming sounds disabled", "id", identifier)
			return
		}
	}
	url := src.Path

	p.mu.Lock()
	p.currentSound = identifier
	p.lastSound = identifier
	p.playing = true
	p.mu.Unlock()

	p.notify(State{Playing: true, Sound: identifier})

	if err := p.playback.Play(PlayRequest{URL: url, Volume: volume, Loop: true}); err != nil {
		logging.L().Error("failed to start playback", "id", identifier, "error", err)
		p.mu.Lock()
		p.playing = false
		p.mu.Unlock()
	}
}

// Stop halts the current sound. Stopping while idle is a no-op.
func (p *Player) Stop(fadeOut bool) {
	p.mu.Lock()
	if !p.playing {
		p.mu.Unlock()
		return
	}
	p.playing = false
	p.currentSound = ""
	p.mu.Unlock()

	if err := p.playback.Stop(fadeOut); err != nil {
		logging.L().Error("failed to stop playback", "error", err)
	}
	p.notify(State{Playing: false})
}

// Toggle stops when playing, else replays the last sound if one is set.
func (p *Player) Toggle(ctx context.Context) {
	p.mu.Lock()
	playing := p.playing
	last := p.lastSound
	p.mu.Unlock()

	if playing {
		p.Stop(true)
		return
	}
	if last != "" {
		p.Play(ctx, last)
	}
}

// SetVolume clamps v to [0,100], persists it, and issues a volume
// command to the playback capability.
func (p *Player) SetVolume(ctx context.Context, v int) error {
	v = clampVolume(v)
	p.mu.Lock()
	p.volume = v
	p.mu.Unlock()

	if err := p.playback.SetVolume(float64(v) / 100); err != nil {
		logging.L().Error("failed to set playback volume", "error", err)
	}
	if p.store != nil {
		if err := p.store.SetString(ctx, volumeKey, strconv.Itoa(v)); err != nil {
			return err
		}
	}
	return nil
}

// SetEnabled toggles ambient sounds at runtime, persists the flag, and
// stops any current playback when disabling.
func (p *Player) SetEnabled(ctx context.Context, enabled bool) error {
	p.mu.Lock()
	p.enabled = enabled
	p.mu.Unlock()

	if !enabled {
		p.Stop(true)
	}
	if p.store != nil {
		return p.store.SetString(ctx, enabledKey, strconv.FormatBool(enabled))
	}
	return nil
}

// Enabled reports whether ambient sounds are on.
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

// Volume returns the current volume in [0,100].
func (p *Player) Volume() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// IsPlaying reports whether a sound is currently playing.
func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// CurrentSound returns the identifier of the playing sound, or "".
func (p *Player) CurrentSound() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.currentSound
}

func clampVolume(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
