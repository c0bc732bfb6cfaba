package sound

import (
	"fmt"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/mabbasbangash97/codevibe/internal/logging"
)

// ExecPlayback runs an external player process (mpv by default) per
// play command. Volume changes take effect on the next play; the
// process is torn down on stop.
type ExecPlayback struct {
	mu      sync.Mutex
	command string
	cmd     *exec.Cmd
	volume  float64
}

// NewExecPlayback creates a playback adapter around the given player
// command.
func NewExecPlayback(command string) *ExecPlayback {
	return &ExecPlayback{command: command, volume: 0.5}
}

// Play starts a player process for the request, replacing any running
// one.
func (e *ExecPlayback) Play(req PlayRequest) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopLocked(false)

	e.volume = req.Volume
	args := []string{
		"--no-video",
		"--really-quiet",
		fmt.Sprintf("--volume=%d", int(req.Volume*100)),
	}
	if req.Loop {
		args = append(args, "--loop")
	}
	args = append(args, req.URL)

	cmd := exec.Command(e.command, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start player: %w", err)
	}
	e.cmd = cmd
	go func() {
		if err := cmd.Wait(); err != nil {
			// Expected when the process is killed on stop.
			logging.L().Debug("player exited", "error", err)
		}
	}()
	return nil
}

// Stop terminates the player process. With fadeOut the process gets a
// grace interval to wind down before being killed.
func (e *ExecPlayback) Stop(fadeOut bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopLocked(fadeOut)
	return nil
}

func (e *ExecPlayback) stopLocked(fadeOut bool) {
	if e.cmd == nil || e.cmd.Process == nil {
		return
	}
	proc := e.cmd.Process
	e.cmd = nil
	if !fadeOut {
		_ = proc.Kill()
		return
	}
	_ = proc.Signal(os.Interrupt)
	go func() {
		time.Sleep(300 * time.Millisecond)
		_ = proc.Kill()
	}()
}

// SetVolume records the level for subsequent plays.
func (e *ExecPlayback) SetVolume(level float64) error {
	e.mu.Lock()
	e.volume = level
	e.mu.Unlock()
	return nil
}
