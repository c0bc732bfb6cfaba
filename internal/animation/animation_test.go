package animation

import (
	"context"
	"strings"
	"testing"

	"github.com/mabbasbangash97/codevibe/internal/model"
)

type flagStore struct {
	values map[string]string
}

func (s *flagStore) SetString(_ context.Context, key, value string) error {
	if s.values == nil {
		s.values = make(map[string]string)
	}
	s.values[key] = value
	return nil
}

func TestSetActivatesAnimation(t *testing.T) {
	m := NewManager(nil, true)

	var states []State
	m.OnChanged(func(st State) { states = append(states, st) })

	m.Set(model.AnimationWaves, "#e5c07b")

	st := m.Current()
	if st.Type != model.AnimationWaves || st.Color != "#e5c07b" {
		t.Fatalf("unexpected state: %+v", st)
	}
	if len(states) != 1 || states[0].Type != model.AnimationWaves {
		t.Fatalf("observer not notified: %+v", states)
	}
}

func TestSetWhileDisabledIsSilent(t *testing.T) {
	m := NewManager(nil, false)

	notified := false
	m.OnChanged(func(State) { notified = true })

	m.Set(model.AnimationGlow, "#98c379")

	if st := m.Current(); st.Type != model.AnimationNone {
		t.Fatalf("disabled manager animated: %+v", st)
	}
	if notified {
		t.Fatalf("disabled set must not notify")
	}
}

func TestStopClearsTypeKeepsColor(t *testing.T) {
	m := NewManager(nil, true)
	m.Set(model.AnimationPulse, "#5c6370")

	m.Stop()

	st := m.Current()
	if st.Type != model.AnimationNone {
		t.Fatalf("stop did not clear: %+v", st)
	}
	if st.Color != "#5c6370" {
		t.Fatalf("stop dropped accent color: %+v", st)
	}
}

func TestSetEnabledPersistsAndStops(t *testing.T) {
	st := &flagStore{}
	m := NewManager(st, true)
	m.Set(model.AnimationParticles, "#c678dd")

	if err := m.SetEnabled(context.Background(), false); err != nil {
		t.Fatalf("disable failed: %v", err)
	}
	if m.Enabled() {
		t.Fatalf("flag not cleared")
	}
	if cur := m.Current(); cur.Type != model.AnimationNone {
		t.Fatalf("disable did not stop animation: %+v", cur)
	}
	if st.values["animations.enabled"] != "false" {
		t.Fatalf("flag not persisted: %v", st.values)
	}

	if err := m.SetEnabled(context.Background(), true); err != nil {
		t.Fatalf("enable failed: %v", err)
	}
	if st.values["animations.enabled"] != "true" {
		t.Fatalf("flag not persisted: %v", st.values)
	}
}

func TestTintClampsLightness(t *testing.T) {
	if got := Tint("#ffffff", 0.5); got != "#ffffff" {
		t.Fatalf("lighten beyond white = %q", got)
	}
	if got := Tint("#000000", -0.5); got != "#000000" {
		t.Fatalf("darken beyond black = %q", got)
	}
}

func TestTintInvalidHexPassesThrough(t *testing.T) {
	if got := Tint("not-a-color", 0.1); got != "not-a-color" {
		t.Fatalf("invalid hex mangled: %q", got)
	}
}

func TestTintMovesLightness(t *testing.T) {
	base := "#61afef"
	lighter := Tint(base, 0.1)
	darker := Tint(base, -0.1)
	if lighter == base || darker == base || lighter == darker {
		t.Fatalf("tints did not move: base=%s lighter=%s darker=%s", base, lighter, darker)
	}
}

func TestRamp(t *testing.T) {
	if got := Ramp("#61afef", 0); got != nil {
		t.Fatalf("n=0 should yield nil, got %v", got)
	}
	if got := Ramp("#61afef", 1); len(got) != 1 || got[0] != "#61afef" {
		t.Fatalf("n=1 should return base, got %v", got)
	}

	ramp := Ramp("#61afef", 5)
	if len(ramp) != 5 {
		t.Fatalf("len = %d, want 5", len(ramp))
	}
	for i, c := range ramp {
		if !strings.HasPrefix(c, "#") || len(c) != 7 {
			t.Fatalf("ramp[%d] = %q is not a hex color", i, c)
		}
	}
	if ramp[0] == ramp[4] {
		t.Fatalf("ramp endpoints identical: %v", ramp)
	}
}
