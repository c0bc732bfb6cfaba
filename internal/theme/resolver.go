package theme

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/mabbasbangash97/codevibe/internal/logging"
)

// ErrThemeUnavailable reports that neither the requested theme nor any
// fallback candidate is installed.
var ErrThemeUnavailable = errors.New("theme unavailable")

// Store persists the active theme selection.
type Store interface {
	GetString(ctx context.Context, key string) (string, bool, error)
	SetString(ctx context.Context, key, value string) error
}

const activeThemeKey = "activeTheme"

// Resolver matches requested theme names against the built-in palettes
// and user palette files, degrading through the fallback table when a
// name is not installed.
type Resolver struct {
	store    Store
	palettes map[string]Palette // keyed by lowercased name
	names    []string           // display names, sorted
	current  string
}

// NewResolver builds a resolver over the built-in palettes plus any
// user palettes found in themeDir. A missing or unreadable theme dir
// is not an error; broken palette files are logged and skipped.
func NewResolver(st Store, themeDir string) *Resolver {
	r := &Resolver{store: st, palettes: make(map[string]Palette)}
	for _, p := range builtinPalettes() {
		r.add(p)
	}
	for _, p := range loadUserPalettes(themeDir) {
		r.add(p)
	}
	sort.Strings(r.names)
	if st != nil {
		if name, found, err := st.GetString(context.Background(), activeThemeKey); err == nil && found {
			r.current = name
		}
	}
	return r
}

func (r *Resolver) add(p Palette) {
	key := strings.ToLower(p.Name)
	if _, exists := r.palettes[key]; !exists {
		r.names = append(r.names, p.Name)
	}
	r.palettes[key] = p
}

func loadUserPalettes(dir string) []Palette {
	if dir == "" {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []Palette
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".toml") {
			continue
		}
		var p Palette
		if _, err := toml.DecodeFile(filepath.Join(dir, name), &p); err != nil {
			logging.L().Warn("skipping broken theme file", "file", name, "error", err)
			continue
		}
		if p.Name == "" {
			p.Name = strings.TrimSuffix(name, ".toml")
		}
		out = append(out, p)
	}
	return out
}

// IsInstalled reports whether a theme name matches a known palette,
// case-insensitively.
func (r *Resolver) IsInstalled(name string) bool {
	_, ok := r.palettes[strings.ToLower(name)]
	return ok
}

// Apply resolves name (falling back per the static table when it is
// not installed), persists the result as the active theme, and returns
// the applied name. On total failure nothing changes and the error
// wraps ErrThemeUnavailable with a hint on installing the palette.
func (r *Resolver) Apply(ctx context.Context, name string) (string, error) {
	applied := name
	if !r.IsInstalled(name) {
		fallback, ok := r.findFallback(name)
		if !ok {
			return "", fmt.Errorf("%w: %q is not installed (drop a palette file into the theme directory to add it)", ErrThemeUnavailable, name)
		}
		logging.L().Info("theme not installed, using fallback", "requested", name, "fallback", fallback)
		applied = fallback
	}
	if r.store != nil {
		if err := r.store.SetString(ctx, activeThemeKey, applied); err != nil {
			return "", fmt.Errorf("failed to persist theme: %w", err)
		}
	}
	r.current = applied
	return applied, nil
}

func (r *Resolver) findFallback(requested string) (string, bool) {
	candidates, ok := fallbackTable[strings.ToLower(requested)]
	if !ok {
		candidates = []string{DefaultTheme}
	}
	for _, candidate := range candidates {
		if r.IsInstalled(candidate) {
			return candidate, true
		}
	}
	if r.IsInstalled(DefaultTheme) {
		return DefaultTheme, true
	}
	return "", false
}

// Current returns the active theme name, or the default when none has
// been applied yet.
func (r *Resolver) Current() string {
	if r.current == "" {
		return DefaultTheme
	}
	return r.current
}

// Lookup returns the palette for a theme name.
func (r *Resolver) Lookup(name string) (Palette, bool) {
	p, ok := r.palettes[strings.ToLower(name)]
	return p, ok
}

// CurrentPalette returns the palette for the active theme.
func (r *Resolver) CurrentPalette() Palette {
	if p, ok := r.Lookup(r.Current()); ok {
		return p
	}
	p, _ := r.Lookup(DefaultTheme)
	return p
}

// Available lists all installed theme names, sorted.
func (r *Resolver) Available() []string {
	return append([]string(nil), r.names...)
}
