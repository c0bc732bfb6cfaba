// Package sound resolves ambient sound identifiers and dispatches
// playback commands.
package sound

import (
	"path/filepath"
	"sort"
	"strings"
)

// SourceKind tags how a resolved sound is obtained.
type SourceKind string

const (
	KindBundled SourceKind = "bundled"
	KindStream  SourceKind = "stream"
	KindFile    SourceKind = "file"
)

// Source is a playable reference resolved from an identifier.
type Source struct {
	Kind SourceKind
	// Path is a filesystem path for bundled/file sources and a remote
	// URL for streams.
	Path string
	Name string
}

type streamEntry struct {
	URL  string
	Name string
}

// Royalty-free ambient loops.
var streamingSounds = map[string]streamEntry{
	"stream:rain":    {URL: "https://cdn.freesound.org/previews/531/531947_5765286-lq.mp3", Name: "Rain Sounds"},
	"stream:forest":  {URL: "https://cdn.freesound.org/previews/462/462087_9497060-lq.mp3", Name: "Forest Ambience"},
	"stream:cafe":    {URL: "https://cdn.freesound.org/previews/443/443916_9159316-lq.mp3", Name: "Coffee Shop"},
	"stream:ocean":   {URL: "https://cdn.freesound.org/previews/531/531015_5765286-lq.mp3", Name: "Ocean Waves"},
	"stream:fire":    {URL: "https://cdn.freesound.org/previews/499/499757_2524422-lq.mp3", Name: "Fireplace"},
	"stream:wind":    {URL: "https://cdn.freesound.org/previews/408/408598_7299548-lq.mp3", Name: "Gentle Wind"},
	"stream:thunder": {URL: "https://cdn.freesound.org/previews/401/401275_7429806-lq.mp3", Name: "Distant Thunder"},
	"stream:birds":   {URL: "https://cdn.freesound.org/previews/531/531953_5765286-lq.mp3", Name: "Morning Birds"},
}

// Bundled asset filenames, relative to the sound dir.
var bundledSounds = map[string]string{
	"bundled:focused":      "focused.mp3",
	"bundled:relaxed":      "relaxed.mp3",
	"bundled:energized":    "energized.mp3",
	"bundled:creative":     "creative.mp3",
	"bundled:notfeelingit": "notfeelingit.mp3",
}

// Resolve maps a sound identifier to its playable source. Bundled
// identifiers resolve relative to soundDir. Unknown bundled: and
// stream: identifiers report ok=false; file: and bare identifiers
// always resolve, as a local path or remote URL.
func Resolve(identifier, soundDir string) (Source, bool) {
	switch {
	case strings.HasPrefix(identifier, "bundled:"):
		filename, ok := bundledSounds[identifier]
		if !ok {
			return Source{}, false
		}
		name := strings.TrimPrefix(identifier, "bundled:")
		return Source{Kind: KindBundled, Path: filepath.Join(soundDir, filename), Name: name}, true
	case strings.HasPrefix(identifier, "stream:"):
		entry, ok := streamingSounds[identifier]
		if !ok {
			return Source{}, false
		}
		return Source{Kind: KindStream, Path: entry.URL, Name: entry.Name}, true
	case strings.HasPrefix(identifier, "file:"):
		path := strings.TrimPrefix(identifier, "file:")
		return Source{Kind: KindFile, Path: path, Name: filepath.Base(path)}, true
	default:
		return Source{Kind: KindFile, Path: identifier, Name: filepath.Base(identifier)}, true
	}
}

// CatalogEntry describes an available sound for listings.
type CatalogEntry struct {
	ID   string
	Name string
}

// StreamingSounds lists the streaming catalog, sorted by id.
func StreamingSounds() []CatalogEntry {
	out := make([]CatalogEntry, 0, len(streamingSounds))
	for id, entry := range streamingSounds {
		out = append(out, CatalogEntry{ID: id, Name: entry.Name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// BundledSounds lists the bundled catalog, sorted by id.
func BundledSounds() []CatalogEntry {
	out := make([]CatalogEntry, 0, len(bundledSounds))
	for id := range bundledSounds {
		name := strings.TrimPrefix(id, "bundled:")
		if name != "" {
			name = strings.ToUpper(name[:1]) + name[1:]
		}
		out = append(out, CatalogEntry{ID: id, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
