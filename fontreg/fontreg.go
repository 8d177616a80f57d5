// Package fontreg loads the fonts installed on the host into an
// in-memory registry, so that text spans can be resolved into glyph
// outlines. A serif fallback suited to math output is looked up by
// name; the embedded Go Regular face guarantees the registry is never
// empty.
package fontreg

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

// maxScanDepth limits recursive directory traversal when scanning for fonts.
const maxScanDepth = 3

// maxFontFileSize limits the size of individual font files loaded into memory.
const maxFontFileSize = 20 << 20 // 20 MB

// Registry holds the parsed fonts, keyed by lowercase family name,
// full name and base file name. It is read-only after New returns
// and safe for concurrent use.
type Registry struct {
	faces        map[string]*Face
	fallbackFace *Face
}

var (
	shared     *Registry
	sharedOnce sync.Once

	// observed by tests to assert the scan runs once
	sharedInits atomic.Int32
)

// Shared returns the process-wide registry, scanning the system font
// directories on first use. The scan runs once, concurrent callers
// block until it completes.
func Shared() *Registry {
	sharedOnce.Do(func() {
		sharedInits.Add(1)
		shared = New(systemFontDirs(), DefaultFallback)
	})
	return shared
}

// New builds a registry from the fonts found under dirs, resolving
// fallback by family name. The embedded Go Regular face is always
// registered, and serves as last resort when fallback is not installed.
func New(dirs []string, fallback string) *Registry {
	r := &Registry{faces: make(map[string]*Face)}
	for _, dir := range dirs {
		r.scanDir(dir, 0)
	}
	r.registerData(goregular.TTF, "goregular")

	r.fallbackFace = r.lookup(fallback)
	if r.fallbackFace == nil {
		r.fallbackFace = r.lookup("goregular")
	}
	return r
}

// Fallback returns the serif fallback face, never nil.
func (r *Registry) Fallback() *Face { return r.fallbackFace }

// Face returns the face registered under the given family, falling
// back when the family is unknown or empty. It never returns nil.
func (r *Registry) Face(family string) *Face {
	if f := r.lookup(family); f != nil {
		return f
	}
	return r.fallbackFace
}

func (r *Registry) lookup(name string) *Face {
	return r.faces[strings.ToLower(strings.TrimSpace(name))]
}

// Families returns the registered names, for diagnostics.
func (r *Registry) Families() []string {
	out := make([]string, 0, len(r.faces))
	for name := range r.faces {
		out = append(out, name)
	}
	return out
}

func (r *Registry) scanDir(dir string, depth int) {
	if depth > maxScanDepth {
		return
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			r.scanDir(filepath.Join(dir, entry.Name()), depth+1)
			continue
		}
		lower := strings.ToLower(entry.Name())
		isTTC := strings.HasSuffix(lower, ".ttc") || strings.HasSuffix(lower, ".otc")
		isSingle := strings.HasSuffix(lower, ".ttf") || strings.HasSuffix(lower, ".otf")
		if !isTTC && !isSingle {
			continue
		}

		info, err := entry.Info()
		if err != nil || info.Size() > maxFontFileSize {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}

		baseName := strings.TrimSuffix(lower, filepath.Ext(lower))
		if isTTC {
			r.registerCollection(data, baseName)
		} else {
			r.registerData(data, baseName)
		}
	}
}

// registerData parses a single TTF/OTF font and registers it by both
// file name and internal names.
func (r *Registry) registerData(data []byte, baseName string) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return
	}
	face := &Face{data: data, font: f, index: -1}
	r.register(face, baseName)
}

// registerCollection parses a TTC/OTC collection and registers each
// member by its internal names.
func (r *Registry) registerCollection(data []byte, baseName string) {
	coll, err := sfnt.ParseCollection(data)
	if err != nil {
		return
	}
	for i := 0; i < coll.NumFonts(); i++ {
		f, err := coll.Font(i)
		if err != nil {
			continue
		}
		face := &Face{data: data, font: f, index: i}
		if i == 0 {
			r.register(face, baseName)
		} else {
			r.register(face, "")
		}
	}
}

func (r *Registry) register(face *Face, baseName string) {
	familyName, err := face.font.Name(nil, sfnt.NameIDFamily)
	if err == nil && familyName != "" {
		face.Family = familyName
		r.faces[strings.ToLower(familyName)] = face
	}
	fullName, err := face.font.Name(nil, sfnt.NameIDFull)
	if err == nil && fullName != "" {
		if face.Family == "" {
			face.Family = fullName
		}
		r.faces[strings.ToLower(fullName)] = face
	}
	if baseName != "" {
		if face.Family == "" {
			face.Family = baseName
		}
		r.faces[baseName] = face
	}
}

// systemFontDirs returns OS-specific font directories.
func systemFontDirs() []string {
	switch runtime.GOOS {
	case "windows":
		windir := os.Getenv("WINDIR")
		if windir == "" {
			windir = `C:\Windows`
		}
		localAppData := os.Getenv("LOCALAPPDATA")
		dirs := []string{filepath.Join(windir, "Fonts")}
		if localAppData != "" {
			dirs = append(dirs, filepath.Join(localAppData, "Microsoft", "Windows", "Fonts"))
		}
		return dirs
	case "darwin":
		home, _ := os.UserHomeDir()
		dirs := []string{
			"/System/Library/Fonts",
			"/Library/Fonts",
		}
		if home != "" {
			dirs = append(dirs, filepath.Join(home, "Library", "Fonts"))
		}
		return dirs
	default: // linux, freebsd, etc.
		home, _ := os.UserHomeDir()
		dirs := []string{
			"/usr/share/fonts",
			"/usr/local/share/fonts",
		}
		if home != "" {
			dirs = append(dirs, filepath.Join(home, ".local", "share", "fonts"))
			dirs = append(dirs, filepath.Join(home, ".fonts"))
		}
		return dirs
	}
}
