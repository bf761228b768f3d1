// Package resource caches images, sounds and fonts by name.
//
// Assets are loaded once and kept until the process exits. Loaders never
// fail loudly: a missing or undecodable file is logged and yields nil, and
// the lookups return nil for anything that was never loaded. Scenes are
// expected to tolerate nil and draw or play nothing.
package resource

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"log/slog"
	"os"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/younwookim/pongkit/internal/infrastructure/audio"
	"github.com/younwookim/pongkit/internal/infrastructure/logging"
)

type fontKey struct {
	name string
	size float64
}

// Manager holds the three asset caches. It is safe for concurrent use.
type Manager struct {
	fsys   fs.FS
	logger *slog.Logger

	mu      sync.RWMutex
	images  map[string]*ebiten.Image
	sounds  map[string]*audio.Sound
	fonts   map[fontKey]text.Face
	sources map[string]*text.GoTextFaceSource // parsed font files by path

	fallbackOnce sync.Once
	fallback     *text.GoTextFaceSource
}

// NewManager creates a manager that resolves asset paths inside fsys. A nil
// fsys resolves paths against the working directory.
func NewManager(fsys fs.FS, logger *slog.Logger) *Manager {
	if fsys == nil {
		fsys = os.DirFS(".")
	}
	return &Manager{
		fsys:    fsys,
		logger:  logging.OrDiscard(logger).With("component", "resource"),
		images:  make(map[string]*ebiten.Image),
		sounds:  make(map[string]*audio.Sound),
		fonts:   make(map[fontKey]text.Face),
		sources: make(map[string]*text.GoTextFaceSource),
	}
}

// LoadImage decodes a PNG, JPEG or GIF and stores it under name. With
// alpha false the image is flattened onto opaque black.
func (m *Manager) LoadImage(name, path string, alpha bool) *ebiten.Image {
	data, err := fs.ReadFile(m.fsys, path)
	if err != nil {
		m.warn("image", name, path, err)
		return nil
	}
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		m.warn("image", name, path, err)
		return nil
	}
	if !alpha {
		src = flatten(src)
	}

	img := ebiten.NewImageFromImage(src)
	m.mu.Lock()
	m.images[name] = img
	m.mu.Unlock()

	m.logger.Debug("image loaded", "name", name, "path", path, "size", src.Bounds().Size())
	return img
}

// LoadSound decodes a WAV, OGG or MP3 file and stores it under name.
func (m *Manager) LoadSound(name, path string) *audio.Sound {
	data, err := fs.ReadFile(m.fsys, path)
	if err != nil {
		m.warn("sound", name, path, err)
		return nil
	}
	snd, err := audio.DecodeFile(path, data)
	if err != nil {
		m.warn("sound", name, path, err)
		return nil
	}

	m.mu.Lock()
	m.sounds[name] = snd
	m.mu.Unlock()

	m.logger.Debug("sound loaded", "name", name, "path", path, "duration", snd.Duration())
	return snd
}

// LoadFont parses a TTF or OTF file and stores a face for (name, size).
// Each file is parsed once no matter how many sizes are loaded from it.
func (m *Manager) LoadFont(name, path string, size float64) text.Face {
	if size <= 0 {
		m.warn("font", name, path, fmt.Errorf("invalid size %v", size))
		return nil
	}

	m.mu.RLock()
	src := m.sources[path]
	m.mu.RUnlock()

	if src == nil {
		data, err := fs.ReadFile(m.fsys, path)
		if err != nil {
			m.warn("font", name, path, err)
			return nil
		}
		src, err = text.NewGoTextFaceSource(bytes.NewReader(data))
		if err != nil {
			m.warn("font", name, path, err)
			return nil
		}
	}

	face := &text.GoTextFace{Source: src, Size: size}
	m.mu.Lock()
	m.sources[path] = src
	m.fonts[fontKey{name, size}] = face
	m.mu.Unlock()

	m.logger.Debug("font loaded", "name", name, "path", path, "size", size)
	return face
}

// Image returns the image stored under name, or nil.
func (m *Manager) Image(name string) *ebiten.Image {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.images[name]
}

// Sound returns the sound stored under name, or nil.
func (m *Manager) Sound(name string) *audio.Sound {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sounds[name]
}

// Font returns the face stored under (name, size), or nil.
func (m *Manager) Font(name string, size float64) text.Face {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.fonts[fontKey{name, size}]
}

// FontOr returns the face for (name, size), falling back to Go Regular at
// size when it was never loaded.
func (m *Manager) FontOr(name string, size float64) text.Face {
	if f := m.Font(name, size); f != nil {
		return f
	}
	return m.Fallback(size)
}

// Fallback returns the bundled Go Regular face at size.
func (m *Manager) Fallback(size float64) text.Face {
	m.fallbackOnce.Do(func() {
		src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			// goregular is compiled in; this cannot fail short of a broken build.
			panic(fmt.Sprintf("resource: parse goregular: %v", err))
		}
		m.fallback = src
	})
	return &text.GoTextFace{Source: m.fallback, Size: size}
}

// Counts returns the number of cached images, sounds and fonts.
func (m *Manager) Counts() (images, sounds, fonts int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.images), len(m.sounds), len(m.fonts)
}

// LogValue implements slog.LogValuer.
func (m *Manager) LogValue() slog.Value {
	images, sounds, fonts := m.Counts()
	return slog.GroupValue(
		slog.Int("images", images),
		slog.Int("sounds", sounds),
		slog.Int("fonts", fonts),
	)
}

func (m *Manager) warn(kind, name, path string, err error) {
	m.logger.Warn("failed to load "+kind, "name", name, "path", path, "err", err)
}

// flatten composites src over opaque black.
func flatten(src image.Image) image.Image {
	b := src.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, &image.Uniform{C: color.Black}, image.Point{}, draw.Src)
	draw.Draw(dst, b, src, b.Min, draw.Over)
	return dst
}
