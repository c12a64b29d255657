// Package window holds the window configuration and the abstract window
// handle threaded through state resources. Real windowing backends live
// outside this module; the Headless implementation covers tests, tools,
// and the demo harness.
package window

import (
	"errors"
	"fmt"
	"sync"
)

const (
	DefaultWidth  = 1024
	DefaultHeight = 768
	DefaultTitle  = "Lantern App"
)

var ErrInvalidDimensions = errors.New("window dimensions must be non-zero")

// Config describes the desired window. Icon is an optional path to an
// image file; decoding it is the backend's concern.
type Config struct {
	Title      string `yaml:"title"`
	Width      uint32 `yaml:"width"`
	Height     uint32 `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	Icon       string `yaml:"icon,omitempty"`
}

// DefaultConfig returns a 1024x768 windowed configuration.
func DefaultConfig() Config {
	return Config{
		Title:  DefaultTitle,
		Width:  DefaultWidth,
		Height: DefaultHeight,
	}
}

// Validate checks that the configuration can produce a usable window.
func (c Config) Validate() error {
	if c.Width == 0 || c.Height == 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, c.Width, c.Height)
	}

	return nil
}

// Window is the handle states receive through their resources. It stays
// deliberately narrow: surface and device management are not this
// module's concern.
type Window interface {
	Title() string
	SetTitle(title string)

	// Size returns the current inner size in pixels.
	Size() (width, height uint32)
	Resize(width, height uint32)

	Fullscreen() bool
	SetFullscreen(fullscreen bool)
}

// Headless is an in-memory Window. It records what was asked of it and is
// safe for concurrent use, so tests can inspect it while a runtime drives
// states against it.
type Headless struct {
	mu         sync.Mutex
	title      string
	width      uint32
	height     uint32
	fullscreen bool
}

var _ Window = (*Headless)(nil)

// NewHeadless creates a headless window from a configuration. Zero
// dimensions fall back to the defaults so a partially filled config still
// yields a usable window.
func NewHeadless(config Config) *Headless {
	if config.Width == 0 {
		config.Width = DefaultWidth
	}

	if config.Height == 0 {
		config.Height = DefaultHeight
	}

	if config.Title == "" {
		config.Title = DefaultTitle
	}

	return &Headless{
		title:      config.Title,
		width:      config.Width,
		height:     config.Height,
		fullscreen: config.Fullscreen,
	}
}

func (h *Headless) Title() string {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.title
}

func (h *Headless) SetTitle(title string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.title = title
}

func (h *Headless) Size() (uint32, uint32) {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.width, h.height
}

func (h *Headless) Resize(width, height uint32) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.width = width
	h.height = height
}

func (h *Headless) Fullscreen() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.fullscreen
}

func (h *Headless) SetFullscreen(fullscreen bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.fullscreen = fullscreen
}
