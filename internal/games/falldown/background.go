package falldown

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/falldown/internal/config"
	"github.com/vovakirdan/falldown/internal/core"
)

// DefaultBackgroundSpeed is the scroll speed of the menu background in pixels
// per second.
const DefaultBackgroundSpeed = 40.0

// Background is a decorative run without a player: the shaft scrolls by on
// its own behind the menus.
type Background struct {
	camera *Camera
	level  *Level
	speed  float64
	dt     float64
}

// NewBackground creates a decorative run.
func NewBackground(cfg config.FalldownConfig, seed int64, tickRate int, logger *log.Logger) *Background {
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	level := NewLevel(cfg, NewRandom(seed), logger)
	return &Background{
		camera: NewCamera(cfg, level, CameraOptions{Logger: logger}),
		level:  level,
		speed:  DefaultBackgroundSpeed,
		dt:     1.0 / float64(tickRate),
	}
}

// Camera returns the underlying camera.
func (b *Background) Camera() *Camera { return b.camera }

// Step scrolls the shaft by one tick.
func (b *Background) Step() {
	o := b.camera.Offset()
	o.Y += b.speed * b.dt
	b.camera.SetOffset(o)
	b.camera.Loop(b.dt, core.Keys{})
}

// Render draws the shaft. Cells already drawn by the caller are kept.
func (b *Background) Render(dst *core.Screen) {
	p := newProjector(dst, b.level.screen)
	renderLevel(dst, p, b.level, b.camera.Offset())
}
