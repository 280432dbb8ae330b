package falldown

import (
	"fmt"
	"math"

	"github.com/vovakirdan/falldown/internal/core"
)

// Visual characters for rendering
const (
	SegmentChar      = '▀'
	ClearLineChar    = '+'
	ClearAllChar     = '*'
	LaserChar        = '═'
	PlayerFillChar   = '█'
	minScreenW       = 30
	minScreenH       = 12
	hudRows          = 1
	pausedText       = "PAUSED"
	gameOverText     = "GAME OVER"
	restartHintText  = "r restart  q quit"
	demoHintText     = "press any key"
	introTextPattern = "GO, %s!"
)

// characterColors colors the player by roster index.
var characterColors = []core.Color{
	core.ColorOrange,
	core.ColorGreen,
	core.ColorBrightWhite,
	core.ColorBrightMagenta,
	core.ColorMagenta,
	core.ColorBrightCyan,
	core.ColorBrightGreen,
	core.ColorBrightBlue,
}

// projector maps simulation pixels to terminal cells below the HUD.
type projector struct {
	sx, sy float64
	top    int
}

func newProjector(dst *core.Screen, screen core.Vec2) projector {
	return projector{
		sx:  float64(dst.Width()) / screen.X,
		sy:  float64(dst.Height()-hudRows) / screen.Y,
		top: hudRows,
	}
}

// cells converts a screen-space pixel rect to a cell rect at least one cell
// in each dimension.
func (p projector) cells(r core.RectF) core.Rect {
	x0 := int(math.Floor(r.Left() * p.sx))
	y0 := int(math.Floor(r.Top()*p.sy)) + p.top
	x1 := int(math.Ceil(r.Right() * p.sx))
	y1 := int(math.Ceil(r.Bottom()*p.sy)) + p.top
	return core.NewRect(x0, y0, core.Max(1, x1-x0), core.Max(1, y1-y0))
}

func (p projector) row(y float64) int {
	return int(math.Floor(y*p.sy)) + p.top
}

// fill draws r clipped to the play area.
func fill(dst *core.Screen, r core.Rect, ch rune, c core.Color) {
	for y := core.Max(r.Y, hudRows); y < core.Min(r.Bottom(), dst.Height()); y++ {
		for x := core.Max(r.X, 0); x < core.Min(r.Right(), dst.Width()); x++ {
			dst.SetColored(x, y, ch, c)
		}
	}
}

// renderLevel draws every segment and power-up icon visible at offset.
func renderLevel(dst *core.Screen, p projector, level *Level, offset core.Vec2) {
	for _, line := range level.Lines() {
		color := core.ColorGreen
		if line.Moving() {
			color = core.ColorCyan
		}
		for _, seg := range line.Segments() {
			if !seg.inViewport(offset, level.screen) {
				continue
			}
			fill(dst, p.cells(seg.Rect().Translate(offset)), SegmentChar, color)

			icon, ok := seg.PowerRect(offset)
			if !ok {
				continue
			}
			cell := p.cells(icon)
			x, y := cell.X+cell.W/2, cell.Y+cell.H/2
			if y < hudRows {
				continue
			}
			if seg.Power() == PowerClearLine {
				dst.SetColored(x, y, ClearLineChar, core.ColorBrightYellow)
			} else {
				dst.SetColored(x, y, ClearAllChar, core.ColorBrightMagenta)
			}
		}
	}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() < minScreenW || dst.Height() < minScreenH {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", minScreenW, minScreenH))
		return
	}
	if g.camera == nil {
		return
	}

	p := newProjector(dst, g.level.screen)
	offset := g.camera.Offset()

	renderLevel(dst, p, g.level, offset)
	g.renderBarrier(dst, p, offset)
	g.renderPlayer(dst, p)
	g.renderHUD(dst)
	g.renderOverlay(dst)
}

func (g *Game) renderBarrier(dst *core.Screen, p projector, offset core.Vec2) {
	if !g.barrier.IsVisible(offset) {
		return
	}
	r := g.barrier.Rect().Translate(offset)
	y := p.row(r.Top() + r.H/2 - g.cfg.Barrier.LaserCorrectionY)
	if y < hudRows || y >= dst.Height() {
		return
	}
	color := core.ColorRed
	if g.barrier.Frame()/8%2 == 0 {
		color = core.ColorBrightRed
	}
	for x := range dst.Width() {
		dst.SetColored(x, y, LaserChar, color)
	}
}

func (g *Game) renderPlayer(dst *core.Screen, p projector) {
	cell := p.cells(g.player.InnerRect())
	color := characterColors[g.characterIndex()%len(characterColors)]
	fill(dst, cell, PlayerFillChar, color)

	name := []rune(g.player.Character().Name)
	if len(name) > 0 && cell.Y >= hudRows && cell.Y < dst.Height() {
		face := cell.X
		if g.player.LastDirection() == core.DirRight {
			face = cell.Right() - 1
		}
		dst.SetColored(face, cell.Y, name[0], core.ColorBrightWhite)
	}
}

func (g *Game) characterIndex() int {
	n := len(g.cfg.Characters)
	if n == 0 {
		return 0
	}
	return ((g.env.Character % n) + n) % n
}

func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawTextColored(1, 0, g.player.Character().Name, core.ColorBrightWhite)

	score := fmt.Sprintf("Score: %d", g.score.Value())
	dst.DrawTextColored(dst.Width()-len(score)-1, 0, score, core.ColorBrightYellow)

	if g.demo {
		dst.DrawTextCenteredColored(0, "AI playing", core.ColorCyan)
	} else if g.barrier.Started() {
		dst.DrawTextCenteredColored(0, fmt.Sprintf("Laser %.0f", g.barrier.Speed()), core.ColorRed)
	}
}

func (g *Game) renderOverlay(dst *core.Screen) {
	mid := dst.Height() / 2
	switch {
	case g.camera.GameOver():
		dst.DrawTextCenteredColored(mid-1, gameOverText, core.ColorBrightRed)
		dst.DrawTextCentered(mid, fmt.Sprintf("Score: %d", g.score.Value()))
		if !g.demo {
			dst.DrawTextCentered(mid+2, restartHintText)
		}
	case g.paused:
		dst.DrawTextCenteredColored(mid, pausedText, core.ColorBrightYellow)
	case g.camera.ShowIntro():
		dst.DrawTextCenteredColored(mid, fmt.Sprintf(introTextPattern, g.player.Character().Name), core.ColorBrightGreen)
	}
	if g.demo && !g.camera.GameOver() {
		dst.DrawTextCentered(dst.Height()-1, demoHintText)
	}
}
