package falldown

import (
	"github.com/vovakirdan/falldown/internal/config"
	"github.com/vovakirdan/falldown/internal/core"
)

// Player is the falling character's motion state. Its rect lives in screen
// space; the camera converts to world space through its scroll offset.
type Player struct {
	character config.Character
	rect      core.RectF
	inset     core.Vec2

	speed         core.Vec2
	speedStart    core.Vec2
	speedMax      core.Vec2
	speedIncrease core.Vec2
	speedDecrease float64
	fallIncrease  float64

	fallingFactor float64
	falling       bool

	key           core.Direction
	directionLock core.Direction // committed direction until speed returns to start
	lastPressed   core.Direction
	lastDirection core.Direction
	frame         int
}

// NewPlayer creates a player with its mid-bottom at midBottom (screen space).
func NewPlayer(ch config.Character, midBottom core.Vec2) *Player {
	p := &Player{
		character:     ch,
		inset:         core.Vec2{X: ch.Inner.X(), Y: ch.Inner.Y()},
		speedStart:    core.Vec2{X: ch.SpeedStart.X(), Y: ch.SpeedStart.Y()},
		speedMax:      core.Vec2{X: ch.SpeedMax.X(), Y: ch.SpeedMax.Y()},
		speedIncrease: core.Vec2{X: ch.SpeedIncrease.X(), Y: ch.SpeedIncrease.Y()},
		speedDecrease: ch.SpeedDecrease,
		fallIncrease:  ch.FallingFactorIncrease,
		fallingFactor: 1,
		lastDirection: core.DirLeft,
	}
	w, h := ch.Size.X(), ch.Size.Y()
	p.rect = core.NewRectF(midBottom.X-w/2, midBottom.Y-h, w, h)
	p.speed = p.speedStart
	return p
}

// Character returns the character the player was built from.
func (p *Player) Character() config.Character { return p.character }

// Rect returns the full sprite rectangle in screen space.
func (p *Player) Rect() core.RectF { return p.rect }

// InnerRect returns the collision rectangle in screen space.
func (p *Player) InnerRect() core.RectF {
	return p.rect.Inset(p.inset.X, p.inset.Y)
}

// Speed returns the current speed in pixels per second.
func (p *Player) Speed() core.Vec2 { return p.speed }

// SpeedStart returns the baseline speed.
func (p *Player) SpeedStart() core.Vec2 { return p.speedStart }

// FallingFactor returns the current fall acceleration multiplier.
func (p *Player) FallingFactor() float64 { return p.fallingFactor }

// Frame returns the animation frame counter.
func (p *Player) Frame() int { return p.frame }

// LastDirection returns the direction the player last faced.
func (p *Player) LastDirection() core.Direction { return p.lastDirection }

// SetKey sets the direction currently pressed.
func (p *Player) SetKey(d core.Direction) { p.key = d }

// Key returns the direction currently pressed.
func (p *Player) Key() core.Direction { return p.key }

// IsFalling reports whether the player is in the air.
func (p *Player) IsFalling() bool { return p.falling }

// SetFalling marks the player as airborne or grounded.
func (p *Player) SetFalling(falling bool) { p.falling = falling }

// IsMoving reports whether a horizontal direction is committed.
func (p *Player) IsMoving() bool { return p.directionLock != core.DirNone }

// IsGoingLeft reports whether the committed direction is left.
func (p *Player) IsGoingLeft() bool { return p.directionLock == core.DirLeft }

// IsGoingRight reports whether the committed direction is right.
func (p *Player) IsGoingRight() bool { return p.directionLock == core.DirRight }

// nearlyStartSpeed reports whether speed.x is within half an acceleration
// step of the baseline.
func (p *Player) nearlyStartSpeed() bool {
	half := p.speedIncrease.X / 2
	return p.speed.X == p.speedStart.X ||
		(p.speed.X >= p.speedStart.X-half && p.speed.X <= p.speedStart.X+half)
}

// CanGoLeft reports whether the player may be moved left this tick.
func (p *Player) CanGoLeft() bool {
	return p.nearlyStartSpeed() || p.directionLock == core.DirLeft
}

// CanGoRight reports whether the player may be moved right this tick.
func (p *Player) CanGoRight() bool {
	return p.nearlyStartSpeed() || p.directionLock == core.DirRight
}

// IsSliding reports whether the player is decelerating out of a committed
// direction: fast, and either no key held or a different one.
func (p *Player) IsSliding() bool {
	return !p.nearlyStartSpeed() && (p.key == core.DirNone || p.key != p.directionLock)
}

// ResetSpeedX drops horizontal speed to baseline and releases the commitment.
func (p *Player) ResetSpeedX() {
	p.speed.X = p.speedStart.X
	p.directionLock = core.DirNone
}

// HalfSpeedX halves horizontal speed, truncated to whole pixels per second.
// Falling below baseline resets to baseline and releases the commitment.
func (p *Player) HalfSpeedX() {
	speed := float64(int(p.speed.X / 2))
	if speed < p.speedStart.X {
		speed = p.speedStart.X
		p.directionLock = core.DirNone
	}
	p.speed.X = speed
}

// ResetSpeedY lands the player: vertical speed and fall ramp go back to
// baseline.
func (p *Player) ResetSpeedY() {
	p.speed.Y = p.speedStart.Y
	p.fallingFactor = 1
	p.falling = false
}

// Velocity advances the motion model by one tick and returns the intended
// movement in pixels for this tick.
func (p *Player) Velocity(dt float64) core.Vec2 {
	if p.lastPressed != core.DirNone {
		p.lastDirection = p.lastPressed
	}
	p.lastPressed = p.key

	if p.key != core.DirNone && p.directionLock == core.DirNone {
		p.directionLock = p.key
		p.frame = 0
	}
	if p.key == core.DirNone && !p.IsMoving() && !p.falling {
		return core.Vec2{}
	}

	if p.key != core.DirNone && p.key == p.directionLock {
		p.speed.X += p.speedIncrease.X
	} else {
		p.speed.X -= p.speedDecrease
	}
	p.speed.X = core.ClampF(p.speed.X, p.speedStart.X, p.speedMax.X)
	if p.nearlyStartSpeed() {
		p.directionLock = p.key
		p.speed.X = p.speedStart.X
		p.frame = 0
	}

	if p.falling {
		p.speed.Y += p.speedIncrease.Y * p.fallingFactor
		p.fallingFactor += p.fallIncrease
	}
	if p.speed.Y > p.speedMax.Y {
		p.speed.Y = p.speedMax.Y
	}

	return p.speed.Scale(dt)
}

// advanceFrame steps the sprite animation.
func (p *Player) advanceFrame() {
	p.frame++
}

// SetPosition moves the sprite's top-left corner (screen space).
func (p *Player) SetPosition(x, y float64) {
	p.rect.X, p.rect.Y = x, y
}
