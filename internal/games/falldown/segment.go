package falldown

import (
	"math"

	"github.com/vovakirdan/falldown/internal/config"
	"github.com/vovakirdan/falldown/internal/core"
)

// Power marks a segment that carries a power-up icon.
type Power int

const (
	PowerNone      Power = iota
	PowerClearLine       // removes the segment it sits on
	PowerClearAll        // removes every line
)

// String returns a human-readable name for the power.
func (p Power) String() string {
	switch p {
	case PowerClearLine:
		return "clear-line"
	case PowerClearAll:
		return "clear-all"
	default:
		return "none"
	}
}

// segmentShape holds the tuning every segment of a level shares.
type segmentShape struct {
	height        float64
	imageHeight   float64
	moveSpeed     float64
	moveMax       float64
	clearLineIcon core.Vec2
	clearLineLift float64
	clearAllIcon  core.Vec2
	clearAllLift  float64
}

func newSegmentShape(cfg config.LevelConfig) *segmentShape {
	return &segmentShape{
		height:        cfg.SegmentHeight,
		imageHeight:   cfg.SegmentImageHeight,
		moveSpeed:     cfg.MoveSpeed,
		moveMax:       cfg.MoveMax,
		clearLineIcon: core.Vec2{X: cfg.ClearLineIcon.X(), Y: cfg.ClearLineIcon.Y()},
		clearLineLift: cfg.ClearLineIconLift,
		clearAllIcon:  core.Vec2{X: cfg.ClearAllIcon.X(), Y: cfg.ClearAllIcon.Y()},
		clearAllLift:  cfg.ClearAllIconLift,
	}
}

// Segment is a single platform piece in world space.
type Segment struct {
	start  core.Vec2
	width  float64
	moving bool
	power  Power

	// Oscillation: speed ramps by moveSpeed per tick in direction, which
	// flips once |speed| reaches moveMax.
	speed     float64
	direction float64

	frame int
	shape *segmentShape
}

func newSegment(shape *segmentShape, start core.Vec2, width float64, moving bool, power Power) *Segment {
	return &Segment{
		start:     start,
		width:     width,
		moving:    moving,
		power:     power,
		direction: 1,
		shape:     shape,
	}
}

// Start returns the top-left corner in world space.
func (s *Segment) Start() core.Vec2 { return s.start }

// Width returns the segment width.
func (s *Segment) Width() float64 { return s.width }

// Height returns the segment height.
func (s *Segment) Height() float64 { return s.shape.height }

// Moving reports whether the segment oscillates horizontally.
func (s *Segment) Moving() bool { return s.moving }

// Power returns the power-up the segment carries.
func (s *Segment) Power() Power { return s.power }

// Frame returns the animation frame counter.
func (s *Segment) Frame() int { return s.frame }

// Rect returns the segment's bounding box in world space.
func (s *Segment) Rect() core.RectF {
	return core.NewRectF(s.start.X, s.start.Y, s.width, s.shape.height)
}

// Speed returns the current horizontal oscillation speed in pixels per second.
func (s *Segment) Speed() float64 { return s.speed }

// nextSpeed computes the speed after one oscillation step without applying it.
func (s *Segment) nextSpeed() (speed, direction float64) {
	direction = s.direction
	if math.Abs(s.speed) >= s.shape.moveMax {
		direction = -direction
	}
	return s.speed + s.shape.moveSpeed*direction, direction
}

// NextStart previews where the segment will be after Advance(dt).
// It does not mutate the segment.
func (s *Segment) NextStart(dt float64) core.Vec2 {
	if !s.moving {
		return s.start
	}
	speed, _ := s.nextSpeed()
	return core.Vec2{X: s.start.X + speed*dt, Y: s.start.Y}
}

// Advance moves an oscillating segment by one tick and steps its animation.
func (s *Segment) Advance(dt float64) {
	s.frame++
	if !s.moving {
		return
	}
	s.speed, s.direction = s.nextSpeed()
	s.start.X += s.speed * dt
}

// ClearLineRect returns the clear-line icon rectangle in screen space.
func (s *Segment) ClearLineRect(offset core.Vec2) core.RectF {
	return s.iconRect(s.shape.clearLineIcon, s.shape.clearLineLift, offset)
}

// ClearAllRect returns the clear-all icon rectangle in screen space.
func (s *Segment) ClearAllRect(offset core.Vec2) core.RectF {
	return s.iconRect(s.shape.clearAllIcon, s.shape.clearAllLift, offset)
}

// PowerRect returns the icon rectangle of the segment's power, if any.
func (s *Segment) PowerRect(offset core.Vec2) (core.RectF, bool) {
	switch s.power {
	case PowerClearLine:
		return s.ClearLineRect(offset), true
	case PowerClearAll:
		return s.ClearAllRect(offset), true
	default:
		return core.RectF{}, false
	}
}

// iconRect centers an icon horizontally on the segment, resting above it.
func (s *Segment) iconRect(size core.Vec2, lift float64, offset core.Vec2) core.RectF {
	return core.NewRectF(
		s.start.X+s.width/2-size.X/2-offset.X,
		s.start.Y+s.shape.imageHeight/2-size.Y-lift-offset.Y,
		size.X,
		size.Y,
	)
}

// inViewport reports whether any part of the segment is on screen.
func (s *Segment) inViewport(offset core.Vec2, screen core.Vec2) bool {
	return s.start.X+s.width > offset.X &&
		s.start.X-offset.X < screen.X &&
		s.start.Y+s.shape.height > offset.Y &&
		s.start.Y-offset.Y < screen.Y
}
