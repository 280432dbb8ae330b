package falldown

import "github.com/vovakirdan/falldown/internal/core"

// CollisionInfo describes the player's contact with the level for one tick.
type CollisionInfo struct {
	CollidesBottom bool
	CollidesLeft   bool
	CollidesRight  bool

	// SegmentTopY is the contacted segment's top in screen space. Only
	// meaningful when CollidesBottom is set.
	SegmentTopY float64

	StandsOnMovingSegment bool
	SegmentSpeed          float64

	CollidesClearLine bool
	CollidesClearAll  bool

	// LineIndex and SegmentIndex identify the contacted segment, or -1.
	LineIndex    int
	SegmentIndex int
}

// NoCollision returns an empty result.
func NoCollision() CollisionInfo {
	return CollisionInfo{LineIndex: -1, SegmentIndex: -1}
}

// PowerCollected reports whether a power-up was hit.
func (c CollisionInfo) PowerCollected() bool {
	return c.CollidesClearLine || c.CollidesClearAll
}

// Body is what the level needs to know about the player to resolve contacts.
type Body interface {
	// InnerRect is the collision rectangle in screen space.
	InnerRect() core.RectF
	IsMoving() bool
	IsFalling() bool
	IsGoingLeft() bool
	IsGoingRight() bool
}

// CollidesWith checks the body against every on-screen segment, in
// generation order. velocity is the body's intended movement this tick and
// offset the camera scroll.
//
// Power-up icons are checked first and win outright. Otherwise the first
// segment whose projected box overlaps the body's projected box is the
// contact, even if no side flag ends up set.
func (l *Level) CollidesWith(body Body, dt float64, velocity core.Vec2, offset core.Vec2) CollisionInfo {
	var plusX, plusBottom float64
	if body.IsMoving() {
		plusX = velocity.X
	}
	if body.IsFalling() {
		plusBottom = velocity.Y
	}
	plusLeftCorrected := plusX + l.correction.CorrectionLeft
	plusRightCorrected := plusX + l.correction.CorrectionRight
	plusBottomCorrected := plusBottom + l.correction.CorrectionBottom
	cb := l.correction.CorrectionBottom

	rect := body.InnerRect()
	playerLeft := rect.Left() - plusX
	playerRight := rect.Right() + plusX
	playerTop := rect.Top()
	playerBottom := rect.Bottom() + plusBottom

	info := NoCollision()
	for li, line := range l.lines {
		for si, seg := range line.segments {
			if !seg.inViewport(offset, l.screen) {
				continue
			}

			if icon, ok := seg.PowerRect(offset); ok && rect.Intersects(icon) {
				info.LineIndex, info.SegmentIndex = li, si
				info.CollidesClearLine = seg.power == PowerClearLine
				info.CollidesClearAll = seg.power == PowerClearAll
				return info
			}

			next := seg.NextStart(dt).Sub(offset)
			segLeft := next.X
			segRight := next.X + seg.width
			segTop := next.Y
			segBottom := next.Y + seg.shape.height

			insideX := playerRight >= segLeft && playerLeft <= segRight
			insideY := playerBottom >= segTop-cb && playerTop <= segBottom+cb
			if !insideX || !insideY {
				continue
			}

			info.LineIndex, info.SegmentIndex = li, si
			if playerLeft <= segRight && playerLeft+plusLeftCorrected >= segRight && !body.IsGoingRight() {
				info.CollidesLeft = true
			}
			if playerRight >= segLeft && playerRight-plusRightCorrected <= segLeft && !body.IsGoingLeft() {
				info.CollidesRight = true
			}
			if playerBottom >= segTop-cb && playerBottom-plusBottomCorrected <= segTop+cb {
				info.CollidesBottom = true
				info.SegmentTopY = seg.start.Y - offset.Y
				if line.moving {
					info.StandsOnMovingSegment = true
					info.SegmentSpeed = seg.Speed()
				}
			}
			return info
		}
	}
	return info
}
