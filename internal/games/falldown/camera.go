package falldown

import (
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/falldown/internal/config"
	"github.com/vovakirdan/falldown/internal/core"
)

// ScoreCounter receives score increments from the camera.
type ScoreCounter interface {
	Add(points int)
}

// Score is a plain ScoreCounter.
type Score struct {
	value int
}

// Add increments the score.
func (s *Score) Add(points int) { s.value += points }

// Value returns the current score.
func (s *Score) Value() int { return s.value }

// Reset sets the score back to zero.
func (s *Score) Reset() { s.value = 0 }

// Game over reasons.
const (
	ReasonNone    = ""
	ReasonBarrier = "barrier"
	ReasonCeiling = "ceiling"
)

// CameraOptions holds the optional collaborators of a Camera. Without a
// Player the camera only keeps the level populated, for decorative runs.
type CameraOptions struct {
	Barrier *Barrier
	Player  *Player
	Score   ScoreCounter
	Audio   core.AudioSink
	Logger  *log.Logger

	// ShowIntro displays the intro text for level.intro_ticks ticks.
	ShowIntro bool
}

// Camera runs the simulation tick: it scrolls the world around the player,
// resolves collisions against the level and the barrier, and detects game over.
type Camera struct {
	cfg     config.FalldownConfig
	level   *Level
	barrier *Barrier
	player  *Player
	score   ScoreCounter
	audio   core.AudioSink
	logger  *log.Logger

	offset     core.Vec2
	cameraRect core.RectF

	showIntro  bool
	introTicks int
	sinceClean int

	touchingLeft  bool
	touchingRight bool
	bumpArmed     bool

	musicVolume float64
	velocity    core.Vec2
	collision   CollisionInfo

	gameOver bool
	reason   string
}

// NewCamera creates a camera over level.
func NewCamera(cfg config.FalldownConfig, level *Level, opts CameraOptions) *Camera {
	if opts.Audio == nil {
		opts.Audio = core.NopAudio{}
	}
	if opts.Score == nil {
		opts.Score = &Score{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	cam := cfg.Camera
	return &Camera{
		cfg:     cfg,
		level:   level,
		barrier: opts.Barrier,
		player:  opts.Player,
		score:   opts.Score,
		audio:   opts.Audio,
		logger:  opts.Logger,
		cameraRect: core.NewRectF(
			cam.BorderLeft,
			cam.BorderTop,
			cfg.Screen.Width-cam.BorderLeft-cam.BorderRight,
			cfg.Screen.Height-cam.BorderTop-cam.BorderBottom,
		),
		showIntro:  opts.ShowIntro,
		introTicks: cfg.Level.IntroTicks,
		bumpArmed:  true,
		collision:  NoCollision(),
	}
}

// Offset returns the scroll offset.
func (c *Camera) Offset() core.Vec2 { return c.offset }

// SetOffset moves the camera. Used to place a run mid-shaft.
func (c *Camera) SetOffset(o core.Vec2) { c.offset = o }

// CameraRect returns the region the player moves in freely, in screen space.
func (c *Camera) CameraRect() core.RectF { return c.cameraRect }

// Level returns the level the camera drives.
func (c *Camera) Level() *Level { return c.level }

// Player returns the attached player, or nil.
func (c *Camera) Player() *Player { return c.player }

// Barrier returns the attached barrier, or nil.
func (c *Camera) Barrier() *Barrier { return c.barrier }

// ShowIntro reports whether the intro text is still up.
func (c *Camera) ShowIntro() bool { return c.showIntro }

// GameOver reports whether the run has ended.
func (c *Camera) GameOver() bool { return c.gameOver }

// GameOverReason returns why the run ended, or ReasonNone.
func (c *Camera) GameOverReason() string { return c.reason }

// LastCollision returns the collision result of the last tick.
func (c *Camera) LastCollision() CollisionInfo { return c.collision }

// Pause pauses the barrier.
func (c *Camera) Pause() {
	if c.barrier != nil {
		c.barrier.Pause()
	}
}

// Unpause resumes the barrier.
func (c *Camera) Unpause() {
	if c.barrier != nil {
		c.barrier.Unpause()
	}
}

// Stop silences the barrier for good.
func (c *Camera) Stop() {
	if c.barrier != nil {
		c.barrier.Stop()
	}
}

// Loop advances the simulation by dt seconds with the given held keys.
func (c *Camera) Loop(dt float64, keys core.Keys) {
	c.level.Advance(dt)
	if c.gameOver {
		return
	}

	if c.showIntro {
		c.introTicks--
		if c.introTicks <= 0 {
			c.showIntro = false
		}
	}

	c.populateLevel()

	if c.player == nil {
		return
	}
	p := c.player

	p.SetKey(keys.Current())
	c.velocity = p.Velocity(dt)

	info := c.level.CollidesWith(p, dt, c.velocity, c.offset)
	c.collision = info

	if info.CollidesClearLine {
		c.level.ClearLineSegment(info.LineIndex, info.SegmentIndex)
		c.score.Add(c.cfg.Score.ClearLine)
		c.audio.Play(core.SoundClearLine, c.cfg.Audio.EffectsVolume, 0)
		c.logger.Debug("clear-line collected", "line", info.LineIndex, "segment", info.SegmentIndex)
	}
	if info.CollidesClearAll {
		c.level.ClearAll()
		c.sinceClean = 0
		c.score.Add(c.cfg.Score.ClearAll)
		c.audio.Play(core.SoundClearAll, c.cfg.Audio.EffectsVolume, 0)
		c.logger.Debug("clear-all collected")
	}
	if info.PowerCollected() {
		if c.barrier != nil && c.barrier.Started() {
			c.barrier.IncreaseSpeed()
		}
		return
	}

	if info.CollidesLeft && !c.touchingLeft {
		c.logger.Debug("touching segment", "side", "left")
	}
	if info.CollidesRight && !c.touchingRight {
		c.logger.Debug("touching segment", "side", "right")
	}
	c.touchingLeft, c.touchingRight = info.CollidesLeft, info.CollidesRight

	c.rideSegment(dt, keys, info)
	c.moveHorizontally(keys, info)
	correctedTop := c.correctStuck(keys, info)

	if !correctedTop && c.velocity.Y >= 0 {
		c.moveBottom(c.velocity.Y, info)
	}

	if c.barrier != nil {
		c.barrier.Advance(dt)
		c.barrier.advanceFrame()
	}
	p.advanceFrame()

	c.checkGameOver()
}

// populateLevel generates a line when the level runs short below the
// viewport and prunes old lines every few generated lines.
func (c *Camera) populateLevel() {
	lastY, ok := c.level.LastY()
	if !ok || lastY < c.offset.Y+c.cfg.Screen.Height+c.cfg.Level.SegmentHeight {
		c.level.GenerateNewLine()
		c.sinceClean++
		if c.level.Generated() > c.cfg.Barrier.StartAfterLines {
			if c.barrier != nil && c.cfg.Barrier.Enabled {
				c.barrier.Start()
				c.barrier.IncreaseSpeed()
			}
			// Decorative runs have nobody to score for.
			if c.player != nil {
				c.score.Add(c.cfg.Score.PerLine)
			}
		}
	}
	if c.sinceClean >= c.cfg.Level.CleanEvery {
		c.level.Clean(c.offset.Y)
		c.sinceClean = 0
	}
}

// rideSegment carries the player along with a moving segment, damping the
// player's own movement against the segment's direction.
func (c *Camera) rideSegment(dt float64, keys core.Keys, info CollisionInfo) {
	if !info.StandsOnMovingSegment {
		return
	}
	speed := info.SegmentSpeed
	if (speed < 0 && keys.Right) || (speed > 0 && keys.Left) {
		if f := c.cfg.Level.MovingDecreaseFactor; f > 0 {
			c.velocity.X /= f
		}
	}
	correction := c.cfg.Player.MovingSegmentCorrection
	if speed < 0 && c.player.CanGoLeft() {
		c.moveLeft((math.Abs(speed) - correction) * dt)
	} else if speed > 0 && c.player.CanGoRight() {
		c.moveRight((speed + correction) * dt)
	}
}

// moveHorizontally slides in the committed direction, or follows the keys,
// unless blocked on that side.
func (c *Camera) moveHorizontally(keys core.Keys, info CollisionInfo) {
	p := c.player
	if p.IsSliding() {
		if p.IsGoingLeft() && !info.CollidesLeft {
			c.moveLeft(c.velocity.X)
		} else if p.IsGoingRight() && !info.CollidesRight {
			c.moveRight(c.velocity.X)
		}
		return
	}
	if keys.Left && !info.CollidesLeft {
		c.moveLeft(c.velocity.X)
	} else if keys.Right && !info.CollidesRight {
		c.moveRight(c.velocity.X)
	}
}

// correctStuck handles a player wedged against a segment. Sunk below the
// surface while touching a side, the player drops through. Just at the edge
// while pushing into the side, the player is lifted and moved over it.
// It reports whether the vertical position was already corrected.
func (c *Camera) correctStuck(keys core.Keys, info CollisionInfo) bool {
	if !info.CollidesBottom {
		return false
	}
	p := c.player
	pushLeft := info.CollidesLeft && p.CanGoLeft() && keys.Left
	pushRight := info.CollidesRight && p.CanGoRight() && keys.Right
	rect := p.Rect()

	if rect.Y+c.velocity.Y > info.SegmentTopY-p.InnerRect().H {
		if info.CollidesLeft || info.CollidesRight {
			p.HalfSpeedX()
			c.moveBottomIgnoringCollision(c.velocity.Y)
			return true
		}
		return false
	}
	if rect.Bottom()+c.velocity.Y < info.SegmentTopY+c.cfg.Player.StuckThreshold && (pushLeft || pushRight) {
		c.moveTop(c.cfg.Player.StuckCorrection)
		if pushLeft {
			c.moveLeft(c.velocity.X)
		} else {
			c.moveRight(c.velocity.X)
		}
		return true
	}
	return false
}

func (c *Camera) moveLeft(v float64) {
	p := c.player
	p.rect.X -= v
	if p.rect.Left() < c.cameraRect.Left() {
		p.rect.X = c.cameraRect.Left()
		c.offset.X -= v
		if c.offset.X < c.cfg.Offset.MaxLeft {
			c.offset.X = c.cfg.Offset.MaxLeft
			p.ResetSpeedX()
		}
	}
}

func (c *Camera) moveRight(v float64) {
	p := c.player
	p.rect.X += v
	if p.rect.Right() > c.cameraRect.Right() {
		p.rect.X = c.cameraRect.Right() - p.rect.W
		c.offset.X += v
		if c.offset.X > c.cfg.Offset.MaxRight {
			c.offset.X = c.cfg.Offset.MaxRight
			p.ResetSpeedX()
		}
	}
}

func (c *Camera) moveTop(v float64) {
	p := c.player
	p.rect.Y -= v
	if p.rect.Top() < c.cameraRect.Top() {
		p.rect.Y = c.cameraRect.Top()
		c.offset.Y -= v
		if c.offset.Y < c.cfg.Offset.MaxUp {
			c.offset.Y = c.cfg.Offset.MaxUp
		}
	}
}

func (c *Camera) moveBottomIgnoringCollision(v float64) {
	p := c.player
	if p.rect.Bottom()+v <= c.cameraRect.Bottom() {
		p.rect.Y += v
	} else {
		p.rect.Y = c.cameraRect.Bottom() - p.rect.H
		c.offset.Y += v
	}
	p.falling = true
	c.bumpArmed = true
}

// moveBottom falls by v, landing on the contacted segment when the fall
// would reach its surface. Past the camera rect the world scrolls instead.
func (c *Camera) moveBottom(v float64, info CollisionInfo) {
	p := c.player
	next := p.rect.Bottom() + v
	top := info.SegmentTopY
	lands := info.CollidesBottom && top > 0 && next >= top-c.cfg.Collision.CorrectionBottom

	switch {
	case next <= c.cameraRect.Bottom() && lands:
		p.rect.Y = top - p.rect.H
	case next <= c.cameraRect.Bottom():
		p.rect.Y += v
	case lands:
		old := p.rect.Y
		p.rect.Y = top - p.rect.H
		c.offset.Y += math.Abs(v - math.Abs(p.rect.Y-old))
	default:
		p.rect.Y = c.cameraRect.Bottom() - p.rect.H
		c.offset.Y += v
	}

	if !lands {
		p.falling = true
		c.bumpArmed = true
		return
	}
	if c.bumpArmed {
		c.bumpArmed = false
		c.audio.Play(core.SoundBump, c.cfg.Audio.EffectsVolume, 0)
	}
	p.ResetSpeedY()
}

func (c *Camera) checkGameOver() {
	if c.offset.Y > c.cfg.Offset.Ceiling {
		c.endGame(ReasonCeiling)
		return
	}
	if c.barrier == nil || c.player == nil {
		return
	}

	if c.barrier.IsVisible(c.offset) {
		c.setMusicVolume(c.cfg.Audio.MusicVolumeBarrierVisible)
		if c.barrier.CollidesWith(c.player, c.offset) {
			c.audio.Play(core.SoundGameOver, c.cfg.Audio.EffectsVolume, 0)
			c.Stop()
			c.audio.SetMusicVolume(c.cfg.Audio.MusicVolume)
			c.endGame(ReasonBarrier)
			return
		}
	} else {
		c.setMusicVolume(c.cfg.Audio.MusicVolume)
	}
	c.barrier.UpdateSound(c.offset)
}

func (c *Camera) setMusicVolume(v float64) {
	if c.musicVolume != v {
		c.musicVolume = v
		c.audio.SetMusicVolume(v)
	}
}

func (c *Camera) endGame(reason string) {
	c.gameOver = true
	c.reason = reason
	c.logger.Info("game over", "reason", reason, "offset_y", c.offset.Y)
}
