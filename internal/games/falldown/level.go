package falldown

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/falldown/internal/config"
	"github.com/vovakirdan/falldown/internal/core"
)

// Level owns the endless stream of lines. Lines are kept in generation order,
// which is also increasing y.
type Level struct {
	cfg        config.LevelConfig
	minX, maxX float64
	screen     core.Vec2
	correction config.CollisionConfig
	shape      *segmentShape
	rng        Random
	difficulty *config.DifficultyManager
	logger     *log.Logger

	lines     []*Line
	lastY     float64
	hasLastY  bool
	generated int
}

// NewLevel creates an empty level.
func NewLevel(cfg config.FalldownConfig, rng Random, logger *log.Logger) *Level {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Level{
		cfg:        cfg.Level,
		minX:       cfg.Level.MinX(cfg.Offset),
		maxX:       cfg.Level.MaxX(cfg.Offset),
		screen:     core.Vec2{X: cfg.Screen.Width, Y: cfg.Screen.Height},
		correction: cfg.Collision,
		shape:      newSegmentShape(cfg.Level),
		rng:        rng,
		logger:     logger,
	}
}

// SetDifficulty attaches a difficulty manager that scales generation with
// the number of generated lines. nil restores the base tuning.
func (l *Level) SetDifficulty(d *config.DifficultyManager) {
	l.difficulty = d
}

// Reset removes all lines and forgets the last y and the generated count.
func (l *Level) Reset() {
	l.lines = nil
	l.lastY = 0
	l.hasLastY = false
	l.generated = 0
}

// Lines returns the current lines in generation order. The slice must not be modified.
func (l *Level) Lines() []*Line { return l.lines }

// LastY returns the y of the most recently generated line, and false before
// the first line.
func (l *Level) LastY() (float64, bool) { return l.lastY, l.hasLastY }

// Generated returns the number of lines generated since the last Reset.
func (l *Level) Generated() int { return l.generated }

// GenerateNewLine appends one procedurally generated line below the last one
// and returns it.
func (l *Level) GenerateNewLine() *Line {
	l.generated++

	movingProbability := l.cfg.LineMovingProbability
	gapVertAddMax := l.cfg.GapVertAddMax
	if l.difficulty != nil {
		movingProbability = l.difficulty.MovingProbability(movingProbability, 0, l.generated)
		gapVertAddMax = l.difficulty.GapVertAddMax(gapVertAddMax, 0, l.generated)
	}

	moving := percent(l.rng, movingProbability)
	if !l.hasLastY {
		l.lastY = l.cfg.FirstLineY
		l.hasLastY = true
	} else {
		l.lastY += l.cfg.SegmentHeight + float64(l.cfg.GapVertMin+l.rng.IntRange(0, gapVertAddMax))
	}

	line := newLine(l.lastY, moving)
	prevX, prevWidth := l.minX, 0.0
	for n := 1; ; n++ {
		power := PowerNone
		if percent(l.rng, l.cfg.ClearLineProbability) {
			power = PowerClearLine
		} else if percent(l.rng, l.cfg.ClearAllProbability) {
			power = PowerClearAll
		}

		x := prevX + prevWidth + float64(l.cfg.GapMin+l.rng.IntRange(0, l.cfg.GapAddMax))
		width := float64(l.rng.IntRange(l.cfg.SegmentWidthMin, l.cfg.SegmentWidthMax))
		line.Add(newSegment(l.shape, core.Vec2{X: x, Y: l.lastY}, width, moving, power))
		prevX, prevWidth = x, width

		remaining := l.maxX - (x + width + float64(l.cfg.GapMin+l.cfg.GapAddMax))
		if n >= l.cfg.MaxIterations || remaining <= 0 {
			break
		}
	}

	l.lines = append(l.lines, line)
	l.logger.Debug("line generated", "n", l.generated, "y", line.y, "segments", line.Len(), "moving", moving)
	return line
}

// Clean drops every line above offsetY.
func (l *Level) Clean(offsetY float64) {
	kept := l.lines[:0]
	for _, line := range l.lines {
		if line.y >= offsetY {
			kept = append(kept, line)
		}
	}
	for i := len(kept); i < len(l.lines); i++ {
		l.lines[i] = nil
	}
	l.lines = kept
	l.logger.Debug("level cleaned", "offset_y", offsetY, "lines", len(l.lines))
}

// ClearLineSegment removes one segment. Out of range indices are ignored.
func (l *Level) ClearLineSegment(lineIndex, segmentIndex int) {
	if lineIndex < 0 || lineIndex >= len(l.lines) {
		return
	}
	l.lines[lineIndex].remove(segmentIndex)
}

// ClearAll removes every line.
func (l *Level) ClearAll() {
	l.lines = nil
}

// Advance moves oscillating segments and steps animations by one tick.
func (l *Level) Advance(dt float64) {
	for _, line := range l.lines {
		line.advance(dt)
	}
}
