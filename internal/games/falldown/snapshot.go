package falldown

import "math"

// Snapshot contains the observable simulation state for determinism checks.
// Uses primitive types only for stable serialization.
type Snapshot struct {
	Tick     uint64
	Score    int
	GameOver bool
	Paused   bool

	OffsetX float64
	OffsetY float64

	PlayerX      float64
	PlayerY      float64
	PlayerSpeedX float64
	PlayerSpeedY float64
	Falling      bool

	BarrierY       float64
	BarrierSpeed   float64
	BarrierStarted bool

	Generated int

	// Segments are flattened, each as 4 values: x, y, width, speed.
	SegmentCount int
	SegmentData  []float64
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	var data []float64
	for _, line := range g.level.Lines() {
		for _, seg := range line.Segments() {
			data = append(data, seg.start.X, seg.start.Y, seg.width, seg.speed)
		}
	}

	rect := g.player.Rect()
	speed := g.player.Speed()
	offset := g.camera.Offset()

	return Snapshot{
		Tick:     uint64(g.tick), //#nosec G115 -- tick count is always positive
		Score:    g.score.Value(),
		GameOver: g.camera.GameOver(),
		Paused:   g.paused,

		OffsetX: offset.X,
		OffsetY: offset.Y,

		PlayerX:      rect.X,
		PlayerY:      rect.Y,
		PlayerSpeedX: speed.X,
		PlayerSpeedY: speed.Y,
		Falling:      g.player.IsFalling(),

		BarrierY:       g.barrier.Rect().Y,
		BarrierSpeed:   g.barrier.Speed(),
		BarrierStarted: g.barrier.Started(),

		Generated: g.level.Generated(),

		SegmentCount: len(data) / 4,
		SegmentData:  data,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Score)        //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Generated)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.SegmentCount) //#nosec G115 -- hash computation
	h = h*31 + boolBits(snap.GameOver)
	h = h*31 + boolBits(snap.Paused)
	h = h*31 + boolBits(snap.Falling)
	h = h*31 + boolBits(snap.BarrierStarted)

	for _, v := range []float64{
		snap.OffsetX, snap.OffsetY,
		snap.PlayerX, snap.PlayerY,
		snap.PlayerSpeedX, snap.PlayerSpeedY,
		snap.BarrierY, snap.BarrierSpeed,
	} {
		h = h*31 + math.Float64bits(v)
	}

	for _, v := range snap.SegmentData {
		h = h*31 + math.Float64bits(v)
	}

	return h
}

func boolBits(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
