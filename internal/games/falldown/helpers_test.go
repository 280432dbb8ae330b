package falldown

import (
	"github.com/vovakirdan/falldown/internal/config"
	"github.com/vovakirdan/falldown/internal/core"
)

const testDT = 0.016

type audioEvent struct {
	op     string
	key    string
	volume float64
	loops  int
}

// audioRecorder is an AudioSink that remembers every call.
type audioRecorder struct {
	events []audioEvent
}

func (a *audioRecorder) Play(key string, volume float64, loops int) {
	a.events = append(a.events, audioEvent{op: "play", key: key, volume: volume, loops: loops})
}

func (a *audioRecorder) Stop(key string) {
	a.events = append(a.events, audioEvent{op: "stop", key: key})
}

func (a *audioRecorder) SetMusicVolume(volume float64) {
	a.events = append(a.events, audioEvent{op: "music", volume: volume})
}

func (a *audioRecorder) count(op, key string) int {
	n := 0
	for _, e := range a.events {
		if e.op == op && e.key == key {
			n++
		}
	}
	return n
}

func (a *audioRecorder) musicVolumes() []float64 {
	var out []float64
	for _, e := range a.events {
		if e.op == "music" {
			out = append(out, e.volume)
		}
	}
	return out
}

// fixedRandom returns the lower bound for every integer draw and replays
// floats in order, then repeats the last one.
type fixedRandom struct {
	floats []float64
	next   int
}

func (r *fixedRandom) IntRange(min, _ int) int { return min }

func (r *fixedRandom) FloatRange(min, max float64) float64 {
	if len(r.floats) == 0 {
		return min
	}
	v := r.floats[len(r.floats)-1]
	if r.next < len(r.floats) {
		v = r.floats[r.next]
		r.next++
	}
	return v
}

// maxRandom returns the upper bound for every draw.
type maxRandom struct{}

func (maxRandom) IntRange(_, max int) int           { return max }
func (maxRandom) FloatRange(_, max float64) float64 { return max }

// testCharacter is a plain 40x40 character with a 3x4 collision inset.
func testCharacter() config.Character {
	return config.Character{
		Name:                  "Test",
		Size:                  config.Pair{40, 40},
		Inner:                 config.Pair{3, 4},
		SpeedStart:            config.Pair{0, 80},
		SpeedMax:              config.Pair{550, 700},
		SpeedIncrease:         config.Pair{20, 5},
		SpeedDecrease:         25,
		FallingFactorIncrease: 0.8,
	}
}

// emptyLevel returns a level that will not generate lines on its own during
// a test: its last line is far below any offset the test reaches.
func emptyLevel(cfg config.FalldownConfig) *Level {
	l := NewLevel(cfg, &fixedRandom{}, nil)
	l.lastY = 1e9
	l.hasLastY = true
	return l
}

// addSegment places a static segment as its own line.
func addSegment(l *Level, x, y, width float64, power Power) *Segment {
	line := newLine(y, false)
	seg := newSegment(l.shape, core.Vec2{X: x, Y: y}, width, false, power)
	line.Add(seg)
	l.lines = append(l.lines, line)
	return seg
}
