package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/falldown/internal/core"
)

type wave int

const (
	waveSine wave = iota
	waveSquare
	waveSaw
	waveNoise
)

// tone is a single oscillator with a linear frequency sweep and a linear
// attack/release envelope.
type tone struct {
	rate     beep.SampleRate
	wave     wave
	from, to float64
	amp      float64

	total   int
	attack  int
	release int
	pos     int
	phase   float64
	seed    uint32
}

func newTone(rate beep.SampleRate, w wave, from, to float64, d time.Duration, amp float64) *tone {
	total := rate.N(d)
	return &tone{
		rate:    rate,
		wave:    w,
		from:    from,
		to:      to,
		amp:     amp,
		total:   total,
		attack:  min(rate.N(5*time.Millisecond), total/4),
		release: total / 3,
		seed:    0x9e3779b9,
	}
}

// flat removes the envelope so the tone can be tiled without clicks between
// repetitions of the same period.
func (t *tone) flat() *tone {
	t.attack, t.release = 0, 0
	return t
}

func (t *tone) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if t.pos >= t.total {
			return i, i > 0
		}
		progress := float64(t.pos) / float64(t.total)
		freq := t.from + (t.to-t.from)*progress

		var v float64
		switch t.wave {
		case waveSine:
			v = math.Sin(2 * math.Pi * t.phase)
		case waveSquare:
			v = 1
			if t.phase >= 0.5 {
				v = -1
			}
		case waveSaw:
			v = 2 * (t.phase - 0.5)
		case waveNoise:
			t.seed ^= t.seed << 13
			t.seed ^= t.seed >> 17
			t.seed ^= t.seed << 5
			v = float64(t.seed)/float64(math.MaxUint32)*2 - 1
		}
		v *= t.amp * t.envelope()

		samples[i][0] = v
		samples[i][1] = v

		t.phase += freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) envelope() float64 {
	if t.attack > 0 && t.pos < t.attack {
		return float64(t.pos) / float64(t.attack)
	}
	if remaining := t.total - t.pos; t.release > 0 && remaining < t.release {
		return float64(remaining) / float64(t.release)
	}
	return 1
}

func (t *tone) Err() error { return nil }

// repeat plays freshly built copies of a sound back to back. plays < 0
// repeats until the stream is dropped.
type repeat struct {
	build func() beep.Streamer
	cur   beep.Streamer
	plays int
	fresh bool
}

func newRepeat(build func() beep.Streamer, loops int) *repeat {
	plays := loops + 1
	if loops < 0 {
		plays = -1
	}
	return &repeat{build: build, plays: plays}
}

func (r *repeat) Stream(samples [][2]float64) (int, bool) {
	filled := 0
	for filled < len(samples) {
		if r.cur == nil {
			if r.plays == 0 {
				break
			}
			if r.plays > 0 {
				r.plays--
			}
			r.cur = r.build()
			r.fresh = true
		}
		n, ok := r.cur.Stream(samples[filled:])
		filled += n
		if ok && n > 0 {
			r.fresh = false
			continue
		}
		// An empty sound would spin forever.
		if r.fresh && n == 0 {
			r.plays = 0
		}
		r.cur = nil
	}
	return filled, filled > 0
}

func (r *repeat) Err() error { return nil }

// synth builds one playback of a sound at the given rate.
type synth func(rate beep.SampleRate) beep.Streamer

var catalog = map[string]synth{
	core.SoundGameStart: gameStartSound,
	core.SoundBump:      bumpSound,
	core.SoundClearLine: clearLineSound,
	core.SoundClearAll:  clearAllSound,
	core.SoundLaser:     laserSound,
	core.SoundGameOver:  gameOverSound,
	core.SoundMenuBack:  menuBackSound,
	core.SoundMusic:     musicSound,
}

// Known reports whether key names a sound the sink can play.
func Known(key string) bool {
	_, ok := catalog[key]
	return ok
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

func note(rate beep.SampleRate, w wave, freq float64, d int, amp float64) *tone {
	return newTone(rate, w, freq, freq, ms(d), amp)
}

func gameStartSound(rate beep.SampleRate) beep.Streamer {
	return beep.Seq(
		note(rate, waveSquare, 523.25, 90, 0.2),
		note(rate, waveSquare, 659.25, 90, 0.2),
		note(rate, waveSquare, 783.99, 180, 0.2),
	)
}

func bumpSound(rate beep.SampleRate) beep.Streamer {
	return newTone(rate, waveSine, 180, 60, ms(70), 0.5)
}

func clearLineSound(rate beep.SampleRate) beep.Streamer {
	return beep.Mix(
		note(rate, waveSine, 880, 180, 0.35),
		note(rate, waveSine, 1760, 180, 0.15),
	)
}

func clearAllSound(rate beep.SampleRate) beep.Streamer {
	return beep.Seq(
		newTone(rate, waveSquare, 300, 1200, ms(250), 0.15),
		beep.Mix(
			note(rate, waveSine, 1318.5, 220, 0.3),
			note(rate, waveSine, 659.25, 220, 0.2),
		),
	)
}

// laserSound is one 500ms period of the barrier hum.
func laserSound(rate beep.SampleRate) beep.Streamer {
	return beep.Mix(
		note(rate, waveSaw, 110, 500, 0.1).flat(),
		note(rate, waveSine, 220, 500, 0.05).flat(),
		note(rate, waveNoise, 0, 500, 0.02).flat(),
	)
}

func gameOverSound(rate beep.SampleRate) beep.Streamer {
	return beep.Seq(
		note(rate, waveSaw, 392, 200, 0.25),
		note(rate, waveSaw, 329.63, 200, 0.25),
		newTone(rate, waveSaw, 261.63, 130, ms(450), 0.25),
	)
}

func menuBackSound(rate beep.SampleRate) beep.Streamer {
	return newTone(rate, waveSine, 600, 300, ms(60), 0.3)
}

var musicBass = []float64{110, 110, 130.81, 110, 98, 98, 146.83, 130.81}

// musicSound is one bar of the background loop: a kick on every other beat
// over a square bass line.
func musicSound(rate beep.SampleRate) beep.Streamer {
	beats := make([]beep.Streamer, 0, len(musicBass))
	for i, freq := range musicBass {
		parts := []beep.Streamer{note(rate, waveSquare, freq, 250, 0.08)}
		if i%2 == 0 {
			parts = append(parts, newTone(rate, waveSine, 150, 45, ms(120), 0.4))
		}
		beats = append(beats, beep.Mix(parts...))
	}
	return beep.Seq(beats...)
}
