// Package audio plays the game's synthesized sounds through beep.
package audio

import (
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/falldown/internal/core"
)

// DefaultSampleRate is used when Options.SampleRate is not set.
const DefaultSampleRate = 44100

// Options configures a Sink.
type Options struct {
	SampleRate int
	Logger     *log.Logger
}

// voice is one playing sound inside the mixer.
type voice struct {
	key   string
	vol   *effects.Volume
	level float64
	done  bool
}

func (v *voice) Stream(samples [][2]float64) (int, bool) {
	if v.done {
		return 0, false
	}
	n, ok := v.vol.Stream(samples)
	if !ok {
		v.done = true
	}
	return n, ok
}

func (v *voice) Err() error { return v.vol.Err() }

func (v *voice) setLevel(level float64) {
	v.level = level
	if level <= 0 {
		v.vol.Silent = true
		v.vol.Volume = 0
		return
	}
	v.vol.Silent = false
	v.vol.Volume = math.Log2(level)
}

// Sink implements core.AudioSink on a beep mixer. Calls never block on the
// output device: sounds are generated lazily while the speaker drains the
// mixer.
type Sink struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	mixer       *beep.Mixer
	voices      []*voice
	musicVolume float64
	logger      *log.Logger
	speaker     bool
}

var _ core.AudioSink = (*Sink)(nil)

// New creates a sink that is not attached to any output. Stream it yourself
// or call Open instead.
func New(opts Options) *Sink {
	rate := opts.SampleRate
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Sink{
		rate:        beep.SampleRate(rate),
		mixer:       &beep.Mixer{},
		musicVolume: 1,
		logger:      logger.WithPrefix("audio"),
	}
}

// Nop returns a sink that discards every trigger, used when sound is off or
// no output device is available.
func Nop() core.AudioSink {
	return core.NopAudio{}
}

// Open creates a sink and starts playing it on the default output device.
func Open(opts Options) (*Sink, error) {
	s := New(opts)
	if err := speaker.Init(s.rate, s.rate.N(50*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("audio: init speaker: %w", err)
	}
	speaker.Play(s)
	s.speaker = true
	s.logger.Debug("speaker started", "rate", int(s.rate))
	return s, nil
}

// Close silences everything and releases the output device.
func (s *Sink) Close() {
	s.mu.Lock()
	for _, v := range s.voices {
		v.done = true
	}
	s.voices = nil
	s.mixer.Clear()
	attached := s.speaker
	s.speaker = false
	s.mu.Unlock()

	if attached {
		speaker.Close()
	}
}

// Stream mixes every playing sound into samples. It never ends.
func (s *Sink) Stream(samples [][2]float64) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mixer.Stream(samples)
}

func (s *Sink) Err() error { return nil }

// Play starts the sound registered under key. Unknown keys are ignored.
func (s *Sink) Play(key string, volume float64, loops int) {
	build, ok := catalog[key]
	if !ok {
		s.logger.Debug("unknown sound", "key", key)
		return
	}

	rate := s.rate
	stream := beep.Streamer(newRepeat(func() beep.Streamer { return build(rate) }, loops))

	s.mu.Lock()
	defer s.mu.Unlock()

	v := &voice{key: key, vol: &effects.Volume{Streamer: stream, Base: 2}}
	if key == core.SoundMusic {
		s.musicVolume = volume
	}
	v.setLevel(volume)

	s.prune()
	s.voices = append(s.voices, v)
	s.mixer.Add(v)
}

// Stop silences every playing instance of key.
func (s *Sink) Stop(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.voices {
		if v.key == key {
			v.done = true
		}
	}
	s.prune()
}

// SetMusicVolume changes the volume of the playing background music.
func (s *Sink) SetMusicVolume(volume float64) {
	volume = core.ClampF(volume, 0, 1)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.musicVolume = volume
	for _, v := range s.voices {
		if v.key == core.SoundMusic {
			v.setLevel(volume)
		}
	}
}

// MusicVolume returns the current music volume.
func (s *Sink) MusicVolume() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.musicVolume
}

// Playing returns how many instances of key are still sounding.
func (s *Sink) Playing(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, v := range s.voices {
		if v.key == key && !v.done {
			n++
		}
	}
	return n
}

// prune drops finished voices. Callers hold s.mu.
func (s *Sink) prune() {
	live := s.voices[:0]
	for _, v := range s.voices {
		if !v.done {
			live = append(live, v)
		}
	}
	clear(s.voices[len(live):])
	s.voices = live
}
