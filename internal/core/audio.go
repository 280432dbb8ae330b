package core

// Sound keys triggered by the game.
const (
	SoundGameStart = "game.start"
	SoundBump      = "bump"
	SoundClearLine = "clear.line"
	SoundClearAll  = "clear.all"
	SoundLaser     = "laser"
	SoundGameOver  = "game.over"
	SoundMenuBack  = "menu.back"
	SoundMusic     = "music"
)

// LoopForever as a loop count repeats a sound until it is stopped.
const LoopForever = -1

// AudioSink receives fire-and-forget sound triggers. Implementations must not
// block the caller.
type AudioSink interface {
	// Play starts the sound registered under key. loops is the number of
	// extra repetitions, or LoopForever.
	Play(key string, volume float64, loops int)
	// Stop silences every playing instance of key.
	Stop(key string)
	// SetMusicVolume sets the background music volume (0.0-1.0).
	SetMusicVolume(volume float64)
}

// NopAudio discards all sound triggers.
type NopAudio struct{}

func (NopAudio) Play(string, float64, int) {}
func (NopAudio) Stop(string)               {}
func (NopAudio) SetMusicVolume(float64)    {}
