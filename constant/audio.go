package constant

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond
)

// Sound shapes
const (
	ThrowSoundDuration   = 180 * time.Millisecond
	ThrowClickCount      = 6
	HoldSoundDuration    = 40 * time.Millisecond
	HoldSoundFrequency   = 880
	ReleaseSoundDuration = 40 * time.Millisecond
	ReleaseSoundFreq     = 660
	DropSoundDuration    = 60 * time.Millisecond
	DropSoundFrequency   = 180

	// SoundVolume is the beep effects.Volume exponent (base 2)
	SoundVolume = -1.5
)
