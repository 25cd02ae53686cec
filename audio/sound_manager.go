// Package audio plays the tray's sound effects through the speaker.
// Every operation is safe without an audio device; sounds are dropped.
package audio

import (
	"io"
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/dicetray/constant"
	"github.com/lixenwraith/dicetray/event"
)

const sampleRate = beep.SampleRate(constant.AudioSampleRate)

// SoundManager manages all tray audio
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
	logger      *log.Logger

	// A throw fires one event per die, the rattle plays once per burst
	lastThrow time.Time
	now       func() time.Time
	seed      uint64

	subs []event.Subscription
}

// NewSoundManager creates a new sound manager
func NewSoundManager(logger *log.Logger) *SoundManager {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &SoundManager{
		mixer:  &beep.Mixer{},
		logger: logger,
		now:    time.Now,
		seed:   1,
	}
}

// Initialize sets up the audio system
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	err := speaker.Init(sampleRate, sampleRate.N(constant.AudioBufferDuration))
	if err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds and detaches from any bus
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	for _, s := range sm.subs {
		s.Remove()
	}
	sm.subs = nil

	if !sm.initialized {
		return
	}
	speaker.Clear()
	sm.mixer.Clear()
	sm.initialized = false
}

// SetMuted silences or restores playback
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muted = muted
}

// ToggleMute flips the mute state and returns the new one
func (sm *SoundManager) ToggleMute() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muted = !sm.muted
	return sm.muted
}

// Attach plays sounds for tray notifications on bus
// Must be called from the goroutine that owns bus
func (sm *SoundManager) Attach(bus *event.Bus) {
	subs := bus.SubscribeAll(sm.HandleEvent, event.Thrown, event.Held, event.Released, event.Dropped)
	sm.mu.Lock()
	sm.subs = append(sm.subs, subs...)
	sm.mu.Unlock()
}

// HandleEvent maps a tray notification to a sound
func (sm *SoundManager) HandleEvent(ev event.Event) {
	switch ev.Type {
	case event.Thrown:
		sm.PlayThrow()
	case event.Held:
		sm.PlayHold()
	case event.Released:
		sm.PlayRelease()
	case event.Dropped:
		if p, ok := ev.Payload.(*event.DropPayload); ok && p.From == p.To {
			return
		}
		sm.PlayDrop()
	}
}

// PlayThrow plays the dice rattle, at most once per throw duration
func (sm *SoundManager) PlayThrow() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	now := sm.now()
	if !sm.lastThrow.IsZero() && now.Sub(sm.lastThrow) < constant.ThrowSoundDuration {
		return
	}
	sm.lastThrow = now

	sm.seed++
	sm.play(rattle(sampleRate.N(constant.ThrowSoundDuration), constant.ThrowClickCount, sm.seed))
}

// PlayHold plays a short high blip
func (sm *SoundManager) PlayHold() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.playTone(constant.HoldSoundFrequency, constant.HoldSoundDuration)
}

// PlayRelease plays a short lower blip
func (sm *SoundManager) PlayRelease() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.playTone(constant.ReleaseSoundFreq, constant.ReleaseSoundDuration)
}

// PlayDrop plays a thud
func (sm *SoundManager) PlayDrop() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.play(NewThudGenerator(sampleRate, constant.DropSoundFrequency, sampleRate.N(constant.DropSoundDuration)))
}

// playTone requires sm.mu held
func (sm *SoundManager) playTone(freq float64, d time.Duration) {
	if !sm.initialized || sm.muted {
		return
	}
	tone, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		sm.logger.Printf("audio: tone %.0fHz: %v", freq, err)
		return
	}
	sm.play(beep.Take(sampleRate.N(d), tone))
}

// play requires sm.mu held
func (sm *SoundManager) play(s beep.Streamer) {
	if !sm.initialized || sm.muted {
		return
	}
	vol := &effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   constant.SoundVolume,
	}
	speaker.Lock()
	sm.mixer.Add(vol)
	speaker.Unlock()
}
