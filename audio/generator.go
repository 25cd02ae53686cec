package audio

import (
	"math"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/dicetray/vmath"
)

// ClickGenerator produces a short burst of decaying noise, one die hitting the tray
type ClickGenerator struct {
	rng     *vmath.FastRand
	pos     int
	samples int
}

// NewClickGenerator creates a click lasting samples frames
func NewClickGenerator(samples int, seed uint64) *ClickGenerator {
	return &ClickGenerator{rng: vmath.NewFastRand(seed), samples: samples}
}

func (g *ClickGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if g.pos >= g.samples {
			return i, i > 0
		}
		env := math.Exp(-6 * float64(g.pos) / float64(g.samples))
		noise := float64(g.rng.Intn(2001)-1000) / 1000
		v := 0.4 * env * noise
		samples[i][0], samples[i][1] = v, v
		g.pos++
	}
	return len(samples), true
}

func (g *ClickGenerator) Err() error { return nil }

// ThudGenerator produces a low sine with a fast decay, a die landing
type ThudGenerator struct {
	sr      beep.SampleRate
	freq    float64
	pos     int
	samples int
}

// NewThudGenerator creates a thud at freq lasting samples frames
func NewThudGenerator(sr beep.SampleRate, freq float64, samples int) *ThudGenerator {
	return &ThudGenerator{sr: sr, freq: freq, samples: samples}
}

func (g *ThudGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if g.pos >= g.samples {
			return i, i > 0
		}
		t := float64(g.pos) / float64(g.sr)
		env := math.Exp(-4 * float64(g.pos) / float64(g.samples))
		v := 0.5 * env * math.Sin(2*math.Pi*g.freq*t)
		samples[i][0], samples[i][1] = v, v
		g.pos++
	}
	return len(samples), true
}

func (g *ThudGenerator) Err() error { return nil }

// rattle strings count clicks over total frames with silent gaps between them
func rattle(total, count int, seed uint64) beep.Streamer {
	if count < 1 {
		count = 1
	}
	slot := total / count
	click := slot / 2
	parts := make([]beep.Streamer, 0, 2*count)
	for i := 0; i < count; i++ {
		parts = append(parts, NewClickGenerator(click, seed+uint64(i)), beep.Silence(slot-click))
	}
	return beep.Seq(parts...)
}
