// Package audio plays a short blip for every contact reported by a world.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(48000)

	// speeds above this are played at full volume
	loudSpeed = 10.0
)

// Player mixes contact blips into the speaker
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	frequency   float64
	duration    time.Duration
	initialized bool
}

func NewPlayer(frequency float64, duration time.Duration) *Player {
	return &Player{
		mixer:     &beep.Mixer{},
		frequency: frequency,
		duration:  duration,
	}
}

// Initialize opens the speaker. A Player that failed to initialize stays silent.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*50)); err != nil {
		return err
	}

	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

func (p *Player) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

// PlayContact queues a blip whose volume follows the approach speed of the contact
func (p *Player) PlayContact(speed float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	amplitude := 0.05 + 0.25*math.Min(math.Abs(speed)/loudSpeed, 1)
	streamer := beep.Take(sampleRate.N(p.duration), NewBlipGenerator(sampleRate, p.frequency, amplitude, p.duration))

	speaker.Lock()
	p.mixer.Add(streamer)
	speaker.Unlock()
}

// BlipGenerator is a sine tone with an exponential decay
type BlipGenerator struct {
	sr        beep.SampleRate
	pos       int
	frequency float64
	amplitude float64
	decay     float64
}

func NewBlipGenerator(sr beep.SampleRate, frequency, amplitude float64, duration time.Duration) *BlipGenerator {
	return &BlipGenerator{
		sr:        sr,
		frequency: frequency,
		amplitude: amplitude,
		// about -40dB at the end of the blip
		decay: 4.6 / duration.Seconds(),
	}
}

func (g *BlipGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		value := g.amplitude * math.Exp(-g.decay*t) * math.Sin(2*math.Pi*g.frequency*t)
		samples[i][0] = value
		samples[i][1] = value
		g.pos++
	}
	return len(samples), true
}

func (g *BlipGenerator) Err() error {
	return nil
}
