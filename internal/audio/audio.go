//go:build !test

package audio

import (
	"bytes"
	"math"
	"math/rand"
	"sync"

	"github.com/ebitengine/oto/v3"
)

const sampleRate = 44100

var (
	ctx   *oto.Context
	once  sync.Once
	mu    sync.Mutex
	muted bool
)

func initContext() {
	var (
		ready chan struct{}
		err   error
	)
	ctx, ready, err = oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		// leave ctx nil; Play will no-op
		return
	}
	<-ready
}

func SetMuted(m bool) {
	mu.Lock()
	muted = m
	mu.Unlock()
}

func Toggle() {
	mu.Lock()
	muted = !muted
	mu.Unlock()
}

// Play synthesizes and starts the named effect. Unknown ids and a failed
// audio context are silent no-ops.
func Play(id string) {
	once.Do(initContext)
	mu.Lock()
	off := muted
	mu.Unlock()
	if ctx == nil || off {
		return
	}
	buf := render(id)
	if buf == nil {
		return
	}
	p := ctx.NewPlayer(bytes.NewReader(buf))
	p.Play()
}

// render produces 16-bit mono PCM for one effect.
func render(id string) []byte {
	switch id {
	case "clear":
		// rising sweep
		return tone(0.25, func(t, dur float64) float64 {
			f := 440 + 660*t/dur
			return math.Sin(2*math.Pi*f*t) * (1 - t/dur)
		})
	case "over":
		// falling sweep
		return tone(0.6, func(t, dur float64) float64 {
			f := 520 - 360*t/dur
			return math.Sin(2*math.Pi*f*t) * (1 - t/dur)
		})
	case "drop":
		// white-noise thud with an exponential decay envelope
		return tone(0.12, func(t, dur float64) float64 {
			return (rand.Float64()*2 - 1) * math.Exp(-18*t)
		})
	default:
		return nil
	}
}

func tone(dur float64, f func(t, dur float64) float64) []byte {
	n := int(dur * sampleRate)
	buf := make([]byte, 2*n)
	for i := 0; i < n; i++ {
		t := float64(i) / sampleRate
		v := f(t, dur)
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		s := int16(v * 0.4 * math.MaxInt16)
		buf[2*i] = byte(s)
		buf[2*i+1] = byte(s >> 8)
	}
	return buf
}
