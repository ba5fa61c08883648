package audio

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gen2brain/malgo"
)

// take accumulates 16-bit PCM from the capture callback up to a fixed size.
// Frames arriving after it is full are dropped.
type take struct {
	mu    sync.Mutex
	pcm   []byte
	limit int
	full  chan struct{}
}

func newTake(d time.Duration) *take {
	frames := int(d.Seconds() * SampleRate)
	limit := frames * ChannelCount * bitsPerSample / 8
	return &take{pcm: make([]byte, 0, limit), limit: limit, full: make(chan struct{})}
}

func (t *take) write(samples []byte) {
	t.mu.Lock()
	defer t.mu.Unlock()
	room := t.limit - len(t.pcm)
	if room <= 0 {
		return
	}
	if len(samples) >= room {
		t.pcm = append(t.pcm, samples[:room]...)
		close(t.full)
		return
	}
	t.pcm = append(t.pcm, samples...)
}

func (t *take) bytes() []byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pcm
}

// Record captures up to d of microphone audio from the default input device
// as 24kHz mono PCM. Cancelling ctx stops early and keeps what was captured.
func Record(ctx context.Context, d time.Duration) ([]byte, error) {
	mctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("init audio context: %w", err)
	}
	defer func() {
		_ = mctx.Uninit()
		mctx.Free()
	}()

	cfg := malgo.DefaultDeviceConfig(malgo.Capture)
	cfg.Capture.Format = malgo.FormatS16
	cfg.Capture.Channels = ChannelCount
	cfg.SampleRate = SampleRate

	t := newTake(d)
	device, err := malgo.InitDevice(mctx.Context, cfg, malgo.DeviceCallbacks{
		Data: func(_, input []byte, _ uint32) { t.write(input) },
	})
	if err != nil {
		return nil, fmt.Errorf("open input device: %w", err)
	}
	defer device.Uninit()

	if err := device.Start(); err != nil {
		return nil, fmt.Errorf("start capture: %w", err)
	}

	// The buffer usually fills first; the timer covers devices that stall.
	timer := time.NewTimer(d + time.Second)
	defer timer.Stop()
	select {
	case <-t.full:
	case <-timer.C:
	case <-ctx.Done():
	}
	_ = device.Stop()
	return t.bytes(), nil
}
