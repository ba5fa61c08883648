// Package platform picks the inference backend for the host.
package platform

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/ontypehq/qwen-tts/internal/proc"
)

// Backend is the hardware path the external engine runs on.
type Backend int

const (
	// CPU is the catch-all and the zero value.
	CPU Backend = iota
	// MLX is Apple silicon via the mlx-audio engine.
	MLX
	// CUDA is an NVIDIA GPU via the PyTorch compat script.
	CUDA
)

// Backends lists every backend in display order.
var Backends = []Backend{MLX, CUDA, CPU}

func (b Backend) String() string {
	switch b {
	case MLX:
		return "mlx"
	case CUDA:
		return "cuda"
	default:
		return "cpu"
	}
}

// IsApple reports whether b selects the Apple-optimized engine.
func (b Backend) IsApple() bool { return b == MLX }

// ParseBackend accepts mlx, cuda or cpu in any case.
func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mlx":
		return MLX, nil
	case "cuda":
		return CUDA, nil
	case "cpu":
		return CPU, nil
	}
	return CPU, fmt.Errorf("unknown backend: %s (expected mlx, cuda, or cpu)", s)
}

func (b Backend) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *Backend) UnmarshalText(text []byte) error {
	parsed, err := ParseBackend(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// nvidiaProbe is the GPU query utility whose clean exit signals CUDA.
const nvidiaProbe = "nvidia-smi"

// Detector inspects the host. GOOS and GOARCH default to the running binary's.
type Detector struct {
	GOOS   string
	GOARCH string
	Runner proc.Runner
}

// NewDetector returns a detector for the current host.
func NewDetector(runner proc.Runner) *Detector {
	return &Detector{GOOS: runtime.GOOS, GOARCH: runtime.GOARCH, Runner: runner}
}

// AppleSilicon reports macOS on arm64.
func (d *Detector) AppleSilicon() bool {
	return d.GOOS == "darwin" && d.GOARCH == "arm64"
}

// HasNvidiaGPU reports whether nvidia-smi runs and exits zero.
func (d *Detector) HasNvidiaGPU(ctx context.Context) bool {
	if d.Runner == nil {
		return false
	}
	return d.Runner.Probe(ctx, nvidiaProbe)
}

// Detect never fails: Apple silicon wins, then a working NVIDIA GPU, then CPU.
func (d *Detector) Detect(ctx context.Context) Backend {
	if d.AppleSilicon() {
		return MLX
	}
	if d.HasNvidiaGPU(ctx) {
		return CUDA
	}
	return CPU
}

// OSName is the human-readable operating system name.
func (d *Detector) OSName() string {
	switch d.GOOS {
	case "darwin":
		return "macOS"
	case "windows":
		return "Windows"
	case "linux":
		return "Linux"
	}
	return d.GOOS
}

// Summary renders e.g. "macOS (Apple Silicon) · backend: mlx".
func (d *Detector) Summary(ctx context.Context) string {
	arch := d.GOARCH
	if d.AppleSilicon() {
		arch = "Apple Silicon"
	}
	return fmt.Sprintf("%s (%s) · backend: %s", d.OSName(), arch, d.Detect(ctx))
}
