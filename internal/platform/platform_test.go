package platform

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ontypehq/qwen-tts/internal/proc/proctest"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name   string
		goos   string
		goarch string
		gpu    bool
		want   Backend
	}{
		{"apple silicon", "darwin", "arm64", true, MLX},
		{"intel mac with no gpu", "darwin", "amd64", false, CPU},
		{"linux with nvidia", "linux", "amd64", true, CUDA},
		{"linux without nvidia", "linux", "amd64", false, CPU},
		{"windows with nvidia", "windows", "amd64", true, CUDA},
		{"linux arm64 is not apple", "linux", "arm64", false, CPU},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &proctest.Runner{
				OnProbe: func(name string, args ...string) bool {
					return name == "nvidia-smi" && tt.gpu
				},
			}
			d := &Detector{GOOS: tt.goos, GOARCH: tt.goarch, Runner: runner}
			assert.Equal(t, tt.want, d.Detect(context.Background()))
		})
	}
}

func TestDetectSkipsGPUProbeOnAppleSilicon(t *testing.T) {
	runner := &proctest.Runner{}
	d := &Detector{GOOS: "darwin", GOARCH: "arm64", Runner: runner}

	assert.Equal(t, MLX, d.Detect(context.Background()))
	assert.Empty(t, runner.Probes())
}

func TestDetectWithoutRunnerFallsBackToCPU(t *testing.T) {
	d := &Detector{GOOS: "linux", GOARCH: "amd64"}
	assert.Equal(t, CPU, d.Detect(context.Background()))
}

func TestParseBackend(t *testing.T) {
	for _, s := range []string{"mlx", "MLX", " cuda ", "cpu"} {
		_, err := ParseBackend(s)
		assert.NoError(t, err, s)
	}

	_, err := ParseBackend("rocm")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected mlx, cuda, or cpu")
}

func TestSummary(t *testing.T) {
	d := &Detector{GOOS: "darwin", GOARCH: "arm64", Runner: &proctest.Runner{}}
	assert.Equal(t, "macOS (Apple Silicon) · backend: mlx", d.Summary(context.Background()))

	d = &Detector{GOOS: "linux", GOARCH: "amd64", Runner: &proctest.Runner{
		OnProbe: func(string, ...string) bool { return false },
	}}
	assert.Equal(t, "Linux (amd64) · backend: cpu", d.Summary(context.Background()))
}
